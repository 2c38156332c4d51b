package sketch

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Color is a material color with channels normalized to [0, 1].
type Color struct {
	R, G, B float64
}

// White is the color of a fresh picker.
var White = Color{R: 1, G: 1, B: 1}

// ParseColor reads the "r,g,b" form produced by the color picker.
func ParseColor(s string) (Color, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return Color{}, fmt.Errorf("color %q: expected three comma-separated channels", s)
	}
	var ch [3]float64
	for i, part := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return Color{}, fmt.Errorf("color %q: channel %d: %w", s, i, err)
		}
		ch[i] = f
	}
	return Color{R: ch[0], G: ch[1], B: ch[2]}, nil
}

// ColorFromPicker converts 0..255 picker channels, truncating each to two
// decimals the way the picker reports them.
func ColorFromPicker(r, g, b int) Color {
	conv := func(v int) float64 {
		return math.Floor(float64(v)/2.56) / 100
	}
	return Color{R: conv(r), G: conv(g), B: conv(b)}
}

// Valid reports whether every channel lies in [0, 1].
func (c Color) Valid() bool {
	for _, v := range [3]float64{c.R, c.G, c.B} {
		if math.IsNaN(v) || v < 0 || v > 1 {
			return false
		}
	}
	return true
}

// Float32 returns the channels as a float32 triple for render buffers.
func (c Color) Float32() [3]float32 {
	return [3]float32{float32(c.R), float32(c.G), float32(c.B)}
}

func (c Color) String() string {
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	return f(c.R) + "," + f(c.G) + "," + f(c.B)
}

// MarshalText encodes the color as "r,g,b".
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText decodes the "r,g,b" form.
func (c *Color) UnmarshalText(b []byte) error {
	parsed, err := ParseColor(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// UnmarshalJSON accepts either the picker's "r,g,b" string or an already
// parsed [r, g, b] array.
func (c *Color) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '[' {
		var ch []float64
		if err := json.Unmarshal(b, &ch); err != nil {
			return fmt.Errorf("color: %w", err)
		}
		if len(ch) != 3 {
			return fmt.Errorf("color: expected [r, g, b], got %d values", len(ch))
		}
		*c = Color{R: ch[0], G: ch[1], B: ch[2]}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("color: expected \"r,g,b\" or [r, g, b]: %w", err)
	}
	return c.UnmarshalText([]byte(s))
}
