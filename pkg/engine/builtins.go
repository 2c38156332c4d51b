package engine

import (
	"fmt"
	"strings"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/trisketch/pkg/sketch"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource transforms sketch script source code before passing it to
// zygomys. It performs two transformations:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal)
//     This avoids the need to register keyword symbols as globals, which
//     would conflict with user-defined variables of the same name.
//
//  2. Kebab-case to underscore: from-picker -> from_picker
//     zygomys does not allow hyphens in identifiers (it interprets them
//     as the subtraction operator). This converts kebab-case identifiers
//     to underscore form outside of strings and comments.
//
// Both transformations respect string literal boundaries and line comments.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Skip double-quoted string literals.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Skip backtick-quoted string literals.
		if b[i] == '`' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '`' {
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Convert ; line comments to // comments for zygomys.
		// zygomys uses // for line comments, not the traditional Lisp ;.
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			// Skip additional ; characters (;; style).
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Transform :keyword to "__kw_keyword".
		if b[i] == ':' && i+1 < len(b) {
			// Preserve := (assignment operator).
			if b[i+1] == '=' {
				result = append(result, b[i], b[i+1])
				i += 2
				continue
			}
			// Check for keyword: colon followed by a letter.
			if isLetter(b[i+1]) {
				j := i + 1
				for j < len(b) && isKWChar(b[j]) {
					j++
				}
				kwName := string(b[i+1 : j])
				result = append(result, '"')
				result = append(result, []byte(kwPrefix)...)
				result = append(result, []byte(kwName)...)
				result = append(result, '"')
				i = j
				continue
			}
		}
		// Transform kebab-case identifiers: alpha-alpha -> alpha_alpha.
		// Only when hyphen sits between identifier characters (not a minus operator).
		if b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isIdentStartChar(b[i+1]) {
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

func isIdentStartChar(c byte) bool {
	return isLetter(c)
}

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpPoint wraps a sketch.Point returned from `pt`.
type sexpPoint struct {
	p sketch.Point
}

func (p *sexpPoint) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(pt %g %g)", p.p.X, p.p.Y)
}
func (p *sexpPoint) Type() *zygo.RegisteredType { return nil }

// sexpPolygon wraps a sketch.Polygon returned from `polygon`.
type sexpPolygon struct {
	poly sketch.Polygon
}

func (p *sexpPolygon) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(polygon <%d points>)", p.poly.Len())
}
func (p *sexpPolygon) Type() *zygo.RegisteredType { return nil }

// sexpDrawing wraps a sketch.Drawing returned from `drawing`. Drawings
// without an explicit :axis take their position in the model.
type sexpDrawing struct {
	d       sketch.Drawing
	hasAxis bool
}

func (d *sexpDrawing) SexpString(ps *zygo.PrintState) string {
	if d.hasAxis {
		return fmt.Sprintf("(drawing :axis :%s <%d polygons>)", d.d.Axis, len(d.d.Polygons))
	}
	return fmt.Sprintf("(drawing <%d polygons>)", len(d.d.Polygons))
}
func (d *sexpDrawing) Type() *zygo.RegisteredType { return nil }

// sexpColor wraps a sketch.Color returned from `rgb` or `picker`.
type sexpColor struct {
	c sketch.Color
}

func (c *sexpColor) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(rgb %s)", strings.ReplaceAll(c.c.String(), ",", " "))
}
func (c *sexpColor) Type() *zygo.RegisteredType { return nil }

// sexpModel is returned from `model`.
type sexpModel struct {
	m sketch.Model
}

func (m *sexpModel) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(model :color %q <%d drawings>)", m.m.Color, len(m.m.Drawings))
}
func (m *sexpModel) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
// Keywords are identified by the __kw_ prefix added during preprocessing.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				// Keyword at end with no value: treat as flag with nil.
				result.kw[name] = zygo.SexpNull
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toKeywordString extracts a keyword name or plain string from a Sexp.
// Handles both preprocessed keywords (__kw_z) and plain strings ("z").
func toKeywordString(s zygo.Sexp) (string, error) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", fmt.Errorf("expected keyword or string, got %T (%s)", s, s.SexpString(nil))
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], nil
	}
	return str.S, nil
}

// toAxis converts a keyword or string to a sketch.Axis.
func toAxis(s zygo.Sexp) (sketch.Axis, error) {
	name, err := toKeywordString(s)
	if err != nil {
		return 0, fmt.Errorf("expected axis keyword (:x, :y, :z): %w", err)
	}
	return sketch.ParseAxis(name)
}

// toBool accepts true/false literals and the :true/:false keywords.
func toBool(s zygo.Sexp) (bool, error) {
	switch v := s.(type) {
	case *zygo.SexpBool:
		return v.Val, nil
	case *zygo.SexpStr:
		name, _ := toKeywordString(v)
		switch name {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
	}
	return false, fmt.Errorf("expected true or false, got %T (%s)", s, s.SexpString(nil))
}

// toColor accepts an "r,g,b" string or a value built by `rgb` or `picker`.
func toColor(s zygo.Sexp) (sketch.Color, error) {
	if c, ok := s.(*sexpColor); ok {
		return c.c, nil
	}
	str, err := toString(s)
	if err != nil {
		return sketch.Color{}, fmt.Errorf("expected color string or (rgb ...): %w", err)
	}
	return sketch.ParseColor(str)
}

// toPoints collects points from a mix of (pt x y) values, lists or arrays
// of them, and bare x y number pairs.
func toPoints(args []zygo.Sexp) (sketch.Polygon, error) {
	var out sketch.Polygon
	var pending []float64
	for _, a := range args {
		switch v := a.(type) {
		case *sexpPoint:
			out = append(out, v.p)
			continue
		case *zygo.SexpPair, *zygo.SexpArray:
			items, err := sexpListToSlice(v)
			if err != nil {
				return nil, err
			}
			more, err := toPoints(items)
			if err != nil {
				return nil, err
			}
			out = append(out, more...)
			continue
		}
		f, err := toFloat64(a)
		if err != nil {
			return nil, fmt.Errorf("expected (pt x y) or number: %w", err)
		}
		pending = append(pending, f)
		if len(pending) == 2 {
			out = append(out, sketch.Point{X: pending[0], Y: pending[1]})
			pending = pending[:0]
		}
	}
	if len(pending) != 0 {
		return nil, fmt.Errorf("odd number of coordinates")
	}
	return out, nil
}

// sexpListToSlice converts a SexpPair (Lisp list) or SexpArray to a Go slice.
func sexpListToSlice(s zygo.Sexp) ([]zygo.Sexp, error) {
	switch v := s.(type) {
	case *zygo.SexpPair:
		return zygo.ListToArray(v)
	case *zygo.SexpArray:
		return v.Val, nil
	case *zygo.SexpSentinel:
		if v == zygo.SexpNull {
			return nil, nil
		}
	}
	return nil, fmt.Errorf("expected list or array, got %T", s)
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// builder collects the model produced by a script.
type builder struct {
	model *sketch.Model
}

// registerBuiltins installs the sketch script builtins into a zygomys
// environment. The `model` builtin stores its result in b.
//
// Source code must be preprocessed with preprocessSource() before evaluation so
// that :keyword tokens are converted to recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, b *builder) {

	// -----------------------------------------------------------------------
	// (pt 16 48)
	// -----------------------------------------------------------------------
	env.AddFunction("pt", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("pt requires exactly 2 arguments, got %d", len(args))
		}
		x, err := toFloat64(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("pt: x: %w", err)
		}
		y, err := toFloat64(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("pt: y: %w", err)
		}
		return &sexpPoint{p: sketch.Point{X: x, Y: y}}, nil
	})

	// -----------------------------------------------------------------------
	// (polygon (pt 16 16) (pt 48 16) (pt 48 48))
	// (polygon 16 16 48 16 48 48)
	// -----------------------------------------------------------------------
	env.AddFunction("polygon", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pts, err := toPoints(args)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("polygon: %w", err)
		}
		return &sexpPolygon{poly: pts}, nil
	})

	// -----------------------------------------------------------------------
	// (rgb 1 0.5 0)
	// -----------------------------------------------------------------------
	env.AddFunction("rgb", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("rgb requires exactly 3 arguments, got %d", len(args))
		}
		var ch [3]float64
		for i, a := range args {
			f, err := toFloat64(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("rgb: channel %d: %w", i, err)
			}
			ch[i] = f
		}
		c := sketch.Color{R: ch[0], G: ch[1], B: ch[2]}
		if !c.Valid() {
			return zygo.SexpNull, fmt.Errorf("rgb: channels must be in [0,1], got %s", c)
		}
		return &sexpColor{c: c}, nil
	})

	// -----------------------------------------------------------------------
	// (picker 255 200 0)  ; 0..255 channels from a color picker
	// -----------------------------------------------------------------------
	env.AddFunction("picker", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("picker requires exactly 3 arguments, got %d", len(args))
		}
		var ch [3]int
		for i, a := range args {
			f, err := toFloat64(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("picker: channel %d: %w", i, err)
			}
			if f < 0 || f > 255 {
				return zygo.SexpNull, fmt.Errorf("picker: channel %d out of range [0,255]: %g", i, f)
			}
			ch[i] = int(f)
		}
		return &sexpColor{c: sketch.ColorFromPicker(ch[0], ch[1], ch[2])}, nil
	})

	// -----------------------------------------------------------------------
	// (drawing :axis :x :mirror true (polygon ...) ...)
	// -----------------------------------------------------------------------
	env.AddFunction("drawing", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		sd := &sexpDrawing{}

		if v, ok := pa.kw["axis"]; ok {
			a, err := toAxis(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("drawing: axis: %w", err)
			}
			sd.d.Axis = a
			sd.hasAxis = true
		}
		if v, ok := pa.kw["mirror"]; ok {
			m, err := toBool(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("drawing: mirror: %w", err)
			}
			sd.d.Mirror = m
		}
		for i, p := range pa.positional {
			poly, ok := p.(*sexpPolygon)
			if !ok {
				return zygo.SexpNull, fmt.Errorf("drawing: argument %d: expected polygon, got %T (%s)",
					i, p, p.SexpString(nil))
			}
			sd.d.Polygons = append(sd.d.Polygons, poly.poly)
		}

		return sd, nil
	})

	// -----------------------------------------------------------------------
	// (model :color "1,0,0" (drawing ...) (drawing ...) (drawing ...))
	// -----------------------------------------------------------------------
	env.AddFunction("model", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if b.model != nil {
			return zygo.SexpNull, fmt.Errorf("model: a script defines exactly one model")
		}
		pa := parseArgs(args)
		m := sketch.Model{Color: sketch.White}

		if v, ok := pa.kw["color"]; ok {
			c, err := toColor(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("model: color: %w", err)
			}
			m.Color = c
		}
		for i, p := range pa.positional {
			sd, ok := p.(*sexpDrawing)
			if !ok {
				return zygo.SexpNull, fmt.Errorf("model: argument %d: expected drawing, got %T (%s)",
					i, p, p.SexpString(nil))
			}
			d := sd.d
			if !sd.hasAxis {
				a, err := sketch.AxisForIndex(i)
				if err != nil {
					return zygo.SexpNull, fmt.Errorf("model: %w", err)
				}
				d.Axis = a
			}
			m.Drawings = append(m.Drawings, d)
		}
		if err := sketch.Check(m); err != nil {
			return zygo.SexpNull, fmt.Errorf("model: %w", err)
		}

		b.model = &m
		return &sexpModel{m: m}, nil
	})
}
