package sketch

import (
	"errors"
	"fmt"
)

// ErrInvalidModel is wrapped by every error returned for a structurally
// invalid model (too many drawings, duplicate axes, bad color).
var ErrInvalidModel = errors.New("invalid model")

// MaxDrawings is the number of canonical axes a model can carry.
const MaxDrawings = 3

// Axis names one of the three canonical sweep directions.
type Axis int

const (
	AxisX Axis = iota // side view
	AxisY             // top view
	AxisZ             // front view
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	default:
		return fmt.Sprintf("Axis(%d)", int(a))
	}
}

// Valid reports whether a is one of the canonical axes.
func (a Axis) Valid() bool {
	return a >= AxisX && a <= AxisZ
}

// ParseAxis converts "x", "y" or "z" into an Axis.
func ParseAxis(s string) (Axis, error) {
	switch s {
	case "x", "X":
		return AxisX, nil
	case "y", "Y":
		return AxisY, nil
	case "z", "Z":
		return AxisZ, nil
	}
	return 0, fmt.Errorf("invalid axis %q, expected x, y, or z", s)
}

// AxisForIndex returns the axis a drawing gets from its position in a model
// when it does not name one: 0 is x, 1 is y, 2 is z.
func AxisForIndex(i int) (Axis, error) {
	if i < 0 || i >= MaxDrawings {
		return 0, fmt.Errorf("drawing index %d out of range [0,%d)", i, MaxDrawings)
	}
	return Axis(i), nil
}

// Point is a grid coordinate. X grows to the right and Y grows up.
type Point struct {
	X, Y float64
}

// Drawing is one axis view: a set of closed outlines plus a mirror flag.
type Drawing struct {
	Axis     Axis
	Mirror   bool
	Polygons []Polygon
}

// Model is the editor snapshot consumed by the solid pipeline.
type Model struct {
	Color    Color
	Drawings []Drawing
}

// Drawing returns the drawing for the given axis, or nil.
func (m *Model) Drawing(a Axis) *Drawing {
	for i := range m.Drawings {
		if m.Drawings[i].Axis == a {
			return &m.Drawings[i]
		}
	}
	return nil
}

// Clone returns a deep copy so a snapshot can outlive the editor state it
// was taken from.
func (m Model) Clone() Model {
	out := Model{Color: m.Color, Drawings: make([]Drawing, len(m.Drawings))}
	for i, d := range m.Drawings {
		polys := make([]Polygon, len(d.Polygons))
		for j, p := range d.Polygons {
			polys[j] = append(Polygon(nil), p...)
		}
		out.Drawings[i] = Drawing{Axis: d.Axis, Mirror: d.Mirror, Polygons: polys}
	}
	return out
}
