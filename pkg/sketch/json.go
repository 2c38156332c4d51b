package sketch

import (
	"encoding/json"
	"fmt"
)

// MarshalJSON encodes a point as [x, y].
func (p Point) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{p.X, p.Y})
}

// UnmarshalJSON decodes a point from [x, y].
func (p *Point) UnmarshalJSON(b []byte) error {
	var xy []float64
	if err := json.Unmarshal(b, &xy); err != nil {
		return fmt.Errorf("point: %w", err)
	}
	if len(xy) != 2 {
		return fmt.Errorf("point: expected [x, y], got %d values", len(xy))
	}
	p.X, p.Y = xy[0], xy[1]
	return nil
}

// wireDrawing is the editor's object form of a drawing. Axis is optional;
// mirror is omitted when false, as the editor does.
type wireDrawing struct {
	Axis     string    `json:"axis,omitempty"`
	Mirror   bool      `json:"mirror,omitempty"`
	Polygons []Polygon `json:"polygons"`
}

type wireModel struct {
	Color    *Color        `json:"color,omitempty"`
	Drawings []wireDrawing `json:"drawings"`
}

// MarshalJSON encodes the model in the editor's object form. A drawing's
// axis is written only when it differs from the axis of its position.
func (m Model) MarshalJSON() ([]byte, error) {
	w := wireModel{Color: &m.Color, Drawings: make([]wireDrawing, len(m.Drawings))}
	for i, d := range m.Drawings {
		polys := d.Polygons
		if polys == nil {
			polys = []Polygon{}
		}
		wd := wireDrawing{Mirror: d.Mirror, Polygons: polys}
		if pos, err := AxisForIndex(i); err != nil || pos != d.Axis {
			wd.Axis = d.Axis.String()
		}
		w.Drawings[i] = wd
	}
	return json.Marshal(w)
}

// UnmarshalJSON decodes the editor's object form. Drawings without an axis
// take the axis of their position (see AxisForIndex). A missing color
// defaults to white.
func (m *Model) UnmarshalJSON(b []byte) error {
	var w wireModel
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	out := Model{Color: White}
	if w.Color != nil {
		out.Color = *w.Color
	}
	for i, wd := range w.Drawings {
		var (
			axis Axis
			err  error
		)
		if wd.Axis != "" {
			axis, err = ParseAxis(wd.Axis)
		} else {
			axis, err = AxisForIndex(i)
		}
		if err != nil {
			return fmt.Errorf("%w: drawing %d: %v", ErrInvalidModel, i, err)
		}
		out.Drawings = append(out.Drawings, Drawing{Axis: axis, Mirror: wd.Mirror, Polygons: wd.Polygons})
	}
	*m = out
	return nil
}

// ParseModel decodes and validates a model in the editor's object form.
func ParseModel(data []byte) (Model, error) {
	var m Model
	if err := json.Unmarshal(data, &m); err != nil {
		return Model{}, fmt.Errorf("parse model: %w", err)
	}
	if err := Check(m); err != nil {
		return Model{}, err
	}
	return m, nil
}

// Echo re-serializes the model for display next to the rendered solid.
// Colors are written as "r,g,b" whichever form they were read from.
func (m Model) Echo() string {
	b, err := json.Marshal(m)
	if err != nil {
		// Only NaN or Inf coordinates can fail to encode.
		return fmt.Sprintf("<unencodable model: %v>", err)
	}
	return string(b)
}
