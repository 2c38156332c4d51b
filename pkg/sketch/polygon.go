package sketch

import (
	v2 "github.com/deadsy/sdfx/vec/v2"
)

// Polygon is an ordered outline, implicitly closed from the last point back
// to the first. An empty polygon is legal and contributes no geometry.
type Polygon []Point

// Len returns the number of points.
func (p Polygon) Len() int { return len(p) }

// At returns the i-th point.
func (p Polygon) At(i int) Point { return p[i] }

// IsEmpty reports whether the polygon has no points.
func (p Polygon) IsEmpty() bool { return len(p) == 0 }

// Area returns the signed shoelace area in grid units. Counter-clockwise
// outlines are positive.
func (p Polygon) Area() float64 {
	var sum float64
	for i := range p {
		a, b := p[i], p[(i+1)%len(p)]
		sum += a.X*b.Y - b.X*a.Y
	}
	return sum / 2
}

// Centroid returns the area centroid. Outlines with no area fall back to the
// mean of their points, and the empty polygon returns the origin.
func (p Polygon) Centroid() Point {
	if len(p) == 0 {
		return Point{}
	}
	area := p.Area()
	if area == 0 {
		var c Point
		for _, q := range p {
			c.X += q.X
			c.Y += q.Y
		}
		n := float64(len(p))
		return Point{X: c.X / n, Y: c.Y / n}
	}
	var cx, cy float64
	for i := range p {
		a, b := p[i], p[(i+1)%len(p)]
		cross := a.X*b.Y - b.X*a.Y
		cx += (a.X + b.X) * cross
		cy += (a.Y + b.Y) * cross
	}
	return Point{X: cx / (6 * area), Y: cy / (6 * area)}
}

// Normalize re-centers the outline on the grid midpoint and scales it by the
// inverse grid extent, so a polygon covering the whole grid spans [-0.5, 0.5]
// on both axes.
func (p Polygon) Normalize(grid float64) []v2.Vec {
	half := grid / 2
	out := make([]v2.Vec, len(p))
	for i, q := range p {
		out[i] = v2.Vec{X: (q.X - half) / grid, Y: (q.Y - half) / grid}
	}
	return out
}

// Mirrored reflects the outline across the grid's vertical midline. Point
// order is reversed so the copy keeps the winding of the original.
func (p Polygon) Mirrored(grid float64) Polygon {
	out := make(Polygon, len(p))
	for i, q := range p {
		out[len(p)-1-i] = Point{X: grid - q.X, Y: q.Y}
	}
	return out
}

// InGrid reports whether every point lies inside [0, grid] on both axes.
func (p Polygon) InGrid(grid float64) bool {
	for _, q := range p {
		if q.X < 0 || q.Y < 0 || q.X > grid || q.Y > grid {
			return false
		}
	}
	return true
}

// Outlines returns the polygons the drawing contributes: every non-empty
// polygon, followed by a mirrored copy of each when Mirror is set.
func (d Drawing) Outlines(grid float64) []Polygon {
	var out []Polygon
	for _, p := range d.Polygons {
		if !p.IsEmpty() {
			out = append(out, p)
		}
	}
	if d.Mirror {
		n := len(out)
		for i := 0; i < n; i++ {
			out = append(out, out[i].Mirrored(grid))
		}
	}
	return out
}
