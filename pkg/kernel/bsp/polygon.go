package bsp

import (
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// plane is the set of points p with normal.Dot(p) == w.
type plane struct {
	normal v3.Vec
	w      float64
}

func (p plane) flipped() plane {
	return plane{normal: p.normal.Neg(), w: -p.w}
}

// distance returns the signed distance of v from the plane.
func (p plane) distance(v v3.Vec) float64 {
	return p.normal.Dot(v) - p.w
}

// newell returns the area-weighted normal of a planar loop. Its length is
// twice the enclosed area.
func newell(vs []v3.Vec) v3.Vec {
	var n v3.Vec
	for i, cur := range vs {
		next := vs[(i+1)%len(vs)]
		n.X += (cur.Y - next.Y) * (cur.Z + next.Z)
		n.Y += (cur.Z - next.Z) * (cur.X + next.X)
		n.Z += (cur.X - next.X) * (cur.Y + next.Y)
	}
	return n
}

// planeOf fits a plane to vs. ok is false for loops with no area.
func planeOf(vs []v3.Vec) (p plane, ok bool) {
	if len(vs) < 3 {
		return p, false
	}
	n := newell(vs)
	l := n.Length()
	if l == 0 {
		return p, false
	}
	n = n.DivScalar(l)
	var c v3.Vec
	for _, v := range vs {
		c = c.Add(v)
	}
	c = c.DivScalar(float64(len(vs)))
	return plane{normal: n, w: n.Dot(c)}, true
}

// polygon is a convex planar face. The vertex order is counter-clockwise
// seen from the side the plane normal points to.
type polygon struct {
	vertices []v3.Vec
	plane    plane
}

func newPolygon(vs ...v3.Vec) (*polygon, bool) {
	p, ok := planeOf(vs)
	if !ok {
		return nil, false
	}
	return &polygon{vertices: vs, plane: p}, true
}

func (p *polygon) clone() *polygon {
	vs := make([]v3.Vec, len(p.vertices))
	copy(vs, p.vertices)
	return &polygon{vertices: vs, plane: p.plane}
}

func (p *polygon) flip() {
	for i, j := 0, len(p.vertices)-1; i < j; i, j = i+1, j-1 {
		p.vertices[i], p.vertices[j] = p.vertices[j], p.vertices[i]
	}
	p.plane = p.plane.flipped()
}

// volume returns this face's contribution to the signed enclosed volume.
func (p *polygon) volume() float64 {
	var vol float64
	v0 := p.vertices[0]
	for i := 1; i+1 < len(p.vertices); i++ {
		vol += v0.Dot(p.vertices[i].Cross(p.vertices[i+1]))
	}
	return vol / 6
}

func clonePolygons(ps []*polygon) []*polygon {
	out := make([]*polygon, len(ps))
	for i, p := range ps {
		out[i] = p.clone()
	}
	return out
}

// Vertex classification against a splitting plane.
const (
	coplanar = 0
	front    = 1
	back     = 2
	spanning = 3
)

// split sorts poly into the lists by its position relative to pl, cutting
// it in two when it spans the plane. Coplanar polygons go to coFront when
// they face the same way as pl and to coBack otherwise. Both halves of a cut
// polygon keep the original plane.
func split(pl plane, eps float64, poly *polygon, coFront, coBack, fronts, backs *[]*polygon) {
	polyType := 0
	types := make([]int, len(poly.vertices))
	for i, v := range poly.vertices {
		t := pl.distance(v)
		typ := coplanar
		if t < -eps {
			typ = back
		} else if t > eps {
			typ = front
		}
		polyType |= typ
		types[i] = typ
	}

	switch polyType {
	case coplanar:
		if pl.normal.Dot(poly.plane.normal) > 0 {
			*coFront = append(*coFront, poly)
		} else {
			*coBack = append(*coBack, poly)
		}
	case front:
		*fronts = append(*fronts, poly)
	case back:
		*backs = append(*backs, poly)
	case spanning:
		var f, b []v3.Vec
		n := len(poly.vertices)
		for i := 0; i < n; i++ {
			j := (i + 1) % n
			ti, tj := types[i], types[j]
			vi, vj := poly.vertices[i], poly.vertices[j]
			if ti != back {
				f = append(f, vi)
			}
			if ti != front {
				b = append(b, vi)
			}
			if ti|tj == spanning {
				t := (pl.w - pl.normal.Dot(vi)) / pl.normal.Dot(vj.Sub(vi))
				v := vi.Add(vj.Sub(vi).MulScalar(t))
				f = append(f, v)
				b = append(b, v)
			}
		}
		if len(f) >= 3 {
			*fronts = append(*fronts, &polygon{vertices: f, plane: poly.plane})
		}
		if len(b) >= 3 {
			*backs = append(*backs, &polygon{vertices: b, plane: poly.plane})
		}
	}
}
