package bsp

import (
	"math"
	"sort"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// welder snaps vertices closer than eps onto one representative.
type welder struct {
	eps   float64
	cell  float64
	cells map[[3]int64][]v3.Vec
	verts []v3.Vec
}

func newWelder(eps float64) *welder {
	return &welder{eps: eps, cell: 4 * eps, cells: make(map[[3]int64][]v3.Vec)}
}

func (w *welder) key(v v3.Vec) [3]int64 {
	return [3]int64{
		int64(math.Floor(v.X / w.cell)),
		int64(math.Floor(v.Y / w.cell)),
		int64(math.Floor(v.Z / w.cell)),
	}
}

func (w *welder) weld(v v3.Vec) v3.Vec {
	k := w.key(v)
	for dx := int64(-1); dx <= 1; dx++ {
		for dy := int64(-1); dy <= 1; dy++ {
			for dz := int64(-1); dz <= 1; dz++ {
				for _, u := range w.cells[[3]int64{k[0] + dx, k[1] + dy, k[2] + dz}] {
					if u.Sub(v).Length() <= w.eps {
						return u
					}
				}
			}
		}
	}
	w.cells[k] = append(w.cells[k], v)
	w.verts = append(w.verts, v)
	return v
}

// stitch turns the fragments left by BSP clipping into a boundary where
// faces meet edge to edge: vertices closer than eps are welded, faces that
// collapse are dropped and every edge is split at the vertices lying on it.
func stitch(polys []*polygon, eps float64) []*polygon {
	w := newWelder(eps)
	kept := make([]*polygon, 0, len(polys))
	for _, p := range polys {
		vs := make([]v3.Vec, 0, len(p.vertices))
		for _, v := range p.vertices {
			v = w.weld(v)
			if len(vs) > 0 && vs[len(vs)-1] == v {
				continue
			}
			vs = append(vs, v)
		}
		for len(vs) > 1 && vs[0] == vs[len(vs)-1] {
			vs = vs[:len(vs)-1]
		}
		if len(vs) < 3 || newell(vs).Length() <= eps*eps {
			continue
		}
		kept = append(kept, &polygon{vertices: vs, plane: p.plane})
	}

	for _, p := range kept {
		out := make([]v3.Vec, 0, len(p.vertices))
		for i, a := range p.vertices {
			b := p.vertices[(i+1)%len(p.vertices)]
			out = append(out, a)
			out = append(out, onSegment(w.verts, a, b, eps)...)
		}
		p.vertices = out
	}
	return kept
}

// onSegment returns the vertices strictly inside segment ab, within eps of
// it, ordered from a to b.
func onSegment(verts []v3.Vec, a, b v3.Vec, eps float64) []v3.Vec {
	d := b.Sub(a)
	l2 := d.Dot(d)
	if l2 == 0 {
		return nil
	}
	lo, hi := a.Min(b).SubScalar(eps), a.Max(b).AddScalar(eps)
	type hit struct {
		t float64
		v v3.Vec
	}
	var hits []hit
	for _, v := range verts {
		if v == a || v == b {
			continue
		}
		if v.X < lo.X || v.Y < lo.Y || v.Z < lo.Z || v.X > hi.X || v.Y > hi.Y || v.Z > hi.Z {
			continue
		}
		t := v.Sub(a).Dot(d) / l2
		if t <= 0 || t >= 1 {
			continue
		}
		if a.Add(d.MulScalar(t)).Sub(v).Length() > eps {
			continue
		}
		hits = append(hits, hit{t, v})
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].t < hits[j].t })
	out := make([]v3.Vec, len(hits))
	for i, h := range hits {
		out[i] = h.v
	}
	return out
}
