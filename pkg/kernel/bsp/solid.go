package bsp

import (
	"fmt"
	"math"

	"github.com/chazu/trisketch/pkg/kernel"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Solid is a boundary representation: a set of convex polygons enclosing a
// volume. Solids are immutable once built.
type Solid struct {
	polygons []*polygon
	eps      float64
}

var _ kernel.Solid = (*Solid)(nil)

// BoundingBox returns the axis-aligned bounding box. An empty solid returns
// zero vectors.
func (s *Solid) BoundingBox() (min, max [3]float64) {
	if len(s.polygons) == 0 {
		return min, max
	}
	lo := v3.Vec{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)}
	hi := lo.Neg()
	for _, p := range s.polygons {
		for _, v := range p.vertices {
			lo = lo.Min(v)
			hi = hi.Max(v)
		}
	}
	return [3]float64{lo.X, lo.Y, lo.Z}, [3]float64{hi.X, hi.Y, hi.Z}
}

// IsEmpty reports whether the solid encloses no volume. Zero-volume shells
// left over from touching inputs count as empty.
func (s *Solid) IsEmpty() bool {
	return len(s.polygons) == 0 || s.Volume() <= s.eps*s.eps
}

// PolygonCount returns the number of boundary faces.
func (s *Solid) PolygonCount() int {
	return len(s.polygons)
}

// Volume returns the signed enclosed volume.
func (s *Solid) Volume() float64 {
	var vol float64
	for _, p := range s.polygons {
		vol += p.volume()
	}
	return vol
}

// SurfaceArea returns the total area of the boundary.
func (s *Solid) SurfaceArea() float64 {
	var area float64
	for _, p := range s.polygons {
		area += newell(p.vertices).Length() / 2
	}
	return area
}

// Validate checks the precondition of the boolean operations: finite
// coordinates, faces with at least three vertices, a watertight boundary
// (see IsClosed) and a non-negative volume. A solid without faces is valid.
func (s *Solid) Validate() error {
	if len(s.polygons) == 0 {
		return nil
	}
	for i, p := range s.polygons {
		if len(p.vertices) < 3 {
			return fmt.Errorf("%w: face %d has %d vertices", kernel.ErrInvalidSolid, i, len(p.vertices))
		}
		for _, v := range p.vertices {
			if !finite(v) {
				return fmt.Errorf("%w: face %d has a non-finite vertex %v", kernel.ErrInvalidSolid, i, v)
			}
		}
	}
	if !s.IsClosed() {
		return fmt.Errorf("%w: boundary is not closed", kernel.ErrInvalidSolid)
	}
	if vol := s.Volume(); vol < -s.eps {
		return fmt.Errorf("%w: negative volume %g", kernel.ErrInvalidSolid, vol)
	}
	return nil
}

func finite(v v3.Vec) bool {
	for _, c := range []float64{v.X, v.Y, v.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// weldQuantum is the grid vertices are snapped to when matching edges.
const weldQuantum = 1e-7

type weldKey [3]int64

func weld(v v3.Vec) weldKey {
	return weldKey{
		int64(math.Round(v.X / weldQuantum)),
		int64(math.Round(v.Y / weldQuantum)),
		int64(math.Round(v.Z / weldQuantum)),
	}
}

// IsClosed reports whether the boundary is a watertight 2-manifold without
// T-junctions: after welding coincident vertices every directed edge is
// matched by exactly one edge running the other way.
func (s *Solid) IsClosed() bool {
	if len(s.polygons) == 0 {
		return false
	}
	type edge struct{ from, to weldKey }
	edges := make(map[edge]int)
	for _, p := range s.polygons {
		for i, v := range p.vertices {
			a, b := weld(v), weld(p.vertices[(i+1)%len(p.vertices)])
			if a == b {
				continue
			}
			edges[edge{a, b}]++
		}
	}
	for e, n := range edges {
		if n != 1 || edges[edge{e.to, e.from}] != 1 {
			return false
		}
	}
	return true
}

func overlaps(a, b *Solid, eps float64) bool {
	amin, amax := a.BoundingBox()
	bmin, bmax := b.BoundingBox()
	for i := 0; i < 3; i++ {
		if amax[i] < bmin[i]-eps || bmax[i] < amin[i]-eps {
			return false
		}
	}
	return true
}
