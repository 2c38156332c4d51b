// Package bsp implements the kernel.Kernel interface with exact boundary
// representation booleans on binary space partitioning trees. Solids are
// sets of convex polygons; boolean operations clip the polygons of each
// operand against a tree built from the other, and the surviving fragments
// are stitched so that every result is again a closed 2-manifold.
package bsp

import (
	"fmt"
	"math"

	"github.com/chazu/trisketch/pkg/kernel"
	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// DefaultEpsilon is the plane classification tolerance used by New.
const DefaultEpsilon = 1e-5

// Compile-time interface check.
var _ kernel.Kernel = (*Kernel)(nil)

// Kernel implements kernel.Kernel with BSP tree booleans.
type Kernel struct {
	eps float64
}

// New returns a Kernel using DefaultEpsilon.
func New() *Kernel {
	return NewWithEpsilon(DefaultEpsilon)
}

// NewWithEpsilon returns a Kernel that treats points closer than eps to a
// plane as lying on it. Non-positive values select DefaultEpsilon.
func NewWithEpsilon(eps float64) *Kernel {
	if eps <= 0 {
		eps = DefaultEpsilon
	}
	return &Kernel{eps: eps}
}

// Epsilon returns the classification tolerance.
func (k *Kernel) Epsilon() float64 { return k.eps }

func (k *Kernel) solid(polys []*polygon) *Solid {
	return &Solid{polygons: polys, eps: k.eps}
}

// unwrap extracts the *Solid from a kernel.Solid. nil maps to an empty solid.
func (k *Kernel) unwrap(s kernel.Solid) *Solid {
	if s == nil {
		return k.solid(nil)
	}
	return s.(*Solid)
}

// Empty returns a solid with no faces.
func (k *Kernel) Empty() kernel.Solid {
	return k.solid(nil)
}

// cleanOutline drops repeated and collinear points until none are left.
func (k *Kernel) cleanOutline(outline []v2.Vec) []v2.Vec {
	pts := make([]v2.Vec, 0, len(outline))
	for _, p := range outline {
		if len(pts) > 0 && p.Sub(pts[len(pts)-1]).Length() <= k.eps {
			continue
		}
		pts = append(pts, p)
	}
	for len(pts) > 1 && pts[0].Sub(pts[len(pts)-1]).Length() <= k.eps {
		pts = pts[:len(pts)-1]
	}
	for changed := true; changed && len(pts) >= 3; {
		changed = false
		for i := 0; i < len(pts) && len(pts) >= 3; i++ {
			a := pts[(i+len(pts)-1)%len(pts)]
			b := pts[i]
			c := pts[(i+1)%len(pts)]
			if math.Abs(cross2(a, b, c)) <= k.eps*k.eps {
				pts = append(pts[:i], pts[i+1:]...)
				changed = true
				i--
			}
		}
	}
	return pts
}

func signedArea(pts []v2.Vec) float64 {
	var a float64
	for i, p := range pts {
		q := pts[(i+1)%len(pts)]
		a += p.X*q.Y - q.X*p.Y
	}
	return a / 2
}

// Prism sweeps outline along Z from -length/2 to +length/2. The outline may
// be concave and in either winding; the caps are triangulated. Outlines with
// fewer than three distinct non-collinear points or no area, and
// non-positive lengths, give an empty solid.
func (k *Kernel) Prism(outline []v2.Vec, length float64) kernel.Solid {
	pts := k.cleanOutline(outline)
	if len(pts) < 3 || length <= 0 {
		return k.Empty()
	}
	area := signedArea(pts)
	if math.Abs(area) <= k.eps*k.eps {
		return k.Empty()
	}
	if area < 0 {
		for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
			pts[i], pts[j] = pts[j], pts[i]
		}
	}

	z0, z1 := -length/2, length/2
	at := func(p v2.Vec, z float64) v3.Vec { return v3.Vec{X: p.X, Y: p.Y, Z: z} }

	var polys []*polygon
	add := func(vs ...v3.Vec) {
		if p, ok := newPolygon(vs...); ok {
			polys = append(polys, p)
		}
	}
	for _, t := range triangulate(pts) {
		a, b, c := pts[t[0]], pts[t[1]], pts[t[2]]
		add(at(a, z1), at(b, z1), at(c, z1))
		add(at(a, z0), at(c, z0), at(b, z0))
	}
	for i, p := range pts {
		q := pts[(i+1)%len(pts)]
		add(at(p, z0), at(q, z0), at(q, z1), at(p, z1))
	}
	return k.solid(polys)
}

// Merge returns a solid holding the faces of both operands. Overlapping
// volumes are not resolved.
func (k *Kernel) Merge(a, b kernel.Solid) kernel.Solid {
	sa, sb := k.unwrap(a), k.unwrap(b)
	polys := make([]*polygon, 0, len(sa.polygons)+len(sb.polygons))
	polys = append(polys, clonePolygons(sa.polygons)...)
	polys = append(polys, clonePolygons(sb.polygons)...)
	return k.solid(polys)
}

// result stitches the fragments of a boolean operation into a closed
// boundary. Shells enclosing no volume become the empty solid.
func (k *Kernel) result(polys []*polygon) *Solid {
	s := k.solid(stitch(polys, k.eps))
	if s.IsEmpty() {
		return k.solid(nil)
	}
	return s
}

func (k *Kernel) operands(a, b kernel.Solid) (*Solid, *Solid, error) {
	sa, sb := k.unwrap(a), k.unwrap(b)
	if err := sa.Validate(); err != nil {
		return nil, nil, fmt.Errorf("first operand: %w", err)
	}
	if err := sb.Validate(); err != nil {
		return nil, nil, fmt.Errorf("second operand: %w", err)
	}
	return sa, sb, nil
}

// Union returns the volume inside either solid.
func (k *Kernel) Union(a, b kernel.Solid) (kernel.Solid, error) {
	sa, sb, err := k.operands(a, b)
	if err != nil {
		return nil, err
	}
	if sa.IsEmpty() {
		return k.solid(clonePolygons(sb.polygons)), nil
	}
	if sb.IsEmpty() || !overlaps(sa, sb, k.eps) {
		return k.Merge(sa, sb), nil
	}
	na := newNode(clonePolygons(sa.polygons), k.eps)
	nb := newNode(clonePolygons(sb.polygons), k.eps)
	na.clipTo(nb)
	nb.clipTo(na)
	nb.invert()
	nb.clipTo(na)
	nb.invert()
	na.build(nb.allPolygons())
	return k.result(na.allPolygons()), nil
}

// Difference returns the volume inside a and outside b.
func (k *Kernel) Difference(a, b kernel.Solid) (kernel.Solid, error) {
	sa, sb, err := k.operands(a, b)
	if err != nil {
		return nil, err
	}
	if sa.IsEmpty() {
		return k.Empty(), nil
	}
	if sb.IsEmpty() || !overlaps(sa, sb, k.eps) {
		return k.solid(clonePolygons(sa.polygons)), nil
	}
	na := newNode(clonePolygons(sa.polygons), k.eps)
	nb := newNode(clonePolygons(sb.polygons), k.eps)
	na.invert()
	na.clipTo(nb)
	nb.clipTo(na)
	nb.invert()
	nb.clipTo(na)
	nb.invert()
	na.build(nb.allPolygons())
	na.invert()
	return k.result(na.allPolygons()), nil
}

// Intersection returns the volume inside both solids. Faces shared by both
// operands with the same orientation appear once in the result.
func (k *Kernel) Intersection(a, b kernel.Solid) (kernel.Solid, error) {
	sa, sb, err := k.operands(a, b)
	if err != nil {
		return nil, err
	}
	if sa.IsEmpty() || sb.IsEmpty() || !overlaps(sa, sb, k.eps) {
		return k.Empty(), nil
	}
	na := newNode(clonePolygons(sa.polygons), k.eps)
	nb := newNode(clonePolygons(sb.polygons), k.eps)
	na.invert()
	nb.clipTo(na)
	nb.invert()
	na.clipTo(nb)
	nb.clipTo(na)
	na.build(nb.allPolygons())
	na.invert()
	return k.result(na.allPolygons()), nil
}

// transform applies an affine map made of rotations, translations and
// uniform scales to every face.
func (k *Kernel) transform(s kernel.Solid, m sdf.M44) kernel.Solid {
	src := k.unwrap(s)
	origin := m.MulPosition(v3.Vec{})
	polys := make([]*polygon, len(src.polygons))
	for i, p := range src.polygons {
		vs := make([]v3.Vec, len(p.vertices))
		for j, v := range p.vertices {
			vs[j] = m.MulPosition(v)
		}
		n := m.MulPosition(p.plane.normal).Sub(origin).Normalize()
		onPlane := m.MulPosition(p.plane.normal.MulScalar(p.plane.w))
		polys[i] = &polygon{vertices: vs, plane: plane{normal: n, w: n.Dot(onPlane)}}
	}
	return k.solid(polys)
}

// Translate moves a solid by (x, y, z).
func (k *Kernel) Translate(s kernel.Solid, x, y, z float64) kernel.Solid {
	return k.transform(s, sdf.Translate3d(v3.Vec{X: x, Y: y, Z: z}))
}

// Rotate rotates a solid by Euler angles (degrees) around X, then Y, then Z.
func (k *Kernel) Rotate(s kernel.Solid, x, y, z float64) kernel.Solid {
	xRad := x * math.Pi / 180.0
	yRad := y * math.Pi / 180.0
	zRad := z * math.Pi / 180.0

	m := sdf.RotateZ(zRad).Mul(sdf.RotateY(yRad)).Mul(sdf.RotateX(xRad))
	return k.transform(s, m)
}

// Scale scales a solid uniformly about the origin. k must be positive.
func (k *Kernel) Scale(s kernel.Solid, f float64) kernel.Solid {
	return k.transform(s, sdf.Scale3d(v3.Vec{X: f, Y: f, Z: f}))
}

// ToMesh fans every face into triangles with flat normals.
func (k *Kernel) ToMesh(s kernel.Solid) (*kernel.Mesh, error) {
	src := k.unwrap(s)
	m := &kernel.Mesh{}
	for _, p := range src.polygons {
		n := p.plane.normal
		base := uint32(len(m.Vertices) / 3)
		for _, v := range p.vertices {
			m.Vertices = append(m.Vertices, float32(v.X), float32(v.Y), float32(v.Z))
			m.Normals = append(m.Normals, float32(n.X), float32(n.Y), float32(n.Z))
		}
		for i := 1; i+1 < len(p.vertices); i++ {
			m.Indices = append(m.Indices, base, base+uint32(i), base+uint32(i+1))
		}
	}
	return m, nil
}
