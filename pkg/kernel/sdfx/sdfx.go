// Package sdfx implements the kernel.Kernel interface using the
// github.com/deadsy/sdfx SDF-based CAD library. Booleans are exact on the
// distance fields; meshes come from marching cubes and are approximate.
package sdfx

import (
	"math"

	"github.com/chazu/trisketch/pkg/kernel"
	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Compile-time interface check.
var _ kernel.Kernel = (*SdfxKernel)(nil)

// DefaultMeshCells controls marching cubes tessellation resolution along
// the longest side of a solid.
const DefaultMeshCells = 64

// sdfxSolid wraps an sdf.SDF3 to implement kernel.Solid. A nil SDF is the
// empty solid; sdfx has no distance field without a surface.
type sdfxSolid struct {
	s sdf.SDF3
}

// BoundingBox returns the axis-aligned bounding box.
func (s *sdfxSolid) BoundingBox() (min, max [3]float64) {
	if s.s == nil {
		return min, max
	}
	bb := s.s.BoundingBox()
	min = [3]float64{bb.Min.X, bb.Min.Y, bb.Min.Z}
	max = [3]float64{bb.Max.X, bb.Max.Y, bb.Max.Z}
	return min, max
}

// IsEmpty reports whether the solid has no distance field.
func (s *sdfxSolid) IsEmpty() bool {
	return s.s == nil
}

// SdfxKernel implements kernel.Kernel using sdfx.
type SdfxKernel struct {
	cells int
}

// New returns a new SdfxKernel meshing with DefaultMeshCells.
func New() *SdfxKernel {
	return NewWithCells(DefaultMeshCells)
}

// NewWithCells returns a SdfxKernel that meshes with the given number of
// marching cubes cells. Values below 8 select DefaultMeshCells.
func NewWithCells(cells int) *SdfxKernel {
	if cells < 8 {
		cells = DefaultMeshCells
	}
	return &SdfxKernel{cells: cells}
}

// unwrap extracts the underlying sdf.SDF3 from a kernel.Solid.
func unwrap(s kernel.Solid) sdf.SDF3 {
	if s == nil {
		return nil
	}
	return s.(*sdfxSolid).s
}

// wrap creates a kernel.Solid from an sdf.SDF3.
func wrap(s sdf.SDF3) kernel.Solid {
	return &sdfxSolid{s: s}
}

// Empty returns the empty solid.
func (k *SdfxKernel) Empty() kernel.Solid {
	return wrap(nil)
}

// Prism extrudes outline symmetrically about z=0. Outlines with fewer than
// three points or no area give an empty solid.
func (k *SdfxKernel) Prism(outline []v2.Vec, length float64) kernel.Solid {
	if len(outline) < 3 || length <= 0 {
		return k.Empty()
	}
	var area float64
	for i, p := range outline {
		q := outline[(i+1)%len(outline)]
		area += p.X*q.Y - q.X*p.Y
	}
	if math.Abs(area) < 1e-12 {
		return k.Empty()
	}
	s2, err := sdf.Polygon2D(outline)
	if err != nil {
		return k.Empty()
	}
	return wrap(sdf.Extrude3D(s2, length))
}

// Merge returns the union of two solids. Distance fields always resolve
// overlaps.
func (k *SdfxKernel) Merge(a, b kernel.Solid) kernel.Solid {
	s, _ := k.Union(a, b)
	return s
}

// Union returns the union of two solids.
func (k *SdfxKernel) Union(a, b kernel.Solid) (kernel.Solid, error) {
	sa, sb := unwrap(a), unwrap(b)
	switch {
	case sa == nil:
		return wrap(sb), nil
	case sb == nil:
		return wrap(sa), nil
	}
	return wrap(sdf.Union3D(sa, sb)), nil
}

// Difference returns the difference a - b.
func (k *SdfxKernel) Difference(a, b kernel.Solid) (kernel.Solid, error) {
	sa, sb := unwrap(a), unwrap(b)
	if sa == nil || sb == nil {
		return wrap(sa), nil
	}
	return wrap(sdf.Difference3D(sa, sb)), nil
}

// Intersection returns the intersection of two solids. Solids whose
// bounding boxes do not overlap intersect to the empty solid.
func (k *SdfxKernel) Intersection(a, b kernel.Solid) (kernel.Solid, error) {
	sa, sb := unwrap(a), unwrap(b)
	if sa == nil || sb == nil || !overlaps(sa.BoundingBox(), sb.BoundingBox()) {
		return k.Empty(), nil
	}
	return wrap(sdf.Intersect3D(sa, sb)), nil
}

func overlaps(a, b sdf.Box3) bool {
	return a.Min.X < b.Max.X && b.Min.X < a.Max.X &&
		a.Min.Y < b.Max.Y && b.Min.Y < a.Max.Y &&
		a.Min.Z < b.Max.Z && b.Min.Z < a.Max.Z
}

func (k *SdfxKernel) transform(s kernel.Solid, m sdf.M44) kernel.Solid {
	s3 := unwrap(s)
	if s3 == nil {
		return k.Empty()
	}
	return wrap(sdf.Transform3D(s3, m))
}

// Translate moves a solid by (x, y, z).
func (k *SdfxKernel) Translate(s kernel.Solid, x, y, z float64) kernel.Solid {
	return k.transform(s, sdf.Translate3d(v3.Vec{X: x, Y: y, Z: z}))
}

// Rotate rotates a solid by Euler angles (degrees) around X, Y, Z axes.
func (k *SdfxKernel) Rotate(s kernel.Solid, x, y, z float64) kernel.Solid {
	xRad := x * math.Pi / 180.0
	yRad := y * math.Pi / 180.0
	zRad := z * math.Pi / 180.0

	m := sdf.RotateZ(zRad).Mul(sdf.RotateY(yRad)).Mul(sdf.RotateX(xRad))
	return k.transform(s, m)
}

// Scale scales a solid uniformly about the origin.
func (k *SdfxKernel) Scale(s kernel.Solid, f float64) kernel.Solid {
	s3 := unwrap(s)
	if s3 == nil {
		return k.Empty()
	}
	return wrap(sdf.ScaleUniform3D(s3, f))
}

// ToMesh converts a solid to a triangle mesh using marching cubes.
func (k *SdfxKernel) ToMesh(s kernel.Solid) (*kernel.Mesh, error) {
	sdf3 := unwrap(s)
	if sdf3 == nil {
		return &kernel.Mesh{}, nil
	}

	renderer := render.NewMarchingCubesUniform(k.cells)
	triangles := render.ToTriangles(sdf3, renderer)

	numTri := len(triangles)
	numVerts := numTri * 3

	vertices := make([]float32, 0, numVerts*3)
	normals := make([]float32, 0, numVerts*3)
	indices := make([]uint32, 0, numVerts)

	for i, tri := range triangles {
		// Compute face normal.
		n := tri.Normal()
		nx := float32(n.X)
		ny := float32(n.Y)
		nz := float32(n.Z)

		for j := 0; j < 3; j++ {
			v := tri[j]
			vertices = append(vertices, float32(v.X), float32(v.Y), float32(v.Z))
			normals = append(normals, nx, ny, nz)
			indices = append(indices, uint32(i*3+j))
		}
	}

	return &kernel.Mesh{
		Vertices: vertices,
		Normals:  normals,
		Indices:  indices,
	}, nil
}
