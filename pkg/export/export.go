// Package export writes display meshes to files.
package export

import (
	"errors"
	"fmt"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/trisketch/pkg/kernel"
)

// ErrEmptyMesh is returned when there is nothing to write.
var ErrEmptyMesh = errors.New("export: mesh has no triangles")

// Transform is a presentation transform: a uniform scale about the origin
// followed by a translation.
type Transform struct {
	Scale  float64
	Offset [3]float64
}

// Identity leaves vertices unchanged.
var Identity = Transform{Scale: 1}

// Matrix returns the transform as a 4x4 matrix.
func (t Transform) Matrix() sdf.M44 {
	s := t.Scale
	if s == 0 {
		s = 1
	}
	off := v3.Vec{X: t.Offset[0], Y: t.Offset[1], Z: t.Offset[2]}
	return sdf.Translate3d(off).Mul(sdf.Scale3d(v3.Vec{X: s, Y: s, Z: s}))
}

// Triangles converts mesh m into sdfx triangles with t applied.
func Triangles(m *kernel.Mesh, t Transform) []*sdf.Triangle3 {
	mat := t.Matrix()
	vertex := func(i uint32) v3.Vec {
		v := v3.Vec{
			X: float64(m.Vertices[i*3]),
			Y: float64(m.Vertices[i*3+1]),
			Z: float64(m.Vertices[i*3+2]),
		}
		return mat.MulPosition(v)
	}
	tris := make([]*sdf.Triangle3, 0, m.TriangleCount())
	for i := 0; i+2 < len(m.Indices); i += 3 {
		tris = append(tris, &sdf.Triangle3{
			vertex(m.Indices[i]),
			vertex(m.Indices[i+1]),
			vertex(m.Indices[i+2]),
		})
	}
	return tris
}

// WriteSTL writes mesh m as a binary STL file with t applied to every
// vertex. Pass Identity to keep normalized coordinates.
func WriteSTL(path string, m *kernel.Mesh, t Transform) error {
	if m == nil || m.IsEmpty() {
		return ErrEmptyMesh
	}
	if err := render.SaveSTL(path, Triangles(m, t)); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return nil
}
