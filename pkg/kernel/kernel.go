// Package kernel defines the abstract geometry kernel interface.
// Implementations (bsp, sdfx, manifold) provide prism construction and
// boolean operations behind this interface. The kernel abstraction
// allows swapping backends without changing the rest of the pipeline.
package kernel

import (
	"errors"

	v2 "github.com/deadsy/sdfx/vec/v2"
)

// ErrInvalidSolid reports a solid that violates the boolean operations'
// precondition: not closed, inside out, or carrying non-finite coordinates.
// No valid sketch can produce one, so it signals a pipeline bug rather than
// bad user input.
var ErrInvalidSolid = errors.New("invalid input solid")

// Solid is an opaque handle to a geometry kernel solid.
// Implementations wrap their internal representation.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [3]float64)
	// IsEmpty reports whether the solid encloses no volume.
	IsEmpty() bool
}

// Kernel is the abstract geometry kernel interface.
type Kernel interface {
	// Empty returns a solid with no geometry.
	Empty() Solid

	// Prism sweeps a closed 2D outline along local Z from -length/2 to
	// +length/2 and caps both ends. Degenerate outlines yield an empty solid.
	Prism(outline []v2.Vec, length float64) Solid

	// Merge combines two solids without resolving overlaps.
	Merge(a, b Solid) Solid

	// Boolean operations
	Union(a, b Solid) (Solid, error)
	Difference(a, b Solid) (Solid, error)
	Intersection(a, b Solid) (Solid, error)

	// Transforms
	Translate(s Solid, x, y, z float64) Solid
	Rotate(s Solid, x, y, z float64) Solid // Euler angles in degrees
	Scale(s Solid, k float64) Solid        // uniform, k > 0

	// Mesh output
	ToMesh(s Solid) (*Mesh, error)
}

// Releaser is implemented by kernels whose solids hold memory outside the Go
// heap. Release frees a solid that will not be used again.
type Releaser interface {
	Release(s Solid)
}

// Release frees s if the kernel manages solid memory itself. It is a no-op
// for garbage collected kernels and for nil solids.
func Release(k Kernel, s Solid) {
	if s == nil {
		return
	}
	if r, ok := k.(Releaser); ok {
		r.Release(s)
	}
}
