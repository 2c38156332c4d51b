//go:build manifold

package manifold

import (
	"math"
	"testing"

	"github.com/chazu/trisketch/pkg/kernel"
	v2 "github.com/deadsy/sdfx/vec/v2"
)

func mustNew(t *testing.T) kernel.Kernel {
	t.Helper()
	k, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return k
}

func square(h float64) []v2.Vec {
	return []v2.Vec{{X: -h, Y: -h}, {X: h, Y: -h}, {X: h, Y: h}, {X: -h, Y: h}}
}

func assertBounds(t *testing.T, s kernel.Solid, wantMin, wantMax [3]float64) {
	t.Helper()
	min, max := s.BoundingBox()
	for i := 0; i < 3; i++ {
		if math.Abs(min[i]-wantMin[i]) > 1e-6 {
			t.Errorf("min[%d] = %f, want %f", i, min[i], wantMin[i])
		}
		if math.Abs(max[i]-wantMax[i]) > 1e-6 {
			t.Errorf("max[%d] = %f, want %f", i, max[i], wantMax[i])
		}
	}
}

func TestPrism(t *testing.T) {
	k := mustNew(t)
	s := k.Prism(square(0.25), 1)
	if s.IsEmpty() {
		t.Fatal("Prism() is empty")
	}
	// The prism is centered on z=0.
	assertBounds(t, s, [3]float64{-0.25, -0.25, -0.5}, [3]float64{0.25, 0.25, 0.5})

	mesh, err := k.ToMesh(s)
	if err != nil {
		t.Fatalf("ToMesh() error = %v", err)
	}
	if math.Abs(mesh.Volume()-0.25) > 1e-5 {
		t.Errorf("mesh Volume() = %f, want 0.25", mesh.Volume())
	}
}

func TestIntersection(t *testing.T) {
	k := mustNew(t)
	z := k.Prism(square(0.5), 1)
	x := k.Rotate(k.Prism(square(0.25), 1), 0, -90, 0)

	got, err := k.Intersection(z, x)
	if err != nil {
		t.Fatalf("Intersection() error = %v", err)
	}
	assertBounds(t, got, [3]float64{-0.5, -0.25, -0.25}, [3]float64{0.5, 0.25, 0.25})

	far := k.Translate(x, 10, 0, 0)
	empty, err := k.Intersection(z, far)
	if err != nil {
		t.Fatalf("Intersection() error = %v", err)
	}
	if !empty.IsEmpty() {
		t.Error("disjoint Intersection() is not empty")
	}
	mesh, err := k.ToMesh(empty)
	if err != nil {
		t.Fatal(err)
	}
	if !mesh.IsEmpty() {
		t.Error("mesh of empty solid is not empty")
	}
}

func TestUnionDifference(t *testing.T) {
	k := mustNew(t)
	a := k.Prism(square(0.5), 1)
	b := k.Translate(k.Prism(square(0.5), 1), 0.5, 0, 0)

	u, err := k.Union(a, b)
	if err != nil {
		t.Fatalf("Union() error = %v", err)
	}
	assertBounds(t, u, [3]float64{-0.5, -0.5, -0.5}, [3]float64{1, 0.5, 0.5})

	d, err := k.Difference(a, b)
	if err != nil {
		t.Fatalf("Difference() error = %v", err)
	}
	assertBounds(t, d, [3]float64{-0.5, -0.5, -0.5}, [3]float64{0, 0.5, 0.5})
}

func TestScale(t *testing.T) {
	k := mustNew(t)
	s := k.Scale(k.Prism(square(0.5), 1), 8)
	assertBounds(t, s, [3]float64{-4, -4, -4}, [3]float64{4, 4, 4})
}

func TestRelease(t *testing.T) {
	k := mustNew(t)
	s := k.Prism(square(0.5), 1)
	kernel.Release(k, s)
	if !s.IsEmpty() {
		t.Error("released solid still holds geometry")
	}
	// Releasing twice is harmless.
	kernel.Release(k, s)
}
