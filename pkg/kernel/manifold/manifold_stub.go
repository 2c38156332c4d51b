//go:build !manifold

// Package manifold backs the "manifold" kernel choice with the Manifold C
// library. Without the manifold build tag only this stub is compiled and
// selecting the kernel fails with ErrUnavailable.
package manifold

import (
	"errors"

	"github.com/chazu/trisketch/pkg/kernel"
)

// ErrUnavailable is returned by New when trisketch was built without the
// Manifold library.
var ErrUnavailable = errors.New("manifold kernel not compiled in; rebuild with -tags=manifold or pick --kernel bsp")

// New always fails with ErrUnavailable.
func New() (kernel.Kernel, error) {
	return nil, ErrUnavailable
}
