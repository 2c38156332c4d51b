package assemble

import (
	"fmt"

	"github.com/chazu/trisketch/pkg/kernel"
	"github.com/chazu/trisketch/pkg/kernel/bsp"
	"github.com/chazu/trisketch/pkg/kernel/manifold"
	"github.com/chazu/trisketch/pkg/kernel/sdfx"
	"github.com/chazu/trisketch/pkg/sketch"
)

// NewKernel returns the backend named by cfg.Kernel, set up with the
// configured tolerance and mesh resolution.
func NewKernel(cfg sketch.Config) (kernel.Kernel, error) {
	switch cfg.Kernel {
	case "", "bsp":
		return bsp.NewWithEpsilon(cfg.Epsilon), nil
	case "sdfx":
		return sdfx.NewWithCells(cfg.MeshCells), nil
	case "manifold":
		k, err := manifold.New()
		if err != nil {
			return nil, fmt.Errorf("assemble: %w", err)
		}
		return k, nil
	default:
		return nil, fmt.Errorf("assemble: unknown kernel %q", cfg.Kernel)
	}
}
