// Package extrude turns sketch drawings into solids. Every outline of a
// drawing is normalized into the unit cube, swept into a prism along the
// local Z axis and unioned with its siblings; the drawing's solid is then
// rotated so its sweep runs along the drawing's axis.
package extrude

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/chazu/trisketch/pkg/kernel"
	"github.com/chazu/trisketch/pkg/sketch"
)

// Rotation returns the Euler rotation, in degrees about X, Y and Z, that
// turns a prism swept along local Z into one swept along axis a.
//
//	z: none          sketch u -> world X, v -> world Y
//	x: -90° about Y  sketch u -> world Z, v -> world Y
//	y: +90° about X  sketch u -> world X, v -> world Z
func Rotation(a sketch.Axis) [3]float64 {
	switch a {
	case sketch.AxisX:
		return [3]float64{0, -90, 0}
	case sketch.AxisY:
		return [3]float64{90, 0, 0}
	default:
		return [3]float64{}
	}
}

// Extruder builds drawing solids with one kernel and one configuration.
type Extruder struct {
	k   kernel.Kernel
	cfg sketch.Config
}

// New returns an Extruder using kernel k and the grid and sweep length of cfg.
func New(k kernel.Kernel, cfg sketch.Config) *Extruder {
	return &Extruder{k: k, cfg: cfg}
}

// Prisms returns one unrotated prism per outline of d, mirrored copies
// included. Degenerate outlines are dropped.
func (e *Extruder) Prisms(d sketch.Drawing) []kernel.Solid {
	prisms := lo.Map(d.Outlines(e.cfg.GridSize), func(p sketch.Polygon, _ int) kernel.Solid {
		return e.k.Prism(p.Normalize(e.cfg.GridSize), e.cfg.SweepLength)
	})
	empty := func(s kernel.Solid, _ int) bool { return s.IsEmpty() }
	kept := lo.Reject(prisms, empty)
	for _, s := range lo.Filter(prisms, empty) {
		kernel.Release(e.k, s)
	}
	return kept
}

// Extrude returns the solid of drawing d in the shared world frame. A
// drawing without usable outlines gives an empty solid.
func (e *Extruder) Extrude(d sketch.Drawing) (kernel.Solid, error) {
	prisms := e.Prisms(d)
	if len(prisms) == 0 {
		return e.k.Empty(), nil
	}

	acc := prisms[0]
	for i, p := range prisms[1:] {
		u, err := e.k.Union(acc, p)
		if err != nil {
			for _, rest := range prisms[i+1:] {
				kernel.Release(e.k, rest)
			}
			kernel.Release(e.k, acc)
			return nil, fmt.Errorf("extrude %s drawing: %w", d.Axis, err)
		}
		kernel.Release(e.k, acc)
		kernel.Release(e.k, p)
		acc = u
	}

	r := Rotation(d.Axis)
	if r == [3]float64{} {
		return acc, nil
	}
	rotated := e.k.Rotate(acc, r[0], r[1], r[2])
	kernel.Release(e.k, acc)
	return rotated, nil
}
