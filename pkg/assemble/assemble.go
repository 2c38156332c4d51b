// Package assemble runs the solid pipeline for one model: every drawing is
// extruded along its axis, the drawing solids are intersected left to right
// and the result is meshed, colored and given its presentation transform.
package assemble

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/chazu/trisketch/pkg/extrude"
	"github.com/chazu/trisketch/pkg/kernel"
	"github.com/chazu/trisketch/pkg/sketch"
)

// Result is the output of one Assemble call.
type Result struct {
	ID       string        // request identifier, also the mesh name
	Mesh     *kernel.Mesh  // nil when no drawing contributes geometry
	Color    sketch.Color  // material color
	Position [3]float64    // presentation offset
	Scale    float64       // uniform presentation scale
	Echo     string        // the input model re-serialized
	Axes     []sketch.Axis // drawings that contributed, in fold order
}

// HasSolid reports whether any drawing contributed geometry. A solid whose
// intersection is empty still has a (empty) mesh.
func (r *Result) HasSolid() bool {
	return r.Mesh != nil
}

type contribution struct {
	axis  sketch.Axis
	solid kernel.Solid
}

// Assemble builds the solid for m with kernel k. Drawings without usable
// outlines are skipped; if none is left the result has no mesh. Intermediate
// solids are released as soon as they are folded.
func Assemble(m sketch.Model, k kernel.Kernel, cfg sketch.Config) (*Result, error) {
	id := uuid.NewString()
	log := Logger().With("request", id)

	if err := sketch.Check(m); err != nil {
		return nil, err
	}
	for _, w := range sketch.Validate(m, cfg.GridSize).Warnings {
		log.Warn("model warning", "finding", w.Error())
	}

	snapshot := m.Clone()
	res := &Result{
		ID:       id,
		Color:    snapshot.Color,
		Position: cfg.DisplayOffset,
		Scale:    cfg.DisplayScale,
		Echo:     snapshot.Echo(),
	}

	parts, err := extrudeAll(snapshot, k, cfg, log)
	if err != nil {
		return nil, err
	}
	if len(parts) == 0 {
		log.Debug("no drawing contributes geometry")
		return res, nil
	}
	res.Axes = lo.Map(parts, func(c contribution, _ int) sketch.Axis { return c.axis })

	solid, err := fold(k, parts, log)
	if err != nil {
		return nil, err
	}
	mesh, err := k.ToMesh(solid)
	kernel.Release(k, solid)
	if err != nil {
		return nil, fmt.Errorf("assemble: mesh: %w", err)
	}
	mesh.Name = id
	mesh.Color = res.Color.Float32()
	res.Mesh = mesh

	log.Info("assembled model",
		"axes", len(res.Axes),
		"triangles", mesh.TriangleCount(),
		"empty", mesh.IsEmpty(),
	)
	return res, nil
}

func extrudeAll(m sketch.Model, k kernel.Kernel, cfg sketch.Config, log *slog.Logger) ([]contribution, error) {
	ex := extrude.New(k, cfg)
	var parts []contribution
	for _, d := range m.Drawings {
		if len(d.Outlines(cfg.GridSize)) == 0 {
			log.Debug("skipping empty drawing", "axis", d.Axis)
			continue
		}
		s, err := ex.Extrude(d)
		if err != nil {
			releaseAll(k, parts)
			return nil, fmt.Errorf("assemble: %w", err)
		}
		if s.IsEmpty() {
			log.Debug("skipping degenerate drawing", "axis", d.Axis)
			kernel.Release(k, s)
			continue
		}
		log.Debug("extruded drawing", "axis", d.Axis, "outlines", len(d.Outlines(cfg.GridSize)))
		parts = append(parts, contribution{axis: d.Axis, solid: s})
	}
	return parts, nil
}

// fold intersects the contributions left to right. Once the running result
// is empty the remaining solids cannot add anything and are only released.
func fold(k kernel.Kernel, parts []contribution, log *slog.Logger) (kernel.Solid, error) {
	acc := parts[0].solid
	for i, p := range parts[1:] {
		if acc.IsEmpty() {
			log.Debug("intersection already empty", "skipped", p.axis)
			kernel.Release(k, p.solid)
			continue
		}
		next, err := k.Intersection(acc, p.solid)
		kernel.Release(k, acc)
		kernel.Release(k, p.solid)
		if err != nil {
			releaseAll(k, parts[i+2:])
			return nil, fmt.Errorf("assemble: intersect %s drawing: %w", p.axis, err)
		}
		log.Debug("intersected drawing", "axis", p.axis, "empty", next.IsEmpty())
		acc = next
	}
	return acc, nil
}

func releaseAll(k kernel.Kernel, parts []contribution) {
	for _, p := range parts {
		kernel.Release(k, p.solid)
	}
}
