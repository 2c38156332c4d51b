package main

import (
	"errors"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/chazu/trisketch/pkg/assemble"
	"github.com/chazu/trisketch/pkg/engine"
	"github.com/chazu/trisketch/pkg/kernel"
	"github.com/chazu/trisketch/pkg/sketch"
	"github.com/samber/lo"
)

// App is the display front-end binding. Every request gets a generation
// number; only the newest request may replace the displayed mesh.
type App struct {
	engine *engine.Engine
	kernel kernel.Kernel
	cfg    sketch.Config

	mu         sync.Mutex
	generation uint64
	current    *kernel.Mesh
}

// ErrorData is a JSON-serializable error or warning for the front-end.
type ErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// RenderResult is the full result returned to the front-end. Position and
// Scale are the presentation transform; the buffers are not transformed.
type RenderResult struct {
	ID         string      `json:"id"`
	Vertices   []float32   `json:"vertices"`
	Normals    []float32   `json:"normals"`
	Indices    []uint32    `json:"indices"`
	Color      [3]float32  `json:"color"`
	Position   [3]float64  `json:"position"`
	Scale      float64     `json:"scale"`
	Axes       []string    `json:"axes"`
	Echo       string      `json:"echo"`
	Solid      bool        `json:"solid"`
	Superseded bool        `json:"superseded,omitempty"`
	Errors     []ErrorData `json:"errors"`
	Warnings   []ErrorData `json:"warnings"`
}

// NewApp creates an App with the default configuration and the BSP kernel.
func NewApp() *App {
	a, err := NewAppWithConfig(sketch.DefaultConfig())
	if err != nil {
		// the default kernel is pure Go and always available
		panic(err)
	}
	return a
}

// NewAppWithConfig creates an App using the kernel named in cfg.
func NewAppWithConfig(cfg sketch.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	k, err := assemble.NewKernel(cfg)
	if err != nil {
		return nil, err
	}
	return &App{
		engine: engine.NewEngine(),
		kernel: k,
		cfg:    cfg,
	}, nil
}

func newResult() RenderResult {
	return RenderResult{
		Vertices: []float32{},
		Normals:  []float32{},
		Indices:  []uint32{},
		Axes:     []string{},
		Errors:   []ErrorData{},
		Warnings: []ErrorData{},
	}
}

func failed(msg string) RenderResult {
	r := newResult()
	r.Errors = append(r.Errors, ErrorData{Message: msg})
	return r
}

// begin starts a new request and returns its generation.
func (a *App) begin() uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.generation++
	return a.generation
}

// Render assembles a model given in the JSON wire format.
func (a *App) Render(modelJSON string) RenderResult {
	gen := a.begin()
	m, err := sketch.ParseModel([]byte(modelJSON))
	if err != nil {
		return failed(err.Error())
	}
	return a.render(gen, m)
}

// Evaluate runs a sketch script and assembles the model it defines.
func (a *App) Evaluate(script string) RenderResult {
	gen := a.begin()

	m, evalErrs, err := a.engine.Evaluate(script)
	if err != nil {
		if errors.Is(err, engine.ErrSuperseded) {
			r := newResult()
			r.Superseded = true
			return r
		}
		log.Printf("Evaluate fatal error: %v", err)
		return failed(err.Error())
	}
	if len(evalErrs) > 0 {
		r := newResult()
		for _, e := range evalErrs {
			r.Errors = append(r.Errors, ErrorData{Line: e.Line, Col: e.Col, Message: e.Message})
		}
		return r
	}
	return a.render(gen, *m)
}

// Open renders a file: .json files are parsed as models, anything else is
// evaluated as a sketch script.
func (a *App) Open(path string) RenderResult {
	data, err := os.ReadFile(path)
	if err != nil {
		return failed(err.Error())
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return a.Render(string(data))
	}
	return a.Evaluate(string(data))
}

// Current returns the mesh of the newest completed request, or nil.
func (a *App) Current() *kernel.Mesh {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.current
}

func (a *App) render(gen uint64, m sketch.Model) RenderResult {
	res, err := assemble.Assemble(m, a.kernel, a.cfg)
	if err != nil {
		if !errors.Is(err, sketch.ErrInvalidModel) {
			log.Printf("Render failed: %v", err)
		}
		return failed(err.Error())
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if gen != a.generation {
		if res.Mesh != nil {
			res.Mesh.Reset()
		}
		r := newResult()
		r.ID = res.ID
		r.Superseded = true
		return r
	}
	if a.current != nil && a.current != res.Mesh {
		a.current.Reset()
	}
	a.current = res.Mesh

	r := newResult()
	r.ID = res.ID
	r.Color = res.Color.Float32()
	r.Position = res.Position
	r.Scale = res.Scale
	r.Echo = res.Echo
	r.Axes = lo.Map(res.Axes, func(ax sketch.Axis, _ int) string { return ax.String() })
	for _, w := range sketch.Validate(m, a.cfg.GridSize).Warnings {
		r.Warnings = append(r.Warnings, ErrorData{Message: w.Error()})
	}
	if res.HasSolid() {
		r.Solid = true
		if !res.Mesh.IsEmpty() {
			r.Vertices = res.Mesh.Vertices
			r.Normals = res.Mesh.Normals
			r.Indices = res.Mesh.Indices
		}
	}
	return r
}
