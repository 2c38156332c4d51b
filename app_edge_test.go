package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/chazu/trisketch/pkg/sketch"
)

func mustModel(t *testing.T, src string) sketch.Model {
	t.Helper()
	m, err := sketch.ParseModel([]byte(src))
	if err != nil {
		t.Fatalf("ParseModel() error = %v", err)
	}
	return m
}

// ---------------------------------------------------------------------------
// 1. Empty editor: comments and whitespace only -> no solid, no errors.
// ---------------------------------------------------------------------------

func TestE2ECommentsAndWhitespace(t *testing.T) {
	app := NewApp()
	for _, src := range []string{"   \n\t  ", ";; just a comment", "; one\n; two\n"} {
		result := app.Evaluate(src)
		if len(result.Errors) != 0 {
			t.Errorf("%q: unexpected errors %v", src, result.Errors)
		}
		if result.Solid {
			t.Errorf("%q: expected no solid", src)
		}
		if result.Errors == nil || result.Warnings == nil || result.Vertices == nil {
			t.Errorf("%q: slices should be non-nil", src)
		}
	}
}

// ---------------------------------------------------------------------------
// 2. Syntax and runtime errors carry a message and, when known, a line.
// ---------------------------------------------------------------------------

func TestE2ESyntaxErrorWithLineInfo(t *testing.T) {
	app := NewApp()

	source := "(+ 1 2)\n(model (drawing"
	result := app.Evaluate(source)

	if len(result.Errors) == 0 {
		t.Fatal("expected at least one eval error for unmatched parens")
	}
	e := result.Errors[0]
	if e.Message == "" {
		t.Error("syntax error should have a non-empty message")
	}
	if e.Line < 0 {
		t.Errorf("line should not be negative, got %d", e.Line)
	}
}

func TestE2EUndefinedFunction(t *testing.T) {
	app := NewApp()
	result := app.Evaluate(`(model (drawing (undefined-shape 1 2 3)))`)
	if len(result.Errors) == 0 {
		t.Fatal("expected an error for an undefined function")
	}
}

// ---------------------------------------------------------------------------
// 3. Degenerate drawings are skipped, not errors.
// ---------------------------------------------------------------------------

func TestE2EDegenerateDrawing(t *testing.T) {
	app := NewApp()
	// a zero-area sliver on x, a real square on z
	source := `(model
  (drawing :axis :x (polygon 0 0 32 32 64 64))
  (drawing :axis :z (polygon 0 0 64 0 64 64 0 64)))`
	result := app.Evaluate(source)
	requireNoErrors(t, result)

	if len(result.Axes) != 1 || result.Axes[0] != "z" {
		t.Errorf("axes = %v, want [z]", result.Axes)
	}
	if len(result.Warnings) == 0 {
		t.Error("expected a warning for the degenerate polygon")
	}
	assertVolume(t, app, 1)
}

func TestE2EDisjointDrawings(t *testing.T) {
	app := NewApp()
	// the x drawing fills the back half in z, the y drawing the front half
	source := `(model
  (drawing :axis :x (polygon 0 0 16 0 16 64 0 64))
  (drawing :axis :y (polygon 0 48 64 48 64 64 0 64)))`
	result := app.Evaluate(source)
	requireNoErrors(t, result)

	if !result.Solid {
		t.Fatal("both drawings contribute, expected a solid")
	}
	if len(result.Indices) != 0 {
		t.Errorf("expected an empty mesh, got %d triangles", len(result.Indices)/3)
	}
}

// ---------------------------------------------------------------------------
// 4. Points outside the grid still build, with a warning.
// ---------------------------------------------------------------------------

func TestE2EOutOfGridPoints(t *testing.T) {
	app := NewApp()
	result := app.Evaluate(`(model (drawing :axis :z (polygon -32 0 96 0 96 64 -32 64)))`)
	requireNoErrors(t, result)
	if len(result.Warnings) == 0 {
		t.Error("expected an out-of-grid warning")
	}
	assertVolume(t, app, 2)
}

// ---------------------------------------------------------------------------
// 5. Rapid evaluation: no panics, and the current mesh always belongs to
//    the newest request.
// ---------------------------------------------------------------------------

func TestE2ERapidEvaluationAlternating(t *testing.T) {
	app := NewApp()

	sources := []string{
		`(model (drawing (polygon 0 0 64 0 64 64)))`,
		`(model (drawing`,
		``,
		`(model :color "9,9,9")`,
		`(model (drawing (polygon 0 0 64 0 64 64 0 64)) (drawing (polygon 0 0 64 0 64 64 0 64)))`,
		`(+ 1 2)`,
		`;; just a comment`,
		`(undefined-func 1 2 3)`,
		`(model (drawing :axis :z (polygon 16 16 48 16 48 48 16 48)))`,
	}

	for i, source := range sources {
		func() {
			defer func() {
				if r := recover(); r != nil {
					t.Errorf("iteration %d panicked on source %q: %v", i, source, r)
				}
			}()
			app.Evaluate(source)
		}()
	}
	// a 32x32 square on a 64 grid, swept over the unit length
	assertVolume(t, app, 0.25)
}

func TestE2ELastRequestWins(t *testing.T) {
	app := NewApp()

	first := app.Render(`{"drawings": [{"polygons": [[[0,0],[64,0],[64,64],[0,64]]]}]}`)
	requireNoErrors(t, first)
	firstMesh := app.Current()

	second := app.Render(`{"drawings": [{"axis": "z", "polygons": [[[0,0],[32,0],[32,64],[0,64]]]}]}`)
	requireNoErrors(t, second)

	if app.Current() == firstMesh {
		t.Fatal("current mesh was not replaced")
	}
	if !firstMesh.IsEmpty() {
		t.Error("replaced mesh should be released")
	}
	// the previous result keeps its own buffers
	if len(first.Indices) == 0 {
		t.Error("previous result lost its buffers")
	}
	assertVolume(t, app, 0.5)
}

func TestE2ESupersededRender(t *testing.T) {
	app := NewApp()
	gen := app.begin()
	app.begin()

	result := app.render(gen, mustModel(t, `{"drawings": [{"polygons": [[[0,0],[64,0],[64,64]]]}]}`))
	if !result.Superseded {
		t.Fatal("expected the stale request to be superseded")
	}
	if result.Solid || len(result.Indices) != 0 {
		t.Error("a superseded result must not carry a mesh")
	}
	if app.Current() != nil {
		t.Error("a superseded request must not replace the current mesh")
	}
}

func TestE2EConcurrentRenders(t *testing.T) {
	app := NewApp()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			w := 8 * (i + 1)
			src := fmt.Sprintf(`{"drawings": [{"axis": "z", "polygons": [[[0,0],[%d,0],[%d,64],[0,64]]]}]}`, w, w)
			result := app.Render(src)
			if len(result.Errors) > 0 {
				t.Errorf("render %d: %v", i, result.Errors)
			}
		}(i)
	}
	wg.Wait()
	if m := app.Current(); m == nil || m.IsEmpty() {
		t.Error("expected the newest completed render to be current")
	}
}

// ---------------------------------------------------------------------------
// 6. Open errors.
// ---------------------------------------------------------------------------

func TestE2EOpenMissingFile(t *testing.T) {
	app := NewApp()
	result := app.Open(filepath.Join(t.TempDir(), "missing.json"))
	if len(result.Errors) == 0 {
		t.Fatal("expected an error for a missing file")
	}
	if !strings.Contains(result.Errors[0].Message, "missing.json") {
		t.Errorf("error %q should name the file", result.Errors[0].Message)
	}
}

func TestE2EConfiguredKernel(t *testing.T) {
	cfg := sketch.DefaultConfig()
	cfg.Kernel = "sdfx"
	cfg.MeshCells = 32
	app, err := NewAppWithConfig(cfg)
	if err != nil {
		t.Fatalf("NewAppWithConfig() error = %v", err)
	}
	result := app.Open("examples/cube.json")
	requireNoErrors(t, result)
	if len(result.Indices) == 0 {
		t.Error("expected a mesh from the sdfx kernel")
	}

	cfg.Kernel = "nope"
	if _, err := NewAppWithConfig(cfg); err == nil {
		t.Error("expected an error for an unknown kernel")
	}
}
