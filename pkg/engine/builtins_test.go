package engine

import (
	"strings"
	"testing"

	"github.com/chazu/trisketch/pkg/sketch"
)

// ---------------------------------------------------------------------------
// Preprocessing tests
// ---------------------------------------------------------------------------

func TestPreprocessKeywords(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{
			name:   "simple keyword",
			input:  `(drawing :axis :x)`,
			expect: `(drawing "__kw_axis" "__kw_x")`,
		},
		{
			name:   "multiple keywords",
			input:  `(drawing :axis :z :mirror true)`,
			expect: `(drawing "__kw_axis" "__kw_z" "__kw_mirror" true)`,
		},
		{
			name:   "keyword in string preserved",
			input:  `"thing with :keyword inside"`,
			expect: `"thing with :keyword inside"`,
		},
		{
			name:   "assignment operator preserved",
			input:  `(def x := 10)`,
			expect: `(def x := 10)`,
		},
		{
			name:   "kebab-case identifier",
			input:  `(half-grid :side-a ref)`,
			expect: `(half_grid "__kw_side-a" ref)`,
		},
		{
			name:   "minus operator preserved",
			input:  `(- 64 16)`,
			expect: `(- 64 16)`,
		},
		{
			name:   "comment converted to // style",
			input:  `;; comment with :keyword`,
			expect: `// comment with :keyword`,
		},
		{
			name:   "single semicolon comment",
			input:  `; simple comment`,
			expect: `// simple comment`,
		},
		{
			name:   "hyphen in keyword preserved",
			input:  `:top-view`,
			expect: `"__kw_top-view"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := preprocessSource(tt.input)
			if got != tt.expect {
				t.Errorf("preprocessSource(%q) = %q, want %q", tt.input, got, tt.expect)
			}
		})
	}
}

// mustEval evaluates source and fails on any error.
func mustEval(t *testing.T, source string) *sketch.Model {
	t.Helper()
	m, evalErrs, err := NewEngine().Evaluate(source)
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("eval errors: %v", evalErrs)
	}
	if m == nil {
		t.Fatal("expected non-nil model")
	}
	return m
}

// evalErrors evaluates source and returns its eval errors, failing on a
// fatal error or on success.
func evalErrors(t *testing.T, source string) []EvalError {
	t.Helper()
	m, evalErrs, err := NewEngine().Evaluate(source)
	if err != nil {
		t.Fatalf("expected non-fatal eval error, got fatal: %v", err)
	}
	if m != nil {
		t.Fatal("expected nil model on eval error")
	}
	if len(evalErrs) == 0 {
		t.Fatal("expected at least one eval error")
	}
	return evalErrs
}

// ---------------------------------------------------------------------------
// Model tests
// ---------------------------------------------------------------------------

func TestSingleDrawing(t *testing.T) {
	m := mustEval(t, `
(model :color "1,0,0"
  (drawing :axis :x
    (polygon (pt 16 16) (pt 48 16) (pt 48 48) (pt 16 48))))
`)
	if m.Color != (sketch.Color{R: 1}) {
		t.Errorf("expected red, got %s", m.Color)
	}
	if len(m.Drawings) != 1 {
		t.Fatalf("expected 1 drawing, got %d", len(m.Drawings))
	}
	d := m.Drawings[0]
	if d.Axis != sketch.AxisX {
		t.Errorf("expected axis x, got %s", d.Axis)
	}
	if d.Mirror {
		t.Error("expected mirror=false")
	}
	if len(d.Polygons) != 1 || d.Polygons[0].Len() != 4 {
		t.Fatalf("expected one 4-point polygon, got %v", d.Polygons)
	}
	if p := d.Polygons[0].At(2); p != (sketch.Point{X: 48, Y: 48}) {
		t.Errorf("expected third point (48, 48), got %v", p)
	}
}

func TestPositionalAxes(t *testing.T) {
	m := mustEval(t, `
(model
  (drawing (polygon 0 0 64 0 64 64))
  (drawing)
  (drawing :mirror true (polygon 0 0 16 0 16 64 0 64)))
`)
	if m.Color != sketch.White {
		t.Errorf("expected default white, got %s", m.Color)
	}
	want := []sketch.Axis{sketch.AxisX, sketch.AxisY, sketch.AxisZ}
	if len(m.Drawings) != len(want) {
		t.Fatalf("expected %d drawings, got %d", len(want), len(m.Drawings))
	}
	for i, a := range want {
		if m.Drawings[i].Axis != a {
			t.Errorf("drawing %d: expected axis %s, got %s", i, a, m.Drawings[i].Axis)
		}
	}
	if len(m.Drawings[1].Polygons) != 0 {
		t.Errorf("expected empty y drawing, got %v", m.Drawings[1].Polygons)
	}
	if !m.Drawings[2].Mirror {
		t.Error("expected z drawing to be mirrored")
	}
}

func TestVariableReference(t *testing.T) {
	m := mustEval(t, `
(def sq (polygon (pt 16 16) (pt 48 16) (pt 48 48) (pt 16 48)))
(model :color (rgb 0 0.5 1)
  (drawing :axis :z sq)
  (drawing :axis :y sq))
`)
	if m.Color != (sketch.Color{G: 0.5, B: 1}) {
		t.Errorf("expected color 0,0.5,1, got %s", m.Color)
	}
	if len(m.Drawings) != 2 {
		t.Fatalf("expected 2 drawings, got %d", len(m.Drawings))
	}
	if m.Drawings[0].Axis != sketch.AxisZ || m.Drawings[1].Axis != sketch.AxisY {
		t.Errorf("expected axes z, y; got %s, %s", m.Drawings[0].Axis, m.Drawings[1].Axis)
	}
}

func TestArithmeticInPoints(t *testing.T) {
	m := mustEval(t, `
(def g 64)
(def half (/ g 2))
(model (drawing (polygon (pt 0 0) (pt half 0) (pt half (- g 8)))))
`)
	p := m.Drawings[0].Polygons[0]
	if p.At(2) != (sketch.Point{X: 32, Y: 56}) {
		t.Errorf("expected (32, 56), got %v", p.At(2))
	}
}

func TestPolygonFromList(t *testing.T) {
	m := mustEval(t, `(model (drawing (polygon (list (pt 0 0) (pt 10 0) (pt 0 10)))))`)
	if got := m.Drawings[0].Polygons[0].Len(); got != 3 {
		t.Errorf("expected 3 points, got %d", got)
	}
}

func TestPickerColor(t *testing.T) {
	m := mustEval(t, `(model :color (picker 255 200 0))`)
	want := sketch.ColorFromPicker(255, 200, 0)
	if m.Color != want {
		t.Errorf("expected %s, got %s", want, m.Color)
	}
}

func TestMirrorKeyword(t *testing.T) {
	m := mustEval(t, `(model (drawing :mirror :true) (drawing :mirror false))`)
	if !m.Drawings[0].Mirror {
		t.Error("expected :true to set mirror")
	}
	if m.Drawings[1].Mirror {
		t.Error("expected false to clear mirror")
	}
}

// ---------------------------------------------------------------------------
// Error tests
// ---------------------------------------------------------------------------

func TestBuiltinErrors(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		wantMsg string
	}{
		{"pt arity", `(pt 1)`, "pt requires exactly 2 arguments"},
		{"pt type", `(pt "a" 1)`, "pt: x"},
		{"odd coordinates", `(polygon 1 2 3)`, "odd number of coordinates"},
		{"bad axis", `(drawing :axis :w)`, "invalid axis"},
		{"bad mirror", `(drawing :mirror 3)`, "expected true or false"},
		{"non polygon in drawing", `(drawing (pt 1 2))`, "expected polygon"},
		{"non drawing in model", `(model (polygon 0 0 1 0 0 1))`, "expected drawing"},
		{"bad color", `(model :color "red")`, "model: color"},
		{"rgb out of range", `(rgb 2 0 0)`, "channels must be in [0,1]"},
		{"picker out of range", `(picker 300 0 0)`, "out of range"},
		{"too many drawings", `(model (drawing) (drawing) (drawing) (drawing))`, "out of range"},
		{"duplicate axis", `(model (drawing :axis :x) (drawing :axis :x))`, "already used"},
		{"two models", `(model) (model)`, "exactly one model"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := evalErrors(t, tt.source)
			if !strings.Contains(errs[0].Message, tt.wantMsg) {
				t.Errorf("message = %q, want containing %q", errs[0].Message, tt.wantMsg)
			}
		})
	}
}

func TestEmptySourceStillWorks(t *testing.T) {
	m := mustEval(t, "")
	if len(m.Drawings) != 0 {
		t.Errorf("expected empty model, got %d drawings", len(m.Drawings))
	}
}

func TestArithmeticStillWorks(t *testing.T) {
	m := mustEval(t, "(+ 1 2)")
	if len(m.Drawings) != 0 {
		t.Errorf("expected empty model, got %d drawings", len(m.Drawings))
	}
}
