package sketch

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateCleanModel(t *testing.T) {
	m := Model{
		Color: White,
		Drawings: []Drawing{
			{Axis: AxisX, Polygons: []Polygon{square(16, 16, 48, 48)}},
			{Axis: AxisY},
			{Axis: AxisZ, Polygons: []Polygon{{}}},
		},
	}
	res := Validate(m, 64)
	if len(res.Errors) != 0 || len(res.Warnings) != 0 {
		t.Errorf("Validate() = %+v, want no findings", res)
	}
	if err := Check(m); err != nil {
		t.Errorf("Check() error = %v", err)
	}
}

func TestValidateDegenerateWarnings(t *testing.T) {
	m := Model{
		Color: White,
		Drawings: []Drawing{
			{Axis: AxisZ, Polygons: []Polygon{
				{{1, 1}, {2, 2}},
				{{0, 0}, {8, 8}, {16, 16}},
				square(60, 60, 70, 70),
			}},
		},
	}
	res := Validate(m, 64)
	if len(res.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
	if len(res.Warnings) != 3 {
		t.Fatalf("got %d warnings, want 3: %v", len(res.Warnings), res.Warnings)
	}
	if res.Warnings[2].Polygon != 2 || !strings.Contains(res.Warnings[2].Message, "grid") {
		t.Errorf("third warning = %v, want off-grid warning on polygon 2", res.Warnings[2])
	}
	if err := Check(m); err != nil {
		t.Errorf("warnings must not fail Check(): %v", err)
	}
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name  string
		model Model
		want  string
	}{
		{
			name:  "too many drawings",
			model: Model{Color: White, Drawings: make([]Drawing, 4)},
			want:  "at most 3",
		},
		{
			name:  "duplicate axis",
			model: Model{Color: White, Drawings: []Drawing{{Axis: AxisY}, {Axis: AxisY}}},
			want:  "already used",
		},
		{
			name:  "unknown axis",
			model: Model{Color: White, Drawings: []Drawing{{Axis: Axis(9)}}},
			want:  "unknown axis",
		},
		{
			name:  "bad color",
			model: Model{Color: Color{0, 0, 3}},
			want:  "outside [0,1]",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Check(tt.model)
			if err == nil {
				t.Fatal("Check() error = nil")
			}
			if !errors.Is(err, ErrInvalidModel) {
				t.Errorf("error %v does not wrap ErrInvalidModel", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestValidationErrorString(t *testing.T) {
	e := ValidationError{Drawing: 1, Polygon: 2, Message: "boom", Severity: SeverityWarning}
	if got := e.Error(); got != "[warning] drawing 1 polygon 2: boom" {
		t.Errorf("Error() = %q", got)
	}
	e = ValidationError{Drawing: -1, Polygon: -1, Message: "boom"}
	if got := e.Error(); got != "[error] boom" {
		t.Errorf("Error() = %q", got)
	}
}
