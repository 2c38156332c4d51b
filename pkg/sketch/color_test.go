package sketch

import "testing"

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    Color
		wantErr bool
	}{
		{"1,0,0", Color{1, 0, 0}, false},
		{"0.5, 0.25 ,1", Color{0.5, 0.25, 1}, false},
		{"1,0", Color{}, true},
		{"a,b,c", Color{}, true},
		{"", Color{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseColor(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestColorString(t *testing.T) {
	if got := (Color{1, 0, 0}).String(); got != "1,0,0" {
		t.Errorf("String() = %q, want %q", got, "1,0,0")
	}
	if got := (Color{0.5, 0.25, 0.75}).String(); got != "0.5,0.25,0.75" {
		t.Errorf("String() = %q", got)
	}
}

func TestColorFromPicker(t *testing.T) {
	c := ColorFromPicker(255, 200, 0)
	if c.R != 0.99 || c.G != 0.78 || c.B != 0 {
		t.Errorf("ColorFromPicker(255,200,0) = %v, want {0.99 0.78 0}", c)
	}
	if !c.Valid() {
		t.Error("picker color should be valid")
	}
}

func TestColorValid(t *testing.T) {
	if (Color{1.5, 0, 0}).Valid() {
		t.Error("Valid() = true for R=1.5")
	}
	if (Color{0, -0.1, 0}).Valid() {
		t.Error("Valid() = true for G=-0.1")
	}
	if !White.Valid() {
		t.Error("White should be valid")
	}
}
