package sketch

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfigValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() error = %v", err)
	}
	if cfg.GridSize != 64 || cfg.SweepLength != 1 || cfg.DisplayScale != 8 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.DisplayOffset != [3]float64{0, 4, 0} {
		t.Errorf("DisplayOffset = %v, want [0 4 0]", cfg.DisplayOffset)
	}
}

func TestParseConfigOverlay(t *testing.T) {
	cfg, err := ParseConfig([]byte("grid_size: 256\nkernel: sdfx\ndisplay_offset: [1, 2, 3]\n"))
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.GridSize != 256 {
		t.Errorf("GridSize = %v, want 256", cfg.GridSize)
	}
	if cfg.Kernel != "sdfx" {
		t.Errorf("Kernel = %q, want sdfx", cfg.Kernel)
	}
	if cfg.DisplayOffset != [3]float64{1, 2, 3} {
		t.Errorf("DisplayOffset = %v", cfg.DisplayOffset)
	}
	// Untouched keys keep their defaults.
	if cfg.SweepLength != DefaultSweepLength || cfg.Epsilon != DefaultEpsilon {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestParseConfigRejects(t *testing.T) {
	tests := []string{
		"grid_size: -1",
		"sweep_length: 0",
		"epsilon: 2",
		"kernel: voxel",
		"mesh_cells: 2",
		"display_scale: 0",
		"grid_size: [",
	}
	for _, in := range tests {
		t.Run(in, func(t *testing.T) {
			if _, err := ParseConfig([]byte(in)); err == nil {
				t.Errorf("ParseConfig(%q) error = nil", in)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trisketch.yaml")
	if err := os.WriteFile(path, []byte("display_scale: 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.DisplayScale != 2 {
		t.Errorf("DisplayScale = %v, want 2", cfg.DisplayScale)
	}
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadConfig(missing) error = nil")
	}
}
