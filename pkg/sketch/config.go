package sketch

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Default pipeline settings.
const (
	DefaultGridSize     = 64
	DefaultSweepLength  = 1.0
	DefaultEpsilon      = 1e-5
	DefaultDisplayScale = 8
	DefaultKernel       = "bsp"
	DefaultMeshCells    = 64
)

// Config holds the settings shared by every stage of the pipeline.
type Config struct {
	GridSize      float64    `yaml:"grid_size"`      // editor grid extent in units
	SweepLength   float64    `yaml:"sweep_length"`   // prism length in normalized space
	Epsilon       float64    `yaml:"epsilon"`        // CSG plane tolerance
	DisplayScale  float64    `yaml:"display_scale"`  // uniform presentation scale
	DisplayOffset [3]float64 `yaml:"display_offset"` // presentation position
	Kernel        string     `yaml:"kernel"`         // "bsp", "sdfx" or "manifold"
	MeshCells     int        `yaml:"mesh_cells"`     // marching cubes resolution for sdfx
}

// DefaultConfig returns the canonical settings: a 64 unit grid swept over a
// unit length, displayed 8x larger and lifted 4 units.
func DefaultConfig() Config {
	return Config{
		GridSize:      DefaultGridSize,
		SweepLength:   DefaultSweepLength,
		Epsilon:       DefaultEpsilon,
		DisplayScale:  DefaultDisplayScale,
		DisplayOffset: [3]float64{0, 4, 0},
		Kernel:        DefaultKernel,
		MeshCells:     DefaultMeshCells,
	}
}

// ParseConfig overlays a YAML document on the defaults.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads a YAML config file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return ParseConfig(data)
}

// Validate checks that every setting is usable.
func (c Config) Validate() error {
	if c.GridSize <= 0 {
		return fmt.Errorf("config: grid_size must be positive, got %g", c.GridSize)
	}
	if c.SweepLength <= 0 {
		return fmt.Errorf("config: sweep_length must be positive, got %g", c.SweepLength)
	}
	if c.Epsilon <= 0 || c.Epsilon >= c.SweepLength {
		return fmt.Errorf("config: epsilon must be in (0, sweep_length), got %g", c.Epsilon)
	}
	if c.DisplayScale <= 0 {
		return fmt.Errorf("config: display_scale must be positive, got %g", c.DisplayScale)
	}
	switch c.Kernel {
	case "bsp", "sdfx", "manifold":
	default:
		return fmt.Errorf("config: unknown kernel %q", c.Kernel)
	}
	if c.MeshCells < 8 {
		return fmt.Errorf("config: mesh_cells must be at least 8, got %d", c.MeshCells)
	}
	return nil
}
