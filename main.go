package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/chazu/trisketch/pkg/assemble"
	"github.com/chazu/trisketch/pkg/sketch"
	"github.com/spf13/cobra"
)

var (
	configPath string
	kernelName string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "trisketch",
	Short: "Build solids from three orthographic sketches",
	Long: `trisketch sweeps up to three 2D drawings along the x, y and z axes and
intersects the prisms into one solid. Models are read from JSON files or
sketch scripts (.tsk).`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		assemble.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file")
	rootCmd.PersistentFlags().StringVar(&kernelName, "kernel", "", "geometry kernel: bsp, sdfx or manifold")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log pipeline details")
}

// loadConfig reads --config and applies --kernel on top of it.
func loadConfig() (sketch.Config, error) {
	cfg := sketch.DefaultConfig()
	if configPath != "" {
		var err error
		if cfg, err = sketch.LoadConfig(configPath); err != nil {
			return sketch.Config{}, err
		}
	}
	if kernelName != "" {
		cfg.Kernel = kernelName
	}
	return cfg, cfg.Validate()
}

// openFile renders path with a fresh App and turns result errors into one
// error.
func openFile(path string) (*App, RenderResult, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, RenderResult{}, err
	}
	app, err := NewAppWithConfig(cfg)
	if err != nil {
		return nil, RenderResult{}, err
	}
	res := app.Open(path)
	if len(res.Errors) > 0 {
		e := res.Errors[0]
		if e.Line > 0 {
			return nil, res, fmt.Errorf("%s:%d: %s", path, e.Line, e.Message)
		}
		return nil, res, fmt.Errorf("%s: %s", path, e.Message)
	}
	for _, w := range res.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w.Message)
	}
	return app, res, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
