package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/chazu/trisketch/pkg/export"
	"github.com/spf13/cobra"
)

var (
	outputPath string
	bake       bool
)

var renderCmd = &cobra.Command{
	Use:   "render [file]",
	Short: "Build the solid for a model and write it as STL",
	Long: `Render reads a model (.json) or sketch script (.tsk), assembles the solid
and writes a binary STL. By default the mesh stays in normalized
coordinates; --bake applies the display scale and offset.`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&outputPath, "output", "o", "", "output STL path (default: input name with .stl)")
	renderCmd.Flags().BoolVar(&bake, "bake", false, "apply the display transform to the written vertices")
	rootCmd.AddCommand(renderCmd)
}

func stlPath(in string) string {
	return strings.TrimSuffix(in, filepath.Ext(in)) + ".stl"
}

func runRender(cmd *cobra.Command, args []string) error {
	app, res, err := openFile(args[0])
	if err != nil {
		return err
	}
	if !res.Solid {
		return errors.New("no drawing contributes geometry")
	}
	mesh := app.Current()
	if mesh.IsEmpty() {
		return errors.New("the drawings do not intersect")
	}

	xf := export.Identity
	if bake {
		xf = export.Transform{Scale: res.Scale, Offset: res.Position}
	}
	out := outputPath
	if out == "" {
		out = stlPath(args[0])
	}
	if err := export.WriteSTL(out, mesh, xf); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d triangles)\n", out, mesh.TriangleCount())
	return nil
}
