package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info [file]",
	Short: "Display information about the solid a model produces",
	Long:  "Show the contributing axes, volume, bounds and triangle count of the assembled solid, followed by the model in JSON form.",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	app, res, err := openFile(args[0])
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()

	fmt.Fprintln(w, "Model Information")
	fmt.Fprintln(w, "=================")
	fmt.Fprintf(w, "File: %s\n", args[0])
	fmt.Fprintf(w, "Request: %s\n", res.ID)
	fmt.Fprintf(w, "Color: %.2f,%.2f,%.2f\n\n", res.Color[0], res.Color[1], res.Color[2])

	if !res.Solid {
		fmt.Fprintln(w, "No drawing contributes geometry.")
	} else {
		mesh := app.Current()
		bbMin, bbMax := mesh.BoundingBox()
		fmt.Fprintln(w, "Solid:")
		fmt.Fprintf(w, "  Axes: %s\n", strings.Join(res.Axes, ", "))
		fmt.Fprintf(w, "  Triangles: %d\n", mesh.TriangleCount())
		fmt.Fprintf(w, "  Volume: %.6f\n", mesh.Volume())
		fmt.Fprintf(w, "  Min: (%.4f, %.4f, %.4f)\n", bbMin[0], bbMin[1], bbMin[2])
		fmt.Fprintf(w, "  Max: (%.4f, %.4f, %.4f)\n", bbMax[0], bbMax[1], bbMax[2])
		fmt.Fprintf(w, "  Display: scale %g at (%g, %g, %g)\n\n", res.Scale, res.Position[0], res.Position[1], res.Position[2])
	}

	fmt.Fprintln(w, "Echo:")
	fmt.Fprintln(w, res.Echo)
	return nil
}
