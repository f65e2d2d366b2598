package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/naka-gawa/contrib-graph/internal/render"
	"github.com/spf13/cobra"
)

var svgCmd = &cobra.Command{
	Use:   "svg <username>",
	Short: "Renders one year of contributions as an SVG image",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		flags := cmd.Flags()
		year, _ := flags.GetString("year")
		out, _ := flags.GetString("out")

		opts := render.DefaultSVGOptions()
		opts.Size, _ = flags.GetInt("size")
		opts.Gap, _ = flags.GetInt("gap")
		opts.Shape, _ = flags.GetString("shape")
		opts.BaseColor, _ = flags.GetString("base-color")
		opts.MinOpacity, _ = flags.GetFloat64("min-opacity")
		opts.MaxOpacity, _ = flags.GetFloat64("max-opacity")
		if err := opts.Validate(); err != nil {
			return err
		}

		result, err := a.assembler.FetchOneYear(cmd.Context(), args[0], year)
		if err != nil {
			return err
		}

		var w io.Writer = cmd.OutOrStdout()
		if out != "" && out != "-" {
			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", out, err)
			}
			defer f.Close()
			w = f
		}
		return render.SVG(w, args[0], year, result.Contributions, opts)
	},
}

func init() {
	rootCmd.AddCommand(svgCmd)
	def := render.DefaultSVGOptions()
	svgCmd.Flags().StringP("year", "y", "", "Year to render (required)")
	svgCmd.Flags().StringP("out", "o", "", "Output file (default is standard output)")
	svgCmd.Flags().Int("size", def.Size, "Cell size in pixels")
	svgCmd.Flags().Int("gap", def.Gap, "Gap between cells in pixels")
	svgCmd.Flags().String("shape", def.Shape, "Cell shape: square, rounded or circle")
	svgCmd.Flags().String("base-color", def.BaseColor, "Hex color of the cells")
	svgCmd.Flags().Float64("min-opacity", def.MinOpacity, "Opacity of intensity 0")
	svgCmd.Flags().Float64("max-opacity", def.MaxOpacity, "Opacity of intensity 4")
	_ = svgCmd.MarkFlagRequired("year")
}
