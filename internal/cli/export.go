package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"fplot/curve"
	"fplot/export"
)

func exportCmd(o *options) *cobra.Command {
	var (
		out      string
		samples  int
		widthIn  float64
		heightIn float64
	)
	cmd := &cobra.Command{
		Use:   "export EXPR MIN MAX",
		Short: "Render the curve to an image file (png, svg, pdf, ...)",
		Long:  "Render the curve to an image file; the format follows the extension of --output.\n\n" + exprHelp(),
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			n := samples
			if n == 0 {
				n = o.cfg.Samples
			}
			s, err := curve.Plot(args[0], args[1], args[2], n)
			if err != nil {
				return err
			}
			opt := export.Options{WidthIn: o.cfg.Export.WidthIn, HeightIn: o.cfg.Export.HeightIn}
			if widthIn > 0 {
				opt.WidthIn = widthIn
			}
			if heightIn > 0 {
				opt.HeightIn = heightIn
			}
			if err := export.Save(out, s, opt); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "plot.png", "output file")
	cmd.Flags().IntVarP(&samples, "samples", "n", 0, "number of samples (default from config)")
	cmd.Flags().Float64Var(&widthIn, "width", 0, "image width in inches (default from config)")
	cmd.Flags().Float64Var(&heightIn, "height", 0, "image height in inches (default from config)")
	return cmd
}
