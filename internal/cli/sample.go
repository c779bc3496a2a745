package cli

import (
	"bufio"
	"fmt"

	"github.com/spf13/cobra"

	"fplot/curve"
)

func sampleCmd(o *options) *cobra.Command {
	var samples int
	cmd := &cobra.Command{
		Use:     "sample EXPR MIN MAX",
		Short:   "Print the sampled curve as tab-separated x and y columns",
		Long:    "Print the sampled curve as tab-separated x and y columns.\n\n" + exprHelp(),
		Example: "  fplot sample 'x^2' 0 2\n  fplot sample -n 50 -- '1/x' -1 1",
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			n := samples
			if n == 0 {
				n = o.cfg.Samples
			}
			s, err := curve.Plot(args[0], args[1], args[2], n)
			if err != nil {
				return err
			}
			w := bufio.NewWriter(cmd.OutOrStdout())
			for i := range s.X {
				fmt.Fprintf(w, "%g\t%g\n", s.X[i], s.Y[i])
			}
			return w.Flush()
		},
	}
	cmd.Flags().IntVarP(&samples, "samples", "n", 0, "number of samples (default from config)")
	return cmd
}
