// Package cli is the fplot command line: the interactive window plus batch sampling and export.
package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"fplot/app"
	"fplot/curve"
	"fplot/expr"
	"fplot/hal"
	"fplot/internal/config"
)

type options struct {
	configPath string
	cfg        config.Config

	headless bool
	hz       int
	ticks    uint64
}

// Execute runs the fplot command with os.Args.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	o := &options{}
	root := &cobra.Command{
		Use:           "fplot",
		Short:         "Plot a function of x over a closed interval",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(o.configPath)
			if err != nil {
				return err
			}
			o.cfg = cfg
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd)
		},
	}

	root.PersistentFlags().StringVar(&o.configPath, "config", "", "config file (default ./fplot.yaml or <user config dir>/fplot/fplot.yaml)")
	root.Flags().BoolVar(&o.headless, "headless", false, "run without a window")
	root.Flags().IntVar(&o.hz, "hz", 60, "tick rate in headless mode")
	root.Flags().Uint64Var(&o.ticks, "ticks", 0, "stop after N ticks in headless mode (0 = run until interrupted)")

	root.AddCommand(sampleCmd(o), exportCmd(o), versionCmd())
	return root
}

func (o *options) newApp(h hal.HAL) func() error {
	return app.NewWithConfig(h, app.Config{Samples: o.cfg.Samples})
}

func (o *options) run(cmd *cobra.Command) error {
	if o.headless {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		err := hal.RunHeadless(ctx, hal.HeadlessConfig{
			Width:  o.cfg.Width,
			Height: o.cfg.Height,
			Hz:     o.hz,
			Ticks:  o.ticks,
			Log:    cmd.OutOrStdout(),
		}, o.newApp)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}
	return hal.RunWindow(hal.WindowConfig{
		Width:  o.cfg.Width,
		Height: o.cfg.Height,
		Scale:  o.cfg.Scale,
		TPS:    o.cfg.TPS,
	}, o.newApp)
}

// exprHelp describes the expression language for command help.
func exprHelp() string {
	return "EXPR is a function of x built from numbers, + - * / and ^ (or **),\n" +
		"parentheses, the constants " + strings.Join(expr.Constants(), ", ") + "\n" +
		"and the functions " + strings.Join(expr.Functions(), ", ") + "."
}

var plotErrors = []error{
	curve.ErrMissingFunction,
	curve.ErrMissingBounds,
	curve.ErrInvalidBounds,
	curve.ErrBoundsOrder,
	curve.ErrInvalidFunction,
}

// ErrorText is what fplot prints for a failed command. Plot request errors get the same
// message the window shows in its error dialog.
func ErrorText(err error) string {
	for _, target := range plotErrors {
		if errors.Is(err, target) {
			return curve.Message(err)
		}
	}
	return "fplot: " + err.Error()
}
