package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rileyhilliard/plcdash/internal/errors"
)

// Global flags
var (
	cfgFile string
	noColor bool
	logFile string
)

// rootCmd runs the dashboard when called without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "plcdash",
	Short: "Live bar-chart dashboard for OPC UA process values",
	Long: `plcdash subscribes to an array of process values on an OPC UA server
and draws them as animated horizontal bar charts in the terminal.

Without a subcommand it starts the dashboard using .plcdash.yaml (searched in
the current directory, its parents, then ~/.config/plcdash/config.yaml), or
the built-in drive layout when there is none.

Keyboard shortcuts:
  tab / shift+tab  Next / previous scene
  r                Redraw
  ?                Show help
  q / Ctrl+C       Quit

Examples:
  plcdash
  plcdash --endpoint opc.tcp://10.0.0.5:4840 --node "ns=2;s=group1"
  plcdash --simulate
  plcdash --scene drive --ascii`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return dashCommand(cmd, dashFlags)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: .plcdash.yaml, searched upward)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colors")
	rootCmd.PersistentFlags().StringVar(&logFile, "log", os.Getenv("PLCDASH_LOG"), "append logs to this file while the dashboard runs")
}

// Execute runs the root command and exits with a status derived from the
// error.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(errors.ExitCode(err))
	}
}
