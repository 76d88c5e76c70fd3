package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cast"
	"github.com/spf13/cobra"

	"github.com/rileyhilliard/plcdash/internal/config"
	"github.com/rileyhilliard/plcdash/internal/errors"
)

// SourceFlags are the source overrides shared by the dashboard and init.
type SourceFlags struct {
	Endpoint string
	Node     string
	Interval string
	Simulate bool
}

// AddSourceFlags registers --endpoint, --node, --interval and --simulate on a command.
func AddSourceFlags(cmd *cobra.Command, flags *SourceFlags) {
	cmd.Flags().StringVar(&flags.Endpoint, "endpoint", "", "OPC UA server URL (e.g., opc.tcp://10.0.0.5:4840)")
	cmd.Flags().StringVar(&flags.Node, "node", "", "node ID of the value array (e.g., ns=2;s=group1)")
	cmd.Flags().StringVar(&flags.Interval, "interval", "", "publishing interval to request (e.g., 500ms, 1s)")
	cmd.Flags().BoolVar(&flags.Simulate, "simulate", false, "generate values locally instead of connecting")
}

// Apply copies the flags the user set onto cfg. Unset flags leave the
// config value alone.
func (f SourceFlags) Apply(cmd *cobra.Command, cfg *config.Config) error {
	fs := cmd.Flags()
	if fs.Changed("endpoint") {
		cfg.Source.Endpoint = f.Endpoint
	}
	if fs.Changed("node") {
		cfg.Source.Node = f.Node
	}
	if fs.Changed("interval") {
		d, err := ParseDuration("interval", f.Interval)
		if err != nil {
			return err
		}
		cfg.Source.Interval = d
	}
	if fs.Changed("simulate") {
		cfg.Source.Simulate = f.Simulate
	}
	return nil
}

// ParseDuration parses a duration flag. Returns zero duration if the flag is
// empty.
func ParseDuration(name, flag string) (time.Duration, error) {
	if flag == "" {
		return 0, nil
	}

	d, err := time.ParseDuration(flag)
	if err != nil {
		return 0, errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("'%s' doesn't look like a valid %s", flag, name),
			"Try something like 500ms, 2s, or 1m.")
	}
	if d <= 0 {
		return 0, errors.New(errors.ErrConfig,
			fmt.Sprintf("The %s must be positive, got %s", name, flag),
			"Try something like 500ms, 2s, or 1m.")
	}
	return d, nil
}

// ParseValues parses a comma-separated list of numbers, as given to
// 'plcdash snapshot --values'.
func ParseValues(s string) ([]float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	fields := strings.Split(s, ",")
	out := make([]float64, len(fields))
	for i, field := range fields {
		v, err := cast.ToFloat64E(strings.TrimSpace(field))
		if err != nil {
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				fmt.Sprintf("Value %d ('%s') is not a number", i, field),
				"Pass plain numbers separated by commas, e.g. --values 2500,2300,45")
		}
		out[i] = v
	}
	return out, nil
}
