package cli

import (
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/plcdash/internal/config"
	"github.com/rileyhilliard/plcdash/internal/errors"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		name    string
		flag    string
		want    time.Duration
		wantErr bool
	}{
		{name: "empty string returns zero", flag: "", want: 0},
		{name: "valid milliseconds", flag: "500ms", want: 500 * time.Millisecond},
		{name: "valid seconds", flag: "2s", want: 2 * time.Second},
		{name: "valid minutes", flag: "1m", want: time.Minute},
		{name: "invalid format", flag: "fast", wantErr: true},
		{name: "missing unit", flag: "500", wantErr: true},
		{name: "zero", flag: "0s", wantErr: true},
		{name: "negative", flag: "-1s", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDuration("interval", tt.flag)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsCode(err, errors.ErrConfig))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseValues(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []float64
		wantErr bool
	}{
		{name: "empty", input: "", want: nil},
		{name: "blank", input: "   ", want: nil},
		{name: "single", input: "42", want: []float64{42}},
		{name: "several with spaces", input: "2500, 2300 ,45", want: []float64{2500, 2300, 45}},
		{name: "decimals and negatives", input: "0.5,-3", want: []float64{0.5, -3}},
		{name: "not a number", input: "1,two,3", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseValues(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "Value 1")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func newFlagCmd(t *testing.T, args ...string) (*cobra.Command, *DashFlags) {
	t.Helper()
	flags := &DashFlags{}
	cmd := &cobra.Command{Use: "test"}
	AddSourceFlags(cmd, &flags.SourceFlags)
	cmd.Flags().StringVar(&flags.Scene, "scene", "", "")
	cmd.Flags().StringVar(&flags.Refresh, "refresh", "", "")
	cmd.Flags().BoolVar(&flags.ASCII, "ascii", false, "")
	require.NoError(t, cmd.ParseFlags(args))
	return cmd, flags
}

func TestDashFlags_ApplyOnlyChanged(t *testing.T) {
	cmd, flags := newFlagCmd(t)
	cfg := config.DefaultConfig()
	cfg.Source.Endpoint = "opc.tcp://from-file:4840"
	cfg.Display.ASCII = true

	require.NoError(t, flags.Apply(cmd, cfg))
	assert.Equal(t, "opc.tcp://from-file:4840", cfg.Source.Endpoint)
	assert.True(t, cfg.Display.ASCII)
	assert.Equal(t, config.DefaultConfig().Display.Refresh, cfg.Display.Refresh)
}

func TestDashFlags_Apply(t *testing.T) {
	cmd, flags := newFlagCmd(t,
		"--endpoint", "opc.tcp://10.0.0.5:4840",
		"--node", "ns=3;s=line2",
		"--interval", "1s",
		"--simulate",
		"--refresh", "100ms",
		"--ascii",
	)
	cfg := config.DefaultConfig()

	require.NoError(t, flags.Apply(cmd, cfg))
	assert.Equal(t, "opc.tcp://10.0.0.5:4840", cfg.Source.Endpoint)
	assert.Equal(t, "ns=3;s=line2", cfg.Source.Node)
	assert.Equal(t, time.Second, cfg.Source.Interval)
	assert.True(t, cfg.Source.Simulate)
	assert.Equal(t, 100*time.Millisecond, cfg.Display.Refresh)
	assert.True(t, cfg.Display.ASCII)
}

func TestDashFlags_ApplyBadDuration(t *testing.T) {
	cmd, flags := newFlagCmd(t, "--refresh", "soon")
	err := flags.Apply(cmd, config.DefaultConfig())
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))

	cmd, flags = newFlagCmd(t, "--interval", "often")
	err = flags.Apply(cmd, config.DefaultConfig())
	require.Error(t, err)
}

func TestRootCommandFlags(t *testing.T) {
	for _, name := range []string{"endpoint", "node", "interval", "simulate", "scene", "refresh", "ascii"} {
		assert.NotNil(t, rootCmd.Flags().Lookup(name), name)
	}
	for _, name := range []string{"config", "no-color", "log"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), name)
	}
}
