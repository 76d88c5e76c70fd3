package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/plcdash/internal/config"
	"github.com/rileyhilliard/plcdash/internal/errors"
)

const plantValues = "2500,2300,45,870,4,120,95,640,1,0,0,5"

func TestSnapshot_DefaultScene(t *testing.T) {
	var buf bytes.Buffer
	err := Snapshot(&buf, config.DefaultConfig(), SnapshotOptions{Values: plantValues})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, DefaultSnapshotHeight)

	out := buf.String()
	assert.Contains(t, out, "Hz")
	assert.Contains(t, out, "Load %")
	assert.Contains(t, out, "Drive state:")
	assert.Contains(t, out, "Running")
	assert.Contains(t, out, "00000101")
	assert.Contains(t, out, "00000001")
	assert.NotContains(t, out, "\x1b[")

	for i, line := range lines {
		assert.Equal(t, strings.TrimRight(line, " "), line, "line %d has trailing spaces", i)
	}
}

func TestSnapshot_NoValues(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Snapshot(&buf, config.DefaultConfig(), SnapshotOptions{}))

	out := buf.String()
	assert.Contains(t, out, "Drive state:")
	assert.Contains(t, out, "--")
	assert.NotContains(t, out, "#")
}

func TestSnapshot_Simulate(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Snapshot(&buf, config.DefaultConfig(), SnapshotOptions{Simulate: true}))
	assert.Contains(t, buf.String(), "Running")
	assert.Contains(t, buf.String(), "#")
}

func TestSnapshot_Color(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Snapshot(&buf, config.DefaultConfig(), SnapshotOptions{Values: plantValues, Color: true}))
	assert.Contains(t, buf.String(), "\x1b[")
}

func TestSnapshot_ASCII(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Snapshot(&buf, config.DefaultConfig(), SnapshotOptions{Values: plantValues, ASCII: true}))
	assert.Contains(t, buf.String(), "-----")
	assert.NotContains(t, buf.String(), "─")
}

func TestSnapshot_Size(t *testing.T) {
	var buf bytes.Buffer
	err := Snapshot(&buf, config.DefaultConfig(), SnapshotOptions{Values: plantValues, Width: 120, Height: 30})
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 30)
}

func TestSnapshot_Errors(t *testing.T) {
	tests := []struct {
		name string
		cfg  func() *config.Config
		opts SnapshotOptions
	}{
		{
			name: "bad values",
			cfg:  config.DefaultConfig,
			opts: SnapshotOptions{Values: "1,x"},
		},
		{
			name: "unknown scene",
			cfg:  config.DefaultConfig,
			opts: SnapshotOptions{Scene: "boiler"},
		},
		{
			name: "no scenes",
			cfg: func() *config.Config {
				cfg := config.DefaultConfig()
				cfg.Scenes = nil
				return cfg
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := Snapshot(&buf, tt.cfg(), tt.opts)
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrConfig))
			assert.Empty(t, buf.String())
		})
	}
}

func TestSnapshotCommand(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	orig := snapshotOpts
	t.Cleanup(func() { snapshotOpts = orig })

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	t.Cleanup(func() { rootCmd.SetOut(nil) })
	rootCmd.SetArgs([]string{"snapshot", "--values", plantValues, "--width", "84", "--height", "17"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, buf.String(), "Drive state:")
}
