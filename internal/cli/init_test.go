package cli

import (
	"bytes"
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/plcdash/internal/config"
	"github.com/rileyhilliard/plcdash/internal/errors"
	"github.com/rileyhilliard/plcdash/internal/transport"
)

func TestInit_CreatesConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.ConfigFileName)
	var out bytes.Buffer

	err := Init(InitOptions{
		Path:           path,
		Endpoint:       "opc.tcp://10.0.0.5:4840",
		Node:           "ns=3;s=line2",
		NonInteractive: true,
		Out:            &out,
	})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Created "+path)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "opc.tcp://10.0.0.5:4840", cfg.Source.Endpoint)
	assert.Equal(t, "ns=3;s=line2", cfg.Source.Node)
	require.Len(t, cfg.Scenes, 1)
	assert.Equal(t, "drive", cfg.Scenes[0].Name)
	require.NoError(t, config.Validate(cfg))
}

func TestInit_Defaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.ConfigFileName)

	require.NoError(t, Init(InitOptions{Path: path, NonInteractive: true, Out: &bytes.Buffer{}}))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, transport.DefaultEndpoint, cfg.Source.Endpoint)
	assert.Equal(t, transport.DefaultNodeID, cfg.Source.Node)
	assert.False(t, cfg.Source.Simulate)
}

func TestInit_Simulate(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.ConfigFileName)

	require.NoError(t, Init(InitOptions{Path: path, Simulate: true, NonInteractive: true, Out: &bytes.Buffer{}}))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.Source.Simulate)
}

func TestInit_UpdatesExistingSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.ConfigFileName)
	original := `# my plant
source:
  endpoint: opc.tcp://old:4840 # line 1 PLC
  node: ns=2;s=group1
display:
  refresh: 500ms
`
	require.NoError(t, os.WriteFile(path, []byte(original), 0644))

	var out bytes.Buffer
	err := Init(InitOptions{
		Path:           path,
		Endpoint:       "opc.tcp://new:4840",
		NonInteractive: true,
		Out:            &out,
	})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Updated source")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# my plant")
	assert.Contains(t, string(data), "opc.tcp://new:4840")
	assert.Contains(t, string(data), "refresh: 500ms")
	assert.NotContains(t, string(data), "opc.tcp://old:4840")
}

func TestInit_OverwriteReplacesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte("# stale\nversion: 1\n"), 0644))

	err := Init(InitOptions{Path: path, Overwrite: true, NonInteractive: true, Out: &bytes.Buffer{}})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "# stale")
	assert.Contains(t, string(data), "scenes:")
}

func TestInit_RejectsBadEndpoint(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.ConfigFileName)

	err := Init(InitOptions{
		Path:           path,
		Endpoint:       "http://plc:4840",
		NonInteractive: true,
		Out:            &bytes.Buffer{},
	})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "nothing is written for a bad endpoint")
}

func stubProbe(t *testing.T, n int, err error) *int {
	t.Helper()
	calls := 0
	orig := probeSource
	probeSource = func(ctx context.Context, endpoint, node string) (int, error) {
		calls++
		return n, err
	}
	t.Cleanup(func() { probeSource = orig })
	return &calls
}

func TestInit_CheckConnection(t *testing.T) {
	calls := stubProbe(t, 12, nil)
	path := filepath.Join(t.TempDir(), config.ConfigFileName)
	var out bytes.Buffer

	err := Init(InitOptions{Path: path, NonInteractive: true, Check: true, Out: &out})
	require.NoError(t, err)
	assert.Equal(t, 1, *calls)
	assert.Contains(t, out.String(), "12 values in "+transport.DefaultNodeID)
	assert.Contains(t, out.String(), "Created")
}

func TestInit_CheckFailureStillSaves(t *testing.T) {
	stubProbe(t, 0, errors.New(errors.ErrTransport, "Cannot connect to opc.tcp://plc:4840", "Check the address"))
	path := filepath.Join(t.TempDir(), config.ConfigFileName)
	var out bytes.Buffer

	err := Init(InitOptions{Path: path, Endpoint: "opc.tcp://plc:4840", NonInteractive: true, Check: true, Out: &out})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Cannot connect to opc.tcp://plc:4840")
	assert.NotContains(t, out.String(), "Check the address")
	assert.FileExists(t, path)
}

func TestInit_NoCheckWhenSimulating(t *testing.T) {
	calls := stubProbe(t, 0, stderrors.New("should not be called"))
	path := filepath.Join(t.TempDir(), config.ConfigFileName)

	err := Init(InitOptions{Path: path, Simulate: true, NonInteractive: true, Check: true, Out: &bytes.Buffer{}})
	require.NoError(t, err)
	assert.Zero(t, *calls)
}

func TestFirstLine(t *testing.T) {
	err := errors.New(errors.ErrTransport, "Cannot connect", "Check it")
	assert.Equal(t, "Cannot connect", firstLine(err.Error()))
	assert.Equal(t, "plain", firstLine("plain"))
}
