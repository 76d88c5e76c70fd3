package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/rileyhilliard/plcdash/internal/config"
	"github.com/rileyhilliard/plcdash/internal/errors"
	"github.com/rileyhilliard/plcdash/internal/transport"
	"github.com/rileyhilliard/plcdash/internal/ui"
)

// InitOptions holds options for the init command.
type InitOptions struct {
	Path           string // Config file to write, .plcdash.yaml if empty
	Endpoint       string // Pre-specified server URL
	Node           string // Pre-specified node ID
	Simulate       bool
	Overwrite      bool // Replace an existing config instead of updating its source
	NonInteractive bool // Skip prompts, use flags and defaults
	Check          bool // Test the connection before saving; always on when interactive
	Out            io.Writer
}

// probeSource is swapped out in tests.
var probeSource = transport.Probe

// Init creates a .plcdash.yaml with the default scene, or points an existing
// one at a new server without touching the rest of the file.
func Init(opts InitOptions) error {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	configPath := opts.Path
	if configPath == "" {
		configPath = filepath.Join(".", config.ConfigFileName)
	}

	_, statErr := os.Stat(configPath)
	exists := statErr == nil

	endpoint := opts.Endpoint
	if endpoint == "" {
		endpoint = transport.DefaultEndpoint
	}
	node := opts.Node
	if node == "" {
		node = transport.DefaultNodeID
	}
	simulate := opts.Simulate

	if !opts.NonInteractive {
		if exists && !opts.Overwrite {
			update := true
			form := huh.NewForm(
				huh.NewGroup(
					huh.NewConfirm().
						Title(fmt.Sprintf("'%s' already exists. Update its source settings?", configPath)).
						Description("Scenes, charts and comments are kept.").
						Value(&update),
				),
			)
			if err := form.Run(); err != nil {
				return errors.WrapWithCode(err, errors.ErrConfig,
					"Failed to get user input",
					"Try running with --non-interactive")
			}
			if !update {
				fmt.Fprintln(out, "Cancelled.")
				return nil
			}
		}

		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title("Use the built-in simulator?").
					Description("Handy for trying plcdash out without a PLC").
					Value(&simulate),
			),
			huh.NewGroup(
				huh.NewInput().
					Title("OPC UA endpoint").
					Description("URL of the server publishing the values").
					Placeholder(transport.DefaultEndpoint).
					Value(&endpoint).
					Validate(func(s string) error {
						if !strings.HasPrefix(strings.TrimSpace(s), "opc.tcp://") {
							return fmt.Errorf("endpoint must start with opc.tcp://")
						}
						return nil
					}),
				huh.NewInput().
					Title("Node ID").
					Description("The array variable holding the process values").
					Placeholder(transport.DefaultNodeID).
					Value(&node).
					Validate(func(s string) error {
						if strings.TrimSpace(s) == "" {
							return fmt.Errorf("node ID is required")
						}
						return nil
					}),
			).WithHideFunc(func() bool { return simulate }),
		)

		if err := form.Run(); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Check terminal compatibility or use --non-interactive")
		}
		endpoint = strings.TrimSpace(endpoint)
		node = strings.TrimSpace(node)
	}

	cfg := config.DefaultConfig()
	cfg.Source.Endpoint = endpoint
	cfg.Source.Node = node
	cfg.Source.Simulate = simulate
	if err := config.Validate(cfg); err != nil {
		return err
	}

	if !simulate && (opts.Check || !opts.NonInteractive) {
		checkConnection(out, endpoint, node)
	}

	if exists && !opts.Overwrite {
		if err := config.UpdateSource(configPath, endpoint, node); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Couldn't update "+configPath,
				"Fix the YAML by hand, or rerun with --force to start over.")
		}
		fmt.Fprintf(out, "Updated source in %s\n", configPath)
		return nil
	}

	if err := config.Write(cfg, configPath); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Couldn't write "+configPath,
			"Check you can write to this directory.")
	}

	fmt.Fprintf(out, "Created %s\n", configPath)
	fmt.Fprintln(out, "Run 'plcdash' to start the dashboard.")
	return nil
}

// checkConnection reads the node once and reports the result. A failure is
// only a warning since the PLC may simply be offline during setup.
func checkConnection(out io.Writer, endpoint, node string) {
	spinner := ui.NewSpinner("Checking "+endpoint, out)
	spinner.Start()

	n, err := probeSource(context.Background(), endpoint, node)
	if err != nil {
		spinner.Warn(firstLine(err.Error()))
		fmt.Fprintln(out, "  Saving anyway; the dashboard keeps retrying until the server answers.")
		return
	}
	spinner.Success(fmt.Sprintf("%d values in %s", n, node))
}

// firstLine returns the headline of a structured error.
func firstLine(s string) string {
	s = strings.TrimSpace(strings.TrimPrefix(s, ui.SymbolFail))
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return s
}
