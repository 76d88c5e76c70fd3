package cli

import (
	"context"
	stderrors "errors"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/rileyhilliard/plcdash/internal/config"
	"github.com/rileyhilliard/plcdash/internal/dashboard"
	"github.com/rileyhilliard/plcdash/internal/display"
	"github.com/rileyhilliard/plcdash/internal/errors"
	"github.com/rileyhilliard/plcdash/internal/logger"
	"github.com/rileyhilliard/plcdash/internal/sample"
	"github.com/rileyhilliard/plcdash/internal/transport"
)

// DashFlags are the flags of the root (dashboard) command.
type DashFlags struct {
	SourceFlags
	Scene   string
	Refresh string
	ASCII   bool
}

var dashFlags DashFlags

func init() {
	AddSourceFlags(rootCmd, &dashFlags.SourceFlags)
	rootCmd.Flags().StringVar(&dashFlags.Scene, "scene", "", "scene to show first")
	rootCmd.Flags().StringVar(&dashFlags.Refresh, "refresh", "", "redraw interval (e.g., 250ms)")
	rootCmd.Flags().BoolVar(&dashFlags.ASCII, "ascii", false, "draw axes and borders with ASCII characters")
}

// Apply copies the flags the user set onto cfg.
func (f DashFlags) Apply(cmd *cobra.Command, cfg *config.Config) error {
	if err := f.SourceFlags.Apply(cmd, cfg); err != nil {
		return err
	}
	fs := cmd.Flags()
	if fs.Changed("refresh") {
		d, err := ParseDuration("refresh interval", f.Refresh)
		if err != nil {
			return err
		}
		cfg.Display.Refresh = d
	}
	if fs.Changed("ascii") {
		cfg.Display.ASCII = f.ASCII
	}
	return nil
}

// dashCommand starts the full-screen dashboard.
func dashCommand(cmd *cobra.Command, flags DashFlags) error {
	cfg, err := loadConfig(func(c *config.Config) error {
		return flags.Apply(cmd, c)
	})
	if err != nil {
		return err
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New(errors.ErrDisplay,
			"plcdash needs a terminal to draw on",
			"Run it in an interactive terminal, or use 'plcdash snapshot' to print a single frame.")
	}

	restore, err := logger.Redirect(config.ExpandPath(logFile))
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Couldn't open the log file "+logFile,
			"Point --log (or PLCDASH_LOG) at a writable file.")
	}
	defer restore()

	return runDashboard(cmd.Context(), cfg, flags.Scene, canvasOptions(cfg.Display.Color))
}

// runDashboard supervises the transport and the program. Whichever stops
// first takes the other down with it.
func runDashboard(ctx context.Context, cfg *config.Config, scene string, opts []display.Option) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	buf := sample.NewBuffer()
	model, err := dashboard.NewModel(dashboard.Options{
		Config:        cfg,
		Buffer:        buf,
		Endpoint:      sourceEndpoint(cfg),
		Scene:         scene,
		Cancel:        cancel,
		CanvasOptions: opts,
	})
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(gctx))
	bridge := dashboard.NewBridge(p)
	source := newSource(cfg, bridge)

	g.Go(func() error {
		return bridge.Run(gctx)
	})
	g.Go(func() error {
		return source.Run(gctx, buf)
	})

	g.Go(func() error {
		defer cancel()
		final, err := p.Run()
		if err != nil {
			if stderrors.Is(err, tea.ErrProgramKilled) || stderrors.Is(err, tea.ErrInterrupted) {
				return nil
			}
			return errors.WrapWithCode(err, errors.ErrDisplay,
				"The dashboard stopped unexpectedly",
				"Check the terminal supports full-screen programs, or run with --log to capture details.")
		}
		if m, ok := final.(dashboard.Model); ok {
			return m.Err()
		}
		return nil
	})

	return g.Wait()
}

// loadConfig finds and loads the config, lets the caller override it, then
// validates the result.
func loadConfig(apply func(*config.Config) error) (*config.Config, error) {
	cfg, _, err := config.LoadOrDefault(cfgFile)
	if err != nil {
		return nil, err
	}
	if apply != nil {
		if err := apply(cfg); err != nil {
			return nil, err
		}
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newSource picks the transport for the config.
func newSource(cfg *config.Config, observer transport.Observer) transport.Source {
	if cfg.Source.Simulate {
		return transport.NewSimulator(nil, cfg.Source.Interval, observer)
	}
	return transport.NewOPCUA(transport.OPCUAOptions{
		Endpoint:       cfg.Source.Endpoint,
		NodeID:         cfg.Source.Node,
		Interval:       cfg.Source.Interval,
		ReconnectDelay: cfg.Source.ReconnectDelay,
		Observer:       observer,
		Logger:         logger.NewEnvLogger("[opcua]"),
	})
}

func sourceEndpoint(cfg *config.Config) string {
	if cfg.Source.Simulate {
		return transport.SimulatorEndpoint
	}
	return cfg.Source.Endpoint
}

// colorProfile resolves --no-color and display.color to a forced profile.
// ok is false when the terminal should be detected as usual.
func colorProfile(mode string) (profile termenv.Profile, ok bool) {
	switch {
	case noColor || mode == "never":
		return termenv.Ascii, true
	case mode == "always":
		return termenv.ANSI, true
	default:
		return termenv.Ascii, false
	}
}

// canvasOptions forces the color profile on both the status line styles
// and the canvas.
func canvasOptions(mode string) []display.Option {
	profile, ok := colorProfile(mode)
	if !ok {
		return nil
	}
	lipgloss.SetColorProfile(profile)
	return []display.Option{display.WithProfile(profile)}
}
