package cli

import (
	"github.com/spf13/cobra"

	"github.com/rileyhilliard/plcdash/internal/errors"
)

// Command-specific flags
var (
	initFlags          SourceFlags
	initForce          bool
	initNonInteractive bool
	initCheck          bool
	snapshotOpts       SnapshotOptions
)

// initCmd creates a new .plcdash.yaml configuration
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create .plcdash.yaml configuration",
	Long: `Create a .plcdash.yaml file in the current directory with the built-in
drive scene and your server settings.

If the file already exists, only its source settings are updated; scenes and
comments are kept. Use --force to replace it.

Examples:
  plcdash init
  plcdash init --endpoint opc.tcp://10.0.0.5:4840 --node "ns=2;s=group1" --non-interactive
  plcdash init --simulate --force`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Init(InitOptions{
			Path:           cfgFile,
			Endpoint:       initFlags.Endpoint,
			Node:           initFlags.Node,
			Simulate:       initFlags.Simulate,
			Overwrite:      initForce,
			NonInteractive: initNonInteractive,
			Check:          initCheck,
			Out:            cmd.OutOrStdout(),
		})
	},
}

// snapshotCmd prints a single frame
var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Print one frame of a scene",
	Long: `Render one scene for a fixed set of values and print it. No terminal
or server is needed, which makes it useful for checking layouts.

Examples:
  plcdash snapshot --values 2500,2300,45,870,4,120,95,640,0,0,0,5
  plcdash snapshot --simulate --scene drive --color
  plcdash snapshot --width 120 --height 30 --ascii`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(nil)
		if err != nil {
			return err
		}
		return Snapshot(cmd.OutOrStdout(), cfg, snapshotOpts)
	},
}

// completionCmd generates shell completion scripts
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Generate shell completion scripts for plcdash.

Examples:
  # Bash
  plcdash completion bash > /etc/bash_completion.d/plcdash

  # Zsh
  plcdash completion zsh > "${fpath[1]}/_plcdash"

  # Fish
  plcdash completion fish > ~/.config/fish/completions/plcdash.fish`,
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(out)
		case "zsh":
			return rootCmd.GenZshCompletion(out)
		case "fish":
			return rootCmd.GenFishCompletion(out, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletion(out)
		default:
			return errors.New(errors.ErrConfig,
				"Unknown shell: "+args[0],
				"Supported shells: bash, zsh, fish, powershell")
		}
	},
}

func init() {
	// init command flags
	initCmd.Flags().StringVar(&initFlags.Endpoint, "endpoint", "", "OPC UA server URL")
	initCmd.Flags().StringVar(&initFlags.Node, "node", "", "node ID of the value array")
	initCmd.Flags().BoolVar(&initFlags.Simulate, "simulate", false, "use the built-in simulator")
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite existing config")
	initCmd.Flags().BoolVar(&initNonInteractive, "non-interactive", false, "skip prompts, use flags and defaults")
	initCmd.Flags().BoolVar(&initCheck, "check", false, "test the connection before saving (always on when interactive)")

	// snapshot command flags
	snapshotCmd.Flags().StringVar(&snapshotOpts.Values, "values", "", "comma-separated readings, index 0 first")
	snapshotCmd.Flags().BoolVar(&snapshotOpts.Simulate, "simulate", false, "use simulated readings when --values is empty")
	snapshotCmd.Flags().StringVar(&snapshotOpts.Scene, "scene", "", "scene to render (default: the first)")
	snapshotCmd.Flags().IntVar(&snapshotOpts.Width, "width", DefaultSnapshotWidth, "surface width in columns")
	snapshotCmd.Flags().IntVar(&snapshotOpts.Height, "height", DefaultSnapshotHeight, "surface height in rows")
	snapshotCmd.Flags().BoolVar(&snapshotOpts.Color, "color", false, "emit ANSI colors")
	snapshotCmd.Flags().BoolVar(&snapshotOpts.ASCII, "ascii", false, "draw axes and borders with ASCII characters")

	// Register all commands
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(snapshotCmd)
	rootCmd.AddCommand(completionCmd)
}
