// Package cli implements the plcdash command-line interface.
//
// # Command Structure
//
// The root command "plcdash" runs the dashboard. Subcommands:
//
//	plcdash init        - Create or update .plcdash.yaml
//	plcdash snapshot    - Print one frame without a terminal or server
//	plcdash completion  - Shell completion scripts
//	plcdash version     - Build information
//
// # Flag Handling
//
// Global flags (--config, --no-color, --log) are defined on the root command
// and available to all subcommands. Source flags (--endpoint, --node,
// --interval, --simulate) override the loaded config only when set; see
// SourceFlags.Apply.
//
// # Running the Dashboard
//
// The transport and the Bubble Tea program run under one errgroup. The
// transport reports link changes through a dashboard.Bridge and writes
// readings into a shared sample.Buffer; quitting the program cancels the
// transport, and a fatal transport error stops the program.
package cli
