// Package cli wires the Cobra command tree over the processing core.
//
// Commands are thin glue: they parse flags, load and persist settings,
// build the codec and matcher, and render results. All tone-matching
// semantics live in internal/imaging and internal/batch.
package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ironsheep/color-match/internal/logging"
)

// VersionInfo carries build metadata injected by ldflags in main.
type VersionInfo struct {
	Version   string
	BuildTime string
	GitCommit string
}

// Root holds state shared by all subcommands.
type Root struct {
	info       VersionInfo
	logLevel   string
	logFormat  string
	configPath string
}

// logger builds the process logger from the persistent flags. Logs go
// to stderr; stdout is reserved for command output.
func (r *Root) logger() *slog.Logger {
	return logging.New(os.Stderr, r.logLevel, r.logFormat)
}

// NewRootCmd creates the root Cobra command.
func NewRootCmd(info VersionInfo) *cobra.Command {
	root := &Root{info: info}

	rootCmd := &cobra.Command{
		Use:   "color-match",
		Short: "Tone-match batches of images to paired references",
		Long: `color-match shifts every pixel of each target image by the difference
between its own average color and the average color of a paired
reference image, so the target's overall tone matches the reference.
Background pixels near a configurable mask color can be excluded from
the reference average.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&root.logLevel, "log-level", "info", "log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().StringVar(&root.logFormat, "log-format", "text", "log format (text|json)")
	rootCmd.PersistentFlags().StringVar(&root.configPath, "config", "", "config file (default ~/.config/color-match/config.json)")

	rootCmd.AddCommand(newRunCmd(root))
	rootCmd.AddCommand(newInspectCmd(root))
	rootCmd.AddCommand(newConfigCmd(root))
	rootCmd.AddCommand(newVersionCmd(root))

	return rootCmd
}

// Execute runs the CLI and returns a process exit code.
func Execute(info VersionInfo) int {
	if err := NewRootCmd(info).Execute(); err != nil {
		return 1
	}
	return 0
}
