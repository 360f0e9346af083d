package main

import (
	"fmt"
	"os"

	"gridedit/internal/config"
	"gridedit/internal/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	verbose    bool
	configPath string

	// Set up by the root command before any subcommand runs
	cfg    *config.Config
	logs   *logging.Logger
	logger *zap.Logger
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "gridedit",
	Short: "gridedit - interactive grid editor with undo/redo",
	Long: `gridedit edits a three-column grid of numbers in the terminal.

Pick up a value and drop it on another cell to swap the two, add rows of
generated values (up to 10 rows), remove added rows, reset, and step back and
forth through every change with undo and redo.

Run without arguments to start the interactive editor.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if path == "" {
			path = config.DefaultPath()
		}
		loaded, err := config.Load(path)
		if err != nil {
			return err
		}
		if err := loaded.Validate(); err != nil {
			return fmt.Errorf("invalid config %s: %w", path, err)
		}
		cfg = loaded
		configPath = path

		// The TUI owns the terminal, so only headless commands may log to stderr.
		interactive := cmd == cmd.Root()
		logs, err = logging.New(cfg.Logging, logging.Options{Verbose: verbose, Stderr: !interactive})
		if err != nil {
			return err
		}
		logger = logs.Get(logging.CategoryBoot)
		logger.Debug("Command starting",
			zap.String("command", cmd.CommandPath()),
			zap.String("config", configPath))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logs != nil {
			_ = logs.Sync()
		}
	},
	RunE: runInteractive,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the gridedit version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "gridedit %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: user config dir)")

	rootCmd.Flags().BoolVar(&noWatch, "no-watch", false, "Do not reload the config file when it changes")

	replayCmd.Flags().BoolVar(&replayAudit, "audit", false, "Print the audit trail after the grid")
	replayCmd.Flags().BoolVar(&replayStrict, "strict", false, "Stop at the first refused command")

	configInitCmd.Flags().BoolVarP(&configForce, "force", "f", false, "Overwrite an existing config file")
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)

	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
