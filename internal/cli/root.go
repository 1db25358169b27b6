// Package cli implements the command-line interface for twisty.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/SeamusWaldron/twisty/internal/config"
	"github.com/SeamusWaldron/twisty/internal/logging"
)

const version = "0.1.0"

var (
	// Global flags
	cfgPath string
	verbose bool

	cfg    *config.Config
	logger = zap.NewNop()
)

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "twisty",
	Short: "Interactive 3x3x3 twisty puzzle in the terminal",
	Long: `twisty - A 3x3x3 twisty puzzle you turn with the mouse, right in your terminal.

Drag across a face to turn its layer, orbit the camera to look around, mirror
a GoCube smart cube over Bluetooth, or render PNG snapshots.`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "twisty %s\n", version)
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Config file (default: ~/.twisty/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log at debug level")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-file", "", "Log file path, or stderr")
	rootCmd.AddCommand(versionCmd)
}

// setup loads configuration and opens the log before any subcommand runs.
func setup(cmd *cobra.Command, args []string) error {
	flags := cmd.Root().PersistentFlags()
	for key, name := range map[string]string{"log.level": "log-level", "log.file": "log-file"} {
		if err := viper.BindPFlag(key, flags.Lookup(name)); err != nil {
			return err
		}
	}

	c, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	if verbose {
		c.Log.Level = "debug"
	}

	l, err := logging.New(c.Log.Level, c.Log.File)
	if err != nil {
		return err
	}

	cfg, logger = c, l
	logger.Debug("starting", zap.String("command", cmd.Name()), zap.String("version", version))
	return nil
}
