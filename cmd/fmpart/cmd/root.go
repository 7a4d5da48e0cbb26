package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/fmpart/fmpart/pkg/config"
	"github.com/fmpart/fmpart/pkg/telemetry"
	"github.com/fmpart/fmpart/pkg/utils"
)

var (
	// Global flags
	verbose    bool
	configPath string

	logger utils.Logger
	cfg    *config.Config

	telemetryShutdown telemetry.ShutdownFunc
)

// rootCmd represents the base command.
var rootCmd = &cobra.Command{
	Use:   "fmpart",
	Short: "A two-way balanced min-cut hypergraph partitioner",
	Long: `fmpart partitions a hypergraph netlist into two balanced parts,
minimizing the number of nets spanning both parts, using the
Fiduccia-Mattheyses iterative-improvement heuristic.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded

		logLevel := utils.ParseLogLevel(cfg.Log.Level)
		if verbose {
			logLevel = utils.LevelDebug
		}
		if cfg.Log.OutputPath != "" {
			fileLogger, err := utils.NewFileLogger(logLevel, cfg.Log.OutputPath)
			if err != nil {
				return fmt.Errorf("failed to open log file: %w", err)
			}
			logger = fileLogger
		} else {
			logger = utils.NewDefaultLogger(logLevel, os.Stdout)
		}
		utils.SetGlobalLogger(logger)

		shutdown, err := telemetry.Init(cmd.Context())
		if err != nil {
			logger.Warn("telemetry initialization failed, continuing without tracing: %v", err)
			shutdown = func(context.Context) error { return nil }
		}
		telemetryShutdown = shutdown

		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if telemetryShutdown != nil {
			return telemetryShutdown(context.Background())
		}
		return nil
	},
}

// Execute adds all child commands to the root command and runs it.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default: search ./config.yaml, ./configs, /etc/fmpart)")

	binName := BinName()
	rootCmd.Example = `  # Partition a netlist into two balanced parts
  ` + binName + ` partition ./circuit.net ./circuit.out

  # Use a custom balance factor
  ` + binName + ` partition ./circuit.net ./circuit.out --balance 0.45

  # Print version information
  ` + binName + ` version`
}

// GetLogger returns the configured logger.
func GetLogger() utils.Logger {
	return logger
}

// GetConfig returns the loaded configuration.
func GetConfig() *config.Config {
	return cfg
}

// BinName returns the base name of the current executable.
func BinName() string {
	return filepath.Base(os.Args[0])
}
