// Package root contains the root command for the application
package root

import (
	"fmt"

	"fjacquet/pdn-calc/internal/config"
	"fjacquet/pdn-calc/internal/container"
	"fjacquet/pdn-calc/internal/logging"

	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to all commands
type CommonFlags struct {
	ConfigFile string
	LogLevel   string
	LogFormat  string
	DataDir    string
}

var (
	// Log is the shared logger instance for commands
	Log logging.Logger = logging.NewLogrusAdapter("info", "text")

	// AppConfig is the configuration resolved before any subcommand runs
	AppConfig *config.Config

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "pdn-calc",
		Short: "A debt-to-income (ПДН) calculator backed by regional wage statistics.",
		Long: `pdn-calc computes the debt-to-income ratio (ПДН) from a monthly income and
a list of monthly loan payments. The income can be replaced by the average
wage of a Russian region, loaded from a Rosstat spreadsheet, an optional
remote page, a cached snapshot or built-in defaults.`,
		SilenceUsage: true,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to pdn-calc!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config.LoadEnv()

			cfg, err := config.InitializeConfigFrom(SharedFlags.ConfigFile)
			if err != nil {
				return err
			}
			applyFlagOverrides(cfg)

			AppConfig = cfg
			Log = config.ConfigureLoggingFromConfig(cfg)
			Log.Debug("Configuration loaded",
				logging.F(logging.FieldBackend, cfg.Snapshot.Backend),
				logging.F(logging.FieldFile, cfg.SpreadsheetPath()))
			return nil
		},
	}

	// SharedFlags holds the persistent flags of the root command
	SharedFlags = CommonFlags{}
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.ConfigFile, "config", "c", "", "Config file (default: config.yaml in $HOME/.pdn-calc, .pdn-calc or .)")
	Cmd.PersistentFlags().StringVar(&SharedFlags.LogLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	Cmd.PersistentFlags().StringVar(&SharedFlags.LogFormat, "log-format", "", "Log format (text, json)")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.DataDir, "data-dir", "d", "", "Directory holding the spreadsheet and the wage snapshot")
}

// applyFlagOverrides lets explicit command-line flags win over file and environment values.
func applyFlagOverrides(cfg *config.Config) {
	if SharedFlags.LogLevel != "" {
		cfg.Log.Level = SharedFlags.LogLevel
	}
	if SharedFlags.LogFormat != "" {
		cfg.Log.Format = SharedFlags.LogFormat
	}
	if SharedFlags.DataDir != "" {
		cfg.Data.Directory = SharedFlags.DataDir
	}
}

// NewContainer builds the application container for cmd, loading the wage table.
func NewContainer(cmd *cobra.Command) (*container.Container, error) {
	if AppConfig == nil {
		return nil, fmt.Errorf("configuration not initialized")
	}
	return container.NewContainerWithLogger(cmd.Context(), AppConfig, Log)
}
