package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"network-quality/internal/config"
	"network-quality/internal/database"
	"network-quality/internal/store"
	"network-quality/internal/version"
)

var (
	configFile string
	cfg        config.Config
	logger     *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:           "netquality",
	Short:         "Measure the quality of the current network connection",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(viper.New(), cmd.Flags(), configFile)
		if err != nil {
			return err
		}
		if err := loaded.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		cfg = loaded
		logger = config.SetupLogging(os.Stderr, cfg.LogLevel, cfg.LogFormat)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.FullVersion())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to a YAML config file")
	config.RegisterFlags(rootCmd.PersistentFlags())

	runCmd.Flags().Bool("json", false, "Print the snapshot as JSON")
	runCmd.Flags().String("report", "", "Also write a text and chart report into this directory")

	rootCmd.AddCommand(serveCmd, runCmd, versionCmd)
}

// openStore creates the snapshot store, backed by the database when one is configured.
// The returned close function is safe to call when no database is used.
func openStore() (*store.Store, func(), error) {
	if cfg.DatabasePath == "" {
		return store.New(nil, logger), func() {}, nil
	}

	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		return nil, nil, err
	}
	if err := db.InitSchema(); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to initialize database schema: %w", err)
	}

	closeDB := func() {
		if err := db.Checkpoint(); err != nil {
			logger.Warn("Failed to checkpoint database", "error", err)
		}
		if err := db.Close(); err != nil {
			logger.Warn("Failed to close database", "error", err)
		}
	}
	return store.New(db, logger), closeDB, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if logger != nil {
			logger.Error("Command failed", "error", err)
		} else {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
