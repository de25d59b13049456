package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/thebartekbanach/woundfn/pkg/config"
	"github.com/thebartekbanach/woundfn/pkg/logger"
	"go.uber.org/zap"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "woundfn",
	Short: "Wound image processing function",
	Long: `Runs images through image processing code fetched from a git repository
and stores the results in object storage.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./configs/config.yaml)")
}

// loadEnvironment reads the configuration and builds the logger shared by
// all commands.
func loadEnvironment() (config.Config, *zap.Logger, error) {
	v, err := config.New(cfgFile)
	if err != nil {
		return config.Config{}, nil, err
	}

	cfg := config.Load(v)

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return cfg, log, nil
}
