package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"gitlab.com/pagetest.net/internal/adapter/logging"
	"gitlab.com/pagetest.net/internal/config"
	logger2 "gitlab.com/pagetest.net/internal/global/logger"
)

// errTestsFailed makes the process exit non-zero without logging a second error.
var errTestsFailed = errors.New("tests failed")

var (
	envFlag string
	sysCfg  *config.AppConfig
	logger  *logging.ZapLogger
)

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "pagetest",
		Short:         "Generate and run browser tests for web pages",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return initConfig()
		},
		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	cmd.PersistentFlags().StringVarP(&envFlag, "env", "e", os.Getenv("PAGETEST_ENV"), "load <env>.env before reading the environment")

	cmd.AddCommand(newServeCmd(), newGenerateCmd(), newRunCmd(), newArtifactsCmd(), newTokenCmd())
	return cmd
}

// initConfig loads the optional env file, then the configuration and the logger.
func initConfig() error {
	if envFlag != "" {
		if err := godotenv.Load(envFlag + ".env"); err != nil {
			return fmt.Errorf("error loading %s.env file: %w", envFlag, err)
		}
	}

	sysCfg = config.NewSystemConfig()
	logger = logging.NewConfiguredLogger(sysCfg.LogConfig, sysCfg.DebugMode)
	logger2.Set(logger)
	return nil
}
