// Package main provides the CLI entry point for sheetchain.
package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/ukaji3/sheetchain-go/internal/logger"
	"github.com/ukaji3/sheetchain-go/pkg/sheetchain/config"
	"github.com/ukaji3/sheetchain-go/pkg/sheetchain/credentials"
)

var (
	configPath      string
	credentialsPath string
	verbose         bool
	logMode         string
)

func main() {
	// A .env file is optional
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sheetchain",
		Short: "Run chains of LLM prompts described in Excel workbooks",
		Long: `sheetchain reads a table of prompts from an Excel sheet, attaches the
referenced cell ranges, and runs the prompts one after another against the
Anthropic Messages API, optionally feeding each response into the next step.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: user config dir/sheetchain/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&credentialsPath, "credentials", "", "Credentials file (default: user config dir/sheetchain/credentials.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logMode, "log-format", "console", "Log format: console or json")

	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newColumnsCmd())
	rootCmd.AddCommand(newKeyCmd())
	return rootCmd
}

func loadConfig() (config.Config, error) {
	return config.Load(configPath)
}

func newLogger() (*logger.Logger, error) {
	mode := "dev"
	if logMode == "json" {
		mode = "prod"
	}
	return logger.New(mode, verbose)
}

func credentialStore() (credentials.Store, error) {
	path := credentialsPath
	if path == "" {
		p, err := credentials.DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	return credentials.Chain{
		credentials.EnvStore{Var: "ANTHROPIC_API_KEY"},
		credentials.NewFileStore(path),
	}, nil
}
