package main

import (
	"github.com/spf13/cobra"

	"github.com/kbukum/fetchkit/config"
	"github.com/kbukum/fetchkit/mockserver"
)

var (
	configFile string
	envFile    string
)

var rootCmd = &cobra.Command{
	Use:   "mockserver",
	Short: "Fixture HTTP API for fetch end-to-end tests",
	Long: `mockserver serves echo, upload, form and PDF routes plus bearer-protected
/auth mirrors of each. Configuration comes from config.yml, .env and the
environment (SERVER_PORT, AUTH_SECRET, ...).`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (default: search for config.yml)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", ".env file (default: search for .env)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(signCmd)
	rootCmd.AddCommand(versionCmd)
}

func loadConfig() (*mockserver.Config, error) {
	var opts []config.LoaderOption
	if configFile != "" {
		opts = append(opts, config.WithConfigFile(configFile))
	}
	if envFile != "" {
		opts = append(opts, config.WithEnvFile(envFile))
	}
	return mockserver.LoadConfig(opts...)
}
