package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kbukum/fetchkit/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		info := version.GetVersionInfo()
		fmt.Fprintf(cmd.OutOrStdout(), "mockserver version %s\n", info.Version)
		if info.GitCommit != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "Commit: %s\n", info.GitCommit)
		}
		if info.BuildTime != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "Built: %s\n", info.BuildTime)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Go: %s\n", info.GoVersion)
	},
}
