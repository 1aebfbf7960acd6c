package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "votingsystem",
	Short: "Run an in-memory election from the terminal",
	Long: `votingsystem keeps a ballot of candidates and a roll of voters in memory
and drives it from an interactive menu. A read-only results monitor can be
served over HTTP and WebSocket alongside the menu.`,
	SilenceUsage: true,
	RunE:         runVotingSystem,
}

func init() {
	flags := rootCmd.Flags()
	flags.String("env-file", ".env", "dotenv file to load before reading the environment")
	flags.Bool("monitor", false, "serve the read-only results monitor")
	flags.String("addr", "", "monitor listen address in host:port form")
	flags.String("log-level", "", "log level: debug, info, warn or error")
	flags.String("log-format", "", "log format: pretty, json or text")
	flags.StringArray("candidate", nil, "candidate to register before the menu starts (repeatable)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
