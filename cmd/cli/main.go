package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	host    string
	timeout time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "ladder-cli",
	Short: "Query and manage a role-ladder server",
	Long: `A command-line client for the role-ladder API. Every command issues one
request and prints the status code and body the server answered with.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&host, "host", "http://localhost:8080", "Base URL of the ladder server")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Abort a request that takes longer than this")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "ladder-cli:", err)
		os.Exit(1)
	}
}
