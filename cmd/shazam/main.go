// Command shazam is the CLI entry point, exposing "serve" and
// "build-index" subcommands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "shazam",
	Short: "Audio fingerprinting and identification service",
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(buildIndexCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
