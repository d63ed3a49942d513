// Package main provides the entry point for the Concept Panel HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "panel_agent",
	Short: "Concept Panel HTTP API Server",
	Long:  "Concept Panel generates synthetic consumer personas and evaluates product concepts against them, via REST API or offline commands.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
