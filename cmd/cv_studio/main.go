// Package main provides the entry point for the CV Studio server and CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cv_studio",
	Short: "CV Studio HTTP API server and CLI",
	Long:  "CV Studio manages a structured CV document: block-based text editing, LinkedIn-style imports, AI-backed ATS analysis, and HTML/PDF export via REST API or CLI.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
