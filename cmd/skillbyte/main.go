// Package main provides the skillbyte command line: resume analysis, job
// ranking, the HTTP API server and the queue worker.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	configPath  string
	catalogPath string
	verbose     bool
)

var rootCmd = &cobra.Command{
	Use:   "skillbyte",
	Short: "Resume skill analysis and job matching",
	Long: `Skillbyte extracts skills from resume text, infers an experience tier and role,
matches the resume against job archetypes and writes improvement feedback.

Configuration is read from --config, then environment variables, then flags.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config.json file")
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "", "Path to a custom keyword catalog (defaults to the built-in catalog)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print detailed debug information")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
