// Package main provides the entry point for the vacancy wizard CLI and HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	configPath string
	logLevel   string
	language   string
)

var rootCmd = &cobra.Command{
	Use:   "vacancy_wizard",
	Short: "Vacancy Wizard CLI and HTTP API Server",
	Long: "Vacancy Wizard turns job ads (files, URLs or pasted text) into a structured vacancy record, " +
		"suggests missing details and generates recruiting content.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); overrides the config")
	rootCmd.PersistentFlags().StringVarP(&language, "lang", "l", "", "UI language (de or en); overrides the config")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
