package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "stockscope",
	Short: "StockScope - stock analysis API and report generator",
	Long: `StockScope fetches company fundamentals and price history, computes
financial ratios and technical indicators, and serves the results as a
JSON API. Generated reports can include LLM analyst commentary.`,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug mode")
}

func main() {
	// API keys for LLM providers usually live in a local .env file.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
