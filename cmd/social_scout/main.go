// Package main provides the social_scout CLI for discovering and scraping
// public Facebook and Instagram business profiles.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "social_scout",
	Short: "Discover & scrape public Facebook and Instagram business profiles",
	Long: `social_scout finds public Facebook Page and Instagram business-profile URLs
via web search, fetches each profile's public metadata, and writes the
merged results to a CSV file.

Credentials (Facebook cookies, Instagram login) are optional but reduce
rate-limiting and unlock more complete data.`,
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	logrus.SetOutput(os.Stderr)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
