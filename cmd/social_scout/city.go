package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/social-scout/internal/observability"
	"github.com/jonathan/social-scout/internal/pipeline"
	"github.com/jonathan/social-scout/internal/query"
)

var cityCmd = &cobra.Command{
	Use:   "city",
	Short: "Discover hospitality businesses in a city",
	Long: `Combines hospitality keywords (restaurant, bar, cafe, ...) with a city
name to discover Facebook Pages and Instagram profiles, scrapes each one and
writes a consolidated CSV file. Use --keywords to override the defaults.`,
	RunE: runCity,
}

var (
	cityFlags         commonFlags
	cityName          string
	cityKeywords      []string
	cityMaxPerKeyword int
)

func init() {
	cityCmd.Flags().StringVarP(&cityName, "city", "c", "", "Target city, e.g. \"Chicago\" (required)")
	cityCmd.Flags().StringSliceVar(&cityKeywords, "keywords", nil, "Custom keywords (overrides the hospitality defaults)")
	cityCmd.Flags().IntVar(&cityMaxPerKeyword, "max-per-keyword", 10, "Search results per keyword per platform")
	registerCommonFlags(cityCmd, &cityFlags, "city_profiles.csv")

	if err := cityCmd.MarkFlagRequired("city"); err != nil {
		panic(fmt.Sprintf("failed to mark city flag as required: %v", err))
	}

	rootCmd.AddCommand(cityCmd)
}

func runCity(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd, &cityFlags)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("max-per-keyword") || cfg.MaxPerKeyword == 0 {
		cfg.MaxPerKeyword = cityMaxPerKeyword
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	queries := query.ForCity(cityName, cityKeywords)

	ctx := context.Background()
	runner, err := pipeline.FromConfig(ctx, cfg)
	if err != nil {
		return err
	}

	summary, err := runner.Run(ctx, queries, cfg.MaxPerKeyword)
	if summary != nil {
		observability.NewPrinter(os.Stdout).PrintRunSummary(summary)
	}
	return err
}
