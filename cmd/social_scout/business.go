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

var businessCmd = &cobra.Command{
	Use:   "business",
	Short: "Find social profiles for one or more business names",
	Long: `Searches the web for each business name's Facebook Page and Instagram
profile, scrapes the public metadata of every discovered profile and writes
the merged rows to a CSV file.`,
	RunE: runBusiness,
}

var (
	businessFlags      commonFlags
	businessNames      []string
	businessMaxResults int
)

func init() {
	businessCmd.Flags().StringArrayVarP(&businessNames, "business", "b", nil, "Business name to search for (repeatable, required)")
	businessCmd.Flags().IntVar(&businessMaxResults, "max-results", 10, "Search results per platform per business")
	registerCommonFlags(businessCmd, &businessFlags, "social_profiles.csv")

	if err := businessCmd.MarkFlagRequired("business"); err != nil {
		panic(fmt.Sprintf("failed to mark business flag as required: %v", err))
	}

	rootCmd.AddCommand(businessCmd)
}

func runBusiness(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd, &businessFlags)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("max-results") || cfg.MaxResults == 0 {
		cfg.MaxResults = businessMaxResults
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	queries := make([]query.Query, 0, len(businessNames)*2)
	for _, name := range businessNames {
		queries = append(queries, query.ForBusiness(name)...)
	}

	ctx := context.Background()
	runner, err := pipeline.FromConfig(ctx, cfg)
	if err != nil {
		return err
	}

	summary, err := runner.Run(ctx, queries, cfg.MaxResults)
	if summary != nil {
		observability.NewPrinter(os.Stdout).PrintRunSummary(summary)
	}
	return err
}
