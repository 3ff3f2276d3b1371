package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ChaimaTlili24/Automated-Candidate-Screening-Agent/internal/db"
	"github.com/ChaimaTlili24/Automated-Candidate-Screening-Agent/internal/embedding"
	"github.com/ChaimaTlili24/Automated-Candidate-Screening-Agent/internal/matching"
)

var (
	matchCandidate string
	matchJobID     int64
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Score one candidate against one job",
	Long:  `Run a single candidate-to-job match and print the stored match result as JSON.`,
	RunE:  runMatch,
}

func init() {
	matchCmd.Flags().StringVar(&matchCandidate, "candidate", "", "Candidate profile ID or email (required)")
	matchCmd.Flags().Int64Var(&matchJobID, "job", 0, "Job ID (required)")
	_ = matchCmd.MarkFlagRequired("candidate")
	_ = matchCmd.MarkFlagRequired("job")
	rootCmd.AddCommand(matchCmd)
}

func runMatch(cmd *cobra.Command, _ []string) error {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	database, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	embedder, err := embedding.NewGeminiEmbedder(ctx, apiKey, embedding.DefaultModel)
	if err != nil {
		return fmt.Errorf("failed to create embedding client: %w", err)
	}
	defer func() { _ = embedder.Close() }()

	service := matching.NewService(database, database, database, embedder)
	result, err := service.Match(ctx, matchCandidate, matchJobID)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}
