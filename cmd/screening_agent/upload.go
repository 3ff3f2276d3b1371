package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ChaimaTlili24/Automated-Candidate-Screening-Agent/internal/db"
	"github.com/ChaimaTlili24/Automated-Candidate-Screening-Agent/internal/extraction"
)

var (
	uploadFile  string
	uploadName  string
	uploadEmail string
)

var uploadCmd = &cobra.Command{
	Use:   "upload",
	Short: "Ingest a candidate CV from a local file",
	Long:  `Extract the skill section from a CV file and store the candidate profile without running the server.`,
	RunE:  runUpload,
}

func init() {
	uploadCmd.Flags().StringVar(&uploadFile, "file", "", "Path to CV file (.jpg, .jpeg, .png, .pdf, .docx) (required)")
	uploadCmd.Flags().StringVar(&uploadName, "name", "", "Candidate name (required)")
	uploadCmd.Flags().StringVar(&uploadEmail, "email", "", "Candidate email (required)")
	_ = uploadCmd.MarkFlagRequired("file")
	_ = uploadCmd.MarkFlagRequired("name")
	_ = uploadCmd.MarkFlagRequired("email")
	rootCmd.AddCommand(uploadCmd)
}

func runUpload(cmd *cobra.Command, _ []string) error {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}

	format, ok := extraction.FormatForFilename(uploadFile)
	if !ok {
		return fmt.Errorf("unsupported format: %s", filepath.Ext(uploadFile))
	}

	data, err := os.ReadFile(uploadFile)
	if err != nil {
		return fmt.Errorf("failed to read CV file: %w", err)
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

	extractor := extraction.New(extraction.NewTesseractEngine(), extraction.NewFitzRasterizer())
	lines, err := extractor.Extract(ctx, extraction.RawDocument{Data: data, Format: format})
	if err != nil {
		return err
	}
	skills := extraction.ExtractSkillSection(lines)

	candidate, err := database.UpsertCandidate(ctx, uploadName, uploadEmail, skills)
	if err != nil {
		return fmt.Errorf("failed to store candidate: %w", err)
	}

	fmt.Fprintf(os.Stdout, "Stored candidate %s (%s)\n", candidate.ID, candidate.Email)
	fmt.Fprintf(os.Stdout, "Extracted skills: %d\n", len(candidate.Skills))
	for _, skill := range candidate.Skills {
		fmt.Fprintf(os.Stdout, "  - %s\n", skill)
	}
	return nil
}
