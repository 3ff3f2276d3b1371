package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ChaimaTlili24/Automated-Candidate-Screening-Agent/internal/db"
	"github.com/ChaimaTlili24/Automated-Candidate-Screening-Agent/internal/ingest"
	"github.com/ChaimaTlili24/Automated-Candidate-Screening-Agent/internal/schemas"
)

var (
	ingestFile   string
	ingestURL    string
	ingestTitle  string
	ingestDomain string
)

var ingestJobsCmd = &cobra.Command{
	Use:   "ingest-jobs",
	Short: "Load job postings into the job store",
	Long:  "Load job postings either from a JSON batch file validated against the postings schema, or from a single posting URL reduced to its description text.",
	RunE:  runIngestJobs,
}

// jobPosting mirrors one entry of the postings batch file.
type jobPosting struct {
	Title          string `json:"title"`
	Description    string `json:"description"`
	RequiredSkills string `json:"required_skills,omitempty"`
	Domain         string `json:"domain,omitempty"`
}

func init() {
	ingestJobsCmd.Flags().StringVarP(&ingestFile, "file", "f", "", "Path to JSON file with job postings")
	ingestJobsCmd.Flags().StringVarP(&ingestURL, "url", "u", "", "URL of a single job posting")
	ingestJobsCmd.Flags().StringVarP(&ingestTitle, "title", "t", "", "Job title when ingesting from a URL")
	ingestJobsCmd.Flags().StringVar(&ingestDomain, "domain", "", "Job domain label")
	rootCmd.AddCommand(ingestJobsCmd)
}

func runIngestJobs(cmd *cobra.Command, _ []string) error {
	// Validate mutually exclusive flags
	if ingestFile == "" && ingestURL == "" {
		return fmt.Errorf("either --file or --url must be provided")
	}
	if ingestFile != "" && ingestURL != "" {
		return fmt.Errorf("--file and --url are mutually exclusive; provide only one")
	}
	if ingestURL != "" && ingestTitle == "" {
		return fmt.Errorf("--title is required when ingesting from a URL")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
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

	var postings []jobPosting
	if ingestFile != "" {
		postings, err = loadPostingsFile(ingestFile)
	} else {
		postings, err = loadPostingFromURL(ctx, ingestURL, ingestTitle)
	}
	if err != nil {
		return err
	}

	for _, posting := range postings {
		var requiredSkills *string
		if posting.RequiredSkills != "" {
			requiredSkills = &posting.RequiredSkills
		}
		id, err := database.InsertJob(ctx, db.Job{
			Title:          posting.Title,
			Description:    posting.Description,
			RequiredSkills: requiredSkills,
			Domain:         posting.Domain,
		})
		if err != nil {
			return fmt.Errorf("failed to insert job %q: %w", posting.Title, err)
		}
		fmt.Fprintf(os.Stdout, "Inserted job %d: %s\n", id, posting.Title)
	}

	fmt.Fprintf(os.Stdout, "Ingested %d job posting(s)\n", len(postings))
	return nil
}

// loadPostingsFile reads and schema-validates a postings batch file.
func loadPostingsFile(path string) ([]jobPosting, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read postings file: %w", err)
	}

	if err := schemas.ValidateJobPostings(content); err != nil {
		return nil, err
	}

	var postings []jobPosting
	if err := json.Unmarshal(content, &postings); err != nil {
		return nil, fmt.Errorf("failed to parse postings file: %w", err)
	}
	return postings, nil
}

// loadPostingFromURL fetches one posting page and uses its extracted
// text as the job description.
func loadPostingFromURL(ctx context.Context, urlStr, title string) ([]jobPosting, error) {
	text, err := ingest.FetchPostingText(ctx, urlStr)
	if err != nil {
		return nil, err
	}
	if text == "" {
		return nil, fmt.Errorf("no description text found at %s", urlStr)
	}
	return []jobPosting{{
		Title:       title,
		Description: text,
		Domain:      ingestDomain,
	}}, nil
}
