package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ChaimaTlili24/Automated-Candidate-Screening-Agent/internal/config"
	"github.com/ChaimaTlili24/Automated-Candidate-Screening-Agent/internal/server"
)

var (
	servePort   int
	serveConfig string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes candidate upload, job and matching endpoints.`,
}

func init() {
	serveCmd.RunE = runServe
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().StringVar(&serveConfig, "config", "", "Path to JSON config file")
	rootCmd.AddCommand(serveCmd)
}

// loadServeConfig resolves configuration from the optional config file
// and the environment. Environment variables win over file values.
func loadServeConfig() (config.Config, error) {
	var cfg config.Config
	if serveConfig != "" {
		loaded, err := config.LoadConfig(serveConfig)
		if err != nil {
			return cfg, err
		}
		if err := loaded.Validate(); err != nil {
			return cfg, err
		}
		cfg = *loaded
	}
	cfg.FromEnv()
	return cfg, nil
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := loadServeConfig()
	if err != nil {
		return err
	}

	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}
	if v := os.Getenv("PORT"); v != "" && !serveCmd.Flags().Changed("port") {
		if _, err := fmt.Sscanf(v, "%d", &servePort); err != nil {
			return fmt.Errorf("invalid PORT value %q", v)
		}
	}

	srv, err := server.New(server.Config{
		Port:           servePort,
		DatabaseURL:    cfg.DatabaseURL,
		APIKey:         cfg.APIKey,
		EmbeddingModel: cfg.EmbeddingModel,
		OCRLanguages:   cfg.OCRLanguages,
		MaxUploadMB:    cfg.MaxUploadMB,
		ExtractWorkers: cfg.ExtractWorkers,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
