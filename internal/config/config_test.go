package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Run("Loads valid config", func(t *testing.T) {
		path := writeTempConfig(t, `{
			"database_url": "postgres://localhost/screening",
			"api_key": "test-key",
			"embedding_model": "text-embedding-004",
			"ocr_languages": ["eng", "fra"],
			"max_upload_mb": 16,
			"extract_workers": 4
		}`)

		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "postgres://localhost/screening", cfg.DatabaseURL)
		assert.Equal(t, "test-key", cfg.APIKey)
		assert.Equal(t, "text-embedding-004", cfg.EmbeddingModel)
		assert.Equal(t, []string{"eng", "fra"}, cfg.OCRLanguages)
		assert.Equal(t, 16, cfg.MaxUploadMB)
		assert.Equal(t, 4, cfg.ExtractWorkers)
	})

	t.Run("Empty path", func(t *testing.T) {
		_, err := LoadConfig("")
		assert.Error(t, err)
	})

	t.Run("Missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
		assert.Error(t, err)
	})

	t.Run("Invalid JSON", func(t *testing.T) {
		path := writeTempConfig(t, `{not json`)
		_, err := LoadConfig(path)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse config JSON")
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"Empty config is valid", Config{}, false},
		{"Positive limits", Config{MaxUploadMB: 16, ExtractWorkers: 2}, false},
		{"Negative upload limit", Config{MaxUploadMB: -1}, true},
		{"Negative worker count", Config{ExtractWorkers: -3}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	defaults := Config{
		EmbeddingModel: "text-embedding-004",
		OCRLanguages:   []string{"eng"},
		MaxUploadMB:    16,
		ExtractWorkers: 4,
	}

	t.Run("Fills empty fields", func(t *testing.T) {
		cfg := Config{DatabaseURL: "postgres://db/x"}
		merged := cfg.MergeWithDefaults(defaults)
		assert.Equal(t, "postgres://db/x", merged.DatabaseURL)
		assert.Equal(t, "text-embedding-004", merged.EmbeddingModel)
		assert.Equal(t, []string{"eng"}, merged.OCRLanguages)
		assert.Equal(t, 16, merged.MaxUploadMB)
		assert.Equal(t, 4, merged.ExtractWorkers)
	})

	t.Run("Keeps set fields", func(t *testing.T) {
		cfg := Config{
			EmbeddingModel: "custom-model",
			OCRLanguages:   []string{"deu"},
			MaxUploadMB:    32,
			ExtractWorkers: 8,
		}
		merged := cfg.MergeWithDefaults(defaults)
		assert.Equal(t, "custom-model", merged.EmbeddingModel)
		assert.Equal(t, []string{"deu"}, merged.OCRLanguages)
		assert.Equal(t, 32, merged.MaxUploadMB)
		assert.Equal(t, 8, merged.ExtractWorkers)
	})
}

func TestFromEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://env/db")
	t.Setenv("GEMINI_API_KEY", "env-key")
	t.Setenv("EMBEDDING_MODEL", "env-model")

	cfg := Config{DatabaseURL: "postgres://file/db"}
	cfg.FromEnv()

	assert.Equal(t, "postgres://env/db", cfg.DatabaseURL)
	assert.Equal(t, "env-key", cfg.APIKey)
	assert.Equal(t, "env-model", cfg.EmbeddingModel)
}
