package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetIngestFlags() {
	ingestFile = ""
	ingestURL = ""
	ingestTitle = ""
	ingestDomain = ""
}

func TestRunIngestJobsFlagValidation(t *testing.T) {
	tests := []struct {
		name        string
		file        string
		url         string
		title       string
		errorString string
	}{
		{
			name:        "Neither --file nor --url",
			errorString: "either --file or --url must be provided",
		},
		{
			name:        "Both --file and --url",
			file:        "jobs.json",
			url:         "https://example.com/posting",
			errorString: "mutually exclusive",
		},
		{
			name:        "URL without --title",
			url:         "https://example.com/posting",
			errorString: "--title is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetIngestFlags()
			ingestFile = tt.file
			ingestURL = tt.url
			ingestTitle = tt.title

			err := runIngestJobs(ingestJobsCmd, nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorString)
		})
	}
}

func TestLoadPostingsFile(t *testing.T) {
	t.Run("Valid file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "jobs.json")
		content := `[{"title": "Data Engineer", "description": "Pipelines.", "required_skills": "python sql"}]`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		postings, err := loadPostingsFile(path)
		require.NoError(t, err)
		require.Len(t, postings, 1)
		assert.Equal(t, "Data Engineer", postings[0].Title)
		assert.Equal(t, "python sql", postings[0].RequiredSkills)
	})

	t.Run("Schema violation", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "jobs.json")
		require.NoError(t, os.WriteFile(path, []byte(`[{"title": "No description"}]`), 0o600))

		_, err := loadPostingsFile(path)
		assert.Error(t, err)
	})

	t.Run("Missing file", func(t *testing.T) {
		_, err := loadPostingsFile(filepath.Join(t.TempDir(), "nope.json"))
		assert.Error(t, err)
	})
}
