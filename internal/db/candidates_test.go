package db

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRow feeds fixed column values into Scan. Integration tests verify
// the SQL itself against a real database.
type fakeRow struct {
	values []any
}

func (r *fakeRow) Scan(dest ...any) error {
	for i, d := range dest {
		switch v := d.(type) {
		case *uuid.UUID:
			*v = r.values[i].(uuid.UUID)
		case *string:
			*v = r.values[i].(string)
		case *[]string:
			*v = r.values[i].([]string)
		case *[]byte:
			*v = r.values[i].([]byte)
		case **int64:
			*v = r.values[i].(*int64)
		case **string:
			*v = r.values[i].(*string)
		case **float64:
			*v = r.values[i].(*float64)
		case **time.Time:
			*v = r.values[i].(*time.Time)
		case *time.Time:
			*v = r.values[i].(time.Time)
		}
	}
	return nil
}

func candidateRow(letters []byte) *fakeRow {
	now := time.Now().UTC()
	return &fakeRow{values: []any{
		uuid.New(),             // id
		"cv",                   // kind
		"Jane Doe",             // name
		"jane@example.com",     // email
		[]string{"go", "sql"},  // skills
		letters,                // cover_letters
		(*int64)(nil),          // job_id
		(*string)(nil),         // job_title
		(*float64)(nil),        // last_match_score
		(*time.Time)(nil),      // last_matched_at
		now,                    // created_at
		now,                    // updated_at
	}}
}

func TestScanCandidate(t *testing.T) {
	t.Run("Decodes cover letters", func(t *testing.T) {
		letters, err := json.Marshal([]CoverLetter{
			{JobID: 7, JobTitle: "Data Engineer", Content: "Dear team,"},
		})
		require.NoError(t, err)

		c, err := scanCandidate(candidateRow(letters))
		require.NoError(t, err)
		assert.Equal(t, "jane@example.com", c.Email)
		assert.Equal(t, []string{"go", "sql"}, c.Skills)
		require.Len(t, c.CoverLetters, 1)
		assert.Equal(t, int64(7), c.CoverLetters[0].JobID)
	})

	t.Run("Empty cover letters column", func(t *testing.T) {
		c, err := scanCandidate(candidateRow(nil))
		require.NoError(t, err)
		assert.Empty(t, c.CoverLetters)
	})

	t.Run("Malformed cover letters column", func(t *testing.T) {
		_, err := scanCandidate(candidateRow([]byte(`{broken`)))
		assert.Error(t, err)
	})
}
