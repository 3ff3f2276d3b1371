package extraction

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractSkillSection(t *testing.T) {
	tests := []struct {
		name     string
		lines    []string
		expected []string
	}{
		{
			name:     "Header then boundary captures between",
			lines:    []string{"John Doe", "Skills:", "Python", "SQL", "Experience:", "Acme Corp"},
			expected: []string{"Python", "SQL"},
		},
		{
			name:     "No header yields empty list",
			lines:    []string{"John Doe", "Experience: Acme"},
			expected: []string{},
		},
		{
			name:     "Header immediately followed by boundary yields empty list",
			lines:    []string{"Skills", "Education"},
			expected: []string{},
		},
		{
			name:     "Capture runs to end without boundary",
			lines:    []string{"Technical Skills", "Go", "Rust"},
			expected: []string{"Go", "Rust"},
		},
		{
			name:     "Header match is case-insensitive substring",
			lines:    []string{"MY SKILLSET", "Docker"},
			expected: []string{"Docker"},
		},
		{
			name:     "Boundary match is case-insensitive",
			lines:    []string{"Skills", "Kubernetes", "EDUCATION", "MIT"},
			expected: []string{"Kubernetes"},
		},
		{
			name:     "Scanning stops at first boundary",
			lines:    []string{"Skills", "Go", "Projects", "More skills", "Terraform"},
			expected: []string{"Go"},
		},
		{
			name:     "Empty input",
			lines:    []string{},
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ExtractSkillSection(tt.lines)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestScanLineTransitions(t *testing.T) {
	// Idle stays idle on ordinary lines.
	next, emit, stop := scanLine(stateIdle, "John Doe")
	assert.Equal(t, stateIdle, next)
	assert.False(t, emit)
	assert.False(t, stop)

	// A skill header starts capture without emitting.
	next, emit, stop = scanLine(stateIdle, "Skills:")
	assert.Equal(t, stateCapturing, next)
	assert.False(t, emit)
	assert.False(t, stop)

	// Capturing emits ordinary lines.
	next, emit, stop = scanLine(stateCapturing, "Python")
	assert.Equal(t, stateCapturing, next)
	assert.True(t, emit)
	assert.False(t, stop)

	// A boundary line stops the scan without emitting.
	_, emit, stop = scanLine(stateCapturing, "Work Experience")
	assert.False(t, emit)
	assert.True(t, stop)
}
