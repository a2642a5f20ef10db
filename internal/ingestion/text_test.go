package ingestion

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"only whitespace", "   \n\t\n  ", ""},
		{"line endings", "Line 1\r\nLine 2\rLine 3\nLine 4", "Line 1\nLine 2\nLine 3\nLine 4"},
		{"collapse spaces", "Job    Title:   Data  Scientist", "Job Title: Data Scientist"},
		{"headings lose indent", "   ## Requirements\nPython", "## Requirements\nPython"},
		{"bullets keep markers", "- Python\n* SQL\n• Spark", "- Python\n* SQL\n• Spark"},
		{"indented bullets", "Skills:\n  - Python", "Skills:\n  - Python"},
		{"blank line runs", "Tasks\n\n\n\n\nSkills", "Tasks\n\nSkills"},
		{"byte order mark", "\ufeffLocation: Berlin", "Location: Berlin"},
		{"non-breaking space", "Salary:\u00a045000 EUR", "Salary: 45000 EUR"},
		{"form feed between pages", "Page one\fPage two", "Page one\nPage two"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanText(tt.input))
		})
	}
}

func TestCleanText_Idempotent(t *testing.T) {
	input := "  Job Title:  Data Scientist  \r\n\r\n\r\n- Python\n   Berlin   office"
	once := CleanText(input)
	assert.Equal(t, once, CleanText(once))
}
