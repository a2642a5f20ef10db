package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanJSONBlock(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"json code block", "```json\n{\"key\": \"value\"}\n```", `{"key": "value"}`},
		{"generic code block", "```\n{\"key\": \"value\"}\n```", `{"key": "value"}`},
		{"plain JSON", `{"key": "value"}`, `{"key": "value"}`},
		{"preamble", "Here is the JSON:\n{\"company\": \"Acme\"}", `{"company": "Acme"}`},
		{"trailing text", "{\"key\": \"value\"}\n\nAnything else?", `{"key": "value"}`},
		{"nested objects", "Output:\n{\"outer\": {\"inner\": \"value\"}}", `{"outer": {"inner": "value"}}`},
		{"array", "Items:\n[\"a\", \"b\"]", `["a", "b"]`},
		{"no JSON", "nothing here", "nothing here"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanJSONBlock(tt.input))
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abcdef", 3))
	assert.Equal(t, "abc", Truncate("abc", 10))
	assert.Equal(t, "äöü", Truncate("äöüß", 3))
	assert.Equal(t, "abc", Truncate("abc", 0))
}
