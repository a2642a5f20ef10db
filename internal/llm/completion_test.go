package llm

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubClient struct {
	text       string
	err        error
	lastPrompt string
}

func (s *stubClient) GenerateContent(_ context.Context, prompt string, _ ModelTier) (string, error) {
	s.lastPrompt = prompt
	return s.text, s.err
}

func (s *stubClient) GenerateJSON(_ context.Context, prompt string, _ ModelTier) (string, error) {
	s.lastPrompt = prompt
	return s.text, s.err
}

func (s *stubClient) GetModel(ModelTier) string { return "stub" }
func (s *stubClient) Close() error              { return nil }

var testSchema = ExtractionSchema{
	Name:        "Vacancy",
	Description: "Extract vacancy fields.",
	Fields: []SchemaField{
		{Name: "job_title", Required: true},
		{Name: "must_have_skills", Type: "[\"string\"]"},
	},
}

func TestCompletion_ExtractFields(t *testing.T) {
	stub := &stubClient{text: `{"job_title":"Data Scientist","must_have_skills":["Python","SQL"],"vacation_days":30,"city":null}`}
	c := NewCompletion(stub, nil)

	fields := c.ExtractFields(t.Context(), testSchema, "Jobtitel: Data Scientist", "English")

	assert.Equal(t, "Data Scientist", fields["job_title"])
	assert.Equal(t, "Python, SQL", fields["must_have_skills"])
	assert.Equal(t, "30", fields["vacation_days"])
	assert.Equal(t, "", fields["city"])
	assert.Contains(t, stub.lastPrompt, `"job_title": string (required)`)
	assert.Contains(t, stub.lastPrompt, "Write values in English.")
}

func TestCompletion_ExtractFields_TruncatesInput(t *testing.T) {
	stub := &stubClient{text: `{}`}
	c := NewCompletion(stub, nil)

	long := strings.Repeat("x", MaxExtractionInput) + "TAIL"
	c.ExtractFields(t.Context(), testSchema, long, "")

	assert.NotContains(t, stub.lastPrompt, "TAIL")
}

func TestCompletion_SoftFailures(t *testing.T) {
	failing := NewCompletion(&stubClient{err: errors.New("quota exceeded")}, nil)
	fields := failing.ExtractFields(t.Context(), testSchema, "text", "")
	assert.Equal(t, map[string]string{ErrorKey: "quota exceeded"}, fields)

	text := failing.GenerateText(t.Context(), "prompt", TierAdvanced)
	assert.True(t, IsErrorText(text))
	assert.Contains(t, text, "quota exceeded")

	invalid := NewCompletion(&stubClient{text: "no json at all"}, nil)
	assert.Contains(t, invalid.ExtractFields(t.Context(), testSchema, "text", ""), ErrorKey)

	none := NewCompletion(nil, nil)
	assert.False(t, none.Available())
	assert.Contains(t, none.ExtractFields(t.Context(), testSchema, "text", ""), ErrorKey)
	assert.True(t, IsErrorText(none.GenerateText(t.Context(), "p", TierLite)))
	assert.NoError(t, none.Close())
}

func TestCompletion_GenerateText(t *testing.T) {
	c := NewCompletion(&stubClient{text: "  We are hiring!\n"}, nil)
	assert.Equal(t, "We are hiring!", c.GenerateText(t.Context(), "write an ad", TierAdvanced))
}
