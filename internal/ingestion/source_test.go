package ingestion

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSource(t *testing.T) {
	src := NewSource(SourceText, "", "Job Title: Data Scientist")

	assert.Equal(t, SourceText, src.Kind)
	assert.Len(t, src.Hash, 64)
	assert.Equal(t, "Job Title: Data Scientist", src.Text)

	_, err := time.Parse(time.RFC3339, src.Timestamp)
	require.NoError(t, err)
}

func TestComputeHash(t *testing.T) {
	assert.Equal(t, computeHash("a"), computeHash("a"))
	assert.NotEqual(t, computeHash("a"), computeHash("b"))
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", computeHash(""))
}

func TestSource_ToJSON_OmitsText(t *testing.T) {
	src := NewSource(SourceURL, "https://example.com/job", "secret body")
	src.Platform = "greenhouse"

	data, err := src.ToJSON()
	require.NoError(t, err)
	assert.NotContains(t, string(data), "secret body")

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "url", decoded["kind"])
	assert.Equal(t, "https://example.com/job", decoded["name"])
	assert.Equal(t, "greenhouse", decoded["platform"])
	assert.NotContains(t, decoded, "from_cache")
}
