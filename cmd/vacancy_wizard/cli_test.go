package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/vacancy-wizard/internal/schema"
	"github.com/jonathan/vacancy-wizard/internal/types"
)

const sampleAd = `Jobtitel: Data Scientist
Unternehmen: ACME Analytics GmbH
Stadt: Berlin
Wir suchen in Vollzeit einen Senior Data Scientist.
Proficiency in Python and machine learning libraries (e.g., scikit-learn, TensorFlow).
`

// offlineEnv keeps commands away from ESCO, the LLM providers and the database.
func offlineEnv(t *testing.T) {
	t.Helper()
	t.Setenv("ESCO_ENABLED", "false")
	t.Setenv("LLM_PROVIDER", "gemini")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("LOG_LEVEL", "error")
}

func writeAd(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ad.txt")
	require.NoError(t, os.WriteFile(path, []byte(sampleAd), 0o644))
	return path
}

// execute runs the root command and resets the flag variables afterwards.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(func() {
		configPath, logLevel, language = "", "", ""
		extractUseLLM, extractStep, extractOut = false, 0, ""
		generateKind, generateTarget, generateUseLLM = "job_ad", "", false
		schemaJSON = false
		taxonomyLimit = 10
		servePort = 0
	})

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestSchemaCommand(t *testing.T) {
	offlineEnv(t)

	t.Run("table", func(t *testing.T) {
		out, err := execute(t, "schema", "--lang", "en")
		require.NoError(t, err)
		assert.Contains(t, out, "1. Basic Data")
		assert.Contains(t, out, "job_title")
		assert.Contains(t, out, "mandatory")
	})

	t.Run("json schema", func(t *testing.T) {
		out, err := execute(t, "schema", "--json")
		require.NoError(t, err)
		var doc map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &doc))
		assert.Contains(t, doc, "properties")
	})
}

func TestBooleanCommand(t *testing.T) {
	offlineEnv(t)

	out, err := execute(t, "boolean", writeAd(t))
	require.NoError(t, err)
	assert.Equal(t,
		`("Python" OR "machine learning libraries" OR "scikit-learn" OR "TensorFlow") AND "Data Scientist" AND Berlin`+"\n",
		out)
}

func TestBooleanCommand_MissingFile(t *testing.T) {
	offlineEnv(t)

	_, err := execute(t, "boolean", filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load job ad")
}

func TestExtractCommand(t *testing.T) {
	offlineEnv(t)
	ad := writeAd(t)

	t.Run("prints the record", func(t *testing.T) {
		out, err := execute(t, "extract", ad, "--lang", "en")
		require.NoError(t, err)
		assert.Contains(t, out, "INGEST")
		assert.Contains(t, out, "VACANCY RECORD")
		assert.Contains(t, out, "Data Scientist")
	})

	t.Run("renders a step", func(t *testing.T) {
		out, err := execute(t, "extract", ad, "--step", "1")
		require.NoError(t, err)
		assert.Contains(t, out, "STEP 1")
	})

	t.Run("invalid step", func(t *testing.T) {
		_, err := execute(t, "extract", ad, "--step", "11")
		assert.Error(t, err)
	})

	t.Run("writes json", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "vacancy.json")
		out, err := execute(t, "extract", ad, "--out", path)
		require.NoError(t, err)
		assert.Contains(t, out, "Record written to")

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		var record map[string]any
		require.NoError(t, json.Unmarshal(data, &record))
		assert.Equal(t, "Data Scientist", record["job_title"])
	})

	t.Run("writes markdown", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "vacancy.md")
		_, err := execute(t, "extract", ad, "--out", path)
		require.NoError(t, err)
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "**Job title:** Data Scientist")
	})

	t.Run("unsupported output format", func(t *testing.T) {
		_, err := execute(t, "extract", ad, "--out", filepath.Join(t.TempDir(), "vacancy.csv"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported output format")
	})

	t.Run("llm without credentials", func(t *testing.T) {
		_, err := execute(t, "extract", ad, "--llm")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "LLM credentials")
	})
}

func TestGenerateCommand(t *testing.T) {
	offlineEnv(t)
	ad := writeAd(t)

	t.Run("unknown kind", func(t *testing.T) {
		_, err := execute(t, "generate", ad, "--kind", "poem")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown generation kind")
	})

	t.Run("unknown target", func(t *testing.T) {
		_, err := execute(t, "generate", ad, "--kind", "email", "--target", "CEO")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown email target")
	})

	t.Run("no provider fails softly", func(t *testing.T) {
		_, err := execute(t, "generate", ad)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "generation failed")
	})
}

func TestTaxonomyCommand_Disabled(t *testing.T) {
	offlineEnv(t)

	_, err := execute(t, "taxonomy", "skills", "python")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disabled")
}

func TestEncodeRecord(t *testing.T) {
	reg := schema.Default()
	record := reg.FillDefaults(types.NewRecord())
	record.SetText("job_title", "Data Scientist")

	var buf bytes.Buffer
	require.NoError(t, encodeRecord(&buf, ".XLSX", record, reg, "en"))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("PK")))

	buf.Reset()
	require.NoError(t, encodeRecord(&buf, ".markdown", record, reg, "en"))
	assert.Contains(t, buf.String(), "Data Scientist")
}
