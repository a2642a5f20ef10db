package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jonathan/vacancy-wizard/internal/schema"
	"github.com/jonathan/vacancy-wizard/internal/types"
)

func sampleRecord() types.Record {
	reg := schema.Default()
	r := reg.FillDefaults(types.NewRecord())
	r.SetText("job_title", "Data Scientist")
	r.SetText("city", "Berlin")
	r.SetText("must_have_skills", "Python, SQL")
	r.Set("desired_publication_channels", types.List("LinkedIn Remote Jobs", "WeWorkRemotely"))
	return r
}

func TestKeyTitle(t *testing.T) {
	tests := map[types.FieldKey]string{
		"job_title":                    "Job title",
		"city":                         "City",
		"desired_publication_channels": "Desired publication channels",
		"":                             "",
	}
	for in, want := range tests {
		assert.Equal(t, want, KeyTitle(in), string(in))
	}
}

func TestMarkdown(t *testing.T) {
	reg := schema.Default()
	md := Markdown(sampleRecord(), reg)
	lines := strings.Split(md, "\n")

	require.Len(t, lines, len(reg.AllKeys()))
	assert.Equal(t, "**Job title:** Data Scientist", lines[0])
	assert.Contains(t, lines, "**City:** Berlin")
	assert.Contains(t, lines, "**Must have skills:** Python, SQL")
	assert.Contains(t, lines, "**Desired publication channels:** LinkedIn Remote Jobs, WeWorkRemotely")
	assert.Contains(t, lines, "**Salary range:** ")
}

func TestMarkdown_IncludesGeneratedContent(t *testing.T) {
	reg := schema.Default()
	record := sampleRecord()
	record.SetText(schema.GeneratedJobAd, "# Join us")

	md := Markdown(record, reg)
	assert.True(t, strings.HasSuffix(md, "**Generated job ad:** # Join us"))
	assert.NotContains(t, md, "Generated boolean query")
}

func TestSummary(t *testing.T) {
	reg := schema.Default()
	record := sampleRecord()
	record.SetText("parsed_data_raw", "raw text")

	en := Summary(record, reg, "en")
	assert.Contains(t, en, "## Basic Data\n- **Job Title:** Data Scientist")
	assert.Contains(t, en, "- **Job Location (City):** Berlin")
	assert.NotContains(t, en, "raw text")
	assert.NotContains(t, en, "Compensation")

	de := Summary(record, reg, "de")
	assert.Contains(t, de, "## Grunddaten\n- **Stellentitel:** Data Scientist")
}

func TestJSON(t *testing.T) {
	reg := schema.Default()
	record := types.NewRecord()
	record.SetText("job_title", "Data Scientist")
	record.SetText("role_type", "Individual Contributor, Team Lead")
	record.SetText(schema.GeneratedBooleanQuery, `("Python") AND "Data Scientist"`)
	record.SetText("not_a_field", "dropped")

	data, err := JSON(record, reg)
	require.NoError(t, err)
	require.NoError(t, reg.ValidateRecordJSON(data))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "Data Scientist", decoded["job_title"])
	assert.Equal(t, []any{"Individual Contributor", "Team Lead"}, decoded["role_type"])
	assert.Equal(t, `("Python") AND "Data Scientist"`, decoded[string(schema.GeneratedBooleanQuery)])
	assert.NotContains(t, decoded, "not_a_field")
	for _, key := range reg.AllKeys() {
		assert.Contains(t, decoded, string(key))
	}
}

func TestWriteXLSX(t *testing.T) {
	reg := schema.Default()
	record := sampleRecord()
	record.SetText(schema.GeneratedEmailTemplate, "Subject: Data Scientist")

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, record, reg, "en"))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{VacancySheet, GeneratedSheet}, f.GetSheetList())

	rows, err := f.GetRows(VacancySheet)
	require.NoError(t, err)
	require.Len(t, rows, len(reg.Specs())+1)
	assert.Equal(t, vacancyHeaders, rows[0])
	assert.Equal(t, []string{"Basic Data", "Job Title", "job_title", "mandatory", "Data Scientist"}, rows[1])

	generated, err := f.GetRows(GeneratedSheet)
	require.NoError(t, err)
	require.Len(t, generated, 2)
	assert.Equal(t, []string{"Generated email template", "Subject: Data Scientist"}, generated[1])
}

func TestWriteXLSX_NoGeneratedSheet(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, sampleRecord(), schema.Default(), "de"))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{VacancySheet}, f.GetSheetList())
	title, err := f.GetCellValue(VacancySheet, "B2")
	require.NoError(t, err)
	assert.Equal(t, "Stellentitel", title)
}
