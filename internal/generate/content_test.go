package generate

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/vacancy-wizard/internal/llm"
	"github.com/jonathan/vacancy-wizard/internal/schema"
	"github.com/jonathan/vacancy-wizard/internal/types"
)

type stubClient struct {
	answer  string
	err     error
	prompts []string
	tiers   []llm.ModelTier
}

func (s *stubClient) GenerateContent(_ context.Context, prompt string, tier llm.ModelTier) (string, error) {
	s.prompts = append(s.prompts, prompt)
	s.tiers = append(s.tiers, tier)
	return s.answer, s.err
}

func (s *stubClient) GenerateJSON(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	return s.GenerateContent(ctx, prompt, tier)
}

func (s *stubClient) GetModel(tier llm.ModelTier) string { return string(tier) }

func (s *stubClient) Close() error { return nil }

type recordingSink struct {
	saved map[types.FieldKey]string
}

func (r *recordingSink) SetGenerated(key types.FieldKey, text string) error {
	if r.saved == nil {
		r.saved = make(map[types.FieldKey]string)
	}
	r.saved[key] = text
	return nil
}

func sampleRecord() types.Record {
	return types.Record{
		"job_title":                 types.Text("Data Scientist"),
		"company_name":              types.Text("Acme GmbH"),
		"city":                      types.Text("Berlin"),
		"must_have_skills":          types.Text("Python, SQL"),
		"recruitment_contact_email": types.Text("jobs@acme.example"),
		"parsed_data_raw":           types.Text("raw ad text"),
		"salary_range":              types.Text(""),
	}
}

func newGenerator(client llm.Client) *Generator {
	return New(llm.NewCompletion(client, nil), nil)
}

func TestGenerate_JobAd(t *testing.T) {
	client := &stubClient{answer: "  # Data Scientist\nJoin us.  "}
	g := newGenerator(client)

	res, err := g.Generate(t.Context(), sampleRecord(), Request{Kind: KindJobAd, Language: "de"})
	require.NoError(t, err)

	assert.Equal(t, KindJobAd, res.Kind)
	assert.Equal(t, schema.GeneratedJobAd, res.Key)
	assert.Equal(t, "# Data Scientist\nJoin us.", res.Text)
	assert.False(t, res.Failed)

	require.Len(t, client.prompts, 1)
	prompt := client.prompts[0]
	assert.Contains(t, prompt, "job_title: Data Scientist")
	assert.Contains(t, prompt, "company_name: Acme GmbH")
	assert.Contains(t, prompt, "Write it in Deutsch.")
	assert.NotContains(t, prompt, "salary_range")
	assert.NotContains(t, prompt, "raw ad text")
	assert.NotContains(t, prompt, "{{.")
	assert.Equal(t, llm.TierAdvanced, client.tiers[0])
}

func TestGenerate_EmailTargets(t *testing.T) {
	for _, target := range EmailTargets {
		t.Run(string(target), func(t *testing.T) {
			client := &stubClient{answer: "Subject: Vacancy"}
			res, err := newGenerator(client).Generate(t.Context(), sampleRecord(), Request{Kind: KindEmail, Target: target})
			require.NoError(t, err)
			assert.Equal(t, schema.GeneratedEmailTemplate, res.Key)
			assert.Contains(t, client.prompts[0], "email to the "+string(target)+" about")
		})
	}
}

func TestGenerate_EmailDefaultsToCandidate(t *testing.T) {
	client := &stubClient{answer: "Hi"}
	_, err := newGenerator(client).Generate(t.Context(), sampleRecord(), Request{Kind: KindEmail})
	require.NoError(t, err)
	assert.Contains(t, client.prompts[0], "the Candidate")
}

func TestGenerate_VacancyProfileUsesAllFields(t *testing.T) {
	record := sampleRecord()
	record["generated_job_ad"] = types.Text("old ad")
	client := &stubClient{answer: "# Profile"}

	res, err := newGenerator(client).Generate(t.Context(), record, Request{Kind: KindVacancyProfile})
	require.NoError(t, err)

	assert.Empty(t, res.Key)
	prompt := client.prompts[0]
	assert.Contains(t, prompt, "city: Berlin")
	assert.Contains(t, prompt, "recruitment_contact_email: jobs@acme.example")
	assert.NotContains(t, prompt, "old ad")
	assert.NotContains(t, prompt, "raw ad text")
}

func TestGenerate_ProviderFailureIsSoft(t *testing.T) {
	client := &stubClient{err: errors.New("quota exceeded")}
	res, err := newGenerator(client).Generate(t.Context(), sampleRecord(), Request{Kind: KindPersona})
	require.NoError(t, err)

	assert.True(t, res.Failed)
	assert.Empty(t, res.Key)
	assert.True(t, llm.IsErrorText(res.Text))
	assert.Contains(t, res.Text, "quota exceeded")

	sink := &recordingSink{}
	require.NoError(t, res.SaveTo(sink))
	assert.Empty(t, sink.saved)
}

func TestGenerate_NoProvider(t *testing.T) {
	res, err := New(nil, nil).Generate(t.Context(), sampleRecord(), Request{Kind: KindBoolean})
	require.NoError(t, err)
	assert.True(t, res.Failed)
}

func TestGenerate_UnknownKind(t *testing.T) {
	_, err := newGenerator(&stubClient{}).Generate(t.Context(), sampleRecord(), Request{Kind: "poem"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestRegenerate(t *testing.T) {
	client := &stubClient{answer: "(\"Python\" OR \"SQL\") AND \"Data Scientist\""}
	g := newGenerator(client)

	res, err := g.Regenerate(t.Context(), sampleRecord(), Request{Kind: KindBoolean},
		"drop the city", `("Python") AND Berlin`)
	require.NoError(t, err)
	assert.Equal(t, schema.GeneratedBooleanQuery, res.Key)

	prompt := client.prompts[0]
	assert.Contains(t, prompt, "Rewrite the following Boolean search string")
	assert.Contains(t, prompt, "drop the city")
	assert.Contains(t, prompt, `("Python") AND Berlin`)
	assert.Contains(t, prompt, "job_title: Data Scientist")
	assert.Contains(t, prompt, "Return only the search string.")
	assert.NotContains(t, prompt, "{{.")
}

func TestRegenerate_RequiresFeedback(t *testing.T) {
	client := &stubClient{answer: "x"}
	_, err := newGenerator(client).Regenerate(t.Context(), sampleRecord(), Request{Kind: KindJobAd}, "  ", "text")
	require.Error(t, err)
	assert.Empty(t, client.prompts)
}

func TestResultSaveTo(t *testing.T) {
	sink := &recordingSink{}

	require.NoError(t, Result{Kind: KindJobAd, Key: schema.GeneratedJobAd, Text: "ad"}.SaveTo(sink))
	require.NoError(t, Result{Kind: KindVacancyProfile, Text: "profile"}.SaveTo(sink))

	assert.Equal(t, map[types.FieldKey]string{schema.GeneratedJobAd: "ad"}, sink.saved)
}

func TestParseKind(t *testing.T) {
	for _, k := range Kinds() {
		got, err := ParseKind(" " + string(k) + " ")
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}
	_, err := ParseKind("haiku")
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestParseEmailTarget(t *testing.T) {
	tests := []struct {
		in   string
		want EmailTarget
	}{
		{"candidate", TargetCandidate},
		{"line_manager", TargetLineManager},
		{"Line-Manager", TargetLineManager},
		{"hr", TargetHR},
		{"FINANCE", TargetFinance},
	}
	for _, tt := range tests {
		got, err := ParseEmailTarget(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
	_, err := ParseEmailTarget("board")
	assert.Error(t, err)
}

func TestVacancyContext(t *testing.T) {
	record := sampleRecord()
	got := VacancyContext(record, []types.FieldKey{"job_title", "salary_range", "city"})
	assert.Equal(t, "job_title: Data Scientist\ncity: Berlin", got)
}
