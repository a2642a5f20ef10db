package generate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jonathan/vacancy-wizard/internal/i18n"
	"github.com/jonathan/vacancy-wizard/internal/llm"
	"github.com/jonathan/vacancy-wizard/internal/prompts"
	"github.com/jonathan/vacancy-wizard/internal/schema"
	"github.com/jonathan/vacancy-wizard/internal/types"
)

const promptFile = "generation.json"

// Kind selects what to generate.
type Kind string

// Generation kinds.
const (
	KindJobAd          Kind = "job_ad"
	KindInterviewPrep  Kind = "interview_prep"
	KindEmail          Kind = "email"
	KindPersona        Kind = "persona"
	KindVacancyProfile Kind = "vacancy_profile"
	KindBoolean        Kind = "boolean"
)

// EmailTarget is the recipient group of a contact email.
type EmailTarget string

// Email targets.
const (
	TargetCandidate   EmailTarget = "Candidate"
	TargetLineManager EmailTarget = "Line Manager"
	TargetHR          EmailTarget = "HR"
	TargetFinance     EmailTarget = "Finance"
)

// EmailTargets lists the targets in display order.
var EmailTargets = []EmailTarget{TargetCandidate, TargetLineManager, TargetHR, TargetFinance}

// ParseEmailTarget matches s case-insensitively; "line_manager" and "line-manager" are accepted.
func ParseEmailTarget(s string) (EmailTarget, error) {
	norm := strings.NewReplacer("_", " ", "-", " ").Replace(strings.ToLower(strings.TrimSpace(s)))
	for _, t := range EmailTargets {
		if strings.ToLower(string(t)) == norm {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown email target %q", s)
}

// ErrUnknownKind is wrapped by errors for unsupported generation kinds.
var ErrUnknownKind = errors.New("unknown generation kind")

type kindSpec struct {
	promptKey string
	label     string
	output    string
	key       types.FieldKey
	tier      llm.ModelTier
	// fields sent as context; nil sends every filled field
	fields []types.FieldKey
}

var kinds = map[Kind]kindSpec{
	KindJobAd: {
		promptKey: "job-ad",
		label:     "job ad",
		output:    "Return Markdown only.",
		key:       schema.GeneratedJobAd,
		tier:      llm.TierAdvanced,
		fields: []types.FieldKey{
			"job_title", "role_description", "job_type", "contract_type", "job_level",
			"company_name", "brand_name", "city", "remote_work_policy", "key_responsibilities",
			"task_list", "must_have_skills", "hard_skills", "soft_skills", "salary_range",
			"currency", "bonus_scheme", "vacation_days", "recruitment_contact_email",
			"application_instructions",
		},
	},
	KindInterviewPrep: {
		promptKey: "interview-sheet",
		label:     "interview sheet",
		output:    "Return Markdown only.",
		key:       schema.GeneratedInterviewPrep,
		tier:      llm.TierStandard,
		fields: []types.FieldKey{
			"job_title", "must_have_skills", "hard_skills", "soft_skills", "key_responsibilities",
			"task_list", "company_name", "team_structure", "interview_format", "number_of_interviews",
		},
	},
	KindEmail: {
		promptKey: "contact-email",
		label:     "recruiting email",
		output:    "Return only the email.",
		key:       schema.GeneratedEmailTemplate,
		tier:      llm.TierStandard,
		fields: []types.FieldKey{
			"job_title", "company_name", "team_structure", "city", "recruitment_contact_email",
			"recruitment_timeline", "date_of_employment_start",
		},
	},
	KindPersona: {
		promptKey: "candidate-persona",
		label:     "candidate persona",
		output:    "Return Markdown only.",
		key:       schema.GeneratedTargetGroup,
		tier:      llm.TierAdvanced,
		fields: []types.FieldKey{
			"job_title", "job_level", "must_have_skills", "hard_skills", "soft_skills",
			"company_name", "industry_experience", "city", "remote_work_policy",
		},
	},
	KindVacancyProfile: {
		promptKey: "vacancy-profile",
		label:     "vacancy profile",
		output:    "Return Markdown only.",
		tier:      llm.TierStandard,
	},
	KindBoolean: {
		promptKey: "boolean-search",
		label:     "Boolean search string",
		output:    "Return only the search string.",
		key:       schema.GeneratedBooleanQuery,
		tier:      llm.TierLite,
		fields:    []types.FieldKey{"job_title", "must_have_skills", "city", "industry_experience"},
	},
}

// Kinds returns the supported kinds.
func Kinds() []Kind {
	return []Kind{KindJobAd, KindInterviewPrep, KindEmail, KindPersona, KindVacancyProfile, KindBoolean}
}

// ParseKind validates s as a generation kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := kinds[k]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
	return k, nil
}

// Request describes one generation.
type Request struct {
	Kind     Kind
	Target   EmailTarget // KindEmail only; empty means TargetCandidate
	Language string      // "de" or "en"
}

// Result is the generated text. Failed results carry the provider error text
// and are never saved.
type Result struct {
	Kind   Kind           `json:"kind"`
	Key    types.FieldKey `json:"key,omitempty"`
	Text   string         `json:"text"`
	Failed bool           `json:"failed,omitempty"`
}

// Sink receives generated content; *session.Session implements it.
type Sink interface {
	SetGenerated(key types.FieldKey, text string) error
}

// SaveTo stores a successful result under its generated key. Results without a
// key (the vacancy profile) are not stored.
func (r Result) SaveTo(sink Sink) error {
	if r.Failed || r.Key == "" {
		return nil
	}
	return sink.SetGenerated(r.Key, r.Text)
}

// Generator writes content with a completion model.
type Generator struct {
	completion *llm.Completion
	logger     *slog.Logger
}

// New returns a generator. A nil completion makes every result fail softly.
func New(completion *llm.Completion, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{completion: completion, logger: logger}
}

// Generate writes req.Kind for record.
func (g *Generator) Generate(ctx context.Context, record types.Record, req Request) (Result, error) {
	spec, data, err := g.prepare(record, req)
	if err != nil {
		return Result{}, err
	}
	prompt := prompts.Format(prompts.MustGet(promptFile, spec.promptKey), data)
	return g.run(ctx, req.Kind, spec, prompt), nil
}

// Regenerate rewrites adjusted, the user-edited version of an earlier result,
// following feedback.
func (g *Generator) Regenerate(ctx context.Context, record types.Record, req Request, feedback, adjusted string) (Result, error) {
	spec, data, err := g.prepare(record, req)
	if err != nil {
		return Result{}, err
	}
	if strings.TrimSpace(feedback) == "" {
		return Result{}, errors.New("feedback is required")
	}
	data["Kind"] = spec.label
	data["Feedback"] = strings.TrimSpace(feedback)
	data["Adjusted"] = adjusted
	data["Output"] = spec.output
	prompt := prompts.Format(prompts.MustGet(promptFile, "regenerate"), data)
	return g.run(ctx, req.Kind, spec, prompt), nil
}

func (g *Generator) prepare(record types.Record, req Request) (kindSpec, map[string]string, error) {
	spec, ok := kinds[req.Kind]
	if !ok {
		return kindSpec{}, nil, fmt.Errorf("%w: %q", ErrUnknownKind, req.Kind)
	}
	target := req.Target
	if target == "" {
		target = TargetCandidate
	}
	data := map[string]string{
		"Context":  VacancyContext(record, spec.fields),
		"Language": i18n.LanguageName(req.Language),
		"Target":   string(target),
	}
	return spec, data, nil
}

func (g *Generator) run(ctx context.Context, kind Kind, spec kindSpec, prompt string) Result {
	text := g.completion.GenerateText(ctx, prompt, spec.tier)
	if llm.IsErrorText(text) {
		g.logger.Warn("content generation failed", "kind", kind, "error", strings.TrimPrefix(text, llm.ErrorPrefix))
		return Result{Kind: kind, Text: text, Failed: true}
	}
	g.logger.Info("content generated", "kind", kind, "chars", len(text))
	return Result{Kind: kind, Key: spec.key, Text: text}
}

// VacancyContext renders "key: value" lines for the filled keys. With no keys
// every filled field except the raw text and generated content is included.
func VacancyContext(record types.Record, keys []types.FieldKey) string {
	if keys == nil {
		for _, k := range record.Keys() {
			if k == "parsed_data_raw" || schema.IsGenerated(k) {
				continue
			}
			keys = append(keys, k)
		}
	}
	var sb strings.Builder
	for _, k := range keys {
		v := record.Get(k)
		if v.IsEmpty() {
			continue
		}
		sb.WriteString(string(k))
		sb.WriteString(": ")
		sb.WriteString(strings.TrimSpace(v.String()))
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}
