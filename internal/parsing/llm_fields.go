package parsing

import (
	"context"

	"github.com/jonathan/vacancy-wizard/internal/i18n"
	"github.com/jonathan/vacancy-wizard/internal/llm"
	"github.com/jonathan/vacancy-wizard/internal/prompts"
	"github.com/jonathan/vacancy-wizard/internal/schema"
	"github.com/jonathan/vacancy-wizard/internal/types"
)

// userOnlyKeys are never requested from the model.
var userOnlyKeys = map[types.FieldKey]bool{
	"input_url":       true,
	"uploaded_file":   true,
	"parsed_data_raw": true,
}

// VacancyExtractionSchema describes every registry field the model may fill.
func VacancyExtractionSchema(reg *schema.Registry) llm.ExtractionSchema {
	var fields []llm.SchemaField
	for _, spec := range reg.Specs() {
		if userOnlyKeys[spec.Key] {
			continue
		}
		typeHint := `"string"`
		if spec.Shape == schema.ShapeList {
			typeHint = `["string"]`
		}
		fields = append(fields, llm.SchemaField{
			Name:        string(spec.Key),
			Type:        typeHint,
			Description: i18n.Tr(spec.Label, i18n.English),
			Required:    spec.Requirement == schema.Mandatory,
		})
	}
	return llm.ExtractionSchema{
		Name:        "Vacancy",
		Description: prompts.MustGet("extraction.json", "extract-vacancy"),
		Fields:      fields,
	}
}

// LLMExtractor fills vacancy fields with a completion model.
type LLMExtractor struct {
	completion *llm.Completion
	registry   *schema.Registry
}

// NewLLMExtractor returns an extractor over completion and reg.
func NewLLMExtractor(completion *llm.Completion, reg *schema.Registry) *LLMExtractor {
	return &LLMExtractor{completion: completion, registry: reg}
}

// ExtractFields returns the model's raw mapping, or {"error": msg} on failure.
func (e *LLMExtractor) ExtractFields(ctx context.Context, text, language string) map[string]string {
	return e.completion.ExtractFields(ctx, VacancyExtractionSchema(e.registry), text, language)
}

// Extract returns the known, non-empty fields the model found in text.
// A failed call is reported as *APICallError.
func (e *LLMExtractor) Extract(ctx context.Context, text, language string) (types.Fields, error) {
	raw := e.ExtractFields(ctx, text, language)
	if msg, failed := raw[llm.ErrorKey]; failed && len(raw) == 1 {
		return nil, &APICallError{Message: msg}
	}

	fields := make(types.Fields, len(raw))
	for k, v := range raw {
		key := types.FieldKey(k)
		if userOnlyKeys[key] || !e.registry.Has(key) || v == "" {
			continue
		}
		fields[key] = v
	}
	return fields, nil
}
