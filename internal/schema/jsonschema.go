package schema

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// SchemaLoadError represents errors loading or parsing the schema itself
type SchemaLoadError struct {
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load record schema: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load record schema: %s", e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

// JSONSchema renders the record layout as a draft-07 JSON Schema document.
// Every declared key is required; generated content keys are allowed.
func (r *Registry) JSONSchema() string {
	props := make(map[string]any, len(r.specs)+len(GeneratedKeys))
	required := make([]string, 0, len(r.specs))
	for _, s := range r.specs {
		prop := map[string]any{
			"title":         s.Label,
			"x-step":        int(s.Step),
			"x-requirement": string(s.Requirement),
		}
		if s.Shape == ShapeList {
			prop["type"] = "array"
			prop["items"] = map[string]any{"type": "string"}
		} else {
			prop["type"] = "string"
		}
		props[string(s.Key)] = prop
		required = append(required, string(s.Key))
	}
	for _, k := range GeneratedKeys {
		props[string(k)] = map[string]any{"type": "string"}
	}

	doc := map[string]any{
		"$schema":              "http://json-schema.org/draft-07/schema#",
		"title":                "Vacancy record",
		"type":                 "object",
		"properties":           props,
		"required":             required,
		"additionalProperties": false,
	}
	// A map of strings, ints and nested maps always marshals.
	data, _ := json.MarshalIndent(doc, "", "  ")
	return string(data)
}

// ValidateRecordJSON validates a serialized record against JSONSchema.
func (r *Registry) ValidateRecordJSON(data []byte) error {
	schemaLoader := gojsonschema.NewStringLoader(r.JSONSchema())
	documentLoader := gojsonschema.NewBytesLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return &SchemaLoadError{
			Message: "schema validation failed during load",
			Cause:   err,
		}
	}

	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}

	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}

	return validationErr
}
