package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"
)

// MaxExtractionInput is the number of runes of source text sent for field extraction.
const MaxExtractionInput = 3000

// ErrorKey is the single key of the mapping ExtractFields returns on failure.
const ErrorKey = "error"

// ErrorPrefix starts the text GenerateText returns on failure.
const ErrorPrefix = "Error: "

// Completion wraps a Client with soft failure: callers get an error mapping or an
// error string instead of a Go error, and the call is logged.
type Completion struct {
	client Client
	logger *slog.Logger
}

// NewCompletion wraps client. A nil client makes every call fail softly.
func NewCompletion(client Client, logger *slog.Logger) *Completion {
	if logger == nil {
		logger = slog.Default()
	}
	return &Completion{client: client, logger: logger}
}

// Available reports whether a provider client is configured.
func (c *Completion) Available() bool {
	return c != nil && c.client != nil
}

// ExtractFields asks the model for the schema's fields in text. Input longer than
// MaxExtractionInput runes is truncated. On any failure the result is {"error": msg}.
// Array values are joined with ", "; nulls become empty strings.
func (c *Completion) ExtractFields(ctx context.Context, schema ExtractionSchema, text, language string) map[string]string {
	if !c.Available() {
		return map[string]string{ErrorKey: "no LLM provider configured"}
	}

	prompt := BuildExtractionPrompt(schema, Truncate(text, MaxExtractionInput), language)
	raw, err := c.client.GenerateJSON(ctx, prompt, TierLite)
	if err != nil {
		c.logger.Warn("llm field extraction failed", "schema", schema.Name, "error", err)
		return map[string]string{ErrorKey: err.Error()}
	}

	fields, err := flattenObject(raw)
	if err != nil {
		c.logger.Warn("llm returned invalid JSON", "schema", schema.Name, "error", err)
		return map[string]string{ErrorKey: err.Error()}
	}
	return fields
}

// GenerateText returns the model's answer, or ErrorPrefix followed by the failure.
func (c *Completion) GenerateText(ctx context.Context, prompt string, tier ModelTier) string {
	if !c.Available() {
		return ErrorPrefix + "no LLM provider configured"
	}
	text, err := c.client.GenerateContent(ctx, prompt, tier)
	if err != nil {
		c.logger.Warn("llm generation failed", "tier", tier, "error", err)
		return ErrorPrefix + err.Error()
	}
	return strings.TrimSpace(text)
}

// IsErrorText reports whether s was produced by a failed GenerateText call.
func IsErrorText(s string) bool {
	return strings.HasPrefix(s, ErrorPrefix)
}

// Close releases the underlying client.
func (c *Completion) Close() error {
	if !c.Available() {
		return nil
	}
	return c.client.Close()
}

func flattenObject(raw string) (map[string]string, error) {
	var obj map[string]any
	if err := json.Unmarshal([]byte(CleanJSONBlock(raw)), &obj); err != nil {
		return nil, fmt.Errorf("parse llm JSON: %w", err)
	}
	out := make(map[string]string, len(obj))
	for k, v := range obj {
		out[k] = flattenValue(v)
	}
	return out, nil
}

func flattenValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(val)
	case []any:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			if s := flattenValue(item); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			if s := flattenValue(val[k]); s != "" {
				parts = append(parts, k+": "+s)
			}
		}
		return strings.Join(parts, "; ")
	default:
		return fmt.Sprint(val)
	}
}
