package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/vacancy-wizard/internal/types"
)

var validate = validator.New()

// CreateSessionRequest is the optional body of POST /sessions.
type CreateSessionRequest struct {
	Language string `json:"language,omitempty" validate:"omitempty,oneof=de en"`
}

// LanguageRequest switches the UI language.
type LanguageRequest struct {
	Language string `json:"language" validate:"required,oneof=de en"`
}

// URLRequest names a job ad page.
type URLRequest struct {
	URL string `json:"url" validate:"required,url"`
}

// TextRequest carries pasted job ad text.
type TextRequest struct {
	Text string `json:"text" validate:"required"`
}

// LLMExtractRequest optionally overrides the text sent to the model; by
// default the session's raw job ad text is used.
type LLMExtractRequest struct {
	Text string `json:"text,omitempty"`
}

// FieldsRequest holds user edits keyed by field.
type FieldsRequest struct {
	Fields types.Record `json:"fields" validate:"required,min=1"`
}

// SuggestRequest controls an ESCO lookup. With Apply set, suggestions are
// merged into empty skill and task fields.
type SuggestRequest struct {
	Limit int  `json:"limit,omitempty" validate:"min=0,max=50"`
	Apply bool `json:"apply,omitempty"`
}

// GenerateRequest configures one generation. Feedback turns the call into a
// regeneration of Adjusted.
type GenerateRequest struct {
	Language string `json:"language,omitempty" validate:"omitempty,oneof=de en"`
	Target   string `json:"target,omitempty"`
	Feedback string `json:"feedback,omitempty"`
	Adjusted string `json:"adjusted,omitempty"`
}

// decodeJSON reads an optional JSON body into dst and validates it. An empty
// body leaves dst at its zero value before validation.
func decodeJSON(r *http.Request, dst any) error {
	if r.Body != nil {
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
			return &ErrValidation{Field: "body", Message: "invalid request body: " + err.Error()}
		}
	}
	return validateRequest(dst)
}

func validateRequest(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &ErrValidation{Field: "body", Message: err.Error()}
	}
	fields := make([]string, len(verrs))
	tags := make([]string, len(verrs))
	for i, fe := range verrs {
		fields[i] = strings.ToLower(fe.Field())
		tags[i] = fmt.Sprintf("failed %q", fe.Tag())
	}
	return &ErrValidation{Field: strings.Join(fields, ","), Message: strings.Join(tags, "; ")}
}
