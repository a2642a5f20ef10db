// Package server provides the HTTP REST API for the vacancy wizard.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/vacancy-wizard/internal/generate"
	"github.com/jonathan/vacancy-wizard/internal/ingestion"
	"github.com/jonathan/vacancy-wizard/internal/parsing"
	"github.com/jonathan/vacancy-wizard/internal/session"
)

// ErrSessionNotFound indicates the session does not exist or has expired.
type ErrSessionNotFound struct {
	ID uuid.UUID
}

func (e *ErrSessionNotFound) Error() string {
	return fmt.Sprintf("session not found: %s", e.ID)
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrUnavailable indicates an optional collaborator is not configured.
type ErrUnavailable struct {
	Feature string
}

func (e *ErrUnavailable) Error() string {
	return fmt.Sprintf("%s is not configured", e.Feature)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		notFound    *ErrSessionNotFound
		validation  *ErrValidation
		unknown     *session.UnknownFieldError
		unavailable *ErrUnavailable
		apiCall     *parsing.APICallError
	)
	switch {
	case errors.Is(err, ingestion.ErrUnsupportedFormat):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, ingestion.ErrDecode):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ingestion.ErrNetwork), errors.As(err, &apiCall):
		return http.StatusBadGateway
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &validation), errors.As(err, &unknown), errors.Is(err, generate.ErrUnknownKind):
		return http.StatusBadRequest
	case errors.As(err, &unavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// IsWarning reports whether err is a soft failure: the record was left
// untouched and the user can carry on with manual entry.
func IsWarning(err error) bool {
	var apiCall *parsing.APICallError
	return errors.Is(err, ingestion.ErrDecode) ||
		errors.Is(err, ingestion.ErrNetwork) ||
		errors.As(err, &apiCall)
}

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Error   string `json:"error"`
	Warning bool   `json:"warning"`
}
