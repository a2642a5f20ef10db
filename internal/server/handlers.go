package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/vacancy-wizard/internal/ingestion"
	"github.com/jonathan/vacancy-wizard/internal/schema"
	"github.com/jonathan/vacancy-wizard/internal/session"
	"github.com/jonathan/vacancy-wizard/internal/types"
)

// SessionResponse is the full state of one session.
type SessionResponse struct {
	ID        uuid.UUID          `json:"id"`
	Language  string             `json:"language"`
	CreatedAt string             `json:"created_at"`
	Record    types.Record       `json:"record"`
	Sources   []ingestion.Source `json:"sources"`
}

// FieldSchema describes one declared field.
type FieldSchema struct {
	Key         types.FieldKey     `json:"key"`
	Step        int                `json:"step"`
	Label       string             `json:"label"`
	Requirement schema.Requirement `json:"requirement"`
	Shape       schema.Shape       `json:"shape"`
	Widget      string             `json:"widget,omitempty"`
	Options     []string           `json:"options,omitempty"`
}

// SchemaResponse lists the field table and its JSON Schema.
type SchemaResponse struct {
	Fields     []FieldSchema    `json:"fields"`
	Generated  []types.FieldKey `json:"generated"`
	JSONSchema json.RawMessage  `json:"json_schema"`
}

func sessionResponse(sess *session.Session) SessionResponse {
	return SessionResponse{
		ID:        sess.ID(),
		Language:  sess.Language(),
		CreatedAt: sess.CreatedAt().Format(time.RFC3339),
		Record:    sess.Snapshot(),
		Sources:   sess.Sources(),
	}
}

// handleSchema returns the declared fields.
func (s *Server) handleSchema(w http.ResponseWriter, _ *http.Request) {
	specs := s.registry.Specs()
	fields := make([]FieldSchema, len(specs))
	for i, spec := range specs {
		fields[i] = FieldSchema{
			Key:         spec.Key,
			Step:        int(spec.Step),
			Label:       spec.Label,
			Requirement: spec.Requirement,
			Shape:       spec.Shape,
			Widget:      spec.Widget,
			Options:     spec.Options,
		}
	}
	s.jsonResponse(w, http.StatusOK, SchemaResponse{
		Fields:     fields,
		Generated:  schema.GeneratedKeys,
		JSONSchema: json.RawMessage(s.registry.JSONSchema()),
	})
}

// handleCreateSession starts a wizard session.
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	sess := s.store.Create(req.Language)
	s.metrics.ActiveSessions.Set(float64(s.store.Len()))
	s.logger.Info("session created", "session", sess.ID(), "language", sess.Language())
	s.jsonResponse(w, http.StatusCreated, sessionResponse(sess))
}

// handleGetSession returns the record and source history.
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.lookupSession(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, sessionResponse(sess))
}

// handleDeleteSession discards a session.
func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.lookupSession(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.store.Delete(sess.ID())
	s.metrics.ActiveSessions.Set(float64(s.store.Len()))
	w.WriteHeader(http.StatusNoContent)
}

// handleSetLanguage switches the UI language of a session.
func (s *Server) handleSetLanguage(w http.ResponseWriter, r *http.Request) {
	sess, err := s.lookupSession(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req LanguageRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	sess.SetLanguage(req.Language)
	s.jsonResponse(w, http.StatusOK, map[string]string{"language": sess.Language()})
}
