package server

import (
	"net/http"
	"strings"

	"github.com/jonathan/vacancy-wizard/internal/generate"
	"github.com/jonathan/vacancy-wizard/internal/schema"
)

// BooleanResponse holds a sourcing query.
type BooleanResponse struct {
	Query string `json:"query"`
}

// handleBoolean builds the boolean sourcing string and stores it with the
// generated content.
func (s *Server) handleBoolean(w http.ResponseWriter, r *http.Request) {
	sess, err := s.lookupSession(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	query := generate.BooleanSearch(sess.Snapshot())
	if query != generate.InsufficientData {
		if err := sess.SetGenerated(schema.GeneratedBooleanQuery, query); err != nil {
			s.writeError(w, r, err)
			return
		}
	}
	s.jsonResponse(w, http.StatusOK, BooleanResponse{Query: query})
}

// handleGenerate writes one kind of content with the completion model. A
// request with feedback rewrites the adjusted text instead. Provider failures
// come back as a failed result with status 200 and nothing is stored.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	sess, err := s.lookupSession(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	kind, err := generate.ParseKind(r.PathValue("kind"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req GenerateRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	genReq := generate.Request{Kind: kind, Language: req.Language}
	if genReq.Language == "" {
		genReq.Language = sess.Language()
	}
	if req.Target != "" {
		target, err := generate.ParseEmailTarget(req.Target)
		if err != nil {
			s.writeError(w, r, &ErrValidation{Field: "target", Message: err.Error()})
			return
		}
		genReq.Target = target
	}

	record := sess.Snapshot()
	var result generate.Result
	if strings.TrimSpace(req.Feedback) != "" {
		result, err = s.generator.Regenerate(r.Context(), record, genReq, req.Feedback, req.Adjusted)
	} else {
		result, err = s.generator.Generate(r.Context(), record, genReq)
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.metrics.Generation(string(kind), result.Failed)
	if result.Failed {
		s.metrics.ExternalFailure("llm")("generate", nil)
	}
	if err := result.SaveTo(sess); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}
