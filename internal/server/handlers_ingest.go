package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"

	"github.com/jonathan/vacancy-wizard/internal/ingestion"
	"github.com/jonathan/vacancy-wizard/internal/types"
)

// LLMExtractResponse reports what the model found and what it filled.
type LLMExtractResponse struct {
	Detected []types.FieldKey `json:"detected"`
	Filled   []types.FieldKey `json:"filled"`
}

// handleUpload decodes a pdf, docx or txt job ad sent as multipart field
// "file" and merges the extracted fields.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	sess, err := s.lookupSession(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.config.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.config.MaxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.errorResponse(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("file exceeds the upload limit of %d bytes", s.config.MaxUploadBytes))
			return
		}
		s.writeError(w, r, &ErrValidation{Field: "file", Message: "expected a multipart form: " + err.Error()})
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile("file")
	if err != nil {
		s.writeError(w, r, &ErrValidation{Field: "file", Message: "missing file"})
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		s.writeError(w, r, fmt.Errorf("read upload: %w", err))
		return
	}

	src, err := ingestion.DecodeUpload(header.Filename, data)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, sess.Ingest(src))
}

// handleURL fetches a job ad page and merges the extracted fields.
func (s *Server) handleURL(w http.ResponseWriter, r *http.Request) {
	sess, err := s.lookupSession(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if s.fetcher == nil {
		s.writeError(w, r, &ErrUnavailable{Feature: "URL fetching"})
		return
	}
	var req URLRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	src, err := s.fetcher.FetchText(r.Context(), req.URL)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, sess.Ingest(src))
}

// handleText merges fields extracted from pasted job ad text. The text is
// stored as the raw text exactly as sent.
func (s *Server) handleText(w http.ResponseWriter, r *http.Request) {
	sess, err := s.lookupSession(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req TextRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		s.writeError(w, r, &ErrValidation{Field: "text", Message: "text must not be blank"})
		return
	}
	src := ingestion.NewSource(ingestion.SourceText, "", req.Text)
	s.jsonResponse(w, http.StatusOK, sess.Ingest(src))
}

// handleLLMExtract asks the completion model for the vacancy fields and
// merges them without overwriting filled values.
func (s *Server) handleLLMExtract(w http.ResponseWriter, r *http.Request) {
	sess, err := s.lookupSession(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if s.extractor == nil {
		s.writeError(w, r, &ErrUnavailable{Feature: "LLM extraction"})
		return
	}
	var req LLMExtractRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	text := req.Text
	if strings.TrimSpace(text) == "" {
		text = sess.Snapshot().String(types.RawTextKey)
	}
	if strings.TrimSpace(text) == "" {
		s.writeError(w, r, &ErrValidation{Field: "text", Message: "no job ad text to extract from"})
		return
	}

	fields, err := s.extractor.Extract(r.Context(), text, sess.Language())
	if err != nil {
		s.metrics.ExternalFailure("llm")("extract", err)
		s.writeError(w, r, err)
		return
	}

	detected := make([]types.FieldKey, 0, len(fields))
	for k := range fields {
		detected = append(detected, k)
	}
	sort.Slice(detected, func(i, j int) bool { return detected[i] < detected[j] })

	filled := sess.MergeFields("llm", fields)
	s.jsonResponse(w, http.StatusOK, LLMExtractResponse{Detected: detected, Filled: filled})
}
