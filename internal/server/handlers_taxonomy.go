package server

import (
	"context"
	"net/http"
	"strconv"
	"strings"
)

// TaxonomyResponse lists ESCO labels.
type TaxonomyResponse struct {
	Query   string   `json:"query"`
	Results []string `json:"results"`
}

type taxonomyLookup func(ctx context.Context, query, lang string, limit int) []string

// serveTaxonomy reads the query parameter param plus optional language and
// limit, and answers with lookup's labels. Lookups never fail; an unreachable
// ESCO yields an empty list.
func (s *Server) serveTaxonomy(w http.ResponseWriter, r *http.Request, param string, lookup taxonomyLookup) {
	if s.taxonomy == nil {
		s.writeError(w, r, &ErrUnavailable{Feature: "taxonomy lookup"})
		return
	}
	q := r.URL.Query()
	query := strings.TrimSpace(q.Get(param))
	if query == "" {
		s.writeError(w, r, &ErrValidation{Field: param, Message: "query parameter is required"})
		return
	}
	lang := s.config.TaxonomyLanguage
	if l := q.Get("language"); l != "" {
		if l != "de" && l != "en" {
			s.writeError(w, r, &ErrValidation{Field: "language", Message: "must be de or en"})
			return
		}
		lang = l
	}
	limit := 0
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 || n > 50 {
			s.writeError(w, r, &ErrValidation{Field: "limit", Message: "must be between 0 and 50"})
			return
		}
		limit = n
	}

	s.jsonResponse(w, http.StatusOK, TaxonomyResponse{
		Query:   query,
		Results: nonNil(lookup(r.Context(), query, lang, limit)),
	})
}

func (s *Server) handleSearchSkills(w http.ResponseWriter, r *http.Request) {
	s.serveTaxonomy(w, r, "q", func(ctx context.Context, query, lang string, limit int) []string {
		return s.taxonomy.SearchSkills(ctx, query, lang, limit)
	})
}

func (s *Server) handleTitleSkills(w http.ResponseWriter, r *http.Request) {
	s.serveTaxonomy(w, r, "title", func(ctx context.Context, query, lang string, limit int) []string {
		return s.taxonomy.SkillsForTitle(ctx, query, lang, limit)
	})
}

func (s *Server) handleTitleTasks(w http.ResponseWriter, r *http.Request) {
	s.serveTaxonomy(w, r, "title", func(ctx context.Context, query, lang string, limit int) []string {
		return s.taxonomy.TasksForTitle(ctx, query, lang, limit)
	})
}
