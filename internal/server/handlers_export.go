package server

import (
	"bytes"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/jonathan/vacancy-wizard/internal/export"
	"github.com/jonathan/vacancy-wizard/internal/i18n"
	"github.com/jonathan/vacancy-wizard/internal/types"
)

var unsafeFilename = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// exportFilename derives an attachment name from the job title.
func exportFilename(record types.Record, ext string) string {
	base := strings.Trim(unsafeFilename.ReplaceAllString(strings.ToLower(record.String("job_title")), "-"), "-")
	if base == "" {
		base = "vacancy"
	}
	return base + "." + ext
}

func attachment(w http.ResponseWriter, contentType, filename string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// handleExportMarkdown returns the record as "**Key:** value" lines.
func (s *Server) handleExportMarkdown(w http.ResponseWriter, r *http.Request) {
	sess, err := s.lookupSession(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	record := sess.Snapshot()
	attachment(w, "text/markdown; charset=utf-8", exportFilename(record, "md"),
		[]byte(export.Markdown(record, s.registry)))
}

// handleExportJSON returns the schema-validated record.
func (s *Server) handleExportJSON(w http.ResponseWriter, r *http.Request) {
	sess, err := s.lookupSession(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	record := sess.Snapshot()
	data, err := export.JSON(record, s.registry)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	attachment(w, "application/json", exportFilename(record, "json"), data)
}

// handleExportXLSX returns the record as a workbook.
func (s *Server) handleExportXLSX(w http.ResponseWriter, r *http.Request) {
	sess, err := s.lookupSession(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	record := sess.Snapshot()
	var buf bytes.Buffer
	if err := export.WriteXLSX(&buf, record, s.registry, sess.Language()); err != nil {
		s.writeError(w, r, err)
		return
	}
	attachment(w, export.XLSXContentType, exportFilename(record, "xlsx"), buf.Bytes())
}

// handleSummary renders the filled fields grouped by step. ?lang overrides the
// session language.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	sess, err := s.lookupSession(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	lang := sess.Language()
	if q := r.URL.Query().Get("lang"); q != "" {
		lang = i18n.Normalize(q)
	}
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(export.Summary(sess.Snapshot(), s.registry, lang)))
}
