// Package generate builds recruiting content from a vacancy record: a
// deterministic Boolean sourcing string and LLM-written documents.
package generate

import (
	"strings"

	"github.com/jonathan/vacancy-wizard/internal/types"
)

// InsufficientData is returned by BooleanSearch when skills or title are missing.
const InsufficientData = "# Nicht genug Daten für Boolean-String"

// BooleanSearch builds ("skill" OR "skill") AND "title" AND city from the record.
// The city clause is left out when city is empty.
func BooleanSearch(record types.Record) string {
	skills := record.Get("must_have_skills").Values()
	title := strings.TrimSpace(record.String("job_title"))
	if len(skills) == 0 || title == "" {
		return InsufficientData
	}

	quoted := make([]string, len(skills))
	for i, skill := range skills {
		quoted[i] = quote(skill)
	}
	query := "(" + strings.Join(quoted, " OR ") + ") AND " + quote(title)

	if city := strings.TrimSpace(record.String("city")); city != "" {
		query += " AND " + city
	}
	return query
}

// quote wraps s in double quotes as is; search engines take no escapes.
func quote(s string) string {
	return `"` + s + `"`
}
