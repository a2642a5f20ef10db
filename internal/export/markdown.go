// Package export renders a vacancy record as Markdown, JSON and XLSX.
package export

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jonathan/vacancy-wizard/internal/i18n"
	"github.com/jonathan/vacancy-wizard/internal/schema"
	"github.com/jonathan/vacancy-wizard/internal/types"
)

// KeyTitle turns "job_title" into "Job title".
func KeyTitle(key types.FieldKey) string {
	s := strings.ToLower(strings.ReplaceAll(string(key), "_", " "))
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// Markdown writes one "**Key:** value" line per declared field in registry
// order, followed by any generated content that is present.
func Markdown(record types.Record, reg *schema.Registry) string {
	lines := make([]string, 0, len(reg.AllKeys())+len(schema.GeneratedKeys))
	for _, key := range reg.AllKeys() {
		lines = append(lines, markdownLine(key, record.Get(key)))
	}
	for _, key := range schema.GeneratedKeys {
		if v := record.Get(key); !v.IsEmpty() {
			lines = append(lines, markdownLine(key, v))
		}
	}
	return strings.Join(lines, "\n")
}

func markdownLine(key types.FieldKey, v types.FieldValue) string {
	return "**" + KeyTitle(key) + ":** " + v.String()
}

// Summary renders the filled fields grouped under their step titles, with
// labels in lang. Steps without filled fields are left out.
func Summary(record types.Record, reg *schema.Registry, lang string) string {
	var sb strings.Builder
	for step := schema.FirstStep; step <= schema.LastStep; step++ {
		var items []string
		for _, key := range reg.KeysForStep(step) {
			v := record.Get(key)
			if v.IsEmpty() || key == "parsed_data_raw" {
				continue
			}
			spec, _ := reg.Spec(key)
			items = append(items, "- **"+i18n.Tr(spec.Label, lang)+":** "+v.String())
		}
		if len(items) == 0 {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString("## " + i18n.Tr(step.Title(), lang) + "\n")
		sb.WriteString(strings.Join(items, "\n"))
		sb.WriteString("\n")
	}
	return sb.String()
}
