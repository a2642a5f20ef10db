// Package observability holds the logger setup, Prometheus metrics and the
// terminal printer used by the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jonathan/vacancy-wizard/internal/i18n"
	"github.com/jonathan/vacancy-wizard/internal/schema"
	"github.com/jonathan/vacancy-wizard/internal/session"
	"github.com/jonathan/vacancy-wizard/internal/types"
)

const (
	// boxWidth is the outer width of printed boxes
	boxWidth = 72
	// maxItemsToShow caps list output
	maxItemsToShow = 5
	maxValueRunes  = 48
)

var (
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("39")).
			Padding(0, 1).
			Width(boxWidth)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	labelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))
)

// Printer writes human-readable summaries for the CLI.
type Printer struct {
	out  io.Writer
	lang string
}

// NewPrinter creates a Printer writing labels in lang.
func NewPrinter(out io.Writer, lang string) *Printer {
	return &Printer{out: out, lang: i18n.Normalize(lang)}
}

//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title, content string) {
	body := titleStyle.Render(title)
	if content != "" {
		body += "\n\n" + content
	}
	fmt.Fprintln(p.out, boxStyle.Render(body))
}

func truncate(s string, limit int) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-3]) + "..."
}

// PrintRecord lists the filled fields of record grouped by step.
func (p *Printer) PrintRecord(record types.Record, reg *schema.Registry) {
	var sb strings.Builder
	filled := 0
	for step := schema.FirstStep; step <= schema.LastStep; step++ {
		var lines []string
		for _, key := range reg.KeysForStep(step) {
			v := record.Get(key)
			if v.IsEmpty() || key == "parsed_data_raw" {
				continue
			}
			spec, _ := reg.Spec(key)
			lines = append(lines, fmt.Sprintf("  %s %s",
				labelStyle.Render(i18n.Tr(spec.Label, p.lang)+":"), truncate(v.String(), maxValueRunes)))
		}
		if len(lines) == 0 {
			continue
		}
		filled += len(lines)
		sb.WriteString(i18n.Tr(step.Title(), p.lang) + "\n")
		sb.WriteString(strings.Join(lines, "\n") + "\n")
	}
	if filled == 0 {
		p.printBox("VACANCY RECORD", dimStyle.Render("no fields filled"))
		return
	}
	header := fmt.Sprintf("%d of %d fields filled\n\n", filled, len(reg.AllKeys()))
	p.printBox("VACANCY RECORD", header+strings.TrimSuffix(sb.String(), "\n"))
}

// PrintIngest summarises one ingest.
func (p *Printer) PrintIngest(res session.IngestResult) {
	if res.Skipped {
		p.printBox("INGEST", warnStyle.Render("empty input, nothing extracted"))
		return
	}
	var sb strings.Builder
	if src := res.Source; src != nil {
		sb.WriteString(fmt.Sprintf("Source:   %s (%s)\n", src.Name, src.Kind))
		if src.Platform != "" {
			sb.WriteString(fmt.Sprintf("Platform: %s\n", src.Platform))
		}
		if src.FromCache {
			sb.WriteString("Cached:   yes\n")
		}
	}
	sb.WriteString(fmt.Sprintf("Detected: %d fields\n", len(res.Detected)))
	sb.WriteString(fmt.Sprintf("Filled:   %d fields\n", len(res.Filled)))

	count := min(len(res.Filled), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", res.Filled[i]))
	}
	if len(res.Filled) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(res.Filled)-maxItemsToShow))
	}
	p.printBox("INGEST", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintStep shows one wizard step with its warnings.
func (p *Printer) PrintStep(view session.StepView) {
	var sb strings.Builder
	for _, f := range view.Fields {
		marker := " "
		if f.Requirement == schema.Mandatory {
			marker = "*"
		}
		value := truncate(f.Value.String(), maxValueRunes)
		if value == "" {
			value = dimStyle.Render("(empty)")
		}
		sb.WriteString(fmt.Sprintf("%s %s %s\n", marker, labelStyle.Render(f.Label+":"), value))
	}
	if len(view.Applied) > 0 {
		sb.WriteString("\nSuggestions applied: " + strings.Join(view.Applied, ", ") + "\n")
	}
	for _, w := range view.Warnings {
		sb.WriteString(warnStyle.Render("⚠ "+w) + "\n")
	}
	p.printBox(fmt.Sprintf("STEP %d: %s", int(view.Step), strings.ToUpper(view.Title)), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintText shows generated content under title.
func (p *Printer) PrintText(title, text string) {
	p.printBox(strings.ToUpper(title), strings.TrimSpace(text))
}

// PrintList shows a titled bullet list, or a dimmed note when empty.
func (p *Printer) PrintList(title string, items []string) {
	if len(items) == 0 {
		p.printBox(strings.ToUpper(title), dimStyle.Render("no results"))
		return
	}
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = "• " + item
	}
	p.printBox(strings.ToUpper(title), strings.Join(lines, "\n"))
}
