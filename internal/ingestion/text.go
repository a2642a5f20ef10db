package ingestion

import (
	"regexp"
	"strings"
)

var (
	spaceRunRe   = regexp.MustCompile(`\s+`)
	blankLinesRe = regexp.MustCompile(`\n\n\n+`)
)

// CleanText normalizes decoded or scraped text while keeping its line
// structure: CRLF becomes LF, runs of spaces collapse, headings and bullets
// keep their markers and at most one blank line separates paragraphs.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.TrimPrefix(content, "\ufeff")
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	content = strings.ReplaceAll(content, "\u00a0", " ")
	content = strings.ReplaceAll(content, "\f", "\n")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = cleanLine(line)
	}

	result := strings.Join(lines, "\n")
	result = blankLinesRe.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}

func cleanLine(line string) string {
	line = strings.TrimRight(line, " \t")
	trimmed := strings.TrimLeft(line, " \t")
	if trimmed == "" {
		return ""
	}

	// Markdown headings lose their indentation.
	if strings.HasPrefix(trimmed, "#") {
		return trimmed
	}

	indent := len(line) - len(trimmed)
	if isBulletLine(trimmed) {
		return strings.Repeat(" ", indent) + trimmed
	}
	return strings.Repeat(" ", indent) + spaceRunRe.ReplaceAllString(trimmed, " ")
}

func isBulletLine(trimmed string) bool {
	for _, marker := range []string{"- ", "* ", "• ", "· ", "– "} {
		if strings.HasPrefix(trimmed, marker) {
			return true
		}
	}
	return false
}
