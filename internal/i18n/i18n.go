// Package i18n selects the German or English half of bilingual "de / en" labels.
package i18n

import "strings"

// Supported language codes.
const (
	German  = "de"
	English = "en"
)

// Tr returns the part of a "de / en" string for lang. Strings without the
// separator are returned unchanged; any lang other than German selects English.
func Tr(text, lang string) string {
	left, right, ok := strings.Cut(text, " / ")
	if !ok {
		return text
	}
	if Normalize(lang) == German {
		return strings.TrimSpace(left)
	}
	return strings.TrimSpace(right)
}

// Normalize maps a language name or code to German or English.
func Normalize(lang string) string {
	switch strings.ToLower(strings.TrimSpace(lang)) {
	case "de", "de-de", "german", "deutsch":
		return German
	default:
		return English
	}
}

// LanguageName returns the display name used in prompts and the language_of_ad field.
func LanguageName(lang string) string {
	if Normalize(lang) == German {
		return "Deutsch"
	}
	return "English"
}
