package parsing

import (
	"regexp"
	"strings"

	"github.com/jonathan/vacancy-wizard/internal/types"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Rule detects at most one field value in normalized text.
type Rule interface {
	// Key is the field the rule fills.
	Key() types.FieldKey
	// Match returns the detected value and true, or "" and false.
	Match(text string) (string, bool)
}

// LabeledLineRule matches lines of the form "<label>: value" or "<label> - value".
// The first line with a non-empty value wins and anything after a comma is dropped.
type LabeledLineRule struct {
	key     types.FieldKey
	pattern *regexp.Regexp
}

// NewLabeledLineRule builds a rule for key from a set of label synonyms.
func NewLabeledLineRule(key types.FieldKey, labels ...string) *LabeledLineRule {
	return &LabeledLineRule{
		key:     key,
		pattern: regexp.MustCompile(`(?im)^[ \t]*(?:` + alternation(labels) + `)[ \t]*[:\-][ \t]*([^,\r\n]+)`),
	}
}

func (r *LabeledLineRule) Key() types.FieldKey { return r.key }

func (r *LabeledLineRule) Match(text string) (string, bool) {
	for _, m := range r.pattern.FindAllStringSubmatch(text, -1) {
		if value := strings.TrimSpace(m[1]); value != "" {
			return value, true
		}
	}
	return "", false
}

// VocabularyRule finds the left-most whole-word occurrence of any term in a fixed
// vocabulary and returns the matched text title-cased.
type VocabularyRule struct {
	key     types.FieldKey
	pattern *regexp.Regexp
	caser   cases.Caser
}

// NewVocabularyRule builds a rule for key. Earlier terms win when two terms start
// at the same position.
func NewVocabularyRule(key types.FieldKey, terms ...string) *VocabularyRule {
	return &VocabularyRule{
		key:     key,
		pattern: regexp.MustCompile(`(?i)\b(?:` + alternation(terms) + `)\b`),
		caser:   cases.Title(language.Und),
	}
}

func (r *VocabularyRule) Key() types.FieldKey { return r.key }

func (r *VocabularyRule) Match(text string) (string, bool) {
	m := r.pattern.FindString(text)
	if m == "" {
		return "", false
	}
	return r.caser.String(m), true
}

var (
	skillTrigger = regexp.MustCompile(`(?i)(?:proficiency in|experience with|knowledge of|proficient in)\s+(.+?)(?:\.|\n)`)
	egParen      = regexp.MustCompile(`\(e\.g\.,?`)
	parens       = regexp.MustCompile(`[()]`)
	periodsBreak = regexp.MustCompile(`[.\n]`)
	whitespace   = regexp.MustCompile(`\s+`)
	skillSplit   = regexp.MustCompile(`,| and | und |&`)
)

// PhraseListRule collects comma separated skills following phrases such as
// "experience with" or "knowledge of".
type PhraseListRule struct {
	key types.FieldKey
}

// NewPhraseListRule builds the skill phrase rule for key.
func NewPhraseListRule(key types.FieldKey) *PhraseListRule {
	return &PhraseListRule{key: key}
}

func (r *PhraseListRule) Key() types.FieldKey { return r.key }

func (r *PhraseListRule) Match(text string) (string, bool) {
	skills := SplitSkills(text)
	if len(skills) == 0 {
		return "", false
	}
	return strings.Join(skills, types.ListSeparator), true
}

// SplitSkills returns the skill fragments found after trigger phrases, in order of
// first appearance with exact duplicates removed.
func SplitSkills(text string) []string {
	var skills []string
	for _, m := range skillTrigger.FindAllStringSubmatch(text, -1) {
		fragment := egParen.ReplaceAllString(m[1], "")
		fragment = parens.ReplaceAllString(fragment, ",")
		fragment = periodsBreak.ReplaceAllString(fragment, "")
		fragment = whitespace.ReplaceAllString(fragment, " ")
		for _, part := range skillSplit.Split(fragment, -1) {
			if part = strings.TrimSpace(part); part != "" {
				skills = append(skills, part)
			}
		}
	}
	return types.DedupeStrings(skills)
}

// PatternLibrary is an ordered set of rules. Each field key is owned by one rule.
type PatternLibrary struct {
	rules []Rule
}

// NewPatternLibrary returns a library applying rules in the given order.
func NewPatternLibrary(rules ...Rule) *PatternLibrary {
	return &PatternLibrary{rules: rules}
}

// Rules returns the rules in application order.
func (l *PatternLibrary) Rules() []Rule {
	out := make([]Rule, len(l.rules))
	copy(out, l.rules)
	return out
}

// Apply runs every rule over text. A key already set by an earlier rule is not overwritten.
func (l *PatternLibrary) Apply(text string) types.Fields {
	out := make(types.Fields)
	for _, rule := range l.rules {
		if _, done := out[rule.Key()]; done {
			continue
		}
		if value, ok := rule.Match(text); ok {
			out[rule.Key()] = value
		}
	}
	return out
}

// DefaultPatterns returns the German/English rule set.
func DefaultPatterns() *PatternLibrary {
	return NewPatternLibrary(
		NewLabeledLineRule("job_title", "Stellenbezeichnung", "Stellentitel", "Jobtitel", "Job Title", "Position"),
		NewLabeledLineRule("company_name", "Unternehmen", "Firma", "Arbeitgeber", "Company Name", "Company", "Employer"),
		NewLabeledLineRule("city", "Stadt", "Standort", "Arbeitsort", "Ort", "City", "Location"),
		NewLabeledLineRule("company_website", "Webseite", "Website", "Homepage", "Unternehmenswebsite", "Company Website"),
		NewVocabularyRule("job_type", "full-time", "full time", "vollzeit", "part-time", "part time", "teilzeit",
			"praktikum", "internship", "werkstudent", "freelance"),
		NewVocabularyRule("contract_type", "unbefristet", "befristet", "permanent", "fixed-term", "temporary", "werkvertrag"),
		NewVocabularyRule("job_level", "entry level", "junior", "mid", "senior", "lead", "principal", "management"),
		NewPhraseListRule("must_have_skills"),
	)
}

func alternation(terms []string) string {
	quoted := make([]string, len(terms))
	for i, t := range terms {
		quoted[i] = strings.ReplaceAll(regexp.QuoteMeta(t), " ", `[ \t]+`)
	}
	return strings.Join(quoted, "|")
}
