// Package enrich holds the deterministic suggestion rules that fill empty vacancy
// fields from the values already present. Every rule is idempotent.
package enrich

import (
	"fmt"
	"strings"

	"github.com/jonathan/vacancy-wizard/internal/types"
)

// Rule is a named, idempotent mutation of a vacancy record.
type Rule struct {
	Name  string
	Apply func(types.Record)
}

// Rule names.
const (
	TaskSuggestion       = "task_suggestion"
	MustHaveSuggestion   = "must_have_suggestion"
	NiceToHaveSuggestion = "nice_to_have_suggestion"
	SalaryDefault        = "salary_default"
	PublicationChannels  = "publication_channels"
	BonusSuggestion      = "bonus_suggestion"
	CommissionSuggestion = "commission_suggestion"
	TranslationRequired  = "translation_required"
)

const (
	defaultSalaryRange    = "45000 – 55000 EUR"
	bonusText             = "Eligible for an annual performance bonus."
	commissionText        = "Commission based on sales performance."
	defaultAdLanguage     = "English"
	suggestedItemsPerRule = 5
)

var (
	remoteChannels = []string{"LinkedIn Remote Jobs", "WeWorkRemotely"}
	remotePolicies = map[string]bool{"hybrid": true, "full remote": true}
	bonusLevels    = map[string]bool{"mid": true, "senior": true, "lead": true, "management": true}
	salesTerms     = []string{"sales", "business development", "account executive", "account manager"}
	niceToHave     = []string{"extra skill 1", "extra skill 2", "extra skill 3"}
)

// All returns every rule in a stable order.
func All() []Rule {
	return []Rule{
		{Name: TaskSuggestion, Apply: suggestTasks},
		{Name: MustHaveSuggestion, Apply: suggestMustHaveSkills},
		{Name: NiceToHaveSuggestion, Apply: suggestNiceToHaveSkills},
		{Name: SalaryDefault, Apply: defaultSalary},
		{Name: PublicationChannels, Apply: recommendChannels},
		{Name: BonusSuggestion, Apply: suggestBonus},
		{Name: CommissionSuggestion, Apply: suggestCommission},
		{Name: TranslationRequired, Apply: markTranslation},
	}
}

// ByName looks up a rule.
func ByName(name string) (Rule, bool) {
	for _, r := range All() {
		if r.Name == name {
			return r, true
		}
	}
	return Rule{}, false
}

// ApplyAll runs rules in order and returns the names of those that changed record.
func ApplyAll(record types.Record, rules ...Rule) []string {
	var fired []string
	for _, rule := range rules {
		before := record.Clone()
		rule.Apply(record)
		if changed(before, record) {
			fired = append(fired, rule.Name)
		}
	}
	return fired
}

func changed(before, after types.Record) bool {
	if len(before) != len(after) {
		return true
	}
	for k, v := range after {
		old, ok := before[k]
		if !ok || !old.Equal(v) {
			return true
		}
	}
	return false
}

func numbered(prefix string) []string {
	out := make([]string, suggestedItemsPerRule)
	for i := range out {
		out[i] = fmt.Sprintf("%s %d", prefix, i+1)
	}
	return out
}

func suggestTasks(r types.Record) {
	if !r.IsEmpty("task_list") {
		return
	}
	role := r.String("job_title")
	if role == "" {
		role = r.String("role_description")
	}
	if role == "" {
		return
	}
	r.SetText("task_list", strings.Join(numbered(role+" task"), "\n"))
}

func suggestMustHaveSkills(r types.Record) {
	if !r.IsEmpty("must_have_skills") {
		return
	}
	title := r.String("job_title")
	if title == "" {
		return
	}
	r.SetText("must_have_skills", strings.Join(numbered(title+" skill"), types.ListSeparator))
}

func suggestNiceToHaveSkills(r types.Record) {
	if !r.IsEmpty("nice_to_have_skills") || r.IsEmpty("must_have_skills") {
		return
	}
	r.SetText("nice_to_have_skills", strings.Join(niceToHave, types.ListSeparator))
}

func defaultSalary(r types.Record) {
	current := strings.ToLower(r.String("salary_range"))
	if current != "" && current != "competitive" {
		return
	}
	r.SetText("salary_range", defaultSalaryRange)
}

func recommendChannels(r types.Record) {
	if !remotePolicies[strings.ToLower(r.String("remote_work_policy"))] {
		return
	}
	r.Set("desired_publication_channels", types.List(remoteChannels...))
}

func suggestBonus(r types.Record) {
	if !r.IsEmpty("bonus_scheme") {
		return
	}
	if bonusLevels[strings.ToLower(r.String("job_level"))] {
		r.SetText("bonus_scheme", bonusText)
	}
}

func suggestCommission(r types.Record) {
	if !r.IsEmpty("commission_structure") {
		return
	}
	title := strings.ToLower(r.String("job_title"))
	for _, term := range salesTerms {
		if strings.Contains(title, term) {
			r.SetText("commission_structure", commissionText)
			return
		}
	}
}

func markTranslation(r types.Record) {
	if r.IsEmpty("language_requirements") {
		return
	}
	required := make(map[string]bool)
	for _, lang := range r.Get("language_requirements").Values() {
		required[strings.ToLower(lang)] = true
	}
	adLang := strings.ToLower(r.String("language_of_ad"))
	if adLang == "" {
		adLang = strings.ToLower(defaultAdLanguage)
	}
	if required[adLang] {
		r.SetText("translation_required", "No")
	} else {
		r.SetText("translation_required", "Yes")
	}
}
