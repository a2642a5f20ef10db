package enrich

import "github.com/jonathan/vacancy-wizard/internal/schema"

// stepRules is the default selection of rules run when a step is rendered.
var stepRules = map[schema.Step][]string{
	schema.StepTasks:               {TaskSuggestion},
	schema.StepSkills:              {MustHaveSuggestion, NiceToHaveSuggestion},
	schema.StepCompensation:        {SalaryDefault, BonusSuggestion, CommissionSuggestion},
	schema.StepLanguagePublication: {PublicationChannels, TranslationRequired},
}

// ForStep returns the rules rendered with step, in application order.
func ForStep(step schema.Step) []Rule {
	names := stepRules[step]
	rules := make([]Rule, 0, len(names))
	for _, name := range names {
		if r, ok := ByName(name); ok {
			rules = append(rules, r)
		}
	}
	return rules
}
