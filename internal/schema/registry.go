// Package schema holds the canonical vacancy field table: which keys exist, which wizard
// step each belongs to, how strongly it is requested and what shape its value takes.
package schema

import (
	"fmt"
	"strings"
	"sync"

	"github.com/jonathan/vacancy-wizard/internal/types"
)

// Step is one of the ten ordered wizard steps.
type Step int

const (
	StepBasicData Step = iota + 1
	StepCompanyInfo
	StepDepartmentTeam
	StepRoleDefinition
	StepTasks
	StepSkills
	StepCompensation
	StepRecruitment
	StepLanguagePublication
	StepSummary
)

// FirstStep and LastStep bound the valid step range.
const (
	FirstStep = StepBasicData
	LastStep  = StepSummary
)

var stepTitles = map[Step]string{
	StepBasicData:           "Grunddaten / Basic Data",
	StepCompanyInfo:         "Unternehmen / Company Info",
	StepDepartmentTeam:      "Abteilung & Team / Department & Team",
	StepRoleDefinition:      "Rollendefinition / Role Definition",
	StepTasks:               "Aufgaben / Tasks & Responsibilities",
	StepSkills:              "Fähigkeiten / Skills & Competencies",
	StepCompensation:        "Vergütung / Compensation & Benefits",
	StepRecruitment:         "Bewerbungsprozess / Recruitment Process",
	StepLanguagePublication: "Sprache & Veröffentlichung / Language & Publication",
	StepSummary:             "Zusammenfassung / Summary",
}

// Valid reports whether s lies within the wizard range.
func (s Step) Valid() bool {
	return s >= FirstStep && s <= LastStep
}

// Title returns the bilingual "de / en" title of the step.
func (s Step) Title() string {
	if t, ok := stepTitles[s]; ok {
		return t
	}
	return fmt.Sprintf("Step %d", int(s))
}

// ParseStep converts a 1-based step number.
func ParseStep(n int) (Step, error) {
	s := Step(n)
	if !s.Valid() {
		return 0, fmt.Errorf("step %d out of range %d..%d", n, FirstStep, LastStep)
	}
	return s, nil
}

// Requirement is the display emphasis for a field. Missing mandatory fields warn, never block.
type Requirement string

const (
	Mandatory   Requirement = "mandatory"
	Recommended Requirement = "recommended"
	Optional    Requirement = "optional"
)

// Shape describes the value variant a field stores.
type Shape string

const (
	ShapeScalar Shape = "scalar"
	ShapeList   Shape = "list"
)

// Source records where a field is usually filled from.
type Source string

const (
	SourceExtracted Source = "extracted"
	SourceUser      Source = "user"
	SourceLLM       Source = "llm"
)

// FieldSpec is one row of the field table.
type FieldSpec struct {
	Key         types.FieldKey `json:"key"`
	Step        Step           `json:"step"`
	Requirement Requirement    `json:"requirement"`
	Shape       Shape          `json:"shape"`
	// Separated marks comma separated text fields that are kept free of duplicates.
	Separated bool     `json:"separated,omitempty"`
	Label     string   `json:"label"`
	Help      string   `json:"help,omitempty"`
	Widget    string   `json:"widget,omitempty"`
	Options   []string `json:"options,omitempty"`
	Source    Source   `json:"source,omitempty"`
}

// Registry is an immutable, validated field table.
type Registry struct {
	specs []FieldSpec
	index map[types.FieldKey]int
}

// New builds a registry from specs and validates it.
func New(specs []FieldSpec) (*Registry, error) {
	r := &Registry{
		specs: make([]FieldSpec, len(specs)),
		index: make(map[types.FieldKey]int, len(specs)),
	}
	copy(r.specs, specs)
	for i, s := range r.specs {
		if _, dup := r.index[s.Key]; dup {
			return nil, fmt.Errorf("duplicate field key %q", s.Key)
		}
		r.index[s.Key] = i
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the registry built from the canonical field table.
// It panics if the table is inconsistent, which is a programming error.
func Default() *Registry {
	defaultOnce.Do(func() {
		r, err := New(canonicalFields)
		if err != nil {
			panic(fmt.Sprintf("schema: invalid field table: %v", err))
		}
		defaultRegistry = r
	})
	return defaultRegistry
}

// Validate checks every row and that every step owns at least one field.
func (r *Registry) Validate() error {
	var problems []string
	perStep := make(map[Step]int)
	for _, s := range r.specs {
		if strings.TrimSpace(string(s.Key)) == "" {
			problems = append(problems, "empty field key")
			continue
		}
		if !s.Step.Valid() {
			problems = append(problems, fmt.Sprintf("%s: invalid step %d", s.Key, s.Step))
		}
		switch s.Requirement {
		case Mandatory, Recommended, Optional:
		default:
			problems = append(problems, fmt.Sprintf("%s: invalid requirement %q", s.Key, s.Requirement))
		}
		switch s.Shape {
		case ShapeScalar, ShapeList:
		default:
			problems = append(problems, fmt.Sprintf("%s: invalid shape %q", s.Key, s.Shape))
		}
		if s.Separated && s.Shape != ShapeScalar {
			problems = append(problems, fmt.Sprintf("%s: separated fields must be scalar", s.Key))
		}
		perStep[s.Step]++
	}
	for step := FirstStep; step <= LastStep; step++ {
		if perStep[step] == 0 {
			problems = append(problems, fmt.Sprintf("step %d has no fields", step))
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("field table: %s", strings.Join(problems, "; "))
	}
	return nil
}

// AllKeys returns every key in table order.
func (r *Registry) AllKeys() []types.FieldKey {
	keys := make([]types.FieldKey, len(r.specs))
	for i, s := range r.specs {
		keys[i] = s.Key
	}
	return keys
}

// Specs returns a copy of the table.
func (r *Registry) Specs() []FieldSpec {
	out := make([]FieldSpec, len(r.specs))
	copy(out, r.specs)
	return out
}

// Has reports whether key is declared.
func (r *Registry) Has(key types.FieldKey) bool {
	_, ok := r.index[key]
	return ok
}

// Spec returns the row for key.
func (r *Registry) Spec(key types.FieldKey) (FieldSpec, bool) {
	i, ok := r.index[key]
	if !ok {
		return FieldSpec{}, false
	}
	return r.specs[i], true
}

// StepOf returns the step that owns key.
func (r *Registry) StepOf(key types.FieldKey) (Step, bool) {
	s, ok := r.Spec(key)
	return s.Step, ok
}

// RequirementOf returns the requirement level of key.
func (r *Registry) RequirementOf(key types.FieldKey) (Requirement, bool) {
	s, ok := r.Spec(key)
	return s.Requirement, ok
}

// ShapeOf returns the declared shape of key. Unknown keys are scalar.
func (r *Registry) ShapeOf(key types.FieldKey) Shape {
	if s, ok := r.Spec(key); ok {
		return s.Shape
	}
	return ShapeScalar
}

// KeysForStep returns the keys of one step in table order.
func (r *Registry) KeysForStep(step Step) []types.FieldKey {
	var keys []types.FieldKey
	for _, s := range r.specs {
		if s.Step == step {
			keys = append(keys, s.Key)
		}
	}
	return keys
}

// Empty returns the empty value matching the declared shape of key.
func (r *Registry) Empty(key types.FieldKey) types.FieldValue {
	if r.ShapeOf(key) == ShapeList {
		return types.List()
	}
	return types.Text("")
}

// Coerce converts v to the declared shape of key. Separated text is canonicalised.
func (r *Registry) Coerce(key types.FieldKey, v types.FieldValue) types.FieldValue {
	spec, ok := r.Spec(key)
	if !ok {
		return v
	}
	if spec.Shape == ShapeList {
		if v.Kind == types.KindList {
			return v
		}
		return types.List(splitListText(v.Text)...)
	}
	if v.Kind == types.KindList {
		v = types.Text(strings.Join(v.Values(), types.ListSeparator))
	}
	if spec.Separated {
		return types.Text(types.CanonicalList(v.Text))
	}
	return v
}

// FromFields converts extractor output into typed values. Unknown keys are dropped;
// the raw text key is always kept.
func (r *Registry) FromFields(fields types.Fields) types.Record {
	out := make(types.Record, len(fields))
	for k, v := range fields {
		if k != types.RawTextKey && !r.Has(k) {
			continue
		}
		out[k] = r.Coerce(k, types.Text(v))
	}
	return out
}

// FillDefaults returns a copy of record that contains every declared key. Present
// values are kept and coerced to their declared shape; absent keys get an empty value.
func (r *Registry) FillDefaults(record types.Record) types.Record {
	out := make(types.Record, len(r.specs)+len(record))
	for k, v := range record {
		out[k] = r.Coerce(k, v.Clone())
	}
	for _, s := range r.specs {
		if _, ok := out[s.Key]; !ok {
			out[s.Key] = r.Empty(s.Key)
		}
	}
	return out
}

// MissingMandatory lists the mandatory keys of step that are empty in record.
func (r *Registry) MissingMandatory(record types.Record, step Step) []types.FieldKey {
	var missing []types.FieldKey
	for _, s := range r.specs {
		if s.Step == step && s.Requirement == Mandatory && record.IsEmpty(s.Key) {
			missing = append(missing, s.Key)
		}
	}
	return missing
}

func splitListText(s string) []string {
	s = strings.ReplaceAll(s, ";", ",")
	return types.DedupeStrings(types.SplitList(s))
}
