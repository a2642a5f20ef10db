package session

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/vacancy-wizard/internal/enrich"
	"github.com/jonathan/vacancy-wizard/internal/i18n"
	"github.com/jonathan/vacancy-wizard/internal/ingestion"
	"github.com/jonathan/vacancy-wizard/internal/parsing"
	"github.com/jonathan/vacancy-wizard/internal/schema"
	"github.com/jonathan/vacancy-wizard/internal/types"
)

// Deps are the collaborators shared by all sessions of a store.
type Deps struct {
	Registry  *schema.Registry
	Extractor *parsing.Extractor
	Logger    *slog.Logger
	Observer  Observer
}

func (d Deps) withDefaults() Deps {
	if d.Registry == nil {
		d.Registry = schema.Default()
	}
	if d.Extractor == nil {
		d.Extractor = parsing.NewExtractor(nil)
	}
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if d.Observer == nil {
		d.Observer = nopObserver{}
	}
	return d
}

// UnknownFieldError rejects edits to keys the registry does not declare.
type UnknownFieldError struct {
	Keys []types.FieldKey
}

func (e *UnknownFieldError) Error() string {
	names := make([]string, len(e.Keys))
	for i, k := range e.Keys {
		names[i] = string(k)
	}
	return fmt.Sprintf("unknown field(s): %s", strings.Join(names, ", "))
}

// Session is one wizard run. All methods are safe for concurrent use; each
// call holds the session lock for its whole read-modify-write.
type Session struct {
	mu         sync.Mutex
	id         uuid.UUID
	language   string
	record     types.Record
	sources    []ingestion.Source
	createdAt  time.Time
	lastAccess time.Time
	deps       Deps
}

// New creates a session whose record holds every declared key with an empty value.
func New(language string, deps Deps) *Session {
	deps = deps.withDefaults()
	now := time.Now()
	return &Session{
		id:         uuid.New(),
		language:   i18n.Normalize(language),
		record:     deps.Registry.FillDefaults(types.NewRecord()),
		createdAt:  now,
		lastAccess: now,
		deps:       deps,
	}
}

// ID returns the session identifier.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Language returns the UI language code.
func (s *Session) Language() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.language
}

// SetLanguage switches the UI language.
func (s *Session) SetLanguage(lang string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.language = i18n.Normalize(lang)
}

// CreatedAt returns when the session was created.
func (s *Session) CreatedAt() time.Time {
	return s.createdAt
}

func (s *Session) touch() {
	s.lastAccess = time.Now()
}

// LastAccess returns the time of the most recent operation.
func (s *Session) LastAccess() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastAccess
}

// IngestResult describes what one ingest changed.
type IngestResult struct {
	Source   *ingestion.Source `json:"source,omitempty"`
	Detected []types.FieldKey  `json:"detected"`
	Filled   []types.FieldKey  `json:"filled"`
	Skipped  bool              `json:"skipped,omitempty"`
}

// Ingest extracts fields from src.Text and merges them into the record without
// overwriting anything already filled. The raw text is always replaced. A
// blank text is a no-op.
func (s *Session) Ingest(src *ingestion.Source) IngestResult {
	if src == nil || strings.TrimSpace(src.Text) == "" {
		return IngestResult{Source: src, Skipped: true}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	fields := s.deps.Extractor.Extract(src.Text)
	detected := detectedKeys(fields)
	// The source name always describes the latest input, like the raw text.
	switch src.Kind {
	case ingestion.SourceURL:
		fields[schema.KeyInputURL] = src.Name
	case ingestion.SourceUpload:
		fields[schema.KeyUploadedFile] = src.Name
	}
	filled := s.mergeFields(fields, WithForcedKeys(schema.KeyInputURL, schema.KeyUploadedFile))

	s.sources = append(s.sources, *src)

	s.deps.Observer.Extraction(string(src.Kind), len(filled))
	s.deps.Logger.Info("ingested job ad",
		"session", s.id, "source", src.Kind, "detected", len(detected), "filled", len(filled))

	return IngestResult{Source: src, Detected: detected, Filled: filled}
}

// MergeFields merges externally extracted fields, such as LLM output, without
// overwriting anything already filled. Unknown keys are dropped.
func (s *Session) MergeFields(source string, fields types.Fields) []types.FieldKey {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	filled := s.mergeFields(fields)
	s.deps.Observer.Extraction(source, len(filled))
	s.deps.Logger.Info("merged fields", "session", s.id, "source", source, "filled", len(filled))
	return filled
}

// mergeFields runs FromFields, FillDefaults and Merge. Callers hold s.mu.
func (s *Session) mergeFields(fields types.Fields, opts ...MergeOption) []types.FieldKey {
	reg := s.deps.Registry
	incoming := reg.FillDefaults(reg.FromFields(fields))
	if _, ok := fields[types.RawTextKey]; !ok {
		// Without raw text in the input the record's raw text stays as it is.
		delete(incoming, types.RawTextKey)
	}
	merged, filled := MergeReport(s.record, incoming, opts...)
	s.record = reg.FillDefaults(merged)
	return filled
}

// ApplyEdits writes user edits. Edited values replace the current ones and are
// coerced to the declared shape. A non-blank edit of the raw text re-runs
// extraction on it and merges the result without touching filled fields; a
// blank raw edit is ignored. No edit is applied if any key is unknown.
func (s *Session) ApplyEdits(edits types.Record) ([]types.FieldKey, error) {
	reg := s.deps.Registry

	var unknown []types.FieldKey
	for key := range edits {
		if key != types.RawTextKey && !reg.Has(key) && !schema.IsGenerated(key) {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 {
		sort.Slice(unknown, func(i, j int) bool { return unknown[i] < unknown[j] })
		return nil, &UnknownFieldError{Keys: unknown}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	for key, value := range edits {
		if key == types.RawTextKey {
			continue
		}
		s.record[key] = reg.Coerce(key, value.Clone())
	}

	var filled []types.FieldKey
	if raw, ok := edits[types.RawTextKey]; ok && strings.TrimSpace(raw.String()) != "" {
		filled = s.mergeFields(s.deps.Extractor.Extract(raw.String()))
		s.deps.Observer.Extraction("edited_raw", len(filled))
	}

	s.deps.Logger.Debug("applied edits", "session", s.id, "edited", len(edits), "filled", len(filled))
	return filled, nil
}

// SetGenerated stores generated content under one of schema.GeneratedKeys.
func (s *Session) SetGenerated(key types.FieldKey, text string) error {
	if !schema.IsGenerated(key) {
		return fmt.Errorf("%q is not a generated content key", key)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.record.SetText(key, text)
	return nil
}

// FieldView is one field as the wizard displays it.
type FieldView struct {
	Key         types.FieldKey     `json:"key"`
	Label       string             `json:"label"`
	Help        string             `json:"help,omitempty"`
	Requirement schema.Requirement `json:"requirement"`
	Widget      string             `json:"widget,omitempty"`
	Options     []string           `json:"options,omitempty"`
	Value       types.FieldValue   `json:"value"`
}

// StepView is the rendered state of one wizard step.
type StepView struct {
	Step     schema.Step `json:"step"`
	Title    string      `json:"title"`
	Fields   []FieldView `json:"fields"`
	Warnings []string    `json:"warnings,omitempty"`
	Applied  []string    `json:"applied_rules,omitempty"`
}

// RenderStep runs rules against the record (the step's default rules when
// rules is nil) and returns the step's fields in the session language.
// Empty mandatory fields produce warnings; they never block.
func (s *Session) RenderStep(step schema.Step, rules []enrich.Rule) (StepView, error) {
	if !step.Valid() {
		return StepView{}, fmt.Errorf("invalid step %d", int(step))
	}
	if rules == nil {
		rules = enrich.ForStep(step)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	reg := s.deps.Registry
	applied := enrich.ApplyAll(s.record, rules...)
	s.record = reg.FillDefaults(s.record)
	if len(applied) > 0 {
		s.deps.Observer.RulesFired(applied)
		s.deps.Logger.Debug("enrichment rules fired", "session", s.id, "step", int(step), "rules", applied)
	}

	view := StepView{
		Step:    step,
		Title:   i18n.Tr(step.Title(), s.language),
		Applied: applied,
	}
	for _, key := range reg.KeysForStep(step) {
		spec, _ := reg.Spec(key)
		view.Fields = append(view.Fields, FieldView{
			Key:         key,
			Label:       i18n.Tr(spec.Label, s.language),
			Help:        i18n.Tr(spec.Help, s.language),
			Requirement: spec.Requirement,
			Widget:      spec.Widget,
			Options:     spec.Options,
			Value:       s.record.Get(key).Clone(),
		})
	}
	for _, key := range reg.MissingMandatory(s.record, step) {
		spec, _ := reg.Spec(key)
		view.Warnings = append(view.Warnings,
			i18n.Tr("Pflichtfeld fehlt / Missing mandatory field", s.language)+": "+i18n.Tr(spec.Label, s.language))
	}
	return view, nil
}

// Snapshot returns a deep copy of the record.
func (s *Session) Snapshot() types.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	return s.record.Clone()
}

// Sources returns the metadata of every ingested source, oldest first.
func (s *Session) Sources() []ingestion.Source {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ingestion.Source, len(s.sources))
	copy(out, s.sources)
	return out
}

func detectedKeys(fields types.Fields) []types.FieldKey {
	keys := make([]types.FieldKey, 0, len(fields))
	for k := range fields {
		if k != types.RawTextKey {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
