package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/jonathan/vacancy-wizard/internal/enrich"
	"github.com/jonathan/vacancy-wizard/internal/schema"
	"github.com/jonathan/vacancy-wizard/internal/taxonomy"
	"github.com/jonathan/vacancy-wizard/internal/types"
)

// PatchFieldsResponse lists the fields a raw text edit filled.
type PatchFieldsResponse struct {
	Filled []types.FieldKey `json:"filled"`
	Record types.Record     `json:"record"`
}

// SuggestResponse carries ESCO proposals for the session's job title.
type SuggestResponse struct {
	Title  string           `json:"title"`
	Skills []string         `json:"skills"`
	Tasks  []string         `json:"tasks"`
	Filled []types.FieldKey `json:"filled,omitempty"`
}

func parseStep(r *http.Request) (schema.Step, error) {
	n, err := strconv.Atoi(r.PathValue("step"))
	if err != nil {
		return 0, &ErrValidation{Field: "step", Message: "step must be a number"}
	}
	step, err := schema.ParseStep(n)
	if err != nil {
		return 0, &ErrValidation{Field: "step", Message: err.Error()}
	}
	return step, nil
}

// parseRules reads ?rules=a,b. Without the parameter the step defaults apply
// (nil); "none" disables rules.
func parseRules(r *http.Request) ([]enrich.Rule, error) {
	if !r.URL.Query().Has("rules") {
		return nil, nil
	}
	raw := strings.TrimSpace(r.URL.Query().Get("rules"))
	rules := []enrich.Rule{}
	if raw == "" || raw == "none" {
		return rules, nil
	}
	for _, name := range strings.Split(raw, ",") {
		rule, ok := enrich.ByName(strings.TrimSpace(name))
		if !ok {
			return nil, &ErrValidation{Field: "rules", Message: "unknown rule " + strconv.Quote(name)}
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

// handlePatchFields applies user edits.
func (s *Server) handlePatchFields(w http.ResponseWriter, r *http.Request) {
	sess, err := s.lookupSession(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req FieldsRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	filled, err := sess.ApplyEdits(req.Fields)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if filled == nil {
		filled = []types.FieldKey{}
	}
	s.jsonResponse(w, http.StatusOK, PatchFieldsResponse{Filled: filled, Record: sess.Snapshot()})
}

// handleGetStep runs the step's enrichment rules and renders its fields.
func (s *Server) handleGetStep(w http.ResponseWriter, r *http.Request) {
	sess, err := s.lookupSession(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	step, err := parseStep(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	rules, err := parseRules(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	view, err := sess.RenderStep(step, rules)
	if err != nil {
		s.writeError(w, r, &ErrValidation{Field: "step", Message: err.Error()})
		return
	}
	s.jsonResponse(w, http.StatusOK, view)
}

// handleSuggest looks up ESCO skills and tasks for the job title. The tasks
// step gets tasks, the skills step gets skills, other steps get both.
func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	sess, err := s.lookupSession(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if s.taxonomy == nil {
		s.writeError(w, r, &ErrUnavailable{Feature: "taxonomy lookup"})
		return
	}
	step, err := parseStep(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req SuggestRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	title := strings.TrimSpace(sess.Snapshot().String("job_title"))
	if title == "" {
		s.writeError(w, r, &ErrValidation{Field: "job_title", Message: "job title is required for suggestions"})
		return
	}

	ctx, lang, limit := r.Context(), sess.Language(), req.Limit
	var sugg taxonomy.Suggestions
	switch step {
	case schema.StepTasks:
		sugg.Tasks = s.taxonomy.TasksForTitle(ctx, title, lang, limit)
	case schema.StepSkills:
		sugg.Skills = s.taxonomy.SkillsForTitle(ctx, title, lang, limit)
	default:
		sugg = s.taxonomy.SuggestForTitle(ctx, title, lang, limit)
	}

	resp := SuggestResponse{Title: title, Skills: nonNil(sugg.Skills), Tasks: nonNil(sugg.Tasks)}
	if req.Apply {
		fields := types.Fields{}
		if len(sugg.Tasks) > 0 {
			fields["task_list"] = strings.Join(sugg.Tasks, types.ListSeparator)
		}
		if len(sugg.Skills) > 0 {
			fields["must_have_skills"] = strings.Join(sugg.Skills, types.ListSeparator)
		}
		resp.Filled = sess.MergeFields("esco", fields)
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
