package taxonomy

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const occupationURI = "http://data.europa.eu/esco/occupation/data-scientist"

func newESCOServer(t *testing.T, searches *atomic.Int32) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		switch q.Get("type") {
		case "skill":
			assert.Equal(t, "python", q.Get("text"))
			writeJSON(w, map[string]any{"_embedded": map[string]any{"results": []map[string]string{
				{"title": "Python"}, {"title": ""}, {"title": "use Python libraries"},
			}}})
		case "occupation":
			searches.Add(1)
			assert.Equal(t, "1", q.Get("limit"))
			if q.Get("text") == "Unknown Job" {
				writeJSON(w, map[string]any{"_embedded": map[string]any{"results": []any{}}})
				return
			}
			writeJSON(w, map[string]any{"_embedded": map[string]any{"results": []map[string]string{
				{"uri": occupationURI, "title": "data scientist"},
			}}})
		default:
			http.Error(w, "bad type", http.StatusBadRequest)
		}
	})
	mux.HandleFunc("/resource/related", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, occupationURI, r.URL.Query().Get("uri"))
		assert.Equal(t, "hasEssentialSkill", r.URL.Query().Get("relation"))
		writeJSON(w, map[string]any{"_embedded": map[string]any{"hasEssentialSkill": []map[string]string{
			{"title": "Skill A"}, {"title": "Skill B"},
		}}})
	})
	mux.HandleFunc("/resource/occupation", func(w http.ResponseWriter, r *http.Request) {
		lang := r.URL.Query().Get("language")
		writeJSON(w, map[string]any{"description": map[string]any{
			lang: map[string]string{"literal": "Task one. Task two.  Other. "},
		}})
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func TestSearchSkills(t *testing.T) {
	var searches atomic.Int32
	server := newESCOServer(t, &searches)
	c := NewClient(WithBaseURL(server.URL))

	assert.Equal(t, []string{"Python", "use Python libraries"}, c.SearchSkills(t.Context(), "python", "en", 5))
	assert.Equal(t, []string{"Python"}, c.SearchSkills(t.Context(), "python", "en", 1))
	assert.Nil(t, c.SearchSkills(t.Context(), "  ", "en", 5))
}

func TestSkillsForTitle(t *testing.T) {
	var searches atomic.Int32
	server := newESCOServer(t, &searches)
	c := NewClient(WithBaseURL(server.URL))

	assert.Equal(t, []string{"Skill A", "Skill B"}, c.SkillsForTitle(t.Context(), "Data Scientist", "en", 10))
	assert.Nil(t, c.SkillsForTitle(t.Context(), "Unknown Job", "en", 10))
}

func TestTasksForTitle(t *testing.T) {
	var searches atomic.Int32
	server := newESCOServer(t, &searches)
	c := NewClient(WithBaseURL(server.URL))

	assert.Equal(t, []string{"Task one", "Task two", "Other"}, c.TasksForTitle(t.Context(), "Data Scientist", "de", 10))
	assert.Equal(t, []string{"Task one", "Task two"}, c.TasksForTitle(t.Context(), "Data Scientist", "de", 2))
}

func TestSuggestForTitle_CachesOccupation(t *testing.T) {
	var searches atomic.Int32
	server := newESCOServer(t, &searches)
	c := NewClient(WithBaseURL(server.URL))

	// Warm the occupation cache so both lookups share it.
	require.NotEmpty(t, c.SkillsForTitle(t.Context(), "Data Scientist", "en", 10))

	got := c.SuggestForTitle(t.Context(), "data scientist", "en", 10)
	assert.Equal(t, []string{"Skill A", "Skill B"}, got.Skills)
	assert.Equal(t, []string{"Task one", "Task two", "Other"}, got.Tasks)
	assert.Equal(t, int32(1), searches.Load())
}

func TestClient_SoftFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "maintenance", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	var mu sync.Mutex
	var failed []string
	c := NewClient(WithBaseURL(server.URL), WithFailureHook(func(op string, err error) {
		mu.Lock()
		defer mu.Unlock()
		failed = append(failed, op)
		assert.Contains(t, err.Error(), "503")
	}))

	assert.Nil(t, c.SearchSkills(t.Context(), "python", "en", 5))
	assert.Nil(t, c.SkillsForTitle(t.Context(), "Data Scientist", "en", 5))
	got := c.SuggestForTitle(t.Context(), "Data Scientist", "en", 5)
	assert.Empty(t, got.Skills)
	assert.Empty(t, got.Tasks)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 4, len(failed))
	assert.Equal(t, "search_skills", failed[0])
}

func TestClient_MalformedJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("{not json"))
	}))
	defer server.Close()

	c := NewClient(WithBaseURL(server.URL))
	assert.Nil(t, c.SearchSkills(t.Context(), "python", "en", 5))
}

func TestClient_Unreachable(t *testing.T) {
	c := NewClient(WithBaseURL("http://127.0.0.1:1"))
	assert.Nil(t, c.TasksForTitle(t.Context(), "Data Scientist", "en", 5))
}
