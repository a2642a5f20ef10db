package generate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/vacancy-wizard/internal/types"
)

func TestBooleanSearch(t *testing.T) {
	tests := []struct {
		name   string
		record types.Record
		want   string
	}{
		{
			name: "skills list with city",
			record: types.Record{
				"must_have_skills": types.List("Python", "SQL"),
				"job_title":        types.Text("Data Scientist"),
				"city":             types.Text("Berlin"),
			},
			want: `("Python" OR "SQL") AND "Data Scientist" AND Berlin`,
		},
		{
			name: "without city",
			record: types.Record{
				"must_have_skills": types.List("Python", "SQL"),
				"job_title":        types.Text("Data Scientist"),
			},
			want: `("Python" OR "SQL") AND "Data Scientist"`,
		},
		{
			name: "blank city",
			record: types.Record{
				"must_have_skills": types.List("Python", "SQL"),
				"job_title":        types.Text("Data Scientist"),
				"city":             types.Text("  "),
			},
			want: `("Python" OR "SQL") AND "Data Scientist"`,
		},
		{
			name: "skills as comma text",
			record: types.Record{
				"must_have_skills": types.Text("Python, SQL"),
				"job_title":        types.Text("Data Scientist"),
				"city":             types.Text("Berlin"),
			},
			want: `("Python" OR "SQL") AND "Data Scientist" AND Berlin`,
		},
		{
			name: "single skill",
			record: types.Record{
				"must_have_skills": types.Text("Go"),
				"job_title":        types.Text("Backend Engineer"),
			},
			want: `("Go") AND "Backend Engineer"`,
		},
		{
			name: "quotes and backslashes kept verbatim",
			record: types.Record{
				"must_have_skills": types.List(`C\C++`, `"Go"`),
				"job_title":        types.Text(`Engineer "Platform"`),
			},
			want: `("C\C++" OR ""Go"") AND "Engineer "Platform""`,
		},
		{
			name: "missing skills",
			record: types.Record{
				"job_title": types.Text("Data Scientist"),
				"city":      types.Text("Berlin"),
			},
			want: InsufficientData,
		},
		{
			name: "empty skills list",
			record: types.Record{
				"must_have_skills": types.List(),
				"job_title":        types.Text("Data Scientist"),
			},
			want: InsufficientData,
		},
		{
			name: "missing title",
			record: types.Record{
				"must_have_skills": types.List("Python", "SQL"),
				"city":             types.Text("Berlin"),
			},
			want: InsufficientData,
		},
		{name: "empty record", record: types.NewRecord(), want: InsufficientData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BooleanSearch(tt.record))
		})
	}
}

func TestInsufficientDataMarker(t *testing.T) {
	assert.Equal(t, "# Nicht genug Daten für Boolean-String", InsufficientData)
}
