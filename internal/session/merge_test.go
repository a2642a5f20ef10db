package session

import (
	"testing"

	"github.com/jonathan/vacancy-wizard/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestMerge(t *testing.T) {
	tests := []struct {
		name     string
		existing types.Record
		incoming types.Record
		expected types.Record
	}{
		{
			name:     "fills empty and absent keys",
			existing: types.Record{"job_title": types.Text("")},
			incoming: types.Record{"job_title": types.Text("Data Scientist"), "city": types.Text("Berlin")},
			expected: types.Record{"job_title": types.Text("Data Scientist"), "city": types.Text("Berlin")},
		},
		{
			name:     "keeps user values",
			existing: types.Record{"job_title": types.Text("Lead Data Scientist")},
			incoming: types.Record{"job_title": types.Text("Data Scientist")},
			expected: types.Record{"job_title": types.Text("Lead Data Scientist")},
		},
		{
			name:     "empty incoming never erases",
			existing: types.Record{"city": types.Text("Berlin"), "role_type": types.List("Full-time")},
			incoming: types.Record{"city": types.Text(""), "role_type": types.List()},
			expected: types.Record{"city": types.Text("Berlin"), "role_type": types.List("Full-time")},
		},
		{
			name:     "raw text always replaced",
			existing: types.Record{types.RawTextKey: types.Text("old ad")},
			incoming: types.Record{types.RawTextKey: types.Text("new ad")},
			expected: types.Record{types.RawTextKey: types.Text("new ad")},
		},
		{
			name:     "raw text replaced even by blank",
			existing: types.Record{types.RawTextKey: types.Text("old ad")},
			incoming: types.Record{types.RawTextKey: types.Text("")},
			expected: types.Record{types.RawTextKey: types.Text("")},
		},
		{
			name:     "keys absent from incoming untouched",
			existing: types.Record{"company_name": types.Text("ACME")},
			incoming: types.Record{},
			expected: types.Record{"company_name": types.Text("ACME")},
		},
		{
			name:     "empty list counts as empty",
			existing: types.Record{"role_type": types.List()},
			incoming: types.Record{"role_type": types.List("Full-time", "Remote")},
			expected: types.Record{"role_type": types.List("Full-time", "Remote")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Merge(tt.existing, tt.incoming)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestMerge_MutatesAndReturnsExisting(t *testing.T) {
	existing := types.NewRecord()
	got := Merge(existing, types.Record{"city": types.Text("Berlin")})

	assert.Equal(t, "Berlin", existing.String("city"))
	assert.Equal(t, "Berlin", got.String("city"))
}

func TestMerge_NilExisting(t *testing.T) {
	got := Merge(nil, types.Record{"city": types.Text("Berlin")})
	assert.Equal(t, "Berlin", got.String("city"))
}

func TestMerge_DoesNotAliasIncomingLists(t *testing.T) {
	incoming := types.Record{"role_type": types.List("Full-time")}
	got := Merge(types.NewRecord(), incoming)

	incoming["role_type"].Items[0] = "changed"
	assert.Equal(t, []string{"Full-time"}, got.Get("role_type").Items)
}

func TestMerge_WithRawKey(t *testing.T) {
	existing := types.Record{
		"notes":          types.Text("first"),
		types.RawTextKey: types.Text("kept"),
	}
	incoming := types.Record{
		"notes":          types.Text("second"),
		types.RawTextKey: types.Text("ignored"),
	}

	got := Merge(existing, incoming, WithRawKey("notes"))
	assert.Equal(t, "second", got.String("notes"))
	assert.Equal(t, "kept", got.String(types.RawTextKey))
}

func TestMerge_WithForcedKeys(t *testing.T) {
	existing := types.Record{
		"input_url": types.Text("https://typed.example.com"),
		"city":      types.Text("Berlin"),
	}
	incoming := types.Record{
		"input_url": types.Text("https://jobs.example.com/ds"),
		"city":      types.Text("Hamburg"),
	}

	got, filled := MergeReport(existing, incoming, WithForcedKeys("input_url"))
	assert.Equal(t, "https://jobs.example.com/ds", got.String("input_url"))
	assert.Equal(t, "Berlin", got.String("city"))
	assert.Empty(t, filled)

	got = Merge(got, types.Record{"input_url": types.Text("")}, WithForcedKeys("input_url"))
	assert.Equal(t, "https://jobs.example.com/ds", got.String("input_url"), "empty values never clear a forced key")
}

func TestMergeReport_FilledKeys(t *testing.T) {
	existing := types.Record{"job_title": types.Text("Lead")}
	incoming := types.Record{
		"job_title":      types.Text("Data Scientist"),
		"city":           types.Text("Berlin"),
		"company_name":   types.Text("ACME"),
		"job_type":       types.Text(""),
		types.RawTextKey: types.Text("raw"),
	}

	_, filled := MergeReport(existing, incoming)
	assert.Equal(t, []types.FieldKey{"city", "company_name"}, filled)
}

func TestMerge_Idempotent(t *testing.T) {
	incoming := types.Record{"city": types.Text("Berlin"), types.RawTextKey: types.Text("raw")}
	once := Merge(types.NewRecord(), incoming).Clone()
	twice := Merge(once.Clone(), incoming)
	assert.Equal(t, once, twice)
}
