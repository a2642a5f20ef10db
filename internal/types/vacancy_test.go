package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldValue_IsEmpty(t *testing.T) {
	tests := []struct {
		name     string
		value    FieldValue
		expected bool
	}{
		{"empty text", Text(""), true},
		{"whitespace text", Text("  \n"), true},
		{"text", Text("Berlin"), false},
		{"nil list", List(), true},
		{"blank list items", List("", " "), true},
		{"list", List("LinkedIn"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.value.IsEmpty())
		})
	}
}

func TestFieldValue_Values(t *testing.T) {
	assert.Equal(t, []string{"Python", "SQL"}, Text("Python, SQL,").Values())
	assert.Equal(t, []string{"Python", "SQL"}, List(" Python", "", "SQL").Values())
	assert.Empty(t, Text("").Values())
}

func TestFieldValue_String(t *testing.T) {
	assert.Equal(t, "a, b", List("a", "b").String())
	assert.Equal(t, "plain", Text("plain").String())
}

func TestFieldValue_JSON(t *testing.T) {
	rec := Record{
		"city":                         Text("Berlin"),
		"desired_publication_channels": List("LinkedIn Remote Jobs", "WeWorkRemotely"),
	}

	data, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.JSONEq(t, `{"city":"Berlin","desired_publication_channels":["LinkedIn Remote Jobs","WeWorkRemotely"]}`, string(data))

	var decoded Record
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, decoded.Get("city").Equal(Text("Berlin")))
	assert.Equal(t, KindList, decoded.Get("desired_publication_channels").Kind)
}

func TestFieldValue_UnmarshalScalars(t *testing.T) {
	var rec Record
	require.NoError(t, json.Unmarshal([]byte(`{"vacation_days":30,"flexible_hours":true,"team_structure":null}`), &rec))

	assert.Equal(t, "30", rec.String("vacation_days"))
	assert.Equal(t, "true", rec.String("flexible_hours"))
	assert.True(t, rec.IsEmpty("team_structure"))

	err := json.Unmarshal([]byte(`{"city":{"name":"Berlin"}}`), &rec)
	assert.Error(t, err)
}

func TestRecord_GetAbsent(t *testing.T) {
	rec := NewRecord()
	assert.True(t, rec.IsEmpty("job_title"))
	assert.Equal(t, "", rec.String("job_title"))

	rec.SetText("job_title", " Data Scientist ")
	assert.Equal(t, "Data Scientist", rec.String("job_title"))
}

func TestRecord_CloneIsDeep(t *testing.T) {
	rec := Record{"role_type": List("a")}
	clone := rec.Clone()
	clone["role_type"].Items[0] = "changed"
	assert.Equal(t, "a", rec["role_type"].Items[0])
}

func TestCanonicalList(t *testing.T) {
	assert.Equal(t, "Python, SQL", CanonicalList("Python, SQL, Python"))
	assert.Equal(t, "", CanonicalList(" , "))
	assert.Equal(t, "python, Python", CanonicalList("python,Python"))
}
