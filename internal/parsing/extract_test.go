package parsing

import (
	"testing"

	"github.com/jonathan/vacancy-wizard/internal/types"
	"github.com/stretchr/testify/assert"
)

const sampleAd = `Jobtitel: Data Scientist
Unternehmen: ACME Analytics GmbH, Abteilung KI
Stadt: Berlin
Website: https://acme.example
Wir suchen ab sofort in Vollzeit einen Senior Data Scientist (unbefristet).

Anforderungen:
Proficiency in Python and machine learning libraries (e.g., scikit-learn, TensorFlow).
Experience with SQL & Python.
`

func TestExtractor_Extract(t *testing.T) {
	fields := NewExtractor(nil).Extract(sampleAd)

	assert.Equal(t, "Data Scientist", fields["job_title"])
	assert.Equal(t, "ACME Analytics GmbH", fields["company_name"])
	assert.Equal(t, "Berlin", fields["city"])
	assert.Equal(t, "https://acme.example", fields["company_website"])
	assert.Equal(t, "Vollzeit", fields["job_type"])
	assert.Equal(t, "Unbefristet", fields["contract_type"])
	assert.Equal(t, "Senior", fields["job_level"])
	assert.Equal(t, "Python, machine learning libraries, scikit-learn, TensorFlow, SQL", fields["must_have_skills"])
	assert.Equal(t, sampleAd, fields[types.RawTextKey])
}

func TestExtractor_RawRoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"nothing to find",
		"Jobtitel: X (e.g., Y)",
		"  leading and trailing whitespace \n",
	}
	e := NewExtractor(nil)
	for _, in := range inputs {
		assert.Equal(t, in, e.Extract(in)[types.RawTextKey])
	}
}

func TestExtractor_OnlyDetectedKeys(t *testing.T) {
	fields := NewExtractor(nil).Extract("Jobtitel: Data Scientist")
	assert.Equal(t, types.Fields{
		"job_title":      "Data Scientist",
		types.RawTextKey: "Jobtitel: Data Scientist",
	}, fields)
}
