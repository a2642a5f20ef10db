// Package parsing turns raw job-description text into vacancy field values, either with
// deterministic pattern rules or with an LLM.
package parsing

import "github.com/jonathan/vacancy-wizard/internal/types"

// Extractor applies a pattern library to raw text.
type Extractor struct {
	patterns *PatternLibrary
}

// NewExtractor returns an extractor over patterns, or over DefaultPatterns when nil.
func NewExtractor(patterns *PatternLibrary) *Extractor {
	if patterns == nil {
		patterns = DefaultPatterns()
	}
	return &Extractor{patterns: patterns}
}

// Extract returns the fields detected in raw. The result holds only detected keys
// plus types.RawTextKey, which always carries raw unchanged. Extract never fails.
func (e *Extractor) Extract(raw string) types.Fields {
	fields := e.patterns.Apply(Normalize(raw))
	fields[types.RawTextKey] = raw
	return fields
}
