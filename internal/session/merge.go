// Package session owns the per-user vacancy record: it reconciles extractor
// output with what the user already entered and runs the step enrichment.
package session

import (
	"sort"

	"github.com/jonathan/vacancy-wizard/internal/types"
)

type mergeOptions struct {
	rawKey types.FieldKey
	forced map[types.FieldKey]bool
}

// MergeOption configures Merge.
type MergeOption func(*mergeOptions)

// WithRawKey overrides the key that is always overwritten (types.RawTextKey by default).
func WithRawKey(key types.FieldKey) MergeOption {
	return func(o *mergeOptions) { o.rawKey = key }
}

// WithForcedKeys makes keys behave like the raw key: a non-empty incoming
// value replaces the current one.
func WithForcedKeys(keys ...types.FieldKey) MergeOption {
	return func(o *mergeOptions) {
		if o.forced == nil {
			o.forced = make(map[types.FieldKey]bool, len(keys))
		}
		for _, k := range keys {
			o.forced[k] = true
		}
	}
}

// Merge folds incoming into existing and returns existing. The raw text key is
// always replaced; any other key is written only when existing holds no value
// for it and incoming does. Keys absent from incoming are untouched.
func Merge(existing, incoming types.Record, opts ...MergeOption) types.Record {
	merged, _ := MergeReport(existing, incoming, opts...)
	return merged
}

// MergeReport is Merge that also returns the non-raw keys it filled, sorted.
func MergeReport(existing, incoming types.Record, opts ...MergeOption) (types.Record, []types.FieldKey) {
	o := mergeOptions{rawKey: types.RawTextKey}
	for _, opt := range opts {
		opt(&o)
	}
	if existing == nil {
		existing = types.NewRecord()
	}

	var filled []types.FieldKey
	for key, value := range incoming {
		if key == o.rawKey {
			existing[key] = value.Clone()
			continue
		}
		if o.forced[key] {
			if !value.IsEmpty() {
				existing[key] = value.Clone()
			}
			continue
		}
		if existing.IsEmpty(key) && !value.IsEmpty() {
			existing[key] = value.Clone()
			filled = append(filled, key)
		}
	}
	sort.Slice(filled, func(i, j int) bool { return filled[i] < filled[j] })
	return existing, filled
}
