// Package types provides the value types shared by the vacancy wizard: field keys,
// field values and the vacancy record itself.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// FieldKey identifies one attribute of a vacancy (e.g. "job_title").
type FieldKey string

// RawTextKey holds the most recent raw input text. It is the only key a merge overwrites.
const RawTextKey FieldKey = "parsed_data_raw"

// ListSeparator is the canonical separator for multi-valued text fields.
const ListSeparator = ", "

// ValueKind tags which variant a FieldValue holds.
type ValueKind int

const (
	// KindText is a free-text scalar value.
	KindText ValueKind = iota
	// KindList is an ordered list of strings.
	KindList
)

func (k ValueKind) String() string {
	if k == KindList {
		return "list"
	}
	return "text"
}

// FieldValue is a tagged union of a text scalar and a string list.
type FieldValue struct {
	Kind  ValueKind
	Text  string
	Items []string
}

// Text returns a scalar text value.
func Text(s string) FieldValue {
	return FieldValue{Kind: KindText, Text: s}
}

// List returns a list value. A nil slice is stored as an empty list.
func List(items ...string) FieldValue {
	if items == nil {
		items = []string{}
	}
	return FieldValue{Kind: KindList, Items: items}
}

// IsEmpty reports whether the value carries no content.
func (v FieldValue) IsEmpty() bool {
	if v.Kind == KindList {
		for _, item := range v.Items {
			if strings.TrimSpace(item) != "" {
				return false
			}
		}
		return true
	}
	return strings.TrimSpace(v.Text) == ""
}

// String renders the value as text, joining lists with the canonical separator.
func (v FieldValue) String() string {
	if v.Kind == KindList {
		return strings.Join(v.Values(), ListSeparator)
	}
	return v.Text
}

// Values returns the list items, or the comma separated parts of a text value.
func (v FieldValue) Values() []string {
	if v.Kind == KindList {
		out := make([]string, 0, len(v.Items))
		for _, item := range v.Items {
			if s := strings.TrimSpace(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	return SplitList(v.Text)
}

// Equal compares kind and content.
func (v FieldValue) Equal(other FieldValue) bool {
	if v.Kind != other.Kind {
		return false
	}
	if v.Kind == KindText {
		return v.Text == other.Text
	}
	if len(v.Items) != len(other.Items) {
		return false
	}
	for i := range v.Items {
		if v.Items[i] != other.Items[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy that shares no backing storage.
func (v FieldValue) Clone() FieldValue {
	if v.Kind == KindList {
		items := make([]string, len(v.Items))
		copy(items, v.Items)
		return FieldValue{Kind: KindList, Items: items}
	}
	return v
}

// MarshalJSON encodes text as a JSON string and lists as a JSON array.
func (v FieldValue) MarshalJSON() ([]byte, error) {
	if v.Kind == KindList {
		items := v.Items
		if items == nil {
			items = []string{}
		}
		return json.Marshal(items)
	}
	return json.Marshal(v.Text)
}

// UnmarshalJSON accepts a string, an array of strings, a number, a bool or null.
func (v *FieldValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*v = Text("")
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = Text(s)
	case '[':
		var raw []any
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		items := make([]string, 0, len(raw))
		for _, item := range raw {
			if item == nil {
				continue
			}
			items = append(items, fmt.Sprint(item))
		}
		*v = List(items...)
	case '{':
		return fmt.Errorf("field value cannot be an object")
	default:
		var scalar any
		if err := json.Unmarshal(data, &scalar); err != nil {
			return err
		}
		*v = Text(fmt.Sprint(scalar))
	}
	return nil
}

// Fields is the plain string mapping produced by extractors and completion clients.
type Fields map[FieldKey]string

// Record is the vacancy record. Absent keys read as empty text.
type Record map[FieldKey]FieldValue

// NewRecord returns an empty record.
func NewRecord() Record {
	return make(Record)
}

// Get returns the value for key, or empty text when absent.
func (r Record) Get(key FieldKey) FieldValue {
	if v, ok := r[key]; ok {
		return v
	}
	return Text("")
}

// String returns the trimmed text form of key.
func (r Record) String(key FieldKey) string {
	return strings.TrimSpace(r.Get(key).String())
}

// IsEmpty reports whether key is absent or empty.
func (r Record) IsEmpty(key FieldKey) bool {
	v, ok := r[key]
	return !ok || v.IsEmpty()
}

// Set stores value under key.
func (r Record) Set(key FieldKey, value FieldValue) {
	r[key] = value
}

// SetText stores a text value under key.
func (r Record) SetText(key FieldKey, s string) {
	r[key] = Text(s)
}

// Keys returns the keys in sorted order.
func (r Record) Keys() []FieldKey {
	keys := make([]FieldKey, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Clone returns a deep copy.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v.Clone()
	}
	return out
}

// SplitList splits a comma separated string into trimmed, non-empty parts.
func SplitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// DedupeStrings removes exact duplicates, keeping the first occurrence.
func DedupeStrings(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}

// CanonicalList splits s on commas, removes duplicates and joins with ListSeparator.
func CanonicalList(s string) string {
	return strings.Join(DedupeStrings(SplitList(s)), ListSeparator)
}
