package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// SourceKind says where the raw text of a vacancy came from.
type SourceKind string

const (
	SourceUpload SourceKind = "upload"
	SourceURL    SourceKind = "url"
	SourceText   SourceKind = "text"
)

// Source is decoded job ad text plus metadata about its origin.
type Source struct {
	Kind      SourceKind `json:"kind"`
	Name      string     `json:"name,omitempty"` // file name or URL
	Format    Format     `json:"format,omitempty"`
	Platform  string     `json:"platform,omitempty"`
	Timestamp string     `json:"timestamp"` // RFC3339
	Hash      string     `json:"hash"`      // SHA256 hex digest of Text
	FromCache bool       `json:"from_cache,omitempty"`
	Rendered  bool       `json:"rendered,omitempty"`
	Text      string     `json:"-"`
}

// NewSource stamps text with the current time and its content hash.
func NewSource(kind SourceKind, name, text string) *Source {
	return &Source{
		Kind:      kind,
		Name:      name,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Hash:      computeHash(text),
		Text:      text,
	}
}

func computeHash(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}

// ToJSON marshals the metadata to pretty-printed JSON. Text is omitted.
func (s *Source) ToJSON() ([]byte, error) {
	jsonBytes, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal source metadata: %w", err)
	}
	return jsonBytes, nil
}
