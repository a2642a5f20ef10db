package ingestion

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedFormat is returned for uploads that are not pdf, docx or txt.
	ErrUnsupportedFormat = errors.New("unsupported document format")
	// ErrDecode is returned when a document of a supported type cannot be read.
	ErrDecode = errors.New("document could not be decoded")
	// ErrNetwork is returned when a job ad URL cannot be fetched.
	ErrNetwork = errors.New("job ad could not be fetched")
)

// UnsupportedFormatError names the rejected file.
type UnsupportedFormatError struct {
	Filename string
	Ext      string
}

func (e *UnsupportedFormatError) Error() string {
	if e.Ext == "" {
		return fmt.Sprintf("unsupported file %q: no extension (expected .pdf, .docx or .txt)", e.Filename)
	}
	return fmt.Sprintf("unsupported file %q: %s (expected .pdf, .docx or .txt)", e.Filename, e.Ext)
}

func (e *UnsupportedFormatError) Unwrap() error {
	return ErrUnsupportedFormat
}

// DecodeError reports a corrupt or mislabelled document.
type DecodeError struct {
	Filename string
	Format   Format
	Cause    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode %s file %q: %v", e.Format, e.Filename, e.Cause)
}

func (e *DecodeError) Unwrap() []error {
	return []error{ErrDecode, e.Cause}
}

// NetworkError reports a failed URL fetch.
type NetworkError struct {
	URL   string
	Cause error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("failed to fetch %s: %v", e.URL, e.Cause)
}

func (e *NetworkError) Unwrap() []error {
	return []error{ErrNetwork, e.Cause}
}
