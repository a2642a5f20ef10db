package ingestion

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"code.sajari.com/docconv"
	"github.com/gabriel-vasile/mimetype"
)

// Format is a supported upload type.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
	FormatTXT  Format = "txt"
)

// MaxDocumentBytes caps the size of an uploaded document.
const MaxDocumentBytes = 10 << 20

// FormatOf maps a file name to its Format by extension, case-insensitively.
func FormatOf(name string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(name))
	switch ext {
	case ".pdf":
		return FormatPDF, nil
	case ".docx":
		return FormatDOCX, nil
	case ".txt":
		return FormatTXT, nil
	default:
		return "", &UnsupportedFormatError{Filename: name, Ext: ext}
	}
}

// DecodeDocument returns the plain text of an uploaded job ad. The type is
// chosen by extension and the content is sniffed to match it before decoding.
func DecodeDocument(name string, data []byte) (string, error) {
	format, err := FormatOf(name)
	if err != nil {
		return "", err
	}
	if len(data) > MaxDocumentBytes {
		return "", &DecodeError{Filename: name, Format: format, Cause: fmt.Errorf("file exceeds %d bytes", MaxDocumentBytes)}
	}

	if err := checkContent(format, data); err != nil {
		return "", &DecodeError{Filename: name, Format: format, Cause: err}
	}

	var text string
	switch format {
	case FormatPDF:
		text, _, err = docconv.ConvertPDF(bytes.NewReader(data))
	case FormatDOCX:
		text, _, err = docconv.ConvertDocx(bytes.NewReader(data))
	case FormatTXT:
		text = string(data)
	}
	if err != nil {
		return "", &DecodeError{Filename: name, Format: format, Cause: err}
	}
	return CleanText(text), nil
}

// checkContent verifies the sniffed MIME type agrees with the extension.
func checkContent(format Format, data []byte) error {
	switch format {
	case FormatTXT:
		if !utf8.Valid(data) {
			return errors.New("text is not valid UTF-8")
		}
		return nil
	case FormatPDF:
		if mtype := mimetype.Detect(data); !mtype.Is("application/pdf") {
			return fmt.Errorf("content is %s, not a PDF", mtype.String())
		}
		return nil
	case FormatDOCX:
		mtype := mimetype.Detect(data)
		for m := mtype; m != nil; m = m.Parent() {
			if m.Is("application/vnd.openxmlformats-officedocument.wordprocessingml.document") || m.Is("application/zip") {
				return nil
			}
		}
		return fmt.Errorf("content is %s, not a DOCX document", mtype.String())
	}
	return nil
}

// DecodeUpload decodes an uploaded document into a Source.
func DecodeUpload(name string, data []byte) (*Source, error) {
	text, err := DecodeDocument(name, data)
	if err != nil {
		return nil, err
	}
	format, _ := FormatOf(name)
	src := NewSource(SourceUpload, filepath.Base(name), text)
	src.Format = format
	return src, nil
}

// ReadFile decodes a job ad from the local file system.
func ReadFile(path string) (*Source, error) {
	if _, err := FormatOf(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file not found: %w", err)
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return DecodeUpload(path, data)
}
