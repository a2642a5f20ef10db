package ingestion

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatOf(t *testing.T) {
	tests := []struct {
		name    string
		want    Format
		wantErr bool
	}{
		{"ad.pdf", FormatPDF, false},
		{"AD.PDF", FormatPDF, false},
		{"ad.docx", FormatDOCX, false},
		{"notes.TXT", FormatTXT, false},
		{"ad.doc", "", true},
		{"ad.rtf", "", true},
		{"README", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FormatOf(tt.name)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnsupportedFormat)
				var ufe *UnsupportedFormatError
				require.ErrorAs(t, err, &ufe)
				assert.Equal(t, tt.name, ufe.Filename)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeDocument_Text(t *testing.T) {
	text, err := DecodeDocument("ad.txt", []byte("Job Title: Data Scientist\r\nLocation: Berlin\r\n"))
	require.NoError(t, err)
	assert.Equal(t, "Job Title: Data Scientist\nLocation: Berlin", text)
}

func TestDecodeDocument_TextInvalidUTF8(t *testing.T) {
	_, err := DecodeDocument("ad.txt", []byte{0xff, 0xfe, 0x41})
	require.ErrorIs(t, err, ErrDecode)

	var de *DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, FormatTXT, de.Format)
	assert.Equal(t, "ad.txt", de.Filename)
}

func TestDecodeDocument_Unsupported(t *testing.T) {
	_, err := DecodeDocument("ad.odt", []byte("anything"))
	require.ErrorIs(t, err, ErrUnsupportedFormat)
	assert.False(t, errors.Is(err, ErrDecode))
}

func TestDecodeDocument_MislabelledContent(t *testing.T) {
	tests := []struct {
		name   string
		format Format
	}{
		{"ad.pdf", FormatPDF},
		{"ad.docx", FormatDOCX},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeDocument(tt.name, []byte("just some plain text, not a binary document"))
			require.ErrorIs(t, err, ErrDecode)

			var de *DecodeError
			require.ErrorAs(t, err, &de)
			assert.Equal(t, tt.format, de.Format)
			assert.Contains(t, err.Error(), "text/plain")
		})
	}
}

func TestDecodeDocument_TooLarge(t *testing.T) {
	_, err := DecodeDocument("ad.txt", make([]byte, MaxDocumentBytes+1))
	require.ErrorIs(t, err, ErrDecode)
}

func TestDecodeUpload(t *testing.T) {
	src, err := DecodeUpload("uploads/ad.txt", []byte("Job Title: Data Scientist"))
	require.NoError(t, err)

	assert.Equal(t, SourceUpload, src.Kind)
	assert.Equal(t, "ad.txt", src.Name)
	assert.Equal(t, FormatTXT, src.Format)
	assert.Equal(t, "Job Title: Data Scientist", src.Text)
	assert.Equal(t, computeHash(src.Text), src.Hash)
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ad.txt")
	require.NoError(t, os.WriteFile(path, []byte("Location: Berlin"), 0o644))

	src, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Location: Berlin", src.Text)

	_, err = ReadFile(filepath.Join(dir, "missing.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file not found")

	_, err = ReadFile(filepath.Join(dir, "ad.odt"))
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}
