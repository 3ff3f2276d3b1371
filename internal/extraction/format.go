// Package extraction converts uploaded candidate documents into text and
// isolates the declared skills section.
package extraction

import (
	"errors"
	"path/filepath"
	"strings"
)

// Format identifies the declared format of an uploaded document.
type Format int

const (
	// FormatUnknown is any format the extractor cannot handle.
	FormatUnknown Format = iota
	// FormatImage is a raster image (.jpg, .jpeg, .png).
	FormatImage
	// FormatPDF is a PDF document.
	FormatPDF
	// FormatWord is a word-processor document (.docx).
	FormatWord
)

// ErrUnsupportedFormat is returned when a document's format is not one the
// extractor can read. It is distinct from a successful extraction that
// yields no text.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// RawDocument is the input to one extraction call: the uploaded bytes plus
// their declared format. It is not retained after extraction.
type RawDocument struct {
	Data   []byte
	Format Format
}

// FormatForFilename maps a filename's extension to its document format.
// The second return value is false for extensions the extractor cannot read.
func FormatForFilename(filename string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg", ".png":
		return FormatImage, true
	case ".pdf":
		return FormatPDF, true
	case ".docx":
		return FormatWord, true
	default:
		return FormatUnknown, false
	}
}

// String returns a human-readable name for the format.
func (f Format) String() string {
	switch f {
	case FormatImage:
		return "image"
	case FormatPDF:
		return "pdf"
	case FormatWord:
		return "word"
	default:
		return "unknown"
	}
}
