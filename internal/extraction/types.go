// Package extraction converts uploaded resume documents (PDF, DOCX, plain text, LaTeX)
// into a single normalized text block plus advisory metadata.
package extraction

import (
	"context"
	"path"
	"strings"
)

// Format identifies a supported input document format by its file extension
type Format string

// Supported formats
const (
	FormatPDF   Format = "pdf"
	FormatDOCX  Format = "docx"
	FormatText  Format = "txt"
	FormatLaTeX Format = "tex"
)

// legacyWordExtension is recognized but rejected with a conversion hint
const legacyWordExtension = "doc"

var supportedFormats = []Format{FormatPDF, FormatDOCX, FormatText, FormatLaTeX}

// Metadata keys shared by the extractors
const (
	MetaFormat     = "format"
	MetaPages      = "pages"
	MetaLinks      = "links"
	MetaLinksFound = "links_found"
	MetaWarnings   = "warnings"
	MetaEncrypted  = "encrypted"
)

// Result is the output of a single extraction.
// Text is the normalized, enriched document body and may be empty.
// Metadata is format specific and advisory only.
type Result struct {
	Text     string         `json:"text"`
	Metadata map[string]any `json:"metadata"`
}

// Extractor converts the raw bytes of one document format into a Result
type Extractor interface {
	Extract(ctx context.Context, data []byte) (*Result, error)
}

// SupportedFormats returns the supported formats in dispatch order
func SupportedFormats() []Format {
	out := make([]Format, len(supportedFormats))
	copy(out, supportedFormats)
	return out
}

// Extension returns the lower-cased text after the last "." of fileName,
// or "" when the base name has no dot
func Extension(fileName string) string {
	base := path.Base(strings.ReplaceAll(fileName, "\\", "/"))
	idx := strings.LastIndex(base, ".")
	if idx < 0 {
		return ""
	}
	return strings.ToLower(base[idx+1:])
}

// DetectFormat maps a file name to a supported Format.
// The legacy ".doc" extension yields a LegacyFormatError; any other unknown or
// missing extension yields an UnsupportedFormatError.
func DetectFormat(fileName string) (Format, error) {
	ext := Extension(fileName)
	if ext == legacyWordExtension {
		return "", &LegacyFormatError{Extension: ext}
	}
	for _, f := range supportedFormats {
		if string(f) == ext {
			return f, nil
		}
	}
	return "", &UnsupportedFormatError{Extension: ext}
}
