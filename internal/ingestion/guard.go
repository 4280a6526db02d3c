// Package ingestion turns resume files on disk into extracted document records.
// It applies the upload guards that sit in front of the extraction service
// (size, declared type, minimum extracted text) and persists the results.
package ingestion

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-matcher/internal/extraction"
)

// allowedMIMETypes are accepted regardless of extension.
// Some browsers send application/octet-stream for .tex files.
var allowedMIMETypes = []string{
	"application/pdf",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"text/plain",
	"application/x-tex",
	"text/x-tex",
	"application/octet-stream",
}

// Upload is one file as received from a caller
type Upload struct {
	FileName string
	MimeType string
	Data     []byte
}

// Limits bounds what an upload may contain
type Limits struct {
	MaxFileSize   int64
	MinTextLength int
}

// DefaultLimits returns the 10 MiB upload cap and a 10 character text minimum
func DefaultLimits() Limits {
	return Limits{
		MaxFileSize:   10 * 1024 * 1024,
		MinTextLength: 10,
	}
}

// CheckUpload rejects empty or oversized uploads and uploads whose declared MIME
// type and extension are both outside the allow-lists. A zero MaxFileSize disables
// the size check.
func CheckUpload(u Upload, limits Limits) error {
	if len(u.Data) == 0 {
		return &UploadRejectedError{FileName: u.FileName, Message: "No file uploaded. Please select a file to upload."}
	}
	if limits.MaxFileSize > 0 && int64(len(u.Data)) > limits.MaxFileSize {
		return &UploadRejectedError{
			FileName: u.FileName,
			Message:  fmt.Sprintf("File too large: %d bytes exceeds the %d byte limit", len(u.Data), limits.MaxFileSize),
		}
	}

	mime, _, _ := strings.Cut(u.MimeType, ";")
	mime = strings.ToLower(strings.TrimSpace(mime))
	if slices.Contains(allowedMIMETypes, mime) || isAllowedExtension(u.FileName) {
		return nil
	}
	return &UploadRejectedError{
		FileName: u.FileName,
		Message:  fmt.Sprintf("File type not allowed: %s. Allowed: PDF, DOCX, TXT, TEX", u.MimeType),
	}
}

// isAllowedExtension also admits the legacy .doc extension so extraction can
// answer with its conversion hint
func isAllowedExtension(fileName string) bool {
	ext := extraction.Extension(fileName)
	if ext == "doc" {
		return true
	}
	for _, f := range extraction.SupportedFormats() {
		if string(f) == ext {
			return true
		}
	}
	return false
}

// CheckText rejects extracted text whose trimmed length is below minLength characters
func CheckText(fileName, text string, minLength int) error {
	n := utf8.RuneCountInString(strings.TrimSpace(text))
	if n < minLength {
		return &InsufficientTextError{FileName: fileName, Length: n, Minimum: minLength}
	}
	return nil
}
