package extraction

import (
	"errors"
	"fmt"
	"strings"
)

// UnsupportedFormatError is returned for file extensions outside the supported set
type UnsupportedFormatError struct {
	Extension string
}

func (e *UnsupportedFormatError) Error() string {
	ext := e.Extension
	if ext == "" {
		ext = "(none)"
	}
	names := make([]string, 0, len(supportedFormats))
	for _, f := range supportedFormats {
		names = append(names, strings.ToUpper(string(f)))
	}
	return fmt.Sprintf("Unsupported file type: %s. Supported: %s", ext, strings.Join(names, ", "))
}

// LegacyFormatError is returned for the legacy binary Word format.
// The format is recognized but intentionally not parsed.
type LegacyFormatError struct {
	Extension string
}

func (e *LegacyFormatError) Error() string {
	return fmt.Sprintf("Legacy .%s format not supported. Please convert to .docx", e.Extension)
}

// ParseError is returned when a format decoder rejects the document bytes.
// Cause carries the decoder's own diagnostic.
type ParseError struct {
	Format  Format
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = fmt.Sprintf("Failed to parse %s", strings.ToUpper(string(e.Format)))
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// IsUnsupportedFormat reports whether err is or wraps an UnsupportedFormatError
func IsUnsupportedFormat(err error) bool {
	var target *UnsupportedFormatError
	return errors.As(err, &target)
}

// IsLegacyFormat reports whether err is or wraps a LegacyFormatError
func IsLegacyFormat(err error) bool {
	var target *LegacyFormatError
	return errors.As(err, &target)
}

// IsParseFailure reports whether err is or wraps a ParseError
func IsParseFailure(err error) bool {
	var target *ParseError
	return errors.As(err, &target)
}

func parseFailure(format Format, cause error) *ParseError {
	return &ParseError{Format: format, Cause: cause}
}
