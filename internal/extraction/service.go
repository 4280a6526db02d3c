package extraction

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
)

// expectedMIME lists the canonical MIME types per format, used only to flag
// disagreements between the declared type and the file extension
var expectedMIME = map[Format][]string{
	FormatPDF:   {"application/pdf"},
	FormatDOCX:  {"application/vnd.openxmlformats-officedocument.wordprocessingml.document", "application/zip"},
	FormatText:  {"text/plain"},
	FormatLaTeX: {"application/x-tex", "text/x-tex", "text/plain"},
}

// Service is the single entry point callers use to turn an upload into text.
// It dispatches on the file extension and holds no per-document state, so one
// Service may serve any number of concurrent calls.
type Service struct {
	logger     *zap.Logger
	extractors map[Format]Extractor
}

// Option configures a Service
type Option func(*Service)

// WithLogger sets the logger used for dispatch and failure lines
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithExtractor overrides the extractor registered for a format
func WithExtractor(format Format, extractor Extractor) Option {
	return func(s *Service) {
		s.extractors[format] = extractor
	}
}

// NewService creates a Service with the built-in extractors registered
func NewService(opts ...Option) *Service {
	s := &Service{
		logger: zap.NewNop(),
		extractors: map[Format]Extractor{
			FormatPDF:   NewPDFExtractor(),
			FormatDOCX:  NewDOCXExtractor(),
			FormatText:  NewPlainTextExtractor(),
			FormatLaTeX: NewLaTeXExtractor(),
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ExtractText converts data into normalized text.
// fileName is authoritative for format selection; mimeType is advisory and only logged.
// Errors are *UnsupportedFormatError, *LegacyFormatError, *ParseError or a context error.
func (s *Service) ExtractText(ctx context.Context, data []byte, mimeType, fileName string) (*Result, error) {
	format, err := DetectFormat(fileName)
	if err != nil {
		s.logger.Warn("rejected upload",
			zap.String("file_name", fileName),
			zap.String("mime_type", mimeType),
			zap.Error(err),
		)
		return nil, err
	}

	logger := s.logger.With(
		zap.String("file_name", fileName),
		zap.String("format", string(format)),
	)
	if mimeType != "" && !mimeMatches(format, mimeType) {
		logger.Debug("declared MIME type disagrees with extension", zap.String("mime_type", mimeType))
	}

	extractor, ok := s.extractors[format]
	if !ok {
		return nil, &UnsupportedFormatError{Extension: string(format)}
	}

	logger.Debug("extracting document", zap.Int("bytes", len(data)))
	start := time.Now()

	result, err := extractor.Extract(ctx, data)
	if err != nil {
		logger.Warn("extraction failed", zap.Error(err), zap.Duration("elapsed", time.Since(start)))
		return nil, err
	}
	if result.Metadata == nil {
		result.Metadata = map[string]any{}
	}

	logger.Debug("extracted document",
		zap.Int("chars", len([]rune(result.Text))),
		zap.Duration("elapsed", time.Since(start)),
	)
	return result, nil
}

func mimeMatches(format Format, mimeType string) bool {
	mimeType, _, _ = strings.Cut(mimeType, ";")
	mimeType = strings.ToLower(strings.TrimSpace(mimeType))
	for _, m := range expectedMIME[format] {
		if m == mimeType {
			return true
		}
	}
	return false
}
