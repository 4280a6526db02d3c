package extraction

import (
	"context"
	"strings"

	"github.com/jonathan/resume-matcher/internal/enrichment"
)

// PlainTextExtractor decodes UTF-8 text and applies contact enrichment
type PlainTextExtractor struct{}

// NewPlainTextExtractor creates a plain text extractor
func NewPlainTextExtractor() *PlainTextExtractor {
	return &PlainTextExtractor{}
}

// Extract implements Extractor
func (e *PlainTextExtractor) Extract(ctx context.Context, data []byte) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return &Result{
		Text: enrichment.EnrichContactInfo(decodeUTF8(data)),
		Metadata: map[string]any{
			MetaFormat: "plain-text",
		},
	}, nil
}

// decodeUTF8 decodes data as UTF-8, replacing invalid sequences with U+FFFD
// and dropping a leading byte order mark
func decodeUTF8(data []byte) string {
	text := strings.ToValidUTF8(string(data), "\uFFFD")
	return strings.TrimPrefix(text, "\uFEFF")
}
