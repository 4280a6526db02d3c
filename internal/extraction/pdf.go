package extraction

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/jonathan/resume-matcher/internal/enrichment"
)

// PDFExtractor extracts page text and embedded hyperlinks from PDF documents
type PDFExtractor struct{}

// NewPDFExtractor creates a PDF extractor
func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{}
}

// pdfContent is what the decoder yields for one document
type pdfContent struct {
	text  string
	pages int
	links []enrichment.Link
}

// Extract implements Extractor.
// Contact enrichment runs before link reconciliation so that a URL already
// surfaced in the contact block is not listed again.
func (e *PDFExtractor) Extract(ctx context.Context, data []byte) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	preflight := preflightPDF(data)

	content, err := decodePDF(ctx, data)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) && preflight.encrypted {
			pe.Message = "Failed to parse PDF (document is encrypted)"
		}
		return nil, err
	}

	text := enrichment.EnrichContactInfo(content.text)
	text = enrichment.ReconcileLinks(text, content.links, enrichment.EmbeddedLinksHeader)

	links := content.links
	if links == nil {
		links = []enrichment.Link{}
	}
	metadata := map[string]any{
		MetaFormat:    "pdf",
		MetaPages:     content.pages,
		MetaLinks:     links,
		MetaEncrypted: preflight.encrypted,
	}
	warnings := preflight.warnings
	if preflight.pages > 0 && preflight.pages != content.pages {
		warnings = append(warnings, fmt.Sprintf("preflight counted %d pages, decoder read %d", preflight.pages, content.pages))
	}
	if len(warnings) > 0 {
		metadata[MetaWarnings] = warnings
	}

	return &Result{Text: text, Metadata: metadata}, nil
}

// decodePDF owns the decoder for the duration of one call. The deferred recover
// turns decoder panics (common on malformed streams) into a ParseError, so no
// exit path leaks the reader or a half-built result.
func decodePDF(ctx context.Context, data []byte) (content *pdfContent, err error) {
	defer func() {
		if r := recover(); r != nil {
			content = nil
			err = parseFailure(FormatPDF, fmt.Errorf("decoder panic: %v", r))
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, parseFailure(FormatPDF, err)
	}

	numPages := reader.NumPage()
	pages := make([]string, 0, numPages)
	var links []enrichment.Link

	for i := 1; i <= numPages; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		glyphs := page.Content().Text
		pages = append(pages, strings.TrimSpace(pageText(glyphs)))
		links = append(links, pageLinks(page, glyphs)...)
	}

	return &pdfContent{
		text:  strings.Join(pages, "\n\n"),
		pages: numPages,
		links: links,
	}, nil
}

// pdfPreflight is the structural view pdfcpu gives of the document.
// It never aborts extraction; failures are reported as warnings.
type pdfPreflight struct {
	pages     int
	encrypted bool
	warnings  []string
}

var disablePDFConfigDir sync.Once

func preflightPDF(data []byte) (pf pdfPreflight) {
	disablePDFConfigDir.Do(api.DisableConfigDir)

	defer func() {
		if r := recover(); r != nil {
			pf.warnings = append(pf.warnings, fmt.Sprintf("preflight: %v", r))
		}
	}()

	pdfCtx, err := api.ReadContext(bytes.NewReader(data), model.NewDefaultConfiguration())
	if err != nil {
		pf.warnings = append(pf.warnings, "preflight: "+err.Error())
		return pf
	}

	pf.pages = pdfCtx.PageCount
	pf.encrypted = pdfCtx.Encrypt != nil
	return pf
}
