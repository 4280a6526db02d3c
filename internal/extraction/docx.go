package extraction

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"html"
	"io"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/resume-matcher/internal/enrichment"
)

const (
	docxDocumentPart = "word/document.xml"
	docxRelsPart     = "word/_rels/document.xml.rels"
	docxStylesPart   = "word/styles.xml"
)

// hrefPattern finds absolute http(s) link targets in the HTML view
var hrefPattern = regexp.MustCompile(`href=["'](https?://[^"']+)["']`)

// DOCXExtractor extracts text from Office Open XML word documents.
// Plain-text conversion loses hyperlink targets, so the document is also
// rendered to HTML and the href targets are recovered from there.
type DOCXExtractor struct{}

// NewDOCXExtractor creates a DOCX extractor
func NewDOCXExtractor() *DOCXExtractor {
	return &DOCXExtractor{}
}

// docxPackage holds the parts of the zip container the converters need
type docxPackage struct {
	document []byte
	rels     map[string]docxRelationship
	styles   map[string]bool
}

type docxRelationship struct {
	ID         string `xml:"Id,attr"`
	Type       string `xml:"Type,attr"`
	Target     string `xml:"Target,attr"`
	TargetMode string `xml:"TargetMode,attr"`
}

// hyperlink returns the relationship id names when it is a hyperlink relationship
func (p *docxPackage) hyperlink(id string) (docxRelationship, bool) {
	rel, ok := p.rels[id]
	if !ok || !strings.HasSuffix(rel.Type, "/hyperlink") {
		return docxRelationship{}, false
	}
	return rel, true
}

// Extract implements Extractor
func (e *DOCXExtractor) Extract(ctx context.Context, data []byte) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pkg, err := openDOCX(data)
	if err != nil {
		return nil, parseFailure(FormatDOCX, err)
	}

	raw, err := convertDOCXToText(pkg)
	if err != nil {
		return nil, parseFailure(FormatDOCX, err)
	}

	htmlView, err := convertDOCXToHTML(pkg)
	if err != nil {
		return nil, parseFailure(FormatDOCX, err)
	}

	urls := linkTargets(htmlView)
	links := make([]enrichment.Link, 0, len(urls))
	for _, u := range urls {
		links = append(links, enrichment.Link{URL: u})
	}

	text := enrichment.ReconcileLinks(raw.text, links, enrichment.LinksFoundHeader)
	text = enrichment.EnrichContactInfo(text)

	return &Result{
		Text: text,
		Metadata: map[string]any{
			MetaFormat:     "docx",
			MetaWarnings:   raw.warnings,
			MetaLinksFound: len(urls),
			MetaLinks:      anchorLabels(htmlView, urls),
		},
	}, nil
}

func openDOCX(data []byte) (*docxPackage, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}

	parts := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		parts[f.Name] = f
	}

	docFile, ok := parts[docxDocumentPart]
	if !ok {
		return nil, fmt.Errorf("missing %s", docxDocumentPart)
	}

	pkg := &docxPackage{rels: map[string]docxRelationship{}}
	if pkg.document, err = readZipPart(docFile); err != nil {
		return nil, err
	}

	if f, ok := parts[docxRelsPart]; ok {
		content, err := readZipPart(f)
		if err != nil {
			return nil, err
		}
		var rels struct {
			Items []docxRelationship `xml:"Relationship"`
		}
		if err := xml.Unmarshal(content, &rels); err != nil {
			return nil, fmt.Errorf("%s: %w", docxRelsPart, err)
		}
		for _, r := range rels.Items {
			pkg.rels[r.ID] = r
		}
	}

	if f, ok := parts[docxStylesPart]; ok {
		content, err := readZipPart(f)
		if err != nil {
			return nil, err
		}
		var styles struct {
			Items []struct {
				ID string `xml:"styleId,attr"`
			} `xml:"style"`
		}
		if err := xml.Unmarshal(content, &styles); err != nil {
			return nil, fmt.Errorf("%s: %w", docxStylesPart, err)
		}
		pkg.styles = make(map[string]bool, len(styles.Items))
		for _, s := range styles.Items {
			pkg.styles[s.ID] = true
		}
	}

	return pkg, nil
}

func readZipPart(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.Name, err)
	}
	defer func() { _ = rc.Close() }()

	content, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.Name, err)
	}
	return content, nil
}

// walkDocument streams the tokens of the main document part to visit
func walkDocument(document []byte, visit func(xml.Token)) error {
	dec := xml.NewDecoder(bytes.NewReader(document))
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%s: %w", docxDocumentPart, err)
		}
		visit(tok)
	}
}

// linkTargets returns the distinct http(s) href targets of the HTML view in document order
func linkTargets(htmlView string) []string {
	seen := enrichment.NewOrderedSet[string]()
	for _, m := range hrefPattern.FindAllStringSubmatch(htmlView, -1) {
		seen.Add(html.UnescapeString(m[1]))
	}
	return seen.Values()
}

// anchorLabels pairs each discovered target with the text of its first anchor
func anchorLabels(htmlView string, urls []string) []enrichment.Link {
	labels := make(map[string]string, len(urls))

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlView))
	if err == nil {
		doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
			href, _ := s.Attr("href")
			if _, done := labels[href]; done {
				return
			}
			labels[href] = strings.Join(strings.Fields(s.Text()), " ")
		})
	}

	links := make([]enrichment.Link, 0, len(urls))
	for _, u := range urls {
		links = append(links, enrichment.Link{URL: u, DisplayText: labels[u]})
	}
	return links
}
