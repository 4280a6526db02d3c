// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-matcher/internal/enrichment"
	"github.com/jonathan/resume-matcher/internal/extraction"
	"github.com/jonathan/resume-matcher/internal/ingestion"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// truncate shortens s to at most n runes, marking the cut with "..."
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stderr; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintDocument outputs a human-readable summary of one extracted document.
func (p *Printer) PrintDocument(doc *ingestion.Document) {
	if doc == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("File:     %s\n", doc.FileName))
	sb.WriteString(fmt.Sprintf("ID:       %s\n", doc.ID))
	if format, ok := doc.Metadata[extraction.MetaFormat].(string); ok {
		sb.WriteString(fmt.Sprintf("Format:   %s", format))
		if pages, ok := doc.Metadata[extraction.MetaPages].(int); ok {
			sb.WriteString(fmt.Sprintf(" (%d pages)", pages))
		}
		sb.WriteString("\n")
	}
	sb.WriteString(fmt.Sprintf("Size:     %d bytes -> %d chars\n", doc.Size, len([]rune(doc.Text))))
	sb.WriteString(fmt.Sprintf("Hash:     %s\n", truncate(doc.Hash, 19)))
	if strings.Contains(doc.Text, enrichment.ContactMarker) {
		sb.WriteString("Contact:  block present\n")
	}

	preview := nonEmptyLines(doc.Text)
	if len(preview) > 0 {
		sb.WriteString("\nPreview:\n")
		count := min(len(preview), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  %s\n", preview[i]))
		}
		if len(preview) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more lines\n", len(preview)-maxItemsToShow))
		}
	}

	p.printBox("EXTRACTED DOCUMENT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintLinks outputs the hyperlinks recovered from the document structure.
func (p *Printer) PrintLinks(doc *ingestion.Document) {
	if doc == nil {
		return
	}
	links, _ := doc.Metadata[extraction.MetaLinks].([]enrichment.Link)
	if len(links) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d links:\n\n", len(links)))

	count := min(len(links), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("• %s\n", links[i].URL))
		if links[i].DisplayText != "" && links[i].DisplayText != links[i].URL {
			sb.WriteString(fmt.Sprintf("  [%s]\n", links[i].DisplayText))
		}
	}
	if len(links) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more links", len(links)-maxItemsToShow))
	}

	p.printBox("EMBEDDED LINKS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintWarnings outputs decoder warnings, if any.
func (p *Printer) PrintWarnings(doc *ingestion.Document) {
	if doc == nil {
		return
	}
	warnings, _ := doc.Metadata[extraction.MetaWarnings].([]string)
	if len(warnings) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d warnings:\n\n", len(warnings)))
	for i, w := range warnings {
		sb.WriteString(fmt.Sprintf("⚠ %s", w))
		if i < len(warnings)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("DECODER WARNINGS", sb.String())
}

// PrintBatchSummary outputs the outcome of a multi-file run. failures maps a file
// name to its error message.
//
//nolint:errcheck // writing to stderr; errors are not recoverable
func (p *Printer) PrintBatchSummary(total int, failures map[string]string, order []string) {
	if len(failures) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, fmt.Sprintf("✅ ALL %d FILES EXTRACTED", total))
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Extracted %d of %d files:\n\n", total-len(failures), total))

	written := 0
	for _, name := range order {
		msg, ok := failures[name]
		if !ok {
			continue
		}
		sb.WriteString(fmt.Sprintf("⚠ %s\n", name))
		sb.WriteString(fmt.Sprintf("  %s", msg))
		written++
		if written < len(failures) {
			sb.WriteString("\n\n")
		}
	}

	p.printBox("EXTRACTION FAILURES", sb.String())
}

func nonEmptyLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
