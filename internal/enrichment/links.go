package enrichment

import "strings"

// Section headers used by the format extractors
const (
	EmbeddedLinksHeader = "--- Embedded Links ---"
	LinksFoundHeader    = "Links found:"
)

// Link is a hyperlink discovered in a document's structural model.
// It may or may not be visible as literal text in the extracted body.
type Link struct {
	URL         string `json:"url"`
	DisplayText string `json:"display_text,omitempty"`
}

// String renders the link as a single section line
func (l Link) String() string {
	if l.DisplayText != "" && l.DisplayText != l.URL {
		return l.DisplayText + ": " + l.URL
	}
	return l.URL
}

// ReconcileLinks appends the links that are not already visible in text under header.
// Links are de-duplicated by URL keeping the first occurrence. Text is returned
// unchanged when nothing survives the filter.
func ReconcileLinks(text string, links []Link, header string) string {
	seen := NewOrderedSet[string]()
	lines := make([]string, 0, len(links))

	for _, link := range links {
		if link.URL == "" || seen.Contains(link.URL) || strings.Contains(text, link.URL) {
			continue
		}
		seen.Add(link.URL)
		lines = append(lines, link.String())
	}

	if len(lines) == 0 {
		return text
	}
	return text + "\n\n" + header + "\n" + strings.Join(lines, "\n")
}
