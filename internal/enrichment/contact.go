package enrichment

import (
	"regexp"
	"strings"
)

// ContactMarker is the literal that identifies an already-enriched document.
const ContactMarker = "Contact Information"

const (
	contactHeader = "--- " + ContactMarker + " ---"
	contactFooter = "---"
)

// Phone patterns overlap on purpose and are not normalized against each other:
// "(555) 123-4567" and "5551234567" in the same document yield two entries.
var phonePatterns = []*regexp.Regexp{
	// grouped, optional country code: +1 (555) 123-4567, 555-123-4567, 555.123.4567
	regexp.MustCompile(`(\+?\d{1,3}[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`),
	// ten contiguous digits, optional country code
	regexp.MustCompile(`(\+?\d{1,3}[-.\s]?)?\d{10}`),
	// international 5+5 grouping: +91 98765 43210
	regexp.MustCompile(`(\+\d{1,3}\s?)?\d{5}[-.\s]?\d{5}`),
}

var (
	emailPattern    = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	linkedinPattern = regexp.MustCompile(`(?:https?://)?(?:www\.)?linkedin\.com/in/[a-zA-Z0-9_-]+/?`)
	githubPattern   = regexp.MustCompile(`(?:https?://)?(?:www\.)?github\.com/[a-zA-Z0-9_-]+/?`)

	horizontalSpace = regexp.MustCompile(`[ \t]+`)
	excessNewlines  = regexp.MustCompile(`\n{3,}`)
)

// ContactFindings holds the identifiers discovered in a single text block
type ContactFindings struct {
	Phones   *OrderedSet[string]
	Emails   *OrderedSet[string]
	LinkedIn *OrderedSet[string]
	GitHub   *OrderedSet[string]
}

// Empty reports whether no category found anything
func (f ContactFindings) Empty() bool {
	return f.Phones.Len() == 0 && f.Emails.Len() == 0 && f.LinkedIn.Len() == 0 && f.GitHub.Len() == 0
}

// lines renders one "Category: a, b" line per non-empty category in fixed order
func (f ContactFindings) lines() []string {
	categories := []struct {
		label string
		set   *OrderedSet[string]
	}{
		{"Phone", f.Phones},
		{"Email", f.Emails},
		{"LinkedIn", f.LinkedIn},
		{"GitHub", f.GitHub},
	}

	lines := make([]string, 0, len(categories))
	for _, c := range categories {
		if c.set.Len() == 0 {
			continue
		}
		lines = append(lines, c.label+": "+strings.Join(c.set.Values(), ", "))
	}
	return lines
}

// FindContacts scans text for phone numbers, emails, LinkedIn and GitHub profile URLs
func FindContacts(text string) ContactFindings {
	findings := ContactFindings{
		Phones:   NewOrderedSet[string](),
		Emails:   NewOrderedSet[string](),
		LinkedIn: NewOrderedSet[string](),
		GitHub:   NewOrderedSet[string](),
	}

	for _, p := range phonePatterns {
		for _, m := range p.FindAllString(text, -1) {
			if m = strings.TrimSpace(m); m != "" {
				findings.Phones.Add(m)
			}
		}
	}
	collect(findings.Emails, emailPattern, text)
	collect(findings.LinkedIn, linkedinPattern, text)
	collect(findings.GitHub, githubPattern, text)

	return findings
}

func collect(set *OrderedSet[string], re *regexp.Regexp, text string) {
	for _, m := range re.FindAllString(text, -1) {
		set.Add(m)
	}
}

// NormalizeWhitespace converts line endings to LF, collapses runs of spaces and tabs,
// reduces 3+ consecutive newlines to 2 and trims the result
func NormalizeWhitespace(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = horizontalSpace.ReplaceAllString(text, " ")
	text = excessNewlines.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// EnrichContactInfo normalizes text and prepends a "Contact Information" block
// summarizing the identifiers it contains.
// The block is only added when the text does not already carry the marker, so
// EnrichContactInfo(EnrichContactInfo(s)) == EnrichContactInfo(s).
func EnrichContactInfo(text string) string {
	text = NormalizeWhitespace(text)

	findings := FindContacts(text)
	if findings.Empty() || strings.Contains(text, ContactMarker) {
		return text
	}

	var sb strings.Builder
	sb.WriteString(contactHeader)
	sb.WriteString("\n")
	sb.WriteString(strings.Join(findings.lines(), "\n"))
	sb.WriteString("\n")
	sb.WriteString(contactFooter)
	sb.WriteString("\n\n")
	sb.WriteString(text)
	return sb.String()
}
