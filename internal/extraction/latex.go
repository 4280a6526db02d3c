package extraction

import (
	"context"
	"regexp"
	"strings"

	"github.com/jonathan/resume-matcher/internal/enrichment"
)

// latexRule is one substitution in the LaTeX rewrite cascade
type latexRule struct {
	name        string
	pattern     *regexp.Regexp
	replacement string
}

func rule(name, pattern, replacement string) latexRule {
	return latexRule{name: name, pattern: regexp.MustCompile(pattern), replacement: replacement}
}

// latexRules are applied strictly in order. Later rules assume the structural
// noise removed by earlier ones is gone (the catch-all command strippers would
// otherwise eat section titles and link labels).
//
// Arguments are matched non-greedily up to the first closing brace, so nested
// groups such as \textbf{a \small{b} c} are only partially unwrapped.
var latexRules = []latexRule{
	// comments
	rule("comment", `(?m)%.*$`, ""),

	// scaffolding
	rule("documentclass", `\\documentclass(\[.*?\])?\{.*?\}`, ""),
	rule("usepackage", `\\usepackage(\[.*?\])?\{.*?\}`, ""),
	rule("begin-document", `\\begin\{document\}`, ""),
	rule("end-document", `\\end\{document\}`, ""),
	rule("begin-list", `\\begin\{(itemize|enumerate|description)\}`, ""),
	rule("end-list", `\\end\{(itemize|enumerate|description)\}`, ""),
	rule("begin-center", `\\begin\{center\}`, ""),
	rule("end-center", `\\end\{center\}`, ""),
	rule("maketitle", `\\maketitle`, ""),
	rule("newpage", `\\newpage`, ""),
	rule("clearpage", `\\clearpage`, ""),
	rule("vspace", `\\vspace\*?\{.*?\}`, ""),
	rule("hspace", `\\hspace\*?\{.*?\}`, ""),
	rule("setlength", `\\setlength\{.*?\}\{.*?\}`, ""),
	rule("pagestyle", `\\pagestyle\{.*?\}`, ""),

	// sectioning
	rule("section", `\\section\*?\{(.*?)\}`, "\n\n${1}\n"),
	rule("subsection", `\\subsection\*?\{(.*?)\}`, "\n${1}\n"),

	// styling
	rule("textbf", `\\textbf\{(.*?)\}`, "${1}"),
	rule("textit", `\\textit\{(.*?)\}`, "${1}"),
	rule("emph", `\\emph\{(.*?)\}`, "${1}"),
	rule("underline", `\\underline\{(.*?)\}`, "${1}"),

	// links
	rule("href", `\\href\{(.*?)\}\{(.*?)\}`, "${2} (${1})"),
	rule("url", `\\url\{(.*?)\}`, "${1}"),

	// list items
	rule("item", `\\item\s*`, "• "),

	// leftovers
	rule("linebreak", `\\\\(\[.*?\])?`, "\n"),
	rule("command-with-arg", `\\[a-zA-Z]+\{.*?\}`, ""),
	rule("bare-command", `\\[a-zA-Z]+`, ""),
	rule("escaped-special", `\\([&$#_])`, "${1}"),

	// cleanup
	rule("braces", `[{}]`, ""),
	rule("blank-lines", `\n{3,}`, "\n\n"),
}

// LaTeXExtractor recovers prose from LaTeX source by pattern substitution.
// It is not a LaTeX parser; it targets the single-level markup typical of resumes.
type LaTeXExtractor struct{}

// NewLaTeXExtractor creates a LaTeX extractor
func NewLaTeXExtractor() *LaTeXExtractor {
	return &LaTeXExtractor{}
}

// Extract implements Extractor
func (e *LaTeXExtractor) Extract(ctx context.Context, data []byte) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	text := StripLaTeX(decodeUTF8(data))

	return &Result{
		Text: enrichment.EnrichContactInfo(text),
		Metadata: map[string]any{
			MetaFormat: "latex",
		},
	}, nil
}

// StripLaTeX runs the rewrite cascade and trims the result
func StripLaTeX(source string) string {
	text := source
	for _, r := range latexRules {
		text = r.pattern.ReplaceAllString(text, r.replacement)
	}
	return strings.TrimSpace(text)
}
