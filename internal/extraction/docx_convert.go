package extraction

import (
	"encoding/xml"
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/jonathan/resume-matcher/internal/enrichment"
)

const (
	wordMLNamespace       = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	wordMLStrictNamespace = "http://purl.oclc.org/ooxml/wordprocessingml/main"
)

// fieldTokenPattern splits a field instruction into quoted and bare tokens
var fieldTokenPattern = regexp.MustCompile(`"([^"]*)"|(\S+)`)

func isWordML(name xml.Name) bool {
	return name.Space == wordMLNamespace || name.Space == wordMLStrictNamespace
}

// attr returns the value of the first attribute with the given local name
func attr(el xml.StartElement, local string) string {
	for _, a := range el.Attr {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}

// docxText is the plain-text conversion of a document
type docxText struct {
	text     string
	warnings []string
}

// rawTextConverter renders paragraphs as text separated by blank lines
type rawTextConverter struct {
	pkg        *docxPackage
	sb         strings.Builder
	warnings   *enrichment.OrderedSet[string]
	inText     bool
	inTabStops bool
}

func convertDOCXToText(pkg *docxPackage) (*docxText, error) {
	c := &rawTextConverter{pkg: pkg, warnings: enrichment.NewOrderedSet[string]()}
	if err := walkDocument(pkg.document, c.visit); err != nil {
		return nil, err
	}
	return &docxText{text: c.sb.String(), warnings: c.warnings.Values()}, nil
}

func (c *rawTextConverter) visit(tok xml.Token) {
	switch t := tok.(type) {
	case xml.StartElement:
		if !isWordML(t.Name) {
			return
		}
		switch t.Name.Local {
		case "t":
			c.inText = true
		case "tabs":
			c.inTabStops = true
		case "tab":
			if !c.inTabStops {
				c.sb.WriteString("\t")
			}
		case "br", "cr":
			c.sb.WriteString("\n")
		case "noBreakHyphen":
			c.sb.WriteString("-")
		case "pStyle":
			if id := attr(t, "val"); c.pkg.styles != nil && !c.pkg.styles[id] {
				c.warnings.Add(fmt.Sprintf("Unrecognised paragraph style: '%s'", id))
			}
		case "hyperlink":
			if id := attr(t, "id"); id != "" {
				if _, ok := c.pkg.hyperlink(id); !ok {
					c.warnings.Add(fmt.Sprintf("Hyperlink relationship '%s' not found", id))
				}
			}
		case "object", "altChunk":
			c.warnings.Add(fmt.Sprintf("Unsupported element w:%s was ignored", t.Name.Local))
		}
	case xml.EndElement:
		if !isWordML(t.Name) {
			return
		}
		switch t.Name.Local {
		case "t":
			c.inText = false
		case "tabs":
			c.inTabStops = false
		case "p":
			c.sb.WriteString("\n\n")
		}
	case xml.CharData:
		if c.inText {
			c.sb.Write(t)
		}
	}
}

// complexField tracks a fldChar begin/separate/end sequence
type complexField struct {
	instr  strings.Builder
	opened bool
}

// htmlConverter renders the document as minimal HTML, keeping hyperlinks as anchors
type htmlConverter struct {
	pkg          *docxPackage
	sb           strings.Builder
	inText       bool
	inInstr      bool
	inTabStops   bool
	hyperlinks   []bool
	simpleFields []bool
	fields       []*complexField
}

func convertDOCXToHTML(pkg *docxPackage) (string, error) {
	c := &htmlConverter{pkg: pkg}
	if err := walkDocument(pkg.document, c.visit); err != nil {
		return "", err
	}
	return c.sb.String(), nil
}

func (c *htmlConverter) visit(tok xml.Token) {
	switch t := tok.(type) {
	case xml.StartElement:
		if isWordML(t.Name) {
			c.start(t)
		}
	case xml.EndElement:
		if isWordML(t.Name) {
			c.end(t)
		}
	case xml.CharData:
		switch {
		case c.inText:
			c.sb.WriteString(html.EscapeString(string(t)))
		case c.inInstr && len(c.fields) > 0:
			c.fields[len(c.fields)-1].instr.Write(t)
		}
	}
}

func (c *htmlConverter) start(el xml.StartElement) {
	switch el.Name.Local {
	case "p":
		c.sb.WriteString("<p>")
	case "t":
		c.inText = true
	case "instrText":
		c.inInstr = true
	case "tabs":
		c.inTabStops = true
	case "tab":
		if !c.inTabStops {
			c.sb.WriteString("\t")
		}
	case "br", "cr":
		c.sb.WriteString("<br />")
	case "hyperlink":
		c.hyperlinks = append(c.hyperlinks, c.openAnchor(c.hyperlinkTarget(el)))
	case "fldSimple":
		c.simpleFields = append(c.simpleFields, c.openAnchor(hyperlinkFromInstruction(attr(el, "instr"))))
	case "fldChar":
		c.fieldChar(attr(el, "fldCharType"))
	}
}

func (c *htmlConverter) end(el xml.EndElement) {
	switch el.Name.Local {
	case "p":
		c.sb.WriteString("</p>")
	case "t":
		c.inText = false
	case "instrText":
		c.inInstr = false
	case "tabs":
		c.inTabStops = false
	case "hyperlink":
		c.closeAnchor(&c.hyperlinks)
	case "fldSimple":
		c.closeAnchor(&c.simpleFields)
	}
}

func (c *htmlConverter) fieldChar(kind string) {
	switch kind {
	case "begin":
		c.fields = append(c.fields, &complexField{})
	case "separate":
		if len(c.fields) == 0 {
			return
		}
		f := c.fields[len(c.fields)-1]
		f.opened = c.openAnchor(hyperlinkFromInstruction(f.instr.String()))
	case "end":
		if len(c.fields) == 0 {
			return
		}
		f := c.fields[len(c.fields)-1]
		c.fields = c.fields[:len(c.fields)-1]
		if f.opened {
			c.sb.WriteString("</a>")
		}
	}
}

// openAnchor writes an <a> start tag when href is set and reports whether it did
func (c *htmlConverter) openAnchor(href string) bool {
	if href == "" {
		return false
	}
	c.sb.WriteString(`<a href="`)
	c.sb.WriteString(html.EscapeString(href))
	c.sb.WriteString(`">`)
	return true
}

func (c *htmlConverter) closeAnchor(stack *[]bool) {
	s := *stack
	if len(s) == 0 {
		return
	}
	opened := s[len(s)-1]
	*stack = s[:len(s)-1]
	if opened {
		c.sb.WriteString("</a>")
	}
}

// hyperlinkTarget resolves a w:hyperlink to an href: the target of a hyperlink
// relationship, or an internal bookmark anchor
func (c *htmlConverter) hyperlinkTarget(el xml.StartElement) string {
	if id := attr(el, "id"); id != "" {
		if rel, ok := c.pkg.hyperlink(id); ok {
			target := rel.Target
			if anchor := attr(el, "anchor"); anchor != "" {
				target += "#" + anchor
			}
			return target
		}
	}
	if anchor := attr(el, "anchor"); anchor != "" {
		return "#" + anchor
	}
	return ""
}

// hyperlinkFromInstruction parses a HYPERLINK field instruction such as
// HYPERLINK "https://example.com" \o "tooltip" and returns its target
func hyperlinkFromInstruction(instr string) string {
	tokens := fieldTokenPattern.FindAllStringSubmatch(instr, -1)
	if len(tokens) == 0 || !strings.EqualFold(tokens[0][0], "HYPERLINK") {
		return ""
	}

	var target, anchor string
	for i := 1; i < len(tokens); i++ {
		tok := tokens[i][0]
		switch {
		case tok == `\l`:
			if i+1 < len(tokens) {
				anchor = tokenValue(tokens[i+1])
				i++
			}
		case tok == `\o` || tok == `\t`:
			i++
		case strings.HasPrefix(tok, `\`):
		case target == "":
			target = tokenValue(tokens[i])
		}
	}

	switch {
	case target != "" && anchor != "":
		return target + "#" + anchor
	case anchor != "":
		return "#" + anchor
	default:
		return target
	}
}

func tokenValue(m []string) string {
	if strings.HasPrefix(m[0], `"`) {
		return m[1]
	}
	return m[2]
}
