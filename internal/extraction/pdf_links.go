package extraction

import (
	"math"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/jonathan/resume-matcher/internal/enrichment"
)

// rect is an annotation rectangle in default user space, normalized so x1<=x2, y1<=y2
type rect struct {
	x1, y1, x2, y2 float64
}

func (r rect) contains(x, y, tolerance float64) bool {
	return x >= r.x1-tolerance && x <= r.x2+tolerance &&
		y >= r.y1-tolerance && y <= r.y2+tolerance
}

// pageLinks collects every /Link annotation with a /URI action on the page.
// The display text is whatever glyphs are drawn inside the annotation rectangle,
// which may differ from the URL entirely (an icon, "Email me", a name).
func pageLinks(page pdf.Page, glyphs []pdf.Text) []enrichment.Link {
	annots := page.V.Key("Annots")
	if annots.Kind() != pdf.Array {
		return nil
	}

	var links []enrichment.Link
	for i := 0; i < annots.Len(); i++ {
		annot := annots.Index(i)
		if annot.Key("Subtype").Name() != "Link" {
			continue
		}

		uri := annot.Key("A").Key("URI")
		if uri.Kind() != pdf.String {
			continue
		}
		url := strings.TrimSpace(uri.Text())
		if url == "" {
			continue
		}

		link := enrichment.Link{URL: url}
		if r, ok := annotRect(annot.Key("Rect")); ok {
			link.DisplayText = anchorText(glyphs, r)
		}
		links = append(links, link)
	}

	return links
}

func annotRect(v pdf.Value) (rect, bool) {
	if v.Kind() != pdf.Array || v.Len() != 4 {
		return rect{}, false
	}
	x1, y1 := v.Index(0).Float64(), v.Index(1).Float64()
	x2, y2 := v.Index(2).Float64(), v.Index(3).Float64()
	return rect{
		x1: math.Min(x1, x2),
		y1: math.Min(y1, y2),
		x2: math.Max(x1, x2),
		y2: math.Max(y1, y2),
	}, true
}

// anchorText joins, in drawing order, the glyphs whose origin falls inside r
func anchorText(glyphs []pdf.Text, r rect) string {
	var sb strings.Builder
	for _, g := range glyphs {
		tolerance := math.Max(1, g.FontSize*0.25)
		x := g.X + g.W/2
		if !r.contains(x, g.Y, tolerance) {
			continue
		}
		sb.WriteString(g.S)
	}
	return strings.Join(strings.Fields(sb.String()), " ")
}
