package extraction

import (
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"
)

// pdfRow is the glyphs sharing one baseline
type pdfRow struct {
	y      float64
	glyphs []pdf.Text
}

// rowTolerance is how far, in points, a glyph may sit from a row's baseline
// and still belong to it
func rowTolerance(g pdf.Text) float64 {
	return math.Max(1, g.FontSize*0.3)
}

// pageText lays the positioned glyphs of a page out as lines: glyphs are grouped
// into rows by baseline, rows run top to bottom and glyphs left to right. A space
// is inserted where two glyphs on a row are visibly apart.
func pageText(glyphs []pdf.Text) string {
	var rows []*pdfRow
	for _, g := range glyphs {
		var row *pdfRow
		for _, r := range rows {
			if math.Abs(r.y-g.Y) <= rowTolerance(g) {
				row = r
				break
			}
		}
		if row == nil {
			row = &pdfRow{y: g.Y}
			rows = append(rows, row)
		}
		row.glyphs = append(row.glyphs, g)
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].y > rows[j].y })

	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, rowText(r.glyphs))
	}
	return strings.Join(lines, "\n")
}

func rowText(glyphs []pdf.Text) string {
	sort.SliceStable(glyphs, func(i, j int) bool { return glyphs[i].X < glyphs[j].X })

	var sb strings.Builder
	for i, g := range glyphs {
		if i > 0 {
			prev := glyphs[i-1]
			gap := g.X - (prev.X + prev.W)
			if gap > math.Max(prev.FontSize, g.FontSize)*0.25 && !isBlank(prev.S) && !isBlank(g.S) {
				sb.WriteByte(' ')
			}
		}
		sb.WriteString(g.S)
	}
	return strings.TrimRightFunc(sb.String(), unicode.IsSpace)
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
