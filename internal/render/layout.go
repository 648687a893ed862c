// Package render lays out free-form legal text into fixed-size pages.
// The layout engine is pure: identical input produces identical pages,
// and it knows nothing about payments, users, or email.
package render

import (
	"strings"
)

// Measurer reports the rendered width of a string in points at a given
// font size. The production implementation is backed by the PDF
// library's font metrics; tests substitute a fixed-width fake.
type Measurer interface {
	Width(s string, fontSize float64) float64
}

// Geometry fixes the page frame. All units are points.
type Geometry struct {
	PageWidth    float64
	PageHeight   float64
	MarginLeft   float64
	MarginRight  float64
	MarginTop    float64
	MarginBottom float64
	FontSize     float64
	// LineSpacing is the line height as a multiple of FontSize.
	LineSpacing float64
	FooterText  string
	FooterY     float64
}

// A4Geometry is the frame used for generated applications.
func A4Geometry() Geometry {
	return Geometry{
		PageWidth:    595.28,
		PageHeight:   841.89,
		MarginLeft:   50,
		MarginRight:  50,
		MarginTop:    50,
		MarginBottom: 50,
		FontSize:     11,
		LineSpacing:  1.45,
		FooterText:   "Generated by CivicWatch. This is a computer-generated document.",
		FooterY:      811.89,
	}
}

// UsableWidth is the horizontal space available to a text line.
func (g Geometry) UsableWidth() float64 {
	return g.PageWidth - g.MarginLeft - g.MarginRight
}

// LineHeight is the vertical advance per emitted line.
func (g Geometry) LineHeight() float64 {
	return g.LineSpacing * g.FontSize
}

// Line is a positioned text run. Y is the baseline.
type Line struct {
	X    float64
	Y    float64
	Text string
}

// Page is an ordered list of positioned lines plus the fixed footer.
type Page struct {
	Lines  []Line
	Footer Line
}

// Layout wraps and paginates text. Paragraphs are delimited by blank
// lines; within a paragraph words accumulate greedily onto a line while
// the measured width stays within the usable width. A blank separator
// line is kept between paragraphs; trailing blanks are trimmed.
func Layout(text string, geom Geometry, m Measurer) []Page {
	lines := wrap(text, geom, m)
	return paginate(lines, geom)
}

func wrap(text string, geom Geometry, m Measurer) []string {
	usable := geom.UsableWidth()

	var out []string
	for _, para := range splitParagraphs(text) {
		words := strings.Fields(para)
		if len(words) == 0 {
			continue
		}

		current := words[0]
		for _, word := range words[1:] {
			candidate := current + " " + word
			if m.Width(candidate, geom.FontSize) <= usable {
				current = candidate
				continue
			}
			out = append(out, current)
			current = word
		}
		out = append(out, current)
		out = append(out, "")
	}

	// Drop trailing blank separator lines.
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return out
}

func splitParagraphs(text string) []string {
	normalized := strings.ReplaceAll(text, "\r\n", "\n")

	var paragraphs []string
	var current []string
	flush := func() {
		if len(current) > 0 {
			paragraphs = append(paragraphs, strings.Join(current, " "))
			current = nil
		}
	}

	for _, line := range strings.Split(normalized, "\n") {
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		current = append(current, line)
	}
	flush()
	return paragraphs
}

func paginate(lines []string, geom Geometry) []Page {
	lineHeight := geom.LineHeight()
	bottom := geom.PageHeight - geom.MarginBottom
	footer := Line{X: geom.MarginLeft, Y: geom.FooterY, Text: geom.FooterText}

	pages := []Page{{Footer: footer}}
	cursor := geom.MarginTop + lineHeight

	for _, text := range lines {
		if cursor > bottom {
			pages = append(pages, Page{Footer: footer})
			cursor = geom.MarginTop + lineHeight
		}
		page := &pages[len(pages)-1]
		page.Lines = append(page.Lines, Line{X: geom.MarginLeft, Y: cursor, Text: text})
		cursor += lineHeight
	}
	return pages
}
