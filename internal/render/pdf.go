package render

import (
	"bytes"
	"time"

	"github.com/jung-kurt/gofpdf"
)

const pdfFontFamily = "Helvetica"

// Fixed creation timestamp so two renders of the same text are
// byte-identical.
var pdfCreationDate = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

type fpdfMeasurer struct {
	doc *gofpdf.Fpdf
}

func (m fpdfMeasurer) Width(s string, fontSize float64) float64 {
	m.doc.SetFontSize(fontSize)
	return m.doc.GetStringWidth(s)
}

// GeneratePDF lays out text with the standard geometry and writes it as
// a PDF. Both the fulfillment path and the on-demand document endpoint
// go through this function, so the two always agree on layout.
func GeneratePDF(text string) ([]byte, error) {
	return generate(text, A4Geometry())
}

func generate(text string, geom Geometry) ([]byte, error) {
	doc := gofpdf.New("P", "pt", "A4", "")
	doc.SetCreationDate(pdfCreationDate)
	doc.SetAutoPageBreak(false, 0)
	doc.SetFont(pdfFontFamily, "", geom.FontSize)

	pages := Layout(text, geom, fpdfMeasurer{doc: doc})

	for _, page := range pages {
		doc.AddPage()
		doc.SetFont(pdfFontFamily, "", geom.FontSize)
		for _, line := range page.Lines {
			if line.Text == "" {
				continue
			}
			doc.Text(line.X, line.Y, line.Text)
		}
		doc.SetFont(pdfFontFamily, "I", 8)
		doc.Text(page.Footer.X, page.Footer.Y, page.Footer.Text)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
