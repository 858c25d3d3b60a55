package export

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/daksh3010/newsdash/internal/domain"
)

const (
	pdfCaption    = "Article Payout Summary"
	pdfCaptionY   = 16.0
	pdfTableTopY  = 22.0
	pdfLeftMargin = 14.0
	pdfRowHeight  = 7.0
	pdfBreakY     = 280.0
)

// Column widths in millimetres; the sum stays inside an A4 portrait page.
var pdfColWidths = [4]float64{86, 42, 28, 26}

// PDF renders the filtered view as a single auto-paginated table with a
// title caption. The header row repeats on every page. Payout cells carry
// an explicit dollar prefix.
func PDF(view []domain.Article, rate float64) ([]byte, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetAutoPageBreak(false, 0)
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 12)
	doc.Text(pdfLeftMargin, pdfCaptionY, pdfCaption)

	y := pdfTableTopY
	y = pdfHeaderRow(doc, y)

	doc.SetFont("Helvetica", "", 8)
	doc.SetTextColor(0, 0, 0)
	for _, a := range view {
		if y+pdfRowHeight > pdfBreakY {
			doc.AddPage()
			y = pdfHeaderRow(doc, pdfTableTopY)
			doc.SetFont("Helvetica", "", 8)
			doc.SetTextColor(0, 0, 0)
		}
		cells := [4]string{
			a.Title,
			authorOrUnknown(a),
			formatDate(a),
			fmt.Sprintf("$%.2f", rate),
		}
		y = pdfBodyRow(doc, y, cells)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// pdfHeaderRow draws the filled header row and returns the next row's y.
func pdfHeaderRow(doc *fpdf.Fpdf, y float64) float64 {
	doc.SetFont("Helvetica", "B", 8)
	doc.SetFillColor(99, 102, 241)
	doc.SetTextColor(255, 255, 255)

	x := pdfLeftMargin
	doc.SetXY(x, y)
	for i, h := range tableHeader {
		doc.CellFormat(pdfColWidths[i], pdfRowHeight, h, "1", 0, "L", true, 0, "")
	}
	return y + pdfRowHeight
}

// pdfBodyRow draws one article row and returns the next row's y.
func pdfBodyRow(doc *fpdf.Fpdf, y float64, cells [4]string) float64 {
	doc.SetXY(pdfLeftMargin, y)
	for i, c := range cells {
		doc.CellFormat(pdfColWidths[i], pdfRowHeight, clipCell(c, pdfColWidths[i], doc), "1", 0, "L", false, 0, "")
	}
	return y + pdfRowHeight
}

// clipCell shortens text that would overflow its column.
func clipCell(s string, width float64, doc *fpdf.Fpdf) string {
	const pad = 2.0
	if doc.GetStringWidth(s) <= width-pad {
		return s
	}
	runes := []rune(s)
	for len(runes) > 1 && doc.GetStringWidth(string(runes)+"...") > width-pad {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}
