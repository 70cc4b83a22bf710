// Package report renders analysis results as a printable PDF with one bar
// chart per analysis.
package report

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf/v2"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"hgbdice/internal/analysis"
	"hgbdice/internal/game"
)

const (
	pageW      = 595
	pageH      = 842
	margin     = 40
	chartH     = 110.0
	barGap     = 4.0
	maxBarW    = 36.0
	fontSize   = 8
	titleSize  = 16
	headSize   = 11
	labelSize  = 7
	rowH       = 11.0
	sectionGap = 18.0
)

var printer = message.NewPrinter(language.English)

// Percent formats a probability for people, e.g. 0.4213 as "42.13%".
func Percent(p float64) string {
	return printer.Sprintf("%.2f%%", p*100)
}

// Generate returns PDF bytes summarizing a scenario: both rolls, then every
// result as a bar chart of its overall distribution followed by a table of
// its per-source averages. Range results get a second chart of the
// "at least" distribution.
func Generate(title string, summary game.RollSummary, results []analysis.Result) ([]byte, error) {
	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(false, 0)
	newPage(pdf)

	pdf.SetFont("Helvetica", "B", titleSize)
	pdf.SetXY(margin, margin)
	if title == "" {
		title = "Attack analysis"
	}
	pdf.CellFormat(pageW-2*margin, 18, title, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", fontSize+1)
	pdf.SetX(margin)
	pdf.CellFormat(pageW-2*margin, 12, "Attacker: "+summary.Attacker, "", 1, "L", false, 0, "")
	pdf.SetX(margin)
	pdf.CellFormat(pageW-2*margin, 12, "Defender: "+summary.Defender, "", 1, "L", false, 0, "")

	y := pdf.GetY() + sectionGap
	for _, r := range results {
		h := sectionHeight(r)
		if y+h > pageH-margin {
			newPage(pdf)
			y = margin
		}
		y = drawResult(pdf, y, r) + sectionGap
	}

	if err := pdf.Error(); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func newPage(pdf *gofpdf.Fpdf) {
	pdf.AddPage()
	pdf.SetFillColor(250, 248, 240)
	pdf.Rect(0, 0, pageW, pageH, "F")
	pdf.SetDrawColor(60, 60, 60)
	pdf.SetTextColor(30, 30, 30)
	pdf.SetLineWidth(0.5)
}

func sectionHeight(r analysis.Result) float64 {
	h := 2*rowH + chartH + 2*rowH + float64(len(r.Sources)+1)*rowH
	if r.Type == analysis.Range {
		h += rowH + chartH + 2*rowH
	}
	return h
}

func drawResult(pdf *gofpdf.Fpdf, y float64, r analysis.Result) float64 {
	all := r.All()

	pdf.SetFont("Helvetica", "B", headSize)
	pdf.SetXY(margin, y)
	pdf.CellFormat(pageW-2*margin, rowH+2, r.Name, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "I", fontSize)
	pdf.SetX(margin)
	pdf.CellFormat(pageW-2*margin, rowH, r.Description, "", 1, "L", false, 0, "")

	y = pdf.GetY() + 4
	y = drawChart(pdf, y, all.Totals)
	if r.Type == analysis.Range {
		pdf.SetFont("Helvetica", "I", fontSize)
		pdf.SetXY(margin, y)
		pdf.CellFormat(pageW-2*margin, rowH, "At least", "", 0, "L", false, 0, "")
		y = drawChart(pdf, y+rowH, all.MinTotals)
	}

	pdf.SetFont("Helvetica", "B", fontSize)
	cols := []float64{140, 110, 130}
	heads := []string{"Source", "Average", "Average on success"}
	if r.Type == analysis.Bool {
		heads[1] = "Probability"
	}
	pdf.SetXY(margin, y)
	for i, h := range heads {
		pdf.CellFormat(cols[i], rowH, h, "B", 0, "L", false, 0, "")
	}
	pdf.Ln(rowH)

	pdf.SetFont("Helvetica", "", fontSize)
	for _, s := range r.Sources {
		avg := fmt.Sprintf("%.3f", s.Average)
		norm := fmt.Sprintf("%.3f", s.NormalizedAverage)
		if r.Type == analysis.Bool {
			avg = Percent(s.Average)
			norm = Percent(s.NormalizedAverage)
		}
		pdf.SetX(margin)
		pdf.CellFormat(cols[0], rowH, s.Source, "", 0, "L", false, 0, "")
		pdf.CellFormat(cols[1], rowH, avg, "", 0, "L", false, 0, "")
		pdf.CellFormat(cols[2], rowH, norm, "", 0, "L", false, 0, "")
		pdf.Ln(rowH)
	}
	return pdf.GetY()
}

// drawChart plots p as vertical bars, tallest bar reaching the full chart
// height, and returns the y below the value labels.
func drawChart(pdf *gofpdf.Fpdf, y float64, p analysis.PMF) float64 {
	x0 := float64(margin)
	width := float64(pageW - 2*margin)
	base := y + chartH

	pdf.Line(x0, base, x0+width, base)
	if len(p) == 0 {
		return base + 2*rowH
	}

	top := 0.0
	for _, pt := range p {
		top = max(top, pt.Prob)
	}
	barW := max(1, min(maxBarW, width/float64(len(p))-barGap))

	pdf.SetFillColor(70, 110, 160)
	pdf.SetFont("Helvetica", "", labelSize)
	for i, pt := range p {
		x := x0 + float64(i)*(barW+barGap)
		h := 0.0
		if top > 0 {
			h = (chartH - rowH) * pt.Prob / top
		}
		pdf.Rect(x, base-h, barW, h, "F")

		pdf.SetXY(x-barGap, base-h-rowH)
		pdf.CellFormat(barW+2*barGap, rowH, Percent(pt.Prob), "", 0, "C", false, 0, "")
		pdf.SetXY(x, base+1)
		pdf.CellFormat(barW, rowH, fmt.Sprintf("%g", pt.Value), "", 0, "C", false, 0, "")
	}
	return base + 2*rowH
}
