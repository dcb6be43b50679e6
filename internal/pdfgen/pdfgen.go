// Package pdfgen renders the optional one-page PDF companion to the
// workbook: the four summary counts plus the two ratios drawn as pie charts.
package pdfgen

import (
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/opsvista/ocp-resource-report/internal/aggregate"
)

// Slice colors match the workbook: green for the positive category, red for
// the negative one.
var (
	colorWith    = [3]int{76, 175, 80}
	colorWithout = [3]int{255, 0, 0}
	colorHeader  = [3]int{0, 51, 102}
)

type PDFGenerator struct {
	pdf *gofpdf.Fpdf
}

func New() *PDFGenerator {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)

	return &PDFGenerator{
		pdf: pdf,
	}
}

// GenerateSummary writes the one-page summary document.
func (g *PDFGenerator) GenerateSummary(clusterName string, sum aggregate.Summary, generated time.Time, outputPath string) error {
	g.pdf.AddPage()

	g.addHeader(clusterName)
	g.pdf.Ln(3)
	g.addTimestamp(generated)
	g.pdf.Ln(6)

	g.addCounts(sum)

	g.addPie("Namespaces with/without Quota",
		"with quota", "without quota",
		sum.NamespacesWithQuota, sum.NamespacesWithoutQuota, 58, 150)
	g.addPie("Containers with/without Limits",
		"with limits", "without limits",
		sum.ContainersWithLimits, sum.ContainersWithoutLimits, 152, 150)

	g.addFooter()

	return g.pdf.OutputFileAndClose(outputPath)
}

func (g *PDFGenerator) addHeader(clusterName string) {
	g.pdf.SetFillColor(colorHeader[0], colorHeader[1], colorHeader[2])
	g.pdf.Rect(0, 0, 210, 40, "F")

	g.pdf.Ln(8)
	g.pdf.SetFont("Arial", "B", 22)
	g.pdf.SetTextColor(255, 255, 255)
	g.pdf.CellFormat(0, 12, "OpenShift Resource Report", "", 1, "C", false, 0, "")

	g.pdf.SetFont("Arial", "", 12)
	g.pdf.SetTextColor(255, 255, 255)
	g.pdf.CellFormat(0, 10, fmt.Sprintf("Cluster: %s", clusterName), "", 1, "C", false, 0, "")
}

func (g *PDFGenerator) addTimestamp(generated time.Time) {
	timestamp := generated.Format("Monday, January 2, 2006 at 15:04:05 MST")
	g.pdf.SetFont("Arial", "I", 9)
	g.pdf.SetTextColor(120, 120, 120)
	g.pdf.CellFormat(0, 6, fmt.Sprintf("Generated: %s", timestamp), "", 1, "C", false, 0, "")
}

func (g *PDFGenerator) addCounts(sum aggregate.Summary) {
	rows := []struct {
		label string
		value int
	}{
		{"Namespaces with Quota", sum.NamespacesWithQuota},
		{"Namespaces without Quota", sum.NamespacesWithoutQuota},
		{"Containers with Limits", sum.ContainersWithLimits},
		{"Containers without Limits", sum.ContainersWithoutLimits},
	}

	g.pdf.SetY(55)
	for i, row := range rows {
		if i%2 == 0 {
			g.pdf.SetFillColor(245, 247, 250)
		} else {
			g.pdf.SetFillColor(255, 255, 255)
		}
		g.pdf.SetX(30)
		g.pdf.SetFont("Arial", "", 11)
		g.pdf.SetTextColor(60, 60, 60)
		g.pdf.CellFormat(110, 8, row.label, "", 0, "L", true, 0, "")
		g.pdf.SetFont("Arial", "B", 11)
		g.pdf.CellFormat(40, 8, fmt.Sprintf("%d", row.value), "", 1, "R", true, 0, "")
	}
}

// addPie draws a two-slice pie centered at (cx, cy) with a small legend
// underneath. A pie with no data becomes a gray placeholder disc.
func (g *PDFGenerator) addPie(title, withLabel, withoutLabel string, with, without int, cx, cy float64) {
	const radius = 32.0

	g.pdf.SetFont("Arial", "B", 11)
	g.pdf.SetTextColor(40, 40, 40)
	g.pdf.SetXY(cx-radius-12, cy-radius-14)
	g.pdf.CellFormat(2*radius+24, 6, title, "", 0, "C", false, 0, "")

	total := with + without
	if total == 0 {
		g.pdf.SetFillColor(220, 220, 220)
		g.pdf.Circle(cx, cy, radius, "F")
		g.pdf.SetFont("Arial", "I", 9)
		g.pdf.SetTextColor(120, 120, 120)
		g.pdf.SetXY(cx-radius, cy-3)
		g.pdf.CellFormat(2*radius, 6, "no data", "", 0, "C", false, 0, "")
		return
	}

	sweep := 360.0 * float64(with) / float64(total)
	g.drawSlice(cx, cy, radius, 90, 90+sweep, colorWith)
	g.drawSlice(cx, cy, radius, 90+sweep, 450, colorWithout)

	g.addLegendEntry(cx-radius, cy+radius+6, colorWith,
		fmt.Sprintf("%s: %d (%.1f%%)", withLabel, with, 100*float64(with)/float64(total)))
	g.addLegendEntry(cx-radius, cy+radius+12, colorWithout,
		fmt.Sprintf("%s: %d (%.1f%%)", withoutLabel, without, 100*float64(without)/float64(total)))
}

func (g *PDFGenerator) drawSlice(cx, cy, radius, degStart, degEnd float64, color [3]int) {
	if degEnd <= degStart {
		return
	}
	g.pdf.SetFillColor(color[0], color[1], color[2])
	if degEnd-degStart >= 360 {
		g.pdf.Circle(cx, cy, radius, "F")
		return
	}
	g.pdf.MoveTo(cx, cy)
	g.pdf.ArcTo(cx, cy, radius, radius, 0, degStart, degEnd)
	g.pdf.ClosePath()
	g.pdf.DrawPath("F")
}

func (g *PDFGenerator) addLegendEntry(x, y float64, color [3]int, text string) {
	g.pdf.SetFillColor(color[0], color[1], color[2])
	g.pdf.Rect(x, y, 4, 4, "F")
	g.pdf.SetFont("Arial", "", 9)
	g.pdf.SetTextColor(60, 60, 60)
	g.pdf.SetXY(x+6, y-1)
	g.pdf.CellFormat(70, 6, text, "", 0, "L", false, 0, "")
}

func (g *PDFGenerator) addFooter() {
	g.pdf.SetY(-20)
	g.pdf.SetFont("Arial", "I", 8)
	g.pdf.SetTextColor(150, 150, 150)
	g.pdf.CellFormat(0, 10, "Companion summary to the Excel workbook", "", 0, "C", false, 0, "")
}

// GenerateSummaryPDF is the package-level convenience wrapper.
func GenerateSummaryPDF(clusterName string, sum aggregate.Summary, generated time.Time, outputPath string) error {
	gen := New()
	return gen.GenerateSummary(clusterName, sum, generated, outputPath)
}
