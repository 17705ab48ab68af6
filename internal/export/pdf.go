// Package export renders placement results to PDF reports.
package export

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/tipview/internal/engine"
	"github.com/piwi3910/tipview/internal/model"
)

// Entry is one placed scenario in a report.
type Entry struct {
	Label   string
	Request model.PlacementRequest
	Result  model.PlacementResult
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	legendHeight = 20.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// ErrNothingToExport is returned for an empty report.
var ErrNothingToExport = errors.New("no scenarios to export")

// ExportPDF writes one page per entry showing the container, the reference
// element and the placed bubble drawn in the given style, followed by a
// summary page.
func ExportPDF(path string, entries []Entry, drawing model.Drawing) error {
	if len(entries) == 0 {
		return ErrNothingToExport
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	for i, e := range entries {
		pdf.AddPage()
		renderScenarioPage(pdf, e, drawing, i+1)
	}

	pdf.AddPage()
	renderSummaryPage(pdf, entries)

	return pdf.OutputFileAndClose(path)
}

// renderScenarioPage draws a single placement on the current PDF page.
func renderScenarioPage(pdf *fpdf.Fpdf, e Entry, drawing model.Drawing, num int) {
	req, res := e.Request, e.Result
	container := req.ContainerFrame

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Scenario %d: %s (%.0f x %.0f)", num, e.Label, container.Width, container.Height)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Preferred: %s | Resolved: %s | Fallback: %s | Overlaps: %s",
		req.PreferredDirection, res.ResolvedDirection, yesNo(res.Fallback), yesNo(res.Overlaps))
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - legendHeight
	scale := math.Min(drawWidth/container.Width, drawHeight/container.Height)

	canvasW := container.Width * scale
	canvasH := container.Height * scale
	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	// Container
	pdf.SetFillColor(245, 245, 245)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	// Reference element
	ref := req.ReferenceFrame
	pdf.SetFillColor(33, 150, 243)
	pdf.SetDrawColor(20, 90, 150)
	pdf.SetLineWidth(0.3)
	pdf.Rect(offsetX+(ref.X-container.X)*scale, offsetY+(ref.Y-container.Y)*scale, ref.Width*scale, ref.Height*scale, "FD")

	drawBubble(pdf, req, res, drawing, scale, offsetX-container.X*scale, offsetY-container.Y*scale)
	drawDimensionAnnotations(pdf, container, offsetX, offsetY, canvasW, canvasH)
	drawLegend(pdf, res, offsetY+canvasH+7)
}

// drawBubble renders the bubble body, its arrow and the pointer tip. ox and oy
// map container coordinates to the page.
func drawBubble(pdf *fpdf.Fpdf, req model.PlacementRequest, res model.PlacementResult, drawing model.Drawing, scale, ox, oy float64) {
	shape := engine.BubbleShape(res, req.Insets, req.Arrow)
	frame := res.BubbleFrame
	bx := ox + frame.X*scale
	by := oy + frame.Y*scale

	bg := drawing.BackgroundColor
	pdf.SetAlpha(float64(bg.A)/255, "Normal")
	pdf.SetFillColor(int(bg.R), int(bg.G), int(bg.B))

	body := shape.Body
	radius := math.Min(drawing.CornerRadius*scale, math.Min(body.Width, body.Height)*scale/2)
	pdf.RoundedRect(bx+body.X*scale, by+body.Y*scale, body.Width*scale, body.Height*scale, radius, "1234", "F")

	points := make([]fpdf.PointType, 0, len(shape.Arrow))
	for _, p := range shape.Arrow {
		points = append(points, fpdf.PointType{X: bx + p.X*scale, Y: by + p.Y*scale})
	}
	pdf.Polygon(points, "F")
	pdf.SetAlpha(1, "Normal")

	// Outer frame including margins
	pdf.SetDrawColor(150, 150, 150)
	pdf.SetLineWidth(0.1)
	pdf.SetDashPattern([]float64{1, 1}, 0)
	pdf.Rect(bx, by, frame.Width*scale, frame.Height*scale, "D")
	pdf.SetDashPattern([]float64{}, 0)

	// Pointer tip
	pdf.SetFillColor(0, 0, 0)
	pdf.Circle(bx+res.PointerTip.X*scale, by+res.PointerTip.Y*scale, 0.8, "F")
}

// drawDimensionAnnotations adds width and height labels outside the container.
func drawDimensionAnnotations(pdf *fpdf.Fpdf, container model.Rect, offsetX, offsetY, canvasW, canvasH float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	widthLabel := fmt.Sprintf("%.0f", container.Width)
	wLabelW := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(offsetX+(canvasW-wLabelW)/2, offsetY+canvasH+1)
	pdf.CellFormat(wLabelW, 4, widthLabel, "", 0, "C", false, 0, "")

	heightLabel := fmt.Sprintf("%.0f", container.Height)
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+canvasH/2)
	hLabelW := pdf.GetStringWidth(heightLabel)
	pdf.SetXY(offsetX-3-hLabelW/2, offsetY+canvasH/2-2)
	pdf.CellFormat(hLabelW, 4, heightLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

// drawLegend prints the numeric result below the drawing.
func drawLegend(pdf *fpdf.Fpdf, res model.PlacementResult, startY float64) {
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, startY)
	line := fmt.Sprintf("Bubble frame: %s   Pointer tip: (%.1f, %.1f)",
		res.BubbleFrame, res.PointerTip.X, res.PointerTip.Y)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, line, "", 0, "L", false, 0, "")
}

// renderSummaryPage lists every scenario with its outcome.
func renderSummaryPage(pdf *fpdf.Fpdf, entries []Entry) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, "Placement Summary", "", 0, "L", false, 0, "")

	fallbacks, overlaps := 0, 0
	for _, e := range entries {
		if e.Result.Fallback {
			fallbacks++
		}
		if e.Result.Overlaps {
			overlaps++
		}
	}

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	pdf.CellFormat(0, 6, fmt.Sprintf("Scenarios: %d | Fallbacks: %d | Overlapping: %d", len(entries), fallbacks, overlaps),
		"", 1, "L", false, 0, "")

	cols := []struct {
		title string
		width float64
	}{
		{"#", 10}, {"Scenario", 60}, {"Preferred", 25}, {"Resolved", 25},
		{"Bubble frame", 95}, {"Fallback", 26}, {"Overlaps", 26},
	}

	y := marginTop + headerHeight + 10
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	pdf.SetXY(marginLeft, y)
	for _, c := range cols {
		pdf.CellFormat(c.width, 6, c.title, "1", 0, "L", true, 0, "")
	}

	pdf.SetFont("Helvetica", "", 9)
	for i, e := range entries {
		y += 6
		if y > pageHeight-marginBottom-6 {
			pdf.AddPage()
			y = marginTop
		}
		pdf.SetXY(marginLeft, y)
		cells := []string{
			fmt.Sprintf("%d", i+1),
			e.Label,
			e.Request.PreferredDirection.String(),
			e.Result.ResolvedDirection.String(),
			e.Result.BubbleFrame.String(),
			yesNo(e.Result.Fallback),
			yesNo(e.Result.Overlaps),
		}
		for j, c := range cols {
			pdf.CellFormat(c.width, 6, cells[j], "1", 0, "L", false, 0, "")
		}
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
