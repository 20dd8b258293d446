package export

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/CabinetPlan/internal/engine"
	"github.com/piwi3910/CabinetPlan/internal/model"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// Quote gathers everything printed on a customer quote.
type Quote struct {
	Design  model.Design
	BOM     []BOMRow
	Pricing engine.PricingBreakdown
	Cutlist CutlistSummary
	Nesting NestingResult
}

// BuildQuote prices design with the given deposit rate and collects its
// BOM, cutlist totals and board estimate.
func BuildQuote(design model.Design, depositRate float64) (Quote, error) {
	rows, err := BOM(design)
	if err != nil {
		return Quote{}, err
	}
	ids := make([]model.ModuleID, 0, design.PlacementCount())
	for _, p := range design.Placements() {
		ids = append(ids, p.ModuleID)
	}
	pricing, err := engine.CalculatePricing(ids, design.Door, design.Top, depositRate)
	if err != nil {
		return Quote{}, err
	}
	cuts, err := Cutlist(design)
	if err != nil {
		return Quote{}, err
	}
	nesting, err := NestCutlist(cuts, DefaultBoard())
	if err != nil {
		return Quote{}, err
	}
	return Quote{
		Design:  design,
		BOM:     rows,
		Pricing: pricing,
		Cutlist: SummarizeCutlist(cuts),
		Nesting: nesting,
	}, nil
}

// ExportQuotePDF writes a two-page quote: a summary page with the bill of
// materials, pricing and the optimizer log, then a plan page with the
// placements drawn to scale and the board estimate.
func ExportQuotePDF(path string, q Quote) error {
	if q.Design.PlacementCount() == 0 {
		return fmt.Errorf("no placements to quote")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	pdf.AddPage()
	renderQuoteSummary(pdf, q)

	pdf.AddPage()
	renderPlanPage(pdf, q)

	return pdf.OutputFileAndClose(path)
}

func renderQuoteSummary(pdf *fpdf.Fpdf, q Quote) {
	d := q.Design

	// Title
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Kitchen Quote: "+d.Name, "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	door, _ := model.LookupDoor(d.Door)
	top, _ := model.LookupTop(d.Top)
	infoItems := []struct {
		label string
		value string
	}{
		{"Layout", string(d.Layout)},
		{"Door Finish", fmt.Sprintf("%s (%s)", door.Label, d.Door)},
		{"Top Finish", fmt.Sprintf("%s (%s)", top.Label, d.Top)},
		{"Modules", strconv.Itoa(d.PlacementCount())},
		{"Created", d.CreatedAt},
	}
	if target, ok := d.Metadata.Target(); ok {
		infoItems = append(infoItems, struct {
			label string
			value string
		}{"Target Budget", usd(target)})
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range infoItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(40, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(80, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 6
	}

	// Pricing block on the right
	renderPricing(pdf, q.Pricing, pageWidth-marginRight-95, marginTop+18)

	y += 5
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Bill of Materials", "", 0, "L", false, 0, "")
	y += 8

	colWidths := []float64{22, 55, 15, 55, 30, 30}
	headers := []string{"Module", "Label", "Qty", "W x D x H (mm)", "Unit", "Extended"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, row := range q.BOM {
		xPos = marginLeft
		cells := []string{
			string(row.ModuleID),
			row.Label,
			strconv.Itoa(row.Quantity),
			fmt.Sprintf("%.0f x %.0f x %.0f", row.WidthMM, row.DepthMM, row.HeightMM),
			usd(row.UnitCostUSD),
			usd(row.ExtendedCostUSD),
		}

		// Alternate row background
		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		for j, cell := range cells {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}

	if len(d.Operations) > 0 {
		y += 6
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(200, 7, "Budget Adjustments", "", 0, "L", false, 0, "")
		y += 7

		pdf.SetFont("Helvetica", "", 9)
		for _, op := range d.Operations {
			if y > pageHeight-marginBottom-8 {
				break
			}
			pdf.SetXY(marginLeft+5, y)
			text := fmt.Sprintf("- %s [%s]", model.DescribeOperation(op), model.OperationReason(op))
			pdf.CellFormat(200, 5, text, "", 0, "L", false, 0, "")
			y += 5
		}
	}

	renderFooter(pdf)
}

func renderPricing(pdf *fpdf.Fpdf, p engine.PricingBreakdown, x, y float64) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(x, y)
	pdf.CellFormat(95, 7, "Pricing", "", 0, "L", false, 0, "")
	y += 8

	items := []struct {
		label string
		value string
	}{
		{"Module Subtotal", usd(p.ModuleSubtotalUSD)},
		{"Door Multiplier", fmt.Sprintf("x%.2f", p.DoorMultiplier)},
		{"Top Multiplier", fmt.Sprintf("x%.2f", p.TopMultiplier)},
		{"Total", usd(p.TotalUSD)},
		{"Deposit Due", usd(p.DepositUSD)},
	}

	pdf.SetFillColor(245, 245, 245)
	for _, item := range items {
		pdf.SetXY(x, y)
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(55, 6, item.label, "1", 0, "L", true, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(40, 6, item.value, "1", 0, "R", true, 0, "")
		y += 6
	}
}

func renderPlanPage(pdf *fpdf.Fpdf, q Quote) {
	d := q.Design

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, "Plan: "+d.Name, "", 0, "L", false, 0, "")

	bounds := PlanBounds(d)
	bounds.MinX -= planPaddingMM
	bounds.MinY -= planPaddingMM
	bounds.MaxX += planPaddingMM
	bounds.MaxY += planPaddingMM

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - 35

	scale := math.Min(drawWidth/bounds.Width(), drawHeight/bounds.Height())
	canvasW := bounds.Width() * scale
	canvasH := bounds.Height() * scale
	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	pdf.SetFillColor(15, 16, 20)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.3)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	door, _ := model.LookupDoor(d.Door)
	fill := hexColor(door.Hex)

	for _, p := range d.Placements() {
		px := offsetX + (p.X-bounds.MinX)*scale
		py := offsetY + (p.Y-bounds.MinY)*scale
		pw := p.Width * scale
		ph := p.Depth * scale

		pdf.SetFillColor(fill.R, fill.G, fill.B)
		if p.Optional {
			pdf.SetDrawColor(251, 191, 36)
		} else {
			pdf.SetDrawColor(17, 24, 39)
		}
		pdf.SetLineWidth(0.4)
		pdf.Rect(px, py, pw, ph, "FD")

		// Module id (only if rectangle is large enough)
		if pw > 8 && ph > 4 {
			pdf.SetFont("Helvetica", "", labelFontSize(pw, ph))
			if fill.luminance() > 128 {
				pdf.SetTextColor(0, 0, 0)
			} else {
				pdf.SetTextColor(255, 255, 255)
			}
			label := string(p.ModuleID)
			labelW := pdf.GetStringWidth(label)
			if labelW < pw-1 {
				pdf.SetXY(px+(pw-labelW)/2, py+ph/2-2)
				pdf.CellFormat(labelW, 4, label, "", 0, "C", false, 0, "")
			}
		}
	}
	pdf.SetTextColor(0, 0, 0)

	// Dimension annotation below the plan
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)
	dims := fmt.Sprintf("%.0f x %.0f mm footprint", bounds.Width()-2*planPaddingMM, bounds.Height()-2*planPaddingMM)
	dimsW := pdf.GetStringWidth(dims)
	pdf.SetXY(offsetX+(canvasW-dimsW)/2, offsetY+canvasH+1)
	pdf.CellFormat(dimsW, 4, dims, "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)

	renderBoardTable(pdf, q, offsetY+canvasH+7)
	renderFooter(pdf)
}

func renderBoardTable(pdf *fpdf.Fpdf, q Quote, y float64) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetXY(marginLeft, y)
	summary := fmt.Sprintf("Cutlist: %d cabinet panels, %d top panels, %.2f m² | Boards: %s",
		q.Cutlist.CabinetPanels, q.Cutlist.TopPanels, q.Cutlist.AreaM2, BoardsSummary(q.Nesting))
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, summary, "", 0, "L", false, 0, "")
	y += 6

	pdf.SetFont("Helvetica", "", 8)
	xPos := marginLeft
	for i, b := range q.Nesting.Boards {
		label := fmt.Sprintf("Board %d: %d panels, %.1f%%", i+1, len(b.Panels), b.Efficiency())
		w := pdf.GetStringWidth(label) + 4
		if xPos+w > pageWidth-marginRight {
			y += 4
			xPos = marginLeft
		}
		pdf.SetXY(xPos, y)
		pdf.CellFormat(w, 4, label, "", 0, "L", false, 0, "")
		xPos += w + 2
	}
}

func renderFooter(pdf *fpdf.Fpdf) {
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by CabinetPlan - Kitchen Design Planner", "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

// rgb is a colour parsed from a catalog hex string.
type rgb struct {
	R, G, B int
}

func (c rgb) luminance() float64 {
	return 0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)
}

// hexColor parses "#RRGGBB"; anything else yields mid grey.
func hexColor(hex string) rgb {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return rgb{128, 128, 128}
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return rgb{128, 128, 128}
	}
	return rgb{R: int(v >> 16 & 0xFF), G: int(v >> 8 & 0xFF), B: int(v & 0xFF)}
}

// labelFontSize returns an appropriate font size based on the rectangle dimensions.
func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 12:
		return 8
	case minDim > 7:
		return 7
	default:
		return 6
	}
}

func usd(v int) string {
	return message.NewPrinter(language.English).Sprintf("$%d", v)
}
