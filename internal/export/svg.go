package export

import (
	"bytes"
	"fmt"
	"math"

	svg "github.com/ajstarks/svgo/float"
	"github.com/piwi3910/CabinetPlan/internal/engine"
	"github.com/piwi3910/CabinetPlan/internal/model"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultPlanScale is the pixels-per-millimetre used when none is given.
const DefaultPlanScale = 0.1

// Plan drawing constants, in millimetres unless noted.
const (
	planPaddingMM  = 300.0
	planGridMM     = 500.0
	planBackground = "#0f1014"
	planGridStroke = "#1f2937"
	planStroke     = "#111827"
	planOptional   = "#FBBF24"
	planFooterFill = "#D1D5DB"
	planCornerPx   = 16.0
)

// Bounds is an axis-aligned box in millimetres.
type Bounds struct {
	MinX, MinY, MaxX, MaxY float64
}

// Width returns the horizontal extent.
func (b Bounds) Width() float64 { return b.MaxX - b.MinX }

// Height returns the vertical extent.
func (b Bounds) Height() float64 { return b.MaxY - b.MinY }

// PlanBounds returns the footprint box over all placements. An empty design
// yields a 1000 mm square at the origin.
func PlanBounds(design model.Design) Bounds {
	b := Bounds{MinX: math.Inf(1), MinY: math.Inf(1), MaxX: math.Inf(-1), MaxY: math.Inf(-1)}
	for _, p := range design.Placements() {
		b.MinX = math.Min(b.MinX, p.X)
		b.MinY = math.Min(b.MinY, p.Y)
		b.MaxX = math.Max(b.MaxX, p.X+p.Width)
		b.MaxY = math.Max(b.MaxY, p.Y+p.Depth)
	}
	if math.IsInf(b.MinX, 1) {
		return Bounds{MinX: 0, MinY: 0, MaxX: 1000, MaxY: 1000}
	}
	return b
}

// SVGPlan renders a top-down plan of design. Each placement is a rounded
// rectangle filled with the door colour, outlined amber when optional and
// faded when added by the optimizer. The footer carries the design name,
// finish labels and price. A scale <= 0 selects DefaultPlanScale.
func SVGPlan(design model.Design, scale float64) (string, error) {
	if scale <= 0 {
		scale = DefaultPlanScale
	}
	door, err := model.LookupDoor(design.Door)
	if err != nil {
		return "", err
	}
	top, err := model.LookupTop(design.Top)
	if err != nil {
		return "", err
	}
	price, err := engine.Price(design)
	if err != nil {
		return "", err
	}

	bounds := PlanBounds(design)
	minX := bounds.MinX - planPaddingMM
	minY := bounds.MinY - planPaddingMM
	widthMM := bounds.Width() + planPaddingMM*2
	heightMM := bounds.Height() + planPaddingMM*2
	widthPx := widthMM * scale
	heightPx := heightMM * scale

	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Start(widthPx, heightPx, fmt.Sprintf(`viewBox="0 0 %.2f %.2f"`, widthPx, heightPx))
	canvas.Style("text/css", fmt.Sprintf("svg { background: %s; }", planBackground))
	canvas.Rect(0, 0, widthPx, heightPx, attr("fill", planBackground))

	canvas.Group(attr("fill", "none"), attr("stroke", planGridStroke), `stroke-width="1"`)
	rows := int(math.Ceil(heightMM/planGridMM)) + 1
	for i := 0; i < rows; i++ {
		y := float64(i) * planGridMM * scale
		canvas.Line(0, y, widthPx, y)
	}
	cols := int(math.Ceil(widthMM/planGridMM)) + 1
	for i := 0; i < cols; i++ {
		x := float64(i) * planGridMM * scale
		canvas.Line(x, 0, x, heightPx)
	}
	canvas.Gend()

	canvas.Group()
	for _, p := range design.Placements() {
		spec, err := model.LookupModule(p.ModuleID)
		if err != nil {
			return "", err
		}
		x := (p.X - minX) * scale
		y := (p.Y - minY) * scale
		w := p.Width * scale
		h := p.Depth * scale

		stroke := planStroke
		if p.Optional {
			stroke = planOptional
		}
		opacity := 1.0
		if p.Source == model.SourceAdded {
			opacity = 0.85
		}

		canvas.Group(fmt.Sprintf(`transform="translate(%.2f, %.2f)"`, x, y), fmt.Sprintf(`opacity="%.2f"`, opacity))
		canvas.Roundrect(0, 0, w, h, planCornerPx, planCornerPx, attr("fill", door.Hex), attr("stroke", stroke), `stroke-width="4"`)
		canvas.Text(w/2, h/2, spec.Label,
			`dominant-baseline="middle"`, `text-anchor="middle"`,
			attr("fill", "#FFFFFF"), `font-size="28"`, `font-family="sans-serif"`)
		canvas.Gend()
	}
	canvas.Gend()

	canvas.Text(24, heightPx-32, planFooter(design, door, top, price),
		attr("fill", planFooterFill), `font-size="32"`, `font-family="sans-serif"`)
	canvas.End()
	return buf.String(), nil
}

func planFooter(design model.Design, door, top model.MaterialOption, price int) string {
	p := message.NewPrinter(language.English)
	return p.Sprintf("%s · Door %s · Top %s · $%d", design.Name, door.Label, top.Label, price)
}

func attr(name, value string) string {
	return fmt.Sprintf(`%s="%s"`, name, value)
}
