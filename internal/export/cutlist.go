package export

import (
	"strconv"

	"github.com/piwi3910/CabinetPlan/internal/model"
)

// PanelThicknessMM is the board thickness assumed for every cut panel.
const PanelThicknessMM = 20

// Component names the part of a module a cut panel belongs to.
type Component string

const (
	ComponentCabinet Component = "cabinet"
	ComponentTop     Component = "top"
)

// CutlistRow is one panel record: quantity identical panels of
// width by depth at a fixed thickness.
type CutlistRow struct {
	ModuleID    model.ModuleID `json:"moduleId"`
	Component   Component      `json:"component"`
	WidthMM     float64        `json:"width_mm"`
	DepthMM     float64        `json:"depth_mm"`
	ThicknessMM float64        `json:"thickness_mm"`
	Quantity    int            `json:"quantity"`
}

var cutlistColumns = []string{"moduleId", "component", "width_mm", "depth_mm", "thickness_mm", "quantity"}

// Columns implements Row.
func (CutlistRow) Columns() []string { return cutlistColumns }

// Values implements Row.
func (r CutlistRow) Values() []string {
	return []string{
		string(r.ModuleID),
		string(r.Component),
		formatMM(r.WidthMM),
		formatMM(r.DepthMM),
		formatMM(r.ThicknessMM),
		strconv.Itoa(r.Quantity),
	}
}

// Cutlist emits, per placement in design order, a pair of cabinet side
// panels (width by height) and, for modules that carry a worktop, one top
// panel (width by depth).
func Cutlist(design model.Design) ([]CutlistRow, error) {
	var rows []CutlistRow
	for _, p := range design.Placements() {
		spec, err := model.LookupModule(p.ModuleID)
		if err != nil {
			return nil, err
		}
		rows = append(rows, CutlistRow{
			ModuleID:    spec.ID,
			Component:   ComponentCabinet,
			WidthMM:     spec.Width,
			DepthMM:     spec.Height,
			ThicknessMM: PanelThicknessMM,
			Quantity:    2,
		})
		if spec.Category.HasWorktop() {
			rows = append(rows, CutlistRow{
				ModuleID:    spec.ID,
				Component:   ComponentTop,
				WidthMM:     spec.Width,
				DepthMM:     spec.Depth,
				ThicknessMM: PanelThicknessMM,
				Quantity:    1,
			})
		}
	}
	return rows, nil
}

// CutlistSummary totals a cutlist per component.
type CutlistSummary struct {
	CabinetPanels int     `json:"cabinetPanels"`
	TopPanels     int     `json:"topPanels"`
	AreaM2        float64 `json:"areaM2"`
}

// SummarizeCutlist counts panels and their combined face area in square metres.
func SummarizeCutlist(rows []CutlistRow) CutlistSummary {
	var s CutlistSummary
	for _, r := range rows {
		switch r.Component {
		case ComponentCabinet:
			s.CabinetPanels += r.Quantity
		case ComponentTop:
			s.TopPanels += r.Quantity
		}
		s.AreaM2 += float64(r.Quantity) * r.WidthMM * r.DepthMM / 1e6
	}
	return s
}
