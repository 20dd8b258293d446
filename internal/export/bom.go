// Package export turns designs into files for the shop floor and the
// customer: BOM and cutlist tables, CSV, an SVG plan, an OBJ mesh, a quote
// PDF, QR-coded placement labels, an xlsx workbook and a DXF plan.
package export

import (
	"strconv"

	"github.com/piwi3910/CabinetPlan/internal/model"
)

// BOMRow is one line of the bill of materials: every placement of a module
// collapsed into a quantity.
type BOMRow struct {
	ModuleID        model.ModuleID `json:"moduleId"`
	Label           string         `json:"label"`
	Quantity        int            `json:"quantity"`
	WidthMM         float64        `json:"width_mm"`
	DepthMM         float64        `json:"depth_mm"`
	HeightMM        float64        `json:"height_mm"`
	UnitCostUSD     int            `json:"unit_cost_usd"`
	ExtendedCostUSD int            `json:"extended_cost_usd"`
	DoorFinish      string         `json:"door_finish"`
	TopFinish       string         `json:"top_finish"`
}

var bomColumns = []string{
	"moduleId", "label", "quantity", "width_mm", "depth_mm", "height_mm",
	"unit_cost_usd", "extended_cost_usd", "door_finish", "top_finish",
}

// Columns implements Row.
func (BOMRow) Columns() []string { return bomColumns }

// Values implements Row.
func (r BOMRow) Values() []string {
	return []string{
		string(r.ModuleID),
		r.Label,
		strconv.Itoa(r.Quantity),
		formatMM(r.WidthMM),
		formatMM(r.DepthMM),
		formatMM(r.HeightMM),
		strconv.Itoa(r.UnitCostUSD),
		strconv.Itoa(r.ExtendedCostUSD),
		r.DoorFinish,
		r.TopFinish,
	}
}

// BOM groups placements by module id. Rows appear in the order each module
// is first met walking rooms then placements.
func BOM(design model.Design) ([]BOMRow, error) {
	var rows []BOMRow
	index := make(map[model.ModuleID]int)

	for _, p := range design.Placements() {
		spec, err := model.LookupModule(p.ModuleID)
		if err != nil {
			return nil, err
		}
		if i, ok := index[spec.ID]; ok {
			rows[i].Quantity++
			rows[i].ExtendedCostUSD = rows[i].Quantity * spec.BaseCostUSD
			continue
		}
		index[spec.ID] = len(rows)
		rows = append(rows, BOMRow{
			ModuleID:        spec.ID,
			Label:           spec.Label,
			Quantity:        1,
			WidthMM:         spec.Width,
			DepthMM:         spec.Depth,
			HeightMM:        spec.Height,
			UnitCostUSD:     spec.BaseCostUSD,
			ExtendedCostUSD: spec.BaseCostUSD,
			DoorFinish:      design.Door,
			TopFinish:       design.Top,
		})
	}
	return rows, nil
}

// BOMTotal sums the extended cost column. Finish multipliers are not applied.
func BOMTotal(rows []BOMRow) int {
	total := 0
	for _, r := range rows {
		total += r.ExtendedCostUSD
	}
	return total
}

func formatMM(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
