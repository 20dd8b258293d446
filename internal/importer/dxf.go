package importer

import (
	"fmt"
	"strings"

	"github.com/piwi3910/CabinetPlan/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"
)

// ImportDXF imports a module list from a DXF plan. Every TEXT entity whose
// value is a catalog module id counts as one placement; lines follow the
// order each module is first met. Other text is reported as a warning and
// geometry is ignored.
func ImportDXF(path string) ImportResult {
	result := ImportResult{}

	drawing, err := dxf.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open DXF file: %v", err))
		return result
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		result.Errors = append(result.Errors, "DXF file contains no entities")
		return result
	}

	counts := make(map[model.ModuleID]int)
	var order []model.ModuleID
	for _, ent := range entities {
		text, ok := ent.(*entity.Text)
		if !ok {
			continue
		}
		id, ok := ParseModuleID(text.Value)
		if !ok {
			if v := strings.TrimSpace(text.Value); v != "" {
				result.Warnings = append(result.Warnings, fmt.Sprintf("Skipped text '%s'", v))
			}
			continue
		}
		if counts[id] == 0 {
			order = append(order, id)
		}
		counts[id]++
	}

	if len(order) == 0 {
		result.Errors = append(result.Errors, "No module labels found in DXF file")
		return result
	}
	for _, id := range order {
		result.Lines = append(result.Lines, Line{ModuleID: id, Quantity: counts[id]})
	}
	return result
}
