package export

import (
	"fmt"

	"github.com/piwi3910/CabinetPlan/internal/model"
	"github.com/xuri/excelize/v2"
)

// Workbook sheet names.
const (
	SheetBOM        = "BOM"
	SheetCutlist    = "Cutlist"
	SheetOperations = "Operations"
)

// ExportWorkbook writes an xlsx workbook with the BOM, the cutlist and the
// optimizer log on separate sheets. Numeric columns are written as numbers.
func ExportWorkbook(path string, design model.Design) error {
	bom, err := BOM(design)
	if err != nil {
		return err
	}
	cuts, err := Cutlist(design)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetBOM); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6E6E6"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	bomRows := make([][]any, 0, len(bom)+1)
	for _, r := range bom {
		bomRows = append(bomRows, []any{
			string(r.ModuleID), r.Label, r.Quantity, r.WidthMM, r.DepthMM, r.HeightMM,
			r.UnitCostUSD, r.ExtendedCostUSD, r.DoorFinish, r.TopFinish,
		})
	}
	bomRows = append(bomRows, []any{"", "Total", "", "", "", "", "", BOMTotal(bom)})
	if err := writeSheet(f, SheetBOM, bomColumns, bomRows, header); err != nil {
		return err
	}

	cutRows := make([][]any, 0, len(cuts))
	for _, r := range cuts {
		cutRows = append(cutRows, []any{
			string(r.ModuleID), string(r.Component), r.WidthMM, r.DepthMM, r.ThicknessMM, r.Quantity,
		})
	}
	if _, err := f.NewSheet(SheetCutlist); err != nil {
		return fmt.Errorf("failed to add sheet %s: %w", SheetCutlist, err)
	}
	if err := writeSheet(f, SheetCutlist, cutlistColumns, cutRows, header); err != nil {
		return err
	}

	opRows := make([][]any, 0, len(design.Operations))
	for i, op := range design.Operations {
		opRows = append(opRows, []any{i + 1, op.OperationType(), string(model.OperationReason(op)), model.DescribeOperation(op)})
	}
	if _, err := f.NewSheet(SheetOperations); err != nil {
		return fmt.Errorf("failed to add sheet %s: %w", SheetOperations, err)
	}
	if err := writeSheet(f, SheetOperations, []string{"step", "type", "reason", "description"}, opRows, header); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, columns []string, rows [][]any, headerStyle int) error {
	head := make([]any, len(columns))
	for i, c := range columns {
		head[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &head); err != nil {
		return fmt.Errorf("failed to write %s header: %w", sheet, err)
	}
	last, err := excelize.CoordinatesToCellName(len(columns), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("failed to style %s header: %w", sheet, err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
