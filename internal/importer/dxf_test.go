package importer

import (
	"path/filepath"
	"testing"

	"github.com/piwi3910/CabinetPlan/internal/engine"
	"github.com/piwi3910/CabinetPlan/internal/export"
	"github.com/piwi3910/CabinetPlan/internal/model"
)

func TestImportDXF_ExportedPlan(t *testing.T) {
	design, err := engine.BuildDesign("BACK_KITCHEN", "DFKW", "CDZM")
	if err != nil {
		t.Fatalf("BuildDesign returned error: %v", err)
	}
	path := filepath.Join(t.TempDir(), "plan.dxf")
	if err := export.ExportDXF(path, design); err != nil {
		t.Fatalf("ExportDXF returned error: %v", err)
	}

	result := ImportDXF(path)
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if result.Quantity() != 14 {
		t.Errorf("expected 14 modules, got %d", result.Quantity())
	}
	if result.Lines[0].ModuleID != model.ModuleFridgeColumn {
		t.Errorf("expected first line CAFI, got %s", result.Lines[0].ModuleID)
	}
	// the title is the only non-module text
	if len(result.Warnings) != 1 {
		t.Errorf("expected 1 warning, got %v", result.Warnings)
	}

	pricing, err := engine.CalculatePricing(result.ModuleIDs(), design.Door, design.Top, engine.DefaultDepositRate)
	if err != nil {
		t.Fatalf("CalculatePricing returned error: %v", err)
	}
	if pricing.TotalUSD != design.Metadata.CurrentPriceUSD {
		t.Errorf("expected total %d, got %d", design.Metadata.CurrentPriceUSD, pricing.TotalUSD)
	}
}

func TestImportDXF_FileNotFound(t *testing.T) {
	if result := ImportDXF("/nonexistent/plan.dxf"); len(result.Errors) == 0 {
		t.Error("expected error for nonexistent file")
	}
}
