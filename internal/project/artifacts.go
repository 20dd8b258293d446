package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/piwi3910/CabinetPlan/internal/engine"
	"github.com/piwi3910/CabinetPlan/internal/export"
	"github.com/piwi3910/CabinetPlan/internal/model"
)

// Artifact file names inside a variant directory.
const (
	DesignFile   = "design.json"
	PlanFile     = "plan.svg"
	ModelFile    = "model.obj"
	BOMFile      = "bom.csv"
	CutlistFile  = "cutlist.csv"
	QuoteFile    = "quote.pdf"
	LabelsFile   = "labels.pdf"
	WorkbookFile = "bom.xlsx"
	DXFFile      = "plan.dxf"
)

// ArtifactPaths lists the files written for one design. The optional
// exports are empty unless requested.
type ArtifactPaths struct {
	Root       string `json:"root"`
	DesignJSON string `json:"designJson"`
	PlanSVG    string `json:"planSvg"`
	ModelOBJ   string `json:"modelObj"`
	BOMCSV     string `json:"bomCsv"`
	CutCSV     string `json:"cutCsv"`
	QuotePDF   string `json:"quotePdf,omitempty"`
	LabelsPDF  string `json:"labelsPdf,omitempty"`
	Workbook   string `json:"bomXlsx,omitempty"`
	PlanDXF    string `json:"planDxf,omitempty"`
}

// ArtifactOptions controls WriteArtifacts.
type ArtifactOptions struct {
	PlanScale   float64
	DepositRate float64
	Extras      []string // any of model.ExportQuotePDF, ExportLabelsPDF, ExportWorkbook, ExportDXF
}

// ArtifactOptionsFromConfig takes the plan scale, deposit rate and extra
// exports from config.
func ArtifactOptionsFromConfig(config model.AppConfig) ArtifactOptions {
	return ArtifactOptions{
		PlanScale:   config.PlanScale,
		DepositRate: config.DepositRate,
		Extras:      config.ExtraExports,
	}
}

func (o ArtifactOptions) wants(kind string) bool {
	for _, k := range o.Extras {
		if k == kind {
			return true
		}
	}
	return false
}

// WriteArtifacts creates dir and writes the design, its SVG plan, OBJ mesh,
// BOM and cutlist into it, plus any requested extra exports.
func WriteArtifacts(dir string, design model.Design, opts ArtifactOptions) (ArtifactPaths, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return ArtifactPaths{}, fmt.Errorf("failed to create artifact directory: %w", err)
	}

	paths := ArtifactPaths{
		Root:       dir,
		DesignJSON: filepath.Join(dir, DesignFile),
		PlanSVG:    filepath.Join(dir, PlanFile),
		ModelOBJ:   filepath.Join(dir, ModelFile),
		BOMCSV:     filepath.Join(dir, BOMFile),
		CutCSV:     filepath.Join(dir, CutlistFile),
	}

	data, err := json.MarshalIndent(design, "", "  ")
	if err != nil {
		return ArtifactPaths{}, fmt.Errorf("failed to encode design: %w", err)
	}
	if err := os.WriteFile(paths.DesignJSON, data, 0644); err != nil {
		return ArtifactPaths{}, fmt.Errorf("failed to write %s: %w", DesignFile, err)
	}

	plan, err := export.SVGPlan(design, opts.PlanScale)
	if err != nil {
		return ArtifactPaths{}, err
	}
	if err := os.WriteFile(paths.PlanSVG, []byte(plan), 0644); err != nil {
		return ArtifactPaths{}, fmt.Errorf("failed to write %s: %w", PlanFile, err)
	}

	obj, err := export.OBJ(design)
	if err != nil {
		return ArtifactPaths{}, err
	}
	if err := os.WriteFile(paths.ModelOBJ, []byte(obj), 0644); err != nil {
		return ArtifactPaths{}, fmt.Errorf("failed to write %s: %w", ModelFile, err)
	}

	bom, err := export.BOM(design)
	if err != nil {
		return ArtifactPaths{}, err
	}
	if err := os.WriteFile(paths.BOMCSV, []byte(export.ToCSV(bom)), 0644); err != nil {
		return ArtifactPaths{}, fmt.Errorf("failed to write %s: %w", BOMFile, err)
	}

	cuts, err := export.Cutlist(design)
	if err != nil {
		return ArtifactPaths{}, err
	}
	if err := os.WriteFile(paths.CutCSV, []byte(export.ToCSV(cuts)), 0644); err != nil {
		return ArtifactPaths{}, fmt.Errorf("failed to write %s: %w", CutlistFile, err)
	}

	if err := writeExtras(dir, design, opts, &paths); err != nil {
		return ArtifactPaths{}, err
	}
	return paths, nil
}

func writeExtras(dir string, design model.Design, opts ArtifactOptions, paths *ArtifactPaths) error {
	if opts.wants(model.ExportQuotePDF) {
		rate := opts.DepositRate
		if rate == 0 {
			rate = engine.DefaultDepositRate
		}
		q, err := export.BuildQuote(design, rate)
		if err != nil {
			return err
		}
		p := filepath.Join(dir, QuoteFile)
		if err := export.ExportQuotePDF(p, q); err != nil {
			return fmt.Errorf("failed to write %s: %w", QuoteFile, err)
		}
		paths.QuotePDF = p
	}
	if opts.wants(model.ExportLabelsPDF) {
		p := filepath.Join(dir, LabelsFile)
		if err := export.ExportLabels(p, design); err != nil {
			return fmt.Errorf("failed to write %s: %w", LabelsFile, err)
		}
		paths.LabelsPDF = p
	}
	if opts.wants(model.ExportWorkbook) {
		p := filepath.Join(dir, WorkbookFile)
		if err := export.ExportWorkbook(p, design); err != nil {
			return fmt.Errorf("failed to write %s: %w", WorkbookFile, err)
		}
		paths.Workbook = p
	}
	if opts.wants(model.ExportDXF) {
		p := filepath.Join(dir, DXFFile)
		if err := export.ExportDXF(p, design); err != nil {
			return fmt.Errorf("failed to write %s: %w", DXFFile, err)
		}
		paths.PlanDXF = p
	}
	return nil
}

// LoadDesign reads a design.json written by WriteArtifacts.
func LoadDesign(path string) (model.Design, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Design{}, fmt.Errorf("failed to read design: %w", err)
	}
	var design model.Design
	if err := json.Unmarshal(data, &design); err != nil {
		return model.Design{}, fmt.Errorf("failed to parse design: %w", err)
	}
	return design, nil
}
