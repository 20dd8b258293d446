package model

import (
	"github.com/go-playground/validator/v10"
)

// configValidate checks AppConfig struct tags.
var configValidate = validator.New()

// Extra artifact kinds a generation run may write next to the core five.
const (
	ExportQuotePDF  = "pdf"
	ExportLabelsPDF = "labels"
	ExportWorkbook  = "xlsx"
	ExportDXF       = "dxf"
)

var defaultBudgetMultipliers = [...]float64{1.00, 0.92, 1.08, 0.98}

// DefaultBudgetMultipliers returns the factors that spread variant targets
// around the center price. Each call returns a fresh copy.
func DefaultBudgetMultipliers() []float64 {
	return append([]float64(nil), defaultBudgetMultipliers[:]...)
}

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	DefaultDoor       string    `json:"default_door" toml:"default_door" validate:"required"`
	DefaultTop        string    `json:"default_top" toml:"default_top" validate:"required"`
	VariantsPerLayout int       `json:"variants_per_layout" toml:"variants_per_layout" validate:"min=1,max=4"`
	BudgetMultipliers []float64 `json:"budget_multipliers" toml:"budget_multipliers" validate:"min=1,max=4,dive,gt=0"`
	PlanScale         float64   `json:"plan_scale" toml:"plan_scale" validate:"gt=0"` // px per mm for plan.svg
	ArtifactRoot      string    `json:"artifact_root" toml:"artifact_root" validate:"required"`
	DepositRate       float64   `json:"deposit_rate" toml:"deposit_rate" validate:"gte=0,lte=1"`
	HistoryPath       string    `json:"history_path" toml:"history_path"` // empty disables run history
	Concurrency       int       `json:"concurrency" toml:"concurrency" validate:"min=1,max=16"`
	ExtraExports      []string  `json:"extra_exports" toml:"extra_exports" validate:"dive,oneof=pdf labels xlsx dxf"`
	RecentRuns        []string  `json:"recent_runs" toml:"recent_runs"`
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		DefaultDoor:       DefaultDoorToken,
		DefaultTop:        DefaultTopToken,
		VariantsPerLayout: 4,
		BudgetMultipliers: DefaultBudgetMultipliers(),
		PlanScale:         0.12,
		ArtifactRoot:      "artifacts/worktrees",
		DepositRate:       0.2,
		Concurrency:       4,
		ExtraExports:      []string{},
		RecentRuns:        []string{},
	}
}

// Validate checks field ranges and that the default finishes exist.
func (c AppConfig) Validate() error {
	if err := configValidate.Struct(c); err != nil {
		return WrapError(ErrCodeInvalidInput, err, "invalid configuration")
	}
	if _, err := LookupDoor(c.DefaultDoor); err != nil {
		return err
	}
	if _, err := LookupTop(c.DefaultTop); err != nil {
		return err
	}
	return nil
}

// WantsExport reports whether kind is listed in ExtraExports.
func (c AppConfig) WantsExport(kind string) bool {
	for _, k := range c.ExtraExports {
		if k == kind {
			return true
		}
	}
	return false
}

// RememberRun records a run id at the front of RecentRuns, keeping at most ten.
func (c *AppConfig) RememberRun(runID string) {
	runs := []string{runID}
	for _, r := range c.RecentRuns {
		if r != runID {
			runs = append(runs, r)
		}
	}
	if len(runs) > 10 {
		runs = runs[:10]
	}
	c.RecentRuns = runs
}
