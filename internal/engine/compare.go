package engine

import (
	"fmt"
	"strings"

	"github.com/piwi3910/CabinetPlan/internal/model"
)

// ComparisonScenario defines a named finish and budget combination to compare.
type ComparisonScenario struct {
	Name      string `json:"name"`
	Door      string `json:"door"`
	Top       string `json:"top"`
	BudgetUSD int    `json:"budgetUSD"` // 0 keeps the built design as-is
}

// ComparisonResult holds the optimized design and computed statistics for a
// single scenario.
type ComparisonResult struct {
	Scenario     ComparisonScenario `json:"scenario"`
	Result       Result             `json:"-"`
	BasePriceUSD int                `json:"basePriceUSD"`
	PriceUSD     int                `json:"priceUSD"`
	DeltaUSD     int                `json:"deltaUSD"` // price minus budget; 0 when no budget
	OpsCount     int                `json:"opsCount"`
	Modules      int                `json:"modules"`
}

// CompareScenarios builds layoutID once per scenario, optimizes toward its
// budget, and returns the results in scenario order. This enables
// side-by-side comparison of finish and budget what-ifs for one layout.
func CompareScenarios(builder *Builder, layoutID string, scenarios []ComparisonScenario) ([]ComparisonResult, error) {
	results := make([]ComparisonResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		design, err := builder.Build(layoutID, scenario.Door, scenario.Top)
		if err != nil {
			return nil, fmt.Errorf("scenario %q: %w", scenario.Name, err)
		}

		result := Result{Final: design, Ops: []model.Operation{}}
		if scenario.BudgetUSD > 0 && scenario.BudgetUSD != design.Metadata.BasePriceUSD {
			result, err = OptimizeToBudget(design, float64(scenario.BudgetUSD))
			if err != nil {
				return nil, fmt.Errorf("scenario %q: %w", scenario.Name, err)
			}
		}

		price := result.Final.Metadata.CurrentPriceUSD
		delta := 0
		if scenario.BudgetUSD > 0 {
			delta = price - scenario.BudgetUSD
		}

		results = append(results, ComparisonResult{
			Scenario:     scenario,
			Result:       result,
			BasePriceUSD: design.Metadata.BasePriceUSD,
			PriceUSD:     price,
			DeltaUSD:     delta,
			OpsCount:     len(result.Ops),
			Modules:      result.Final.PlacementCount(),
		})
	}

	return results, nil
}

// BuildDefaultScenarios generates a set of comparison scenarios around the
// given selection, varying finishes and budget to show what-if alternatives.
func BuildDefaultScenarios(door, top string, budget int) []ComparisonScenario {
	door = resolveToken(door, model.DefaultDoorToken)
	top = resolveToken(top, model.DefaultTopToken)

	scenarios := []ComparisonScenario{
		{
			Name:      "Current Selection",
			Door:      door,
			Top:       top,
			BudgetUSD: budget,
		},
	}

	// Scenario: cheapest finishes at the same budget
	cheapDoor := model.CheapestFinish(model.FinishDoor).Token
	cheapTop := model.CheapestFinish(model.FinishTop).Token
	if cheapDoor != door || cheapTop != top {
		scenarios = append(scenarios, ComparisonScenario{
			Name:      "Value Finishes",
			Door:      cheapDoor,
			Top:       cheapTop,
			BudgetUSD: budget,
		})
	}

	// Scenario: most premium finishes at the same budget
	premiumDoor := model.PremiumFinish(model.FinishDoor).Token
	premiumTop := model.PremiumFinish(model.FinishTop).Token
	if premiumDoor != door || premiumTop != top {
		scenarios = append(scenarios, ComparisonScenario{
			Name:      "Premium Finishes",
			Door:      premiumDoor,
			Top:       premiumTop,
			BudgetUSD: budget,
		})
	}

	// Scenario: budget spread around the requested target
	if budget > 0 {
		for _, f := range model.DefaultBudgetMultipliers()[1:3] {
			scenarios = append(scenarios, ComparisonScenario{
				Name:      fmt.Sprintf("Budget x%.2f", f),
				Door:      door,
				Top:       top,
				BudgetUSD: int(float64(budget)*f + 0.5),
			})
		}
	}

	// Scenario: strip every lever to find the floor price
	scenarios = append(scenarios, ComparisonScenario{
		Name:      "Floor Price",
		Door:      door,
		Top:       top,
		BudgetUSD: 1,
	})

	return scenarios
}

// resolveToken uppercases a finish token and maps empty to fallback, the
// builder's default for that slot.
func resolveToken(token, fallback string) string {
	token = strings.ToUpper(strings.TrimSpace(token))
	if token == "" {
		return fallback
	}
	return token
}
