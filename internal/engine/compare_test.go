package engine

import (
	"testing"

	"github.com/piwi3910/CabinetPlan/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDefaultScenarios(t *testing.T) {
	scenarios := BuildDefaultScenarios("DFKW", "CDZM", 20000)

	var names []string
	for _, s := range scenarios {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{
		"Current Selection",
		"Value Finishes",
		"Premium Finishes",
		"Budget x0.92",
		"Budget x1.08",
		"Floor Price",
	}, names)

	assert.Equal(t, "DFIB", scenarios[1].Door)
	assert.Equal(t, "CDSM", scenarios[1].Top)
	assert.Equal(t, "DFHS", scenarios[2].Door)
	assert.Equal(t, "CMCA", scenarios[2].Top)
	assert.Equal(t, 18400, scenarios[3].BudgetUSD)
	assert.Equal(t, 21600, scenarios[4].BudgetUSD)
	assert.Equal(t, 1, scenarios[5].BudgetUSD)
}

func TestBuildDefaultScenarios_NoBudgetSkipsSpread(t *testing.T) {
	scenarios := BuildDefaultScenarios("DFIB", "CDSM", 0)

	var names []string
	for _, s := range scenarios {
		names = append(names, s.Name)
	}
	// current finishes are already the cheapest pair
	assert.Equal(t, []string{"Current Selection", "Premium Finishes", "Floor Price"}, names)
}

func TestBuildDefaultScenarios_ResolvesDefaultFinishes(t *testing.T) {
	scenarios := BuildDefaultScenarios("", "", 0)
	assert.Equal(t, BuildDefaultScenarios(model.DefaultDoorToken, model.DefaultTopToken, 0), scenarios)
	assert.Equal(t, model.DefaultDoorToken, scenarios[0].Door)
	assert.Equal(t, model.DefaultTopToken, scenarios[0].Top)

	// lowercase cheapest pair still counts as the cheapest pair
	var names []string
	for _, s := range BuildDefaultScenarios("dfib", " cdsm", 0) {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"Current Selection", "Premium Finishes", "Floor Price"}, names)
}

func TestCompareScenarios(t *testing.T) {
	scenarios := []ComparisonScenario{
		{Name: "As built", Door: "DFKW", Top: "CDZM"},
		{Name: "Stretch", Door: "DFKW", Top: "CDZM", BudgetUSD: 20000},
		{Name: "Floor", Door: "DFKW", Top: "CDZM", BudgetUSD: 1},
		{Name: "Exact", Door: "DFKW", Top: "CDZM", BudgetUSD: 15840},
	}

	results, err := CompareScenarios(fixedBuilder(), "TWO_X_KITCHEN", scenarios)
	require.NoError(t, err)
	require.Len(t, results, 4)

	assert.Equal(t, "As built", results[0].Scenario.Name)
	assert.Equal(t, 15840, results[0].PriceUSD)
	assert.Equal(t, 0, results[0].DeltaUSD)
	assert.Equal(t, 0, results[0].OpsCount)
	assert.Equal(t, 14, results[0].Modules)

	assert.Equal(t, 21120, results[1].PriceUSD)
	assert.Equal(t, 1120, results[1].DeltaUSD)
	assert.Equal(t, 6, results[1].OpsCount)
	assert.Equal(t, 18, results[1].Modules)

	assert.Equal(t, 9790, results[2].PriceUSD)
	assert.Equal(t, 7, results[2].OpsCount)
	assert.Equal(t, 9, results[2].Modules)

	assert.Equal(t, 0, results[3].OpsCount)
	assert.Equal(t, 0, results[3].DeltaUSD)

	for _, r := range results {
		assert.Equal(t, 15840, r.BasePriceUSD)
		assert.Equal(t, model.LayoutBackKitchen, r.Result.Final.Layout)
		require.NoError(t, AssertInvariants(r.Result.Final))
	}
}

func TestCompareScenarios_Errors(t *testing.T) {
	_, err := CompareScenarios(fixedBuilder(), "NOWHERE", []ComparisonScenario{{Name: "x"}})
	require.Error(t, err)
	assert.True(t, model.IsCode(err, model.ErrCodeUnknownLayout))

	_, err = CompareScenarios(fixedBuilder(), "DUAL_ISLAND", []ComparisonScenario{{Name: "bad door", Door: "OAK"}})
	require.Error(t, err)
	assert.True(t, model.IsCode(err, model.ErrCodeUnknownFinish))
	assert.Contains(t, err.Error(), `scenario "bad door"`)
}
