package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModuleCatalog_GeometryPositiveAndUnique(t *testing.T) {
	seen := map[ModuleID]bool{}
	for _, spec := range Modules() {
		assert.False(t, seen[spec.ID], "duplicate module %s", spec.ID)
		seen[spec.ID] = true
		assert.Positive(t, spec.Width, spec.ID)
		assert.Positive(t, spec.Depth, spec.ID)
		assert.Positive(t, spec.Height, spec.ID)
		assert.Positive(t, spec.BaseCostUSD, spec.ID)
	}
	assert.Len(t, seen, 13)
}

func TestLookupModule(t *testing.T) {
	spec, err := LookupModule(ModuleDoublePantry)
	require.NoError(t, err)
	assert.Equal(t, 1256.0, spec.Width)
	assert.Equal(t, 1800, spec.BaseCostUSD)
	assert.Equal(t, CategoryColumn, spec.Category)

	_, err = LookupModule("XXXX")
	require.Error(t, err)
	assert.True(t, IsCode(err, ErrCodeUnknownModule))
	assert.Contains(t, err.Error(), "XXXX")
	assert.Contains(t, err.Error(), "module")
}

func TestModulesReturnsCopy(t *testing.T) {
	list := Modules()
	list[0].BaseCostUSD = 1

	spec, err := LookupModule(list[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 1200, spec.BaseCostUSD)
}

func TestCategoryHasWorktop(t *testing.T) {
	assert.True(t, CategoryBase.HasWorktop())
	assert.True(t, CategorySnack.HasWorktop())
	assert.False(t, CategoryColumn.HasWorktop())
	assert.False(t, CategoryUpper.HasWorktop())
}

func TestMaterialCatalog_Lookup(t *testing.T) {
	door, err := LookupDoor("DFHS")
	require.NoError(t, err)
	assert.Equal(t, "Fenix Hamilton Steel", door.Label)
	assert.Equal(t, 1.2, door.Multiplier)
	assert.Equal(t, "/materials/doors/Fenix-Hamilton-Steel.webp", door.Img)
	assert.Nil(t, door.RepeatUV)

	top, err := LookupTop("CMCA")
	require.NoError(t, err)
	assert.Equal(t, 1.6, top.Multiplier)
	require.NotNil(t, top.RepeatUV)
	assert.Equal(t, [2]float64{0.5, 0.5}, *top.RepeatUV)

	_, err = LookupDoor("CMCA")
	require.Error(t, err)
	assert.True(t, IsCode(err, ErrCodeUnknownFinish))
	assert.Contains(t, err.Error(), "door")

	_, err = LookupFinish(FinishTop, "DFKW")
	assert.True(t, IsCode(err, ErrCodeUnknownFinish))
}

func TestMaterialMultipliersPositive(t *testing.T) {
	for _, kind := range []FinishKind{FinishDoor, FinishTop} {
		for _, m := range Materials(kind) {
			assert.Greater(t, m.Multiplier, 0.0, m.Token)
		}
	}
}

func TestExtremeFinishes_FirstInCatalogOrderWins(t *testing.T) {
	// Three doors share the 1.0 multiplier and two tops share 1.1.
	assert.Equal(t, "DFIB", CheapestFinish(FinishDoor).Token)
	assert.Equal(t, "DFHS", PremiumFinish(FinishDoor).Token)
	assert.Equal(t, "CDSM", CheapestFinish(FinishTop).Token)
	assert.Equal(t, "CMCA", PremiumFinish(FinishTop).Token)
}

func TestMaterialTokensOrder(t *testing.T) {
	assert.Equal(t, []string{"DFIB", "DFKW", "DFLG", "DFHS"}, MaterialTokens(FinishDoor))
	assert.Equal(t, []string{"CDSM", "CDZM", "CMSW", "CMCA"}, MaterialTokens(FinishTop))
}

func TestManifestLookupIgnoresCase(t *testing.T) {
	door, err := DoorByManifestID("fenix-kos-white")
	require.NoError(t, err)
	assert.Equal(t, "DFKW", door.Token)

	top, err := TopByManifestID("MARBLE-SUPER-WHITE")
	require.NoError(t, err)
	assert.Equal(t, "CMSW", top.Token)

	_, err = TopByManifestID("Fenix-Kos-White")
	assert.True(t, IsCode(err, ErrCodeUnknownFinish))
}
