package project

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/piwi3910/CabinetPlan/internal/engine"
	"github.com/piwi3910/CabinetPlan/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteArtifacts_CoreFiles(t *testing.T) {
	design, err := engine.BuildDesign("BACK_KITCHEN", "DFKW", "CDZM")
	require.NoError(t, err)
	result, err := engine.OptimizeToBudget(design, 1)
	require.NoError(t, err)

	dir := filepath.Join(t.TempDir(), "BACK_KITCHEN", "TWO_X_KITCHEN-run-v1-abcdef")
	paths, err := WriteArtifacts(dir, result.Final, ArtifactOptionsFromConfig(model.DefaultAppConfig()))
	require.NoError(t, err)

	assert.Equal(t, dir, paths.Root)
	for _, p := range []string{paths.DesignJSON, paths.PlanSVG, paths.ModelOBJ, paths.BOMCSV, paths.CutCSV} {
		info, err := os.Stat(p)
		require.NoError(t, err, p)
		assert.Greater(t, info.Size(), int64(0), p)
		assert.Equal(t, dir, filepath.Dir(p))
	}
	assert.Empty(t, paths.QuotePDF)
	assert.Empty(t, paths.LabelsPDF)
	assert.Empty(t, paths.Workbook)
	assert.Empty(t, paths.PlanDXF)

	bom, err := os.ReadFile(paths.BOMCSV)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(bom), "moduleId,label,quantity"))

	loaded, err := LoadDesign(paths.DesignJSON)
	require.NoError(t, err)
	assert.True(t, engine.DeterministicEqual(result.Final, loaded))
	assert.Len(t, loaded.Operations, len(result.Final.Operations))
	require.NoError(t, engine.AssertInvariants(loaded))
}

func TestWriteArtifacts_Extras(t *testing.T) {
	design, err := engine.BuildDesign("DUAL_ISLAND", "DFHS", "CMCA")
	require.NoError(t, err)

	opts := ArtifactOptions{
		PlanScale: 0.12,
		Extras:    []string{model.ExportQuotePDF, model.ExportLabelsPDF, model.ExportWorkbook, model.ExportDXF},
	}
	paths, err := WriteArtifacts(t.TempDir(), design, opts)
	require.NoError(t, err)

	for _, p := range []string{paths.QuotePDF, paths.LabelsPDF, paths.Workbook, paths.PlanDXF} {
		require.NotEmpty(t, p)
		_, err := os.Stat(p)
		require.NoError(t, err, p)
	}
}

func TestWriteArtifacts_UnknownFinish(t *testing.T) {
	design, err := engine.BuildDesign("DUAL_ISLAND", "DFHS", "CMCA")
	require.NoError(t, err)
	design.Top = "NOPE"

	_, err = WriteArtifacts(t.TempDir(), design, ArtifactOptions{})
	require.Error(t, err)
	assert.True(t, model.IsCode(err, model.ErrCodeUnknownFinish))
}

func TestLoadDesign_Missing(t *testing.T) {
	_, err := LoadDesign(filepath.Join(t.TempDir(), "design.json"))
	assert.Error(t, err)
}
