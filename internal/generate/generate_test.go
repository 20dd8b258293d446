package generate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/piwi3910/CabinetPlan/internal/engine"
	"github.com/piwi3910/CabinetPlan/internal/model"
	"github.com/piwi3910/CabinetPlan/internal/project"
	"github.com/piwi3910/CabinetPlan/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGenerator(t *testing.T) *Generator {
	t.Helper()
	cfg := model.DefaultAppConfig()
	cfg.ArtifactRoot = filepath.Join(t.TempDir(), "worktrees")

	var n atomic.Int64
	return &Generator{
		Builder:          &engine.Builder{Now: func() time.Time { return time.Date(2026, 3, 14, 8, 30, 0, 0, time.UTC) }},
		Config:           cfg,
		Logger:           log.New(io.Discard),
		NewRunID:         func() string { return "run00001" },
		NewVariantSuffix: func() string { return fmt.Sprintf("s%05d", n.Add(1)) },
	}
}

func describeOps(ops model.Operations) []string {
	out := make([]string, len(ops))
	for i, op := range ops {
		out[i] = model.DescribeOperation(op)
	}
	return out
}

func TestTargets(t *testing.T) {
	assert.Equal(t, []int{15840, 14573, 17107, 15523}, Targets(15840, model.DefaultBudgetMultipliers(), 4))
	assert.Equal(t, []int{20000, 18400}, Targets(20000, model.DefaultBudgetMultipliers(), 2))
	assert.Equal(t, []int{1000, 920}, Targets(1000, []float64{1, 0.92}, 4))
	assert.Empty(t, Targets(1000, model.DefaultBudgetMultipliers(), 0))
}

func TestResolveLayouts(t *testing.T) {
	all, err := ResolveLayouts(nil)
	require.NoError(t, err)
	assert.Equal(t, model.LayoutIDs(), all)

	got, err := ResolveLayouts([]string{"LINEAR", "disappearing-linear", "TWO_X_KITCHEN", "back kitchen"})
	require.NoError(t, err)
	assert.Equal(t, []model.LayoutID{model.LayoutDisappearingLinear, model.LayoutBackKitchen}, got)

	_, err = ResolveLayouts([]string{"BACK_KITCHEN", "GALLEY"})
	assert.True(t, model.IsCode(err, model.ErrCodeUnknownLayout))
}

func TestGenerate_BaselineCenter(t *testing.T) {
	g := testGenerator(t)

	out, err := g.Generate(context.Background(), Request{Layouts: []string{"TWO_X_KITCHEN"}})
	require.NoError(t, err)

	assert.Equal(t, "run00001", out.RunID)
	assert.Equal(t, []model.LayoutID{model.LayoutBackKitchen}, out.Layouts)
	variants := out.Results[model.LayoutBackKitchen]
	require.Len(t, variants, 4)

	for i, v := range variants {
		assert.Equal(t, fmt.Sprintf("TWO_X_KITCHEN-run00001-v%d-s%05d", i+1, i+1), v.VariantID)
		assert.Equal(t, model.LegacyTwoXKitchen, v.Layout)
		assert.Equal(t, model.LayoutBackKitchen, v.LayoutCanonical)
		assert.Equal(t, len(v.Operations), v.OpsCount)
		assert.Equal(t, v.PriceUSD, v.Design.Metadata.CurrentPriceUSD)
		require.NoError(t, engine.AssertInvariants(v.Design))
		assert.Equal(t, filepath.Join(g.Config.ArtifactRoot, "BACK_KITCHEN", v.VariantID), v.Files.Root)
	}

	assert.Equal(t, []int{15840, 14573, 17107, 15523}, []int{
		variants[0].TargetUSD, variants[1].TargetUSD, variants[2].TargetUSD, variants[3].TargetUSD,
	})

	// The first target is the baseline price, so the optimizer is skipped.
	assert.Equal(t, 15840, variants[0].PriceUSD)
	assert.Zero(t, variants[0].OpsCount)
	assert.NotNil(t, variants[0].Operations)
	_, hasTarget := variants[0].Design.Metadata.Target()
	assert.False(t, hasTarget)

	// The 0.92 target: one removal lands under it, then the door phase goes
	// premium and the final price ends above the baseline.
	assert.Equal(t, 16368, variants[1].PriceUSD)
	assert.Equal(t, []string{
		"remove ISNA from show (show:ISNA-1)",
		"door finish DFKW -> DFHS",
		"top finish CDZM -> CDSM",
	}, describeOps(variants[1].Operations))
	assert.Greater(t, variants[2].PriceUSD, 15840)
	assert.Positive(t, variants[2].OpsCount)
}

func TestGenerate_BudgetCenter(t *testing.T) {
	g := testGenerator(t)

	out, err := g.Generate(context.Background(), Request{Layouts: []string{"BACK_KITCHEN"}, Count: 2, BudgetUSD: 20000})
	require.NoError(t, err)

	variants := out.Results[model.LayoutBackKitchen]
	require.Len(t, variants, 2)
	assert.Equal(t, 20000, variants[0].TargetUSD)
	assert.Equal(t, 18400, variants[1].TargetUSD)
	assert.Equal(t, 21120, variants[0].PriceUSD)
	assert.Equal(t, 18, variants[0].Design.PlacementCount())

	target, ok := variants[0].Design.Metadata.Target()
	require.True(t, ok)
	assert.Equal(t, 20000, target)
}

func TestGenerate_WritesArtifacts(t *testing.T) {
	g := testGenerator(t)
	g.Config.ExtraExports = []string{model.ExportQuotePDF, model.ExportDXF}

	out, err := g.Generate(context.Background(), Request{Layouts: []string{"DUAL_ISLAND"}, Count: 1})
	require.NoError(t, err)

	v := out.Results[model.LayoutDualIsland][0]
	for _, path := range []string{
		v.Files.DesignJSON, v.Files.PlanSVG, v.Files.ModelOBJ, v.Files.BOMCSV, v.Files.CutCSV,
		v.Files.QuotePDF, v.Files.PlanDXF,
	} {
		info, err := os.Stat(path)
		require.NoError(t, err, path)
		assert.Positive(t, info.Size(), path)
	}
	assert.Empty(t, v.Files.LabelsPDF)
	assert.Empty(t, v.Files.Workbook)

	loaded, err := project.LoadDesign(v.Files.DesignJSON)
	require.NoError(t, err)
	assert.True(t, engine.DeterministicEqual(v.Design, loaded))
	assert.Equal(t, v.PriceUSD, loaded.Metadata.CurrentPriceUSD)
}

func TestGenerate_CountClamp(t *testing.T) {
	tests := []struct {
		name     string
		count    int
		perConf  int
		expected int
	}{
		{"default from config", 0, 4, 4},
		{"config default of two", 0, 2, 2},
		{"above max", 9, 4, 4},
		{"negative", -3, 4, 1},
		{"exact", 3, 4, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := testGenerator(t)
			g.Config.VariantsPerLayout = tt.perConf

			out, err := g.Generate(context.Background(), Request{Layouts: []string{"LINEAR"}, Count: tt.count})
			require.NoError(t, err)
			assert.Len(t, out.Results[model.LayoutDisappearingLinear], tt.expected)
		})
	}
}

func TestGenerate_FinishFallback(t *testing.T) {
	g := testGenerator(t)

	out, err := g.Generate(context.Background(), Request{Layouts: []string{"BACK_KITCHEN"}, Count: 1, Door: "walnut", Top: "cdsm"})
	require.NoError(t, err)

	d := out.Results[model.LayoutBackKitchen][0].Design
	assert.Equal(t, model.DefaultDoorToken, d.Door)
	assert.Equal(t, "CDSM", d.Top)
}

func TestGenerate_InvalidRequest(t *testing.T) {
	g := testGenerator(t)

	_, err := g.Generate(context.Background(), Request{BudgetUSD: -1})
	assert.True(t, model.IsCode(err, model.ErrCodeInvalidInput))

	_, err = g.Generate(context.Background(), Request{Layouts: []string{""}})
	assert.True(t, model.IsCode(err, model.ErrCodeInvalidInput))

	_, err = g.Generate(context.Background(), Request{Layouts: []string{"GALLEY"}})
	assert.True(t, model.IsCode(err, model.ErrCodeUnknownLayout))

	_, statErr := os.Stat(g.Config.ArtifactRoot)
	assert.True(t, os.IsNotExist(statErr))
}

func TestGenerate_AllLayoutsUniqueIDs(t *testing.T) {
	cfg := model.DefaultAppConfig()
	cfg.ArtifactRoot = t.TempDir()
	g := New(cfg)
	g.Logger = log.New(io.Discard)

	out, err := g.Generate(context.Background(), Request{BudgetUSD: 18000})
	require.NoError(t, err)

	assert.Equal(t, model.LayoutIDs(), out.Layouts)
	assert.Len(t, out.RunID, 8)

	variants := out.Variants()
	require.Len(t, variants, 16)
	assert.Equal(t, 16, out.VariantCount())

	seen := make(map[string]bool)
	for _, v := range variants {
		assert.False(t, seen[v.VariantID], v.VariantID)
		seen[v.VariantID] = true
		assert.DirExists(t, v.Files.Root)
	}

	for i, layout := range out.Layouts {
		assert.Equal(t, layout, variants[i*4].LayoutCanonical)
		assert.Equal(t, 18000, variants[i*4].TargetUSD)
	}
}

func TestGenerate_RecordsHistory(t *testing.T) {
	ctx := context.Background()
	g := testGenerator(t)

	h, err := store.Open(ctx, filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { h.Close() })
	g.History = h

	out, err := g.Generate(ctx, Request{Layouts: []string{"BACK_KITCHEN", "WOKE_KITCHEN"}, Count: 2, BudgetUSD: 20000, Door: "dfkw"})
	require.NoError(t, err)

	run, err := h.GetRun(ctx, out.RunID)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-14T08:30:00Z", run.CreatedAt)
	assert.Equal(t, []string{"BACK_KITCHEN", "BROKEN_PLAN"}, run.Layouts)
	assert.Equal(t, "DFKW", run.Door)
	assert.Equal(t, 20000, run.BudgetUSD)
	require.Len(t, run.Variants, 4)

	for i, v := range out.Variants() {
		assert.Equal(t, v.VariantID, run.Variants[i].ID)
		assert.Equal(t, v.PriceUSD, run.Variants[i].PriceUSD)
		assert.Equal(t, v.OpsCount, run.Variants[i].OpsCount)
		assert.Equal(t, v.Files.Root, run.Variants[i].Root)
	}
}

func TestGenerate_Cancelled(t *testing.T) {
	g := testGenerator(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := g.Generate(ctx, Request{})
	assert.True(t, errors.Is(err, context.Canceled))
}
