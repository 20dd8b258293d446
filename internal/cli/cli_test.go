package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/CabinetPlan/internal/engine"
	"github.com/piwi3910/CabinetPlan/internal/generate"
	"github.com/piwi3910/CabinetPlan/internal/model"
	"github.com/piwi3910/CabinetPlan/internal/project"
	"github.com/piwi3910/CabinetPlan/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	dir        string
	configPath string
	presetPath string
	config     model.AppConfig
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	dir := t.TempDir()
	cfg := model.DefaultAppConfig()
	cfg.ArtifactRoot = filepath.Join(dir, "artifacts")
	cfg.HistoryPath = filepath.Join(dir, "history.db")

	env := testEnv{
		dir:        dir,
		configPath: filepath.Join(dir, "config.toml"),
		presetPath: filepath.Join(dir, "presets.yaml"),
		config:     cfg,
	}
	require.NoError(t, project.SaveConfig(env.configPath, cfg))
	return env
}

func (e testEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--config", e.configPath, "--presets", e.presetPath}, args...))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func (e testEnv) runJSON(t *testing.T, v any, args ...string) {
	t.Helper()
	out, err := e.run(t, append(args, "--format", "json")...)
	require.NoError(t, err, out)
	require.NoError(t, json.Unmarshal([]byte(out), v), out)
}

func TestLayoutsCommand(t *testing.T) {
	env := newTestEnv(t)

	var infos []layoutInfo
	env.runJSON(t, &infos, "layouts")
	require.Len(t, infos, 4)
	assert.Equal(t, model.LayoutBackKitchen, infos[0].ID)
	assert.Equal(t, model.LegacyTwoXKitchen, infos[0].Legacy)
	assert.Equal(t, 15840, infos[0].BasePriceUSD)

	out, err := env.run(t, "layouts")
	require.NoError(t, err)
	assert.Contains(t, out, "TWO_X_KITCHEN")
	assert.Contains(t, out, "$15,840")

	out, err = env.run(t, "layouts", "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "id: BACK_KITCHEN")
	assert.Contains(t, out, "legacy: LINEAR")
}

func TestBuildCommand(t *testing.T) {
	env := newTestEnv(t)

	var design model.Design
	env.runJSON(t, &design, "build", "TWO_X_KITCHEN")
	assert.Equal(t, model.LayoutBackKitchen, design.Layout)
	assert.Equal(t, 15840, design.Metadata.CurrentPriceUSD)
	require.NoError(t, engine.AssertInvariants(design))

	outDir := filepath.Join(env.dir, "build")
	out, err := env.run(t, "build", "back-kitchen", "--door", "dfhs", "--out", outDir)
	require.NoError(t, err)
	assert.Contains(t, out, "door DFHS, top CDZM")
	assert.FileExists(t, filepath.Join(outDir, project.DesignFile))
	assert.FileExists(t, filepath.Join(outDir, project.CutlistFile))

	_, err = env.run(t, "build", "BACK_KITCHEN", "--door", "OAK")
	assert.True(t, model.IsCode(err, model.ErrCodeUnknownFinish))

	_, err = env.run(t, "build", "GALLEY")
	assert.True(t, model.IsCode(err, model.ErrCodeUnknownLayout))
}

func TestOptimizeCommand(t *testing.T) {
	env := newTestEnv(t)

	var res optimizeOutput
	env.runJSON(t, &res, "optimize", "BACK_KITCHEN", "--budget", "20000")
	assert.Equal(t, 15840, res.BasePriceUSD)
	assert.Equal(t, 20000, res.TargetUSD)
	assert.Equal(t, 21120, res.PriceUSD)
	assert.Len(t, res.Operations, len(res.Design.Operations))
	require.NoError(t, engine.AssertInvariants(res.Design))

	out, err := env.run(t, "optimize", "BACK_KITCHEN", "--budget", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "$9,790")
	assert.Contains(t, out, "7. ")

	_, err = env.run(t, "optimize", "BACK_KITCHEN")
	assert.True(t, model.IsCode(err, model.ErrCodeInvalidInput))

	_, err = env.run(t, "optimize", "BACK_KITCHEN", "--budget=-5")
	assert.True(t, model.IsCode(err, model.ErrCodeInvalidInput))
}

func TestPriceCommand(t *testing.T) {
	env := newTestEnv(t)

	var res priceOutput
	env.runJSON(t, &res, "price", "BACK_KITCHEN")
	assert.Equal(t, "BACK_KITCHEN", res.Source)
	assert.Equal(t, 15840, res.Breakdown.TotalUSD)
	assert.Equal(t, 14400, res.Breakdown.ModuleSubtotalUSD)
	assert.Equal(t, 3168, res.Breakdown.DepositUSD)

	list := filepath.Join(env.dir, "modules.csv")
	require.NoError(t, os.WriteFile(list, []byte("module,qty\nbsdd,2\n"), 0644))

	res = priceOutput{}
	env.runJSON(t, &res, "price", "--file", list, "--deposit", "0.5")
	assert.Equal(t, 2, res.Modules)
	assert.Equal(t, 1000, res.Breakdown.ModuleSubtotalUSD)
	assert.Equal(t, 1100, res.Breakdown.TotalUSD)
	assert.Equal(t, 550, res.Breakdown.DepositUSD)

	bad := filepath.Join(env.dir, "bad.csv")
	require.NoError(t, os.WriteFile(bad, []byte("module,qty\nNOPE,1\n"), 0644))
	_, err := env.run(t, "price", "--file", bad)
	assert.True(t, model.IsCode(err, model.ErrCodeInvalidInput))

	_, err = env.run(t, "price")
	assert.Error(t, err)
	_, err = env.run(t, "price", "BACK_KITCHEN", "--file", list)
	assert.Error(t, err)
}

func TestCompareCommand(t *testing.T) {
	env := newTestEnv(t)

	var results []engine.ComparisonResult
	env.runJSON(t, &results, "compare", "BACK_KITCHEN", "--budget", "20000")
	require.NotEmpty(t, results)
	assert.Equal(t, "Current Selection", results[0].Scenario.Name)
	assert.Equal(t, 21120, results[0].PriceUSD)
	assert.Equal(t, "Floor Price", results[len(results)-1].Scenario.Name)
	assert.Equal(t, 9790, results[len(results)-1].PriceUSD)

	out, err := env.run(t, "compare", "BACK_KITCHEN")
	require.NoError(t, err)
	assert.Contains(t, out, "Value Finishes")
}

func TestGenerateAndHistoryCommands(t *testing.T) {
	env := newTestEnv(t)
	metrics := filepath.Join(env.dir, "gen.prom")

	var out generate.Output
	env.runJSON(t, &out, "generate", "--layout", "LINEAR,TWO_X_KITCHEN", "--count", "2", "--budget", "20000", "--metrics-file", metrics)
	assert.Equal(t, []model.LayoutID{model.LayoutDisappearingLinear, model.LayoutBackKitchen}, out.Layouts)
	require.Len(t, out.Results[model.LayoutBackKitchen], 2)
	assert.Equal(t, 21120, out.Results[model.LayoutBackKitchen][0].PriceUSD)
	assert.FileExists(t, metrics)

	cfg, err := project.LoadConfig(env.configPath)
	require.NoError(t, err)
	assert.Equal(t, []string{out.RunID}, cfg.RecentRuns)

	var runs []store.Run
	env.runJSON(t, &runs, "history", "list")
	require.Len(t, runs, 1)
	assert.Equal(t, out.RunID, runs[0].ID)
	assert.Equal(t, []string{"DISAPPEARING_LINEAR", "BACK_KITCHEN"}, runs[0].Layouts)

	var run store.Run
	env.runJSON(t, &run, "history", "show", out.RunID)
	require.Len(t, run.Variants, 4)
	assert.Equal(t, out.Results[model.LayoutDisappearingLinear][0].VariantID, run.Variants[0].ID)

	text, err := env.run(t, "history", "show", out.RunID)
	require.NoError(t, err)
	assert.Contains(t, text, "Run "+out.RunID)

	_, err = env.run(t, "history", "delete", out.RunID)
	require.NoError(t, err)
	_, err = env.run(t, "history", "show", out.RunID)
	assert.ErrorIs(t, err, store.ErrRunNotFound)
}

func TestGenerateNoHistory(t *testing.T) {
	env := newTestEnv(t)

	text, err := env.run(t, "generate", "--layout", "DUAL_ISLAND", "--count", "1", "--no-history", "--extra", "xlsx")
	require.NoError(t, err)
	assert.Contains(t, text, "1 variants written")

	var runs []store.Run
	env.runJSON(t, &runs, "history", "list")
	assert.Empty(t, runs)

	_, err = env.run(t, "generate", "--extra", "png")
	assert.True(t, model.IsCode(err, model.ErrCodeInvalidInput))
}

func TestPresetCommands(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run(t, "preset", "save", "Family", "--layout", "TWO_X_KITCHEN", "--budget", "20000", "-d", "two rooms")
	require.NoError(t, err)
	_, err = env.run(t, "preset", "save", "Family", "--layout", "BACK_KITCHEN", "--budget", "18400", "--top", "cdsm")
	require.NoError(t, err)

	var presets model.PresetStore
	env.runJSON(t, &presets, "preset", "list")
	require.Len(t, presets.Presets, 1)
	assert.Equal(t, model.LayoutBackKitchen, presets.Presets[0].Layout)
	assert.Equal(t, "CDSM", presets.Presets[0].Top)
	assert.Equal(t, 18400, presets.Presets[0].BudgetUSD)

	var out generate.Output
	env.runJSON(t, &out, "generate", "--preset", "Family", "--count", "1")
	require.Equal(t, []model.LayoutID{model.LayoutBackKitchen}, out.Layouts)
	v := out.Results[model.LayoutBackKitchen][0]
	assert.Equal(t, 18400, v.TargetUSD)

	_, err = env.run(t, "generate", "--preset", "Nope")
	assert.True(t, model.IsCode(err, model.ErrCodeInvalidInput))

	_, err = env.run(t, "preset", "remove", "Family")
	require.NoError(t, err)
	_, err = env.run(t, "preset", "remove", "Family")
	assert.Error(t, err)
}

func TestBackupCommands(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.run(t, "preset", "save", "Linear", "--layout", "LINEAR")
	require.NoError(t, err)

	backup := filepath.Join(env.dir, "backup.json")
	_, err = env.run(t, "backup", "export", backup)
	require.NoError(t, err)

	restored := newTestEnv(t)
	restored.configPath = filepath.Join(restored.dir, "restored.json")
	out, err := restored.run(t, "backup", "import", backup)
	require.NoError(t, err)
	assert.Contains(t, out, "presets: Linear")

	cfg, err := project.LoadConfig(restored.configPath)
	require.NoError(t, err)
	assert.Equal(t, env.config.ArtifactRoot, cfg.ArtifactRoot)

	presets, err := project.LoadPresets(restored.presetPath)
	require.NoError(t, err)
	assert.Equal(t, []string{"Linear"}, presets.Names())
}

func TestExportCommand(t *testing.T) {
	env := newTestEnv(t)
	buildDir := filepath.Join(env.dir, "build")
	_, err := env.run(t, "optimize", "BACK_KITCHEN", "--budget", "20000", "--out", buildDir)
	require.NoError(t, err)

	exportDir := filepath.Join(env.dir, "export")
	var paths project.ArtifactPaths
	env.runJSON(t, &paths, "export", filepath.Join(buildDir, project.DesignFile), "--out", exportDir, "--extra", "dxf,labels")
	assert.Equal(t, exportDir, paths.Root)
	assert.FileExists(t, paths.PlanDXF)
	assert.FileExists(t, paths.LabelsPDF)
	assert.Empty(t, paths.QuotePDF)

	loaded, err := project.LoadDesign(paths.DesignJSON)
	require.NoError(t, err)
	assert.Equal(t, 21120, loaded.Metadata.CurrentPriceUSD)
}

func TestUnknownFormat(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.run(t, "layouts", "--format", "xml")
	assert.ErrorContains(t, err, "unknown format")
}
