package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/CabinetPlan/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndLoadConfig_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	cfg := model.DefaultAppConfig()
	cfg.DefaultDoor = "DFHS"
	cfg.VariantsPerLayout = 2
	cfg.ExtraExports = []string{model.ExportQuotePDF, model.ExportDXF}
	cfg.RememberRun("abc123")

	require.NoError(t, SaveConfig(path, cfg))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestSaveAndLoadConfig_TOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg := model.DefaultAppConfig()
	cfg.DefaultTop = "CMCA"
	cfg.BudgetMultipliers = []float64{1, 0.9}
	cfg.HistoryPath = "history.db"

	require.NoError(t, SaveConfig(path, cfg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `default_top = "CMCA"`)

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nonexistent", "config.json"))
	require.NoError(t, err)
	assert.Equal(t, model.DefaultAppConfig(), cfg)
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("default_door = \"dflg\"\nconcurrency = 2\n"), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "DFLG", cfg.DefaultDoor)
	assert.Equal(t, 2, cfg.Concurrency)
	assert.Equal(t, model.DefaultTopToken, cfg.DefaultTop)
	assert.Equal(t, model.DefaultBudgetMultipliers(), cfg.BudgetMultipliers)
}

func TestLoadConfig_Invalid(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		"bad.json":     "{not json}",
		"door.json":    `{"default_door": "NOPE"}`,
		"count.json":   `{"variants_per_layout": 9}`,
		"extra.toml":   `extra_exports = ["zip"]`,
		"deposit.toml": `deposit_rate = 1.5`,
	}
	for name, content := range cases {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
		_, err := LoadConfig(path)
		assert.Error(t, err, name)
	}
}

func TestDefaultConfigPath(t *testing.T) {
	assert.Equal(t, "config.json", filepath.Base(DefaultConfigPath()))
	assert.Equal(t, ".cabinetplan", filepath.Base(DefaultConfigDir()))
}
