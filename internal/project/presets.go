package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/piwi3910/CabinetPlan/internal/model"
	"gopkg.in/yaml.v3"
)

// DefaultPresetPath returns the default file path for the preset store.
// This is located at ~/.cabinetplan/presets.json.
func DefaultPresetPath() string {
	return filepath.Join(DefaultConfigDir(), "presets.json")
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// SavePresets writes the preset store as YAML for .yaml/.yml paths and as
// indented JSON otherwise.
func SavePresets(path string, store model.PresetStore) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create preset directory: %w", err)
	}

	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(store)
	} else {
		data, err = json.MarshalIndent(store, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to encode presets: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// LoadPresets reads a preset store. If the file does not exist, it returns
// an empty store. Every preset is validated against the catalogs.
func LoadPresets(path string) (model.PresetStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.NewPresetStore(), nil
		}
		return model.PresetStore{}, fmt.Errorf("failed to read presets: %w", err)
	}

	var store model.PresetStore
	if isYAML(path) {
		err = yaml.Unmarshal(data, &store)
	} else {
		err = json.Unmarshal(data, &store)
	}
	if err != nil {
		return model.PresetStore{}, fmt.Errorf("failed to parse presets: %w", err)
	}
	if store.Presets == nil {
		store.Presets = []model.Preset{}
	}
	for _, p := range store.Presets {
		if err := p.Validate(); err != nil {
			return model.PresetStore{}, fmt.Errorf("preset %q: %w", p.Name, err)
		}
	}
	return store, nil
}
