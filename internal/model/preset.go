package model

import (
	"time"

	"github.com/google/uuid"
)

// Preset is a saved layout, finish and budget selection that can be fed back
// into generation.
type Preset struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	CreatedAt   string   `json:"created_at" yaml:"created_at"`
	UpdatedAt   string   `json:"updated_at" yaml:"updated_at"`
	Layout      LayoutID `json:"layout" yaml:"layout"`
	Door        string   `json:"door" yaml:"door"`
	Top         string   `json:"top" yaml:"top"`
	BudgetUSD   int      `json:"budget_usd" yaml:"budget_usd"`
}

// NewPreset creates a preset with a fresh short id.
func NewPreset(name, description string, layout LayoutID, door, top string, budget int) Preset {
	now := time.Now().UTC().Format(time.RFC3339)
	return Preset{
		ID:          uuid.New().String()[:8],
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
		Layout:      layout,
		Door:        door,
		Top:         top,
		BudgetUSD:   budget,
	}
}

// Validate checks that the preset references known catalog entries.
func (p Preset) Validate() error {
	if _, err := NormalizeLayoutID(string(p.Layout)); err != nil {
		return err
	}
	if _, err := LookupDoor(p.Door); err != nil {
		return err
	}
	if _, err := LookupTop(p.Top); err != nil {
		return err
	}
	if p.BudgetUSD < 0 {
		return NewError(ErrCodeInvalidInput, "preset %q has a negative budget", p.Name)
	}
	return nil
}

// PresetStore holds a collection of presets.
type PresetStore struct {
	Presets []Preset `json:"presets" yaml:"presets"`
}

// NewPresetStore creates an empty preset store.
func NewPresetStore() PresetStore {
	return PresetStore{
		Presets: []Preset{},
	}
}

// Add adds a preset to the store.
func (ps *PresetStore) Add(p Preset) {
	ps.Presets = append(ps.Presets, p)
}

// Remove removes a preset by ID. Returns true if found and removed.
func (ps *PresetStore) Remove(id string) bool {
	for i, p := range ps.Presets {
		if p.ID == id {
			ps.Presets = append(ps.Presets[:i], ps.Presets[i+1:]...)
			return true
		}
	}
	return false
}

// FindByID returns a pointer to the preset with the given ID, or nil.
func (ps *PresetStore) FindByID(id string) *Preset {
	for i := range ps.Presets {
		if ps.Presets[i].ID == id {
			return &ps.Presets[i]
		}
	}
	return nil
}

// FindByName returns a pointer to the first preset with the given name, or nil.
func (ps *PresetStore) FindByName(name string) *Preset {
	for i := range ps.Presets {
		if ps.Presets[i].Name == name {
			return &ps.Presets[i]
		}
	}
	return nil
}

// Names lists preset names in store order.
func (ps *PresetStore) Names() []string {
	names := make([]string, len(ps.Presets))
	for i, p := range ps.Presets {
		names[i] = p.Name
	}
	return names
}
