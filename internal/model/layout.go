package model

import (
	"fmt"
	"regexp"
	"strings"
)

// MillimeterToPixel is the default plan scale for layout previews.
const MillimeterToPixel = 0.2

// LayoutID is a canonical layout identifier.
type LayoutID string

const (
	LayoutBackKitchen        LayoutID = "BACK_KITCHEN"
	LayoutDualIsland         LayoutID = "DUAL_ISLAND"
	LayoutBrokenPlan         LayoutID = "BROKEN_PLAN"
	LayoutDisappearingLinear LayoutID = "DISAPPEARING_LINEAR"
)

// LegacyID is a historical layout identifier still accepted from callers
// and still used to name generated variants.
type LegacyID string

const (
	LegacyTwoXKitchen LegacyID = "TWO_X_KITCHEN"
	LegacyDualIsland  LegacyID = "DUAL_ISLAND"
	LegacyWokeKitchen LegacyID = "WOKE_KITCHEN"
	LegacyLinear      LegacyID = "LINEAR"
)

// Point is an absolute or relative position in mm.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// PlacementDefinition is a module placement as authored in a layout template.
type PlacementDefinition struct {
	ModuleID ModuleID `json:"moduleId"`
	RoomID   string   `json:"roomId,omitempty"`
	X        float64  `json:"x"`
	Y        float64  `json:"y"`
	Rotation float64  `json:"rotation,omitempty"`
	Note     string   `json:"note,omitempty"`
	Optional bool     `json:"optional,omitempty"`
	Key      string   `json:"key"`
}

// RoomTemplate is one room envelope of a layout with its baseline placements.
type RoomTemplate struct {
	ID         string                `json:"id"`
	Label      string                `json:"label"`
	Width      float64               `json:"width"`
	Depth      float64               `json:"depth"`
	Origin     Point                 `json:"origin"`
	Placements []PlacementDefinition `json:"placements"`
}

// LayoutTemplate is the static definition a Design is built from.
// RemovalOrder and AdditionQueue are priority lists; their order is significant.
type LayoutTemplate struct {
	ID            LayoutID              `json:"id"`
	Name          string                `json:"name"`
	Summary       string                `json:"summary"`
	DefaultScale  float64               `json:"defaultScale"`
	Rooms         []RoomTemplate        `json:"rooms"`
	RemovalOrder  []string              `json:"removalOrder"`
	AdditionQueue []PlacementDefinition `json:"additionQueue"`
}

// PlacementKey synthesizes a key for a definition authored without one.
func PlacementKey(roomID string, moduleID ModuleID, index int) string {
	return fmt.Sprintf("%s:%s:%d", roomID, moduleID, index+1)
}

// RoomFor resolves the room an addition-queue entry belongs to: the explicit
// room id, then the key prefix before ":", then the first room.
func (t LayoutTemplate) RoomFor(def PlacementDefinition) string {
	if def.RoomID != "" {
		return def.RoomID
	}
	if prefix, _, ok := strings.Cut(def.Key, ":"); ok && prefix != "" {
		return prefix
	}
	if len(t.Rooms) > 0 {
		return t.Rooms[0].ID
	}
	return ""
}

// Room returns the room template with the given id.
func (t LayoutTemplate) Room(id string) (RoomTemplate, bool) {
	for _, r := range t.Rooms {
		if r.ID == id {
			return r, true
		}
	}
	return RoomTemplate{}, false
}

// BaselineKeys returns every baseline placement key in template order.
func (t LayoutTemplate) BaselineKeys() []string {
	var keys []string
	for _, r := range t.Rooms {
		for i, p := range r.Placements {
			keys = append(keys, baselineKey(r.ID, i, p))
		}
	}
	return keys
}

func baselineKey(roomID string, index int, p PlacementDefinition) string {
	if p.Key != "" {
		return p.Key
	}
	return PlacementKey(roomID, p.ModuleID, index)
}

// ResolvedKey returns the key a definition contributes to a Design.
func (d PlacementDefinition) ResolvedKey(roomID string, index int) string {
	return baselineKey(roomID, index, d)
}

func (t LayoutTemplate) clone() LayoutTemplate {
	out := t
	out.Rooms = make([]RoomTemplate, len(t.Rooms))
	for i, r := range t.Rooms {
		r.Placements = append([]PlacementDefinition(nil), r.Placements...)
		out.Rooms[i] = r
	}
	out.RemovalOrder = append([]string(nil), t.RemovalOrder...)
	out.AdditionQueue = append([]PlacementDefinition(nil), t.AdditionQueue...)
	return out
}

// layoutOrder is the canonical listing order.
var layoutOrder = []LayoutID{
	LayoutBackKitchen,
	LayoutDualIsland,
	LayoutBrokenPlan,
	LayoutDisappearingLinear,
}

// LayoutIDs returns the canonical layout ids in listing order.
func LayoutIDs() []LayoutID {
	return append([]LayoutID(nil), layoutOrder...)
}

// LegacyIDs returns the legacy layout ids, aligned with LayoutIDs.
func LegacyIDs() []LegacyID {
	return []LegacyID{LegacyTwoXKitchen, LegacyDualIsland, LegacyWokeKitchen, LegacyLinear}
}

// Canonical maps a legacy id onto its canonical layout id.
func Canonical(legacy LegacyID) (LayoutID, error) {
	switch legacy {
	case LegacyTwoXKitchen:
		return LayoutBackKitchen, nil
	case LegacyDualIsland:
		return LayoutDualIsland, nil
	case LegacyWokeKitchen:
		return LayoutBrokenPlan, nil
	case LegacyLinear:
		return LayoutDisappearingLinear, nil
	}
	return "", unknownIdentifier(ErrCodeUnknownLayout, "legacy layout", string(legacy))
}

// Legacy maps a canonical layout id onto its legacy id.
func Legacy(id LayoutID) (LegacyID, error) {
	switch id {
	case LayoutBackKitchen:
		return LegacyTwoXKitchen, nil
	case LayoutDualIsland:
		return LegacyDualIsland, nil
	case LayoutBrokenPlan:
		return LegacyWokeKitchen, nil
	case LayoutDisappearingLinear:
		return LegacyLinear, nil
	}
	return "", unknownIdentifier(ErrCodeUnknownLayout, "layout", string(id))
}

var layoutIDSanitizer = regexp.MustCompile(`[^A-Z_]`)

// NormalizeLayoutID accepts canonical or legacy ids in any case, with any
// separator characters, and returns the canonical id.
func NormalizeLayoutID(value string) (LayoutID, error) {
	key := layoutIDSanitizer.ReplaceAllString(strings.ToUpper(value), "_")
	if _, ok := layoutTemplates[LayoutID(key)]; ok {
		return LayoutID(key), nil
	}
	if id, err := Canonical(LegacyID(key)); err == nil {
		return id, nil
	}
	return "", unknownIdentifier(ErrCodeUnknownLayout, "layout", value)
}

// ResolveLayout returns a copy of the template for a canonical or legacy id.
func ResolveLayout(id string) (LayoutTemplate, error) {
	canonical, err := NormalizeLayoutID(id)
	if err != nil {
		return LayoutTemplate{}, err
	}
	return layoutTemplates[canonical].clone(), nil
}

// Layouts returns copies of every template in listing order.
func Layouts() []LayoutTemplate {
	out := make([]LayoutTemplate, len(layoutOrder))
	for i, id := range layoutOrder {
		out[i] = layoutTemplates[id].clone()
	}
	return out
}

// ValidateTemplate checks that every key a template references resolves to a
// room and a catalog module, that removal keys name baseline placements, and
// that addition keys do not.
func ValidateTemplate(t LayoutTemplate) error {
	if len(t.Rooms) == 0 {
		return NewError(ErrCodeInvalidLayoutTemplate, "layout %s has no rooms", t.ID)
	}

	baseline := make(map[string]bool)
	for _, r := range t.Rooms {
		for i, p := range r.Placements {
			if _, err := LookupModule(p.ModuleID); err != nil {
				return WrapError(ErrCodeInvalidLayoutTemplate, err, "layout %s room %s", t.ID, r.ID)
			}
			key := baselineKey(r.ID, i, p)
			if baseline[key] {
				return NewError(ErrCodeInvalidLayoutTemplate, "layout %s repeats placement key %q", t.ID, key)
			}
			baseline[key] = true
		}
	}

	for _, key := range t.RemovalOrder {
		if !baseline[key] {
			return NewError(ErrCodeInvalidLayoutTemplate, "layout %s removal key %q is not a baseline placement", t.ID, key)
		}
	}

	queued := make(map[string]bool)
	for _, def := range t.AdditionQueue {
		if def.Key == "" {
			return NewError(ErrCodeInvalidLayoutTemplate, "layout %s has an addition without a key", t.ID)
		}
		if baseline[def.Key] || queued[def.Key] {
			return NewError(ErrCodeInvalidLayoutTemplate, "layout %s addition key %q already exists", t.ID, def.Key)
		}
		queued[def.Key] = true
		if _, err := LookupModule(def.ModuleID); err != nil {
			return WrapError(ErrCodeInvalidLayoutTemplate, err, "layout %s addition %q", t.ID, def.Key)
		}
		if _, ok := t.Room(t.RoomFor(def)); !ok {
			return NewError(ErrCodeInvalidLayoutTemplate, "layout %s addition %q targets unknown room %q", t.ID, def.Key, t.RoomFor(def))
		}
	}
	return nil
}
