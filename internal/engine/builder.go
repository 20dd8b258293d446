package engine

import (
	"time"

	"github.com/piwi3910/CabinetPlan/internal/model"
)

// Builder expands layout templates into concrete designs.
type Builder struct {
	// Now stamps CreatedAt. Defaults to time.Now.
	Now func() time.Time
}

// NewBuilder returns a Builder using the wall clock.
func NewBuilder() *Builder {
	return &Builder{Now: time.Now}
}

var defaultBuilder = NewBuilder()

// BuildDesign builds a design with the wall-clock builder.
func BuildDesign(layoutID, door, top string) (model.Design, error) {
	return defaultBuilder.Build(layoutID, door, top)
}

// Build resolves the template and finishes, instances every baseline
// placement in template order with geometry copied from the catalog, and
// records the initial price as both base and current price. Empty finish
// tokens select the catalog defaults.
func (b *Builder) Build(layoutID, door, top string) (model.Design, error) {
	tmpl, err := model.ResolveLayout(layoutID)
	if err != nil {
		return model.Design{}, err
	}
	if door == "" {
		door = model.DefaultDoorToken
	}
	if top == "" {
		top = model.DefaultTopToken
	}
	doorOption, err := model.LookupDoor(door)
	if err != nil {
		return model.Design{}, err
	}
	topOption, err := model.LookupTop(top)
	if err != nil {
		return model.Design{}, err
	}

	rooms := make([]model.Room, 0, len(tmpl.Rooms))
	for _, rt := range tmpl.Rooms {
		room := model.Room{
			ID:         rt.ID,
			Label:      rt.Label,
			Width:      rt.Width,
			Depth:      rt.Depth,
			Origin:     rt.Origin,
			Placements: make([]model.Placement, 0, len(rt.Placements)),
		}
		for i, def := range rt.Placements {
			spec, err := model.LookupModule(def.ModuleID)
			if err != nil {
				return model.Design{}, model.WrapError(model.ErrCodeUnknownModule, err, "layout %s room %s", tmpl.ID, rt.ID)
			}
			key := def.ResolvedKey(rt.ID, i)
			room.Placements = append(room.Placements, newPlacement(tmpl.ID, rt.ID, key, def, spec, model.SourceBase, def.Optional))
		}
		rooms = append(rooms, room)
	}

	now := time.Now
	if b.Now != nil {
		now = b.Now
	}
	design := model.Design{
		Layout:     tmpl.ID,
		Name:       tmpl.Name,
		Summary:    tmpl.Summary,
		Door:       doorOption.Token,
		Top:        topOption.Token,
		Rooms:      rooms,
		Operations: model.Operations{},
		CreatedAt:  now().UTC().Format(time.RFC3339),
	}

	price, err := Price(design)
	if err != nil {
		return model.Design{}, err
	}
	design.Metadata.BasePriceUSD = price
	design.Metadata.CurrentPriceUSD = price
	return design, nil
}

func newPlacement(layout model.LayoutID, roomID, key string, def model.PlacementDefinition, spec model.ModuleSpec, source model.Source, optional bool) model.Placement {
	return model.Placement{
		ID:       model.PlacementID(layout, roomID, key),
		Key:      key,
		RoomID:   roomID,
		ModuleID: spec.ID,
		X:        def.X,
		Y:        def.Y,
		Rotation: def.Rotation,
		Note:     def.Note,
		Optional: optional,
		Source:   source,
		Width:    spec.Width,
		Depth:    spec.Depth,
		Height:   spec.Height,
		Category: spec.Category,
	}
}
