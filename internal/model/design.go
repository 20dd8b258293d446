package model

import "slices"

// Source tells whether a placement came from the template baseline or was
// added by the budget optimizer.
type Source string

const (
	SourceBase  Source = "base"
	SourceAdded Source = "added"
)

// Placement is a module instanced into a room. Geometry is copied from the
// catalog at construction so later catalog edits cannot change a priced design.
type Placement struct {
	ID       string   `json:"id"`
	Key      string   `json:"key"`
	RoomID   string   `json:"roomId"`
	ModuleID ModuleID `json:"moduleId"`
	X        float64  `json:"x"`
	Y        float64  `json:"y"`
	Rotation float64  `json:"rotation,omitempty"`
	Note     string   `json:"note,omitempty"`
	Optional bool     `json:"optional"`
	Source   Source   `json:"source"`
	Width    float64  `json:"width"`
	Depth    float64  `json:"depth"`
	Height   float64  `json:"height"`
	Category Category `json:"category"`
}

// Room is a concrete room of a design.
type Room struct {
	ID         string      `json:"id"`
	Label      string      `json:"label"`
	Width      float64     `json:"width"`
	Depth      float64     `json:"depth"`
	Origin     Point       `json:"origin"`
	Placements []Placement `json:"placements"`
}

// Metadata carries the prices recorded on a design.
type Metadata struct {
	BasePriceUSD    int  `json:"basePriceUSD"`
	CurrentPriceUSD int  `json:"currentPriceUSD"`
	TargetBudgetUSD *int `json:"targetBudgetUSD,omitempty"`
}

// Design is one concrete, priced arrangement of placements for a layout and
// finish pair.
type Design struct {
	Layout     LayoutID   `json:"layout"`
	Name       string     `json:"name"`
	Summary    string     `json:"summary"`
	Door       string     `json:"door"`
	Top        string     `json:"top"`
	Rooms      []Room     `json:"rooms"`
	Operations Operations `json:"operations"`
	Metadata   Metadata   `json:"metadata"`
	CreatedAt  string     `json:"createdAt"`
}

// Clone returns a deep copy that shares no slices with d.
func (d Design) Clone() Design {
	out := d
	out.Rooms = slices.Clone(d.Rooms)
	for i := range out.Rooms {
		out.Rooms[i].Placements = slices.Clone(out.Rooms[i].Placements)
	}
	out.Operations = slices.Clone(d.Operations)
	if d.Metadata.TargetBudgetUSD != nil {
		target := *d.Metadata.TargetBudgetUSD
		out.Metadata.TargetBudgetUSD = &target
	}
	return out
}

// Placements flattens rooms then placements, in design order.
func (d Design) Placements() []Placement {
	var out []Placement
	for _, r := range d.Rooms {
		out = append(out, r.Placements...)
	}
	return out
}

// PlacementCount returns the number of placements across all rooms.
func (d Design) PlacementCount() int {
	n := 0
	for _, r := range d.Rooms {
		n += len(r.Placements)
	}
	return n
}

// HasPlacement reports whether any room holds a placement with key.
func (d Design) HasPlacement(key string) bool {
	_, ok := d.FindPlacement(key)
	return ok
}

// FindPlacement returns the first placement with key.
func (d Design) FindPlacement(key string) (Placement, bool) {
	for _, r := range d.Rooms {
		for _, p := range r.Placements {
			if p.Key == key {
				return p, true
			}
		}
	}
	return Placement{}, false
}

// RemovePlacement deletes the first placement with key and returns it.
func (d *Design) RemovePlacement(key string) (Placement, bool) {
	for ri := range d.Rooms {
		room := &d.Rooms[ri]
		for pi, p := range room.Placements {
			if p.Key == key {
				room.Placements = append(room.Placements[:pi:pi], room.Placements[pi+1:]...)
				return p, true
			}
		}
	}
	return Placement{}, false
}

// AppendPlacement adds p to the room with roomID. It reports false if the
// design has no such room.
func (d *Design) AppendPlacement(roomID string, p Placement) bool {
	for ri := range d.Rooms {
		if d.Rooms[ri].ID == roomID {
			d.Rooms[ri].Placements = append(d.Rooms[ri].Placements, p)
			return true
		}
	}
	return false
}

// SetTarget records a target budget on the design.
func (m *Metadata) SetTarget(target int) {
	m.TargetBudgetUSD = &target
}

// Target returns the recorded target budget, if any.
func (m Metadata) Target() (int, bool) {
	if m.TargetBudgetUSD == nil {
		return 0, false
	}
	return *m.TargetBudgetUSD, true
}

// PlacementID composes the synthetic id of a placement.
func PlacementID(layout LayoutID, roomID, key string) string {
	return string(layout) + "-" + roomID + "-" + key
}
