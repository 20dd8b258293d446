package engine

import (
	"slices"

	"github.com/piwi3910/CabinetPlan/internal/model"
)

// DesignSummary is a compact description of a design.
type DesignSummary struct {
	Layout     model.LayoutID `json:"layout"`
	PriceUSD   int            `json:"priceUSD"`
	Modules    int            `json:"modules"`
	Operations int            `json:"operations"`
}

// Summarize prices design and counts its placements and logged operations.
func Summarize(design model.Design) (DesignSummary, error) {
	price, err := Price(design)
	if err != nil {
		return DesignSummary{}, err
	}
	return DesignSummary{
		Layout:     design.Layout,
		PriceUSD:   price,
		Modules:    design.PlacementCount(),
		Operations: len(design.Operations),
	}, nil
}

type placementFingerprint struct {
	roomID   string
	moduleID model.ModuleID
	x, y     float64
}

func fingerprint(design model.Design) []placementFingerprint {
	var out []placementFingerprint
	for _, r := range design.Rooms {
		for _, p := range r.Placements {
			out = append(out, placementFingerprint{roomID: r.ID, moduleID: p.ModuleID, x: p.X, y: p.Y})
		}
	}
	return out
}

// DeterministicEqual reports whether two designs have the same layout, the
// same finishes and the same rooms holding the same modules at the same
// coordinates in the same order. Ids, timestamps and logs are ignored.
func DeterministicEqual(a, b model.Design) bool {
	if a.Layout != b.Layout || a.Door != b.Door || a.Top != b.Top || len(a.Rooms) != len(b.Rooms) {
		return false
	}
	for i := range a.Rooms {
		if a.Rooms[i].ID != b.Rooms[i].ID {
			return false
		}
	}
	return slices.Equal(fingerprint(a), fingerprint(b))
}
