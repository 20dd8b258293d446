package engine

import "github.com/piwi3910/CabinetPlan/internal/model"

// AssertInvariants checks that placement ids are unique and that the stored
// current price matches a fresh pricing of the design.
func AssertInvariants(design model.Design) error {
	seen := make(map[string]bool, design.PlacementCount())
	for _, p := range design.Placements() {
		if seen[p.ID] {
			return model.NewError(model.ErrCodeDuplicatePlacementID, "duplicate placement id %q", p.ID)
		}
		seen[p.ID] = true
	}

	price, err := Price(design)
	if err != nil {
		return err
	}
	if price != design.Metadata.CurrentPriceUSD {
		return model.NewError(model.ErrCodePriceMismatch, "stored price %d, recomputed %d", design.Metadata.CurrentPriceUSD, price)
	}
	return nil
}
