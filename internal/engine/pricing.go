// Package engine builds, prices and budget-optimizes kitchen designs.
// Every function here is a pure data transform: no I/O, no logging, and
// inputs are never mutated.
package engine

import (
	"github.com/piwi3910/CabinetPlan/internal/model"
	"github.com/shopspring/decimal"
)

// DefaultDepositRate is the share of the total collected up front.
const DefaultDepositRate = 0.2

// Price returns the design total: the sum of module base costs times the door
// and top multipliers, rounded to the nearest whole dollar. Placement order
// does not affect the result.
func Price(design model.Design) (int, error) {
	subtotal := 0
	for _, room := range design.Rooms {
		for _, p := range room.Placements {
			spec, err := model.LookupModule(p.ModuleID)
			if err != nil {
				return 0, err
			}
			subtotal += spec.BaseCostUSD
		}
	}
	multiplier, err := finishesMultiplier(design.Door, design.Top)
	if err != nil {
		return 0, err
	}
	return roundUSD(decimal.NewFromInt(int64(subtotal)).Mul(multiplier)), nil
}

func finishesMultiplier(door, top string) (decimal.Decimal, error) {
	d, err := model.LookupDoor(door)
	if err != nil {
		return decimal.Zero, err
	}
	t, err := model.LookupTop(top)
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromFloat(d.Multiplier).Mul(decimal.NewFromFloat(t.Multiplier)), nil
}

// roundUSD rounds half away from zero.
func roundUSD(v decimal.Decimal) int {
	return int(v.Round(0).IntPart())
}

// PricingBreakdown itemizes a price for checkout.
type PricingBreakdown struct {
	ModuleSubtotalUSD  int     `json:"moduleSubtotalUSD"`
	DoorMultiplier     float64 `json:"doorMultiplier"`
	TopMultiplier      float64 `json:"topMultiplier"`
	FinishesMultiplier float64 `json:"finishesMultiplier"`
	TotalUSD           int     `json:"totalUSD"`
	DepositUSD         int     `json:"depositUSD"`
}

// CalculatePricing prices a bare list of modules under a finish pair. An empty
// list yields zero totals while still reporting the finish multipliers.
func CalculatePricing(moduleIDs []model.ModuleID, door, top string, depositRate float64) (PricingBreakdown, error) {
	d, err := model.LookupDoor(door)
	if err != nil {
		return PricingBreakdown{}, err
	}
	t, err := model.LookupTop(top)
	if err != nil {
		return PricingBreakdown{}, err
	}
	if depositRate < 0 || depositRate > 1 {
		return PricingBreakdown{}, model.NewError(model.ErrCodeInvalidInput, "deposit rate %v outside [0, 1]", depositRate)
	}

	breakdown := PricingBreakdown{
		DoorMultiplier: d.Multiplier,
		TopMultiplier:  t.Multiplier,
	}
	if len(moduleIDs) == 0 {
		return breakdown, nil
	}

	design, err := pricingDesign(moduleIDs, door, top)
	if err != nil {
		return PricingBreakdown{}, err
	}
	total, err := Price(design)
	if err != nil {
		return PricingBreakdown{}, err
	}
	for _, p := range design.Placements() {
		spec, _ := model.LookupModule(p.ModuleID)
		breakdown.ModuleSubtotalUSD += spec.BaseCostUSD
	}

	finishes := decimal.NewFromFloat(d.Multiplier).Mul(decimal.NewFromFloat(t.Multiplier))
	breakdown.FinishesMultiplier = finishes.InexactFloat64()
	breakdown.TotalUSD = total
	breakdown.DepositUSD = roundUSD(decimal.NewFromInt(int64(total)).Mul(decimal.NewFromFloat(depositRate)))
	return breakdown, nil
}

// pricingDesign wraps loose modules in a single synthetic room so they go
// through the same Price path as built designs.
func pricingDesign(moduleIDs []model.ModuleID, door, top string) (model.Design, error) {
	room := model.Room{ID: "pricing", Label: "Pricing"}
	for i, id := range moduleIDs {
		spec, err := model.LookupModule(id)
		if err != nil {
			return model.Design{}, err
		}
		key := model.PlacementKey("pricing", id, i)
		room.Placements = append(room.Placements, newPlacement(model.LayoutBackKitchen, room.ID, key, model.PlacementDefinition{ModuleID: id}, spec, model.SourceBase, false))
	}
	return model.Design{
		Layout: model.LayoutBackKitchen,
		Name:   "Pricing Synthetic Layout",
		Door:   door,
		Top:    top,
		Rooms:  []model.Room{room},
	}, nil
}
