package engine

import (
	"math"

	"github.com/piwi3910/CabinetPlan/internal/model"
)

// Result is the outcome of a budget optimization.
type Result struct {
	Final model.Design      `json:"final"`
	Ops   []model.Operation `json:"ops"`
}

// budgetRun carries the working state of one OptimizeToBudget call.
type budgetRun struct {
	tmpl   model.LayoutTemplate
	design model.Design
	target int
	price  int
	ops    []model.Operation
}

// OptimizeToBudget steers a copy of design toward target using the layout's
// levers in fixed order: geometry (removal order or addition queue), then the
// door finish, then the top finish. Each phase makes at most one pass and
// never backtracks, so the outcome is fully determined by the inputs. The
// input design is not modified.
//
// Every step moves the price toward the target as seen before that step.
// A finish swap can carry the price past the target and end further from it
// than the input was; the phases do not compare distances.
//
// A target that rounds to zero only records the target; placements are kept.
func OptimizeToBudget(design model.Design, targetBudget float64) (Result, error) {
	if math.IsNaN(targetBudget) || math.IsInf(targetBudget, 0) || targetBudget < 0 {
		return Result{}, model.NewError(model.ErrCodeInvalidInput, "target budget must be a finite value >= 0, got %v", targetBudget)
	}
	tmpl, err := model.ResolveLayout(string(design.Layout))
	if err != nil {
		return Result{}, err
	}

	run := &budgetRun{
		tmpl:   tmpl,
		design: design.Clone(),
		target: int(math.Round(targetBudget)),
		ops:    []model.Operation{},
	}
	if err := run.reprice(); err != nil {
		return Result{}, err
	}

	if run.target == 0 {
		run.design.Metadata.SetTarget(0)
		return Result{Final: run.design, Ops: run.ops}, nil
	}

	switch {
	case run.price > run.target:
		if err := run.removeDown(); err != nil {
			return Result{}, err
		}
	case run.price < run.target:
		if err := run.addUp(); err != nil {
			return Result{}, err
		}
	}

	for _, kind := range []model.FinishKind{model.FinishDoor, model.FinishTop} {
		if err := run.swapFinish(kind); err != nil {
			return Result{}, err
		}
	}

	run.design.Operations = append(run.design.Operations, run.ops...)
	run.design.Metadata.SetTarget(run.target)
	return Result{Final: run.design, Ops: run.ops}, nil
}

// reprice recomputes the price and keeps the design metadata in step with it.
func (r *budgetRun) reprice() error {
	price, err := Price(r.design)
	if err != nil {
		return err
	}
	r.price = price
	r.design.Metadata.CurrentPriceUSD = price
	return nil
}

func (r *budgetRun) removeDown() error {
	for _, key := range r.tmpl.RemovalOrder {
		if r.price <= r.target {
			return nil
		}
		removed, ok := r.design.RemovePlacement(key)
		if !ok {
			continue
		}
		if err := r.reprice(); err != nil {
			return err
		}
		r.ops = append(r.ops, model.RemoveOp{
			ModuleID: removed.ModuleID,
			RoomID:   removed.RoomID,
			Key:      key,
			Reason:   model.ReasonBudgetDown,
		})
	}
	return nil
}

func (r *budgetRun) addUp() error {
	for _, def := range r.tmpl.AdditionQueue {
		if r.price >= r.target {
			return nil
		}
		key := def.Key
		if key == "" {
			key = model.PlacementKey("addition", def.ModuleID, 0)
		}
		if r.design.HasPlacement(key) {
			continue
		}
		spec, err := model.LookupModule(def.ModuleID)
		if err != nil {
			return err
		}
		roomID := r.tmpl.RoomFor(def)
		placement := newPlacement(r.design.Layout, roomID, key, def, spec, model.SourceAdded, true)
		if !r.design.AppendPlacement(roomID, placement) {
			return model.NewError(model.ErrCodeInvalidLayoutTemplate, "room %q not found in %s design for addition %q", roomID, r.design.Layout, key)
		}
		if err := r.reprice(); err != nil {
			return err
		}
		r.ops = append(r.ops, model.AddOp{
			ModuleID: spec.ID,
			RoomID:   roomID,
			Key:      key,
			Reason:   model.ReasonBudgetUp,
		})
	}
	return nil
}

// swapFinish moves one finish slot to its cheapest option when over target,
// or its most premium option when under, unless it already holds it.
func (r *budgetRun) swapFinish(kind model.FinishKind) error {
	if err := r.reprice(); err != nil {
		return err
	}

	var want model.MaterialOption
	var reason model.Reason
	switch {
	case r.price > r.target:
		want, reason = model.CheapestFinish(kind), model.ReasonBudgetDown
	case r.price < r.target:
		want, reason = model.PremiumFinish(kind), model.ReasonBudgetUp
	default:
		return nil
	}

	slot := &r.design.Door
	if kind == model.FinishTop {
		slot = &r.design.Top
	}
	if *slot == want.Token {
		return nil
	}

	from := *slot
	*slot = want.Token
	if err := r.reprice(); err != nil {
		return err
	}
	r.ops = append(r.ops, model.FinishOp{
		FinishType: kind,
		From:       from,
		To:         want.Token,
		Reason:     reason,
	})
	return nil
}
