// Package generate produces a spread of budget variants for a set of layouts
// and writes each one to its own artifact directory.
package generate

import (
	"context"
	"fmt"
	"math"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/piwi3910/CabinetPlan/internal/engine"
	"github.com/piwi3910/CabinetPlan/internal/model"
	"github.com/piwi3910/CabinetPlan/internal/project"
	"github.com/piwi3910/CabinetPlan/internal/store"
	"golang.org/x/sync/errgroup"
)

// MaxVariants is the largest number of variants made per layout.
const MaxVariants = 4

var requestValidate = validator.New()

// Request describes one generation run. Empty Layouts means every layout.
// Count 0 takes the configured default; other values are clamped to
// 1..MaxVariants. Unknown finish tokens fall back to the configured defaults.
type Request struct {
	Layouts   []string `json:"layouts" yaml:"layouts" validate:"dive,required"`
	Count     int      `json:"count" yaml:"count"`
	Door      string   `json:"door" yaml:"door"`
	Top       string   `json:"top" yaml:"top"`
	BudgetUSD int      `json:"budget_usd" yaml:"budget_usd" validate:"gte=0"`
}

// VariantSummary describes one generated variant.
type VariantSummary struct {
	VariantID       string                `json:"variant_id"`
	Layout          model.LegacyID        `json:"layout"`
	LayoutCanonical model.LayoutID        `json:"layout_canonical"`
	TargetUSD       int                   `json:"target_usd"`
	PriceUSD        int                   `json:"price_usd"`
	OpsCount        int                   `json:"ops_count"`
	Operations      model.Operations      `json:"operations"`
	Files           project.ArtifactPaths `json:"files"`
	Design          model.Design          `json:"design"`
}

// Output is the result of a run. Results is keyed by canonical layout id;
// Layouts keeps the resolved request order.
type Output struct {
	RunID   string                              `json:"run_id"`
	Layouts []model.LayoutID                    `json:"layouts"`
	Results map[model.LayoutID][]VariantSummary `json:"results"`
}

// Generator runs generation requests against one configuration.
type Generator struct {
	Builder *engine.Builder
	Config  model.AppConfig
	Logger  *log.Logger
	Metrics *Metrics
	// History records each run when set.
	History *store.History

	// NewRunID and NewVariantSuffix default to random hex ids. They are
	// called from concurrent goroutines.
	NewRunID         func() string
	NewVariantSuffix func() string
}

// New returns a Generator with wall-clock building and random ids.
func New(config model.AppConfig) *Generator {
	return &Generator{
		Builder:          engine.NewBuilder(),
		Config:           config,
		Logger:           log.Default(),
		NewRunID:         func() string { return randomID(8) },
		NewVariantSuffix: func() string { return randomID(6) },
	}
}

func randomID(n int) string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:n]
}

// Targets spreads count target prices around center using multipliers in
// order, rounding each to whole dollars.
func Targets(center int, multipliers []float64, count int) []int {
	if count > len(multipliers) {
		count = len(multipliers)
	}
	targets := make([]int, 0, count)
	for _, f := range multipliers[:count] {
		targets = append(targets, int(math.Round(float64(center)*f)))
	}
	return targets
}

// ResolveLayouts normalizes ids to canonical layouts, dropping repeats. An
// empty list resolves to every layout.
func ResolveLayouts(ids []string) ([]model.LayoutID, error) {
	if len(ids) == 0 {
		return model.LayoutIDs(), nil
	}
	seen := make(map[model.LayoutID]bool, len(ids))
	var layouts []model.LayoutID
	for _, id := range ids {
		layout, err := model.NormalizeLayoutID(id)
		if err != nil {
			return nil, err
		}
		if seen[layout] {
			continue
		}
		seen[layout] = true
		layouts = append(layouts, layout)
	}
	return layouts, nil
}

func (g *Generator) clampCount(n int) int {
	if n == 0 {
		n = g.Config.VariantsPerLayout
	}
	n = max(1, min(n, MaxVariants))
	return min(n, len(g.multipliers()))
}

func (g *Generator) multipliers() []float64 {
	if len(g.Config.BudgetMultipliers) == 0 {
		return model.DefaultBudgetMultipliers()
	}
	return g.Config.BudgetMultipliers
}

func resolveFinish(kind model.FinishKind, token, fallback string) string {
	token = strings.ToUpper(strings.TrimSpace(token))
	if token == "" {
		return fallback
	}
	if _, err := model.LookupFinish(kind, token); err != nil {
		return fallback
	}
	return token
}

func (g *Generator) builder() *engine.Builder {
	if g.Builder == nil {
		return engine.NewBuilder()
	}
	return g.Builder
}

func (g *Generator) now() time.Time {
	if b := g.builder(); b.Now != nil {
		return b.Now()
	}
	return time.Now()
}

func (g *Generator) runID() string {
	if g.NewRunID == nil {
		return randomID(8)
	}
	return g.NewRunID()
}

func (g *Generator) variantSuffix() string {
	if g.NewVariantSuffix == nil {
		return randomID(6)
	}
	return g.NewVariantSuffix()
}

func (g *Generator) logger() *log.Logger {
	if g.Logger == nil {
		return log.Default()
	}
	return g.Logger
}

// Generate builds every requested layout, optimizes one copy per target and
// writes the artifacts. Layouts run concurrently up to Config.Concurrency;
// results keep request order and per-layout variant order.
func (g *Generator) Generate(ctx context.Context, req Request) (Output, error) {
	start := time.Now()
	if err := requestValidate.Struct(req); err != nil {
		return Output{}, model.WrapError(model.ErrCodeInvalidInput, err, "invalid generation request")
	}
	layouts, err := ResolveLayouts(req.Layouts)
	if err != nil {
		return Output{}, err
	}

	count := g.clampCount(req.Count)
	door := resolveFinish(model.FinishDoor, req.Door, g.Config.DefaultDoor)
	top := resolveFinish(model.FinishTop, req.Top, g.Config.DefaultTop)
	runID := g.runID()

	logger := g.logger().With("run", runID)
	logger.Info("Generating variants", "layouts", len(layouts), "count", count, "door", door, "top", top, "budget", req.BudgetUSD)

	results := make([][]VariantSummary, len(layouts))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(max(1, g.Config.Concurrency))
	for i, layout := range layouts {
		eg.Go(func() error {
			variants, err := g.generateLayout(egCtx, logger, runID, layout, count, door, top, req.BudgetUSD)
			if err != nil {
				return fmt.Errorf("layout %s: %w", layout, err)
			}
			results[i] = variants
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return Output{}, err
	}

	out := Output{RunID: runID, Layouts: layouts, Results: make(map[model.LayoutID][]VariantSummary, len(layouts))}
	for i, layout := range layouts {
		out.Results[layout] = results[i]
	}

	if g.History != nil {
		if err := g.History.RecordRun(ctx, g.historyRun(out, door, top, req.BudgetUSD)); err != nil {
			return Output{}, err
		}
		logger.Debug("Recorded run in history")
	}

	elapsed := time.Since(start)
	g.Metrics.observeRun(elapsed)
	logger.Info("Generation complete", "variants", out.VariantCount(), "elapsed", elapsed.Round(time.Millisecond))
	return out, nil
}

func (g *Generator) generateLayout(ctx context.Context, logger *log.Logger, runID string, layout model.LayoutID, count int, door, top string, budget int) ([]VariantSummary, error) {
	legacy, err := model.Legacy(layout)
	if err != nil {
		return nil, err
	}
	base, err := g.builder().Build(string(layout), door, top)
	if err != nil {
		return nil, err
	}
	basePrice := base.Metadata.CurrentPriceUSD

	center := basePrice
	if budget > 0 {
		center = budget
	}
	targets := Targets(center, g.multipliers(), count)
	logger.Debug("Derived targets", "layout", layout, "base", basePrice, "targets", targets)

	variants := make([]VariantSummary, 0, len(targets))
	for i, target := range targets {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		final := base
		var ops []model.Operation
		if target != basePrice {
			res, err := engine.OptimizeToBudget(base, float64(target))
			if err != nil {
				return nil, err
			}
			final, ops = res.Final, res.Ops
		}
		if err := engine.AssertInvariants(final); err != nil {
			return nil, err
		}

		variantID := fmt.Sprintf("%s-%s-v%d-%s", legacy, runID, i+1, g.variantSuffix())
		dir := filepath.Join(g.Config.ArtifactRoot, string(layout), variantID)
		files, err := project.WriteArtifacts(dir, final, project.ArtifactOptionsFromConfig(g.Config))
		if err != nil {
			return nil, err
		}

		if ops == nil {
			ops = []model.Operation{}
		}
		variants = append(variants, VariantSummary{
			VariantID:       variantID,
			Layout:          legacy,
			LayoutCanonical: layout,
			TargetUSD:       target,
			PriceUSD:        final.Metadata.CurrentPriceUSD,
			OpsCount:        len(ops),
			Operations:      ops,
			Files:           files,
			Design:          final,
		})
		g.Metrics.observeVariant(layout, ops)
		logger.Debug("Wrote variant", "variant", variantID, "target", target, "price", final.Metadata.CurrentPriceUSD, "ops", len(ops))
	}
	return variants, nil
}

func (g *Generator) historyRun(out Output, door, top string, budget int) store.Run {
	run := store.Run{
		ID:        out.RunID,
		CreatedAt: g.now().UTC().Format(time.RFC3339),
		Door:      door,
		Top:       top,
		BudgetUSD: budget,
	}
	for _, layout := range out.Layouts {
		run.Layouts = append(run.Layouts, string(layout))
		for _, v := range out.Results[layout] {
			run.Variants = append(run.Variants, store.Variant{
				ID:        v.VariantID,
				Layout:    string(layout),
				TargetUSD: v.TargetUSD,
				PriceUSD:  v.PriceUSD,
				OpsCount:  v.OpsCount,
				Root:      v.Files.Root,
			})
		}
	}
	return run
}

// VariantCount returns the number of variants across all layouts.
func (o Output) VariantCount() int {
	n := 0
	for _, v := range o.Results {
		n += len(v)
	}
	return n
}

// Variants returns every variant in layout order.
func (o Output) Variants() []VariantSummary {
	var all []VariantSummary
	for _, layout := range o.Layouts {
		all = append(all, o.Results[layout]...)
	}
	return all
}
