package cli

import (
	"strconv"

	"github.com/piwi3910/CabinetPlan/internal/generate"
	"github.com/piwi3910/CabinetPlan/internal/model"
	"github.com/piwi3910/CabinetPlan/internal/project"
	"github.com/spf13/cobra"
)

// generateOptions holds flags for the generate command.
type generateOptions struct {
	layouts     []string
	count       int
	budget      int
	door        string
	top         string
	preset      string
	artifacts   string
	extras      []string
	metricsFile string
	noHistory   bool
}

func (c *CLI) generateCommand() *cobra.Command {
	var opts generateOptions

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate budget variants with artifacts",
		Long: `Generate up to four variants per layout. Targets spread around --budget (or the baseline price
when no budget is given) by the configured multipliers; each target is optimized and written to
<artifact_root>/<layout>/<variant_id>/ with design.json, plan.svg, model.obj, bom.csv and cutlist.csv.

A --preset fills layout, finishes and budget from the preset store; explicit flags win.`,
		Example: `  cabinetplan generate --layout TWO_X_KITCHEN --budget 20000
  cabinetplan generate --count 2 --door DFHS --extra pdf,dxf
  cabinetplan generate --preset "Family kitchen" --metrics-file gen.prom`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGenerate(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringSliceVarP(&opts.layouts, "layout", "l", nil, "layouts to generate, canonical or legacy ids (default: all)")
	flags.IntVarP(&opts.count, "count", "n", 0, "variants per layout, 1-4 (default from config)")
	flags.IntVarP(&opts.budget, "budget", "b", 0, "center budget in USD (default: each layout's baseline price)")
	flags.StringVar(&opts.door, "door", "", finishUsage(model.FinishDoor))
	flags.StringVar(&opts.top, "top", "", finishUsage(model.FinishTop))
	flags.StringVar(&opts.preset, "preset", "", "preset name or id to start from")
	flags.StringVar(&opts.artifacts, "artifacts", "", "artifact root (default from config)")
	flags.StringSliceVar(&opts.extras, "extra", nil, "extra exports per variant: pdf, labels, xlsx, dxf")
	flags.StringVar(&opts.metricsFile, "metrics-file", "", "write Prometheus metrics to this textfile")
	flags.BoolVar(&opts.noHistory, "no-history", false, "do not record the run in the history database")
	return cmd
}

func (c *CLI) runGenerate(cmd *cobra.Command, opts generateOptions) error {
	if err := validFormat(c.format); err != nil {
		return err
	}
	ctx := cmd.Context()
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if opts.artifacts != "" {
		cfg.ArtifactRoot = opts.artifacts
	}
	if cmd.Flags().Changed("extra") {
		cfg.ExtraExports = opts.extras
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	req := generate.Request{
		Layouts:   opts.layouts,
		Count:     opts.count,
		Door:      opts.door,
		Top:       opts.top,
		BudgetUSD: opts.budget,
	}
	if opts.preset != "" {
		if err := c.applyPreset(cmd, opts.preset, &req); err != nil {
			return err
		}
	}

	gen := generate.New(cfg)
	gen.Logger = c.Logger
	if opts.metricsFile != "" {
		gen.Metrics = generate.NewMetrics()
	}
	if !opts.noHistory {
		history, err := c.openHistory(ctx, cfg)
		if err != nil {
			return err
		}
		if history != nil {
			defer history.Close()
			gen.History = history
		}
	}

	out, err := gen.Generate(ctx, req)
	if err != nil {
		return err
	}

	if gen.Metrics != nil {
		if err := gen.Metrics.WriteToTextfile(opts.metricsFile); err != nil {
			return err
		}
		c.Logger.Debug("Wrote metrics", "path", opts.metricsFile)
	}
	if fileExists(c.configPath) {
		cfg.RememberRun(out.RunID)
		if err := project.SaveConfig(c.configPath, cfg); err != nil {
			c.Logger.Warn("Could not remember run", "err", err)
		}
	}

	return c.printGenerate(cmd, out)
}

// applyPreset fills request fields the user did not set explicitly.
func (c *CLI) applyPreset(cmd *cobra.Command, ref string, req *generate.Request) error {
	presets, err := project.LoadPresets(c.presetPath)
	if err != nil {
		return err
	}
	p := presets.FindByName(ref)
	if p == nil {
		p = presets.FindByID(ref)
	}
	if p == nil {
		return model.NewError(model.ErrCodeInvalidInput, "preset %q not found in %s", ref, c.presetPath)
	}

	flags := cmd.Flags()
	if !flags.Changed("layout") {
		req.Layouts = []string{string(p.Layout)}
	}
	if !flags.Changed("door") {
		req.Door = p.Door
	}
	if !flags.Changed("top") {
		req.Top = p.Top
	}
	if !flags.Changed("budget") {
		req.BudgetUSD = p.BudgetUSD
	}
	c.Logger.Info("Using preset", "name", p.Name, "layout", p.Layout, "budget", p.BudgetUSD)
	return nil
}

func (c *CLI) printGenerate(cmd *cobra.Command, out generate.Output) error {
	w := cmd.OutOrStdout()
	if c.format != formatTable {
		return writeStructured(w, c.format, out)
	}

	printTitle(w, "Run %s", out.RunID)
	for _, layout := range out.Layouts {
		variants := out.Results[layout]
		if len(variants) == 0 {
			continue
		}
		printInfo(w, "%s (%s)", layout, variants[0].Layout)
		rows := make([][]string, 0, len(variants))
		for _, v := range variants {
			rows = append(rows, []string{
				v.VariantID,
				usd(v.TargetUSD),
				usd(v.PriceUSD),
				signedUSD(v.PriceUSD - v.TargetUSD),
				strconv.Itoa(v.OpsCount),
				v.Design.Door + "/" + v.Design.Top,
			})
		}
		renderTable(w, []string{"Variant", "Target", "Price", "Delta", "Ops", "Finishes"}, rows)
	}
	printSuccess(w, "%d variants written", out.VariantCount())
	return nil
}
