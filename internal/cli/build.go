package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/piwi3910/CabinetPlan/internal/engine"
	"github.com/piwi3910/CabinetPlan/internal/model"
	"github.com/piwi3910/CabinetPlan/internal/project"
	"github.com/spf13/cobra"
)

// finishOrDefault uppercases token, or returns fallback when it is empty.
// Unknown tokens are left for the builder to reject.
func finishOrDefault(token, fallback string) string {
	token = strings.ToUpper(strings.TrimSpace(token))
	if token == "" {
		return fallback
	}
	return token
}

func (c *CLI) buildCommand() *cobra.Command {
	var door, top, out string

	cmd := &cobra.Command{
		Use:   "build <layout>",
		Short: "Build the baseline design for a layout",
		Long:  `Build the baseline design for a layout (canonical or legacy id) under a finish pair and print its placements. With --out the design and its artifacts are written to that directory.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validFormat(c.format); err != nil {
				return err
			}
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}

			design, err := engine.NewBuilder().Build(args[0], finishOrDefault(door, cfg.DefaultDoor), finishOrDefault(top, cfg.DefaultTop))
			if err != nil {
				return err
			}
			c.Logger.Debug("Built design", "layout", design.Layout, "placements", design.PlacementCount(), "price", design.Metadata.CurrentPriceUSD)

			if out != "" {
				paths, err := project.WriteArtifacts(out, design, project.ArtifactOptionsFromConfig(cfg))
				if err != nil {
					return err
				}
				c.Logger.Info("Wrote artifacts", "dir", paths.Root)
			}
			return c.printDesign(cmd, design)
		},
	}

	cmd.Flags().StringVar(&door, "door", "", finishUsage(model.FinishDoor))
	cmd.Flags().StringVar(&top, "top", "", finishUsage(model.FinishTop))
	cmd.Flags().StringVarP(&out, "out", "o", "", "write design.json and artifacts to this directory")
	return cmd
}

func (c *CLI) printDesign(cmd *cobra.Command, design model.Design) error {
	w := cmd.OutOrStdout()
	if c.format != formatTable {
		return writeStructured(w, c.format, design)
	}

	printTitle(w, "%s (%s)", design.Name, design.Layout)
	printDetail(w, "door %s, top %s", design.Door, design.Top)

	rows := make([][]string, 0, design.PlacementCount())
	for _, p := range design.Placements() {
		flag := ""
		switch {
		case p.Source == model.SourceAdded:
			flag = "added"
		case p.Optional:
			flag = "optional"
		}
		rows = append(rows, []string{
			p.RoomID,
			p.Key,
			string(p.ModuleID),
			strconv.FormatFloat(p.X, 'f', -1, 64),
			strconv.FormatFloat(p.Y, 'f', -1, 64),
			fmt.Sprintf("%gx%g", p.Width, p.Depth),
			flag,
		})
	}
	renderTable(w, []string{"Room", "Key", "Module", "X", "Y", "Size", ""}, rows)

	printInfo(w, "%d modules, %s", design.PlacementCount(), StyleNumber.Render(usd(design.Metadata.CurrentPriceUSD)))
	if target, ok := design.Metadata.Target(); ok {
		printDetail(w, "target %s, delta %s", usd(target), signedUSD(design.Metadata.CurrentPriceUSD-target))
	}
	return nil
}

// optimizeOutput is the structured result of the optimize command.
type optimizeOutput struct {
	BasePriceUSD int              `json:"base_price_usd"`
	TargetUSD    int              `json:"target_usd"`
	PriceUSD     int              `json:"price_usd"`
	Operations   model.Operations `json:"operations"`
	Design       model.Design     `json:"design"`
}

func (c *CLI) optimizeCommand() *cobra.Command {
	var door, top, out string
	var budget float64

	cmd := &cobra.Command{
		Use:   "optimize <layout>",
		Short: "Steer a layout toward a budget",
		Long:  `Build a layout and run the budget optimizer toward --budget. Removals and additions follow the layout's fixed priority lists, then the door and worktop finishes are swapped. The applied operations are printed in order.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validFormat(c.format); err != nil {
				return err
			}
			if !cmd.Flags().Changed("budget") {
				return model.NewError(model.ErrCodeInvalidInput, "--budget is required")
			}
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}

			design, err := engine.NewBuilder().Build(args[0], finishOrDefault(door, cfg.DefaultDoor), finishOrDefault(top, cfg.DefaultTop))
			if err != nil {
				return err
			}
			result, err := engine.OptimizeToBudget(design, budget)
			if err != nil {
				return err
			}
			if err := engine.AssertInvariants(result.Final); err != nil {
				return err
			}
			c.Logger.Debug("Optimized design", "layout", design.Layout, "ops", len(result.Ops), "price", result.Final.Metadata.CurrentPriceUSD)

			if out != "" {
				paths, err := project.WriteArtifacts(out, result.Final, project.ArtifactOptionsFromConfig(cfg))
				if err != nil {
					return err
				}
				c.Logger.Info("Wrote artifacts", "dir", paths.Root)
			}

			target, _ := result.Final.Metadata.Target()
			output := optimizeOutput{
				BasePriceUSD: design.Metadata.BasePriceUSD,
				TargetUSD:    target,
				PriceUSD:     result.Final.Metadata.CurrentPriceUSD,
				Operations:   result.Ops,
				Design:       result.Final,
			}
			return c.printOptimize(cmd, output)
		},
	}

	cmd.Flags().Float64VarP(&budget, "budget", "b", 0, "target budget in USD (required)")
	cmd.Flags().StringVar(&door, "door", "", finishUsage(model.FinishDoor))
	cmd.Flags().StringVar(&top, "top", "", finishUsage(model.FinishTop))
	cmd.Flags().StringVarP(&out, "out", "o", "", "write design.json and artifacts to this directory")
	return cmd
}

func (c *CLI) printOptimize(cmd *cobra.Command, out optimizeOutput) error {
	w := cmd.OutOrStdout()
	if c.format != formatTable {
		return writeStructured(w, c.format, out)
	}

	printTitle(w, "%s: %s %s %s (target %s)", out.Design.Layout, usd(out.BasePriceUSD), iconArrow, usd(out.PriceUSD), usd(out.TargetUSD))
	if len(out.Operations) == 0 {
		printInfo(w, "No operations applied")
	}
	for i, op := range out.Operations {
		printInfo(w, "%d. %s", i+1, model.DescribeOperation(op))
	}
	if out.TargetUSD > 0 && out.PriceUSD != out.TargetUSD {
		printDetail(w, "%s from target", signedUSD(out.PriceUSD-out.TargetUSD))
	}
	printSuccess(w, "%d modules, door %s, top %s", out.Design.PlacementCount(), out.Design.Door, out.Design.Top)
	return nil
}

func (c *CLI) compareCommand() *cobra.Command {
	var door, top string
	var budget int

	cmd := &cobra.Command{
		Use:   "compare <layout>",
		Short: "Compare finish and budget what-ifs for a layout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validFormat(c.format); err != nil {
				return err
			}
			if budget < 0 {
				return model.NewError(model.ErrCodeInvalidInput, "budget must be >= 0, got %d", budget)
			}
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}

			scenarios := engine.BuildDefaultScenarios(finishOrDefault(door, cfg.DefaultDoor), finishOrDefault(top, cfg.DefaultTop), budget)
			results, err := engine.CompareScenarios(engine.NewBuilder(), args[0], scenarios)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if c.format != formatTable {
				return writeStructured(w, c.format, results)
			}
			rows := make([][]string, 0, len(results))
			for _, r := range results {
				budgetCell, delta := "-", ""
				if r.Scenario.BudgetUSD > 0 {
					budgetCell, delta = usd(r.Scenario.BudgetUSD), signedUSD(r.DeltaUSD)
				}
				rows = append(rows, []string{
					r.Scenario.Name,
					r.Scenario.Door + "/" + r.Scenario.Top,
					budgetCell,
					usd(r.PriceUSD),
					delta,
					strconv.Itoa(r.OpsCount),
					strconv.Itoa(r.Modules),
				})
			}
			renderTable(w, []string{"Scenario", "Finishes", "Budget", "Price", "Delta", "Ops", "Modules"}, rows)
			return nil
		},
	}

	cmd.Flags().IntVarP(&budget, "budget", "b", 0, "budget in USD applied to every scenario")
	cmd.Flags().StringVar(&door, "door", "", finishUsage(model.FinishDoor))
	cmd.Flags().StringVar(&top, "top", "", finishUsage(model.FinishTop))
	return cmd
}
