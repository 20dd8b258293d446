package cli

import (
	"fmt"

	"github.com/piwi3910/CabinetPlan/internal/engine"
	"github.com/piwi3910/CabinetPlan/internal/importer"
	"github.com/piwi3910/CabinetPlan/internal/model"
	"github.com/spf13/cobra"
)

// priceOutput is the structured result of the price command.
type priceOutput struct {
	Source    string                 `json:"source"`
	Door      string                 `json:"door"`
	Top       string                 `json:"top"`
	Modules   int                    `json:"modules"`
	Breakdown engine.PricingBreakdown `json:"breakdown"`
}

func (c *CLI) priceCommand() *cobra.Command {
	var door, top, file string
	var deposit float64

	cmd := &cobra.Command{
		Use:   "price [layout]",
		Short: "Price a layout or an imported module list",
		Long: `Price the baseline of a layout, or with --file a module list imported from CSV, Excel or DXF.
CSV and Excel files need a module column (module, sku, code...) and may carry a quantity column.
DXF plans are read by their module label texts.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validFormat(c.format); err != nil {
				return err
			}
			if (file == "") == (len(args) == 0) {
				return model.NewError(model.ErrCodeInvalidInput, "give either a layout or --file")
			}
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			door, top := finishOrDefault(door, cfg.DefaultDoor), finishOrDefault(top, cfg.DefaultTop)
			rate := cfg.DepositRate
			if cmd.Flags().Changed("deposit") {
				rate = deposit
			}

			var ids []model.ModuleID
			source := file
			if file != "" {
				ids, err = c.importModules(file)
			} else {
				ids, source, err = layoutModules(args[0], door, top)
			}
			if err != nil {
				return err
			}

			breakdown, err := engine.CalculatePricing(ids, door, top, rate)
			if err != nil {
				return err
			}
			out := priceOutput{Source: source, Door: door, Top: top, Modules: len(ids), Breakdown: breakdown}
			return c.printPrice(cmd, out, rate)
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "module list to price (.csv, .xlsx or .dxf)")
	cmd.Flags().StringVar(&door, "door", "", finishUsage(model.FinishDoor))
	cmd.Flags().StringVar(&top, "top", "", finishUsage(model.FinishTop))
	cmd.Flags().Float64Var(&deposit, "deposit", 0, "deposit rate between 0 and 1 (default from config)")
	return cmd
}

func (c *CLI) importModules(path string) ([]model.ModuleID, error) {
	result := importer.ImportFile(path)
	for _, warning := range result.Warnings {
		c.Logger.Warn(warning, "file", path)
	}
	if err := result.Err(); err != nil {
		return nil, err
	}
	c.Logger.Debug("Imported modules", "file", path, "lines", len(result.Lines), "modules", result.Quantity())
	return result.ModuleIDs(), nil
}

func layoutModules(layout, door, top string) ([]model.ModuleID, string, error) {
	design, err := engine.NewBuilder().Build(layout, door, top)
	if err != nil {
		return nil, "", err
	}
	ids := make([]model.ModuleID, 0, design.PlacementCount())
	for _, p := range design.Placements() {
		ids = append(ids, p.ModuleID)
	}
	return ids, string(design.Layout), nil
}

func (c *CLI) printPrice(cmd *cobra.Command, out priceOutput, rate float64) error {
	w := cmd.OutOrStdout()
	if c.format != formatTable {
		return writeStructured(w, c.format, out)
	}

	b := out.Breakdown
	printTitle(w, "%s (%d modules)", out.Source, out.Modules)
	renderTable(w, []string{"Item", "Value"}, [][]string{
		{"Module subtotal", usd(b.ModuleSubtotalUSD)},
		{"Door " + out.Door, fmt.Sprintf("x%.2f", b.DoorMultiplier)},
		{"Top " + out.Top, fmt.Sprintf("x%.2f", b.TopMultiplier)},
		{"Finishes", fmt.Sprintf("x%.3f", b.FinishesMultiplier)},
		{"Total", usd(b.TotalUSD)},
		{fmt.Sprintf("Deposit (%.0f%%)", rate*100), usd(b.DepositUSD)},
	})
	return nil
}
