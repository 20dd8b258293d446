package cli

import (
	"path/filepath"

	"github.com/piwi3910/CabinetPlan/internal/engine"
	"github.com/piwi3910/CabinetPlan/internal/model"
	"github.com/piwi3910/CabinetPlan/internal/project"
	"github.com/spf13/cobra"
)

func (c *CLI) exportCommand() *cobra.Command {
	var out string
	var extras []string

	cmd := &cobra.Command{
		Use:   "export <design.json>",
		Short: "Write artifacts for a saved design",
		Long: `Load a design.json, check its invariants and write the plan, mesh, BOM and cutlist next to it (or to --out).
--extra adds any of: pdf (quote sheet), labels (QR placement labels), xlsx (BOM workbook), dxf (CAD plan).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validFormat(c.format); err != nil {
				return err
			}
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("extra") {
				cfg.ExtraExports = extras
				if err := cfg.Validate(); err != nil {
					return err
				}
			}

			design, err := project.LoadDesign(args[0])
			if err != nil {
				return err
			}
			if err := engine.AssertInvariants(design); err != nil {
				return err
			}
			summary, err := engine.Summarize(design)
			if err != nil {
				return err
			}
			c.Logger.Info("Loaded design", "layout", summary.Layout, "modules", summary.Modules, "price", summary.PriceUSD, "operations", summary.Operations)
			if summary.Operations == 0 {
				baseline, err := engine.NewBuilder().Build(string(design.Layout), design.Door, design.Top)
				if err == nil && !engine.DeterministicEqual(design, baseline) {
					c.Logger.Warn("Design has no operations but differs from its layout baseline", "layout", design.Layout)
				}
			}

			dir := out
			if dir == "" {
				dir = filepath.Dir(args[0])
			}
			paths, err := project.WriteArtifacts(dir, design, project.ArtifactOptionsFromConfig(cfg))
			if err != nil {
				return err
			}
			c.Logger.Debug("Exported design", "layout", design.Layout, "dir", dir)

			w := cmd.OutOrStdout()
			if c.format != formatTable {
				return writeStructured(w, c.format, paths)
			}
			printSuccess(w, "Exported %s to %s", design.Layout, paths.Root)
			for _, p := range []string{paths.PlanSVG, paths.ModelOBJ, paths.BOMCSV, paths.CutCSV, paths.QuotePDF, paths.LabelsPDF, paths.Workbook, paths.PlanDXF} {
				if p != "" {
					printDetail(w, "%s", p)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "output directory (default: the design's directory)")
	cmd.Flags().StringSliceVar(&extras, "extra", nil, "extra exports: "+joinTokens([]string{model.ExportQuotePDF, model.ExportLabelsPDF, model.ExportWorkbook, model.ExportDXF}))
	return cmd
}
