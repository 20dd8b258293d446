package cli

import (
	"strconv"

	"github.com/piwi3910/CabinetPlan/internal/engine"
	"github.com/piwi3910/CabinetPlan/internal/model"
	"github.com/spf13/cobra"
)

// layoutInfo is one row of the layouts listing.
type layoutInfo struct {
	ID           model.LayoutID `json:"id"`
	Legacy       model.LegacyID `json:"legacy"`
	Name         string         `json:"name"`
	Summary      string         `json:"summary"`
	Rooms        int            `json:"rooms"`
	Placements   int            `json:"placements"`
	Removable    int            `json:"removable"`
	Additions    int            `json:"additions"`
	BasePriceUSD int            `json:"base_price_usd"`
}

func (c *CLI) layoutsCommand() *cobra.Command {
	var door, top string

	cmd := &cobra.Command{
		Use:   "layouts",
		Short: "List the layout templates",
		Long:  `List every layout template with its legacy alias, size and baseline price under the default (or given) finishes.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validFormat(c.format); err != nil {
				return err
			}
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			door, top = finishOrDefault(door, cfg.DefaultDoor), finishOrDefault(top, cfg.DefaultTop)

			infos, err := listLayouts(engine.NewBuilder(), door, top)
			if err != nil {
				return err
			}
			return c.printLayouts(cmd, infos, door, top)
		},
	}

	cmd.Flags().StringVar(&door, "door", "", "door finish token used for the baseline price")
	cmd.Flags().StringVar(&top, "top", "", "worktop finish token used for the baseline price")
	return cmd
}

func listLayouts(builder *engine.Builder, door, top string) ([]layoutInfo, error) {
	templates := model.Layouts()
	infos := make([]layoutInfo, 0, len(templates))
	for _, tmpl := range templates {
		legacy, err := model.Legacy(tmpl.ID)
		if err != nil {
			return nil, err
		}
		design, err := builder.Build(string(tmpl.ID), door, top)
		if err != nil {
			return nil, err
		}
		infos = append(infos, layoutInfo{
			ID:           tmpl.ID,
			Legacy:       legacy,
			Name:         tmpl.Name,
			Summary:      tmpl.Summary,
			Rooms:        len(tmpl.Rooms),
			Placements:   design.PlacementCount(),
			Removable:    len(tmpl.RemovalOrder),
			Additions:    len(tmpl.AdditionQueue),
			BasePriceUSD: design.Metadata.BasePriceUSD,
		})
	}
	return infos, nil
}

func (c *CLI) printLayouts(cmd *cobra.Command, infos []layoutInfo, door, top string) error {
	w := cmd.OutOrStdout()
	if c.format != formatTable {
		return writeStructured(w, c.format, infos)
	}

	printTitle(w, "Layouts (door %s, top %s)", door, top)
	rows := make([][]string, 0, len(infos))
	for _, info := range infos {
		rows = append(rows, []string{
			string(info.ID),
			string(info.Legacy),
			info.Name,
			strconv.Itoa(info.Placements),
			strconv.Itoa(info.Removable),
			strconv.Itoa(info.Additions),
			usd(info.BasePriceUSD),
		})
	}
	renderTable(w, []string{"Layout", "Legacy", "Name", "Modules", "Removable", "Additions", "Base"}, rows)
	return nil
}
