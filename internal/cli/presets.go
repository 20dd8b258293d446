package cli

import (
	"strings"

	"github.com/piwi3910/CabinetPlan/internal/model"
	"github.com/piwi3910/CabinetPlan/internal/project"
	"github.com/spf13/cobra"
)

func (c *CLI) presetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preset",
		Short: "Manage saved layout, finish and budget presets",
	}
	cmd.AddCommand(c.presetListCommand())
	cmd.AddCommand(c.presetSaveCommand())
	cmd.AddCommand(c.presetRemoveCommand())
	return cmd
}

func (c *CLI) presetListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validFormat(c.format); err != nil {
				return err
			}
			presets, err := project.LoadPresets(c.presetPath)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if c.format != formatTable {
				return writeStructured(w, c.format, presets)
			}
			if len(presets.Presets) == 0 {
				printInfo(w, "No presets in %s", c.presetPath)
				return nil
			}
			rows := make([][]string, 0, len(presets.Presets))
			for _, p := range presets.Presets {
				budget := "-"
				if p.BudgetUSD > 0 {
					budget = usd(p.BudgetUSD)
				}
				rows = append(rows, []string{p.ID, p.Name, string(p.Layout), p.Door + "/" + p.Top, budget, p.Description})
			}
			renderTable(w, []string{"ID", "Name", "Layout", "Finishes", "Budget", "Description"}, rows)
			return nil
		},
	}
}

func (c *CLI) presetSaveCommand() *cobra.Command {
	var layout, door, top, description string
	var budget int

	cmd := &cobra.Command{
		Use:   "save <name>",
		Short: "Save or replace a preset",
		Long:  `Save a preset under name. An existing preset with the same name is replaced and keeps its id.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			canonical, err := model.NormalizeLayoutID(layout)
			if err != nil {
				return err
			}
			presets, err := project.LoadPresets(c.presetPath)
			if err != nil {
				return err
			}

			p := model.NewPreset(args[0], description, canonical,
				finishOrDefault(door, cfg.DefaultDoor), finishOrDefault(top, cfg.DefaultTop), budget)
			if err := p.Validate(); err != nil {
				return err
			}
			if existing := presets.FindByName(p.Name); existing != nil {
				p.ID, p.CreatedAt = existing.ID, existing.CreatedAt
				*existing = p
			} else {
				presets.Add(p)
			}

			if err := project.SavePresets(c.presetPath, presets); err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), "Saved preset %s (%s)", p.Name, p.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&layout, "layout", "l", string(model.LayoutBackKitchen), "layout id")
	cmd.Flags().StringVar(&door, "door", "", finishUsage(model.FinishDoor))
	cmd.Flags().StringVar(&top, "top", "", finishUsage(model.FinishTop))
	cmd.Flags().IntVarP(&budget, "budget", "b", 0, "budget in USD (0 for the baseline price)")
	cmd.Flags().StringVarP(&description, "description", "d", "", "free-text description")
	return cmd
}

func (c *CLI) presetRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <name-or-id>",
		Short: "Remove a preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets, err := project.LoadPresets(c.presetPath)
			if err != nil {
				return err
			}
			id := args[0]
			if p := presets.FindByName(args[0]); p != nil {
				id = p.ID
			}
			if !presets.Remove(id) {
				return model.NewError(model.ErrCodeInvalidInput, "preset %q not found", args[0])
			}
			if err := project.SavePresets(c.presetPath, presets); err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), "Removed preset %s", args[0])
			return nil
		},
	}
}

func (c *CLI) backupCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Export or restore config and presets",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "export <file.json>",
		Short: "Write config and presets to one backup file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			presets, err := project.LoadPresets(c.presetPath)
			if err != nil {
				return err
			}
			if err := project.ExportAllData(args[0], cfg, presets); err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), "Backed up config and %d presets to %s", len(presets.Presets), args[0])
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "import <file.json>",
		Short: "Restore config and presets from a backup file",
		Long:  `Restore config and presets from a backup, overwriting the files named by --config and --presets.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			backup, err := project.ImportAllData(args[0])
			if err != nil {
				return err
			}
			if err := project.SaveConfig(c.configPath, backup.Config); err != nil {
				return err
			}
			if err := project.SavePresets(c.presetPath, backup.Presets); err != nil {
				return err
			}
			names := backup.Presets.Names()
			printSuccess(cmd.OutOrStdout(), "Restored backup %s from %s", backup.Version, backup.CreatedAt)
			if len(names) > 0 {
				printDetail(cmd.OutOrStdout(), "presets: %s", strings.Join(names, ", "))
			}
			return nil
		},
	})
	return cmd
}
