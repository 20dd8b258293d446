package cli

import (
	"strconv"
	"strings"

	"github.com/piwi3910/CabinetPlan/internal/store"
	"github.com/spf13/cobra"
)

func (c *CLI) historyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect recorded generation runs",
		Long:  `Inspect generation runs recorded in the SQLite history database (history_path in the config).`,
	}
	cmd.AddCommand(c.historyListCommand())
	cmd.AddCommand(c.historyShowCommand())
	cmd.AddCommand(c.historyDeleteCommand())
	return cmd
}

func (c *CLI) historyListCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validFormat(c.format); err != nil {
				return err
			}
			h, err := c.historyFromConfig(cmd)
			if err != nil {
				return err
			}
			defer h.Close()

			runs, err := h.ListRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if c.format != formatTable {
				return writeStructured(w, c.format, runs)
			}
			if len(runs) == 0 {
				printInfo(w, "No runs recorded")
				return nil
			}
			rows := make([][]string, 0, len(runs))
			for _, r := range runs {
				budget := "-"
				if r.BudgetUSD > 0 {
					budget = usd(r.BudgetUSD)
				}
				rows = append(rows, []string{r.ID, r.CreatedAt, strings.Join(r.Layouts, ","), r.Door + "/" + r.Top, budget})
			}
			renderTable(w, []string{"Run", "Created", "Layouts", "Finishes", "Budget"}, rows)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "maximum runs to list (0 for all)")
	return cmd
}

func (c *CLI) historyShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show a run and its variants",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validFormat(c.format); err != nil {
				return err
			}
			h, err := c.historyFromConfig(cmd)
			if err != nil {
				return err
			}
			defer h.Close()

			run, err := h.GetRun(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return c.printRun(cmd, run)
		},
	}
}

func (c *CLI) historyDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <run-id>",
		Short: "Delete a run from the history",
		Long:  `Delete a run and its variant rows from the history. Artifact directories are left on disk.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := c.historyFromConfig(cmd)
			if err != nil {
				return err
			}
			defer h.Close()

			if err := h.DeleteRun(cmd.Context(), args[0]); err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), "Deleted run %s", args[0])
			return nil
		},
	}
}

func (c *CLI) historyFromConfig(cmd *cobra.Command) (*store.History, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	return c.requireHistory(cmd.Context(), cfg)
}

func (c *CLI) printRun(cmd *cobra.Command, run store.Run) error {
	w := cmd.OutOrStdout()
	if c.format != formatTable {
		return writeStructured(w, c.format, run)
	}

	printTitle(w, "Run %s", run.ID)
	printDetail(w, "created %s, door %s, top %s", run.CreatedAt, run.Door, run.Top)
	if run.BudgetUSD > 0 {
		printDetail(w, "budget %s", usd(run.BudgetUSD))
	}
	rows := make([][]string, 0, len(run.Variants))
	for _, v := range run.Variants {
		rows = append(rows, []string{v.ID, v.Layout, usd(v.TargetUSD), usd(v.PriceUSD), strconv.Itoa(v.OpsCount), v.Root})
	}
	renderTable(w, []string{"Variant", "Layout", "Target", "Price", "Ops", "Directory"}, rows)
	return nil
}
