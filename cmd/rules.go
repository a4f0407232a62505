package cmd

import (
	"fmt"

	"cashplan/internal/cli"
	"cashplan/internal/model"

	"github.com/spf13/cobra"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Defined income rules, outflow rules, and bills",
	RunE:  runRules,
}

func init() {
	rootCmd.AddCommand(rulesCmd)
}

func runRules(_ *cobra.Command, _ []string) error {
	plan, err := loadPlan()
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("PLAN RULES"))
	fmt.Println()

	if len(plan.IncomeRules) > 0 {
		renderRules("Income", plan.IncomeRules)
	}
	if len(plan.OutflowRules) > 0 {
		renderRules("Outflows", plan.OutflowRules)
	}

	if len(plan.Bills) > 0 {
		rows := make([][]string, 0, len(plan.Bills))
		for _, b := range plan.Bills {
			rows = append(rows, []string{
				b.ID,
				b.Label,
				fmt.Sprintf("day %d", b.DueDay),
				b.Category,
				cli.StyleAmount(cli.FormatMoney(b.Amount), b.Amount),
				enabledMark(b.Enabled),
			})
		}
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Bills",
			Headers: []string{"Id", "Label", "Due", "Category", "Amount", "On"},
			Rows:    rows,
		}))
		fmt.Println()
	}

	if len(plan.ManualEvents) > 0 {
		rows := make([][]string, 0, len(plan.ManualEvents))
		for _, me := range plan.ManualEvents {
			rows = append(rows, []string{
				me.ID,
				me.Label,
				cli.FormatFullDate(me.Date),
				string(me.Type),
				cli.StyleAmount(cli.FormatMoney(me.Amount), me.Amount),
			})
		}
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "One-off entries",
			Headers: []string{"Id", "Label", "Date", "Type", "Amount"},
			Rows:    rows,
		}))
		fmt.Println()
	}

	return nil
}

func renderRules(title string, rules []model.RecurrenceRule) {
	rows := make([][]string, 0, len(rules))
	for _, r := range rules {
		rows = append(rows, []string{
			r.ID,
			r.Label,
			string(r.Cadence),
			cli.FormatFullDate(r.Seed),
			r.Category,
			cli.StyleAmount(cli.FormatMoney(r.Amount), r.Amount),
			enabledMark(r.Enabled),
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   title,
		Headers: []string{"Id", "Label", "Cadence", "Seed", "Category", "Amount", "On"},
		Rows:    rows,
	}))
	fmt.Println()
}

func enabledMark(enabled bool) string {
	if enabled {
		return "yes"
	}
	return cli.StyleWarn("no")
}
