package cmd

import (
	"fmt"

	"cashplan/internal/cli"
	"cashplan/internal/engine"
	"cashplan/internal/model"

	"github.com/spf13/cobra"
)

// groupOrder mirrors the budget sheet's section order.
var groupOrder = []string{
	model.GroupIncome,
	model.GroupGiving,
	model.GroupFixed,
	model.GroupVariable,
	model.GroupSavings,
}

var budgetCmd = &cobra.Command{
	Use:   "budget",
	Short: "Budget vs actual per rule, grouped by category",
	RunE:  runBudget,
}

func init() {
	rootCmd.AddCommand(budgetCmd)
}

func runBudget(_ *cobra.Command, _ []string) error {
	plan, err := loadPlan()
	if err != nil {
		return err
	}
	period, err := resolvePeriod(plan)
	if err != nil {
		return err
	}

	lines := engine.BudgetSummary(plan, period.ID)
	if len(lines) == 0 {
		fmt.Println("\n  No rules or bills defined.")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("BUDGET VS ACTUAL  %s", period.Label)))
	fmt.Println()

	byGroup := make(map[string][]model.BudgetLine)
	for _, line := range lines {
		byGroup[line.Group] = append(byGroup[line.Group], line)
	}

	var ambiguous int
	for _, group := range groupOrder {
		grouped := byGroup[group]
		if len(grouped) == 0 {
			continue
		}
		delete(byGroup, group)
		renderGroup(group, grouped)
		for _, line := range grouped {
			ambiguous += len(line.Ambiguities)
		}
	}
	// Any custom groups come after the sheet's canonical ones.
	for group, grouped := range byGroup {
		renderGroup(group, grouped)
	}

	if ambiguous > 0 {
		fmt.Printf("  %s\n\n", cli.StyleWarn(fmt.Sprintf(
			"%d transactions matched more than one rule; shown under their first match. Link them explicitly with `cashplan tx link`.",
			ambiguous)))
	}

	return nil
}

func renderGroup(group string, lines []model.BudgetLine) {
	rows := make([][]string, 0, len(lines)+2)
	var budgeted, actual float64
	for _, line := range lines {
		rows = append(rows, []string{
			line.Label,
			cli.FormatMoney(line.Budgeted),
			cli.FormatMoney(line.Actual),
			cli.StyleAmount(cli.FormatSignedMoney(line.Variance), line.Variance),
			fmt.Sprintf("%d", len(line.Matched)),
		})
		budgeted += line.Budgeted
		actual += line.Actual
	}
	rows = append(rows, []string{"---"})
	variance := actual - budgeted
	rows = append(rows, []string{
		"TOTAL",
		cli.FormatMoney(budgeted),
		cli.FormatMoney(actual),
		cli.StyleAmount(cli.FormatSignedMoney(variance), variance),
		"",
	})

	fmt.Print(cli.RenderTable(cli.Table{
		Title:   group,
		Headers: []string{"Item", "Budget", "Actual", "Variance", "Txns"},
		Rows:    rows,
	}))
	fmt.Println()
}
