package cmd

import (
	"fmt"

	"cashplan/internal/cli"
	"cashplan/internal/engine"

	"github.com/spf13/cobra"
)

var timelineCmd = &cobra.Command{
	Use:   "timeline",
	Short: "Day-by-day balance projection for a period",
	RunE:  runTimeline,
}

func init() {
	rootCmd.AddCommand(timelineCmd)
}

func runTimeline(_ *cobra.Command, _ []string) error {
	plan, err := loadPlan()
	if err != nil {
		return err
	}
	period, err := resolvePeriod(plan)
	if err != nil {
		return err
	}

	resolver := engine.NewBalanceResolver(plan)
	starting := resolver.StartingBalance(period.ID)
	result := engine.BuildTimeline(plan, period.ID, starting)

	if len(result.Rows) == 0 {
		fmt.Println("\n  Nothing to project for this period.")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("TIMELINE  %s", period.Label)))
	fmt.Println()
	fmt.Printf("  Starting balance: %s\n\n", cli.FormatMoney(starting))

	rows := make([][]string, 0, len(result.Rows))
	balances := make([]float64, 0, len(result.Rows))
	for _, row := range result.Rows {
		flag := ""
		if row.BelowMin {
			flag = cli.StyleWarn("low")
		}
		rows = append(rows, []string{
			cli.FormatFullDate(row.Date),
			cli.FormatDayOfWeek(row.Date),
			cli.FormatMoney(row.Income),
			cli.FormatMoney(row.Outflow),
			cli.StyleAmount(cli.FormatMoney(row.Balance), row.Balance),
			flag,
		})
		balances = append(balances, row.Balance)
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Date", "Day", "Income", "Outflow", "Balance", ""},
		Rows:    rows,
	}))

	fmt.Printf("\n  Balance  %s\n", cli.RenderSparkline(balances))
	fmt.Printf("  Lowest point: %s on %s\n",
		cli.FormatMoney(result.Lowest.Balance),
		cli.FormatFullDate(result.Lowest.Date))
	fmt.Printf("  Ending balance: %s\n\n", cli.FormatMoney(result.EndingBalance))

	return nil
}
