package cmd

import (
	"fmt"

	"cashplan/internal/cli"
	"cashplan/internal/engine"

	"github.com/spf13/cobra"
)

var periodsCmd = &cobra.Command{
	Use:   "periods",
	Short: "All periods with chained starting and ending balances",
	RunE:  runPeriods,
}

func init() {
	rootCmd.AddCommand(periodsCmd)
}

func runPeriods(_ *cobra.Command, _ []string) error {
	plan, err := loadPlan()
	if err != nil {
		return err
	}
	if len(plan.Periods) == 0 {
		fmt.Println("\n  The plan defines no periods.")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("PERIODS"))
	fmt.Println()

	// One resolver across the loop so roll-forward chains memoize.
	resolver := engine.NewBalanceResolver(plan)

	rows := make([][]string, 0, len(plan.Periods))
	for _, p := range plan.Periods {
		starting := resolver.StartingBalance(p.ID)
		result := engine.BuildTimeline(plan, p.ID, starting)

		pinned := ""
		if po := plan.PeriodOverrideFor(p.ID); po != nil && po.StartingBalance != nil {
			pinned = cli.StyleWarn("pinned")
		}

		rows = append(rows, []string{
			fmt.Sprintf("%d", p.ID),
			p.Label,
			cli.FormatFullDate(p.Start),
			cli.FormatFullDate(p.End),
			cli.FormatMoney(starting),
			cli.StyleAmount(cli.FormatMoney(result.EndingBalance), result.EndingBalance),
			cli.FormatMoney(result.Lowest.Balance),
			pinned,
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Id", "Label", "Start", "End", "Starting", "Ending", "Lowest", ""},
		Rows:    rows,
	}))

	return nil
}
