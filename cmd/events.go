package cmd

import (
	"fmt"

	"cashplan/internal/cli"
	"cashplan/internal/engine"

	"github.com/spf13/cobra"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Generated cashflow events for a period",
	RunE:  runEvents,
}

func init() {
	rootCmd.AddCommand(eventsCmd)
}

func runEvents(_ *cobra.Command, _ []string) error {
	plan, err := loadPlan()
	if err != nil {
		return err
	}
	period, err := resolvePeriod(plan)
	if err != nil {
		return err
	}

	events := engine.GenerateEvents(plan, period.ID)
	if len(events) == 0 {
		fmt.Println("\n  No events in this period.")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("EVENTS  %s", period.Label)))
	fmt.Println()

	rows := make([][]string, 0, len(events)+2)
	var total float64
	for _, ev := range events {
		rows = append(rows, []string{
			cli.FormatFullDate(ev.Date),
			cli.FormatDayOfWeek(ev.Date),
			ev.Label,
			string(ev.Type),
			ev.Category,
			cli.StyleAmount(cli.FormatMoney(ev.Amount), ev.Amount),
		})
		total += ev.Amount
	}
	rows = append(rows, []string{"---"})
	rows = append(rows, []string{"NET", "", "", "", "", cli.StyleAmount(cli.FormatSignedMoney(total), total)})

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Date", "Day", "Label", "Type", "Category", "Amount"},
		Rows:    rows,
	}))

	return nil
}
