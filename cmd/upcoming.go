package cmd

import (
	"fmt"

	"cashplan/internal/cli"
	"cashplan/internal/engine"
	"cashplan/internal/model"

	"github.com/spf13/cobra"
)

var (
	flagUpcomingDays int
	flagUpcomingType string
)

var upcomingCmd = &cobra.Command{
	Use:   "upcoming",
	Short: "Events in the rolling window from the as-of date",
	Long:  "List the events due in the next window of days. The window may cross a period boundary.",
	RunE:  runUpcoming,
}

func init() {
	upcomingCmd.Flags().IntVarP(&flagUpcomingDays, "days", "n", 0, "Window length in days (default from plan setup)")
	upcomingCmd.Flags().StringVarP(&flagUpcomingType, "type", "t", "", "Filter to one type: income, outflow, transfer")
	rootCmd.AddCommand(upcomingCmd)
}

func runUpcoming(_ *cobra.Command, _ []string) error {
	plan, err := loadPlan()
	if err != nil {
		return err
	}

	days := flagUpcomingDays
	if days <= 0 {
		days = plan.Setup.WindowDays
	}

	typ := model.EventType(flagUpcomingType)
	switch typ {
	case "", model.EventIncome, model.EventOutflow, model.EventTransfer:
	default:
		return fmt.Errorf("bad --type %q (want income, outflow, or transfer)", flagUpcomingType)
	}

	events := engine.UpcomingEvents(plan, plan.Setup.AsOf, days, typ)
	if len(events) == 0 {
		fmt.Printf("\n  Nothing due in the next %d days.\n", days)
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("UPCOMING  Next %dd", days)))
	fmt.Println()

	rows := make([][]string, 0, len(events))
	for _, ev := range events {
		rows = append(rows, []string{
			cli.FormatFullDate(ev.Date),
			cli.FormatDayOfWeek(ev.Date),
			ev.Label,
			string(ev.Type),
			cli.StyleAmount(cli.FormatMoney(ev.Amount), ev.Amount),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Date", "Day", "Label", "Type", "Amount"},
		Rows:    rows,
	}))

	return nil
}
