package cmd

import (
	"fmt"

	"cashplan/internal/cli"
	"cashplan/internal/engine"
	"cashplan/internal/model"

	"github.com/spf13/cobra"
)

var paceCmd = &cobra.Command{
	Use:   "pace",
	Short: "Spending and saving pace with period-end forecast",
	RunE:  runPace,
}

func init() {
	rootCmd.AddCommand(paceCmd)
}

func runPace(_ *cobra.Command, _ []string) error {
	plan, err := loadPlan()
	if err != nil {
		return err
	}
	period, err := resolvePeriod(plan)
	if err != nil {
		return err
	}

	report := engine.AnalyzePace(plan, period.ID)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("PACE  %s  as of %s", period.Label, cli.FormatFullDate(report.AsOf))))
	fmt.Println()

	for _, m := range report.Metrics {
		renderMetric(m)
	}

	f := report.Forecast
	rows := [][]string{
		{"Projected end balance", cli.StyleAmount(cli.FormatMoney(f.ProjectedEndBalance), f.ProjectedEndBalance)},
		{"Days below minimum ahead", fmt.Sprintf("%d", f.RiskDays)},
	}
	if !f.LowestDate.IsZero() {
		rows = append(rows, []string{
			"Lowest point ahead",
			fmt.Sprintf("%s on %s", cli.FormatMoney(f.LowestBalance), cli.FormatFullDate(f.LowestDate)),
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Forecast",
		Headers: []string{"Metric", "Value"},
		Rows:    rows,
	}))
	fmt.Println()

	return nil
}

func renderMetric(m model.PaceMetric) {
	fmt.Printf("  %-8s  %s %s", m.Name, cli.RenderMiniBar(m.Progress, 20), cli.FormatPercent(m.Progress))
	fmt.Printf("  (time %s)  %s", cli.FormatPercent(m.TimeProgress), cli.StylePace(m.Status))
	if m.IsNormal && m.Status != model.PaceOnTrack {
		fmt.Printf("  %s", cli.StyleWarn(fmt.Sprintf("normal for a %s schedule", m.Shape)))
	}
	fmt.Println()
	fmt.Printf("            %s of %s budgeted, %s expected by now\n\n",
		cli.FormatMoney(m.Actual), cli.FormatMoney(m.Budgeted), cli.FormatMoney(m.Expected))
}
