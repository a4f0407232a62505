// Package cmd implements the cashplan CLI commands.
package cmd

import (
	"fmt"
	"os"

	"cashplan/internal/cli"
	"cashplan/internal/config"
	"cashplan/internal/model"
	"cashplan/internal/pipeline"

	"github.com/spf13/cobra"
)

var (
	flagPlan   string
	flagPeriod int
	flagAsOf   string
	flagQuiet  bool
)

var rootCmd = &cobra.Command{
	Use:   "cashplan",
	Short: "Personal cashflow projection and budget pacing",
	Long:  "Project your balance day by day from recurring rules and bills, and compare the plan against what you actually spent.",
	RunE:  runPace,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagPlan, "plan", "f", "", "Plan file path (default from config)")
	rootCmd.PersistentFlags().IntVarP(&flagPeriod, "period", "p", 0, "Period id (default: the period containing the as-of date)")
	rootCmd.PersistentFlags().StringVar(&flagAsOf, "as-of", "", "Override the as-of date (YYYY-MM-DD)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress warnings about skipped records")
}

// loadPlan is the shared snapshot loading path used by all commands.
func loadPlan() (*model.Plan, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if flagPlan != "" {
		cfg.General.PlanPath = flagPlan
	}
	if cfg.Display.Currency != "" {
		cli.Currency = cfg.Display.Currency
	}

	result, err := pipeline.Load(cfg)
	if err != nil {
		return nil, err
	}
	pipeline.PrintWarnings(result, flagQuiet)

	plan := &result.Plan
	if flagAsOf != "" {
		asOf, err := model.ParseDay(flagAsOf)
		if err != nil {
			return nil, fmt.Errorf("bad --as-of date %q (want YYYY-MM-DD)", flagAsOf)
		}
		plan.Setup.AsOf = asOf
	}
	if plan.Setup.WindowDays <= 0 {
		plan.Setup.WindowDays = cfg.General.WindowDays
	}

	return plan, nil
}

// resolvePeriod picks the target period: the --period flag when given,
// otherwise the period containing the as-of date, otherwise the last
// defined period.
func resolvePeriod(plan *model.Plan) (model.Period, error) {
	if len(plan.Periods) == 0 {
		return model.Period{}, fmt.Errorf("the plan defines no periods")
	}
	if flagPeriod != 0 {
		p, ok := plan.PeriodByID(flagPeriod)
		if !ok {
			return model.Period{}, fmt.Errorf("no period with id %d", flagPeriod)
		}
		return p, nil
	}
	if p, ok := plan.PeriodContaining(plan.Setup.AsOf); ok {
		return p, nil
	}
	return plan.Periods[len(plan.Periods)-1], nil
}
