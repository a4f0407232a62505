package engine

import (
	"math"
	"time"

	"cashplan/internal/model"
)

// paceTolerance is the band around on-track: a pace gap beyond it in
// either direction flips the status, and an actual within it of the
// schedule-aware expectation counts as normal.
const paceTolerance = 0.08

// Front/back-loading thresholds on the expected share spent by the
// period midpoint.
const (
	frontLoadShare = 0.65
	backLoadShare  = 0.35
)

// AnalyzePace classifies spending, savings, and income pace for one
// period at the plan's as-of date, then projects period-end risk from
// the balance timeline.
//
// The naive read compares actual/budgeted progress with elapsed-time
// progress. The refinement compares actual against the cumulative
// value the generated events themselves predict at the as-of date, so
// a lumpy schedule (rent on day 1) does not fire a false warning.
func AnalyzePace(plan *model.Plan, periodID int) model.PaceReport {
	period, ok := plan.PeriodByID(periodID)
	if !ok {
		return model.PaceReport{PeriodID: periodID}
	}

	asOf := model.Normalize(plan.Setup.AsOf)
	if asOf.IsZero() {
		asOf = period.Start
	}

	report := model.PaceReport{PeriodID: periodID, AsOf: asOf}

	timeProgress := clamp01(elapsedFraction(period, asOf))
	events := GenerateEvents(plan, periodID)
	lines := BudgetSummary(plan, periodID)

	for _, name := range []string{"spending", "savings", "income"} {
		report.Metrics = append(report.Metrics,
			analyzeMetric(name, period, asOf, timeProgress, events, lines))
	}

	resolver := NewBalanceResolver(plan)
	timeline := BuildTimeline(plan, periodID, resolver.StartingBalance(periodID))
	report.Forecast = forecast(timeline, asOf)

	return report
}

// analyzeMetric computes one pace measurement over the subset of
// events and budget lines belonging to the metric.
func analyzeMetric(name string, period model.Period, asOf time.Time, timeProgress float64, events []model.CashflowEvent, lines []model.BudgetLine) model.PaceMetric {
	want := make(map[string]struct{})
	var budgeted, actual float64
	for _, line := range lines {
		if !metricOwnsLine(name, line) {
			continue
		}
		want[line.SourceID] = struct{}{}
		budgeted += math.Abs(line.Budgeted)
		actual += math.Abs(line.Actual)
	}

	var expected, expectedAtMid, total float64
	mid := period.Start.AddDate(0, 0, period.Days()/2)
	for _, ev := range events {
		if _, ok := want[ev.SourceID]; !ok {
			continue
		}
		amt := math.Abs(ev.Amount)
		total += amt
		if !ev.Date.After(asOf) {
			expected += amt
		}
		if !ev.Date.After(mid) {
			expectedAtMid += amt
		}
	}

	m := model.PaceMetric{
		Name:         name,
		Budgeted:     budgeted,
		Actual:       actual,
		Expected:     expected,
		TimeProgress: timeProgress,
	}

	// Guard zero budgets: 0% progress and an on-track read, never NaN.
	if budgeted <= 0 {
		m.Status = model.PaceOnTrack
		m.Shape = model.ShapeEven
		return m
	}
	m.Progress = clamp01(actual / budgeted)
	m.PaceGap = m.Progress - m.TimeProgress

	switch {
	case m.PaceGap > paceTolerance:
		m.Status = model.PaceAhead
	case m.PaceGap < -paceTolerance:
		m.Status = model.PaceBehind
	default:
		m.Status = model.PaceOnTrack
	}

	if budgeted > 0 && math.Abs(actual-expected)/budgeted <= paceTolerance {
		m.IsNormal = true
	}

	m.Shape = model.ShapeEven
	if total > 0 {
		switch share := expectedAtMid / total; {
		case share >= frontLoadShare:
			m.Shape = model.ShapeFrontLoaded
		case share <= backLoadShare:
			m.Shape = model.ShapeBackLoaded
		}
	}

	return m
}

// metricOwnsLine maps budget lines onto pace metrics: income rules
// feed income, SAVINGS-group lines feed savings, every other outflow
// or bill feeds spending.
func metricOwnsLine(name string, line model.BudgetLine) bool {
	switch name {
	case "income":
		return line.RuleType == model.RuleIncome
	case "savings":
		return line.RuleType != model.RuleIncome && line.Group == model.GroupSavings
	default:
		return line.RuleType != model.RuleIncome && line.Group != model.GroupSavings
	}
}

// forecast summarizes the timeline rows strictly after the as-of date.
func forecast(timeline model.TimelineResult, asOf time.Time) model.Forecast {
	f := model.Forecast{ProjectedEndBalance: timeline.EndingBalance}

	first := true
	for _, row := range timeline.Rows {
		if !row.Date.After(asOf) {
			continue
		}
		if row.BelowMin {
			f.RiskDays++
		}
		if first || row.Balance < f.LowestBalance {
			f.LowestBalance = row.Balance
			f.LowestDate = row.Date
			first = false
		}
	}
	if first && len(timeline.Rows) > 0 {
		// As-of past the period end: fall back to the period's lowest.
		f.LowestBalance = timeline.Lowest.Balance
		f.LowestDate = timeline.Lowest.Date
	}
	return f
}

// elapsedFraction is elapsed days over total days, inclusive of the
// as-of day. A zero-length period counts as fully elapsed.
func elapsedFraction(period model.Period, asOf time.Time) float64 {
	total := period.Days()
	if total <= 0 {
		return 1
	}
	elapsed := model.DaysBetween(period.Start, asOf) + 1
	return float64(elapsed) / float64(total)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
