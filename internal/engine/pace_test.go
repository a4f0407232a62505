package engine

import (
	"testing"

	"cashplan/internal/model"
)

// pacePlan covers a ten-day period holding 1000 of planned spending:
// rent early, a utility near the end. As-of sits at the midpoint.
func pacePlan(t *testing.T) *model.Plan {
	t.Helper()
	return &model.Plan{
		Setup: model.Setup{AsOf: day(t, "2026-01-05"), StartingBalance: 1000},
		Periods: []model.Period{
			{ID: 1, Label: "Jan 1-10", Start: day(t, "2026-01-01"), End: day(t, "2026-01-10")},
		},
		Bills: []model.BillTemplate{
			{ID: "rent", Label: "Rent", Amount: -900, DueDay: 2, Group: model.GroupFixed, Enabled: true},
			{ID: "power", Label: "Power", Amount: -100, DueDay: 9, Group: model.GroupFixed, Enabled: true},
		},
	}
}

func metricByName(report model.PaceReport, name string) (model.PaceMetric, bool) {
	for _, m := range report.Metrics {
		if m.Name == name {
			return m, true
		}
	}
	return model.PaceMetric{}, false
}

func TestAnalyzePace_FrontLoadedScheduleIsNormal(t *testing.T) {
	plan := pacePlan(t)
	plan.Transactions = []model.Transaction{
		{ID: "t1", Date: day(t, "2026-01-02"), Label: "rent", Amount: -900, Type: model.EventOutflow},
	}

	report := AnalyzePace(plan, 1)
	spend, ok := metricByName(report, "spending")
	if !ok {
		t.Fatal("spending metric missing")
	}

	if spend.Budgeted != 1000 || spend.Actual != 900 {
		t.Fatalf("budgeted/actual = %v/%v, want 1000/900", spend.Budgeted, spend.Actual)
	}
	if spend.TimeProgress != 0.5 {
		t.Fatalf("time progress = %v, want 0.5", spend.TimeProgress)
	}

	// The naive read says way ahead of pace...
	if spend.Status != model.PaceAhead {
		t.Fatalf("status = %s, want ahead", spend.Status)
	}
	// ...but rent lands on day 2 by schedule, so 900 spent is exactly
	// what the events predict at the as-of date.
	if spend.Expected != 900 {
		t.Fatalf("expected = %v, want 900", spend.Expected)
	}
	if !spend.IsNormal {
		t.Fatal("schedule-tracking spend not flagged normal")
	}
	if spend.Shape != model.ShapeFrontLoaded {
		t.Fatalf("shape = %s, want front-loaded", spend.Shape)
	}
}

func TestAnalyzePace_OverspendIsNotNormal(t *testing.T) {
	plan := pacePlan(t)
	plan.Transactions = []model.Transaction{
		{ID: "t1", Date: day(t, "2026-01-02"), Label: "rent", Amount: -900, Type: model.EventOutflow},
		{ID: "t2", Date: day(t, "2026-01-04"), Label: "power bill early", Amount: -100, Type: model.EventOutflow},
	}

	report := AnalyzePace(plan, 1)
	spend, _ := metricByName(report, "spending")
	if spend.Actual != 1000 {
		t.Fatalf("actual = %v, want 1000", spend.Actual)
	}
	// 1000 against an expected 900 is a 10% slip, past tolerance.
	if spend.IsNormal {
		t.Fatal("100 over schedule flagged normal")
	}
	if spend.Status != model.PaceAhead {
		t.Fatalf("status = %s, want ahead", spend.Status)
	}
}

func TestAnalyzePace_BehindAndOnTrack(t *testing.T) {
	plan := pacePlan(t)
	// All the planned spending sits in the back half of the period.
	plan.Bills = []model.BillTemplate{
		{ID: "rent", Label: "Rent", Amount: -1000, DueDay: 9, Group: model.GroupFixed, Enabled: true},
	}

	report := AnalyzePace(plan, 1)
	spend, _ := metricByName(report, "spending")
	// Nothing spent halfway through reads behind on the naive gap,
	// but matches the back-loaded schedule exactly.
	if spend.Status != model.PaceBehind {
		t.Fatalf("status = %s, want behind", spend.Status)
	}
	if !spend.IsNormal {
		t.Fatal("untouched back-loaded schedule not flagged normal")
	}
	if spend.Shape != model.ShapeBackLoaded {
		t.Fatalf("shape = %s, want back-loaded", spend.Shape)
	}
}

func TestAnalyzePace_ZeroBudgetReadsOnTrack(t *testing.T) {
	plan := pacePlan(t)

	report := AnalyzePace(plan, 1)
	savings, ok := metricByName(report, "savings")
	if !ok {
		t.Fatal("savings metric missing")
	}
	if savings.Budgeted != 0 {
		t.Fatalf("savings budgeted = %v, want 0", savings.Budgeted)
	}
	if savings.Status != model.PaceOnTrack {
		t.Fatalf("zero-budget status = %s, want on-track", savings.Status)
	}
	if savings.Progress != 0 || savings.PaceGap != 0 {
		t.Fatalf("zero-budget progress/gap = %v/%v, want 0/0", savings.Progress, savings.PaceGap)
	}
}

func TestAnalyzePace_SavingsGroupOwnsItsMetric(t *testing.T) {
	plan := pacePlan(t)
	plan.OutflowRules = []model.RecurrenceRule{{
		ID: "emergency", Label: "Emergency Fund", Amount: -150,
		Cadence: model.CadenceMonthly, Seed: day(t, "2026-01-03"),
		Enabled: true, Group: model.GroupSavings, Type: model.EventTransfer,
	}}
	plan.Transactions = []model.Transaction{
		{ID: "t1", Date: day(t, "2026-01-03"), Label: "emergency fund", Amount: -150, Type: model.EventTransfer},
	}

	report := AnalyzePace(plan, 1)
	savings, _ := metricByName(report, "savings")
	if savings.Budgeted != 150 || savings.Actual != 150 {
		t.Fatalf("savings budgeted/actual = %v/%v, want 150/150", savings.Budgeted, savings.Actual)
	}
	spend, _ := metricByName(report, "spending")
	if spend.Budgeted != 1000 {
		t.Fatalf("spending absorbed the savings line: budgeted = %v", spend.Budgeted)
	}
}

func TestAnalyzePace_ForecastRiskDays(t *testing.T) {
	plan := pacePlan(t)
	plan.Setup.StartingBalance = 950

	report := AnalyzePace(plan, 1)
	f := report.Forecast

	// Balance: 950 until rent on day 2 drops it to 50, power on day 9
	// takes it to -50. Only days after the as-of date count as risk.
	if f.RiskDays != 2 {
		t.Fatalf("risk days = %d, want 2", f.RiskDays)
	}
	if f.LowestBalance != -50 {
		t.Fatalf("lowest balance = %v, want -50", f.LowestBalance)
	}
	if got := f.LowestDate.Format(model.DayFormat); got != "2026-01-09" {
		t.Fatalf("lowest date = %s, want 2026-01-09", got)
	}
	if f.ProjectedEndBalance != -50 {
		t.Fatalf("projected end = %v, want -50", f.ProjectedEndBalance)
	}
}

func TestAnalyzePace_AsOfPastPeriodEnd(t *testing.T) {
	plan := pacePlan(t)
	plan.Setup.AsOf = day(t, "2026-02-15")

	report := AnalyzePace(plan, 1)
	spend, _ := metricByName(report, "spending")
	if spend.TimeProgress != 1 {
		t.Fatalf("time progress past period end = %v, want 1", spend.TimeProgress)
	}
	// No rows remain after as-of; the forecast falls back to the
	// period's own lowest point.
	if report.Forecast.LowestBalance != report.Forecast.ProjectedEndBalance {
		t.Fatalf("fallback lowest = %v, projected end = %v",
			report.Forecast.LowestBalance, report.Forecast.ProjectedEndBalance)
	}
}
