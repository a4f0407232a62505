package engine

import (
	"testing"

	"cashplan/internal/model"
)

// balancePlan is a minimal fixture for balance math: one week-long
// period with a mid-week income and a later outflow, followed by an
// empty second period.
func balancePlan(t *testing.T) *model.Plan {
	t.Helper()
	return &model.Plan{
		Setup: model.Setup{StartingBalance: 1000, RollForwardBalance: true},
		Periods: []model.Period{
			{ID: 1, Label: "Week 1", Start: day(t, "2026-01-01"), End: day(t, "2026-01-07")},
			{ID: 2, Label: "Week 2", Start: day(t, "2026-01-08"), End: day(t, "2026-01-14")},
		},
		ManualEvents: []model.ManualEvent{
			{ID: "bonus", Date: day(t, "2026-01-03"), Label: "Bonus", Amount: 500, Type: model.EventIncome},
			{ID: "repair", Date: day(t, "2026-01-05"), Label: "Repair", Amount: -200, Type: model.EventOutflow},
		},
	}
}

func TestBuildTimeline_DailyBalances(t *testing.T) {
	plan := balancePlan(t)

	result := BuildTimeline(plan, 1, 1000)
	want := []float64{1000, 1000, 1500, 1500, 1300, 1300, 1300}
	if len(result.Rows) != len(want) {
		t.Fatalf("rows = %d, want %d", len(result.Rows), len(want))
	}
	for i, row := range result.Rows {
		if row.Balance != want[i] {
			t.Fatalf("day %d balance = %v, want %v", i+1, row.Balance, want[i])
		}
	}
	if result.EndingBalance != 1300 {
		t.Fatalf("ending balance = %v, want 1300", result.EndingBalance)
	}

	// Ties on the lowest balance keep the earliest day.
	if got := result.Lowest.Date.Format(model.DayFormat); got != "2026-01-01" {
		t.Fatalf("lowest date = %s, want 2026-01-01", got)
	}
	if result.Lowest.Balance != 1000 {
		t.Fatalf("lowest balance = %v, want 1000", result.Lowest.Balance)
	}
}

func TestBuildTimeline_TransferReducesBalance(t *testing.T) {
	plan := balancePlan(t)
	plan.ManualEvents = append(plan.ManualEvents, model.ManualEvent{
		ID: "to-savings", Date: day(t, "2026-01-06"), Label: "To savings",
		Amount: -300, Type: model.EventTransfer,
	})

	result := BuildTimeline(plan, 1, 1000)
	if result.EndingBalance != 1000 {
		t.Fatalf("ending balance = %v, want 1000 after transfer out", result.EndingBalance)
	}
	if row := result.Rows[5]; row.Outflow != 300 {
		t.Fatalf("transfer day outflow = %v, want 300", row.Outflow)
	}
}

func TestBuildTimeline_BelowMinThreshold(t *testing.T) {
	plan := balancePlan(t)
	plan.Setup.ExpectedMinBalance = 1200

	result := BuildTimeline(plan, 1, 1000)
	// Days 1-2 sit at 1000, under the 1200 floor; days 3-7 are above.
	for i, wantBelow := range []bool{true, true, false, false, false, false, false} {
		if result.Rows[i].BelowMin != wantBelow {
			t.Fatalf("day %d BelowMin = %v, want %v", i+1, result.Rows[i].BelowMin, wantBelow)
		}
	}

	// Without a floor, only a negative balance flags.
	plan.Setup.ExpectedMinBalance = 0
	result = BuildTimeline(plan, 1, 1000)
	for i, row := range result.Rows {
		if row.BelowMin {
			t.Fatalf("day %d flagged below min with no floor and positive balance", i+1)
		}
	}
}

func TestBalanceResolver_RollForwardChain(t *testing.T) {
	plan := balancePlan(t)
	resolver := NewBalanceResolver(plan)

	if got := resolver.StartingBalance(1); got != 1000 {
		t.Fatalf("earliest period start = %v, want plan-level 1000", got)
	}
	if got := resolver.StartingBalance(2); got != 1300 {
		t.Fatalf("rolled-forward start = %v, want 1300", got)
	}

	// The empty second period carries its start through unchanged.
	if got := resolver.EndingBalance(2); got != 1300 {
		t.Fatalf("empty period ending = %v, want 1300", got)
	}
}

func TestBalanceResolver_ExplicitOverridePinsChain(t *testing.T) {
	plan := balancePlan(t)
	pinned := 2000.0
	plan.PeriodOverrides = []model.PeriodOverride{
		{PeriodID: 2, StartingBalance: &pinned},
	}

	resolver := NewBalanceResolver(plan)
	if got := resolver.StartingBalance(2); got != 2000 {
		t.Fatalf("pinned start = %v, want 2000", got)
	}
	if got := resolver.EndingBalance(2); got != 2000 {
		t.Fatalf("ending after pin = %v, want 2000", got)
	}
}

func TestBalanceResolver_RollForwardOff(t *testing.T) {
	plan := balancePlan(t)
	plan.Setup.RollForwardBalance = false

	resolver := NewBalanceResolver(plan)
	for _, id := range []int{1, 2} {
		if got := resolver.StartingBalance(id); got != 1000 {
			t.Fatalf("period %d start = %v, want plan-level 1000", id, got)
		}
	}
}

func TestBuildTimeline_UnknownPeriod(t *testing.T) {
	plan := balancePlan(t)
	result := BuildTimeline(plan, 99, 750)
	if len(result.Rows) != 0 {
		t.Fatalf("unknown period produced %d rows", len(result.Rows))
	}
	// A missing period must not zero the roll-forward chain.
	if result.EndingBalance != 750 {
		t.Fatalf("ending balance = %v, want the starting 750", result.EndingBalance)
	}
}
