package engine

import (
	"testing"

	"cashplan/internal/model"
)

// matchPlan has one monthly paycheck, one grocery rule, and a rent
// bill, all landing inside a single January period.
func matchPlan(t *testing.T) *model.Plan {
	t.Helper()
	return &model.Plan{
		Periods: []model.Period{
			{ID: 1, Label: "January", Start: day(t, "2026-01-01"), End: day(t, "2026-01-31")},
		},
		IncomeRules: []model.RecurrenceRule{{
			ID: "salary", Label: "Salary", Amount: 2000,
			Cadence: model.CadenceMonthly, Seed: day(t, "2026-01-01"),
			Enabled: true, Group: model.GroupIncome, Type: model.EventIncome,
		}},
		OutflowRules: []model.RecurrenceRule{{
			ID: "groceries", Label: "Groceries", Amount: -400,
			Cadence: model.CadenceMonthly, Seed: day(t, "2026-01-10"),
			Enabled: true, Group: model.GroupVariable, Type: model.EventOutflow,
		}},
		Bills: []model.BillTemplate{{
			ID: "rent", Label: "Rent", Amount: -1200, DueDay: 1,
			Group: model.GroupFixed, Enabled: true,
		}},
	}
}

func lineByID(lines []model.BudgetLine, id string) (model.BudgetLine, bool) {
	for _, l := range lines {
		if l.SourceID == id {
			return l, true
		}
	}
	return model.BudgetLine{}, false
}

func TestBudgetSummary_FuzzyMatchAndVariance(t *testing.T) {
	plan := matchPlan(t)
	plan.Transactions = []model.Transaction{
		{ID: "t1", Date: day(t, "2026-01-02"), Label: "December Salary", Amount: 2100, Type: model.EventIncome},
		{ID: "t2", Date: day(t, "2026-01-11"), Label: "GROCERIES #4821", Amount: -380, Type: model.EventOutflow},
	}

	lines := BudgetSummary(plan, 1)
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want 3", len(lines))
	}

	// "Salary" is entirely payroll stop words, so the raw token still
	// matches "December Salary".
	salary, _ := lineByID(lines, "salary")
	if salary.Budgeted != 2000 || salary.Actual != 2100 || salary.Variance != 100 {
		t.Fatalf("salary line = budgeted %v actual %v variance %v, want 2000/2100/100",
			salary.Budgeted, salary.Actual, salary.Variance)
	}

	groc, _ := lineByID(lines, "groceries")
	if groc.Actual != -380 || groc.Variance != 20 {
		t.Fatalf("groceries line = actual %v variance %v, want -380/20", groc.Actual, groc.Variance)
	}

	rentLine, _ := lineByID(lines, "rent")
	if rentLine.Actual != 0 || rentLine.Variance != 1200 {
		t.Fatalf("unmatched rent line = actual %v variance %v, want 0/1200",
			rentLine.Actual, rentLine.Variance)
	}
}

func TestBudgetSummary_StopWordsOnlyMatchResidualTokens(t *testing.T) {
	plan := matchPlan(t)
	plan.IncomeRules = []model.RecurrenceRule{{
		ID: "placeholder", Label: "Income Placeholder", Amount: 1000,
		Cadence: model.CadenceMonthly, Seed: day(t, "2026-01-01"),
		Enabled: true, Group: model.GroupIncome, Type: model.EventIncome,
	}}
	plan.Transactions = []model.Transaction{
		{ID: "t1", Date: day(t, "2026-01-02"), Label: "December Salary", Amount: 2100, Type: model.EventIncome},
	}

	lines := BudgetSummary(plan, 1)
	line, _ := lineByID(lines, "placeholder")
	// With "income" dropped, only "placeholder" remains, which the
	// transaction label does not contain.
	if len(line.Matched) != 0 {
		t.Fatalf("placeholder rule swallowed %d payroll transactions", len(line.Matched))
	}
}

func TestBudgetSummary_ShortTokensMatchWholeWordsOnly(t *testing.T) {
	plan := matchPlan(t)
	plan.OutflowRules = append(plan.OutflowRules, model.RecurrenceRule{
		ID: "tv", Label: "TV", Amount: -15,
		Cadence: model.CadenceMonthly, Seed: day(t, "2026-01-05"),
		Enabled: true, Group: model.GroupVariable, Type: model.EventOutflow,
	})
	plan.Transactions = []model.Transaction{
		{ID: "t1", Date: day(t, "2026-01-06"), Label: "tv subscription", Amount: -15, Type: model.EventOutflow},
		{ID: "t2", Date: day(t, "2026-01-07"), Label: "cable television", Amount: -60, Type: model.EventOutflow},
	}

	lines := BudgetSummary(plan, 1)
	line, _ := lineByID(lines, "tv")
	if len(line.Matched) != 1 || line.Matched[0].ID != "t1" {
		t.Fatalf("short-token matches = %+v, want the whole-word hit only", line.Matched)
	}
}

func TestBudgetSummary_NoDoubleCountingOnAmbiguity(t *testing.T) {
	plan := matchPlan(t)
	// A second rule sharing the "groceries" token with the first.
	plan.OutflowRules = append(plan.OutflowRules, model.RecurrenceRule{
		ID: "bulk", Label: "Bulk Groceries", Amount: -200,
		Cadence: model.CadenceMonthly, Seed: day(t, "2026-01-20"),
		Enabled: true, Group: model.GroupVariable, Type: model.EventOutflow,
	})
	plan.Transactions = []model.Transaction{
		{ID: "t1", Date: day(t, "2026-01-11"), Label: "groceries run", Amount: -90, Type: model.EventOutflow},
	}

	lines := BudgetSummary(plan, 1)
	first, _ := lineByID(lines, "groceries")
	second, _ := lineByID(lines, "bulk")

	if first.Actual != -90 {
		t.Fatalf("first matching line actual = %v, want -90", first.Actual)
	}
	if second.Actual != 0 {
		t.Fatalf("runner-up line actual = %v, want 0 (no double counting)", second.Actual)
	}
	if len(first.Ambiguities) != 1 {
		t.Fatalf("ambiguities on winner = %d, want 1", len(first.Ambiguities))
	}
	amb := first.Ambiguities[0]
	if amb.TransactionID != "t1" || len(amb.AlsoMatched) != 1 || amb.AlsoMatched[0] != "bulk" {
		t.Fatalf("ambiguity record = %+v, want t1 also matching bulk", amb)
	}
}

func TestBudgetSummary_ExplicitLinkWinsOverFuzzy(t *testing.T) {
	plan := matchPlan(t)
	plan.Transactions = []model.Transaction{
		// Label says groceries, link says rent.
		{ID: "t1", Date: day(t, "2026-01-11"), Label: "groceries", Amount: -500,
			Type: model.EventOutflow, LinkedBillID: "rent"},
	}

	lines := BudgetSummary(plan, 1)
	rentLine, _ := lineByID(lines, "rent")
	grocLine, _ := lineByID(lines, "groceries")
	if rentLine.Actual != -500 {
		t.Fatalf("linked line actual = %v, want -500", rentLine.Actual)
	}
	if grocLine.Actual != 0 {
		t.Fatalf("fuzzy line actual = %v, want 0 when an explicit link exists", grocLine.Actual)
	}
}

func TestBudgetSummary_OutOfPeriodTransactionsIgnored(t *testing.T) {
	plan := matchPlan(t)
	plan.Transactions = []model.Transaction{
		{ID: "t1", Date: day(t, "2026-02-02"), Label: "groceries", Amount: -90, Type: model.EventOutflow},
	}

	lines := BudgetSummary(plan, 1)
	line, _ := lineByID(lines, "groceries")
	if line.Actual != 0 {
		t.Fatalf("out-of-period transaction counted: actual = %v", line.Actual)
	}
}

func TestNormalizeLabel(t *testing.T) {
	cases := []struct{ in, want string }{
		{"GROCERIES #4821", "groceries 4821"},
		{"  Trader   Joe's  ", "trader joe s"},
		{"***", ""},
	}
	for _, c := range cases {
		if got := normalizeLabel(c.in); got != c.want {
			t.Fatalf("normalizeLabel(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
