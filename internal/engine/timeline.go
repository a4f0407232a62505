package engine

import (
	"cashplan/internal/model"
)

// BuildTimeline walks a period day by day, folding that day's events
// into income and outflow totals and a running balance. Transfers
// reduce the balance like outflows: they leave the tracked account.
func BuildTimeline(plan *model.Plan, periodID int, startingBalance float64) model.TimelineResult {
	period, ok := plan.PeriodByID(periodID)
	if !ok || period.Start.IsZero() || period.End.Before(period.Start) {
		return model.TimelineResult{EndingBalance: startingBalance}
	}

	events := GenerateEvents(plan, periodID)
	byDay := make(map[string][]model.CashflowEvent, len(events))
	for _, ev := range events {
		key := ev.Date.Format(model.DayFormat)
		byDay[key] = append(byDay[key], ev)
	}

	threshold := plan.Setup.ExpectedMinBalance

	rows := make([]model.TimelineRow, 0, period.Days())
	balance := startingBalance
	for day := period.Start; !day.After(period.End); day = day.AddDate(0, 0, 1) {
		var income, outflow float64
		for _, ev := range byDay[day.Format(model.DayFormat)] {
			switch ev.Type {
			case model.EventIncome:
				income += ev.Amount
			case model.EventOutflow, model.EventTransfer:
				outflow += -ev.Amount
			}
		}
		balance += income - outflow

		below := balance < 0
		if threshold > 0 {
			below = balance < threshold
		}

		rows = append(rows, model.TimelineRow{
			Date:     day,
			Income:   income,
			Outflow:  outflow,
			Balance:  balance,
			BelowMin: below,
		})
	}

	result := model.TimelineResult{Rows: rows, EndingBalance: startingBalance}
	if len(rows) > 0 {
		result.EndingBalance = rows[len(rows)-1].Balance
		lowest := rows[0]
		for _, row := range rows[1:] {
			// Strict comparison keeps the earliest date on ties.
			if row.Balance < lowest.Balance {
				lowest = row
			}
		}
		result.Lowest = lowest
	}
	return result
}

// BalanceResolver chains starting balances across periods. Ending
// balances are memoized per period id so repeated queries never
// recompute the whole chain; periods are strictly ordered by id, so
// the recursion cannot cycle.
type BalanceResolver struct {
	plan    *model.Plan
	endings map[int]float64
}

// NewBalanceResolver creates a resolver over one plan snapshot.
func NewBalanceResolver(plan *model.Plan) *BalanceResolver {
	return &BalanceResolver{plan: plan, endings: make(map[int]float64)}
}

// StartingBalance resolves a period's starting balance. With the
// roll-forward flag off every period anchors to the plan-level value.
// With it on, an explicit period override wins and breaks the chain;
// otherwise the previous period's ending balance carries forward, and
// the earliest period anchors to the plan-level value.
func (r *BalanceResolver) StartingBalance(periodID int) float64 {
	setup := r.plan.Setup
	if !setup.RollForwardBalance {
		return setup.StartingBalance
	}
	if po := r.plan.PeriodOverrideFor(periodID); po != nil && po.StartingBalance != nil {
		return *po.StartingBalance
	}
	prev, ok := r.plan.PeriodBefore(periodID)
	if !ok {
		return setup.StartingBalance
	}
	return r.EndingBalance(prev.ID)
}

// EndingBalance resolves a period's ending balance, memoized.
func (r *BalanceResolver) EndingBalance(periodID int) float64 {
	if bal, ok := r.endings[periodID]; ok {
		return bal
	}
	result := BuildTimeline(r.plan, periodID, r.StartingBalance(periodID))
	r.endings[periodID] = result.EndingBalance
	return result.EndingBalance
}

// StartingBalance is the one-shot convenience form; callers issuing
// repeated queries should hold a BalanceResolver instead.
func StartingBalance(plan *model.Plan, periodID int) float64 {
	return NewBalanceResolver(plan).StartingBalance(periodID)
}
