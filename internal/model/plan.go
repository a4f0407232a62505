// Package model defines domain types for cashplan plans, events, and reports.
package model

import "time"

// Setup holds plan-wide settings.
type Setup struct {
	AsOf               time.Time
	WindowDays         int
	StartingBalance    float64
	RollForwardBalance bool
	ExpectedMinBalance float64
}

// Period is one budgeting cycle with fixed start and end dates.
// Periods are contiguous and non-overlapping, ordered by ID.
type Period struct {
	ID    int
	Label string
	Start time.Time
	End   time.Time
}

// Contains reports whether the day falls within the period (inclusive).
func (p Period) Contains(day time.Time) bool {
	return !day.Before(p.Start) && !day.After(p.End)
}

// Days returns the period length in days, inclusive of both endpoints.
func (p Period) Days() int {
	return DaysBetween(p.Start, p.End) + 1
}

// Plan is an immutable snapshot of one user's budget: rules, bills,
// overrides, recorded transactions, and settings. The engine never
// mutates a Plan, it only derives new structures from it.
type Plan struct {
	Setup Setup

	Periods      []Period
	IncomeRules  []RecurrenceRule
	OutflowRules []RecurrenceRule
	Bills        []BillTemplate

	PeriodOverrides []PeriodOverride
	RuleOverrides   []PeriodRuleOverride
	EventOverrides  []EventOverride
	ManualEvents    []ManualEvent

	Transactions []Transaction
}

// PeriodByID returns the period with the given id.
func (p *Plan) PeriodByID(id int) (Period, bool) {
	for _, per := range p.Periods {
		if per.ID == id {
			return per, true
		}
	}
	return Period{}, false
}

// PeriodBefore returns the period immediately preceding the given one
// in id order.
func (p *Plan) PeriodBefore(id int) (Period, bool) {
	var prev Period
	found := false
	for _, per := range p.Periods {
		if per.ID < id && (!found || per.ID > prev.ID) {
			prev = per
			found = true
		}
	}
	return prev, found
}

// PeriodContaining returns the period whose date range covers the day.
func (p *Plan) PeriodContaining(day time.Time) (Period, bool) {
	for _, per := range p.Periods {
		if per.Contains(day) {
			return per, true
		}
	}
	return Period{}, false
}

// PeriodOverrideFor returns the override for a period, if any.
func (p *Plan) PeriodOverrideFor(periodID int) *PeriodOverride {
	for i := range p.PeriodOverrides {
		if p.PeriodOverrides[i].PeriodID == periodID {
			return &p.PeriodOverrides[i]
		}
	}
	return nil
}

// RuleOverrideFor returns the per-period rule override for the given
// (period, rule, type) triple, if any.
func (p *Plan) RuleOverrideFor(periodID int, ruleID string, ruleType RuleType) *PeriodRuleOverride {
	for i := range p.RuleOverrides {
		o := &p.RuleOverrides[i]
		if o.PeriodID == periodID && o.RuleID == ruleID && o.RuleType == ruleType {
			return o
		}
	}
	return nil
}

// EventOverrideFor returns the override attached to an event id, if any.
func (p *Plan) EventOverrideFor(eventID string) *EventOverride {
	for i := range p.EventOverrides {
		if p.EventOverrides[i].EventID == eventID {
			return &p.EventOverrides[i]
		}
	}
	return nil
}
