// Package engine implements the pure cashflow projection core:
// recurrence expansion, override resolution, event generation, balance
// timelines, budget-vs-actual matching, and pace analysis. All inputs
// are immutable snapshots; no function here performs I/O.
package engine

import (
	"time"

	"cashplan/internal/model"
)

// Occurrence is one dated hit produced by expanding a rule or bill.
type Occurrence struct {
	Date   time.Time
	Amount float64
}

// ExpandRule lists every occurrence an effective rule produces inside
// the closed range [from, to]. A disabled rule or a malformed seed
// yields nothing rather than an error: one bad legacy record must not
// blank the whole forecast.
func ExpandRule(rule model.RecurrenceRule, from, to time.Time) []Occurrence {
	if !rule.Enabled || rule.Seed.IsZero() || to.Before(from) {
		return nil
	}
	from = model.Normalize(from)
	to = model.Normalize(to)
	seed := model.Normalize(rule.Seed)

	if rule.Cadence == model.CadenceMonthly {
		return expandMonthly(seed, rule.Amount, from, to)
	}

	interval := rule.Cadence.IntervalDays()
	if interval <= 0 {
		return nil
	}

	// First occurrence at or after from: seed + k*interval with
	// k = max(0, ceil((from-seed)/interval)).
	k := 0
	if diff := model.DaysBetween(seed, from); diff > 0 {
		k = (diff + interval - 1) / interval
	}

	var out []Occurrence
	for d := seed.AddDate(0, 0, k*interval); !d.After(to); d = d.AddDate(0, 0, interval) {
		out = append(out, Occurrence{Date: d, Amount: rule.Amount})
	}
	return out
}

// expandMonthly walks calendar months from the seed, keeping the
// seed's day-of-month and clamping to shorter months.
func expandMonthly(seed time.Time, amount float64, from, to time.Time) []Occurrence {
	anchorDay := seed.Day()
	year, month := seed.Year(), seed.Month()

	// Skip whole months before the range instead of stepping one at
	// a time from a possibly ancient seed.
	if monthsAhead := (from.Year()-year)*12 + int(from.Month()-month); monthsAhead > 0 {
		y, m := addMonths(year, month, monthsAhead)
		year, month = y, m
	}

	var out []Occurrence
	for {
		d := model.ClampDayOfMonth(year, month, anchorDay)
		if d.After(to) {
			return out
		}
		if !d.Before(from) {
			out = append(out, Occurrence{Date: d, Amount: amount})
		}
		year, month = addMonths(year, month, 1)
	}
}

// ExpandBill lists the bill's due dates inside [from, to]. Bills are
// anchored to a day of month with no seed dependency: every month in
// range produces exactly one occurrence, clamped to month length.
func ExpandBill(bill model.BillTemplate, from, to time.Time) []Occurrence {
	if !bill.Enabled || bill.DueDay < 1 || to.Before(from) {
		return nil
	}
	from = model.Normalize(from)
	to = model.Normalize(to)

	var out []Occurrence
	year, month := from.Year(), from.Month()
	for {
		d := model.ClampDayOfMonth(year, month, bill.DueDay)
		if d.After(to) {
			return out
		}
		if !d.Before(from) {
			out = append(out, Occurrence{Date: d, Amount: bill.Amount})
		}
		year, month = addMonths(year, month, 1)
	}
}

func addMonths(year int, month time.Month, n int) (int, time.Month) {
	idx := year*12 + int(month) - 1 + n
	return idx / 12, time.Month(idx%12 + 1)
}
