package engine

import (
	"sort"
	"time"

	"cashplan/internal/model"
)

// GenerateEvents produces the sorted, deduplicated event list for one
// period, with all three override layers applied.
func GenerateEvents(plan *model.Plan, periodID int) []model.CashflowEvent {
	period, ok := plan.PeriodByID(periodID)
	if !ok {
		return nil
	}
	return GenerateEventsInRange(plan, period.Start, period.End)
}

// GenerateEventsInRange produces events for an arbitrary window, which
// may span several periods (the rolling "upcoming" view does). Each
// occurrence is expanded under the overrides of the period containing
// it; dates outside every period use the rules' own parameters.
func GenerateEventsInRange(plan *model.Plan, from, to time.Time) []model.CashflowEvent {
	if from.IsZero() || to.IsZero() || to.Before(from) {
		return nil
	}
	from = model.Normalize(from)
	to = model.Normalize(to)

	var events []model.CashflowEvent
	seen := make(map[string]struct{})

	add := func(ev model.CashflowEvent) {
		ev, keep := ApplyEventOverride(ev, plan.EventOverrideFor(ev.ID))
		if !keep {
			return
		}
		// An override may move the date; events never escape the
		// range they were generated for.
		if ev.Date.Before(from) || ev.Date.After(to) {
			return
		}
		// Ids are namespaced by source id + natural date; a repeated
		// id would mean a malformed plan, keep the first occurrence.
		if _, dup := seen[ev.ID]; dup {
			return
		}
		seen[ev.ID] = struct{}{}
		events = append(events, ev)
	}

	for _, slice := range sliceByPeriod(plan, from, to) {
		for _, rule := range plan.IncomeRules {
			eff := ResolveRule(rule, ruleOverride(plan, slice, rule.ID, model.RuleIncome))
			for _, occ := range ExpandRule(eff, slice.from, slice.to) {
				add(ruleEvent(eff, occ))
			}
		}
		for _, rule := range plan.OutflowRules {
			eff := ResolveRule(rule, ruleOverride(plan, slice, rule.ID, model.RuleOutflow))
			for _, occ := range ExpandRule(eff, slice.from, slice.to) {
				add(ruleEvent(eff, occ))
			}
		}
		for _, bill := range plan.Bills {
			var po *model.PeriodOverride
			if slice.periodID != 0 {
				po = plan.PeriodOverrideFor(slice.periodID)
			}
			eff := ResolveBill(bill, ruleOverride(plan, slice, bill.ID, model.RuleBill), po)
			for _, occ := range ExpandBill(eff, slice.from, slice.to) {
				add(billEvent(eff, occ))
			}
		}
	}

	for _, me := range plan.ManualEvents {
		if me.Date.IsZero() || me.ID == "" {
			continue
		}
		d := model.Normalize(me.Date)
		if d.Before(from) || d.After(to) {
			continue
		}
		add(model.CashflowEvent{
			ID:       me.ID,
			Date:     d,
			Label:    me.Label,
			Amount:   me.Amount,
			Type:     me.Type,
			Category: me.Category,
		})
	}

	// Deterministic output: date ascending, label as the tiebreak.
	sort.SliceStable(events, func(i, j int) bool {
		if !events[i].Date.Equal(events[j].Date) {
			return events[i].Date.Before(events[j].Date)
		}
		return events[i].Label < events[j].Label
	})

	return events
}

// UpcomingEvents returns the events inside the plan's rolling window
// starting at asOf, optionally filtered to one event type. The window
// may cross period boundaries.
func UpcomingEvents(plan *model.Plan, asOf time.Time, windowDays int, typ model.EventType) []model.CashflowEvent {
	if windowDays <= 0 {
		windowDays = 14
	}
	from := model.Normalize(asOf)
	to := from.AddDate(0, 0, windowDays-1)

	all := GenerateEventsInRange(plan, from, to)
	if typ == "" {
		return all
	}
	filtered := make([]model.CashflowEvent, 0, len(all))
	for _, ev := range all {
		if ev.Type == typ {
			filtered = append(filtered, ev)
		}
	}
	return filtered
}

// rangeSlice is a sub-range of a query window covered by (at most) one
// period, so period-level overrides resolve unambiguously.
type rangeSlice struct {
	from, to time.Time
	periodID int // 0 when no period covers the slice
}

// sliceByPeriod partitions [from, to] into per-period slices plus
// uncovered gaps. Periods are contiguous and ordered, so a simple walk
// over the sorted period list suffices.
func sliceByPeriod(plan *model.Plan, from, to time.Time) []rangeSlice {
	periods := make([]model.Period, len(plan.Periods))
	copy(periods, plan.Periods)
	sort.Slice(periods, func(i, j int) bool { return periods[i].ID < periods[j].ID })

	var slices []rangeSlice
	cursor := from
	for _, p := range periods {
		if p.End.Before(cursor) || p.Start.After(to) {
			continue
		}
		if p.Start.After(cursor) {
			slices = append(slices, rangeSlice{from: cursor, to: p.Start.AddDate(0, 0, -1)})
			cursor = p.Start
		}
		end := p.End
		if end.After(to) {
			end = to
		}
		slices = append(slices, rangeSlice{from: cursor, to: end, periodID: p.ID})
		cursor = end.AddDate(0, 0, 1)
		if cursor.After(to) {
			return slices
		}
	}
	if !cursor.After(to) {
		slices = append(slices, rangeSlice{from: cursor, to: to})
	}
	return slices
}

func ruleOverride(plan *model.Plan, slice rangeSlice, ruleID string, typ model.RuleType) *model.PeriodRuleOverride {
	if slice.periodID == 0 {
		return nil
	}
	return plan.RuleOverrideFor(slice.periodID, ruleID, typ)
}

func ruleEvent(rule model.RecurrenceRule, occ Occurrence) model.CashflowEvent {
	return model.CashflowEvent{
		ID:       model.EventID(rule.ID, occ.Date),
		Date:     occ.Date,
		Label:    rule.Label,
		Amount:   occ.Amount,
		Type:     rule.Type,
		Category: rule.Category,
		SourceID: rule.ID,
	}
}

func billEvent(bill model.BillTemplate, occ Occurrence) model.CashflowEvent {
	return model.CashflowEvent{
		ID:       model.EventID(bill.ID, occ.Date),
		Date:     occ.Date,
		Label:    bill.Label,
		Amount:   occ.Amount,
		Type:     model.EventOutflow,
		Category: bill.Category,
		SourceID: bill.ID,
	}
}
