package engine

import (
	"cashplan/internal/model"
)

// ResolveRule merges a rule with its per-period override. The override
// replaces only the fields it specifies; nil fields keep the rule's
// own values. The rule itself is never mutated.
func ResolveRule(rule model.RecurrenceRule, ovr *model.PeriodRuleOverride) model.RecurrenceRule {
	eff := rule
	if ovr == nil {
		return eff
	}
	if ovr.Enabled != nil {
		eff.Enabled = *ovr.Enabled
	}
	if ovr.Amount != nil {
		eff.Amount = *ovr.Amount
	}
	if ovr.Cadence != nil {
		eff.Cadence = *ovr.Cadence
	}
	if ovr.Seed != nil {
		eff.Seed = *ovr.Seed
	}
	return eff
}

// ResolveBill merges a bill with its per-period rule override, then
// applies the period override's disabled-bill set, which forces the
// bill off for that period regardless of the earlier layers.
func ResolveBill(bill model.BillTemplate, ovr *model.PeriodRuleOverride, period *model.PeriodOverride) model.BillTemplate {
	eff := bill
	if ovr != nil {
		if ovr.Enabled != nil {
			eff.Enabled = *ovr.Enabled
		}
		if ovr.Amount != nil {
			eff.Amount = *ovr.Amount
		}
	}
	if period.BillDisabled(bill.ID) {
		eff.Enabled = false
	}
	return eff
}

// ApplyEventOverride applies an occurrence-level override to a
// generated event. It returns false when the override suppresses the
// occurrence. Date and amount are replaced when specified; label,
// category, and source linkage always come from the original.
func ApplyEventOverride(ev model.CashflowEvent, ovr *model.EventOverride) (model.CashflowEvent, bool) {
	if ovr == nil {
		return ev, true
	}
	if ovr.Disabled {
		return model.CashflowEvent{}, false
	}
	if ovr.Date != nil {
		ev.Date = model.Normalize(*ovr.Date)
	}
	if ovr.Amount != nil {
		ev.Amount = *ovr.Amount
	}
	return ev, true
}
