package model

import "time"

// PeriodOverride adjusts one period without touching its neighbours:
// it can suppress bills for that period only and/or pin the period's
// starting balance, which wins over roll-forward resolution.
type PeriodOverride struct {
	PeriodID        int
	DisabledBillIDs []string
	StartingBalance *float64
}

// BillDisabled reports whether the bill id is suppressed by this override.
func (o *PeriodOverride) BillDisabled(billID string) bool {
	if o == nil {
		return false
	}
	for _, id := range o.DisabledBillIDs {
		if id == billID {
			return true
		}
	}
	return false
}

// PeriodRuleOverride replaces selected rule fields within one period's
// expansion only. Nil fields fall through to the rule's own values.
// The underlying rule is never mutated.
type PeriodRuleOverride struct {
	PeriodID int
	RuleID   string
	RuleType RuleType

	Enabled *bool
	Amount  *float64
	Cadence *Cadence
	Seed    *time.Time
}

// EventOverride adjusts or suppresses a single generated occurrence,
// keyed by the occurrence's deterministic id (source id + natural
// date), so it survives regeneration unchanged.
type EventOverride struct {
	EventID  string
	Date     *time.Time
	Amount   *float64
	Disabled bool
}

// ManualEvent is a one-off cashflow entry injected at plan level, not
// produced by any rule. Its id is its own stable identity.
type ManualEvent struct {
	ID       string
	Date     time.Time
	Label    string
	Amount   float64
	Type     EventType
	Category string
}
