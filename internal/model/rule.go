package model

import "time"

// Cadence is the repeat interval of a recurrence rule.
type Cadence string

const (
	CadenceWeekly   Cadence = "weekly"
	CadenceBiweekly Cadence = "biweekly"
	CadenceMonthly  Cadence = "monthly"
)

// IntervalDays returns the step in days for fixed-interval cadences,
// or 0 for monthly (which steps by calendar month).
func (c Cadence) IntervalDays() int {
	switch c {
	case CadenceWeekly:
		return 7
	case CadenceBiweekly:
		return 14
	default:
		return 0
	}
}

// EventType classifies a cashflow event or transaction.
type EventType string

const (
	EventIncome   EventType = "income"
	EventOutflow  EventType = "outflow"
	EventTransfer EventType = "transfer"
)

// RuleType identifies the kind of template an override targets.
type RuleType string

const (
	RuleIncome  RuleType = "income"
	RuleOutflow RuleType = "outflow"
	RuleBill    RuleType = "bill"
)

// Category groups from the budget sheet. Every rule and bill belongs
// to one group for roll-up reporting.
const (
	GroupIncome   = "INCOME"
	GroupGiving   = "GIVING"
	GroupFixed    = "FIXED"
	GroupVariable = "VARIABLE"
	GroupSavings  = "SAVINGS"
)

// RecurrenceRule is an income or outflow template. Amounts are signed:
// income positive, outflow negative. The template itself is immutable;
// per-period variations are expressed as overrides.
type RecurrenceRule struct {
	ID       string
	Label    string
	Amount   float64
	Cadence  Cadence
	Seed     time.Time
	Enabled  bool
	Category string
	Group    string
	Type     EventType
}

// BillTemplate is a monthly obligation anchored to a calendar day
// rather than an offset from a seed date. DueDay is 1-31, clamped to
// the actual month length at expansion time. Amounts are negative.
type BillTemplate struct {
	ID       string
	Label    string
	Amount   float64
	DueDay   int
	Category string
	Group    string
	Enabled  bool
}
