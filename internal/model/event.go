package model

import "time"

// CashflowEvent is a generated, predicted occurrence of a rule or bill
// on a specific date. Events are derived per query and never persisted.
// SourceID back-references the originating rule or bill; it is empty
// for manually injected one-off entries.
type CashflowEvent struct {
	ID       string
	Date     time.Time
	Label    string
	Amount   float64
	Type     EventType
	Category string
	SourceID string
}

// EventID derives the stable identity of an occurrence from its source
// id and natural date. The same rule producing the same date always
// yields the same id, which keeps event overrides attached across
// regeneration.
func EventID(sourceID string, naturalDate time.Time) string {
	return sourceID + "@" + naturalDate.Format(DayFormat)
}

// Transaction is a real, user-recorded financial fact. Transactions
// are the ground truth that generated events are measured against.
// Amounts are signed like event amounts.
type Transaction struct {
	ID       string
	Date     time.Time
	Label    string
	Amount   float64
	Type     EventType
	Category string
	Notes    string

	LinkedRuleID string
	LinkedBillID string
	GoalID       string
}
