package model

import "time"

// TimelineRow is one day of the balance projection.
type TimelineRow struct {
	Date     time.Time
	Income   float64
	Outflow  float64
	Balance  float64
	BelowMin bool
}

// TimelineResult is the full day-by-day projection for one period.
type TimelineResult struct {
	Rows          []TimelineRow
	Lowest        TimelineRow
	EndingBalance float64
}

// Ambiguity records an unlinked transaction that fuzzy-matched more
// than one rule. The transaction is assigned to the line carrying the
// record; AlsoMatched lists the runner-up source ids.
type Ambiguity struct {
	TransactionID string
	AlsoMatched   []string
}

// BudgetLine compares one rule or bill against the transactions that
// realized it within a period. Budgeted and Actual carry the signed
// sums; Variance = Actual - Budgeted, so positive variance always
// means more money than planned.
type BudgetLine struct {
	SourceID string
	Label    string
	RuleType RuleType
	Category string
	Group    string

	Budgeted float64
	Actual   float64
	Variance float64

	Matched     []Transaction
	Ambiguities []Ambiguity
}

// PaceStatus classifies progress against elapsed time.
type PaceStatus string

const (
	PaceAhead   PaceStatus = "ahead"
	PaceBehind  PaceStatus = "behind"
	PaceOnTrack PaceStatus = "on-track"
)

// ScheduleShape describes how a metric's budgeted events are
// distributed across a period.
type ScheduleShape string

const (
	ShapeFrontLoaded ScheduleShape = "front-loaded"
	ShapeBackLoaded  ScheduleShape = "back-loaded"
	ShapeEven        ScheduleShape = "even"
)

// PaceMetric is one pace measurement (spending, savings, or income).
// All amounts are magnitudes. Expected is the schedule-aware cumulative
// value at the as-of date, summed from generated events rather than
// interpolated linearly.
type PaceMetric struct {
	Name string

	Budgeted float64
	Actual   float64
	Expected float64

	Progress     float64
	TimeProgress float64
	PaceGap      float64
	Status       PaceStatus

	// IsNormal is set when the actual tracks the schedule-aware
	// expectation within tolerance, so a large PaceGap on a lumpy
	// schedule is not a warning.
	IsNormal bool
	Shape    ScheduleShape
}

// Forecast projects the rest of the period from the as-of date.
type Forecast struct {
	ProjectedEndBalance float64
	RiskDays            int
	LowestDate          time.Time
	LowestBalance       float64
}

// PaceReport is the full pace and forecast summary for one period,
// consumed by the dashboard views.
type PaceReport struct {
	PeriodID int
	AsOf     time.Time
	Metrics  []PaceMetric
	Forecast Forecast
}
