// Package source loads plan documents and transaction exports into
// immutable domain snapshots. Malformed records are skipped and
// counted, never fatal: one bad legacy row must not blank the plan.
package source

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"cashplan/internal/model"
)

// planFile is the TOML schema of a plan document. Dates are
// "2006-01-02" strings; amounts are entered as positive magnitudes and
// signed by the loader (income positive, outflow and bills negative).
type planFile struct {
	Setup struct {
		AsOf               string  `toml:"as_of"`
		WindowDays         int     `toml:"window_days"`
		StartingBalance    float64 `toml:"starting_balance"`
		RollForwardBalance bool    `toml:"roll_forward_balance"`
		ExpectedMinBalance float64 `toml:"expected_min_balance"`
	} `toml:"setup"`

	Periods []struct {
		ID    int    `toml:"id"`
		Label string `toml:"label"`
		Start string `toml:"start"`
		End   string `toml:"end"`
	} `toml:"period"`

	Income  []ruleEntry `toml:"income"`
	Outflow []ruleEntry `toml:"outflow"`

	Bills []struct {
		ID       string  `toml:"id"`
		Label    string  `toml:"label"`
		Amount   float64 `toml:"amount"`
		DueDay   int     `toml:"due_day"`
		Category string  `toml:"category,omitempty"`
		Group    string  `toml:"group,omitempty"`
		Enabled  *bool   `toml:"enabled,omitempty"`
	} `toml:"bill"`

	PeriodOverrides []struct {
		PeriodID        int      `toml:"period_id"`
		DisabledBills   []string `toml:"disabled_bills,omitempty"`
		StartingBalance *float64 `toml:"starting_balance,omitempty"`
	} `toml:"period_override"`

	RuleOverrides []struct {
		PeriodID int      `toml:"period_id"`
		RuleID   string   `toml:"rule_id"`
		RuleType string   `toml:"rule_type"`
		Enabled  *bool    `toml:"enabled,omitempty"`
		Amount   *float64 `toml:"amount,omitempty"`
		Cadence  *string  `toml:"cadence,omitempty"`
		Seed     *string  `toml:"seed,omitempty"`
	} `toml:"rule_override"`

	EventOverrides []struct {
		EventID  string   `toml:"event_id"`
		Date     *string  `toml:"date,omitempty"`
		Amount   *float64 `toml:"amount,omitempty"`
		Disabled bool     `toml:"disabled,omitempty"`
	} `toml:"event_override"`

	ManualEvents []struct {
		ID       string  `toml:"id"`
		Date     string  `toml:"date"`
		Label    string  `toml:"label"`
		Amount   float64 `toml:"amount"`
		Type     string  `toml:"type"`
		Category string  `toml:"category,omitempty"`
	} `toml:"manual_event"`
}

type ruleEntry struct {
	ID       string  `toml:"id"`
	Label    string  `toml:"label"`
	Amount   float64 `toml:"amount"`
	Cadence  string  `toml:"cadence"`
	Seed     string  `toml:"seed"`
	Category string  `toml:"category,omitempty"`
	Group    string  `toml:"group,omitempty"`
	Enabled  *bool   `toml:"enabled,omitempty"`
}

// PlanResult holds a loaded plan plus skip accounting.
type PlanResult struct {
	Plan     model.Plan
	Skipped  int
	Warnings []string
}

// LoadPlan reads and validates a TOML plan file.
func LoadPlan(path string) (*PlanResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading plan file: %w", err)
	}
	return ParsePlan(data)
}

// ParsePlan decodes a plan document. Records with unparseable dates,
// empty ids, or unknown enum values are dropped and counted.
func ParsePlan(data []byte) (*PlanResult, error) {
	var pf planFile
	if err := toml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("parsing plan file: %w", err)
	}

	res := &PlanResult{}
	skip := func(format string, args ...any) {
		res.Skipped++
		res.Warnings = append(res.Warnings, fmt.Sprintf(format, args...))
	}

	plan := &res.Plan
	plan.Setup.WindowDays = pf.Setup.WindowDays
	plan.Setup.StartingBalance = pf.Setup.StartingBalance
	plan.Setup.RollForwardBalance = pf.Setup.RollForwardBalance
	plan.Setup.ExpectedMinBalance = pf.Setup.ExpectedMinBalance
	if pf.Setup.AsOf != "" {
		d, err := model.ParseDay(pf.Setup.AsOf)
		if err != nil {
			skip("setup: bad as_of %q", pf.Setup.AsOf)
		} else {
			plan.Setup.AsOf = d
		}
	}

	for _, p := range pf.Periods {
		start, err1 := model.ParseDay(p.Start)
		end, err2 := model.ParseDay(p.End)
		if p.ID <= 0 || err1 != nil || err2 != nil || end.Before(start) {
			skip("period %d (%s): bad id or date range", p.ID, p.Label)
			continue
		}
		plan.Periods = append(plan.Periods, model.Period{
			ID: p.ID, Label: p.Label, Start: start, End: end,
		})
	}
	sort.Slice(plan.Periods, func(i, j int) bool {
		return plan.Periods[i].ID < plan.Periods[j].ID
	})

	for _, r := range pf.Income {
		rule, err := parseRule(r, model.EventIncome)
		if err != nil {
			skip("income %q: %v", r.ID, err)
			continue
		}
		plan.IncomeRules = append(plan.IncomeRules, rule)
	}
	for _, r := range pf.Outflow {
		rule, err := parseRule(r, model.EventOutflow)
		if err != nil {
			skip("outflow %q: %v", r.ID, err)
			continue
		}
		plan.OutflowRules = append(plan.OutflowRules, rule)
	}

	for _, b := range pf.Bills {
		if b.ID == "" || b.DueDay < 1 || b.DueDay > 31 {
			skip("bill %q: missing id or due_day out of range", b.ID)
			continue
		}
		plan.Bills = append(plan.Bills, model.BillTemplate{
			ID:       b.ID,
			Label:    b.Label,
			Amount:   -abs(b.Amount),
			DueDay:   b.DueDay,
			Category: b.Category,
			Group:    defaultGroup(b.Group, model.GroupFixed),
			Enabled:  b.Enabled == nil || *b.Enabled,
		})
	}

	for _, o := range pf.PeriodOverrides {
		if o.PeriodID <= 0 {
			skip("period_override: bad period_id %d", o.PeriodID)
			continue
		}
		plan.PeriodOverrides = append(plan.PeriodOverrides, model.PeriodOverride{
			PeriodID:        o.PeriodID,
			DisabledBillIDs: o.DisabledBills,
			StartingBalance: o.StartingBalance,
		})
	}

	for _, o := range pf.RuleOverrides {
		rt := model.RuleType(o.RuleType)
		if o.PeriodID <= 0 || o.RuleID == "" ||
			(rt != model.RuleIncome && rt != model.RuleOutflow && rt != model.RuleBill) {
			skip("rule_override %q: bad period, id, or rule_type", o.RuleID)
			continue
		}
		ovr := model.PeriodRuleOverride{
			PeriodID: o.PeriodID,
			RuleID:   o.RuleID,
			RuleType: rt,
			Enabled:  o.Enabled,
		}
		if o.Amount != nil {
			amt := abs(*o.Amount)
			if rt != model.RuleIncome {
				amt = -amt
			}
			ovr.Amount = &amt
		}
		if o.Cadence != nil {
			c := model.Cadence(*o.Cadence)
			if c != model.CadenceWeekly && c != model.CadenceBiweekly && c != model.CadenceMonthly {
				skip("rule_override %q: bad cadence %q", o.RuleID, *o.Cadence)
				continue
			}
			ovr.Cadence = &c
		}
		if o.Seed != nil {
			d, err := model.ParseDay(*o.Seed)
			if err != nil {
				skip("rule_override %q: bad seed %q", o.RuleID, *o.Seed)
				continue
			}
			ovr.Seed = &d
		}
		plan.RuleOverrides = append(plan.RuleOverrides, ovr)
	}

	for _, me := range pf.ManualEvents {
		d, err := model.ParseDay(me.Date)
		typ := model.EventType(me.Type)
		if me.ID == "" || err != nil ||
			(typ != model.EventIncome && typ != model.EventOutflow && typ != model.EventTransfer) {
			skip("manual_event %q: bad id, date, or type", me.ID)
			continue
		}
		amt := abs(me.Amount)
		if typ != model.EventIncome {
			amt = -amt
		}
		plan.ManualEvents = append(plan.ManualEvents, model.ManualEvent{
			ID:       me.ID,
			Date:     d,
			Label:    me.Label,
			Amount:   amt,
			Type:     typ,
			Category: me.Category,
		})
	}

	// Event overrides are signed against their source, so they parse
	// after every source list is in place.
	for _, o := range pf.EventOverrides {
		if o.EventID == "" {
			skip("event_override: missing event_id")
			continue
		}
		ovr := model.EventOverride{EventID: o.EventID, Disabled: o.Disabled}
		if o.Date != nil {
			d, err := model.ParseDay(*o.Date)
			if err != nil {
				skip("event_override %q: bad date %q", o.EventID, *o.Date)
				continue
			}
			ovr.Date = &d
		}
		if o.Amount != nil {
			amt := signForSource(plan, o.EventID, *o.Amount)
			ovr.Amount = &amt
		}
		plan.EventOverrides = append(plan.EventOverrides, ovr)
	}

	return res, nil
}

func parseRule(r ruleEntry, typ model.EventType) (model.RecurrenceRule, error) {
	if r.ID == "" {
		return model.RecurrenceRule{}, fmt.Errorf("missing id")
	}
	cadence := model.Cadence(r.Cadence)
	if cadence != model.CadenceWeekly && cadence != model.CadenceBiweekly && cadence != model.CadenceMonthly {
		return model.RecurrenceRule{}, fmt.Errorf("bad cadence %q", r.Cadence)
	}
	seed, err := model.ParseDay(r.Seed)
	if err != nil {
		return model.RecurrenceRule{}, fmt.Errorf("bad seed %q", r.Seed)
	}

	amt := abs(r.Amount)
	group := model.GroupIncome
	if typ == model.EventOutflow {
		amt = -amt
		group = model.GroupVariable
	}

	return model.RecurrenceRule{
		ID:       r.ID,
		Label:    r.Label,
		Amount:   amt,
		Cadence:  cadence,
		Seed:     seed,
		Enabled:  r.Enabled == nil || *r.Enabled,
		Category: r.Category,
		Group:    defaultGroup(r.Group, group),
		Type:     typ,
	}, nil
}

// signForSource signs an override magnitude by the type of the event's
// source: income sources stay positive, everything else goes negative.
// The source id is everything before the "@" in the event id.
func signForSource(plan *model.Plan, eventID string, magnitude float64) float64 {
	sourceID := eventID
	if at := strings.LastIndex(eventID, "@"); at >= 0 {
		sourceID = eventID[:at]
	}
	for _, r := range plan.IncomeRules {
		if r.ID == sourceID {
			return abs(magnitude)
		}
	}
	for _, me := range plan.ManualEvents {
		if me.ID == sourceID && me.Type == model.EventIncome {
			return abs(magnitude)
		}
	}
	return -abs(magnitude)
}

func defaultGroup(g, fallback string) string {
	if g == "" {
		return fallback
	}
	return strings.ToUpper(g)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
