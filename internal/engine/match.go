package engine

import (
	"strings"

	"cashplan/internal/model"
)

// incomeStopWords are generic payroll words excluded when fuzzy-
// matching income rules, so a rule labelled "Income Placeholder" does
// not swallow every paycheck transaction.
var incomeStopWords = map[string]struct{}{
	"income":  {},
	"salary":  {},
	"pay":     {},
	"payment": {},
	"wage":    {},
	"wages":   {},
}

// matcher is the prepared fuzzy-match state for one rule or bill.
type matcher struct {
	sourceID string
	label    string
	ruleType model.RuleType
	category string
	group    string
	tokens   []string
}

// BudgetSummary compares every rule and bill against the period's
// transactions: budgeted from generated events, actual from explicitly
// linked transactions plus fuzzy-matched unlinked ones. Each unlinked
// transaction is assigned to at most one line — the first match in
// declaration order (income rules, outflow rules, bills) — and ties
// are reported as ambiguities rather than double-counted.
func BudgetSummary(plan *model.Plan, periodID int) []model.BudgetLine {
	period, ok := plan.PeriodByID(periodID)
	if !ok {
		return nil
	}

	events := GenerateEvents(plan, periodID)
	budgeted := make(map[string]float64)
	for _, ev := range events {
		if ev.SourceID != "" {
			budgeted[ev.SourceID] += ev.Amount
		}
	}

	matchers := buildMatchers(plan)

	// Partition the period's transactions once: explicit links first,
	// the remainder is the shared pool for fuzzy matching.
	linked := make(map[string][]model.Transaction)
	var unlinked []model.Transaction
	for _, txn := range plan.Transactions {
		if txn.Date.IsZero() || !period.Contains(model.Normalize(txn.Date)) {
			continue
		}
		switch {
		case txn.LinkedRuleID != "":
			linked[txn.LinkedRuleID] = append(linked[txn.LinkedRuleID], txn)
		case txn.LinkedBillID != "":
			linked[txn.LinkedBillID] = append(linked[txn.LinkedBillID], txn)
		default:
			unlinked = append(unlinked, txn)
		}
	}

	fuzzy := make(map[string][]model.Transaction)
	ambiguities := make(map[string][]model.Ambiguity)
	for _, txn := range unlinked {
		text := normalizeLabel(txn.Label + " " + txn.Notes)
		var hits []*matcher
		for i := range matchers {
			if matchers[i].matches(text) {
				hits = append(hits, &matchers[i])
			}
		}
		if len(hits) == 0 {
			continue
		}
		winner := hits[0]
		fuzzy[winner.sourceID] = append(fuzzy[winner.sourceID], txn)
		if len(hits) > 1 {
			others := make([]string, 0, len(hits)-1)
			for _, h := range hits[1:] {
				others = append(others, h.sourceID)
			}
			ambiguities[winner.sourceID] = append(ambiguities[winner.sourceID], model.Ambiguity{
				TransactionID: txn.ID,
				AlsoMatched:   others,
			})
		}
	}

	lines := make([]model.BudgetLine, 0, len(matchers))
	for _, m := range matchers {
		line := model.BudgetLine{
			SourceID: m.sourceID,
			Label:    m.label,
			RuleType: m.ruleType,
			Category: m.category,
			Group:    m.group,
			Budgeted: budgeted[m.sourceID],
		}
		line.Matched = append(line.Matched, linked[m.sourceID]...)
		line.Matched = append(line.Matched, fuzzy[m.sourceID]...)
		for _, txn := range line.Matched {
			line.Actual += txn.Amount
		}
		line.Variance = line.Actual - line.Budgeted
		line.Ambiguities = ambiguities[m.sourceID]
		lines = append(lines, line)
	}
	return lines
}

// buildMatchers prepares matchers in the documented assignment order:
// income rules, then outflow rules, then bills, each in slice order.
func buildMatchers(plan *model.Plan) []matcher {
	out := make([]matcher, 0, len(plan.IncomeRules)+len(plan.OutflowRules)+len(plan.Bills))
	for _, r := range plan.IncomeRules {
		out = append(out, matcher{
			sourceID: r.ID,
			label:    r.Label,
			ruleType: model.RuleIncome,
			category: r.Category,
			group:    r.Group,
			tokens:   matchTokens(r.Label, true),
		})
	}
	for _, r := range plan.OutflowRules {
		out = append(out, matcher{
			sourceID: r.ID,
			label:    r.Label,
			ruleType: model.RuleOutflow,
			category: r.Category,
			group:    r.Group,
			tokens:   matchTokens(r.Label, false),
		})
	}
	for _, b := range plan.Bills {
		out = append(out, matcher{
			sourceID: b.ID,
			label:    b.Label,
			ruleType: model.RuleBill,
			category: b.Category,
			group:    b.Group,
			tokens:   matchTokens(b.Label, false),
		})
	}
	return out
}

// matches reports whether any rule token appears in the normalized
// transaction text. Tokens of length <= 2 must match a whole word;
// longer tokens may match as a substring.
func (m *matcher) matches(text string) bool {
	if text == "" {
		return false
	}
	words := strings.Fields(text)
	for _, tok := range m.tokens {
		if len(tok) <= 2 {
			for _, w := range words {
				if w == tok {
					return true
				}
			}
			continue
		}
		if strings.Contains(text, tok) {
			return true
		}
	}
	return false
}

// matchTokens tokenizes a rule label for fuzzy matching, dropping the
// payroll stop words for income rules. A label made entirely of stop
// words (a rule literally called "Salary") keeps its raw tokens:
// dropping everything would make the rule unmatchable.
func matchTokens(label string, income bool) []string {
	raw := strings.Fields(normalizeLabel(label))
	if !income {
		return raw
	}
	var tokens []string
	for _, tok := range raw {
		if _, stop := incomeStopWords[tok]; !stop {
			tokens = append(tokens, tok)
		}
	}
	if len(tokens) == 0 {
		return raw
	}
	return tokens
}

// normalizeLabel lowercases and collapses every non-alphanumeric run
// to a single space.
func normalizeLabel(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	lastSpace := true
	for _, r := range strings.ToLower(s) {
		alnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if alnum {
			b.WriteRune(r)
			lastSpace = false
			continue
		}
		if !lastSpace {
			b.WriteByte(' ')
			lastSpace = true
		}
	}
	return strings.TrimSpace(b.String())
}
