// Package pipeline assembles plan snapshots: the TOML plan document
// merged with the recorded transactions from the store. The engine
// reads the snapshot once per invocation and never sees the storage
// layer behind it.
package pipeline

import (
	"fmt"
	"os"
	"time"

	"cashplan/internal/config"
	"cashplan/internal/model"
	"cashplan/internal/source"
	"cashplan/internal/store"
)

// LoadResult holds the assembled snapshot plus load accounting.
type LoadResult struct {
	Plan         model.Plan
	Skipped      int
	Warnings     []string
	Transactions int
}

// Load reads the plan file and merges in stored transactions. A
// missing store is not an error: the plan is still fully usable for
// projection, just with no actuals.
func Load(cfg config.Config) (*LoadResult, error) {
	planPath := config.PlanPath(cfg)
	pr, err := source.LoadPlan(planPath)
	if err != nil {
		return nil, fmt.Errorf("loading plan %s: %w", planPath, err)
	}

	result := &LoadResult{
		Plan:     pr.Plan,
		Skipped:  pr.Skipped,
		Warnings: pr.Warnings,
	}

	// The as-of date defaults to today when the plan doesn't pin one.
	if result.Plan.Setup.AsOf.IsZero() {
		now := time.Now()
		result.Plan.Setup.AsOf = model.Day(now.Year(), now.Month(), now.Day())
	}

	st, err := store.Open(config.StorePath(cfg))
	if err != nil {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("transaction store unavailable: %v", err))
		return result, nil
	}
	defer func() { _ = st.Close() }()

	txns, err := st.List(time.Time{}, time.Time{})
	if err != nil {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("reading transactions: %v", err))
		return result, nil
	}

	result.Plan.Transactions = txns
	result.Transactions = len(txns)

	return result, nil
}

// PrintWarnings writes load warnings to stderr unless quiet.
func PrintWarnings(result *LoadResult, quiet bool) {
	if quiet || len(result.Warnings) == 0 {
		return
	}
	if result.Skipped > 0 {
		fmt.Fprintf(os.Stderr, "  %d plan records skipped:\n", result.Skipped)
	}
	for _, w := range result.Warnings {
		fmt.Fprintf(os.Stderr, "    %s\n", w)
	}
}
