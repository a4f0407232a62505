// Package store provides the SQLite-backed transaction ledger.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"cashplan/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// Store holds recorded transactions, the ground truth the engine
// measures generated events against.
type Store struct {
	db *sql.DB
}

// Open opens or creates the transaction database at the given path.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening transaction db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save inserts or replaces one transaction.
func (s *Store) Save(txn model.Transaction) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO transactions
		(id, date, label, amount, type, category, notes,
		 linked_rule_id, linked_bill_id, goal_id, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		txn.ID, txn.Date.Format(model.DayFormat), txn.Label, txn.Amount, string(txn.Type),
		txn.Category, txn.Notes, txn.LinkedRuleID, txn.LinkedBillID, txn.GoalID,
		time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// SaveAll inserts a batch of transactions in one database transaction.
func (s *Store) SaveAll(txns []model.Transaction) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC().Format(time.RFC3339)
	for _, txn := range txns {
		_, err := tx.Exec(`INSERT OR REPLACE INTO transactions
			(id, date, label, amount, type, category, notes,
			 linked_rule_id, linked_bill_id, goal_id, recorded_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			txn.ID, txn.Date.Format(model.DayFormat), txn.Label, txn.Amount, string(txn.Type),
			txn.Category, txn.Notes, txn.LinkedRuleID, txn.LinkedBillID, txn.GoalID, now,
		)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

// List returns all transactions in [since, until] inclusive, ordered
// by date then label. Zero bounds are open-ended.
func (s *Store) List(since, until time.Time) ([]model.Transaction, error) {
	query := `SELECT id, date, label, amount, type, category, notes,
		linked_rule_id, linked_bill_id, goal_id
		FROM transactions`
	var args []any
	var conds []string
	if !since.IsZero() {
		conds = append(conds, "date >= ?")
		args = append(args, since.Format(model.DayFormat))
	}
	if !until.IsZero() {
		conds = append(conds, "date <= ?")
		args = append(args, until.Format(model.DayFormat))
	}
	for i, c := range conds {
		if i == 0 {
			query += " WHERE " + c
		} else {
			query += " AND " + c
		}
	}
	query += " ORDER BY date, label"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var txns []model.Transaction
	for rows.Next() {
		var txn model.Transaction
		var dateStr, typ string
		var category, notes, ruleID, billID, goalID sql.NullString
		err := rows.Scan(&txn.ID, &dateStr, &txn.Label, &txn.Amount, &typ,
			&category, &notes, &ruleID, &billID, &goalID)
		if err != nil {
			return nil, err
		}
		date, err := model.ParseDay(dateStr)
		if err != nil {
			// Malformed legacy row: skip rather than fail the load.
			continue
		}
		txn.Date = date
		txn.Type = model.EventType(typ)
		txn.Category = category.String
		txn.Notes = notes.String
		txn.LinkedRuleID = ruleID.String
		txn.LinkedBillID = billID.String
		txn.GoalID = goalID.String
		txns = append(txns, txn)
	}
	return txns, rows.Err()
}

// Link records an explicit linkage from a transaction to the rule or
// bill that predicted it. Exactly one of ruleID and billID should be
// set; the other is cleared.
func (s *Store) Link(txnID, ruleID, billID string) error {
	res, err := s.db.Exec(
		"UPDATE transactions SET linked_rule_id = ?, linked_bill_id = ? WHERE id = ?",
		ruleID, billID, txnID,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("no transaction with id %s", txnID)
	}
	return nil
}

// Delete removes one transaction.
func (s *Store) Delete(txnID string) error {
	_, err := s.db.Exec("DELETE FROM transactions WHERE id = ?", txnID)
	return err
}

// Count returns the number of stored transactions.
func (s *Store) Count() (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM transactions").Scan(&count)
	return count, err
}
