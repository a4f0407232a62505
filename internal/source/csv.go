package source

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"cashplan/internal/model"
)

// ImportResult holds parsed transactions plus row accounting.
type ImportResult struct {
	Transactions []model.Transaction
	TotalRows    int
	BadRows      int
}

// ImportCSV parses a bank-export CSV of recorded transactions.
//
// Expected columns: date, label, amount, then optionally type,
// category, notes. A header row is detected by an unparseable date in
// the first field. Rows that fail to parse are counted, not fatal.
func ImportCSV(path string) (*ImportResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening csv: %w", err)
	}
	defer func() { _ = f.Close() }()

	return parseCSV(f)
}

func parseCSV(r io.Reader) (*ImportResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	result := &ImportResult{}
	first := true

	for {
		record, err := reader.Read()
		if err == io.EOF {
			return result, nil
		}
		if err != nil {
			result.TotalRows++
			result.BadRows++
			continue
		}

		txn, ok := parseRow(record)
		if !ok {
			if first {
				// Header row, not an error.
				first = false
				continue
			}
			result.TotalRows++
			result.BadRows++
			continue
		}
		first = false
		result.TotalRows++
		result.Transactions = append(result.Transactions, txn)
	}
}

func parseRow(record []string) (model.Transaction, bool) {
	if len(record) < 3 {
		return model.Transaction{}, false
	}

	date, err := model.ParseDay(strings.TrimSpace(record[0]))
	if err != nil {
		return model.Transaction{}, false
	}

	amount, err := parseAmount(record[2])
	if err != nil {
		return model.Transaction{}, false
	}

	txn := model.Transaction{
		ID:     uuid.NewString(),
		Date:   date,
		Label:  strings.TrimSpace(record[1]),
		Amount: amount,
	}

	if len(record) > 3 && record[3] != "" {
		switch typ := model.EventType(strings.ToLower(strings.TrimSpace(record[3]))); typ {
		case model.EventIncome, model.EventOutflow, model.EventTransfer:
			txn.Type = typ
			// The type column wins over the amount's sign.
			if typ == model.EventIncome {
				txn.Amount = abs(amount)
			} else {
				txn.Amount = -abs(amount)
			}
		}
	}
	if txn.Type == "" {
		if amount >= 0 {
			txn.Type = model.EventIncome
		} else {
			txn.Type = model.EventOutflow
		}
	}

	if len(record) > 4 {
		txn.Category = strings.TrimSpace(record[4])
	}
	if len(record) > 5 {
		txn.Notes = strings.TrimSpace(record[5])
	}
	return txn, true
}

// parseAmount accepts "1,234.56", "$-12.00", and plain floats.
func parseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimPrefix(s, "$")
	s = strings.Replace(s, "-$", "-", 1)
	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}
	return strconv.ParseFloat(s, 64)
}
