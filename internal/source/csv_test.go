package source

import (
	"strings"
	"testing"

	"cashplan/internal/model"
)

func TestParseCSV_HeaderAndBadRows(t *testing.T) {
	data := `date,label,amount,type,category,notes
2026-01-02,Paycheck,2000.00,income,,first of the month
2026-01-05,"Groceries, bulk",-84.20,,FOOD,
not-a-date,Mystery,10.00,,,
2026-01-09,Rent,1200.00,outflow,HOUSING,
`
	res, err := parseCSV(strings.NewReader(data))
	if err != nil {
		t.Fatalf("parseCSV: %v", err)
	}
	if res.TotalRows != 4 {
		t.Fatalf("total rows = %d, want 4 (header not counted)", res.TotalRows)
	}
	if res.BadRows != 1 {
		t.Fatalf("bad rows = %d, want 1", res.BadRows)
	}
	if len(res.Transactions) != 3 {
		t.Fatalf("transactions = %d, want 3", len(res.Transactions))
	}

	pay := res.Transactions[0]
	if pay.Amount != 2000 || pay.Type != model.EventIncome || pay.Notes != "first of the month" {
		t.Fatalf("paycheck row = %+v", pay)
	}
	if pay.ID == "" {
		t.Fatal("imported transaction missing generated id")
	}

	groc := res.Transactions[1]
	if groc.Label != "Groceries, bulk" || groc.Category != "FOOD" {
		t.Fatalf("quoted row = %+v", groc)
	}
	// No type column: the sign decides.
	if groc.Type != model.EventOutflow || groc.Amount != -84.20 {
		t.Fatalf("sign-inferred row = %+v", groc)
	}
}

func TestParseCSV_TypeColumnWinsOverSign(t *testing.T) {
	data := `2026-01-09,Rent,1200.00,outflow
2026-01-10,Refund,-25.00,income
`
	res, err := parseCSV(strings.NewReader(data))
	if err != nil {
		t.Fatalf("parseCSV: %v", err)
	}
	if len(res.Transactions) != 2 {
		t.Fatalf("transactions = %d, want 2 (no header in this export)", len(res.Transactions))
	}
	if got := res.Transactions[0].Amount; got != -1200 {
		t.Fatalf("outflow-typed amount = %v, want -1200", got)
	}
	if got := res.Transactions[1].Amount; got != 25 {
		t.Fatalf("income-typed amount = %v, want +25", got)
	}
}

func TestParseAmount_Formats(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"1,234.56", 1234.56},
		{"$45.00", 45},
		{"-$12.00", -12},
		{" -3.5 ", -3.5},
	}
	for _, c := range cases {
		got, err := parseAmount(c.in)
		if err != nil {
			t.Fatalf("parseAmount(%q): %v", c.in, err)
		}
		if got != c.want {
			t.Fatalf("parseAmount(%q) = %v, want %v", c.in, got, c.want)
		}
	}
	if _, err := parseAmount("  "); err == nil {
		t.Fatal("blank amount parsed without error")
	}
}
