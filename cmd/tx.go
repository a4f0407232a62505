package cmd

import (
	"fmt"
	"time"

	"cashplan/internal/cli"
	"cashplan/internal/config"
	"cashplan/internal/model"
	"cashplan/internal/store"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	flagTxDate     string
	flagTxType     string
	flagTxCategory string
	flagTxNotes    string
	flagTxLimit    int
)

var txCmd = &cobra.Command{
	Use:   "tx",
	Short: "Record, list, and link transactions",
}

var txAddCmd = &cobra.Command{
	Use:   "add <label> <amount>",
	Short: "Record a transaction",
	Args:  cobra.ExactArgs(2),
	RunE:  runTxAdd,
}

var txListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded transactions",
	RunE:  runTxList,
}

var txLinkCmd = &cobra.Command{
	Use:   "link <transaction-id> <rule-or-bill-id>",
	Short: "Link a transaction to the rule or bill that predicted it",
	Args:  cobra.ExactArgs(2),
	RunE:  runTxLink,
}

var txRmCmd = &cobra.Command{
	Use:   "rm <transaction-id>",
	Short: "Delete a transaction",
	Args:  cobra.ExactArgs(1),
	RunE:  runTxRm,
}

func init() {
	txAddCmd.Flags().StringVar(&flagTxDate, "date", "", "Transaction date (YYYY-MM-DD, default today)")
	txAddCmd.Flags().StringVarP(&flagTxType, "type", "t", "", "income, outflow, or transfer (default by amount sign)")
	txAddCmd.Flags().StringVarP(&flagTxCategory, "category", "c", "", "Category label")
	txAddCmd.Flags().StringVar(&flagTxNotes, "notes", "", "Free-form notes")
	txListCmd.Flags().IntVarP(&flagTxLimit, "limit", "n", 30, "Show at most this many recent transactions")

	txCmd.AddCommand(txAddCmd, txListCmd, txLinkCmd, txRmCmd)
	rootCmd.AddCommand(txCmd)
}

func openStore() (*store.Store, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if cfg.Display.Currency != "" {
		cli.Currency = cfg.Display.Currency
	}
	return store.Open(config.StorePath(cfg))
}

func runTxAdd(_ *cobra.Command, args []string) error {
	amountStr := args[1]
	var amount float64
	if _, err := fmt.Sscanf(amountStr, "%f", &amount); err != nil {
		return fmt.Errorf("bad amount %q", amountStr)
	}

	date := model.Normalize(time.Now())
	if flagTxDate != "" {
		d, err := model.ParseDay(flagTxDate)
		if err != nil {
			return fmt.Errorf("bad --date %q (want YYYY-MM-DD)", flagTxDate)
		}
		date = d
	}

	typ := model.EventType(flagTxType)
	switch typ {
	case "":
		if amount >= 0 {
			typ = model.EventIncome
		} else {
			typ = model.EventOutflow
		}
	case model.EventIncome, model.EventOutflow, model.EventTransfer:
	default:
		return fmt.Errorf("bad --type %q (want income, outflow, or transfer)", flagTxType)
	}

	// Stored amounts are signed: income positive, everything else negative.
	if amount < 0 {
		amount = -amount
	}
	if typ != model.EventIncome {
		amount = -amount
	}

	txn := model.Transaction{
		ID:       uuid.NewString(),
		Date:     date,
		Label:    args[0],
		Amount:   amount,
		Type:     typ,
		Category: flagTxCategory,
		Notes:    flagTxNotes,
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	if err := st.Save(txn); err != nil {
		return fmt.Errorf("saving transaction: %w", err)
	}

	fmt.Printf("  Recorded %s %s on %s (%s)\n",
		txn.Label, cli.FormatMoney(txn.Amount), cli.FormatFullDate(txn.Date), txn.ID)
	return nil
}

func runTxList(_ *cobra.Command, _ []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	txns, err := st.List(time.Time{}, time.Time{})
	if err != nil {
		return err
	}
	if len(txns) == 0 {
		fmt.Println("\n  No transactions recorded yet.")
		return nil
	}

	if flagTxLimit > 0 && len(txns) > flagTxLimit {
		txns = txns[len(txns)-flagTxLimit:]
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("TRANSACTIONS"))
	fmt.Println()

	rows := make([][]string, 0, len(txns))
	for _, txn := range txns {
		link := txn.LinkedRuleID
		if link == "" {
			link = txn.LinkedBillID
		}
		rows = append(rows, []string{
			shortID(txn.ID),
			cli.FormatFullDate(txn.Date),
			txn.Label,
			txn.Category,
			cli.StyleAmount(cli.FormatMoney(txn.Amount), txn.Amount),
			link,
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Id", "Date", "Label", "Category", "Amount", "Linked"},
		Rows:    rows,
	}))

	return nil
}

func runTxLink(_ *cobra.Command, args []string) error {
	txnID, targetID := args[0], args[1]

	plan, err := loadPlan()
	if err != nil {
		return err
	}

	// Resolve the target against the plan so bills link via the bill
	// column and rules via the rule column.
	ruleID, billID := "", ""
	for _, b := range plan.Bills {
		if b.ID == targetID {
			billID = targetID
		}
	}
	if billID == "" {
		for _, r := range append(append([]model.RecurrenceRule{}, plan.IncomeRules...), plan.OutflowRules...) {
			if r.ID == targetID {
				ruleID = targetID
			}
		}
	}
	if ruleID == "" && billID == "" {
		return fmt.Errorf("no rule or bill with id %q in the plan", targetID)
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	if err := st.Link(txnID, ruleID, billID); err != nil {
		return err
	}
	fmt.Printf("  Linked %s -> %s\n", txnID, targetID)
	return nil
}

func runTxRm(_ *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	if err := st.Delete(args[0]); err != nil {
		return err
	}
	fmt.Printf("  Deleted %s\n", args[0])
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
