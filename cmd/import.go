package cmd

import (
	"fmt"
	"os"

	"cashplan/internal/source"

	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <csv-file>",
	Short: "Import transactions from a bank-export CSV",
	Long:  "Import rows of date,label,amount[,type][,category][,notes]. Malformed rows are skipped and reported, never fatal.",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(_ *cobra.Command, args []string) error {
	result, err := source.ImportCSV(args[0])
	if err != nil {
		return err
	}

	if len(result.Transactions) == 0 {
		fmt.Println("\n  No importable rows found.")
		return nil
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	if err := st.SaveAll(result.Transactions); err != nil {
		return fmt.Errorf("saving transactions: %w", err)
	}

	fmt.Printf("  Imported %d transactions from %s\n", len(result.Transactions), args[0])
	if result.BadRows > 0 && !flagQuiet {
		fmt.Fprintf(os.Stderr, "  %d rows could not be parsed\n", result.BadRows)
	}
	return nil
}
