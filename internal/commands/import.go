package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/financehub-dev/financehub/internal/finance"
	"github.com/financehub-dev/financehub/internal/importer"
	"github.com/financehub-dev/financehub/internal/logctx"
	"github.com/financehub-dev/financehub/internal/model"
)

func newTxImportCommand(a *app) *cobra.Command {
	var format, method string
	var m importer.Mapping
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Record the lines of a bank statement CSV as paid transactions",
		Long: `Import reads a bank statement export and records each line as a paid
transaction on its statement date. Credits become income and debits become
expenses. Lines already in the ledger with the same day, description and
amount are skipped, so importing the same file twice is safe.`,
		Args: cobra.ExactArgs(1),
		RunE: a.withService(func(cmd *cobra.Command, args []string, svc *finance.Service) error {
			registry := importer.DefaultRegistry()
			parser := registry.Get(format)
			if parser == nil {
				formats := registry.Formats()
				slices.Sort(formats)
				return fmt.Errorf("unknown format %q (known: %s)", format, strings.Join(formats, ", "))
			}

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening statement: %w", err)
			}
			defer f.Close()

			lines, err := parser.Parse(f)
			if err != nil {
				return fmt.Errorf("parsing %s: %w", args[0], err)
			}

			m.Method = model.PaymentMethod(method)
			txs, skipped := importer.Convert(lines, m, svc.Transactions())
			logctx.FromContext(cmd.Context()).DebugContext(cmd.Context(), "Parsed statement",
				"file", args[0], "format", parser.Format(), "lines", len(lines), "skipped", skipped)

			out := cmd.OutOrStdout()
			if dryRun {
				for _, t := range txs {
					fmt.Fprintf(out, "%s  %-7s  %10s  %s\n", t.Date, t.Type, t.Amount.StringFixed(2), t.Description)
				}
				fmt.Fprintf(out, "Would import %d transactions, %d skipped\n", len(txs), skipped)
				return nil
			}

			added, err := svc.AddTransactions(cmd.Context(), txs)
			if err != nil {
				return err
			}
			if len(added) > 0 {
				a.record(cmd, "tx.import", "", fmt.Sprintf("%d from %s", len(added), filepath.Base(args[0])))
			}
			fmt.Fprintf(out, "Imported %d transactions, %d skipped\n", len(added), skipped)
			return nil
		}),
	}

	f := cmd.Flags()
	f.StringVarP(&format, "format", "f", "chase", "statement layout: chase or simple")
	f.StringVar(&m.IncomeCategory, "income-category", "cat-4", "category id for credits")
	f.StringVar(&m.ExpenseCategory, "expense-category", "cat-11", "category id for debits")
	f.StringVar(&m.CostCenter, "cost-center", "cc-1", "cost center id for every line")
	f.StringVar(&method, "method", string(model.PaymentTransfer), "payment method for every line")
	f.BoolVar(&dryRun, "dry-run", false, "print what would be imported without saving")

	return cmd
}
