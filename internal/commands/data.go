package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/financehub-dev/financehub/internal/finance"
	"github.com/financehub-dev/financehub/internal/ledger"
)

func newDataCommand(a *app) *cobra.Command {
	dataCmd := &cobra.Command{
		Use:   "data",
		Short: "Reset, reseed, back up or restore local data",
	}
	dataCmd.AddCommand(
		&cobra.Command{
			Use:   "reset",
			Short: "Remove every stored entry",
			Args:  cobra.NoArgs,
			RunE: a.withService(func(cmd *cobra.Command, _ []string, svc *finance.Service) error {
				ok, err := a.confirm(cmd, "Remove all transactions, categories, cost centers and settings?")
				if err != nil || !ok {
					return err
				}
				if err := svc.Reset(cmd.Context()); err != nil {
					return err
				}
				a.record(cmd, "data.reset", "", "")
				fmt.Fprintln(cmd.OutOrStdout(), "All data removed. Demo data is generated again on next use.")
				return nil
			}),
		},
		&cobra.Command{
			Use:   "demo",
			Short: "Replace everything with freshly generated demo data",
			Args:  cobra.NoArgs,
			RunE: a.withService(func(cmd *cobra.Command, _ []string, svc *finance.Service) error {
				ok, err := a.confirm(cmd, "Replace all data with demo data?")
				if err != nil || !ok {
					return err
				}
				if err := svc.ReloadDemo(cmd.Context()); err != nil {
					return err
				}
				a.record(cmd, "data.demo", "", fmt.Sprintf("%d transactions", len(svc.Transactions())))
				fmt.Fprintf(cmd.OutOrStdout(), "Generated %d demo transactions\n", len(svc.Transactions()))
				return nil
			}),
		},
		&cobra.Command{
			Use:   "backup <file>",
			Short: "Save every transaction to a CSV file",
			Args:  cobra.ExactArgs(1),
			RunE: a.withService(func(cmd *cobra.Command, args []string, svc *finance.Service) error {
				txs := svc.Transactions()
				if err := ledger.Backup(args[0], txs); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Saved %d transactions to %s\n", len(txs), args[0])
				return nil
			}),
		},
		&cobra.Command{
			Use:   "restore <file>",
			Short: "Replace the ledger with a CSV backup",
			Args:  cobra.ExactArgs(1),
			RunE: a.withService(func(cmd *cobra.Command, args []string, svc *finance.Service) error {
				txs, err := ledger.Restore(args[0])
				if err != nil {
					return err
				}
				ok, err := a.confirm(cmd, fmt.Sprintf("Replace the ledger with %d transactions from %s?", len(txs), args[0]))
				if err != nil || !ok {
					return err
				}
				if err := svc.ReplaceTransactions(cmd.Context(), txs); err != nil {
					return err
				}
				a.record(cmd, "data.restore", "", fmt.Sprintf("%d transactions from %s", len(txs), filepath.Base(args[0])))
				fmt.Fprintf(cmd.OutOrStdout(), "Restored %d transactions\n", len(txs))
				return nil
			}),
		},
	)
	return dataCmd
}
