package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/financehub-dev/financehub/internal/export"
	"github.com/financehub-dev/financehub/internal/finance"
	"github.com/financehub-dev/financehub/internal/model"
	"github.com/financehub-dev/financehub/internal/reports"
)

// billsView is one side of the ledger shown as bills.
type billsView struct {
	use, short string
	file       string
	split      func([]model.Transaction) reports.Bills
}

var (
	payables = billsView{
		use:   "payables",
		short: "Expenses grouped as pending, overdue and paid bills",
		file:  export.PayablesFile,
		split: reports.Payables,
	}
	receivables = billsView{
		use:   "receivables",
		short: "Income grouped as pending, overdue and received bills",
		file:  export.ReceivablesFile,
		split: reports.Receivables,
	}
)

func parseTab(s string) (model.TransactionStatus, error) {
	switch s {
	case "received":
		return model.StatusPaid, nil
	}
	status := model.TransactionStatus(s)
	if !status.Valid() {
		return "", fmt.Errorf("unknown tab %q: use pending, overdue or paid", s)
	}
	return status, nil
}

func newBillsCommand(a *app, view billsView) *cobra.Command {
	var tab string
	var exportDir string

	cmd := &cobra.Command{
		Use:   view.use,
		Short: view.short,
		Args:  cobra.NoArgs,
		RunE: a.withService(func(cmd *cobra.Command, _ []string, svc *finance.Service) error {
			status, err := parseTab(tab)
			if err != nil {
				return err
			}
			bills := view.split(svc.Transactions())
			if exportDir != "" {
				return a.exportCSV(cmd, exportDir, view.file, export.BillRows(bills.Tab(status), svc.Catalog()))
			}
			md, err := a.renderer(svc).Bills(bills, status)
			if err != nil {
				return err
			}
			return a.show(cmd, md)
		}),
	}

	cmd.Flags().StringVarP(&tab, "tab", "t", string(model.StatusPending), "pending, overdue or paid")
	cmd.Flags().StringVar(&exportDir, "export", "", "write the selected tab to `dir`/"+view.file+".csv instead")

	return cmd
}
