package commands

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/financehub-dev/financehub/internal/export"
	"github.com/financehub-dev/financehub/internal/finance"
	"github.com/financehub-dev/financehub/internal/id"
	"github.com/financehub-dev/financehub/internal/model"
	"github.com/financehub-dev/financehub/internal/reports"
)

func newTxCommand(a *app) *cobra.Command {
	txCmd := &cobra.Command{
		Use:     "tx",
		Aliases: []string{"transactions"},
		Short:   "List and edit transactions",
	}
	txCmd.AddCommand(
		newTxListCommand(a),
		newTxShowCommand(a),
		newTxAddCommand(a),
		newTxUpdateCommand(a),
		newTxPayCommand(a),
		newTxDuplicateCommand(a),
		newTxDeleteCommand(a),
		newTxImportCommand(a),
	)
	return txCmd
}

func newTxListCommand(a *app) *cobra.Command {
	var q reports.Query
	var page, size int
	var exportDir string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List transactions, newest first",
		Args:    cobra.NoArgs,
		RunE: a.withService(func(cmd *cobra.Command, _ []string, svc *finance.Service) error {
			txs := reports.Filter(svc.Transactions(), q)
			if exportDir != "" {
				return a.exportCSV(cmd, exportDir, export.TransactionsFile, export.TransactionRows(txs, svc.Catalog()))
			}
			md, err := a.renderer(svc).Transactions(reports.Paginate(txs, page, size))
			if err != nil {
				return err
			}
			return a.show(cmd, md)
		}),
	}

	f := cmd.Flags()
	f.StringVarP(&q.Search, "search", "s", "", "match description or amount")
	f.StringVar(&q.Type, "type", reports.All, "income, expense or all")
	f.StringVar(&q.Status, "status", reports.All, "pending, paid, overdue or all")
	f.StringVar(&q.CategoryID, "category", reports.All, "category id or all")
	f.IntVarP(&page, "page", "p", 1, "page number")
	f.IntVar(&size, "page-size", reports.PageSize, "transactions per page")
	f.StringVar(&exportDir, "export", "", "write the filtered list to `dir`/transactions.csv instead")

	return cmd
}

func newTxShowCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one transaction",
		Args:  cobra.ExactArgs(1),
		RunE: a.withService(func(cmd *cobra.Command, args []string, svc *finance.Service) error {
			t, err := svc.Transaction(args[0])
			if err != nil {
				return err
			}
			md, err := a.renderer(svc).Transaction(t)
			if err != nil {
				return err
			}
			return a.show(cmd, md)
		}),
	}
}

// txFlags are the editable transaction fields shared by add and update.
type txFlags struct {
	typ, amount, category, costCenter string
	date, due, method, description    string
	status, paidAt                    string
	recurring                         bool
}

func (tf *txFlags) register(f *pflag.FlagSet) {
	f.StringVar(&tf.typ, "type", string(model.TypeExpense), "income or expense")
	f.StringVar(&tf.amount, "amount", "", "amount, e.g. 1234.56")
	f.StringVar(&tf.category, "category", "", "category id")
	f.StringVar(&tf.costCenter, "cost-center", "", "cost center id")
	f.StringVar(&tf.date, "date", "", "competence date YYYY-MM-DD (default today)")
	f.StringVar(&tf.due, "due", "", "due date YYYY-MM-DD (default the date)")
	f.StringVar(&tf.method, "method", string(model.PaymentPix), "pix, boleto, card or transfer")
	f.StringVarP(&tf.description, "description", "d", "", "description")
	f.StringVar(&tf.status, "status", string(model.StatusPending), "pending, paid or overdue")
	f.StringVar(&tf.paidAt, "paid-at", "", "payment date YYYY-MM-DD")
	f.BoolVar(&tf.recurring, "recurring", false, "repeats every month")
}

func parseAmount(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q", s)
	}
	return d, nil
}

func parseDateFlag(name, s string) (model.Date, error) {
	d, err := model.ParseDate(s)
	if err != nil {
		return model.Date{}, fmt.Errorf("invalid --%s: %w", name, err)
	}
	return d, nil
}

// transaction builds a new transaction from the flags.
func (tf *txFlags) transaction(today model.Date) (model.Transaction, error) {
	amount, err := parseAmount(tf.amount)
	if err != nil {
		return model.Transaction{}, err
	}
	date := today
	if tf.date != "" {
		if date, err = parseDateFlag("date", tf.date); err != nil {
			return model.Transaction{}, err
		}
	}
	due := date
	if tf.due != "" {
		if due, err = parseDateFlag("due", tf.due); err != nil {
			return model.Transaction{}, err
		}
	}
	t := model.Transaction{
		Type:          model.TransactionType(tf.typ),
		Amount:        amount,
		CategoryID:    tf.category,
		CostCenterID:  tf.costCenter,
		Date:          date,
		DueDate:       due,
		PaymentMethod: model.PaymentMethod(tf.method),
		Description:   tf.description,
		Status:        model.TransactionStatus(tf.status),
		IsRecurring:   tf.recurring,
	}
	if tf.paidAt != "" {
		paid, err := parseDateFlag("paid-at", tf.paidAt)
		if err != nil {
			return model.Transaction{}, err
		}
		t.PaidAt = &paid
	} else if t.Status == model.StatusPaid {
		t.PaidAt = &today
	}
	return t, nil
}

// patch collects the flags that were set on the command line.
func (tf *txFlags) patch(f *pflag.FlagSet) (model.TransactionPatch, error) {
	var p model.TransactionPatch
	if f.Changed("type") {
		typ := model.TransactionType(tf.typ)
		p.Type = &typ
	}
	if f.Changed("amount") {
		amount, err := parseAmount(tf.amount)
		if err != nil {
			return p, err
		}
		p.Amount = &amount
	}
	if f.Changed("category") {
		p.CategoryID = &tf.category
	}
	if f.Changed("cost-center") {
		p.CostCenterID = &tf.costCenter
	}
	for _, d := range []struct {
		name string
		raw  string
		dst  **model.Date
	}{
		{"date", tf.date, &p.Date},
		{"due", tf.due, &p.DueDate},
		{"paid-at", tf.paidAt, &p.PaidAt},
	} {
		if !f.Changed(d.name) {
			continue
		}
		v, err := parseDateFlag(d.name, d.raw)
		if err != nil {
			return p, err
		}
		*d.dst = &v
	}
	if f.Changed("method") {
		m := model.PaymentMethod(tf.method)
		p.PaymentMethod = &m
	}
	if f.Changed("description") {
		p.Description = &tf.description
	}
	if f.Changed("status") {
		s := model.TransactionStatus(tf.status)
		p.Status = &s
	}
	if f.Changed("recurring") {
		p.IsRecurring = &tf.recurring
	}
	return p, nil
}

func newTxAddCommand(a *app) *cobra.Command {
	var tf txFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a new transaction",
		Args:  cobra.NoArgs,
		RunE: a.withService(func(cmd *cobra.Command, _ []string, svc *finance.Service) error {
			t, err := tf.transaction(svc.Today())
			if err != nil {
				return err
			}
			created, err := svc.AddTransaction(cmd.Context(), t)
			if err != nil {
				return err
			}
			a.record(cmd, "tx.add", created.ID, created.Description)
			fmt.Fprintf(cmd.OutOrStdout(), "Added transaction %s\n", created.ID)
			return nil
		}),
	}
	tf.register(cmd.Flags())
	return cmd
}

func newTxUpdateCommand(a *app) *cobra.Command {
	var tf txFlags

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change fields of a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: a.withService(func(cmd *cobra.Command, args []string, svc *finance.Service) error {
			p, err := tf.patch(cmd.Flags())
			if err != nil {
				return err
			}
			if p.IsEmpty() {
				return fmt.Errorf("nothing to update: pass at least one field flag")
			}
			updated, err := svc.UpdateTransaction(cmd.Context(), args[0], p)
			if err != nil {
				return err
			}
			a.record(cmd, "tx.update", updated.ID, "")
			fmt.Fprintf(cmd.OutOrStdout(), "Updated transaction %s\n", updated.ID)
			return nil
		}),
	}
	tf.register(cmd.Flags())
	return cmd
}

func newTxPayCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "pay <id>",
		Short: "Mark a transaction as paid today",
		Args:  cobra.ExactArgs(1),
		RunE: a.withService(func(cmd *cobra.Command, args []string, svc *finance.Service) error {
			t, err := svc.MarkAsPaid(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			a.record(cmd, "tx.pay", t.ID, "")
			fmt.Fprintf(cmd.OutOrStdout(), "Marked %s as paid on %s\n", t.ID, t.PaidAt)
			return nil
		}),
	}
}

func newTxDuplicateCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "duplicate <id>",
		Short: "Copy a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: a.withService(func(cmd *cobra.Command, args []string, svc *finance.Service) error {
			t, err := svc.DuplicateTransaction(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			a.record(cmd, "tx.duplicate", t.ID, "copy of "+args[0])
			fmt.Fprintf(cmd.OutOrStdout(), "Added transaction %s\n", t.ID)
			return nil
		}),
	}
}

func newTxDeleteCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>...",
		Aliases: []string{"rm"},
		Short:   "Delete one or more transactions",
		Args:    cobra.MinimumNArgs(1),
		RunE: a.withService(func(cmd *cobra.Command, args []string, svc *finance.Service) error {
			ids := id.Unique(args)
			if len(ids) == 0 {
				return fmt.Errorf("no transaction ids given")
			}
			n, err := svc.DeleteTransactions(cmd.Context(), ids)
			if err != nil {
				return err
			}
			if n > 0 {
				a.record(cmd, "tx.delete", strings.Join(ids, " "), fmt.Sprintf("%d removed", n))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d of %d transactions\n", n, len(ids))
			return nil
		}),
	}
}
