package export

import (
	"github.com/financehub-dev/financehub/internal/catalog"
	"github.com/financehub-dev/financehub/internal/model"
	"github.com/financehub-dev/financehub/internal/reports"
)

// File names offered by each view.
const (
	TransactionsFile = "transactions"
	PayablesFile     = "payables"
	ReceivablesFile  = "receivables"
	CategoryFile     = "category-report"
	CostCenterFile   = "cost-center-report"
)

func typeLabel(t model.TransactionType) string {
	if t == model.TypeIncome {
		return "Income"
	}
	return "Expense"
}

// TransactionRows is the transaction list export.
func TransactionRows(txs []model.Transaction, cats *catalog.Service) []Row {
	rows := make([]Row, 0, len(txs))
	for _, t := range txs {
		rows = append(rows, Row{
			{"date", t.Date.String()},
			{"due_date", t.DueDate.String()},
			{"description", t.Description},
			{"type", typeLabel(t.Type)},
			{"category", cats.CategoryName(t.CategoryID)},
			{"amount", t.Amount},
			{"status", t.Status.Label()},
			{"payment_method", t.PaymentMethod.Label()},
		})
	}
	return rows
}

// BillRows is the payables or receivables export of one tab.
func BillRows(txs []model.Transaction, cats *catalog.Service) []Row {
	rows := make([]Row, 0, len(txs))
	for _, t := range txs {
		rows = append(rows, Row{
			{"due_date", t.DueDate.String()},
			{"description", t.Description},
			{"category", cats.CategoryName(t.CategoryID)},
			{"amount", t.Amount},
			{"status", t.Status.Label()},
		})
	}
	return rows
}

// CategoryRows is the by-category report export.
func CategoryRows(items []reports.Breakdown) []Row {
	return breakdownRows("category", items)
}

// CostCenterRows is the by-cost-center report export.
func CostCenterRows(items []reports.Breakdown) []Row {
	return breakdownRows("cost_center", items)
}

func breakdownRows(label string, items []reports.Breakdown) []Row {
	rows := make([]Row, 0, len(items))
	for _, b := range items {
		rows = append(rows, Row{
			{label, b.Name},
			{"income", b.Income},
			{"expense", b.Expense},
			{"total", b.Total},
		})
	}
	return rows
}
