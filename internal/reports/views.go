// Package reports reduces the transaction list into the dashboard, cash
// flow, breakdown and bill views. Every view works on paid transactions by
// their effective date unless noted otherwise.
package reports

import (
	"fmt"
	"slices"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/financehub-dev/financehub/internal/catalog"
	"github.com/financehub-dev/financehub/internal/model"
)

const (
	balanceWindow    = 30
	upcomingWindow   = 7
	upcomingLimit    = 5
	categorySlices   = 6
	topExpensesLimit = 10
)

// Totals is income, expense and their difference.
type Totals struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
	Result  decimal.Decimal
}

func (t *Totals) add(tx model.Transaction) {
	if tx.Type == model.TypeIncome {
		t.Income = t.Income.Add(tx.Amount)
	} else {
		t.Expense = t.Expense.Add(tx.Amount)
	}
	t.Result = t.Income.Sub(t.Expense)
}

// BalancePoint is the running balance at the end of a day.
type BalancePoint struct {
	Date    model.Date
	Balance decimal.Decimal
}

// CategorySlice is one wedge of the expenses-by-category chart.
type CategorySlice struct {
	CategoryID string
	Name       string
	Color      string
	Value      decimal.Decimal
}

// Dashboard is the landing page summary.
type Dashboard struct {
	Today              model.Date
	Balance            decimal.Decimal
	Month              Totals
	Series             []BalancePoint
	ExpensesByCategory []CategorySlice
	Upcoming           []model.Transaction
	OverdueCount       int
}

// paidIn returns the paid transactions whose effective date is in m.
func paidIn(txs []model.Transaction, m Month) []model.Transaction {
	var out []model.Transaction
	for _, t := range txs {
		if t.Status == model.StatusPaid && m.Contains(t.EffectiveDate()) {
			out = append(out, t)
		}
	}
	return out
}

// CurrentBalance sums every paid transaction, income positive.
func CurrentBalance(txs []model.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, t := range txs {
		if t.Status == model.StatusPaid {
			total = total.Add(t.Signed())
		}
	}
	return total
}

// MonthTotals sums the paid transactions effective in m.
func MonthTotals(txs []model.Transaction, m Month) Totals {
	var totals Totals
	for _, t := range paidIn(txs, m) {
		totals.add(t)
	}
	return totals
}

// BalanceSeries returns one point per day for the 30 days ending today. The
// opening balance is every paid transaction effective before today-30.
func BalanceSeries(txs []model.Transaction, today model.Date) []BalancePoint {
	cutoff := today.AddDays(-balanceWindow)
	running := decimal.Zero
	byDay := make(map[string]decimal.Decimal)
	for _, t := range txs {
		if t.Status != model.StatusPaid {
			continue
		}
		eff := t.EffectiveDate()
		if eff.Before(cutoff) {
			running = running.Add(t.Signed())
			continue
		}
		byDay[eff.String()] = byDay[eff.String()].Add(t.Signed())
	}

	points := make([]BalancePoint, 0, balanceWindow)
	for i := balanceWindow - 1; i >= 0; i-- {
		day := today.AddDays(-i)
		running = running.Add(byDay[day.String()])
		points = append(points, BalancePoint{Date: day, Balance: running})
	}
	return points
}

// ExpensesByCategory groups the paid expenses effective in m by category,
// largest first, at most six.
func ExpensesByCategory(txs []model.Transaction, cats *catalog.Service, m Month) []CategorySlice {
	var order []string
	sums := make(map[string]decimal.Decimal)
	for _, t := range paidIn(txs, m) {
		if t.Type != model.TypeExpense {
			continue
		}
		if _, seen := sums[t.CategoryID]; !seen {
			order = append(order, t.CategoryID)
		}
		sums[t.CategoryID] = sums[t.CategoryID].Add(t.Amount)
	}

	slicesOut := make([]CategorySlice, 0, len(order))
	for _, catID := range order {
		slicesOut = append(slicesOut, CategorySlice{
			CategoryID: catID,
			Name:       cats.CategoryLabel(catID),
			Color:      cats.CategoryColor(catID),
			Value:      sums[catID].Round(2),
		})
	}
	sort.SliceStable(slicesOut, func(a, b int) bool {
		return slicesOut[a].Value.GreaterThan(slicesOut[b].Value)
	})
	if len(slicesOut) > categorySlices {
		slicesOut = slicesOut[:categorySlices]
	}
	return slicesOut
}

// UpcomingDueDates returns pending transactions due within the next seven
// days (today included), soonest first, at most five.
func UpcomingDueDates(txs []model.Transaction, today model.Date) []model.Transaction {
	end := today.AddDays(upcomingWindow)
	var out []model.Transaction
	for _, t := range txs {
		if t.Status == model.StatusPending && t.DueDate.Between(today, end) {
			out = append(out, t)
		}
	}
	slices.SortStableFunc(out, func(a, b model.Transaction) int {
		return a.DueDate.Time().Compare(b.DueDate.Time())
	})
	if len(out) > upcomingLimit {
		out = out[:upcomingLimit]
	}
	return out
}

// OverdueCount counts transactions stored as overdue.
func OverdueCount(txs []model.Transaction) int {
	n := 0
	for _, t := range txs {
		if t.Status == model.StatusOverdue {
			n++
		}
	}
	return n
}

// BuildDashboard computes every dashboard widget for today.
func BuildDashboard(txs []model.Transaction, cats *catalog.Service, today model.Date) Dashboard {
	month := MonthOf(today)
	return Dashboard{
		Today:              today,
		Balance:            CurrentBalance(txs),
		Month:              MonthTotals(txs, month),
		Series:             BalanceSeries(txs, today),
		ExpensesByCategory: ExpensesByCategory(txs, cats, month),
		Upcoming:           UpcomingDueDates(txs, today),
		OverdueCount:       OverdueCount(txs),
	}
}

// WeekBucket is one bar of the weekly cash flow chart.
type WeekBucket struct {
	Name  string
	Start model.Date
	End   model.Date
	Totals
}

// DayGroup is the paid activity of one effective date.
type DayGroup struct {
	Date         model.Date
	Transactions []model.Transaction
	Totals
}

// CashFlow is the month view of money that actually moved.
type CashFlow struct {
	Month Month
	Totals
	Weeks []WeekBucket
	Days  []DayGroup
}

// BuildCashFlow summarizes m. Weeks start on weekStart, the first one being
// the week that contains the first of the month.
func BuildCashFlow(txs []model.Transaction, m Month, first time.Weekday) CashFlow {
	paid := paidIn(txs, m)
	cf := CashFlow{Month: m}
	for _, t := range paid {
		cf.add(t)
	}

	n := 1
	for start := weekStart(m.Start, first); !start.After(m.End); start = start.AddDays(7) {
		w := WeekBucket{Name: fmt.Sprintf("Week %d", n), Start: start, End: start.AddDays(6)}
		for _, t := range paid {
			if t.EffectiveDate().Between(w.Start, w.End) {
				w.add(t)
			}
		}
		cf.Weeks = append(cf.Weeks, w)
		n++
	}

	index := make(map[string]int)
	for _, t := range paid {
		eff := t.EffectiveDate()
		i, ok := index[eff.String()]
		if !ok {
			i = len(cf.Days)
			index[eff.String()] = i
			cf.Days = append(cf.Days, DayGroup{Date: eff})
		}
		cf.Days[i].Transactions = append(cf.Days[i].Transactions, t)
		cf.Days[i].add(t)
	}
	slices.SortStableFunc(cf.Days, func(a, b DayGroup) int {
		return b.Date.Time().Compare(a.Date.Time())
	})
	return cf
}

// Breakdown is the paid activity of one category or cost center.
type Breakdown struct {
	ID      string
	Name    string
	Income  decimal.Decimal
	Expense decimal.Decimal
	// Total is Income plus Expense, not their difference.
	Total decimal.Decimal
}

// Report is the month analysis page.
type Report struct {
	Month       Month
	Categories  []Breakdown
	CostCenters []Breakdown
	TopExpenses []model.Transaction
}

func breakdown(txs []model.Transaction, key func(model.Transaction) string, label func(string) string) []Breakdown {
	var out []Breakdown
	index := make(map[string]int)
	for _, t := range txs {
		k := key(t)
		i, ok := index[k]
		if !ok {
			i = len(out)
			index[k] = i
			out = append(out, Breakdown{ID: k, Name: label(k)})
		}
		if t.Type == model.TypeIncome {
			out[i].Income = out[i].Income.Add(t.Amount)
		} else {
			out[i].Expense = out[i].Expense.Add(t.Amount)
		}
		out[i].Total = out[i].Income.Add(out[i].Expense)
	}
	slices.SortStableFunc(out, func(a, b Breakdown) int {
		return b.Total.Cmp(a.Total)
	})
	return out
}

// ByCategory groups the paid transactions effective in m by category.
func ByCategory(txs []model.Transaction, cats *catalog.Service, m Month) []Breakdown {
	return breakdown(paidIn(txs, m),
		func(t model.Transaction) string { return t.CategoryID },
		cats.CategoryLabel)
}

// ByCostCenter groups the paid transactions effective in m by cost center.
func ByCostCenter(txs []model.Transaction, cats *catalog.Service, m Month) []Breakdown {
	return breakdown(paidIn(txs, m),
		func(t model.Transaction) string { return t.CostCenterID },
		cats.CostCenterLabel)
}

// TopExpenses returns the n largest paid expenses effective in m.
func TopExpenses(txs []model.Transaction, m Month, n int) []model.Transaction {
	var out []model.Transaction
	for _, t := range paidIn(txs, m) {
		if t.Type == model.TypeExpense {
			out = append(out, t)
		}
	}
	slices.SortStableFunc(out, func(a, b model.Transaction) int {
		return b.Amount.Cmp(a.Amount)
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// BuildReport computes the breakdowns and top expenses for m.
func BuildReport(txs []model.Transaction, cats *catalog.Service, m Month) Report {
	return Report{
		Month:       m,
		Categories:  ByCategory(txs, cats, m),
		CostCenters: ByCostCenter(txs, cats, m),
		TopExpenses: TopExpenses(txs, m, topExpensesLimit),
	}
}

// Bills splits one side of the ledger by status.
type Bills struct {
	Type    model.TransactionType
	Pending []model.Transaction
	Overdue []model.Transaction
	Paid    []model.Transaction
}

// Tab returns the list for status. Unknown statuses fall back to pending.
func (b Bills) Tab(status model.TransactionStatus) []model.Transaction {
	switch status {
	case model.StatusOverdue:
		return b.Overdue
	case model.StatusPaid:
		return b.Paid
	}
	return b.Pending
}

func bills(txs []model.Transaction, typ model.TransactionType) Bills {
	b := Bills{Type: typ}
	for _, t := range txs {
		if t.Type != typ {
			continue
		}
		switch t.Status {
		case model.StatusPending:
			b.Pending = append(b.Pending, t)
		case model.StatusOverdue:
			b.Overdue = append(b.Overdue, t)
		case model.StatusPaid:
			b.Paid = append(b.Paid, t)
		}
	}
	return b
}

// Payables returns the expense side split by status.
func Payables(txs []model.Transaction) Bills { return bills(txs, model.TypeExpense) }

// Receivables returns the income side split by status.
func Receivables(txs []model.Transaction) Bills { return bills(txs, model.TypeIncome) }
