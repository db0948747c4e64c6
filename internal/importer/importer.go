// Package importer turns bank statement exports into ledger transactions.
package importer

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/financehub-dev/financehub/internal/model"
)

// Line is one row of a bank statement. Amount is negative for money out.
type Line struct {
	Date        model.Date
	Description string
	Amount      decimal.Decimal
}

// Parser converts a bank CSV file into statement lines.
type Parser interface {
	Parse(r io.Reader) ([]Line, error)
	Format() string
}

// Registry holds named parsers.
type Registry struct {
	parsers map[string]Parser
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// Register adds a parser. Panics on duplicate format.
func (r *Registry) Register(p Parser) {
	key := strings.ToLower(p.Format())
	if _, ok := r.parsers[key]; ok {
		panic("duplicate parser format: " + key)
	}
	r.parsers[key] = p
}

// Get returns the parser for format, or nil.
func (r *Registry) Get(format string) Parser {
	return r.parsers[strings.ToLower(format)]
}

// Formats lists the registered format names.
func (r *Registry) Formats() []string {
	names := make([]string, 0, len(r.parsers))
	for name := range r.parsers {
		names = append(names, name)
	}
	return names
}

// DefaultRegistry returns a registry with all built-in parsers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&ChaseParser{})
	r.Register(&SimpleParser{})
	return r
}

// Mapping says how statement lines become transactions. An empty Method
// means bank transfer.
type Mapping struct {
	IncomeCategory  string
	ExpenseCategory string
	CostCenter      string
	Method          model.PaymentMethod
}

// Convert maps lines to paid transactions dated on the statement day. Lines
// with a zero amount are dropped, as are lines matching a transaction in
// existing (or an earlier line) on day, description and signed amount.
// It returns the new transactions and how many lines were skipped.
func Convert(lines []Line, m Mapping, existing []model.Transaction) ([]model.Transaction, int) {
	seen := make(map[string]struct{}, len(existing))
	for _, t := range existing {
		seen[dedupeKey(t.EffectiveDate(), t.Description, t.Signed())] = struct{}{}
	}

	method := m.Method
	if method == "" {
		method = model.PaymentTransfer
	}

	var out []model.Transaction
	skipped := 0
	for _, l := range lines {
		key := dedupeKey(l.Date, l.Description, l.Amount)
		if _, dup := seen[key]; dup || l.Amount.IsZero() {
			skipped++
			continue
		}
		seen[key] = struct{}{}

		t := model.Transaction{
			Type:          model.TypeIncome,
			Amount:        l.Amount.Abs(),
			CategoryID:    m.IncomeCategory,
			CostCenterID:  m.CostCenter,
			Date:          l.Date,
			DueDate:       l.Date,
			PaymentMethod: method,
			Description:   l.Description,
			Status:        model.StatusPaid,
		}
		if l.Amount.IsNegative() {
			t.Type = model.TypeExpense
			t.CategoryID = m.ExpenseCategory
		}
		paid := l.Date
		t.PaidAt = &paid
		out = append(out, t)
	}
	return out, skipped
}

func dedupeKey(d model.Date, desc string, amount decimal.Decimal) string {
	return fmt.Sprintf("%s|%s|%s", d, strings.ToLower(strings.TrimSpace(desc)), amount.StringFixed(2))
}
