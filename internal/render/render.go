// Package render turns finance views into markdown documents.
//
// Every page is a text/template stored under templates/. Pages share partials
// (the upcoming due dates block appears both on the dashboard and in reminder
// digests), so each render declares the partials it needs by alias.
package render

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"github.com/shopspring/decimal"

	"github.com/financehub-dev/financehub/internal/activity"
	"github.com/financehub-dev/financehub/internal/catalog"
	"github.com/financehub-dev/financehub/internal/currency"
	"github.com/financehub-dev/financehub/internal/model"
	"github.com/financehub-dev/financehub/internal/reports"
)

//go:embed templates/*.md
var templates embed.FS

const (
	dateLayout  = "Jan 2, 2006"
	shortLayout = "Jan 02"
)

// Renderer renders pages using one catalog for labels and one currency for amounts.
type Renderer struct {
	cats     *catalog.Service
	settings model.Settings
}

// New returns a Renderer. Amounts are formatted in settings.Currency.
func New(cats *catalog.Service, settings model.Settings) *Renderer {
	return &Renderer{cats: cats, settings: settings}
}

type section struct {
	Title string
	Items []reports.Breakdown
}

func (r *Renderer) funcs() template.FuncMap {
	code := r.settings.Currency
	return template.FuncMap{
		"money":  func(d decimal.Decimal) string { return currency.Format(d, code) },
		"signed": func(d decimal.Decimal) string { return currency.FormatSigned(d, code) },
		"amount": func(t model.Transaction) string {
			return currency.FormatSigned(t.Signed(), code)
		},
		"date":       func(d model.Date) string { return d.Format(dateLayout) },
		"short":      func(d model.Date) string { return d.Format(shortLayout) },
		"category":   r.cats.CategoryLabel,
		"costCenter": r.cats.CostCenterLabel,
		"plural": func(n int, one, many string) string {
			if n == 1 {
				return one
			}
			return many
		},
		"inc": func(i int) int { return i + 1 },
		"cell": func(s string) string { return strings.ReplaceAll(s, "|", `\|`) },
		"breakdown": func(title string, items []reports.Breakdown) section {
			return section{Title: title, Items: items}
		},
	}
}

func (r *Renderer) company() string {
	if name := strings.TrimSpace(r.settings.CompanyName); name != "" {
		return name
	}
	return "Finance Hub"
}

// Dashboard renders the overview page.
func (r *Renderer) Dashboard(d reports.Dashboard) (string, error) {
	partials := map[string]string{
		"balance_series":       "balance_series.md",
		"expenses_by_category": "expenses_by_category.md",
		"upcoming":             "upcoming.md",
	}
	data := struct {
		reports.Dashboard
		Company string
	}{d, r.company()}
	return r.renderTemplate("dashboard", "dashboard.md", partials, data)
}

// Digest renders the reminder message: overdue count and upcoming due dates.
func (r *Renderer) Digest(upcoming []model.Transaction, overdue int) (string, error) {
	partials := map[string]string{"upcoming": "upcoming.md"}
	data := struct {
		Company      string
		Upcoming     []model.Transaction
		OverdueCount int
	}{r.company(), upcoming, overdue}
	return r.renderTemplate("digest", "digest.md", partials, data)
}

// Transactions renders one page of the transaction list.
func (r *Renderer) Transactions(page reports.Page) (string, error) {
	data := struct{ Page reports.Page }{page}
	return r.renderTemplate("transactions", "transactions.md", nil, data)
}

// Transaction renders every field of t.
func (r *Renderer) Transaction(t model.Transaction) (string, error) {
	return r.renderTemplate("transaction", "transaction.md", nil, t)
}

// Bills renders the payables or receivables page with tab selected.
func (r *Renderer) Bills(b reports.Bills, tab model.TransactionStatus) (string, error) {
	title, paid := "Accounts payable", "Paid"
	if b.Type == model.TypeIncome {
		title, paid = "Accounts receivable", "Received"
	}
	tabLabel := tab.Label()
	if tab == model.StatusPaid {
		tabLabel = paid
	}
	data := struct {
		Title     string
		PaidLabel string
		TabLabel  string
		Bills     reports.Bills
		Items     []model.Transaction
	}{title, paid, tabLabel, b, b.Tab(tab)}
	return r.renderTemplate("bills", "bills.md", nil, data)
}

// CashFlow renders the monthly cash flow page.
func (r *Renderer) CashFlow(cf reports.CashFlow) (string, error) {
	return r.renderTemplate("cashflow", "cashflow.md", nil, cf)
}

// Report renders the monthly category and cost center analysis.
func (r *Renderer) Report(rep reports.Report) (string, error) {
	partials := map[string]string{"breakdown": "breakdown.md"}
	return r.renderTemplate("report", "report.md", partials, rep)
}

// Catalog renders the category and cost center lists.
func (r *Renderer) Catalog() (string, error) {
	data := struct {
		Categories  []model.Category
		CostCenters []model.CostCenter
	}{r.cats.Categories(), r.cats.CostCenters()}
	return r.renderTemplate("catalog", "catalog.md", nil, data)
}

// Settings renders the preferences record.
func (r *Renderer) Settings() (string, error) {
	return r.renderTemplate("settings", "settings.md", nil, r.settings)
}

// Activity renders the change log, newest entry first as given.
func (r *Renderer) Activity(entries []activity.Entry) (string, error) {
	return r.renderTemplate("activity", "activity.md", nil, entries)
}

// renderTemplate renders mainFile after attaching every partial under its alias.
func (r *Renderer) renderTemplate(name, mainFile string, partials map[string]string, data any) (string, error) {
	mainContent, err := fs.ReadFile(templates, "templates/"+mainFile)
	if err != nil {
		return "", fmt.Errorf("reading template %q: %w", mainFile, err)
	}
	tmpl, err := template.New(name).Funcs(r.funcs()).Parse(string(mainContent))
	if err != nil {
		return "", fmt.Errorf("parsing template %q: %w", mainFile, err)
	}
	for alias, file := range partials {
		content, err := fs.ReadFile(templates, "templates/"+file)
		if err != nil {
			return "", fmt.Errorf("reading partial %q: %w", file, err)
		}
		if _, err := tmpl.New(alias).Parse(string(content)); err != nil {
			return "", fmt.Errorf("parsing partial %q for %q: %w", file, alias, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, name, data); err != nil {
		return "", fmt.Errorf("executing template %q: %w", name, err)
	}
	return b.String(), nil
}
