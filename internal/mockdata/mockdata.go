// Package mockdata generates the demo ledger Finance Hub is seeded with.
package mockdata

import (
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/financehub-dev/financehub/internal/catalog"
	"github.com/financehub-dev/financehub/internal/id"
	"github.com/financehub-dev/financehub/internal/model"
)

const (
	historyDays    = 60
	maxPerDay      = 4 // exclusive
	futureDays     = 15
	settledAfter   = 5 // days in the past after which most entries are paid
	dueWindow      = 30
	dueOffset      = -10
	paidDelayRange = 5
)

var incomeDescriptions = []string{
	"Venda de produtos",
	"Prestação de serviços",
	"Consultoria",
	"Projeto especial",
	"Rendimento de aplicação",
	"Venda online",
	"Contrato mensal",
}

var expenseDescriptions = []string{
	"Pagamento fornecedor",
	"Salários",
	"Benefícios",
	"Assinatura mensal",
	"Imposto ICMS",
	"Imposto ISS",
	"Aluguel escritório",
	"Google Workspace",
	"AWS Services",
	"Material de escritório",
	"Campanhas Google Ads",
	"Facebook Ads",
}

// Rand is the source of uniform floats in [0, 1). *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

// Generator builds demo transactions against the default catalog.
type Generator struct {
	rand        Rand
	newID       func() string
	income      []model.Category
	expense     []model.Category
	costCenters []model.CostCenter
}

// NewGenerator returns a Generator. A nil r uses a time-seeded source.
func NewGenerator(r Rand) *Generator {
	if r == nil {
		r = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	cats := catalog.NewService(catalog.DefaultCategories(), catalog.DefaultCostCenters())
	return &Generator{
		rand:        r,
		newID:       id.New,
		income:      cats.ByType(model.TypeIncome),
		expense:     cats.ByType(model.TypeExpense),
		costCenters: cats.CostCenters(),
	}
}

// Transactions returns 60 days of history ending at today plus a handful of
// pending entries due over the next 15 days, newest first.
func (g *Generator) Transactions(today model.Date) []model.Transaction {
	var txs []model.Transaction

	for i := 0; i < historyDays; i++ {
		date := today.AddDays(-i)
		n := g.intn(maxPerDay)
		for j := 0; j < n; j++ {
			tx := g.draft(g.rand.Float64() > 0.4)
			tx.Date = date
			tx.DueDate = date.AddDays(g.intn(dueWindow) + dueOffset)

			paidChance, paidAt := 0.6, date
			if i > settledAfter {
				paidChance = 0.15
			}
			if g.rand.Float64() > paidChance {
				if i > settledAfter {
					paidAt = date.AddDays(g.intn(paidDelayRange))
				}
				tx.Status = model.StatusPaid
				tx.PaidAt = &paidAt
			} else if !tx.DueDate.After(today) {
				tx.Status = model.StatusOverdue
			} else {
				tx.Status = model.StatusPending
			}

			tx.PaymentMethod = g.paymentMethod()
			tx.IsRecurring = g.rand.Float64() > 0.8
			tx.CreatedAt = date
			tx.UpdatedAt = date
			txs = append(txs, tx)
		}
	}

	for i := 1; i <= futureDays; i++ {
		if g.rand.Float64() <= 0.5 {
			continue
		}
		tx := g.draft(g.rand.Float64() > 0.5)
		tx.Date = today
		tx.DueDate = today.AddDays(i)
		tx.PaymentMethod = g.paymentMethod()
		tx.Status = model.StatusPending
		tx.IsRecurring = g.rand.Float64() > 0.7
		tx.CreatedAt = today
		tx.UpdatedAt = today
		txs = append(txs, tx)
	}

	sort.SliceStable(txs, func(a, b int) bool {
		return txs[a].Date.After(txs[b].Date)
	})
	return txs
}

// draft fills type, category, cost center, description and amount.
func (g *Generator) draft(isIncome bool) model.Transaction {
	tx := model.Transaction{
		ID:          g.newID(),
		Type:        model.TypeExpense,
		Attachments: []string{},
	}
	cats, descs, scale, floor := g.expense, expenseDescriptions, 8000.0, 100.0
	if isIncome {
		tx.Type = model.TypeIncome
		cats, descs, scale, floor = g.income, incomeDescriptions, 15000.0, 500.0
	}
	tx.CategoryID = cats[g.intn(len(cats))].ID
	tx.CostCenterID = g.costCenters[g.intn(len(g.costCenters))].ID
	tx.Description = descs[g.intn(len(descs))]
	tx.Amount = decimal.NewFromFloat(g.rand.Float64()*scale + floor).Round(2)
	return tx
}

func (g *Generator) paymentMethod() model.PaymentMethod {
	return model.PaymentMethods[g.intn(len(model.PaymentMethods))]
}

// intn maps the next float onto [0, n).
func (g *Generator) intn(n int) int {
	v := int(math.Floor(g.rand.Float64() * float64(n)))
	if v >= n {
		v = n - 1
	}
	return v
}
