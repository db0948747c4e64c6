package reports

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/financehub-dev/financehub/internal/model"
)

func TestQueryMatch(t *testing.T) {
	tx := open("a", model.TypeExpense, model.StatusPending, "1234.50", "2024-03-20")
	tx.Description = "AWS Services"
	tx.CategoryID = "cat-7"

	tests := []struct {
		name string
		q    Query
		want bool
	}{
		{"empty", Query{}, true},
		{"all filters", Query{Type: All, Status: All, CategoryID: All}, true},
		{"description any case", Query{Search: "aws serv"}, true},
		{"amount substring", Query{Search: "234.5"}, true},
		{"amount trailing zero dropped", Query{Search: "1234.50"}, false},
		{"no match", Query{Search: "google"}, false},
		{"type", Query{Type: "income"}, false},
		{"status", Query{Status: "pending"}, true},
		{"category", Query{CategoryID: "cat-7"}, true},
		{"other category", Query{CategoryID: "cat-8"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.q.Match(tx))
		})
	}
}

func TestFilterAndPaginate(t *testing.T) {
	var txs []model.Transaction
	for i := 0; i < 23; i++ {
		typ := model.TypeIncome
		if i%2 == 1 {
			typ = model.TypeExpense
		}
		txs = append(txs, open(fmt.Sprint(i), typ, model.StatusPending, "10", "2024-03-20"))
	}

	incomes := Filter(txs, Query{Type: "income"})
	assert.Len(t, incomes, 12)
	assert.Equal(t, "0", incomes[0].ID)
	assert.Equal(t, "2", incomes[1].ID)

	p := Paginate(txs, 1, PageSize)
	assert.Len(t, p.Items, 10)
	assert.Equal(t, 3, p.TotalPages)
	assert.Equal(t, 23, p.Total)

	p = Paginate(txs, 3, PageSize)
	assert.Len(t, p.Items, 3)
	assert.Equal(t, "20", p.Items[0].ID)

	assert.Empty(t, Paginate(txs, 4, PageSize).Items)
	assert.Empty(t, Paginate(txs, 0, PageSize).Items)
	assert.Equal(t, 0, Paginate(nil, 1, PageSize).TotalPages)
	assert.Len(t, Paginate(txs, 1, 0).Items, PageSize)
}
