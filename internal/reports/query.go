package reports

import (
	"strings"

	"github.com/financehub-dev/financehub/internal/model"
)

// PageSize is the number of transactions per list page.
const PageSize = 10

// All disables a filter.
const All = "all"

// Query filters the transaction list. Empty or All fields match everything.
type Query struct {
	Search     string
	Type       string
	Status     string
	CategoryID string
}

// Match reports whether t passes every filter. Search matches the description
// case-insensitively or any substring of the plain amount.
func (q Query) Match(t model.Transaction) bool {
	if q.Search != "" {
		inDesc := strings.Contains(strings.ToLower(t.Description), strings.ToLower(q.Search))
		if !inDesc && !strings.Contains(t.Amount.String(), q.Search) {
			return false
		}
	}
	return matches(q.Type, string(t.Type)) &&
		matches(q.Status, string(t.Status)) &&
		matches(q.CategoryID, t.CategoryID)
}

func matches(filter, value string) bool {
	return filter == "" || filter == All || filter == value
}

// Filter returns the transactions matching q, in their original order.
func Filter(txs []model.Transaction, q Query) []model.Transaction {
	var out []model.Transaction
	for _, t := range txs {
		if q.Match(t) {
			out = append(out, t)
		}
	}
	return out
}

// Page is one slice of a filtered list.
type Page struct {
	Items      []model.Transaction
	Number     int // 1-based
	TotalPages int
	Total      int
}

// Paginate returns page number n (1-based) of txs. Out-of-range pages are empty.
func Paginate(txs []model.Transaction, n, size int) Page {
	if size <= 0 {
		size = PageSize
	}
	p := Page{
		Number:     n,
		Total:      len(txs),
		TotalPages: (len(txs) + size - 1) / size,
	}
	start := (n - 1) * size
	if n < 1 || start >= len(txs) {
		return p
	}
	end := min(start+size, len(txs))
	p.Items = txs[start:end]
	return p
}
