package usecase

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"

	"github.com/renjieQ/financial-transaction-records/internal/ledger/entity"
)

// Apply filters txs with f and sorts the result. It never modifies txs and
// the sort is stable, so records with equal keys keep their input order.
func Apply(txs []entity.Transaction, f Filter) []entity.Transaction {
	m := newMatcher(f)

	view := make([]entity.Transaction, 0, len(txs))
	for _, tx := range txs {
		if m.matches(tx) {
			view = append(view, tx)
		}
	}

	if cmp := comparator(f); cmp != nil {
		slices.SortStableFunc(view, cmp)
	}

	return view
}

type matcher struct {
	filter Filter
	fold   cases.Caser
	term   string
}

func newMatcher(f Filter) *matcher {
	m := &matcher{filter: f, fold: cases.Fold()}
	if term := f.Search; term != "" {
		m.term = m.fold.String(term)
	}
	return m
}

func (m *matcher) matches(tx entity.Transaction) bool {
	if !m.filter.anyType() && tx.Type != m.filter.Type {
		return false
	}

	if !m.filter.anyStatus() && tx.Status != m.filter.Status {
		return false
	}

	if m.term == "" {
		return true
	}

	return m.contains(tx.Description) || m.contains(tx.Sender) || m.contains(tx.Recipient)
}

func (m *matcher) contains(field string) bool {
	if field == "" {
		return false
	}
	return strings.Contains(m.fold.String(field), m.term)
}

func comparator(f Filter) func(a, b entity.Transaction) int {
	var base func(a, b entity.Transaction) int

	switch f.SortBy {
	case SortByDate:
		base = func(a, b entity.Transaction) int {
			return a.Date.Compare(b.Date)
		}
	case SortByAmount:
		base = func(a, b entity.Transaction) int {
			return a.Amount.Cmp(b.Amount)
		}
	case SortByDescription:
		col := collate.New(f.collationLocale())
		base = func(a, b entity.Transaction) int {
			return col.CompareString(a.Description, b.Description)
		}
	default:
		return nil
	}

	if f.SortDirection == SortDescending {
		return func(a, b entity.Transaction) int {
			return -base(a, b)
		}
	}

	return base
}
