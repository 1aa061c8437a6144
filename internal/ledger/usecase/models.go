package usecase

import (
	"golang.org/x/text/language"

	"github.com/renjieQ/financial-transaction-records/internal/ledger/entity"
)

// Any is the filter value that disables the type or status predicate.
const Any = "all"

type SortKey string

const (
	SortByDate        SortKey = "date"
	SortByAmount      SortKey = "amount"
	SortByDescription SortKey = "description"
)

type SortDirection string

const (
	SortAscending  SortDirection = "asc"
	SortDescending SortDirection = "desc"
)

// Filter narrows and orders the transaction view. An empty Type or Status
// behaves like Any. An empty SortBy keeps insertion order. Locale picks the
// collation for description sorting; the zero tag means American English.
type Filter struct {
	Type          entity.TxType
	Status        entity.TxStatus
	Search        string
	SortBy        SortKey
	SortDirection SortDirection
	Locale        language.Tag
}

// DefaultFilter shows everything, newest first.
func DefaultFilter() Filter {
	return Filter{
		Type:          Any,
		Status:        Any,
		SortBy:        SortByDate,
		SortDirection: SortDescending,
	}
}

func (f Filter) anyType() bool {
	return f.Type == "" || f.Type == Any
}

func (f Filter) anyStatus() bool {
	return f.Status == "" || f.Status == Any
}

func (f Filter) collationLocale() language.Tag {
	if f.Locale == language.Und {
		return language.AmericanEnglish
	}
	return f.Locale
}

type ListResult struct {
	Transactions []entity.Transaction
	Total        int
	Filtered     int
}

type StateResult struct {
	Loading bool
	Error   error
}
