// Package project derives the display projection of fetched records:
// a status-filter predicate followed by a stable sort. Functions here
// are pure - records in, new slice out, input never mutated.
package project

import (
	"sort"
	"time"

	"github.com/peaksport/vitrina/internal/catalog"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// StatusFilter selects which records of the current page are shown.
type StatusFilter int

const (
	FilterAll StatusFilter = iota
	FilterActive
	FilterInactive
	FilterLowStock
)

func (f StatusFilter) String() string {
	switch f {
	case FilterActive:
		return "active"
	case FilterInactive:
		return "inactive"
	case FilterLowStock:
		return "low stock"
	default:
		return "all"
	}
}

// LowStockThreshold is the cutoff for the low-stock filter and badge.
// The backend leaves this undefined; five units matches what the admin
// team flags for reorder.
const LowStockThreshold = 5

// SortKey selects the display ordering of the projection.
type SortKey int

const (
	SortName SortKey = iota
	SortPrice
	SortDate
	SortStock
)

func (k SortKey) String() string {
	switch k {
	case SortPrice:
		return "price"
	case SortDate:
		return "date"
	case SortStock:
		return "stock"
	default:
		return "name"
	}
}

// collator is shared; collation is locale-aware so accented product
// names order the way a storefront visitor expects.
var collator = collate.New(language.Spanish)

// Apply filters then stable-sorts the records into a new slice.
// Ties keep their relative input order; there is no secondary key.
func Apply[T catalog.Entity](items []T, f StatusFilter, k SortKey) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if matches(it, f) {
			out = append(out, it)
		}
	}
	sort.SliceStable(out, lessFunc(out, k))
	return out
}

func matches(e catalog.Entity, f StatusFilter) bool {
	switch f {
	case FilterActive:
		return e.IsActive()
	case FilterInactive:
		return !e.IsActive()
	case FilterLowStock:
		return e.StockLevel() <= LowStockThreshold
	default:
		return true
	}
}

func lessFunc[T catalog.Entity](items []T, k SortKey) func(i, j int) bool {
	switch k {
	case SortPrice:
		return func(i, j int) bool {
			return items[i].AmountMinor() < items[j].AmountMinor()
		}
	case SortDate:
		// Newest first; a missing timestamp counts as the epoch and
		// sorts last.
		return func(i, j int) bool {
			return dateValue(items[i].Created()) > dateValue(items[j].Created())
		}
	case SortStock:
		return func(i, j int) bool {
			return items[i].StockLevel() < items[j].StockLevel()
		}
	default:
		return func(i, j int) bool {
			return collator.CompareString(items[i].SortName(), items[j].SortName()) < 0
		}
	}
}

func dateValue(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.Unix()
}
