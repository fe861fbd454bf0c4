// Package ui provides the Bubble Tea views: the product list (admin
// and read-only), the cart, and the review view. Each view owns one
// list-state controller and receives data only via messages; fetch
// results carry the sequence number of the request that produced them
// so replies that arrive after state has moved on are discarded.
package ui

import "github.com/peaksport/vitrina/internal/catalog"

// productsLoadedMsg is sent when a product listing fetch resolves.
type productsLoadedMsg struct {
	Seq          uint64
	Items        []catalog.Product
	Total        int
	FromSnapshot bool
	Err          error
}

// cartLoadedMsg is sent when the cart fetch resolves.
type cartLoadedMsg struct {
	Seq   uint64
	Items []catalog.CartLine
	Total int
	Err   error
}

// reviewsLoadedMsg is sent when a review listing fetch resolves.
type reviewsLoadedMsg struct {
	Seq   uint64
	Items []catalog.Review
	Total int
	Err   error
}

// recommendedLoadedMsg carries the short recommended-products strip
// for the review view.
type recommendedLoadedMsg struct {
	Items []catalog.Product
	Err   error
}

// searchDebounceMsg fires when a search debounce timer elapses. Only
// the timer holding the latest ticket commits its input.
type searchDebounceMsg struct {
	Ticket uint64
}

// mutationDoneMsg is sent when a mutation network call returns.
type mutationDoneMsg struct {
	EntityID string
	Err      error
}

// noticeExpireMsg clears a transient notification.
type noticeExpireMsg struct {
	ID string
}
