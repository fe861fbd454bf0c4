// Package controller owns the per-view list state: pagination cursor,
// filter and sort selection, and the records of the last successful
// fetch. State is mutated only through the transition methods here and
// by applying fetch results; everything downstream (projection,
// rendering) is a pure function of it.
package controller

import (
	"github.com/peaksport/vitrina/internal/catalog"
	"github.com/peaksport/vitrina/internal/logging"
	"github.com/peaksport/vitrina/internal/project"
	"github.com/peaksport/vitrina/internal/query"
)

// ViewMode selects which render target displays the projection.
type ViewMode int

const (
	ViewTable ViewMode = iota
	ViewGrid
)

// Toggle flips between the two render targets.
func (m ViewMode) Toggle() ViewMode {
	if m == ViewTable {
		return ViewGrid
	}
	return ViewTable
}

// Effect tells the caller what a state transition requires next.
type Effect int

const (
	// EffectNone: nothing to do, state unchanged.
	EffectNone Effect = iota
	// EffectFetch: page membership changed, issue a new fetch.
	EffectFetch
	// EffectProject: re-project and re-render the current page
	// without fetching.
	EffectProject
)

// Controller is the list-state controller for one view. Not safe for
// concurrent use; the UI event loop is its single writer.
type Controller[T catalog.Entity] struct {
	endpoint string
	pageSize int

	page       int
	searchText string
	categoryID string
	status     project.StatusFilter
	sortKey    project.SortKey
	viewMode   ViewMode

	total int
	items []T

	// fetchSeq numbers issued fetches; only the response carrying the
	// latest seq may be applied, so a reply that arrives after state
	// has moved on is discarded instead of rendered.
	fetchSeq uint64

	// searchSeq numbers pending debounce timers; one pending timer
	// per field, the latest wins.
	searchSeq    uint64
	pendingInput string

	muts map[string]*Mutation
}

// New creates a controller with view-mount defaults.
func New[T catalog.Entity](endpoint string, pageSize int) *Controller[T] {
	if pageSize < 1 {
		pageSize = 20
	}
	return &Controller[T]{
		endpoint: endpoint,
		pageSize: pageSize,
		page:     1,
		muts:     make(map[string]*Mutation),
	}
}

// Accessors

func (c *Controller[T]) Page() int                          { return c.page }
func (c *Controller[T]) PageSize() int                      { return c.pageSize }
func (c *Controller[T]) Total() int                         { return c.total }
func (c *Controller[T]) SearchText() string                 { return c.searchText }
func (c *Controller[T]) CategoryID() string                 { return c.categoryID }
func (c *Controller[T]) StatusFilter() project.StatusFilter { return c.status }
func (c *Controller[T]) SortKey() project.SortKey           { return c.sortKey }
func (c *Controller[T]) ViewMode() ViewMode                 { return c.viewMode }

// Items returns the raw records of the last successful fetch, in
// server order. The projection never writes back into this slice.
func (c *Controller[T]) Items() []T { return c.items }

// TotalPages derives the page count from the server-reported total.
func (c *Controller[T]) TotalPages() int {
	if c.total <= 0 {
		return 1
	}
	return (c.total + c.pageSize - 1) / c.pageSize
}

// Transitions

// SetPage moves to page p. Out-of-range and same-page requests are
// no-ops.
func (c *Controller[T]) SetPage(p int) Effect {
	if p < 1 || p == c.page || p > c.TotalPages() {
		return EffectNone
	}
	c.page = p
	return EffectFetch
}

// NextPage and PrevPage move one page, clamped at the boundaries.
func (c *Controller[T]) NextPage() Effect { return c.SetPage(c.page + 1) }
func (c *Controller[T]) PrevPage() Effect { return c.SetPage(c.page - 1) }

// SetCategory changes the category filter and resets to page 1.
func (c *Controller[T]) SetCategory(id string) Effect {
	if id == c.categoryID {
		return EffectNone
	}
	c.categoryID = id
	c.page = 1
	return EffectFetch
}

// SetStatusFilter is a client-side refinement of the current page; it
// re-projects without fetching.
func (c *Controller[T]) SetStatusFilter(f project.StatusFilter) Effect {
	if f == c.status {
		return EffectNone
	}
	c.status = f
	return EffectProject
}

// CycleStatusFilter advances to the next status filter.
func (c *Controller[T]) CycleStatusFilter() Effect {
	return c.SetStatusFilter((c.status + 1) % 4)
}

// SetSortKey is a client-side refinement; it re-projects without
// fetching.
func (c *Controller[T]) SetSortKey(k project.SortKey) Effect {
	if k == c.sortKey {
		return EffectNone
	}
	c.sortKey = k
	return EffectProject
}

// CycleSortKey advances to the next sort key.
func (c *Controller[T]) CycleSortKey() Effect {
	return c.SetSortKey((c.sortKey + 1) % 4)
}

// ToggleView swaps table/grid. Same projection, different target.
func (c *Controller[T]) ToggleView() Effect {
	c.viewMode = c.viewMode.Toggle()
	return EffectProject
}

// Debounced search

// QueueSearch records free-text input and returns the debounce ticket
// for it. Each keystroke supersedes the previous ticket, so only the
// timer holding the latest ticket commits.
func (c *Controller[T]) QueueSearch(text string) uint64 {
	c.searchSeq++
	c.pendingInput = text
	return c.searchSeq
}

// CommitSearch applies the debounced input if ticket is still the
// latest. Committing a changed search resets to page 1.
func (c *Controller[T]) CommitSearch(ticket uint64) Effect {
	if ticket != c.searchSeq {
		return EffectNone
	}
	if c.pendingInput == c.searchText {
		return EffectNone
	}
	c.searchText = c.pendingInput
	c.page = 1
	return EffectFetch
}

// Fetch cycle

// BeginFetch builds the request for the current state and issues a new
// fetch sequence number. Any earlier in-flight fetch becomes stale.
func (c *Controller[T]) BeginFetch() (query.Request, uint64) {
	c.fetchSeq++
	req := query.Build(c.endpoint, query.Params{
		Page:       c.page,
		PerPage:    c.pageSize,
		Search:     c.searchText,
		CategoryID: c.categoryID,
	})
	return req, c.fetchSeq
}

// IsCurrent reports whether seq is the latest issued fetch. Failure
// handling needs this too: a stale failure is dropped silently rather
// than surfaced for state the view has already left.
func (c *Controller[T]) IsCurrent(seq uint64) bool {
	return seq == c.fetchSeq
}

// Apply installs a fetch result. Returns false when the result is
// stale, in which case state is untouched and the caller must not
// render it.
func (c *Controller[T]) Apply(seq uint64, items []T, total int) bool {
	if seq != c.fetchSeq {
		logging.Debug("stale response discarded", "seq", seq, "latest", c.fetchSeq)
		return false
	}
	c.items = items
	c.total = total
	return true
}

// Projection returns the display-ready ordered records: the status
// filter applied, then a stable sort by the current key. It never
// mutates the fetched records and is safe to re-run on view toggles.
func (c *Controller[T]) Projection() []T {
	return project.Apply(c.items, c.status, c.sortKey)
}
