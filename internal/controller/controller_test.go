package controller

import (
	"testing"
	"time"

	"github.com/peaksport/vitrina/internal/catalog"
	"github.com/peaksport/vitrina/internal/project"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestController() *Controller[catalog.Product] {
	return New[catalog.Product]("http://api/products", 20)
}

func fixture(n int) []catalog.Product {
	items := make([]catalog.Product, n)
	for i := range items {
		items[i] = catalog.Product{
			ID: int64(i + 1), Name: string(rune('a' + i)),
			Active: i%2 == 0, Stock: 10 * i, CreatedAt: time.Now(),
		}
	}
	return items
}

func TestDefaults(t *testing.T) {
	c := newTestController()
	assert.Equal(t, 1, c.Page())
	assert.Equal(t, 20, c.PageSize())
	assert.Equal(t, ViewTable, c.ViewMode())
	assert.Equal(t, project.FilterAll, c.StatusFilter())
	assert.Equal(t, project.SortName, c.SortKey())
}

func TestTransitionEffects(t *testing.T) {
	c := newTestController()
	req, seq := c.BeginFetch()
	require.True(t, c.Apply(seq, fixture(20), 45))
	assert.Equal(t, "1", req.Values.Get("page"))

	// Page membership changes require a fetch.
	assert.Equal(t, EffectFetch, c.SetPage(2))
	assert.Equal(t, EffectNone, c.SetPage(2), "same page is a no-op")
	assert.Equal(t, EffectNone, c.SetPage(0), "out of range is a no-op")
	assert.Equal(t, EffectNone, c.SetPage(99), "past last page is a no-op")
	assert.Equal(t, EffectFetch, c.SetCategory("7"))
	assert.Equal(t, 1, c.Page(), "category change resets to page 1")

	// Status filter, sort and layout are local refinements of the
	// current page: re-project, no fetch.
	assert.Equal(t, EffectProject, c.SetStatusFilter(project.FilterActive))
	assert.Equal(t, EffectNone, c.SetStatusFilter(project.FilterActive))
	assert.Equal(t, EffectProject, c.SetSortKey(project.SortPrice))
	assert.Equal(t, EffectProject, c.ToggleView())
	assert.Equal(t, ViewGrid, c.ViewMode())
	assert.Equal(t, EffectProject, c.ToggleView())
	assert.Equal(t, ViewTable, c.ViewMode())
}

func TestStaleResponseDiscarded(t *testing.T) {
	c := newTestController()

	// Request A for page 1.
	_, seqA := c.BeginFetch()

	// User clicks to page 2 before A resolves; request B is issued.
	c.total = 45
	require.Equal(t, EffectFetch, c.SetPage(2))
	_, seqB := c.BeginFetch()

	pageB := fixture(20)
	require.True(t, c.Apply(seqB, pageB, 45))

	// A resolves late: it must be discarded, not rendered.
	pageA := fixture(3)
	assert.False(t, c.Apply(seqA, pageA, 45))
	assert.False(t, c.IsCurrent(seqA))
	assert.Len(t, c.Items(), 20, "state must still hold B's result")
}

func TestApplySetsServerTotal(t *testing.T) {
	c := newTestController()
	_, seq := c.BeginFetch()
	require.True(t, c.Apply(seq, fixture(20), 45))

	// Total is the server's count, never derived from the page length.
	assert.Equal(t, 45, c.Total())
	assert.Equal(t, 3, c.TotalPages())
}

func TestDebouncedSearch(t *testing.T) {
	c := newTestController()

	// Rapid keystrokes: each supersedes the previous ticket.
	t1 := c.QueueSearch("t")
	t2 := c.QueueSearch("tr")
	t3 := c.QueueSearch("trail")

	assert.Equal(t, EffectNone, c.CommitSearch(t1), "superseded timer must not commit")
	assert.Equal(t, EffectNone, c.CommitSearch(t2), "superseded timer must not commit")
	assert.Equal(t, EffectFetch, c.CommitSearch(t3))
	assert.Equal(t, "trail", c.SearchText())
	assert.Equal(t, 1, c.Page())

	// Committing the same text again is a no-op.
	t4 := c.QueueSearch("trail")
	assert.Equal(t, EffectNone, c.CommitSearch(t4))
}

func TestSearchResetsPage(t *testing.T) {
	c := newTestController()
	_, seq := c.BeginFetch()
	require.True(t, c.Apply(seq, fixture(20), 100))
	require.Equal(t, EffectFetch, c.SetPage(3))

	ticket := c.QueueSearch("shoes")
	require.Equal(t, EffectFetch, c.CommitSearch(ticket))
	assert.Equal(t, 1, c.Page())

	req, _ := c.BeginFetch()
	assert.Equal(t, "shoes", req.Values.Get("q"))
	assert.Equal(t, "1", req.Values.Get("page"))
}

func TestProjectionDoesNotMutateItems(t *testing.T) {
	c := newTestController()
	_, seq := c.BeginFetch()
	items := []catalog.Product{
		{ID: 2, Name: "b", Active: true},
		{ID: 1, Name: "a", Active: false},
	}
	require.True(t, c.Apply(seq, items, 2))

	c.SetSortKey(project.SortName)
	projected := c.Projection()

	require.Len(t, projected, 2)
	assert.Equal(t, int64(1), projected[0].ID)
	// Raw items keep server order; projection is a new slice.
	assert.Equal(t, int64(2), c.Items()[0].ID)
}
