package view

import (
	"strings"
	"testing"
	"time"

	"github.com/peaksport/vitrina/internal/catalog"
)

func sampleRows() []Row {
	products := []catalog.Product{
		{ID: 7, Name: "Trail Runner", Slug: "trail-runner", PriceMinorUnits: 1250000,
			Currency: "COP", Active: true, Stock: 12, CreatedAt: time.Now(),
			Images: []catalog.Image{{URL: "uploads/trail.png", IsCover: true}}},
		{ID: 9, Name: "City Walker", Slug: "city-walker", PriceMinorUnits: 890000,
			Currency: "COP", Active: false, Stock: 2},
	}
	return ProductRows(products)
}

// Both render targets must surface the same entity fields from the
// same projected rows.
func TestTableAndGridAreContentEquivalent(t *testing.T) {
	rows := sampleRows()
	table := RenderTable(rows, 0, 120)
	grid := RenderGrid(rows, 0, 120)

	for _, r := range rows {
		for _, field := range []string{r.ID, r.Name, r.Price, r.Badge} {
			if !strings.Contains(table, field) {
				t.Errorf("table missing %q", field)
			}
			if !strings.Contains(grid, field) {
				t.Errorf("grid missing %q", field)
			}
		}
	}
}

func TestRenderIsIdempotent(t *testing.T) {
	rows := sampleRows()
	if RenderTable(rows, 1, 100) != RenderTable(rows, 1, 100) {
		t.Error("table render differs for identical input")
	}
	if RenderGrid(rows, 1, 100) != RenderGrid(rows, 1, 100) {
		t.Error("grid render differs for identical input")
	}
}

func TestRenderEmpty(t *testing.T) {
	if out := RenderTable(nil, 0, 80); !strings.Contains(out, "No items") {
		t.Errorf("empty table render = %q", out)
	}
	if out := RenderGrid(nil, 0, 80); !strings.Contains(out, "No items") {
		t.Errorf("empty grid render = %q", out)
	}
}

func TestProductRowFields(t *testing.T) {
	p := catalog.Product{
		ID: 3, Name: "Socks", PriceMinorUnits: 50000, Active: true, Stock: 3,
	}
	row := ProductRow(p)

	if row.ID != "3" {
		t.Errorf("ID = %q", row.ID)
	}
	if row.Badge != "low stock" {
		t.Errorf("Badge = %q, want low stock at 3 units", row.Badge)
	}
	if row.ImageURL != PlaceholderImage {
		t.Errorf("expected placeholder for missing image, got %q", row.ImageURL)
	}
	if !strings.Contains(row.Price, "COP") {
		t.Errorf("price should carry the default currency, got %q", row.Price)
	}
}

func TestCartRowDetail(t *testing.T) {
	row := CartRow(catalog.CartLine{ID: 1, Name: "Cap", Quantity: 3, UnitPriceMinor: 20000, Active: true, Stock: 9})
	if !strings.Contains(row.Detail, "x3") {
		t.Errorf("cart detail should show quantity, got %q", row.Detail)
	}
}

func TestReviewRowStars(t *testing.T) {
	row := ReviewRow(catalog.Review{ID: 1, Author: "ana", Rating: 4, Comment: "solid build quality", Active: true})
	if row.Price != "★★★★☆" {
		t.Errorf("stars = %q", row.Price)
	}
}

// The rating must never leak into the stock badge: a five-star active
// review is "active", not "low stock".
func TestReviewRowBadgeIgnoresRating(t *testing.T) {
	row := ReviewRow(catalog.Review{ID: 1, Author: "ana", Rating: 5, Comment: "solid build quality", Active: true})
	if row.Badge != "active" {
		t.Errorf("active review badge = %q, want %q", row.Badge, "active")
	}

	row = ReviewRow(catalog.Review{ID: 2, Author: "luis", Rating: 1, Comment: "fell apart in a week", Active: false})
	if row.Badge != "inactive" {
		t.Errorf("hidden review badge = %q, want %q", row.Badge, "inactive")
	}
}

func TestPagerMarksCurrentAndBounds(t *testing.T) {
	out := RenderPager(Pagination{Page: 2, PerPage: 20, Total: 45})
	if !strings.Contains(out, "[2]") {
		t.Errorf("pager should mark the current page, got %q", out)
	}
	if !strings.Contains(out, "21 to 40 of 45") {
		t.Errorf("pager should include the range summary, got %q", out)
	}
	if !strings.Contains(out, "prev") || !strings.Contains(out, "next") {
		t.Errorf("pager should include boundary controls, got %q", out)
	}
}
