// Package view renders the projected records. The entity-to-row
// mapping is pure so the content of both render targets can be tested
// without a terminal; only the final string assembly touches styling.
package view

import (
	"fmt"
	"strings"

	"github.com/peaksport/vitrina/internal/catalog"
	"github.com/peaksport/vitrina/internal/money"
	"github.com/peaksport/vitrina/internal/project"
)

// PlaceholderImage is shown when an entity has no image.
const PlaceholderImage = "/static/img/placeholder.png"

// Row is the display-ready form of one entity. Both render targets
// consume the same rows, which is what keeps them content-equivalent.
type Row struct {
	ID       string
	Name     string
	Price    string
	Badge    string
	Stock    int
	ImageURL string
	Detail   string   // secondary line: slug, quantity, comment...
	Actions  []string // affordance labels: view / edit / delete
}

// Pagination is the metadata the pager renders.
type Pagination struct {
	Page    int
	PerPage int
	Total   int
}

// TotalPages derives the page count from the server-reported total.
func (p Pagination) TotalPages() int {
	if p.Total <= 0 {
		return 1
	}
	return (p.Total + p.PerPage - 1) / p.PerPage
}

// StatusBadge labels an entity's activity and stock state.
func StatusBadge(active bool, stock int) string {
	switch {
	case !active:
		return "inactive"
	case stock <= project.LowStockThreshold:
		return "low stock"
	default:
		return "active"
	}
}

// ProductRow maps a product to its display row.
func ProductRow(p catalog.Product) Row {
	img := p.CoverImageURL()
	if img == "" {
		img = PlaceholderImage
	}
	return Row{
		ID:       p.EntityID(),
		Name:     p.Name,
		Price:    money.Format(p.PriceMinorUnits, p.DisplayCurrency()),
		Badge:    StatusBadge(p.Active, p.Stock),
		Stock:    p.Stock,
		ImageURL: img,
		Detail:   p.Slug,
		Actions:  []string{"view", "edit", "delete"},
	}
}

// CartRow maps a cart line to its display row.
func CartRow(l catalog.CartLine) Row {
	img := catalog.ResolveImageURL(l.ImageReference)
	if img == "" {
		img = PlaceholderImage
	}
	return Row{
		ID:       l.EntityID(),
		Name:     l.Name,
		Price:    money.Format(l.SubtotalMinor(), l.Currency),
		Badge:    StatusBadge(l.Active, l.Stock),
		Stock:    l.Stock,
		ImageURL: img,
		Detail:   fmt.Sprintf("x%d @ %s", l.Quantity, money.Format(l.UnitPriceMinor, l.Currency)),
		Actions:  []string{"more", "less", "remove"},
	}
}

// ReviewRow maps a review to its display row. Reviews have no stock
// dimension, so the badge reflects visibility alone.
func ReviewRow(r catalog.Review) Row {
	badge := "inactive"
	if r.Active {
		badge = "active"
	}
	return Row{
		ID:       r.EntityID(),
		Name:     r.Author,
		Price:    strings.Repeat("★", r.Rating) + strings.Repeat("☆", 5-r.Rating),
		Badge:    badge,
		ImageURL: PlaceholderImage,
		Detail:   r.Comment,
	}
}

// ProductRows maps a projected product slice.
func ProductRows(items []catalog.Product) []Row {
	rows := make([]Row, len(items))
	for i, p := range items {
		rows[i] = ProductRow(p)
	}
	return rows
}

// CartRows maps a projected cart slice.
func CartRows(items []catalog.CartLine) []Row {
	rows := make([]Row, len(items))
	for i, l := range items {
		rows[i] = CartRow(l)
	}
	return rows
}

// ReviewRows maps a projected review slice.
func ReviewRows(items []catalog.Review) []Row {
	rows := make([]Row, len(items))
	for i, r := range items {
		rows[i] = ReviewRow(r)
	}
	return rows
}
