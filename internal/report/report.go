// Package report assembles an inventory report from projected catalog
// data and renders it for the terminal. It is a side-effect
// collaborator: it consumes the projection, it never feeds back into
// controller state.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/peaksport/vitrina/internal/catalog"
	"github.com/peaksport/vitrina/internal/money"
	"github.com/peaksport/vitrina/internal/project"
)

// Report is the structured payload handed to the document renderer.
type Report struct {
	GeneratedAt time.Time
	Total       int // server-reported catalog size
	Listed      int // records in this report
	Active      int
	Inactive    int
	LowStock    []catalog.Product
	ValueMinor  int64 // stock times price, summed
	Currency    string
}

// Build summarizes a product listing. Total is the server-reported
// count; the listing may be a subset of it.
func Build(items []catalog.Product, total int) Report {
	r := Report{
		GeneratedAt: time.Now(),
		Total:       total,
		Listed:      len(items),
		Currency:    catalog.DefaultCurrency,
	}
	for _, p := range items {
		if p.Active {
			r.Active++
		} else {
			r.Inactive++
		}
		if p.Stock <= project.LowStockThreshold {
			r.LowStock = append(r.LowStock, p)
		}
		r.ValueMinor += int64(p.Stock) * p.PriceMinorUnits
		if p.Currency != "" {
			r.Currency = p.Currency
		}
	}
	return r
}

// Markdown renders the report as a markdown document.
func (r Report) Markdown() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Inventory report\n\n")
	fmt.Fprintf(&b, "Generated %s\n\n", r.GeneratedAt.Format("2006-01-02 15:04"))
	fmt.Fprintf(&b, "| | |\n|---|---|\n")
	fmt.Fprintf(&b, "| Catalog size | %d |\n", r.Total)
	fmt.Fprintf(&b, "| Listed | %d |\n", r.Listed)
	fmt.Fprintf(&b, "| Active | %d |\n", r.Active)
	fmt.Fprintf(&b, "| Inactive | %d |\n", r.Inactive)
	fmt.Fprintf(&b, "| Stock value | %s |\n", money.Format(r.ValueMinor, r.Currency))

	if len(r.LowStock) > 0 {
		fmt.Fprintf(&b, "\n## Low stock (≤ %d units)\n\n", project.LowStockThreshold)
		for _, p := range r.LowStock {
			fmt.Fprintf(&b, "- %s — %d left (%s)\n", p.Name, p.Stock, money.Format(p.PriceMinorUnits, p.DisplayCurrency()))
		}
	}
	return b.String()
}

// Render renders the markdown report for a dark terminal.
func Render(r Report) (string, error) {
	return glamour.Render(r.Markdown(), "dark")
}
