package view

import "fmt"

// Gap marks an elided run of page numbers in a pager window.
const Gap = -1

// pageWindow is how many pages are shown on each side of the current
// page before eliding.
const pageWindow = 2

// Summary renders the visible range, e.g. "21 to 40 of 45". A zero
// total reports a zero range start.
func Summary(p Pagination) string {
	if p.Total == 0 {
		return "0 to 0 of 0"
	}
	start := (p.Page-1)*p.PerPage + 1
	end := p.Page * p.PerPage
	if end > p.Total {
		end = p.Total
	}
	return fmt.Sprintf("%d to %d of %d", start, end, p.Total)
}

// Window returns the page numbers the pager shows: always page 1, the
// pages adjacent to the current one, and the last page when more pages
// exist beyond the window. Elided runs appear as Gap entries.
func Window(page, totalPages int) []int {
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	lo := page - pageWindow
	if lo < 1 {
		lo = 1
	}
	hi := page + pageWindow
	if hi > totalPages {
		hi = totalPages
	}

	var out []int
	if lo > 1 {
		out = append(out, 1)
		if lo > 2 {
			out = append(out, Gap)
		}
	}
	for p := lo; p <= hi; p++ {
		out = append(out, p)
	}
	if hi < totalPages {
		if hi < totalPages-1 {
			out = append(out, Gap)
		}
		out = append(out, totalPages)
	}
	return out
}

// HasPrev and HasNext report whether the boundary controls are
// enabled.
func (p Pagination) HasPrev() bool { return p.Page > 1 }
func (p Pagination) HasNext() bool { return p.Page < p.TotalPages() }
