package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles shared by both render targets.
var (
	colorPrimary   = lipgloss.Color("62")  // Purple
	colorSecondary = lipgloss.Color("241") // Gray
	colorHighlight = lipgloss.Color("212") // Pink
	colorSuccess   = lipgloss.Color("78")  // Green
	colorDanger    = lipgloss.Color("196") // Red

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("255")).
			Background(colorPrimary).
			Padding(0, 1)

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("255")).
			Background(colorPrimary)

	mutedStyle = lipgloss.NewStyle().Foreground(colorSecondary)

	badgeActive   = lipgloss.NewStyle().Foreground(colorSuccess)
	badgeInactive = lipgloss.NewStyle().Foreground(colorSecondary)
	badgeLowStock = lipgloss.NewStyle().Foreground(colorDanger).Bold(true)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSecondary).
			Padding(0, 1).
			Width(28)

	cardSelectedStyle = cardStyle.
				BorderForeground(colorHighlight)

	pagerCurrent = lipgloss.NewStyle().Bold(true).Foreground(colorHighlight)
	pagerPage    = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	pagerMuted   = lipgloss.NewStyle().Foreground(colorSecondary)
)

func badgeStyle(badge string) lipgloss.Style {
	switch badge {
	case "inactive":
		return badgeInactive
	case "low stock":
		return badgeLowStock
	default:
		return badgeActive
	}
}

// RenderTable renders the rows as aligned columns. The render depends
// only on its arguments; re-rendering the same projection yields the
// same output.
func RenderTable(rows []Row, cursor, width int) string {
	if len(rows) == 0 {
		return mutedStyle.Render("No items to display.")
	}

	nameW := 28
	priceW := 16
	badgeW := 10
	if width > 0 && width < 80 {
		nameW = 18
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(pad("ID", 6) + pad("NAME", nameW) + pad("PRICE", priceW) + pad("STATUS", badgeW) + "DETAIL"))
	b.WriteString("\n")

	for i, r := range rows {
		line := pad(r.ID, 6) + pad(r.Name, nameW) + pad(r.Price, priceW) + pad(r.Badge, badgeW) + r.Detail
		if i == cursor {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + pad(r.ID, 6) + pad(r.Name, nameW) + pad(r.Price, priceW) +
				badgeStyle(r.Badge).Render(pad(r.Badge, badgeW)) + mutedStyle.Render(r.Detail))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// RenderGrid renders the rows as bordered cards, three per line. Same
// fields as the table: both targets surface identifier, name, price,
// status badge, image and detail, so the two layouts stay
// content-equivalent.
func RenderGrid(rows []Row, cursor, width int) string {
	if len(rows) == 0 {
		return mutedStyle.Render("No items to display.")
	}

	perLine := 3
	if width > 0 {
		if w := width / 30; w >= 1 && w < perLine {
			perLine = w
		}
	}

	var lines []string
	for start := 0; start < len(rows); start += perLine {
		end := start + perLine
		if end > len(rows) {
			end = len(rows)
		}
		cards := make([]string, 0, end-start)
		for i := start; i < end; i++ {
			cards = append(cards, renderCard(rows[i], i == cursor))
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return strings.Join(lines, "\n")
}

func renderCard(r Row, selected bool) string {
	style := cardStyle
	if selected {
		style = cardSelectedStyle
	}
	body := fmt.Sprintf("#%s %s\n%s\n%s\n%s\n%s",
		r.ID,
		r.Name,
		r.Price,
		badgeStyle(r.Badge).Render(r.Badge),
		mutedStyle.Render(r.Detail),
		mutedStyle.Render(r.ImageURL),
	)
	return style.Render(body)
}

// RenderPager renders the windowed page numbers plus the Prev/Next
// controls and the visible-range summary.
func RenderPager(p Pagination) string {
	var parts []string

	if p.HasPrev() {
		parts = append(parts, pagerPage.Render("« prev"))
	} else {
		parts = append(parts, pagerMuted.Render("« prev"))
	}

	for _, n := range Window(p.Page, p.TotalPages()) {
		switch {
		case n == Gap:
			parts = append(parts, pagerMuted.Render("…"))
		case n == p.Page:
			parts = append(parts, pagerCurrent.Render(fmt.Sprintf("[%d]", n)))
		default:
			parts = append(parts, pagerPage.Render(fmt.Sprintf("%d", n)))
		}
	}

	if p.HasNext() {
		parts = append(parts, pagerPage.Render("next »"))
	} else {
		parts = append(parts, pagerMuted.Render("next »"))
	}

	return strings.Join(parts, " ") + "  " + mutedStyle.Render(Summary(p))
}

func pad(s string, w int) string {
	runes := []rune(s)
	if len(runes) >= w {
		if w <= 1 {
			return string(runes[:w])
		}
		return string(runes[:w-2]) + "… "
	}
	return s + strings.Repeat(" ", w-len(runes))
}
