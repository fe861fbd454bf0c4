package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/peaksport/vitrina/internal/catalog"
	"github.com/peaksport/vitrina/internal/config"
	"github.com/peaksport/vitrina/internal/controller"
	"github.com/peaksport/vitrina/internal/fetch"
	"github.com/peaksport/vitrina/internal/money"
	"github.com/peaksport/vitrina/internal/view"
)

// CartModel is the shopping cart view: quantity changes and removals,
// with the running item count and subtotal the cart page shows.
type CartModel struct {
	ctl    *controller.Controller[catalog.CartLine]
	client *fetch.Client
	cfg    *config.Config

	spin    spinner.Model
	cursor  int
	loading bool
	notices []notice

	width  int
	height int
	ready  bool
}

// NewCart creates the cart view.
func NewCart(cfg *config.Config, client *fetch.Client) CartModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return CartModel{
		ctl:     controller.New[catalog.CartLine](cfg.Endpoints.Cart, cfg.UI.PerPage),
		client:  client,
		cfg:     cfg,
		spin:    sp,
		loading: true,
	}
}

// Init issues the initial fetch.
func (m CartModel) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.fetchCmd())
}

func (m *CartModel) fetchCmd() tea.Cmd {
	req, seq := m.ctl.BeginFetch()
	client := m.client
	return func() tea.Msg {
		page, err := fetch.List[catalog.CartLine](context.Background(), client, req)
		if err != nil {
			return cartLoadedMsg{Seq: seq, Err: err}
		}
		return cartLoadedMsg{Seq: seq, Items: page.Items, Total: page.Total}
	}
}

// quantityCmd sends the new quantity for a line. Zero quantity goes
// through the removal endpoint - same semantics as delete.
func (m *CartModel) quantityCmd(id string, quantity int) tea.Cmd {
	client := m.client
	updateURL := m.cfg.Endpoints.CartUpdate
	removeURL := m.cfg.Endpoints.CartRemove
	return func() tea.Msg {
		var err error
		if quantity <= 0 {
			err = client.Delete(context.Background(), removeURL, id)
		} else {
			err = client.UpdateQuantity(context.Background(), updateURL, id, quantity)
		}
		return mutationDoneMsg{EntityID: id, Err: err}
	}
}

func (m *CartModel) removeCmd(id string) tea.Cmd {
	client := m.client
	removeURL := m.cfg.Endpoints.CartRemove
	return func() tea.Msg {
		return mutationDoneMsg{EntityID: id, Err: client.Delete(context.Background(), removeURL, id)}
	}
}

// Update handles messages and returns the updated model.
func (m CartModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case spinner.TickMsg:
		if !m.loading && !m.ctl.MutationPending() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case cartLoadedMsg:
		if !m.ctl.IsCurrent(msg.Seq) {
			return m, nil
		}
		m.loading = false
		if msg.Err != nil {
			var cmd tea.Cmd
			m.notices, cmd = pushNotice(m.notices, fetch.UserMessage(msg.Err, "Could not load the cart."), true)
			return m, cmd
		}
		m.ctl.Apply(msg.Seq, msg.Items, msg.Total)
		m.clampCursor()
		return m, nil

	case mutationDoneMsg:
		if msg.Err != nil {
			m.ctl.RejectMutation(msg.EntityID, fetch.UserMessage(msg.Err, genericErrMsg))
			m.ctl.AcknowledgeRejection(msg.EntityID)
			var cmd tea.Cmd
			m.notices, cmd = pushNotice(m.notices, fetch.UserMessage(msg.Err, genericErrMsg), true)
			return m, cmd
		}
		m.ctl.ResolveMutation(msg.EntityID)
		var cmd tea.Cmd
		m.notices, cmd = pushNotice(m.notices, "Cart updated.", false)
		m.loading = true
		return m, tea.Batch(cmd, m.spin.Tick, m.fetchCmd())

	case noticeExpireMsg:
		m.notices = dropNotice(m.notices, msg.ID)
		return m, nil
	}

	return m, nil
}

func (m CartModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if id, ok := m.confirmingID(); ok {
		switch msg.String() {
		case "y":
			if m.ctl.ConfirmMutation(id) {
				return m, tea.Batch(m.spin.Tick, m.removeCmd(id))
			}
			return m, nil
		case "n", "esc":
			m.ctl.CancelMutation(id)
			return m, nil
		}
		return m, nil
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "j", "down":
		if m.cursor < len(m.ctl.Projection())-1 {
			m.cursor++
		}
		return m, nil

	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "h", "left":
		return m.pagination(m.ctl.PrevPage())

	case "l", "right":
		return m.pagination(m.ctl.NextPage())

	case "v":
		m.ctl.ToggleView()
		return m, nil

	case "s":
		m.ctl.CycleSortKey()
		return m, nil

	case "r":
		m.loading = true
		return m, tea.Batch(m.spin.Tick, m.fetchCmd())

	case "+", "=":
		if line, ok := m.selected(); ok {
			if m.ctl.BeginMutation(line.EntityID(), "more") {
				return m, tea.Batch(m.spin.Tick, m.quantityCmd(line.EntityID(), line.Quantity+1))
			}
		}
		return m, nil

	case "-":
		if line, ok := m.selected(); ok {
			if m.ctl.BeginMutation(line.EntityID(), "less") {
				// Dropping to zero removes the line.
				return m, tea.Batch(m.spin.Tick, m.quantityCmd(line.EntityID(), line.Quantity-1))
			}
		}
		return m, nil

	case "x", "d":
		if line, ok := m.selected(); ok {
			m.ctl.RequestDelete(line.EntityID(), "remove")
		}
		return m, nil
	}

	return m, nil
}

func (m CartModel) pagination(eff controller.Effect) (tea.Model, tea.Cmd) {
	if eff != controller.EffectFetch {
		return m, nil
	}
	m.loading = true
	m.cursor = 0
	return m, tea.Batch(m.spin.Tick, m.fetchCmd())
}

func (m *CartModel) selected() (catalog.CartLine, bool) {
	projected := m.ctl.Projection()
	if m.cursor < 0 || m.cursor >= len(projected) {
		return catalog.CartLine{}, false
	}
	return projected[m.cursor], true
}

func (m *CartModel) confirmingID() (string, bool) {
	line, ok := m.selected()
	if !ok {
		return "", false
	}
	mut, ok := m.ctl.MutationOf(line.EntityID())
	if !ok || mut.State != controller.MutConfirming {
		return "", false
	}
	return line.EntityID(), true
}

func (m *CartModel) clampCursor() {
	if n := len(m.ctl.Projection()); m.cursor >= n {
		if n == 0 {
			m.cursor = 0
		} else {
			m.cursor = n - 1
		}
	}
}

// View renders the cart.
func (m CartModel) View() string {
	if !m.ready {
		return "Loading..."
	}

	s := TitleStyle.Render("PeakSport — cart") + "\n"

	rows := view.CartRows(m.ctl.Projection())
	if m.ctl.ViewMode() == controller.ViewGrid {
		s += view.RenderGrid(rows, m.cursor, m.width)
	} else {
		s += view.RenderTable(rows, m.cursor, m.width)
	}

	items, subtotal := catalog.CartTotals(m.ctl.Items())
	currency := catalog.DefaultCurrency
	if lines := m.ctl.Items(); len(lines) > 0 && lines[0].Currency != "" {
		currency = lines[0].Currency
	}
	s += fmt.Sprintf("\n%d items — subtotal %s\n", items, money.Format(subtotal, currency))

	s += view.RenderPager(view.Pagination{Page: m.ctl.Page(), PerPage: m.ctl.PageSize(), Total: m.ctl.Total()}) + "\n"

	if id, ok := m.confirmingID(); ok {
		s += ConfirmStyle.Render(fmt.Sprintf("Remove line %s from the cart? y/n", id)) + "\n"
	}

	s += renderNotices(m.notices)

	busy := ""
	if m.loading || m.ctl.MutationPending() {
		busy = m.spin.View() + " "
	}
	s += StatusBar.Render(busy +
		StatusBarKey.Render("+/-") + StatusBarText.Render(" quantity  ") +
		StatusBarKey.Render("x") + StatusBarText.Render(" remove  ") +
		StatusBarKey.Render("v") + StatusBarText.Render(" layout  ") +
		StatusBarKey.Render("q") + StatusBarText.Render(" quit"))
	return s
}
