package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/peaksport/vitrina/internal/catalog"
	"github.com/peaksport/vitrina/internal/config"
	"github.com/peaksport/vitrina/internal/controller"
	"github.com/peaksport/vitrina/internal/fetch"
	"github.com/peaksport/vitrina/internal/logging"
	"github.com/peaksport/vitrina/internal/snapshot"
	"github.com/peaksport/vitrina/internal/view"
)

// searchDebounce coalesces rapid keystrokes into a single fetch.
const searchDebounce = 300 * time.Millisecond

const genericErrMsg = "Something went wrong. Try again."

// ProductsModel is the product list view. In admin mode it exposes
// edit and delete affordances; in read-only mode those are hidden and
// a missing listing endpoint degrades to the offline snapshot.
type ProductsModel struct {
	ctl    *controller.Controller[catalog.Product]
	client *fetch.Client
	cfg    *config.Config
	snap   *snapshot.Store

	readOnly bool

	search    textinput.Model
	searching bool
	spin      spinner.Model

	cursor   int
	loading  bool
	degraded bool
	notices  []notice

	width  int
	height int
	ready  bool
}

// NewProducts creates the product list view. snap may be nil when no
// snapshot store is available.
func NewProducts(cfg *config.Config, client *fetch.Client, snap *snapshot.Store, readOnly bool) ProductsModel {
	ti := textinput.New()
	ti.Placeholder = "search products"
	ti.CharLimit = 80

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return ProductsModel{
		ctl:      controller.New[catalog.Product](cfg.Endpoints.ProductList, cfg.UI.PerPage),
		client:   client,
		cfg:      cfg,
		snap:     snap,
		readOnly: readOnly,
		search:   ti,
		spin:     sp,
		// The first fetch is issued from Init; the view starts busy.
		loading: true,
	}
}

// Init issues the initial fetch.
func (m ProductsModel) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.fetchCmd())
}

// fetchCmd begins a fetch for the current state. The returned command
// closes over the issued sequence number; the response is applied only
// if it is still the latest.
func (m *ProductsModel) fetchCmd() tea.Cmd {
	req, seq := m.ctl.BeginFetch()
	client := m.client
	snap := m.snap
	readOnly := m.readOnly
	return func() tea.Msg {
		page, err := fetch.List[catalog.Product](context.Background(), client, req)
		if err != nil {
			if kind, ok := fetch.KindOf(err); ok && kind == fetch.KindNotConfigured && readOnly && snap != nil {
				items, total, snapErr := snap.LoadProducts()
				if snapErr == nil {
					logging.Info("listing endpoint unbound, serving snapshot", "items", len(items))
					return productsLoadedMsg{Seq: seq, Items: items, Total: total, FromSnapshot: true}
				}
			}
			return productsLoadedMsg{Seq: seq, Err: err}
		}
		if snap != nil {
			if err := snap.SaveProducts(page.Items, page.Total); err != nil {
				logging.Warn("snapshot save failed", "err", err)
			}
		}
		return productsLoadedMsg{Seq: seq, Items: page.Items, Total: page.Total}
	}
}

func (m *ProductsModel) deleteCmd(id string) tea.Cmd {
	client := m.client
	urlTemplate := m.cfg.Endpoints.ProductDelete
	return func() tea.Msg {
		err := client.Delete(context.Background(), urlTemplate, id)
		return mutationDoneMsg{EntityID: id, Err: err}
	}
}

// Update handles messages and returns the updated model.
func (m ProductsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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

	case productsLoadedMsg:
		if !m.ctl.IsCurrent(msg.Seq) {
			// Stale reply for parameters the view has moved past.
			return m, nil
		}
		m.loading = false
		if msg.Err != nil {
			// Prior rendered state stays intact; only surface the
			// failure.
			var cmd tea.Cmd
			m.notices, cmd = pushNotice(m.notices, fetch.UserMessage(msg.Err, "Could not load products."), true)
			return m, cmd
		}
		m.ctl.Apply(msg.Seq, msg.Items, msg.Total)
		m.degraded = msg.FromSnapshot
		m.clampCursor()
		return m, nil

	case searchDebounceMsg:
		if m.ctl.CommitSearch(msg.Ticket) == controller.EffectFetch {
			m.loading = true
			return m, tea.Batch(m.spin.Tick, m.fetchCmd())
		}
		return m, nil

	case mutationDoneMsg:
		return m.handleMutationDone(msg)

	case noticeExpireMsg:
		m.notices = dropNotice(m.notices, msg.ID)
		return m, nil
	}

	return m, nil
}

func (m ProductsModel) handleMutationDone(msg mutationDoneMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.ctl.RejectMutation(msg.EntityID, fetch.UserMessage(msg.Err, genericErrMsg))
		m.ctl.AcknowledgeRejection(msg.EntityID)
		var cmd tea.Cmd
		m.notices, cmd = pushNotice(m.notices, fetch.UserMessage(msg.Err, genericErrMsg), true)
		return m, cmd
	}

	m.ctl.ResolveMutation(msg.EntityID)
	var cmd tea.Cmd
	m.notices, cmd = pushNotice(m.notices, "Product deleted.", false)
	m.loading = true
	return m, tea.Batch(cmd, m.spin.Tick, m.fetchCmd())
}

func (m ProductsModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searching {
		switch msg.String() {
		case "esc", "enter":
			m.searching = false
			m.search.Blur()
			return m, nil
		default:
			var cmd tea.Cmd
			m.search, cmd = m.search.Update(msg)
			ticket := m.ctl.QueueSearch(m.search.Value())
			debounce := tea.Tick(searchDebounce, func(time.Time) tea.Msg {
				return searchDebounceMsg{Ticket: ticket}
			})
			return m, tea.Batch(cmd, debounce)
		}
	}

	// Delete confirmation intercepts y/n for the selected entity.
	if id, ok := m.confirmingID(); ok {
		switch msg.String() {
		case "y":
			if m.ctl.ConfirmMutation(id) {
				return m, tea.Batch(m.spin.Tick, m.deleteCmd(id))
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

	case "/":
		m.searching = true
		m.search.Focus()
		return m, textinput.Blink

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

	case "g", "home":
		m.cursor = 0
		return m, nil

	case "G", "end":
		if n := len(m.ctl.Projection()); n > 0 {
			m.cursor = n - 1
		}
		return m, nil

	case "h", "left":
		return m.pagination(m.ctl.PrevPage())

	case "l", "right":
		return m.pagination(m.ctl.NextPage())

	case "v":
		// Same projected state, other render target. No fetch.
		m.ctl.ToggleView()
		return m, nil

	case "f":
		m.ctl.CycleStatusFilter()
		m.clampCursor()
		return m, nil

	case "s":
		m.ctl.CycleSortKey()
		return m, nil

	case "r":
		m.loading = true
		return m, tea.Batch(m.spin.Tick, m.fetchCmd())

	case "d":
		if m.readOnly {
			return m, nil
		}
		if row, ok := m.selected(); ok {
			m.ctl.RequestDelete(row.EntityID(), "delete")
		}
		return m, nil

	case "e":
		if m.readOnly {
			return m, nil
		}
		if row, ok := m.selected(); ok {
			url := fetch.ExpandTemplate(m.cfg.Endpoints.ProductEdit, row.EntityID())
			var cmd tea.Cmd
			m.notices, cmd = pushNotice(m.notices, "Edit in browser: "+url, false)
			return m, cmd
		}
		return m, nil
	}

	return m, nil
}

func (m ProductsModel) pagination(eff controller.Effect) (tea.Model, tea.Cmd) {
	if eff != controller.EffectFetch {
		return m, nil
	}
	m.loading = true
	m.cursor = 0
	return m, tea.Batch(m.spin.Tick, m.fetchCmd())
}

func (m *ProductsModel) selected() (catalog.Product, bool) {
	projected := m.ctl.Projection()
	if m.cursor < 0 || m.cursor >= len(projected) {
		return catalog.Product{}, false
	}
	return projected[m.cursor], true
}

func (m *ProductsModel) confirmingID() (string, bool) {
	row, ok := m.selected()
	if !ok {
		return "", false
	}
	mut, ok := m.ctl.MutationOf(row.EntityID())
	if !ok || mut.State != controller.MutConfirming {
		return "", false
	}
	return row.EntityID(), true
}

func (m *ProductsModel) clampCursor() {
	if n := len(m.ctl.Projection()); m.cursor >= n {
		if n == 0 {
			m.cursor = 0
		} else {
			m.cursor = n - 1
		}
	}
}

// View renders the product list.
func (m ProductsModel) View() string {
	if !m.ready {
		return "Loading..."
	}

	title := "PeakSport — products"
	if m.readOnly {
		title = "PeakSport — catalog"
	}
	s := TitleStyle.Render(title) + "\n"

	if m.degraded {
		s += DegradedStyle.Render("offline snapshot — listing endpoint not configured") + "\n"
	}

	if m.searching || m.search.Value() != "" {
		s += SearchBar.Render("/ "+m.search.View()) + "\n"
	}

	rows := view.ProductRows(m.ctl.Projection())
	m.decorateMutations(rows)
	if m.ctl.ViewMode() == controller.ViewGrid {
		s += view.RenderGrid(rows, m.cursor, m.width)
	} else {
		s += view.RenderTable(rows, m.cursor, m.width)
	}
	s += "\n" + view.RenderPager(view.Pagination{Page: m.ctl.Page(), PerPage: m.ctl.PageSize(), Total: m.ctl.Total()}) + "\n"

	if id, ok := m.confirmingID(); ok {
		s += ConfirmStyle.Render(fmt.Sprintf("Delete product %s? y/n", id)) + "\n"
	}

	s += renderNotices(m.notices)
	s += m.statusBar()
	return s
}

// decorateMutations swaps the action label of rows with an in-flight
// mutation so the affordance reads as busy. Rejected mutations keep
// the original label - the rollback the user expects.
func (m *ProductsModel) decorateMutations(rows []view.Row) {
	for i := range rows {
		mut, ok := m.ctl.MutationOf(rows[i].ID)
		if !ok {
			continue
		}
		switch mut.State {
		case controller.MutPending:
			rows[i].Actions = []string{m.spin.View() + "deleting"}
		case controller.MutConfirming:
			rows[i].Actions = []string{"confirm? y/n"}
		}
	}
}

func (m ProductsModel) statusBar() string {
	busy := ""
	if m.loading || m.ctl.MutationPending() {
		busy = m.spin.View() + " "
	}
	info := fmt.Sprintf("%sfilter:%s sort:%s view:%s",
		busy, m.ctl.StatusFilter(), m.ctl.SortKey(), viewName(m.ctl.ViewMode()))
	keys := StatusBarKey.Render("/") + StatusBarText.Render(" search  ") +
		StatusBarKey.Render("f") + StatusBarText.Render(" filter  ") +
		StatusBarKey.Render("s") + StatusBarText.Render(" sort  ") +
		StatusBarKey.Render("v") + StatusBarText.Render(" layout  ") +
		StatusBarKey.Render("h/l") + StatusBarText.Render(" page  ") +
		StatusBarKey.Render("q") + StatusBarText.Render(" quit")
	return StatusBar.Render(info + "  " + keys)
}

func viewName(v controller.ViewMode) string {
	if v == controller.ViewGrid {
		return "grid"
	}
	return "table"
}
