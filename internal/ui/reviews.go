package ui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/peaksport/vitrina/internal/catalog"
	"github.com/peaksport/vitrina/internal/config"
	"github.com/peaksport/vitrina/internal/controller"
	"github.com/peaksport/vitrina/internal/fetch"
	"github.com/peaksport/vitrina/internal/query"
	"github.com/peaksport/vitrina/internal/view"
)

// composeID tracks the single in-flight review submission in the
// controller's mutation table.
const composeID = "new-review"

// recommendedCount caps the recommended strip under the review list.
const recommendedCount = 4

// ReviewsModel is the review view for one product: the review list
// plus a compose mode for submitting a new review.
type ReviewsModel struct {
	ctl       *controller.Controller[catalog.Review]
	client    *fetch.Client
	cfg       *config.Config
	productID string

	spin    spinner.Model
	comment textinput.Model

	composing bool
	rating    int

	recommended []catalog.Product

	cursor  int
	loading bool
	notices []notice

	width  int
	height int
	ready  bool
}

// NewReviews creates the review view for the given product id.
func NewReviews(cfg *config.Config, client *fetch.Client, productID string) ReviewsModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	ti := textinput.New()
	ti.Placeholder = "your review (at least 10 characters)"
	ti.CharLimit = 500

	endpoint := fetch.ExpandTemplate(cfg.Endpoints.ReviewList, productID)
	return ReviewsModel{
		ctl:       controller.New[catalog.Review](endpoint, cfg.UI.PerPage),
		client:    client,
		cfg:       cfg,
		productID: productID,
		spin:      sp,
		comment:   ti,
		rating:    5,
		loading:   true,
	}
}

// Init issues the review fetch and the recommended strip fetch.
func (m ReviewsModel) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.fetchCmd(), m.recommendedCmd())
}

func (m *ReviewsModel) fetchCmd() tea.Cmd {
	req, seq := m.ctl.BeginFetch()
	client := m.client
	return func() tea.Msg {
		page, err := fetch.List[catalog.Review](context.Background(), client, req)
		if err != nil {
			return reviewsLoadedMsg{Seq: seq, Err: err}
		}
		return reviewsLoadedMsg{Seq: seq, Items: page.Items, Total: page.Total}
	}
}

// recommendedCmd fetches the strip the product page shows: active
// products from the same category as the reviewed product, capped at
// recommendedCount, never including the product itself. Failures
// degrade silently; the strip is decoration, not content.
func (m *ReviewsModel) recommendedCmd() tea.Cmd {
	client := m.client
	detailURL := m.cfg.Endpoints.ProductDetail
	listURL := m.cfg.Endpoints.ProductList
	productID := m.productID
	return func() tea.Msg {
		ctx := context.Background()
		product, err := fetch.Detail[catalog.Product](ctx, client, detailURL, productID)
		if err != nil {
			return recommendedLoadedMsg{Err: err}
		}

		params := query.Params{Page: 1, PerPage: recommendedCount + 1}
		if product.CategoryID != 0 {
			params.CategoryID = strconv.FormatInt(product.CategoryID, 10)
		}
		page, err := fetch.List[catalog.Product](ctx, client, query.Build(listURL, params))
		if err != nil {
			return recommendedLoadedMsg{Err: err}
		}

		related := make([]catalog.Product, 0, recommendedCount)
		for _, p := range page.Items {
			if !p.Active || p.EntityID() == productID {
				continue
			}
			related = append(related, p)
			if len(related) == recommendedCount {
				break
			}
		}
		return recommendedLoadedMsg{Items: related}
	}
}

func (m *ReviewsModel) submitCmd(rating int, comment string) tea.Cmd {
	client := m.client
	urlTemplate := m.cfg.Endpoints.ReviewCreate
	productID := m.productID
	return func() tea.Msg {
		err := client.SubmitReview(context.Background(), urlTemplate, productID, rating, comment)
		return mutationDoneMsg{EntityID: composeID, Err: err}
	}
}

// Update handles messages and returns the updated model.
func (m ReviewsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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

	case reviewsLoadedMsg:
		if !m.ctl.IsCurrent(msg.Seq) {
			return m, nil
		}
		m.loading = false
		if msg.Err != nil {
			var cmd tea.Cmd
			m.notices, cmd = pushNotice(m.notices, fetch.UserMessage(msg.Err, "Could not load reviews."), true)
			return m, cmd
		}
		m.ctl.Apply(msg.Seq, msg.Items, msg.Total)
		m.clampCursor()
		return m, nil

	case recommendedLoadedMsg:
		if msg.Err == nil {
			m.recommended = msg.Items
		}
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
		m.composing = false
		m.comment.SetValue("")
		m.comment.Blur()
		var cmd tea.Cmd
		m.notices, cmd = pushNotice(m.notices, "Review submitted.", false)
		m.loading = true
		return m, tea.Batch(cmd, m.spin.Tick, m.fetchCmd())

	case noticeExpireMsg:
		m.notices = dropNotice(m.notices, msg.ID)
		return m, nil
	}

	return m, nil
}

func (m ReviewsModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.composing {
		return m.handleComposeKey(msg)
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

	case "n":
		m.composing = true
		m.comment.Focus()
		return m, textinput.Blink
	}

	return m, nil
}

func (m ReviewsModel) handleComposeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.composing = false
		m.comment.Blur()
		return m, nil

	case "up":
		if m.rating < 5 {
			m.rating++
		}
		return m, nil

	case "down":
		if m.rating > 1 {
			m.rating--
		}
		return m, nil

	case "enter":
		if err := catalog.ValidateReview(m.rating, m.comment.Value()); err != nil {
			var cmd tea.Cmd
			m.notices, cmd = pushNotice(m.notices, err.Error(), true)
			return m, cmd
		}
		if m.ctl.BeginMutation(composeID, "submit") {
			return m, tea.Batch(m.spin.Tick, m.submitCmd(m.rating, m.comment.Value()))
		}
		return m, nil

	default:
		var cmd tea.Cmd
		m.comment, cmd = m.comment.Update(msg)
		return m, cmd
	}
}

func (m ReviewsModel) pagination(eff controller.Effect) (tea.Model, tea.Cmd) {
	if eff != controller.EffectFetch {
		return m, nil
	}
	m.loading = true
	m.cursor = 0
	return m, tea.Batch(m.spin.Tick, m.fetchCmd())
}

func (m *ReviewsModel) clampCursor() {
	if n := len(m.ctl.Projection()); m.cursor >= n {
		if n == 0 {
			m.cursor = 0
		} else {
			m.cursor = n - 1
		}
	}
}

// View renders the review list, the compose bar when open, and the
// recommended strip.
func (m ReviewsModel) View() string {
	if !m.ready {
		return "Loading..."
	}

	s := TitleStyle.Render("PeakSport — reviews for product "+m.productID) + "\n"

	rows := view.ReviewRows(m.ctl.Projection())
	if m.ctl.ViewMode() == controller.ViewGrid {
		s += view.RenderGrid(rows, m.cursor, m.width)
	} else {
		s += view.RenderTable(rows, m.cursor, m.width)
	}
	s += "\n" + view.RenderPager(view.Pagination{Page: m.ctl.Page(), PerPage: m.ctl.PageSize(), Total: m.ctl.Total()}) + "\n"

	if m.composing {
		stars := strings.Repeat("★", m.rating) + strings.Repeat("☆", 5-m.rating)
		s += SearchBar.Render(fmt.Sprintf("rating %s (up/down)  %s", stars, m.comment.View())) + "\n"
	}

	if len(m.recommended) > 0 {
		names := make([]string, len(m.recommended))
		for i, p := range m.recommended {
			names[i] = p.Name
		}
		s += StatusBarText.Render("You may also like: "+strings.Join(names, " · ")) + "\n"
	}

	s += renderNotices(m.notices)

	busy := ""
	if m.loading || m.ctl.MutationPending() {
		busy = m.spin.View() + " "
	}
	s += StatusBar.Render(busy +
		StatusBarKey.Render("n") + StatusBarText.Render(" new review  ") +
		StatusBarKey.Render("s") + StatusBarText.Render(" sort  ") +
		StatusBarKey.Render("v") + StatusBarText.Render(" layout  ") +
		StatusBarKey.Render("q") + StatusBarText.Render(" quit"))
	return s
}
