package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

// noticeTTL is how long a transient notification stays visible.
const noticeTTL = 4 * time.Second

// notice is one transient toast line.
type notice struct {
	ID    string
	Text  string
	IsErr bool
}

// pushNotice appends a notice and returns the command that expires it.
func pushNotice(notices []notice, text string, isErr bool) ([]notice, tea.Cmd) {
	n := notice{ID: uuid.NewString(), Text: text, IsErr: isErr}
	cmd := tea.Tick(noticeTTL, func(time.Time) tea.Msg {
		return noticeExpireMsg{ID: n.ID}
	})
	return append(notices, n), cmd
}

// dropNotice removes the notice with the given id.
func dropNotice(notices []notice, id string) []notice {
	out := notices[:0]
	for _, n := range notices {
		if n.ID != id {
			out = append(out, n)
		}
	}
	return out
}

// renderNotices renders all current notices, one per line.
func renderNotices(notices []notice) string {
	if len(notices) == 0 {
		return ""
	}
	s := ""
	for _, n := range notices {
		if n.IsErr {
			s += ErrorStyle.Render(n.Text) + "\n"
		} else {
			s += NoticeStyle.Render(n.Text) + "\n"
		}
	}
	return s
}
