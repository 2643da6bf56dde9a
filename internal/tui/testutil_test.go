package tui

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/hackboard/internal/session"
	"github.com/naveenspark/hackboard/pkg/domain"
)

var errTest = errors.New("boom")

var testNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

// newTestSession returns an initialised session; a non-empty token makes it
// authenticated.
func newTestSession(t *testing.T, token string) *session.Session {
	t.Helper()
	s := session.New(session.NewFileStore(filepath.Join(t.TempDir(), "session.json")), session.WithTokenOverride(token))
	if err := s.Init(); err != nil {
		t.Fatalf("session init: %v", err)
	}
	return s
}

func newTestEnv(t *testing.T, token string) *env {
	t.Helper()
	return newEnv(Deps{Session: newTestSession(t, token), Now: func() time.Time { return testNow }})
}

func newTestApp(t *testing.T, token string) App {
	t.Helper()
	a := NewApp(Deps{Session: newTestSession(t, token), Now: func() time.Time { return testNow }})
	model, _ := a.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return model.(App)
}

func makeTestHackathon(id, title string, start, end time.Time) domain.Hackathon {
	return domain.Hackathon{
		ID:         id,
		Title:      title,
		StartDate:  domain.NewDate(start),
		EndDate:    domain.NewDate(end),
		InviteCode: "CODE-" + id,
	}
}

// liveHackathon is running at testNow.
func liveHackathon(id, title string) domain.Hackathon {
	return makeTestHackathon(id, title, testNow.AddDate(0, 0, -5), testNow.AddDate(0, 0, 5))
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
	keyCtrlX = tea.KeyMsg{Type: tea.KeyCtrlX}
)

// runCmd executes cmd and returns its message, unwrapping batches into a slice.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, runCmd(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func findNotice(msgs []tea.Msg) (noticeMsg, bool) {
	for _, m := range msgs {
		if n, ok := m.(noticeMsg); ok {
			return n, true
		}
	}
	return noticeMsg{}, false
}
