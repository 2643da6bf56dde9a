package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/hackboard/pkg/domain"
	"github.com/naveenspark/hackboard/pkg/status"
)

// -- messages --

type hackathonsLoadedMsg struct {
	seqTag
	hackathons []domain.Hackathon
	err        error
}

// -- model --

type discoverModel struct {
	env        *env
	seq        int
	hackathons []domain.Hackathon
	search     string
	editing    bool // true when typing in search
	cursor     int
	loading    bool
	err        string
	width      int
	height     int
}

func newDiscoverModel(e *env, seq int) discoverModel {
	return discoverModel{env: e, seq: seq, loading: true}
}

func (m discoverModel) Init() tea.Cmd {
	return m.load()
}

func (m discoverModel) load() tea.Cmd {
	c := m.env.client
	seq := m.seq
	return func() tea.Msg {
		hs, err := c.ListHackathons(context.Background())
		return hackathonsLoadedMsg{seqTag: seqTag{seq}, hackathons: hs, err: err}
	}
}

// visible returns the hackathons matching the current search, best first.
func (m discoverModel) visible() []domain.Hackathon {
	return domain.SearchHackathons(m.hackathons, m.search)
}

func (m discoverModel) Update(msg tea.Msg) (discoverModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case hackathonsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = "could not load hackathons"
			return m, errorCmd(msg.err, "Failed to load hackathons", route{view: viewDiscover})
		}
		m.err = ""
		m.hackathons = msg.hackathons
		m.env.cache.put(msg.hackathons...)
		if m.cursor >= len(m.visible()) {
			m.cursor = 0
		}

	case tea.KeyMsg:
		if m.editing {
			return m.updateSearch(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m discoverModel) updateSearch(msg tea.KeyMsg) (discoverModel, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.editing = false
	case "esc":
		m.editing = false
		m.search = ""
	default:
		m.search = editRune(m.search, msg.String())
	}
	m.cursor = 0
	return m, nil
}

func (m discoverModel) updateList(msg tea.KeyMsg) (discoverModel, tea.Cmd) {
	list := m.visible()
	switch msg.String() {
	case "/":
		m.editing = true
	case "esc":
		m.search = ""
		m.cursor = 0
	case "j", "down":
		if m.cursor < len(list)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "enter":
		if m.cursor < len(list) {
			return m, navigate(route{view: viewDetail, id: list[m.cursor].ID})
		}
	case "r":
		m.loading = true
		return m, m.load()
	}
	return m, nil
}

func (m discoverModel) View() string {
	var b strings.Builder

	switch {
	case m.editing:
		b.WriteString(" " + searchStyle.Render("/ "+m.search+"█"))
	case m.search != "":
		b.WriteString(" " + searchStyle.Render("/ "+m.search))
	default:
		b.WriteString(" " + dimStyle.Render("/ search..."))
	}
	b.WriteString("\n\n")

	if m.loading && len(m.hackathons) == 0 {
		b.WriteString(" " + dimStyle.Render("loading hackathons..."))
		return b.String()
	}
	if m.err != "" && len(m.hackathons) == 0 {
		b.WriteString(" " + errorStyle.Render(m.err) + "  " + helpEntry("r", "retry"))
		return b.String()
	}

	list := m.visible()
	if len(list) == 0 {
		if m.search != "" {
			b.WriteString(" " + dimStyle.Render(fmt.Sprintf("no hackathons match %q", m.search)))
		} else {
			b.WriteString(" " + dimStyle.Render("no hackathons yet"))
		}
		return b.String()
	}

	b.WriteString(renderHackathonRows(m.env, list, m.cursor, m.width, m.height-2))
	return b.String()
}

func (m discoverModel) helpKeys() string {
	if m.editing {
		return helpBar("enter", "done", "esc", "clear")
	}
	keys := []string{"1-2", "tabs", "j/k", "nav", "enter", "open", "/", "search", "r", "refresh"}
	if m.env.authenticated() {
		keys = append(keys, "L", "sign out")
	} else {
		keys = append(keys, "s", "sign in")
	}
	return helpBar(append(keys, "q", "quit")...)
}

// renderHackathonRows draws one line per hackathon with its lifecycle badge
// and participation status, keeping the cursor row in view.
func renderHackathonRows(e *env, list []domain.Hackathon, cursor, width, height int) string {
	if width <= 0 {
		width = 80
	}
	visible := height
	if visible < 1 {
		visible = len(list)
	}
	start := 0
	if cursor >= visible {
		start = cursor - visible + 1
	}
	end := min(start+visible, len(list))

	now := e.now()
	titleWidth := max(width-48, 16)
	var b strings.Builder
	for i := start; i < end; i++ {
		h := list[i]
		phase := status.Lifecycle(now, h)
		marker := "  "
		title := normalStyle.Render(padRight(truncStr(oneLine(h.Title), titleWidth), titleWidth))
		if i == cursor {
			marker = accentStyle.Render("> ")
			title = selectedStyle.Render(padRight(truncStr(oneLine(h.Title), titleWidth), titleWidth))
		}
		line := fmt.Sprintf("%s%s  %s  %s  %s",
			marker,
			title,
			PhaseStyle(phase).Render(padRight(phase.String(), 9)),
			metaStyle.Render(padRight(when(h, phase, now), 16)),
			StatusBadge(e.evaluate(h)),
		)
		if i == cursor {
			line = selectedRowBg.Render(line)
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

// when describes the next relevant date for a card.
func when(h domain.Hackathon, phase status.Phase, now time.Time) string {
	switch phase {
	case status.Upcoming:
		return "starts " + relDate(h.StartDate.Time, now)
	case status.Live:
		return "ends " + relDate(h.EndDate.Time, now)
	default:
		return "ended " + relDate(h.EndDate.Time, now)
	}
}
