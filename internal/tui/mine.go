package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/hackboard/pkg/domain"
)

type mineModel struct {
	env        *env
	seq        int
	hackathons []domain.Hackathon
	cursor     int
	loading    bool
	err        string
	join       joinForm
	width      int
	height     int
}

func newMineModel(e *env, seq int) mineModel {
	return mineModel{env: e, seq: seq, loading: true}
}

func (m mineModel) Init() tea.Cmd {
	return m.load()
}

func (m mineModel) load() tea.Cmd {
	c := m.env.client
	seq := m.seq
	return func() tea.Msg {
		hs, err := c.MyHackathons(context.Background())
		return hackathonsLoadedMsg{seqTag: seqTag{seq}, hackathons: hs, err: err}
	}
}

func (m mineModel) here() route { return route{view: viewMine} }

func (m mineModel) Update(msg tea.Msg) (mineModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case hackathonsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = "could not load your hackathons"
			return m, errorCmd(msg.err, "Failed to load your hackathons", m.here())
		}
		m.err = ""
		m.hackathons = msg.hackathons
		m.env.cache.put(msg.hackathons...)
		if m.cursor >= len(m.hackathons) {
			m.cursor = 0
		}

	case joinDoneMsg:
		var joined bool
		var cmd tea.Cmd
		m.join, joined, cmd = m.join.handleDone(msg, m.here())
		if joined {
			m.loading = true
			return m, tea.Batch(cmd, m.load())
		}
		return m, cmd

	case tea.KeyMsg:
		if m.join.active() {
			var cmd tea.Cmd
			m.join, cmd = m.join.handleKey(m.env, m.seq, msg)
			return m, cmd
		}
		switch msg.String() {
		case "i", "J":
			m.join = joinForm{stage: joinEnteringCode}
		case "j", "down":
			if m.cursor < len(m.hackathons)-1 {
				m.cursor++
			}
		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
			}
		case "enter":
			if m.cursor < len(m.hackathons) {
				return m, navigate(route{view: viewDetail, id: m.hackathons[m.cursor].ID})
			}
		case "r":
			m.loading = true
			return m, m.load()
		}
	}
	return m, nil
}

func (m mineModel) View() string {
	var b strings.Builder
	b.WriteString(" " + sectionHeaderStyle.Render("My Hackathons") + "\n")
	if m.join.active() {
		b.WriteString(m.join.View() + "\n")
	} else {
		b.WriteString("  " + dimStyle.Render("press i to join with an invite code") + "\n")
	}
	b.WriteString("\n")

	switch {
	case m.loading && len(m.hackathons) == 0:
		b.WriteString(" " + dimStyle.Render("loading..."))
	case m.err != "" && len(m.hackathons) == 0:
		b.WriteString(" " + errorStyle.Render(m.err) + "  " + helpEntry("r", "retry"))
	case len(m.hackathons) == 0:
		b.WriteString(" " + dimStyle.Render("you have not joined any hackathons yet"))
	default:
		b.WriteString(renderHackathonRows(m.env, m.hackathons, m.cursor, m.width, m.height-4))
	}
	return b.String()
}

func (m mineModel) helpKeys() string {
	if m.join.active() {
		return helpBar("enter", "join", "esc", "cancel")
	}
	return helpBar("1-2", "tabs", "j/k", "nav", "enter", "open", "i", "join by code", "r", "refresh", "L", "sign out", "q", "quit")
}
