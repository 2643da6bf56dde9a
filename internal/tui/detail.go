package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/hackboard/internal/browser"
	"github.com/naveenspark/hackboard/internal/participation"
	"github.com/naveenspark/hackboard/pkg/client"
	"github.com/naveenspark/hackboard/pkg/domain"
	"github.com/naveenspark/hackboard/pkg/status"
)

type hackathonLoadedMsg struct {
	seqTag
	hackathon *domain.Hackathon
	err       error
}

type detailModel struct {
	env      *env
	seq      int
	id       string
	h        *domain.Hackathon
	loading  bool
	notFound bool
	join     joinForm
	width    int
	height   int
}

// newDetailModel shows the cached copy straight away while the fresh one loads.
func newDetailModel(e *env, seq int, id string) detailModel {
	m := detailModel{env: e, seq: seq, id: id, loading: true}
	if h, ok := e.cache.get(id); ok {
		m.h = &h
	}
	return m
}

func (m detailModel) Init() tea.Cmd {
	return m.load()
}

func (m detailModel) load() tea.Cmd {
	c := m.env.client
	seq, id := m.seq, m.id
	return func() tea.Msg {
		h, err := c.GetHackathon(context.Background(), id)
		return hackathonLoadedMsg{seqTag: seqTag{seq}, hackathon: h, err: err}
	}
}

func (m detailModel) here() route { return route{view: viewDetail, id: m.id} }

func (m detailModel) Update(msg tea.Msg) (detailModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case hackathonLoadedMsg:
		m.loading = false
		if msg.err != nil {
			if errors.Is(msg.err, client.ErrNotFound) {
				m.notFound = true
				return m, nil
			}
			return m, errorCmd(msg.err, "Failed to load hackathon", m.here())
		}
		fresh := *msg.hackathon
		if cached, ok := m.env.cache.get(m.id); ok {
			fresh, _ = participation.Reconcile(cached, fresh)
		}
		m.env.cache.put(fresh)
		m.h = &fresh

	case joinDoneMsg:
		var joined bool
		var cmd tea.Cmd
		m.join, joined, cmd = m.join.handleDone(msg, m.here())
		if joined && m.h != nil {
			participation.MarkJoined(m.h)
			m.env.cache.update(m.id, participation.MarkJoined)
		}
		return m, cmd

	case tea.KeyMsg:
		if m.join.active() {
			var cmd tea.Cmd
			m.join, cmd = m.join.handleKey(m.env, m.seq, msg)
			return m, cmd
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m detailModel) handleKey(msg tea.KeyMsg) (detailModel, tea.Cmd) {
	switch msg.String() {
	case "esc", "backspace":
		return m, back()
	case "r":
		m.loading = true
		return m, m.load()
	}
	if m.h == nil {
		return m, nil
	}
	h := *m.h

	switch msg.String() {
	case "enter":
		return m.act(h)
	case "v":
		if !m.env.canViewResults(h) {
			return m, notifyErr("Results are not available for you yet")
		}
		return m, navigate(route{view: viewResult, id: m.id})
	case "c":
		if h.InviteCode == "" {
			return m, notifyErr("This hackathon has no invite code")
		}
		code := h.InviteCode
		return m, func() tea.Msg {
			return copyResultMsg{err: clipboard.WriteAll(code)}
		}
	case "a":
		if h.FileAttachmentURL == "" {
			return m, notifyErr("No attachment for this hackathon")
		}
		if err := browser.Open(h.FileAttachmentURL); err != nil {
			return m, notifyErr("Could not open a browser: " + h.FileAttachmentURL)
		}
		return m, notify("Opening attachment")
	case "o":
		if m.env.webURL == "" {
			return m, nil
		}
		url := strings.TrimRight(m.env.webURL, "/") + "/hackathon/" + h.ID
		browser.Open(url) //nolint:errcheck // best-effort browser open
		return m, nil
	}
	return m, nil
}

// act performs whatever the status button currently offers. Disabled
// statuses do nothing.
func (m detailModel) act(h domain.Hackathon) (detailModel, tea.Cmd) {
	st := m.env.evaluate(h)
	switch st.Kind {
	case status.SignInRequired:
		here := m.here()
		return m, func() tea.Msg { return authRequiredMsg{returnTo: here} }
	case status.Join:
		if h.InviteCode == "" {
			m.join = joinForm{stage: joinEnteringCode}
			return m, nil
		}
		m.join = joinForm{stage: joinSending, code: h.InviteCode}
		return m, m.join.attempt(m.env, m.seq)
	case status.Submit:
		return m, navigate(route{view: viewSubmit, id: m.id})
	}
	return m, nil
}

func (m detailModel) View() string {
	if m.notFound {
		return "\n " + selectedStyle.Render("Hackathon not found") + "\n\n " +
			dimStyle.Render("It may have been removed. Press esc to go back.")
	}
	if m.h == nil {
		return "\n " + dimStyle.Render("loading hackathon...")
	}
	h := *m.h
	now := m.env.now()
	width := m.width
	if width <= 0 {
		width = 80
	}
	textWidth := width - 6

	var b strings.Builder
	phase := status.Lifecycle(now, h)
	fmt.Fprintf(&b, "\n %s  %s\n", selectedStyle.Render(h.Title), PhaseStyle(phase).Render(phase.String()))
	fmt.Fprintf(&b, " %s  %s\n", metaStyle.Render(dateRange(h)), dimStyle.Render("("+when(h, phase, now)+")"))

	st := m.env.evaluate(h)
	button := " " + StatusBadge(st)
	if st.Actionable() {
		button += " " + helpEntry("enter", strings.ToLower(st.Label()))
	}
	if m.env.canViewResults(h) {
		button += "  " + accentStyle.Bold(true).Render("[★ View Results]") + " " + helpEntry("v", "")
	} else if phase == status.Completed && h.Submitted() && !h.IsResultPublished {
		button += "  " + metaStyle.Render("results not yet published")
	}
	b.WriteString(button + "\n")
	if m.join.active() {
		b.WriteString("\n" + m.join.View() + "\n")
	}
	b.WriteString("\n")

	if h.InviteCode != "" {
		fmt.Fprintf(&b, " %s %s  %s\n", dimStyle.Render("invite code"), normalStyle.Render(h.InviteCode), helpEntry("c", "copy"))
	}
	if h.GradeEligible != "" {
		fmt.Fprintf(&b, " %s %s\n", dimStyle.Render("grades     "), normalStyle.Render(h.GradeEligible))
	}
	if h.FileAttachmentURL != "" {
		fmt.Fprintf(&b, " %s %s\n", dimStyle.Render("attachment "), helpEntry("a", "open"))
	}

	if h.Description != "" {
		b.WriteString("\n " + sectionHeaderStyle.Render("About") + "\n")
		for _, line := range wrap(h.Description, textWidth) {
			b.WriteString("   " + normalStyle.Render(line) + "\n")
		}
	}
	if h.ProblemStatement != "" {
		b.WriteString("\n " + sectionHeaderStyle.Render("Problem statement") + "\n")
		for _, line := range wrap(h.ProblemStatement, textWidth) {
			b.WriteString("   " + normalStyle.Render(line) + "\n")
		}
	}
	if len(h.Sponsors) > 0 {
		names := make([]string, 0, len(h.Sponsors))
		for _, s := range h.Sponsors {
			names = append(names, s.Name)
		}
		b.WriteString("\n " + sectionHeaderStyle.Render("Sponsors") + "\n   " + dimStyle.Render(strings.Join(names, " · ")) + "\n")
	}
	return b.String()
}

func (m detailModel) helpKeys() string {
	if m.join.active() {
		return helpBar("enter", "join", "esc", "cancel")
	}
	return helpBar("enter", "action", "v", "results", "c", "copy code", "a", "attachment", "o", "web", "r", "refresh", "esc", "back", "q", "quit")
}
