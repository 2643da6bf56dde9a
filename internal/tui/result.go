package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/hackboard/pkg/client"
	"github.com/naveenspark/hackboard/pkg/domain"
)

type resultLoadedMsg struct {
	seqTag
	result *domain.EvaluationResult
	err    error
}

type resultModel struct {
	env      *env
	seq      int
	id       string
	result   *domain.EvaluationResult
	loading  bool
	notFound bool
	failed   bool
	width    int
	height   int
}

func newResultModel(e *env, seq int, id string) resultModel {
	return resultModel{env: e, seq: seq, id: id, loading: true}
}

func (m resultModel) here() route { return route{view: viewResult, id: m.id} }

func (m resultModel) Init() tea.Cmd {
	g := m.env.guard
	seq, id, returnTo := m.seq, m.id, m.here().path()
	return func() tea.Msg {
		if g == nil {
			return resultLoadedMsg{seqTag: seqTag{seq}, err: &client.AuthRequiredError{ReturnTo: returnTo}}
		}
		r, err := g.FetchResult(context.Background(), id, returnTo)
		return resultLoadedMsg{seqTag: seqTag{seq}, result: r, err: err}
	}
}

func (m resultModel) Update(msg tea.Msg) (resultModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case resultLoadedMsg:
		m.loading = false
		if msg.err != nil {
			if errors.Is(msg.err, client.ErrNotFound) {
				m.notFound = true
				return m, nil
			}
			m.failed = true
			return m, errorCmd(msg.err, "Failed to load result", m.here())
		}
		m.result = msg.result

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "backspace":
			return m, back()
		case "r":
			m.loading = true
			m.failed = false
			return m, m.Init()
		}
	}
	return m, nil
}

func (m resultModel) View() string {
	switch {
	case m.loading:
		return "\n " + dimStyle.Render("loading your evaluation...")
	case m.notFound:
		return "\n " + selectedStyle.Render("No result found") + "\n\n " +
			dimStyle.Render("There is no evaluation for this submission yet.") + "\n " +
			helpEntry("esc", "back to hackathon")
	case m.failed || m.result == nil:
		return "\n " + errorStyle.Render("Could not load the result.") + "  " + helpEntry("r", "retry")
	}

	r := *m.result
	width := m.width
	if width <= 0 {
		width = 80
	}
	var b strings.Builder
	title := m.id
	if h, ok := m.env.cache.get(m.id); ok {
		title = h.Title
	}
	fmt.Fprintf(&b, "\n %s %s\n\n", sectionHeaderStyle.Render("Evaluation for"), selectedStyle.Render(title))
	label := strings.ToUpper(string(r.Category))
	if label == "" {
		label = "PENDING"
	}
	fmt.Fprintf(&b, " %s\n", CategoryStyle(r.Category).Render(label))
	if r.OverallReason != "" {
		for _, line := range wrap(r.OverallReason, width-6) {
			b.WriteString("   " + normalStyle.Render(line) + "\n")
		}
	}

	sections := []struct {
		name  string
		items []string
	}{
		{"Strengths", r.Strengths},
		{"Areas for improvement", r.Improvement},
		{"Actionable steps", r.ActionableSteps},
		{"Summary", r.Summary},
	}
	for _, s := range sections {
		if len(s.items) == 0 {
			continue
		}
		b.WriteString("\n " + sectionHeaderStyle.Render(s.name) + "\n")
		for _, item := range s.items {
			lines := wrap(item, width-8)
			for i, line := range lines {
				prefix := "     "
				if i == 0 {
					prefix = "   • "
				}
				b.WriteString(prefix + normalStyle.Render(line) + "\n")
			}
		}
	}
	return b.String()
}

func (m resultModel) helpKeys() string {
	return helpBar("esc", "back", "r", "reload", "q", "quit")
}
