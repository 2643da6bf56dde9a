package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/naveenspark/hackboard/pkg/domain"
	"github.com/naveenspark/hackboard/pkg/status"
)

var (
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e4e4ec")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c0c4d0"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868"))

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	helpLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868"))

	searchStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#60a5fa")).
			Bold(true)

	accentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#60a5fa"))

	sectionHeaderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#8890a0")).
				Bold(true)

	inputPromptStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#60a5fa")).
				Bold(true)

	inputPlaceholderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#343c4a"))

	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#34d474"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f87171"))

	overlayStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#60a5fa")).
			Padding(0, 2)

	selectedRowBg = lipgloss.NewStyle().Background(lipgloss.Color("#1e1e2a"))
)

// statusColors follow the web client's button colours.
var statusColors = map[status.Kind]lipgloss.Color{
	status.SignInRequired: lipgloss.Color("#60a5fa"),
	status.Join:           lipgloss.Color("#34d474"),
	status.Joined:         lipgloss.Color("#8890a0"),
	status.Submit:         lipgloss.Color("#f59e0b"),
	status.Submitted:      lipgloss.Color("#a78bfa"),
	status.Closed:         lipgloss.Color("#b45555"),
}

var iconGlyphs = map[string]string{
	status.IconLogin:  "→",
	status.IconPlus:   "+",
	status.IconCheck:  "✓",
	status.IconUpload: "↑",
	status.IconLock:   "■",
}

// StatusStyle returns the colour for a status kind. Disabled kinds are not bold.
func StatusStyle(k status.Kind) lipgloss.Style {
	s := lipgloss.NewStyle().Foreground(statusColors[k])
	if (status.Status{Kind: k}).Actionable() {
		s = s.Bold(true)
	}
	return s
}

// StatusBadge renders "[+ Join]" style buttons.
func StatusBadge(s status.Status) string {
	return StatusStyle(s.Kind).Render("[" + iconGlyphs[s.Icon()] + " " + s.Label() + "]")
}

// PhaseStyle colours the lifecycle badge.
func PhaseStyle(p status.Phase) lipgloss.Style {
	switch p {
	case status.Upcoming:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("#60a5fa"))
	case status.Live:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("#34d474")).Bold(true)
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("#8890a0"))
	}
}

// CategoryStyle colours an evaluation verdict.
func CategoryStyle(c domain.EvaluationCategory) lipgloss.Style {
	switch c {
	case domain.CategoryShortlisted:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("#34d474")).Bold(true)
	case domain.CategoryRevisit:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("#f59e0b")).Bold(true)
	case domain.CategoryRejected:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("#f87171")).Bold(true)
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("#8890a0")).Bold(true)
	}
}

// renderLogo renders "HACKBOARD" with a static blue-to-violet gradient.
func renderLogo() string {
	const text = "HACKBOARD"
	n := len(text)
	var out strings.Builder
	for i := 0; i < n; i++ {
		x := float64(i) / float64(n-1)
		// #60a5fa -> #a78bfa
		r := clampByte(96 + x*(167-96))
		g := clampByte(165 + x*(139-165))
		b := 250
		color := fmt.Sprintf("#%02X%02X%02X", r, g, b)
		out.WriteString(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(color)).Render(string(text[i])))
		if i < n-1 {
			out.WriteString(" ")
		}
	}
	return out.String()
}

func clampByte(v float64) int {
	if v > 255 {
		return 255
	}
	if v < 0 {
		return 0
	}
	return int(v)
}

// helpEntry renders a single "key label" pair for help bars.
func helpEntry(key, label string) string {
	return helpKeyStyle.Render(key) + " " + helpLabelStyle.Render(label)
}

func helpBar(pairs ...string) string {
	parts := make([]string, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		parts = append(parts, helpEntry(pairs[i], pairs[i+1]))
	}
	return " " + strings.Join(parts, "  ")
}
