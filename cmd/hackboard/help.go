package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

func printHelp(w io.Writer) {
	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#60a5fa")).
		Bold(true).
		Render("H A C K B O A R D")

	tagline := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Italic(true).
		Render("Browse, join and submit to hackathons from your terminal.")

	cmdStyle := lipgloss.NewStyle().Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	fmt.Fprintf(w, "\n  %s\n\n  %s\n\n  Commands:\n", title, tagline)
	fmt.Fprintf(w, "    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-20s", "hackboard")), descStyle.Render("Open the interactive board"))
	for _, c := range commands {
		fmt.Fprintf(w, "    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-20s", "hackboard "+c.name)), descStyle.Render(c.summary))
	}
	fmt.Fprintf(w, "    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-20s", "hackboard version")), descStyle.Render("Show version"))
	fmt.Fprintf(w, "    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-20s", "hackboard help")), descStyle.Render("You are here"))

	env := lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Render(
		"Environment: HACKBOARD_API_URL, HACKBOARD_TOKEN, HACKBOARD_HOME, HACKBOARD_DEBUG, HACKBOARD_RESULTS_POLICY")
	fmt.Fprintf(w, "\n  %s\n\n", env)
}
