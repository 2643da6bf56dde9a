package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/naveenspark/hackboard/pkg/domain"
	"github.com/naveenspark/hackboard/pkg/status"
)

func (c *cli) evaluate(h domain.Hackathon) status.Status {
	return status.Evaluate(c.now(), h, c.sess.IsAuthenticated(), status.WithPolicy(c.cfg.ResultsPolicy))
}

func (c *cli) printHackathons(hs []domain.Hackathon) error {
	now := c.now()
	tw := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tPHASE\tWHEN\tSTATUS")
	for _, h := range hs {
		phase := status.Lifecycle(now, h)
		var when string
		switch phase {
		case status.Upcoming:
			when = "starts " + humanize.RelTime(h.StartDate.Time, now, "ago", "from now")
		case status.Live:
			when = "ends " + humanize.RelTime(h.EndDate.Time, now, "ago", "from now")
		default:
			when = "ended " + humanize.RelTime(h.EndDate.Time, now, "ago", "from now")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", h.ID, strings.Join(strings.Fields(h.Title), " "), phase, when, c.evaluate(h).Label())
	}
	return tw.Flush()
}

func (c *cli) printHackathon(h domain.Hackathon) {
	const layout = "Jan 2 2006"
	st := c.evaluate(h)
	fmt.Fprintf(c.out, "%s\n", h.Title)
	fmt.Fprintf(c.out, "  dates:       %s → %s (%s)\n", h.StartDate.Format(layout), h.EndDate.Format(layout), status.Lifecycle(c.now(), h))
	fmt.Fprintf(c.out, "  status:      %s\n", st.Label())
	if h.InviteCode != "" {
		fmt.Fprintf(c.out, "  invite code: %s\n", h.InviteCode)
	}
	if h.GradeEligible != "" {
		fmt.Fprintf(c.out, "  grades:      %s\n", h.GradeEligible)
	}
	if h.FileAttachmentURL != "" {
		fmt.Fprintf(c.out, "  attachment:  %s\n", h.FileAttachmentURL)
	}
	if status.CanViewResults(h, c.sess.IsAuthenticated()) {
		fmt.Fprintf(c.out, "  results:     available, run 'hackboard result %s'\n", h.ID)
	}
	if h.Description != "" {
		fmt.Fprintf(c.out, "\n%s\n", h.Description)
	}
	if h.ProblemStatement != "" {
		fmt.Fprintf(c.out, "\nProblem statement\n%s\n", h.ProblemStatement)
	}
	if len(h.Sponsors) > 0 {
		names := make([]string, 0, len(h.Sponsors))
		for _, s := range h.Sponsors {
			names = append(names, s.Name)
		}
		fmt.Fprintf(c.out, "\nSponsors: %s\n", strings.Join(names, ", "))
	}
}

func (c *cli) printResult(r domain.EvaluationResult) {
	category := strings.ToUpper(string(r.Category))
	if category == "" {
		category = "PENDING"
	}
	fmt.Fprintln(c.out, category)
	if r.OverallReason != "" {
		fmt.Fprintln(c.out, r.OverallReason)
	}
	for _, s := range []struct {
		name  string
		items []string
	}{
		{"Strengths", r.Strengths},
		{"Areas for improvement", r.Improvement},
		{"Actionable steps", r.ActionableSteps},
		{"Summary", r.Summary},
	} {
		if len(s.items) == 0 {
			continue
		}
		fmt.Fprintf(c.out, "\n%s\n", s.name)
		for _, item := range s.items {
			fmt.Fprintf(c.out, "  • %s\n", item)
		}
	}
}
