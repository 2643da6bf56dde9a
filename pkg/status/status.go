// Package status decides which participation action a hackathon currently
// offers. Everything here is pure: callers pass the clock and re-evaluate on
// every render from freshly fetched hackathon data.
package status

import (
	"time"

	"github.com/naveenspark/hackboard/pkg/domain"
)

// ResultsGrace is the evaluation buffer between submissions closing and
// results becoming reachable.
const ResultsGrace = 5 * 24 * time.Hour

// Kind is a discrete participation status.
type Kind int

const (
	SignInRequired Kind = iota
	Join
	Joined
	Submit
	Submitted
	Closed
)

// Icon tags are opaque to this package; views map them to glyphs.
const (
	IconLogin  = "login"
	IconPlus   = "plus"
	IconCheck  = "check"
	IconUpload = "upload"
	IconLock   = "lock"
)

var kindInfo = map[Kind]struct {
	label string
	icon  string
}{
	SignInRequired: {"Sign in to join", IconLogin},
	Join:           {"Join", IconPlus},
	Joined:         {"Joined", IconCheck},
	Submit:         {"Submit", IconUpload},
	Submitted:      {"Submitted", IconCheck},
	Closed:         {"Closed", IconLock},
}

// String returns the display label.
func (k Kind) String() string {
	if info, ok := kindInfo[k]; ok {
		return info.label
	}
	return "Unknown"
}

// Status is the evaluator's verdict for one hackathon.
type Status struct {
	Kind Kind
}

// Label is the button text for the status.
func (s Status) Label() string { return s.Kind.String() }

// Icon is the opaque icon tag for the status.
func (s Status) Icon() string { return kindInfo[s.Kind].icon }

// Actionable reports whether the primary button should be enabled.
// Joined is disabled: joining again before the start is a no-op.
func (s Status) Actionable() bool {
	switch s.Kind {
	case SignInRequired, Join, Submit:
		return true
	}
	return false
}

// ResultsPolicy selects how the results window interacts with publication.
type ResultsPolicy int

const (
	// PolicyResultsWindow hides published results until end_date + ResultsGrace.
	PolicyResultsWindow ResultsPolicy = iota
	// PolicyPublished surfaces results as soon as they are published once the
	// event has ended.
	PolicyPublished
)

// ParsePolicy maps a config value to a policy. Unknown values fall back to
// PolicyResultsWindow.
func ParsePolicy(s string) ResultsPolicy {
	if s == "published" {
		return PolicyPublished
	}
	return PolicyResultsWindow
}

func (p ResultsPolicy) String() string {
	if p == PolicyPublished {
		return "published"
	}
	return "window"
}

type options struct {
	policy ResultsPolicy
}

// Option configures Evaluate.
type Option func(*options)

// WithPolicy overrides the default results policy.
func WithPolicy(p ResultsPolicy) Option {
	return func(o *options) { o.policy = p }
}

// ResultsWindowOpen returns the instant results may first be shown.
func ResultsWindowOpen(h domain.Hackathon) time.Time {
	return h.EndDate.Add(ResultsGrace)
}

// Evaluate maps the clock, a hackathon and the caller's authentication state
// to a status. Rules are applied in order and the first match wins.
func Evaluate(now time.Time, h domain.Hackathon, authenticated bool, opts ...Option) Status {
	o := options{policy: PolicyResultsWindow}
	for _, opt := range opts {
		opt(&o)
	}

	start, end := h.StartDate.Time, h.EndDate.Time

	// Join/submit flags mean nothing without an identity.
	if !authenticated {
		if !now.After(end) {
			return Status{Kind: SignInRequired}
		}
		return Status{Kind: Closed}
	}

	if now.Before(start) {
		if h.HasJoined {
			return Status{Kind: Joined}
		}
		return Status{Kind: Join}
	}

	if !now.After(end) {
		switch {
		case !h.HasJoined:
			return Status{Kind: Join}
		case !h.Submitted():
			return Status{Kind: Submit}
		default:
			return Status{Kind: Submitted}
		}
	}

	eligible := h.HasJoined && h.Submitted() && h.IsResultPublished
	if o.policy == PolicyResultsWindow && now.Before(ResultsWindowOpen(h)) {
		return Status{Kind: Closed}
	}
	if eligible {
		return Status{Kind: Submitted}
	}
	return Status{Kind: Closed}
}

// CanViewResults gates the "View Results" affordance. It ignores the date
// window on purpose: publication is the server's call.
func CanViewResults(h domain.Hackathon, authenticated bool) bool {
	return authenticated && h.HasJoined && h.Submitted() && h.IsResultPublished
}
