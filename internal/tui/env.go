package tui

import (
	"errors"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/hackboard/internal/participation"
	"github.com/naveenspark/hackboard/internal/session"
	"github.com/naveenspark/hackboard/pkg/client"
	"github.com/naveenspark/hackboard/pkg/domain"
	"github.com/naveenspark/hackboard/pkg/status"
)

// Deps are the collaborators the TUI runs against.
type Deps struct {
	Client  *client.Client
	Session *session.Session
	Policy  status.ResultsPolicy
	WebURL  string
	Version string
	Now     func() time.Time
}

// env is shared by every view. Models are copied by value on each update, so
// everything mutable lives behind pointers here.
type env struct {
	client  *client.Client
	session *session.Session
	joiner  *participation.Joiner
	guard   *participation.Guard
	cache   *hackathonCache
	draft   *registerDraft
	policy  status.ResultsPolicy
	webURL  string
	now     func() time.Time
}

func newEnv(d Deps) *env {
	e := &env{
		client:  d.Client,
		session: d.Session,
		cache:   newHackathonCache(),
		draft:   &registerDraft{},
		policy:  d.Policy,
		webURL:  d.WebURL,
		now:     d.Now,
	}
	if e.now == nil {
		e.now = time.Now
	}
	if d.Client != nil {
		e.joiner = participation.NewJoiner(d.Client)
		if d.Session != nil {
			e.guard = participation.NewGuard(d.Client, d.Session)
		}
	}
	if d.Session != nil {
		d.Session.OnTeardown(e.cache.reset)
		d.Session.OnTeardown(e.draft.reset)
	}
	return e
}

func (e *env) authenticated() bool {
	return e.session != nil && e.session.IsAuthenticated()
}

func (e *env) evaluate(h domain.Hackathon) status.Status {
	return status.Evaluate(e.now(), h, e.authenticated(), status.WithPolicy(e.policy))
}

func (e *env) canViewResults(h domain.Hackathon) bool {
	return status.CanViewResults(h, e.authenticated())
}

// hackathonCache holds the last known copy of each hackathon, including
// optimistic local updates.
type hackathonCache struct {
	mu   sync.Mutex
	byID map[string]domain.Hackathon
}

func newHackathonCache() *hackathonCache {
	return &hackathonCache{byID: make(map[string]domain.Hackathon)}
}

func (c *hackathonCache) get(id string) (domain.Hackathon, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	h, ok := c.byID[id]
	return h, ok
}

func (c *hackathonCache) put(hs ...domain.Hackathon) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, h := range hs {
		if h.ID != "" {
			c.byID[h.ID] = h
		}
	}
}

func (c *hackathonCache) update(id string, fn func(*domain.Hackathon)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if h, ok := c.byID[id]; ok {
		fn(&h)
		c.byID[id] = h
	}
}

func (c *hackathonCache) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.byID = make(map[string]domain.Hackathon)
}

// registerDraft keeps a half-filled registration form across view changes.
type registerDraft struct {
	mu     sync.Mutex
	fields [registerFieldCount]string
}

func (d *registerDraft) load() [registerFieldCount]string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.fields
}

func (d *registerDraft) store(f [registerFieldCount]string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.fields = f
}

func (d *registerDraft) reset() {
	d.store([registerFieldCount]string{})
}

// -- shared messages --

// sequenced messages belong to one visit of a view. The app drops them when
// the user has navigated away since the command was issued.
type sequenced interface {
	viewSeq() int
}

type seqTag struct{ seq int }

func (s seqTag) viewSeq() int { return s.seq }

type navigateMsg struct{ to route }

type backMsg struct{}

type noticeMsg struct {
	text  string
	isErr bool
}

type noticeExpiredMsg struct{ id int }

type authRequiredMsg struct{ returnTo route }

type sessionExpiredMsg struct{ returnTo route }

type copyResultMsg struct{ err error }

func navigate(to route) tea.Cmd {
	return func() tea.Msg { return navigateMsg{to: to} }
}

func back() tea.Cmd {
	return func() tea.Msg { return backMsg{} }
}

func notify(text string) tea.Cmd {
	return func() tea.Msg { return noticeMsg{text: text} }
}

func notifyErr(text string) tea.Cmd {
	return func() tea.Msg { return noticeMsg{text: text, isErr: true} }
}

// errorCmd turns an API error into the app-level reaction: a sign-in
// redirect for auth problems, otherwise an error notice.
func errorCmd(err error, fallback string, here route) tea.Cmd {
	switch {
	case errors.Is(err, client.ErrSessionRejected):
		return func() tea.Msg { return sessionExpiredMsg{returnTo: here} }
	case errors.Is(err, client.ErrAuthRequired):
		return func() tea.Msg { return authRequiredMsg{returnTo: here} }
	default:
		return notifyErr(client.UserMessage(err, fallback))
	}
}
