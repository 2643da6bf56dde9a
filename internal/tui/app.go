package tui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// noticeTTL is how long a notification stays on screen.
const noticeTTL = 5 * time.Second

type view int

const (
	viewDiscover view = iota
	viewMine
	viewDetail
	viewSubmit
	viewResult
	viewSignIn
)

// route is a navigable location: a view plus the hackathon it is about.
type route struct {
	view view
	id   string
}

// path renders the route the way the web client spelled its URLs. It is
// what travels in AuthRequiredError.ReturnTo.
func (r route) path() string {
	switch r.view {
	case viewMine:
		return "/my-hackathons"
	case viewDetail:
		return "/hackathon/" + r.id
	case viewSubmit:
		return "/hackathon/" + r.id + "/submit"
	case viewResult:
		return "/view-result/" + r.id
	case viewSignIn:
		return "/auth"
	default:
		return "/hackathons"
	}
}

// protected views need a session before they are shown.
func (r route) protected() bool {
	switch r.view {
	case viewMine, viewSubmit, viewResult:
		return true
	}
	return false
}

type notice struct {
	id    int
	text  string
	isErr bool
}

// App is the root Bubbletea model.
type App struct {
	env      *env
	version  string
	view     view
	current  route
	listView view   // list to return to from detail
	returnTo *route // where to go after sign-in
	seq      int

	discover discoverModel
	mine     mineModel
	detail   detailModel
	submit   submitModel
	result   resultModel
	signin   signInModel

	notice   notice
	noticeID int
	width    int
	height   int
}

// NewApp creates a new TUI application.
func NewApp(d Deps) App {
	e := newEnv(d)
	a := App{env: e, version: d.Version, listView: viewDiscover}
	a.current = route{view: viewDiscover}
	a.discover = newDiscoverModel(e, a.seq)
	return a
}

func (a App) Init() tea.Cmd {
	return a.discover.Init()
}

// navigate switches to r, bumping the view sequence so results still in
// flight for the previous view are dropped.
func (a App) navigate(r route) (App, tea.Cmd) {
	var cmds []tea.Cmd
	if r.protected() && !a.env.authenticated() {
		target := r
		a.returnTo = &target
		r = route{view: viewSignIn}
		cmds = append(cmds, notify("Please sign in to continue"))
	}

	a.seq++
	a.view = r.view
	a.current = r
	body := a.bodySize()

	switch r.view {
	case viewDiscover:
		a.listView = viewDiscover
		a.discover = newDiscoverModel(a.env, a.seq)
		a.discover, _ = a.discover.Update(body)
		cmds = append(cmds, a.discover.Init())
	case viewMine:
		a.listView = viewMine
		a.mine = newMineModel(a.env, a.seq)
		a.mine, _ = a.mine.Update(body)
		cmds = append(cmds, a.mine.Init())
	case viewDetail:
		a.detail = newDetailModel(a.env, a.seq, r.id)
		a.detail, _ = a.detail.Update(body)
		cmds = append(cmds, a.detail.Init())
	case viewSubmit:
		a.submit = newSubmitModel(a.env, a.seq, r.id)
		a.submit, _ = a.submit.Update(body)
	case viewResult:
		a.result = newResultModel(a.env, a.seq, r.id)
		a.result, _ = a.result.Update(body)
		cmds = append(cmds, a.result.Init())
	case viewSignIn:
		a.signin = newSignInModel(a.env, a.seq)
		a.signin, _ = a.signin.Update(body)
	}
	return a, tea.Batch(cmds...)
}

func (a App) bodySize() tea.WindowSizeMsg {
	// Chrome: header(1) + tabs(1) + notice(1) + help(1)
	return tea.WindowSizeMsg{Width: a.width, Height: a.height - 4}
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m, ok := msg.(sequenced); ok && m.viewSeq() != a.seq {
		slog.Debug("dropping result for a view that was left", "msg", fmt.Sprintf("%T", msg), "seq", m.viewSeq(), "current", a.seq)
		return a, nil
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		body := a.bodySize()
		a.discover, _ = a.discover.Update(body)
		a.mine, _ = a.mine.Update(body)
		a.detail, _ = a.detail.Update(body)
		a.submit, _ = a.submit.Update(body)
		a.result, _ = a.result.Update(body)
		a.signin, _ = a.signin.Update(body)
		return a, nil

	case navigateMsg:
		return a.navigate(msg.to)

	case backMsg:
		to := a.backRoute()
		if a.view == viewSignIn {
			a.returnTo = nil
		}
		return a.navigate(to)

	case noticeMsg:
		a.noticeID++
		a.notice = notice{id: a.noticeID, text: msg.text, isErr: msg.isErr}
		id := a.noticeID
		return a, tea.Tick(noticeTTL, func(time.Time) tea.Msg { return noticeExpiredMsg{id: id} })

	case noticeExpiredMsg:
		if msg.id == a.notice.id {
			a.notice = notice{}
		}
		return a, nil

	case authRequiredMsg:
		target := msg.returnTo
		a.returnTo = &target
		next, cmd := a.navigate(route{view: viewSignIn})
		return next, tea.Batch(cmd, notify("Please sign in to continue"))

	case sessionExpiredMsg:
		if a.env.session != nil {
			if err := a.env.session.Logout(); err != nil {
				slog.Warn("clearing rejected session", "err", err)
			}
		}
		target := msg.returnTo
		a.returnTo = &target
		next, cmd := a.navigate(route{view: viewSignIn})
		return next, tea.Batch(cmd, notifyErr("Your session has expired, please sign in again"))

	case signedInMsg:
		if msg.err == nil {
			to := route{view: viewDiscover}
			if a.returnTo != nil {
				to = *a.returnTo
			}
			a.returnTo = nil
			next, cmd := a.navigate(to)
			return next, tea.Batch(cmd, notify("Welcome, "+msg.student.Name))
		}

	case copyResultMsg:
		if msg.err != nil {
			return a, notifyErr("Could not copy to clipboard")
		}
		return a, notify("Invite code copied")

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if !a.isEditing() {
			switch msg.String() {
			case "q":
				return a, tea.Quit
			case "1":
				if a.view != viewDiscover {
					return a.navigate(route{view: viewDiscover})
				}
				return a, nil
			case "2":
				if a.view != viewMine {
					return a.navigate(route{view: viewMine})
				}
				return a, nil
			case "s":
				if !a.env.authenticated() {
					here := a.current
					a.returnTo = &here
					return a.navigate(route{view: viewSignIn})
				}
			case "L":
				return a.logout()
			}
		}
	}

	var cmd tea.Cmd
	switch a.view {
	case viewDiscover:
		a.discover, cmd = a.discover.Update(msg)
	case viewMine:
		a.mine, cmd = a.mine.Update(msg)
	case viewDetail:
		a.detail, cmd = a.detail.Update(msg)
	case viewSubmit:
		a.submit, cmd = a.submit.Update(msg)
	case viewResult:
		a.result, cmd = a.result.Update(msg)
	case viewSignIn:
		a.signin, cmd = a.signin.Update(msg)
	}
	return a, cmd
}

// logout clears the session and every derived cache, then returns to the
// public listing.
func (a App) logout() (App, tea.Cmd) {
	if !a.env.authenticated() {
		return a, notify("You are not signed in")
	}
	if err := a.env.session.Logout(); err != nil {
		slog.Warn("logout", "err", err)
		return a, notifyErr("Could not remove the saved session")
	}
	a.returnTo = nil
	next, cmd := a.navigate(route{view: viewDiscover})
	return next, tea.Batch(cmd, notify("Signed out"))
}

func (a App) backRoute() route {
	switch a.view {
	case viewSubmit, viewResult:
		return route{view: viewDetail, id: a.current.id}
	case viewSignIn:
		return route{view: viewDiscover}
	default:
		return route{view: a.listView}
	}
}

func (a App) isEditing() bool {
	switch a.view {
	case viewDiscover:
		return a.discover.editing
	case viewMine:
		return a.mine.join.active()
	case viewDetail:
		return a.detail.join.active()
	case viewSubmit, viewSignIn:
		return true
	}
	return false
}

func (a App) View() string {
	header := " " + renderLogo()
	if a.env.session != nil {
		if p, ok := a.env.session.Profile(); ok && a.env.authenticated() {
			header += "  " + metaStyle.Render("signed in as ") + dimStyle.Render(p.Name)
		} else if !a.env.authenticated() {
			header += "  " + metaStyle.Render("not signed in")
		}
	}

	tabs := []struct {
		key  string
		name string
		v    view
	}{
		{"1", "Discover", viewDiscover},
		{"2", "My Hackathons", viewMine},
	}
	var tabBar strings.Builder
	for _, t := range tabs {
		active := t.v == a.view || (t.v == a.listView && (a.view == viewDetail || a.view == viewSubmit || a.view == viewResult))
		if active {
			tabBar.WriteString(" " + accentStyle.Render(t.key) + " " + selectedStyle.Underline(true).Render(t.name) + "  ")
		} else {
			tabBar.WriteString(" " + metaStyle.Render(t.key) + " " + dimStyle.Render(t.name) + "  ")
		}
	}

	var body, help string
	switch a.view {
	case viewDiscover:
		body = a.discover.View()
		help = a.discover.helpKeys()
	case viewMine:
		body = a.mine.View()
		help = a.mine.helpKeys()
	case viewDetail:
		body = a.detail.View()
		help = a.detail.helpKeys()
	case viewSubmit:
		body = a.submit.View()
		help = a.submit.helpKeys()
	case viewResult:
		body = a.result.View()
		help = a.result.helpKeys()
	case viewSignIn:
		body = a.signin.View()
		help = a.signin.helpKeys()
	}

	noticeLine := ""
	if a.notice.text != "" {
		if a.notice.isErr {
			noticeLine = " " + errorStyle.Render("! "+a.notice.text)
		} else {
			noticeLine = " " + noticeStyle.Render("✓ "+a.notice.text)
		}
	}

	body = strings.TrimRight(truncateToHeight(body, a.height-4), "\n")
	headerLine := header
	if a.width > 0 {
		headerLine = lipgloss.NewStyle().MaxWidth(a.width).Render(header)
	}
	return fmt.Sprintf("%s\n%s\n%s\n%s\n%s", headerLine, tabBar.String(), body, noticeLine, help)
}
