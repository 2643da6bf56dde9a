package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/hackboard/pkg/client"
	"github.com/naveenspark/hackboard/pkg/domain"
)

const registerFieldCount = 6

var registerFields = [registerFieldCount]string{"name", "email", "password", "grade", "district", "state"}

const registerPasswordField = 2

type signedInMsg struct {
	seqTag
	student domain.Student
	err     error
}

type registeredMsg struct {
	seqTag
	email string
	err   error
}

type signInModel struct {
	env      *env
	seq      int
	register bool
	focus    int
	email    string
	password string
	reg      [registerFieldCount]string
	sending  bool
	width    int
	height   int
}

func newSignInModel(e *env, seq int) signInModel {
	return signInModel{env: e, seq: seq, reg: e.draft.load()}
}

func (m signInModel) fieldCount() int {
	if m.register {
		return registerFieldCount
	}
	return 2
}

func (m signInModel) Update(msg tea.Msg) (signInModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case signedInMsg:
		m.sending = false
		if msg.err != nil {
			m.password = ""
			m.focus = 1
			return m, notifyErr(client.UserMessage(msg.err, "Sign in failed, please try again"))
		}

	case registeredMsg:
		m.sending = false
		if msg.err != nil {
			return m, notifyErr(client.UserMessage(msg.err, "Registration failed, please try again"))
		}
		m.env.draft.reset()
		m.reg = [registerFieldCount]string{}
		m.register = false
		m.email = msg.email
		m.password = ""
		m.focus = 1
		return m, notify("Account created, please sign in")

	case tea.KeyMsg:
		if m.sending {
			return m, nil
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m signInModel) handleKey(msg tea.KeyMsg) (signInModel, tea.Cmd) {
	n := m.fieldCount()
	switch msg.String() {
	case "esc":
		return m, back()
	case "ctrl+r":
		m.register = !m.register
		m.focus = 0
	case "tab", "down":
		m.focus = (m.focus + 1) % n
	case "shift+tab", "up":
		m.focus = (m.focus + n - 1) % n
	case "enter":
		if m.focus < n-1 {
			m.focus++
			return m, nil
		}
		if m.register {
			return m.submitRegister()
		}
		return m.submitLogin()
	default:
		key := msg.String()
		switch {
		case m.register:
			m.reg[m.focus] = editRune(m.reg[m.focus], key)
			m.env.draft.store(m.reg)
		case m.focus == 0:
			m.email = editRune(m.email, key)
		default:
			m.password = editRune(m.password, key)
		}
	}
	return m, nil
}

func (m signInModel) submitLogin() (signInModel, tea.Cmd) {
	s, c := m.env.session, m.env.client
	if s == nil || c == nil {
		return m, notifyErr("Signing in is not available")
	}
	req := client.LoginRequest{Email: strings.TrimSpace(m.email), Password: m.password}
	if err := client.Validate(req); err != nil {
		return m, notifyErr(client.UserMessage(err, "Please check your details"))
	}
	m.sending = true
	seq := m.seq
	return m, func() tea.Msg {
		student, err := s.Login(context.Background(), c, req.Email, req.Password)
		if err != nil {
			return signedInMsg{seqTag: seqTag{seq}, err: err}
		}
		return signedInMsg{seqTag: seqTag{seq}, student: *student}
	}
}

func (m signInModel) submitRegister() (signInModel, tea.Cmd) {
	c := m.env.client
	if c == nil {
		return m, notifyErr("Registration is not available")
	}
	f := m.reg
	req := client.RegisterRequest{
		Name:     strings.TrimSpace(f[0]),
		Email:    strings.TrimSpace(f[1]),
		Password: f[2],
		Grade:    strings.TrimSpace(f[3]),
		District: strings.TrimSpace(f[4]),
		State:    strings.TrimSpace(f[5]),
	}
	if err := client.Validate(req); err != nil {
		return m, notifyErr(client.UserMessage(err, "Please check your details"))
	}
	m.sending = true
	seq := m.seq
	return m, func() tea.Msg {
		_, err := c.Register(context.Background(), req)
		return registeredMsg{seqTag: seqTag{seq}, email: req.Email, err: err}
	}
}

func (m signInModel) View() string {
	var b strings.Builder
	if m.register {
		b.WriteString("\n " + sectionHeaderStyle.Render("Create an account") + "\n\n")
		for i, name := range registerFields {
			b.WriteString(renderField(name, m.reg[i], "", m.focus == i, i == registerPasswordField) + "\n")
		}
	} else {
		b.WriteString("\n " + sectionHeaderStyle.Render("Sign in") + "\n\n")
		b.WriteString(renderField("email", m.email, "you@example.com", m.focus == 0, false) + "\n")
		b.WriteString(renderField("password", m.password, "", m.focus == 1, true) + "\n")
	}
	if m.sending {
		b.WriteString("\n  " + dimStyle.Render("please wait..."))
	}
	return b.String()
}

func (m signInModel) helpKeys() string {
	other := "register"
	if m.register {
		other = "sign in"
	}
	return helpBar("tab", "next", "enter", "submit", "ctrl+r", other, "esc", "back", "ctrl+c", "quit")
}
