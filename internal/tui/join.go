package tui

import (
	"context"
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/hackboard/internal/participation"
)

type joinStage int

const (
	joinClosed joinStage = iota
	joinEnteringCode
	joinEnteringPasskey
	joinSending
)

type joinDoneMsg struct {
	seqTag
	withPasskey bool
	outcome     participation.JoinOutcome
	err         error
}

// joinForm is the invite-code input plus the passkey overlay the server can
// demand halfway through.
type joinForm struct {
	stage   joinStage
	code    string
	passkey string
}

func (f joinForm) active() bool { return f.stage != joinClosed }

func (f joinForm) attempt(e *env, seq int) tea.Cmd {
	j := e.joiner
	code, passkey := f.code, f.passkey
	return func() tea.Msg {
		out, err := j.Attempt(context.Background(), code, passkey)
		return joinDoneMsg{seqTag: seqTag{seq}, withPasskey: passkey != "", outcome: out, err: err}
	}
}

func (f joinForm) handleKey(e *env, seq int, msg tea.KeyMsg) (joinForm, tea.Cmd) {
	key := msg.String()
	switch f.stage {
	case joinEnteringCode:
		switch key {
		case "esc":
			return joinForm{}, nil
		case "enter":
			f.code = strings.TrimSpace(f.code)
			if f.code == "" {
				return f, notifyErr("Please enter an invite code")
			}
			f.passkey = ""
			f.stage = joinSending
			return f, f.attempt(e, seq)
		default:
			f.code = editRune(f.code, key)
		}
	case joinEnteringPasskey:
		switch key {
		case "esc":
			return joinForm{}, notify("Join cancelled")
		case "enter":
			if strings.TrimSpace(f.passkey) == "" {
				return f, notifyErr("Please enter the passkey")
			}
			f.stage = joinSending
			return f, f.attempt(e, seq)
		default:
			f.passkey = editRune(f.passkey, key)
		}
	}
	return f, nil
}

// handleDone applies a join result. The bool reports a successful join.
func (f joinForm) handleDone(msg joinDoneMsg, here route) (joinForm, bool, tea.Cmd) {
	if msg.err != nil {
		if errors.Is(msg.err, participation.ErrJoinInFlight) {
			return f, false, nil
		}
		if msg.withPasskey {
			// Keep the overlay open so a mistyped passkey can be retried.
			f.stage = joinEnteringPasskey
			f.passkey = ""
		} else {
			f = joinForm{}
		}
		return f, false, errorCmd(msg.err, "Failed to join hackathon", here)
	}
	if msg.outcome == participation.JoinPasskeyRequired {
		f.stage = joinEnteringPasskey
		f.passkey = ""
		if msg.withPasskey {
			return f, false, notifyErr("The passkey was not accepted")
		}
		return f, false, nil
	}
	return joinForm{}, true, notify("Joined hackathon!")
}

func (f joinForm) View() string {
	switch f.stage {
	case joinEnteringCode:
		return renderField("invite", f.code, "enter invite code", true, false)
	case joinEnteringPasskey:
		body := selectedStyle.Render("This hackathon requires a passkey") + "\n\n" +
			renderField("passkey", f.passkey, "", true, true) + "\n\n" +
			helpBar("enter", "join", "esc", "cancel")
		return overlayStyle.Render(body)
	case joinSending:
		return "  " + dimStyle.Render("joining "+f.code+"...")
	}
	return ""
}
