package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/naveenspark/hackboard/internal/participation"
	"github.com/naveenspark/hackboard/internal/picker"
	"github.com/naveenspark/hackboard/pkg/client"
	"github.com/naveenspark/hackboard/pkg/domain"
)

type uploadDoneMsg struct {
	seqTag
	ref domain.SubmissionRef
	err error
}

type submitModel struct {
	env      *env
	seq      int
	id       string
	title    string
	kind     int // index into domain.ArtifactKinds
	input    string
	uploader *participation.Uploader
	sending  bool // upload command issued, result not yet back
	width    int
	height   int
}

func newSubmitModel(e *env, seq int, id string) submitModel {
	m := submitModel{env: e, seq: seq, id: id}
	if e.client != nil {
		m.uploader = participation.NewUploader(e.client, nil)
	} else {
		m.uploader = participation.NewUploader(nil, nil)
	}
	if h, ok := e.cache.get(id); ok {
		m.title = h.Title
	}
	return m
}

func (m submitModel) here() route { return route{view: viewSubmit, id: m.id} }

func (m submitModel) currentKind() domain.ArtifactKind {
	return domain.ArtifactKinds[m.kind]
}

func (m submitModel) Update(msg tea.Msg) (submitModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case uploadDoneMsg:
		m.sending = false
		if msg.err != nil {
			return m, errorCmd(msg.err, "Upload failed, please try again", m.here())
		}
		ref := msg.ref
		m.env.cache.update(m.id, func(h *domain.Hackathon) { participation.MarkSubmitted(h, ref) })
		return m, tea.Batch(notify("Submission received"), navigate(route{view: viewDetail, id: m.id}))

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m submitModel) handleKey(msg tea.KeyMsg) (submitModel, tea.Cmd) {
	state := m.uploader.State()
	if m.sending {
		state = participation.Uploading
	}
	switch msg.String() {
	case "esc":
		m.uploader.Cancel()
		return m, back()
	case "tab", "shift+tab":
		if state == participation.Uploading {
			return m, nil
		}
		n := len(domain.ArtifactKinds)
		if msg.String() == "tab" {
			m.kind = (m.kind + 1) % n
		} else {
			m.kind = (m.kind + n - 1) % n
		}
		m.uploader.Cancel()
		m.input = ""
	case "ctrl+x":
		m.uploader.Cancel()
		m.input = ""
	case "enter":
		switch state {
		case participation.Idle:
			return m.choose()
		case participation.Selected:
			m.sending = true
			return m, m.upload()
		case participation.Uploading:
			return m, notifyErr(participation.ErrUploadInFlight.Error())
		}
	default:
		if state == participation.Idle {
			m.input = editRune(m.input, msg.String())
		}
	}
	return m, nil
}

// choose turns the typed path or text into the pending artifact.
func (m submitModel) choose() (submitModel, tea.Cmd) {
	kind := m.currentKind()
	var (
		a   *domain.Artifact
		err error
	)
	if kind.Binary() {
		if strings.TrimSpace(m.input) == "" {
			return m, notifyErr("Please enter the path of the file to submit")
		}
		a, err = picker.LoadFile(expandHome(m.input), kind, 0)
	} else {
		a, err = picker.Text(m.input)
	}
	if err != nil {
		if errors.Is(err, picker.ErrCancelled) {
			return m, notifyErr("Please enter your submission text")
		}
		return m, notifyErr(client.UserMessage(err, "Could not read "+m.input))
	}
	if err := m.uploader.Choose(*a); err != nil {
		return m, notifyErr(err.Error())
	}
	return m, nil
}

func (m submitModel) upload() tea.Cmd {
	u := m.uploader
	seq, id := m.seq, m.id
	return func() tea.Msg {
		ref, err := u.Upload(context.Background(), id)
		return uploadDoneMsg{seqTag: seqTag{seq}, ref: ref, err: err}
	}
}

func (m submitModel) View() string {
	var b strings.Builder
	title := m.title
	if title == "" {
		title = m.id
	}
	fmt.Fprintf(&b, "\n %s %s\n\n", sectionHeaderStyle.Render("Submit to"), selectedStyle.Render(title))

	b.WriteString(" ")
	for i, k := range domain.ArtifactKinds {
		label := string(k)
		if i == m.kind {
			b.WriteString(accentStyle.Bold(true).Render("["+label+"]") + " ")
		} else {
			b.WriteString(dimStyle.Render(" "+label+" ") + " ")
		}
	}
	b.WriteString("\n\n")

	kind := m.currentKind()
	state := m.uploader.State()
	if m.sending {
		state = participation.Uploading
	}
	if state == participation.Idle {
		if kind.Binary() {
			f, _ := picker.Filter(kind)
			b.WriteString(renderField("file", m.input, "path to file ("+f.Describe()+")", true, false) + "\n")
		} else {
			b.WriteString(renderField("text", m.input, "describe your submission", true, false) + "\n")
		}
		return b.String()
	}

	if a, ok := m.uploader.Pending(); ok {
		name := a.Name
		if !a.Kind.Binary() {
			name = truncStr(oneLine(a.Text), 40)
		}
		fmt.Fprintf(&b, "  %s %s  %s\n", dimStyle.Render("selected"), normalStyle.Render(name), metaStyle.Render(humanize.Bytes(uint64(a.Size()))))
	}
	if state == participation.Uploading {
		b.WriteString("\n  " + accentStyle.Render("uploading...") + "\n")
	} else {
		b.WriteString("\n  " + helpEntry("enter", "upload") + "  " + helpEntry("ctrl+x", "choose again") + "\n")
	}
	return b.String()
}

func (m submitModel) helpKeys() string {
	state := m.uploader.State()
	if m.sending {
		state = participation.Uploading
	}
	switch state {
	case participation.Uploading:
		return helpBar("esc", "leave")
	case participation.Selected:
		return helpBar("enter", "upload", "ctrl+x", "clear", "tab", "kind", "esc", "cancel")
	default:
		return helpBar("enter", "select", "tab", "kind", "esc", "cancel")
	}
}
