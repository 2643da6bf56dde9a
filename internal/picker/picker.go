package picker

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/naveenspark/hackboard/pkg/client"
	"github.com/naveenspark/hackboard/pkg/domain"
)

// DefaultMaxBytes caps the size of a selected file.
const DefaultMaxBytes int64 = 100 << 20

// ErrCancelled means the user backed out without choosing anything.
var ErrCancelled = errors.New("selection cancelled")

// Picker chooses an artifact of the given kind.
type Picker interface {
	Pick(ctx context.Context, kind domain.ArtifactKind) (*domain.Artifact, error)
}

// Prompt asks the user for a line of input. An empty answer cancels.
type Prompt func(ctx context.Context, label string) (string, error)

// PathPicker asks for a file path and loads it.
type PathPicker struct {
	Prompt   Prompt
	MaxBytes int64
}

// Pick implements Picker.
func (p PathPicker) Pick(ctx context.Context, kind domain.ArtifactKind) (*domain.Artifact, error) {
	f, ok := Filter(kind)
	if !ok {
		return nil, fmt.Errorf("picker.Pick: %s is not a file kind", kind)
	}
	path, err := p.Prompt(ctx, fmt.Sprintf("%s file (%s)", kind, f.Describe()))
	if err != nil {
		return nil, fmt.Errorf("picker.Pick: %w", err)
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, ErrCancelled
	}
	return LoadFile(path, kind, p.MaxBytes)
}

// TextPicker asks for the text of a text submission.
type TextPicker struct {
	Prompt Prompt
}

// Pick implements Picker.
func (p TextPicker) Pick(ctx context.Context, kind domain.ArtifactKind) (*domain.Artifact, error) {
	if kind != domain.KindText {
		return nil, fmt.Errorf("picker.Pick: %s is not text", kind)
	}
	text, err := p.Prompt(ctx, "submission text")
	if err != nil {
		return nil, fmt.Errorf("picker.Pick: %w", err)
	}
	return Text(text)
}

// Kinds routes file kinds to Files and the text kind to Text.
type Kinds struct {
	Files Picker
	Text  Picker
}

// Pick implements Picker.
func (k Kinds) Pick(ctx context.Context, kind domain.ArtifactKind) (*domain.Artifact, error) {
	if kind.Binary() {
		return k.Files.Pick(ctx, kind)
	}
	return k.Text.Pick(ctx, kind)
}

// Static always returns the same choice. Used when the artifact is already
// known, e.g. from command-line flags.
type Static struct {
	Artifact *domain.Artifact
	Err      error
}

// Pick implements Picker.
func (s Static) Pick(_ context.Context, kind domain.ArtifactKind) (*domain.Artifact, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Artifact == nil {
		return nil, ErrCancelled
	}
	if s.Artifact.Kind != kind {
		return nil, &client.ValidationError{Field: "kind", Reason: fmt.Sprintf("selected %s, want %s", s.Artifact.Kind, kind)}
	}
	a := *s.Artifact
	return &a, nil
}

// LoadFile reads path and checks it against the kind's filter. maxBytes <= 0
// means DefaultMaxBytes.
func LoadFile(path string, kind domain.ArtifactKind, maxBytes int64) (*domain.Artifact, error) {
	f, ok := Filter(kind)
	if !ok {
		return nil, fmt.Errorf("picker.LoadFile: %s is not a file kind", kind)
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	name := filepath.Base(path)
	if !f.AcceptsName(name) {
		return nil, &client.ValidationError{Field: "file", Reason: fmt.Sprintf("%s files must be one of %s", kind, f.Describe())}
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("picker.LoadFile: %w", err)
	}
	if info.IsDir() {
		return nil, &client.ValidationError{Field: "file", Reason: name + " is a directory"}
	}
	if info.Size() == 0 {
		return nil, &client.ValidationError{Field: "file", Reason: name + " is empty"}
	}
	if info.Size() > maxBytes {
		return nil, &client.ValidationError{
			Field:  "file",
			Reason: fmt.Sprintf("%s is %s, the limit is %s", name, humanize.IBytes(uint64(info.Size())), humanize.IBytes(uint64(maxBytes))),
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("picker.LoadFile: %w", err)
	}
	mt := mimetype.Detect(data)
	if !f.AcceptsMIME(mt) {
		return nil, &client.ValidationError{Field: "file", Reason: fmt.Sprintf("%s looks like %s, not a %s file", name, mt.String(), kind)}
	}
	return &domain.Artifact{
		AttemptID: uuid.New(),
		Kind:      kind,
		Name:      name,
		MIMEType:  mt.String(),
		Data:      data,
	}, nil
}

// Text builds a text artifact. Blank text cancels the selection.
func Text(text string) (*domain.Artifact, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrCancelled
	}
	return &domain.Artifact{
		AttemptID: uuid.New(),
		Kind:      domain.KindText,
		MIMEType:  "text/plain",
		Text:      text,
	}, nil
}
