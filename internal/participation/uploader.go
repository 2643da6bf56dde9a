package participation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/naveenspark/hackboard/internal/picker"
	"github.com/naveenspark/hackboard/pkg/client"
	"github.com/naveenspark/hackboard/pkg/domain"
)

// State is the uploader's position in Idle -> Selected -> Uploading.
type State int

const (
	Idle State = iota
	Selected
	Uploading
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Selected:
		return "selected"
	case Uploading:
		return "uploading"
	default:
		return "unknown"
	}
}

// Uploader holds at most one pending artifact and sends it. Safe for
// concurrent use.
type Uploader struct {
	api    Submitter
	picker picker.Picker

	mu       sync.Mutex
	state    State
	pending  *domain.Artifact
	inFlight bool
}

// NewUploader creates an idle uploader. p may be nil when artifacts are
// always supplied through Choose.
func NewUploader(api Submitter, p picker.Picker) *Uploader {
	return &Uploader{api: api, picker: p}
}

// State returns the current state.
func (u *Uploader) State() State {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.state
}

// Pending returns a copy of the selected artifact.
func (u *Uploader) Pending() (domain.Artifact, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.pending == nil {
		return domain.Artifact{}, false
	}
	return *u.pending, true
}

// Select opens the picker for kind. A cancelled pick leaves the state as it
// was and returns picker.ErrCancelled.
func (u *Uploader) Select(ctx context.Context, kind domain.ArtifactKind) error {
	if u.State() == Uploading {
		return ErrUploadInFlight
	}
	if u.picker == nil {
		return errors.New("participation.Select: no picker configured")
	}
	a, err := u.picker.Pick(ctx, kind)
	if err != nil {
		if errors.Is(err, picker.ErrCancelled) {
			return err
		}
		return fmt.Errorf("participation.Select: %w", err)
	}
	return u.Choose(*a)
}

// Choose makes a the pending artifact.
func (u *Uploader) Choose(a domain.Artifact) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.state == Uploading {
		return ErrUploadInFlight
	}
	u.pending = &a
	u.state = Selected
	return nil
}

// Cancel discards the pending artifact. An upload already on the wire still
// completes, but its artifact is no longer retained.
func (u *Uploader) Cancel() {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.pending = nil
	u.state = Idle
}

// Upload sends the pending artifact to hackathonID. On success the uploader
// returns to Idle and the server's submission reference is returned. On
// failure it returns to Selected with the artifact kept for a retry.
func (u *Uploader) Upload(ctx context.Context, hackathonID string) (domain.SubmissionRef, error) {
	u.mu.Lock()
	if u.inFlight {
		u.mu.Unlock()
		return domain.SubmissionRef{}, ErrUploadInFlight
	}
	if u.pending == nil {
		u.mu.Unlock()
		return domain.SubmissionRef{}, &client.ValidationError{Field: "file", Reason: "please select something to submit"}
	}
	if strings.TrimSpace(hackathonID) == "" {
		u.mu.Unlock()
		return domain.SubmissionRef{}, &client.ValidationError{Field: "hackathon_id", Reason: "is required"}
	}
	a := *u.pending
	u.state = Uploading
	u.inFlight = true
	u.mu.Unlock()

	slog.Info("upload started", "hackathon_id", hackathonID, "kind", a.Kind, "attempt", a.AttemptID, "bytes", a.Size())
	resp, err := u.send(ctx, hackathonID, a)

	u.mu.Lock()
	defer u.mu.Unlock()
	u.inFlight = false
	current := u.pending != nil && u.pending.AttemptID == a.AttemptID
	if err != nil {
		if current {
			u.state = Selected
		}
		slog.Info("upload failed", "hackathon_id", hackathonID, "attempt", a.AttemptID, "error", err)
		return domain.SubmissionRef{}, fmt.Errorf("participation.Upload: %w", err)
	}
	if current {
		u.pending = nil
		u.state = Idle
	}

	ref := domain.SubmissionRef{ID: domain.PlaceholderSubmissionID}
	if resp != nil && resp.SubmissionID != "" {
		ref.ID = resp.SubmissionID
	}
	slog.Info("upload finished", "hackathon_id", hackathonID, "submission_id", ref.ID)
	return ref, nil
}

func (u *Uploader) send(ctx context.Context, hackathonID string, a domain.Artifact) (*client.SubmitResponse, error) {
	if a.Kind.Binary() {
		return u.api.SubmitFile(ctx, hackathonID, a)
	}
	return u.api.SubmitText(ctx, client.TextSubmission{Text: a.Text, HackathonID: hackathonID})
}
