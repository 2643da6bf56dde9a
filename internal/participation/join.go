package participation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/naveenspark/hackboard/pkg/client"
	"github.com/naveenspark/hackboard/pkg/domain"
)

// JoinOutcome is the result of a join attempt that did not fail.
type JoinOutcome int

const (
	JoinSucceeded JoinOutcome = iota + 1
	JoinPasskeyRequired
	JoinAlreadyMember
)

func (o JoinOutcome) String() string {
	switch o {
	case JoinSucceeded:
		return "joined"
	case JoinPasskeyRequired:
		return "passkey required"
	case JoinAlreadyMember:
		return "already joined"
	default:
		return "none"
	}
}

const passkeyRequiredMarker = "passkey is required"

// PasskeyPrompter asks the user for a passkey. An empty answer cancels.
type PasskeyPrompter func(ctx context.Context) (string, error)

// Joiner runs the join-by-code workflow.
type Joiner struct {
	api JoinAPI

	mu       sync.Mutex
	inFlight map[string]struct{}
}

// NewJoiner creates a Joiner.
func NewJoiner(api JoinAPI) *Joiner {
	return &Joiner{api: api, inFlight: make(map[string]struct{})}
}

// IsPasskeyRequired reports whether err is the server asking for a passkey.
func IsPasskeyRequired(err error) bool {
	return strings.Contains(strings.ToLower(client.ServerMessage(err)), passkeyRequiredMarker)
}

// Attempt sends one join request. A server demand for a passkey is reported
// as JoinPasskeyRequired with a nil error.
func (j *Joiner) Attempt(ctx context.Context, code, passkey string) (JoinOutcome, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return 0, &client.ValidationError{Field: "invite_code", Reason: "please enter an invite code"}
	}
	if !j.acquire(code) {
		return 0, ErrJoinInFlight
	}
	defer j.release(code)

	_, err := j.api.Join(ctx, client.JoinRequest{InviteCode: code, Passkey: strings.TrimSpace(passkey)})
	if err != nil {
		if IsPasskeyRequired(err) {
			slog.Debug("join needs passkey", "code", code)
			return JoinPasskeyRequired, nil
		}
		return 0, fmt.Errorf("participation.Join: %w", err)
	}
	return JoinSucceeded, nil
}

// JoinByCode runs the two-phase handshake: try without a passkey, and if the
// server asks for one, prompt and retry once. On success target (if given) is
// marked joined. A target that is already joined is left alone and no
// request is sent.
func (j *Joiner) JoinByCode(ctx context.Context, code string, prompt PasskeyPrompter, target *domain.Hackathon) (JoinOutcome, error) {
	if target != nil && target.HasJoined {
		return JoinAlreadyMember, nil
	}

	out, err := j.Attempt(ctx, code, "")
	if err != nil {
		return 0, err
	}
	if out == JoinPasskeyRequired {
		if prompt == nil {
			return out, nil
		}
		passkey, err := prompt(ctx)
		if err != nil {
			return out, fmt.Errorf("participation.Join: %w", err)
		}
		if strings.TrimSpace(passkey) == "" {
			return out, ErrCancelled
		}
		out, err = j.Attempt(ctx, code, passkey)
		if err != nil {
			return 0, err
		}
		if out == JoinPasskeyRequired {
			return out, fmt.Errorf("participation.Join: %w", errors.New("the passkey was not accepted"))
		}
	}

	if target != nil {
		MarkJoined(target)
	}
	slog.Info("joined hackathon", "code", strings.TrimSpace(code))
	return out, nil
}

func (j *Joiner) acquire(code string) bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	if _, busy := j.inFlight[code]; busy {
		return false
	}
	j.inFlight[code] = struct{}{}
	return true
}

func (j *Joiner) release(code string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	delete(j.inFlight, code)
}
