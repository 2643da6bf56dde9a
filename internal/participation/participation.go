// Package participation drives a student through an event: joining by
// invite code, uploading a submission and reaching the published result.
package participation

import (
	"context"
	"errors"
	"log/slog"

	"github.com/naveenspark/hackboard/pkg/client"
	"github.com/naveenspark/hackboard/pkg/domain"
)

var (
	// ErrUploadInFlight rejects a second upload while one is running.
	ErrUploadInFlight = errors.New("an upload is already in progress")
	// ErrJoinInFlight rejects a second join for the same code while one is running.
	ErrJoinInFlight = errors.New("a join for this code is already in progress")
	// ErrCancelled means the user dismissed a prompt.
	ErrCancelled = errors.New("cancelled")
)

// Authn reports whether a session exists. *session.Session satisfies it.
type Authn interface {
	IsAuthenticated() bool
}

// Submitter is the part of the API client the uploader needs.
type Submitter interface {
	SubmitFile(ctx context.Context, hackathonID string, a domain.Artifact) (*client.SubmitResponse, error)
	SubmitText(ctx context.Context, req client.TextSubmission) (*client.SubmitResponse, error)
}

// JoinAPI is the part of the API client the join workflow needs.
type JoinAPI interface {
	Join(ctx context.Context, req client.JoinRequest) (*client.JoinResponse, error)
}

// ResultAPI is the part of the API client the result guard needs.
type ResultAPI interface {
	GetResult(ctx context.Context, hackathonID string) (*domain.EvaluationResult, error)
}

// MarkJoined records a successful join locally.
func MarkJoined(h *domain.Hackathon) {
	h.HasJoined = true
}

// MarkSubmitted records a successful submission locally. An empty ref ID is
// replaced by the placeholder.
func MarkSubmitted(h *domain.Hackathon, ref domain.SubmissionRef) {
	if ref.ID == "" {
		ref.ID = domain.PlaceholderSubmissionID
	}
	h.HasSubmitted = &ref
}

// Reconcile compares an optimistically updated hackathon with a fresh copy
// from the server. The server copy always wins; the bool reports whether the
// participation flags disagreed, which callers treat as a cache invalidation.
func Reconcile(optimistic, fresh domain.Hackathon) (domain.Hackathon, bool) {
	differs := optimistic.HasJoined != fresh.HasJoined ||
		optimistic.Submitted() != fresh.Submitted() ||
		optimistic.IsResultPublished != fresh.IsResultPublished
	if differs {
		slog.Info("local hackathon state disagreed with server",
			"hackathon_id", fresh.ID,
			"local_joined", optimistic.HasJoined, "server_joined", fresh.HasJoined,
			"local_submitted", optimistic.Submitted(), "server_submitted", fresh.Submitted(),
		)
	}
	return fresh, differs
}
