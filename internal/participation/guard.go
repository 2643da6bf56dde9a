package participation

import (
	"context"
	"errors"
	"fmt"

	"github.com/naveenspark/hackboard/pkg/client"
	"github.com/naveenspark/hackboard/pkg/domain"
	"github.com/naveenspark/hackboard/pkg/status"
)

// Guard gates access to evaluation results.
type Guard struct {
	api  ResultAPI
	auth Authn
}

// NewGuard creates a Guard.
func NewGuard(api ResultAPI, auth Authn) *Guard {
	return &Guard{api: api, auth: auth}
}

// CanView reports whether the "View Results" affordance applies to h.
func (g *Guard) CanView(h domain.Hackathon) bool {
	return status.CanViewResults(h, g.auth.IsAuthenticated())
}

// FetchResult loads the evaluation for hackathonID. Without a session it
// fails immediately with *client.AuthRequiredError carrying returnTo. Results
// are never cached.
func (g *Guard) FetchResult(ctx context.Context, hackathonID, returnTo string) (*domain.EvaluationResult, error) {
	if !g.auth.IsAuthenticated() {
		return nil, &client.AuthRequiredError{ReturnTo: returnTo}
	}
	r, err := g.api.GetResult(ctx, hackathonID)
	if err != nil {
		if errors.Is(err, client.ErrAuthRequired) {
			return nil, &client.AuthRequiredError{ReturnTo: returnTo}
		}
		return nil, fmt.Errorf("participation.FetchResult: %w", err)
	}
	return r, nil
}
