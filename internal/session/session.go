// Package session owns the process-wide credential: the opaque API token and
// the cached student profile.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/naveenspark/hackboard/pkg/client"
	"github.com/naveenspark/hackboard/pkg/domain"
)

// DefaultTTL is how long a persisted session is kept.
const DefaultTTL = 7 * 24 * time.Hour

// Authenticator exchanges credentials for a token. *client.Client satisfies it.
type Authenticator interface {
	Login(ctx context.Context, req client.LoginRequest) (*client.LoginResponse, error)
}

// Session is the credential service. It is safe for concurrent use and
// implements client.TokenSource.
type Session struct {
	mu       sync.RWMutex
	store    Store
	ttl      time.Duration
	now      func() time.Time
	override string

	token   string
	profile *domain.Student
	hooks   []func()
}

// Option configures a Session.
type Option func(*Session)

// WithTTL sets the retention of a persisted session.
func WithTTL(d time.Duration) Option {
	return func(s *Session) {
		if d > 0 {
			s.ttl = d
		}
	}
}

// WithTokenOverride makes token take precedence over the persisted one.
func WithTokenOverride(token string) Option {
	return func(s *Session) { s.override = strings.TrimSpace(token) }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// New creates a session over store. Call Init before use.
func New(store Store, opts ...Option) *Session {
	s := &Session{store: store, ttl: DefaultTTL, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Init reads the persisted record. Precedence for the token: override, then
// file, then none.
func (s *Session) Init() error {
	rec, err := s.store.Load()
	if err != nil {
		return fmt.Errorf("session.Init: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = rec.Token
	s.profile = rec.Student
	if s.override != "" {
		s.token = s.override
	}
	slog.Debug("session initialised", "authenticated", s.token != "", "override", s.override != "")
	return nil
}

// OnTeardown registers fn to run whenever the session is torn down, so
// derived caches can be dropped with it.
func (s *Session) OnTeardown(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hooks = append(s.hooks, fn)
}

// Teardown forgets the in-memory credential and runs the teardown hooks.
// The persisted record is left alone; Logout removes it.
func (s *Session) Teardown() {
	s.mu.Lock()
	s.token = ""
	s.profile = nil
	s.override = ""
	hooks := append([]func(){}, s.hooks...)
	s.mu.Unlock()

	for _, fn := range hooks {
		fn()
	}
}

// Login authenticates and persists the new session. On any failure nothing
// is persisted and the previous state is kept.
func (s *Session) Login(ctx context.Context, auth Authenticator, email, password string) (*domain.Student, error) {
	req := client.LoginRequest{Email: strings.TrimSpace(email), Password: password}
	if err := client.Validate(req); err != nil {
		return nil, fmt.Errorf("session.Login: %w", err)
	}

	resp, err := auth.Login(ctx, req)
	if err != nil {
		var authErr *client.AuthError
		var verr *client.ValidationError
		if !errors.As(err, &authErr) && !errors.As(err, &verr) {
			err = &client.AuthError{Message: "could not sign in", Err: err}
		}
		return nil, fmt.Errorf("session.Login: %w", err)
	}
	if resp == nil || resp.Token == "" {
		return nil, fmt.Errorf("session.Login: %w", &client.AuthError{Message: "no token in response"})
	}

	now := s.now()
	student := resp.Student
	rec := Record{Token: resp.Token, Student: &student, SavedAt: now, ExpiresAt: now.Add(s.ttl)}
	if err := s.store.Save(rec); err != nil {
		return nil, fmt.Errorf("session.Login: %w", err)
	}

	s.mu.Lock()
	s.token = rec.Token
	s.profile = rec.Student
	s.override = ""
	s.mu.Unlock()

	slog.Info("signed in", "student", student.ID)
	return &student, nil
}

// Logout clears the token and cached profile, in memory and on disk. It is
// idempotent.
func (s *Session) Logout() error {
	s.Teardown()
	if err := s.store.Clear(); err != nil {
		return fmt.Errorf("session.Logout: %w", err)
	}
	return nil
}

// IsAuthenticated reports whether a non-empty token is held.
func (s *Session) IsAuthenticated() bool {
	return s.CurrentToken() != ""
}

// CurrentToken returns the token, or "" when signed out.
func (s *Session) CurrentToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Profile returns the cached student, if one is known.
func (s *Session) Profile() (domain.Student, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.profile == nil {
		return domain.Student{}, false
	}
	return *s.profile, true
}
