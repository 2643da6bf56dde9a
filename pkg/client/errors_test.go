package client

import (
	"errors"
	"fmt"
	"testing"
)

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"validation", fmt.Errorf("x: %w", &ValidationError{Field: "email", Reason: "is required"}), "email: is required"},
		{"session rejected", fmt.Errorf("%w: %w", ErrSessionRejected, &HTTPError{StatusCode: 401, Message: "jwt expired"}), "your session has expired, please sign in again"},
		{"auth required", &AuthRequiredError{ReturnTo: "/my-hackathons"}, "please sign in to continue"},
		{"auth error", &AuthError{Message: "Invalid credentials"}, "Invalid credentials"},
		{"server message", fmt.Errorf("x: %w", &HTTPError{StatusCode: 400, Message: "Invalid invite code"}), "Invalid invite code"},
		{"blank server message", &HTTPError{StatusCode: 500, Message: "  "}, "fallback"},
		{"transport", errors.New("dial tcp: refused"), "fallback"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err, "fallback"); got != tt.want {
				t.Errorf("UserMessage = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAuthRequiredError(t *testing.T) {
	err := fmt.Errorf("participation.FetchResult: %w", &AuthRequiredError{ReturnTo: "/view-result/h1"})
	if !errors.Is(err, ErrAuthRequired) {
		t.Error("AuthRequiredError should match ErrAuthRequired")
	}
	var are *AuthRequiredError
	if !errors.As(err, &are) || are.ReturnTo != "/view-result/h1" {
		t.Errorf("ReturnTo lost: %+v", are)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		v         any
		wantField string
	}{
		{"ok", LoginRequest{Email: "a@b.co", Password: "pw"}, ""},
		{"bad email", LoginRequest{Email: "nope", Password: "pw"}, "email"},
		{"missing password", LoginRequest{Email: "a@b.co"}, "password"},
		{"missing invite code", JoinRequest{}, "invite_code"},
		{"missing district", RegisterRequest{Name: "A", Email: "a@b.co", Password: "p", Grade: "9", State: "KL"}, "district"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.v)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("Validate: %v", err)
				}
				return
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("err = %v, want ValidationError", err)
			}
			if verr.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", verr.Field, tt.wantField)
			}
		})
	}
}

func TestHTTPErrorIsNotFound(t *testing.T) {
	if !errors.Is(fmt.Errorf("x: %w", &HTTPError{StatusCode: 404}), ErrNotFound) {
		t.Error("404 should match ErrNotFound")
	}
	if errors.Is(&HTTPError{StatusCode: 500}, ErrNotFound) {
		t.Error("500 should not match ErrNotFound")
	}
	if !IsStatus(fmt.Errorf("x: %w", &HTTPError{StatusCode: 403}), 403) {
		t.Error("IsStatus should see through wrapping")
	}
}
