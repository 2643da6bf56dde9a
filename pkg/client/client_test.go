package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/naveenspark/hackboard/pkg/domain"
)

func TestListHackathons(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/hackathons" {
			http.NotFound(w, r)
			return
		}
		if r.Header.Get("Authorization") != "" {
			t.Errorf("unexpected Authorization header for anonymous client")
		}
		if r.Header.Get("X-Request-ID") == "" {
			t.Errorf("missing X-Request-ID header")
		}
		body := `{"hackathons": [
			{"_id": "1", "title": "AI Innovation Challenge", "start_date": "2025-01-01", "end_date": "2025-01-10"},
			{"_id": "2", "title": "Web Dev Jam", "start_date": "2025-02-01", "end_date": "2025-02-10"}
		]}`
		w.Write([]byte(body)) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	hs, err := c.ListHackathons(context.Background())
	if err != nil {
		t.Fatalf("ListHackathons() error: %v", err)
	}
	if len(hs) != 2 {
		t.Fatalf("got %d hackathons, want 2", len(hs))
	}
	if hs[1].Title != "Web Dev Jam" {
		t.Errorf("hs[1].Title = %q, want %q", hs[1].Title, "Web Dev Jam")
	}
}

func TestListHackathons_InvalidShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"}) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	if _, err := c.ListHackathons(context.Background()); err == nil {
		t.Fatal("expected error for response without hackathons field")
	}
}

func TestGetHackathon_AttachesToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/hackathons/abc" {
			http.NotFound(w, r)
			return
		}
		joined := r.Header.Get("Authorization") == "Bearer test-token"
		json.NewEncoder(w).Encode(map[string]any{ //nolint:errcheck
			"_id":       "abc",
			"title":     "Detail",
			"hasJoined": joined,
		})
	}))
	defer srv.Close()

	c := New(srv.URL, StaticToken("test-token"))
	h, err := c.GetHackathon(context.Background(), "abc")
	if err != nil {
		t.Fatalf("GetHackathon() error: %v", err)
	}
	if !h.HasJoined {
		t.Error("expected hasJoined=true when token is attached")
	}
}

func TestGetHackathon_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "Hackathon not found"}) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	_, err := c.GetHackathon(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
	if got := UserMessage(err, "fallback"); got != "Hackathon not found" {
		t.Errorf("UserMessage = %q, want server message", got)
	}
}

func TestLogin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if req.Password != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"error": "Invalid credentials"}) //nolint:errcheck
			return
		}
		json.NewEncoder(w).Encode(LoginResponse{ //nolint:errcheck
			Token:   "tok-123",
			Student: domain.Student{Name: "Asha", Email: req.Email},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	resp, err := c.Login(context.Background(), LoginRequest{Email: "asha@example.com", Password: "secret"})
	if err != nil {
		t.Fatalf("Login() error: %v", err)
	}
	if resp.Token != "tok-123" || resp.Student.Name != "Asha" {
		t.Errorf("Login() = %+v", resp)
	}

	_, err = c.Login(context.Background(), LoginRequest{Email: "asha@example.com", Password: "wrong"})
	var authErr *AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("error = %v, want *AuthError", err)
	}
	if authErr.Message != "Invalid credentials" {
		t.Errorf("AuthError.Message = %q, want server message", authErr.Message)
	}
	if errors.Is(err, ErrSessionRejected) {
		t.Error("a failed login must not be reported as a rejected session")
	}
}

func TestLogin_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := New(url, nil)
	_, err := c.Login(context.Background(), LoginRequest{Email: "a@b.co", Password: "x"})
	var authErr *AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("error = %v, want *AuthError", err)
	}
}

func TestLogin_ValidationSkipsNetwork(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	tests := []struct {
		name  string
		req   LoginRequest
		field string
	}{
		{"missing email", LoginRequest{Password: "x"}, "email"},
		{"bad email", LoginRequest{Email: "nope", Password: "x"}, "email"},
		{"missing password", LoginRequest{Email: "a@b.co"}, "password"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Login(context.Background(), tt.req)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("error = %v, want *ValidationError", err)
			}
			if verr.Field != tt.field {
				t.Errorf("Field = %q, want %q", verr.Field, tt.field)
			}
		})
	}
	if n := calls.Load(); n != 0 {
		t.Errorf("server saw %d calls, want 0", n)
	}
}

func TestJoin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body) //nolint:errcheck
		if !strings.Contains(string(raw), `"passkey":""`) && !strings.Contains(string(raw), `"passkey":"open-sesame"`) {
			t.Errorf("passkey field missing from body %s", raw)
		}
		var req JoinRequest
		json.Unmarshal(raw, &req) //nolint:errcheck
		switch {
		case req.Passkey == "":
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"error": "Passkey is required for this hackathon"}) //nolint:errcheck
		case req.Passkey == "open-sesame":
			json.NewEncoder(w).Encode(JoinResponse{Success: true, Message: "joined"}) //nolint:errcheck
		}
	}))
	defer srv.Close()

	c := New(srv.URL, StaticToken("tok"))
	_, err := c.Join(context.Background(), JoinRequest{InviteCode: "AI2025"})
	if got := ServerMessage(err); !strings.Contains(got, "Passkey is required") {
		t.Fatalf("ServerMessage = %q, want passkey prompt", got)
	}

	resp, err := c.Join(context.Background(), JoinRequest{InviteCode: "AI2025", Passkey: "open-sesame"})
	if err != nil {
		t.Fatalf("Join() error: %v", err)
	}
	if !resp.Success {
		t.Error("expected success=true")
	}
}

func TestJoin_SuccessFalseIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"success": false, "error": "Invite code expired"}) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL, StaticToken("tok"))
	_, err := c.Join(context.Background(), JoinRequest{InviteCode: "OLD"})
	if err == nil {
		t.Fatal("expected error for success=false")
	}
	if got := UserMessage(err, "Failed to join hackathon."); got != "Invite code expired" {
		t.Errorf("UserMessage = %q", got)
	}
}

func TestProtectedCallsWithoutToken(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	ctx := context.Background()
	if _, err := c.GetResult(ctx, "1"); !errors.Is(err, ErrAuthRequired) {
		t.Errorf("GetResult error = %v, want ErrAuthRequired", err)
	}
	if _, err := c.Join(ctx, JoinRequest{InviteCode: "X"}); !errors.Is(err, ErrAuthRequired) {
		t.Errorf("Join error = %v, want ErrAuthRequired", err)
	}
	if _, err := c.MyHackathons(ctx); !errors.Is(err, ErrAuthRequired) {
		t.Errorf("MyHackathons error = %v, want ErrAuthRequired", err)
	}
	if _, err := c.SubmitText(ctx, TextSubmission{Text: "t", HackathonID: "1"}); !errors.Is(err, ErrAuthRequired) {
		t.Errorf("SubmitText error = %v, want ErrAuthRequired", err)
	}
	if n := calls.Load(); n != 0 {
		t.Errorf("server saw %d calls, want 0", n)
	}
}

func TestSessionRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "token expired"}) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL, StaticToken("stale"))
	_, err := c.MyHackathons(context.Background())
	if !errors.Is(err, ErrSessionRejected) {
		t.Fatalf("error = %v, want ErrSessionRejected", err)
	}
	if !IsStatus(err, http.StatusUnauthorized) {
		t.Error("expected wrapped HTTP 401")
	}
}

func TestSubmitFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(10 << 20); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if got := r.FormValue("hackathon_id"); got != "h1" {
			t.Errorf("hackathon_id = %q, want h1", got)
		}
		f, hdr, err := r.FormFile("file")
		if err != nil {
			t.Errorf("FormFile: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		defer f.Close()
		data, _ := io.ReadAll(f) //nolint:errcheck
		if string(data) != "%PDF-1.4 deck" || hdr.Filename != "deck.pdf" {
			t.Errorf("file = %q (%s)", data, hdr.Filename)
		}
		if ct := hdr.Header.Get("Content-Type"); ct != "application/pdf" {
			t.Errorf("part Content-Type = %q", ct)
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(SubmitResponse{SubmissionID: "sub-9"}) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL, StaticToken("tok"))
	resp, err := c.SubmitFile(context.Background(), "h1", domain.Artifact{
		Kind:     domain.KindDocument,
		Name:     "deck.pdf",
		MIMEType: "application/pdf",
		Data:     []byte("%PDF-1.4 deck"),
	})
	if err != nil {
		t.Fatalf("SubmitFile() error: %v", err)
	}
	if resp.SubmissionID != "sub-9" {
		t.Errorf("SubmissionID = %q, want sub-9", resp.SubmissionID)
	}
}

func TestSubmitText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		var req TextSubmission
		json.NewDecoder(r.Body).Decode(&req) //nolint:errcheck
		if req.Text != "my essay" || req.HackathonID != "h2" {
			t.Errorf("body = %+v", req)
		}
		json.NewEncoder(w).Encode(map[string]string{}) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL, StaticToken("tok"))
	resp, err := c.SubmitText(context.Background(), TextSubmission{Text: "my essay", HackathonID: "h2"})
	if err != nil {
		t.Fatalf("SubmitText() error: %v", err)
	}
	if resp.SubmissionID != "" {
		t.Errorf("SubmissionID = %q, want empty", resp.SubmissionID)
	}
}

func TestGetResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/results/h1" {
			http.NotFound(w, r)
			return
		}
		body := `{
			"evaluation_category": "shortlisted",
			"overall_reason": "Excellent problem-solving approach.",
			"strengths": ["teamwork"],
			"improvement": ["time management"],
			"actionable_steps": ["delegate"],
			"summary": ["strong contender"]
		}`
		w.Write([]byte(body)) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL, StaticToken("tok"))
	res, err := c.GetResult(context.Background(), "h1")
	if err != nil {
		t.Fatalf("GetResult() error: %v", err)
	}
	if res.Category != domain.CategoryShortlisted {
		t.Errorf("Category = %q", res.Category)
	}
	if len(res.Strengths) != 1 || res.Strengths[0] != "teamwork" {
		t.Errorf("Strengths = %v", res.Strengths)
	}
}

func TestHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "boom"}) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	_, err := c.ListHackathons(context.Background())
	if err == nil {
		t.Fatal("expected error for 500 response")
	}
	if got := err.Error(); !strings.Contains(got, "boom") {
		t.Errorf("error = %q, want it to contain 'boom'", got)
	}
}

func TestDoRequest_CancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(5 * time.Second) // slow server
		w.Write([]byte(`{"hackathons": []}`)) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel() // cancel immediately

	if _, err := c.ListHackathons(ctx); err == nil {
		t.Fatal("expected error for canceled context")
	}
}
