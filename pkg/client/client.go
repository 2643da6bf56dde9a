package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/naveenspark/hackboard/pkg/domain"
)

// TokenSource supplies the current session token, or "" when signed out.
// It is consulted on every request so a logout takes effect immediately.
type TokenSource interface {
	CurrentToken() string
}

// StaticToken is a fixed TokenSource.
type StaticToken string

// CurrentToken implements TokenSource.
func (t StaticToken) CurrentToken() string { return string(t) }

// Client is the hackathon API client.
type Client struct {
	baseURL    string
	tokens     TokenSource
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the transport-level timeout. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// New creates a new API client. tokens may be nil for anonymous use.
func New(baseURL string, tokens TokenSource, opts ...Option) *Client {
	if tokens == nil {
		tokens = StaticToken("")
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

// LoginRequest is the payload for POST /login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse is the successful login body.
type LoginResponse struct {
	Token   string         `json:"token"`
	Student domain.Student `json:"student"`
}

// RegisterRequest is the payload for POST /register.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Grade    string `json:"grade" validate:"required"`
	District string `json:"district" validate:"required"`
	State    string `json:"state" validate:"required"`
}

// RegisterResponse is the successful registration body.
type RegisterResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Student *domain.Student `json:"student,omitempty"`
}

// JoinRequest is the payload for POST /join. Passkey is always sent, empty
// when not yet known.
type JoinRequest struct {
	InviteCode string `json:"invite_code" validate:"required"`
	Passkey    string `json:"passkey"`
}

// JoinResponse is the body of a join attempt.
type JoinResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// TextSubmission is the JSON payload for text submissions.
type TextSubmission struct {
	Text        string `json:"text" validate:"required"`
	HackathonID string `json:"hackathon_id" validate:"required"`
}

// SubmitResponse is the body returned by POST /submit.
type SubmitResponse struct {
	SubmissionID string `json:"submissionId"`
}

// Login exchanges credentials for a session token. Any failure, including
// transport errors, is returned as *AuthError.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	if err := Validate(req); err != nil {
		return nil, fmt.Errorf("client.Login: %w", err)
	}
	var resp LoginResponse
	if err := c.send(ctx, http.MethodPost, "/login", jsonBody(req), &resp, false); err != nil {
		return nil, fmt.Errorf("client.Login: %w", authFailure(err, "invalid email or password"))
	}
	if resp.Token == "" {
		slog.Warn("login response carried no token", "email", req.Email)
		return nil, fmt.Errorf("client.Login: %w", &AuthError{Message: "server returned no session token"})
	}
	return &resp, nil
}

// Register creates a student account. It does not sign the student in.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	if err := Validate(req); err != nil {
		return nil, fmt.Errorf("client.Register: %w", err)
	}
	var resp RegisterResponse
	if err := c.send(ctx, http.MethodPost, "/register", jsonBody(req), &resp, false); err != nil {
		return nil, fmt.Errorf("client.Register: %w", authFailure(err, "registration failed"))
	}
	return &resp, nil
}

// ListHackathons returns every hackathon. A token is attached when present so
// the participation flags are filled in.
func (c *Client) ListHackathons(ctx context.Context) ([]domain.Hackathon, error) {
	hs, err := c.listFrom(ctx, "/hackathons", false)
	if err != nil {
		return nil, fmt.Errorf("client.ListHackathons: %w", err)
	}
	return hs, nil
}

// MyHackathons returns the hackathons the signed-in student has joined.
func (c *Client) MyHackathons(ctx context.Context) ([]domain.Hackathon, error) {
	hs, err := c.listFrom(ctx, "/myhackathons", true)
	if err != nil {
		return nil, fmt.Errorf("client.MyHackathons: %w", err)
	}
	return hs, nil
}

func (c *Client) listFrom(ctx context.Context, path string, auth bool) ([]domain.Hackathon, error) {
	var env struct {
		Hackathons *[]domain.Hackathon `json:"hackathons"`
	}
	if err := c.send(ctx, http.MethodGet, path, nil, &env, auth); err != nil {
		return nil, err
	}
	if env.Hackathons == nil {
		slog.Warn("unexpected list response shape", "path", path)
		return nil, errors.New("invalid data format: missing hackathons")
	}
	return *env.Hackathons, nil
}

// GetHackathon fetches a single hackathon by ID.
func (c *Client) GetHackathon(ctx context.Context, id string) (*domain.Hackathon, error) {
	var h domain.Hackathon
	if err := c.send(ctx, http.MethodGet, "/hackathons/"+url.PathEscape(id), nil, &h, false); err != nil {
		return nil, fmt.Errorf("client.GetHackathon: %w", err)
	}
	return &h, nil
}

// Join sends one join attempt. A 2xx body with success=false is reported as
// an *HTTPError carrying the server's message so callers can branch on it.
func (c *Client) Join(ctx context.Context, req JoinRequest) (*JoinResponse, error) {
	if err := Validate(req); err != nil {
		return nil, fmt.Errorf("client.Join: %w", err)
	}
	var resp JoinResponse
	if err := c.send(ctx, http.MethodPost, "/join", jsonBody(req), &resp, true); err != nil {
		return nil, fmt.Errorf("client.Join: %w", err)
	}
	if !resp.Success {
		msg := firstNonEmpty(resp.Error, resp.Message)
		return &resp, fmt.Errorf("client.Join: %w", &HTTPError{StatusCode: http.StatusOK, Message: msg})
	}
	return &resp, nil
}

// SubmitFile uploads a binary artifact as multipart form data.
func (c *Client) SubmitFile(ctx context.Context, hackathonID string, a domain.Artifact) (*SubmitResponse, error) {
	if hackathonID == "" {
		return nil, fmt.Errorf("client.SubmitFile: %w", &ValidationError{Field: "hackathon_id", Reason: "is required"})
	}
	if len(a.Data) == 0 {
		return nil, fmt.Errorf("client.SubmitFile: %w", &ValidationError{Field: "file", Reason: "is empty"})
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	hdr := make(textproto.MIMEHeader)
	hdr.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, a.Name))
	mimeType := a.MIMEType
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	hdr.Set("Content-Type", mimeType)
	part, err := mw.CreatePart(hdr)
	if err != nil {
		return nil, fmt.Errorf("client.SubmitFile: create part: %w", err)
	}
	if _, err := part.Write(a.Data); err != nil {
		return nil, fmt.Errorf("client.SubmitFile: write part: %w", err)
	}
	if err := mw.WriteField("hackathon_id", hackathonID); err != nil {
		return nil, fmt.Errorf("client.SubmitFile: write field: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("client.SubmitFile: close multipart: %w", err)
	}

	var resp SubmitResponse
	body := requestBody{reader: &buf, contentType: mw.FormDataContentType()}
	if err := c.send(ctx, http.MethodPost, "/submit", &body, &resp, true); err != nil {
		return nil, fmt.Errorf("client.SubmitFile: %w", err)
	}
	return &resp, nil
}

// SubmitText submits a text answer as JSON.
func (c *Client) SubmitText(ctx context.Context, req TextSubmission) (*SubmitResponse, error) {
	if err := Validate(req); err != nil {
		return nil, fmt.Errorf("client.SubmitText: %w", err)
	}
	var resp SubmitResponse
	if err := c.send(ctx, http.MethodPost, "/submit", jsonBody(req), &resp, true); err != nil {
		return nil, fmt.Errorf("client.SubmitText: %w", err)
	}
	return &resp, nil
}

// GetResult fetches the published evaluation for the caller's submission.
func (c *Client) GetResult(ctx context.Context, hackathonID string) (*domain.EvaluationResult, error) {
	var r domain.EvaluationResult
	if err := c.send(ctx, http.MethodGet, "/results/"+url.PathEscape(hackathonID), nil, &r, true); err != nil {
		return nil, fmt.Errorf("client.GetResult: %w", err)
	}
	if !r.Category.Valid() {
		slog.Warn("unknown evaluation category", "hackathon_id", hackathonID, "category", string(r.Category))
	}
	return &r, nil
}

type requestBody struct {
	reader      io.Reader
	contentType string
	err         error
}

func jsonBody(v any) *requestBody {
	data, err := json.Marshal(v)
	if err != nil {
		return &requestBody{err: fmt.Errorf("marshal body: %w", err)}
	}
	return &requestBody{reader: bytes.NewReader(data), contentType: "application/json"}
}

// send performs one request. When auth is set the call fails with
// ErrAuthRequired before touching the network if no token is available.
func (c *Client) send(ctx context.Context, method, path string, body *requestBody, out any, auth bool) error {
	token := c.tokens.CurrentToken()
	if auth && token == "" {
		return ErrAuthRequired
	}

	var reqBody io.Reader
	if body != nil {
		if body.err != nil {
			return body.err
		}
		reqBody = body.reader
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", body.contentType)
	}
	req.Header.Set("Accept", "application/json")
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)
	// net/http drops Authorization on redirects off the API host.
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Debug("api request failed", "method", method, "path", path, "request_id", requestID, "error", err)
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	slog.Debug("api request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"request_id", requestID,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode >= 300 {
		httpErr := readHTTPError(resp)
		if resp.StatusCode == http.StatusUnauthorized && token != "" {
			return fmt.Errorf("%w: %w", ErrSessionRejected, httpErr)
		}
		return httpErr
	}

	if out != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
			slog.Warn("undecodable response", "method", method, "path", path, "error", err)
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func readHTTPError(resp *http.Response) *HTTPError {
	respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB max error body
	if readErr != nil {
		return &HTTPError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("failed to read body: %v", readErr)}
	}
	var apiErr struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if json.Unmarshal(respBody, &apiErr) == nil {
		if msg := firstNonEmpty(apiErr.Error, apiErr.Message); msg != "" {
			return &HTTPError{StatusCode: resp.StatusCode, Message: msg}
		}
	}
	return &HTTPError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(respBody))}
}

// authFailure converts a login/register failure into *AuthError, keeping the
// server's wording when it sent one.
func authFailure(err error, fallback string) error {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return err
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return &AuthError{Message: firstNonEmpty(httpErr.Message, fallback), Err: err}
	}
	return &AuthError{Message: "could not reach the server", Err: err}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
