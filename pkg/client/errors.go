package client

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrAuthRequired means the operation needs a session and none exists.
	ErrAuthRequired = errors.New("sign in required")
	// ErrNotFound matches 404 responses via errors.Is.
	ErrNotFound = errors.New("not found")
	// ErrSessionRejected means the server refused the stored token. The
	// session must be torn down and the user asked to sign in again.
	ErrSessionRejected = errors.New("session rejected by server")
)

// HTTPError represents a non-2xx HTTP response from the API.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// Is lets errors.Is(err, ErrNotFound) match 404 responses.
func (e *HTTPError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// IsStatus returns true if err (or any wrapped error) is an HTTPError with the given status code.
func IsStatus(err error, code int) bool {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == code
	}
	return false
}

// ServerMessage returns the message the API sent with a failed response, if any.
func ServerMessage(err error) string {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Message
	}
	return ""
}

// AuthRequiredError carries where the user was headed so the sign-in flow can
// return there afterwards.
type AuthRequiredError struct {
	ReturnTo string
}

func (e *AuthRequiredError) Error() string {
	if e.ReturnTo == "" {
		return ErrAuthRequired.Error()
	}
	return fmt.Sprintf("%s (return to %s)", ErrAuthRequired, e.ReturnTo)
}

func (e *AuthRequiredError) Unwrap() error { return ErrAuthRequired }

// AuthError is a rejected login or registration, or a transport failure
// while attempting one.
type AuthError struct {
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("authentication failed: %s: %v", e.Message, e.Err)
	}
	return "authentication failed: " + e.Message
}

func (e *AuthError) Unwrap() error { return e.Err }

// ValidationError is client-detectable bad input. No request is sent.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return e.Field + ": " + e.Reason
}

var validate = newValidator()

// newValidator reports field names by their JSON tag so messages match the
// API's vocabulary.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks v's struct tags and returns the first failure as a
// *ValidationError.
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return &ValidationError{Field: fe.Field(), Reason: reasonFor(fe)}
	}
	return &ValidationError{Reason: err.Error()}
}

func reasonFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	default:
		return "is invalid"
	}
}

// UserMessage converts err into text fit for a notification: validation
// reasons and server messages verbatim, otherwise the fallback.
func UserMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Error()
	}
	if errors.Is(err, ErrSessionRejected) {
		return "your session has expired, please sign in again"
	}
	if errors.Is(err, ErrAuthRequired) {
		return "please sign in to continue"
	}
	var authErr *AuthError
	if errors.As(err, &authErr) && authErr.Message != "" {
		return authErr.Message
	}
	if msg := strings.TrimSpace(ServerMessage(err)); msg != "" {
		return msg
	}
	return fallback
}
