package authsdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"net/http"
	"slices"
	"strings"

	"github.com/aussiebroadwan/matchday/pkg/httpx"
)

// ErrAuthentication matches, through errors.Is, every failure of an auth
// endpoint call: rejections, non-2xx responses and transport failures.
var ErrAuthentication = errors.New("authentication failed")

// AuthenticationError is a non-2xx response from the auth endpoint. The
// mock server writes the same type, so the message a user sees is the one
// the server chose.
type AuthenticationError struct {
	StatusCode int
	Message    string
	Fields     map[string]string
}

func (e *AuthenticationError) Error() string {
	return e.Message
}

// Is reports true for ErrAuthentication and for another AuthenticationError
// with the same status and message, so predefined values can be compared
// against decoded responses.
func (e *AuthenticationError) Is(target error) bool {
	if target == ErrAuthentication {
		return true
	}
	t, ok := target.(*AuthenticationError)
	return ok && t.StatusCode == e.StatusCode && t.Message == e.Message
}

// WriteError writes e as {"message": ...}.
func (e *AuthenticationError) WriteError(w http.ResponseWriter) {
	httpx.WriteJSON(w, e.StatusCode, ErrorBody{Message: e.Message, Fields: e.Fields})
}

// WithFields returns a copy of e carrying per-field details.
func (e *AuthenticationError) WithFields(fields map[string]string) *AuthenticationError {
	return &AuthenticationError{StatusCode: e.StatusCode, Message: e.Message, Fields: maps.Clone(fields)}
}

func NewAuthenticationError(statusCode int, message string) *AuthenticationError {
	return &AuthenticationError{StatusCode: statusCode, Message: message}
}

var (
	ErrInvalidRequest     = NewAuthenticationError(http.StatusBadRequest, "Invalid request")
	ErrInvalidCredentials = NewAuthenticationError(http.StatusUnauthorized, "Invalid email or password")
	ErrEmailTaken         = NewAuthenticationError(http.StatusConflict, "Email already registered")
	ErrInvalidToken       = NewAuthenticationError(http.StatusUnauthorized, "Invalid or expired token")
	ErrServerError        = NewAuthenticationError(http.StatusInternalServerError, "Internal server error")
	ErrRateLimited        = NewAuthenticationError(http.StatusTooManyRequests, "Too many requests. Please try again later.")

	// ErrMissingUser is a 2xx session response that carried no user.
	ErrMissingUser = NewAuthenticationError(http.StatusBadGateway, "Auth response did not include a user")
)

// NetworkError means the request never produced a response: DNS, refused
// connection, TLS, timeout or cancellation.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: network error: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// Is lets callers that only check for ErrAuthentication treat a transport
// failure like any other failed login.
func (e *NetworkError) Is(target error) bool {
	return target == ErrAuthentication
}

// TokenDecodeError means a session token could not be parsed for its claims.
type TokenDecodeError struct {
	Err error
}

func (e *TokenDecodeError) Error() string {
	return "token decode: " + e.Err.Error()
}

func (e *TokenDecodeError) Unwrap() error { return e.Err }

// ValidationError lists per-field problems found before any request is sent.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := slices.Sorted(maps.Keys(e.Fields))
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// parseErrorResponse turns a non-2xx response into an AuthenticationError,
// falling back to the status text when the body isn't the expected JSON.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var eb ErrorBody
	if err := json.Unmarshal(body, &eb); err == nil && eb.Message != "" {
		return &AuthenticationError{StatusCode: resp.StatusCode, Message: eb.Message, Fields: eb.Fields}
	}

	msg := http.StatusText(resp.StatusCode)
	if msg == "" {
		msg = fmt.Sprintf("HTTP %d", resp.StatusCode)
	}
	return &AuthenticationError{StatusCode: resp.StatusCode, Message: msg}
}
