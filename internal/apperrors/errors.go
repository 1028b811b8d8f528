package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotAuthenticated is returned when an operation needing a logged-in session
// runs before Login succeeded or after Logout.
var ErrNotAuthenticated = errors.New("session is not authenticated: call Login first")

// AuthenticationError is returned when the login form is rejected or the
// account lookup that follows it fails.
type AuthenticationError struct {
	StatusCode int
	Err        error
}

// Error implements the error interface.
func (e *AuthenticationError) Error() string {
	switch {
	case e.Err != nil && e.StatusCode != 0:
		return fmt.Sprintf("authentication failed (status %d): %v", e.StatusCode, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("authentication failed: %v", e.Err)
	case e.StatusCode != 0:
		return fmt.Sprintf("authentication failed: login returned status %d", e.StatusCode)
	default:
		return "authentication failed"
	}
}

// Unwrap returns the underlying cause.
func (e *AuthenticationError) Unwrap() error {
	return e.Err
}

// Is allows for error checking with errors.Is().
func (e *AuthenticationError) Is(target error) bool {
	_, ok := target.(*AuthenticationError)
	return ok
}

// ProtocolError is returned when the tracker answers with something that is not
// the expected JSON document (HTML error pages, redirects, truncated bodies).
type ProtocolError struct {
	Action string
	Reason string
	Body   string
	Err    error
}

// Error implements the error interface.
func (e *ProtocolError) Error() string {
	msg := fmt.Sprintf("protocol error on action %q: %s", e.Action, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *ProtocolError) Unwrap() error {
	return e.Err
}

// Is allows for error checking with errors.Is().
func (e *ProtocolError) Is(target error) bool {
	_, ok := target.(*ProtocolError)
	return ok
}

// RequestError is returned when the tracker answered with well-formed JSON whose
// status is not "success". Body holds the raw response for diagnostics.
type RequestError struct {
	Action  string
	Status  string
	Message string
	Body    []byte
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("request %q failed with status %q: %s", e.Action, e.Status, e.Message)
	}
	return fmt.Sprintf("request %q failed with status %q", e.Action, e.Status)
}

// Is allows for error checking with errors.Is().
func (e *RequestError) Is(target error) bool {
	_, ok := target.(*RequestError)
	return ok
}

// ValidationError is returned when a caller-supplied value is outside the
// supported set, before any network call is made.
type ValidationError struct {
	Field string
	Value string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("unsupported %s %q", e.Field, e.Value)
}

// Is allows for error checking with errors.Is().
func (e *ValidationError) Is(target error) bool {
	_, ok := target.(*ValidationError)
	return ok
}

// NewUnsupportedMediaError creates the ValidationError for an unknown media type.
func NewUnsupportedMediaError(media string) *ValidationError {
	return &ValidationError{
		Field: "media type",
		Value: media,
	}
}
