// Package errors provides the error taxonomy for the PlantDoc client.
package errors

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

// Sentinel errors for common cases
var (
	ErrAuthRequired = errors.New("authentication required")
	ErrUnreachable  = errors.New("service unreachable")
	ErrBadInput     = errors.New("invalid input")
)

// AuthError means an operation needed a credential that is missing or
// was rejected. Terminal for the operation; the user must re-authenticate.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	if e.Message == "" {
		return "authentication required"
	}
	return fmt.Sprintf("authentication required: %s", e.Message)
}

// Is allows comparison with the ErrAuthRequired sentinel
func (e *AuthError) Is(target error) bool {
	if target == ErrAuthRequired {
		return true
	}
	_, ok := target.(*AuthError)
	return ok
}

// NewAuthError creates a new AuthError
func NewAuthError(message string) *AuthError {
	return &AuthError{Message: message}
}

// APIError means the remote accepted the request but answered non-2xx.
// Message carries the best-effort text extracted from the body.
type APIError struct {
	StatusCode int
	Endpoint   string
	Message    string
}

func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("API error [%d] at %s: %s", e.StatusCode, e.Endpoint, e.Message)
	}
	return fmt.Sprintf("API error at %s: %s", e.Endpoint, e.Message)
}

// NewAPIError creates an APIError with an explicit message
func NewAPIError(statusCode int, endpoint, message string) *APIError {
	return &APIError{StatusCode: statusCode, Endpoint: endpoint, Message: message}
}

// NewAPIErrorFromBody creates an APIError, extracting the message from the
// response body with a status-coded fallback.
func NewAPIErrorFromBody(statusCode int, endpoint string, body []byte) *APIError {
	return &APIError{
		StatusCode: statusCode,
		Endpoint:   endpoint,
		Message:    MessageFromBody(statusCode, body),
	}
}

// NetworkError means the request never produced a response. The raw
// transport error is kept for wrapping but the displayed message is fixed.
type NetworkError struct {
	Op       string
	Endpoint string
	Err      error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: could not reach the service", e.Op)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Is allows comparison with the ErrUnreachable sentinel
func (e *NetworkError) Is(target error) bool {
	if target == ErrUnreachable {
		return true
	}
	_, ok := target.(*NetworkError)
	return ok
}

// NewNetworkError creates a new NetworkError
func NewNetworkError(op, endpoint string, err error) *NetworkError {
	return &NetworkError{Op: op, Endpoint: endpoint, Err: err}
}

// InputError means the caller violated a precondition (no file, several
// files, blank message). Rejected synchronously, no request is attempted.
type InputError struct {
	Message string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid input: %s", e.Message)
}

// Is allows comparison with the ErrBadInput sentinel
func (e *InputError) Is(target error) bool {
	if target == ErrBadInput {
		return true
	}
	_, ok := target.(*InputError)
	return ok
}

// NewInputError creates a new InputError
func NewInputError(message string) *InputError {
	return &InputError{Message: message}
}

// ParseError means a 2xx response body could not be interpreted.
type ParseError struct {
	Message string
	Path    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error: %s", e.Message)
}

// NewParseError creates a new ParseError
func NewParseError(message, path string) *ParseError {
	return &ParseError{Message: message, Path: path}
}

// MessageFromBody extracts a human-readable message from an error
// response body. The backend is inconsistent about the field name, so
// several are tried before falling back to a status-coded generic string.
func MessageFromBody(statusCode int, body []byte) string {
	parsed := gjson.ParseBytes(body)
	for _, key := range []string{"error", "detail", "message"} {
		if v := parsed.Get(key); v.Exists() && v.String() != "" {
			return v.String()
		}
	}
	return GenericStatusMessage(statusCode)
}

// GenericStatusMessage maps a status code to a displayable message.
func GenericStatusMessage(statusCode int) string {
	switch statusCode {
	case 400:
		return "the request was rejected"
	case 401, 403:
		return "your session has expired, please log in again"
	case 404:
		return "the requested record was not found"
	case 429:
		return "too many requests, please wait and retry"
	default:
		if statusCode >= 500 {
			return "the service had an internal error"
		}
		return fmt.Sprintf("request failed with status %d", statusCode)
	}
}

// IsAuthError reports whether err is an authentication failure.
func IsAuthError(err error) bool {
	if errors.Is(err, ErrAuthRequired) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 401 || apiErr.StatusCode == 403
	}
	return false
}
