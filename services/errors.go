package services

import "fmt"

// Kind classifies a service error so one central handler can map it to an HTTP
// status without parsing error text.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindAuthentication
	KindAuthorization
	KindConflict
)

// Error is the error type returned across the service boundary.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// ValidationError reports missing or malformed input.
func ValidationError(msg string) *Error { return &Error{Kind: KindValidation, Msg: msg} }

// NotFoundError reports a referenced entity that does not resolve.
func NotFoundError(msg string) *Error { return &Error{Kind: KindNotFound, Msg: msg} }

// AuthenticationError reports bad credentials.
func AuthenticationError(msg string) *Error { return &Error{Kind: KindAuthentication, Msg: msg} }

// AuthorizationError reports access by a principal that does not resolve.
func AuthorizationError(msg string) *Error { return &Error{Kind: KindAuthorization, Msg: msg} }

// ConflictError reports a uniqueness violation such as a taken username.
func ConflictError(msg string) *Error { return &Error{Kind: KindConflict, Msg: msg} }

// InternalError wraps an unexpected store failure. The wrapped error is logged
// server-side and never reaches the client.
func InternalError(msg string, err error) *Error {
	return &Error{Kind: KindInternal, Msg: msg, Err: err}
}
