package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an application error so the HTTP layer can map it to a
// status code without inspecting message strings.
type Kind int

const (
	// KindValidation: malformed or empty input, rejected before any
	// persistence or network call.
	KindValidation Kind = iota
	// KindNotFound: referenced entity absent, or deliberately
	// indistinguishable from access-denied for hidden posts.
	KindNotFound
	// KindAuthorization: the actor does not own the resource.
	KindAuthorization
	// KindConflict: a duplicate of an already-existing relationship.
	KindConflict
	// KindUpstream: the assistant call failed. Callers of the assistant
	// never see this kind; it is absorbed into fallback output.
	KindUpstream
)

// Error is an application error with a classification.
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

func Validation(msg string) *Error    { return &Error{Kind: KindValidation, Msg: msg} }
func NotFound(msg string) *Error      { return &Error{Kind: KindNotFound, Msg: msg} }
func Authorization(msg string) *Error { return &Error{Kind: KindAuthorization, Msg: msg} }
func Conflict(msg string) *Error      { return &Error{Kind: KindConflict, Msg: msg} }

// Upstream wraps a failed external call.
func Upstream(msg string, err error) *Error {
	return &Error{Kind: KindUpstream, Msg: msg, Err: err}
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Kind == kind
}

// HTTPStatus maps an error to the status code the API should respond with.
// Unclassified errors are treated as internal.
func HTTPStatus(err error) int {
	var ae *Error
	if !errors.As(err, &ae) {
		return http.StatusInternalServerError
	}
	switch ae.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindAuthorization:
		return http.StatusForbidden
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
