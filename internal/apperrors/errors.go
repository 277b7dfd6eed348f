// Package apperrors defines the error taxonomy shared by all services.
// Every failure a handler can surface is classified by a Kind, which the
// HTTP layer maps to a status code in exactly one place.
package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies an application error.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindConflict
	KindNotFound
	KindAuthentication
	KindAuthorization
	KindInvalidState
	KindInfrastructure
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not_found"
	case KindAuthentication:
		return "authentication"
	case KindAuthorization:
		return "authorization"
	case KindInvalidState:
		return "invalid_state"
	case KindInfrastructure:
		return "infrastructure"
	default:
		return "unknown"
	}
}

// Error is the concrete error type carried across service boundaries.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Is lets errors.Is match two *Error values by Kind and Message,
// so sentinel errors below behave like ordinary sentinels.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind && (t.Message == "" || t.Message == e.Message)
}

func newError(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// Validation reports invalid caller input.
func Validation(msg string) *Error { return newError(KindValidation, msg) }

// Conflict reports a uniqueness violation.
func Conflict(msg string) *Error { return newError(KindConflict, msg) }

// NotFound reports an absent entity.
func NotFound(msg string) *Error { return newError(KindNotFound, msg) }

// Authentication reports a failed or missing credential.
func Authentication(msg string) *Error { return newError(KindAuthentication, msg) }

// Authorization reports an insufficient-permission failure. The message is
// deliberately generic so callers cannot probe for resource existence.
func Authorization() *Error { return newError(KindAuthorization, "access denied") }

// InvalidState reports an operation applied to an entity in the wrong state.
func InvalidState(msg string) *Error { return newError(KindInvalidState, msg) }

// Infrastructure wraps a storage or configuration failure.
func Infrastructure(msg string, err error) *Error {
	return &Error{Kind: KindInfrastructure, Message: msg, Err: err}
}

// Sentinels used throughout the services.
var (
	ErrEmailTaken          = Conflict("email already registered")
	ErrRoomNameTaken       = Conflict("room name already taken")
	ErrDuplicateMembership = Conflict("identity is already a participant of this room")

	ErrUserNotFound       = NotFound("user not found")
	ErrRoomNotFound       = NotFound("room not found")
	ErrMembershipNotFound = NotFound("membership not found")
	ErrMessageNotFound    = NotFound("message not found")

	ErrMessageDeleted    = InvalidState("message has been deleted")
	ErrMessageNotDeleted = InvalidState("message is not deleted")

	ErrInvalidCredentials = Authentication("invalid credentials")
)

// KindOf extracts the Kind from err, or KindUnknown for foreign errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// MessageOf returns the caller-safe message for err. Foreign errors get a
// generic message so internal detail never leaks to clients.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "internal server error"
}
