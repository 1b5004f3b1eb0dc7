package input

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes input errors.
type ErrorCode string

const (
	// ErrCodeUnknownDomain indicates a tick domain outside Presentation/Simulation.
	// This is a programmer error and is reported immediately.
	ErrCodeUnknownDomain ErrorCode = "UNKNOWN_DOMAIN"

	// ErrCodeKindCollision indicates a name already used as a digital action
	// was scheduled as an analog channel, or vice versa.
	ErrCodeKindCollision ErrorCode = "KIND_COLLISION"

	// ErrCodeEmptyAction indicates an empty action or channel name.
	ErrCodeEmptyAction ErrorCode = "EMPTY_ACTION"
)

// Error represents misuse of an input provider detected at call time.
//
// Querying an unknown action is never an error; absence reads as the
// documented default. Error is only returned for programmer mistakes.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// Action is the action or channel name involved, if any.
	Action string

	// Domain is the domain name involved, if any.
	Domain string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Action != "" && e.Domain != "" {
		return fmt.Sprintf("%s: %s (action=%s, domain=%s)", e.Code, e.Message, e.Action, e.Domain)
	}
	if e.Action != "" {
		return fmt.Sprintf("%s: %s (action=%s)", e.Code, e.Message, e.Action)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsUnknownDomain returns true if err is an UNKNOWN_DOMAIN error.
// Uses errors.As to handle wrapped errors.
func IsUnknownDomain(err error) bool {
	return hasCode(err, ErrCodeUnknownDomain)
}

// IsKindCollision returns true if err is a KIND_COLLISION error.
func IsKindCollision(err error) bool {
	return hasCode(err, ErrCodeKindCollision)
}

// IsEmptyAction returns true if err is an EMPTY_ACTION error.
func IsEmptyAction(err error) bool {
	return hasCode(err, ErrCodeEmptyAction)
}

func hasCode(err error, code ErrorCode) bool {
	var ie *Error
	if errors.As(err, &ie) {
		return ie.Code == code
	}
	return false
}

// NewUnknownDomainError creates an Error for an undefined tick domain.
func NewUnknownDomainError(domain string) *Error {
	return &Error{
		Code:    ErrCodeUnknownDomain,
		Message: fmt.Sprintf("undefined tick domain %q", domain),
		Domain:  domain,
	}
}

// NewKindCollisionError creates an Error for a digital/analog name clash.
func NewKindCollisionError(action string, d Domain, existing, requested string) *Error {
	return &Error{
		Code:    ErrCodeKindCollision,
		Message: fmt.Sprintf("name is registered as %s, cannot schedule as %s", existing, requested),
		Action:  action,
		Domain:  d.String(),
	}
}

// NewEmptyActionError creates an Error for an empty action name.
func NewEmptyActionError() *Error {
	return &Error{
		Code:    ErrCodeEmptyAction,
		Message: "action name must not be empty",
	}
}
