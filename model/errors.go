package model

import "errors"

// Kind is a stable failure category for programmatic handling.
//
// Every ledger failure is a precondition violation reported to the caller;
// none are retryable by the system. Callers should branch on Kind/Code rather
// than matching error strings.
type Kind string

const (
	// KindAuthorization: the caller lacks the required role.
	KindAuthorization Kind = "Authorization"
	// KindNotFound: a referenced entity is absent.
	KindNotFound Kind = "NotFound"
	// KindInvalidInput: amount, deadline or threshold out of domain.
	KindInvalidInput Kind = "InvalidInput"
	// KindStateConflict: the operation is invalid for the current claim
	// status (already processed, already voted, deadline passed or not yet
	// passed).
	KindStateConflict Kind = "StateConflict"
	// KindInternal: invariant breakage inside the ledger itself.
	KindInternal Kind = "Internal"
)

// Code is a stable machine-readable identifier for the violated precondition.
type Code string

const (
	CodeNotAuthorized     Code = "NOT_AUTHORIZED"
	CodeNotFound          Code = "NOT_FOUND"
	CodeInvalidImpactType Code = "INVALID_IMPACT_TYPE"
	CodeInvalidAmount     Code = "INVALID_AMOUNT"
	CodeInvalidDeadline   Code = "INVALID_DEADLINE"
	CodeInvalidThreshold  Code = "INVALID_THRESHOLD"
	CodeInvalidIdentity   Code = "INVALID_IDENTITY"
	CodeInvalidID         Code = "INVALID_ID"
	CodeNotValidator      Code = "NOT_VALIDATOR"
	CodeAlreadyProcessed  Code = "ALREADY_PROCESSED"
	CodeAlreadyVoted      Code = "ALREADY_VOTED"
	CodeExpired           Code = "EXPIRED"
	CodeNotYetExpired     Code = "NOT_YET_EXPIRED"
	CodeInternal          Code = "INTERNAL"
)

// Error is the ledger's structured error type.
//
// Message is intended for humans; do not match on it.
type Error struct {
	Kind    Kind
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// NewError returns a structured ledger error.
func NewError(kind Kind, code Code, msg string) error {
	return &Error{Kind: kind, Code: code, Message: msg}
}

// WrapError attaches a cause to a structured ledger error.
func WrapError(kind Kind, code Code, msg string, cause error) error {
	if cause == nil {
		return NewError(kind, code, msg)
	}
	return &Error{Kind: kind, Code: code, Message: msg, Cause: cause}
}

// IsKind reports whether err is (or wraps) an *Error with the given Kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}

// CodeOf returns the stable Code for a structured error, or "" if unknown.
func CodeOf(err error) Code {
	var e *Error
	if !errors.As(err, &e) {
		return ""
	}
	return e.Code
}
