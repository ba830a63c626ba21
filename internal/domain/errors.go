package domain

import "fmt"

// ValidationError rejects bad input: non-positive amounts, unknown payment
// modes, payments exceeding the remaining balance, and the like.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Reason
}

func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// NotFoundError reports a missing entity.
type NotFoundError struct {
	Entity string
	Ref    string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.Ref)
}

// StateTransitionError reports an illegal booking status transition,
// identifying both the current and the requested status.
type StateTransitionError struct {
	From BookingStatus
	To   BookingStatus
}

func (e *StateTransitionError) Error() string {
	return fmt.Sprintf("illegal transition from %s to %s", e.From, e.To)
}

// ConflictError is returned when a conditional write loses an optimistic
// concurrency race. The caller must re-read and retry; the write is never
// retried server-side.
type ConflictError struct {
	Entity string
	Ref    string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s %s was modified concurrently, retry with fresh data", e.Entity, e.Ref)
}

// DispatchError wraps a failure from the external messaging collaborator.
type DispatchError struct {
	Channel string
	Err     error
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("%s dispatch failed: %v", e.Channel, e.Err)
}

func (e *DispatchError) Unwrap() error {
	return e.Err
}

// ConfigError reports a missing or malformed setting. It aborts the run
// that needed the setting rather than being papered over with a guess.
type ConfigError struct {
	Key    string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid setting %s: %s", e.Key, e.Reason)
}
