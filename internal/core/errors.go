// Package core defines the fundamental types and errors for AgentArena.
package core

import (
	"errors"
	"fmt"
)

// Core errors that can occur across the system
var (
	// Agent errors
	ErrAgentNotFound = errors.New("agent not found")
	ErrAgentExists   = errors.New("agent already exists")

	// Auth errors
	ErrUnauthorized = errors.New("invalid or missing API key")

	// Storage errors
	ErrRecordNotFound  = errors.New("record not found")
	ErrDuplicateRecord = errors.New("duplicate record")
	ErrMigrationFailed = errors.New("migration failed")

	// Achievement errors
	ErrAlreadyUnlocked = errors.New("achievement already unlocked")

	// Validation errors
	ErrInvalidInput    = errors.New("invalid input")
	ErrMissingRequired = errors.New("missing required field")
)

// ValidationError describes a rejected input field. It wraps ErrInvalidInput
// so callers can test with errors.Is while still surfacing a specific message.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Unwrap makes errors.Is(err, ErrInvalidInput) hold for validation errors
func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// Invalid builds a ValidationError for a field
func Invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
