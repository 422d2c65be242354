package shared

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrAuthenticationRequired indicates no valid session for a gated command.
	ErrAuthenticationRequired = errors.New("authentication required")
	// ErrPermissionDenied indicates the actor's role does not grant the command.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrUnknownCommand indicates the command name is not registered at all.
	ErrUnknownCommand = errors.New("not a valid command")
	// ErrNoSession indicates no token file is present.
	ErrNoSession = errors.New("no active session")
	// ErrExpiredToken indicates a well-signed token past its expiry.
	ErrExpiredToken = errors.New("token has expired")
	// ErrInvalidToken indicates a malformed or tampered token.
	ErrInvalidToken = errors.New("invalid token")
	// ErrUnknownIdentity indicates a decoded subject with no matching collaborator.
	ErrUnknownIdentity = errors.New("unknown identity")
	// ErrInvalidCredentials indicates login failure.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNotFound indicates a referenced entity is absent (or role-mismatched).
	ErrNotFound = errors.New("not found")
	// ErrOwnership indicates the actor lacks the required relationship to the target.
	ErrOwnership = errors.New("not owned by you")
	// ErrStateConflict indicates the entity is in the wrong lifecycle state.
	ErrStateConflict = errors.New("conflicting state")
	// ErrUniqueness indicates a duplicate unique key.
	ErrUniqueness = errors.New("duplicate value")
)

// ValidationError reports structural input failures by field.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	names := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		names = append(names, field)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, field := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", field, e.Fields[field]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// NewValidationError builds a single-field validation failure.
func NewValidationError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

// IsValidation reports whether err is a structural validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
