package domain

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
// Implementing this interface enables extensible error handling in the
// boundary layer without the handlers knowing every concrete error type.
type HTTPError interface {
	error
	StatusCode() int
}

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound             = errors.New("not found")
	ErrConflict             = errors.New("already exists")
	ErrValidation           = errors.New("validation failed")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrForbidden            = errors.New("forbidden")
	ErrLockedField          = errors.New("field is locked")
	ErrVersioningNotAllowed = errors.New("versioning not allowed")
)

// NotFoundError indicates a referenced document or revision does not exist,
// or a revision id does not belong to the given document.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string        { return e.Message }
func (e *NotFoundError) StatusCode() int      { return http.StatusNotFound }
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// FieldError describes a single failing field in a validation pass.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries every failing field of a validation pass.
// Validation is exhaustive: callers accumulate all problems before
// returning, never just the first one.
type ValidationError struct {
	Fields []FieldError
}

// Add appends a field error. Safe on the zero value.
func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// Merge appends all field errors from another ValidationError.
func (e *ValidationError) Merge(other *ValidationError) {
	if other != nil {
		e.Fields = append(e.Fields, other.Fields...)
	}
}

// HasErrors reports whether any field error was recorded.
func (e *ValidationError) HasErrors() bool { return len(e.Fields) > 0 }

// Err returns the error itself when fields were recorded, nil otherwise.
// Returning a plain error avoids the typed-nil-in-interface trap.
func (e *ValidationError) Err() error {
	if e.HasErrors() {
		return e
	}
	return nil
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = fmt.Sprintf("%s: %s", f.Field, f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) StatusCode() int      { return http.StatusBadRequest }
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// LockedFieldError indicates an attempt to change an immutable field on a
// published document that has a current revision. It names every offending
// field.
type LockedFieldError struct {
	Fields []string
}

func (e *LockedFieldError) Error() string {
	return fmt.Sprintf("classification is locked on a published document: %s", strings.Join(e.Fields, ", "))
}

func (e *LockedFieldError) StatusCode() int      { return http.StatusConflict }
func (e *LockedFieldError) Is(target error) bool { return target == ErrLockedField }

// VersioningNotAllowedError indicates an attempt to add a further revision to
// a classification that forbids versioning. The caller should create a new
// document instead.
type VersioningNotAllowedError struct {
	DocumentID string
}

func (e *VersioningNotAllowedError) Error() string {
	return fmt.Sprintf("document %s: classification does not allow additional revisions", e.DocumentID)
}

func (e *VersioningNotAllowedError) StatusCode() int { return http.StatusConflict }
func (e *VersioningNotAllowedError) Is(target error) bool {
	return target == ErrVersioningNotAllowed
}

// DuplicateDocumentError indicates a creation collided with an existing
// equivalent document. CanVersion tells the caller whether the duplicate can
// be resolved by adding a revision to the existing document.
type DuplicateDocumentError struct {
	ExistingDocumentID string
	CanVersion         bool
}

func (e *DuplicateDocumentError) Error() string {
	if e.CanVersion {
		return fmt.Sprintf("an equivalent document already exists (%s); add a revision to it instead", e.ExistingDocumentID)
	}
	return fmt.Sprintf("an equivalent document already exists (%s) and its classification does not allow revisions", e.ExistingDocumentID)
}

func (e *DuplicateDocumentError) StatusCode() int      { return http.StatusConflict }
func (e *DuplicateDocumentError) Is(target error) bool { return target == ErrConflict }

// ConflictError represents a state conflict other than a duplicate, e.g.
// deleting a document that was ever published or publishing from a
// non-draft status.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string        { return e.Message }
func (e *ConflictError) StatusCode() int      { return http.StatusConflict }
func (e *ConflictError) Is(target error) bool { return target == ErrConflict }

// AuthorizationError indicates a privileged transition was attempted without
// the required role.
type AuthorizationError struct {
	Actor string
	Role  string
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("actor %s lacks required role %q", e.Actor, e.Role)
}

func (e *AuthorizationError) StatusCode() int      { return http.StatusForbidden }
func (e *AuthorizationError) Is(target error) bool { return target == ErrForbidden }
