// Package apperrors provides sentinel and custom error types for the application.
package apperrors

// ErrNotFound represents a "not found" error.
// Use when a requested resource doesn't exist.
var ErrNotFound = &NotFoundError{}

// NotFoundError is a sentinel error for resources that are not found.
type NotFoundError struct {
	Resource string
	Message  string
}

// NewNotFoundError creates a new NotFoundError with a custom message.
func NewNotFoundError(resource, message string) *NotFoundError {
	return &NotFoundError{
		Resource: resource,
		Message:  message,
	}
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	if e.Message != "" {
		return e.Message
	}

	if e.Resource != "" {
		return e.Resource + " not found"
	}

	return "resource not found"
}

// Is implements the error interface for error comparison.
func (e *NotFoundError) Is(target error) bool {
	_, ok := target.(*NotFoundError)

	return ok
}

// ErrValidation represents a validation error.
// Use when client input fails validation.
var ErrValidation = &ValidationError{}

// ValidationError is a sentinel error for validation failures.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError creates a new ValidationError with a custom message.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}

	if e.Field != "" {
		return "validation failed for field: " + e.Field
	}

	return "validation error"
}

// Is implements the error interface for error comparison.
func (e *ValidationError) Is(target error) bool {
	_, ok := target.(*ValidationError)

	return ok
}

// ErrEmbedding is the sentinel for embedding computation failures
// (model server unreachable, malformed response). Retryable infrastructure
// error, not a data error.
var ErrEmbedding = &EmbeddingError{}

// EmbeddingError wraps a failure from the embedding model.
type EmbeddingError struct {
	Message string
	Err     error
}

// NewEmbeddingError creates an EmbeddingError wrapping the underlying cause.
func NewEmbeddingError(message string, err error) *EmbeddingError {
	return &EmbeddingError{Message: message, Err: err}
}

// Error implements the error interface.
func (e *EmbeddingError) Error() string {
	if e.Message != "" {
		return e.Message
	}

	return "embedding failed"
}

// Unwrap returns the underlying cause.
func (e *EmbeddingError) Unwrap() error {
	return e.Err
}

// Is implements the error interface for error comparison.
func (e *EmbeddingError) Is(target error) bool {
	_, ok := target.(*EmbeddingError)

	return ok
}

// ErrStoreUnavailable is the sentinel for transient persistence failures.
// Safe for the caller to retry: the write path is an idempotent upsert.
var ErrStoreUnavailable = &StoreUnavailableError{}

// StoreUnavailableError wraps a transient store failure.
type StoreUnavailableError struct {
	Message string
	Err     error
}

// NewStoreUnavailableError creates a StoreUnavailableError wrapping the underlying cause.
func NewStoreUnavailableError(message string, err error) *StoreUnavailableError {
	return &StoreUnavailableError{Message: message, Err: err}
}

// Error implements the error interface.
func (e *StoreUnavailableError) Error() string {
	if e.Message != "" {
		return e.Message
	}

	return "store unavailable"
}

// Unwrap returns the underlying cause.
func (e *StoreUnavailableError) Unwrap() error {
	return e.Err
}

// Is implements the error interface for error comparison.
func (e *StoreUnavailableError) Is(target error) bool {
	_, ok := target.(*StoreUnavailableError)

	return ok
}

// ErrAuthorization is the sentinel for permission failures on a write
// (e.g. row-level security rejecting the caller). Not retryable.
var ErrAuthorization = &AuthorizationError{}

// AuthorizationError is a sentinel error for permission failures.
type AuthorizationError struct {
	Message string
	Err     error
}

// NewAuthorizationError creates an AuthorizationError wrapping the underlying cause.
func NewAuthorizationError(message string, err error) *AuthorizationError {
	return &AuthorizationError{Message: message, Err: err}
}

// Error implements the error interface.
func (e *AuthorizationError) Error() string {
	if e.Message != "" {
		return e.Message
	}

	return "not authorized"
}

// Unwrap returns the underlying cause.
func (e *AuthorizationError) Unwrap() error {
	return e.Err
}

// Is implements the error interface for error comparison.
func (e *AuthorizationError) Is(target error) bool {
	_, ok := target.(*AuthorizationError)

	return ok
}

// ErrSchema is the sentinel for malformed payloads rejected by the store
// (bad dimension, constraint violation). Indicates a caller bug; not retryable.
var ErrSchema = &SchemaError{}

// SchemaError wraps a store rejection of a malformed payload.
type SchemaError struct {
	Message string
	Err     error
}

// NewSchemaError creates a SchemaError wrapping the underlying cause.
func NewSchemaError(message string, err error) *SchemaError {
	return &SchemaError{Message: message, Err: err}
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	if e.Message != "" {
		return e.Message
	}

	return "malformed payload"
}

// Unwrap returns the underlying cause.
func (e *SchemaError) Unwrap() error {
	return e.Err
}

// Is implements the error interface for error comparison.
func (e *SchemaError) Is(target error) bool {
	_, ok := target.(*SchemaError)

	return ok
}
