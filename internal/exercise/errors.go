package exercise

import (
	"fmt"
)

// RequestError represents a validation failure detected before any storage
// round trip. Field names the offending input where one exists.
type RequestError struct {
	Type  string
	Field string
	Value string
}

func (e *RequestError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("request error [%s] for field %s (value: %q)", e.Type, e.Field, e.Value)
	}
	return fmt.Sprintf("request error [%s]", e.Type)
}

// Request error types
const (
	RequestErrorTypeMissingField   = "missing_field"
	RequestErrorTypeInvalidInteger = "invalid_integer"
	RequestErrorTypeInvalidDate    = "invalid_date"
	RequestErrorTypeInvalidFrom    = "invalid_from"
	RequestErrorTypeInvalidTo      = "invalid_to"
	RequestErrorTypeInvalidLimit   = "invalid_limit"
	RequestErrorTypeRangeInverted  = "range_inverted"
	RequestErrorTypeMissingUserID  = "missing_user_id"
)

// NewMissingFieldError reports a required body field that was absent or empty.
func NewMissingFieldError(field string) *RequestError {
	return &RequestError{Type: RequestErrorTypeMissingField, Field: field}
}

// NewInvalidIntegerError reports a duration value that is not a whole number.
func NewInvalidIntegerError(field, value string) *RequestError {
	return &RequestError{Type: RequestErrorTypeInvalidInteger, Field: field, Value: value}
}

// NewInvalidDateError reports an entry date that is neither empty nor a
// valid YYYY-MM-DD string.
func NewInvalidDateError(value string) *RequestError {
	return &RequestError{Type: RequestErrorTypeInvalidDate, Field: "date", Value: value}
}

// NewInvalidFromError reports an unparseable "from" filter date.
func NewInvalidFromError(value string) *RequestError {
	return &RequestError{Type: RequestErrorTypeInvalidFrom, Field: "from", Value: value}
}

// NewInvalidToError reports an unparseable "to" filter date.
func NewInvalidToError(value string) *RequestError {
	return &RequestError{Type: RequestErrorTypeInvalidTo, Field: "to", Value: value}
}

// NewInvalidLimitError reports a limit that is not a positive whole number.
func NewInvalidLimitError(value string) *RequestError {
	return &RequestError{Type: RequestErrorTypeInvalidLimit, Field: "limit", Value: value}
}

// NewRangeInvertedError reports a from date chronologically after the to date.
func NewRangeInvertedError(from, to string) *RequestError {
	return &RequestError{Type: RequestErrorTypeRangeInverted, Value: fmt.Sprintf("%s > %s", from, to)}
}

// NewMissingUserIDError reports a log fetch without a userId.
func NewMissingUserIDError() *RequestError {
	return &RequestError{Type: RequestErrorTypeMissingUserID, Field: "userId"}
}

// ValidationError represents a schema-level constraint rejected at the
// storage boundary, reported with the first offending field's message.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
}

// NewValidationError creates a new schema-level validation error.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// StorageError represents errors from the persistence layer.
type StorageError struct {
	Type      string
	Operation string
	Message   string
	Cause     error
}

func (e *StorageError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("storage error [%s] during %s: %s (caused by: %v)", e.Type, e.Operation, e.Message, e.Cause)
	}
	return fmt.Sprintf("storage error [%s] during %s: %s", e.Type, e.Operation, e.Message)
}

func (e *StorageError) Unwrap() error {
	return e.Cause
}

// Storage error types
const (
	StorageErrorTypeNotFound     = "not_found"
	StorageErrorTypeDuplicateKey = "duplicate_key"
	StorageErrorTypeQueryFailed  = "query_failed"
)

// NewUserNotFoundError creates an error for a lookup that matched no user log.
func NewUserNotFoundError(operation, userID string) *StorageError {
	return &StorageError{
		Type:      StorageErrorTypeNotFound,
		Operation: operation,
		Message:   fmt.Sprintf("no user log for id %s", userID),
	}
}

// NewDuplicateUsernameError creates an error for a username uniqueness violation.
func NewDuplicateUsernameError(username string, cause error) *StorageError {
	return &StorageError{
		Type:      StorageErrorTypeDuplicateKey,
		Operation: "create user",
		Message:   fmt.Sprintf("username already exists: %s", username),
		Cause:     cause,
	}
}

// NewStorageQueryError creates an error for a failed persistence round trip.
func NewStorageQueryError(operation string, cause error) *StorageError {
	return &StorageError{
		Type:      StorageErrorTypeQueryFailed,
		Operation: operation,
		Message:   "storage query failed",
		Cause:     cause,
	}
}
