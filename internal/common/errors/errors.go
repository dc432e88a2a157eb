// Package errors provides standardized error handling for the dialog engine.
package errors

import (
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeUnsupportedIntent ErrorCode = "UNSUPPORTED_INTENT"
	ErrCodeRequestParseError ErrorCode = "REQUEST_PARSE_ERROR"
	ErrCodeRequestInvalid    ErrorCode = "REQUEST_INVALID"

	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeCatalogLookupFailed      ErrorCode = "CATALOG_LOOKUP_FAILED"
	ErrCodeCatalogEntryNotFound     ErrorCode = "CATALOG_ENTRY_NOT_FOUND"

	ErrCodeOrderInsertFailed ErrorCode = "ORDER_INSERT_FAILED"

	ErrCodeNotificationSendFailed ErrorCode = "NOTIFICATION_SEND_FAILED"

	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. Error Constructors
// ==========================

// NewUnsupportedIntentError creates a non-retryable dispatch error. It marks a
// configuration mismatch between the runtime's intent catalog and this engine,
// not a user-correctable condition.
func NewUnsupportedIntentError(intentName string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnsupportedIntent,
		Message:   fmt.Sprintf("Intent with name %s not supported", intentName),
		Details:   fmt.Sprintf("intentName: %s", intentName),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewRequestParseError creates a non-retryable boundary decode error.
func NewRequestParseError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeRequestParseError,
		Message:   "Failed to parse fulfillment request",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewRequestInvalidError creates a non-retryable request validation error.
func NewRequestInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeRequestInvalid,
		Message:   "Fulfillment request failed schema validation",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewDatabaseConnectionFailedError creates a retryable database connection error.
func NewDatabaseConnectionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseConnectionFailed,
		Message:   "Database connection error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewCatalogLookupFailedError creates a retryable catalog query error.
func NewCatalogLookupFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCatalogLookupFailed,
		Message:   "Catalog query error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewCatalogEntryNotFoundError creates a non-retryable lookup-miss error.
func NewCatalogEntryNotFoundError(movieName, theaterName string) *StandardError {
	return &StandardError{
		Code:      ErrCodeCatalogEntryNotFound,
		Message:   "No catalog entry for movie and theater combination",
		Details:   fmt.Sprintf("movieName: %s, theaterName: %s", movieName, theaterName),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewOrderInsertFailedError creates a retryable order persistence error.
func NewOrderInsertFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeOrderInsertFailed,
		Message:   "Order insert operation failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewNotificationSendFailedError creates a retryable notification send error.
func NewNotificationSendFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotificationSendFailed,
		Message:   "Confirmation SMS delivery failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewInternalError creates a retryable catch-all for unexpected failures.
func NewInternalError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Internal error while processing fulfillment request",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Utility Functions
// ==========================

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "INTENT") || strings.Contains(codeStr, "REQUEST"):
		return "DISPATCH"
	case strings.Contains(codeStr, "DATABASE") || strings.Contains(codeStr, "CATALOG"):
		return "CATALOG"
	case strings.Contains(codeStr, "ORDER"):
		return "ORDER"
	case strings.Contains(codeStr, "NOTIFICATION"):
		return "NOTIFICATION"
	default:
		return "OTHER"
	}
}
