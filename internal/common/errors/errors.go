// Package errors provides standardized error handling for the resolution engine.
package errors

import (
	"fmt"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeTaxonomyQueryFailed      ErrorCode = "TAXONOMY_QUERY_FAILED"

	ErrCodeParameterInvalid    ErrorCode = "PARAMETER_INVALID"
	ErrCodePayloadRenderFailed ErrorCode = "PAYLOAD_RENDER_FAILED"

	ErrCodeTransportPublishFailed ErrorCode = "TRANSPORT_PUBLISH_FAILED"
	ErrCodeAuditIndexFailed       ErrorCode = "AUDIT_INDEX_FAILED"
	ErrCodeNotificationSendFailed ErrorCode = "NOTIFICATION_SEND_FAILED"
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

// NewTaxonomyQueryFailedError creates a retryable catalog query error.
func NewTaxonomyQueryFailedError(queryType string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeTaxonomyQueryFailed,
		Message:   "Taxonomy catalog query error",
		Details:   fmt.Sprintf("queryType: %s, error: %s", queryType, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewParameterInvalidError creates a non-retryable parameter error. This is
// the only error class a resolution request surfaces to its caller.
func NewParameterInvalidError(paramName, details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeParameterInvalid,
		Message:   "Action parameter failed validation",
		Details:   fmt.Sprintf("parameter: %s, %s", paramName, details),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewPayloadRenderFailedError creates a non-retryable payload template error.
func NewPayloadRenderFailedError(template string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodePayloadRenderFailed,
		Message:   "Command payload template could not be rendered",
		Details:   fmt.Sprintf("template: %s, error: %s", template, err.Error()),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewTransportPublishFailedError creates a retryable transport error. The
// dispatcher normally absorbs broker absence as degraded mode; this error is
// reserved for unexpected local failures.
func NewTransportPublishFailedError(topic string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeTransportPublishFailed,
		Message:   "Command publish failed locally",
		Details:   fmt.Sprintf("topic: %s, error: %s", topic, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewAuditIndexFailedError creates a retryable audit-trail error; callers log
// and drop it.
func NewAuditIndexFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeAuditIndexFailed,
		Message:   "Resolution audit document could not be indexed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewNotificationSendFailedError creates a retryable notification error;
// alerting is best-effort and callers log and drop it.
func NewNotificationSendFailedError(channel string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotificationSendFailed,
		Message:   "Caregiver notification could not be sent",
		Details:   fmt.Sprintf("channel: %s, error: %s", channel, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}
