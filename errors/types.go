package errors

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific error condition
type ErrorCode string

const (
	// Hook configuration errors
	ErrCodeConfigNotFound   ErrorCode = "CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid    ErrorCode = "CONFIG_INVALID"
	ErrCodeConfigValidation ErrorCode = "CONFIG_VALIDATION"

	// Settings errors
	ErrCodeSettingsInvalid ErrorCode = "SETTINGS_INVALID"

	// Reference resolution errors
	ErrCodeRefInvalid        ErrorCode = "REF_INVALID"
	ErrCodeRefUnresolved     ErrorCode = "REF_UNRESOLVED"
	ErrCodeSchemaKeyNotFound ErrorCode = "SCHEMA_KEY_NOT_FOUND"
	ErrCodeResolveCycle      ErrorCode = "RESOLVE_CYCLE"
	ErrCodeTargetInvalid     ErrorCode = "TARGET_INVALID"
	ErrCodeLockHeld          ErrorCode = "LOCK_HELD"

	// General errors
	ErrCodeInternal         ErrorCode = "INTERNAL_ERROR"
	ErrCodeInvalidInput     ErrorCode = "INVALID_INPUT"
	ErrCodePermissionDenied ErrorCode = "PERMISSION_DENIED"
)

// LokiError represents a structured error with context
type LokiError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Cause   error                  `json:"-"`
}

// Error implements the error interface
func (e *LokiError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *LokiError) Unwrap() error {
	return e.Cause
}

// WithDetail adds a detail to the error
func (e *LokiError) WithDetail(key string, value interface{}) *LokiError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// ToJSON converts the error to JSON
func (e *LokiError) ToJSON() string {
	data, _ := json.MarshalIndent(e, "", "  ")
	return string(data)
}

// New creates a new LokiError
func New(code ErrorCode, message string) *LokiError {
	return &LokiError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a LokiError
func Wrap(err error, code ErrorCode, message string) *LokiError {
	return &LokiError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// Is checks if an error is a specific LokiError code
func Is(err error, code ErrorCode) bool {
	if err == nil {
		return false
	}

	lokiErr, ok := err.(*LokiError)
	if !ok {
		// Try to unwrap
		if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
			return Is(unwrapper.Unwrap(), code)
		}
		return false
	}

	return lokiErr.Code == code
}

// GetCode extracts the error code from an error
func GetCode(err error) ErrorCode {
	if err == nil {
		return ""
	}

	lokiErr, ok := err.(*LokiError)
	if !ok {
		// Try to unwrap
		if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
			return GetCode(unwrapper.Unwrap())
		}
		return ""
	}

	return lokiErr.Code
}
