package errors

import (
	"errors"
	"fmt"
)

// ErrorType classifies a DomainError.
type ErrorType string

const (
	// ErrorTypeValidation covers bad operator input (arity, address formats).
	ErrorTypeValidation ErrorType = "VALIDATION"

	// ErrorTypePrivilege means the process is not running as root.
	ErrorTypePrivilege ErrorType = "PRIVILEGE"

	// ErrorTypeNotFound means a required resource (usually the target
	// interface) does not exist on the host.
	ErrorTypeNotFound ErrorType = "NOT_FOUND"

	// ErrorTypeDetection means no recognized network subsystem is present.
	ErrorTypeDetection ErrorType = "DETECTION"

	// ErrorTypeNetwork covers a failed profile creation, modification or
	// activation. Recoverable once per remaining fallback subsystem.
	ErrorTypeNetwork ErrorType = "NETWORK"

	// ErrorTypeRestart means a service restart failed after the fallback
	// restart target was also exhausted.
	ErrorTypeRestart ErrorType = "RESTART"

	// ErrorTypeTimeout means an external command exceeded its deadline.
	ErrorTypeTimeout ErrorType = "TIMEOUT"

	// ErrorTypeSystem covers everything else at the OS boundary.
	ErrorTypeSystem ErrorType = "SYSTEM"
)

// DomainError is the error type surfaced to the operator. Every failure is
// reported; nothing is swallowed except best-effort backup copies.
type DomainError struct {
	Type    ErrorType
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the wrapped cause.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is matches errors by type.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// NewValidationError creates a validation error.
func NewValidationError(message string, cause error) *DomainError {
	return &DomainError{Type: ErrorTypeValidation, Message: message, Cause: cause}
}

// NewPrivilegeError creates a privilege error.
func NewPrivilegeError(message string) *DomainError {
	return &DomainError{Type: ErrorTypePrivilege, Message: message}
}

// NewNotFoundError creates a not-found error.
func NewNotFoundError(message string) *DomainError {
	return &DomainError{Type: ErrorTypeNotFound, Message: message}
}

// NewDetectionError creates a detection error.
func NewDetectionError(message string) *DomainError {
	return &DomainError{Type: ErrorTypeDetection, Message: message}
}

// NewNetworkError creates an apply error.
func NewNetworkError(message string, cause error) *DomainError {
	return &DomainError{Type: ErrorTypeNetwork, Message: message, Cause: cause}
}

// NewRestartError creates a service-restart error.
func NewRestartError(message string, cause error) *DomainError {
	return &DomainError{Type: ErrorTypeRestart, Message: message, Cause: cause}
}

// NewTimeoutError creates a timeout error.
func NewTimeoutError(message string) *DomainError {
	return &DomainError{Type: ErrorTypeTimeout, Message: message}
}

// NewSystemError creates a system error.
func NewSystemError(message string, cause error) *DomainError {
	return &DomainError{Type: ErrorTypeSystem, Message: message, Cause: cause}
}

func isType(err error, t ErrorType) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Type == t
	}
	return false
}

// IsValidationError reports whether err is a validation error.
func IsValidationError(err error) bool { return isType(err, ErrorTypeValidation) }

// IsPrivilegeError reports whether err is a privilege error.
func IsPrivilegeError(err error) bool { return isType(err, ErrorTypePrivilege) }

// IsNotFoundError reports whether err is a not-found error.
func IsNotFoundError(err error) bool { return isType(err, ErrorTypeNotFound) }

// IsDetectionError reports whether err is a detection error.
func IsDetectionError(err error) bool { return isType(err, ErrorTypeDetection) }

// IsNetworkError reports whether err is an apply error.
func IsNetworkError(err error) bool { return isType(err, ErrorTypeNetwork) }

// IsRestartError reports whether err is a restart error.
func IsRestartError(err error) bool { return isType(err, ErrorTypeRestart) }

// IsTimeoutError reports whether err is a timeout error.
func IsTimeoutError(err error) bool { return isType(err, ErrorTypeTimeout) }

// IsSystemError reports whether err is a system error.
func IsSystemError(err error) bool { return isType(err, ErrorTypeSystem) }
