package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Image validation errors
	ErrIconNotPNG      ErrorCode = "ICON_NOT_PNG"
	ErrNullResourceSet ErrorCode = "NULL_RESOURCE_SET"
	ErrUnknownPlatform ErrorCode = "UNKNOWN_PLATFORM"

	// Image I/O errors
	ErrDirNotWritable   ErrorCode = "DIR_NOT_WRITABLE"
	ErrResourceNotFound ErrorCode = "RESOURCE_NOT_FOUND"
	ErrFileCopy         ErrorCode = "FILE_COPY"
	ErrFilePermission   ErrorCode = "FILE_PERMISSION"
	ErrFileWrite        ErrorCode = "FILE_WRITE"
	ErrFileAccess       ErrorCode = "FILE_ACCESS"
)

// Kind groups error codes by how callers are expected to react.
type Kind string

const (
	// KindValidation marks bad input or a broken contract.
	KindValidation Kind = "validation"
	// KindIO marks a filesystem or resource failure. Always fatal for a build.
	KindIO Kind = "io"
	// KindOther covers everything else.
	KindOther Kind = "other"
)

var codeKinds = map[ErrorCode]Kind{
	ErrInvalidInput:     KindValidation,
	ErrConfigValid:      KindValidation,
	ErrIconNotPNG:       KindValidation,
	ErrNullResourceSet:  KindValidation,
	ErrUnknownPlatform:  KindValidation,
	ErrConfigLoad:       KindIO,
	ErrConfigParse:      KindIO,
	ErrDirNotWritable:   KindIO,
	ErrResourceNotFound: KindIO,
	ErrFileCopy:         KindIO,
	ErrFilePermission:   KindIO,
	ErrFileWrite:        KindIO,
	ErrFileAccess:       KindIO,
}

// KindOf returns the kind for a code
func KindOf(code ErrorCode) Kind {
	if k, ok := codeKinds[code]; ok {
		return k
	}
	return KindOther
}

// PackagingError represents a structured error with code and details
type PackagingError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *PackagingError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *PackagingError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *PackagingError) Is(target error) bool {
	var targetErr *PackagingError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// Kind returns the kind of the error's code
func (e *PackagingError) Kind() Kind {
	return KindOf(e.Code)
}

// New creates a new PackagingError with the given code and message
func New(code ErrorCode, message string) *PackagingError {
	return &PackagingError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new PackagingError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *PackagingError {
	return &PackagingError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a PackagingError
func Wrap(err error, code ErrorCode, message string) *PackagingError {
	if err == nil {
		return nil
	}
	return &PackagingError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *PackagingError {
	if err == nil {
		return nil
	}
	return &PackagingError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *PackagingError) WithDetail(key string, value interface{}) *PackagingError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *PackagingError) WithDetails(details map[string]interface{}) *PackagingError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var pkgErr *PackagingError
	if errors.As(err, &pkgErr) {
		return pkgErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a PackagingError
func GetErrorCode(err error) ErrorCode {
	var pkgErr *PackagingError
	if errors.As(err, &pkgErr) {
		return pkgErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a PackagingError
func GetErrorDetails(err error) map[string]interface{} {
	var pkgErr *PackagingError
	if errors.As(err, &pkgErr) {
		return pkgErr.Details
	}
	return nil
}

// IsValidation reports whether the outermost PackagingError in err is a validation error
func IsValidation(err error) bool {
	var pkgErr *PackagingError
	return errors.As(err, &pkgErr) && pkgErr.Kind() == KindValidation
}

// IsIOFailure reports whether the outermost PackagingError in err is an I/O failure
func IsIOFailure(err error) bool {
	var pkgErr *PackagingError
	return errors.As(err, &pkgErr) && pkgErr.Kind() == KindIO
}
