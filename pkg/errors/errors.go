package errors

import (
	"errors"
	"fmt"
)

// Run taxonomy
var (
	ErrAuth              = errors.New("auth error")
	ErrTransientAPI      = errors.New("transient api error")
	ErrProcessingTimeout = errors.New("processing timeout")
	ErrProcessingFailed  = errors.New("processing failed")
	ErrContentRejected   = errors.New("content rejected")
	ErrDelete            = errors.New("delete error")
	ErrConfig            = errors.New("config error")
)

// Error is a failure tagged with a machine-readable code, used for run-level
// failures so reports and notifications can name the failing step.
type Error struct {
	Code    string
	Message string
	Err     error
}

// Error returns the error message
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// WrapWithCode wraps err with a code and message. A nil err stays nil.
func WrapWithCode(err error, code, message string) error {
	if err == nil {
		return nil
	}
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// GetCode returns the error code if it exists
func GetCode(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// APIError is a non-2xx answer from a platform or backend HTTP API.
type APIError struct {
	Platform   string
	Step       string
	StatusCode int
	Message    string
	Code       int
	Subcode    int
	TraceID    string
	Body       string
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Body
	}
	return fmt.Sprintf("%s %s failed: status=%d code=%d: %s", e.Platform, e.Step, e.StatusCode, e.Code, msg)
}

// Unwrap classifies the response. Graph code 190 is an invalid or expired token.
func (e *APIError) Unwrap() error {
	if e.Code == 190 || e.StatusCode == 401 {
		return ErrAuth
	}
	return ErrTransientAPI
}

// IsAuth returns true if the error is a token exchange or lookup failure
func IsAuth(err error) bool {
	return errors.Is(err, ErrAuth)
}

// IsTransientAPI returns true if the error is a non-2xx API response
func IsTransientAPI(err error) bool {
	return errors.Is(err, ErrTransientAPI)
}

// IsProcessingTimeout returns true if polling ran out of attempts
func IsProcessingTimeout(err error) bool {
	return errors.Is(err, ErrProcessingTimeout)
}

// IsProcessingFailed returns true if the platform reported an error status for the job
func IsProcessingFailed(err error) bool {
	return errors.Is(err, ErrProcessingFailed)
}

// IsContentRejected returns true if the platform blocked the media
func IsContentRejected(err error) bool {
	return errors.Is(err, ErrContentRejected)
}

// IsDelete returns true if removing a source file failed
func IsDelete(err error) bool {
	return errors.Is(err, ErrDelete)
}

// IsConfig returns true if the error is a configuration problem
func IsConfig(err error) bool {
	return errors.Is(err, ErrConfig)
}
