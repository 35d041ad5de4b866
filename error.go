package tmscrape

import (
	"errors"
	"fmt"
)

// Application error codes.
const (
	ECLIENT   = "client"
	EINDEX    = "index"
	EINTERNAL = "internal"
	EINVALID  = "invalid"
	ENOTFOUND = "not_found"
	ESERVER   = "server"
)

// Error represents an application-specific error. Status carries the
// HTTP-like status collaborators should report for the failure.
type Error struct {
	Code    string
	Status  int
	Message string
}

// Error implements the error interface. Not used by the application otherwise.
func (e *Error) Error() string {
	return fmt.Sprintf("tmscrape error: code=%s status=%d message=%s", e.Code, ErrorStatus(e), e.Message)
}

// Errorf is a helper function to return an Error with a given code and formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// StatusErrorf is like Errorf but pins the reported status, e.g. to pass
// through an upstream HTTP status.
func StatusErrorf(status int, code string, format string, args ...any) *Error {
	e := Errorf(code, format, args...)
	e.Status = status
	return e
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error.".
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}

// ErrorStatus returns the HTTP-like status for err. An explicit Status wins;
// otherwise the status is derived from the code. Returns 0 for a nil error.
func ErrorStatus(err error) int {
	var e *Error
	if err == nil {
		return 0
	} else if !errors.As(err, &e) {
		return 500
	} else if e.Status != 0 {
		return e.Status
	}

	switch e.Code {
	case ENOTFOUND:
		return 404
	case EINVALID:
		return 400
	default:
		return 500
	}
}
