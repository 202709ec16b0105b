package kabi

import (
	"fmt"
)

// Status is the raw result of a kernel call. Zero is success and negative
// values are error codes.
type Status int64

// OK is returned by a kernel call that fully succeeded.
const OK Status = 0

// Error codes matching the kernel headers.
//
//nolint:revive,staticcheck // ALL_CAPS naming matches kernel headers
const (
	PERMISSION Status = -(iota + 1)
	INVALID_HANDLE
	INVALID_MEMORY
	BUSY
	INVALID_OPERATION
	INVALID_STRING
	INSUFFICIENT_LENGTH
	RESOURCE_LIMIT_EXHAUSTED
	INVALID_STATE
	INVALID_OPTION
	INSUFFICIENT_MEMORY
	UNSUPPORTED_KERNEL_FUNCTION
	FINISHED
)

var statusNames = map[Status]string{
	PERMISSION:                  "permission denied",
	INVALID_HANDLE:              "invalid handle",
	INVALID_MEMORY:              "invalid memory",
	BUSY:                        "resource busy",
	INVALID_OPERATION:           "invalid operation",
	INVALID_STRING:              "invalid string",
	INSUFFICIENT_LENGTH:         "insufficient length",
	RESOURCE_LIMIT_EXHAUSTED:    "resource limit exhausted",
	INVALID_STATE:               "invalid state",
	INVALID_OPTION:              "invalid option",
	INSUFFICIENT_MEMORY:         "insufficient memory",
	UNSUPPORTED_KERNEL_FUNCTION: "unsupported kernel function",
	FINISHED:                    "finished",
}

// String returns a human-readable name for the status.
func (s Status) String() string {
	if s == OK {
		return "ok"
	}
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("status %d", int64(s))
}

// Error is a kernel error code surfaced as a Go error.
type Error struct {
	Code Status
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("kernel error %d: %s", int64(e.Code), e.Code)
}

// Is reports whether target is a kernel error with the same code, so callers
// can write errors.Is(err, kabi.ErrPermission).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// Sentinel errors for errors.Is comparisons.
var (
	ErrPermission         = &Error{Code: PERMISSION}
	ErrInvalidOption      = &Error{Code: INVALID_OPTION}
	ErrInsufficientLength = &Error{Code: INSUFFICIENT_LENGTH}
	ErrUnsupported        = &Error{Code: UNSUPPORTED_KERNEL_FUNCTION}
)

// FromCode converts a status into an error. Non-negative statuses are nil.
func FromCode(code Status) error {
	if code >= 0 {
		return nil
	}
	return &Error{Code: code}
}
