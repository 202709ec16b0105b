package kabi

import (
	"github.com/google/uuid"
)

// InternalFault is the exception class raised for unrecoverable internal
// runtime faults.
var InternalFault = uuid.MustParse("4c0c6658-59ae-5675-90c3-ffcc0a7219ad")

// ExceptionStatusInfo is the record handed to the kernel when a process
// raises an unmanaged exception.
type ExceptionStatusInfo struct {
	ExceptCode   uuid.UUID
	ExceptInfo   uint64
	ExceptReason uint64
}

// Introspector is the system-information service. GetSystemInfo fills every
// slot it can and returns OK, INSUFFICIENT_LENGTH when at least one text
// descriptor was too small, or another status on a hard failure.
type Introspector interface {
	GetSystemInfo(reqs []SysInfoRequest) Status
}

// ExceptionRaiser hands an exception record to the kernel supervisor.
// Implementations must not return.
type ExceptionRaiser interface {
	UnmanagedException(info *ExceptionStatusInfo)
}

// IntrospectorFunc adapts a function to the Introspector interface.
type IntrospectorFunc func(reqs []SysInfoRequest) Status

// GetSystemInfo calls f(reqs).
func (f IntrospectorFunc) GetSystemInfo(reqs []SysInfoRequest) Status {
	return f(reqs)
}

// RaiserFunc adapts a function to the ExceptionRaiser interface.
type RaiserFunc func(info *ExceptionStatusInfo)

// UnmanagedException calls f(info).
func (f RaiserFunc) UnmanagedException(info *ExceptionStatusInfo) {
	f(info)
}
