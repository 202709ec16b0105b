package kabi

import (
	"fmt"

	"github.com/google/uuid"
)

// RequestType tags a system-information sub-request.
type RequestType uint32

// Sub-request tags understood by GetSystemInfo.
const (
	RequestKernelVendor RequestType = iota + 1
	RequestOsVersion
	RequestComputerName
	RequestArchInfo
)

func (t RequestType) String() string {
	switch t {
	case RequestKernelVendor:
		return "kernel-vendor"
	case RequestOsVersion:
		return "os-version"
	case RequestComputerName:
		return "computer-name"
	case RequestArchInfo:
		return "arch-info"
	default:
		return fmt.Sprintf("request-type(%d)", uint32(t))
	}
}

// SysInfoRequest is one slot of a batched GetSystemInfo call.
//
// Strings returns pointers to the slot's text descriptors in a fixed order.
// Slots without variable-length fields return nil.
type SysInfoRequest interface {
	RequestType() RequestType
	Strings() []*KStr
}

// KernelVendorRequest asks for the kernel vendor and version.
type KernelVendorRequest struct {
	VendorName  KStr
	BuildID     uuid.UUID
	KernelMajor uint32
	KernelMinor uint32
}

// RequestType implements SysInfoRequest.
func (*KernelVendorRequest) RequestType() RequestType { return RequestKernelVendor }

// Strings implements SysInfoRequest.
func (r *KernelVendorRequest) Strings() []*KStr { return []*KStr{&r.VendorName} }

// OsVersionRequest asks for the operating system vendor and version.
type OsVersionRequest struct {
	VendorName KStr
	OsMajor    uint32
	OsMinor    uint32
}

// RequestType implements SysInfoRequest.
func (*OsVersionRequest) RequestType() RequestType { return RequestOsVersion }

// Strings implements SysInfoRequest.
func (r *OsVersionRequest) Strings() []*KStr { return []*KStr{&r.VendorName} }

// ComputerNameRequest asks for the names the machine is known by.
type ComputerNameRequest struct {
	Hostname       KStr
	SysLabel       KStr
	SysDisplayName KStr
	HostID         uuid.UUID
}

// RequestType implements SysInfoRequest.
func (*ComputerNameRequest) RequestType() RequestType { return RequestComputerName }

// Strings implements SysInfoRequest. The order is hostname, system label,
// display name.
func (r *ComputerNameRequest) Strings() []*KStr {
	return []*KStr{&r.Hostname, &r.SysLabel, &r.SysDisplayName}
}

// ArchType identifies the processor architecture.
type ArchType uint32

// Architecture identifiers reported in ArchInfoRequest.ArchType.
//
//nolint:revive,staticcheck // ALL_CAPS naming matches kernel headers
const (
	ARCH_TYPE_X86_64 ArchType = iota + 1
	ARCH_TYPE_X86_IA_32
	ARCH_TYPE_AARCH64
	ARCH_TYPE_ARM32
	ARCH_TYPE_RISCV32
	ARCH_TYPE_RISCV64
	ARCH_TYPE_CLEVER_ISA
)

// ArchInfoRequest asks for the processor architecture. It has no
// variable-length fields and can never need a buffer to grow.
type ArchInfoRequest struct {
	ArchType    ArchType
	ArchVersion uint32
}

// RequestType implements SysInfoRequest.
func (*ArchInfoRequest) RequestType() RequestType { return RequestArchInfo }

// Strings implements SysInfoRequest.
func (*ArchInfoRequest) Strings() []*KStr { return nil }
