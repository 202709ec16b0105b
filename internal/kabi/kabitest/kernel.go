// Package kabitest provides an in-memory kernel for tests.
package kabitest

import (
	"runtime"
	"sync"

	"github.com/google/uuid"
	"github.com/mrzor/lilium-tools/internal/kabi"
)

// Kernel answers GetSystemInfo from its fields and records every call.
// It honours the descriptor contract exactly: fields that fit are written,
// fields that do not report their required length.
type Kernel struct {
	KernelVendor string
	BuildID      uuid.UUID
	KernelMajor  uint32
	KernelMinor  uint32

	OsVendor string
	OsMajor  uint32
	OsMinor  uint32

	Hostname       string
	SysLabel       string
	SysDisplayName string
	HostID         uuid.UUID

	Arch        kabi.ArchType
	ArchVersion uint32

	// Fail, when non-zero, is returned from every call without touching
	// the requests.
	Fail kabi.Status

	mu      sync.Mutex
	calls   int
	offered [][]int
	raised  []kabi.ExceptionStatusInfo
}

// GetSystemInfo implements kabi.Introspector.
func (k *Kernel) GetSystemInfo(reqs []kabi.SysInfoRequest) kabi.Status {
	k.mu.Lock()
	defer k.mu.Unlock()

	k.calls++
	var caps []int
	for _, r := range reqs {
		for _, s := range r.Strings() {
			caps = append(caps, s.Len)
		}
	}
	k.offered = append(k.offered, caps)

	if k.Fail != 0 {
		return k.Fail
	}

	short := false
	put := func(s *kabi.KStr, v string) {
		if !s.Put([]byte(v)) {
			short = true
		}
	}

	for _, r := range reqs {
		switch r := r.(type) {
		case *kabi.KernelVendorRequest:
			put(&r.VendorName, k.KernelVendor)
			r.BuildID = k.BuildID
			r.KernelMajor = k.KernelMajor
			r.KernelMinor = k.KernelMinor
		case *kabi.OsVersionRequest:
			put(&r.VendorName, k.OsVendor)
			r.OsMajor = k.OsMajor
			r.OsMinor = k.OsMinor
		case *kabi.ComputerNameRequest:
			put(&r.Hostname, k.Hostname)
			put(&r.SysLabel, k.SysLabel)
			put(&r.SysDisplayName, k.SysDisplayName)
			r.HostID = k.HostID
		case *kabi.ArchInfoRequest:
			r.ArchType = k.Arch
			r.ArchVersion = k.ArchVersion
		default:
			return kabi.INVALID_OPTION
		}
	}

	if short {
		return kabi.INSUFFICIENT_LENGTH
	}
	return kabi.OK
}

// UnmanagedException implements kabi.ExceptionRaiser. It records the record
// and ends the calling goroutine with runtime.Goexit, so tests must run the
// faulting code on its own goroutine.
func (k *Kernel) UnmanagedException(info *kabi.ExceptionStatusInfo) {
	k.mu.Lock()
	k.raised = append(k.raised, *info)
	k.mu.Unlock()
	runtime.Goexit()
}

// Calls returns the number of GetSystemInfo round trips.
func (k *Kernel) Calls() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.calls
}

// Offered returns, per call, the descriptor capacities that were offered.
func (k *Kernel) Offered() [][]int {
	k.mu.Lock()
	defer k.mu.Unlock()
	out := make([][]int, len(k.offered))
	copy(out, k.offered)
	return out
}

// Raised returns the exception records handed to the kernel.
func (k *Kernel) Raised() []kabi.ExceptionStatusInfo {
	k.mu.Lock()
	defer k.mu.Unlock()
	out := make([]kabi.ExceptionStatusInfo, len(k.raised))
	copy(out, k.raised)
	return out
}

// Go runs fn on a new goroutine and waits for it to finish, either by
// returning or by raising an exception.
func Go(fn func()) {
	done := make(chan struct{})
	go func() {
		defer close(done)
		fn()
	}()
	<-done
}
