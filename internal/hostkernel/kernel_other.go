//go:build !linux

package hostkernel

import (
	"log"

	"github.com/mrzor/lilium-tools/internal/kabi"
)

// Kernel reports every system-information request as unsupported on hosts
// other than Linux.
type Kernel struct {
	Root   string
	Logger *log.Logger
}

// GetSystemInfo implements kabi.Introspector.
func (k *Kernel) GetSystemInfo([]kabi.SysInfoRequest) kabi.Status {
	return kabi.UNSUPPORTED_KERNEL_FUNCTION
}
