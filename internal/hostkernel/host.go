package hostkernel

import (
	"log"
	"os"
)

// Host implements kabi.Introspector, kabi.ExceptionRaiser and start.Loader
// on the host operating system.
type Host struct {
	*Kernel
	*Raiser
	*Loader
}

// New returns a Host using the real filesystem root and process streams.
func New(logger *log.Logger) *Host {
	return &Host{
		Kernel: &Kernel{Logger: logger},
		Raiser: &Raiser{Stderr: os.Stderr, Exit: os.Exit},
		Loader: &Loader{Logger: logger},
	}
}
