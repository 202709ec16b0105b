// Package fault turns unrecoverable internal faults into an unmanaged kernel
// exception. It is the only path by which a fault ends the process.
package fault

import (
	"errors"
	"fmt"
	"io"

	"github.com/mrzor/lilium-tools/internal/kabi"
)

// Fault describes an unrecoverable internal contract violation.
type Fault struct {
	Message string
}

func (f Fault) Error() string {
	return f.Message
}

// Abort writes "Panicked at <message>" to w, then raises an InternalFault
// exception through k. It never returns: if the raiser returns anyway the
// calling goroutine parks forever.
//
// The diagnostic write is best effort. Write errors, and panics from w, are
// swallowed.
func Abort(k kabi.ExceptionRaiser, w io.Writer, f Fault) {
	diagnose(w, f)

	if k != nil {
		k.UnmanagedException(&kabi.ExceptionStatusInfo{
			ExceptCode:   kabi.InternalFault,
			ExceptInfo:   0,
			ExceptReason: 0,
		})
	}
	select {}
}

// Bridge recovers a panic in progress and hands it to Abort. It must be
// deferred directly:
//
//	defer fault.Bridge(kernel, os.Stderr)
func Bridge(k kabi.ExceptionRaiser, w io.Writer) {
	if r := recover(); r != nil {
		Abort(k, w, FromPanic(r))
	}
}

// FromPanic converts a recovered panic value into a Fault.
func FromPanic(r any) Fault {
	var f Fault
	switch v := r.(type) {
	case Fault:
		return v
	case error:
		if errors.As(v, &f) {
			return f
		}
		return Fault{Message: v.Error()}
	case string:
		return Fault{Message: v}
	default:
		return Fault{Message: fmt.Sprint(v)}
	}
}

func diagnose(w io.Writer, f Fault) {
	if w == nil {
		return
	}
	defer func() {
		_ = recover()
	}()
	_, _ = fmt.Fprintf(w, "Panicked at %s\n", f.Message) //nolint:errcheck // Diagnostics are best effort
}
