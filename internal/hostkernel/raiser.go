package hostkernel

import (
	"fmt"
	"io"
	"os"

	"github.com/mrzor/lilium-tools/internal/kabi"
)

// AbortExitCode is the status a shell reports for a process killed by
// SIGABRT.
const AbortExitCode = 128 + abortSignal

// Raiser stands in for the kernel supervisor: it reports the exception
// record on Stderr and exits with AbortExitCode.
type Raiser struct {
	Stderr io.Writer
	Exit   func(code int)
}

// UnmanagedException implements kabi.ExceptionRaiser.
func (r *Raiser) UnmanagedException(info *kabi.ExceptionStatusInfo) {
	w := r.Stderr
	if w == nil {
		w = os.Stderr
	}
	_, _ = fmt.Fprintf(w, "unmanaged exception %s (info=%#x, reason=%#x)\n",
		info.ExceptCode, info.ExceptInfo, info.ExceptReason)

	exit := r.Exit
	if exit == nil {
		exit = os.Exit
	}
	exit(AbortExitCode)
}
