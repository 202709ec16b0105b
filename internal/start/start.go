package start

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync/atomic"

	"github.com/mrzor/lilium-tools/internal/fault"
	"github.com/mrzor/lilium-tools/internal/kabi"
)

// Entry is a program's main function.
type Entry func(p *Process) Termination

// Loader supplies the raw vectors a process is started with.
type Loader interface {
	Vectors() (argc int, argv, envp **byte, err error)
}

// Options configures a Runtime.
type Options struct {
	// Stdout is the standard output stream.
	// Default: os.Stdout
	Stdout io.Writer

	// Stderr is the diagnostic stream.
	// Default: os.Stderr
	Stderr io.Writer

	// Decode is the policy for ill-formed argument and environment text.
	// Default: DecodeStrict
	Decode DecodePolicy

	// Logger receives runtime debug messages.
	// Default: discards everything
	Logger *log.Logger
}

func (o *Options) applyDefaults() {
	if o.Stdout == nil {
		o.Stdout = os.Stdout
	}
	if o.Stderr == nil {
		o.Stderr = os.Stderr
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard, "", 0)
	}
}

// Runtime is the process startup trampoline. A process has exactly one, and
// it may be started exactly once.
type Runtime struct {
	kernel  kabi.ExceptionRaiser
	opts    Options
	started atomic.Bool
}

// New creates a Runtime that raises internal faults through kernel.
func New(kernel kabi.ExceptionRaiser, opts Options) *Runtime {
	opts.applyDefaults()
	return &Runtime{kernel: kernel, opts: opts}
}

// Start is the process entry trampoline. It captures the vectors, arms the
// fault bridge, runs main and returns the exit code its outcome reports.
//
// A second call on the same Runtime is an internal fault.
func (r *Runtime) Start(argc int, argv, envp **byte, main Entry) int {
	defer fault.Bridge(r.kernel, r.opts.Stderr)

	if !r.started.CompareAndSwap(false, true) {
		panic(fault.Fault{Message: "process runtime started twice"})
	}

	p := newProcess(argc, argv, envp, r.opts.Decode, r.opts.Stdout, r.opts.Stderr)
	r.opts.Logger.Printf("start: argc=%d program=%q", argc, p.DisplayName())

	code := report(main(p), p)
	r.opts.Logger.Printf("start: %s exited with code %d", p.DisplayName(), code)
	return code
}

// Main obtains the vectors from l and starts the process. If the loader
// fails, the failure is reported under FallbackName and FailureCode is
// returned without running main.
func (r *Runtime) Main(l Loader, main Entry) int {
	argc, argv, envp, err := l.Vectors()
	if err != nil {
		_, _ = fmt.Fprintf(r.opts.Stderr, "%s: loading process vectors: %v\n", FallbackName, err) //nolint:errcheck // Nowhere left to report a failed diagnostic
		return FailureCode
	}
	return r.Start(argc, argv, envp, main)
}
