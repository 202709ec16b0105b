package start

import (
	"fmt"
)

// FailureCode is the exit code reported for a failed Result.
const FailureCode = -1

// Termination is the outcome of an entry point. Report converts it into a
// process exit code, writing any diagnostic to the process's stderr.
//
// An entry point that never returns (because it faulted) produces no
// Termination at all.
type Termination interface {
	Report(p *Process) int
}

// Success is the bare "no value" outcome. It reports 0.
type Success struct{}

// Report implements Termination.
func (Success) Report(*Process) int {
	return 0
}

// ExitCode is an explicit exit code, passed through unchanged.
type ExitCode int

// Report implements Termination.
func (c ExitCode) Report(*Process) int {
	return int(c)
}

// Result is a fallible outcome. A nil Err reports Value (a nil Value counts as
// Success); a non-nil Err prints "<program>: <err>" and reports FailureCode.
type Result struct {
	Value Termination
	Err   error
}

// Report implements Termination.
func (r Result) Report(p *Process) int {
	if r.Err != nil {
		_, _ = fmt.Fprintf(p.Stderr(), "%s: %v\n", p.DisplayName(), r.Err) //nolint:errcheck // Nowhere left to report a failed diagnostic
		return FailureCode
	}
	return report(r.Value, p)
}

// Ok wraps a successful outcome.
func Ok(v Termination) Result {
	return Result{Value: v}
}

// Fail wraps a failure.
func Fail(err error) Result {
	return Result{Err: err}
}

// FromError is the outcome of an entry point shaped like func() error.
func FromError(err error) Termination {
	return Result{Value: Success{}, Err: err}
}

// Code is the outcome of an entry point shaped like func() (int, error).
func Code(code int, err error) Termination {
	return Result{Value: ExitCode(code), Err: err}
}

func report(t Termination, p *Process) int {
	if t == nil {
		return 0
	}
	return t.Report(p)
}
