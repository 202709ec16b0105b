// Package start is the process runtime: the startup trampoline, the process
// identity it captures, lazy views over the argument and environment
// vectors, and the termination protocol that turns an entry point's outcome
// into an exit code.
//
// Lifecycle:
//
//	loader ──▶ Runtime.Start(argc, argv, envp, main)
//	             │ capture vectors, decode argv[0] as program name
//	             │ arm fault.Bridge
//	             ▼
//	           main(*Process) ──▶ Termination.Report ──▶ exit code
//
// The Process is built before main runs and is read-only afterwards; it is
// handed to main explicitly rather than kept in package-level cells.
//
// Outcome shapes:
//   - Success            → 0
//   - ExitCode(v)        → v
//   - Result{Value, nil} → Value's code
//   - Result{_, err}     → "<program>: <err>" on stderr, FailureCode
//
// Any panic escaping main is an internal fault and ends in fault.Abort.
package start
