// Package attributes evaluates user expressions against a process snapshot
// for tracing: custom span attributes, the trace to join and the caller's
// span.
//
// Expressions use the expr language and see four variables:
//
//	env      map[string]string  decoded environment, first entry wins
//	args     []string           decoded arguments, argv[0] included
//	cmdline  string             args joined with spaces
//	program  string             display name of the program
//
// A trace ID result that is not 32 hex characters is hashed with SHA-256
// into one. A parent ID result that is not 16 hex characters yields no
// parent. Both report what happened as warning attributes.
package attributes
