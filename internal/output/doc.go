// Package output renders system facts the way the arch and uname tools
// print them.
//
// It is a pure formatting layer: callers decide which facts they need
// (Needs), fetch them through package sysinfo, and hand the result to
// Line. Nothing here talks to the kernel.
package output
