// Package kabi describes the slice of the Lilium kernel ABI that the userland
// runtime touches: status codes, system-information sub-requests, in/out text
// descriptors, the unmanaged exception record, and the collaborator
// interfaces through which the kernel is reached.
//
// It is also the only package that walks raw C-style pointer arrays. Every
// other package sees decoded Go values:
//
//	loader ──(argc, **byte, **byte)──▶ kabi.Slot / kabi.CString ──▶ start
//
// Kernel-side behaviour (how descriptors are filled) lives on KStr.Put so
// that fakes and host backends implement the exact same length contract.
package kabi
