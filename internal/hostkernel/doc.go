// Package hostkernel backs the kernel ABI with the host operating system so
// the tools run outside a Lilium system.
//
// Loader reads the process vectors from procfs, Kernel answers
// GetSystemInfo from uname(2) and the usual /etc identity files, and Raiser
// reports an unmanaged exception on stderr and exits the way an abort would.
// Host bundles the three.
package hostkernel
