//go:build !unix

package hostkernel

// Conventional SIGABRT number.
const abortSignal = 6
