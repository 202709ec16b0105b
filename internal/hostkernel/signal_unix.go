//go:build unix

package hostkernel

import "golang.org/x/sys/unix"

const abortSignal = int(unix.SIGABRT)
