package kabi

import (
	"unsafe"
)

// Slot returns the i-th entry of a pointer array such as argv or envp.
// The caller must know that index i is within the array, which for loader
// vectors means no earlier entry was the NULL sentinel.
func Slot(arr **byte, i int) *byte {
	if arr == nil {
		return nil
	}
	//nolint:gosec // Unsafe required to walk loader-provided C arrays
	return *(**byte)(unsafe.Add(unsafe.Pointer(arr), uintptr(i)*unsafe.Sizeof(arr)))
}

// CString returns the bytes of the NUL-terminated string at p, without the
// terminator. The slice aliases the original memory.
func CString(p *byte) []byte {
	if p == nil {
		return nil
	}
	n := 0
	//nolint:gosec // Unsafe required to scan for the NUL terminator
	for *(*byte)(unsafe.Add(unsafe.Pointer(p), n)) != 0 {
		n++
	}
	return unsafe.Slice(p, n)
}

// NewCArray lays items out as a NULL-terminated array of NUL-terminated
// strings, the shape the loader hands to a process entry point. It returns
// the item count and a pointer to the first slot.
func NewCArray(items [][]byte) (int, **byte) {
	ptrs := make([]*byte, len(items)+1)
	for i, item := range items {
		buf := make([]byte, len(item)+1)
		copy(buf, item)
		ptrs[i] = &buf[0]
	}
	return len(items), &ptrs[0]
}

// NewCStrings is NewCArray for text items.
func NewCStrings(items ...string) (int, **byte) {
	raw := make([][]byte, len(items))
	for i, item := range items {
		raw[i] = []byte(item)
	}
	return NewCArray(raw)
}
