package hostkernel

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/mrzor/lilium-tools/internal/kabi"
)

// Loader builds the startup vectors from /proc/self/cmdline and
// /proc/self/environ. Without procfs it falls back to os.Args and
// os.Environ.
type Loader struct {
	// Root is the procfs mount point, "/proc" when empty.
	Root   string
	Logger *log.Logger
}

// Vectors implements start.Loader.
func (l *Loader) Vectors() (int, **byte, **byte, error) {
	args, err := l.readVector("cmdline")
	if errors.Is(err, os.ErrNotExist) {
		l.logger().Printf("hostkernel: %v, using os.Args", err)
		args = stringsToBytes(os.Args)
	} else if err != nil {
		return 0, nil, nil, err
	}

	env, err := l.readVector("environ")
	if errors.Is(err, os.ErrNotExist) {
		l.logger().Printf("hostkernel: %v, using os.Environ", err)
		env = stringsToBytes(os.Environ())
	} else if err != nil {
		return 0, nil, nil, err
	}

	argc, argv := kabi.NewCArray(args)
	_, envp := kabi.NewCArray(env)
	return argc, argv, envp, nil
}

func (l *Loader) readVector(name string) ([][]byte, error) {
	root := l.Root
	if root == "" {
		root = "/proc"
	}
	path := filepath.Join(root, "self", name)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return splitNUL(data), nil
}

func (l *Loader) logger() *log.Logger {
	if l.Logger == nil {
		return log.New(io.Discard, "", 0)
	}
	return l.Logger
}

// splitNUL splits NUL-terminated strings. Empty strings between
// terminators are kept; a final string missing its terminator is kept too.
func splitNUL(data []byte) [][]byte {
	var out [][]byte
	offset := 0
	for offset < len(data) {
		end := bytes.IndexByte(data[offset:], 0)
		if end < 0 {
			end = len(data) - offset
		}
		out = append(out, data[offset:offset+end])
		offset += end + 1
	}
	return out
}

func stringsToBytes(ss []string) [][]byte {
	out := make([][]byte, len(ss))
	for i, s := range ss {
		out[i] = []byte(s)
	}
	return out
}
