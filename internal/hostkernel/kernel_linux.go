//go:build linux

package hostkernel

import (
	"errors"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/mrzor/lilium-tools/internal/kabi"
	"golang.org/x/sys/unix"
)

// Kernel answers GetSystemInfo from uname(2) and the identity files under
// Root: etc/os-release (or usr/lib/os-release), etc/machine-info and
// etc/machine-id. Files that are missing leave their facts empty.
type Kernel struct {
	// Root is the filesystem root, "/" when empty.
	Root   string
	Logger *log.Logger

	uname func(*unix.Utsname) error
}

// GetSystemInfo implements kabi.Introspector.
func (k *Kernel) GetSystemInfo(reqs []kabi.SysInfoRequest) kabi.Status {
	f, err := k.Facts()
	if err != nil {
		k.logger().Printf("hostkernel: %v", err)
		return statusFromErrno(err)
	}
	return f.Fill(reqs)
}

// Facts gathers a fresh snapshot of the host.
func (k *Kernel) Facts() (*Facts, error) {
	uname := k.uname
	if uname == nil {
		uname = unix.Uname
	}

	var u unix.Utsname
	if err := uname(&u); err != nil {
		return nil, err
	}
	sysname := unix.ByteSliceToString(u.Sysname[:])
	release := unix.ByteSliceToString(u.Release[:])
	version := unix.ByteSliceToString(u.Version[:])
	machine := unix.ByteSliceToString(u.Machine[:])

	f := &Facts{
		KernelVendor: sysname,
		BuildID:      uuid.NewSHA1(uuid.NameSpaceOID, []byte(sysname+" "+release+" "+version)),
		Hostname:     unix.ByteSliceToString(u.Nodename[:]),
	}
	f.KernelMajor, f.KernelMinor = parseMajorMinor(release)
	f.Arch, f.ArchVersion = archFromMachine(machine)

	osRelease := k.readOptional("etc/os-release", "usr/lib/os-release")
	f.OsVendor = osRelease["NAME"]
	if f.OsVendor == "" {
		f.OsVendor = sysname
	}
	f.OsMajor, f.OsMinor = parseMajorMinor(osRelease["VERSION_ID"])

	machineInfo := k.readOptional("etc/machine-info")
	f.SysLabel = machineInfo["DEPLOYMENT"]
	f.SysDisplayName = machineInfo["PRETTY_HOSTNAME"]

	f.HostID = k.hostID()
	return f, nil
}

// readOptional parses the first of paths that exists.
func (k *Kernel) readOptional(paths ...string) map[string]string {
	for _, p := range paths {
		kv, err := readKeyValueFile(k.path(p))
		if err == nil {
			return kv
		}
		if !errors.Is(err, os.ErrNotExist) {
			k.logger().Printf("hostkernel: %v", err)
		}
	}
	return nil
}

func (k *Kernel) hostID() uuid.UUID {
	data, err := os.ReadFile(k.path("etc/machine-id"))
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			k.logger().Printf("hostkernel: %v", err)
		}
		return uuid.Nil
	}
	id, err := uuid.Parse(strings.TrimSpace(string(data)))
	if err != nil {
		k.logger().Printf("hostkernel: malformed machine-id: %v", err)
		return uuid.Nil
	}
	return id
}

func (k *Kernel) path(rel string) string {
	root := k.Root
	if root == "" {
		root = "/"
	}
	return filepath.Join(root, rel)
}

func (k *Kernel) logger() *log.Logger {
	if k.Logger == nil {
		return log.New(io.Discard, "", 0)
	}
	return k.Logger
}

// statusFromErrno maps a failed host call onto a kernel status.
func statusFromErrno(err error) kabi.Status {
	switch {
	case errors.Is(err, unix.EPERM), errors.Is(err, unix.EACCES):
		return kabi.PERMISSION
	case errors.Is(err, unix.EFAULT):
		return kabi.INVALID_MEMORY
	case errors.Is(err, unix.EBUSY):
		return kabi.BUSY
	case errors.Is(err, unix.ENOMEM):
		return kabi.INSUFFICIENT_MEMORY
	case errors.Is(err, unix.ENOSYS):
		return kabi.UNSUPPORTED_KERNEL_FUNCTION
	default:
		return kabi.INVALID_STATE
	}
}
