package hostkernel

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/mrzor/lilium-tools/internal/kabi"
)

// Facts is a snapshot of everything GetSystemInfo can report.
type Facts struct {
	KernelVendor string
	BuildID      uuid.UUID
	KernelMajor  uint32
	KernelMinor  uint32

	OsVendor string
	OsMajor  uint32
	OsMinor  uint32

	Hostname       string
	SysLabel       string
	SysDisplayName string
	HostID         uuid.UUID

	Arch        kabi.ArchType
	ArchVersion uint32
}

// Fill answers reqs from f under the descriptor contract: text fields that
// fit are written, the others get their required length.
func (f *Facts) Fill(reqs []kabi.SysInfoRequest) kabi.Status {
	short := false
	put := func(s *kabi.KStr, v string) {
		if !s.Put([]byte(v)) {
			short = true
		}
	}

	for _, r := range reqs {
		switch r := r.(type) {
		case *kabi.KernelVendorRequest:
			put(&r.VendorName, f.KernelVendor)
			r.BuildID = f.BuildID
			r.KernelMajor = f.KernelMajor
			r.KernelMinor = f.KernelMinor
		case *kabi.OsVersionRequest:
			put(&r.VendorName, f.OsVendor)
			r.OsMajor = f.OsMajor
			r.OsMinor = f.OsMinor
		case *kabi.ComputerNameRequest:
			put(&r.Hostname, f.Hostname)
			put(&r.SysLabel, f.SysLabel)
			put(&r.SysDisplayName, f.SysDisplayName)
			r.HostID = f.HostID
		case *kabi.ArchInfoRequest:
			r.ArchType = f.Arch
			r.ArchVersion = f.ArchVersion
		default:
			return kabi.INVALID_OPTION
		}
	}

	if short {
		return kabi.INSUFFICIENT_LENGTH
	}
	return kabi.OK
}

// parseMajorMinor reads the first two numeric runs of a version string,
// so "6.8.0-45-generic" is 6.8 and "24.04" is 24.4. Missing parts are 0.
func parseMajorMinor(s string) (uint32, uint32) {
	parts := strings.FieldsFunc(s, func(r rune) bool { return r < '0' || r > '9' })
	var out [2]uint32
	for i := 0; i < len(parts) && i < 2; i++ {
		out[i] = atou32(parts[i])
	}
	return out[0], out[1]
}

// atou32 parses a run of decimal digits, saturating at MaxUint32.
func atou32(s string) uint32 {
	n, err := strconv.ParseUint(s, 10, 32)
	if errors.Is(err, strconv.ErrRange) {
		return math.MaxUint32
	}
	return uint32(n)
}

// archFromMachine maps a uname machine string to an arch type and version.
func archFromMachine(machine string) (kabi.ArchType, uint32) {
	switch machine {
	case "x86_64", "amd64":
		return kabi.ARCH_TYPE_X86_64, 1
	case "i386", "i486", "i586", "i686":
		return kabi.ARCH_TYPE_X86_IA_32, uint32(machine[1] - '0')
	case "aarch64", "arm64":
		return kabi.ARCH_TYPE_AARCH64, 8
	case "riscv32":
		return kabi.ARCH_TYPE_RISCV32, 0
	case "riscv64":
		return kabi.ARCH_TYPE_RISCV64, 0
	}
	if strings.HasPrefix(machine, "arm") {
		major, _ := parseMajorMinor(strings.TrimPrefix(machine, "arm"))
		return kabi.ARCH_TYPE_ARM32, major
	}
	return 0, 0
}
