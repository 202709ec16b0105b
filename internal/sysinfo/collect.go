package sysinfo

import (
	"context"

	"github.com/google/uuid"
	"github.com/mrzor/lilium-tools/internal/kabi"
)

// Want selects which facts Collect asks the kernel for.
type Want uint8

// Facts that can be requested.
const (
	WantKernelVendor Want = 1 << iota
	WantOsVersion
	WantComputerName
	WantArch

	WantAll = WantKernelVendor | WantOsVersion | WantComputerName | WantArch
)

// Has reports whether w includes all of other.
func (w Want) Has(other Want) bool {
	return w&other == other
}

// KernelVendor is the kernel's vendor and version.
type KernelVendor struct {
	Name    string
	BuildID uuid.UUID
	Major   uint32
	Minor   uint32
}

// OsVersion is the operating system's vendor and version.
type OsVersion struct {
	Name  string
	Major uint32
	Minor uint32
}

// ComputerName is the set of names the machine is known by.
type ComputerName struct {
	Hostname    string
	Label       string
	DisplayName string
	HostID      uuid.UUID
}

// Arch is the processor architecture.
type Arch struct {
	Type    kabi.ArchType
	Version uint32
}

// Info holds the facts returned by Collect. Facts that were not requested
// are nil.
type Info struct {
	KernelVendor *KernelVendor
	OsVersion    *OsVersion
	ComputerName *ComputerName
	Arch         *Arch
}

// Collect builds one batch for the facts in want, runs it through Query and
// decodes the results. Slots are packed in a fixed order: kernel vendor, OS
// version, computer name, arch.
func (q *Querier) Collect(ctx context.Context, want Want) (*Info, error) {
	var (
		reqs   []kabi.SysInfoRequest
		kv     *kabi.KernelVendorRequest
		osver  *kabi.OsVersionRequest
		cname  *kabi.ComputerNameRequest
		arch   *kabi.ArchInfoRequest
		result Info
	)

	if want.Has(WantKernelVendor) {
		kv = &kabi.KernelVendorRequest{}
		reqs = append(reqs, kv)
	}
	if want.Has(WantOsVersion) {
		osver = &kabi.OsVersionRequest{}
		reqs = append(reqs, osver)
	}
	if want.Has(WantComputerName) {
		cname = &kabi.ComputerNameRequest{}
		reqs = append(reqs, cname)
	}
	if want.Has(WantArch) {
		arch = &kabi.ArchInfoRequest{}
		reqs = append(reqs, arch)
	}

	if len(reqs) == 0 {
		return &result, nil
	}

	if err := q.Query(ctx, reqs); err != nil {
		return nil, err
	}

	if kv != nil {
		result.KernelVendor = &KernelVendor{
			Name:    kv.VendorName.String(),
			BuildID: kv.BuildID,
			Major:   kv.KernelMajor,
			Minor:   kv.KernelMinor,
		}
	}
	if osver != nil {
		result.OsVersion = &OsVersion{
			Name:  osver.VendorName.String(),
			Major: osver.OsMajor,
			Minor: osver.OsMinor,
		}
	}
	if cname != nil {
		result.ComputerName = &ComputerName{
			Hostname:    cname.Hostname.String(),
			Label:       cname.SysLabel.String(),
			DisplayName: cname.SysDisplayName.String(),
			HostID:      cname.HostID,
		}
	}
	if arch != nil {
		result.Arch = &Arch{Type: arch.ArchType, Version: arch.ArchVersion}
	}

	return &result, nil
}
