package output

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mrzor/lilium-tools/internal/sysinfo"
)

// KernelName is printed for uname -s.
const KernelName = "Lilium"

// PrintMode is one uname output field.
type PrintMode int

// Fields in the order uname -a prints them.
const (
	ModeKernelName PrintMode = iota
	ModeNodeName
	ModeKRelease
	ModeKVersion
	ModeMachine
	ModeProcessor
	ModeHardwarePlatform
	ModeOs
)

// AllModes is what -a expands to.
var AllModes = []PrintMode{
	ModeKernelName,
	ModeNodeName,
	ModeKRelease,
	ModeKVersion,
	ModeMachine,
	ModeProcessor,
	ModeHardwarePlatform,
	ModeOs,
}

var modeNames = map[PrintMode]string{
	ModeKernelName:       "kernel-name",
	ModeNodeName:         "nodename",
	ModeKRelease:         "kernel-release",
	ModeKVersion:         "kernel-version",
	ModeMachine:          "machine",
	ModeProcessor:        "processor",
	ModeHardwarePlatform: "hardware-platform",
	ModeOs:               "operating-system",
}

func (m PrintMode) String() string {
	if s, ok := modeNames[m]; ok {
		return s
	}
	return fmt.Sprintf("PrintMode(%d)", int(m))
}

var modeFlags = map[rune]PrintMode{
	's': ModeKernelName,
	'n': ModeNodeName,
	'r': ModeKRelease,
	'v': ModeKVersion,
	'm': ModeMachine,
	'p': ModeProcessor,
	'i': ModeHardwarePlatform,
	'o': ModeOs,
}

// ErrUsage marks a bad uname command line.
var ErrUsage = errors.New("usage")

// ParseModes turns uname operands into the fields to print, in command-line
// order. Letters may be grouped ("-snr"); -a appends every field. With no
// operands the kernel name alone is printed.
func ParseModes(args []string) ([]PrintMode, error) {
	var modes []PrintMode
	for _, arg := range args {
		switch {
		case strings.HasPrefix(arg, "--"):
			return nil, fmt.Errorf("%w: unknown option %s", ErrUsage, arg)
		case strings.HasPrefix(arg, "-") && len(arg) > 1:
			for _, c := range arg[1:] {
				if c == 'a' {
					modes = append(modes, AllModes...)
					continue
				}
				m, ok := modeFlags[c]
				if !ok {
					return nil, fmt.Errorf("%w: unknown option -%c", ErrUsage, c)
				}
				modes = append(modes, m)
			}
		default:
			return nil, fmt.Errorf("%w: unknown argument %s", ErrUsage, arg)
		}
	}
	if len(modes) == 0 {
		modes = append(modes, ModeKernelName)
	}
	return modes, nil
}

// Needs reports which facts rendering modes requires.
func Needs(modes []PrintMode) sysinfo.Want {
	var w sysinfo.Want
	for _, m := range modes {
		switch m {
		case ModeNodeName:
			w |= sysinfo.WantComputerName
		case ModeKRelease:
			w |= sysinfo.WantKernelVendor
		case ModeKVersion:
			w |= sysinfo.WantKernelVendor | sysinfo.WantOsVersion
		case ModeMachine, ModeProcessor, ModeHardwarePlatform:
			w |= sysinfo.WantArch
		case ModeOs:
			w |= sysinfo.WantOsVersion
		}
	}
	return w
}

// Field renders one mode. It fails when info lacks a fact the mode needs.
func Field(m PrintMode, info *sysinfo.Info) (string, error) {
	missing := func(fact string) (string, error) {
		return "", fmt.Errorf("%s: %s not collected", m, fact)
	}

	switch m {
	case ModeKernelName:
		return KernelName, nil
	case ModeNodeName:
		if info.ComputerName == nil {
			return missing("computer name")
		}
		return info.ComputerName.Hostname, nil
	case ModeKRelease:
		if info.KernelVendor == nil {
			return missing("kernel vendor")
		}
		kv := info.KernelVendor
		return fmt.Sprintf("%s %d.%d", kv.Name, kv.Major, kv.Minor), nil
	case ModeKVersion:
		if info.KernelVendor == nil {
			return missing("kernel vendor")
		}
		if info.OsVersion == nil {
			return missing("os version")
		}
		return fmt.Sprintf("%d.%d (%d.%d)",
			info.OsVersion.Major, info.OsVersion.Minor,
			info.KernelVendor.Major, info.KernelVendor.Minor), nil
	case ModeMachine:
		if info.Arch == nil {
			return missing("arch info")
		}
		return MachineName(info.Arch.Type), nil
	case ModeProcessor, ModeHardwarePlatform:
		if info.Arch == nil {
			return missing("arch info")
		}
		return ProcessorName(info.Arch.Type, info.Arch.Version), nil
	case ModeOs:
		if info.OsVersion == nil {
			return missing("os version")
		}
		return info.OsVersion.Name, nil
	default:
		return "", fmt.Errorf("unknown print mode %d", int(m))
	}
}

// Line renders modes in order, separated by single spaces.
func Line(modes []PrintMode, info *sysinfo.Info) (string, error) {
	fields := make([]string, 0, len(modes))
	for _, m := range modes {
		f, err := Field(m, info)
		if err != nil {
			return "", err
		}
		fields = append(fields, f)
	}
	return strings.Join(fields, " "), nil
}
