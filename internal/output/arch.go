package output

import (
	"fmt"

	"github.com/mrzor/lilium-tools/internal/kabi"
)

// ArchName is the short machine name printed by arch.
func ArchName(t kabi.ArchType) string {
	switch t {
	case kabi.ARCH_TYPE_X86_64:
		return "x86_64"
	case kabi.ARCH_TYPE_X86_IA_32:
		return "i686"
	case kabi.ARCH_TYPE_AARCH64:
		return "aarch64"
	case kabi.ARCH_TYPE_ARM32:
		return "arm"
	case kabi.ARCH_TYPE_RISCV32:
		return "riscv32"
	case kabi.ARCH_TYPE_RISCV64:
		return "riscv64"
	case kabi.ARCH_TYPE_CLEVER_ISA:
		return "clever"
	default:
		return fmt.Sprintf("**UNKNOWN ARCH %d**", uint32(t))
	}
}

// MachineName is the uname -m field.
func MachineName(t kabi.ArchType) string {
	switch t {
	case kabi.ARCH_TYPE_CLEVER_ISA:
		return "Clever-ISA"
	case kabi.ARCH_TYPE_X86_64, kabi.ARCH_TYPE_X86_IA_32, kabi.ARCH_TYPE_AARCH64,
		kabi.ARCH_TYPE_ARM32, kabi.ARCH_TYPE_RISCV32, kabi.ARCH_TYPE_RISCV64:
		return ArchName(t)
	default:
		return "**UNKNOWN ARCH**!"
	}
}

// ProcessorName is the uname -p and -i field. It folds the arch version
// in where the architecture has meaningful levels.
func ProcessorName(t kabi.ArchType, version uint32) string {
	switch t {
	case kabi.ARCH_TYPE_X86_64:
		if version > 1 {
			return fmt.Sprintf("x86_64v%d", version)
		}
		return "x86_64"
	case kabi.ARCH_TYPE_X86_IA_32:
		return fmt.Sprintf("i%d86", version)
	case kabi.ARCH_TYPE_CLEVER_ISA:
		return fmt.Sprintf("Clever-ISA 1.%d", version)
	case kabi.ARCH_TYPE_AARCH64, kabi.ARCH_TYPE_ARM32, kabi.ARCH_TYPE_RISCV32, kabi.ARCH_TYPE_RISCV64:
		return ArchName(t)
	default:
		return fmt.Sprintf("Unknown Arch %d", uint32(t))
	}
}
