// Package sysinfo negotiates variable-length system facts with the kernel.
//
// All wanted facts go out in a single GetSystemInfo batch. The kernel writes
// every text field that fits and, for each one that does not, reports the
// size it needs. The Querier then regrows exactly those buffers and
// resubmits:
//
//	┌──────────┐  OK / INSUFFICIENT_LENGTH   ┌────────┐
//	│  Submit  │ ──────────────────────────▶ │ Regrow │
//	└────▲─────┘                             └───┬────┘
//	     │            grown > 0                  │ grown == 0
//	     └───────────────────────────────────────┤
//	                                             ▼
//	      other status ──▶ *kabi.Error        done
//
// Round trips are capped at Options.MaxRounds; a kernel that keeps asking
// for more yields ErrNotConverged.
package sysinfo
