package config

import (
	"fmt"
)

// Action is what a tool's leading options ask for.
type Action int

const (
	// ActionRun runs the tool body.
	ActionRun Action = iota
	// ActionHelp prints usage and exits.
	ActionHelp
	// ActionVersion prints the version line and exits.
	ActionVersion
)

// ToolArgs holds the options every tool understands.
type ToolArgs struct {
	// Program is argv[0]
	Program string
	// Action is set by the first --help or --version seen
	Action Action
	// Rest are the arguments left for the tool, starting at the first one
	// that is neither --help nor --version. A "--" separator is dropped.
	Rest []string
}

// ParseToolArgs scans the leading options. The first --help or --version
// decides the action and ends the scan.
// Expected format: program_name [--help | --version] [--] [args...]
func ParseToolArgs(args []string) (*ToolArgs, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("no arguments provided")
	}

	ta := &ToolArgs{Program: args[0]}
	for i := 1; i < len(args); i++ {
		switch args[i] {
		case "--help":
			ta.Action = ActionHelp
			return ta, nil
		case "--version":
			ta.Action = ActionVersion
			return ta, nil
		case "--":
			ta.Rest = args[i+1:]
			return ta, nil
		default:
			ta.Rest = args[i:]
			return ta, nil
		}
	}
	return ta, nil
}
