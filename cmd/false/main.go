// false does nothing, unsuccessfully.
package main

import (
	"context"

	"github.com/mrzor/lilium-tools/internal/start"
	"github.com/mrzor/lilium-tools/internal/tool"
)

// Version information injected at build time.
var version = "dev"

var toolInfo = tool.Info{
	Name:    "false",
	Version: version,
	Usage:   "[OPTIONS...] [--] [ARGS...]",
	Summary: "Trivially exits 1",
}

func main() {
	tool.Main(toolInfo, run)
}

func run(context.Context, *tool.Context) start.Termination {
	return start.ExitCode(1)
}
