// true does nothing, successfully.
package main

import (
	"context"

	"github.com/mrzor/lilium-tools/internal/start"
	"github.com/mrzor/lilium-tools/internal/tool"
)

// Version information injected at build time.
var version = "dev"

var toolInfo = tool.Info{
	Name:    "true",
	Version: version,
	Usage:   "[OPTIONS...] [--] [ARGS...]",
	Summary: "Trivially exits 0",
}

func main() {
	tool.Main(toolInfo, run)
}

func run(context.Context, *tool.Context) start.Termination {
	return start.Success{}
}
