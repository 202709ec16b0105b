// arch prints the host machine architecture.
package main

import (
	"context"

	"github.com/mrzor/lilium-tools/internal/output"
	"github.com/mrzor/lilium-tools/internal/start"
	"github.com/mrzor/lilium-tools/internal/sysinfo"
	"github.com/mrzor/lilium-tools/internal/tool"
)

// Version information injected at build time.
var version = "dev"

var toolInfo = tool.Info{
	Name:    "arch",
	Version: version,
	Usage:   "[OPTION]",
	Summary: "Prints the host machine",

	VersionFormat: "%s (lilium-tools) v%s",
}

func main() {
	tool.Main(toolInfo, run)
}

func run(ctx context.Context, c *tool.Context) start.Termination {
	if len(c.Args.Rest) > 0 {
		c.Printf("%s: Unknown option %s\n", c.Args.Program, c.Args.Rest[0])
		return start.ExitCode(1)
	}

	info, err := c.Querier.Collect(ctx, sysinfo.WantArch)
	if err != nil {
		return start.Fail(err)
	}
	c.Printf("%s\n", output.ArchName(info.Arch.Type))
	return start.Success{}
}
