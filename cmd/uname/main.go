// uname prints system information.
package main

import (
	"context"

	"github.com/mrzor/lilium-tools/internal/output"
	"github.com/mrzor/lilium-tools/internal/start"
	"github.com/mrzor/lilium-tools/internal/tool"
)

// Version information injected at build time.
var version = "dev"

var toolInfo = tool.Info{
	Name:    "uname",
	Version: version,
	Usage:   "[OPTION]...",
	Summary: "Prints system information. With no OPTION, same as -s.",
	Options: []string{
		"-a: Prints all information, in the order below",
		"-s: Prints the kernel name",
		"-n: Prints the network node hostname",
		"-r: Prints the kernel release",
		"-v: Prints the kernel version",
		"-m: Prints the machine hardware name",
		"-p: Prints the processor type",
		"-i: Prints the hardware platform",
		"-o: Prints the operating system",
	},
	VersionFormat: "%s %s",
}

func main() {
	tool.Main(toolInfo, run)
}

func run(ctx context.Context, c *tool.Context) start.Termination {
	// --help and --version may follow print options; anything before them
	// must still parse.
	args := c.Args.Rest
	for i, arg := range args {
		if arg != "--help" && arg != "--version" {
			continue
		}
		if _, err := output.ParseModes(args[:i]); err != nil {
			return start.Fail(err)
		}
		if arg == "--help" {
			return c.PrintHelp()
		}
		return c.PrintVersion()
	}

	modes, err := output.ParseModes(args)
	if err != nil {
		return start.Fail(err)
	}
	c.Logger.Printf("print modes: %v", modes)

	// Only the facts the requested fields need go into the batch.
	info, err := c.Querier.Collect(ctx, output.Needs(modes))
	if err != nil {
		return start.Fail(err)
	}

	line, err := output.Line(modes, info)
	if err != nil {
		return start.Fail(err)
	}
	c.Printf("%s\n", line)
	return start.Success{}
}
