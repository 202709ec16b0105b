// Package tool wires the runtime, configuration, tracing and the kernel
// services together for the command-line tools.
package tool

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/mrzor/lilium-tools/internal/attributes"
	"github.com/mrzor/lilium-tools/internal/config"
	"github.com/mrzor/lilium-tools/internal/hostkernel"
	"github.com/mrzor/lilium-tools/internal/kabi"
	"github.com/mrzor/lilium-tools/internal/otel"
	"github.com/mrzor/lilium-tools/internal/procmeta"
	"github.com/mrzor/lilium-tools/internal/start"
	"github.com/mrzor/lilium-tools/internal/sysinfo"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// Info describes a tool for --help and --version.
type Info struct {
	Name    string
	Version string
	// Usage follows the program name on the usage line.
	Usage string
	// Summary is the one-line description printed under the usage line.
	Summary string
	// Options are extra help lines, printed before --help and --version.
	Options []string
	// VersionFormat is the --version line, formatted with the name and
	// the version. Defaults to "%s v%s".
	VersionFormat string
}

// Context is what a tool body gets to work with.
type Context struct {
	Process *start.Process
	Config  *config.Config
	Meta    *procmeta.ProcessMetadata
	Args    *config.ToolArgs
	Logger  *log.Logger
	Tracer  trace.Tracer
	Querier *sysinfo.Querier

	info Info
	// parent carries the caller's span, if one was configured.
	parent    context.Context
	rootAttrs []attribute.KeyValue
}

// Printf writes to the process's standard output.
func (c *Context) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(c.Process.Stdout(), format, args...)
}

// PrintHelp writes the tool's usage text.
func (c *Context) PrintHelp() start.Termination {
	c.Printf("Usage: %s %s\n", c.Args.Program, c.info.Usage)
	c.Printf("%s\n", c.info.Summary)
	c.Printf("Options:\n")
	for _, opt := range c.info.Options {
		c.Printf("\t%s\n", opt)
	}
	c.Printf("\t--help: Prints this message and exits\n")
	c.Printf("\t--version: Prints version information and exits\n")
	return start.Success{}
}

// PrintVersion writes the tool's version line.
func (c *Context) PrintVersion() start.Termination {
	format := c.info.VersionFormat
	if format == "" {
		format = "%s v%s"
	}
	c.Printf(format+"\n", c.info.Name, c.info.Version)
	return start.Success{}
}

// Body is a tool's own logic. It runs after --help and --version have been
// handled.
type Body func(ctx context.Context, c *Context) start.Termination

// Main runs a tool on the host and exits with its code.
func Main(info Info, body Body) {
	host := hostkernel.New(log.New(io.Discard, "", 0))
	rt := start.New(host, start.Options{})
	os.Exit(rt.Main(host, Entry(info, host, body)))
}

// Entry builds the start.Entry of a tool answering system queries through
// kernel.
func Entry(info Info, kernel kabi.Introspector, body Body) start.Entry {
	return func(p *start.Process) start.Termination {
		c, cleanup, err := setup(info, p, kernel)
		if err != nil {
			return start.Fail(err)
		}
		defer cleanup()

		switch c.Args.Action {
		case config.ActionHelp:
			return c.PrintHelp()
		case config.ActionVersion:
			return c.PrintVersion()
		}

		ctx, span := c.Tracer.Start(c.parent, info.Name, trace.WithAttributes(c.rootAttrs...))
		defer span.End()

		t := body(ctx, c)
		if r, ok := t.(start.Result); ok && r.Err != nil {
			span.RecordError(r.Err)
			span.SetStatus(codes.Error, r.Err.Error())
		}
		return t
	}
}

// setup parses configuration from the process environment and prepares
// logging, tracing and the querier.
func setup(info Info, p *start.Process, kernel kabi.Introspector) (*Context, func(), error) {
	md, issues := procmeta.FromProcess(p)

	cfg, err := config.Parse(md.Environ)
	if err != nil {
		return nil, nil, err
	}
	if cfg.Decode != p.DecodePolicy() {
		// The snapshot must see the same text the tool body will.
		p = p.WithDecodePolicy(cfg.Decode)
		md, issues = procmeta.FromProcess(p)
	}

	logger := log.New(io.Discard, "", 0)
	if cfg.Debug {
		logger = log.New(p.Stderr(), info.Name+": ", log.LstdFlags|log.Lmicroseconds)
	}
	for _, issue := range issues {
		logger.Printf("skipped process entry: %s", issue)
	}

	args, err := p.Args().Collect()
	if err != nil {
		return nil, nil, err
	}
	if len(args) == 0 {
		args = []string{p.DisplayName()}
	}
	toolArgs, err := config.ParseToolArgs(args)
	if err != nil {
		return nil, nil, err
	}

	parent, rootAttrs, tpOpts, err := traceContext(cfg, md, logger)
	if err != nil {
		return nil, nil, err
	}

	tp, err := otel.InitProvider(cfg, md, logger, p.Stderr(), tpOpts...)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := otel.ShutdownProvider(tp, shutdownCtx); err != nil {
			logger.Printf("Error shutting down OTEL provider: %v", err)
		}
	}

	tracer := tp.Tracer("github.com/mrzor/lilium-tools/" + info.Name)
	c := &Context{
		Process: p,
		Config:  cfg,
		Meta:    md,
		Args:    toolArgs,
		Logger:  logger,
		Tracer:  tracer,
		Querier: sysinfo.New(kernel, sysinfo.Options{
			MaxRounds: cfg.MaxQueryRounds,
			Logger:    logger,
			Tracer:    tracer,
		}),
		info:      info,
		parent:    parent,
		rootAttrs: rootAttrs,
	}
	return c, cleanup, nil
}

// traceContext evaluates the configured trace expressions. Expressions that
// do not compile are an error; ones that fail at run time are logged and
// skipped.
func traceContext(cfg *config.Config, md *procmeta.ProcessMetadata, logger *log.Logger) (context.Context, []attribute.KeyValue, []sdktrace.TracerProviderOption, error) {
	attrEval, err := attributes.NewEvaluator(cfg.CustomAttributes)
	if err != nil {
		return nil, nil, nil, err
	}
	traceEval, err := attributes.NewTraceIDEvaluator(cfg.TraceID)
	if err != nil {
		return nil, nil, nil, err
	}
	parentEval, err := attributes.NewParentIDEvaluator(cfg.ParentID)
	if err != nil {
		return nil, nil, nil, err
	}

	attrs, err := attrEval.Evaluate(md)
	if err != nil {
		logger.Printf("trace attributes: %v", err)
	}

	traceID, warnings, err := traceEval.EvaluateAndValidate(md)
	if err != nil {
		logger.Printf("trace id: %v", err)
	}
	attrs = append(attrs, warnings...)

	parentID, warnings, err := parentEval.EvaluateAndValidate(md)
	if err != nil {
		logger.Printf("parent id: %v", err)
	}
	attrs = append(attrs, warnings...)

	ctx := context.Background()
	var opts []sdktrace.TracerProviderOption
	if traceID.IsValid() {
		opts = append(opts, sdktrace.WithIDGenerator(&otel.TraceIDGenerator{TraceID: traceID}))
		if parentID.IsValid() {
			ctx = trace.ContextWithRemoteSpanContext(ctx, trace.NewSpanContext(trace.SpanContextConfig{
				TraceID:    traceID,
				SpanID:     parentID,
				TraceFlags: trace.FlagsSampled,
				Remote:     true,
			}))
		}
	}
	return ctx, attrs, opts, nil
}
