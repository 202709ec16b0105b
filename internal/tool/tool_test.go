package tool

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/mrzor/lilium-tools/internal/kabi"
	"github.com/mrzor/lilium-tools/internal/kabi/kabitest"
	"github.com/mrzor/lilium-tools/internal/start"
	"github.com/mrzor/lilium-tools/internal/sysinfo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testInfo = Info{
	Name:    "probe",
	Version: "1.2.3",
	Usage:   "[OPTION]",
	Summary: "Probes the system",
	Options: []string{"-x: Does nothing"},
}

type result struct {
	code   int
	stdout string
	stderr string
}

func run(t *testing.T, k *kabitest.Kernel, argv, envp [][]byte, body Body) result {
	t.Helper()
	var stdout, stderr bytes.Buffer
	rt := start.New(k, start.Options{Stdout: &stdout, Stderr: &stderr})
	argc, av := kabi.NewCArray(argv)
	_, ev := kabi.NewCArray(envp)
	code := rt.Start(argc, av, ev, Entry(testInfo, k, body))
	return result{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func strs(items ...string) [][]byte {
	out := make([][]byte, len(items))
	for i, s := range items {
		out[i] = []byte(s)
	}
	return out
}

// exportedSpan is the part of a stdouttrace record the tests look at.
type exportedSpan struct {
	Name        string
	SpanContext struct{ TraceID, SpanID string }
	Parent      struct{ TraceID, SpanID string }
	Attributes  []struct {
		Key   string
		Value struct{ Value any }
	}
	Status struct{ Code, Description string }
}

func (s exportedSpan) attr(key string) any {
	for _, kv := range s.Attributes {
		if kv.Key == key {
			return kv.Value.Value
		}
	}
	return nil
}

// spansByName decodes the span records written to stderr.
func spansByName(t *testing.T, stderr string) map[string]exportedSpan {
	t.Helper()
	out := make(map[string]exportedSpan)
	for _, line := range strings.Split(stderr, "\n") {
		if !strings.HasPrefix(line, "{") {
			continue
		}
		var s exportedSpan
		require.NoError(t, json.Unmarshal([]byte(line), &s), line)
		out[s.Name] = s
	}
	return out
}

func mustNotRun(t *testing.T) Body {
	return func(context.Context, *Context) start.Termination {
		t.Error("body should not run")
		return start.Success{}
	}
}

func TestEntry_Help(t *testing.T) {
	r := run(t, &kabitest.Kernel{}, strs("/bin/probe", "--help"), nil, mustNotRun(t))

	assert.Equal(t, 0, r.code)
	assert.Equal(t, "Usage: /bin/probe [OPTION]\n"+
		"Probes the system\n"+
		"Options:\n"+
		"\t-x: Does nothing\n"+
		"\t--help: Prints this message and exits\n"+
		"\t--version: Prints version information and exits\n", r.stdout)
}

func TestEntry_Version(t *testing.T) {
	r := run(t, &kabitest.Kernel{}, strs("probe", "--version"), nil, mustNotRun(t))

	assert.Equal(t, 0, r.code)
	assert.Equal(t, "probe v1.2.3\n", r.stdout)
}

func TestEntry_VersionFormat(t *testing.T) {
	info := testInfo
	info.VersionFormat = "%s (lilium-tools) v%s"

	var stdout bytes.Buffer
	k := &kabitest.Kernel{}
	rt := start.New(k, start.Options{Stdout: &stdout, Stderr: &bytes.Buffer{}})
	argc, av := kabi.NewCArray(strs("probe", "--version"))
	_, ev := kabi.NewCArray(nil)
	code := rt.Start(argc, av, ev, Entry(info, k, mustNotRun(t)))

	assert.Equal(t, 0, code)
	assert.Equal(t, "probe (lilium-tools) v1.2.3\n", stdout.String())
}

func TestEntry_FirstOfHelpAndVersionWins(t *testing.T) {
	r := run(t, &kabitest.Kernel{}, strs("probe", "--version", "--help"), nil, mustNotRun(t))
	assert.Equal(t, "probe v1.2.3\n", r.stdout)

	r = run(t, &kabitest.Kernel{}, strs("probe", "--help", "--version"), nil, mustNotRun(t))
	assert.True(t, strings.HasPrefix(r.stdout, "Usage: probe [OPTION]\n"), r.stdout)
}

func TestEntry_RunsBodyWithContext(t *testing.T) {
	k := &kabitest.Kernel{Hostname: "lilium-01"}
	var got *Context
	r := run(t, k, strs("probe", "-x", "y"), strs("PATH=/bin"), func(ctx context.Context, c *Context) start.Termination {
		got = c
		info, err := c.Querier.Collect(ctx, sysinfo.WantComputerName)
		if err != nil {
			return start.Fail(err)
		}
		c.Printf("%s\n", info.ComputerName.Hostname)
		return start.ExitCode(3)
	})

	assert.Equal(t, 3, r.code)
	assert.Equal(t, "lilium-01\n", r.stdout)
	require.NotNil(t, got)
	assert.Equal(t, []string{"-x", "y"}, got.Args.Rest)
	assert.Equal(t, "/bin", got.Meta.Environ["PATH"])
	assert.Equal(t, 8, got.Config.MaxQueryRounds)
	assert.Equal(t, 2, k.Calls())
}

func TestEntry_ConfigError(t *testing.T) {
	r := run(t, &kabitest.Kernel{}, strs("probe"), strs("LILIUM_SYSINFO_MAX_ROUNDS=0"), mustNotRun(t))

	assert.Equal(t, start.FailureCode, r.code)
	assert.Equal(t, "probe: LILIUM_SYSINFO_MAX_ROUNDS must be at least 1, got 0\n", r.stderr)
}

func TestEntry_BodyFailure(t *testing.T) {
	r := run(t, &kabitest.Kernel{}, strs("probe"), nil, func(context.Context, *Context) start.Termination {
		return start.Fail(errors.New("boom"))
	})

	assert.Equal(t, start.FailureCode, r.code)
	assert.Equal(t, "probe: boom\n", r.stderr)
}

func TestEntry_StrictDecodeRejectsBadArgument(t *testing.T) {
	argv := [][]byte{[]byte("probe"), {0xff}}
	r := run(t, &kabitest.Kernel{}, argv, nil, mustNotRun(t))

	assert.Equal(t, start.FailureCode, r.code)
	assert.Contains(t, r.stderr, "probe: argv[1]: invalid UTF-8 text")
}

func TestEntry_LossyDecodeFromEnvironment(t *testing.T) {
	argv := [][]byte{[]byte("probe"), {0xff}}
	var rest []string
	r := run(t, &kabitest.Kernel{}, argv, strs("LILIUM_DECODE=lossy"), func(_ context.Context, c *Context) start.Termination {
		rest = c.Args.Rest
		return start.Success{}
	})

	assert.Equal(t, 0, r.code)
	assert.Equal(t, []string{"�"}, rest)
}

func TestEntry_EmptyArgv(t *testing.T) {
	var program string
	r := run(t, &kabitest.Kernel{}, nil, nil, func(_ context.Context, c *Context) start.Termination {
		program = c.Args.Program
		return start.Success{}
	})

	assert.Equal(t, 0, r.code)
	assert.Equal(t, start.FallbackName, program)
}

func TestEntry_DebugLogging(t *testing.T) {
	k := &kabitest.Kernel{Hostname: "h"}
	r := run(t, k, strs("probe"), strs("LILIUM_DEBUG=1", "NOEQUALS"), func(ctx context.Context, c *Context) start.Termination {
		_, err := c.Querier.Collect(ctx, sysinfo.WantComputerName)
		return start.FromError(err)
	})

	assert.Equal(t, 0, r.code)
	assert.Contains(t, r.stderr, "probe: ")
	assert.Contains(t, r.stderr, "skipped process entry: envp[1]")
	assert.Contains(t, r.stderr, "sysinfo: round 2: status=ok grown=0")
}

func TestEntry_TraceWritesSpans(t *testing.T) {
	k := &kabitest.Kernel{Arch: kabi.ARCH_TYPE_X86_64}
	r := run(t, k, strs("probe"), strs("LILIUM_TRACE=1"), func(ctx context.Context, c *Context) start.Termination {
		_, err := c.Querier.Collect(ctx, sysinfo.WantArch)
		return start.FromError(err)
	})

	assert.Equal(t, 0, r.code)
	spans := spansByName(t, r.stderr)
	require.Contains(t, spans, "probe")
	require.Contains(t, spans, "sysinfo.Query")
	assert.Equal(t, spans["probe"].SpanContext.SpanID, spans["sysinfo.Query"].Parent.SpanID)
	assert.Equal(t, spans["probe"].SpanContext.TraceID, spans["sysinfo.Query"].SpanContext.TraceID)
}

func TestEntry_TraceRecordsFailure(t *testing.T) {
	k := &kabitest.Kernel{Fail: kabi.PERMISSION}
	r := run(t, k, strs("probe"), strs("LILIUM_TRACE=1"), func(ctx context.Context, c *Context) start.Termination {
		_, err := c.Querier.Collect(ctx, sysinfo.WantArch)
		return start.FromError(err)
	})

	assert.Equal(t, start.FailureCode, r.code)
	spans := spansByName(t, r.stderr)
	require.Contains(t, spans, "probe")
	assert.Equal(t, "Error", spans["probe"].Status.Code)
	assert.Contains(t, r.stderr, "probe: get system info: kernel error -1: permission denied\n")
}

func TestEntry_TraceAttributesAndID(t *testing.T) {
	r := run(t, &kabitest.Kernel{}, strs("probe"), strs(
		"LILIUM_TRACE=1",
		"USER=root",
		`LILIUM_TRACE_ATTRIBUTES=user=env["USER"];argc=len(args)`,
		`LILIUM_TRACE_ID="0123456789abcdef0123456789abcdef"`,
		`LILIUM_PARENT_ID="00f067aa0ba902b7"`,
	), func(context.Context, *Context) start.Termination {
		return start.Success{}
	})

	assert.Equal(t, 0, r.code, r.stderr)
	spans := spansByName(t, r.stderr)
	require.Contains(t, spans, "probe")
	root := spans["probe"]
	assert.Equal(t, "0123456789abcdef0123456789abcdef", root.SpanContext.TraceID)
	assert.Equal(t, "00f067aa0ba902b7", root.Parent.SpanID)
	assert.Equal(t, "root", root.attr("user"))
	assert.Equal(t, "1", root.attr("argc"))
	assert.Nil(t, root.attr("_trace_id_invalid_warning"))
}

func TestEntry_TraceIDIsHashedWhenNotHex(t *testing.T) {
	r := run(t, &kabitest.Kernel{}, strs("probe"), strs(
		"LILIUM_TRACE=1",
		"JOB=build-42",
		`LILIUM_TRACE_ID=env["JOB"]`,
	), func(context.Context, *Context) start.Termination {
		return start.Success{}
	})

	assert.Equal(t, 0, r.code, r.stderr)
	sum := sha256.Sum256([]byte("build-42"))
	spans := spansByName(t, r.stderr)
	require.Contains(t, spans, "probe")
	root := spans["probe"]
	assert.Equal(t, hex.EncodeToString(sum[:16]), root.SpanContext.TraceID)
	assert.Equal(t, "build-42", root.attr("_trace_id_expr_result"))
	assert.NotNil(t, root.attr("_trace_id_invalid_warning"))
}

func TestEntry_LossySnapshotMatchesArguments(t *testing.T) {
	argv := [][]byte{[]byte("probe"), []byte("x\xff")}
	envp := [][]byte{[]byte("LILIUM_DECODE=lossy"), []byte("NAME=caf\xe9")}
	var got *Context
	r := run(t, &kabitest.Kernel{}, argv, envp, func(_ context.Context, c *Context) start.Termination {
		got = c
		return start.Success{}
	})

	assert.Equal(t, 0, r.code, r.stderr)
	require.NotNil(t, got)
	assert.Equal(t, []string{"x\uFFFD"}, got.Args.Rest)
	assert.Equal(t, []string{"probe", "x\uFFFD"}, got.Meta.Args)
	assert.Equal(t, "caf\uFFFD", got.Meta.Environ["NAME"])
	assert.Equal(t, "probe x\uFFFD", got.Meta.CmdlineFull)
}

func TestEntry_BadTraceExpression(t *testing.T) {
	r := run(t, &kabitest.Kernel{}, strs("probe"), strs("LILIUM_TRACE_ID=env["), mustNotRun(t))

	assert.Equal(t, start.FailureCode, r.code)
	assert.Contains(t, r.stderr, "probe: failed to compile trace-id expression")
}
