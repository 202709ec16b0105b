package start

import (
	"errors"
	"io"

	"github.com/mrzor/lilium-tools/internal/kabi"
)

// FallbackName identifies the runtime in diagnostics when no program name
// was captured at startup.
const FallbackName = "minish"

// Process is the identity captured by the trampoline: argument and
// environment vectors plus the program name. It is built once, before the
// entry point runs, and never mutated afterwards, so it may be shared freely.
type Process struct {
	name    string
	hasName bool
	argc    int
	argv    **byte
	envp    **byte
	policy  DecodePolicy
	stdout  io.Writer
	stderr  io.Writer
}

func newProcess(argc int, argv, envp **byte, policy DecodePolicy, stdout, stderr io.Writer) *Process {
	p := &Process{
		argc:   argc,
		argv:   argv,
		envp:   envp,
		policy: policy,
		stdout: stdout,
		stderr: stderr,
	}
	if argc > 0 {
		if first := kabi.Slot(argv, 0); first != nil {
			p.name = decodeLossy(kabi.CString(first))
			p.hasName = true
		}
	}
	return p
}

// Name returns the program name captured from argv[0], if any.
func (p *Process) Name() (string, bool) {
	return p.name, p.hasName
}

// DisplayName returns the program name, or FallbackName if none was captured.
func (p *Process) DisplayName() string {
	if !p.hasName {
		return FallbackName
	}
	return p.name
}

// Argc returns the argument count the loader reported.
func (p *Process) Argc() int {
	return p.argc
}

// Args returns a fresh cursor at the start of the argument vector.
func (p *Process) Args() *Args {
	return &Args{base: p.argv, policy: p.policy}
}

// Environ returns a fresh cursor at the start of the environment vector.
func (p *Process) Environ() *Vars {
	return &Vars{base: p.envp, policy: p.policy}
}

// Getenv returns the value of the first environment entry named name.
// Malformed entries are skipped.
func (p *Process) Getenv(name string) (string, bool) {
	vars := p.Environ()
	for {
		kv, err := vars.Next()
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			continue
		}
		if kv.Name == name {
			return kv.Value, true
		}
	}
}

// DecodePolicy returns the policy the views apply to ill-formed text.
func (p *Process) DecodePolicy() DecodePolicy {
	return p.policy
}

// WithDecodePolicy returns a copy of p whose views use policy.
func (p *Process) WithDecodePolicy(policy DecodePolicy) *Process {
	cp := *p
	cp.policy = policy
	return &cp
}

// Stdout returns the standard output stream.
func (p *Process) Stdout() io.Writer {
	return p.stdout
}

// Stderr returns the diagnostic stream.
func (p *Process) Stderr() io.Writer {
	return p.stderr
}
