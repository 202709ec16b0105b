package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/mrzor/lilium-tools/internal/kabi"
	"github.com/mrzor/lilium-tools/internal/kabi/kabitest"
	"github.com/mrzor/lilium-tools/internal/start"
	"github.com/mrzor/lilium-tools/internal/tool"
	"github.com/stretchr/testify/assert"
)

type result struct {
	code   int
	stdout string
	stderr string
}

func execute(k *kabitest.Kernel, args ...string) result {
	var stdout, stderr bytes.Buffer
	rt := start.New(k, start.Options{Stdout: &stdout, Stderr: &stderr})
	argc, argv := kabi.NewCStrings(args...)
	_, envp := kabi.NewCStrings()
	code := rt.Start(argc, argv, envp, tool.Entry(toolInfo, k, run))
	return result{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func testKernel() *kabitest.Kernel {
	return &kabitest.Kernel{
		KernelVendor: "Lilium", BuildID: uuid.MustParse("0f8fad5b-d9cb-469f-a165-70867728950e"),
		KernelMajor: 0, KernelMinor: 1,
		OsVendor: "Lilium Userland", OsMajor: 1, OsMinor: 2,
		Hostname: "lilium-01",
		Arch:     kabi.ARCH_TYPE_X86_64, ArchVersion: 3,
	}
}

func TestUname(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		want      string
		wantCalls int
	}{
		{"default", nil, "Lilium\n", 0},
		{"kernel name", []string{"-s"}, "Lilium\n", 0},
		{"nodename", []string{"-n"}, "lilium-01\n", 2},
		{"release", []string{"-r"}, "Lilium 0.1\n", 2},
		{"version", []string{"-v"}, "1.2 (0.1)\n", 2},
		{"machine", []string{"-m"}, "x86_64\n", 1},
		{"processor", []string{"-p"}, "x86_64v3\n", 1},
		{"platform", []string{"-i"}, "x86_64v3\n", 1},
		{"os", []string{"-o"}, "Lilium Userland\n", 2},
		{"grouped", []string{"-snm"}, "Lilium lilium-01 x86_64\n", 2},
		{"all", []string{"-a"}, "Lilium lilium-01 Lilium 0.1 1.2 (0.1) x86_64 x86_64v3 x86_64v3 Lilium Userland\n", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k := testKernel()
			r := execute(k, append([]string{"uname"}, tt.args...)...)

			assert.Equal(t, 0, r.code)
			assert.Equal(t, tt.want, r.stdout)
			assert.Empty(t, r.stderr)
			assert.Equal(t, tt.wantCalls, k.Calls())
		})
	}
}

func TestUname_OnlyRequestsNeededFacts(t *testing.T) {
	k := testKernel()
	execute(k, "uname", "-m")

	// An arch-only batch has no text descriptors.
	assert.Equal(t, [][]int{nil}, k.Offered())
}

func TestUname_UsageErrors(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"--all"}, "uname: usage: unknown option --all\n"},
		{[]string{"-q"}, "uname: usage: unknown option -q\n"},
		{[]string{"host"}, "uname: usage: unknown argument host\n"},
	}

	for _, tt := range tests {
		k := testKernel()
		r := execute(k, append([]string{"uname"}, tt.args...)...)
		if r.code != start.FailureCode || r.stderr != tt.want {
			t.Errorf("uname %v = (%d, %q), want (%d, %q)", tt.args, r.code, r.stderr, start.FailureCode, tt.want)
		}
		if k.Calls() != 0 {
			t.Errorf("uname %v queried the kernel", tt.args)
		}
	}
}

func TestUname_VersionFlag(t *testing.T) {
	r := execute(testKernel(), "uname", "--version")

	assert.Equal(t, 0, r.code)
	assert.Equal(t, "uname dev\n", r.stdout)
}

func TestUname_HelpAndVersionAfterOptions(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"-a", "--version"}, "uname dev\n"},
		{[]string{"-s", "--version", "--help"}, "uname dev\n"},
		{[]string{"-n", "--help"}, "Usage: uname [OPTION]...\n"},
	}

	for _, tt := range tests {
		k := testKernel()
		r := execute(k, append([]string{"uname"}, tt.args...)...)
		if r.code != 0 || !strings.HasPrefix(r.stdout, tt.want) {
			t.Errorf("uname %v = (%d, %q), want (0, %q...)", tt.args, r.code, r.stdout, tt.want)
		}
		if k.Calls() != 0 {
			t.Errorf("uname %v queried the kernel", tt.args)
		}
	}
}

func TestUname_BadOptionBeforeVersion(t *testing.T) {
	r := execute(testKernel(), "uname", "-q", "--version")

	assert.Equal(t, start.FailureCode, r.code)
	assert.Equal(t, "uname: usage: unknown option -q\n", r.stderr)
	assert.Empty(t, r.stdout)
}

func TestUname_KernelError(t *testing.T) {
	k := testKernel()
	k.Fail = kabi.PERMISSION
	r := execute(k, "uname", "-n")

	assert.Equal(t, start.FailureCode, r.code)
	assert.Equal(t, "uname: get system info: kernel error -1: permission denied\n", r.stderr)
	assert.Empty(t, r.stdout)
}
