package fault

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/mrzor/lilium-tools/internal/kabi"
	"github.com/mrzor/lilium-tools/internal/kabi/kabitest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("stderr closed") }

type panickingWriter struct{}

func (panickingWriter) Write([]byte) (int, error) { panic("write on torn-down stream") }

func TestAbort_WritesDiagnosticAndRaises(t *testing.T) {
	k := &kabitest.Kernel{}
	var stderr bytes.Buffer
	returned := false

	kabitest.Go(func() {
		Abort(k, &stderr, Fault{Message: "index out of range [3] with length 2"})
		returned = true
	})

	assert.False(t, returned, "Abort must not return")
	assert.Equal(t, "Panicked at index out of range [3] with length 2\n", stderr.String())

	raised := k.Raised()
	require.Len(t, raised, 1)
	assert.Equal(t, kabi.InternalFault, raised[0].ExceptCode)
	assert.Zero(t, raised[0].ExceptInfo)
	assert.Zero(t, raised[0].ExceptReason)
}

func TestAbort_SwallowsWriteFailures(t *testing.T) {
	for name, w := range map[string]interface {
		Write([]byte) (int, error)
	}{
		"error":  failingWriter{},
		"panic":  panickingWriter{},
		"absent": nil,
	} {
		t.Run(name, func(t *testing.T) {
			k := &kabitest.Kernel{}
			kabitest.Go(func() {
				Abort(k, w, Fault{Message: "boom"})
			})
			assert.Len(t, k.Raised(), 1, "the exception must be raised even when the diagnostic fails")
		})
	}
}

func TestBridge_RoutesRuntimePanics(t *testing.T) {
	k := &kabitest.Kernel{}
	var stderr bytes.Buffer

	kabitest.Go(func() {
		defer Bridge(k, &stderr)
		var values []int
		idx := 5
		_ = values[idx]
	})

	require.Len(t, k.Raised(), 1)
	assert.Contains(t, stderr.String(), "Panicked at runtime error: index out of range")
}

func TestBridge_NoPanicIsNoop(t *testing.T) {
	k := &kabitest.Kernel{}
	var stderr bytes.Buffer

	kabitest.Go(func() {
		defer Bridge(k, &stderr)
	})

	assert.Empty(t, k.Raised())
	assert.Empty(t, stderr.String())
}

func TestFromPanic(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{name: "string", value: "unwrap on absent value", want: "unwrap on absent value"},
		{name: "error", value: errors.New("overflow"), want: "overflow"},
		{name: "fault", value: Fault{Message: "started twice"}, want: "started twice"},
		{name: "wrapped fault", value: fmt.Errorf("ctx: %w", Fault{Message: "inner"}), want: "inner"},
		{name: "other", value: 42, want: "42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FromPanic(tt.value).Message; got != tt.want {
				t.Errorf("FromPanic(%v).Message = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}
