package attributes

import (
	"testing"

	"github.com/mrzor/lilium-tools/internal/procmeta"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
)

func envMeta(kv map[string]string) *procmeta.ProcessMetadata {
	return &procmeta.ProcessMetadata{Program: "arch", Environ: kv, Args: []string{"arch"}, CmdlineFull: "arch"}
}

func TestTraceIDEvaluator(t *testing.T) {
	valid, err := trace.TraceIDFromHex("0123456789abcdef0123456789abcdef")
	require.NoError(t, err)

	tests := []struct {
		name         string
		source       string
		environ      map[string]string
		wantID       trace.TraceID
		wantHashed   bool
		wantWarnings int
	}{
		{"no expression", "", nil, trace.TraceID{}, false, 0},
		{"valid hex", `env["TRACE_ID"]`, map[string]string{"TRACE_ID": "0123456789abcdef0123456789abcdef"}, valid, false, 0},
		{"short value hashed", `env["TRACE_ID"]`, map[string]string{"TRACE_ID": "short"}, trace.TraceID{}, true, 2},
		{"non-hex hashed", `"zz" + env["TRACE_ID"][2:]`, map[string]string{"TRACE_ID": "0123456789abcdef0123456789abcdef"}, trace.TraceID{}, true, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, err := NewTraceIDEvaluator(tt.source)
			require.NoError(t, err)

			id, warnings, err := ev.EvaluateAndValidate(envMeta(tt.environ))
			require.NoError(t, err)
			assert.Len(t, warnings, tt.wantWarnings)
			if tt.wantHashed {
				assert.True(t, id.IsValid(), "hashed trace ID must be valid")
				assert.Equal(t, "_trace_id_expr_result", string(warnings[0].Key))
				assert.Equal(t, "_trace_id_invalid_warning", string(warnings[1].Key))
			} else {
				assert.Equal(t, tt.wantID, id)
			}
		})
	}
}

func TestTraceIDEvaluator_HashIsStable(t *testing.T) {
	ev, err := NewTraceIDEvaluator(`env["JOB"]`)
	require.NoError(t, err)

	a, _, err := ev.EvaluateAndValidate(envMeta(map[string]string{"JOB": "nightly-42"}))
	require.NoError(t, err)
	b, _, err := ev.EvaluateAndValidate(envMeta(map[string]string{"JOB": "nightly-42"}))
	require.NoError(t, err)
	c, _, err := ev.EvaluateAndValidate(envMeta(map[string]string{"JOB": "nightly-43"}))
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestTraceIDEvaluator_Errors(t *testing.T) {
	_, err := NewTraceIDEvaluator(`env[`)
	assert.ErrorContains(t, err, "failed to compile trace-id expression")

	ev, err := NewTraceIDEvaluator(`args[3]`)
	require.NoError(t, err)
	_, _, err = ev.EvaluateAndValidate(envMeta(nil))
	assert.ErrorContains(t, err, "failed to evaluate trace-id expression")

	_, _, err = ev.EvaluateAndValidate(nil)
	assert.EqualError(t, err, "no metadata available")
}

func TestParentIDEvaluator(t *testing.T) {
	valid, err := trace.SpanIDFromHex("00f067aa0ba902b7")
	require.NoError(t, err)

	tests := []struct {
		name         string
		source       string
		environ      map[string]string
		want         trace.SpanID
		wantWarnings int
	}{
		{"no expression", "", nil, trace.SpanID{}, 0},
		{"valid hex", `env["PARENT"]`, map[string]string{"PARENT": "00f067aa0ba902b7"}, valid, 0},
		{"wrong length", `env["PARENT"]`, map[string]string{"PARENT": "00f067"}, trace.SpanID{}, 2},
		{"not hex", `"not-a-span-id!!!"`, nil, trace.SpanID{}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, err := NewParentIDEvaluator(tt.source)
			require.NoError(t, err)

			id, warnings, err := ev.EvaluateAndValidate(envMeta(tt.environ))
			require.NoError(t, err)
			assert.Equal(t, tt.want, id)
			assert.Len(t, warnings, tt.wantWarnings)
		})
	}
}

func TestParentIDEvaluator_Errors(t *testing.T) {
	_, err := NewParentIDEvaluator(`)`)
	assert.ErrorContains(t, err, "failed to compile parent-id expression")

	ev, err := NewParentIDEvaluator(`args[3]`)
	require.NoError(t, err)
	_, _, err = ev.EvaluateAndValidate(envMeta(nil))
	assert.ErrorContains(t, err, "failed to evaluate parent-id expression")
}
