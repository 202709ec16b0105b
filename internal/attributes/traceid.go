package attributes

import (
	"crypto/sha256"
	"fmt"

	"github.com/expr-lang/expr/vm"
	"github.com/mrzor/lilium-tools/internal/procmeta"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// TraceIDEvaluator turns a trace ID expression into a trace ID.
type TraceIDEvaluator struct {
	program *vm.Program
}

// NewTraceIDEvaluator compiles source. An empty source never yields an ID.
func NewTraceIDEvaluator(source string) (*TraceIDEvaluator, error) {
	if source == "" {
		return &TraceIDEvaluator{}, nil
	}
	program, err := compile("trace-id", source)
	if err != nil {
		return nil, err
	}
	return &TraceIDEvaluator{program: program}, nil
}

// EvaluateAndValidate returns the trace ID and any warnings to attach to the
// span. Without an expression it returns the zero trace ID.
func (e *TraceIDEvaluator) EvaluateAndValidate(md *procmeta.ProcessMetadata) (trace.TraceID, []attribute.KeyValue, error) {
	if e.program == nil {
		return trace.TraceID{}, nil, nil
	}
	if md == nil {
		return trace.TraceID{}, nil, fmt.Errorf("no metadata available")
	}

	output, err := run(e.program, md)
	if err != nil {
		return trace.TraceID{}, nil, fmt.Errorf("failed to evaluate trace-id expression: %w", err)
	}

	result := fmt.Sprint(output)
	if len(result) == 32 {
		if traceID, err := trace.TraceIDFromHex(result); err == nil {
			return traceID, nil, nil
		}
	}

	// Hash anything else into the first 16 bytes of its SHA-256.
	var traceID trace.TraceID
	hash := sha256.Sum256([]byte(result))
	copy(traceID[:], hash[:16])

	warnings := []attribute.KeyValue{
		attribute.String("_trace_id_expr_result", result),
		attribute.String("_trace_id_invalid_warning", fmt.Sprintf("Expression result %q is not a valid 32-char hex trace ID, used SHA-256 hash instead", result)),
	}
	return traceID, warnings, nil
}

// ParentIDEvaluator turns a parent span ID expression into a span ID.
type ParentIDEvaluator struct {
	program *vm.Program
}

// NewParentIDEvaluator compiles source. An empty source never yields an ID.
func NewParentIDEvaluator(source string) (*ParentIDEvaluator, error) {
	if source == "" {
		return &ParentIDEvaluator{}, nil
	}
	program, err := compile("parent-id", source)
	if err != nil {
		return nil, err
	}
	return &ParentIDEvaluator{program: program}, nil
}

// EvaluateAndValidate returns the parent span ID and any warnings to attach
// to the span. Without an expression, or with an invalid result, it returns
// the zero span ID.
func (e *ParentIDEvaluator) EvaluateAndValidate(md *procmeta.ProcessMetadata) (trace.SpanID, []attribute.KeyValue, error) {
	if e.program == nil {
		return trace.SpanID{}, nil, nil
	}
	if md == nil {
		return trace.SpanID{}, nil, fmt.Errorf("no metadata available")
	}

	output, err := run(e.program, md)
	if err != nil {
		return trace.SpanID{}, nil, fmt.Errorf("failed to evaluate parent-id expression: %w", err)
	}

	result := fmt.Sprint(output)
	if len(result) == 16 {
		if spanID, err := trace.SpanIDFromHex(result); err == nil {
			return spanID, nil, nil
		}
	}

	warnings := []attribute.KeyValue{
		attribute.String("_parent_id_expr_result", result),
		attribute.String("_parent_id_invalid_warning", fmt.Sprintf("Expression result %q is not a valid 16-char hex span ID, using null parent ID instead", result)),
	}
	return trace.SpanID{}, warnings, nil
}
