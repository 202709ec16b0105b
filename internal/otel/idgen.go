package otel

import (
	"context"
	"crypto/rand"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// TraceIDGenerator puts every root span into one fixed trace. Span IDs are
// random.
type TraceIDGenerator struct {
	TraceID trace.TraceID
}

var _ sdktrace.IDGenerator = (*TraceIDGenerator)(nil)

// NewIDs implements sdktrace.IDGenerator.
func (g *TraceIDGenerator) NewIDs(ctx context.Context) (trace.TraceID, trace.SpanID) {
	return g.TraceID, g.NewSpanID(ctx, g.TraceID)
}

// NewSpanID implements sdktrace.IDGenerator.
func (g *TraceIDGenerator) NewSpanID(context.Context, trace.TraceID) trace.SpanID {
	var id trace.SpanID
	for !id.IsValid() {
		_, _ = rand.Read(id[:])
	}
	return id
}
