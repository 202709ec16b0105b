package sysinfo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/mrzor/lilium-tools/internal/kabi"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/mrzor/lilium-tools/internal/sysinfo"

// DefaultMaxRounds bounds the number of GetSystemInfo round trips one query
// may take.
const DefaultMaxRounds = 8

// ErrNotConverged is returned when the kernel keeps reporting larger sizes
// after MaxRounds round trips.
var ErrNotConverged = errors.New("sysinfo: buffer negotiation did not converge")

// Options configures a Querier.
type Options struct {
	// MaxRounds caps round trips per query.
	// Default: DefaultMaxRounds
	MaxRounds int

	// Logger receives one line per round trip.
	// Default: discards everything
	Logger *log.Logger

	// Tracer records a span per query with one event per round trip.
	// Default: the global OpenTelemetry tracer provider
	Tracer trace.Tracer
}

// Querier runs batched GetSystemInfo calls against a kernel.
type Querier struct {
	kernel    kabi.Introspector
	maxRounds int
	logger    *log.Logger
	tracer    trace.Tracer
}

// New creates a Querier for kernel.
func New(kernel kabi.Introspector, opts Options) *Querier {
	if opts.MaxRounds <= 0 {
		opts.MaxRounds = DefaultMaxRounds
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard, "", 0)
	}
	if opts.Tracer == nil {
		opts.Tracer = otel.Tracer(instrumentationName)
	}
	return &Querier{
		kernel:    kernel,
		maxRounds: opts.MaxRounds,
		logger:    opts.Logger,
		tracer:    opts.Tracer,
	}
}

// Query submits reqs as one batch and keeps resubmitting until every text
// descriptor has fit. Between round trips only the descriptors the kernel
// reported as too small are regrown, each to exactly the reported size;
// descriptors that fit keep their buffers. The order of reqs is never
// changed.
//
// A status other than OK or INSUFFICIENT_LENGTH is returned immediately as a
// *kabi.Error. The kernel call blocks and cannot be cancelled; ctx only
// carries trace context.
func (q *Querier) Query(ctx context.Context, reqs []kabi.SysInfoRequest) error {
	_, span := q.tracer.Start(ctx, "sysinfo.Query",
		trace.WithAttributes(attribute.Int("sysinfo.requests", len(reqs))))
	defer span.End()

	for round := 1; round <= q.maxRounds; round++ {
		for _, r := range reqs {
			for _, s := range r.Strings() {
				s.Offer()
			}
		}

		status := q.kernel.GetSystemInfo(reqs)
		if status != kabi.OK && status != kabi.INSUFFICIENT_LENGTH {
			err := &kabi.Error{Code: status}
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return fmt.Errorf("get system info: %w", err)
		}

		grown := regrow(reqs)
		span.AddEvent("round", trace.WithAttributes(
			attribute.Int("sysinfo.round", round),
			attribute.String("sysinfo.status", status.String()),
			attribute.Int("sysinfo.grown", grown),
		))
		q.logger.Printf("sysinfo: round %d: status=%s grown=%d", round, status, grown)

		if grown == 0 {
			if status == kabi.INSUFFICIENT_LENGTH {
				q.logger.Printf("sysinfo: kernel reported insufficient length but every descriptor fit")
			}
			span.SetAttributes(attribute.Int("sysinfo.rounds", round))
			return nil
		}
	}

	err := fmt.Errorf("%w after %d round trips", ErrNotConverged, q.maxRounds)
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}

// regrow grows every descriptor whose reported length exceeds its buffer and
// returns how many grew. Descriptors that fit are left committed at their
// written length.
func regrow(reqs []kabi.SysInfoRequest) int {
	grown := 0
	for _, r := range reqs {
		for _, s := range r.Strings() {
			if s.Grow(s.Len) {
				grown++
			}
		}
	}
	return grown
}
