// Package config holds runtime and tool configuration.
//
// Runtime settings come from the process's own environment vector, as
// decoded by package start, rather than from the host environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/mrzor/lilium-tools/internal/start"
)

// Config holds runtime settings read from the process environment.
type Config struct {
	// Decode is the policy for ill-formed argument and environment text.
	Decode start.DecodePolicy `env:"LILIUM_DECODE" envDefault:"strict"`
	// MaxQueryRounds caps GetSystemInfo round trips per query.
	MaxQueryRounds int `env:"LILIUM_SYSINFO_MAX_ROUNDS" envDefault:"8"`
	// Debug enables runtime debug logging on stderr.
	Debug bool `env:"LILIUM_DEBUG" envDefault:"false"`
	// Trace logs finished spans on stderr.
	Trace bool `env:"LILIUM_TRACE" envDefault:"false"`

	// TraceAttributes adds span attributes, see ParseAttributeString.
	TraceAttributes string `env:"LILIUM_TRACE_ATTRIBUTES"`
	// TraceID is an expression for the trace to join.
	TraceID string `env:"LILIUM_TRACE_ID"`
	// ParentID is an expression for the caller's span ID.
	ParentID string `env:"LILIUM_PARENT_ID"`

	// CustomAttributes is TraceAttributes, parsed.
	CustomAttributes []CustomAttribute `env:"-"`

	OTEL OTELConfig
}

// Parse reads a Config from environ, a decoded environment.
func Parse(environ map[string]string) (*Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil {
		return nil, fmt.Errorf("failed to parse runtime config: %w", err)
	}
	if cfg.MaxQueryRounds < 1 {
		return nil, fmt.Errorf("LILIUM_SYSINFO_MAX_ROUNDS must be at least 1, got %d", cfg.MaxQueryRounds)
	}
	attrs, err := ParseAttributeString(cfg.TraceAttributes)
	if err != nil {
		return nil, fmt.Errorf("LILIUM_TRACE_ATTRIBUTES: %w", err)
	}
	cfg.CustomAttributes = attrs
	return &cfg, nil
}
