package clonecoco

import (
	"log/slog"

	"github.com/dszilagyiques/CloneCoCo/ident"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Option configures a Transformer.
type Option func(*transformerConfig)

// transformerConfig holds configuration for a Transformer instance.
type transformerConfig struct {
	logger      *slog.Logger
	tracer      trace.Tracer
	meter       metric.Meter
	generator   ident.Generator
	exclusions  ident.Set
	projectID   *int64
	maxAttempts int
}

// WithLogger sets a custom logger for the transformer.
// If not provided, a default logger will be created.
func WithLogger(logger *slog.Logger) Option {
	return func(c *transformerConfig) {
		c.logger = logger
	}
}

// WithTracer sets an OpenTelemetry tracer for the transformer.
// When set, each transformation run and each of its passes is recorded as a
// span.
func WithTracer(tracer trace.Tracer) Option {
	return func(c *transformerConfig) {
		c.tracer = tracer
	}
}

// WithMeter sets an OpenTelemetry meter for the transformer.
// When set, the transformer records counters for completed runs and for
// modules dropped by the filter.
func WithMeter(meter metric.Meter) Option {
	return func(c *transformerConfig) {
		c.meter = meter
	}
}

// WithGenerator sets a custom identifier generator. The default draws
// uniform six-digit identifiers, matching the backend's identifier space.
func WithGenerator(gen ident.Generator) Option {
	return func(c *transformerConfig) {
		c.generator = gen
	}
}

// WithExclusions supplies identifiers already in use at the destination.
// Generated identifiers are guaranteed disjoint from this set. The set is
// cloned per transformation call, so one Transformer may be shared across
// goroutines; mutating the set concurrently with Transform is the caller's
// responsibility to synchronize.
func WithExclusions(exclude ident.Set) Option {
	return func(c *transformerConfig) {
		c.exclusions = exclude
	}
}

// WithMaxAttempts bounds how many candidate identifiers the default
// generator draws before giving up with ErrIdentifierSpaceExhausted. It has
// no effect when a custom generator is supplied via WithGenerator.
func WithMaxAttempts(n int) Option {
	return func(c *transformerConfig) {
		c.maxAttempts = n
	}
}

// WithProjectID overrides the project identifier stamped into each payload
// module. By default the source document's projectId is carried over.
func WithProjectID(projectID int64) Option {
	return func(c *transformerConfig) {
		c.projectID = &projectID
	}
}
