package clonecoco

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/dszilagyiques/CloneCoCo/coco"
	"github.com/dszilagyiques/CloneCoCo/ident"
	"github.com/dszilagyiques/CloneCoCo/rewrite"
)

// Result is the outcome of a successful transformation.
type Result struct {
	// Payload is the minimal creation document for the destination phase.
	Payload *coco.Payload

	// IDs maps each surviving module's old identifier to its new one.
	IDs *ident.Map

	// Warnings lists rule cross-references that point at module
	// identifiers the source document never declared. The affected rules
	// are carried into the payload unmodified.
	Warnings []rewrite.Warning

	// RunID correlates this transformation's log and trace records.
	RunID string
}

// Transformer clones server-shaped CoCo documents into minimal creation
// payloads for another workflow phase. It holds no state across calls beyond
// its configuration; a single Transformer is safe for concurrent use as long
// as a shared exclusion set is not mutated mid-call.
type Transformer struct {
	logger     *slog.Logger
	tracer     trace.Tracer
	generator  ident.Generator
	exclusions ident.Set
	projectID  *int64

	transforms     metric.Int64Counter
	droppedModules metric.Int64Counter
}

// NewTransformer creates a transformation engine with the provided options.
//
// Example:
//
//	tr, err := clonecoco.NewTransformer(
//	    clonecoco.WithLogger(logger),
//	    clonecoco.WithExclusions(inUse),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := tr.Transform(ctx, doc, targetPhase)
func NewTransformer(opts ...Option) (*Transformer, error) {
	cfg := &transformerConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	// Create default logger if not provided.
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
	}

	if cfg.generator == nil {
		var genOpts []ident.NumericOption
		if cfg.maxAttempts > 0 {
			genOpts = append(genOpts, ident.WithMaxAttempts(cfg.maxAttempts))
		}
		cfg.generator = ident.NewNumericGenerator(genOpts...)
	}

	t := &Transformer{
		logger:     cfg.logger,
		tracer:     cfg.tracer,
		generator:  cfg.generator,
		exclusions: cfg.exclusions,
		projectID:  cfg.projectID,
	}

	if cfg.meter != nil {
		var err error
		t.transforms, err = cfg.meter.Int64Counter("clonecoco.transforms",
			metric.WithDescription("Completed transformation runs"))
		if err != nil {
			return nil, NewConfigurationError("NewTransformer", err)
		}
		t.droppedModules, err = cfg.meter.Int64Counter("clonecoco.modules.dropped",
			metric.WithDescription("Preloaded modules excluded from cloning"))
		if err != nil {
			return nil, NewConfigurationError("NewTransformer", err)
		}
	}

	return t, nil
}

// Transform produces the minimal creation payload for targetPhase from a
// server-shaped source document. The document is never mutated. On success
// the result carries the payload, the old-to-new identifier map, and any
// reference warnings; structural failures return a *Error and no partial
// result.
func (t *Transformer) Transform(ctx context.Context, doc *coco.Document, targetPhase coco.PhaseID) (*Result, error) {
	const op = "Transformer.Transform"

	if doc == nil {
		return nil, NewMalformedInputError(op, ErrNilDocument)
	}
	if err := doc.Validate(); err != nil {
		return nil, NewMalformedInputError(op, fmt.Errorf("%w: %w", ErrMalformedInput, err))
	}

	runID := uuid.New().String()
	logger := t.logger.With("run_id", runID, "target_phase", targetPhase)

	ctx, span := t.startSpan(ctx, "clonecoco.transform",
		attribute.Int64("coco.target_phase", int64(targetPhase)),
		attribute.Int("coco.source_modules", len(doc.Modules)),
	)
	defer span.End()

	// Run-local exclusion set: the caller's destination identifiers plus
	// every identifier generated during this run.
	exclude := ident.NewSet()
	if t.exclusions != nil {
		exclude = t.exclusions.Clone()
	}

	survivors, ids, err := t.filter(ctx, doc, exclude)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	known := ident.NewSet()
	for i := range doc.Modules {
		known.Add(doc.Modules[i].ModuleID)
	}

	_, rewriteSpan := t.startSpan(ctx, "clonecoco.rewrite")
	rewritten, warnings := rewrite.New(ids, targetPhase, known).Rewrite(survivors)
	rewriteSpan.End()

	payload := t.assemble(rewritten, doc, targetPhase)

	dropped := len(doc.Modules) - len(survivors)
	if t.transforms != nil {
		t.transforms.Add(ctx, 1)
	}
	if t.droppedModules != nil && dropped > 0 {
		t.droppedModules.Add(ctx, int64(dropped))
	}

	for _, w := range warnings {
		logger.Warn("rule references a module the source never declared",
			"module_id", w.ModuleID,
			"referenced_id", w.Referenced,
			"rule", w.Rule)
	}

	logger.Info("transformation complete",
		"surviving_modules", len(survivors),
		"dropped_modules", dropped,
		"warnings", len(warnings))

	return &Result{
		Payload:  payload,
		IDs:      ids,
		Warnings: warnings,
		RunID:    runID,
	}, nil
}

// startSpan starts a span when a tracer is configured and returns a no-op
// span otherwise, so call sites stay unconditional.
func (t *Transformer) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if t.tracer == nil {
		return ctx, trace.SpanFromContext(context.Background())
	}
	return t.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}
