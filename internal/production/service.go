package production

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"optiserve/internal/apperror"
	"optiserve/internal/metrics"
	"optiserve/internal/telemetry"
)

// Service wires the registry to the validate/build/solve/assemble/verify
// pipeline.
type Service struct {
	registry *Registry
	metrics  *metrics.Metrics
}

// NewService builds a Service around the given registry.
func NewService(registry *Registry) *Service {
	return &Service{registry: registry, metrics: metrics.Get()}
}

// Optimize runs the full pipeline for one request against the named
// optimizer. Unknown-optimizer lookups, validation failures, model-build
// failures and engine failures (including timeout and cancellation) are
// returned as *apperror.Error rather than inside Result, so the HTTP
// layer can apply its status-code mapping uniformly; solve outcomes
// (optimal, solution_warning, infeasible, unbounded) come back inside
// Result with a 200.
func (s *Service) Optimize(ctx context.Context, optimizerID string, req *Request) (result *Result, err error) {
	ctx, span := telemetry.StartSpan(ctx, "ProductionService.Optimize",
		trace.WithAttributes(
			attribute.String("optimizer.kind", optimizerID),
			attribute.Int("products", len(req.Products)),
			attribute.Int("resources", len(req.Resources)),
		),
	)
	defer span.End()

	start := time.Now()
	s.metrics.ActiveSolves.Inc()
	defer func() {
		s.metrics.ActiveSolves.Dec()
		status := "error"
		if err == nil && result != nil {
			status = string(result.Status)
		} else if err != nil {
			status = string(apperror.Code(err))
		}
		s.metrics.RecordSolveOperation(optimizerID, status, time.Since(start))
		span.SetAttributes(attribute.String("solve.status", status))
	}()

	builder, err := s.registry.Get(optimizerID)
	if err != nil {
		telemetry.SetError(ctx, err)
		return nil, err
	}

	if errs := Validate(req); len(errs) > 0 {
		err = apperror.New(apperror.CodeValidation, "request validation failed").WithDetails("errors", errs)
		telemetry.SetError(ctx, err)
		return nil, err
	}

	model, varIdx, err := builder.Build(req)
	if err != nil {
		err = apperror.Wrap(err, apperror.CodeEngineError, "failed to build model")
		telemetry.SetError(ctx, err)
		return nil, err
	}

	if err := model.Optimize(ctx); err != nil {
		switch {
		case errors.Is(err, context.DeadlineExceeded):
			err = apperror.Wrap(err, apperror.CodeEngineTimeout, "timeout")
		case errors.Is(err, context.Canceled):
			err = apperror.Wrap(err, apperror.CodeEngineCancelled, "cancelled")
		default:
			err = apperror.Wrap(err, apperror.CodeEngineError, "solve failed")
		}
		telemetry.SetError(ctx, err)
		return nil, err
	}

	result = Assemble(ctx, model, req, varIdx)
	Verify(result, req)
	return result, nil
}

// ListOptimizers returns the registered optimizer identifiers.
func (s *Service) ListOptimizers() []string {
	return s.registry.List()
}
