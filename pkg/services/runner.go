// Package services provides the run service: graph validation,
// execution, run-history persistence and progress publishing behind one
// entry point shared by the API server and the CLI.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/veildoc/veilflow/pkg/eventbus"
	"github.com/veildoc/veilflow/pkg/events"
	"github.com/veildoc/veilflow/pkg/models"
	"github.com/veildoc/veilflow/pkg/otelhelper"
	"github.com/veildoc/veilflow/pkg/persistence"
	"github.com/veildoc/veilflow/pkg/registry"
	"github.com/veildoc/veilflow/pkg/workflow"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

type Runner struct {
	logger      *slog.Logger
	registry    *registry.Registry
	validator   *workflow.Validator
	store       persistence.RunStore
	publisher   eventbus.EventPublisher
	tracer      trace.Tracer
	nodeTimeout time.Duration
}

type RunnerOption func(*Runner)

// WithRunStore persists every completed run to the given store.
func WithRunStore(store persistence.RunStore) RunnerOption {
	return func(r *Runner) {
		r.store = store
	}
}

// WithPublisher publishes run lifecycle events for live observers.
func WithPublisher(publisher eventbus.EventPublisher) RunnerOption {
	return func(r *Runner) {
		r.publisher = publisher
	}
}

// WithTracer traces each run as a span, with a child span per node.
func WithTracer(tracer trace.Tracer) RunnerOption {
	return func(r *Runner) {
		r.tracer = tracer
	}
}

// WithNodeTimeout bounds each node computation.
func WithNodeTimeout(timeout time.Duration) RunnerOption {
	return func(r *Runner) {
		r.nodeTimeout = timeout
	}
}

func NewRunner(logger *slog.Logger, reg *registry.Registry, opts ...RunnerOption) *Runner {
	runner := &Runner{
		logger:    logger.With("module", "runner"),
		registry:  reg,
		validator: workflow.NewValidator(reg),
	}

	for _, opt := range opts {
		opt(runner)
	}

	return runner
}

// Validate returns every graph-level violation without executing.
func (r *Runner) Validate(nodes []models.WorkflowNode, edges []models.WorkflowEdge) []error {
	return r.validator.Validate(nodes, edges)
}

// ValidateParams checks every node's instance params against its
// capability's parameter schema. Unknown node types are skipped here;
// they surface as node-level errors at run time.
func (r *Runner) ValidateParams(nodes []models.WorkflowNode) []error {
	var violations []error

	for _, node := range nodes {
		capability, ok := r.registry.Lookup(node.Type)
		if !ok {
			continue
		}

		err := registry.ValidateParams(capability, node.Params)
		if err != nil {
			violations = append(violations, fmt.Errorf("node %q: %w", node.ID, err))
		}
	}

	return violations
}

// Run validates and executes a workflow snapshot, persists the run
// record when a store is configured, and returns it. Graph-level
// violations abort before any node executes and are reported as a
// GraphError.
func (r *Runner) Run(ctx context.Context, wf *models.Workflow) (*persistence.StoredRun, error) {
	violations := r.Validate(wf.Nodes, wf.Edges)
	if len(violations) > 0 {
		return nil, &GraphError{Violations: violations}
	}

	runID := newRunID()
	startedAt := time.Now()

	logger := r.logger.With("run_id", runID, "workflow_name", wf.Name)

	var span trace.Span
	if r.tracer != nil {
		ctx, span = otelhelper.StartSpan(ctx, r.tracer, "workflow.run",
			attribute.String(otelhelper.RunIDKey, runID),
			attribute.String(otelhelper.WorkflowNameKey, wf.Name),
			attribute.Int(otelhelper.NodeCountKey, len(wf.Nodes)),
		)
		defer span.End()
	}

	r.publish(ctx, logger, runID, events.RunStarted{
		BaseEvent: r.baseEvent(events.RunStartedEvent, runID, wf.Name),
		NodeCount: len(wf.Nodes),
	})

	executorOpts := []workflow.ExecutorOption{}
	if r.nodeTimeout > 0 {
		executorOpts = append(executorOpts, workflow.WithNodeTimeout(r.nodeTimeout))
	}

	if r.tracer != nil {
		executorOpts = append(executorOpts, workflow.WithObserver(newRunTracer(ctx, r.tracer)))
	}

	if r.publisher != nil {
		executorOpts = append(executorOpts, workflow.WithObserver(&runPublisher{
			ctx:          ctx,
			logger:       logger,
			publisher:    r.publisher,
			runID:        runID,
			workflowName: wf.Name,
		}))
	}

	executor := workflow.NewExecutor(r.logger, r.registry, executorOpts...)
	result := executor.Execute(ctx, wf)

	if span != nil && result.Status == models.RunStatusError {
		otelhelper.SetError(span, fmt.Errorf("run %s finished with node errors", runID))
	}

	r.publish(ctx, logger, runID, events.RunFinished{
		BaseEvent:  r.baseEvent(events.RunFinishedEvent, runID, wf.Name),
		Status:     result.Status,
		DurationMs: time.Since(startedAt).Milliseconds(),
	})

	stored := &persistence.StoredRun{
		ID:           runID,
		WorkflowID:   wf.ID,
		WorkflowName: wf.Name,
		Result:       result,
		CreatedAt:    startedAt,
	}

	if r.store != nil {
		err := r.store.SaveRun(ctx, stored)
		if err != nil {
			return stored, fmt.Errorf("run %s completed but could not be persisted: %w", runID, err)
		}
	}

	return stored, nil
}

func (r *Runner) baseEvent(eventType events.EventType, runID, workflowName string) events.BaseEvent {
	return events.BaseEvent{
		ID:           uuid.New().String(),
		Type:         eventType,
		Timestamp:    time.Now().UTC(),
		RunID:        runID,
		WorkflowName: workflowName,
	}
}

func (r *Runner) publish(ctx context.Context, logger *slog.Logger, runID string, event eventbus.Event) {
	if r.publisher == nil {
		return
	}

	err := r.publisher.Publish(ctx, runID, event)
	if err != nil {
		logger.Warn("Failed to publish run event", "event_type", event.GetType(), "error", err)
	}
}

func newRunID() string {
	return "run-" + uuid.New().String()[:8]
}
