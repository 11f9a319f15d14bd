package services

import (
	"context"
	"errors"

	"github.com/veildoc/veilflow/pkg/models"
	"github.com/veildoc/veilflow/pkg/otelhelper"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// runTracer opens a child span per node under the run span. Execution
// is sequential, so at most one node span is open at a time. Nodes with
// an unknown type never reach the running state and get no span.
type runTracer struct {
	ctx    context.Context
	tracer trace.Tracer
	spans  map[string]trace.Span
}

func newRunTracer(ctx context.Context, tracer trace.Tracer) *runTracer {
	return &runTracer{
		ctx:    ctx,
		tracer: tracer,
		spans:  make(map[string]trace.Span),
	}
}

func (t *runTracer) OnNodeStatus(node models.WorkflowNode, status models.NodeStatus) {
	if status != models.NodeStatusRunning {
		return
	}

	_, span := otelhelper.StartSpan(t.ctx, t.tracer, "workflow.node",
		attribute.String(otelhelper.NodeIDKey, node.ID),
		attribute.String(otelhelper.NodeTypeKey, node.Type),
	)
	t.spans[node.ID] = span
}

func (t *runTracer) OnNodeResult(result models.NodeRunResult) {
	span, ok := t.spans[result.NodeID]
	if !ok {
		return
	}

	if result.Status == models.NodeStatusError {
		otelhelper.SetError(span, errors.New(result.Error),
			attribute.String(otelhelper.NodeIDKey, result.NodeID),
		)
	}

	span.End()
	delete(t.spans, result.NodeID)
}
