package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/veildoc/veilflow/pkg/eventbus"
	"github.com/veildoc/veilflow/pkg/events"
	"github.com/veildoc/veilflow/pkg/models"
)

// runPublisher adapts the executor's observer callbacks onto the event
// bus, tagging every event with the run identity.
type runPublisher struct {
	ctx          context.Context
	logger       *slog.Logger
	publisher    eventbus.EventPublisher
	runID        string
	workflowName string
}

func (p *runPublisher) OnNodeStatus(node models.WorkflowNode, status models.NodeStatus) {
	p.send(events.NodeStatus{
		BaseEvent: p.baseEvent(events.NodeStatusEvent),
		NodeID:    node.ID,
		NodeType:  node.Type,
		Status:    status,
	})
}

func (p *runPublisher) OnNodeResult(result models.NodeRunResult) {
	p.send(events.NodeFinished{
		BaseEvent: p.baseEvent(events.NodeFinishedEvent),
		Result:    result,
	})
}

func (p *runPublisher) baseEvent(eventType events.EventType) events.BaseEvent {
	return events.BaseEvent{
		ID:           uuid.New().String(),
		Type:         eventType,
		Timestamp:    time.Now().UTC(),
		RunID:        p.runID,
		WorkflowName: p.workflowName,
	}
}

func (p *runPublisher) send(event eventbus.Event) {
	err := p.publisher.Publish(p.ctx, p.runID, event)
	if err != nil {
		p.logger.Warn("Failed to publish node event", "event_type", event.GetType(), "error", err)
	}
}
