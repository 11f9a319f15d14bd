// Package events defines the run lifecycle events published while a
// workflow executes, for live progress rendering and run mirroring.
package events

import (
	"time"

	"github.com/veildoc/veilflow/pkg/models"
)

type EventType string

// Topic carries every run lifecycle event.
const Topic = "veilflow.runs"

const EventMetadataKey = "key"
const EventTypeMetadataKey = "event_type"

const (
	RunStartedEvent   EventType = "run.started"
	RunFinishedEvent  EventType = "run.finished"
	NodeStatusEvent   EventType = "node.status"
	NodeFinishedEvent EventType = "node.finished"
)

type BaseEvent struct {
	ID           string    `json:"id"`
	Type         EventType `json:"type"`
	Timestamp    time.Time `json:"timestamp"`
	RunID        string    `json:"run_id"`
	WorkflowName string    `json:"workflow_name,omitempty"`
}

// RunStarted is published once per run, before the first node executes.
type RunStarted struct {
	BaseEvent

	NodeCount int `json:"node_count"`
}

func (e RunStarted) GetType() EventType {
	return RunStartedEvent
}

// NodeStatus reports a node transition (pending, running). Terminal
// states arrive as NodeFinished with the full result attached.
type NodeStatus struct {
	BaseEvent

	NodeID   string            `json:"node_id"`
	NodeType string            `json:"node_type"`
	Status   models.NodeStatus `json:"status"`
}

func (e NodeStatus) GetType() EventType {
	return NodeStatusEvent
}

// NodeFinished carries the immutable per-node run record.
type NodeFinished struct {
	BaseEvent

	Result models.NodeRunResult `json:"result"`
}

func (e NodeFinished) GetType() EventType {
	return NodeFinishedEvent
}

// RunFinished is published once per run with the aggregate status.
type RunFinished struct {
	BaseEvent

	Status     models.RunStatus `json:"status"`
	DurationMs int64            `json:"duration_ms"`
}

func (e RunFinished) GetType() EventType {
	return RunFinishedEvent
}
