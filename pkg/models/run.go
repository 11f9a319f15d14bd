package models

import "time"

// NodeStatus is the per-node execution state machine:
// pending -> running -> done | error. Only done and error appear in the
// final run record; running is reported to live observers.
type NodeStatus string

const (
	NodeStatusPending NodeStatus = "pending"
	NodeStatusRunning NodeStatus = "running"
	NodeStatusDone    NodeStatus = "done"
	NodeStatusError   NodeStatus = "error"
)

// RunStatus is the aggregate status of a workflow run.
type RunStatus string

const (
	RunStatusDone  RunStatus = "done"
	RunStatusError RunStatus = "error"
)

// NodeRunResult is the immutable record of one node's execution outcome
// within a run.
type NodeRunResult struct {
	NodeID     string         `json:"node_id"`
	NodeType   string         `json:"node_type"`
	Status     NodeStatus     `json:"status"`
	Logs       []string       `json:"logs,omitempty"`
	Output     map[string]any `json:"output,omitempty"`
	Error      string         `json:"error,omitempty"`
	StartedAt  time.Time      `json:"started_at"`
	FinishedAt time.Time      `json:"finished_at"`
	DurationMs int64          `json:"duration_ms"`
}

// RunResult is produced once per workflow execution. FinalOutput is the
// flattened union of every node's output map, later nodes overwriting
// earlier ones on key collision.
type RunResult struct {
	Status      RunStatus       `json:"status"`
	NodeResults []NodeRunResult `json:"node_results"`
	FinalOutput map[string]any  `json:"final_output"`
}

// HasErrors reports whether any node result ended in error.
func (r *RunResult) HasErrors() bool {
	for _, nr := range r.NodeResults {
		if nr.Status == NodeStatusError {
			return true
		}
	}

	return false
}
