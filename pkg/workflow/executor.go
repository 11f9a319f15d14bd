package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/veildoc/veilflow/pkg/models"
	"github.com/veildoc/veilflow/pkg/protocol"
	"github.com/veildoc/veilflow/pkg/registry"
)

const logValueLimit = 120

// Observer receives per-node transitions during a run. Implementations
// must be fast; they are called synchronously on the engine goroutine.
type Observer interface {
	OnNodeStatus(node models.WorkflowNode, status models.NodeStatus)
	OnNodeResult(result models.NodeRunResult)
}

// Executor walks a graph in topological order, resolves each node's
// inputs from upstream outputs, invokes its computation, and
// accumulates a structured run result. Execution is strictly
// sequential: one node at a time, even where the graph would permit
// independent branches to run concurrently.
type Executor struct {
	logger      *slog.Logger
	registry    *registry.Registry
	nodeTimeout time.Duration
	observers   []Observer
}

type ExecutorOption func(*Executor)

// WithNodeTimeout bounds each node computation. A node exceeding the
// timeout is recorded as a node-level error; the run continues.
func WithNodeTimeout(timeout time.Duration) ExecutorOption {
	return func(e *Executor) {
		e.nodeTimeout = timeout
	}
}

// WithObserver registers a live progress observer. Observers are
// notified in registration order.
func WithObserver(observer Observer) ExecutorOption {
	return func(e *Executor) {
		e.observers = append(e.observers, observer)
	}
}

func NewExecutor(logger *slog.Logger, reg *registry.Registry, opts ...ExecutorOption) *Executor {
	executor := &Executor{
		logger:   logger.With("module", "executor"),
		registry: reg,
	}

	for _, opt := range opts {
		opt(executor)
	}

	return executor
}

// Execute runs the workflow snapshot and returns the aggregate result.
// A single node's failure never halts the run: downstream nodes still
// execute, seeing the failed node's contributions as absent inputs.
// The aggregate status is error iff any node result is an error.
//
// Callers are expected to have validated the graph. If a cycle slipped
// through, nothing executes and the run is reported as an error with
// empty results.
func (e *Executor) Execute(ctx context.Context, wf *models.Workflow) *models.RunResult {
	logger := e.logger.With("workflow_name", wf.Name)

	result := &models.RunResult{
		Status:      models.RunStatusDone,
		NodeResults: make([]models.NodeRunResult, 0, len(wf.Nodes)),
		FinalOutput: make(map[string]any),
	}

	order, hasCycle := Order(wf.Nodes, wf.Edges)
	if hasCycle {
		logger.Error("Refusing to execute a graph with a cycle")

		result.Status = models.RunStatusError

		return result
	}

	logger.Info("Starting workflow execution", "nodes", len(order))

	// outputs holds the already-computed output map of each successful
	// node, keyed by node id, for downstream input resolution. Failed
	// nodes never appear here.
	outputs := make(map[string]map[string]any, len(order))

	for _, node := range order {
		e.notifyStatus(node, models.NodeStatusPending)

		nodeResult := e.executeNode(ctx, logger, node, wf.Edges, outputs)
		result.NodeResults = append(result.NodeResults, nodeResult)

		if nodeResult.Status == models.NodeStatusDone {
			outputs[node.ID] = nodeResult.Output

			for key, value := range nodeResult.Output {
				result.FinalOutput[key] = value
			}
		} else {
			result.Status = models.RunStatusError
		}

		e.notifyResult(nodeResult)
	}

	logger.Info("Completed workflow execution", "status", result.Status)

	return result
}

func (e *Executor) executeNode(
	ctx context.Context,
	logger *slog.Logger,
	node models.WorkflowNode,
	edges []models.WorkflowEdge,
	outputs map[string]map[string]any,
) models.NodeRunResult {
	logger = logger.With("node_id", node.ID, "node_type", node.Type)
	startedAt := time.Now()

	nodeResult := models.NodeRunResult{
		NodeID:    node.ID,
		NodeType:  node.Type,
		StartedAt: startedAt,
	}

	capability, ok := e.registry.Lookup(node.Type)
	if !ok {
		logger.Error("Unknown node type")

		nodeResult.Status = models.NodeStatusError
		nodeResult.Error = fmt.Sprintf("unknown node type %q", node.Type)
		nodeResult.FinishedAt = time.Now()
		nodeResult.DurationMs = nodeResult.FinishedAt.Sub(startedAt).Milliseconds()

		return nodeResult
	}

	e.notifyStatus(node, models.NodeStatusRunning)
	logger.Info("Executing node")

	inputs := resolveInputs(node, edges, outputs)
	params := protocol.MergeParams(capability, node.Params)

	output, err := e.compute(ctx, capability, inputs, params)

	nodeResult.FinishedAt = time.Now()
	nodeResult.DurationMs = nodeResult.FinishedAt.Sub(startedAt).Milliseconds()

	if err != nil {
		logger.Error("Node execution failed", "error", err)

		nodeResult.Status = models.NodeStatusError
		nodeResult.Error = err.Error()

		return nodeResult
	}

	nodeResult.Status = models.NodeStatusDone
	nodeResult.Output = output
	nodeResult.Logs = summarizeOutput(output)

	logger.Info("Node executed", "duration_ms", nodeResult.DurationMs)

	return nodeResult
}

// compute invokes the capability, bounded by the per-node timeout when
// one is configured. A hung computation is reported as a node error
// rather than stalling the run indefinitely.
func (e *Executor) compute(
	ctx context.Context,
	capability protocol.Capability,
	inputs map[string]any,
	params map[string]any,
) (map[string]any, error) {
	if e.nodeTimeout <= 0 {
		return capability.Compute(ctx, inputs, params)
	}

	ctx, cancel := context.WithTimeout(ctx, e.nodeTimeout)
	defer cancel()

	type outcome struct {
		output map[string]any
		err    error
	}

	done := make(chan outcome, 1)

	go func() {
		output, err := capability.Compute(ctx, inputs, params)
		done <- outcome{output: output, err: err}
	}()

	select {
	case o := <-done:
		return o.output, o.err
	case <-ctx.Done():
		return nil, fmt.Errorf("node computation exceeded timeout of %s", e.nodeTimeout)
	}
}

// resolveInputs assembles the input map for a node from the
// already-computed outputs of its upstream nodes. Edges are processed
// in declaration order, so when multiple edges feed the same input
// handle the last declared edge wins. Upstream nodes that failed or
// never produced the source handle leave the input absent.
func resolveInputs(
	node models.WorkflowNode,
	edges []models.WorkflowEdge,
	outputs map[string]map[string]any,
) map[string]any {
	inputs := make(map[string]any)

	for _, edge := range edges {
		if edge.Target != node.ID {
			continue
		}

		sourceOutput, ok := outputs[edge.Source]
		if !ok {
			continue
		}

		value, ok := sourceOutput[edge.SourceHandle]
		if !ok {
			continue
		}

		inputs[edge.TargetHandle] = value
	}

	return inputs
}

// summarizeOutput renders one log line per output value, truncated for
// readability, in sorted key order for reproducible run records.
func summarizeOutput(output map[string]any) []string {
	if len(output) == 0 {
		return nil
	}

	keys := make([]string, 0, len(output))
	for key := range output {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	logs := make([]string, 0, len(keys))
	for _, key := range keys {
		logs = append(logs, key+" = "+truncate(fmt.Sprintf("%v", output[key]), logValueLimit))
	}

	return logs
}

func truncate(value string, limit int) string {
	if len(value) <= limit {
		return value
	}

	return value[:limit] + "..."
}

func (e *Executor) notifyStatus(node models.WorkflowNode, status models.NodeStatus) {
	for _, observer := range e.observers {
		observer.OnNodeStatus(node, status)
	}
}

func (e *Executor) notifyResult(result models.NodeRunResult) {
	for _, observer := range e.observers {
		observer.OnNodeResult(result)
	}
}
