package workflow

import (
	"errors"
	"fmt"

	"github.com/veildoc/veilflow/pkg/models"
	"github.com/veildoc/veilflow/pkg/registry"
)

// Validator checks a graph for structural problems before execution.
// It reports every violation found, not just the first, so callers can
// surface a complete error list.
type Validator struct {
	registry *registry.Registry
}

func NewValidator(reg *registry.Registry) *Validator {
	return &Validator{registry: reg}
}

// Validate returns all graph-level violations: cycles, edges referencing
// unknown nodes, multiple edges feeding the same input handle, and
// required input ports with no incoming edge. Unknown node types are
// not validation errors; they surface as node-level failures at run
// time.
func (v *Validator) Validate(nodes []models.WorkflowNode, edges []models.WorkflowEdge) []error {
	var violations []error

	if _, hasCycle := Order(nodes, edges); hasCycle {
		violations = append(violations, errors.New("graph contains a cycle"))
	}

	known := make(map[string]bool, len(nodes))
	for _, node := range nodes {
		known[node.ID] = true
	}

	connected := make(map[string]bool, len(edges))

	for _, edge := range edges {
		if !known[edge.Source] {
			violations = append(violations, fmt.Errorf("edge %q references unknown source node %q", edge.ID, edge.Source))
		}

		if !known[edge.Target] {
			violations = append(violations, fmt.Errorf("edge %q references unknown target node %q", edge.ID, edge.Target))
		}

		handle := edge.Target + ":" + edge.TargetHandle
		if connected[handle] {
			violations = append(violations, fmt.Errorf("node %q input %q has multiple incoming edges", edge.Target, edge.TargetHandle))
		}

		connected[handle] = true
	}

	for _, node := range nodes {
		capability, ok := v.registry.Lookup(node.Type)
		if !ok {
			continue
		}

		for _, port := range capability.Inputs() {
			if port.Required && !connected[node.ID+":"+port.ID] {
				violations = append(violations, fmt.Errorf("node %q is missing a connection to required input %q", node.ID, port.ID))
			}
		}
	}

	return violations
}
