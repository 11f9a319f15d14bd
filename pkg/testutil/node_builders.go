// Package testutil provides test data builders and utilities for testing.
package testutil

import (
	"github.com/google/uuid"
	"github.com/veildoc/veilflow/pkg/models"
)

// CreateTestNode creates a test WorkflowNode with default values that can be overridden.
func CreateTestNode(overrides ...func(*models.WorkflowNode)) models.WorkflowNode {
	node := models.WorkflowNode{
		ID:     uuid.New().String(),
		Type:   "HashDoc",
		Params: map[string]any{"file": "test content"},
	}

	for _, override := range overrides {
		override(&node)
	}

	return node
}

// WithID sets the node ID.
func WithID(id string) func(*models.WorkflowNode) {
	return func(n *models.WorkflowNode) {
		n.ID = id
	}
}

// WithType sets the node type.
func WithType(nodeType string) func(*models.WorkflowNode) {
	return func(n *models.WorkflowNode) {
		n.Type = nodeType
	}
}

// WithParams sets the node params.
func WithParams(params map[string]any) func(*models.WorkflowNode) {
	return func(n *models.WorkflowNode) {
		n.Params = params
	}
}

// CreateTestEdge creates an edge between two nodes over the given handles.
func CreateTestEdge(source, sourceHandle, target, targetHandle string) models.WorkflowEdge {
	return models.WorkflowEdge{
		ID:           uuid.New().String(),
		Source:       source,
		SourceHandle: sourceHandle,
		Target:       target,
		TargetHandle: targetHandle,
	}
}

// CreateTestWorkflow creates a test workflow around the given graph.
func CreateTestWorkflow(nodes []models.WorkflowNode, edges []models.WorkflowEdge) *models.Workflow {
	return &models.Workflow{
		ID:          uuid.New().String(),
		Name:        "Test Workflow",
		Description: "A workflow for testing",
		Nodes:       nodes,
		Edges:       edges,
	}
}

// HashAndSignWorkflow builds the canonical two-node pipeline used
// across engine tests: inline content hashed, then signed.
func HashAndSignWorkflow() *models.Workflow {
	nodes := []models.WorkflowNode{
		CreateTestNode(WithID("hash")),
		CreateTestNode(WithID("sign"), WithType("SignDoc"), WithParams(map[string]any{})),
	}
	edges := []models.WorkflowEdge{
		CreateTestEdge("hash", "hash", "sign", "hash"),
	}

	return CreateTestWorkflow(nodes, edges)
}
