// Package web provides HTTP request and response types for the workflow API.
package web

import "github.com/veildoc/veilflow/pkg/models"

// WorkflowRequest is the request body for validating or running a
// workflow graph snapshot.
type WorkflowRequest struct {
	ID          string                `json:"id"`
	Name        string                `json:"name"        validate:"required,min=3"`
	Description string                `json:"description"`
	Nodes       []models.WorkflowNode `json:"nodes"       validate:"required,min=1,dive"`
	Edges       []models.WorkflowEdge `json:"edges"       validate:"dive"`
}

func (r WorkflowRequest) toWorkflow() *models.Workflow {
	return &models.Workflow{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Nodes:       r.Nodes,
		Edges:       r.Edges,
	}
}

// ValidationResponse reports graph-level violations for a workflow
// snapshot without executing it.
type ValidationResponse struct {
	Valid      bool     `json:"valid"`
	Violations []string `json:"violations"`
}
