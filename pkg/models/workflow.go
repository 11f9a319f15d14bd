// Package models defines the core node-graph models for workflow execution.
package models

// DataKind is the soft type of a value flowing through a port. It drives
// editor hints and validation, not runtime enforcement.
type DataKind string

const (
	KindString  DataKind = "string"
	KindHash    DataKind = "hash"
	KindJSON    DataKind = "json"
	KindNumber  DataKind = "number"
	KindBoolean DataKind = "boolean"
	KindFile    DataKind = "file"
	KindAny     DataKind = "any"
)

// CategoryType groups capabilities for display. It has no execution
// semantics.
type CategoryType string

const (
	CategoryDocuments CategoryType = "documents"
	CategoryImages    CategoryType = "images"
	CategoryBanking   CategoryType = "banking"
	CategoryCrypto    CategoryType = "crypto"
	CategoryLogic     CategoryType = "logic"
	CategoryOutput    CategoryType = "output"
)

// Port describes a named attachment point on a node type through which
// data flows in or out.
type Port struct {
	ID       string   `json:"id"`
	Label    string   `json:"label"`
	Kind     DataKind `json:"kind"`
	Required bool     `json:"required,omitempty"`
}

// ParamDef describes a configuration parameter baked into a node
// instance, distinct from data ports.
type ParamDef struct {
	ID      string   `json:"id"`
	Label   string   `json:"label"`
	Kind    DataKind `json:"kind"`
	Default any      `json:"default,omitempty"`
	Options []string `json:"options,omitempty"`
}

// WorkflowNode is a graph vertex referencing a registered capability by
// type. Params hold instance overrides of the capability's defaults.
type WorkflowNode struct {
	ID     string         `json:"id"     validate:"required"`
	Type   string         `json:"type"   validate:"required"`
	Params map[string]any `json:"params,omitempty"`
}

// WorkflowEdge connects a named output port on the source node to a
// named input port on the target node.
type WorkflowEdge struct {
	ID           string `json:"id"`
	Source       string `json:"source"        validate:"required"`
	SourceHandle string `json:"source_handle" validate:"required"`
	Target       string `json:"target"        validate:"required"`
	TargetHandle string `json:"target_handle" validate:"required"`
}

// Workflow is an immutable snapshot of a user-authored graph handed to
// the engine for one run. The engine never mutates it.
type Workflow struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"        validate:"required,min=1"`
	Description string         `json:"description,omitempty"`
	Nodes       []WorkflowNode `json:"nodes"`
	Edges       []WorkflowEdge `json:"edges"`
}
