// Package protocol defines the interfaces and contracts for pluggable
// node capabilities.
package protocol

import (
	"context"

	"github.com/veildoc/veilflow/pkg/models"
)

// Capability is the registered definition of a node type: its ports,
// its parameters, and its computation. Implementations are registered
// once at process start and treated as read-only for the lifetime of
// the process.
type Capability interface {
	// Type returns the unique identifier for this node type
	Type() string

	// Name returns the human-readable name for this node type
	Name() string

	// Description returns a description of what nodes of this type do
	Description() string

	// Category returns the display grouping for this node type
	Category() models.CategoryType

	// Inputs returns the ordered input port descriptors
	Inputs() []models.Port

	// Outputs returns the ordered output port descriptors
	Outputs() []models.Port

	// Params returns the ordered parameter definitions
	Params() []models.ParamDef

	// Compute runs the node's computation. Inputs are keyed by input
	// port id and may be partial: upstream failures leave keys absent,
	// and implementations must handle missing values themselves. Params
	// arrive already defaulted. Compute must not mutate shared state
	// outside its own return value.
	Compute(ctx context.Context, inputs map[string]any, params map[string]any) (map[string]any, error)
}

// MergeParams merges a capability's declared parameter defaults with
// instance overrides. Overrides win; defaults fill the gaps.
func MergeParams(capability Capability, overrides map[string]any) map[string]any {
	merged := make(map[string]any, len(overrides))

	for _, def := range capability.Params() {
		if def.Default != nil {
			merged[def.ID] = def.Default
		}
	}

	for key, value := range overrides {
		merged[key] = value
	}

	return merged
}
