// Package mergejson provides a shallow JSON object merge capability.
package mergejson

import (
	"context"

	"github.com/veildoc/veilflow/pkg/models"
	"github.com/veildoc/veilflow/pkg/protocol"
)

const (
	InputPortA       = "a"
	InputPortB       = "b"
	OutputPortMerged = "merged"
)

type MergeJSON struct{}

func New() protocol.Capability {
	return &MergeJSON{}
}

func (c *MergeJSON) Type() string { return "MergeJSON" }

func (c *MergeJSON) Name() string { return "Merge JSON" }

func (c *MergeJSON) Description() string {
	return "Shallow-merges two JSON objects; keys from input b overwrite input a"
}

func (c *MergeJSON) Category() models.CategoryType { return models.CategoryLogic }

func (c *MergeJSON) Inputs() []models.Port {
	return []models.Port{
		{ID: InputPortA, Label: "A", Kind: models.KindJSON},
		{ID: InputPortB, Label: "B", Kind: models.KindJSON},
	}
}

func (c *MergeJSON) Outputs() []models.Port {
	return []models.Port{
		{ID: OutputPortMerged, Label: "Merged", Kind: models.KindJSON},
	}
}

func (c *MergeJSON) Params() []models.ParamDef {
	return nil
}

func (c *MergeJSON) Compute(_ context.Context, inputs, _ map[string]any) (map[string]any, error) {
	merged := make(map[string]any)

	for key, value := range asObject(inputs[InputPortA], InputPortA) {
		merged[key] = value
	}

	for key, value := range asObject(inputs[InputPortB], InputPortB) {
		merged[key] = value
	}

	return map[string]any{
		OutputPortMerged: merged,
	}, nil
}

// asObject tolerates absent and non-object inputs: absent contributes
// nothing, scalars are wrapped under their port name.
func asObject(value any, port string) map[string]any {
	if value == nil {
		return nil
	}

	if object, ok := value.(map[string]any); ok {
		return object
	}

	return map[string]any{port: value}
}
