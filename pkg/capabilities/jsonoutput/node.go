// Package jsonoutput provides the JSON serialization output capability.
package jsonoutput

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/veildoc/veilflow/pkg/models"
	"github.com/veildoc/veilflow/pkg/protocol"
)

const (
	InputPortValue = "value"
	OutputPortJSON = "json"
	ParamIndent    = "indent"
)

type JSONOutput struct{}

func New() protocol.Capability {
	return &JSONOutput{}
}

func (c *JSONOutput) Type() string { return "JSONOutput" }

func (c *JSONOutput) Name() string { return "JSON Output" }

func (c *JSONOutput) Description() string {
	return "Serializes an input value to a JSON string"
}

func (c *JSONOutput) Category() models.CategoryType { return models.CategoryOutput }

func (c *JSONOutput) Inputs() []models.Port {
	return []models.Port{
		{ID: InputPortValue, Label: "Value", Kind: models.KindAny},
	}
}

func (c *JSONOutput) Outputs() []models.Port {
	return []models.Port{
		{ID: OutputPortJSON, Label: "JSON", Kind: models.KindString},
	}
}

func (c *JSONOutput) Params() []models.ParamDef {
	return []models.ParamDef{
		{ID: ParamIndent, Label: "Indent", Kind: models.KindBoolean, Default: true},
	}
}

func (c *JSONOutput) Compute(_ context.Context, inputs, params map[string]any) (map[string]any, error) {
	value, ok := inputs[InputPortValue]
	if !ok {
		value = map[string]any{}
	}

	var (
		encoded []byte
		err     error
	)

	if protocol.ParamBool(params, ParamIndent, true) {
		encoded, err = json.MarshalIndent(value, "", "  ")
	} else {
		encoded, err = json.Marshal(value)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to serialize value: %w", err)
	}

	return map[string]any{
		OutputPortJSON: string(encoded),
	}, nil
}
