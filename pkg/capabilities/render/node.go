// Package render provides the Template capability: Go-template
// transformation of values flowing through the graph.
package render

import (
	"context"
	"errors"

	"github.com/veildoc/veilflow/pkg/models"
	"github.com/veildoc/veilflow/pkg/protocol"
	"github.com/veildoc/veilflow/pkg/template"
)

const (
	InputPortValue   = "value"
	OutputPortResult = "result"
	ParamExpression  = "expression"
)

type Template struct{}

func New() protocol.Capability {
	return &Template{}
}

func (c *Template) Type() string { return "Template" }

func (c *Template) Name() string { return "Template" }

func (c *Template) Description() string {
	return "Transforms data with a Go template; inputs and params are in scope as .inputs and .params"
}

func (c *Template) Category() models.CategoryType { return models.CategoryLogic }

func (c *Template) Inputs() []models.Port {
	return []models.Port{
		{ID: InputPortValue, Label: "Value", Kind: models.KindAny},
	}
}

func (c *Template) Outputs() []models.Port {
	return []models.Port{
		{ID: OutputPortResult, Label: "Result", Kind: models.KindAny},
	}
}

func (c *Template) Params() []models.ParamDef {
	return []models.ParamDef{
		{ID: ParamExpression, Label: "Expression", Kind: models.KindString, Default: "{{.inputs.value}}"},
	}
}

func (c *Template) Compute(_ context.Context, inputs, params map[string]any) (map[string]any, error) {
	expression := protocol.ParamString(params, ParamExpression, "")
	if expression == "" {
		return nil, errors.New("missing required param \"expression\"")
	}

	result, err := template.RenderWithScope(expression, inputs, params)
	if err != nil {
		return nil, err
	}

	return map[string]any{
		OutputPortResult: result,
	}, nil
}
