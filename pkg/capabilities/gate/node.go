// Package gate provides a comparison capability for branching logic.
package gate

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/veildoc/veilflow/pkg/models"
	"github.com/veildoc/veilflow/pkg/protocol"
)

const (
	InputPortValue   = "value"
	OutputPortResult = "result"
	OutputPortValue  = "value"
	ParamOperator    = "operator"
	ParamCompareTo   = "compare_to"
)

type Gate struct{}

func New() protocol.Capability {
	return &Gate{}
}

func (c *Gate) Type() string { return "Gate" }

func (c *Gate) Name() string { return "Gate" }

func (c *Gate) Description() string {
	return "Compares an input value against a configured operand and passes the value through"
}

func (c *Gate) Category() models.CategoryType { return models.CategoryLogic }

func (c *Gate) Inputs() []models.Port {
	return []models.Port{
		{ID: InputPortValue, Label: "Value", Kind: models.KindAny, Required: true},
	}
}

func (c *Gate) Outputs() []models.Port {
	return []models.Port{
		{ID: OutputPortResult, Label: "Result", Kind: models.KindBoolean},
		{ID: OutputPortValue, Label: "Value", Kind: models.KindAny},
	}
}

func (c *Gate) Params() []models.ParamDef {
	return []models.ParamDef{
		{ID: ParamOperator, Label: "Operator", Kind: models.KindString, Default: "eq", Options: []string{"eq", "ne", "gt", "lt", "contains"}},
		{ID: ParamCompareTo, Label: "Compare to", Kind: models.KindString, Default: ""},
	}
}

func (c *Gate) Compute(_ context.Context, inputs, params map[string]any) (map[string]any, error) {
	value, ok := inputs[InputPortValue]
	if !ok {
		return nil, fmt.Errorf("missing required input %q", InputPortValue)
	}

	operator := protocol.ParamString(params, ParamOperator, "eq")
	operand := protocol.ParamString(params, ParamCompareTo, "")

	result, err := compare(value, operator, operand)
	if err != nil {
		return nil, err
	}

	return map[string]any{
		OutputPortResult: result,
		OutputPortValue:  value,
	}, nil
}

func compare(value any, operator, operand string) (bool, error) {
	rendered := fmt.Sprintf("%v", value)

	switch operator {
	case "eq":
		return rendered == operand, nil
	case "ne":
		return rendered != operand, nil
	case "contains":
		return strings.Contains(rendered, operand), nil
	case "gt", "lt":
		left, err := strconv.ParseFloat(rendered, 64)
		if err != nil {
			return false, fmt.Errorf("input value %q is not numeric", rendered)
		}

		right, err := strconv.ParseFloat(operand, 64)
		if err != nil {
			return false, fmt.Errorf("compare_to %q is not numeric", operand)
		}

		if operator == "gt" {
			return left > right, nil
		}

		return left < right, nil
	default:
		return false, fmt.Errorf("unsupported operator %q", operator)
	}
}
