// Package logoutput provides the structured-log output capability.
package logoutput

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/veildoc/veilflow/pkg/models"
	"github.com/veildoc/veilflow/pkg/protocol"
)

const (
	InputPortValue    = "value"
	OutputPortMessage = "message"
	ParamLabel        = "label"
	ParamLevel        = "level"
)

type LogOutput struct{}

func New() protocol.Capability {
	return &LogOutput{}
}

func (c *LogOutput) Type() string { return "LogOutput" }

func (c *LogOutput) Name() string { return "Log Output" }

func (c *LogOutput) Description() string {
	return "Writes an input value to the structured log at a configured level"
}

func (c *LogOutput) Category() models.CategoryType { return models.CategoryOutput }

func (c *LogOutput) Inputs() []models.Port {
	return []models.Port{
		{ID: InputPortValue, Label: "Value", Kind: models.KindAny},
	}
}

func (c *LogOutput) Outputs() []models.Port {
	return []models.Port{
		{ID: OutputPortMessage, Label: "Message", Kind: models.KindString},
	}
}

func (c *LogOutput) Params() []models.ParamDef {
	return []models.ParamDef{
		{ID: ParamLabel, Label: "Label", Kind: models.KindString, Default: "output"},
		{ID: ParamLevel, Label: "Level", Kind: models.KindString, Default: "info", Options: []string{"debug", "info", "warn", "error"}},
	}
}

func (c *LogOutput) Compute(ctx context.Context, inputs, params map[string]any) (map[string]any, error) {
	label := protocol.ParamString(params, ParamLabel, "output")
	message := label + ": " + fmt.Sprintf("%v", inputs[InputPortValue])

	logger := slog.With("module", "log_output")

	switch protocol.ParamString(params, ParamLevel, "info") {
	case "debug":
		logger.DebugContext(ctx, message)
	case "warn":
		logger.WarnContext(ctx, message)
	case "error":
		logger.ErrorContext(ctx, message)
	default:
		logger.InfoContext(ctx, message)
	}

	return map[string]any{
		OutputPortMessage: message,
	}, nil
}
