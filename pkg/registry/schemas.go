package registry

import (
	"errors"
	"fmt"
	"strings"

	"github.com/veildoc/veilflow/pkg/models"
	"github.com/veildoc/veilflow/pkg/protocol"
	"github.com/xeipuuv/gojsonschema"
)

// ParamSchema builds a JSON Schema describing a capability's parameter
// object, derived from its ParamDef list.
func ParamSchema(capability protocol.Capability) map[string]any {
	properties := make(map[string]any)

	for _, def := range capability.Params() {
		property := map[string]any{
			"title": def.Label,
		}

		if jsonType, ok := jsonSchemaType(def.Kind); ok {
			property["type"] = jsonType
		}

		if def.Default != nil {
			property["default"] = def.Default
		}

		if len(def.Options) > 0 {
			enum := make([]any, 0, len(def.Options))
			for _, option := range def.Options {
				enum = append(enum, option)
			}

			property["enum"] = enum
		}

		properties[def.ID] = property
	}

	return map[string]any{
		"type":       "object",
		"properties": properties,
	}
}

// ValidateParams checks a node's instance params against the
// capability's generated parameter schema.
func ValidateParams(capability protocol.Capability, params map[string]any) error {
	if params == nil {
		params = map[string]any{}
	}

	schemaLoader := gojsonschema.NewGoLoader(ParamSchema(capability))
	dataLoader := gojsonschema.NewGoLoader(params)

	result, err := gojsonschema.Validate(schemaLoader, dataLoader)
	if err != nil {
		return fmt.Errorf("failed to validate params for %q: %w", capability.Type(), err)
	}

	if result.Valid() {
		return nil
	}

	messages := make([]string, 0, len(result.Errors()))
	for _, violation := range result.Errors() {
		messages = append(messages, violation.String())
	}

	return errors.New("invalid params for " + capability.Type() + ": " + strings.Join(messages, "; "))
}

// jsonSchemaType maps a port DataKind onto a JSON Schema type. Kinds
// without a single JSON representation (json, any) stay untyped.
func jsonSchemaType(kind models.DataKind) (string, bool) {
	switch kind {
	case models.KindString, models.KindHash, models.KindFile:
		return "string", true
	case models.KindNumber:
		return "number", true
	case models.KindBoolean:
		return "boolean", true
	default:
		return "", false
	}
}
