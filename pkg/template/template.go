// Package template provides Go-template rendering for capabilities
// that transform data flowing through a graph.
package template

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"
	"time"
)

// RenderWithScope renders an expression against a node's resolved
// inputs and defaulted params, exposed as .inputs and .params.
func RenderWithScope(expression string, inputs, params map[string]any) (any, error) {
	scope := map[string]any{
		"inputs": inputs,
		"params": params,
	}

	return Render(expression, scope)
}

// Render parses and executes the template. When the rendered output
// looks like JSON it is decoded, so expressions can produce structured
// values and not only strings.
func Render(templateStr string, data any) (any, error) {
	tmpl, err := template.
		New("expression").
		Funcs(template.FuncMap{
			"now": func() string {
				return time.Now().UTC().Format(time.RFC3339)
			},
			"rand": func(max int) int {
				if max <= 0 {
					return 0
				}

				num := make([]byte, 1)

				_, err := rand.Read(num)
				if err != nil {
					return 0
				}

				return int(num[0]) % max
			},
		}).Parse(templateStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template '%s': %w", templateStr, err)
	}

	var buf strings.Builder

	err = tmpl.Execute(&buf, data)
	if err != nil {
		return nil, fmt.Errorf("failed to execute template '%s': %w", templateStr, err)
	}

	result := strings.TrimSpace(buf.String())

	if (strings.HasPrefix(result, "{") && strings.HasSuffix(result, "}")) ||
		(strings.HasPrefix(result, "[") && strings.HasSuffix(result, "]")) {
		var jsonResult any

		err := json.Unmarshal([]byte(result), &jsonResult)
		if err == nil {
			return jsonResult, nil
		}
	}

	return result, nil
}
