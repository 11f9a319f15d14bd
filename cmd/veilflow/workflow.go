package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/veildoc/veilflow/pkg/models"
	"github.com/veildoc/veilflow/pkg/templates"
)

// loadWorkflow reads a workflow graph from a JSON file, or from a
// template when the path carries the template: prefix.
func loadWorkflow(path string) (*models.Workflow, error) {
	if id, ok := cutTemplateRef(path); ok {
		template, found := templates.Lookup(id)
		if !found {
			return nil, fmt.Errorf("unknown template %q", id)
		}

		workflow := template.Workflow

		return &workflow, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read workflow file: %w", err)
	}

	var workflow models.Workflow

	err = json.Unmarshal(data, &workflow)
	if err != nil {
		return nil, fmt.Errorf("failed to parse workflow file: %w", err)
	}

	return &workflow, nil
}

func cutTemplateRef(path string) (string, bool) {
	const prefix = "template:"
	if len(path) > len(prefix) && path[:len(prefix)] == prefix {
		return path[len(prefix):], true
	}

	return "", false
}

func printJSON(value any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")

	return encoder.Encode(value)
}
