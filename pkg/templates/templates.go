// Package templates ships the canned workflow graphs used to seed new
// workflows. Every template validates cleanly against the default
// capability set.
package templates

import "github.com/veildoc/veilflow/pkg/models"

type WorkflowTemplate struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Workflow    models.Workflow `json:"workflow"`
}

// Catalog returns all templates in a stable display order.
func Catalog() []WorkflowTemplate {
	return []WorkflowTemplate{
		hashAndSign(),
		veilDocument(),
		hardenImage(),
		bankingSweep(),
	}
}

// Lookup returns the template with the given identifier.
func Lookup(id string) (WorkflowTemplate, bool) {
	for _, template := range Catalog() {
		if template.ID == id {
			return template, true
		}
	}

	return WorkflowTemplate{}, false
}

func hashAndSign() WorkflowTemplate {
	return WorkflowTemplate{
		ID:          "hash-and-sign",
		Name:        "Hash and sign",
		Description: "Hash inline document content, sign the digest and emit the signature as JSON.",
		Workflow: models.Workflow{
			ID:   "hash-and-sign",
			Name: "Hash and sign",
			Nodes: []models.WorkflowNode{
				{ID: "hash", Type: "HashDoc", Params: map[string]any{"file": "the quick brown fox"}},
				{ID: "sign", Type: "SignDoc", Params: map[string]any{}},
				{ID: "out", Type: "JSONOutput", Params: map[string]any{}},
			},
			Edges: []models.WorkflowEdge{
				{ID: "e1", Source: "hash", SourceHandle: "hash", Target: "sign", TargetHandle: "hash"},
				{ID: "e2", Source: "sign", SourceHandle: "signature", Target: "out", TargetHandle: "value"},
			},
		},
	}
}

func veilDocument() WorkflowTemplate {
	return WorkflowTemplate{
		ID:          "veil-document",
		Name:        "Veil a document",
		Description: "Veil a document against automated copying, then sign and ledger the hardened copy's hash.",
		Workflow: models.Workflow{
			ID:   "veil-document",
			Name: "Veil a document",
			Nodes: []models.WorkflowNode{
				{ID: "source", Type: "HashDoc", Params: map[string]any{"file": "confidential: quarterly figures"}},
				{ID: "veil", Type: "VeilDoc", Params: map[string]any{}},
				{ID: "rehash", Type: "HashDoc", Params: map[string]any{}},
				{ID: "sign", Type: "SignDoc", Params: map[string]any{}},
				{ID: "ledger", Type: "LedgerMemo", Params: map[string]any{}},
				{ID: "merge", Type: "MergeJSON", Params: map[string]any{}},
				{ID: "out", Type: "JSONOutput", Params: map[string]any{}},
			},
			Edges: []models.WorkflowEdge{
				{ID: "e1", Source: "source", SourceHandle: "file", Target: "veil", TargetHandle: "file"},
				{ID: "e2", Source: "veil", SourceHandle: "file", Target: "rehash", TargetHandle: "file"},
				{ID: "e3", Source: "rehash", SourceHandle: "hash", Target: "sign", TargetHandle: "hash"},
				{ID: "e4", Source: "rehash", SourceHandle: "hash", Target: "ledger", TargetHandle: "hash"},
				{ID: "e5", Source: "sign", SourceHandle: "signature", Target: "merge", TargetHandle: "a"},
				{ID: "e6", Source: "ledger", SourceHandle: "tx_id", Target: "merge", TargetHandle: "b"},
				{ID: "e7", Source: "merge", SourceHandle: "merged", Target: "out", TargetHandle: "value"},
			},
		},
	}
}

func hardenImage() WorkflowTemplate {
	return WorkflowTemplate{
		ID:          "harden-image",
		Name:        "Harden an image",
		Description: "Apply adversarial protection layers to an image and ledger the protected copy's hash.",
		Workflow: models.Workflow{
			ID:   "harden-image",
			Name: "Harden an image",
			Nodes: []models.WorkflowNode{
				{ID: "source", Type: "HashDoc", Params: map[string]any{"file": "image:demo-portrait"}},
				{ID: "harden", Type: "HardenImage", Params: map[string]any{}},
				{ID: "rehash", Type: "HashDoc", Params: map[string]any{}},
				{ID: "ledger", Type: "LedgerMemo", Params: map[string]any{}},
				{ID: "out", Type: "LogOutput", Params: map[string]any{"label": "attestation"}},
			},
			Edges: []models.WorkflowEdge{
				{ID: "e1", Source: "source", SourceHandle: "file", Target: "harden", TargetHandle: "file"},
				{ID: "e2", Source: "harden", SourceHandle: "file", Target: "rehash", TargetHandle: "file"},
				{ID: "e3", Source: "rehash", SourceHandle: "hash", Target: "ledger", TargetHandle: "hash"},
				{ID: "e4", Source: "ledger", SourceHandle: "tx_id", Target: "out", TargetHandle: "value"},
			},
		},
	}
}

func bankingSweep() WorkflowTemplate {
	return WorkflowTemplate{
		ID:          "banking-sweep",
		Name:        "Banking sweep",
		Description: "Read a demo account balance, gate on a threshold, sweep the balance and log a summary.",
		Workflow: models.Workflow{
			ID:   "banking-sweep",
			Name: "Banking sweep",
			Nodes: []models.WorkflowNode{
				{ID: "balance", Type: "BankBalance", Params: map[string]any{}},
				{ID: "check", Type: "Gate", Params: map[string]any{"operator": "gt", "compare_to": "100"}},
				{ID: "sweep", Type: "BankTransfer", Params: map[string]any{"memo": "sweep"}},
				{ID: "merge", Type: "MergeJSON", Params: map[string]any{}},
				{ID: "format", Type: "Template", Params: map[string]any{"expression": "sweep complete: {{.inputs.value}}"}},
				{ID: "out", Type: "LogOutput", Params: map[string]any{"label": "sweep"}},
			},
			Edges: []models.WorkflowEdge{
				{ID: "e1", Source: "balance", SourceHandle: "balance", Target: "check", TargetHandle: "value"},
				{ID: "e2", Source: "balance", SourceHandle: "balance", Target: "sweep", TargetHandle: "amount"},
				{ID: "e3", Source: "check", SourceHandle: "result", Target: "merge", TargetHandle: "a"},
				{ID: "e4", Source: "sweep", SourceHandle: "receipt_id", Target: "merge", TargetHandle: "b"},
				{ID: "e5", Source: "merge", SourceHandle: "merged", Target: "format", TargetHandle: "value"},
				{ID: "e6", Source: "format", SourceHandle: "result", Target: "out", TargetHandle: "value"},
			},
		},
	}
}
