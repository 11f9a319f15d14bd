// Package registry provides the capability table: a registry mapping
// node type identifiers to their port schemas and computations.
package registry

import (
	"log/slog"
	"sort"

	"github.com/veildoc/veilflow/pkg/models"
	"github.com/veildoc/veilflow/pkg/protocol"
)

// Registry is an explicitly constructed capability table. It is built
// once at startup and read-only afterwards; no locking is needed.
type Registry struct {
	logger       *slog.Logger
	capabilities map[string]protocol.Capability
}

func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{
		logger:       logger,
		capabilities: make(map[string]protocol.Capability),
	}
}

// Register adds a capability to the table. Registering the same type
// twice replaces the earlier entry.
func (r *Registry) Register(capability protocol.Capability) {
	if _, exists := r.capabilities[capability.Type()]; exists {
		r.logger.Warn("Replacing registered capability", "type", capability.Type())
	}

	r.capabilities[capability.Type()] = capability
}

// Lookup resolves a node type to its capability.
func (r *Registry) Lookup(capType string) (protocol.Capability, bool) {
	capability, ok := r.capabilities[capType]

	return capability, ok
}

// Types returns all registered type identifiers in sorted order.
func (r *Registry) Types() []string {
	types := make([]string, 0, len(r.capabilities))
	for capType := range r.capabilities {
		types = append(types, capType)
	}

	sort.Strings(types)

	return types
}

// RegisteredCapability is the catalog view of a capability, served to
// editors and API clients.
type RegisteredCapability struct {
	Type        string              `json:"type"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Category    models.CategoryType `json:"category"`
	Inputs      []models.Port       `json:"inputs"`
	Outputs     []models.Port       `json:"outputs"`
	Params      []models.ParamDef   `json:"params"`
	ParamSchema map[string]any      `json:"param_schema"`
}

// Catalog returns the registered capabilities sorted by type.
func (r *Registry) Catalog() []RegisteredCapability {
	catalog := make([]RegisteredCapability, 0, len(r.capabilities))
	for _, capType := range r.Types() {
		capability := r.capabilities[capType]
		catalog = append(catalog, RegisteredCapability{
			Type:        capability.Type(),
			Name:        capability.Name(),
			Description: capability.Description(),
			Category:    capability.Category(),
			Inputs:      capability.Inputs(),
			Outputs:     capability.Outputs(),
			Params:      capability.Params(),
			ParamSchema: ParamSchema(capability),
		})
	}

	return catalog
}

// HealthCheck reports whether the capability table is usable.
func (r *Registry) HealthCheck() (string, bool) {
	if len(r.capabilities) == 0 {
		return "Capability table is empty", false
	}

	return "Capability table is healthy", true
}
