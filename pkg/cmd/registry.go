// Package cmd provides common initialization functions for command-line applications.
package cmd

import (
	"log/slog"

	"github.com/veildoc/veilflow/pkg/registry"
)

// NewRegistry builds a capability registry with the default capability
// set installed.
func NewRegistry(logger *slog.Logger) *registry.Registry {
	reg := registry.NewRegistry(logger)
	reg.RegisterDefaultCapabilities()

	return reg
}
