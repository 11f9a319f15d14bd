// Package registry provides default capability registration.
package registry

import (
	"github.com/veildoc/veilflow/pkg/capabilities/bankbalance"
	"github.com/veildoc/veilflow/pkg/capabilities/banktransfer"
	"github.com/veildoc/veilflow/pkg/capabilities/gate"
	"github.com/veildoc/veilflow/pkg/capabilities/hardenimage"
	"github.com/veildoc/veilflow/pkg/capabilities/hashdoc"
	"github.com/veildoc/veilflow/pkg/capabilities/jsonoutput"
	"github.com/veildoc/veilflow/pkg/capabilities/ledgermemo"
	"github.com/veildoc/veilflow/pkg/capabilities/logoutput"
	"github.com/veildoc/veilflow/pkg/capabilities/mergejson"
	"github.com/veildoc/veilflow/pkg/capabilities/render"
	"github.com/veildoc/veilflow/pkg/capabilities/signdoc"
	"github.com/veildoc/veilflow/pkg/capabilities/veildoc"
)

// RegisterDefaultCapabilities registers all built-in capabilities with
// the registry.
func (r *Registry) RegisterDefaultCapabilities() {
	// Documents
	r.Register(hashdoc.New())
	r.Register(signdoc.New())
	r.Register(veildoc.New())

	// Images
	r.Register(hardenimage.New())

	// Banking
	r.Register(bankbalance.New())
	r.Register(banktransfer.New())

	// Crypto
	r.Register(ledgermemo.New())

	// Logic
	r.Register(gate.New())
	r.Register(mergejson.New())
	r.Register(render.New())

	// Output
	r.Register(logoutput.New())
	r.Register(jsonoutput.New())
}
