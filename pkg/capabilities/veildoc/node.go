// Package veildoc provides the document hardening capability. The live
// hardener rasterizes each page and overlays an invisible gibberish
// copy layer; when the hardener endpoint is unreachable the node
// produces a deterministic synthetic result instead so workflows stay
// runnable offline.
package veildoc

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/veildoc/veilflow/pkg/integration"
	"github.com/veildoc/veilflow/pkg/models"
	"github.com/veildoc/veilflow/pkg/protocol"
)

const (
	InputPortFile  = "file"
	OutputPortFile = "file"
	ParamEndpoint  = "endpoint"
	ParamPoison    = "poison"
	ParamQuality   = "quality"
)

type VeilDoc struct{}

func New() protocol.Capability {
	return &VeilDoc{}
}

func (c *VeilDoc) Type() string { return "VeilDoc" }

func (c *VeilDoc) Name() string { return "Veil Document" }

func (c *VeilDoc) Description() string {
	return "Hardens a document against automated extraction: rasterized visual layer plus a poisoned copy layer"
}

func (c *VeilDoc) Category() models.CategoryType { return models.CategoryDocuments }

func (c *VeilDoc) Inputs() []models.Port {
	return []models.Port{
		{ID: InputPortFile, Label: "File", Kind: models.KindFile, Required: true},
	}
}

func (c *VeilDoc) Outputs() []models.Port {
	return []models.Port{
		{ID: OutputPortFile, Label: "Hardened file", Kind: models.KindFile},
		{ID: "pages", Label: "Pages", Kind: models.KindNumber},
		{ID: "poisoned", Label: "Copy layer poisoned", Kind: models.KindBoolean},
		{ID: "mock", Label: "Synthetic result", Kind: models.KindBoolean},
	}
}

func (c *VeilDoc) Params() []models.ParamDef {
	return []models.ParamDef{
		{ID: ParamEndpoint, Label: "Hardener endpoint", Kind: models.KindString, Default: ""},
		{ID: ParamPoison, Label: "Poison copy layer", Kind: models.KindBoolean, Default: true},
		{ID: ParamQuality, Label: "Raster quality", Kind: models.KindNumber, Default: 85},
	}
}

func (c *VeilDoc) Compute(ctx context.Context, inputs, params map[string]any) (map[string]any, error) {
	file, ok := inputs[InputPortFile].(string)
	if !ok || file == "" {
		return nil, fmt.Errorf("missing required input %q", InputPortFile)
	}

	poison := protocol.ParamBool(params, ParamPoison, true)
	quality := protocol.ParamFloat(params, ParamQuality, 85)

	endpoint := protocol.ParamString(params, ParamEndpoint, "")
	if endpoint != "" {
		response, err := integration.PostJSON(ctx, endpoint, map[string]any{
			"file":    file,
			"poison":  poison,
			"quality": quality,
		})
		if err == nil {
			return response, nil
		}
	}

	return c.synthetic(file, poison), nil
}

// synthetic is the offline substitute for the hardener pipeline. Same
// input, same output: the hardened artifact is named after the
// document's digest.
func (c *VeilDoc) synthetic(file string, poison bool) map[string]any {
	digest := sha256.Sum256([]byte(file))

	return map[string]any{
		OutputPortFile: "veiled:" + hex.EncodeToString(digest[:8]),
		"pages":        1 + len(file)%8,
		"poisoned":     poison,
		"mock":         true,
	}
}
