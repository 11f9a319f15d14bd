// Package hardenimage provides the image protection capability. The
// live pipeline applies a universal adversarial perturbation, patch
// disruption and a prompt-injection overlay; offline, the node emits a
// deterministic synthetic result derived from the image and seed.
package hardenimage

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/veildoc/veilflow/pkg/integration"
	"github.com/veildoc/veilflow/pkg/models"
	"github.com/veildoc/veilflow/pkg/protocol"
)

const (
	InputPortFile  = "file"
	OutputPortFile = "file"
	ParamEndpoint  = "endpoint"
	ParamSeed      = "seed"
	ParamOverlay   = "overlay_delta"
	ParamFaces     = "detect_faces"
)

type HardenImage struct{}

func New() protocol.Capability {
	return &HardenImage{}
}

func (c *HardenImage) Type() string { return "HardenImage" }

func (c *HardenImage) Name() string { return "Harden Image" }

func (c *HardenImage) Description() string {
	return "Protects an image against vision-model extraction; same seed, byte-identical output"
}

func (c *HardenImage) Category() models.CategoryType { return models.CategoryImages }

func (c *HardenImage) Inputs() []models.Port {
	return []models.Port{
		{ID: InputPortFile, Label: "Image", Kind: models.KindFile, Required: true},
	}
}

func (c *HardenImage) Outputs() []models.Port {
	return []models.Port{
		{ID: OutputPortFile, Label: "Protected image", Kind: models.KindFile},
		{ID: "seed", Label: "Derived seed", Kind: models.KindNumber},
		{ID: "layers", Label: "Applied layers", Kind: models.KindJSON},
		{ID: "mock", Label: "Synthetic result", Kind: models.KindBoolean},
	}
}

func (c *HardenImage) Params() []models.ParamDef {
	return []models.ParamDef{
		{ID: ParamEndpoint, Label: "Hardener endpoint", Kind: models.KindString, Default: ""},
		{ID: ParamSeed, Label: "Seed", Kind: models.KindString, Default: ""},
		{ID: ParamOverlay, Label: "Overlay delta", Kind: models.KindNumber, Default: 14},
		{ID: ParamFaces, Label: "Detect faces", Kind: models.KindBoolean, Default: true},
	}
}

func (c *HardenImage) Compute(ctx context.Context, inputs, params map[string]any) (map[string]any, error) {
	file, ok := inputs[InputPortFile].(string)
	if !ok || file == "" {
		return nil, fmt.Errorf("missing required input %q", InputPortFile)
	}

	seedMaterial := protocol.ParamString(params, ParamSeed, "")
	if seedMaterial == "" {
		seedMaterial = file
	}

	seed := DeriveSeed(seedMaterial)

	endpoint := protocol.ParamString(params, ParamEndpoint, "")
	if endpoint != "" {
		response, err := integration.PostJSON(ctx, endpoint, map[string]any{
			"file":          file,
			"seed":          seed,
			"overlay_delta": protocol.ParamFloat(params, ParamOverlay, 14),
			"detect_faces":  protocol.ParamBool(params, ParamFaces, true),
		})
		if err == nil {
			return response, nil
		}
	}

	return c.synthetic(file, seed), nil
}

func (c *HardenImage) synthetic(file string, seed uint64) map[string]any {
	material := make([]byte, 8+len(file))
	binary.BigEndian.PutUint64(material, seed)
	copy(material[8:], file)

	digest := sha256.Sum256(material)

	return map[string]any{
		OutputPortFile: "hardened:" + hex.EncodeToString(digest[:8]),
		"seed":         seed,
		"layers":       []string{"uap", "vit_patch", "overlay", "metadata"},
		"mock":         true,
	}
}

// DeriveSeed turns arbitrary seed material into a stable integer:
// integer strings parse directly, hex strings use their leading 16
// digits, anything else hashes through SHA-256.
func DeriveSeed(material string) uint64 {
	parsed, err := strconv.ParseUint(material, 10, 64)
	if err == nil {
		return parsed
	}

	prefix := material
	if len(prefix) > 16 {
		prefix = prefix[:16]
	}

	parsed, err = strconv.ParseUint(prefix, 16, 64)
	if err == nil {
		return parsed
	}

	digest := sha256.Sum256([]byte(material))

	return binary.BigEndian.Uint64(digest[:8])
}
