// Package hashdoc provides the document hashing capability.
package hashdoc

import (
	"context"
	"crypto/md5"  //nolint:gosec // soft fingerprints, not security material
	"crypto/sha1" //nolint:gosec // soft fingerprints, not security material
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"

	"github.com/veildoc/veilflow/pkg/models"
	"github.com/veildoc/veilflow/pkg/protocol"
)

const (
	InputPortFile    = "file"
	OutputPortHash   = "hash"
	OutputPortFile   = "file"
	ParamAlgorithm   = "algorithm"
	ParamFile        = "file"
	defaultAlgorithm = "sha256"
)

// HashDoc hashes document content and passes the document through for
// downstream consumers. The content comes from the file input port, or
// from the file param when the node has no upstream.
type HashDoc struct{}

func New() protocol.Capability {
	return &HashDoc{}
}

func (c *HashDoc) Type() string { return "HashDoc" }

func (c *HashDoc) Name() string { return "Hash Document" }

func (c *HashDoc) Description() string {
	return "Computes a cryptographic digest of document content and passes the document through"
}

func (c *HashDoc) Category() models.CategoryType { return models.CategoryDocuments }

func (c *HashDoc) Inputs() []models.Port {
	return []models.Port{
		{ID: InputPortFile, Label: "File", Kind: models.KindFile},
	}
}

func (c *HashDoc) Outputs() []models.Port {
	return []models.Port{
		{ID: OutputPortHash, Label: "Hash", Kind: models.KindHash},
		{ID: OutputPortFile, Label: "File", Kind: models.KindFile},
	}
}

func (c *HashDoc) Params() []models.ParamDef {
	return []models.ParamDef{
		{ID: ParamAlgorithm, Label: "Algorithm", Kind: models.KindString, Default: defaultAlgorithm, Options: []string{"sha256", "sha1", "md5"}},
		{ID: ParamFile, Label: "Inline content", Kind: models.KindFile, Default: ""},
	}
}

func (c *HashDoc) Compute(_ context.Context, inputs, params map[string]any) (map[string]any, error) {
	content, ok := inputs[InputPortFile].(string)
	if !ok || content == "" {
		content = protocol.ParamString(params, ParamFile, "")
	}

	if content == "" {
		return nil, fmt.Errorf("no document content on input %q or param %q", InputPortFile, ParamFile)
	}

	algorithm := protocol.ParamString(params, ParamAlgorithm, defaultAlgorithm)

	digest, err := newDigest(algorithm)
	if err != nil {
		return nil, err
	}

	digest.Write([]byte(content))

	return map[string]any{
		OutputPortHash: hex.EncodeToString(digest.Sum(nil)),
		OutputPortFile: content,
		"algorithm":    algorithm,
	}, nil
}

func newDigest(algorithm string) (hash.Hash, error) {
	switch algorithm {
	case "sha256":
		return sha256.New(), nil
	case "sha1":
		return sha1.New(), nil //nolint:gosec
	case "md5":
		return md5.New(), nil //nolint:gosec
	default:
		return nil, fmt.Errorf("unsupported hash algorithm %q", algorithm)
	}
}
