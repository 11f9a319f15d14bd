// Package signdoc provides the document signing capability.
package signdoc

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/veildoc/veilflow/pkg/models"
	"github.com/veildoc/veilflow/pkg/protocol"
)

const (
	InputPortHash       = "hash"
	OutputPortSignature = "signature"
	ParamKey            = "key"
	ParamKeyID          = "key_id"

	defaultKey   = "veildoc-dev-key"
	defaultKeyID = "local"
)

// SignDoc signs an upstream document hash with a locally held key.
// The signature is an HMAC over the hash, which keeps runs reproducible
// without a key-management integration.
type SignDoc struct{}

func New() protocol.Capability {
	return &SignDoc{}
}

func (c *SignDoc) Type() string { return "SignDoc" }

func (c *SignDoc) Name() string { return "Sign Document" }

func (c *SignDoc) Description() string {
	return "Signs a document hash with a locally held signing key"
}

func (c *SignDoc) Category() models.CategoryType { return models.CategoryDocuments }

func (c *SignDoc) Inputs() []models.Port {
	return []models.Port{
		{ID: InputPortHash, Label: "Hash", Kind: models.KindHash, Required: true},
	}
}

func (c *SignDoc) Outputs() []models.Port {
	return []models.Port{
		{ID: OutputPortSignature, Label: "Signature", Kind: models.KindHash},
		{ID: "key_id", Label: "Key ID", Kind: models.KindString},
		{ID: "signed_at", Label: "Signed at", Kind: models.KindString},
	}
}

func (c *SignDoc) Params() []models.ParamDef {
	return []models.ParamDef{
		{ID: ParamKey, Label: "Signing key", Kind: models.KindString, Default: defaultKey},
		{ID: ParamKeyID, Label: "Key ID", Kind: models.KindString, Default: defaultKeyID},
	}
}

func (c *SignDoc) Compute(_ context.Context, inputs, params map[string]any) (map[string]any, error) {
	digest, ok := inputs[InputPortHash].(string)
	if !ok || digest == "" {
		return nil, fmt.Errorf("missing required input %q", InputPortHash)
	}

	key := protocol.ParamString(params, ParamKey, defaultKey)

	mac := hmac.New(sha256.New, []byte(key))
	mac.Write([]byte(digest))

	return map[string]any{
		OutputPortSignature: hex.EncodeToString(mac.Sum(nil)),
		"key_id":            protocol.ParamString(params, ParamKeyID, defaultKeyID),
		"signed_at":         time.Now().UTC().Format(time.RFC3339),
	}, nil
}
