// Package ledgermemo provides the distributed-ledger attestation
// capability: it writes a document hash as a memo transaction. Offline
// it falls back to a deterministic synthetic transaction id.
package ledgermemo

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
	InputPortHash  = "hash"
	OutputPortTxID = "tx_id"
	ParamEndpoint  = "endpoint"
	ParamNetwork   = "network"

	defaultNetwork = "testnet"
)

type LedgerMemo struct{}

func New() protocol.Capability {
	return &LedgerMemo{}
}

func (c *LedgerMemo) Type() string { return "LedgerMemo" }

func (c *LedgerMemo) Name() string { return "Ledger Memo" }

func (c *LedgerMemo) Description() string {
	return "Attests a document hash on a distributed ledger via a memo write, with a synthetic fallback"
}

func (c *LedgerMemo) Category() models.CategoryType { return models.CategoryCrypto }

func (c *LedgerMemo) Inputs() []models.Port {
	return []models.Port{
		{ID: InputPortHash, Label: "Hash", Kind: models.KindHash, Required: true},
	}
}

func (c *LedgerMemo) Outputs() []models.Port {
	return []models.Port{
		{ID: OutputPortTxID, Label: "Transaction", Kind: models.KindString},
		{ID: "network", Label: "Network", Kind: models.KindString},
		{ID: "hash", Label: "Hash", Kind: models.KindHash},
		{ID: "mock", Label: "Synthetic result", Kind: models.KindBoolean},
	}
}

func (c *LedgerMemo) Params() []models.ParamDef {
	return []models.ParamDef{
		{ID: ParamEndpoint, Label: "Ledger endpoint", Kind: models.KindString, Default: ""},
		{ID: ParamNetwork, Label: "Network", Kind: models.KindString, Default: defaultNetwork, Options: []string{"testnet", "mainnet"}},
	}
}

func (c *LedgerMemo) Compute(ctx context.Context, inputs, params map[string]any) (map[string]any, error) {
	digest, ok := inputs[InputPortHash].(string)
	if !ok || digest == "" {
		return nil, fmt.Errorf("missing required input %q", InputPortHash)
	}

	network := protocol.ParamString(params, ParamNetwork, defaultNetwork)

	endpoint := protocol.ParamString(params, ParamEndpoint, "")
	if endpoint != "" {
		response, err := integration.PostJSON(ctx, endpoint, map[string]any{
			"network": network,
			"memo":    digest,
		})
		if err == nil {
			return response, nil
		}
	}

	txDigest := sha256.Sum256([]byte(network + ":" + digest))

	return map[string]any{
		OutputPortTxID: "0x" + hex.EncodeToString(txDigest[:16]),
		"network":      network,
		"hash":         digest,
		"mock":         true,
	}, nil
}
