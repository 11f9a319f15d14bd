// Package banktransfer provides the funds transfer capability against
// the mocked banking integration.
package banktransfer

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
	InputPortAmount   = "amount"
	OutputPortReceipt = "receipt_id"
	ParamEndpoint     = "endpoint"
	ParamFromAccount  = "from_account"
	ParamToAccount    = "to_account"
	ParamMemo         = "memo"
)

type BankTransfer struct{}

func New() protocol.Capability {
	return &BankTransfer{}
}

func (c *BankTransfer) Type() string { return "BankTransfer" }

func (c *BankTransfer) Name() string { return "Bank Transfer" }

func (c *BankTransfer) Description() string {
	return "Transfers funds between accounts via the banking integration, with a synthetic settlement fallback"
}

func (c *BankTransfer) Category() models.CategoryType { return models.CategoryBanking }

func (c *BankTransfer) Inputs() []models.Port {
	return []models.Port{
		{ID: InputPortAmount, Label: "Amount", Kind: models.KindNumber, Required: true},
	}
}

func (c *BankTransfer) Outputs() []models.Port {
	return []models.Port{
		{ID: OutputPortReceipt, Label: "Receipt", Kind: models.KindString},
		{ID: "amount", Label: "Amount", Kind: models.KindNumber},
		{ID: "status", Label: "Status", Kind: models.KindString},
		{ID: "mock", Label: "Synthetic result", Kind: models.KindBoolean},
	}
}

func (c *BankTransfer) Params() []models.ParamDef {
	return []models.ParamDef{
		{ID: ParamEndpoint, Label: "Banking endpoint", Kind: models.KindString, Default: ""},
		{ID: ParamFromAccount, Label: "From account", Kind: models.KindString, Default: "demo-checking"},
		{ID: ParamToAccount, Label: "To account", Kind: models.KindString, Default: "demo-savings"},
		{ID: ParamMemo, Label: "Memo", Kind: models.KindString, Default: ""},
	}
}

func (c *BankTransfer) Compute(ctx context.Context, inputs, params map[string]any) (map[string]any, error) {
	amount := protocol.ParamFloat(inputs, InputPortAmount, 0)
	if amount <= 0 {
		return nil, fmt.Errorf("input %q must be a positive amount", InputPortAmount)
	}

	from := protocol.ParamString(params, ParamFromAccount, "demo-checking")
	to := protocol.ParamString(params, ParamToAccount, "demo-savings")

	endpoint := protocol.ParamString(params, ParamEndpoint, "")
	if endpoint != "" {
		response, err := integration.PostJSON(ctx, endpoint, map[string]any{
			"action":       "transfer",
			"from_account": from,
			"to_account":   to,
			"amount":       amount,
			"memo":         protocol.ParamString(params, ParamMemo, ""),
		})
		if err == nil {
			return response, nil
		}
	}

	digest := sha256.Sum256(fmt.Appendf(nil, "%s->%s:%.2f", from, to, amount))

	return map[string]any{
		OutputPortReceipt: "xfer-" + hex.EncodeToString(digest[:8]),
		"amount":          amount,
		"status":          "settled",
		"mock":            true,
	}, nil
}
