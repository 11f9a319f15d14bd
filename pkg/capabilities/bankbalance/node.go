// Package bankbalance provides the account balance lookup capability.
// The banking integration is mocked when its endpoint is absent or
// unreachable: the node answers with a deterministic synthetic balance
// so workflows remain runnable in degraded environments.
package bankbalance

import (
	"context"
	"crypto/sha256"
	"encoding/binary"

	"github.com/veildoc/veilflow/pkg/integration"
	"github.com/veildoc/veilflow/pkg/models"
	"github.com/veildoc/veilflow/pkg/protocol"
)

const (
	OutputPortBalance = "balance"
	ParamEndpoint     = "endpoint"
	ParamAccountID    = "account_id"

	defaultAccountID = "demo-checking"
)

type BankBalance struct{}

func New() protocol.Capability {
	return &BankBalance{}
}

func (c *BankBalance) Type() string { return "BankBalance" }

func (c *BankBalance) Name() string { return "Bank Balance" }

func (c *BankBalance) Description() string {
	return "Looks up an account balance from the banking integration, with an offline synthetic fallback"
}

func (c *BankBalance) Category() models.CategoryType { return models.CategoryBanking }

func (c *BankBalance) Inputs() []models.Port {
	return nil
}

func (c *BankBalance) Outputs() []models.Port {
	return []models.Port{
		{ID: OutputPortBalance, Label: "Balance", Kind: models.KindNumber},
		{ID: "currency", Label: "Currency", Kind: models.KindString},
		{ID: "account_id", Label: "Account", Kind: models.KindString},
		{ID: "mock", Label: "Synthetic result", Kind: models.KindBoolean},
	}
}

func (c *BankBalance) Params() []models.ParamDef {
	return []models.ParamDef{
		{ID: ParamEndpoint, Label: "Banking endpoint", Kind: models.KindString, Default: ""},
		{ID: ParamAccountID, Label: "Account ID", Kind: models.KindString, Default: defaultAccountID},
	}
}

func (c *BankBalance) Compute(ctx context.Context, _ map[string]any, params map[string]any) (map[string]any, error) {
	accountID := protocol.ParamString(params, ParamAccountID, defaultAccountID)

	endpoint := protocol.ParamString(params, ParamEndpoint, "")
	if endpoint != "" {
		response, err := integration.PostJSON(ctx, endpoint, map[string]any{
			"action":     "balance",
			"account_id": accountID,
		})
		if err == nil {
			return response, nil
		}
	}

	return map[string]any{
		OutputPortBalance: syntheticBalance(accountID),
		"currency":        "USD",
		"account_id":      accountID,
		"mock":            true,
	}, nil
}

// syntheticBalance maps an account id onto a stable two-decimal amount
// under 100,000.
func syntheticBalance(accountID string) float64 {
	digest := sha256.Sum256([]byte(accountID))
	cents := binary.BigEndian.Uint64(digest[:8]) % 10_000_000

	return float64(cents) / 100
}
