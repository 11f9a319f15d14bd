package bankbalance

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/veildoc/veilflow/pkg/protocol"
)

func TestCompute_SyntheticBalance(t *testing.T) {
	capability := New()

	output, err := capability.Compute(context.Background(), nil,
		protocol.MergeParams(capability, nil))

	require.NoError(t, err)
	assert.Equal(t, true, output["mock"])
	assert.Equal(t, "USD", output["currency"])
	assert.Equal(t, "demo-checking", output["account_id"])

	balance, ok := output["balance"].(float64)
	require.True(t, ok)
	assert.GreaterOrEqual(t, balance, 0.0)
	assert.Less(t, balance, 100_000.0)
}

func TestCompute_BalanceIsStablePerAccount(t *testing.T) {
	capability := New()

	first, err := capability.Compute(context.Background(), nil,
		protocol.MergeParams(capability, map[string]any{"account_id": "acct-1"}))
	require.NoError(t, err)

	second, err := capability.Compute(context.Background(), nil,
		protocol.MergeParams(capability, map[string]any{"account_id": "acct-1"}))
	require.NoError(t, err)

	assert.Equal(t, first["balance"], second["balance"])

	other, err := capability.Compute(context.Background(), nil,
		protocol.MergeParams(capability, map[string]any{"account_id": "acct-2"}))
	require.NoError(t, err)

	assert.NotEqual(t, first["balance"], other["balance"])
}
