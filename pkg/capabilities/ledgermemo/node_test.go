package ledgermemo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/veildoc/veilflow/pkg/protocol"
)

func TestCompute_RecordsMemo(t *testing.T) {
	capability := New()

	output, err := capability.Compute(context.Background(),
		map[string]any{"hash": "deadbeef"},
		protocol.MergeParams(capability, nil))

	require.NoError(t, err)
	assert.Equal(t, "testnet", output["network"])
	assert.Equal(t, "deadbeef", output["hash"])
	assert.Equal(t, true, output["mock"])
	assert.Contains(t, output["tx_id"], "0x")
}

func TestCompute_TxIDVariesByNetwork(t *testing.T) {
	capability := New()
	inputs := map[string]any{"hash": "deadbeef"}

	testnet, err := capability.Compute(context.Background(), inputs,
		protocol.MergeParams(capability, nil))
	require.NoError(t, err)

	mainnet, err := capability.Compute(context.Background(), inputs,
		protocol.MergeParams(capability, map[string]any{"network": "mainnet"}))
	require.NoError(t, err)

	assert.NotEqual(t, testnet["tx_id"], mainnet["tx_id"])
}

func TestCompute_MissingHash(t *testing.T) {
	capability := New()

	_, err := capability.Compute(context.Background(), map[string]any{},
		protocol.MergeParams(capability, nil))

	require.Error(t, err)
	assert.Equal(t, `missing required input "hash"`, err.Error())
}
