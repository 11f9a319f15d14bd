package signdoc

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/veildoc/veilflow/pkg/protocol"
)

func TestCompute_SignsHash(t *testing.T) {
	capability := New()

	output, err := capability.Compute(context.Background(),
		map[string]any{"hash": "deadbeef"},
		protocol.MergeParams(capability, nil))

	require.NoError(t, err)
	assert.NotEmpty(t, output["signature"])
	assert.Equal(t, "local", output["key_id"])
	assert.NotEmpty(t, output["signed_at"])
}

func TestCompute_SignatureIsDeterministicPerKey(t *testing.T) {
	capability := New()
	inputs := map[string]any{"hash": "deadbeef"}

	first, err := capability.Compute(context.Background(), inputs, protocol.MergeParams(capability, nil))
	require.NoError(t, err)

	second, err := capability.Compute(context.Background(), inputs, protocol.MergeParams(capability, nil))
	require.NoError(t, err)

	assert.Equal(t, first["signature"], second["signature"])

	other, err := capability.Compute(context.Background(), inputs,
		protocol.MergeParams(capability, map[string]any{"key": "another-key"}))
	require.NoError(t, err)

	assert.NotEqual(t, first["signature"], other["signature"])
}

func TestCompute_MissingHash(t *testing.T) {
	capability := New()

	_, err := capability.Compute(context.Background(),
		map[string]any{},
		protocol.MergeParams(capability, nil))

	require.Error(t, err)
	assert.Equal(t, `missing required input "hash"`, err.Error())
}
