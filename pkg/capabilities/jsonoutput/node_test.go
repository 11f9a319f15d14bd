package jsonoutput

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/veildoc/veilflow/pkg/protocol"
)

func TestCompute_IndentedByDefault(t *testing.T) {
	capability := New()

	output, err := capability.Compute(context.Background(),
		map[string]any{"value": map[string]any{"a": 1}},
		protocol.MergeParams(capability, nil))

	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": 1\n}", output["json"])
}

func TestCompute_Compact(t *testing.T) {
	capability := New()

	output, err := capability.Compute(context.Background(),
		map[string]any{"value": map[string]any{"a": 1}},
		protocol.MergeParams(capability, map[string]any{"indent": false}))

	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, output["json"])
}

func TestCompute_AbsentValue(t *testing.T) {
	capability := New()

	output, err := capability.Compute(context.Background(), map[string]any{},
		protocol.MergeParams(capability, map[string]any{"indent": false}))

	require.NoError(t, err)
	assert.Equal(t, "{}", output["json"])
}
