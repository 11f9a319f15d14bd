package hashdoc

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/veildoc/veilflow/pkg/protocol"
)

func TestCompute_HashesInputContent(t *testing.T) {
	capability := New()

	output, err := capability.Compute(context.Background(),
		map[string]any{"file": "hello world"},
		protocol.MergeParams(capability, nil))

	require.NoError(t, err)

	expected := sha256.Sum256([]byte("hello world"))
	assert.Equal(t, hex.EncodeToString(expected[:]), output["hash"])
	assert.Equal(t, "hello world", output["file"])
	assert.Equal(t, "sha256", output["algorithm"])
}

func TestCompute_FallsBackToInlineParam(t *testing.T) {
	capability := New()

	output, err := capability.Compute(context.Background(),
		map[string]any{},
		protocol.MergeParams(capability, map[string]any{"file": "inline"}))

	require.NoError(t, err)
	assert.Equal(t, "inline", output["file"])
	assert.NotEmpty(t, output["hash"])
}

func TestCompute_InputWinsOverParam(t *testing.T) {
	capability := New()

	output, err := capability.Compute(context.Background(),
		map[string]any{"file": "from upstream"},
		protocol.MergeParams(capability, map[string]any{"file": "inline"}))

	require.NoError(t, err)
	assert.Equal(t, "from upstream", output["file"])
}

func TestCompute_Algorithms(t *testing.T) {
	capability := New()

	for _, algorithm := range []string{"sha256", "sha1", "md5"} {
		output, err := capability.Compute(context.Background(),
			map[string]any{"file": "content"},
			protocol.MergeParams(capability, map[string]any{"algorithm": algorithm}))

		require.NoError(t, err, algorithm)
		assert.Equal(t, algorithm, output["algorithm"])
		assert.NotEmpty(t, output["hash"])
	}
}

func TestCompute_UnsupportedAlgorithm(t *testing.T) {
	capability := New()

	_, err := capability.Compute(context.Background(),
		map[string]any{"file": "content"},
		protocol.MergeParams(capability, map[string]any{"algorithm": "crc32"}))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported hash algorithm")
}

func TestCompute_NoContent(t *testing.T) {
	capability := New()

	_, err := capability.Compute(context.Background(),
		map[string]any{},
		protocol.MergeParams(capability, nil))

	assert.Error(t, err)
}
