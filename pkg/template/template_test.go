package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderWithScope(t *testing.T) {
	result, err := RenderWithScope("{{.inputs.value}}-{{.params.suffix}}",
		map[string]any{"value": "doc"},
		map[string]any{"suffix": "signed"})

	require.NoError(t, err)
	assert.Equal(t, "doc-signed", result)
}

func TestRender_PlainString(t *testing.T) {
	result, err := Render("hello {{.name}}", map[string]any{"name": "world"})

	require.NoError(t, err)
	assert.Equal(t, "hello world", result)
}

func TestRender_DecodesJSONOutput(t *testing.T) {
	result, err := Render(`{"count": {{.n}}}`, map[string]any{"n": 3})

	require.NoError(t, err)
	assert.Equal(t, map[string]any{"count": float64(3)}, result)
}

func TestRender_InvalidJSONStaysString(t *testing.T) {
	result, err := Render("{not json}", nil)

	require.NoError(t, err)
	assert.Equal(t, "{not json}", result)
}

func TestRender_ParseError(t *testing.T) {
	_, err := Render("{{.broken", nil)

	assert.Error(t, err)
}

func TestRender_NowFunc(t *testing.T) {
	result, err := Render("{{now}}", nil)

	require.NoError(t, err)
	assert.NotEmpty(t, result)
}
