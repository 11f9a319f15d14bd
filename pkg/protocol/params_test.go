package protocol

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/veildoc/veilflow/pkg/models"
)

func TestParamString(t *testing.T) {
	params := map[string]any{"name": "veil", "count": 3}

	assert.Equal(t, "veil", ParamString(params, "name", "fallback"))
	assert.Equal(t, "fallback", ParamString(params, "count", "fallback"))
	assert.Equal(t, "fallback", ParamString(params, "missing", "fallback"))
}

func TestParamBool(t *testing.T) {
	params := map[string]any{"on": true, "textual": "false", "junk": "maybe"}

	assert.True(t, ParamBool(params, "on", false))
	assert.False(t, ParamBool(params, "textual", true))
	assert.True(t, ParamBool(params, "junk", true))
	assert.False(t, ParamBool(params, "missing", false))
}

func TestParamFloat(t *testing.T) {
	params := map[string]any{
		"f":   1.5,
		"i":   2,
		"i64": int64(3),
		"s":   "4.5",
		"bad": "nope",
	}

	assert.InDelta(t, 1.5, ParamFloat(params, "f", 0), 0)
	assert.InDelta(t, 2, ParamFloat(params, "i", 0), 0)
	assert.InDelta(t, 3, ParamFloat(params, "i64", 0), 0)
	assert.InDelta(t, 4.5, ParamFloat(params, "s", 0), 0)
	assert.InDelta(t, 9, ParamFloat(params, "bad", 9), 0)
	assert.InDelta(t, 9, ParamFloat(params, "missing", 9), 0)
}

type paramCapability struct{}

func (paramCapability) Type() string                  { return "Param" }
func (paramCapability) Name() string                  { return "Param" }
func (paramCapability) Description() string           { return "" }
func (paramCapability) Category() models.CategoryType { return models.CategoryLogic }
func (paramCapability) Inputs() []models.Port         { return nil }
func (paramCapability) Outputs() []models.Port        { return nil }

func (paramCapability) Params() []models.ParamDef {
	return []models.ParamDef{
		{ID: "a", Kind: models.KindString, Default: "default-a"},
		{ID: "b", Kind: models.KindNumber, Default: 7},
		{ID: "c", Kind: models.KindString},
	}
}

func (paramCapability) Compute(context.Context, map[string]any, map[string]any) (map[string]any, error) {
	return nil, nil
}

func TestMergeParams(t *testing.T) {
	merged := MergeParams(paramCapability{}, map[string]any{"a": "override", "extra": true})

	assert.Equal(t, "override", merged["a"])
	assert.Equal(t, 7, merged["b"])
	assert.Equal(t, true, merged["extra"])

	// Params without defaults contribute nothing.
	_, ok := merged["c"]
	assert.False(t, ok)
}

func TestMergeParams_NilOverrides(t *testing.T) {
	merged := MergeParams(paramCapability{}, nil)

	assert.Equal(t, "default-a", merged["a"])
	assert.Equal(t, 7, merged["b"])
}
