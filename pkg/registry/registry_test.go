package registry

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/veildoc/veilflow/pkg/models"
)

type fakeCapability struct {
	typ string
}

func (f *fakeCapability) Type() string                  { return f.typ }
func (f *fakeCapability) Name() string                  { return f.typ }
func (f *fakeCapability) Description() string           { return "fake" }
func (f *fakeCapability) Category() models.CategoryType { return models.CategoryLogic }
func (f *fakeCapability) Inputs() []models.Port         { return nil }
func (f *fakeCapability) Outputs() []models.Port        { return nil }

func (f *fakeCapability) Params() []models.ParamDef {
	return []models.ParamDef{
		{ID: "mode", Label: "Mode", Kind: models.KindString, Default: "auto", Options: []string{"auto", "manual"}},
		{ID: "limit", Label: "Limit", Kind: models.KindNumber, Default: 10},
	}
}

func (f *fakeCapability) Compute(_ context.Context, _, _ map[string]any) (map[string]any, error) {
	return map[string]any{}, nil
}

func newRegistry() *Registry {
	return NewRegistry(slog.New(slog.NewTextHandler(os.Stdout, nil)))
}

func TestRegisterAndLookup(t *testing.T) {
	reg := newRegistry()
	reg.Register(&fakeCapability{typ: "Fake"})

	capability, ok := reg.Lookup("Fake")
	require.True(t, ok)
	assert.Equal(t, "Fake", capability.Type())

	_, ok = reg.Lookup("Missing")
	assert.False(t, ok)
}

func TestRegister_ReplacesExisting(t *testing.T) {
	reg := newRegistry()

	first := &fakeCapability{typ: "Fake"}
	second := &fakeCapability{typ: "Fake"}

	reg.Register(first)
	reg.Register(second)

	capability, ok := reg.Lookup("Fake")
	require.True(t, ok)
	assert.Same(t, second, capability)
}

func TestTypes_Sorted(t *testing.T) {
	reg := newRegistry()
	reg.Register(&fakeCapability{typ: "Zeta"})
	reg.Register(&fakeCapability{typ: "Alpha"})
	reg.Register(&fakeCapability{typ: "Mid"})

	assert.Equal(t, []string{"Alpha", "Mid", "Zeta"}, reg.Types())
}

func TestDefaultCapabilities(t *testing.T) {
	reg := newRegistry()
	reg.RegisterDefaultCapabilities()

	expected := []string{
		"BankBalance", "BankTransfer", "Gate", "HardenImage", "HashDoc",
		"JSONOutput", "LedgerMemo", "LogOutput", "MergeJSON", "SignDoc",
		"Template", "VeilDoc",
	}

	assert.Equal(t, expected, reg.Types())
}

func TestCatalog(t *testing.T) {
	reg := newRegistry()
	reg.RegisterDefaultCapabilities()

	catalog := reg.Catalog()
	require.Len(t, catalog, 12)

	for _, entry := range catalog {
		assert.NotEmpty(t, entry.Type)
		assert.NotEmpty(t, entry.Name)
		assert.NotEmpty(t, entry.Description)
		assert.NotEmpty(t, entry.Category)
		require.NotNil(t, entry.ParamSchema)
		assert.Equal(t, "object", entry.ParamSchema["type"])
	}
}

func TestHealthCheck(t *testing.T) {
	reg := newRegistry()

	_, ok := reg.HealthCheck()
	assert.False(t, ok)

	reg.RegisterDefaultCapabilities()

	message, ok := reg.HealthCheck()
	assert.True(t, ok)
	assert.NotEmpty(t, message)
}

func TestValidateParams(t *testing.T) {
	capability := &fakeCapability{typ: "Fake"}

	assert.NoError(t, ValidateParams(capability, nil))
	assert.NoError(t, ValidateParams(capability, map[string]any{"mode": "manual", "limit": 5}))

	err := ValidateParams(capability, map[string]any{"mode": "chaos"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid params for Fake")

	err = ValidateParams(capability, map[string]any{"limit": "not a number"})
	assert.Error(t, err)
}

func TestParamSchema_EnumAndTypes(t *testing.T) {
	schema := ParamSchema(&fakeCapability{typ: "Fake"})

	properties, ok := schema["properties"].(map[string]any)
	require.True(t, ok)

	mode, ok := properties["mode"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "string", mode["type"])
	assert.Equal(t, []any{"auto", "manual"}, mode["enum"])
	assert.Equal(t, "auto", mode["default"])

	limit, ok := properties["limit"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "number", limit["type"])
}
