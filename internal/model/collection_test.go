package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldCollection(t *testing.T) {
	fields := NewFieldCollection(
		&Field{Key: "b", Type: FieldTypeText},
		&Field{Key: "a", Type: FieldTypeText},
	)

	assert.True(t, fields.Has("a"))
	assert.False(t, fields.Has("c"))
	assert.Equal(t, []string{"b", "a"}, fields.Keys())

	first, ok := fields.First()
	require.True(t, ok)
	assert.Equal(t, "b", first.Key)

	f, ok := fields.Field("a")
	require.True(t, ok)
	assert.Equal(t, "a", f.Key)
}

func TestFieldCollection_Sanitize(t *testing.T) {
	fields := NewFieldCollection(
		&Field{Key: "name", Type: FieldTypeVarChar},
		&Field{
			Key:  "status",
			Type: FieldTypeSingleSelect,
			PermittedValues: NewPermittedValues(
				PermittedValue{Key: "active", Label: "Active"},
				PermittedValue{Key: "archived", Label: "Archived"},
			),
		},
		&Field{
			Key:             "tags",
			Type:            FieldTypeMultiSelect,
			PermittedValues: NewPermittedValues(PermittedValue{Key: "vip", Label: "VIP"}),
		},
	)

	got := fields.Sanitize(map[string]any{
		"name":    "Jane",
		"unknown": "dropped",
		"status":  "deleted",
		"tags":    []any{"vip", "spam", 3},
	})

	assert.Equal(t, map[string]any{
		"name": "Jane",
		"tags": []string{"vip"},
	}, got)

	got = fields.Sanitize(map[string]any{
		"status": "active",
		"tags":   []string{"spam"},
	})
	assert.Equal(t, map[string]any{"status": "active"}, got)
}

func TestModuleCollection(t *testing.T) {
	modules := NewModuleCollection(
		&Module{Key: ModuleEstate, Label: "Estate"},
		&Module{Key: ModuleAddress, Label: "Address"},
	)

	assert.Equal(t, []string{"estate", "address"}, modules.Keys())

	m, ok := modules.Module(ModuleAddress)
	require.True(t, ok)
	assert.Equal(t, "Address", m.Label)

	only := modules.Only(ModuleAddress, ModuleTask)
	assert.Equal(t, []string{"address"}, only.Keys())
	assert.Equal(t, modules, modules.Only())
}
