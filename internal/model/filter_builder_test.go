package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleFields() FieldCollection {
	return NewFieldCollection(
		filteredField("always"),
		filteredField("houseOnly", NewFieldFilter("objektart", map[string][]string{"type": {"estate"}})),
		filteredField("landOnly", NewFieldFilter("objektart", map[string][]string{"type": {"land"}})),
		filteredField("both", NewFieldFilter("objektart", map[string][]string{"type": {"estate", "land"}})),
	)
}

func TestFieldFilterBuilder_Get(t *testing.T) {
	t.Run("no criteria returns source", func(t *testing.T) {
		fields := sampleFields()
		got := fields.WhereMatchesFilters().Get()
		assert.Equal(t, fields, got)
	})

	t.Run("matches preserve order", func(t *testing.T) {
		got := sampleFields().WhereMatchesFilters().Where("type", "estate").Get()
		assert.Equal(t, []string{"always", "houseOnly", "both"}, got.Keys())
	})

	t.Run("last write wins", func(t *testing.T) {
		builder := sampleFields().WhereMatchesFilters().
			Where("type", "estate").
			Where("type", "land")

		assert.Equal(t, map[string]string{"type": "land"}, builder.Criteria())
		assert.Equal(t, []string{"always", "landOnly", "both"}, builder.Get().Keys())
	})

	t.Run("source is not mutated", func(t *testing.T) {
		fields := sampleFields()
		fields.WhereMatchesFilters().Where("type", "estate").Get()
		assert.Equal(t, 4, fields.Len())
	})

	t.Run("conditional criteria", func(t *testing.T) {
		got := sampleFields().WhereMatchesFilters().
			When(false, func(b *FieldFilterBuilder) { b.Where("type", "estate") }).
			When(true, func(b *FieldFilterBuilder) { b.Where("type", "land") }).
			Get()
		assert.Equal(t, []string{"always", "landOnly", "both"}, got.Keys())
	})
}

func TestFieldFilterBuilder_First(t *testing.T) {
	first, ok := sampleFields().WhereMatchesFilters().Where("type", "land").First()
	require.True(t, ok)
	assert.Equal(t, "always", first.Key)

	_, ok = NewFieldCollection().WhereMatchesFilters().Where("type", "land").First()
	assert.False(t, ok)
}

func TestFieldFilterBuilder_CriteriaIsCopy(t *testing.T) {
	builder := sampleFields().WhereMatchesFilters().Where("type", "land")
	criteria := builder.Criteria()
	criteria["type"] = "estate"
	assert.Equal(t, "land", builder.Criteria()["type"])
}
