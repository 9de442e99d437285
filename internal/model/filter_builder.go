package model

import "maps"

// FieldFilterBuilder narrows a FieldCollection to the fields whose filter
// configuration accepts a set of criteria. A builder belongs to one caller
// and must not be shared between goroutines.
type FieldFilterBuilder struct {
	fields   FieldCollection
	criteria map[string]string
}

// NewFieldFilterBuilder creates a builder over fields.
func NewFieldFilterBuilder(fields FieldCollection) *FieldFilterBuilder {
	return &FieldFilterBuilder{
		fields:   fields,
		criteria: make(map[string]string),
	}
}

// Where records a criterion. A later call with the same key replaces the
// earlier value.
func (b *FieldFilterBuilder) Where(key, value string) *FieldFilterBuilder {
	b.criteria[key] = value
	return b
}

// When calls fn with the builder if cond is true.
func (b *FieldFilterBuilder) When(cond bool, fn func(*FieldFilterBuilder)) *FieldFilterBuilder {
	if cond {
		fn(b)
	}
	return b
}

// Get returns the matching fields in their original order. Without any
// criteria the source collection is returned as is.
func (b *FieldFilterBuilder) Get() FieldCollection {
	if len(b.criteria) == 0 {
		return b.fields
	}
	return b.fields.Filter(func(f *Field) bool {
		return f.MatchesFilters(b.criteria)
	})
}

// First returns the first matching field.
func (b *FieldFilterBuilder) First() (*Field, bool) {
	return b.Get().First()
}

// Criteria returns a copy of the recorded criteria.
func (b *FieldFilterBuilder) Criteria() map[string]string {
	return maps.Clone(b.criteria)
}
