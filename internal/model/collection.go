package model

import "slices"

// FieldCollection is an ordered collection of fields keyed by Field.Key.
type FieldCollection struct {
	keyed[*Field]
}

// NewFieldCollection builds a collection keyed by each field's key.
func NewFieldCollection(fields ...*Field) FieldCollection {
	return FieldCollection{newKeyed(func(f *Field) string { return f.Key }, fields)}
}

// Field returns the field stored under key.
func (c FieldCollection) Field(key string) (*Field, bool) {
	return c.Get(key)
}

// Fields returns all fields in order.
func (c FieldCollection) Fields() []*Field {
	return c.Values()
}

// First returns the first field.
func (c FieldCollection) First() (*Field, bool) {
	return c.first()
}

// Filter returns a new collection with the fields keep accepts, in order.
func (c FieldCollection) Filter(keep func(*Field) bool) FieldCollection {
	var kept []*Field
	for _, f := range c.All() {
		if keep(f) {
			kept = append(kept, f)
		}
	}
	return NewFieldCollection(kept...)
}

// WhereMatchesFilters starts a filter query over the collection.
func (c FieldCollection) WhereMatchesFilters() *FieldFilterBuilder {
	return NewFieldFilterBuilder(c)
}

// Convert converts every field with s and returns the results in order.
func (c FieldCollection) Convert(s Strategy) []any {
	out := make([]any, 0, c.Len())
	for _, f := range c.All() {
		out = append(out, f.Convert(s))
	}
	return out
}

// Sanitize keeps the entries of values that name a known field. For fields
// with permitted values, a string value must be a permitted key and a list
// value is reduced to its permitted keys; an entry with nothing left is
// dropped. Values of fields without permitted values pass unchanged.
func (c FieldCollection) Sanitize(values map[string]any) map[string]any {
	out := make(map[string]any, len(values))
	for key, value := range values {
		field, ok := c.Get(key)
		if !ok {
			continue
		}
		if !field.HasPermittedValues() {
			out[key] = value
			continue
		}

		switch v := value.(type) {
		case string:
			if field.ContainsPermittedValue(v) {
				out[key] = v
			}
		case []string:
			if kept := permittedOnly(field, v); len(kept) > 0 {
				out[key] = kept
			}
		case []any:
			strs := make([]string, 0, len(v))
			for _, item := range v {
				if s, ok := item.(string); ok {
					strs = append(strs, s)
				}
			}
			if kept := permittedOnly(field, strs); len(kept) > 0 {
				out[key] = kept
			}
		}
	}
	return out
}

func permittedOnly(field *Field, values []string) []string {
	return slices.DeleteFunc(slices.Clone(values), func(s string) bool {
		return !field.ContainsPermittedValue(s)
	})
}
