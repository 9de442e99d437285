package model

import "slices"

// PermittedValue is one allowed value of a select field.
type PermittedValue struct {
	Key   string
	Label string
}

// FieldDependency declares that a field is only relevant when another
// field holds a specific value.
type FieldDependency struct {
	DependentFieldKey   string
	DependentFieldValue string
}

// FieldFilter declares under which criteria values a field applies. Config
// maps a criterion key (e.g. "category") to the values the field accepts.
type FieldFilter struct {
	Name   string
	Config map[string][]string
}

// NewFieldFilter copies config so the filter does not share state with the
// caller.
func NewFieldFilter(name string, config map[string][]string) FieldFilter {
	cfg := make(map[string][]string, len(config))
	for k, v := range config {
		cfg[k] = slices.Clone(v)
	}
	return FieldFilter{Name: name, Config: cfg}
}

// Allows reports whether value is accepted for the criterion key. A key the
// filter does not configure allows every value.
func (f FieldFilter) Allows(key, value string) bool {
	allowed, ok := f.Config[key]
	if !ok {
		return true
	}
	return slices.Contains(allowed, value)
}

// PermittedValues is an ordered collection of permitted values keyed by
// PermittedValue.Key.
type PermittedValues struct {
	keyed[PermittedValue]
}

// NewPermittedValues builds a collection keyed by each value's Key. A
// repeated key replaces the earlier value in place.
func NewPermittedValues(values ...PermittedValue) PermittedValues {
	return PermittedValues{newKeyed(func(pv PermittedValue) string { return pv.Key }, values)}
}

// FieldFilters is an ordered collection of filters keyed by FieldFilter.Name.
type FieldFilters struct {
	keyed[FieldFilter]
}

// NewFieldFilters builds a collection keyed by each filter's Name.
func NewFieldFilters(filters ...FieldFilter) FieldFilters {
	return FieldFilters{newKeyed(func(f FieldFilter) string { return f.Name }, filters)}
}
