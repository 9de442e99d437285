package model

// Field is a single attribute of an onOffice module. Fields are built once
// by the parser and must be treated as read-only afterwards.
type Field struct {
	Key                string
	Label              string
	Type               FieldType
	Length             *int
	PermittedValues    PermittedValues
	Default            *string
	Filters            FieldFilters
	Dependencies       []FieldDependency
	CompoundFields     []string
	FieldMeasureFormat *string
}

// WithPermittedValues returns a copy of the field carrying values instead
// of the current permitted values.
func (f *Field) WithPermittedValues(values PermittedValues) *Field {
	clone := *f
	clone.PermittedValues = values
	return &clone
}

// MatchesFilters reports whether the field applies under criteria.
//
// A field without filters matches everything. Otherwise every configured
// criterion key that criteria supplies a value for must list that value;
// criteria keys no filter configures are ignored.
func (f *Field) MatchesFilters(criteria map[string]string) bool {
	if f.Filters.IsEmpty() {
		return true
	}

	for _, filter := range f.Filters.All() {
		for key, value := range criteria {
			if !filter.Allows(key, value) {
				return false
			}
		}
	}
	return true
}

// HasPermittedValues reports whether the field declares any permitted value.
func (f *Field) HasPermittedValues() bool {
	return !f.PermittedValues.IsEmpty()
}

// ContainsPermittedValue reports whether key is one of the permitted values.
func (f *Field) ContainsPermittedValue(key string) bool {
	return f.PermittedValues.Has(key)
}

// PermittedValueKeys returns the permitted value keys in order.
func (f *Field) PermittedValueKeys() []string {
	return f.PermittedValues.Keys()
}

// HasDefault reports whether the field declares a default value.
func (f *Field) HasDefault() bool {
	return f.Default != nil
}
