package model

func intPtr(i int) *int { return &i }

func strPtr(s string) *string { return &s }

func filteredField(key string, filters ...FieldFilter) *Field {
	return &Field{
		Key:     key,
		Label:   key,
		Type:    FieldTypeVarChar,
		Filters: NewFieldFilters(filters...),
	}
}
