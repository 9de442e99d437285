package model

import "fmt"

// FieldType is the data type of a field as reported by onOffice.
type FieldType string

const (
	FieldTypeVarChar      FieldType = "varchar"
	FieldTypeInteger      FieldType = "integer"
	FieldTypeMultiSelect  FieldType = "multiselect"
	FieldTypeSingleSelect FieldType = "singleselect"
	FieldTypeDate         FieldType = "date"
	FieldTypeDateTime     FieldType = "datetime"
	FieldTypeText         FieldType = "text"
	FieldTypeBlob         FieldType = "blob"
	FieldTypeBoolean      FieldType = "boolean"
	FieldTypeFloat        FieldType = "float"
)

// FieldTypes returns every field type in declaration order.
func FieldTypes() []FieldType {
	return []FieldType{
		FieldTypeVarChar,
		FieldTypeInteger,
		FieldTypeMultiSelect,
		FieldTypeSingleSelect,
		FieldTypeDate,
		FieldTypeDateTime,
		FieldTypeText,
		FieldTypeBlob,
		FieldTypeBoolean,
		FieldTypeFloat,
	}
}

// String returns the wire value of the field type
func (t FieldType) String() string {
	return string(t)
}

// ParseFieldType converts a wire value to a FieldType
func ParseFieldType(s string) (FieldType, error) {
	for _, t := range FieldTypes() {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown field type: %q", s)
}

// ModuleKey identifies one of the onOffice modules whose field
// configuration can be retrieved.
type ModuleKey string

const (
	ModuleAddress   ModuleKey = "address"
	ModuleEstate    ModuleKey = "estate"
	ModuleAgentsLog ModuleKey = "agentsLog"
	ModuleCalendar  ModuleKey = "calendar"
	ModuleEmail     ModuleKey = "email"
	ModuleFile      ModuleKey = "file"
	ModuleNews      ModuleKey = "news"
	ModuleIntranet  ModuleKey = "intranet"
	ModuleProject   ModuleKey = "project"
	ModuleTask      ModuleKey = "task"
	ModuleUser      ModuleKey = "user"
)

// ModuleKeys returns every module key in declaration order.
func ModuleKeys() []ModuleKey {
	return []ModuleKey{
		ModuleAddress,
		ModuleEstate,
		ModuleAgentsLog,
		ModuleCalendar,
		ModuleEmail,
		ModuleFile,
		ModuleNews,
		ModuleIntranet,
		ModuleProject,
		ModuleTask,
		ModuleUser,
	}
}

// String returns the wire value of the module key
func (k ModuleKey) String() string {
	return string(k)
}

// ParseModuleKey converts a wire value to a ModuleKey
func ParseModuleKey(s string) (ModuleKey, error) {
	for _, k := range ModuleKeys() {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown module: %q", s)
}

// ModuleValues returns the wire values of all modules, restricted to only
// when it is non-empty. Unknown entries in only are ignored and the result
// keeps declaration order.
func ModuleValues(only ...string) []string {
	wanted := make(map[string]bool, len(only))
	for _, o := range only {
		wanted[o] = true
	}

	values := make([]string, 0, len(ModuleKeys()))
	for _, k := range ModuleKeys() {
		if len(only) > 0 && !wanted[string(k)] {
			continue
		}
		values = append(values, string(k))
	}
	return values
}
