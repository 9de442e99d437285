// Package shape holds the field type mapping shared by the schema
// strategies: which base type a field becomes, how its description reads and
// whether it is nullable.
package shape

import (
	"fmt"

	"github.com/innobrain/onoffice-structure/internal/model"
)

// Kind is the schema kind a field maps to.
type Kind int

const (
	KindString Kind = iota
	KindInteger
	KindNumber
	KindBoolean
	// KindSingleSelect is a one-element array whose item is one of Options.
	KindSingleSelect
	// KindMultiSelect is an array of distinct strings, restricted to Options
	// when there are any.
	KindMultiSelect
)

const (
	dateHint     = "Date format: YYYY-MM-DD"
	dateTimeHint = "DateTime format: ISO 8601"
)

// Options are the switches both schema strategies share.
type Options struct {
	IncludeNullable     bool
	IncludeDescriptions bool
}

// Shape is the format-neutral schema description of one field.
type Shape struct {
	Kind        Kind
	Name        string
	Description string
	MaxLength   *int
	Options     []string
	Nullable    bool
}

// Of maps f to its shape. Every FieldType must be handled here; an
// unhandled type is a programming error and panics.
func Of(f *model.Field, opts Options) Shape {
	s := Shape{
		Name:     f.Key,
		Nullable: IsNullable(f, opts),
	}
	if opts.IncludeDescriptions {
		s.Description = f.Label
	}

	switch f.Type {
	case model.FieldTypeVarChar, model.FieldTypeText, model.FieldTypeBlob:
		s.Kind = KindString
		if f.Length != nil && *f.Length > 0 {
			s.MaxLength = f.Length
			if opts.IncludeDescriptions {
				s.Description = appendHint(s.Description, fmt.Sprintf("max length: %d", *f.Length))
			}
		}
	case model.FieldTypeInteger:
		s.Kind = KindInteger
	case model.FieldTypeFloat:
		s.Kind = KindNumber
	case model.FieldTypeBoolean:
		s.Kind = KindBoolean
	case model.FieldTypeDate:
		s.Kind = KindString
		s.Description = withHint(s.Description, dateHint)
	case model.FieldTypeDateTime:
		s.Kind = KindString
		s.Description = withHint(s.Description, dateTimeHint)
	case model.FieldTypeSingleSelect:
		s.Kind = KindString
		if f.HasPermittedValues() {
			s.Kind = KindSingleSelect
			s.Options = f.PermittedValueKeys()
		}
	case model.FieldTypeMultiSelect:
		s.Kind = KindMultiSelect
		if f.HasPermittedValues() {
			s.Options = f.PermittedValueKeys()
		}
	default:
		panic(fmt.Sprintf("shape: unhandled field type %q for field %q", f.Type, f.Key))
	}

	return s
}

// IsNullable reports whether f is nullable under opts: nullable fields are
// those without a default while nullability is enabled.
func IsNullable(f *model.Field, opts Options) bool {
	return opts.IncludeNullable && f.Default == nil
}

// appendHint renders "desc (hint)", or "(hint)" without a description.
func appendHint(desc, hint string) string {
	if desc == "" {
		return "(" + hint + ")"
	}
	return desc + " (" + hint + ")"
}

// withHint renders "desc (hint)", or the bare hint without a description.
func withHint(desc, hint string) string {
	if desc == "" {
		return hint
	}
	return desc + " (" + hint + ")"
}
