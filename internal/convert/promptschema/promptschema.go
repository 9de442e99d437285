// Package promptschema converts modules and fields into the discrete schema
// nodes used to describe structured output to a language model.
//
// The node format follows the OpenAPI convention of a "nullable" flag rather
// than a type union. A module becomes an ObjectSchema whose required list is
// either the explicit list given with WithRequiredFields or, without one,
// every field that has a default. A required field is never nullable.
package promptschema

import (
	"fmt"

	"github.com/innobrain/onoffice-structure/internal/convert/shape"
	"github.com/innobrain/onoffice-structure/internal/model"
)

const (
	itemSuffix          = "_item"
	enumItemDescription = "Allowed value"
	itemDescription     = "Item value"
)

// Strategy is the prompt-schema conversion strategy.
type Strategy struct {
	opts     shape.Options
	required map[string]bool
}

var _ model.Strategy = (*Strategy)(nil)

// Option configures a Strategy.
type Option func(*Strategy)

// WithNullable controls whether optional fields are flagged nullable.
func WithNullable(include bool) Option {
	return func(s *Strategy) {
		s.opts.IncludeNullable = include
	}
}

// WithDescriptions controls whether labels become descriptions.
func WithDescriptions(include bool) Option {
	return func(s *Strategy) {
		s.opts.IncludeDescriptions = include
	}
}

// WithRequiredFields replaces the default-based required heuristic with an
// explicit list of field keys. Calling it with no keys marks nothing required.
func WithRequiredFields(keys ...string) Option {
	return func(s *Strategy) {
		s.required = make(map[string]bool, len(keys))
		for _, k := range keys {
			s.required[k] = true
		}
	}
}

// New creates a prompt-schema strategy. Nullability and descriptions are on
// by default.
func New(opts ...Option) *Strategy {
	s := &Strategy{opts: shape.Options{IncludeNullable: true, IncludeDescriptions: true}}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ConvertPermittedValue returns the value key.
func (s *Strategy) ConvertPermittedValue(pv model.PermittedValue) any {
	return pv.Key
}

// ConvertFieldDependency returns the dependency as a small map.
func (s *Strategy) ConvertFieldDependency(fd model.FieldDependency) any {
	return map[string]any{
		"field": fd.DependentFieldKey,
		"value": fd.DependentFieldValue,
	}
}

// ConvertFieldFilter returns the filter as a small map.
func (s *Strategy) ConvertFieldFilter(ff model.FieldFilter) any {
	config := make(map[string]any, len(ff.Config))
	for k, v := range ff.Config {
		config[k] = append([]string(nil), v...)
	}
	return map[string]any{
		"name":   ff.Name,
		"config": config,
	}
}

// ConvertField implements model.Strategy.
func (s *Strategy) ConvertField(f *model.Field) any {
	return s.Field(f)
}

// ConvertModule implements model.Strategy.
func (s *Strategy) ConvertModule(m *model.Module) any {
	return s.Module(m)
}

// IsRequired reports whether f is listed as required in a module schema.
func (s *Strategy) IsRequired(f *model.Field) bool {
	if s.required != nil {
		return s.required[f.Key]
	}
	return f.Default != nil
}

// Field returns the node for f.
func (s *Strategy) Field(f *model.Field) Schema {
	sh := shape.Of(f, s.opts)
	nullable := s.opts.IncludeNullable && !s.IsRequired(f)

	switch sh.Kind {
	case shape.KindString:
		return &StringSchema{Name: sh.Name, Description: sh.Description, MaxLength: sh.MaxLength, Nullable: nullable}
	case shape.KindInteger:
		return &IntegerSchema{Name: sh.Name, Description: sh.Description, Nullable: nullable}
	case shape.KindNumber:
		return &NumberSchema{Name: sh.Name, Description: sh.Description, Nullable: nullable}
	case shape.KindBoolean:
		return &BooleanSchema{Name: sh.Name, Description: sh.Description, Nullable: nullable}
	case shape.KindSingleSelect:
		one := 1
		return &ArraySchema{
			Name:        sh.Name,
			Description: sh.Description,
			Items:       &EnumSchema{Name: sh.Name + itemSuffix, Description: enumItemDescription, Options: sh.Options},
			MaxItems:    &one,
			Nullable:    nullable,
		}
	case shape.KindMultiSelect:
		return &ArraySchema{
			Name:        sh.Name,
			Description: sh.Description,
			Items:       itemNode(sh),
			Unique:      true,
			Nullable:    nullable,
		}
	default:
		panic(fmt.Sprintf("promptschema: unhandled shape kind %d for field %q", sh.Kind, f.Key))
	}
}

// Module returns the object node for m.
func (s *Strategy) Module(m *model.Module) *ObjectSchema {
	obj := &ObjectSchema{
		Name:           m.Key.String(),
		Properties:     make([]Schema, 0, m.Fields.Len()),
		RequiredFields: []string{},
	}
	if s.opts.IncludeDescriptions {
		obj.Description = m.Label
	}

	for key, f := range m.Fields.All() {
		obj.Properties = append(obj.Properties, s.Field(f))
		if s.IsRequired(f) {
			obj.RequiredFields = append(obj.RequiredFields, key)
		}
	}
	return obj
}

func itemNode(sh shape.Shape) Schema {
	if len(sh.Options) > 0 {
		return &EnumSchema{Name: sh.Name + itemSuffix, Description: enumItemDescription, Options: sh.Options}
	}
	return &StringSchema{Name: sh.Name + itemSuffix, Description: itemDescription}
}
