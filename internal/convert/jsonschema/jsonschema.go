// Package jsonschema converts modules and fields into JSON Schema documents
// built from plain maps.
//
// A nullable field is typed as a union with "null" and left out of the
// module's "required" list; every other field has its bare type and is
// required.
package jsonschema

import (
	"github.com/innobrain/onoffice-structure/internal/convert/shape"
	"github.com/innobrain/onoffice-structure/internal/model"
)

// Strategy is the JSON Schema conversion strategy.
type Strategy struct {
	opts shape.Options
}

var _ model.Strategy = (*Strategy)(nil)

// Option configures a Strategy.
type Option func(*Strategy)

// WithNullable controls whether fields without a default are nullable.
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

// New creates a JSON Schema strategy. Nullability and descriptions are on
// by default.
func New(opts ...Option) *Strategy {
	s := &Strategy{opts: shape.Options{IncludeNullable: true, IncludeDescriptions: true}}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ConvertPermittedValue returns the value key, as used in enums.
func (s *Strategy) ConvertPermittedValue(pv model.PermittedValue) any {
	return pv.Key
}

// ConvertFieldDependency returns nil; JSON Schema output has no place for
// dependencies.
func (s *Strategy) ConvertFieldDependency(model.FieldDependency) any {
	return nil
}

// ConvertFieldFilter returns nil; filters are not part of the schema.
func (s *Strategy) ConvertFieldFilter(model.FieldFilter) any {
	return nil
}

// ConvertField implements model.Strategy.
func (s *Strategy) ConvertField(f *model.Field) any {
	return s.Field(f)
}

// ConvertModule implements model.Strategy.
func (s *Strategy) ConvertModule(m *model.Module) any {
	return s.Module(m)
}

// Field returns a single-entry map of the field key to its property schema.
func (s *Strategy) Field(f *model.Field) map[string]any {
	return map[string]any{f.Key: s.Property(f)}
}

// Property returns the property schema of f.
func (s *Strategy) Property(f *model.Field) map[string]any {
	sh := shape.Of(f, s.opts)

	prop := map[string]any{
		"title": sh.Name,
	}
	if sh.Description != "" {
		prop["description"] = sh.Description
	}

	switch sh.Kind {
	case shape.KindString:
		prop["type"] = typeOf("string", sh.Nullable)
		if sh.MaxLength != nil {
			prop["maxLength"] = *sh.MaxLength
		}
	case shape.KindInteger:
		prop["type"] = typeOf("integer", sh.Nullable)
	case shape.KindNumber:
		prop["type"] = typeOf("number", sh.Nullable)
	case shape.KindBoolean:
		prop["type"] = typeOf("boolean", sh.Nullable)
	case shape.KindSingleSelect:
		prop["type"] = typeOf("array", sh.Nullable)
		prop["items"] = enumItems(sh.Options)
		prop["maxItems"] = 1
	case shape.KindMultiSelect:
		prop["type"] = typeOf("array", sh.Nullable)
		prop["uniqueItems"] = true
		if len(sh.Options) > 0 {
			prop["items"] = enumItems(sh.Options)
		} else {
			prop["items"] = map[string]any{"type": "string"}
		}
	}

	return prop
}

// Module returns an object schema with one property per field.
func (s *Strategy) Module(m *model.Module) map[string]any {
	properties := make(map[string]any, m.Fields.Len())
	required := make([]string, 0, m.Fields.Len())

	for key, f := range m.Fields.All() {
		for name, prop := range s.Field(f) {
			properties[name] = prop
		}
		if !shape.IsNullable(f, s.opts) {
			required = append(required, key)
		}
	}

	schema := map[string]any{
		"$schema":    "https://json-schema.org/draft/2020-12/schema",
		"type":       "object",
		"title":      m.Key.String(),
		"properties": properties,
		"required":   required,
	}
	if s.opts.IncludeDescriptions {
		schema["description"] = m.Label
	}
	return schema
}

func typeOf(base string, nullable bool) any {
	if nullable {
		return []string{base, "null"}
	}
	return base
}

func enumItems(options []string) map[string]any {
	return map[string]any{
		"type": "string",
		"enum": options,
	}
}
