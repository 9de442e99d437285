// Package plain converts the domain model into nested maps and slices that
// mirror it one to one.
package plain

import (
	"github.com/innobrain/onoffice-structure/internal/model"
)

// Strategy is the plain-data conversion strategy.
type Strategy struct {
	dropEmpty bool
}

var _ model.Strategy = (*Strategy)(nil)

// Option configures a Strategy.
type Option func(*Strategy)

// WithDropEmpty strips nil, "" and empty collections from the output,
// recursively.
func WithDropEmpty(drop bool) Option {
	return func(s *Strategy) {
		s.dropEmpty = drop
	}
}

// New creates a plain-data strategy. Empty values are kept by default.
func New(opts ...Option) *Strategy {
	s := &Strategy{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ConvertPermittedValue implements model.Strategy.
func (s *Strategy) ConvertPermittedValue(pv model.PermittedValue) any {
	return s.PermittedValue(pv)
}

// ConvertFieldDependency implements model.Strategy.
func (s *Strategy) ConvertFieldDependency(fd model.FieldDependency) any {
	return s.FieldDependency(fd)
}

// ConvertFieldFilter implements model.Strategy.
func (s *Strategy) ConvertFieldFilter(ff model.FieldFilter) any {
	return s.FieldFilter(ff)
}

// ConvertField implements model.Strategy.
func (s *Strategy) ConvertField(f *model.Field) any {
	return s.Field(f)
}

// ConvertModule implements model.Strategy.
func (s *Strategy) ConvertModule(m *model.Module) any {
	return s.Module(m)
}

// PermittedValue returns {key, label}.
func (s *Strategy) PermittedValue(pv model.PermittedValue) map[string]any {
	return s.normalize(map[string]any{
		"key":   pv.Key,
		"label": pv.Label,
	})
}

// FieldDependency returns {dependentFieldKey, dependentFieldValue}.
func (s *Strategy) FieldDependency(fd model.FieldDependency) map[string]any {
	return s.normalize(map[string]any{
		"dependentFieldKey":   fd.DependentFieldKey,
		"dependentFieldValue": fd.DependentFieldValue,
	})
}

// FieldFilter returns {name, config}.
func (s *Strategy) FieldFilter(ff model.FieldFilter) map[string]any {
	config := make(map[string]any, len(ff.Config))
	for key, values := range ff.Config {
		config[key] = toAnySlice(values)
	}
	return s.normalize(map[string]any{
		"name":   ff.Name,
		"config": config,
	})
}

// Field returns every attribute of f. Optional attributes that are unset
// appear as nil unless empty values are dropped.
func (s *Strategy) Field(f *model.Field) map[string]any {
	permittedValues := make(map[string]any, f.PermittedValues.Len())
	for key, pv := range f.PermittedValues.All() {
		permittedValues[key] = pv.Convert(s)
	}

	filters := make(map[string]any, f.Filters.Len())
	for name, ff := range f.Filters.All() {
		filters[name] = ff.Convert(s)
	}

	dependencies := make([]any, 0, len(f.Dependencies))
	for _, fd := range f.Dependencies {
		dependencies = append(dependencies, fd.Convert(s))
	}

	return s.normalize(map[string]any{
		"key":                f.Key,
		"label":              f.Label,
		"type":               f.Type.String(),
		"length":             intOrNil(f.Length),
		"permittedValues":    permittedValues,
		"default":            stringOrNil(f.Default),
		"filters":            filters,
		"dependencies":       dependencies,
		"compoundFields":     toAnySlice(f.CompoundFields),
		"fieldMeasureFormat": stringOrNil(f.FieldMeasureFormat),
	})
}

// Module returns {key, label, fields} with fields keyed by field key.
func (s *Strategy) Module(m *model.Module) map[string]any {
	fields := make(map[string]any, m.Fields.Len())
	for key, f := range m.Fields.All() {
		fields[key] = f.Convert(s)
	}

	return s.normalize(map[string]any{
		"key":    m.Key.String(),
		"label":  m.Label,
		"fields": fields,
	})
}

func (s *Strategy) normalize(data map[string]any) map[string]any {
	if !s.dropEmpty {
		return data
	}
	return DropEmpty(data)
}

func intOrNil(i *int) any {
	if i == nil {
		return nil
	}
	return *i
}

func stringOrNil(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func toAnySlice(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
