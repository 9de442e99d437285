// Package rules converts fields into request validation rule sets such as
// "string|max:80|nullable".
package rules

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/innobrain/onoffice-structure/internal/model"
)

const itemKeySuffix = ".*"

// Strategy is the validation-rules conversion strategy.
type Strategy struct {
	pipeSyntax      bool
	includeNullable bool
}

var _ model.Strategy = (*Strategy)(nil)

// Option configures a Strategy.
type Option func(*Strategy)

// WithPipeSyntax selects "a|b|c" strings over ordered rule lists.
func WithPipeSyntax(pipe bool) Option {
	return func(s *Strategy) {
		s.pipeSyntax = pipe
	}
}

// WithNullable controls whether fields without a default get "nullable".
func WithNullable(include bool) Option {
	return func(s *Strategy) {
		s.includeNullable = include
	}
}

// New creates a rules strategy. Pipe syntax and nullability are on by
// default.
func New(opts ...Option) *Strategy {
	s := &Strategy{pipeSyntax: true, includeNullable: true}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ConvertPermittedValue returns the value key.
func (s *Strategy) ConvertPermittedValue(pv model.PermittedValue) any {
	return pv.Key
}

// ConvertFieldDependency returns the "required_if" rule for fd.
func (s *Strategy) ConvertFieldDependency(fd model.FieldDependency) any {
	return requiredIf(fd)
}

// ConvertFieldFilter returns nil; filters do not produce rules.
func (s *Strategy) ConvertFieldFilter(model.FieldFilter) any {
	return nil
}

// ConvertField returns a string with pipe syntax and a []string otherwise.
func (s *Strategy) ConvertField(f *model.Field) any {
	return s.format(s.Rules(f))
}

// ConvertModule implements model.Strategy.
func (s *Strategy) ConvertModule(m *model.Module) any {
	return s.Module(m)
}

// Rules returns the ordered, deduplicated rule tokens for f.
func (s *Strategy) Rules(f *model.Field) []string {
	var rules []string

	switch f.Type {
	case model.FieldTypeVarChar, model.FieldTypeText, model.FieldTypeBlob, model.FieldTypeSingleSelect:
		rules = append(rules, "string")
	case model.FieldTypeInteger:
		rules = append(rules, "integer")
	case model.FieldTypeFloat:
		rules = append(rules, "numeric")
	case model.FieldTypeBoolean:
		rules = append(rules, "boolean")
	case model.FieldTypeDate, model.FieldTypeDateTime:
		rules = append(rules, "date")
	case model.FieldTypeMultiSelect:
		rules = append(rules, "array", "distinct")
	default:
		panic(fmt.Sprintf("rules: unhandled field type %q for field %q", f.Type, f.Key))
	}

	if f.Type == model.FieldTypeVarChar && f.Length != nil {
		rules = append(rules, "max:"+strconv.Itoa(*f.Length))
	}
	if f.HasPermittedValues() && f.Type != model.FieldTypeMultiSelect {
		rules = append(rules, in(f))
	}
	for _, dep := range f.Dependencies {
		rules = append(rules, requiredIf(dep))
	}
	if s.includeNullable && f.Default == nil {
		rules = append(rules, "nullable")
	}

	return dedupe(rules)
}

// Module returns the rules of every field keyed by field key. Multi-select
// fields with permitted values get an extra "key.*" entry validating each
// item.
func (s *Strategy) Module(m *model.Module) map[string]any {
	out := make(map[string]any, m.Fields.Len())
	for key, f := range m.Fields.All() {
		out[key] = s.format(s.Rules(f))
		if f.Type == model.FieldTypeMultiSelect && f.HasPermittedValues() {
			out[key+itemKeySuffix] = s.format([]string{in(f)})
		}
	}
	return out
}

func (s *Strategy) format(rules []string) any {
	if s.pipeSyntax {
		return strings.Join(rules, "|")
	}
	return rules
}

func in(f *model.Field) string {
	return "in:" + strings.Join(f.PermittedValueKeys(), ",")
}

func requiredIf(fd model.FieldDependency) string {
	return "required_if:" + fd.DependentFieldKey + "," + fd.DependentFieldValue
}

func dedupe(rules []string) []string {
	seen := make(map[string]bool, len(rules))
	out := rules[:0]
	for _, r := range rules {
		if seen[r] {
			continue
		}
		seen[r] = true
		out = append(out, r)
	}
	return out
}
