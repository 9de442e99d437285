// Package parser turns the raw onOffice field configuration payload into the
// domain model.
//
// Parsing never fails on data. A malformed module, field or dependency is
// dropped on its own and logged at debug level.
package parser

import (
	"go.uber.org/zap"

	"github.com/innobrain/onoffice-structure/internal/model"
	"github.com/innobrain/onoffice-structure/internal/payload"
	utilstrings "github.com/innobrain/onoffice-structure/internal/util/strings"
)

// moduleLabelKey is module metadata that sits next to the field entries
// inside "elements".
const moduleLabelKey = "label"

// Parser converts raw module payloads into a model.ModuleCollection.
type Parser struct {
	logger *zap.Logger
}

// Option configures a Parser.
type Option func(*Parser)

// WithLogger sets the logger used to report dropped entries.
func WithLogger(logger *zap.Logger) Option {
	return func(p *Parser) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// New creates a parser.
func New(opts ...Option) *Parser {
	p := &Parser{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseMap parses an unordered map payload. Module and field order follow
// sorted keys; use Parse with a decoded *payload.Object to keep API order.
func (p *Parser) ParseMap(raw map[string]any) model.ModuleCollection {
	return p.Parse(payload.FromMap(raw))
}

// Parse converts a mapping of module id to module payload.
func (p *Parser) Parse(raw *payload.Object) model.ModuleCollection {
	var modules []*model.Module

	for rawKey, rawModule := range raw.All() {
		module, ok := p.parseModule(rawKey, rawModule)
		if !ok {
			continue
		}
		modules = append(modules, module)
	}

	return model.NewModuleCollection(modules...)
}

func (p *Parser) parseModule(rawKey string, rawModule any) (*model.Module, bool) {
	data, ok := rawModule.(*payload.Object)
	if !ok {
		p.logger.Debug("skipping module: payload is not an object", zap.String("module", rawKey))
		return nil, false
	}

	elements, ok := payload.Mapping(data.Value("elements"))
	if !ok {
		p.logger.Debug("skipping module: missing or malformed elements", zap.String("module", rawKey))
		return nil, false
	}

	id := rawKey
	if v, ok := data.Get("id"); ok && v != nil {
		id = payload.String(v)
	}

	key, err := model.ParseModuleKey(id)
	if err != nil {
		p.logger.Debug("skipping module: unknown module", zap.String("module", id))
		return nil, false
	}

	label := utilstrings.Capitalize(id)
	if v, ok := data.Get("label"); ok && v != nil {
		label = payload.String(v)
	}

	return &model.Module{
		Key:    key,
		Label:  label,
		Fields: p.parseFields(id, elements),
	}, true
}

func (p *Parser) parseFields(module string, elements *payload.Object) model.FieldCollection {
	var fields []*model.Field

	for key, rawField := range elements.All() {
		if key == moduleLabelKey {
			continue
		}
		data, ok := rawField.(*payload.Object)
		if !ok {
			p.logger.Debug("skipping field: payload is not an object",
				zap.String("module", module), zap.String("field", key))
			continue
		}

		fieldType, err := model.ParseFieldType(payload.String(data.Value("type")))
		if err != nil {
			p.logger.Debug("skipping field: unknown type",
				zap.String("module", module),
				zap.String("field", key),
				zap.Any("type", data.Value("type")))
			continue
		}

		fields = append(fields, p.parseField(key, fieldType, data))
	}

	return model.NewFieldCollection(fields...)
}

func (p *Parser) parseField(key string, fieldType model.FieldType, data *payload.Object) *model.Field {
	label := utilstrings.Capitalize(key)
	if v, ok := data.Get("label"); ok && v != nil {
		label = payload.String(v)
	}

	return &model.Field{
		Key:                key,
		Label:              label,
		Type:               fieldType,
		Length:             optionalInt(data.Value("length")),
		PermittedValues:    parsePermittedValues(data.Value("permittedvalues")),
		Default:            optionalString(data.Value("default")),
		Filters:            parseFilters(data.Value("filters")),
		Dependencies:       p.parseDependencies(key, data.Value("dependencies")),
		CompoundFields:     parseCompoundFields(data.Value("compoundFields")),
		FieldMeasureFormat: optionalString(data.Value("fieldMeasureFormat")),
	}
}

// optionalInt treats values that coerce to 0 as absent.
func optionalInt(v any) *int {
	if !payload.Truthy(v) {
		return nil
	}
	i := payload.Int(v)
	if i == 0 {
		return nil
	}
	return &i
}

func optionalString(v any) *string {
	if !payload.Truthy(v) {
		return nil
	}
	s := payload.String(v)
	return &s
}

func parsePermittedValues(v any) model.PermittedValues {
	data, ok := payload.Mapping(v)
	if !ok {
		return model.NewPermittedValues()
	}

	values := make([]model.PermittedValue, 0, data.Len())
	for key, label := range data.All() {
		values = append(values, model.PermittedValue{
			Key:   key,
			Label: payload.String(label),
		})
	}
	return model.NewPermittedValues(values...)
}

func parseFilters(v any) model.FieldFilters {
	data, ok := payload.Mapping(v)
	if !ok {
		return model.NewFieldFilters()
	}

	filters := make([]model.FieldFilter, 0, data.Len())
	for name, rawConfig := range data.All() {
		config := make(map[string][]string)
		if cfg, ok := payload.Mapping(rawConfig); ok {
			for criterion, allowed := range cfg.All() {
				config[criterion] = payload.Strings(allowed)
			}
		}
		filters = append(filters, model.FieldFilter{Name: name, Config: config})
	}
	return model.NewFieldFilters(filters...)
}

// parseDependencies reads a flat dependentFieldKey -> dependentFieldValue
// object. The upstream shape is unconfirmed, so entries with non-string
// values are dropped.
func (p *Parser) parseDependencies(field string, v any) []model.FieldDependency {
	data, ok := v.(*payload.Object)
	if !ok {
		return []model.FieldDependency{}
	}

	deps := make([]model.FieldDependency, 0, data.Len())
	for key, value := range data.All() {
		s, ok := value.(string)
		if !ok {
			p.logger.Debug("skipping dependency: value is not a string",
				zap.String("field", field), zap.String("dependency", key))
			continue
		}
		deps = append(deps, model.FieldDependency{
			DependentFieldKey:   key,
			DependentFieldValue: s,
		})
	}
	return deps
}

func parseCompoundFields(v any) []string {
	list, ok := v.([]any)
	if !ok {
		return []string{}
	}

	out := make([]string, 0, len(list))
	for _, item := range list {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
