package jsonschema

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	validator "github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/innobrain/onoffice-structure/internal/model"
)

func intPtr(i int) *int { return &i }

func strPtr(s string) *string { return &s }

func testModule() *model.Module {
	return &model.Module{
		Key:   model.ModuleEstate,
		Label: "Immobilien",
		Fields: model.NewFieldCollection(
			&model.Field{Key: "objekttitel", Label: "Title", Type: model.FieldTypeVarChar, Length: intPtr(80)},
			&model.Field{Key: "anzahl_zimmer", Label: "Rooms", Type: model.FieldTypeInteger, Default: strPtr("1")},
			&model.Field{Key: "kaufpreis", Label: "Price", Type: model.FieldTypeFloat},
			&model.Field{Key: "balkon", Label: "Balcony", Type: model.FieldTypeBoolean, Default: strPtr("0")},
			&model.Field{Key: "baujahr", Label: "Built", Type: model.FieldTypeDate},
			&model.Field{Key: "geaendert_am", Label: "Changed", Type: model.FieldTypeDateTime},
			&model.Field{
				Key:   "objektart",
				Label: "Kind",
				Type:  model.FieldTypeSingleSelect,
				PermittedValues: model.NewPermittedValues(
					model.PermittedValue{Key: "haus", Label: "Haus"},
					model.PermittedValue{Key: "wohnung", Label: "Wohnung"},
				),
				Default: strPtr("haus"),
			},
			&model.Field{
				Key:   "ausstattung",
				Label: "Features",
				Type:  model.FieldTypeMultiSelect,
				PermittedValues: model.NewPermittedValues(
					model.PermittedValue{Key: "garten", Label: "Garten"},
					model.PermittedValue{Key: "keller", Label: "Keller"},
				),
			},
			&model.Field{Key: "notizen", Label: "Notes", Type: model.FieldTypeText},
			&model.Field{Key: "tags", Label: "Tags", Type: model.FieldTypeMultiSelect},
		),
	}
}

func compile(t *testing.T, schema map[string]any) *validator.Schema {
	t.Helper()
	data, err := json.Marshal(schema)
	require.NoError(t, err)

	doc, err := validator.UnmarshalJSON(bytes.NewReader(data))
	require.NoError(t, err)

	c := validator.NewCompiler()
	require.NoError(t, c.AddResource("module.json", doc))
	compiled, err := c.Compile("module.json")
	require.NoError(t, err)
	return compiled
}

func instance(t *testing.T, raw string) any {
	t.Helper()
	v, err := validator.UnmarshalJSON(strings.NewReader(raw))
	require.NoError(t, err)
	return v
}

func TestField_StringWithLength(t *testing.T) {
	got := New().Field(&model.Field{Key: "name", Label: "Full Name", Type: model.FieldTypeVarChar, Length: intPtr(255)})

	assert.Equal(t, map[string]any{
		"name": map[string]any{
			"title":       "name",
			"description": "Full Name (max length: 255)",
			"type":        []string{"string", "null"},
			"maxLength":   255,
		},
	}, got)
}

func TestField_Types(t *testing.T) {
	s := New(WithNullable(false))
	tests := []struct {
		fieldType model.FieldType
		want      string
	}{
		{model.FieldTypeInteger, "integer"},
		{model.FieldTypeFloat, "number"},
		{model.FieldTypeBoolean, "boolean"},
		{model.FieldTypeText, "string"},
		{model.FieldTypeBlob, "string"},
		{model.FieldTypeDate, "string"},
		{model.FieldTypeDateTime, "string"},
		{model.FieldTypeSingleSelect, "string"},
		{model.FieldTypeMultiSelect, "array"},
	}

	for _, tt := range tests {
		t.Run(tt.fieldType.String(), func(t *testing.T) {
			prop := s.Property(&model.Field{Key: "f", Label: "F", Type: tt.fieldType})
			assert.Equal(t, tt.want, prop["type"])
		})
	}
}

func TestField_Selects(t *testing.T) {
	module := testModule()
	s := New()

	kind, _ := module.Fields.Field("objektart")
	prop := s.Property(kind)
	assert.Equal(t, "array", prop["type"], "field with default is not nullable")
	assert.Equal(t, map[string]any{"type": "string", "enum": []string{"haus", "wohnung"}}, prop["items"])
	assert.Equal(t, 1, prop["maxItems"])

	features, _ := module.Fields.Field("ausstattung")
	prop = s.Property(features)
	assert.Equal(t, []string{"array", "null"}, prop["type"])
	assert.Equal(t, map[string]any{"type": "string", "enum": []string{"garten", "keller"}}, prop["items"])

	tags, _ := module.Fields.Field("tags")
	prop = s.Property(tags)
	assert.Equal(t, map[string]any{"type": "string"}, prop["items"])
}

func TestField_Descriptions(t *testing.T) {
	module := testModule()

	built, _ := module.Fields.Field("baujahr")
	assert.Equal(t, "Built (Date format: YYYY-MM-DD)", New().Property(built)["description"])
	assert.Equal(t, "Date format: YYYY-MM-DD", New(WithDescriptions(false)).Property(built)["description"])

	title, _ := module.Fields.Field("objekttitel")
	prop := New(WithDescriptions(false)).Property(title)
	assert.NotContains(t, prop, "description")
	assert.Equal(t, 80, prop["maxLength"])
}

func TestModule_NullableXorRequired(t *testing.T) {
	module := testModule()
	schema := New().Module(module)

	assert.Equal(t, "object", schema["type"])
	assert.Equal(t, "estate", schema["title"])
	assert.Equal(t, "Immobilien", schema["description"])

	required := schema["required"].([]string)
	assert.Equal(t, []string{"anzahl_zimmer", "balkon", "objektart"}, required)

	properties := schema["properties"].(map[string]any)
	assert.Len(t, properties, module.Fields.Len())
	for key, raw := range properties {
		prop := raw.(map[string]any)
		_, nullable := prop["type"].([]string)
		isRequired := false
		for _, r := range required {
			if r == key {
				isRequired = true
			}
		}
		assert.True(t, nullable != isRequired, "field %s must be nullable xor required", key)
	}

	withoutNullable := New(WithNullable(false)).Module(module)
	assert.Len(t, withoutNullable["required"], module.Fields.Len())
	assert.NotContains(t, New(WithDescriptions(false)).Module(module), "description")
}

func TestModule_ValidatesRecords(t *testing.T) {
	compiled := compile(t, New().Module(testModule()))

	valid := instance(t, `{
		"objekttitel": "Altbau mit Garten",
		"anzahl_zimmer": 3,
		"kaufpreis": null,
		"balkon": true,
		"objektart": ["haus"],
		"ausstattung": ["garten", "keller"]
	}`)
	assert.NoError(t, compiled.Validate(valid))

	missingRequired := instance(t, `{"anzahl_zimmer": 3, "balkon": true}`)
	assert.Error(t, compiled.Validate(missingRequired))

	badOption := instance(t, `{"anzahl_zimmer": 3, "balkon": true, "objektart": ["schloss"]}`)
	assert.Error(t, compiled.Validate(badOption))

	tooLong := instance(t, `{"anzahl_zimmer": 3, "balkon": true, "objektart": ["haus"], "objekttitel": "`+strings.Repeat("x", 81)+`"}`)
	assert.Error(t, compiled.Validate(tooLong))
}

func TestDispatch(t *testing.T) {
	s := New()
	assert.Equal(t, "haus", model.PermittedValue{Key: "haus"}.Convert(s))
	assert.Nil(t, model.FieldDependency{}.Convert(s))
	assert.Nil(t, model.FieldFilter{}.Convert(s))

	module := testModule()
	assert.Equal(t, s.Module(module), module.Convert(s))
}
