package convert

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/innobrain/onoffice-structure/internal/convert/jsonschema"
	"github.com/innobrain/onoffice-structure/internal/convert/plain"
	"github.com/innobrain/onoffice-structure/internal/convert/promptschema"
	"github.com/innobrain/onoffice-structure/internal/convert/rules"
	"github.com/innobrain/onoffice-structure/internal/model"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"plain", FormatPlain, false},
		{"JSONSchema", FormatJSONSchema, false},
		{"prompt", FormatPrompt, false},
		{"rules", FormatRules, false},
		{"xml", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		format Format
		want   model.Strategy
	}{
		{FormatPlain, &plain.Strategy{}},
		{FormatJSONSchema, &jsonschema.Strategy{}},
		{FormatPrompt, &promptschema.Strategy{}},
		{FormatRules, &rules.Strategy{}},
	}

	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			s, err := New(tt.format, DefaultOptions())
			require.NoError(t, err)
			assert.IsType(t, tt.want, s)
		})
	}

	_, err := New(Format("yaml"), DefaultOptions())
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestNew_PassesOptions(t *testing.T) {
	field := &model.Field{Key: "name", Type: model.FieldTypeVarChar, Length: intPtr(80)}

	opts := DefaultOptions()
	s, err := New(FormatRules, opts)
	require.NoError(t, err)
	assert.Equal(t, "string|max:80|nullable", field.Convert(s))

	opts.PipeSyntax = false
	opts.IncludeNullable = false
	s, err = New(FormatRules, opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"string", "max:80"}, field.Convert(s))

	opts = DefaultOptions()
	opts.RequiredFields = []string{"name"}
	s, err = New(FormatPrompt, opts)
	require.NoError(t, err)
	module := &model.Module{Key: model.ModuleAddress, Fields: model.NewFieldCollection(field)}
	assert.Equal(t, []string{"name"}, module.Convert(s).(*promptschema.ObjectSchema).RequiredFields)
}

// Every field type must convert under every strategy without panicking and
// produce JSON-encodable output.
func TestEveryFieldTypeEveryFormat(t *testing.T) {
	for _, format := range Formats() {
		s, err := New(format, DefaultOptions())
		require.NoError(t, err)

		for _, fieldType := range model.FieldTypes() {
			t.Run(format.String()+"/"+fieldType.String(), func(t *testing.T) {
				for _, field := range []*model.Field{
					{Key: "bare", Label: "Bare", Type: fieldType},
					{
						Key: "full", Label: "Full", Type: fieldType,
						Length:          intPtr(10),
						Default:         strPtr("a"),
						PermittedValues: model.NewPermittedValues(model.PermittedValue{Key: "a", Label: "A"}),
						Dependencies:    []model.FieldDependency{{DependentFieldKey: "x", DependentFieldValue: "y"}},
					},
				} {
					var out any
					require.NotPanics(t, func() { out = field.Convert(s) })
					require.NotNil(t, out)
					_, err := json.Marshal(out)
					assert.NoError(t, err)
				}
			})
		}
	}
}

func intPtr(i int) *int { return &i }

func strPtr(s string) *string { return &s }
