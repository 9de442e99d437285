package promptschema

import "encoding/json"

// Schema is one node of a prompt schema. Nodes render to plain maps and
// marshal to the same JSON.
type Schema interface {
	json.Marshaler
	// PropertyName is the key the node is stored under in its parent object.
	PropertyName() string
	ToMap() map[string]any
}

var (
	_ Schema = (*StringSchema)(nil)
	_ Schema = (*IntegerSchema)(nil)
	_ Schema = (*NumberSchema)(nil)
	_ Schema = (*BooleanSchema)(nil)
	_ Schema = (*EnumSchema)(nil)
	_ Schema = (*ArraySchema)(nil)
	_ Schema = (*ObjectSchema)(nil)
)

// StringSchema is a string node.
type StringSchema struct {
	Name        string
	Description string
	MaxLength   *int
	Nullable    bool
}

func (s *StringSchema) PropertyName() string { return s.Name }

func (s *StringSchema) ToMap() map[string]any {
	m := node("string", s.Description, s.Nullable)
	if s.MaxLength != nil {
		m["maxLength"] = *s.MaxLength
	}
	return m
}

func (s *StringSchema) MarshalJSON() ([]byte, error) { return json.Marshal(s.ToMap()) }

// IntegerSchema is an integer node.
type IntegerSchema struct {
	Name        string
	Description string
	Nullable    bool
}

func (s *IntegerSchema) PropertyName() string { return s.Name }

func (s *IntegerSchema) ToMap() map[string]any {
	return node("integer", s.Description, s.Nullable)
}

func (s *IntegerSchema) MarshalJSON() ([]byte, error) { return json.Marshal(s.ToMap()) }

// NumberSchema is a floating point node.
type NumberSchema struct {
	Name        string
	Description string
	Nullable    bool
}

func (s *NumberSchema) PropertyName() string { return s.Name }

func (s *NumberSchema) ToMap() map[string]any {
	return node("number", s.Description, s.Nullable)
}

func (s *NumberSchema) MarshalJSON() ([]byte, error) { return json.Marshal(s.ToMap()) }

// BooleanSchema is a boolean node.
type BooleanSchema struct {
	Name        string
	Description string
	Nullable    bool
}

func (s *BooleanSchema) PropertyName() string { return s.Name }

func (s *BooleanSchema) ToMap() map[string]any {
	return node("boolean", s.Description, s.Nullable)
}

func (s *BooleanSchema) MarshalJSON() ([]byte, error) { return json.Marshal(s.ToMap()) }

// EnumSchema is a string node restricted to Options.
type EnumSchema struct {
	Name        string
	Description string
	Options     []string
	Nullable    bool
}

func (s *EnumSchema) PropertyName() string { return s.Name }

func (s *EnumSchema) ToMap() map[string]any {
	m := node("string", s.Description, s.Nullable)
	m["enum"] = append([]string(nil), s.Options...)
	return m
}

func (s *EnumSchema) MarshalJSON() ([]byte, error) { return json.Marshal(s.ToMap()) }

// ArraySchema is a list of Items.
type ArraySchema struct {
	Name        string
	Description string
	Items       Schema
	MaxItems    *int
	Unique      bool
	Nullable    bool
}

func (s *ArraySchema) PropertyName() string { return s.Name }

func (s *ArraySchema) ToMap() map[string]any {
	m := node("array", s.Description, s.Nullable)
	if s.Items != nil {
		m["items"] = s.Items.ToMap()
	}
	if s.MaxItems != nil {
		m["maxItems"] = *s.MaxItems
	}
	if s.Unique {
		m["uniqueItems"] = true
	}
	return m
}

func (s *ArraySchema) MarshalJSON() ([]byte, error) { return json.Marshal(s.ToMap()) }

// ObjectSchema groups Properties under their property names.
type ObjectSchema struct {
	Name           string
	Description    string
	Properties     []Schema
	RequiredFields []string
	Nullable       bool
}

func (s *ObjectSchema) PropertyName() string { return s.Name }

// Property returns the child node stored under name.
func (s *ObjectSchema) Property(name string) (Schema, bool) {
	for _, p := range s.Properties {
		if p.PropertyName() == name {
			return p, true
		}
	}
	return nil, false
}

func (s *ObjectSchema) ToMap() map[string]any {
	m := node("object", s.Description, s.Nullable)
	properties := make(map[string]any, len(s.Properties))
	for _, p := range s.Properties {
		properties[p.PropertyName()] = p.ToMap()
	}
	m["properties"] = properties
	m["required"] = append([]string{}, s.RequiredFields...)
	return m
}

func (s *ObjectSchema) MarshalJSON() ([]byte, error) { return json.Marshal(s.ToMap()) }

func node(typ, description string, nullable bool) map[string]any {
	m := map[string]any{"type": typ}
	if description != "" {
		m["description"] = description
	}
	if nullable {
		m["nullable"] = true
	}
	return m
}
