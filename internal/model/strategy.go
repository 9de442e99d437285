package model

// Strategy converts every kind of domain entity into one target
// representation. Implementations must provide all five methods, so an
// incomplete strategy is rejected by the compiler rather than at runtime.
type Strategy interface {
	ConvertPermittedValue(pv PermittedValue) any
	ConvertFieldDependency(fd FieldDependency) any
	ConvertFieldFilter(ff FieldFilter) any
	ConvertField(f *Field) any
	ConvertModule(m *Module) any
}

// Convertible is implemented by the domain entities of this package only.
// Convert routes the entity to the Strategy method for its own type.
type Convertible interface {
	Convert(s Strategy) any
	convertible()
}

var (
	_ Convertible = PermittedValue{}
	_ Convertible = FieldDependency{}
	_ Convertible = FieldFilter{}
	_ Convertible = (*Field)(nil)
	_ Convertible = (*Module)(nil)
)

// Convert converts the permitted value with s.
func (pv PermittedValue) Convert(s Strategy) any { return s.ConvertPermittedValue(pv) }

// Convert converts the dependency with s.
func (fd FieldDependency) Convert(s Strategy) any { return s.ConvertFieldDependency(fd) }

// Convert converts the filter with s.
func (ff FieldFilter) Convert(s Strategy) any { return s.ConvertFieldFilter(ff) }

// Convert converts the field with s.
func (f *Field) Convert(s Strategy) any { return s.ConvertField(f) }

// Convert converts the module with s.
func (m *Module) Convert(s Strategy) any { return s.ConvertModule(m) }

func (PermittedValue) convertible()  {}
func (FieldDependency) convertible() {}
func (FieldFilter) convertible()     {}
func (*Field) convertible()          {}
func (*Module) convertible()         {}
