package model

// Module is a named group of fields, e.g. the estate or address module.
type Module struct {
	Key    ModuleKey
	Label  string
	Fields FieldCollection
}

// ModuleCollection is an ordered collection of modules keyed by the wire
// value of Module.Key.
type ModuleCollection struct {
	keyed[*Module]
}

// NewModuleCollection builds a collection keyed by each module's key.
func NewModuleCollection(modules ...*Module) ModuleCollection {
	return ModuleCollection{newKeyed(func(m *Module) string { return string(m.Key) }, modules)}
}

// Module returns the module stored under key.
func (c ModuleCollection) Module(key ModuleKey) (*Module, bool) {
	return c.Get(string(key))
}

// Modules returns all modules in order.
func (c ModuleCollection) Modules() []*Module {
	return c.Values()
}

// First returns the first module.
func (c ModuleCollection) First() (*Module, bool) {
	return c.first()
}

// Only returns a new collection restricted to keys, keeping the original
// order. With no keys the receiver is returned unchanged.
func (c ModuleCollection) Only(keys ...ModuleKey) ModuleCollection {
	if len(keys) == 0 {
		return c
	}
	wanted := make(map[ModuleKey]bool, len(keys))
	for _, k := range keys {
		wanted[k] = true
	}

	var kept []*Module
	for _, m := range c.All() {
		if wanted[m.Key] {
			kept = append(kept, m)
		}
	}
	return NewModuleCollection(kept...)
}

// Convert converts every module with s and returns the results in order.
func (c ModuleCollection) Convert(s Strategy) []any {
	out := make([]any, 0, c.Len())
	for _, m := range c.All() {
		out = append(out, m.Convert(s))
	}
	return out
}
