package model

import "iter"

// keyed is an insertion-ordered collection whose keys are derived from the
// values themselves, so a key always matches the identity of its value.
type keyed[V any] struct {
	keys   []string
	values map[string]V
}

func newKeyed[V any](keyOf func(V) string, items []V) keyed[V] {
	k := keyed[V]{values: make(map[string]V, len(items))}
	for _, item := range items {
		key := keyOf(item)
		if _, exists := k.values[key]; !exists {
			k.keys = append(k.keys, key)
		}
		k.values[key] = item
	}
	return k
}

// Len returns the number of entries.
func (k keyed[V]) Len() int {
	return len(k.keys)
}

// IsEmpty reports whether the collection has no entries.
func (k keyed[V]) IsEmpty() bool {
	return len(k.keys) == 0
}

// Has reports whether an entry exists for key.
func (k keyed[V]) Has(key string) bool {
	_, ok := k.values[key]
	return ok
}

// Get returns the entry stored under key.
func (k keyed[V]) Get(key string) (V, bool) {
	v, ok := k.values[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (k keyed[V]) Keys() []string {
	out := make([]string, len(k.keys))
	copy(out, k.keys)
	return out
}

// Values returns the entries in insertion order.
func (k keyed[V]) Values() []V {
	out := make([]V, 0, len(k.keys))
	for _, key := range k.keys {
		out = append(out, k.values[key])
	}
	return out
}

// All iterates over key/value pairs in insertion order.
func (k keyed[V]) All() iter.Seq2[string, V] {
	return func(yield func(string, V) bool) {
		for _, key := range k.keys {
			if !yield(key, k.values[key]) {
				return
			}
		}
	}
}

func (k keyed[V]) first() (V, bool) {
	if len(k.keys) == 0 {
		var zero V
		return zero, false
	}
	return k.values[k.keys[0]], true
}
