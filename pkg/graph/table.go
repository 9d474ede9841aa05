package graph

import "slices"

// Table is an insertion-ordered mapping from artist name to a list of
// strings: genre tags for the genre provider, credited artist names for the
// collaboration provider.
//
// Go maps have no iteration order, and the builder's node and neighbor order
// must follow fetch order, so builder inputs use Table instead of a map.
// The zero value is an empty table ready to use.
type Table struct {
	keys   []string
	values map[string][]string
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{values: make(map[string][]string)}
}

// Set stores values under key, replacing any previous values. A new key is
// appended to the key order; an existing key keeps its position.
func (t *Table) Set(key string, values []string) {
	t.ensure(key)
	t.values[key] = slices.Clone(values)
}

// Append adds values to the list stored under key, creating it if needed.
func (t *Table) Append(key string, values ...string) {
	t.ensure(key)
	t.values[key] = append(t.values[key], values...)
}

// Get returns the values stored under key and whether the key exists.
func (t *Table) Get(key string) ([]string, bool) {
	if t == nil || t.values == nil {
		return nil, false
	}
	v, ok := t.values[key]
	return v, ok
}

// Has reports whether key exists.
func (t *Table) Has(key string) bool {
	_, ok := t.Get(key)
	return ok
}

// Keys returns the keys in insertion order.
func (t *Table) Keys() []string {
	if t == nil {
		return nil
	}
	return slices.Clone(t.keys)
}

// Len returns the number of keys.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.keys)
}

func (t *Table) ensure(key string) {
	if t.values == nil {
		t.values = make(map[string][]string)
	}
	if _, ok := t.values[key]; !ok {
		t.keys = append(t.keys, key)
		t.values[key] = nil
	}
}
