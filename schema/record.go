package schema

import "sort"

// Record is the layer-instance capability: any ordered mapping from
// field name to value. The mapping and validation core depends only on
// this interface, never on a concrete record implementation.
type Record interface {
	// FieldNames returns the field names in their stable order.
	FieldNames() []string

	// Value returns the value for a field name.
	Value(name string) (any, bool)
}

// OrderedRecord is a concrete Record for arbitrary incoming data.
// Fields keep insertion order.
type OrderedRecord struct {
	names  []string
	values map[string]any
}

// NewOrderedRecord creates an empty ordered record.
func NewOrderedRecord() *OrderedRecord {
	return &OrderedRecord{values: make(map[string]any)}
}

// RecordFromMap builds an ordered record from a plain map, ordering
// fields by sorted name so the result is independent of map iteration
// order.
func RecordFromMap(m map[string]any) *OrderedRecord {
	rec := NewOrderedRecord()
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		rec.Set(name, m[name])
	}
	return rec
}

// Set adds or replaces a field. New fields append to the order.
func (r *OrderedRecord) Set(name string, value any) {
	if _, exists := r.values[name]; !exists {
		r.names = append(r.names, name)
	}
	r.values[name] = value
}

// FieldNames returns the field names in insertion order.
func (r *OrderedRecord) FieldNames() []string {
	names := make([]string, len(r.names))
	copy(names, r.names)
	return names
}

// Value returns the value for a field name.
func (r *OrderedRecord) Value(name string) (any, bool) {
	v, ok := r.values[name]
	return v, ok
}

// Len returns the number of fields.
func (r *OrderedRecord) Len() int {
	return len(r.names)
}
