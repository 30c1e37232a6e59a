// Package schema defines passport layer schemas, the versioned schema
// registry, and structural validation of layer instances.
package schema

// FieldKind classifies the expected value shape of a schema field.
type FieldKind string

const (
	// KindText expects a scalar string value.
	KindText FieldKind = "text"

	// KindNumber expects a scalar numeric value.
	KindNumber FieldKind = "number"

	// KindBool expects a boolean value.
	KindBool FieldKind = "bool"

	// KindMapping expects a nested field-name/value mapping.
	KindMapping FieldKind = "mapping"

	// KindSequence expects an ordered list of values.
	KindSequence FieldKind = "sequence"

	// KindEnum expects a string drawn from the field's Allowed set.
	KindEnum FieldKind = "enum"
)

// Field is one canonical field of a layer schema. Fields are immutable
// after their definition is registered.
type Field struct {
	// Name is the canonical field name, unique within a definition.
	Name string `yaml:"name"`

	// Required marks fields that every instance must carry.
	Required bool `yaml:"required"`

	// Kind declares the expected value shape.
	Kind FieldKind `yaml:"kind"`

	// OntologyHint optionally names an ontology term code used to
	// bias semantic matching toward this field.
	OntologyHint string `yaml:"ontology_hint,omitempty"`

	// Allowed enumerates permitted values for KindEnum fields.
	Allowed []string `yaml:"allowed,omitempty"`
}

// AllowsValue reports whether v is in the enum's allowed set. Always
// false for non-enum fields or non-string values.
func (f *Field) AllowsValue(v any) bool {
	if f.Kind != KindEnum {
		return false
	}
	s, ok := v.(string)
	if !ok {
		return false
	}
	for _, allowed := range f.Allowed {
		if allowed == s {
			return true
		}
	}
	return false
}
