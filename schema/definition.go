package schema

import "fmt"

// Definition is the schema for one passport layer at one version.
// Field order is significant and preserved; field names are unique.
// Definitions are never mutated after registration.
type Definition struct {
	// Layer names the passport layer this schema describes
	// (e.g. "identity", "lifecycle").
	Layer string `yaml:"layer"`

	// Version is the schema version, starting at 1.
	Version int `yaml:"version"`

	// Fields is the ordered field list.
	Fields []Field `yaml:"fields"`
}

// Validate checks structural soundness of the definition itself.
func (d *Definition) Validate() error {
	if d.Layer == "" {
		return fmt.Errorf("definition missing layer name")
	}
	if d.Version < 1 {
		return fmt.Errorf("definition %q: version must be >= 1, got %d", d.Layer, d.Version)
	}
	seen := make(map[string]struct{}, len(d.Fields))
	for _, f := range d.Fields {
		if f.Name == "" {
			return fmt.Errorf("definition %q: field with empty name", d.Layer)
		}
		if _, dup := seen[f.Name]; dup {
			return fmt.Errorf("definition %q: duplicate field %q", d.Layer, f.Name)
		}
		seen[f.Name] = struct{}{}

		switch f.Kind {
		case KindText, KindNumber, KindBool, KindMapping, KindSequence:
		case KindEnum:
			if len(f.Allowed) == 0 {
				return fmt.Errorf("definition %q: enum field %q has no allowed values", d.Layer, f.Name)
			}
		default:
			return fmt.Errorf("definition %q: field %q has unknown kind %q", d.Layer, f.Name, f.Kind)
		}
	}
	return nil
}

// FieldByName returns the field with the given canonical name.
func (d *Definition) FieldByName(name string) (*Field, bool) {
	for i := range d.Fields {
		if d.Fields[i].Name == name {
			return &d.Fields[i], true
		}
	}
	return nil, false
}

// RequiredFields returns the names of all required fields, in
// definition order.
func (d *Definition) RequiredFields() []string {
	var names []string
	for _, f := range d.Fields {
		if f.Required {
			names = append(names, f.Name)
		}
	}
	return names
}
