package schema

import (
	"fmt"
	"reflect"
)

// ViolationKind classifies a validation failure.
type ViolationKind string

const (
	// ViolationMissingRequired marks a required field absent from the
	// instance.
	ViolationMissingRequired ViolationKind = "missing-required"

	// ViolationWrongKind marks a value whose runtime shape disagrees
	// with the field's declared kind.
	ViolationWrongKind ViolationKind = "wrong-kind"

	// ViolationValueNotInEnum marks an enum field whose value is
	// outside the allowed set.
	ViolationValueNotInEnum ViolationKind = "value-not-in-enum"
)

// Violation names one offending field and why it failed.
type Violation struct {
	Field  string        `yaml:"field" json:"field"`
	Kind   ViolationKind `yaml:"kind" json:"kind"`
	Detail string        `yaml:"detail,omitempty" json:"detail,omitempty"`
}

// ValidationReport collects every violation found in one pass over an
// instance. A report with zero violations signals a structurally valid
// instance; it does not certify domain correctness.
type ValidationReport struct {
	Layer      string      `yaml:"layer" json:"layer"`
	Violations []Violation `yaml:"violations" json:"violations"`
}

// Valid reports whether the instance passed without violations.
func (r *ValidationReport) Valid() bool {
	return len(r.Violations) == 0
}

// Validate checks a layer instance against a definition. Validation is
// total: it does not stop at the first violation, so callers see every
// problem in one pass. Fields present on the instance but absent from
// the schema are ignored.
func Validate(inst Record, def *Definition) *ValidationReport {
	report := &ValidationReport{Layer: def.Layer}

	for i := range def.Fields {
		field := &def.Fields[i]

		value, present := inst.Value(field.Name)
		if !present || value == nil {
			if field.Required {
				report.Violations = append(report.Violations, Violation{
					Field:  field.Name,
					Kind:   ViolationMissingRequired,
					Detail: "required field is absent",
				})
			}
			continue
		}

		if !kindMatches(field.Kind, value) {
			report.Violations = append(report.Violations, Violation{
				Field:  field.Name,
				Kind:   ViolationWrongKind,
				Detail: fmt.Sprintf("expected %s, got %T", field.Kind, value),
			})
			continue
		}

		if field.Kind == KindEnum && !field.AllowsValue(value) {
			report.Violations = append(report.Violations, Violation{
				Field:  field.Name,
				Kind:   ViolationValueNotInEnum,
				Detail: fmt.Sprintf("value %q not in allowed set", value),
			})
		}
	}

	return report
}

// kindMatches checks a runtime value against a declared field kind.
func kindMatches(kind FieldKind, value any) bool {
	switch kind {
	case KindText, KindEnum:
		_, ok := value.(string)
		return ok
	case KindBool:
		_, ok := value.(bool)
		return ok
	case KindNumber:
		switch value.(type) {
		case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
			return true
		}
		return false
	case KindMapping:
		if _, ok := value.(Record); ok {
			return true
		}
		return reflect.ValueOf(value).Kind() == reflect.Map
	case KindSequence:
		k := reflect.ValueOf(value).Kind()
		return k == reflect.Slice || k == reflect.Array
	default:
		return false
	}
}
