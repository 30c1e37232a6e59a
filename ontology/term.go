// Package ontology provides an in-memory index over external
// classification dictionaries (terms, synonyms, units, properties).
// The index is built once at startup and is read-only afterward, so it
// may be shared across concurrent mapping requests without locking.
package ontology

// UnitTerm describes a unit of measure referenced by classification
// terms. Units are referenced, never owned, by terms.
type UnitTerm struct {
	// Symbol is the primary unit symbol (e.g. "Nm", "V", "kg").
	Symbol string

	// CanonicalName is the spelled-out unit name (e.g. "newton metre").
	CanonicalName string

	// ConversionFactor converts a value in this unit to the SI base
	// unit. Zero means no conversion applies (dimensionless or
	// non-SI unit).
	ConversionFactor float64

	// Aliases lists alternate symbols accepted for this unit
	// (e.g. "N·m", "N-m" for "Nm").
	Aliases []string
}

// Term is one canonical classification entry loaded from a dictionary
// source. Terms are immutable once the index is built.
type Term struct {
	// Code is the unique canonical identifier
	// (e.g. "0173-101-AGW606007").
	Code string

	// PreferredName is the human-readable preferred label.
	PreferredName string

	// Synonyms holds alternate labels, already normalized with
	// Normalize at build time.
	Synonyms []string

	// Unit references the unit of measure for this term, if any.
	Unit *UnitTerm

	// Properties maps property names to their expected kind names
	// (e.g. "torque" -> "number").
	Properties map[string]string

	// CaseOf lists categorization class codes this term is a
	// concrete case of.
	CaseOf []string
}

// MatchesUnit reports whether the given unit string matches this
// term's unit symbol or one of its aliases. Comparison is performed on
// normalized forms.
func (t *Term) MatchesUnit(unit string) bool {
	if t.Unit == nil || unit == "" {
		return false
	}
	want := Normalize(unit)
	if Normalize(t.Unit.Symbol) == want {
		return true
	}
	for _, alias := range t.Unit.Aliases {
		if Normalize(alias) == want {
			return true
		}
	}
	return false
}
