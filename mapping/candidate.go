// Package mapping implements semantic matching of incoming field names
// against passport layer schemas and the construction of
// confidence-scored mapping plans.
package mapping

import "github.com/nmis-digital/dppmap/schema"

// MatchMethod names the matcher tier that produced a candidate.
type MatchMethod string

const (
	// MethodExact marks normalized field-name equality.
	MethodExact MatchMethod = "exact"

	// MethodSynonym marks a match through an ontology hint term's
	// preferred name or synonyms.
	MethodSynonym MatchMethod = "synonym"

	// MethodOntologyUnit marks a synonym match reinforced by a unit
	// agreement with the hint term.
	MethodOntologyUnit MatchMethod = "ontology-unit"

	// MethodLexical marks a token-overlap match between field names.
	MethodLexical MatchMethod = "normalized-lexical"
)

// Candidate is one proposed assignment of a source field to a
// canonical schema field. Candidates are transient: produced by the
// Matcher, consumed by the plan builder.
type Candidate struct {
	// SourceField is the incoming field name.
	SourceField string `yaml:"source" json:"source"`

	// Target is the canonical schema field.
	Target *schema.Field `yaml:"-" json:"-"`

	// TargetField is the canonical field name, kept alongside Target
	// for serialized plans.
	TargetField string `yaml:"target" json:"target"`

	// Confidence is the matcher's certainty in [0, 1].
	Confidence float64 `yaml:"confidence" json:"confidence"`

	// Method names the tier that produced this candidate.
	Method MatchMethod `yaml:"method" json:"method"`
}
