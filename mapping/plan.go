package mapping

// Plan is the proposed assignment of source data fields to canonical
// schema fields for one layer, with conflict bookkeeping. Plans are
// request-scoped: built per dataset, consumed by ApplyPlan, then
// discarded.
type Plan struct {
	// Layer and Version identify the schema the plan was built
	// against. Schemas are append-only, so the plan stays valid for
	// that version regardless of later registrations.
	Layer   string `yaml:"layer" json:"layer"`
	Version int    `yaml:"version" json:"version"`

	// Assignments holds the accepted top candidate per source field,
	// ordered by source field name. No two assignments share a
	// non-sequence target.
	Assignments []Candidate `yaml:"assignments" json:"assignments"`

	// Discarded surfaces candidates that lost a conflict. Ambiguity is
	// never silently resolved; callers review these.
	Discarded []Candidate `yaml:"discarded,omitempty" json:"discarded,omitempty"`

	// UnmatchedSource lists source fields with no accepted assignment,
	// sorted.
	UnmatchedSource []string `yaml:"unmatched_source,omitempty" json:"unmatched_source,omitempty"`

	// UnmatchedRequired lists required schema fields no source field
	// was assigned to, in definition order.
	UnmatchedRequired []string `yaml:"unmatched_required,omitempty" json:"unmatched_required,omitempty"`
}

// Complete reports whether every required schema field received an
// assignment.
func (p *Plan) Complete() bool {
	return len(p.UnmatchedRequired) == 0
}

// AssignmentFor returns the accepted candidates targeting the given
// schema field. Non-sequence targets yield at most one.
func (p *Plan) AssignmentFor(targetField string) []Candidate {
	var out []Candidate
	for _, c := range p.Assignments {
		if c.TargetField == targetField {
			out = append(out, c)
		}
	}
	return out
}
