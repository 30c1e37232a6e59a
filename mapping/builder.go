package mapping

import (
	"errors"
	"fmt"
	"sort"

	"github.com/nmis-digital/dppmap/schema"
)

// ErrIncompletePlan is returned by ApplyPlan when required fields are
// unmatched and the caller did not request a partial instance. It is
// recoverable: retry with partial set, or supply the missing fields.
var ErrIncompletePlan = errors.New("mapping plan leaves required fields unmatched")

// Builder orchestrates the matcher across a whole dataset to produce
// mapping plans.
type Builder struct {
	matcher *Matcher
}

// NewBuilder creates a plan builder around a matcher.
func NewBuilder(matcher *Matcher) *Builder {
	return &Builder{matcher: matcher}
}

// BuildPlan matches every source field against the target schema and
// resolves conflicts into a deterministic plan. Identical records,
// schema, and index always produce an identical plan.
func (b *Builder) BuildPlan(records schema.Record, def *schema.Definition) *Plan {
	return b.BuildPlanWithUnits(records, nil, def)
}

// BuildPlanWithUnits is BuildPlan with an optional per-source-field
// unit table, consulted by the matcher's ontology-unit tier.
func (b *Builder) BuildPlanWithUnits(records schema.Record, units map[string]string, def *schema.Definition) *Plan {
	plan := &Plan{Layer: def.Layer, Version: def.Version}

	// Source fields are walked in sorted order so that conflict
	// resolution sees candidates in the documented tie-break order
	// and the plan is independent of record iteration order.
	sources := records.FieldNames()
	sort.Strings(sources)

	// accepted maps a non-sequence target name to the index of its
	// current assignment in plan.Assignments.
	accepted := make(map[string]int)
	unmatched := make(map[string]struct{})

	for _, source := range sources {
		// A field carrying an explicit null has no value to map;
		// assigning it would let ApplyPlan smuggle a nil past the
		// required check that Validate then flags.
		sample, present := records.Value(source)
		if !present || sample == nil {
			unmatched[source] = struct{}{}
			continue
		}
		candidates := b.matcher.Match(source, sample, units[source], def)
		if len(candidates) == 0 {
			unmatched[source] = struct{}{}
			continue
		}

		top := candidates[0]

		// Sequence targets aggregate many sources; everything else is
		// one-to-one and conflicts must be resolved.
		if top.Target.Kind == schema.KindSequence {
			plan.Assignments = append(plan.Assignments, top)
			continue
		}

		prev, conflict := accepted[top.TargetField]
		if !conflict {
			accepted[top.TargetField] = len(plan.Assignments)
			plan.Assignments = append(plan.Assignments, top)
			continue
		}

		// Strictly higher confidence wins; on a tie the source that
		// sorts first lexically keeps the target. Sources arrive in
		// sorted order, so on a tie the incumbent stays.
		holder := plan.Assignments[prev]
		if top.Confidence > holder.Confidence {
			plan.Discarded = append(plan.Discarded, holder)
			unmatched[holder.SourceField] = struct{}{}
			plan.Assignments[prev] = top
		} else {
			plan.Discarded = append(plan.Discarded, top)
			unmatched[source] = struct{}{}
		}
	}

	sort.SliceStable(plan.Assignments, func(i, j int) bool {
		return plan.Assignments[i].SourceField < plan.Assignments[j].SourceField
	})

	for source := range unmatched {
		plan.UnmatchedSource = append(plan.UnmatchedSource, source)
	}
	sort.Strings(plan.UnmatchedSource)

	assignedTargets := make(map[string]struct{}, len(plan.Assignments))
	for _, c := range plan.Assignments {
		assignedTargets[c.TargetField] = struct{}{}
	}
	for _, name := range def.RequiredFields() {
		if _, ok := assignedTargets[name]; !ok {
			plan.UnmatchedRequired = append(plan.UnmatchedRequired, name)
		}
	}

	return plan
}

// ApplyPlan materializes a layer instance from source records using
// the plan's assignments. Fields appear in schema definition order;
// multiple sources assigned to one sequence target aggregate into a
// single list. Fails with ErrIncompletePlan when required fields are
// unmatched, unless partial is set.
func ApplyPlan(plan *Plan, records schema.Record, def *schema.Definition, partial bool) (*schema.OrderedRecord, error) {
	if !plan.Complete() && !partial {
		return nil, fmt.Errorf("%w: %v", ErrIncompletePlan, plan.UnmatchedRequired)
	}

	byTarget := make(map[string][]Candidate)
	for _, c := range plan.Assignments {
		byTarget[c.TargetField] = append(byTarget[c.TargetField], c)
	}

	inst := schema.NewOrderedRecord()
	for _, field := range def.Fields {
		assigned, ok := byTarget[field.Name]
		if !ok {
			continue
		}

		if field.Kind == schema.KindSequence && len(assigned) > 1 {
			var values []any
			for _, c := range assigned {
				if v, present := records.Value(c.SourceField); present {
					values = append(values, v)
				}
			}
			inst.Set(field.Name, values)
			continue
		}

		if v, present := records.Value(assigned[0].SourceField); present {
			inst.Set(field.Name, v)
		}
	}

	return inst, nil
}
