package mapping

import (
	"sort"

	"github.com/nmis-digital/dppmap/ontology"
	"github.com/nmis-digital/dppmap/schema"
)

// MatcherConfig holds the confidence-tier parameters. The defaults are
// the engine's documented policy; they are configurable because the
// thresholds are a design choice, not a law of the domain.
type MatcherConfig struct {
	// MinConfidence is the floor below which candidates are discarded
	// entirely. A wrong mapping corrupts compliance-relevant data, so
	// the matcher prefers leaving a field unmatched over guessing.
	MinConfidence float64 `yaml:"min_confidence"`

	// HintConfidence is assigned when an ontology-hinted term matches
	// the source field name or sample value.
	HintConfidence float64 `yaml:"hint_confidence"`

	// UnitBoost is added to HintConfidence when the source unit agrees
	// with the hint term's unit.
	UnitBoost float64 `yaml:"unit_boost"`

	// MaxHintConfidence caps the boosted hint confidence. It must stay
	// below the exact tier's 1.0.
	MaxHintConfidence float64 `yaml:"max_hint_confidence"`

	// LexicalScale maps the token-overlap ratio into the lexical
	// tier's confidence band; the band tops out below HintConfidence
	// so tiers never overlap.
	LexicalScale float64 `yaml:"lexical_scale"`
}

// DefaultMatcherConfig returns the documented default tier parameters.
func DefaultMatcherConfig() MatcherConfig {
	return MatcherConfig{
		MinConfidence:     0.3,
		HintConfidence:    0.85,
		UnitBoost:         0.05,
		MaxHintConfidence: 0.95,
		LexicalScale:      0.75,
	}
}

// Matcher scores source fields against schema fields using normalized
// lexical comparison plus ontology synonym and unit expansion. A
// Matcher is a pure function of its inputs and the read-only index; it
// is safe for concurrent use.
type Matcher struct {
	index *ontology.Index
	cfg   MatcherConfig
}

// NewMatcher creates a matcher over the given ontology index. A nil
// index disables the ontology-hinted tier but leaves exact and lexical
// matching intact.
func NewMatcher(index *ontology.Index, cfg MatcherConfig) *Matcher {
	return &Matcher{index: index, cfg: cfg}
}

// Match returns all candidates for one (field-name, sample-value,
// unit) triple against a target schema, highest confidence first. For
// each target field the tiers run in priority order and the first
// success wins; targets no tier accepts produce no candidate. An empty
// result means the source field is best left unmatched.
func (m *Matcher) Match(sourceField string, sample any, sourceUnit string, def *schema.Definition) []Candidate {
	normalized := ontology.Normalize(sourceField)
	if normalized == "" {
		return nil
	}
	sourceTokens := ontology.TokenSet(sourceField)

	var candidates []Candidate
	for i := range def.Fields {
		target := &def.Fields[i]
		if c, ok := m.matchField(normalized, sourceTokens, sample, sourceUnit, target); ok {
			c.SourceField = sourceField
			candidates = append(candidates, c)
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Confidence != candidates[j].Confidence {
			return candidates[i].Confidence > candidates[j].Confidence
		}
		return candidates[i].TargetField < candidates[j].TargetField
	})

	return candidates
}

// matchField runs the tier chain for a single target field.
func (m *Matcher) matchField(normalized string, sourceTokens map[string]struct{}, sample any, sourceUnit string, target *schema.Field) (Candidate, bool) {
	// Tier 1: exact normalized name equality.
	if ontology.Normalize(target.Name) == normalized {
		return Candidate{
			Target:      target,
			TargetField: target.Name,
			Confidence:  1.0,
			Method:      MethodExact,
		}, true
	}

	// Tier 2: ontology-hinted synonym match.
	if c, ok := m.matchHint(normalized, sample, sourceUnit, target); ok {
		return c, true
	}

	// Tier 3: normalized-lexical token overlap.
	ratio := ontology.OverlapRatio(sourceTokens, ontology.TokenSet(target.Name))
	confidence := ratio * m.cfg.LexicalScale
	if confidence >= m.cfg.MinConfidence {
		return Candidate{
			Target:      target,
			TargetField: target.Name,
			Confidence:  confidence,
			Method:      MethodLexical,
		}, true
	}

	return Candidate{}, false
}

// matchHint checks the target's ontology hint term against the source
// field name and, when textual, the sample value.
func (m *Matcher) matchHint(normalized string, sample any, sourceUnit string, target *schema.Field) (Candidate, bool) {
	if m.index == nil || target.OntologyHint == "" {
		return Candidate{}, false
	}

	matched := m.index.TermMatchesText(target.OntologyHint, normalized)
	if !matched {
		if s, ok := sample.(string); ok {
			matched = m.index.TermMatchesText(target.OntologyHint, s)
		}
	}
	if !matched {
		return Candidate{}, false
	}

	confidence := m.cfg.HintConfidence
	method := MethodSynonym

	if term, ok := m.index.Lookup(target.OntologyHint); ok && term.MatchesUnit(sourceUnit) {
		confidence += m.cfg.UnitBoost
		if confidence > m.cfg.MaxHintConfidence {
			confidence = m.cfg.MaxHintConfidence
		}
		method = MethodOntologyUnit
	}

	return Candidate{
		Target:      target,
		TargetField: target.Name,
		Confidence:  confidence,
		Method:      method,
	}, true
}
