package ontology

import (
	"sort"
)

// Index is the read-only lookup structure over loaded classification
// terms and units. Build it with Builder.Build; afterward it is safe
// for unsynchronized concurrent reads.
type Index struct {
	terms map[string]*Term
	units map[string]*UnitTerm

	// inverted maps a normalized token to the sorted codes of terms
	// whose preferred name or synonyms contain that token. Enables
	// sub-linear candidate retrieval for SearchByTerm.
	inverted map[string][]string

	// termTokens caches the full normalized token set per term code
	// (preferred name plus synonyms) for overlap scoring.
	termTokens map[string]map[string]struct{}

	// caseItems maps a categorization class code to the sorted codes
	// of item terms that declare it in CaseOf.
	caseItems map[string][]string
}

// Lookup returns the term for a canonical code.
func (ix *Index) Lookup(code string) (*Term, bool) {
	t, ok := ix.terms[code]
	return t, ok
}

// LookupUnit returns the unit registered under the given symbol.
func (ix *Index) LookupUnit(symbol string) (*UnitTerm, bool) {
	u, ok := ix.units[symbol]
	return u, ok
}

// Len returns the number of indexed terms.
func (ix *Index) Len() int {
	return len(ix.terms)
}

// CaseItems returns the item term codes that are cases of the given
// categorization class, in sorted order. The returned slice is a copy.
func (ix *Index) CaseItems(classCode string) []string {
	items := ix.caseItems[classCode]
	out := make([]string, len(items))
	copy(out, items)
	return out
}

// scored pairs a term with its lexical closeness to a query.
type scored struct {
	term  *Term
	score float64
}

// SearchByTerm returns terms ranked by lexical closeness to the query
// text. Candidates are retrieved through the inverted token index, so
// only terms sharing at least one token with the query are scored.
// Results are ordered by score descending, then code ascending, so
// repeated searches over the same index are identical. The returned
// slice is freshly allocated on every call.
func (ix *Index) SearchByTerm(text string) []*Term {
	queryTokens := TokenSet(text)
	if len(queryTokens) == 0 {
		return nil
	}

	candidates := make(map[string]struct{})
	for tok := range queryTokens {
		for _, code := range ix.inverted[tok] {
			candidates[code] = struct{}{}
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	results := make([]scored, 0, len(candidates))
	for code := range candidates {
		score := OverlapRatio(queryTokens, ix.termTokens[code])
		if score > 0 {
			results = append(results, scored{term: ix.terms[code], score: score})
		}
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].score != results[j].score {
			return results[i].score > results[j].score
		}
		return results[i].term.Code < results[j].term.Code
	})

	terms := make([]*Term, len(results))
	for i, r := range results {
		terms[i] = r.term
	}
	return terms
}

// TermMatchesText reports whether the normalized text equals the
// term's normalized preferred name or one of its synonyms. Used by the
// matcher's ontology-hinted tier.
func (ix *Index) TermMatchesText(code, text string) bool {
	term, ok := ix.terms[code]
	if !ok {
		return false
	}
	normalized := Normalize(text)
	if normalized == "" {
		return false
	}
	if Normalize(term.PreferredName) == normalized {
		return true
	}
	for _, syn := range term.Synonyms {
		if syn == normalized {
			return true
		}
	}
	return false
}
