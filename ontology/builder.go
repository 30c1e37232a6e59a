package ontology

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/nmis-digital/dppmap/ontology/parser"
)

// ErrOntologyLoad marks any failure during index construction:
// unreadable or malformed sources, duplicate codes, or dangling unit
// references. No partial index is returned alongside it.
var ErrOntologyLoad = errors.New("ontology load failed")

// Builder constructs an Index from dictionary and unit sources.
type Builder struct {
	logger  *slog.Logger
	parsers *parser.Registry
}

// NewBuilder creates a builder with the default parser registry.
func NewBuilder(logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{
		logger:  logger,
		parsers: parser.NewRegistry(),
	}
}

// Build reads all unit sources and then all dictionary sources,
// producing a read-only Index. Source paths are processed in sorted
// order so repeated builds from the same files yield identical
// indexes, regardless of how the paths were discovered.
func (b *Builder) Build(dictSources, unitSources []string) (*Index, error) {
	if len(dictSources) == 0 {
		return nil, fmt.Errorf("%w: no dictionary sources", ErrOntologyLoad)
	}

	dictSources = sortedCopy(dictSources)
	unitSources = sortedCopy(unitSources)

	units, unitsByCode, err := b.loadUnits(unitSources)
	if err != nil {
		return nil, err
	}

	terms, err := b.loadTerms(dictSources, unitsByCode)
	if err != nil {
		return nil, err
	}

	ix := &Index{
		terms:      terms,
		units:      units,
		inverted:   make(map[string][]string),
		termTokens: make(map[string]map[string]struct{}),
		caseItems:  make(map[string][]string),
	}

	// The inverted index and case-of mapping are filled per term in
	// sorted code order, then each posting list is sorted, so the
	// index answers queries identically across builds.
	codes := make([]string, 0, len(terms))
	for code := range terms {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	for _, code := range codes {
		term := terms[code]

		tokens := TokenSet(term.PreferredName)
		for _, syn := range term.Synonyms {
			for tok := range TokenSet(syn) {
				tokens[tok] = struct{}{}
			}
		}
		ix.termTokens[code] = tokens
		for tok := range tokens {
			ix.inverted[tok] = append(ix.inverted[tok], code)
		}

		for _, classCode := range term.CaseOf {
			ix.caseItems[classCode] = append(ix.caseItems[classCode], code)
		}
	}
	for tok := range ix.inverted {
		sort.Strings(ix.inverted[tok])
	}
	for classCode := range ix.caseItems {
		sort.Strings(ix.caseItems[classCode])
	}

	b.logger.Info("ontology index built",
		slog.Int("terms", len(terms)),
		slog.Int("units", len(units)),
		slog.Int("tokens", len(ix.inverted)))

	return ix, nil
}

// BuildFromGlobs resolves dictionary and unit glob patterns
// (doublestar syntax, e.g. "dictionary_assets/**/*.xml") and builds
// the index from the matched files.
func (b *Builder) BuildFromGlobs(dictGlob, unitGlob string) (*Index, error) {
	dictSources, err := doublestar.FilepathGlob(dictGlob)
	if err != nil {
		return nil, fmt.Errorf("%w: dictionary glob %q: %v", ErrOntologyLoad, dictGlob, err)
	}

	var unitSources []string
	if unitGlob != "" {
		unitSources, err = doublestar.FilepathGlob(unitGlob)
		if err != nil {
			return nil, fmt.Errorf("%w: unit glob %q: %v", ErrOntologyLoad, unitGlob, err)
		}
	}

	return b.Build(dictSources, unitSources)
}

// loadUnits parses all unit sources into the symbol-keyed unit map and
// a code-keyed map used to resolve term unit references.
func (b *Builder) loadUnits(sources []string) (map[string]*UnitTerm, map[string]*UnitTerm, error) {
	bySymbol := make(map[string]*UnitTerm)
	byCode := make(map[string]*UnitTerm)

	for _, path := range sources {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: read %s: %v", ErrOntologyLoad, path, err)
		}

		entries, err := b.parsers.ParseUnits(path, content)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrOntologyLoad, err)
		}

		for _, e := range entries {
			if _, exists := byCode[e.Code]; exists {
				return nil, nil, fmt.Errorf("%w: duplicate unit code %q in %s", ErrOntologyLoad, e.Code, path)
			}
			unit := &UnitTerm{
				Symbol:           e.Symbol,
				CanonicalName:    e.Name,
				ConversionFactor: e.SIFactor,
				Aliases:          e.Aliases,
			}
			byCode[e.Code] = unit
			bySymbol[e.Symbol] = unit
		}

		b.logger.Debug("loaded unit source", slog.String("path", path), slog.Int("units", len(entries)))
	}

	return bySymbol, byCode, nil
}

// loadTerms parses all dictionary sources, normalizing synonyms and
// resolving unit references against the loaded unit dictionary.
func (b *Builder) loadTerms(sources []string, unitsByCode map[string]*UnitTerm) (map[string]*Term, error) {
	terms := make(map[string]*Term)

	for _, path := range sources {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: read %s: %v", ErrOntologyLoad, path, err)
		}

		entries, err := b.parsers.ParseTerms(path, content)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrOntologyLoad, err)
		}

		for _, e := range entries {
			if _, exists := terms[e.Code]; exists {
				return nil, fmt.Errorf("%w: duplicate term code %q in %s", ErrOntologyLoad, e.Code, path)
			}

			term := &Term{
				Code:          e.Code,
				PreferredName: e.PreferredName,
				Properties:    e.Properties,
				CaseOf:        e.CaseOf,
			}

			for _, syn := range e.Synonyms {
				if n := Normalize(syn); n != "" {
					term.Synonyms = append(term.Synonyms, n)
				}
			}

			if e.UnitRef != "" {
				unit, ok := unitsByCode[e.UnitRef]
				if !ok {
					return nil, fmt.Errorf("%w: term %q references unknown unit %q", ErrOntologyLoad, e.Code, e.UnitRef)
				}
				term.Unit = unit
			}

			terms[e.Code] = term
		}

		b.logger.Debug("loaded dictionary source", slog.String("path", path), slog.Int("terms", len(entries)))
	}

	return terms, nil
}

func sortedCopy(paths []string) []string {
	out := make([]string, len(paths))
	copy(out, paths)
	sort.Strings(out)
	return out
}
