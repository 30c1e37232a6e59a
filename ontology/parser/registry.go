// Package parser provides dictionary source-file parsers for the
// ontology index builder. Parsers turn raw dictionary files into flat
// term and unit entries; the builder owns cross-file validation and
// index construction.
package parser

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
)

// TermEntry is one classification term as extracted from a dictionary
// source, before unit references are resolved.
type TermEntry struct {
	Code          string
	PreferredName string
	Synonyms      []string
	UnitRef       string
	Properties    map[string]string
	CaseOf        []string
}

// UnitEntry is one unit of measure as extracted from a unit
// dictionary. Code is the identifier that TermEntry.UnitRef points at.
type UnitEntry struct {
	Code     string
	Symbol   string
	Name     string
	SIFactor float64
	Aliases  []string
}

// DictionaryParser parses classification-dictionary files.
type DictionaryParser interface {
	// ParseTerms extracts all term entries from one source file.
	ParseTerms(filename string, content []byte) ([]TermEntry, error)

	// CanParse returns true if this parser handles the given MIME type.
	CanParse(mimeType string) bool

	// MimeType returns the primary MIME type for this parser.
	MimeType() string
}

// UnitParser parses unit-dictionary files.
type UnitParser interface {
	// ParseUnits extracts all unit entries from one source file.
	ParseUnits(filename string, content []byte) ([]UnitEntry, error)

	// CanParse returns true if this parser handles the given MIME type.
	CanParse(mimeType string) bool

	// MimeType returns the primary MIME type for this parser.
	MimeType() string
}

// Registry manages dictionary and unit parsers.
type Registry struct {
	mu          sync.RWMutex
	dictionary  map[string]DictionaryParser // keyed by primary MIME type
	unitParsers map[string]UnitParser
}

// NewRegistry creates a parser registry with the default parsers: the
// ECLASS-style XML dictionary parser and the YAML unit parser.
func NewRegistry() *Registry {
	r := &Registry{
		dictionary:  make(map[string]DictionaryParser),
		unitParsers: make(map[string]UnitParser),
	}

	r.RegisterDictionary(NewECLASSParser())
	r.RegisterUnits(NewYAMLUnitParser())

	return r
}

// RegisterDictionary adds a dictionary parser to the registry.
func (r *Registry) RegisterDictionary(p DictionaryParser) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dictionary[p.MimeType()] = p
}

// RegisterUnits adds a unit parser to the registry.
func (r *Registry) RegisterUnits(p UnitParser) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.unitParsers[p.MimeType()] = p
}

// DictionaryFor returns a dictionary parser for the given filename, or
// nil if no parser handles its type.
func (r *Registry) DictionaryFor(filename string) DictionaryParser {
	mimeType := MimeTypeFromExtension(filepath.Ext(filename))

	r.mu.RLock()
	defer r.mu.RUnlock()

	if p, ok := r.dictionary[mimeType]; ok {
		return p
	}
	for _, p := range r.dictionary {
		if p.CanParse(mimeType) {
			return p
		}
	}
	return nil
}

// UnitsFor returns a unit parser for the given filename, or nil if no
// parser handles its type.
func (r *Registry) UnitsFor(filename string) UnitParser {
	mimeType := MimeTypeFromExtension(filepath.Ext(filename))

	r.mu.RLock()
	defer r.mu.RUnlock()

	if p, ok := r.unitParsers[mimeType]; ok {
		return p
	}
	for _, p := range r.unitParsers {
		if p.CanParse(mimeType) {
			return p
		}
	}
	return nil
}

// ParseTerms parses a dictionary file using the appropriate parser.
func (r *Registry) ParseTerms(filename string, content []byte) ([]TermEntry, error) {
	p := r.DictionaryFor(filename)
	if p == nil {
		return nil, fmt.Errorf("no dictionary parser for file type: %s", filepath.Ext(filename))
	}
	return p.ParseTerms(filename, content)
}

// ParseUnits parses a unit dictionary file using the appropriate parser.
func (r *Registry) ParseUnits(filename string, content []byte) ([]UnitEntry, error) {
	p := r.UnitsFor(filename)
	if p == nil {
		return nil, fmt.Errorf("no unit parser for file type: %s", filepath.Ext(filename))
	}
	return p.ParseUnits(filename, content)
}

// MimeTypeFromExtension returns the MIME type for a file extension.
func MimeTypeFromExtension(ext string) string {
	switch strings.ToLower(ext) {
	case ".xml":
		return "application/xml"
	case ".yaml", ".yml":
		return "application/yaml"
	case ".json":
		return "application/json"
	default:
		return "application/octet-stream"
	}
}
