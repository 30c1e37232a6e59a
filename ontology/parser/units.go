package parser

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// YAMLUnitParser parses the YAML unit dictionary.
//
// Expected document shape:
//
//	units:
//	  - code: "ECLASS-UNIT-NM"
//	    symbol: "Nm"
//	    name: "newton metre"
//	    si_factor: 1.0
//	    aliases: ["N·m", "N-m"]
type YAMLUnitParser struct{}

// NewYAMLUnitParser creates a new YAML unit dictionary parser.
func NewYAMLUnitParser() *YAMLUnitParser {
	return &YAMLUnitParser{}
}

type unitDocument struct {
	Units []unitRecord `yaml:"units"`
}

type unitRecord struct {
	Code     string   `yaml:"code"`
	Symbol   string   `yaml:"symbol"`
	Name     string   `yaml:"name"`
	SIFactor float64  `yaml:"si_factor"`
	Aliases  []string `yaml:"aliases"`
}

// ParseUnits extracts unit entries from one unit dictionary file.
// Every record must carry a code and a symbol; the rest is optional.
func (p *YAMLUnitParser) ParseUnits(filename string, content []byte) ([]UnitEntry, error) {
	var doc unitDocument
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}

	entries := make([]UnitEntry, 0, len(doc.Units))
	for i, rec := range doc.Units {
		if rec.Code == "" {
			return nil, fmt.Errorf("parse %s: unit %d: missing code", filename, i)
		}
		if rec.Symbol == "" {
			return nil, fmt.Errorf("parse %s: unit %q: missing symbol", filename, rec.Code)
		}
		entries = append(entries, UnitEntry{
			Code:     rec.Code,
			Symbol:   rec.Symbol,
			Name:     rec.Name,
			SIFactor: rec.SIFactor,
			Aliases:  rec.Aliases,
		})
	}

	return entries, nil
}

// CanParse returns true if this parser handles the given MIME type.
func (p *YAMLUnitParser) CanParse(mimeType string) bool {
	switch mimeType {
	case "application/yaml", "text/yaml":
		return true
	default:
		return false
	}
}

// MimeType returns the primary MIME type for this parser.
func (p *YAMLUnitParser) MimeType() string {
	return "application/yaml"
}
