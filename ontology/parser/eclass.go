package parser

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
)

// ECLASSParser parses ECLASS-style classification dictionary XML.
//
// Only a narrow element surface is consumed: categorization classes
// and case-of item classes with their id, preferredname label,
// synonym labels, unit reference, and property declarations. Anything
// else in the dictionary is skipped. The element names below match
// the ECLASS "ontology" assets distribution.
type ECLASSParser struct{}

// NewECLASSParser creates a new ECLASS dictionary parser.
func NewECLASSParser() *ECLASSParser {
	return &ECLASSParser{}
}

// Element names recognized in dictionary sources.
const (
	elemCategorizationClass = "CATEGORIZATIONCLASSType"
	elemItemClassCaseOf     = "ITEMCLASSCASEOFType"
	elemPreferredName       = "preferredname"
	elemSynonym             = "synonym"
	elemUnitRef             = "unitref"
	elemProperty            = "property"
	elemIsCaseOf            = "iscaseof"
	elemClassRef            = "classref"
)

// ParseTerms extracts term entries from one dictionary XML file.
// Classes without an id attribute are skipped, matching the source
// distribution where unidentified entries carry no usable data. A
// class with an id but no preferredname is malformed and fails the
// parse.
func (p *ECLASSParser) ParseTerms(filename string, content []byte) ([]TermEntry, error) {
	dec := xml.NewDecoder(bytes.NewReader(content))

	var entries []TermEntry
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", filename, err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		switch start.Name.Local {
		case elemCategorizationClass, elemItemClassCaseOf:
			entry, err := p.parseClass(dec, start)
			if err != nil {
				return nil, fmt.Errorf("parse %s: %w", filename, err)
			}
			if entry != nil {
				entries = append(entries, *entry)
			}
		}
	}

	return entries, nil
}

// parseClass consumes one class element and its children.
func (p *ECLASSParser) parseClass(dec *xml.Decoder, start xml.StartElement) (*TermEntry, error) {
	id := attr(start, "id")
	if id == "" {
		// No id means nothing to index; drain the element.
		if err := dec.Skip(); err != nil {
			return nil, err
		}
		return nil, nil
	}

	entry := TermEntry{Code: id, Properties: make(map[string]string)}
	depth := 1
	inCaseOf := false

	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("class %s: %w", id, err)
		}

		switch el := tok.(type) {
		case xml.StartElement:
			depth++
			switch el.Name.Local {
			case elemPreferredName:
				entry.PreferredName = attr(el, "label")
			case elemSynonym:
				if label := attr(el, "label"); label != "" {
					entry.Synonyms = append(entry.Synonyms, label)
				}
			case elemUnitRef:
				entry.UnitRef = attr(el, "ref")
			case elemProperty:
				if name := attr(el, "name"); name != "" {
					entry.Properties[name] = attr(el, "kind")
				}
			case elemIsCaseOf:
				inCaseOf = true
			case elemClassRef:
				// Only references nested in iscaseof declare a case-of
				// relation; classref appears elsewhere in the
				// distribution with different meanings.
				if ref := attr(el, "ref"); ref != "" && inCaseOf {
					entry.CaseOf = append(entry.CaseOf, ref)
				}
			}
		case xml.EndElement:
			depth--
			if el.Name.Local == elemIsCaseOf {
				inCaseOf = false
			}
		}
	}

	if entry.PreferredName == "" {
		return nil, fmt.Errorf("class %s: missing preferredname", id)
	}
	return &entry, nil
}

// CanParse returns true if this parser handles the given MIME type.
func (p *ECLASSParser) CanParse(mimeType string) bool {
	switch mimeType {
	case "application/xml", "text/xml":
		return true
	default:
		return false
	}
}

// MimeType returns the primary MIME type for this parser.
func (p *ECLASSParser) MimeType() string {
	return "application/xml"
}

// attr returns the value of a named attribute on a start element.
func attr(el xml.StartElement, name string) string {
	for _, a := range el.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}
