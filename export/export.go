package export

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/nmis-digital/dppmap/passport"
	"github.com/nmis-digital/dppmap/schema"
)

// Namespace is the base IRI prefix for passport vocabulary terms.
const Namespace = "https://vocab.nmis-digital.io/dpp/"

// EntityNamespace is the base IRI for passport instances.
const EntityNamespace = "https://entity.nmis-digital.io/dpp/"

// defaultPrefixes returns the standard namespace prefixes for JSON-LD
// export.
func defaultPrefixes() map[string]string {
	return map[string]string{
		"dc":     "http://purl.org/dc/terms/",
		"skos":   "http://www.w3.org/2004/02/skos/core#",
		"schema": "https://schema.org/",
		"dpp":    Namespace,
		"entity": EntityNamespace,
	}
}

// Exporter serializes passports.
type Exporter struct {
	prefixes map[string]string
}

// NewExporter creates an exporter with the default JSON-LD prefixes.
func NewExporter() *Exporter {
	return &Exporter{prefixes: defaultPrefixes()}
}

// SetPrefix adds or overrides a namespace prefix used in JSON-LD
// output.
func (e *Exporter) SetPrefix(prefix, iri string) {
	e.prefixes[prefix] = iri
}

// Export serializes a passport to the requested format.
func (e *Exporter) Export(p *passport.Passport, format Format) (string, error) {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(p.ToMap(), "", "  ")
		if err != nil {
			return "", fmt.Errorf("marshal passport: %w", err)
		}
		return string(data), nil
	case FormatYAML:
		data, err := yaml.Marshal(p.ToMap())
		if err != nil {
			return "", fmt.Errorf("marshal passport: %w", err)
		}
		return string(data), nil
	case FormatJSONLD:
		return e.toJSONLD(p)
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

// jsonldDocument is the JSON-LD document shape.
type jsonldDocument struct {
	Context map[string]any `json:"@context"`
	ID      string         `json:"@id"`
	Type    string         `json:"@type"`
	Layers  map[string]any `json:"-"`
}

// MarshalJSON inlines the layer mappings next to the JSON-LD keywords.
func (d jsonldDocument) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(d.Layers)+3)
	m["@context"] = d.Context
	m["@id"] = d.ID
	m["@type"] = d.Type
	for k, v := range d.Layers {
		m["dpp:"+k] = v
	}
	return json.Marshal(m)
}

// toJSONLD serializes the passport as a JSON-LD node typed as a
// dpp:DigitalProductPassport, with each layer under a dpp-prefixed
// term.
func (e *Exporter) toJSONLD(p *passport.Passport) (string, error) {
	doc := jsonldDocument{
		Context: Context(e.prefixes),
		ID:      EntityNamespace + p.ID,
		Type:    "dpp:DigitalProductPassport",
		Layers:  make(map[string]any),
	}
	for _, layer := range p.Layers() {
		doc.Layers[layer.Name] = passport.RecordToMap(layer.Record)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal JSON-LD: %w", err)
	}
	return string(data), nil
}

// Context builds the JSON-LD @context: namespace prefixes plus a term
// entry per known layer name.
func Context(prefixes map[string]string) map[string]any {
	ctx := make(map[string]any, len(prefixes)+6)
	for prefix, iri := range prefixes {
		ctx[prefix] = iri
	}
	for _, layer := range []string{
		schema.LayerIdentity,
		schema.LayerStructure,
		schema.LayerLifecycle,
		schema.LayerRisk,
		schema.LayerSustainability,
		schema.LayerProvenance,
	} {
		ctx["dpp:"+layer] = map[string]any{"@id": Namespace + layer, "@type": "@id"}
	}
	return ctx
}
