package passport

import (
	"github.com/google/uuid"

	"github.com/nmis-digital/dppmap/schema"
)

// Passport is the complete Digital Product Passport: one record per
// layer. Layers may be nil until populated; validate each layer
// against its schema before trusting the passport.
type Passport struct {
	ID             string               `yaml:"id" json:"id"`
	Identity       *IdentityLayer       `yaml:"identity,omitempty" json:"identity,omitempty"`
	Structure      *StructureLayer      `yaml:"structure,omitempty" json:"structure,omitempty"`
	Lifecycle      *LifecycleLayer      `yaml:"lifecycle,omitempty" json:"lifecycle,omitempty"`
	Risk           *RiskLayer           `yaml:"risk,omitempty" json:"risk,omitempty"`
	Sustainability *SustainabilityLayer `yaml:"sustainability,omitempty" json:"sustainability,omitempty"`
	Provenance     *ProvenanceLayer     `yaml:"provenance,omitempty" json:"provenance,omitempty"`
}

// New creates an empty passport with a fresh unique ID.
func New() *Passport {
	return &Passport{ID: uuid.New().String()}
}

// NamedLayer pairs a layer name with its record.
type NamedLayer struct {
	Name   string
	Record schema.Record
}

// Layers returns the populated layers in canonical order.
func (p *Passport) Layers() []NamedLayer {
	var layers []NamedLayer
	add := func(name string, rec schema.Record, populated bool) {
		if populated {
			layers = append(layers, NamedLayer{Name: name, Record: rec})
		}
	}
	add(schema.LayerIdentity, p.Identity, p.Identity != nil)
	add(schema.LayerStructure, p.Structure, p.Structure != nil)
	add(schema.LayerLifecycle, p.Lifecycle, p.Lifecycle != nil)
	add(schema.LayerRisk, p.Risk, p.Risk != nil)
	add(schema.LayerSustainability, p.Sustainability, p.Sustainability != nil)
	add(schema.LayerProvenance, p.Provenance, p.Provenance != nil)
	return layers
}

// Validate checks every populated layer against the registry's highest
// schema version and returns one report per layer, in canonical order.
func (p *Passport) Validate(reg *schema.Registry) ([]*schema.ValidationReport, error) {
	var reports []*schema.ValidationReport
	for _, layer := range p.Layers() {
		def, err := reg.Get(layer.Name, 0)
		if err != nil {
			return nil, err
		}
		reports = append(reports, schema.Validate(layer.Record, def))
	}
	return reports, nil
}

// ToMap exposes the passport as plain nested mappings of scalars,
// sequences, and mappings, leaving textual serialization to the
// caller.
func (p *Passport) ToMap() map[string]any {
	out := map[string]any{"id": p.ID}
	for _, layer := range p.Layers() {
		out[layer.Name] = RecordToMap(layer.Record)
	}
	return out
}

// RecordToMap flattens any Record into a plain map, recursing into
// nested records and part lists.
func RecordToMap(rec schema.Record) map[string]any {
	out := make(map[string]any)
	for _, name := range rec.FieldNames() {
		value, present := rec.Value(name)
		if !present {
			continue
		}
		out[name] = plainValue(value)
	}
	return out
}

func plainValue(value any) any {
	switch v := value.(type) {
	case schema.Record:
		return RecordToMap(v)
	case *Part:
		return v.ToMap()
	case []*Part:
		parts := make([]any, len(v))
		for i, part := range v {
			parts[i] = part.ToMap()
		}
		return parts
	case []any:
		items := make([]any, len(v))
		for i, item := range v {
			items[i] = plainValue(item)
		}
		return items
	default:
		return v
	}
}
