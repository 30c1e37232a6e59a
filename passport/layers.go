// Package passport provides the Digital Product Passport data
// containers: the six layer records, the passport aggregate, and the
// part catalog. Layer types satisfy the schema.Record capability, so
// the mapping and validation core consumes them without depending on
// these concrete types.
package passport

// IdentityLayer identifies the product: global identifiers, make and
// model, ownership, and conformity marks.
type IdentityLayer struct {
	GlobalIDs  map[string]string `yaml:"global_ids" json:"global_ids"`
	MakeModel  map[string]string `yaml:"make_model" json:"make_model"`
	Ownership  map[string]string `yaml:"ownership,omitempty" json:"ownership,omitempty"`
	Conformity []string          `yaml:"conformity" json:"conformity"`
}

// FieldNames returns the layer's field names in schema order.
func (l *IdentityLayer) FieldNames() []string {
	return []string{"global_ids", "make_model", "ownership", "conformity"}
}

// Value returns the value for a field name.
func (l *IdentityLayer) Value(name string) (any, bool) {
	switch name {
	case "global_ids":
		return l.GlobalIDs, l.GlobalIDs != nil
	case "make_model":
		return l.MakeModel, l.MakeModel != nil
	case "ownership":
		return l.Ownership, l.Ownership != nil
	case "conformity":
		return l.Conformity, l.Conformity != nil
	default:
		return nil, false
	}
}

// StructureLayer describes composition: the part hierarchy, the flat
// part list, interfaces, materials, and bill-of-material references.
type StructureLayer struct {
	Hierarchy  map[string]any   `yaml:"hierarchy" json:"hierarchy"`
	Parts      []*Part          `yaml:"parts" json:"parts"`
	Interfaces []map[string]any `yaml:"interfaces,omitempty" json:"interfaces,omitempty"`
	Materials  []map[string]any `yaml:"materials,omitempty" json:"materials,omitempty"`
	BOMRefs    []string         `yaml:"bom_refs,omitempty" json:"bom_refs,omitempty"`
}

// FieldNames returns the layer's field names in schema order.
func (l *StructureLayer) FieldNames() []string {
	return []string{"hierarchy", "parts", "interfaces", "materials", "bom_refs"}
}

// Value returns the value for a field name.
func (l *StructureLayer) Value(name string) (any, bool) {
	switch name {
	case "hierarchy":
		return l.Hierarchy, l.Hierarchy != nil
	case "parts":
		return l.Parts, l.Parts != nil
	case "interfaces":
		return l.Interfaces, l.Interfaces != nil
	case "materials":
		return l.Materials, l.Materials != nil
	case "bom_refs":
		return l.BOMRefs, l.BOMRefs != nil
	default:
		return nil, false
	}
}

// LifecycleLayer records manufacture, use, serviceability, events, and
// end-of-life handling.
type LifecycleLayer struct {
	Manufacture    map[string]any   `yaml:"manufacture" json:"manufacture"`
	Use            map[string]any   `yaml:"use,omitempty" json:"use,omitempty"`
	Serviceability map[string]any   `yaml:"serviceability,omitempty" json:"serviceability,omitempty"`
	Events         []map[string]any `yaml:"events,omitempty" json:"events,omitempty"`
	EndOfLife      map[string]any   `yaml:"end_of_life,omitempty" json:"end_of_life,omitempty"`
}

// FieldNames returns the layer's field names in schema order.
func (l *LifecycleLayer) FieldNames() []string {
	return []string{"manufacture", "use", "serviceability", "events", "end_of_life"}
}

// Value returns the value for a field name.
func (l *LifecycleLayer) Value(name string) (any, bool) {
	switch name {
	case "manufacture":
		return l.Manufacture, l.Manufacture != nil
	case "use":
		return l.Use, l.Use != nil
	case "serviceability":
		return l.Serviceability, l.Serviceability != nil
	case "events":
		return l.Events, l.Events != nil
	case "end_of_life":
		return l.EndOfLife, l.EndOfLife != nil
	default:
		return nil, false
	}
}

// RiskLayer records criticality, failure-mode analysis, and security
// posture.
type RiskLayer struct {
	Criticality map[string]any   `yaml:"criticality" json:"criticality"`
	FMEA        []map[string]any `yaml:"fmea,omitempty" json:"fmea,omitempty"`
	Security    map[string]any   `yaml:"security,omitempty" json:"security,omitempty"`
}

// FieldNames returns the layer's field names in schema order.
func (l *RiskLayer) FieldNames() []string {
	return []string{"criticality", "fmea", "security"}
}

// Value returns the value for a field name.
func (l *RiskLayer) Value(name string) (any, bool) {
	switch name {
	case "criticality":
		return l.Criticality, l.Criticality != nil
	case "fmea":
		return l.FMEA, l.FMEA != nil
	case "security":
		return l.Security, l.Security != nil
	default:
		return nil, false
	}
}

// SustainabilityLayer records mass, energy profile, recycled content,
// and remanufacture eligibility.
type SustainabilityLayer struct {
	Mass            float64        `yaml:"mass" json:"mass"`
	Energy          map[string]any `yaml:"energy,omitempty" json:"energy,omitempty"`
	RecycledContent map[string]any `yaml:"recycled_content,omitempty" json:"recycled_content,omitempty"`
	Remanufacture   map[string]any `yaml:"remanufacture,omitempty" json:"remanufacture,omitempty"`
}

// FieldNames returns the layer's field names in schema order.
func (l *SustainabilityLayer) FieldNames() []string {
	return []string{"mass", "energy", "recycled_content", "remanufacture"}
}

// Value returns the value for a field name. A zero mass counts as
// absent; physical components always have positive mass.
func (l *SustainabilityLayer) Value(name string) (any, bool) {
	switch name {
	case "mass":
		return l.Mass, l.Mass > 0
	case "energy":
		return l.Energy, l.Energy != nil
	case "recycled_content":
		return l.RecycledContent, l.RecycledContent != nil
	case "remanufacture":
		return l.Remanufacture, l.Remanufacture != nil
	default:
		return nil, false
	}
}

// ProvenanceLayer records signatures and traceability links.
type ProvenanceLayer struct {
	Signatures []map[string]any `yaml:"signatures" json:"signatures"`
	TraceLinks []string         `yaml:"trace_links,omitempty" json:"trace_links,omitempty"`
}

// FieldNames returns the layer's field names in schema order.
func (l *ProvenanceLayer) FieldNames() []string {
	return []string{"signatures", "trace_links"}
}

// Value returns the value for a field name.
func (l *ProvenanceLayer) Value(name string) (any, bool) {
	switch name {
	case "signatures":
		return l.Signatures, l.Signatures != nil
	case "trace_links":
		return l.TraceLinks, l.TraceLinks != nil
	default:
		return nil, false
	}
}
