package passport

import (
	"sort"

	"github.com/nmis-digital/dppmap/ontology"
)

// Category classifies a part into one of the universal, domain-neutral
// part classes.
type Category string

// The standard part categories.
const (
	CategoryPowerConversion Category = "PowerConversion"
	CategoryEnergyStorage   Category = "EnergyStorage"
	CategoryActuator        Category = "Actuator"
	CategorySensor          Category = "Sensor"
	CategoryControlUnit     Category = "ControlUnit"
	CategoryUserInterface   Category = "UserInterface"
	CategoryThermal         Category = "Thermal"
	CategoryFluidics        Category = "Fluidics"
	CategoryStructural      Category = "Structural"
	CategoryTransmission    Category = "Transmission"
	CategoryProtection      Category = "Protection"
	CategoryConnectivity    Category = "Connectivity"
	CategorySoftwareModule  Category = "SoftwareModule"
	CategoryConsumable      Category = "Consumable"
	CategoryFastener        Category = "Fastener"
)

// CategoryProperties maps each part category to its standard typed
// properties (property name to kind name). Parts may carry additional
// free-form properties beyond these.
var CategoryProperties = map[Category]map[string]string{
	CategoryPowerConversion: {
		"input_voltage": "number", "output_voltage": "number",
		"power_rating": "number", "efficiency": "number",
	},
	CategoryEnergyStorage: {
		"capacity": "number", "voltage": "number",
		"chemistry": "text", "recharge_cycles": "number",
	},
	CategoryActuator: {
		"torque": "number", "speed": "number", "duty_cycle": "number",
		"voltage": "number", "actuation_type": "text",
	},
	CategorySensor: {
		"sensor_type": "text", "range_min": "number", "range_max": "number",
		"accuracy": "number", "drift": "number", "response_time": "number",
	},
	CategoryControlUnit: {
		"cpu_type": "text", "memory": "number",
		"firmware_version": "text", "io_count": "number",
	},
	CategoryUserInterface: {
		"ui_type": "text", "display_size": "number",
		"input_methods": "sequence", "indicator_count": "number",
	},
	CategoryThermal: {
		"power": "number", "delta_t": "number", "airflow": "number",
	},
	CategoryFluidics: {
		"flow_rate": "number", "pressure": "number",
		"fluid_type": "text", "volume": "number",
	},
	CategoryStructural: {
		"material": "text", "mass": "number",
		"dimensions": "mapping", "load_rating": "number",
	},
	CategoryTransmission: {
		"torque_rating": "number", "speed_rating": "number",
		"transmission_type": "text",
	},
	CategoryProtection: {
		"protection_type": "text", "rating": "number", "response_time": "number",
	},
	CategoryConnectivity: {
		"interface_type": "text", "connector_standard": "text", "pin_count": "number",
	},
	CategorySoftwareModule: {
		"version": "text", "language": "text",
		"license": "text", "checksums": "mapping",
	},
	CategoryConsumable: {
		"consumable_type": "text", "capacity": "number", "replacement_interval": "text",
	},
	CategoryFastener: {
		"fastener_type": "text", "material": "text", "diameter": "number",
		"length": "number", "strength": "number",
	},
}

// OntologyBinding records a part's link to an external classification
// ontology: its categorization classes and the concrete item classes
// admissible under them.
type OntologyBinding struct {
	Ontology    string         `yaml:"ontology" json:"ontology"`
	ClassIDs    []string       `yaml:"class_ids" json:"class_ids"`
	CaseItemIDs []string       `yaml:"case_item_ids,omitempty" json:"case_item_ids,omitempty"`
	Metadata    map[string]any `yaml:"metadata,omitempty" json:"metadata,omitempty"`
}

// Part is one physical or logical component in the structure layer.
type Part struct {
	PartID     string         `yaml:"part_id" json:"part_id"`
	Name       string         `yaml:"name" json:"name"`
	Category   Category       `yaml:"category" json:"category"`
	Properties map[string]any `yaml:"properties,omitempty" json:"properties,omitempty"`

	bindings map[string]OntologyBinding
}

// NewPart creates a part in the given category.
func NewPart(partID, name string, category Category) *Part {
	return &Part{
		PartID:     partID,
		Name:       name,
		Category:   category,
		Properties: make(map[string]any),
	}
}

// BindOntology attaches a classification binding to the part,
// replacing any prior binding for the same ontology.
func (p *Part) BindOntology(binding OntologyBinding) {
	if p.bindings == nil {
		p.bindings = make(map[string]OntologyBinding)
	}
	p.bindings[binding.Ontology] = binding
}

// BindFromIndex builds and attaches a binding for the named ontology,
// collecting the admissible item classes for the given categorization
// classes from the index.
func (p *Part) BindFromIndex(ix *ontology.Index, ontologyName string, classIDs []string) {
	itemSet := make(map[string]struct{})
	for _, classID := range classIDs {
		for _, item := range ix.CaseItems(classID) {
			itemSet[item] = struct{}{}
		}
	}

	items := make([]string, 0, len(itemSet))
	for item := range itemSet {
		items = append(items, item)
	}
	sort.Strings(items)

	p.BindOntology(OntologyBinding{
		Ontology:    ontologyName,
		ClassIDs:    classIDs,
		CaseItemIDs: items,
	})
}

// Binding returns the part's binding for the named ontology.
func (p *Part) Binding(ontologyName string) (OntologyBinding, bool) {
	b, ok := p.bindings[ontologyName]
	return b, ok
}

// AllowedItemTypes returns the item class codes admissible for this
// part under the named ontology.
func (p *Part) AllowedItemTypes(ontologyName string) []string {
	b, ok := p.bindings[ontologyName]
	if !ok {
		return nil
	}
	out := make([]string, len(b.CaseItemIDs))
	copy(out, b.CaseItemIDs)
	return out
}

// ToMap exposes the part as plain nested mappings.
func (p *Part) ToMap() map[string]any {
	out := map[string]any{
		"part_id":  p.PartID,
		"name":     p.Name,
		"category": string(p.Category),
	}
	if len(p.Properties) > 0 {
		out["properties"] = p.Properties
	}
	if len(p.bindings) > 0 {
		bindings := make(map[string]any, len(p.bindings))
		for name, b := range p.bindings {
			bindings[name] = map[string]any{
				"class_ids":     b.ClassIDs,
				"case_item_ids": b.CaseItemIDs,
				"metadata":      b.Metadata,
			}
		}
		out["bindings"] = bindings
	}
	return out
}
