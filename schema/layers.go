package schema

// Layer names of the built-in Digital Product Passport schemas.
const (
	LayerIdentity       = "identity"
	LayerStructure      = "structure"
	LayerLifecycle      = "lifecycle"
	LayerRisk           = "risk"
	LayerSustainability = "sustainability"
	LayerProvenance     = "provenance"
)

// BuiltinDefinitions returns version 1 of the six standard passport
// layer schemas. Built-ins carry no ontology hints; deployments bind
// hints to their classification dictionary via schema overlay files.
func BuiltinDefinitions() []*Definition {
	return []*Definition{
		{
			Layer:   LayerIdentity,
			Version: 1,
			Fields: []Field{
				{Name: "global_ids", Required: true, Kind: KindMapping},
				{Name: "make_model", Required: true, Kind: KindMapping},
				{Name: "ownership", Kind: KindMapping},
				{Name: "conformity", Required: true, Kind: KindSequence},
			},
		},
		{
			Layer:   LayerStructure,
			Version: 1,
			Fields: []Field{
				{Name: "hierarchy", Required: true, Kind: KindMapping},
				{Name: "parts", Required: true, Kind: KindSequence},
				{Name: "interfaces", Kind: KindSequence},
				{Name: "materials", Kind: KindSequence},
				{Name: "bom_refs", Kind: KindSequence},
			},
		},
		{
			Layer:   LayerLifecycle,
			Version: 1,
			Fields: []Field{
				{Name: "manufacture", Required: true, Kind: KindMapping},
				{Name: "use", Kind: KindMapping},
				{Name: "serviceability", Kind: KindMapping},
				{Name: "events", Kind: KindSequence},
				{Name: "end_of_life", Kind: KindMapping},
			},
		},
		{
			Layer:   LayerRisk,
			Version: 1,
			Fields: []Field{
				{Name: "criticality", Required: true, Kind: KindMapping},
				{Name: "fmea", Kind: KindSequence},
				{Name: "security", Kind: KindMapping},
			},
		},
		{
			Layer:   LayerSustainability,
			Version: 1,
			Fields: []Field{
				{Name: "mass", Required: true, Kind: KindNumber},
				{Name: "energy", Kind: KindMapping},
				{Name: "recycled_content", Kind: KindMapping},
				{Name: "remanufacture", Kind: KindMapping},
			},
		},
		{
			Layer:   LayerProvenance,
			Version: 1,
			Fields: []Field{
				{Name: "signatures", Required: true, Kind: KindSequence},
				{Name: "trace_links", Kind: KindSequence},
			},
		},
	}
}
