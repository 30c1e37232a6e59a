package passport_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nmis-digital/dppmap/ontology"
	"github.com/nmis-digital/dppmap/passport"
)

const actuatorDictXML = `<?xml version="1.0" encoding="UTF-8"?>
<ontology xmlns="http://www.eclass.eu/ontology">
  <CATEGORIZATIONCLASSType id="0173-101-ACTUATORS">
    <preferredname label="Actuators"/>
  </CATEGORIZATIONCLASSType>
  <CATEGORIZATIONCLASSType id="0173-101-MOTORS">
    <preferredname label="Motors"/>
  </CATEGORIZATIONCLASSType>
  <ITEMCLASSCASEOFType id="0173-1-SERVO">
    <preferredname label="Servo Motor"/>
    <iscaseof>
      <classref ref="0173-101-ACTUATORS"/>
      <classref ref="0173-101-MOTORS"/>
    </iscaseof>
  </ITEMCLASSCASEOFType>
  <ITEMCLASSCASEOFType id="0173-1-STEPPER">
    <preferredname label="Stepper Motor"/>
    <iscaseof>
      <classref ref="0173-101-MOTORS"/>
    </iscaseof>
  </ITEMCLASSCASEOFType>
</ontology>`

func actuatorIndex(t *testing.T) *ontology.Index {
	t.Helper()
	dir := t.TempDir()
	dictPath := filepath.Join(dir, "dictionary.xml")
	require.NoError(t, os.WriteFile(dictPath, []byte(actuatorDictXML), 0644))

	ix, err := ontology.NewBuilder(nil).Build([]string{dictPath}, nil)
	require.NoError(t, err)
	return ix
}

func TestCategoryProperties(t *testing.T) {
	// Every category carries a property table.
	categories := []passport.Category{
		passport.CategoryPowerConversion, passport.CategoryEnergyStorage,
		passport.CategoryActuator, passport.CategorySensor,
		passport.CategoryControlUnit, passport.CategoryUserInterface,
		passport.CategoryThermal, passport.CategoryFluidics,
		passport.CategoryStructural, passport.CategoryTransmission,
		passport.CategoryProtection, passport.CategoryConnectivity,
		passport.CategorySoftwareModule, passport.CategoryConsumable,
		passport.CategoryFastener,
	}
	for _, c := range categories {
		assert.NotEmpty(t, passport.CategoryProperties[c], "category %s", c)
	}

	assert.Equal(t, "number", passport.CategoryProperties[passport.CategoryActuator]["torque"])
	assert.Equal(t, "text", passport.CategoryProperties[passport.CategoryEnergyStorage]["chemistry"])
}

func TestPartBindOntology(t *testing.T) {
	p := passport.NewPart("P-001", "Drive Servo", passport.CategoryActuator)

	_, ok := p.Binding("eclass")
	assert.False(t, ok)
	assert.Nil(t, p.AllowedItemTypes("eclass"))

	p.BindOntology(passport.OntologyBinding{
		Ontology:    "eclass",
		ClassIDs:    []string{"0173-101-ACTUATORS"},
		CaseItemIDs: []string{"0173-1-SERVO"},
	})

	b, ok := p.Binding("eclass")
	require.True(t, ok)
	assert.Equal(t, []string{"0173-101-ACTUATORS"}, b.ClassIDs)

	// Rebinding the same ontology replaces the prior binding.
	p.BindOntology(passport.OntologyBinding{
		Ontology: "eclass",
		ClassIDs: []string{"0173-101-MOTORS"},
	})
	b, ok = p.Binding("eclass")
	require.True(t, ok)
	assert.Equal(t, []string{"0173-101-MOTORS"}, b.ClassIDs)
}

func TestPartBindFromIndex(t *testing.T) {
	ix := actuatorIndex(t)
	p := passport.NewPart("P-001", "Drive Servo", passport.CategoryActuator)

	t.Run("single class", func(t *testing.T) {
		p.BindFromIndex(ix, "eclass", []string{"0173-101-ACTUATORS"})
		assert.Equal(t, []string{"0173-1-SERVO"}, p.AllowedItemTypes("eclass"))
	})

	t.Run("classes union without duplicates", func(t *testing.T) {
		p.BindFromIndex(ix, "eclass", []string{"0173-101-ACTUATORS", "0173-101-MOTORS"})
		assert.Equal(t, []string{"0173-1-SERVO", "0173-1-STEPPER"}, p.AllowedItemTypes("eclass"))
	})

	t.Run("unknown class yields empty", func(t *testing.T) {
		p.BindFromIndex(ix, "eclass", []string{"0173-101-NOPE"})
		assert.Empty(t, p.AllowedItemTypes("eclass"))
	})
}

func TestPartToMap(t *testing.T) {
	p := passport.NewPart("P-001", "Drive Servo", passport.CategoryActuator)
	p.Properties["torque"] = 2.1
	p.BindOntology(passport.OntologyBinding{
		Ontology:    "eclass",
		ClassIDs:    []string{"0173-101-ACTUATORS"},
		CaseItemIDs: []string{"0173-1-SERVO"},
	})

	out := p.ToMap()
	assert.Equal(t, "P-001", out["part_id"])
	assert.Equal(t, "Drive Servo", out["name"])
	assert.Equal(t, "Actuator", out["category"])
	assert.Equal(t, map[string]any{"torque": 2.1}, out["properties"])

	bindings, ok := out["bindings"].(map[string]any)
	require.True(t, ok)
	eclass, ok := bindings["eclass"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, []string{"0173-1-SERVO"}, eclass["case_item_ids"])
}
