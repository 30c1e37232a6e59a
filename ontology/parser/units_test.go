package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYAMLParseUnits(t *testing.T) {
	content := []byte(`units:
  - code: UNIT-NM
    symbol: "Nm"
    name: newton metre
    si_factor: 1.0
    aliases: ["N·m"]
  - code: UNIT-KW
    symbol: "kW"
    name: kilowatt
    si_factor: 1000
`)

	entries, err := NewYAMLUnitParser().ParseUnits("units.yaml", content)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "UNIT-NM", entries[0].Code)
	assert.Equal(t, "Nm", entries[0].Symbol)
	assert.Equal(t, []string{"N·m"}, entries[0].Aliases)
	assert.Equal(t, 1000.0, entries[1].SIFactor)
}

func TestYAMLParseUnitsErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"not yaml", "units: [", "parse"},
		{"missing code", "units:\n  - symbol: Nm\n", "missing code"},
		{"missing symbol", "units:\n  - code: U1\n", "missing symbol"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewYAMLUnitParser().ParseUnits("units.yaml", []byte(tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestRegistryParserSelection(t *testing.T) {
	r := NewRegistry()

	t.Run("xml file gets dictionary parser", func(t *testing.T) {
		assert.NotNil(t, r.DictionaryFor("dictionary_assets/07-en.xml"))
	})

	t.Run("yaml file gets unit parser", func(t *testing.T) {
		assert.NotNil(t, r.UnitsFor("units.yaml"))
		assert.NotNil(t, r.UnitsFor("units.yml"))
	})

	t.Run("no dictionary parser for yaml", func(t *testing.T) {
		assert.Nil(t, r.DictionaryFor("terms.yaml"))
	})

	t.Run("parse with unknown type fails", func(t *testing.T) {
		_, err := r.ParseTerms("terms.csv", []byte("a,b"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no dictionary parser")

		_, err = r.ParseUnits("units.csv", []byte("a,b"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no unit parser")
	})
}
