package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nmis-digital/dppmap/config"
	"github.com/nmis-digital/dppmap/schema"
)

func TestDefaultConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "ontology_data/dictionary_assets/**/*.xml", cfg.Ontology.DictionaryGlob)
	assert.Equal(t, "json", cfg.Export.Format)
	assert.Equal(t, 0.3, cfg.Matcher.MinConfidence)
	assert.Equal(t, 0.85, cfg.Matcher.HintConfidence)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr string
	}{
		{
			name:    "missing dictionary glob",
			mutate:  func(c *config.Config) { c.Ontology.DictionaryGlob = "" },
			wantErr: "dictionary_glob",
		},
		{
			name:    "min confidence out of range",
			mutate:  func(c *config.Config) { c.Matcher.MinConfidence = 1.5 },
			wantErr: "min_confidence",
		},
		{
			name: "hint below floor",
			mutate: func(c *config.Config) {
				c.Matcher.MinConfidence = 0.9
				c.Matcher.HintConfidence = 0.85
			},
			wantErr: "hint_confidence",
		},
		{
			name:    "boosted cap at or above exact tier",
			mutate:  func(c *config.Config) { c.Matcher.MaxHintConfidence = 1.0 },
			wantErr: "max_hint_confidence",
		},
		{
			name:    "lexical band reaching into hint tier",
			mutate:  func(c *config.Config) { c.Matcher.LexicalScale = 0.95 },
			wantErr: "lexical_scale",
		},
		{
			name:    "boost cap below hint tier",
			mutate:  func(c *config.Config) { c.Matcher.MaxHintConfidence = 0.8 },
			wantErr: "max_hint_confidence",
		},
		{
			name:    "unknown export format",
			mutate:  func(c *config.Config) { c.Export.Format = "csv" },
			wantErr: "export.format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dppmap.yaml")
	content := `ontology:
  dictionary_glob: "dicts/**/*.xml"
matcher:
  min_confidence: 0.4
export:
  format: jsonld
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := config.LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "dicts/**/*.xml", cfg.Ontology.DictionaryGlob)
	assert.Equal(t, 0.4, cfg.Matcher.MinConfidence)
	assert.Equal(t, "jsonld", cfg.Export.Format)

	// Unspecified values keep their defaults.
	assert.Equal(t, 0.85, cfg.Matcher.HintConfidence)
	assert.Equal(t, "ontology_data/units.yaml", cfg.Ontology.UnitGlob)
}

func TestLoadFromFileErrors(t *testing.T) {
	_, err := config.LoadFromFile("/nonexistent/dppmap.yaml")
	require.Error(t, err)

	dir := t.TempDir()
	path := filepath.Join(dir, "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{{not yaml"), 0644))
	_, err = config.LoadFromFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse")
}

func TestSaveAndReloadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "dppmap.yaml")

	cfg := config.DefaultConfig()
	cfg.Export.Format = "yaml"
	cfg.Schemas.OverlayGlob = "schemas/*.yaml"
	require.NoError(t, cfg.SaveToFile(path))

	loaded, err := config.LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestConfigMerge(t *testing.T) {
	base := config.DefaultConfig()
	base.Merge(&config.Config{
		Ontology: config.OntologyConfig{DictionaryGlob: "custom/**/*.xml"},
		Export:   config.ExportConfig{Format: "jsonld"},
	})

	assert.Equal(t, "custom/**/*.xml", base.Ontology.DictionaryGlob)
	assert.Equal(t, "jsonld", base.Export.Format)

	// Zero values in the overlay leave the base untouched.
	assert.Equal(t, "ontology_data/units.yaml", base.Ontology.UnitGlob)
	assert.Equal(t, 0.3, base.Matcher.MinConfidence)

	base.Merge(nil)
	assert.Equal(t, 0.3, base.Matcher.MinConfidence)
}

func TestRegisterSchemaOverlays(t *testing.T) {
	dir := t.TempDir()
	overlay := `definitions:
  - layer: identity
    version: 2
    fields:
      - name: global_ids
        required: true
        kind: mapping
      - name: make_model
        required: true
        kind: mapping
      - name: conformity
        required: true
        kind: sequence
      - name: battery_chemistry
        kind: enum
        allowed: ["LFP", "NMC", "NCA"]
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "identity_v2.yaml"), []byte(overlay), 0644))

	reg := schema.NewDefaultRegistry()
	require.NoError(t, config.RegisterSchemaOverlays(reg, filepath.Join(dir, "*.yaml"), nil))

	def, err := reg.Get(schema.LayerIdentity, 2)
	require.NoError(t, err)
	field, ok := def.FieldByName("battery_chemistry")
	require.True(t, ok)
	assert.Equal(t, schema.KindEnum, field.Kind)
	assert.Equal(t, []string{"LFP", "NMC", "NCA"}, field.Allowed)

	// Version 0 now resolves to the overlay.
	def, err = reg.Get(schema.LayerIdentity, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, def.Version)

	t.Run("duplicate version fails", func(t *testing.T) {
		err := config.RegisterSchemaOverlays(reg, filepath.Join(dir, "*.yaml"), nil)
		require.ErrorIs(t, err, schema.ErrDuplicateSchema)
	})

	t.Run("malformed overlay fails", func(t *testing.T) {
		bad := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(bad, "bad.yaml"), []byte("definitions: [not: {a"), 0644))
		err := config.RegisterSchemaOverlays(schema.NewDefaultRegistry(), filepath.Join(bad, "*.yaml"), nil)
		require.Error(t, err)
	})

	t.Run("empty glob is a no-op", func(t *testing.T) {
		require.NoError(t, config.RegisterSchemaOverlays(schema.NewDefaultRegistry(), "", nil))
	})
}
