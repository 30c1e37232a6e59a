// Package config provides configuration loading and management for
// the dppmap engine.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/nmis-digital/dppmap/mapping"
)

// Config represents the complete dppmap configuration.
type Config struct {
	Ontology OntologyConfig        `yaml:"ontology"`
	Matcher  mapping.MatcherConfig `yaml:"matcher"`
	Schemas  SchemasConfig         `yaml:"schemas"`
	Export   ExportConfig          `yaml:"export"`
}

// OntologyConfig locates the classification and unit dictionaries.
type OntologyConfig struct {
	// DictionaryGlob matches classification dictionary files
	// (doublestar syntax, e.g. "ontology/dictionary_assets/**/*.xml").
	DictionaryGlob string `yaml:"dictionary_glob"`

	// UnitGlob matches unit dictionary files.
	UnitGlob string `yaml:"unit_glob"`
}

// SchemasConfig locates schema overlay definitions registered on top
// of the built-in layer schemas.
type SchemasConfig struct {
	// OverlayGlob matches YAML schema definition files.
	OverlayGlob string `yaml:"overlay_glob"`
}

// ExportConfig configures passport export defaults.
type ExportConfig struct {
	// Format is the default export format (json, jsonld, yaml).
	Format string `yaml:"format"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Ontology: OntologyConfig{
			DictionaryGlob: "ontology_data/dictionary_assets/**/*.xml",
			UnitGlob:       "ontology_data/units.yaml",
		},
		Matcher: mapping.DefaultMatcherConfig(),
		Export: ExportConfig{
			Format: "json",
		},
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Ontology.DictionaryGlob == "" {
		return fmt.Errorf("ontology.dictionary_glob is required")
	}
	if c.Matcher.MinConfidence < 0 || c.Matcher.MinConfidence > 1 {
		return fmt.Errorf("matcher.min_confidence must be between 0 and 1")
	}
	if c.Matcher.HintConfidence <= c.Matcher.MinConfidence {
		return fmt.Errorf("matcher.hint_confidence must exceed matcher.min_confidence")
	}
	if c.Matcher.MaxHintConfidence >= 1 {
		return fmt.Errorf("matcher.max_hint_confidence must stay below 1.0")
	}
	if c.Matcher.MaxHintConfidence < c.Matcher.HintConfidence {
		return fmt.Errorf("matcher.max_hint_confidence must not undercut matcher.hint_confidence")
	}
	if c.Matcher.LexicalScale >= c.Matcher.HintConfidence {
		return fmt.Errorf("matcher.lexical_scale must stay below matcher.hint_confidence")
	}
	switch c.Export.Format {
	case "json", "jsonld", "yaml":
	default:
		return fmt.Errorf("export.format must be one of json, jsonld, yaml")
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file.
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence
// for non-zero values).
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	if other.Ontology.DictionaryGlob != "" {
		c.Ontology.DictionaryGlob = other.Ontology.DictionaryGlob
	}
	if other.Ontology.UnitGlob != "" {
		c.Ontology.UnitGlob = other.Ontology.UnitGlob
	}

	if other.Matcher.MinConfidence != 0 {
		c.Matcher.MinConfidence = other.Matcher.MinConfidence
	}
	if other.Matcher.HintConfidence != 0 {
		c.Matcher.HintConfidence = other.Matcher.HintConfidence
	}
	if other.Matcher.UnitBoost != 0 {
		c.Matcher.UnitBoost = other.Matcher.UnitBoost
	}
	if other.Matcher.MaxHintConfidence != 0 {
		c.Matcher.MaxHintConfidence = other.Matcher.MaxHintConfidence
	}
	if other.Matcher.LexicalScale != 0 {
		c.Matcher.LexicalScale = other.Matcher.LexicalScale
	}

	if other.Schemas.OverlayGlob != "" {
		c.Schemas.OverlayGlob = other.Schemas.OverlayGlob
	}

	if other.Export.Format != "" {
		c.Export.Format = other.Export.Format
	}
}
