package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/nmis-digital/dppmap/config"
	"github.com/nmis-digital/dppmap/export"
	"github.com/nmis-digital/dppmap/mapping"
	"github.com/nmis-digital/dppmap/ontology"
	"github.com/nmis-digital/dppmap/passport"
	"github.com/nmis-digital/dppmap/schema"
)

// indexCmd builds the ontology index and reports its size, or searches
// it for a term.
func indexCmd(logLevel *string) *cobra.Command {
	var search string

	cmd := &cobra.Command{
		Use:   "index",
		Short: "Build the ontology index from configured dictionary sources",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := setupLogger(*logLevel)

			cfg, err := loadConfig(logger)
			if err != nil {
				return err
			}

			ix, err := buildIndex(cfg, logger)
			if err != nil {
				return err
			}

			if search == "" {
				fmt.Printf("indexed %d terms\n", ix.Len())
				return nil
			}

			for _, term := range ix.SearchByTerm(search) {
				fmt.Printf("%s\t%s\n", term.Code, term.PreferredName)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "search the index for a term instead of printing stats")
	return cmd
}

// mapCmd builds (and optionally applies) a mapping plan for a source
// records file.
func mapCmd(logLevel *string) *cobra.Command {
	var (
		layer   string
		version int
		apply   bool
		partial bool
	)

	cmd := &cobra.Command{
		Use:   "map <records.yaml>",
		Short: "Build a mapping plan from source records to a layer schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := setupLogger(*logLevel)

			cfg, err := loadConfig(logger)
			if err != nil {
				return err
			}

			reg, err := loadRegistry(cfg, logger)
			if err != nil {
				return err
			}
			def, err := reg.Get(layer, version)
			if err != nil {
				return err
			}

			ix, err := buildIndex(cfg, logger)
			if err != nil {
				return err
			}

			records, err := readRecords(args[0])
			if err != nil {
				return err
			}

			builder := mapping.NewBuilder(mapping.NewMatcher(ix, cfg.Matcher))
			plan := builder.BuildPlan(records, def)

			if !apply {
				return printYAML(plan)
			}

			inst, err := mapping.ApplyPlan(plan, records, def, partial)
			if err != nil {
				return err
			}
			return printYAML(passport.RecordToMap(inst))
		},
	}

	cmd.Flags().StringVar(&layer, "layer", "", "target layer name (required)")
	cmd.Flags().IntVar(&version, "schema-version", 0, "schema version (0 = highest)")
	cmd.Flags().BoolVar(&apply, "apply", false, "apply the plan and print the layer instance")
	cmd.Flags().BoolVar(&partial, "partial", false, "accept an instance with unmatched required fields")
	_ = cmd.MarkFlagRequired("layer")
	return cmd
}

// validateCmd validates a layer instance file against its schema.
func validateCmd(logLevel *string) *cobra.Command {
	var (
		layer   string
		version int
	)

	cmd := &cobra.Command{
		Use:   "validate <instance.yaml>",
		Short: "Validate a layer instance against its schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := setupLogger(*logLevel)

			cfg, err := loadConfig(logger)
			if err != nil {
				return err
			}

			reg, err := loadRegistry(cfg, logger)
			if err != nil {
				return err
			}
			def, err := reg.Get(layer, version)
			if err != nil {
				return err
			}

			inst, err := readRecords(args[0])
			if err != nil {
				return err
			}

			report := schema.Validate(inst, def)
			if err := printYAML(report); err != nil {
				return err
			}
			if !report.Valid() {
				return fmt.Errorf("%d violation(s)", len(report.Violations))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&layer, "layer", "", "layer name (required)")
	cmd.Flags().IntVar(&version, "schema-version", 0, "schema version (0 = highest)")
	_ = cmd.MarkFlagRequired("layer")
	return cmd
}

// exportCmd serializes a passport file to an interchange format.
func exportCmd(logLevel *string) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "export <passport.yaml>",
		Short: "Export a passport to JSON, JSON-LD, or YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := setupLogger(*logLevel)

			cfg, err := loadConfig(logger)
			if err != nil {
				return err
			}
			if format == "" {
				format = cfg.Export.Format
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read passport: %w", err)
			}

			var p passport.Passport
			if err := yaml.Unmarshal(data, &p); err != nil {
				return fmt.Errorf("parse passport: %w", err)
			}

			out, err := export.NewExporter().Export(&p, export.Format(format))
			if err != nil {
				return err
			}
			fmt.Println(out)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "output format (json, jsonld, yaml); defaults to config")
	return cmd
}

// buildIndex constructs the ontology index from the configured globs.
func buildIndex(cfg *config.Config, logger *slog.Logger) (*ontology.Index, error) {
	return ontology.NewBuilder(logger).BuildFromGlobs(cfg.Ontology.DictionaryGlob, cfg.Ontology.UnitGlob)
}

// loadRegistry returns the default schema registry with any configured
// overlays applied.
func loadRegistry(cfg *config.Config, logger *slog.Logger) (*schema.Registry, error) {
	reg := schema.NewDefaultRegistry()
	if err := config.RegisterSchemaOverlays(reg, cfg.Schemas.OverlayGlob, logger); err != nil {
		return nil, err
	}
	return reg, nil
}

// readRecords reads a YAML file of field-name/value pairs into an
// ordered record (fields sorted by name).
func readRecords(path string) (*schema.OrderedRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read records: %w", err)
	}
	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse records: %w", err)
	}
	return schema.RecordFromMap(m), nil
}

// printYAML marshals a value to YAML on stdout.
func printYAML(v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return err
	}
	fmt.Print(string(data))
	return nil
}
