// Package main provides the dppmap binary entry point. dppmap maps
// heterogeneous business data onto standardized Digital Product
// Passport layers using an ontology-backed semantic matcher.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/nmis-digital/dppmap/config"
)

const (
	Version = "0.1.0"
	appName = "dppmap"
)

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var logLevel string

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Digital Product Passport mapping engine",
		Long: `dppmap maps proprietary business data (part attributes, lifecycle
events, compliance records) onto standardized Digital Product Passport
layers.

It provides:
- Ontology index construction from classification dictionaries
- Confidence-scored semantic mapping of source fields to layer schemas
- Structural validation of layer instances
- Passport export to JSON, JSON-LD, and YAML`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	cmd.AddCommand(
		indexCmd(&logLevel),
		mapCmd(&logLevel),
		validateCmd(&logLevel),
		exportCmd(&logLevel),
	)

	return cmd
}

// setupLogger configures the process logger at the requested level.
func setupLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(logger)
	return logger
}

// loadConfig runs the layered configuration loader.
func loadConfig(logger *slog.Logger) (*config.Config, error) {
	cfg, err := config.NewLoader(logger).Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
