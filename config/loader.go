package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/nmis-digital/dppmap/schema"
)

const (
	// ProjectConfigFile is the name of the project-level config file.
	ProjectConfigFile = "dppmap.yaml"
	// UserConfigDir is the directory for user-level config.
	UserConfigDir = ".config/dppmap"
	// UserConfigFile is the name of the user-level config file.
	UserConfigFile = "config.yaml"
)

// Loader handles configuration loading with layered precedence.
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a new configuration loader.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger}
}

// Load loads configuration with layered precedence:
// 1. Default config
// 2. User config (~/.config/dppmap/config.yaml)
// 3. Project config (dppmap.yaml in current or parent directories)
func (l *Loader) Load() (*Config, error) {
	config := DefaultConfig()

	userConfigPath := l.userConfigPath()
	if userConfig, err := LoadFromFile(userConfigPath); err == nil {
		l.logger.Debug("Loaded user config", slog.String("path", userConfigPath))
		config.Merge(userConfig)
	} else if !os.IsNotExist(err) {
		l.logger.Warn("Failed to load user config", slog.String("path", userConfigPath), slog.String("error", err.Error()))
	}

	projectConfigPath := l.findProjectConfig()
	if projectConfigPath != "" {
		if projectConfig, err := LoadFromFile(projectConfigPath); err == nil {
			l.logger.Debug("Loaded project config", slog.String("path", projectConfigPath))
			config.Merge(projectConfig)
		} else {
			l.logger.Warn("Failed to load project config", slog.String("path", projectConfigPath), slog.String("error", err.Error()))
		}
	} else {
		l.logger.Debug("No project config found")
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// userConfigPath returns the path to the user config file.
func (l *Loader) userConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, UserConfigDir, UserConfigFile)
}

// findProjectConfig searches for dppmap.yaml in current and parent
// directories.
func (l *Loader) findProjectConfig() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	dir := cwd
	for {
		configPath := filepath.Join(dir, ProjectConfigFile)
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

// schemaOverlay is the YAML shape of a schema overlay file: one or
// more layer definitions.
type schemaOverlay struct {
	Definitions []*schema.Definition `yaml:"definitions"`
}

// RegisterSchemaOverlays loads every schema overlay file matched by
// the glob and registers its definitions. Files are processed in
// sorted path order; a duplicate (layer, version) anywhere fails the
// whole load.
func RegisterSchemaOverlays(reg *schema.Registry, overlayGlob string, logger *slog.Logger) error {
	if overlayGlob == "" {
		return nil
	}
	if logger == nil {
		logger = slog.Default()
	}

	paths, err := doublestar.FilepathGlob(overlayGlob)
	if err != nil {
		return fmt.Errorf("schema overlay glob %q: %w", overlayGlob, err)
	}
	sort.Strings(paths)

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read schema overlay %s: %w", path, err)
		}

		var overlay schemaOverlay
		if err := yaml.Unmarshal(data, &overlay); err != nil {
			return fmt.Errorf("parse schema overlay %s: %w", path, err)
		}

		for _, def := range overlay.Definitions {
			if err := reg.Register(def); err != nil {
				return fmt.Errorf("register schema from %s: %w", path, err)
			}
			logger.Debug("Registered schema overlay",
				slog.String("layer", def.Layer),
				slog.Int("version", def.Version),
				slog.String("path", path))
		}
	}

	return nil
}
