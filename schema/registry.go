package schema

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// Registry misuse errors. Both indicate programmer error and are
// surfaced immediately rather than recovered from.
var (
	ErrDuplicateSchema = errors.New("schema already registered")
	ErrSchemaNotFound  = errors.New("schema not found")
)

// Registry holds one schema definition per (layer, version).
// Registration is append-only: definitions are never edited in place,
// so mapping plans built against a version stay valid. Pass registry
// instances explicitly to the components that need them; there is no
// package-global registry.
type Registry struct {
	mu          sync.RWMutex
	definitions map[string]map[int]*Definition // layer -> version -> definition
}

// NewRegistry creates an empty schema registry.
func NewRegistry() *Registry {
	return &Registry{
		definitions: make(map[string]map[int]*Definition),
	}
}

// NewDefaultRegistry creates a registry pre-loaded with the built-in
// passport layer schemas at version 1.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	for _, def := range BuiltinDefinitions() {
		// Built-ins are statically valid; Register can only fail on
		// duplicates, which BuiltinDefinitions never produces.
		if err := r.Register(def); err != nil {
			panic(fmt.Sprintf("register builtin schema %s: %v", def.Layer, err))
		}
	}
	return r
}

// Register adds a definition. Fails with ErrDuplicateSchema if the
// (layer, version) pair is already present, or with a validation
// error if the definition itself is malformed.
func (r *Registry) Register(def *Definition) error {
	if err := def.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	versions, ok := r.definitions[def.Layer]
	if !ok {
		versions = make(map[int]*Definition)
		r.definitions[def.Layer] = versions
	}
	if _, exists := versions[def.Version]; exists {
		return fmt.Errorf("%w: %s v%d", ErrDuplicateSchema, def.Layer, def.Version)
	}
	versions[def.Version] = def
	return nil
}

// Get returns the definition for a layer. Version 0 selects the
// highest registered version. Fails with ErrSchemaNotFound when the
// layer (or the specific version) is not registered.
func (r *Registry) Get(layer string, version int) (*Definition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	versions, ok := r.definitions[layer]
	if !ok || len(versions) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrSchemaNotFound, layer)
	}

	if version == 0 {
		highest := 0
		for v := range versions {
			if v > highest {
				highest = v
			}
		}
		return versions[highest], nil
	}

	def, ok := versions[version]
	if !ok {
		return nil, fmt.Errorf("%w: %s v%d", ErrSchemaNotFound, layer, version)
	}
	return def, nil
}

// ListFields returns the ordered fields of a layer schema. Version 0
// selects the highest registered version.
func (r *Registry) ListFields(layer string, version int) ([]Field, error) {
	def, err := r.Get(layer, version)
	if err != nil {
		return nil, err
	}
	fields := make([]Field, len(def.Fields))
	copy(fields, def.Fields)
	return fields, nil
}

// Layers returns the names of all registered layers, sorted.
func (r *Registry) Layers() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	layers := make([]string, 0, len(r.definitions))
	for layer := range r.definitions {
		layers = append(layers, layer)
	}
	sort.Strings(layers)
	return layers
}
