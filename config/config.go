// Package config loads the appsyncgen configuration file: where the schema
// lives, what package to generate into, the override tables, and the
// split-build emit flags.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"

	"github.com/graphsmith/appsync/registry"
	"github.com/graphsmith/appsync/schema"
)

// DefaultFilenames are the config filenames searched by FindConfigFile, in
// order.
var DefaultFilenames = []string{".appsyncgen.yml", "appsyncgen.yml", ".appsyncgen.yaml", "appsyncgen.yaml"}

// Config is the appsyncgen config file.
type Config struct {
	// Schema is the path of the GraphQL schema document.
	Schema string `yaml:"schema"`

	// Package is the Go package name of the generated file.
	Package string `yaml:"package,omitempty"`

	// Output is the path of the generated file.
	Output string `yaml:"output,omitempty"`

	Emit      EmitConfig        `yaml:"emit,omitempty"`
	Overrides *schema.Overrides `yaml:"overrides,omitempty"`
}

// EmitConfig selects the split-build variant: a shared type library
// (types_only) or a dispatcher unit importing its types from elsewhere
// (operations_only). The two intents are mutually exclusive.
type EmitConfig struct {
	TypesOnly      bool `yaml:"types_only,omitempty"`
	OperationsOnly bool `yaml:"operations_only,omitempty"`

	// ModelImport is the import path of the externally generated type
	// library; required with operations_only.
	ModelImport string `yaml:"model_import,omitempty"`
}

// FindConfigFile walks up from dir looking for one of DefaultFilenames.
func FindConfigFile(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("unable to resolve config dir: %w", err)
	}
	for {
		for _, name := range DefaultFilenames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no %s found", DefaultFilenames[0])
		}
		dir = parent
	}
}

// Load reads and validates the config file. Environment variables in the
// file are expanded before parsing.
func Load(configFilename string) (*Config, error) {
	content, err := os.ReadFile(configFilename)
	if err != nil {
		return nil, fmt.Errorf("unable to read config: %w", err)
	}

	var c Config
	dec := yaml.NewDecoder(bytes.NewReader([]byte(os.ExpandEnv(string(content)))), yaml.DisallowUnknownField())
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("unable to parse config: %w", err)
	}

	if c.Schema == "" {
		return nil, errors.New("'schema' is required")
	}
	if c.Emit.TypesOnly && c.Emit.OperationsOnly {
		return nil, errors.New("'emit.types_only' and 'emit.operations_only' both set; a unit either shares types or imports them, not both")
	}
	if c.Emit.OperationsOnly && c.Emit.ModelImport == "" {
		return nil, errors.New("'emit.operations_only' requires 'emit.model_import' to name the shared type library")
	}
	if c.Package == "" {
		c.Package = "model"
	}
	if c.Output == "" {
		c.Output = "model_gen.go"
	}

	// Relative paths are resolved against the config file's directory.
	if !filepath.IsAbs(c.Schema) {
		c.Schema = filepath.Join(filepath.Dir(configFilename), c.Schema)
	}

	return &c, nil
}

// LoadModel parses the schema document named by the config, applying its
// override tables.
func (c *Config) LoadModel() (*schema.Model, error) {
	source, err := os.ReadFile(c.Schema)
	if err != nil {
		return nil, fmt.Errorf("unable to read schema: %w", err)
	}
	model, err := schema.Parse(string(source), c.Overrides)
	if err != nil {
		return nil, err
	}
	return model, nil
}

// Mode maps the emit flags onto a registry mode.
func (c *Config) Mode() registry.Mode {
	switch {
	case c.Emit.TypesOnly:
		return registry.TypesOnly
	case c.Emit.OperationsOnly:
		return registry.OperationsOnly
	default:
		return registry.Full
	}
}
