// Package config loads the optional fanout.yaml project file.
//
// The file lives next to the package it configures and adds dispatcher
// families on top of the ones declared with //fanout:gen directives:
//
//	output: fanout_gen.go
//	groups:
//	  - type: Tester
//	    name: Batch
//	    clone: [0, 2]
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/broady/fanout/fanoutgen/ir"
	"github.com/broady/fanout/internal/directive"
)

// FileName is the name of the project file looked up in a package directory.
const FileName = "fanout.yaml"

// Config represents the top-level fanout.yaml configuration.
type Config struct {
	// Output is the generated file name. Defaults to the generator's default
	// when empty.
	Output string `yaml:"output,omitempty" validate:"omitempty,endswith=.go,excludes=/"`

	// Groups lists additional dispatcher families.
	Groups []Group `yaml:"groups,omitempty" validate:"dive"`
}

// Group declares one dispatcher family for a type in the package.
type Group struct {
	// Type is the annotated type name.
	Type string `yaml:"type" validate:"required"`

	directive.Options `yaml:",inline"`
}

// Load reads and parses a fanout.yaml file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return Parse(data, path)
}

// LoadDir loads FileName from dir. A missing file yields an empty
// configuration.
func LoadDir(dir string) (*Config, error) {
	cfg, err := Load(filepath.Join(dir, FileName))
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{}, nil
	}
	return cfg, err
}

// Parse parses fanout.yaml content. The path argument is used only for error
// messages. Unknown keys are rejected. Malformed or invalid content is
// reported as an *ir.ConfigurationError positioned at path.
func Parse(data []byte, path string) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, &ir.ConfigurationError{Source: ir.Source{File: path}, Msg: "parsing config", Err: err}
	}
	if err := cfg.validate(); err != nil {
		return nil, &ir.ConfigurationError{Source: ir.Source{File: path}, Err: err}
	}
	return &cfg, nil
}

// validate checks field constraints and rejects a family declared twice.
func (c *Config) validate() error {
	if err := directive.ValidateStruct(c); err != nil {
		return err
	}
	type family struct{ typ, name string }
	seen := make(map[family]int)
	for i, g := range c.Groups {
		f := family{g.Type, g.Name}
		if j, ok := seen[f]; ok {
			return fmt.Errorf("groups[%d]: family %q of type %s is already declared by groups[%d]", i, g.Name, g.Type, j)
		}
		seen[f] = i
	}
	return nil
}
