// Released under an MIT license. See LICENSE.

// Package config provides knot's interpreter settings.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// T (config) holds the interpreter's tunable settings.
type T struct {
	// Statements a logical thread runs before it is forced to yield.
	Quantum int `yaml:"quantum"`

	// Goroutines available for blocking operations.
	Workers int `yaml:"workers"`

	// Maximum depth of the frame stack.
	MaxDepth int `yaml:"max-depth"`

	// Re-raise errors caught by a try without a catch clause.
	Raise bool `yaml:"raise"`

	// Write each statement, after substitution, to the trace writer.
	Trace bool `yaml:"trace"`

	// Let panics in callables crash the process rather than becoming errors.
	Optimistic bool `yaml:"optimistic"`

	// Write output as it is produced rather than after each statement.
	Unbuffered bool `yaml:"unbuffered"`
}

type config = T

// Default returns the default settings.
func Default() *config {
	return &config{
		Quantum:  128,
		Workers:  4,
		MaxDepth: 1000,
	}
}

// Load reads settings from the YAML file at path over the defaults.
func Load(path string) (*config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	c, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return c, nil
}

// Parse reads settings from the YAML document in b over the defaults.
func Parse(b []byte) (*config, error) {
	c := Default()

	d := yaml.NewDecoder(bytes.NewReader(b))
	d.KnownFields(true)

	if err := d.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

// Validate returns an error if any setting is out of range.
func (c *config) Validate() error {
	switch {
	case c.Quantum < 1:
		return fmt.Errorf("quantum must be positive, got %d", c.Quantum)
	case c.Workers < 1:
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	case c.MaxDepth < 1:
		return fmt.Errorf("max-depth must be positive, got %d", c.MaxDepth)
	}

	return nil
}
