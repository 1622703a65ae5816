package prompts

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// fileFormat is the on-disk layout accepted by LoadFile.
type fileFormat struct {
	Prompts []PromptSpec `yaml:"prompts"`
}

// Parse decodes a YAML prompt document and builds a Registry from it.
// Unknown keys are rejected so typos do not silently drop a template.
func Parse(data []byte) (*Registry, error) {
	var doc fileFormat
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode prompts: %w", err)
	}
	return NewRegistry(doc.Prompts...)
}

// LoadFile reads a prompt registry from path.
func LoadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompts file: %w", err)
	}
	r, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}

// Load returns the registry from path, or the built-in one when path is empty.
func Load(path string) (*Registry, error) {
	if path == "" {
		return NewRegistry(Default()...)
	}
	return LoadFile(path)
}
