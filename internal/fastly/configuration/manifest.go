package configuration

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads a service manifest from disk and returns the normalized
// desired state.
func Load(path string) (ServiceConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ServiceConfig{}, fmt.Errorf("reading manifest %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return ServiceConfig{}, fmt.Errorf("manifest %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a YAML manifest. Unknown fields are rejected so that a typo
// in an attribute name surfaces as an error instead of a silently-applied
// default.
func Parse(data []byte) (ServiceConfig, error) {
	var cfg ServiceConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return ServiceConfig{}, fmt.Errorf("manifest is empty")
		}
		return ServiceConfig{}, err
	}
	return cfg.Normalize()
}
