package lumen

import (
	"errors"
	"fmt"
)

// Manifest declares a set of progressive images, typically loaded from a
// JSON or YAML file.
type Manifest struct {
	Images []Config `json:"images" yaml:"images"`
}

// Validate checks the manifest and every image config it declares.
func (m Manifest) Validate() error {
	if len(m.Images) == 0 {
		return errors.New("manifest must declare at least one image")
	}
	for i, cfg := range m.Images {
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("image %d: %w", i, err)
		}
	}
	return nil
}

// ParseManifest decodes and validates manifest bytes with the given codec.
func ParseManifest(data []byte, codec Codec) (Manifest, error) {
	var m Manifest
	if err := codec.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("unmarshal failed: %w", err)
	}
	if err := m.Validate(); err != nil {
		return Manifest{}, fmt.Errorf("validation failed: %w", err)
	}
	return m, nil
}
