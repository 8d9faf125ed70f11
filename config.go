package lumen

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Config declares one progressive image in a manifest.
type Config struct {
	// Placeholder is the low-fidelity asset URI shown immediately.
	Placeholder string `json:"placeholder" yaml:"placeholder" validate:"required"`

	// Source is the full-quality asset URI requested once visible.
	Source string `json:"source" yaml:"source" validate:"required"`

	// Width and Height are rendered dimension hints, passed through.
	Width  int `json:"width,omitempty" yaml:"width,omitempty" validate:"min=0"`
	Height int `json:"height,omitempty" yaml:"height,omitempty" validate:"min=0"`

	// Threshold overrides the visibility threshold. Zero means the
	// package default.
	Threshold float64 `json:"threshold,omitempty" yaml:"threshold,omitempty" validate:"gte=0,lte=1"`

	// RootMargin overrides the observation root margin. Empty means the
	// package default.
	RootMargin string `json:"root_margin,omitempty" yaml:"root_margin,omitempty"`
}

// Validate checks field constraints and the root margin syntax.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	if c.RootMargin != "" {
		if _, err := parseMargin(c.RootMargin); err != nil {
			return err
		}
	}
	return nil
}

// Build constructs an Image from the config. Zero-value fields fall back
// to package defaults.
func (c Config) Build(opts ...Option) (*Image, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid image config: %w", err)
	}

	img := New(c.Placeholder, c.Source, opts...).Size(c.Width, c.Height)
	if c.Threshold > 0 {
		img.Threshold(c.Threshold)
	}
	if c.RootMargin != "" {
		img.RootMargin(c.RootMargin)
	}
	return img, nil
}
