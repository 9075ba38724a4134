// Package config loads oncogrid render settings from TOML or YAML files.
//
// A config file describes the grid geometry, the consequence palette, the
// donor and gene tracks and how track cells are coloured. The CLI reads it
// with --config and command-line flags override individual settings:
//
//	width = 800
//	height = 400
//	expandable_groups = ["Clinical"]
//
//	[colors]
//	missense_variant = "#ff9b6c"
//
//	[[donor_tracks]]
//	name = "Age at Diagnosis"
//	field = "clinical.age_diagnosis"
//	type = "int"
//	group = "Clinical"
//
//	[donor_style]
//	default_fill = "#6d72c5"
//	int_max = 100
//	[donor_style.fills]
//	Clinical = "#2aa198"
//	"clinical.alive" = "#859900"
//
// The same structure in YAML uses identical keys. [Load] picks the decoder
// from the file extension, fills defaults and validates the result.
package config

import (
	"bytes"
	stderrors "errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/oncogrid/pkg/errors"
)

// Config is a complete render configuration.
type Config struct {
	Width         float64 `toml:"width" yaml:"width"`
	Height        float64 `toml:"height" yaml:"height"`
	MinCellHeight float64 `toml:"min_cell_height" yaml:"min_cell_height"`
	HeatMap       bool    `toml:"heatmap" yaml:"heatmap"`
	GridLines     bool    `toml:"grid" yaml:"grid"`

	Margin MarginConfig `toml:"margin" yaml:"margin"`

	// Colors overrides entries of the default consequence palette.
	Colors map[string]string `toml:"colors" yaml:"colors"`

	DonorTracks []TrackConfig `toml:"donor_tracks" yaml:"donor_tracks"`
	GeneTracks  []TrackConfig `toml:"gene_tracks" yaml:"gene_tracks"`
	DonorStyle  StyleConfig   `toml:"donor_style" yaml:"donor_style"`
	GeneStyle   StyleConfig   `toml:"gene_style" yaml:"gene_style"`

	TrackHeight      float64           `toml:"track_height" yaml:"track_height"`
	TrackPadding     float64           `toml:"track_padding" yaml:"track_padding"`
	TrackLegends     map[string]string `toml:"track_legends" yaml:"track_legends"`
	TrackLegendLabel string            `toml:"track_legend_label" yaml:"track_legend_label"`
	ExpandableGroups []string          `toml:"expandable_groups" yaml:"expandable_groups"`
	NullSentinel     float64           `toml:"null_sentinel" yaml:"null_sentinel"`

	Templates TemplateConfig `toml:"templates" yaml:"templates"`
}

// MarginConfig is the space around the grid in pixels. Zero keeps the
// default for that side.
type MarginConfig struct {
	Top    float64 `toml:"top" yaml:"top"`
	Right  float64 `toml:"right" yaml:"right"`
	Bottom float64 `toml:"bottom" yaml:"bottom"`
	Left   float64 `toml:"left" yaml:"left"`
}

// TemplateConfig overrides the tooltip templates of the main grid.
type TemplateConfig struct {
	MainGrid  string `toml:"main_grid" yaml:"main_grid"`
	Crosshair string `toml:"crosshair" yaml:"crosshair"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	c := &Config{}
	c.SetDefaults()
	return c
}

// Load reads and validates the config file at path. Files ending in .toml
// are decoded as TOML, .yaml and .yml as YAML.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read config %s", path)
	}
	return Parse(data, filepath.Ext(path))
}

// Parse decodes config data in the format named by ext (".toml", ".yaml"
// or ".yml").
func Parse(data []byte, ext string) (*Config, error) {
	var c Config
	switch strings.ToLower(ext) {
	case ".toml":
		md, err := toml.Decode(string(data), &c)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode toml")
		}
		if keys := md.Undecoded(); len(keys) > 0 {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown config key %q", keys[0].String())
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&c); err != nil && !stderrors.Is(err, io.EOF) {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode yaml")
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported config format %q (want .toml, .yaml or .yml)", ext)
	}
	c.SetDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// SetDefaults fills unset values. Grid geometry left at zero is filled
// later by the grid itself.
func (c *Config) SetDefaults() {
	for i := range c.DonorTracks {
		c.DonorTracks[i].setDefaults()
	}
	for i := range c.GeneTracks {
		c.GeneTracks[i].setDefaults()
	}
	c.DonorStyle.setDefaults()
	c.GeneStyle.setDefaults()
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	sizes := []struct {
		name string
		v    float64
	}{
		{"width", c.Width},
		{"height", c.Height},
		{"min_cell_height", c.MinCellHeight},
		{"track_height", c.TrackHeight},
		{"track_padding", c.TrackPadding},
	}
	for _, s := range sizes {
		if s.v < 0 {
			return errors.New(errors.ErrCodeInvalidConfig, "%s must not be negative, got %v", s.name, s.v)
		}
	}
	for consequence, color := range c.Colors {
		if err := errors.ValidateColor(color); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "colors.%s", consequence)
		}
	}
	if err := validateTracks("donor_tracks", c.DonorTracks); err != nil {
		return err
	}
	if err := validateTracks("gene_tracks", c.GeneTracks); err != nil {
		return err
	}
	if err := c.DonorStyle.validate("donor_style"); err != nil {
		return err
	}
	return c.GeneStyle.validate("gene_style")
}

func validateTracks(section string, tracks []TrackConfig) error {
	for i, t := range tracks {
		if err := t.validate(); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s[%d]", section, i)
		}
	}
	return nil
}
