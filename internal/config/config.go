// Package config handles configuration loading and shared data structures.
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hondenkaart/zonemap/internal/zone"
)

// Config represents the root configuration file structure.
type Config struct {
	// Dataset is a local path or HTTP(S) URL of the raw GeoJSON document.
	Dataset string `yaml:"dataset" json:"dataset"`

	// MergeDistanceM is the maximum gap in meters between two same-category
	// area zones for them to be clustered.
	MergeDistanceM float64 `yaml:"merge_distance_m,omitempty" json:"merge_distance_m"`

	// TopK is the size of the nearest-zone list.
	TopK int `yaml:"top_k,omitempty" json:"top_k"`

	// Styles maps a category code onto its rendering style. Missing
	// categories fall back to built-in defaults.
	Styles map[string]Style `yaml:"styles,omitempty" json:"styles,omitempty"`
}

// Style is the pure per-category rendering mapping handed to map and list
// consumers: fill/stroke for area zones, a single color for point zones.
type Style struct {
	FillColor   string  `yaml:"fill_color" json:"fill_color"`
	StrokeColor string  `yaml:"stroke_color" json:"stroke_color"`
	StrokeWidth float64 `yaml:"stroke_width" json:"stroke_width"`
	PointColor  string  `yaml:"point_color" json:"point_color"`
}

var defaultStyles = map[string]Style{
	string(zone.CategoryGreen): {
		FillColor:   "#2e7d3233",
		StrokeColor: "#2e7d32",
		StrokeWidth: 2,
		PointColor:  "#2e7d32",
	},
	string(zone.CategoryOrange): {
		FillColor:   "#ef6c0033",
		StrokeColor: "#ef6c00",
		StrokeWidth: 2,
		PointColor:  "#ef6c00",
	},
}

// Load reads and parses the YAML configuration file from the specified path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// Default returns a configuration with built-in defaults, for runs without a
// config file.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.MergeDistanceM <= 0 {
		c.MergeDistanceM = zone.DefaultMergeDistanceM
	}
	if c.TopK <= 0 {
		c.TopK = zone.DefaultTopK
	}
	if c.Styles == nil {
		c.Styles = make(map[string]Style)
	}
	for cat, style := range defaultStyles {
		if _, ok := c.Styles[cat]; !ok {
			c.Styles[cat] = style
		}
	}
}

// StyleFor returns the style for a category, falling back to the green
// default for unknown categories.
func (c *Config) StyleFor(cat zone.Category) Style {
	if s, ok := c.Styles[string(cat)]; ok {
		return s
	}
	return defaultStyles[string(zone.CategoryGreen)]
}
