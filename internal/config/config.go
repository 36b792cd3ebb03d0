package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed report.yaml
var defaultYAML []byte

// ReportConfig holds report-level settings.
type ReportConfig struct {
	Title      string `yaml:"title"`
	WindowDays int    `yaml:"window_days,omitempty"` // Recency horizon for scoring, default: 30
}

// Config carries the enumerated value sets the pipeline validates against.
// The sets are injected here rather than hardcoded so the same pipeline can be
// pointed at a different country/sector portfolio without code changes.
type Config struct {
	Report           ReportConfig `yaml:"report"`
	Countries        []string     `yaml:"countries"`
	Sectors          []string     `yaml:"sectors"`
	OpportunityTypes []string     `yaml:"opportunity_types"`
	Categories       []string     `yaml:"categories"`
	DefaultCategory  string       `yaml:"default_category"`
}

// Default returns the embedded portfolio configuration.
func Default() (*Config, error) {
	return parse(defaultYAML)
}

// LoadFile reads a configuration override from disk.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if cfg.Report.WindowDays <= 0 {
		cfg.Report.WindowDays = 30
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configured value sets for internal consistency.
func (c *Config) Validate() error {
	if c.Report.Title == "" {
		return fmt.Errorf("report.title must not be empty")
	}
	for name, set := range map[string][]string{
		"countries":         c.Countries,
		"sectors":           c.Sectors,
		"opportunity_types": c.OpportunityTypes,
		"categories":        c.Categories,
	} {
		if len(set) == 0 {
			return fmt.Errorf("%s must list at least one value", name)
		}
		seen := make(map[string]struct{}, len(set))
		for _, v := range set {
			if v == "" {
				return fmt.Errorf("%s contains an empty value", name)
			}
			if _, dup := seen[v]; dup {
				return fmt.Errorf("%s contains duplicate value %q", name, v)
			}
			seen[v] = struct{}{}
		}
	}
	if !contains(c.Categories, c.DefaultCategory) {
		return fmt.Errorf("default_category %q is not in categories", c.DefaultCategory)
	}
	return nil
}

// ValidCountry reports whether v is a member of the configured country set.
// Matching is exact; casing and whitespace differences are rejections.
func (c *Config) ValidCountry(v string) bool { return contains(c.Countries, v) }

func (c *Config) ValidSector(v string) bool { return contains(c.Sectors, v) }

func (c *Config) ValidOpportunityType(v string) bool { return contains(c.OpportunityTypes, v) }

func (c *Config) ValidCategory(v string) bool { return contains(c.Categories, v) }

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
