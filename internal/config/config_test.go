package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg, err := Default()
	if err != nil {
		t.Fatalf("Default() returned error: %v", err)
	}

	if cfg.Report.Title == "" {
		t.Fatal("expected a report title")
	}
	if len(cfg.Countries) != 3 {
		t.Fatalf("expected 3 countries, got %d", len(cfg.Countries))
	}
	if len(cfg.Sectors) != 4 {
		t.Fatalf("expected 4 sectors, got %d", len(cfg.Sectors))
	}
	if len(cfg.OpportunityTypes) != 4 {
		t.Fatalf("expected 4 opportunity types, got %d", len(cfg.OpportunityTypes))
	}
	if len(cfg.Categories) != 5 {
		t.Fatalf("expected 5 categories, got %d", len(cfg.Categories))
	}
	if !cfg.ValidCategory(cfg.DefaultCategory) {
		t.Fatalf("default category %q not in category set", cfg.DefaultCategory)
	}
	if cfg.Report.WindowDays != 30 {
		t.Fatalf("expected window_days 30, got %d", cfg.Report.WindowDays)
	}
}

func TestMembershipIsExact(t *testing.T) {
	cfg, err := Default()
	if err != nil {
		t.Fatal(err)
	}

	if !cfg.ValidCountry("Bolivia") {
		t.Fatal("Bolivia should be valid")
	}
	if cfg.ValidCountry("bolivia") {
		t.Fatal("membership must be case-sensitive")
	}
	if cfg.ValidCountry(" Bolivia") {
		t.Fatal("membership must not trim input")
	}
	if !cfg.ValidSector("Ranching and livestock") {
		t.Fatal("Ranching and livestock should be valid")
	}
	if cfg.ValidOpportunityType("Grant") {
		t.Fatal("partial match must be rejected")
	}
}

func TestLoadFileOverride(t *testing.T) {
	raw := `
report:
  title: "Andes Weekly"
countries: [Peru, Ecuador]
sectors: [Mining]
opportunity_types: [Grants]
categories: [Funding, Policy Update]
default_category: Funding
`
	path := filepath.Join(t.TempDir(), "report.yaml")
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Report.Title != "Andes Weekly" {
		t.Fatalf("unexpected title %q", cfg.Report.Title)
	}
	if !cfg.ValidCountry("Peru") || cfg.ValidCountry("Bolivia") {
		t.Fatal("override must replace the country set, not extend it")
	}
	if cfg.Report.WindowDays != 30 {
		t.Fatalf("missing window_days should default to 30, got %d", cfg.Report.WindowDays)
	}
}

func TestValidateRejectsBadConfigs(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "empty title",
			mutate:  func(c *Config) { c.Report.Title = "" },
			wantErr: "report.title",
		},
		{
			name:    "empty country set",
			mutate:  func(c *Config) { c.Countries = nil },
			wantErr: "countries",
		},
		{
			name:    "duplicate sector",
			mutate:  func(c *Config) { c.Sectors = append(c.Sectors, c.Sectors[0]) },
			wantErr: "duplicate",
		},
		{
			name:    "default category outside set",
			mutate:  func(c *Config) { c.DefaultCategory = "Mystery" },
			wantErr: "default_category",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Default()
			if err != nil {
				t.Fatal(err)
			}
			tt.mutate(cfg)
			err = cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
