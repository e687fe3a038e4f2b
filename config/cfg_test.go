package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gssc/config"
	"gssc/rename"
)

func TestDefaultJob(t *testing.T) {
	job, err := config.Default().Job()
	if err != nil {
		t.Fatalf("default configuration must validate: %v", err)
	}
	if job.Format != config.FormatCompressed {
		t.Errorf("unexpected default format: %v", job.Format)
	}
	if job.Flip {
		t.Error("default orientation must not flip")
	}
	if job.RenamingStrategy != rename.StrategyIdentity {
		t.Errorf("unexpected default strategy: %s", job.RenamingStrategy)
	}
	if job.Debug() {
		t.Error("compressed format must not be debug")
	}
}

func TestJobValidation(t *testing.T) {
	c := config.Default()
	c.Output.Format = "tiny"
	c.Output.Orientation = "sideways"
	c.Renaming.Strategy = "bogus"
	_, err := c.Job()
	if err == nil {
		t.Fatal("expected validation errors")
	}
	// all three problems reported together
	msg := err.Error()
	for _, want := range []string{"tiny", "sideways", "bogus"} {
		if !strings.Contains(msg, want) {
			t.Errorf("validation error misses %q: %s", want, msg)
		}
	}
}

func TestJobSets(t *testing.T) {
	c := config.Default()
	c.Conditions = []string{"MOBILE", "DARK"}
	c.Functions.Allowed = []string{"custom"}
	c.Renaming.ExcludedClasses = []string{"keep"}
	c.Output.Orientation = "rtl"
	c.Output.Format = "debug"

	job, err := c.Job()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !job.TrueConditions["MOBILE"] || !job.TrueConditions["DARK"] {
		t.Errorf("conditions lost: %v", job.TrueConditions)
	}
	if !job.AllowedFunctions["custom"] {
		t.Errorf("allowed functions lost: %v", job.AllowedFunctions)
	}
	if !job.ExcludedClasses["keep"] {
		t.Errorf("excluded classes lost: %v", job.ExcludedClasses)
	}
	if !job.Flip {
		t.Error("rtl must flip")
	}
	if !job.Debug() {
		t.Error("debug format must report Debug()")
	}
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gssc.yaml")
	content := `
output:
  format: pretty
  source_map: true
renaming:
  strategy: minimal
  excluded_classes: [keep]
  seed:
    dialog: e
conditions: [MOBILE]
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Output.Format != "pretty" || !cfg.Output.SourceMap {
		t.Errorf("output section not applied: %+v", cfg.Output)
	}
	if cfg.Renaming.Strategy != rename.StrategyMinimal || cfg.Renaming.Seed["dialog"] != "e" {
		t.Errorf("renaming section not applied: %+v", cfg.Renaming)
	}
	if len(cfg.Conditions) != 1 || cfg.Conditions[0] != "MOBILE" {
		t.Errorf("conditions not applied: %v", cfg.Conditions)
	}
	// unset fields keep their defaults
	if cfg.Renaming.Delimiter != rename.DefaultDelimiter {
		t.Errorf("default delimiter lost: %q", cfg.Renaming.Delimiter)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := config.Load("/no/such/file.yaml"); err == nil {
		t.Fatal("expected error for missing configuration file")
	}
	cfg, err := config.Load("")
	if err != nil || cfg == nil {
		t.Fatalf("empty path must return defaults: %v", err)
	}
}
