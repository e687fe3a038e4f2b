// Package config holds the YAML-loadable program configuration and the
// immutable compile job derived from it. The job enumerates which passes run
// and with what parameters; it is read-only input to the rest of the
// pipeline.
package config

import (
	"fmt"
	"os"

	"go.uber.org/multierr"
	yaml "gopkg.in/yaml.v3"

	"gssc/rename"
)

// OutputFormat selects the renderer and which passes run.
type OutputFormat int

const (
	// FormatCompressed emits minified single-line output with all
	// optimization passes enabled.
	FormatCompressed OutputFormat = iota
	// FormatPretty emits indented output with all optimization passes
	// enabled.
	FormatPretty
	// FormatDebug emits indented output with optimization and renaming
	// passes skipped, staying maximally close to the literal input.
	FormatDebug
)

type (
	// Config is the on-disk program configuration.
	Config struct {
		Output     OutputConfig    `yaml:"output"`
		Renaming   RenamingConfig  `yaml:"renaming"`
		Conditions []string        `yaml:"conditions,omitempty"`
		Functions  FunctionsConfig `yaml:"functions"`
		Logging    LoggingConfig   `yaml:"logging"`
	}

	OutputConfig struct {
		Format           string `yaml:"format"`                     // compressed, pretty or debug
		Orientation      string `yaml:"orientation,omitempty"`      // ltr (default) or rtl
		SourceMap        bool   `yaml:"source_map,omitempty"`       // record output-to-input mappings
		Copyright        string `yaml:"copyright,omitempty"`        // prepended verbatim to output
		MaxDiagnostics   int    `yaml:"max_diagnostics,omitempty"`  // cap on reported diagnostics, 0 = unbounded
		FailFast         bool   `yaml:"fail_fast,omitempty"`        // stop at the first syntax error
		WarningsAsErrors bool   `yaml:"warnings_as_errors,omitempty"`
	}

	RenamingConfig struct {
		Strategy        string            `yaml:"strategy"`  // identity, debug or minimal
		Delimiter       string            `yaml:"delimiter"` // part delimiter, default "-"
		ExcludedClasses []string          `yaml:"excluded_classes,omitempty"`
		Seed            map[string]string `yaml:"seed,omitempty"` // mappings from a previous run
	}

	FunctionsConfig struct {
		AllowNonStandard bool     `yaml:"allow_non_standard,omitempty"`
		Allowed          []string `yaml:"allowed,omitempty"`
	}
)

// Default returns the working zero configuration.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			Format:      "compressed",
			Orientation: "ltr",
		},
		Renaming: RenamingConfig{
			Strategy:  rename.StrategyIdentity,
			Delimiter: rename.DefaultDelimiter,
		},
		Logging: LoggingConfig{Level: "none"},
	}
}

// Load reads configuration from path, applying it over defaults. An empty
// path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read configuration: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("unable to parse configuration %s: %w", path, err)
	}
	return cfg, nil
}

// Job is the immutable per-compile parameter set derived from Config. All
// name-keyed settings are validated when the job is built; the pipeline can
// rely on them blindly.
type Job struct {
	Format            OutputFormat
	Flip              bool // convert left-to-right input to right-to-left
	TrueConditions    map[string]bool
	AllowNonStandard  bool
	AllowedFunctions  map[string]bool
	ExcludedClasses   map[string]bool
	RenamingStrategy  string
	RenamingDelimiter string
	RenamingSeed      map[string]string
	SourceMap         bool
	Copyright         string
	MaxDiagnostics    int
	FailFast          bool
	WarningsAsErrors  bool
}

// Job validates the configuration and freezes it into a compile job. All
// validation problems are reported together.
func (c *Config) Job() (*Job, error) {
	var errs error

	j := &Job{
		TrueConditions:    make(map[string]bool, len(c.Conditions)),
		AllowNonStandard:  c.Functions.AllowNonStandard,
		AllowedFunctions:  make(map[string]bool, len(c.Functions.Allowed)),
		ExcludedClasses:   make(map[string]bool, len(c.Renaming.ExcludedClasses)),
		RenamingStrategy:  c.Renaming.Strategy,
		RenamingDelimiter: c.Renaming.Delimiter,
		RenamingSeed:      c.Renaming.Seed,
		SourceMap:         c.Output.SourceMap,
		Copyright:         c.Output.Copyright,
		MaxDiagnostics:    c.Output.MaxDiagnostics,
		FailFast:          c.Output.FailFast,
		WarningsAsErrors:  c.Output.WarningsAsErrors,
	}

	switch c.Output.Format {
	case "", "compressed":
		j.Format = FormatCompressed
	case "pretty":
		j.Format = FormatPretty
	case "debug":
		j.Format = FormatDebug
	default:
		errs = multierr.Append(errs, fmt.Errorf("unknown output format %q (want compressed, pretty or debug)", c.Output.Format))
	}

	switch c.Output.Orientation {
	case "", "ltr":
	case "rtl":
		j.Flip = true
	default:
		errs = multierr.Append(errs, fmt.Errorf("unknown orientation %q (want ltr or rtl)", c.Output.Orientation))
	}

	if j.RenamingStrategy == "" {
		j.RenamingStrategy = rename.StrategyIdentity
	}
	if !rename.Valid(j.RenamingStrategy) {
		errs = multierr.Append(errs, &rename.UnknownStrategyError{Name: j.RenamingStrategy})
	}

	for _, cond := range c.Conditions {
		j.TrueConditions[cond] = true
	}
	for _, fn := range c.Functions.Allowed {
		j.AllowedFunctions[fn] = true
	}
	for _, cls := range c.Renaming.ExcludedClasses {
		j.ExcludedClasses[cls] = true
	}

	if errs != nil {
		return nil, errs
	}
	return j, nil
}

// Debug reports whether optimization and renaming passes are skipped.
func (j *Job) Debug() bool { return j.Format == FormatDebug }
