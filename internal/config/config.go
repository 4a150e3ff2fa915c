// Package config loads the REPL's own optional configuration file,
// grounded on the teacher's internal/ext.Config (same "parse an optional
// YAML file, default cleanly if absent" shape, same gopkg.in/yaml.v3
// dependency), rehomed from describing Go bindings to describing the
// interactive front-end's own presentation settings.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the ambient settings named in SPEC_FULL §1.3: REPL
// prompts, whether to print each accepted item's inferred type alongside
// its value, the print precision for `real` results, and whether a
// session may permanently override a built-in operator's fixity.
type Config struct {
	// Prompt is printed before reading a new top-level item.
	Prompt string `yaml:"prompt"`
	// ContinuationPrompt is printed while a single item spans multiple
	// lines (no terminating `;` seen yet).
	ContinuationPrompt string `yaml:"continuation_prompt"`
	// PrintTypes, when true, has the REPL print the inferred type of `it`
	// alongside `Evaluated to V`.
	PrintTypes bool `yaml:"print_types"`
	// RealPrecision is the number of digits after the decimal point used
	// when rendering a `real` result; 6 matches the original JIT
	// backend's libc `%f` default (src/JIT/JIT.cpp).
	RealPrecision int `yaml:"real_precision"`
	// AllowFixityOverride permits `infix`/`infixr`/`nonfix` to rebind one
	// of the built-in operator names (`+`, `::`, ...) for the rest of the
	// session; internal/symbols.Table.CanSetOperator consults it before
	// internal/parser accepts such a declaration, rejecting it with a
	// P003 diagnostic otherwise. The specification's built-in fixity
	// table (§3) is silent on whether this should be allowed at all;
	// defaulting to true keeps the prior permissive behavior.
	AllowFixityOverride bool `yaml:"allow_fixity_override"`
}

// Default returns the configuration used when no file is supplied.
func Default() *Config {
	return &Config{
		Prompt:              "- ",
		ContinuationPrompt:  "= ",
		PrintTypes:          true,
		RealPrecision:       6,
		AllowFixityOverride: true,
	}
}

// Load reads and parses the YAML file at path, or returns Default() when
// path is empty. Fields absent from the file keep their Default() value,
// matching the teacher's "start from the default, then decode over it"
// pattern rather than requiring every field to be present.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return cfg, nil
}
