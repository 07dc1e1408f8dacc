package calc

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// CalculatorConfig is the declarative, YAML-loadable shape of a
// Calculator's startup state: which built-ins to disable, which
// constants to seed or override, and whether to attach a Debugger.
// Modeled on the teacher's internal/config.Config — a single tagged
// struct with a DefaultConfig constructor and a Load entry point — but
// scoped to the handful of knobs a calculator actually has, instead of
// the teacher's engine/performance/vault/aws surface, none of which has
// a home in this domain (SPEC_FULL.md §4.7).
type CalculatorConfig struct {
	Builtins  BuiltinsConfig      `yaml:"builtins"`
	Variables map[string]float64  `yaml:"variables"`
	Debug     DebugConfig         `yaml:"debug"`
}

// BuiltinsConfig lists built-in function names to remove from
// resolvability (CalculatorConfig.Builtins.Disable).
type BuiltinsConfig struct {
	Disable []string `yaml:"disable"`
}

// DebugConfig controls whether a loaded Calculator attaches a stderr
// Debugger, either unconditionally or gated on an environment variable.
type DebugConfig struct {
	Enabled bool   `yaml:"enabled"`
	EnvVar  string `yaml:"env_var"`
}

// DefaultCalculatorConfig returns the zero-knob configuration: no
// built-ins disabled, no variable overrides, debugging off. Passing
// this to NewFromConfig must behave identically to New (SPEC_FULL.md
// §4.7's non-goal: ambient configuration never changes core semantics).
func DefaultCalculatorConfig() CalculatorConfig {
	return CalculatorConfig{
		Builtins:  BuiltinsConfig{Disable: nil},
		Variables: map[string]float64{},
		Debug:     DebugConfig{Enabled: false},
	}
}

// LoadConfig reads and parses a CalculatorConfig from a YAML file at
// path, starting from DefaultCalculatorConfig so omitted fields keep
// their zero-knob defaults.
func LoadConfig(path string) (CalculatorConfig, error) {
	cfg := DefaultCalculatorConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading calculator config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing calculator config: %w", err)
	}
	return cfg, nil
}

// NewFromConfig builds a Calculator the way New does, then applies cfg:
// disabling built-ins, seeding variable overrides, and attaching a
// Debugger if configured.
func NewFromConfig(id string, cfg CalculatorConfig, opts ...Option) *Calculator {
	c := New(id, opts...)

	for _, name := range cfg.Builtins.Disable {
		c.funcs.Disable(name)
	}
	for name, v := range cfg.Variables {
		c.SetVariable(name, v)
	}
	if cfg.Debug.Enabled {
		c.debug = NewWriterDebugger(os.Stderr)
	} else if cfg.Debug.EnvVar != "" {
		WithDebugEnv(cfg.Debug.EnvVar)(c)
	}

	return c
}
