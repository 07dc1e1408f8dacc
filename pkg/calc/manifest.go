package calc

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// FunctionManifest is a descriptive, documentation-only TOML record of
// the functions and operators a deployment has wired in via AddFunction
// / AddOperator — it is not executable: TOML cannot carry a Go closure,
// so a manifest is read for Validate's name checks (arity and the other
// descriptive fields are not checked), not to construct callable
// behavior (SPEC_FULL.md §4.8).
type FunctionManifest struct {
	Function []FunctionDescriptor `toml:"function"`
	Operator []OperatorDescriptor `toml:"operator"`
}

// FunctionDescriptor documents one registered function's name, argument
// shape, and purpose.
type FunctionDescriptor struct {
	Name        string `toml:"name"`
	Arity       int    `toml:"arity"`
	Variadic    bool   `toml:"variadic"`
	Description string `toml:"description"`
}

// OperatorDescriptor documents one registered operator's symbol and
// purpose.
type OperatorDescriptor struct {
	Symbol      string `toml:"symbol"`
	Description string `toml:"description"`
}

// LoadFunctionManifest parses a TOML manifest file.
func LoadFunctionManifest(path string) (FunctionManifest, error) {
	var m FunctionManifest
	if _, err := toml.DecodeFile(path, &m); err != nil {
		return m, fmt.Errorf("decoding function manifest: %w", err)
	}
	return m, nil
}

// Validate cross-checks the manifest's declared names against the
// Calculator's live registries, surfacing drift between documentation
// and the actual registered set.
func (m FunctionManifest) Validate(c *Calculator) []error {
	var errs []error
	for _, fd := range m.Function {
		if _, ok := c.funcs.Lookup(fd.Name); !ok {
			errs = append(errs, fmt.Errorf("manifest describes function %q but it is not registered", fd.Name))
		}
	}
	for _, od := range m.Operator {
		if !c.ops.Has(od.Symbol) {
			errs = append(errs, fmt.Errorf("manifest describes operator %q but it is not registered", od.Symbol))
		}
	}
	return errs
}
