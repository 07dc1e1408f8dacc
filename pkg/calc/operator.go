package calc

import "math"

// BinaryFunc is a pure (f64, f64) -> f64 operator implementation.
type BinaryFunc func(a, b float64) float64

// operatorEntry pairs a symbol with its implementation. OperatorTable
// keeps these in an explicit slice — never a map — because iteration
// order over a mapping is not a contract Go gives us, and that order IS
// the calculator's precedence order (spec.md §3, §9: "Operator
// precedence via insertion order... use an explicitly ordered sequence
// of (symbol, function) pairs; do not rely on a language's default
// mapping iteration order").
type operatorEntry struct {
	symbol string
	fn     BinaryFunc
}

// OperatorTable is the precedence-ordered registry of binary operators.
// Built-ins occupy the head of the table in the fixed order spec.md §4.3
// mandates; operators registered by the host via AddOperator are appended
// at the tail, i.e. they bind loosest.
type OperatorTable struct {
	entries []operatorEntry
	index   map[string]int
}

// NewOperatorTable builds the table preloaded with the built-in operators
// in their mandated precedence order (highest first): ^ % / * - + > <
// ≥ ≤ ≠ =.
func NewOperatorTable() *OperatorTable {
	t := &OperatorTable{index: make(map[string]int)}
	t.add("^", func(a, b float64) float64 { return math.Pow(a, b) })
	t.add("%", func(a, b float64) float64 { return math.Mod(a, b) })
	t.add("/", divide)
	t.add("*", func(a, b float64) float64 { return a * b })
	t.add("-", func(a, b float64) float64 { return a - b })
	t.add("+", func(a, b float64) float64 { return a + b })
	t.add(">", boolF(func(a, b float64) bool { return a > b }))
	t.add("<", boolF(func(a, b float64) bool { return a < b }))
	t.add(string(runeGEQ), boolF(func(a, b float64) bool { return a > b || nearlyEqual(a, b) }))
	t.add(string(runeLEQ), boolF(func(a, b float64) bool { return a < b || nearlyEqual(a, b) }))
	t.add(string(runeNEQ), boolF(func(a, b float64) bool { return !nearlyEqual(a, b) }))
	t.add("=", boolF(nearlyEqual))
	return t
}

// tolerance is the absolute tolerance used by equality and the
// ≥/≤/≠ comparison operators (spec.md §4.3).
const tolerance = 1e-8

func nearlyEqual(a, b float64) bool {
	return math.Abs(a-b) < tolerance
}

func boolF(pred func(a, b float64) bool) BinaryFunc {
	return func(a, b float64) float64 {
		if pred(a, b) {
			return 1
		}
		return 0
	}
}

// divide implements spec.md §4.3's division-by-zero semantics exactly:
// +Inf for x>0, -Inf for x<0, NaN for x==0 — which is what IEEE-754
// float64 division already does, so this just documents the contract.
func divide(a, b float64) float64 {
	return a / b
}

func (t *OperatorTable) add(symbol string, fn BinaryFunc) {
	t.index[symbol] = len(t.entries)
	t.entries = append(t.entries, operatorEntry{symbol: symbol, fn: fn})
}

// AddOperator appends a host-defined operator at the tail of the table
// (lowest precedence). Re-registering an existing symbol overwrites its
// function in place without changing its precedence position.
func (t *OperatorTable) AddOperator(symbol string, fn BinaryFunc) {
	if i, ok := t.index[symbol]; ok {
		t.entries[i].fn = fn
		return
	}
	t.add(symbol, fn)
}

// Has reports whether symbol is a registered operator.
func (t *OperatorTable) Has(symbol string) bool {
	_, ok := t.index[symbol]
	return ok
}

// Lookup returns the function registered for symbol.
func (t *OperatorTable) Lookup(symbol string) (BinaryFunc, bool) {
	i, ok := t.index[symbol]
	if !ok {
		return nil, false
	}
	return t.entries[i].fn, true
}

// Symbols returns the operator symbols in precedence order, highest
// first. The basic arithmetic reducer walks this order when reducing.
func (t *OperatorTable) Symbols() []string {
	out := make([]string, len(t.entries))
	for i, e := range t.entries {
		out[i] = e.symbol
	}
	return out
}

// clone returns a deep-enough copy for a Calculator that wants its own
// mutable operator table seeded from a shared base: the entry slice and
// the index map are copied, the functions are shared.
func (t *OperatorTable) clone() *OperatorTable {
	c := &OperatorTable{
		entries: append([]operatorEntry(nil), t.entries...),
		index:   make(map[string]int, len(t.index)),
	}
	for k, v := range t.index {
		c.index[k] = v
	}
	return c
}
