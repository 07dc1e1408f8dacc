package calc

import "fmt"

// preloadedConstants are the built-in variables every Calculator starts
// with (spec.md §6), rounded to about 14 significant digits rather than
// full float64 precision.
var preloadedConstants = map[string]float64{
	"pi":       3.14159265358979,
	"tao":      6.28318530717959,
	"e":        2.71828182845905,
	"phi":      1.61803398874989,
	"major":    0.61803398874989,
	"minor":    0.38196601125011,
	"pitograd": 57.2957795130823,
	"piofgrad": 0.01745329251994,
}

// Calculator is the embeddable expression engine (spec.md §6). It is
// not safe for concurrent use without external synchronization: it holds
// no internal mutex, and its tables are mutated in place (spec.md §5).
type Calculator struct {
	id        string
	ops       *OperatorTable
	funcs     *FunctionFactory
	vars      map[string]float64
	cells     CellProvider
	debug     Debugger
	declarator VariableDeclarator
}

// Option configures a Calculator at construction time.
type Option func(*Calculator)

// WithCellProvider installs the callback used to resolve cell
// references and ranges.
func WithCellProvider(cp CellProvider) Option {
	return func(c *Calculator) { c.cells = cp }
}

// WithDebugger installs a Debugger that receives tracing output as
// Compute runs (SPEC_FULL.md §4.6).
func WithDebugger(d Debugger) Option {
	return func(c *Calculator) { c.debug = d }
}

// WithVariableDeclarator overrides the recognized "let NAME = EXPR"
// declaration forms accepted by ProgrammaticallyParse.
func WithVariableDeclarator(vd VariableDeclarator) Option {
	return func(c *Calculator) { c.declarator = vd }
}

// New builds a Calculator with the built-in operator table, built-in
// function set, and preloaded constants (spec.md §6), plus any Options.
func New(id string, opts ...Option) *Calculator {
	c := &Calculator{
		id:         id,
		ops:        NewOperatorTable(),
		funcs:      NewFunctionFactory(),
		vars:       make(map[string]float64, len(preloadedConstants)),
		declarator: defaultVariableDeclarator{},
	}
	for k, v := range preloadedConstants {
		c.vars[k] = v
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ID returns the Calculator's correlation identifier, used in log lines
// emitted to its Debugger (SPEC_FULL.md §4.6).
func (c *Calculator) ID() string { return c.id }

// SetVariable assigns name's value, overriding any preloaded constant
// of the same name. Variable names are case-sensitive (spec.md §3): "A"
// and "a" are distinct entries.
func (c *Calculator) SetVariable(name string, value float64) {
	c.vars[name] = value
}

// GetVariable returns name's value and whether it is defined.
func (c *Calculator) GetVariable(name string) (float64, bool) {
	v, ok := c.vars[name]
	return v, ok
}

// AddFunction registers a user-defined function under name, overriding
// any built-in of the same name (spec.md §3's Function table).
func (c *Calculator) AddFunction(name string, fn Func) {
	c.funcs.register([]string{name}, func() Func { return fn })
}

// AddOperator registers a new binary operator symbol at the end of the
// precedence table, or overwrites an existing symbol's function in
// place (spec.md §3's Operator table, §9's insertion-order invariant).
func (c *Calculator) AddOperator(symbol string, fn BinaryFunc) {
	c.ops.AddOperator(symbol, fn)
}

// SetCellProvider installs or replaces the cell-reference callback.
func (c *Calculator) SetCellProvider(cp CellProvider) { c.cells = cp }

// SetDebugger installs or replaces the Debugger.
func (c *Calculator) SetDebugger(d Debugger) { c.debug = d }

// Compute tokenizes, preprocesses, and evaluates expr, resolving any
// cell references against the Calculator's CellProvider. It is the
// single entry point a host calls per cell (spec.md §6).
func (c *Calculator) Compute(expr string) (float64, error) {
	c.logf("tokenize %q", expr)
	toks := Tokenize(expr)

	toks, err := substituteVariables(toks, c.vars, c.cells)
	if err != nil {
		return 0, c.annotate(err, expr)
	}
	c.logf("after variable substitution: %s", JoinForDisplay(toks))

	toks, err = rewriteCountif(toks)
	if err != nil {
		return 0, c.annotate(err, expr)
	}

	toks, err = rewriteRelativeCells(toks, c.vars, c.ops)
	if err != nil {
		return 0, c.annotate(err, expr)
	}

	toks, err = expandRanges(toks, c.cells)
	if err != nil {
		return 0, c.annotate(err, expr)
	}
	c.logf("after preprocessing: %s", JoinForDisplay(toks))

	result, err := Evaluate(toks, &evalContext{ops: c.ops, funcs: c.funcs})
	if err != nil {
		return 0, c.annotate(err, expr)
	}
	c.logf("result: %v", result)
	return result, nil
}

func (c *Calculator) annotate(err error, expr string) error {
	if ce, ok := err.(*CalcError); ok {
		return ce.withExpression(expr)
	}
	return err
}

func (c *Calculator) logf(format string, args ...interface{}) {
	if c.debug == nil {
		return
	}
	c.debug.Debugf(c.id, fmt.Sprintf(format, args...))
}
