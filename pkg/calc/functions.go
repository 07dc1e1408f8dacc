package calc

import (
	"math"
	"sort"
	"strings"
)

// Func is the signature every built-in and user-defined function
// implements (spec.md §3: "Function table ... Mapping from identifier to
// VariantList -> f64").
type Func func(args VariantList) (float64, error)

// FunctionFactory is the function registry: the built-ins plus any
// function added with Calculator.AddFunction, all under case-insensitive
// lookup, lazily resolved and memoized under the
// lowercased name the first time each name is looked up — mirroring the
// teacher's own lazy-resolution + memoization idiom for operator lookup
// (graft's OperatorFor caches by lowercased name the first time an
// operator symbol is resolved).
type FunctionFactory struct {
	builders map[string]func() Func
	memo     map[string]Func
	disabled map[string]bool
}

// NewFunctionFactory builds the factory with every built-in from spec.md
// §4.4 registered (but not yet resolved — resolution is lazy).
func NewFunctionFactory() *FunctionFactory {
	f := &FunctionFactory{
		builders: make(map[string]func() Func),
		memo:     make(map[string]Func),
		disabled: make(map[string]bool),
	}
	f.registerBuiltins()
	return f
}

// Disable removes name (case-insensitive) from resolvability, used by
// CalculatorConfig.Builtins.Disable (SPEC_FULL.md §4.7).
func (f *FunctionFactory) Disable(name string) {
	f.disabled[strings.ToLower(name)] = true
	delete(f.memo, strings.ToLower(name))
}

// Lookup resolves name case-insensitively, memoizing the resolution.
func (f *FunctionFactory) Lookup(name string) (Func, bool) {
	key := strings.ToLower(name)
	if f.disabled[key] {
		return nil, false
	}
	if fn, ok := f.memo[key]; ok {
		return fn, true
	}
	build, ok := f.builders[key]
	if !ok {
		return nil, false
	}
	fn := build()
	f.memo[key] = fn
	return fn, true
}

func (f *FunctionFactory) register(names []string, build func() Func) {
	for _, n := range names {
		f.builders[strings.ToLower(n)] = build
		delete(f.memo, strings.ToLower(n))
	}
}

func unary(op func(float64) float64) func() Func {
	return func() Func {
		return func(args VariantList) (float64, error) {
			if err := args.Assert(VariantNumber); err != nil {
				return 0, err
			}
			return op(args.At(0)), nil
		}
	}
}

func binary(op func(a, b float64) float64) func() Func {
	return func() Func {
		return func(args VariantList) (float64, error) {
			if err := args.Assert(VariantNumber, VariantNumber); err != nil {
				return 0, err
			}
			return op(args.At(0), args.At(1)), nil
		}
	}
}

func aggregate(op func(vals []float64) float64) func() Func {
	return func() Func {
		return func(args VariantList) (float64, error) {
			return op(args.ToDoubleArray()), nil
		}
	}
}

// truncateToward0 matches spec.md §4.4's truncate/truncatate definition:
// floor toward zero for positives, -floor(-x) for negatives, which is
// equivalent to ordinary trunc.
func truncateToward0(x float64) float64 {
	if x >= 0 {
		return math.Floor(x)
	}
	return -math.Floor(-x)
}

func roundHalfAwayFromZero(x float64) float64 {
	if x >= 0 {
		return math.Floor(x + 0.5)
	}
	return math.Ceil(x - 0.5)
}

func sumOf(vals []float64) float64 {
	var s float64
	for _, v := range vals {
		s += v
	}
	return s
}

func averageOf(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	return sumOf(vals) / float64(len(vals))
}

func maxOf(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	m := vals[0]
	for _, v := range vals[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

func minOf(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	m := vals[0]
	for _, v := range vals[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

func medianOf(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

func modeOf(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	counts := make(map[float64]int, len(vals))
	for _, v := range vals {
		counts[v]++
	}
	best, bestCount := vals[0], 0
	for _, v := range vals {
		if counts[v] > bestCount {
			best, bestCount = v, counts[v]
		}
	}
	return best
}

func rangeOf(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	return maxOf(vals) - minOf(vals)
}

// welfordVariance computes the sample variance (n-1 denominator) using a
// single-pass Welford update, as spec.md §4.4 mandates.
func welfordVariance(vals []float64) float64 {
	if len(vals) < 2 {
		return 0
	}
	var mean, m2 float64
	var n float64
	for _, x := range vals {
		n++
		delta := x - mean
		mean += delta / n
		delta2 := x - mean
		m2 += delta * delta2
	}
	return m2 / (n - 1)
}

// varianceEpsilon is the underflow threshold below which stdev returns
// exactly 0 rather than a tiny non-zero sqrt (spec.md §4.4).
const varianceEpsilon = 1e-12

func stdevOf(vals []float64) float64 {
	v := welfordVariance(vals)
	if math.Abs(v) < varianceEpsilon {
		return 0
	}
	return math.Sqrt(v)
}

func (f *FunctionFactory) registerBuiltins() {
	f.register([]string{"abs"}, unary(math.Abs))
	f.register([]string{"acos", "arccos"}, unary(math.Acos))
	f.register([]string{"asin", "arcsin"}, unary(math.Asin))
	f.register([]string{"atan", "arctan"}, unary(math.Atan))
	f.register([]string{"atan2"}, binary(math.Atan2))
	f.register([]string{"ceil", "ceiling"}, unary(math.Ceil))
	f.register([]string{"cos"}, unary(math.Cos))
	f.register([]string{"cosh"}, unary(math.Cosh))
	f.register([]string{"exp"}, unary(math.Exp))
	f.register([]string{"floor"}, unary(math.Floor))
	f.register([]string{"pow"}, binary(math.Pow))
	f.register([]string{"rem"}, binary(math.Remainder))
	f.register([]string{"root"}, binary(func(a, b float64) float64 { return math.Pow(a, 1/b) }))
	f.register([]string{"round"}, unary(roundHalfAwayFromZero))
	f.register([]string{"sign"}, unary(func(x float64) float64 {
		switch {
		case x > 0:
			return 1
		case x < 0:
			return -1
		default:
			return 0
		}
	}))
	f.register([]string{"sin"}, unary(math.Sin))
	f.register([]string{"sinh"}, unary(math.Sinh))
	f.register([]string{"sqrt"}, unary(math.Sqrt))
	f.register([]string{"tan"}, unary(math.Tan))
	f.register([]string{"tanh"}, unary(math.Tanh))
	f.register([]string{"trunc", "truncate"}, unary(truncateToward0))

	f.register([]string{"sum"}, aggregate(sumOf))
	f.register([]string{"average"}, aggregate(averageOf))
	f.register([]string{"max"}, aggregate(maxOf))
	f.register([]string{"min"}, aggregate(minOf))
	f.register([]string{"median"}, aggregate(medianOf))
	f.register([]string{"mode"}, aggregate(modeOf))
	f.register([]string{"range"}, aggregate(rangeOf))
	f.register([]string{"stdev"}, aggregate(stdevOf))
	f.register([]string{"variance"}, aggregate(welfordVariance))

	f.register([]string{"countif"}, func() Func { return countif })
}

// countif implements spec.md §4.4's built-in countif semantics as
// produced by the countif preprocessing pass (§4.2(b)): the last two
// variants are the sentinel and the operand, every preceding variant is
// a candidate value to test (empty-string variants are skipped).
func countif(args VariantList) (float64, error) {
	if len(args) < 2 {
		return 0, errCountifRequiresTwo()
	}
	operand := args[len(args)-1]
	sentinel := args[len(args)-2]
	candidates := args[:len(args)-2]

	relation := sentinelToRelation(sentinel.Number())

	var count float64
	for _, c := range candidates {
		if c.Kind == VariantString && c.Str == "" {
			continue
		}
		if matchesCountif(c, relation, operand) {
			count++
		}
	}
	return count, nil
}

type countifRelation int

const (
	relEqual countifRelation = iota
	relLess
	relGreater
	relNotEqual
)

// sentinelToRelation maps the synthetic comparison code injected by
// §4.2(b) (0 equals, 1 greater, -1 less, 3 not-equal) to the relation
// countif applies between each candidate and the operand.
func sentinelToRelation(sentinel float64) countifRelation {
	switch sentinel {
	case 1:
		return relGreater
	case -1:
		return relLess
	case 3:
		return relNotEqual
	default:
		return relEqual
	}
}

// matchesCountif applies the relation selected by the sentinel. For a
// same-tag pair CompareTo returns CompareGreater, CompareEqual or
// CompareNotEqual, and CompareNotEqual then means "less than" — there is
// no separate "less" outcome to ask for.
func matchesCountif(candidate Variant, rel countifRelation, operand Variant) bool {
	cmp := candidate.CompareTo(operand)
	switch rel {
	case relLess:
		return candidate.Kind == operand.Kind && cmp == CompareNotEqual
	case relGreater:
		return cmp == CompareGreater
	case relNotEqual:
		return cmp != CompareEqual
	default: // relEqual
		return cmp == CompareEqual
	}
}
