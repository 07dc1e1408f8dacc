package calc

import (
	"strconv"
	"strings"
)

// VariantKind tags the payload a Variant carries. Exactly one payload
// field on Variant corresponds to the tag (spec.md §3's invariant).
type VariantKind int

const (
	VariantEmpty VariantKind = iota
	VariantNumber
	VariantBool
	VariantString
)

// Variant is a tagged union of {Number, Bool, String, Empty}, modeled the
// way the teacher tags its own dispatch values — compare graft's
// Response{Type: Replace, Value: ...} pairing a Type enum with a payload.
// Here the payload is split into typed fields instead of interface{} so
// that an invalid read (e.g. asking a String variant for its number) is
// a visible zero value rather than a silent type assertion panic.
type Variant struct {
	Kind VariantKind
	Num  float64
	Bool bool
	Str  string
}

// NewNumber builds a Number variant.
func NewNumber(v float64) Variant { return Variant{Kind: VariantNumber, Num: v} }

// NewBool builds a Bool variant.
func NewBool(v bool) Variant { return Variant{Kind: VariantBool, Bool: v} }

// NewString builds a String variant.
func NewString(v string) Variant { return Variant{Kind: VariantString, Str: v} }

// NewEmpty builds an Empty variant.
func NewEmpty() Variant { return Variant{Kind: VariantEmpty} }

// ParseVariant infers a Variant's tag from a raw string the way a cell's
// literal text is interpreted: a number if it parses as one, a bool if
// it is exactly "true"/"false" (case-insensitive), empty if blank,
// otherwise a string.
func ParseVariant(s string) Variant {
	if s == "" {
		return NewEmpty()
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return NewNumber(f)
	}
	switch strings.ToLower(s) {
	case "true":
		return NewBool(true)
	case "false":
		return NewBool(false)
	}
	return NewString(s)
}

// Number returns the Number payload, coerced to 0.0 for any other tag —
// arithmetic reads only ever want a float and never want to fail on a
// non-numeric argument mid-reduction (spec.md §4.5: "arithmetic reads
// only the Number payload (coerced to 0.0 otherwise)").
func (v Variant) Number() float64 {
	if v.Kind == VariantNumber {
		return v.Num
	}
	return 0.0
}

// String renders the variant's value for display and for countif's
// matcher parsing.
func (v Variant) String() string {
	switch v.Kind {
	case VariantNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case VariantBool:
		if v.Bool {
			return "true"
		}
		return "false"
	case VariantString:
		return v.Str
	default:
		return ""
	}
}

// CompareResult is the three-valued outcome of Variant.CompareTo: -1
// means "not equal" (including the cross-tag case), 0 means equal, 1
// means greater. This mirrors spec.md §3's "encoded as -1 in the compare
// result, which is distinct from both 0 'equal' and 1 'greater'" — note
// -1 here is a sentinel for "unordered/unequal", not "less than".
type CompareResult int

const (
	CompareNotEqual CompareResult = -1
	CompareEqual    CompareResult = 0
	CompareGreater  CompareResult = 1
)

// CompareTo compares v against other. Cross-tag comparisons always
// return CompareNotEqual. Same-tag: numbers by IEEE ordering, booleans
// by false<true, strings case-insensitive lexicographic (spec.md §4.5).
func (v Variant) CompareTo(other Variant) CompareResult {
	if v.Kind != other.Kind {
		return CompareNotEqual
	}
	switch v.Kind {
	case VariantNumber:
		switch {
		case v.Num == other.Num:
			return CompareEqual
		case v.Num > other.Num:
			return CompareGreater
		default:
			return CompareNotEqual
		}
	case VariantBool:
		if v.Bool == other.Bool {
			return CompareEqual
		}
		if v.Bool && !other.Bool {
			return CompareGreater
		}
		return CompareNotEqual
	case VariantString:
		a, b := strings.ToLower(v.Str), strings.ToLower(other.Str)
		switch {
		case a == b:
			return CompareEqual
		case a > b:
			return CompareGreater
		default:
			return CompareNotEqual
		}
	default: // Empty
		return CompareEqual
	}
}

// VariantList is the ordered argument vector passed to built-in and
// user-defined functions.
type VariantList []Variant

// At returns the Number payload at index i, or 0.0 if i is out of range
// or the element is not a Number (spec.md §3).
func (l VariantList) At(i int) float64 {
	if i < 0 || i >= len(l) {
		return 0.0
	}
	return l[i].Number()
}

// Assert fails if l has fewer elements than len(kinds), or if any of the
// first len(kinds) elements' tags don't match the corresponding entry in
// kinds. Matches spec.md §3's assert(types…) precondition and raises the
// "expected N parameters" / "parameter i is not of type T" taxonomy
// entries from spec.md §7.
func (l VariantList) Assert(kinds ...VariantKind) error {
	if len(l) < len(kinds) {
		return newCalcError(errExpectedParams, "expected %d parameters, got %d", len(kinds), len(l))
	}
	for i, k := range kinds {
		if l[i].Kind != k {
			return newCalcError(errParamType, "parameter %d is not of type %s", i+1, kindName(k))
		}
	}
	return nil
}

func kindName(k VariantKind) string {
	switch k {
	case VariantNumber:
		return "Number"
	case VariantBool:
		return "Boolean"
	case VariantString:
		return "String"
	default:
		return "Empty"
	}
}

// ToDoubleArray keeps Number entries and parses numeric-valued Strings,
// dropping everything else. Used by aggregate built-ins (sum, average,
// max, min, median, mode, range, stdev, variance) to gather their
// numeric operands (spec.md §3).
func (l VariantList) ToDoubleArray() []float64 {
	out := make([]float64, 0, len(l))
	for _, v := range l {
		switch v.Kind {
		case VariantNumber:
			out = append(out, v.Num)
		case VariantString:
			if f, err := strconv.ParseFloat(v.Str, 64); err == nil {
				out = append(out, f)
			}
		}
	}
	return out
}
