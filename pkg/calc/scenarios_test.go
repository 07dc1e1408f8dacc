package calc

import (
	"math"
	"testing"
)

// rowCellProvider returns the row number (as a decimal string) for any
// column, used by scenario 8.
type rowCellProvider struct{}

func (rowCellProvider) CellValue(addr string) (string, bool) {
	_, row := SplitCellAddress(addr)
	return formatNumber(float64(row)), true
}

// parityCellProvider returns "True"/"False" for column D by row parity,
// used by scenario 9.
type parityCellProvider struct{}

func (parityCellProvider) CellValue(addr string) (string, bool) {
	_, row := SplitCellAddress(addr)
	if row%2 == 1 {
		return "True", true
	}
	return "False", true
}

func TestScenario1PowerRightAssociativeSourceLeftAssociativeResult(t *testing.T) {
	c := New("scenario-1")
	got, err := c.Compute("(27 ^ 2) ^ 4")
	if err != nil {
		t.Fatal(err)
	}
	if got != 282429536481 {
		t.Errorf("got %v, want 282429536481", got)
	}
}

func TestScenario2ImplicitMultiplication(t *testing.T) {
	c := New("scenario-2")
	got, err := c.Compute("3(7+3)")
	if err != nil {
		t.Fatal(err)
	}
	if got != 30 {
		t.Errorf("got %v, want 30", got)
	}
}

func TestScenario3DivisionByZero(t *testing.T) {
	c := New("scenario-3")

	got, err := c.Compute("5 / 0")
	if err != nil || !math.IsInf(got, 1) {
		t.Errorf("5/0 = %v, err=%v; want +Inf", got, err)
	}
	got, err = c.Compute("(-30)/0")
	if err != nil || !math.IsInf(got, -1) {
		t.Errorf("(-30)/0 = %v, err=%v; want -Inf", got, err)
	}
	got, err = c.Compute("0/0")
	if err != nil || !math.IsNaN(got) {
		t.Errorf("0/0 = %v, err=%v; want NaN", got, err)
	}
}

func TestScenario4EqualityAsOperator(t *testing.T) {
	c := New("scenario-4")
	got, err := c.Compute("2 + 3 = 1 + 4")
	if err != nil {
		t.Fatal(err)
	}
	if got != 1 {
		t.Errorf("got %v, want 1", got)
	}
}

func TestScenario5LeadingDotLiterals(t *testing.T) {
	c := New("scenario-5")
	got, err := c.Compute(".25 + .25")
	if err != nil {
		t.Fatal(err)
	}
	if got != 0.5 {
		t.Errorf("got %v, want 0.5", got)
	}
}

func TestScenario6UserDefinedFunction(t *testing.T) {
	c := New("scenario-6")
	c.AddFunction("square", func(args VariantList) (float64, error) {
		if err := args.Assert(VariantNumber); err != nil {
			return 0, err
		}
		x := args.At(0)
		return x * x, nil
	})

	if _, err := c.Compute("square((2+3)(3+1)+1)"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	got, err := c.Compute("square(4)")
	if err != nil {
		t.Fatal(err)
	}
	if got != 16 {
		t.Errorf("got %v, want 16", got)
	}
}

func TestScenario7RelativeCellInRange(t *testing.T) {
	c := New("scenario-7", WithCellProvider(CellProviderFunc(func(addr string) (string, bool) {
		return "123", true
	})))
	c.SetVariable("col", 1)
	c.SetVariable("row", 10)

	got, err := c.Compute("sum(A1:cell(0,-1))")
	if err != nil {
		t.Fatal(err)
	}
	if got != 123*9 {
		t.Errorf("got %v, want %v", got, 123*9)
	}
}

func TestScenario8CountifLessThanRelativeOperand(t *testing.T) {
	c := New("scenario-8", WithCellProvider(rowCellProvider{}))
	c.SetVariable("col", 3)
	c.SetVariable("row", 10)

	got, err := c.Compute("countif(A1:A10, < A5)")
	if err != nil {
		t.Fatal(err)
	}
	if got != 4 {
		t.Errorf("got %v, want 4", got)
	}
}

func TestScenario9CountifBoolEquals(t *testing.T) {
	c := New("scenario-9", WithCellProvider(parityCellProvider{}))

	got, err := c.Compute("countif(D1:D10, true)")
	if err != nil {
		t.Fatal(err)
	}
	if got != 5 {
		t.Errorf("got %v, want 5", got)
	}
}

func TestScenario10UserDefinedOperator(t *testing.T) {
	c := New("scenario-10")
	c.AddOperator("$", func(a, b float64) float64 { return a*2 + b*3 })

	got, err := c.Compute("3 $ 2")
	if err != nil {
		t.Fatal(err)
	}
	if got != 12 {
		t.Errorf("got %v, want 12", got)
	}
}

func TestInvariantWhitespaceInsensitive(t *testing.T) {
	c := New("invariant-whitespace")
	a, err := c.Compute("1+2*3")
	if err != nil {
		t.Fatal(err)
	}
	b, err := c.Compute(" 1 + 2 * 3 ")
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Errorf("whitespace changed result: %v vs %v", a, b)
	}
}

func TestInvariantImplicitMultiplicationEquivalence(t *testing.T) {
	c := New("invariant-implicit-mult")
	c.SetVariable("a", 2)
	c.SetVariable("b", 3)
	c.SetVariable("c", 4)

	v1, err := c.Compute("a(b+c)")
	if err != nil {
		t.Fatal(err)
	}
	v2, err := c.Compute("a*(b+c)")
	if err != nil {
		t.Fatal(err)
	}
	v3, err := c.Compute("(b+c)a")
	if err != nil {
		t.Fatal(err)
	}
	if v1 != v2 || v2 != v3 {
		t.Errorf("implicit multiplication forms disagree: %v %v %v", v1, v2, v3)
	}
}

func TestInvariantSignFolding(t *testing.T) {
	c := New("invariant-sign-folding")
	n, err := c.Compute("5")
	if err != nil {
		t.Fatal(err)
	}
	if v, err := c.Compute("--5"); err != nil || v != n {
		t.Errorf("--5 = %v, %v; want %v", v, err, n)
	}
	if v, err := c.Compute("-+5"); err != nil || v != -n {
		t.Errorf("-+5 = %v, %v; want %v", v, err, -n)
	}
	if v, err := c.Compute("+-5"); err != nil || v != -n {
		t.Errorf("+-5 = %v, %v; want %v", v, err, -n)
	}
}

func TestInvariantPrecedence(t *testing.T) {
	c := New("invariant-precedence")
	c.SetVariable("a", 2)
	c.SetVariable("b", 3)
	c.SetVariable("cc", 4)

	v1, err := c.Compute("a+b*cc")
	if err != nil {
		t.Fatal(err)
	}
	v2, err := c.Compute("a+(b*cc)")
	if err != nil {
		t.Fatal(err)
	}
	if v1 != v2 {
		t.Errorf("precedence invariant broke: %v vs %v", v1, v2)
	}
}

func TestInvariantCellCodecRoundTrip(t *testing.T) {
	for k := 1; k <= 200; k++ {
		if LettersToIndex(IndexToLetters(k)) != k {
			t.Fatalf("round trip broke at %d", k)
		}
	}
}

func TestInvariantRelativeCellIdentity(t *testing.T) {
	c := New("invariant-relative-cell", WithCellProvider(CellProviderFunc(func(addr string) (string, bool) {
		return "0", true
	})))
	c.SetVariable("col", 3)
	c.SetVariable("row", 10)

	toks, err := rewriteRelativeCells(Tokens{"cell", "(", "0", ",", "0", ")"}, c.vars, c.ops)
	if err != nil {
		t.Fatal(err)
	}
	want := IndexToLetters(3) + "10"
	if len(toks) != 1 || toks[0] != want {
		t.Errorf("cell(0,0) = %v, want %s", toks, want)
	}
}

func TestInvariantRangeSymmetry(t *testing.T) {
	c := New("invariant-range-symmetry", WithCellProvider(CellProviderFunc(func(addr string) (string, bool) {
		return "3", true
	})))

	forward, err := c.Compute("sum(A1:A9)")
	if err != nil {
		t.Fatal(err)
	}
	backward, err := c.Compute("sum(A9:A1)")
	if err != nil {
		t.Fatal(err)
	}
	if forward != backward {
		t.Errorf("range symmetry broke: %v vs %v", forward, backward)
	}
}
