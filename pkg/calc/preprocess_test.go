package calc

import (
	"testing"
)

func constCells(val string) CellProvider {
	return CellProviderFunc(func(addr string) (string, bool) { return val, true })
}

func TestSubstituteVariablesSkipsRangeEndpoints(t *testing.T) {
	vars := map[string]float64{"pi": 3.14}
	toks := Tokens{"A1", ":", "A9", "+", "pi"}
	out, err := substituteVariables(toks, vars, constCells("7"))
	if err != nil {
		t.Fatal(err)
	}
	want := Tokens{"A1", ":", "A9", "+", "3.14"}
	if !tokensEqual(out, want) {
		t.Errorf("got %v, want %v (range endpoints must not be substituted)", out, want)
	}
}

func TestSubstituteVariablesStandaloneCellRef(t *testing.T) {
	toks := Tokens{"A1", "+", "1"}
	out, err := substituteVariables(toks, nil, constCells("42"))
	if err != nil {
		t.Fatal(err)
	}
	want := Tokens{"42", "+", "1"}
	if !tokensEqual(out, want) {
		t.Errorf("got %v, want %v", out, want)
	}
}

func TestSubstituteVariablesNoProviderErrors(t *testing.T) {
	toks := Tokens{"A1"}
	if _, err := substituteVariables(toks, nil, nil); err == nil {
		t.Errorf("expected error when no cell provider is installed")
	}
}

func TestRewriteCountifWithComparator(t *testing.T) {
	toks := Tokenize("countif(A1:A10,<5)")
	out, err := rewriteCountif(toks)
	if err != nil {
		t.Fatal(err)
	}
	want := Tokens{"countif", "(", "A1", ":", "A10", ",", "-1", ",", "5", ")"}
	if !tokensEqual(out, want) {
		t.Errorf("got %v, want %v", out, want)
	}
}

func TestRewriteCountifNoComparator(t *testing.T) {
	toks := Tokenize("countif(A1:A10,true)")
	out, err := rewriteCountif(toks)
	if err != nil {
		t.Fatal(err)
	}
	want := Tokens{"countif", "(", "A1", ":", "A10", ",", "0", ",", "true", ")"}
	if !tokensEqual(out, want) {
		t.Errorf("got %v, want %v", out, want)
	}
}

func TestRewriteRelativeCells(t *testing.T) {
	vars := map[string]float64{"col": 3, "row": 10}
	ops := NewOperatorTable()
	toks := Tokens{"cell", "(", "0", ",", "-1", ")"}
	out, err := rewriteRelativeCells(toks, vars, ops)
	if err != nil {
		t.Fatal(err)
	}
	want := Tokens{"C9"}
	if !tokensEqual(out, want) {
		t.Errorf("got %v, want %v", out, want)
	}
}

func TestExpandRangesRowAligned(t *testing.T) {
	toks := Tokens{"A1", ":", "A3"}
	out, err := expandRanges(toks, constCells("9"))
	if err != nil {
		t.Fatal(err)
	}
	want := Tokens{"9", ",", "9", ",", "9"}
	if !tokensEqual(out, want) {
		t.Errorf("got %v, want %v", out, want)
	}
}

func TestExpandRangesSymmetric(t *testing.T) {
	forward, err := expandRanges(Tokens{"A1", ":", "A9"}, constCells("3"))
	if err != nil {
		t.Fatal(err)
	}
	backward, err := expandRanges(Tokens{"A9", ":", "A1"}, constCells("3"))
	if err != nil {
		t.Fatal(err)
	}
	if len(forward) != len(backward) {
		t.Errorf("range expansion must be symmetric in length: %v vs %v", forward, backward)
	}
}

func tokensEqual(a, b Tokens) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
