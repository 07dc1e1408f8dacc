package calc

import (
	"math"
	"testing"
)

func TestReduceArithmeticBasics(t *testing.T) {
	ops := NewOperatorTable()

	cases := []struct {
		expr string
		want float64
	}{
		{"", 0},
		{"5", 5},
		{"-5", -5},
		{"+5", 5},
		{"3-5", -2},
		{"-5+3", -2},
		{"2+3*4", 14},
		{"2^3^2", 64}, // left-associative: (2^3)^2
	}
	for _, tc := range cases {
		got, err := reduceArithmetic(Tokenize(tc.expr), ops)
		if err != nil {
			t.Fatalf("reduceArithmetic(%q) error: %v", tc.expr, err)
		}
		if got != tc.want {
			t.Errorf("reduceArithmetic(%q) = %v, want %v", tc.expr, got, tc.want)
		}
	}
}

func TestDivisionByZero(t *testing.T) {
	ops := NewOperatorTable()

	got, err := reduceArithmetic(Tokenize("5/0"), ops)
	if err != nil || !math.IsInf(got, 1) {
		t.Errorf("5/0 = %v, err=%v; want +Inf", got, err)
	}
	got, err = reduceArithmetic(Tokenize("-30/0"), ops)
	if err != nil || !math.IsInf(got, -1) {
		t.Errorf("-30/0 = %v, err=%v; want -Inf", got, err)
	}
	got, err = reduceArithmetic(Tokenize("0/0"), ops)
	if err != nil || !math.IsNaN(got) {
		t.Errorf("0/0 = %v, err=%v; want NaN", got, err)
	}
}

func TestEqualityTolerance(t *testing.T) {
	ops := NewOperatorTable()
	got, err := reduceArithmetic(Tokenize("1.000000001=1"), ops)
	if err != nil {
		t.Fatal(err)
	}
	if got != 1 {
		t.Errorf("expected values within tolerance to compare equal, got %v", got)
	}
}
