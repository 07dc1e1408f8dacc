package calc

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestTokenizeImplicitMultiplication(t *testing.T) {
	Convey("Implicit multiplication is inserted around digits and parens", t, func() {
		Convey("a number immediately before an identifier folds in a '*'", func() {
			So(Tokenize("3x"), ShouldResemble, Tokens{"3", "*", "x"})
		})
		Convey("a number immediately before '(' folds in a '*'", func() {
			So(Tokenize("3(7+3)"), ShouldResemble, Tokens{"3", "*", "(", "7", "+", "3", ")"})
		})
		Convey("a closing paren immediately before '(' folds in a '*'", func() {
			So(Tokenize("(2+3)(3+1)"), ShouldResemble, Tokens{
				"(", "2", "+", "3", ")", "*", "(", "3", "+", "1", ")",
			})
		})
	})
}

func TestTokenizeSignFolding(t *testing.T) {
	Convey("Sign folding collapses chained +/- into a single leading sign", t, func() {
		So(Tokenize("--5"), ShouldResemble, Tokens{"+5"})
		So(Tokenize("-+5"), ShouldResemble, Tokenize("-5"))
		So(Tokenize("+-5"), ShouldResemble, Tokenize("-5"))
	})
}

func TestTokenizeWhitespaceInsensitive(t *testing.T) {
	Convey("Whitespace never changes the resulting token stream", t, func() {
		So(Tokenize("1+2*3"), ShouldResemble, Tokenize(" 1 + 2 * 3 "))
	})
}

func TestTokenizeComparisonSubstitution(t *testing.T) {
	Convey("Two-character comparisons substitute to sentinel code points", t, func() {
		So(Tokenize("a>=b"), ShouldResemble, Tokens{"a", string(runeGEQ), "b"})
		So(Tokenize("a<=b"), ShouldResemble, Tokens{"a", string(runeLEQ), "b"})
		So(Tokenize("a!=b"), ShouldResemble, Tokens{"a", string(runeNEQ), "b"})
		So(Tokenize("a==b"), ShouldResemble, Tokens{"a", "=", "b"})
	})
}

func TestTokenizeSignedLeadingNumber(t *testing.T) {
	Convey("A leading sign folds onto the first numeric literal", t, func() {
		So(Tokenize("-5+3"), ShouldResemble, Tokens{"-5", "+", "3"})
	})
	Convey("A sign after an operator folds onto the following numeric literal", t, func() {
		So(Tokenize("5*-3"), ShouldResemble, Tokens{"5", "*", "-3"})
	})
	Convey("A sign after '(' folds onto the following numeric literal", t, func() {
		So(Tokenize("(-3+1)"), ShouldResemble, Tokens{"(", "-3", "+", "1", ")"})
	})
	Convey("A bare operator standing between two numbers does not fold", func() {
		So(Tokenize("3-5"), ShouldResemble, Tokens{"3", "-", "5"})
	})
}
