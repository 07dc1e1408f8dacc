// Package calc implements an embeddable arithmetic expression calculator
// for a spreadsheet-like table host: numeric expressions with variables
// and functions, cell references and ranges, a position-relative cell()
// helper, and a countif predicate over ranges.
package calc

import (
	"strconv"
	"strings"
)

// Kind classifies a Token by inspection, never by how it was produced.
// Classification is recomputed on demand rather than cached on the token,
// since preprocessors routinely splice raw strings into the stream.
type Kind int

const (
	KindNumber Kind = iota
	KindOperator
	KindLParen
	KindRParen
	KindComma
	KindColon
	KindIdent
	KindOther
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindOperator:
		return "operator"
	case KindLParen:
		return "lparen"
	case KindRParen:
		return "rparen"
	case KindComma:
		return "comma"
	case KindColon:
		return "colon"
	case KindIdent:
		return "ident"
	default:
		return "other"
	}
}

// Sentinel code points substituted for the two-character comparison
// operators during tokenization (spec.md §4.1).
const (
	runeGEQ = '≥'
	runeLEQ = '≤'
	runeNEQ = '≠'
)

// Tokens is the mutable, ordered token sequence the preprocessors and the
// evaluator rewrite in place. It owns no state beyond the slice itself —
// per spec.md §5 a token list is per-evaluation and never shared across
// calls.
type Tokens []string

// Classify inspects a single token string and returns its Kind, using the
// operator table to distinguish an operator glyph from an identifier or
// bare punctuation.
func Classify(tok string, ops *OperatorTable) Kind {
	if tok == "" {
		return KindOther
	}
	if _, err := strconv.ParseFloat(tok, 64); err == nil {
		return KindNumber
	}
	if ops != nil && ops.Has(tok) {
		return KindOperator
	}
	switch tok {
	case "(":
		return KindLParen
	case ")":
		return KindRParen
	case ",":
		return KindComma
	case ":":
		return KindColon
	}
	if isIdentStart(rune(tok[0])) {
		if isIdent(tok) {
			return KindIdent
		}
	}
	return KindOther
}

// isIdentStart reports whether r can begin an identifier: an ASCII letter.
func isIdentStart(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// isIdentCont reports whether r can continue an identifier: an ASCII
// letter or digit.
func isIdentCont(r rune) bool {
	return isIdentStart(r) || (r >= '0' && r <= '9')
}

// isIdent reports whether s is a well-formed identifier token: starts
// with a letter, continues with letters and digits only.
func isIdent(s string) bool {
	if s == "" || !isIdentStart(rune(s[0])) {
		return false
	}
	for i := 1; i < len(s); i++ {
		if !isIdentCont(rune(s[i])) {
			return false
		}
	}
	return true
}

// isDigit reports whether b is an ASCII digit.
func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// isLetter reports whether b is an ASCII letter.
func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// JoinForDisplay renders a token slice back into a single-line string for
// error messages and trace logging, space-separated.
func JoinForDisplay(toks Tokens) string {
	return strings.Join([]string(toks), " ")
}
