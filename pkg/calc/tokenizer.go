package calc

import (
	"strings"
	"unicode/utf8"
)

// preSubstitutions are applied literally, in order, before scanning
// begins (spec.md §4.1).
var preSubstitutions = []struct{ from, to string }{
	{"+-", "-"},
	{"-+", "-"},
	{"--", "+"},
	{"==", "="},
	{">=", string(runeGEQ)},
	{"<=", string(runeLEQ)},
	{"!=", string(runeNEQ)},
}

// tokenizer scans a raw expression string into a flat Tokens sequence.
// Structured as a small stateful scanner in the shape of the teacher's
// EnhancedTokenizer — a position cursor plus a byte-at-a-time switch —
// but implementing spec.md §4.1's specific scanning rules (implicit
// multiplication, signed-number folding) rather than the teacher's
// YAML-operator grammar.
type tokenizer struct {
	input string
	pos   int
	toks  Tokens
	// prevCh is the last character of the most recently emitted token
	// (including an inserted '*'); skipped whitespace does not change it.
	havePrevCh bool
	prevCh     byte
}

// Tokenize implements spec.md §4.1 end to end: pre-substitutions, then
// the seven character-scanning rules in order of priority.
func Tokenize(expr string) Tokens {
	for _, sub := range preSubstitutions {
		expr = strings.ReplaceAll(expr, sub.from, sub.to)
	}
	t := &tokenizer{input: expr}
	t.run()
	return t.toks
}

func (t *tokenizer) run() {
	for t.pos < len(t.input) {
		ch := t.input[t.pos]

		switch {
		case ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r':
			t.pos++
			continue

		case isLetter(ch):
			t.scanIdent()

		case isDigit(ch) || ch == '.':
			t.scanNumber()

		case (ch == '+' || ch == '-') && t.signFoldsHere():
			t.scanSignedNumber(ch)

		case ch == '(':
			t.maybeInsertImplicitMultiply()
			t.emit("(")
			t.pos++

		default:
			// Any other character: ',' ')' ':' or an operator glyph
			// (including the multi-byte ≥/≤/≠ sentinels substituted in
			// before scanning began), each its own token (spec.md §4.1
			// rule 7).
			r, size := utf8.DecodeRuneInString(t.input[t.pos:])
			t.emit(string(r))
			t.pos += size
		}
	}
}

// signFoldsHere implements spec.md §4.1 rule 5: a leading '+'/'-'
// immediately followed by a digit folds into the numeric token when (a)
// it's the first non-whitespace character, (b) the last emitted token
// is an operator, or (c) the preceding character is '('.
func (t *tokenizer) signFoldsHere() bool {
	if t.pos+1 >= len(t.input) || !(isDigit(t.input[t.pos+1]) || t.input[t.pos+1] == '.') {
		return false
	}
	if len(t.toks) == 0 {
		return true
	}
	last := t.toks[len(t.toks)-1]
	if last == "(" {
		return true
	}
	return Classify(last, builtinOperatorsForClassify) == KindOperator
}

// builtinOperatorsForClassify lets signFoldsHere classify the previous
// token as an operator without threading a *Calculator through the
// tokenizer — host-added operator symbols never participate in sign
// folding decisions because they're appended after tokenization runs
// against a fixed calculator; this table covers exactly the built-ins
// spec.md §4.3 names.
var builtinOperatorsForClassify = NewOperatorTable()

// scanIdent consumes a run of letters and digits starting at t.pos,
// inserting an implicit '*' first if the preceding character was a
// digit or ')' (spec.md §4.1 rule 2).
func (t *tokenizer) scanIdent() {
	t.maybeInsertImplicitMultiply()
	start := t.pos
	for t.pos < len(t.input) && (isLetter(t.input[t.pos]) || isDigit(t.input[t.pos])) {
		t.pos++
	}
	t.emit(t.input[start:t.pos])
}

// scanNumber consumes a run of digits and dots — the tokenizer does not
// reject a second '.'; it simply keeps consuming dots and digits,
// leaving malformed numbers such as "1.2.3" to fail later at evaluation (spec.md
// §4.1 rules 3-4, and §9's open question).
func (t *tokenizer) scanNumber() {
	start := t.pos
	for t.pos < len(t.input) && (isDigit(t.input[t.pos]) || t.input[t.pos] == '.') {
		t.pos++
	}
	t.emit(t.input[start:t.pos])
}

// scanSignedNumber consumes a sign character folded onto the start of a
// numeric run.
func (t *tokenizer) scanSignedNumber(sign byte) {
	start := t.pos
	t.pos++ // consume the sign
	for t.pos < len(t.input) && (isDigit(t.input[t.pos]) || t.input[t.pos] == '.') {
		t.pos++
	}
	t.emit(t.input[start:t.pos])
}

// maybeInsertImplicitMultiply emits a '*' token if the previously
// consumed character was a digit or ')' — implicit multiplication for
// "3x" and ")(" (spec.md §4.1 rules 2 and 6).
func (t *tokenizer) maybeInsertImplicitMultiply() {
	if !t.havePrevCh {
		return
	}
	if isDigit(t.prevCh) || t.prevCh == ')' {
		t.emit("*")
	}
}

// emit appends tok to the token list and records its last character as
// the new "previous character" context.
func (t *tokenizer) emit(tok string) {
	t.toks = append(t.toks, tok)
	if tok != "" {
		t.prevCh = tok[len(tok)-1]
		t.havePrevCh = true
	}
}
