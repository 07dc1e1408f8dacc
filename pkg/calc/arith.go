package calc

import "strconv"

// reduceArithmetic consumes a token list containing only numbers and
// binary operators (no parens, no functions, no cell refs) and returns
// a single number, following spec.md §4.3 exactly: special cases for
// zero/one/two tokens, then a precedence-ordered leftmost-occurrence
// reduction for the general case.
func reduceArithmetic(toks Tokens, ops *OperatorTable) (float64, error) {
	switch len(toks) {
	case 0:
		return 0, nil
	case 1:
		f, err := strconv.ParseFloat(toks[0], 64)
		if err != nil {
			return 0, errVariableUndefined(toks[0])
		}
		return f, nil
	case 2:
		return reduceUnary(toks, ops)
	}

	work := append(Tokens(nil), toks...)
	for _, sym := range ops.Symbols() {
		for {
			pos := indexOfOperator(work, sym, ops)
			if pos < 0 {
				break
			}
			reduced, err := reduceAt(work, pos, sym, ops)
			if err != nil {
				return 0, err
			}
			work = reduced
		}
	}

	if len(work) != 1 {
		// Any operator at position 0 that survives (a leading unary
		// symbol the table doesn't know how to apply as op(0,x) above)
		// is an undefined leading operator.
		return 0, errOperatorNotDefined(work[0])
	}
	return strconv.ParseFloat(work[0], 64)
}

// reduceUnary handles the two-token special cases of spec.md §4.3: a
// leading sign token applied to a single operand, or any other leading
// operator applied as op(0, x).
func reduceUnary(toks Tokens, ops *OperatorTable) (float64, error) {
	first, second := toks[0], toks[1]
	if first == "+" || first == "-" {
		rhs, err := parseNumberToken(second)
		if err != nil {
			return 0, err
		}
		if first == "-" {
			return -rhs, nil
		}
		return rhs, nil
	}
	fn, ok := ops.Lookup(first)
	if !ok {
		return 0, errOperatorNotDefined(first)
	}
	rhs, err := parseNumberToken(second)
	if err != nil {
		return 0, err
	}
	return fn(0, rhs), nil
}

// reduceAt reduces the operator occurrence at position pos in work,
// replacing the (operand, operator, operand) triple with its result —
// or, for a leading operator at pos==0, the (operator, operand) pair
// applied as op(0, rhs) (spec.md §4.3).
func reduceAt(work Tokens, pos int, sym string, ops *OperatorTable) (Tokens, error) {
	fn, _ := ops.Lookup(sym)
	if pos == 0 {
		rhs, err := parseNumberToken(work[1])
		if err != nil {
			return nil, err
		}
		result := fn(0, rhs)
		out := append(Tokens{formatNumber(result)}, work[2:]...)
		return out, nil
	}

	lhs, err := parseNumberToken(work[pos-1])
	if err != nil {
		return nil, err
	}
	rhs, err := parseNumberToken(work[pos+1])
	if err != nil {
		return nil, err
	}
	result := fn(lhs, rhs)

	out := make(Tokens, 0, len(work)-2)
	out = append(out, work[:pos-1]...)
	out = append(out, formatNumber(result))
	out = append(out, work[pos+2:]...)
	return out, nil
}

// indexOfOperator returns the leftmost index of sym in work, treating a
// sym at position 0 as a candidate only when it can be reduced as a
// leading unary application (spec.md §4.3's left-associative leftmost
// scan).
func indexOfOperator(work Tokens, sym string, ops *OperatorTable) int {
	for i, tok := range work {
		if tok != sym {
			continue
		}
		if i == 0 {
			if len(work) < 2 {
				continue
			}
			return i
		}
		return i
	}
	return -1
}

func parseNumberToken(tok string) (float64, error) {
	f, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, errVariableUndefined(tok)
	}
	return f, nil
}

// formatNumber renders a float64 using invariant formatting (decimal
// point, no thousands separator, no locale dependence) — spec.md §6.
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
