package calc

import (
	"strconv"
	"strings"
)

// evalContext bundles the tables an evaluation run needs, threaded
// through instead of hung off *Calculator so arith/evaluator stay
// testable without constructing a full Calculator (spec.md §4.4).
type evalContext struct {
	ops   *OperatorTable
	funcs *FunctionFactory
}

// Evaluate implements spec.md §4.4: repeatedly find the innermost
// matching paren pair, reduce its contents (a function call if
// immediately preceded by an identifier that resolves to a known
// function, otherwise a bare arithmetic sub-expression), and splice the
// single resulting number back in, until no parens remain — then do one
// final arithmetic reduction over the flat remainder.
//
// A paren group not consumed as a call still has the token it follows:
// a number (post variable-substitution), a cell address, an unresolved
// identifier, or a prior group's result. That token is an operand, not
// an operator, so an implicit "*" goes between it and the reduced
// result — the in-place mirror of the tokenizer's own rule 6, needed
// here because substitution can turn an identifier into a bare number
// only after tokenizing has already missed the chance to insert one.
func Evaluate(toks Tokens, ctx *evalContext) (float64, error) {
	work := append(Tokens(nil), toks...)

	for {
		open := lastUnmatchedOpen(work)
		if open < 0 {
			break
		}
		closeIdx := matchingParen(work, open)
		if closeIdx < 0 {
			return 0, errNoClosingBracketTok()
		}

		inner := work[open+1 : closeIdx]

		fnNameIdx := open - 1
		fnName := ""
		isCall := false
		if fnNameIdx >= 0 {
			candidate := work[fnNameIdx]
			if Classify(candidate, ctx.ops) == KindIdent && !IsCellAddress(candidate) {
				if _, ok := ctx.funcs.Lookup(candidate); ok {
					fnName = candidate
					isCall = true
				}
			}
		}

		var result float64
		var err error
		var spliceFrom int
		implicitMultiply := false

		if isCall {
			result, err = evalCall(fnName, inner, ctx)
			spliceFrom = fnNameIdx
		} else {
			result, err = reduceArithmetic(inner, ctx.ops)
			spliceFrom = open
			if fnNameIdx >= 0 {
				switch Classify(work[fnNameIdx], ctx.ops) {
				case KindNumber, KindIdent, KindRParen:
					implicitMultiply = true
				}
			}
		}
		if err != nil {
			return 0, err
		}

		replaced := append(Tokens{}, work[:spliceFrom]...)
		if implicitMultiply {
			replaced = append(replaced, "*")
		}
		replaced = append(replaced, formatNumber(result))
		replaced = append(replaced, work[closeIdx+1:]...)
		work = replaced
	}

	return reduceArithmetic(work, ctx.ops)
}

// lastUnmatchedOpen returns the index of the last "(" in toks — scanning
// right to left for an opening paren finds an innermost pair directly,
// since the first "(" encountered this way can only close at the
// nearest ")" to its right with nothing else open in between.
func lastUnmatchedOpen(toks Tokens) int {
	for i := len(toks) - 1; i >= 0; i-- {
		if toks[i] == "(" {
			return i
		}
	}
	return -1
}

// evalCall dispatches a function call whose argument list has already
// been reduced to a paren-free token run. Each top-level comma splits an
// argument; a countif argument slice that is a single non-numeric token
// is converted with ParseVariant (a Bool for "true"/"false" in any case,
// otherwise a String), everything else is reduced arithmetically and
// wrapped as a Number.
func evalCall(name string, inner Tokens, ctx *evalContext) (float64, error) {
	fn, ok := ctx.funcs.Lookup(name)
	if !ok {
		return 0, errOperatorNotDefined(name)
	}

	args, err := splitArgs(inner, name, ctx.ops)
	if err != nil {
		return 0, err
	}
	return fn(args)
}

func splitArgs(inner Tokens, fnName string, ops *OperatorTable) (VariantList, error) {
	if len(inner) == 0 {
		return nil, nil
	}

	var slices []Tokens
	depth := 0
	start := 0
	for i, tok := range inner {
		switch tok {
		case "(":
			depth++
		case ")":
			depth--
		case ",":
			if depth == 0 {
				slices = append(slices, inner[start:i])
				start = i + 1
			}
		}
	}
	slices = append(slices, inner[start:])

	isCountif := strings.EqualFold(fnName, "countif")

	args := make(VariantList, 0, len(slices))
	for _, slice := range slices {
		if isCountif && len(slice) == 1 {
			if _, err := strconv.ParseFloat(slice[0], 64); err != nil {
				args = append(args, ParseVariant(slice[0]))
				continue
			}
		}
		v, err := reduceArithmetic(slice, ops)
		if err != nil {
			return nil, err
		}
		args = append(args, NewNumber(v))
	}
	return args, nil
}
