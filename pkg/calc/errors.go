package calc

import (
	"fmt"
	"strings"
)

// errorKind is a stable code identifying which of spec.md §7's taxonomy
// entries produced a CalcError. Unlike the teacher's CompilerError (which
// only carries line/column), a calculator error carries the cell name
// when relevant — cells, not source lines, are this domain's position.
type errorKind string

const (
	errInvalidParamAtCell errorKind = "invalid_parameter_at_cell"
	errInvalidRange       errorKind = "invalid_range"
	errUndefinedCellRef   errorKind = "undefined_cell_ref"
	errInvalidCellRange   errorKind = "invalid_cell_range"
	errNoClosingBracket   errorKind = "no_closing_bracket"
	errVarUndefined       errorKind = "variable_undefined"
	errOperatorUndefined  errorKind = "operator_undefined"
	errCellTwoParams      errorKind = "cell_two_params"
	errCellRequiresColRow errorKind = "cell_requires_col_row"
	errExpectedParams     errorKind = "expected_params"
	errParamType          errorKind = "param_type"
	errCountifArity       errorKind = "countif_arity"
)

// CalcError is the single structured failure kind spec.md §7 calls for:
// one kind, a human-readable message, and an optional cell/position tag.
// Modeled on CWBudde-go-dws's CompilerError — message plus positional
// context plus a caret-pointing Format — adapted from source-line
// positions to the calculator's token-index/cell-name positions.
type CalcError struct {
	Kind       errorKind
	Message    string
	Cell       string // optional: the offending cell address, e.g. "A1"
	Expression string // the original Compute input, for display context
	TokenIndex int    // index into the token stream at failure time, -1 if n/a
}

func newCalcError(kind errorKind, format string, args ...interface{}) *CalcError {
	return &CalcError{Kind: kind, Message: fmt.Sprintf(format, args...), TokenIndex: -1}
}

func (e *CalcError) withCell(cell string) *CalcError {
	e.Cell = cell
	return e
}

func (e *CalcError) withExpression(expr string) *CalcError {
	e.Expression = expr
	return e
}

func (e *CalcError) withTokenIndex(i int) *CalcError {
	e.TokenIndex = i
	return e
}

// Error implements the error interface with spec.md §7's literal message
// text.
func (e *CalcError) Error() string {
	return e.Message
}

// Format renders the error with context, loosely after CWBudde-go-dws's
// CompilerError.Format: an "Error:" or "Error at cell X:" prefix, the
// message (wrapped in ANSI red when color is true), and, when known, an
// "in:" line holding the original expression. No caret line is drawn;
// TokenIndex is not used here.
func (e *CalcError) Format(color bool) string {
	var sb strings.Builder
	if e.Cell != "" {
		sb.WriteString(fmt.Sprintf("Error at cell %s: ", e.Cell))
	} else {
		sb.WriteString("Error: ")
	}
	if color {
		sb.WriteString("\033[1;31m")
	}
	sb.WriteString(e.Message)
	if color {
		sb.WriteString("\033[0m")
	}
	if e.Expression != "" {
		sb.WriteString("\n  in: ")
		sb.WriteString(e.Expression)
	}
	return sb.String()
}

// --- taxonomy constructors, one per spec.md §7 bullet ---

func errInvalidParameterAtCell(cell string) *CalcError {
	return newCalcError(errInvalidParamAtCell, "invalid parameter at cell %s", cell).withCell(cell)
}

func errInvalidRangeTok() *CalcError {
	return newCalcError(errInvalidRange, "invalid range")
}

func errUndefinedCellRefTok() *CalcError {
	return newCalcError(errUndefinedCellRef, "undefined cell ref")
}

func errInvalidCellRangeTok() *CalcError {
	return newCalcError(errInvalidCellRange, "invalid cell range")
}

func errNoClosingBracketTok() *CalcError {
	return newCalcError(errNoClosingBracket, "no closing bracket")
}

func errVariableUndefined(name string) *CalcError {
	return newCalcError(errVarUndefined, "variable %s is undefined", name)
}

func errOperatorNotDefined(name string) *CalcError {
	return newCalcError(errOperatorUndefined, "operator %s is not defined", name)
}

func errCellMustHaveTwoParams() *CalcError {
	return newCalcError(errCellTwoParams, "cell function must have two parameters")
}

func errRequiresColAndRow() *CalcError {
	return newCalcError(errCellRequiresColRow, "requires col and row")
}

func errCountifRequiresTwo() *CalcError {
	return newCalcError(errCountifArity, "countif function requires at least two parameters")
}
