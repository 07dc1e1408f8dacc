package calc

import (
	"regexp"
	"strings"
)

// VariableDeclarator recognizes a "declare a variable" line and splits
// it into the variable name and the expression assigned to it. Hosts
// that use a different declaration grammar can supply their own via
// WithVariableDeclarator (spec.md §6).
type VariableDeclarator interface {
	// Declaration reports whether line declares a variable, returning
	// its name and the right-hand-side expression text.
	Declaration(line string) (name, expr string, ok bool)
}

// defaultVariableDeclarator recognizes "let NAME = EXPR", "let NAME be
// EXPR", "let NAME := EXPR", and bare "NAME := EXPR".
type defaultVariableDeclarator struct{}

var (
	letAssignPattern = regexp.MustCompile(`(?i)^\s*let\s+([A-Za-z_][A-Za-z0-9_]*)\s*(?::=|=|be)\s*(.+)$`)
	bareAssignPattern = regexp.MustCompile(`^\s*([A-Za-z_][A-Za-z0-9_]*)\s*:=\s*(.+)$`)
)

func (defaultVariableDeclarator) Declaration(line string) (string, string, bool) {
	if m := letAssignPattern.FindStringSubmatch(line); m != nil {
		return m[1], strings.TrimSpace(m[2]), true
	}
	if m := bareAssignPattern.FindStringSubmatch(line); m != nil {
		return m[1], strings.TrimSpace(m[2]), true
	}
	return "", "", false
}

// commentBlockPattern strips "#{ ... }#" block comments (non-greedy,
// can span the whole line since ProgrammaticallyParse operates
// line-by-line).
var commentBlockPattern = regexp.MustCompile(`#\{.*?\}#`)

// stripComments removes "#{...}#" block comments and any "#..." line
// comment trailing on the same line (spec.md §6).
func stripComments(line string) string {
	line = commentBlockPattern.ReplaceAllString(line, "")
	if idx := strings.IndexByte(line, '#'); idx >= 0 {
		line = line[:idx]
	}
	return line
}

// typoCorrections maps commonly mistyped function names to their
// canonical built-in name, applied as whole-identifier replacements
// before tokenization (spec.md §6).
var typoCorrections = map[string]string{
	"sqr":     "sqrt",
	"arctan2": "atan2",
}

var identPattern = regexp.MustCompile(`[A-Za-z_][A-Za-z0-9_]*`)

func applyTypoCorrections(line string) string {
	return identPattern.ReplaceAllStringFunc(line, func(ident string) string {
		if canon, ok := typoCorrections[strings.ToLower(ident)]; ok {
			return canon
		}
		return ident
	})
}

// ProgrammaticallyParse processes a multi-line program: each line has
// comments stripped and typo corrections applied, then is either
// recorded as a variable declaration (evaluated immediately and stored
// via SetVariable) or evaluated as a final expression. The value of the
// last non-declaration, non-blank line is returned (spec.md §6).
func (c *Calculator) ProgrammaticallyParse(program string) (float64, error) {
	var result float64
	var haveResult bool

	for _, raw := range strings.Split(program, "\n") {
		line := strings.TrimSpace(stripComments(raw))
		if line == "" {
			continue
		}
		line = applyTypoCorrections(line)

		if name, expr, ok := c.declarator.Declaration(line); ok {
			v, err := c.Compute(expr)
			if err != nil {
				return 0, err
			}
			c.SetVariable(name, v)
			continue
		}

		v, err := c.Compute(line)
		if err != nil {
			return 0, err
		}
		result, haveResult = v, true
	}

	if !haveResult {
		return 0, nil
	}
	return result, nil
}
