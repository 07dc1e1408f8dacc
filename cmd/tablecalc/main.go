// Command tablecalc is a reference CLI around pkg/calc: evaluate a
// single expression, run an interactive REPL over a CSV-backed grid, or
// batch-evaluate a column of expressions. Structured the way the
// teacher's cmd/graft main wires goptions verbs, go-isatty color
// detection, and goutils/ansi formatted errors.
package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/starkandwayne/goutils/ansi"
	"github.com/voxelbrain/goptions"

	"github.com/tablecalc/tablecalc/internal/cellgrid"
	"github.com/tablecalc/tablecalc/pkg/calc"
)

var printfStdOut = func(format string, args ...interface{}) {
	fmt.Fprintf(os.Stdout, format, args...)
}

var printfStdErr = func(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format, args...)
}

var exit = func(code int) { os.Exit(code) }

var usage = func() {
	goptions.PrintHelp()
	exit(1)
}

type evalOpts struct {
	Grid       string `goptions:"--grid, description='CSV file backing cell references'"`
	Col        int    `goptions:"--col, description='Column index for cell() relative addressing'"`
	Row        int    `goptions:"--row, description='Row index for cell() relative addressing'"`
	Debug      bool   `goptions:"--debug, description='Trace tokenizer and preprocessor output to stderr'"`
	Expression goptions.Remainder `goptions:"description='Expression to evaluate'"`
}

type replOpts struct {
	Grid  string `goptions:"--grid, description='CSV file backing cell references'"`
	Debug bool   `goptions:"--debug, description='Trace tokenizer and preprocessor output to stderr'"`
}

type batchOpts struct {
	Grid goptions.Remainder `goptions:"description='CSV file; one expression per row, first column'"`
	Col  string             `goptions:"--result-col, description='Column letter to label results with (default A; report-only, not written back)'"`
}

func main() {
	var options struct {
		Color   string `goptions:"--color, description='Control color output (on/off/auto, default: auto)'"`
		Help    bool   `goptions:"-h, --help"`
		Action  goptions.Verbs
		Eval    evalOpts  `goptions:"eval"`
		Repl    replOpts  `goptions:"repl"`
		Batch   batchOpts `goptions:"batch"`
	}
	if err := goptions.Parse(&options); err != nil {
		usage()
		return
	}

	shouldColor := false
	switch options.Color {
	case "on":
		shouldColor = true
	case "off":
		shouldColor = false
	default:
		shouldColor = isatty.IsTerminal(os.Stderr.Fd())
	}
	ansi.Color(shouldColor)

	if options.Help {
		usage()
		return
	}

	switch options.Action {
	case "eval":
		runEval(options.Eval)
	case "repl":
		runRepl(options.Repl)
	case "batch":
		runBatch(options.Batch)
	default:
		usage()
	}
}

func newCalculator(gridPath string, debug bool) (*calc.Calculator, error) {
	opts := []calc.Option{}
	if debug {
		opts = append(opts, calc.WithDebug(os.Stderr))
	}
	if gridPath != "" {
		g, err := cellgrid.Load(gridPath)
		if err != nil {
			return nil, err
		}
		opts = append(opts, calc.WithCellProvider(g))
	}
	return calc.New(uuid.NewString(), opts...), nil
}

func runEval(opts evalOpts) {
	c, err := newCalculator(opts.Grid, opts.Debug)
	if err != nil {
		printfStdErr("%s\n", ansi.Sprintf("@R{%s}", err.Error()))
		exit(2)
		return
	}
	c.SetVariable("col", float64(opts.Col))
	c.SetVariable("row", float64(opts.Row))

	if len(opts.Expression) == 0 {
		usage()
		return
	}
	expr := opts.Expression[0]

	result, err := c.Compute(expr)
	if err != nil {
		reportError(c, err)
		exit(1)
		return
	}
	printfStdOut("%v\n", result)
}

func runRepl(opts replOpts) {
	c, err := newCalculator(opts.Grid, opts.Debug)
	if err != nil {
		printfStdErr("%s\n", ansi.Sprintf("@R{%s}", err.Error()))
		exit(2)
		return
	}

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		result, err := c.ProgrammaticallyParse(line)
		if err != nil {
			reportError(c, err)
			continue
		}
		printfStdOut("%v\n", result)
	}
}

func runBatch(opts batchOpts) {
	if len(opts.Grid) == 0 {
		usage()
		return
	}
	g, err := cellgrid.Load(opts.Grid[0])
	if err != nil {
		printfStdErr("%s\n", ansi.Sprintf("@R{%s}", err.Error()))
		exit(2)
		return
	}

	c := calc.New(uuid.NewString(), calc.WithCellProvider(g))
	for row := 1; row <= g.RowCount(); row++ {
		expr, ok := g.CellValue(fmt.Sprintf("A%d", row))
		if !ok || expr == "" {
			continue
		}
		c.SetVariable("row", float64(row))
		c.SetVariable("col", 1)
		result, err := c.Compute(expr)
		if err != nil {
			reportError(c, err)
			continue
		}
		label := "A"
		if opts.Col != "" {
			label = opts.Col
		}
		printfStdOut("%s%d = %v\n", label, row, result)
	}
}

func reportError(c *calc.Calculator, err error) {
	if ce, ok := err.(*calc.CalcError); ok {
		printfStdErr("[%s] %s\n", c.ID(), ce.Format(true))
		return
	}
	printfStdErr("%s\n", ansi.Sprintf("@R{%s}", err.Error()))
}
