package calc

import (
	"fmt"
	"io"
	"os"
)

// Debugger receives tracing output from a Calculator as Compute runs.
// It is attached per-instance via WithDebugger/SetDebugger rather than
// toggled through a package-level flag — spec.md §5 rules out any
// global mutable state, so two Calculators in the same process can run
// with independently enabled tracing (SPEC_FULL.md §4.6).
type Debugger interface {
	Debugf(id, msg string)
}

// writerDebugger writes tagged trace lines to an io.Writer.
type writerDebugger struct {
	w io.Writer
}

// NewWriterDebugger returns a Debugger that writes "[id] msg" lines to w.
func NewWriterDebugger(w io.Writer) Debugger {
	return &writerDebugger{w: w}
}

func (d *writerDebugger) Debugf(id, msg string) {
	fmt.Fprintf(d.w, "[%s] %s\n", id, msg)
}

// WithDebug attaches a writerDebugger over w.
func WithDebug(w io.Writer) Option {
	return WithDebugger(NewWriterDebugger(w))
}

// WithDebugEnv attaches a stderr writerDebugger when the named
// environment variable is set to a non-empty value, otherwise leaves
// debugging disabled.
func WithDebugEnv(envVar string) Option {
	return func(c *Calculator) {
		if os.Getenv(envVar) != "" {
			c.debug = NewWriterDebugger(os.Stderr)
		}
	}
}
