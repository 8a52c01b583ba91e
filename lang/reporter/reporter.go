// Package reporter implements the interpreter's single diagnostic entry
// point (spec.md §4.8): a code-tagged message catalog, a closed subset of
// fatal codes that terminate the process, and a plain
// "[CODE] message (line N)" rendering. Colorized, decorated presentation of
// diagnostics is explicitly out of scope (spec.md §1) and belongs to a
// caller-supplied pretty-printer, not to this package.
package reporter

import (
	"fmt"
	"io"
	"os"
)

// Code identifies a diagnostic template, grouped by leading digit per
// spec.md §7: E1xxx lexical, E2xxx parsing, E3xxx resolution, E4xxx runtime.
type Code string

// Reporter emits diagnostics to an underlying writer and enforces the fatal
// exit policy for the closed subset of codes that must terminate the
// process (spec.md §7).
type Reporter struct {
	w     io.Writer
	exit  func(int)
	Count int // number of diagnostics emitted so far, useful for tests
}

// New returns a Reporter writing to w. A nil w defaults to os.Stderr.
func New(w io.Writer) *Reporter {
	if w == nil {
		w = os.Stderr
	}
	return &Reporter{w: w, exit: os.Exit}
}

// SetExit overrides the function called to terminate the process on a fatal
// code. Tests use this to observe fatal diagnostics without killing the test
// binary.
func (r *Reporter) SetExit(fn func(int)) { r.exit = fn }

// Report emits the diagnostic identified by code, formatted with args
// according to the catalog in codes.go, decorated with the source line
// (omitted when line is 0, per spec.md §7). If code is in the fatal subset,
// Report calls the configured exit function with status 1 after writing the
// message.
func (r *Reporter) Report(code Code, line int, args ...string) {
	msg := format(code, args)
	if line <= 0 {
		fmt.Fprintf(r.w, "[%s] %s\n", code, msg)
	} else {
		fmt.Fprintf(r.w, "[%s] %s (line %d)\n", code, msg, line)
	}
	r.Count++
	if fatal[code] {
		r.exit(1)
	}
}

// IsFatal reports whether code belongs to the closed fatal subset.
func IsFatal(code Code) bool { return fatal[code] }
