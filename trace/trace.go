// Package trace accumulates the human-readable derivation of a computation.
//
// Every engine in numlab returns its numeric result together with a Trace: an
// ordered list of text lines describing each swap, factor, partial sum and
// intermediate state. The trace is a side output only; no engine reads it back
// to make decisions. Consumers render it verbatim.
//
// A Trace is not safe for concurrent use; each computation owns its own.
package trace

import (
	"fmt"
	"strings"
)

// Separator is the banner rule used around totals.
const Separator = "=================================================="

// Trace is an append-only buffer of derivation lines.
// The zero value is ready to use. A nil *Trace discards everything, which lets
// kernels be reused silently (e.g. when one engine calls another).
type Trace struct {
	lines []string
}

// New returns an empty Trace.
func New() *Trace { return &Trace{} }

// Add appends s. Embedded newlines are kept; Lines splits on them.
func (t *Trace) Add(s string) {
	if t == nil {
		return
	}
	t.lines = append(t.lines, s)
}

// Addf appends a formatted line.
func (t *Trace) Addf(format string, args ...any) {
	if t == nil {
		return
	}
	t.lines = append(t.lines, fmt.Sprintf(format, args...))
}

// Blank appends an empty line.
func (t *Trace) Blank() { t.Add("") }

// Section appends a blank line followed by a "--- title ---" header.
func (t *Trace) Section(title string) {
	t.Blank()
	t.Addf("--- %s ---", title)
}

// Banner appends an "=== title ===" header.
func (t *Trace) Banner(title string) { t.Addf("=== %s ===", title) }

// Append copies every line of other after the lines of t.
func (t *Trace) Append(other *Trace) {
	if t == nil || other == nil {
		return
	}
	t.lines = append(t.lines, other.lines...)
}

// Len reports the number of entries added so far.
func (t *Trace) Len() int {
	if t == nil {
		return 0
	}
	return len(t.lines)
}

// Lines returns the trace as individual text lines, splitting entries that
// contain newlines. The returned slice is a copy.
func (t *Trace) Lines() []string {
	if t == nil {
		return nil
	}
	out := make([]string, 0, len(t.lines))
	for _, l := range t.lines {
		out = append(out, strings.Split(l, "\n")...)
	}
	return out
}

// String joins the trace with newlines.
func (t *Trace) String() string {
	if t == nil {
		return ""
	}
	return strings.Join(t.lines, "\n")
}
