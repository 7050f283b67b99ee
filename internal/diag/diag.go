// Package diag is the one place in this module that formats a user-facing
// analysis error. Collector and Resolver both accumulate Diagnostics
// rather than calling fmt.Errorf inline, so the location suffix that
// Diagnostic.String renders is applied exactly once, not reimplemented at
// every call site.
package diag

import (
	"fmt"

	"github.com/hassan/langcore/internal/lexer"
)

// Diagnostic is one reported problem: a message, the span it concerns (if
// any — some diagnostics, like "max diagnostics exceeded", have none), and
// the file/working-directory context needed to print it usefully outside
// the process that produced it.
type Diagnostic struct {
	Message    string
	Span       *lexer.Span // nil if no precise source range applies
	WorkingDir string
	File       string
}

// String renders the diagnostic as `message [L:C]` when the span's start
// and end coincide, and as `message [line L, column C]` (the start
// position) otherwise; with no span it is the bare message. The offending
// source text is not part of the output: a Diagnostic carries positions
// only.
func (d Diagnostic) String() string {
	if d.Span == nil {
		return d.Message
	}
	start := d.Span.Start
	if start.Line == d.Span.End.Line && start.Column == d.Span.End.Column {
		return fmt.Sprintf("%s [%d:%d]", d.Message, start.Line, start.Column)
	}
	return fmt.Sprintf("%s [line %d, column %d]", d.Message, start.Line, start.Column)
}

func (d Diagnostic) Error() string { return d.String() }
