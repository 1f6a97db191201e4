// Package diag is the diagnostic sink the checker reports into. Rendering
// (source snippets, terminal colors, JSON output) is explicitly out of
// core scope; diag only defines the stable shape of a diagnostic and a
// handler interface to collect it.
package diag

import "github.com/leo-lang/leotype/ast"

// Error is one fatal diagnostic. The checker never stops after emitting
// one: it substitutes an Err type and keeps walking.
type Error struct {
	Code Code
	Span ast.Span
	Msg  string
}

// Warning is one non-fatal diagnostic.
type Warning struct {
	Code Code
	Span ast.Span
	Msg  string
}

// Handler is the sink the checker reports into. A handler implementation
// may render, log, or simply buffer; the checker only ever calls Error
// and Warning.
type Handler interface {
	Error(Error)
	Warning(Warning)
}

// Collector is a Handler that buffers diagnostics in emission order and
// deduplicates warnings by (Code, Span, Msg) identity, matching the
// "warnings are deduplicated by identity" rule in the error taxonomy.
type Collector struct {
	Errors   []Error
	Warnings []Warning

	seenWarnings map[warningKey]bool
}

type warningKey struct {
	code Code
	span ast.Span
	msg  string
}

// NewCollector returns an empty Collector ready to use.
func NewCollector() *Collector {
	return &Collector{seenWarnings: map[warningKey]bool{}}
}

func (c *Collector) Error(e Error) { c.Errors = append(c.Errors, e) }

func (c *Collector) Warning(w Warning) {
	if c.seenWarnings == nil {
		c.seenWarnings = map[warningKey]bool{}
	}
	key := warningKey{w.Code, w.Span, w.Msg}
	if c.seenWarnings[key] {
		return
	}
	c.seenWarnings[key] = true
	c.Warnings = append(c.Warnings, w)
}

// HasErrors reports whether any error-level diagnostic has been emitted.
func (c *Collector) HasErrors() bool { return len(c.Errors) > 0 }
