// Package ast defines the closed AST surface that the type-checking core
// consumes. Construction, lexing, parsing and span derivation live
// upstream of this package; ast only carries the stable shape the checker
// walks.
package ast

// NodeID uniquely identifies a node for the lifetime of a compilation.
// The type table is keyed on NodeID rather than on node identity so that
// it can be a flat map instead of an identity-keyed side table.
type NodeID uint32

// Span is an opaque source-location handle. Its internal representation
// (file, line, column) is owned by the parser; the checker only ever
// threads it through to diagnostics.
type Span struct {
	File string
	Lo   int
	Hi   int
}

// Node is implemented by every AST variant the checker can visit.
type Node interface {
	ID() NodeID
	Span() Span
	node()
}

// Base is embedded by every concrete node to supply ID()/Span() without
// repeating the boilerplate in each variant.
type Base struct {
	id   NodeID
	span Span
}

func (b Base) ID() NodeID { return b.id }
func (b Base) Span() Span { return b.span }
func (Base) node()        {}

// NewBase constructs the embeddable identity/span pair for a node. Callers
// upstream of the checker (the parser) are expected to assign unique IDs;
// the checker itself never allocates new node IDs.
func NewBase(id NodeID, span Span) Base { return Base{id: id, span: span} }
