package ast

// Identifier is a single unqualified name.
type Identifier struct {
	Base
	Name string
}

// Path is a, possibly qualified, name: an optional leading program name
// (e.g. "token.aleo"), an optional module segment chain, and a final
// identifier. Unqualified paths carry an empty Program and nil Modules.
type Path struct {
	Base
	Program string
	Modules []string
	Name    string
}

// Qualified reports whether the path carries an external-program component.
func (p Path) Qualified() bool { return p.Program != "" }

// TypeExprKind discriminates the surface syntax of a type annotation as it
// appears before resolution. This is intentionally smaller than the
// resolved check.Type lattice: it is what the parser hands the checker.
type TypeExprKind uint8

const (
	TypeUnit TypeExprKind = iota
	TypeAddress
	TypeBoolean
	TypeField
	TypeGroup
	TypeScalar
	TypeSignature
	TypeString
	TypeInteger
	TypeArray
	TypeTuple
	TypeMapping
	TypeOptional
	TypeVector
	TypeComposite
	TypeFuture
)

// IntegerWidth enumerates the fixed-width integer kinds.
type IntegerWidth uint8

const (
	I8 IntegerWidth = iota
	I16
	I32
	I64
	I128
	U8
	U16
	U32
	U64
	U128
)

// TypeExpr is the unresolved, as-written type annotation. Array length and
// const arguments are expressions (they may reference const parameters)
// and are resolved by the checker, not by the parser.
type TypeExpr struct {
	Base
	Kind       TypeExprKind
	Integer    IntegerWidth  // valid when Kind == TypeInteger
	Elem       *TypeExpr     // Array, Vector, Optional
	Length     Expression    // Array: compile-time length expression
	Elems      []*TypeExpr   // Tuple
	Key, Value *TypeExpr     // Mapping
	Path       Path          // Composite
	ConstArgs  []Expression  // Composite const arguments
	FutureArgs []*TypeExpr   // Future: explicit input-type list, if written
}
