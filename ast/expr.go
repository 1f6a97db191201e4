package ast

// Expression is implemented by every expression-node variant. The set is
// closed: the checker switches exhaustively over it instead of relying on
// dynamic dispatch, per the visitor-polymorphism design note.
type Expression interface {
	Node
	expr()
}

// BinaryOp enumerates the surface binary operators.
type BinaryOp uint8

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpRem
	OpPow
	OpAnd
	OpOr
	OpXor
	OpBitAnd
	OpBitOr
	OpBitXor
	OpShl
	OpShr
	OpEq
	OpNeq
	OpLt
	OpLte
	OpGt
	OpGte
)

// UnaryOp enumerates the surface unary operators.
type UnaryOp uint8

const (
	OpNeg UnaryOp = iota
	OpNot
	OpBitNot
	OpSquare
	OpSquareRoot
	OpAbs
	OpAbsWrapped
	OpDouble
	OpInverse
	OpToXCoordinate
	OpToYCoordinate
)

// LiteralKind discriminates atomic literal forms.
type LiteralKind uint8

const (
	LitUnsuffixedInt LiteralKind = iota // Numeric until context resolves it
	LitInteger                         // suffixed, e.g. 5u8
	LitBoolean
	LitField
	LitGroup
	LitScalar
	LitString
	LitAddress
	LitNone
)

// Literal is an atomic value in source text. Raw is the literal text as
// written, kept for re-display by downstream passes; the checker parses
// it only to fold integer array lengths.
type Literal struct {
	Base
	Kind    LiteralKind
	Integer IntegerWidth // valid when Kind == LitInteger
	Raw     string
}

func (*Literal) expr() {}

// PathExpr is a name reference, resolved by scope/path lookup.
type PathExpr struct {
	Base
	Path Path
}

func (*PathExpr) expr() {}

// Unary is a prefix/postfix unary operation.
type Unary struct {
	Base
	Op      UnaryOp
	Operand Expression
}

func (*Unary) expr() {}

// Binary is an infix binary operation.
type Binary struct {
	Base
	Op          BinaryOp
	Left, Right Expression
}

func (*Binary) expr() {}

// Ternary is `cond ? then : else`.
type Ternary struct {
	Base
	Cond, Then, Else Expression
}

func (*Ternary) expr() {}

// Cast is `expr as T`.
type Cast struct {
	Base
	Operand Expression
	Target  *TypeExpr
}

func (*Cast) expr() {}

// Call is a function/intrinsic call. Path resolves to either a user
// function or, via the intrinsic catalog, a built-in. ConstArgs are the
// compile-time arguments to a const-generic inline function.
type Call struct {
	Base
	Path      Path
	ConstArgs []Expression
	Args      []Expression
}

func (*Call) expr() {}

// CompositeField is one `name: value` (or shorthand `name`) pair in a
// struct/record literal.
type CompositeField struct {
	Name      Identifier
	Value     Expression // nil for shorthand `{name}`
	Shorthand bool
}

// CompositeExpr constructs a struct or record value.
type CompositeExpr struct {
	Base
	Path   Path
	Fields []CompositeField
}

func (*CompositeExpr) expr() {}

// ArrayExpr is an array literal `[e0, e1, ...]`.
type ArrayExpr struct {
	Base
	Elements []Expression
}

func (*ArrayExpr) expr() {}

// RepeatExpr is `[value; count]`.
type RepeatExpr struct {
	Base
	Value Expression
	Count Expression
}

func (*RepeatExpr) expr() {}

// TupleExpr is `(e0, e1, ...)`, arity >= 2.
type TupleExpr struct {
	Base
	Elements []Expression
}

func (*TupleExpr) expr() {}

// AccessKind discriminates the three forms of derived-location access.
type AccessKind uint8

const (
	AccessMember AccessKind = iota
	AccessArray
	AccessTuple
)

// Access is `base.member`, `base[index]`, or `base.0`, unified because
// they share LHS-classification rules.
type Access struct {
	Base
	Kind   AccessKind
	Target Expression
	Member Identifier // AccessMember
	Index  Expression // AccessArray
	Tuple  int        // AccessTuple
}

func (*Access) expr() {}

// AsyncExpr is an `async { ... }` block, legal only inside an async
// transition; the checker rejects it in every other function variant, and
// the AST has no script variant. Its Body is itself a slice of statements
// rather than a block Statement so the checker can walk it directly
// under the async-block assignability rule.
type AsyncExpr struct {
	Base
	Body []Statement
}

func (*AsyncExpr) expr() {}
