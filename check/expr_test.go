package check

import (
	"testing"

	"github.com/leo-lang/leotype/ast"
	"github.com/leo-lang/leotype/diag"
)

func newTestChecker() *Checker {
	seed := ast.SymbolSeed{Current: &ast.Program{Name: ""}, Imports: map[string]*ast.Program{}}
	c := New(seed)
	c.state = newScopeState("", "", "test", ast.VariantFunction)
	return c
}

func lit(id ast.NodeID, kind ast.LiteralKind) *ast.Literal {
	return &ast.Literal{Base: ast.NewBase(id, ast.Span{}), Kind: kind}
}

func intLit(id ast.NodeID, w ast.IntegerWidth) *ast.Literal {
	return &ast.Literal{Base: ast.NewBase(id, ast.Span{}), Kind: ast.LitInteger, Integer: w}
}

func TestVisitLiteralUnsuffixedIntResolvesFromContext(t *testing.T) {
	c := newTestChecker()
	u32 := Integer(ast.U32)
	got := c.VisitExpr(lit(1, ast.LitUnsuffixedInt), &u32)
	if got.Cat != IntegerT || got.Integer != ast.U32 {
		t.Errorf("expected the unsuffixed int to resolve to u32, got %v", got)
	}
}

func TestVisitLiteralUnsuffixedIntWithoutContextIsNumeric(t *testing.T) {
	c := newTestChecker()
	got := c.VisitExpr(lit(1, ast.LitUnsuffixedInt), nil)
	if got.Cat != NumericT {
		t.Errorf("expected the unsuffixed int to stay Numeric without a target, got %v", got)
	}
}

func TestVisitBinaryAddMatchingIntegers(t *testing.T) {
	c := newTestChecker()
	b := &ast.Binary{Base: ast.NewBase(1, ast.Span{}), Op: ast.OpAdd, Left: intLit(2, ast.U8), Right: intLit(3, ast.U8)}
	got := c.VisitExpr(b, nil)
	if got.Cat != IntegerT || got.Integer != ast.U8 {
		t.Errorf("expected u8 + u8 = u8, got %v", got)
	}
}

func TestVisitBinaryAddMismatchedIntegersIsErr(t *testing.T) {
	collector := diag.NewCollector()
	c := newTestChecker()
	c.diags = collector
	b := &ast.Binary{Base: ast.NewBase(1, ast.Span{}), Op: ast.OpAdd, Left: intLit(2, ast.U8), Right: intLit(3, ast.U16)}
	got := c.VisitExpr(b, nil)
	if got.Cat != ErrT {
		t.Errorf("expected u8 + u16 to be a type error, got %v", got)
	}
}

func TestVisitBinaryGroupScalarMul(t *testing.T) {
	c := newTestChecker()
	b := &ast.Binary{Base: ast.NewBase(1, ast.Span{}), Op: ast.OpMul, Left: lit(2, ast.LitGroup), Right: lit(3, ast.LitScalar)}
	got := c.VisitExpr(b, nil)
	if got.Cat != GroupT {
		t.Errorf("expected group * scalar = group, got %v", got)
	}
}

func TestVisitTernaryNoneBranchUnifiesWithOptional(t *testing.T) {
	c := newTestChecker()
	cond := lit(1, ast.LitBoolean)
	thenE := lit(2, ast.LitNone)
	elseE := intLit(3, ast.U32)
	tern := &ast.Ternary{Base: ast.NewBase(4, ast.Span{}), Cond: cond, Then: thenE, Else: elseE}
	got := c.VisitExpr(tern, nil)
	if got.Cat != OptionalT || got.Elem.Cat != IntegerT || got.Elem.Integer != ast.U32 {
		t.Errorf("expected none/u32 ternary to resolve to Optional<u32>, got %v", got)
	}
}

func TestVisitArrayEmptyIsError(t *testing.T) {
	collector := diag.NewCollector()
	c := newTestChecker()
	c.diags = collector
	arr := &ast.ArrayExpr{Base: ast.NewBase(1, ast.Span{})}
	got := c.VisitExpr(arr, nil)
	if got.Cat != ErrT {
		t.Errorf("expected an empty array literal to be an error, got %v", got)
	}
}

func TestVisitArrayElementTypeUnification(t *testing.T) {
	c := newTestChecker()
	arr := &ast.ArrayExpr{Base: ast.NewBase(1, ast.Span{}), Elements: []ast.Expression{intLit(2, ast.U8), intLit(3, ast.U8)}}
	got := c.VisitExpr(arr, nil)
	if got.Cat != ArrayT || got.ArrayLen != 2 || got.Elem.Cat != IntegerT {
		t.Errorf("expected [u8; 2], got %v", got)
	}
}

func TestVisitAssignPathRejectsConstTarget(t *testing.T) {
	c := newTestChecker()
	_ = c.sym.InsertVariable(ast.Span{}, "LEN", Variable{Type: Integer(ast.U32), Decl: DeclConst})
	pe := &ast.PathExpr{Base: ast.NewBase(1, ast.Span{}), Path: ast.Path{Name: "LEN"}}
	_, kind := c.visitAssignTarget(pe)
	if kind != LHSErr {
		t.Errorf("expected assigning to a const to be rejected")
	}
}

func TestVisitAssignPathAllowsMutLocal(t *testing.T) {
	c := newTestChecker()
	_ = c.sym.InsertVariable(ast.Span{}, "x", Variable{Type: Field(), Decl: DeclMut})
	pe := &ast.PathExpr{Base: ast.NewBase(1, ast.Span{}), Path: ast.Path{Name: "x"}}
	typ, kind := c.visitAssignTarget(pe)
	if kind != LHSLocal || typ.Cat != FieldT {
		t.Errorf("expected a mutable local to be assignable, got type=%v kind=%v", typ, kind)
	}
}

func TestAsyncFunctionCannotAssignOutsideConditional(t *testing.T) {
	collector := diag.NewCollector()
	c := newTestChecker()
	c.diags = collector
	c.state.variant = ast.VariantAsyncFunction
	_ = c.sym.InsertVariable(ast.Span{}, "total", Variable{Type: Field(), Decl: DeclMut})

	ref := &ast.PathExpr{Base: ast.NewBase(1, ast.Span{}), Path: ast.Path{Name: "total"}}
	if _, kind := c.visitAssignTarget(ref); kind != LHSErr {
		t.Errorf("expected assignment outside any conditional branch to be rejected in an async function")
	}
	if len(collector.Errors) == 0 {
		t.Errorf("expected a diagnostic for the rejected assignment")
	}
}

func TestAsyncFunctionCanAssignNameDeclaredInConditionalScope(t *testing.T) {
	c := newTestChecker()
	c.state.variant = ast.VariantAsyncFunction

	restore := c.state.withConditionalScope()
	defer restore()
	_ = c.sym.InsertVariable(ast.Span{}, "acc", Variable{Type: Field(), Decl: DeclMut})
	c.state.introduce("acc")

	ref := &ast.PathExpr{Base: ast.NewBase(1, ast.Span{}), Path: ast.Path{Name: "acc"}}
	if _, kind := c.visitAssignTarget(ref); kind != LHSLocal {
		t.Errorf("expected a name declared within the current conditional branch to be assignable")
	}
}

func TestAsyncBlockAssignabilityRule(t *testing.T) {
	c := newTestChecker()
	c.state.variant = ast.VariantAsyncTransition
	_ = c.sym.InsertVariable(ast.Span{}, "outer", Variable{Type: Field(), Decl: DeclMut})

	restore := c.state.withAsyncBlock(42)
	defer restore()

	outerRef := &ast.PathExpr{Base: ast.NewBase(1, ast.Span{}), Path: ast.Path{Name: "outer"}}
	if _, kind := c.visitAssignTarget(outerRef); kind != LHSErr {
		t.Errorf("a name from outside the async block must not be assignable inside it")
	}

	_ = c.sym.InsertVariable(ast.Span{}, "inner", Variable{Type: Field(), Decl: DeclMut})
	c.state.introduce("inner")
	innerRef := &ast.PathExpr{Base: ast.NewBase(2, ast.Span{}), Path: ast.Path{Name: "inner"}}
	if _, kind := c.visitAssignTarget(innerRef); kind != LHSLocal {
		t.Errorf("a name introduced inside the async block should be assignable")
	}
}
