package check

import (
	"testing"

	"github.com/leo-lang/leotype/ast"
	"github.com/leo-lang/leotype/diag"
)

func TestVisitCallResolvesIntrinsicBeforeUserFunction(t *testing.T) {
	c := newTestChecker()
	vec := Vector(Field())
	_ = c.sym.InsertVariable(ast.Span{}, "v", Variable{Type: vec, Decl: DeclMut})
	call := &ast.Call{
		Base: ast.NewBase(1, ast.Span{}),
		Path: ast.Path{Modules: []string{"Vector"}, Name: "len"},
		Args: []ast.Expression{&ast.PathExpr{Base: ast.NewBase(2, ast.Span{}), Path: ast.Path{Name: "v"}}},
	}
	got := c.VisitExpr(call, nil)
	if got.Cat != IntegerT || got.Integer != ast.U32 {
		t.Errorf("expected Vector::len(v) to resolve to u32 via the intrinsic catalog, got %v", got)
	}
}

func TestVisitCallUnknownFunctionIsError(t *testing.T) {
	collector := diag.NewCollector()
	c := newTestChecker()
	c.diags = collector
	call := &ast.Call{Base: ast.NewBase(1, ast.Span{}), Path: ast.Path{Name: "does_not_exist"}}
	got := c.VisitExpr(call, nil)
	if got.Cat != ErrT || len(collector.Errors) == 0 {
		t.Errorf("expected calling an unknown function to produce an error")
	}
}

func TestVisitUserCallInline(t *testing.T) {
	c := newTestChecker()
	fn := &FunctionSymbol{Name: "double", Variant: ast.VariantInline, Inputs: []Variable{{Type: Field()}}, Outputs: []Type{Field()}}
	_ = c.sym.InsertFunction(fn)
	call := &ast.Call{Base: ast.NewBase(1, ast.Span{}), Path: ast.Path{Name: "double"}, Args: []ast.Expression{lit(2, ast.LitField)}}
	got := c.VisitExpr(call, nil)
	if got.Cat != FieldT {
		t.Errorf("expected double(field) to return field, got %v", got)
	}
}

func TestVisitAsyncFunctionCallRequiresAsyncTransitionCaller(t *testing.T) {
	collector := diag.NewCollector()
	c := newTestChecker()
	c.diags = collector
	c.state.variant = ast.VariantFunction
	fn := &FunctionSymbol{Name: "mint_finalize", Variant: ast.VariantAsyncFunction, Inputs: []Variable{{Type: Field()}}}
	_ = c.sym.InsertFunction(fn)
	call := &ast.Call{Base: ast.NewBase(1, ast.Span{}), Path: ast.Path{Name: "mint_finalize"}, Args: []ast.Expression{lit(2, ast.LitField)}}
	c.VisitExpr(call, nil)
	if len(collector.Errors) == 0 {
		t.Errorf("expected calling an async function from a plain function to be rejected")
	}
}

func TestVisitAsyncFunctionCallRecordsFinalizerSite(t *testing.T) {
	c := newTestChecker()
	c.state.variant = ast.VariantAsyncTransition
	fn := &FunctionSymbol{Name: "mint_finalize", Variant: ast.VariantAsyncFunction, Inputs: []Variable{{Type: Field()}}}
	_ = c.sym.InsertFunction(fn)
	call := &ast.Call{Base: ast.NewBase(1, ast.Span{}), Path: ast.Path{Name: "mint_finalize"}, Args: []ast.Expression{lit(2, ast.LitField)}}
	got := c.VisitExpr(call, nil)
	if got.Cat != FutureT {
		t.Fatalf("expected calling an async function to produce a Future, got %v", got)
	}
	if len(c.sym.AsyncInputTypes[fn.QualifiedName()]) != 1 {
		t.Errorf("expected one finalizer-inference site to be recorded")
	}
	if !c.state.hasCalledFinalize {
		t.Errorf("expected hasCalledFinalize to be set after calling the paired async function")
	}
}

func TestVisitCompositeRejectsExternalRecordConstruction(t *testing.T) {
	collector := diag.NewCollector()
	c := newTestChecker()
	c.diags = collector
	desc := &CompositeDescriptor{Program: "token.aleo", Name: "Card", IsRecord: true, Members: []Member{{Name: "owner", Type: Address()}}}
	_ = c.sym.InsertComposite(desc)
	ce := &ast.CompositeExpr{
		Base: ast.NewBase(1, ast.Span{}),
		Path: ast.Path{Program: "token.aleo", Name: "Card"},
		Fields: []ast.CompositeField{
			{Name: ast.Identifier{Name: "owner"}, Value: lit(2, ast.LitAddress)},
		},
	}
	c.VisitExpr(ce, nil)
	if len(collector.Errors) == 0 {
		t.Errorf("expected constructing another program's record to be rejected")
	}
}

func TestVisitCompositeMissingMember(t *testing.T) {
	collector := diag.NewCollector()
	c := newTestChecker()
	c.diags = collector
	desc := &CompositeDescriptor{Name: "Point", Members: []Member{{Name: "x", Type: Field()}, {Name: "y", Type: Field()}}}
	_ = c.sym.InsertComposite(desc)
	ce := &ast.CompositeExpr{
		Base:   ast.NewBase(1, ast.Span{}),
		Path:   ast.Path{Name: "Point"},
		Fields: []ast.CompositeField{{Name: ast.Identifier{Name: "x"}, Value: lit(2, ast.LitField)}},
	}
	c.VisitExpr(ce, nil)
	if len(collector.Errors) == 0 {
		t.Errorf("expected a missing-member error when y is not supplied")
	}
}
