package check

import (
	"testing"

	"github.com/leo-lang/leotype/ast"
	"github.com/leo-lang/leotype/diag"
)

func param(name string, te *ast.TypeExpr, mode ast.Mode) ast.Param {
	return ast.Param{Base: ast.NewBase(1, ast.Span{}), Name: ast.Identifier{Name: name}, Type: te, Mode: mode}
}

func TestCheckSignaturePlainFunction(t *testing.T) {
	c := newTestChecker()
	fn := &ast.FunctionDecl{
		Base:    ast.NewBase(1, ast.Span{}),
		Name:    ast.Identifier{Name: "add"},
		Variant: ast.VariantFunction,
		Inputs:  []ast.Param{param("a", typeExpr(ast.TypeField), ast.ModeNone), param("b", typeExpr(ast.TypeField), ast.ModeNone)},
		Outputs: []ast.Output{{Type: typeExpr(ast.TypeField)}},
	}
	fs := c.CheckSignature("", nil, fn)
	if len(fs.Inputs) != 2 || fs.Inputs[0].Type.Cat != FieldT {
		t.Fatalf("expected 2 field inputs, got %v", fs.Inputs)
	}
	if len(fs.Outputs) != 1 || fs.Outputs[0].Cat != FieldT {
		t.Fatalf("expected a single field output, got %v", fs.Outputs)
	}
}

func TestCheckSignatureRejectsModeOnPlainFunction(t *testing.T) {
	collector := diag.NewCollector()
	c := newTestChecker()
	c.diags = collector
	fn := &ast.FunctionDecl{
		Base:    ast.NewBase(1, ast.Span{}),
		Name:    ast.Identifier{Name: "f"},
		Variant: ast.VariantFunction,
		Inputs:  []ast.Param{param("a", typeExpr(ast.TypeField), ast.ModePublic)},
	}
	c.CheckSignature("", nil, fn)
	if len(collector.Errors) == 0 {
		t.Errorf("expected an error rejecting a visibility mode on a plain function parameter")
	}
}

func TestCheckSignatureAsyncTransitionRequiresTrailingFuture(t *testing.T) {
	collector := diag.NewCollector()
	c := newTestChecker()
	c.diags = collector
	fn := &ast.FunctionDecl{
		Base:    ast.NewBase(1, ast.Span{}),
		Name:    ast.Identifier{Name: "transfer"},
		Variant: ast.VariantAsyncTransition,
		Outputs: []ast.Output{{Type: typeExpr(ast.TypeBoolean)}},
	}
	c.CheckSignature("", nil, fn)
	if len(collector.Errors) == 0 {
		t.Errorf("expected an error: an async transition must return exactly one future")
	}
}

func TestCheckSignatureAsyncTransitionRejectsConstantInput(t *testing.T) {
	collector := diag.NewCollector()
	c := newTestChecker()
	c.diags = collector
	fn := &ast.FunctionDecl{
		Base:    ast.NewBase(1, ast.Span{}),
		Name:    ast.Identifier{Name: "mint"},
		Variant: ast.VariantAsyncTransition,
		Inputs:  []ast.Param{param("amount", typeExpr(ast.TypeField), ast.ModeConstant)},
		Outputs: []ast.Output{{Type: &ast.TypeExpr{Base: ast.NewBase(2, ast.Span{}), Kind: ast.TypeFuture}}},
	}
	c.CheckSignature("", nil, fn)
	if len(collector.Errors) == 0 {
		t.Errorf("expected an error: an async transition may not declare a constant-mode input")
	}
}

func TestCheckSignatureTransitionAllowsConstantInput(t *testing.T) {
	collector := diag.NewCollector()
	c := newTestChecker()
	c.diags = collector
	fn := &ast.FunctionDecl{
		Base:    ast.NewBase(1, ast.Span{}),
		Name:    ast.Identifier{Name: "stamp"},
		Variant: ast.VariantTransition,
		Inputs:  []ast.Param{param("fee", typeExpr(ast.TypeField), ast.ModeConstant)},
		Outputs: []ast.Output{{Type: typeExpr(ast.TypeField)}},
	}
	c.CheckSignature("", nil, fn)
	if len(collector.Errors) != 0 {
		t.Errorf("expected a constant-mode input to be allowed on a plain transition, got %v", collector.Errors)
	}
}

func TestCheckSignatureDuplicateInputNames(t *testing.T) {
	collector := diag.NewCollector()
	c := newTestChecker()
	c.diags = collector
	fn := &ast.FunctionDecl{
		Base:    ast.NewBase(1, ast.Span{}),
		Name:    ast.Identifier{Name: "f"},
		Variant: ast.VariantInline,
		Inputs:  []ast.Param{param("x", typeExpr(ast.TypeField), ast.ModeNone), param("x", typeExpr(ast.TypeField), ast.ModeNone)},
	}
	c.CheckSignature("", nil, fn)
	if len(collector.Errors) == 0 {
		t.Errorf("expected a duplicate-input-name error")
	}
}

func TestMergeAsyncFunctionInputsWarnsWhenNeverCalled(t *testing.T) {
	collector := diag.NewCollector()
	c := newTestChecker()
	c.diags = collector
	fs := &FunctionSymbol{Name: "mint_finalize", Inputs: []Variable{{Type: Field()}}}
	c.mergeAsyncFunctionInputs(fs)
	if len(collector.Warnings) == 0 {
		t.Errorf("expected a warning when an async function has no recorded call sites")
	}
}

func TestMergeAsyncFunctionInputsMergesRecordedSites(t *testing.T) {
	c := newTestChecker()
	fs := &FunctionSymbol{Program: "", Name: "mint_finalize", Inputs: []Variable{{Type: Numeric()}}}
	c.sym.AttachFinalizer(fs.QualifiedName(), FinalizerInferenceSite{InferredInputs: []Type{Field()}})
	c.mergeAsyncFunctionInputs(fs)
	if fs.Inputs[0].Type.Cat != FieldT {
		t.Errorf("expected the declared Numeric input to resolve to field, got %v", fs.Inputs[0].Type)
	}
}

// A declared Future-typed async-function parameter always resolves from
// resolveTypeExpr as Future{Inputs: nil, Explicit: false} — nobody
// writes an inner Future shape by hand. Regression test for a bug where
// meeting that bare declared Future against the real inferred Future
// collapsed the whole parameter to Err on the inevitable length
// mismatch instead of keeping it a Future with the inferred shape.
func TestMergeAsyncFunctionInputsPreservesDeclaredFutureParameter(t *testing.T) {
	c := newTestChecker()
	declaredFuture := Future(FutureInfo{Inputs: nil, Explicit: false})
	fs := &FunctionSymbol{Program: "", Name: "mint_finalize", Inputs: []Variable{{Type: declaredFuture}}}
	inferred := Future(FutureInfo{Inputs: []Type{Field()}, Explicit: true})
	c.sym.AttachFinalizer(fs.QualifiedName(), FinalizerInferenceSite{InferredInputs: []Type{inferred}})
	c.mergeAsyncFunctionInputs(fs)
	if fs.Inputs[0].Type.Cat != FutureT {
		t.Fatalf("expected the parameter to remain a Future, got %v", fs.Inputs[0].Type)
	}
	if len(fs.Inputs[0].Type.Future.Inputs) != 1 || fs.Inputs[0].Type.Future.Inputs[0].Cat != FieldT {
		t.Errorf("expected the merged future to carry the inferred field input, got %v", fs.Inputs[0].Type.Future)
	}
}
