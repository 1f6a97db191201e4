package check

import (
	"testing"

	"github.com/leo-lang/leotype/ast"
)

func TestSymbolTableScopeShadowing(t *testing.T) {
	st := NewSymbolTable("")
	if err := st.InsertVariable(ast.Span{}, "x", Variable{Type: Boolean(), Decl: DeclMut}); err != nil {
		t.Fatalf("unexpected error inserting x: %v", err)
	}
	if err := st.InsertVariable(ast.Span{}, "x", Variable{Type: Field(), Decl: DeclMut}); err == nil {
		t.Errorf("expected a shadow error re-declaring x in the same scope")
	}

	st.EnterExistingScope(1)
	if err := st.InsertVariable(ast.Span{}, "x", Variable{Type: Field(), Decl: DeclMut}); err != nil {
		t.Errorf("a nested scope should be allowed to shadow an outer name: %v", err)
	}
	v, ok := st.LookupVariable("x")
	if !ok || v.Type.Cat != FieldT {
		t.Errorf("expected the nested x (field) to shadow the outer x (boolean)")
	}
	st.ExitScope()

	v, ok = st.LookupVariable("x")
	if !ok || v.Type.Cat != BooleanT {
		t.Errorf("expected the outer x (boolean) to be visible again after ExitScope")
	}
}

func TestSymbolTableExitScopePanicsOnUnderflow(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("expected ExitScope to panic when no non-global scope is active")
		}
	}()
	st := NewSymbolTable("")
	st.ExitScope()
}

func TestSymbolTableImportedFunctionLookup(t *testing.T) {
	st := NewSymbolTable("")
	st.ImportProgram("token.aleo")
	fn := &FunctionSymbol{Program: "token.aleo", Name: "transfer", Variant: ast.VariantTransition}
	if err := st.InsertFunction(fn); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, ok := st.LookupFunction(ast.Path{Program: "token.aleo", Name: "transfer"})
	if !ok || got != fn {
		t.Errorf("expected to resolve the imported function by qualified path")
	}
	if _, ok := st.LookupFunction(ast.Path{Name: "transfer"}); ok {
		t.Errorf("an imported function must not resolve unqualified")
	}
}

func TestAttachFinalizerAccumulates(t *testing.T) {
	st := NewSymbolTable("")
	st.AttachFinalizer("<current>/mint_finalize", FinalizerInferenceSite{InferredInputs: []Type{Field()}})
	st.AttachFinalizer("<current>/mint_finalize", FinalizerInferenceSite{InferredInputs: []Type{Field()}})
	if got := len(st.AsyncInputTypes["<current>/mint_finalize"]); got != 2 {
		t.Errorf("expected 2 accumulated call sites, got %d", got)
	}
}

func TestConstIntValue(t *testing.T) {
	st := NewSymbolTable("")
	if _, ok := st.ConstIntValue("LEN"); ok {
		t.Errorf("expected no folded value before SetConstInt")
	}
	st.SetConstInt("LEN", 4)
	v, ok := st.ConstIntValue("LEN")
	if !ok || v != 4 {
		t.Errorf("ConstIntValue(LEN) = (%d, %v), want (4, true)", v, ok)
	}
}
