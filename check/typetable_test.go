package check

import (
	"testing"

	"github.com/leo-lang/leotype/ast"
)

func TestTypeTableSetAndGet(t *testing.T) {
	tt := NewTypeTable()
	tt.Set(1, Field())
	got, ok := tt.Get(1)
	if !ok || got.Cat != FieldT {
		t.Errorf("expected to read back the field type written for node 1")
	}
	if tt.Len() != 1 {
		t.Errorf("expected Len() == 1, got %d", tt.Len())
	}
}

func TestTypeTableNumericRefinement(t *testing.T) {
	tt := NewTypeTable()
	tt.Set(1, Numeric())
	tt.Set(1, Integer(ast.U32))
	got, _ := tt.Get(1)
	if got.Cat != IntegerT {
		t.Errorf("expected a later concrete write to refine an earlier Numeric write, got %v", got)
	}
}

func TestTypeTableNoNumericSurvives(t *testing.T) {
	tt := NewTypeTable()
	tt.Set(1, Numeric())
	tt.Set(2, Field())
	offenders := tt.NoNumericSurvives()
	if len(offenders) != 1 || offenders[0] != 1 {
		t.Errorf("expected node 1 to be flagged as a surviving Numeric, got %v", offenders)
	}
}

func TestTypeTableErrOverwritesConcrete(t *testing.T) {
	tt := NewTypeTable()
	tt.Set(1, Field())
	tt.Set(1, Err())
	got, _ := tt.Get(1)
	if got.Cat != ErrT {
		t.Errorf("expected an Err write to be accepted over a concrete prior write, got %v", got)
	}
}
