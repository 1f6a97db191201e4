package check

import (
	"testing"

	"github.com/leo-lang/leotype/ast"
)

func TestMeetTypeAgreement(t *testing.T) {
	if got := meetType(Integer(ast.U32), Integer(ast.U32)); got.Cat != IntegerT {
		t.Errorf("agreeing integer types should meet to an integer, got %v", got)
	}
}

func TestMeetTypeNumericResolvesToConcrete(t *testing.T) {
	got := meetType(Numeric(), Field())
	if got.Cat != FieldT {
		t.Errorf("Numeric should resolve to the other side's concrete type, got %v", got)
	}
	got = meetType(Field(), Numeric())
	if got.Cat != FieldT {
		t.Errorf("Numeric should resolve to the other side's concrete type regardless of position, got %v", got)
	}
}

func TestMeetTypeDisagreementIsErr(t *testing.T) {
	if got := meetType(Field(), Boolean()); got.Cat != ErrT {
		t.Errorf("disagreeing categories should meet to Err, got %v", got)
	}
}

func TestMeetTypeFutureRecursesElementwise(t *testing.T) {
	a := Future(FutureInfo{Inputs: []Type{Field(), Boolean()}, Explicit: true})
	b := Future(FutureInfo{Inputs: []Type{Numeric(), Boolean()}, Explicit: true})
	got := meetType(a, b)
	if got.Cat != FutureT {
		t.Fatalf("expected a future result, got %v", got)
	}
	if got.Future.Inputs[0].Cat != FieldT {
		t.Errorf("first future input should meet to field, got %v", got.Future.Inputs[0])
	}
	if got.Future.Inputs[1].Cat != BooleanT {
		t.Errorf("second future input should meet to boolean, got %v", got.Future.Inputs[1])
	}
}

func TestMergeAsyncInputsAcrossSites(t *testing.T) {
	sites := []FinalizerInferenceSite{
		{InferredInputs: []Type{Numeric(), Boolean()}},
		{InferredInputs: []Type{Field()}},
	}
	merged := mergeAsyncInputs(sites, []Type{Numeric(), Numeric()})
	if merged[0].Cat != FieldT {
		t.Errorf("slot 0 should merge Numeric then Field into Field, got %v", merged[0])
	}
	if merged[1].Cat != BooleanT {
		t.Errorf("slot 1 should carry the only site that supplied it, got %v", merged[1])
	}
}

func TestMergeAsyncInputsMissingSlotFallsBackToDeclared(t *testing.T) {
	merged := mergeAsyncInputs(nil, []Type{Field()})
	if merged[0].Cat != FieldT {
		t.Errorf("a slot with no contributing call site should fall back to its declared type, got %v", merged[0])
	}
}

func TestMeetTypeFutureZipMergesMismatchedLengths(t *testing.T) {
	a := Future(FutureInfo{Inputs: []Type{Field()}, Explicit: true})
	b := Future(FutureInfo{Inputs: []Type{Field(), Boolean()}, Explicit: true})
	got := meetType(a, b)
	if got.Cat != FutureT {
		t.Fatalf("expected a future result even with mismatched input-list lengths, got %v", got)
	}
	if len(got.Future.Inputs) != 2 {
		t.Fatalf("expected the merged future to zip to the longer side's length, got %d inputs", len(got.Future.Inputs))
	}
	if got.Future.Inputs[0].Cat != FieldT {
		t.Errorf("shared slot 0 should merge to field, got %v", got.Future.Inputs[0])
	}
	if got.Future.Inputs[1].Cat != ErrT {
		t.Errorf("slot 1 present only on one side should become Err, got %v", got.Future.Inputs[1])
	}
}
