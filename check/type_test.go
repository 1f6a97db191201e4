package check

import (
	"testing"

	"github.com/leo-lang/leotype/ast"
)

func TestUserEqErrAbsorbs(t *testing.T) {
	if !UserEq("prog", Err(), Boolean()) {
		t.Errorf("Err should absorb against any other type")
	}
	if !UserEq("prog", Integer(ast.U8), Err()) {
		t.Errorf("Err should absorb on the right side too")
	}
}

func TestUserEqComposite(t *testing.T) {
	local := Composite(CompositeRef{Name: "Token"})
	qualified := Composite(CompositeRef{Program: "prog", Name: "Token"})
	if !UserEq("prog", local, qualified) {
		t.Errorf("an unqualified composite should compare equal to the qualified current-program composite")
	}
	other := Composite(CompositeRef{Program: "other.aleo", Name: "Token"})
	if UserEq("prog", qualified, other) {
		t.Errorf("composites from different programs should not be user-equal")
	}
}

func TestUserEqFuture(t *testing.T) {
	nonExplicit := Future(FutureInfo{Explicit: false})
	explicit := Future(FutureInfo{Inputs: []Type{Boolean()}, Explicit: true})
	if !UserEq("", nonExplicit, explicit) {
		t.Errorf("a non-explicit future should be compatible with any future")
	}
	a := Future(FutureInfo{Inputs: []Type{Boolean()}, Explicit: true})
	b := Future(FutureInfo{Inputs: []Type{Field()}, Explicit: true})
	if UserEq("", a, b) {
		t.Errorf("two explicit futures with mismatched inputs should not be user-equal")
	}
}

func TestFlatRelaxedEqErrDoesNotAbsorb(t *testing.T) {
	if FlatRelaxedEq("", Err(), Boolean()) {
		t.Errorf("FlatRelaxedEq should not let Err absorb a non-Err type")
	}
	if !FlatRelaxedEq("", Err(), Err()) {
		t.Errorf("FlatRelaxedEq should still treat Err == Err as equal")
	}
}

func TestCanCoerceTo(t *testing.T) {
	isRecord := func(CompositeRef) bool { return true }
	cases := []struct {
		name     string
		from, to Type
		want     bool
	}{
		{"reflexive", Boolean(), Boolean(), true},
		{"numeric never coerces", Numeric(), Integer(ast.U8), false},
		{"wrap into optional", Integer(ast.U32), Optional(Integer(ast.U32)), true},
		{"mismatched optional inner", Integer(ast.U32), Optional(Boolean()), false},
		{"struct coerces to record", Composite(CompositeRef{Name: "Token"}), Composite(CompositeRef{Name: "Token"}), true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := CanCoerceTo("", c.from, c.to, isRecord); got != c.want {
				t.Errorf("CanCoerceTo(%v, %v) = %v, want %v", c.from, c.to, got, c.want)
			}
		})
	}
}

func TestSizeInBits(t *testing.T) {
	cases := []struct {
		name string
		t    Type
		want int
	}{
		{"boolean", Boolean(), 1},
		{"u32", Integer(ast.U32), 32},
		{"array", Array(Integer(ast.U8), 4), 32},
		{"tuple", Tuple(Boolean(), Integer(ast.U8)), 9},
		{"optional adds discriminant", Optional(Boolean()), 2},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := SizeInBits(c.t, false, nil)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != c.want {
				t.Errorf("SizeInBits(%v) = %d, want %d", c.t, got, c.want)
			}
		})
	}
}

func TestSizeInBitsRejectsMapping(t *testing.T) {
	if _, err := SizeInBits(Mapping(Address(), Boolean()), false, nil); err == nil {
		t.Errorf("expected an error sizing a mapping type")
	}
}

func TestIsValidOptionalInner(t *testing.T) {
	resolve := func(ref CompositeRef) (*CompositeDescriptor, bool) {
		if ref.Name == "Point" {
			return &CompositeDescriptor{Name: "Point", Members: []Member{{Name: "x", Type: Field()}, {Name: "y", Type: Field()}}}, true
		}
		if ref.Name == "Card" {
			return &CompositeDescriptor{Name: "Card", IsRecord: true}, true
		}
		return nil, false
	}
	if !IsValidOptionalInner(Field(), resolve, 8) {
		t.Errorf("field should be a valid optional inner type")
	}
	if !IsValidOptionalInner(Composite(CompositeRef{Name: "Point"}), resolve, 8) {
		t.Errorf("a plain struct of valid fields should be a valid optional inner type")
	}
	if IsValidOptionalInner(Composite(CompositeRef{Name: "Card"}), resolve, 8) {
		t.Errorf("a record must not be a valid optional inner type")
	}
	if IsValidOptionalInner(Mapping(Address(), Boolean()), resolve, 8) {
		t.Errorf("a mapping must not be a valid optional inner type")
	}
}
