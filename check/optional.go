package check

// IsValidOptionalInner implements the Optional-restriction predicate of
// spec.md §4.2: Optional{inner} is legal only when inner is Address,
// Boolean, Field, Group, Integer(_), Scalar, Numeric, a non-record
// composite whose fields (recursively, unwrapping one Optional layer per
// field) satisfy the same predicate, or an array of such elements.
//
// resolve looks up a composite's member list; depth guards against
// runaway recursion on a self-referential (and therefore already
// ill-formed) struct graph.
func IsValidOptionalInner(t Type, resolve structResolver, depth int) bool {
	if depth <= 0 {
		return false
	}
	switch t.Cat {
	case AddressT, BooleanT, FieldT, GroupT, IntegerT, ScalarT, NumericT:
		return true
	case ArrayT:
		return IsValidOptionalInner(*t.Elem, resolve, depth-1)
	case CompositeT:
		if resolve == nil {
			return false
		}
		desc, ok := resolve(*t.Composite)
		if !ok || desc.IsRecord {
			return false
		}
		for _, m := range desc.Members {
			field := m.Type
			if field.Cat == OptionalT {
				field = *field.Elem
			}
			if !IsValidOptionalInner(field, resolve, depth-1) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
