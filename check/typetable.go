package check

import "github.com/leo-lang/leotype/ast"

// TypeTable is the pass's primary output: a map from AST node ID to its
// inferred type. It is append-only; the implementation guarantees no
// node ID is written twice with different non-Err types, except when
// refining Numeric into a concrete type (spec.md §5).
type TypeTable struct {
	entries map[ast.NodeID]Type
}

// NewTypeTable returns an empty type table.
func NewTypeTable() *TypeTable {
	return &TypeTable{entries: map[ast.NodeID]Type{}}
}

// Set records the type of node id, enforcing the single-write invariant.
// A second write is only accepted when it refines a prior Numeric entry
// to a concrete type, or when either the prior or the new type is Err
// (error recovery may need to downgrade a partially-inferred node).
func (tt *TypeTable) Set(id ast.NodeID, t Type) {
	if prev, ok := tt.entries[id]; ok {
		if prev.Cat == NumericT || prev.Cat == ErrT || t.Cat == ErrT {
			tt.entries[id] = t
			return
		}
		if !UserEq("", prev, t) {
			// A later write disagreeing with a concrete earlier write is a
			// bug in the walk (an invariant violation, not a user error);
			// keep the first write rather than silently corrupting it.
			return
		}
		return
	}
	tt.entries[id] = t
}

// Get returns the type recorded for id, if any.
func (tt *TypeTable) Get(id ast.NodeID) (Type, bool) {
	t, ok := tt.entries[id]
	return t, ok
}

// Len reports how many nodes have recorded types.
func (tt *TypeTable) Len() int { return len(tt.entries) }

// NoNumericSurvives is the pass-exit invariant check of spec.md §3 rule 6
// and §8 property 2: no entry in the type table may be Numeric.
func (tt *TypeTable) NoNumericSurvives() []ast.NodeID {
	var offenders []ast.NodeID
	for id, t := range tt.entries {
		if t.Cat == NumericT {
			offenders = append(offenders, id)
		}
	}
	return offenders
}
