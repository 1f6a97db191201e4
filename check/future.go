package check

// meetType implements the slot-wise "meet" used to merge an async
// function's declared parameter types against every async-transition
// call site's inferred argument types (spec.md §4.7): on agreement the
// shared type survives, on disagreement the slot becomes Err. Future
// slots are merged recursively on their inner input lists so a single
// mismatched future-input element does not poison the whole future.
func meetType(a, b Type) Type {
	if a.Cat == ErrT || b.Cat == ErrT {
		return Err()
	}
	if a.Cat == NumericT {
		return b
	}
	if b.Cat == NumericT {
		return a
	}
	if a.Cat != b.Cat {
		return Err()
	}
	if a.Cat == FutureT {
		if a.Future == nil || b.Future == nil {
			return Err()
		}
		n := len(a.Future.Inputs)
		if len(b.Future.Inputs) > n {
			n = len(b.Future.Inputs)
		}
		// A mismatched-length pair is zipped rather than rejected wholesale:
		// only the slots present on just one side become Err (ground truth
		// merge_types), so one ragged future-input list doesn't poison the
		// entire merged parameter.
		merged := make([]Type, n)
		for i := range merged {
			switch {
			case i >= len(a.Future.Inputs) || i >= len(b.Future.Inputs):
				merged[i] = Err()
			default:
				merged[i] = meetType(a.Future.Inputs[i], b.Future.Inputs[i])
			}
		}
		return Future(FutureInfo{Inputs: merged, Origin: a.Future.Origin, Explicit: true})
	}
	if !UserEq("", a, b) {
		return Err()
	}
	return a
}

// mergeAsyncInputs folds every call site's contribution into one input
// list against declared, implementing DESIGN NOTES §9's two-phase
// protocol's "phase 2": read the accumulated per-call-site entries and
// merge them with a type-wise meet. A slot no call site ever supplied
// falls back to its declared type rather than Err, matching the ground
// truth's inferred_inputs.get(i).unwrap_or_else(|| input.type_()).
func mergeAsyncInputs(sites []FinalizerInferenceSite, declared []Type) []Type {
	merged := make([]Type, len(declared))
	seen := make([]bool, len(declared))
	for _, site := range sites {
		for i, t := range site.InferredInputs {
			if i >= len(declared) {
				break
			}
			if !seen[i] {
				merged[i] = t
				seen[i] = true
				continue
			}
			merged[i] = meetType(merged[i], t)
		}
	}
	for i := range merged {
		if !seen[i] {
			merged[i] = declared[i]
		}
	}
	return merged
}
