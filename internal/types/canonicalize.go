package types

// CanonMode selects how Canonicalize treats qualifiers accumulated while
// unwrapping typeof chains.
type CanonMode uint8

const (
	// CanonStandard discards qualifiers accumulated from typeof wrappers
	// once the final type turns out to be a pointer or array: those
	// qualifiers applied to the typeof'd expression, not to its element.
	CanonStandard CanonMode = iota
	// CanonPreserveQuals keeps them, so ElemType can correctly propagate
	// e.g. the `const` of `typeof(const int[4])` onto `int`.
	CanonPreserveQuals
)

// Canonicalize strips an outer `attributed` wrapper, then loops unwrapping
// typeof_type/typeof_expr (and their decayed variants, which additionally
// tag-bump-decay the type they unwrap to), accumulating qualifiers via
// MergeAll as it goes. The loop always terminates: every typeof chain
// bottoms out at a non-typeof type, and a visited-set guards against any
// pathological self-referential chain a caller might construct.
func Canonicalize(in *Interner, id TypeID, mode CanonMode) TypeID {
	if in == nil || id == NoTypeID {
		return id
	}
	t, ok := in.Lookup(id)
	if !ok {
		return id
	}

	if t.Specifier == Attributed {
		info, ok := in.AttributedInfo(id)
		if !ok {
			return id
		}
		id = info.Base
		t, ok = in.Lookup(id)
		if !ok {
			return id
		}
	}

	acc := Qualifiers{}
	seen := make(map[TypeID]struct{}, 8)
	for {
		if _, dup := seen[id]; dup {
			break
		}
		seen[id] = struct{}{}

		switch t.Specifier {
		case TypeofType:
			acc = MergeAll(acc, t.Quals)
			id = t.Elem
		case DecayedTypeofType:
			acc = MergeAll(acc, t.Quals)
			id = decayTagBump(in, t.Elem)
		case TypeofExpr:
			acc = MergeAll(acc, t.Quals)
			info, ok := in.TypeofExprInfo(id)
			if !ok {
				return id
			}
			id = info.Ty
		case DecayedTypeofExpr:
			acc = MergeAll(acc, t.Quals)
			info, ok := in.TypeofExprInfo(id)
			if !ok {
				return id
			}
			id = decayTagBump(in, info.Ty)
		default:
			goto resolved
		}
		t, ok = in.Lookup(id)
		if !ok {
			return id
		}
	}

resolved:
	if !acc.Any() {
		return id
	}
	if mode == CanonStandard && (t.Specifier == Pointer || IsArrayKind(t.Specifier)) {
		return id
	}
	t.Quals = MergeAll(t.Quals, acc)
	return in.Intern(t)
}

// decayTagBump applies the array/vector tag-plus-one decay rule to id's
// current specifier, used internally by Canonicalize when unwrapping a
// decayed_typeof_* wrapper. Unlike DecayArray it does not assert: a
// decayed_typeof wrapping a non-array type (e.g. `typeof(decay-of-int)`,
// which the builder should never construct) simply passes the type through
// unchanged rather than panicking deep inside canonicalization.
func decayTagBump(in *Interner, id TypeID) TypeID {
	t, ok := in.Lookup(id)
	if !ok {
		return id
	}
	for _, p := range decayPairs {
		if t.Specifier == p[0] {
			t.Specifier = p[1]
			return in.Intern(t)
		}
	}
	return id
}
