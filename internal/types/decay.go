package types

// DecayArray bumps ty's specifier to its decayed pair, implementing the
// implicit array/vector-to-pointer conversion. It panics if ty is not one
// of the six undecayed array/vector specifiers — callers (the builder, the
// semantic pass) are expected to have already checked IsArray/IsVector.
func DecayArray(in *Interner, ty TypeID) TypeID {
	t, ok := in.Lookup(ty)
	if !ok {
		return ty
	}
	if IsDecayed(t.Specifier) || !IsArrayKind(t.Specifier) {
		panic("types: DecayArray called on a non-array, non-vector type")
	}
	t.Specifier++
	return in.Intern(t)
}

// OriginalTypeOfDecayedArray reverses DecayArray. It panics if ty is not
// already a decayed array/vector specifier.
func OriginalTypeOfDecayedArray(in *Interner, ty TypeID) TypeID {
	t, ok := in.Lookup(ty)
	if !ok {
		return ty
	}
	if !IsDecayed(t.Specifier) || !IsArrayKind(t.Specifier) {
		panic("types: OriginalTypeOfDecayedArray called on a non-decayed-array type")
	}
	t.Specifier--
	return in.Intern(t)
}

// MakeComplex returns the complex companion of an integer or floating real
// type, or the canonicalized ty if it has none. It canonicalizes first, discarding
// any typeof/attributed wrapper rather than threading it through onto the
// companion type.
func MakeComplex(in *Interner, ty TypeID) TypeID {
	id := Canonicalize(in, ty, CanonStandard)
	t, ok := in.Lookup(id)
	if !ok {
		return ty
	}
	switch {
	case t.Specifier == BitInt:
		t.Specifier = ComplexBitInt
	case isInRealIntBlock(t.Specifier):
		t.Specifier += complexIntOffset
	case isInRealFloatBlock(t.Specifier):
		t.Specifier += complexFloatOffset
	default:
		return id
	}
	return in.Intern(t)
}

// MakeReal returns the real companion of a complex type, or the
// canonicalized ty if it is not complex. See MakeComplex for the
// canonicalization caveat.
func MakeReal(in *Interner, ty TypeID) TypeID {
	id := Canonicalize(in, ty, CanonStandard)
	t, ok := in.Lookup(id)
	if !ok {
		return ty
	}
	switch {
	case t.Specifier == ComplexBitInt:
		t.Specifier = BitInt
	case isInComplexIntBlock(t.Specifier):
		t.Specifier -= complexIntOffset
	case isInComplexFloatBlock(t.Specifier):
		t.Specifier -= complexFloatOffset
	default:
		return id
	}
	return in.Intern(t)
}
