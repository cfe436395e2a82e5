package types

// unwrap follows attributed→base and plain typeof_type/typeof_expr→target
// transparently, the way every predicate in this file is specified to. It
// deliberately does not follow decayed_typeof_*: those already denote a
// resolved pointer-like value, not something to look further through.
func unwrap(in *Interner, id TypeID) (Type, TypeID) {
	for i := 0; i < 32; i++ {
		t, ok := in.Lookup(id)
		if !ok {
			return Type{}, id
		}
		switch t.Specifier {
		case Attributed:
			info, ok := in.AttributedInfo(id)
			if !ok {
				return t, id
			}
			id = info.Base
		case TypeofType:
			id = t.Elem
		case TypeofExpr:
			info, ok := in.TypeofExprInfo(id)
			if !ok {
				return t, id
			}
			id = info.Ty
		default:
			return t, id
		}
	}
	t, _ := in.Lookup(id)
	return t, id
}

func isComplexSpecifier(s Specifier) bool {
	return isInComplexIntBlock(s) || isInComplexFloatBlock(s) || s == ComplexBitInt
}

// IsInt reports whether ty is any integer type: real or complex, including
// _BitInt(N)/_Complex _BitInt(N).
func IsInt(in *Interner, ty TypeID) bool {
	t, _ := unwrap(in, ty)
	return isInRealIntBlock(t.Specifier) || isInComplexIntBlock(t.Specifier) ||
		t.Specifier == BitInt || t.Specifier == ComplexBitInt
}

// IsFloat reports whether ty is any floating type: real or complex.
func IsFloat(in *Interner, ty TypeID) bool {
	t, _ := unwrap(in, ty)
	return isInRealFloatBlock(t.Specifier) || isInComplexFloatBlock(t.Specifier)
}

// IsReal reports whether ty is a non-complex numeric type.
func IsReal(in *Interner, ty TypeID) bool {
	t, _ := unwrap(in, ty)
	return isInRealIntBlock(t.Specifier) || isInRealFloatBlock(t.Specifier) || t.Specifier == BitInt
}

// IsComplex reports whether ty is a _Complex numeric type.
func IsComplex(in *Interner, ty TypeID) bool {
	t, _ := unwrap(in, ty)
	return isComplexSpecifier(t.Specifier)
}

// IsPtr reports whether ty is a pointer, including any decayed array or
// vector (which, once decayed, behaves exactly like a pointer).
func IsPtr(in *Interner, ty TypeID) bool {
	t, _ := unwrap(in, ty)
	return t.Specifier == Pointer || IsDecayed(t.Specifier)
}

// IsFunc reports whether ty names a function type.
func IsFunc(in *Interner, ty TypeID) bool {
	t, _ := unwrap(in, ty)
	return isFuncSpecifier(t.Specifier)
}

// IsArray reports whether ty is an (undecayed) array of any of the five
// array kinds. A decayed array is a pointer, not an array; use IsDecayedQ.
func IsArray(in *Interner, ty TypeID) bool {
	t, _ := unwrap(in, ty)
	switch t.Specifier {
	case Array, StaticArray, IncompleteArray, VariableLenArray, UnspecifiedVariableLenArray:
		return true
	default:
		return false
	}
}

// IsVector reports whether ty is an (undecayed) GCC vector type.
func IsVector(in *Interner, ty TypeID) bool {
	t, _ := unwrap(in, ty)
	return t.Specifier == Vector
}

// IsRecord reports whether ty is a struct or union.
func IsRecord(in *Interner, ty TypeID) bool {
	t, _ := unwrap(in, ty)
	return t.Specifier == StructTy || t.Specifier == UnionTy
}

// IsEnum reports whether ty is an enum.
func IsEnum(in *Interner, ty TypeID) bool {
	t, _ := unwrap(in, ty)
	return t.Specifier == EnumTy
}

// IsScalar implements isScalar = isInt ∨ isFloat ∨ isPtr ∨ is(nullptr_t).
func IsScalar(in *Interner, ty TypeID) bool {
	t, _ := unwrap(in, ty)
	if t.Specifier == NullptrT {
		return true
	}
	return IsInt(in, ty) || IsFloat(in, ty) || IsPtr(in, ty)
}

// IsDecayedQ reports whether ty (after unwrapping any attributed wrapper,
// but not typeof) is itself a decayed array/vector/typeof specifier.
func IsDecayedQ(in *Interner, ty TypeID) bool {
	id := in.skipAttributedOnly(ty)
	t, ok := in.Lookup(id)
	if !ok {
		return false
	}
	return IsDecayed(t.Specifier)
}

func (in *Interner) skipAttributedOnly(id TypeID) TypeID {
	for i := 0; i < 32; i++ {
		t, ok := in.Lookup(id)
		if !ok {
			return id
		}
		if t.Specifier != Attributed {
			return id
		}
		info, ok := in.AttributedInfo(id)
		if !ok {
			return id
		}
		id = info.Base
	}
	return id
}

// IsAnonymousRecord reports whether ty is a struct/union whose
// engine-assigned name begins with '(' (the convention used for anonymous
// aggregates).
func IsAnonymousRecord(in *Interner, ty TypeID) bool {
	t, id := unwrap(in, ty)
	if t.Specifier != StructTy && t.Specifier != UnionTy {
		return false
	}
	info, ok := in.RecordInfo(id)
	if !ok {
		return false
	}
	return info.IsAnonymous(in.Strings)
}

// ElemType returns the pointee/element type of ty. For typeof-wrapped
// pointers/arrays it canonicalizes in preserve-quals mode first and merges
// the wrapper's accumulated qualifiers onto the element, so that
// `typeof(const int[4])`'s element type comes back `const int` rather than
// plain `int`. For `attributed` it recurses into the base. For an invalid
// type it returns Invalid.
func ElemType(in *Interner, ty TypeID) TypeID {
	t, ok := in.Lookup(ty)
	if !ok {
		return in.builtins.Invalid
	}
	switch t.Specifier {
	case Invalid:
		return in.builtins.Invalid
	case Attributed:
		info, ok := in.AttributedInfo(ty)
		if !ok {
			return in.builtins.Invalid
		}
		return ElemType(in, info.Base)
	case TypeofType, TypeofExpr, DecayedTypeofType, DecayedTypeofExpr:
		canon := Canonicalize(in, ty, CanonPreserveQuals)
		ct, ok := in.Lookup(canon)
		if !ok {
			return in.builtins.Invalid
		}
		elem := rawElem(ct)
		if elem == NoTypeID {
			return in.builtins.Invalid
		}
		et, ok := in.Lookup(elem)
		if !ok {
			return elem
		}
		et.Quals = MergeAll(et.Quals, ct.Quals)
		return in.Intern(et)
	default:
		elem := rawElem(t)
		if elem == NoTypeID {
			return in.builtins.Invalid
		}
		return elem
	}
}

func rawElem(t Type) TypeID {
	if t.Specifier == Pointer || IsArrayKind(t.Specifier) {
		return t.Elem
	}
	return NoTypeID
}

// ReturnType returns the return type of a function type, unwrapping
// typeof/attributed first.
func ReturnType(in *Interner, ty TypeID) (TypeID, bool) {
	t, id := unwrap(in, ty)
	if !isFuncSpecifier(t.Specifier) {
		return NoTypeID, false
	}
	info, ok := in.FuncInfo(id)
	if !ok {
		return NoTypeID, false
	}
	return info.Return, true
}

// Params returns the parameter list of a function type.
func Params(in *Interner, ty TypeID) ([]Param, bool) {
	t, id := unwrap(in, ty)
	if !isFuncSpecifier(t.Specifier) {
		return nil, false
	}
	info, ok := in.FuncInfo(id)
	if !ok {
		return nil, false
	}
	return info.Params, true
}

// ArrayLen returns the fixed length of an array/static_array. It returns
// ok=false for incomplete/VLA/unspecified-VLA arrays, whose length is not a
// compile-time constant (or not present at all).
func ArrayLen(in *Interner, ty TypeID) (uint64, bool) {
	t, id := unwrap(in, ty)
	if t.Specifier != Array && t.Specifier != StaticArray {
		return 0, false
	}
	info, ok := in.ArrayInfo(id)
	if !ok {
		return 0, false
	}
	return info.Len, true
}

// GetRecord returns the RecordInfo for a struct/union, unwrapping
// typeof/attributed first.
func GetRecord(in *Interner, ty TypeID) (*RecordInfo, bool) {
	t, id := unwrap(in, ty)
	if t.Specifier != StructTy && t.Specifier != UnionTy {
		return nil, false
	}
	return in.RecordInfo(id)
}

// GetEnum returns the EnumInfo for an enum, unwrapping typeof/attributed
// first.
func GetEnum(in *Interner, ty TypeID) (*EnumInfo, bool) {
	t, id := unwrap(in, ty)
	if t.Specifier != EnumTy {
		return nil, false
	}
	return in.EnumInfo(id)
}
