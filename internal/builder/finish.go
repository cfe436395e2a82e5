package builder

import (
	"ctypes/internal/diag"
	"ctypes/internal/source"
	"ctypes/internal/trace"
	"ctypes/internal/types"
)

// Finish decodes the accumulated specifiers into a concrete, fully-qualified
// TypeID interned in arena. It is the terminal operation of a Builder's
// lifecycle (spec.md §4.6): after Finish, the Builder must not be reused.
//
// The returned *FatalErr is nil for every accumulated state: the only fatal
// condition, an out-of-range _BitInt(N), is returned by CombineBitInt
// itself, which then leaves the Builder as if no _BitInt had been combined.
// Every other problem is reported through rep and repaired best-effort,
// same as Combine.
func (b *Builder) Finish(arena *types.Interner, rep diag.Reporter) (types.TypeID, *FatalErr) {
	sp := trace.Begin(b.tracer, trace.ScopeNode, "builder.finish", 0)
	defer sp.End("")

	base, err := b.decode(arena, rep)
	if err != nil {
		return 0, err
	}
	baseTy := arena.MustLookup(base)
	final := b.Quals.Finish(baseTy, arena, func(code types.QualDiag, tok source.Span) {
		qualReport(rep, code, tok)
	})
	return arena.Intern(final), nil
}

// qualDiagCode maps a types.QualDiag (the qualifier builder's own compact
// 1..6 numbering) onto the matching diag.Code, the two schemes the
// qualifiers.go comment says are meant to mirror each other one-for-one.
func qualDiagCode(q types.QualDiag) diag.Code {
	switch q {
	case types.QualRestrictNonPointer:
		return diag.QualRestrictNonPointer
	case types.QualAtomicArray:
		return diag.QualAtomicArray
	case types.QualAtomicFunc:
		return diag.QualAtomicFunc
	case types.QualAtomicIncomplete:
		return diag.QualAtomicIncomplete
	case types.QualOnReturnType:
		return diag.QualOnReturnType
	case types.QualNonOutermostArray:
		return diag.QualNonOutermostArray
	default:
		return diag.UnknownCode
	}
}

func qualReport(rep diag.Reporter, code types.QualDiag, tok source.Span) {
	if rep == nil {
		return
	}
	rep.Report(qualDiagCode(code), diag.SevWarning, tok, "qualifier dropped: "+qualDiagMessage(code), nil, nil)
}

func qualDiagMessage(q types.QualDiag) string {
	switch q {
	case types.QualRestrictNonPointer:
		return "'restrict' applied to a non-pointer type"
	case types.QualAtomicArray:
		return "'_Atomic' cannot apply to an array type"
	case types.QualAtomicFunc:
		return "'_Atomic' cannot apply to a function type"
	case types.QualAtomicIncomplete:
		return "'_Atomic' applied to an incomplete type"
	case types.QualOnReturnType:
		return "qualifier on function return type"
	case types.QualNonOutermostArray:
		return "qualifier on non-outermost array dimension"
	default:
		return "qualifier misuse"
	}
}

func (b *Builder) decode(arena *types.Interner, rep diag.Reporter) (types.TypeID, *FatalErr) {
	switch {
	case b.typedefSet:
		return b.typedefTy, nil
	case b.tagSet:
		return b.tagTy, nil
	case b.typeofSet:
		return arena.MakeTypeofType(b.typeofTy, types.Qualifiers{}), nil
	case b.bitInt != nil:
		signed := true
		if b.bitInt.signExplicit {
			signed = b.bitInt.signed
		}
		return arena.MakeBitInt(b.complexSeen, uint8(b.bitInt.bits), signed, types.Qualifiers{}), nil
	case b.charSeen:
		return b.decodeCharLike(arena, rep), nil
	case b.int128Seen:
		return b.decodeInt128(arena), nil
	case b.other != types.Invalid:
		return b.decodeOther(arena, rep), nil
	default:
		return b.decodeIntFamily(arena, rep), nil
	}
}

func (b *Builder) decodeCharLike(arena *types.Interner, rep diag.Reporter) types.TypeID {
	sp := types.Char
	switch {
	case b.signed:
		sp = types.SChar
	case b.unsigned:
		sp = types.UChar
	}
	id := arena.Intern(types.Type{Specifier: sp})
	if b.complexSeen {
		b.emit(rep, diag.SevWarning, diag.SpecComplexInt, b.complexTok, "'_Complex' applied to an integer type is a GNU extension")
		id = types.MakeComplex(arena, id)
	}
	return id
}

func (b *Builder) decodeInt128(arena *types.Interner) types.TypeID {
	sp := types.Int128
	if b.unsigned {
		sp = types.UInt128
	}
	id := arena.Intern(types.Type{Specifier: sp})
	if b.complexSeen {
		id = types.MakeComplex(arena, id)
	}
	return id
}

func (b *Builder) decodeOther(arena *types.Interner, rep diag.Reporter) types.TypeID {
	sp := b.other
	if sp == types.Double && b.longCount == 1 {
		// "long double": combineLong/combineDouble only ever let longCount
		// reach 1 alongside other == Double (see combineLong's b.other !=
		// Double guard), so this is the sole state that means long double
		// rather than plain double.
		sp = types.LongDouble
	}
	id := arena.Intern(types.Type{Specifier: sp})
	if !b.complexSeen {
		return id
	}
	switch b.other {
	case types.Void, types.Bool, types.NullptrT:
		b.emit(rep, diag.SevError, diag.SpecCannotCombine, b.complexTok, "'_Complex' cannot apply to this type")
		return id
	default:
		return types.MakeComplex(arena, id)
	}
}

// decodeIntFamily handles the plain int/short/long/long-long family,
// including GNU's bare `_Complex` (equivalent to `_Complex double`) and
// the C99 "plain _Complex" pedantic warning.
func (b *Builder) decodeIntFamily(arena *types.Interner, rep diag.Reporter) types.TypeID {
	if !b.sawAny || (!b.shortSeen && b.longCount == 0 && !b.intSeen && !b.signed && !b.unsigned && !b.complexSeen) {
		b.emit(rep, diag.SevWarning, diag.SpecMissingTypeSpec, b.otherTok, "type specifier missing, defaults to 'int'")
		return arena.Intern(types.Type{Specifier: types.Int})
	}
	if b.complexSeen && !b.shortSeen && b.longCount == 0 && !b.intSeen && !b.signed && !b.unsigned {
		b.emit(rep, diag.SevWarning, diag.SpecPlainComplex, b.complexTok, "plain '_Complex' is a GNU extension, treated as '_Complex double'")
		return types.MakeComplex(arena, arena.Intern(types.Type{Specifier: types.Double}))
	}

	var sp types.Specifier
	switch {
	case b.shortSeen:
		sp = types.Short
		if b.unsigned {
			sp = types.UShort
		}
	case b.longCount == 1:
		sp = types.Long
		if b.unsigned {
			sp = types.ULong
		}
	case b.longCount >= 2:
		sp = types.LongLong
		if b.unsigned {
			sp = types.ULongLong
		}
	default:
		sp = types.Int
		if b.unsigned {
			sp = types.UInt
		}
	}
	id := arena.Intern(types.Type{Specifier: sp})
	if b.complexSeen {
		b.emit(rep, diag.SevWarning, diag.SpecComplexInt, b.complexTok, "'_Complex' applied to an integer type is a GNU extension")
		id = types.MakeComplex(arena, id)
	}
	return id
}
