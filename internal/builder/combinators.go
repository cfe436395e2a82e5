package builder

import (
	"ctypes/internal/diag"
	"ctypes/internal/source"
	"ctypes/internal/types"
)

// Pointer interns a pointer to elem carrying quals, applying the qualifier
// builder's own restrict/atomic validity rules (restrict only legal on
// pointers, so nothing is dropped here — this is the one derived-type
// combinator restrict is always legal on).
func Pointer(arena *types.Interner, elem types.TypeID, qb *types.QualifierBuilder, rep diag.Reporter) types.TypeID {
	base := types.Type{Specifier: types.Pointer, Elem: elem}
	final := qb.Finish(base, arena, func(code types.QualDiag, tok source.Span) { qualReport(rep, code, tok) })
	return arena.Intern(final)
}

// ArrayParams carries the combination of syntax a C array declarator can
// mix: element type, fixed length (ignored unless Kind demands one),
// whether `static` appeared in the size (only legal in a function
// parameter's outermost array dimension), and whether this array is itself
// nested inside an enclosing array (only the outermost dimension may carry
// qualifiers or `static`).
type ArrayParams struct {
	Elem      types.TypeID
	Specifier types.Specifier // Array, StaticArray, IncompleteArray, VariableLenArray, UnspecifiedVariableLenArray
	Len       uint64
	LenExpr   types.ExprRef
	Static    bool
	Outermost bool
	Tok       source.Span
}

// Array builds an array type from p, diagnosing and best-effort-repairing
// the combinator-level invalidities the C grammar allows a parser to
// construct but a well-formed program never should:
//
//   - an array of an incomplete element type other than itself (fatal —
//     the caller should treat the declaration as unrecoverable, matching
//     spec.md §7's "array of void"/"array of incomplete struct" case)
//   - an array of function type (the element is repaired to a pointer to
//     that function, mirroring how a parser recovers from `int f()[3]`)
//   - `static` used on anything but the outermost array dimension
//   - a qualifier applied to anything but the outermost array dimension
//     (repaired by discarding the qualifiers via qb.Quals() reset to zero)
func Array(arena *types.Interner, p ArrayParams, qb *types.QualifierBuilder, rep diag.Reporter) (types.TypeID, *FatalErr) {
	elemTy, ok := arena.Lookup(p.Elem)
	if ok && types.IsIncomplete(arena, elemTy) {
		if rep != nil {
			rep.Report(diag.ArrayIncompleteElem, diag.SevError, p.Tok, "array has incomplete element type", nil, nil)
		}
		return 0, &FatalErr{Code: diag.ArrayIncompleteElem}
	}
	if ok && elemTy.Specifier == types.Void {
		if rep != nil {
			rep.Report(diag.ArrayIncompleteElem, diag.SevError, p.Tok, "array has incomplete element type 'void'", nil, nil)
		}
		return 0, &FatalErr{Code: diag.ArrayIncompleteElem}
	}

	elem := p.Elem
	if types.IsFunc(arena, elem) {
		if rep != nil {
			rep.Report(diag.ArrayFuncElem, diag.SevError, p.Tok, "array of function type is invalid; treating element as a function pointer", nil, nil)
		}
		elem = arena.MakePointer(elem, types.Qualifiers{})
	}

	if p.Static && !p.Outermost {
		if rep != nil {
			rep.Report(diag.StaticNonOutermostArray, diag.SevError, p.Tok, "'static' used in array declarator outside of function parameter outermost dimension", nil, nil)
		}
		p.Static = false
	}

	quals := qb.Quals()
	if quals.Any() && !p.Outermost {
		if rep != nil {
			rep.Report(diag.QualNonOutermostArray, diag.SevWarning, p.Tok, "qualifier on non-outermost array dimension", nil, nil)
		}
		qb = types.NewQualifierBuilder()
	}

	var id types.TypeID
	switch p.Specifier {
	case types.VariableLenArray:
		id = arena.MakeVLA(elem, p.LenExpr, qb.Quals())
	case types.UnspecifiedVariableLenArray:
		id = arena.MakeUnspecifiedVLA(elem, qb.Quals())
	default:
		sp := p.Specifier
		if sp == 0 {
			sp = types.Array
		}
		id = arena.MakeArray(sp, elem, p.Len, qb.Quals())
	}
	return id, nil
}

// Func builds a function type from ret/params, diagnosing (and repairing,
// by substituting void) the two invalid-return-type combinations the C
// grammar otherwise allows: a function returning an array, and a function
// returning another function (both only valid through a pointer
// indirection). A qualified return type is legal C but pointless per the
// standard (the qualifiers have no observable effect on a call expression),
// so QualOnReturnType strips them rather than rejecting the declaration.
func Func(arena *types.Interner, specifier types.Specifier, ret types.TypeID, params []types.Param, retTok source.Span, rep diag.Reporter) types.TypeID {
	switch {
	case types.IsArray(arena, ret):
		if rep != nil {
			rep.Report(diag.FuncCannotReturnArray, diag.SevError, retTok, "function cannot return array type", nil, nil)
		}
		ret = arena.Intern(types.Type{Specifier: types.Void})
	case types.IsFunc(arena, ret):
		if rep != nil {
			rep.Report(diag.FuncCannotReturnFunc, diag.SevError, retTok, "function cannot return function type", nil, nil)
		}
		ret = arena.Intern(types.Type{Specifier: types.Void})
	default:
		if retTy, ok := arena.Lookup(ret); ok && retTy.Quals.Any() {
			if rep != nil {
				rep.Report(diag.QualOnReturnType, diag.SevWarning, retTok, "qualifier on function return type has no effect", nil, nil)
			}
			ret = arena.WithQuals(ret, types.Qualifiers{})
		}
	}
	return arena.RegisterFunc(specifier, ret, params)
}
