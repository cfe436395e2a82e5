package layout

import "ctypes/internal/types"

// Comparison is the three-valued (plus unknown) result of SizeCompare.
type Comparison uint8

const (
	SizeIndeterminate Comparison = iota
	SizeLt
	SizeGt
	SizeEq
)

// SizeCompare orders a and b by size, returning SizeIndeterminate when
// either size is unknown (incomplete, VLA, ...).
func (e *Engine) SizeCompare(a, b types.TypeID) Comparison {
	sa, ok := e.SizeOf(a)
	if !ok {
		return SizeIndeterminate
	}
	sb, ok := e.SizeOf(b)
	if !ok {
		return SizeIndeterminate
	}
	switch {
	case sa < sb:
		return SizeLt
	case sa > sb:
		return SizeGt
	default:
		return SizeEq
	}
}

// Eql implements structural type equality: both sides are canonicalized
// first, then compared specifier-by-specifier, recursing into pointee/
// element/parameter types. checkQualifiers controls whether top-level
// const/volatile must also match; `atomic` always must.
func (e *Engine) Eql(a, b types.TypeID, checkQualifiers bool) bool {
	if a == b {
		return true
	}
	alignA, okA := e.AlignOf(a)
	alignB, okB := e.AlignOf(b)
	if okA != okB || alignA != alignB {
		return false
	}

	ca := types.Canonicalize(e.Types, a, types.CanonStandard)
	cb := types.Canonicalize(e.Types, b, types.CanonStandard)
	ta, ok := e.Types.Lookup(ca)
	tb, ok2 := e.Types.Lookup(cb)
	if !ok || !ok2 {
		return false
	}

	if ta.Quals.Atomic != tb.Quals.Atomic {
		return false
	}
	if checkQualifiers && (ta.Quals.Const != tb.Quals.Const || ta.Quals.Volatile != tb.Quals.Volatile) {
		return false
	}

	aPtr, bPtr := isPointerCategory(ta.Specifier), isPointerCategory(tb.Specifier)
	aFunc, bFunc := isFuncCategory(ta.Specifier), isFuncCategory(tb.Specifier)
	aArr, bArr := types.IsArrayKind(ta.Specifier), types.IsArrayKind(tb.Specifier)

	switch {
	case aPtr && bPtr:
		return e.Eql(ta.Elem, tb.Elem, checkQualifiers)
	case aFunc && bFunc:
		return e.eqlFunc(ca, cb)
	case aArr && bArr:
		return e.eqlArray(ca, ta, cb, tb, checkQualifiers)
	case ta.Specifier != tb.Specifier:
		return false
	case ta.Specifier == types.StructTy || ta.Specifier == types.UnionTy || ta.Specifier == types.EnumTy:
		return ca == cb
	default:
		return true
	}
}

func isPointerCategory(s types.Specifier) bool {
	return s == types.Pointer || types.IsDecayed(s)
}

func isFuncCategory(s types.Specifier) bool {
	return s == types.Func || s == types.VarArgsFunc || s == types.OldStyleFunc
}

func (e *Engine) eqlFunc(a, b types.TypeID) bool {
	retA, okA := types.ReturnType(e.Types, a)
	retB, okB := types.ReturnType(e.Types, b)
	if !okA || !okB || !e.Eql(retA, retB, false) {
		return false
	}
	paramsA, _ := types.Params(e.Types, a)
	paramsB, _ := types.Params(e.Types, b)
	if len(paramsA) != len(paramsB) {
		return false
	}
	for i := range paramsA {
		pa := e.Types.WithQuals(paramsA[i].Type, stripTopCV(lookupQuals(e.Types, paramsA[i].Type)))
		pb := e.Types.WithQuals(paramsB[i].Type, stripTopCV(lookupQuals(e.Types, paramsB[i].Type)))
		if !e.Eql(pa, pb, true) {
			return false
		}
	}
	return true
}

func lookupQuals(in *types.Interner, id types.TypeID) types.Qualifiers {
	t, ok := in.Lookup(id)
	if !ok {
		return types.Qualifiers{}
	}
	return t.Quals
}

func stripTopCV(q types.Qualifiers) types.Qualifiers {
	q.Const = false
	q.Volatile = false
	return q
}

func (e *Engine) eqlArray(a types.TypeID, ta types.Type, b types.TypeID, tb types.Type, checkQualifiers bool) bool {
	lenA, hasLenA := types.ArrayLen(e.Types, a)
	lenB, hasLenB := types.ArrayLen(e.Types, b)
	if hasLenA && hasLenB && lenA != lenB {
		return false
	}
	return e.Eql(ta.Elem, tb.Elem, checkQualifiers)
}
