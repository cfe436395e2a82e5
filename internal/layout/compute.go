package layout

import (
	"ctypes/internal/target"
	"ctypes/internal/types"
)

// attributesFor merges attributes carried on ty's own attributed() wrapper
// chain with any attributes recorded directly on its RecordInfo/EnumInfo
// (a tag-level `struct __attribute__((packed)) Foo {...}`), so packed/
// aligned checks see both spellings.
func (e *Engine) attributesFor(id types.TypeID) []types.Attribute {
	attrs := e.Types.GetAttributes(id)
	if info, ok := types.GetRecord(e.Types, id); ok && len(info.Attrs) > 0 {
		attrs = append(append([]types.Attribute(nil), attrs...), info.Attrs...)
	} else if info, ok := types.GetEnum(e.Types, id); ok && len(info.Attrs) > 0 {
		attrs = append(append([]types.Attribute(nil), attrs...), info.Attrs...)
	}
	return attrs
}

func hasAttr(attrs []types.Attribute, tag types.AttrTag) bool {
	for _, a := range attrs {
		if a.Tag == tag {
			return true
		}
	}
	return false
}

// requestedAlignment returns the `aligned(N)` alignment annotated on ty
// itself (tag-level or via an attributed() wrapper), ignoring any computed
// structural alignment.
func (e *Engine) requestedAlignment(id types.TypeID) (uint64, bool) {
	attrs := e.attributesFor(id)
	n, ok := types.AnnotationAlignment(attrs, defaultAlignedNoArg)
	if !ok || n <= 0 {
		return 0, false
	}
	return uint64(n), true
}

func roundUp(n, align uint64) uint64 {
	if align <= 1 || n == 0 {
		return n
	}
	if r := n % align; r != 0 {
		return n + (align - r)
	}
	return n
}

func maxU64(a, b uint64) uint64 {
	if a > b {
		return a
	}
	return b
}

func nextPow2(n uint64) uint64 {
	if n <= 1 {
		return 1
	}
	p := uint64(1)
	for p < n {
		p <<= 1
	}
	return p
}

func (e *Engine) compute(id types.TypeID, st *visitState) (Layout, *Error) {
	t, ok := e.Types.Lookup(id)
	if !ok {
		return Layout{}, nil
	}

	switch t.Specifier {
	case types.Attributed:
		return e.computeAttributed(id, t, st)
	case types.TypeofType, types.TypeofExpr, types.DecayedTypeofType, types.DecayedTypeofExpr:
		canon := types.Canonicalize(e.Types, id, types.CanonStandard)
		if canon == id {
			return Layout{}, nil
		}
		return e.layoutOf(canon, st)
	}

	if l, ok := e.primitiveLayout(t.Specifier); ok {
		return l, nil
	}

	switch {
	case t.Specifier == types.BitInt || t.Specifier == types.ComplexBitInt:
		return e.bitIntLayout(id, t)
	case isComplexNumeric(t.Specifier):
		return e.complexLayout(id)
	case t.Specifier == types.Pointer:
		return Layout{SizeBytes: u64(e.Target.PtrSize), SizeBits: u64(e.Target.PtrSize) * 8, Align: u64(e.Target.EffectivePointerAlign()), Ok: true}, nil
	case types.IsDecayed(t.Specifier):
		return Layout{SizeBytes: u64(e.Target.PtrSize), SizeBits: u64(e.Target.PtrSize) * 8, Align: u64(e.Target.EffectivePointerAlign()), Ok: true}, nil
	case types.IsArrayKind(t.Specifier):
		return e.arrayLayout(id, t, st)
	case t.Specifier == types.Func || t.Specifier == types.VarArgsFunc || t.Specifier == types.OldStyleFunc:
		align := u64(e.Target.FuncAlign)
		if align == 0 {
			align = 1
		}
		return Layout{SizeBytes: 1, SizeBits: 8, Align: align, Ok: true}, nil
	case t.Specifier == types.StructTy || t.Specifier == types.UnionTy:
		return e.recordLayout(id, t, st)
	case t.Specifier == types.EnumTy:
		return e.enumLayout(id, t, st)
	default:
		// void, nullptr_t's non-pointer-backed cases, invalid, special_va_start: no ABI size.
		return Layout{}, nil
	}
}

func u64(n int) uint64 {
	if n < 0 {
		return 0
	}
	return uint64(n)
}

func isComplexNumeric(s types.Specifier) bool {
	switch s {
	case types.ComplexChar, types.ComplexSChar, types.ComplexUChar, types.ComplexShort, types.ComplexUShort,
		types.ComplexInt, types.ComplexUInt, types.ComplexLong, types.ComplexULong,
		types.ComplexLongLong, types.ComplexULongLong, types.ComplexInt128, types.ComplexUInt128,
		types.ComplexFP16, types.ComplexFloat, types.ComplexDouble, types.ComplexLongDouble,
		types.ComplexFloat80, types.ComplexFloat128:
		return true
	default:
		return false
	}
}

// primitiveLayout handles every scalar specifier whose size/align comes
// straight out of the Target descriptor and needs no payload lookup.
func (e *Engine) primitiveLayout(s types.Specifier) (Layout, bool) {
	tg := e.Target
	switch s {
	case types.Bool:
		size := u64(tg.BoolSize)
		if size == 0 {
			size = 1
		}
		bits := uint64(1)
		if e.LangOpts.DialectKind() == target.MSVC {
			bits = 8
		}
		return Layout{SizeBytes: size, SizeBits: bits, Align: size, Ok: true}, true
	case types.NullptrT:
		return Layout{SizeBytes: u64(tg.PtrSize), SizeBits: u64(tg.PtrSize) * 8, Align: u64(tg.PtrAlign), Ok: true}, true
	case types.Char, types.SChar, types.UChar:
		size := u64(tg.CharSize)
		if size == 0 {
			size = 1
		}
		return Layout{SizeBytes: size, SizeBits: size * 8, Align: size, Ok: true}, true
	case types.Short, types.UShort:
		return scalar(u64(tg.ShortSize)), true
	case types.Int, types.UInt:
		return scalar(u64(tg.IntSize)), true
	case types.Long, types.ULong:
		return scalar(u64(tg.LongSize)), true
	case types.LongLong, types.ULongLong:
		size := u64(tg.LongLongSize)
		align := u64(tg.LongLongAlign)
		if align == 0 {
			align = size
		}
		return Layout{SizeBytes: size, SizeBits: size * 8, Align: align, Ok: true}, true
	case types.Int128, types.UInt128:
		size, align := u64(tg.Int128Size), u64(tg.Int128Align)
		if size == 0 {
			size = 16
		}
		if align == 0 {
			align = 16
		}
		return Layout{SizeBytes: size, SizeBits: size * 8, Align: align, Ok: true}, true
	case types.FP16:
		return scalar(u64(tg.FP16Size)), true
	case types.Float:
		return scalar(u64(tg.FloatSize)), true
	case types.Double:
		return scalar(u64(tg.DoubleSize)), true
	case types.LongDouble:
		bits := u64(tg.LongDoubleBits)
		if bits == 0 {
			bits = u64(tg.LongDoubleSize) * 8
		}
		return Layout{SizeBytes: u64(tg.LongDoubleSize), SizeBits: bits, Align: u64(tg.LongDoubleAlign), Ok: true}, true
	case types.Float80:
		bits := u64(tg.Float80Bits)
		if bits == 0 {
			bits = u64(tg.Float80Size) * 8
		}
		return Layout{SizeBytes: u64(tg.Float80Size), SizeBits: bits, Align: u64(tg.LongDoubleAlign), Ok: true}, true
	case types.Float128:
		align := maxU64(u64(tg.LongDoubleAlign), u64(tg.Float128Size))
		return Layout{SizeBytes: u64(tg.Float128Size), SizeBits: u64(tg.Float128Size) * 8, Align: align, Ok: true}, true
	default:
		return Layout{}, false
	}
}

func scalar(size uint64) Layout {
	if size == 0 {
		return Layout{}
	}
	return Layout{SizeBytes: size, SizeBits: size * 8, Align: size, Ok: true}
}
