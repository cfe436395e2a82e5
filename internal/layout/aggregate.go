package layout

import (
	"ctypes/internal/target"
	"ctypes/internal/types"
)

// computeAttributed lays out the wrapped base type, then folds in any
// `aligned(N)`/`packed` annotation carried by this specific attributed()
// node, applying the category-specific combination rule:
// records take max(requested, computed) except MSVC (requested alone);
// enums take requested alone except under GCC emulation, which ignores
// `aligned` on enums entirely.
func (e *Engine) computeAttributed(id types.TypeID, t types.Type, st *visitState) (Layout, *Error) {
	info, ok := e.Types.AttributedInfo(id)
	if !ok {
		return Layout{}, nil
	}
	base, err := e.layoutOf(info.Base, st)
	if err != nil || !base.Ok {
		return base, err
	}

	baseType, _ := e.Types.Lookup(info.Base)
	req, hasReq := e.requestedAlignment(id)
	if !hasReq {
		return base, nil
	}

	switch {
	case baseType.Specifier == types.EnumTy:
		if e.LangOpts.DialectKind() == target.GCC {
			return base, nil
		}
		return Layout{SizeBytes: base.SizeBytes, SizeBits: base.SizeBits, Align: req, Ok: true}, nil
	case baseType.Specifier == types.StructTy || baseType.Specifier == types.UnionTy:
		if e.LangOpts.DialectKind() == target.MSVC {
			return Layout{SizeBytes: roundUp(base.SizeBytes, req), SizeBits: roundUp(base.SizeBits, req*8), Align: req, Ok: true}, nil
		}
		align := maxU64(base.Align, req)
		return Layout{SizeBytes: roundUp(base.SizeBytes, align), SizeBits: roundUp(base.SizeBits, align*8), Align: align, Ok: true}, nil
	default:
		align := maxU64(base.Align, req)
		return Layout{SizeBytes: roundUp(base.SizeBytes, align), SizeBits: base.SizeBits, Align: align, Ok: true}, nil
	}
}

// bitIntLayout sizes _BitInt(N)/_Complex _BitInt(N). A plain _BitInt(N)
// occupies ceil(N/8) bytes rounded up to its own alignment (the next power
// of two of that byte count, clamped to the target's max integer
// alignment); its *bit* size is the declared N, not 8*sizeof, since the
// storage rounding is padding invisible to bitSizeof.
func (e *Engine) bitIntLayout(id types.TypeID, t types.Type) (Layout, *Error) {
	info, ok := e.Types.BitIntInfo(id)
	if !ok {
		return Layout{}, nil
	}
	bits := uint64(info.Bits)
	rawBytes := (bits + 7) / 8
	align := e.Target.ClampIntAlign(int(nextPow2(rawBytes)))
	sizeBytes := roundUp(rawBytes, uint64(align))

	if t.Specifier == types.BitInt {
		return Layout{SizeBytes: sizeBytes, SizeBits: bits, Align: uint64(align), Ok: true}, nil
	}
	// complex_bit_int: two real components back to back.
	return Layout{SizeBytes: sizeBytes * 2, SizeBits: bits * 2, Align: uint64(align), Ok: true}, nil
}

// complexLayout sizes a _Complex real/floating type as two of its real
// companion, per sizeof(complex X) == 2*sizeof(realOf(X)).
func (e *Engine) complexLayout(id types.TypeID) (Layout, *Error) {
	realID := types.MakeReal(e.Types, id)
	if realID == id {
		return Layout{}, nil
	}
	real, ok := e.Types.Lookup(realID)
	if !ok {
		return Layout{}, nil
	}
	l, ok2 := e.primitiveLayout(real.Specifier)
	if !ok2 {
		return Layout{}, nil
	}
	return Layout{SizeBytes: l.SizeBytes * 2, SizeBits: l.SizeBits * 2, Align: l.Align, Ok: true}, nil
}

// arrayLayout sizes array and vector specifiers alike: elem_size × len,
// rounded up to the array's own alignment (the element's alignment) —
// except under MSVC, where that final rounding is skipped, so a trailing
// flexible member's byte-exact size need not be a multiple of its element
// alignment.
func (e *Engine) arrayLayout(id types.TypeID, t types.Type, st *visitState) (Layout, *Error) {
	elemLayout, err := e.layoutOf(t.Elem, st)
	if err != nil {
		return Layout{}, err
	}
	if !elemLayout.Ok {
		return Layout{}, nil
	}

	switch t.Specifier {
	case types.IncompleteArray:
		if e.LangOpts.DialectKind() == target.MSVC {
			return Layout{SizeBytes: 0, SizeBits: 0, Align: elemLayout.Align, Ok: true}, nil
		}
		return Layout{Align: elemLayout.Align, Ok: false}, nil
	case types.VariableLenArray, types.UnspecifiedVariableLenArray:
		return Layout{Align: elemLayout.Align, Ok: false}, nil
	}

	info, ok := e.Types.ArrayInfo(id)
	if !ok {
		return Layout{}, nil
	}
	raw := elemLayout.SizeBytes * info.Len
	sizeBytes := raw
	if e.LangOpts.DialectKind() != target.MSVC {
		sizeBytes = roundUp(raw, elemLayout.Align)
	}
	return Layout{SizeBytes: sizeBytes, SizeBits: sizeBytes * 8, Align: elemLayout.Align, Ok: true}, nil
}

// enumLayout delegates to the fixed/completed tag type, then folds in any
// `aligned(N)` attribute attached directly to the enum's own tag (as opposed
// to an attributed() wrapper node): GCC ignores `aligned` on enums, every
// other dialect takes the requested alignment alone, mirroring
// computeAttributed's enum branch. An enum that has not yet been completed
// has no known representation.
func (e *Engine) enumLayout(id types.TypeID, t types.Type, st *visitState) (Layout, *Error) {
	info, ok := e.Types.EnumInfo(id)
	if !ok || !info.Complete || info.TagType == types.NoTypeID {
		return Layout{}, nil
	}
	base, err := e.layoutOf(info.TagType, st)
	if err != nil || !base.Ok {
		return base, err
	}

	req, hasReq := e.requestedAlignment(id)
	if !hasReq || e.LangOpts.DialectKind() == target.GCC {
		return base, nil
	}
	return Layout{SizeBytes: base.SizeBytes, SizeBits: base.SizeBits, Align: req, Ok: true}, nil
}

// recordLayout lays out a struct/union's fields, threading through
// non-bitfield alignment/padding and a simplified consecutive bitfield
// packer, then folds in `packed`/`aligned` and writes the finalized
// per-field offsets back onto the RecordInfo.
func (e *Engine) recordLayout(id types.TypeID, t types.Type, st *visitState) (Layout, *Error) {
	info, ok := e.Types.RecordInfo(id)
	if !ok || !info.Complete {
		return Layout{}, nil
	}
	attrs := e.attributesFor(id)
	packed := hasAttr(attrs, types.AttrPacked)
	isUnion := t.Specifier == types.UnionTy

	fieldLayouts := make([]types.FieldLayout, len(info.Fields))
	var sizeBits uint64
	var align uint64 = 1
	var bitCursor uint64 // bit offset within the current byte-based struct layout; reset per-union member

	for i, f := range info.Fields {
		fl, err := e.layoutOf(f.Type, st)
		if err != nil {
			return Layout{}, err
		}
		if !fl.Ok {
			continue
		}
		fieldAlign := fl.Align
		if packed {
			fieldAlign = 1
		} else if e.Target.IgnoreNonZeroSizedBitfieldTypeAlignment && f.BitWidth != nil && *f.BitWidth != 0 {
			fieldAlign = 1
		}

		if f.BitWidth != nil {
			width := uint64(*f.BitWidth)
			if width == 0 {
				// Zero-width bitfield: forces the next field to start at
				// the next allocation unit aligned to this field's type.
				bitCursor = roundUp(bitCursor, fl.Align*8)
				fieldLayouts[i] = types.FieldLayout{OffsetBits: bitCursor, SizeBits: 0, Computed: true}
				align = maxU64(align, fieldAlign)
				continue
			}
			offset := bitCursor
			if isUnion {
				offset = 0
			}
			fieldLayouts[i] = types.FieldLayout{OffsetBits: offset, SizeBits: width, Computed: true}
			if isUnion {
				sizeBits = maxU64(sizeBits, width)
			} else {
				bitCursor += width
				sizeBits = maxU64(sizeBits, bitCursor)
			}
			align = maxU64(align, fieldAlign)
			continue
		}

		bitAlign := fieldAlign * 8
		offset := roundUp(bitCursor, bitAlign)
		if isUnion {
			offset = 0
		}
		width := fl.SizeBytes * 8
		fieldLayouts[i] = types.FieldLayout{OffsetBits: offset, SizeBits: width, Computed: true}
		if isUnion {
			sizeBits = maxU64(sizeBits, width)
		} else {
			bitCursor = offset + width
			sizeBits = maxU64(sizeBits, bitCursor)
		}
		align = maxU64(align, fieldAlign)
	}

	if packed {
		align = 1
	}
	sizeBits = roundUp(sizeBits, align*8)

	if req, hasReq := e.requestedAlignment(id); hasReq {
		// A tag-level `aligned(N)` (struct __attribute__((aligned(N))) S)
		// follows the same category rule as the attributed()-wrapper
		// spelling in computeAttributed: MSVC takes the request alone,
		// everyone else takes max(computed, requested).
		if e.LangOpts.DialectKind() == target.MSVC {
			align = req
		} else {
			align = maxU64(align, req)
		}
		sizeBits = roundUp(sizeBits, align*8)
	}

	e.Types.SetFieldLayouts(id, fieldLayouts)
	return Layout{SizeBytes: sizeBits / 8, SizeBits: sizeBits, Align: align, Ok: true}, nil
}
