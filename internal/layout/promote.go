package layout

import (
	"ctypes/internal/types"
)

// IntegerPromotion implements C's integer promotions: bool/char/schar/uchar
// and short widen to int; ushort widens to uint only when sizeof(ushort)
// equals sizeof(int) on this target, else to int (since int can already
// represent every ushort value); every wider integer type, complex
// integers, and _BitInt(N) pass through unchanged. An incomplete enum
// promotes as int; a complete one promotes as its tag type.
func (e *Engine) IntegerPromotion(ty types.TypeID) types.TypeID {
	if e == nil || e.Types == nil {
		return ty
	}
	b := e.Types.Builtins()
	t, ok := e.Types.Lookup(ty)
	if !ok {
		return ty
	}

	switch t.Specifier {
	case types.EnumTy:
		info, ok := e.Types.EnumInfo(ty)
		if !ok || !info.Complete || info.TagType == types.NoTypeID {
			return b.Int
		}
		return e.IntegerPromotion(info.TagType)
	case types.Bool, types.Char, types.SChar, types.UChar, types.Short:
		return b.Int
	case types.UShort:
		if e.Target.ShortSize == e.Target.IntSize {
			return b.UInt
		}
		return b.Int
	default:
		return ty
	}
}

// MinInt and MaxInt return the smallest and largest value of an integer
// type on this target (MinInt is 0 for an unsigned type); the bool is false
// when ty is not an integer type of known width. _BitInt(N) and __int128
// derive their bounds from the declared/target width; the fixed-width
// named integers use the target's byte sizes.
func (e *Engine) MinInt(ty types.TypeID) (int64, bool) {
	bits, signed, ok := e.intBitsAndSign(ty)
	if !ok || !signed {
		return 0, ok
	}
	if bits >= 64 {
		return minInt64, true
	}
	return -(int64(1) << (bits - 1)), true
}

func (e *Engine) MaxInt(ty types.TypeID) (uint64, bool) {
	bits, signed, ok := e.intBitsAndSign(ty)
	if !ok {
		return 0, false
	}
	if signed {
		if bits >= 64 {
			return maxInt64, true
		}
		return uint64(1)<<(bits-1) - 1, true
	}
	if bits >= 64 {
		return maxUint64, true
	}
	return uint64(1)<<bits - 1, true
}

const (
	minInt64  = int64(-9223372036854775808)
	maxInt64  = uint64(9223372036854775807)
	maxUint64 = uint64(18446744073709551615)
)

func (e *Engine) intBitsAndSign(ty types.TypeID) (uint64, bool, bool) {
	t, ok := e.Types.Lookup(ty)
	if !ok {
		return 0, false, false
	}
	if t.Specifier == types.BitInt {
		info, ok := e.Types.BitIntInfo(ty)
		if !ok {
			return 0, false, false
		}
		return uint64(info.Bits), info.Signed, true
	}
	l, ok := e.primitiveLayout(t.Specifier)
	if !ok || !types.IsInt(e.Types, ty) {
		return 0, false, false
	}
	return l.SizeBytes * 8, e.isSignedIntSpecifier(t.Specifier), true
}

// isSignedIntSpecifier reports a fixed-width integer specifier's signedness,
// except for plain `char`: whether plain char is signed is a per-target ABI
// choice (signed on x86/ARMv7-iOS, unsigned on most other ARM/PowerPC/s390x
// targets), so it defers to e.Target.CharSigned instead of a fixed answer.
func (e *Engine) isSignedIntSpecifier(s types.Specifier) bool {
	switch s {
	case types.Char:
		return e.Target.CharSigned
	case types.UChar, types.UShort, types.UInt, types.ULong, types.ULongLong, types.UInt128:
		return false
	default:
		return true
	}
}

// EnumIsPacked reports whether enumTy is laid out in its smallest
// representable integer type rather than always at least int width: true
// when the dialect's short-enums flag is set, the target packs every enum
// unconditionally, or the enum itself carries a `packed` attribute.
func (e *Engine) EnumIsPacked(ty types.TypeID) bool {
	if e.LangOpts.ShortEnums {
		return true
	}
	if e.Target.Arch == "avr" {
		// AVR packs every enum into the smallest integer type by default.
		return true
	}
	return hasAttr(e.attributesFor(ty), types.AttrPacked)
}
