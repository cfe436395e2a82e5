// Package target describes the ABI target triple and the language-dialect
// options the rest of the engine consults to resolve size/alignment/
// signedness questions that C itself leaves to the implementation.
//
// Grounded on the teacher's internal/layout.Target (Triple/PtrSize/PtrAlign)
// generalized from a single hardcoded triple into the multi-arch, multi-field
// descriptor spec.md §4.4/§6 names (GCC/Clang/MSVC quirks, AVR/ARMv7-iOS
// bitfield alignment, s390x __int128 alignment, wasm32's __int128 exception).
package target

import "fmt"

// Target is one architecture/OS/ABI's primitive sizes, alignments, and the
// handful of per-target quirk flags the layout engine branches on. All
// sizes/alignments are in bytes unless the field name says otherwise.
type Target struct {
	Triple string
	Arch   string
	OS     string
	ABI    string

	PtrSize  int
	PtrAlign int

	BoolSize int

	CharSize   int
	CharSigned bool

	ShortSize int
	IntSize   int
	LongSize  int

	LongLongSize  int
	LongLongAlign int // 0 means "same as LongLongSize"

	Int128Size  int // 0 means "use the engine's 16-byte default"
	Int128Align int // 0 means "use the engine's 16-byte default"

	FP16Size int

	FloatSize  int
	DoubleSize int

	LongDoubleSize  int
	LongDoubleAlign int
	LongDoubleBits  int // 0 means "derive from 8*LongDoubleSize"

	Float80Size int
	Float80Bits int // 0 means "derive from 8*Float80Size"

	Float128Size int

	FuncAlign int // 0 means "use the engine's 1-byte default"

	// MaxBitIntAlign clamps the natural power-of-two alignment _BitInt(N)
	// would otherwise compute, mirroring the target's largest scalar
	// alignment. 0 disables clamping.
	MaxBitIntAlign int

	Supports128BitInt bool

	// IgnoreNonZeroSizedBitfieldTypeAlignment suppresses a bitfield's
	// underlying-type alignment contribution to its record, set on AVR
	// and ARMv7-iOS per spec.md §4.4/§6.
	IgnoreNonZeroSizedBitfieldTypeAlignment bool
}

// EffectivePointerAlign returns the alignment a pointer actually uses on
// this target: AVR's 8-bit-native ABI aligns pointers to 1 despite their
// 2-byte size, every other target uses PtrAlign as stated.
func (t Target) EffectivePointerAlign() int {
	if t.Arch == "avr" {
		return 1
	}
	return t.PtrAlign
}

// ClampIntAlign clamps a computed integer alignment (e.g. _BitInt(N)'s
// next-power-of-two byte count) to this target's largest representable
// scalar alignment. A zero MaxBitIntAlign means "no clamp".
func (t Target) ClampIntAlign(requested int) int {
	if requested < 1 {
		return 1
	}
	if t.MaxBitIntAlign > 0 && requested > t.MaxBitIntAlign {
		return t.MaxBitIntAlign
	}
	return requested
}

// CStandard names the C language revision the front end is parsing as.
// LangOpts carries it, but neither the builder nor the printer reads it
// (`_BitInt`/`typeof` are C23; this engine accepts them under any standard
// since diagnosing a standard mismatch is out of scope per spec.md §1).
type CStandard uint8

const (
	C99 CStandard = iota
	C11
	C17
	C23
)

func (s CStandard) String() string {
	switch s {
	case C99:
		return "c99"
	case C11:
		return "c11"
	case C17:
		return "c17"
	case C23:
		return "c23"
	default:
		return "c23"
	}
}

// Dialect is the compiler whose quirks the layout engine should emulate
// for the handful of decisions §4.4/§4.6/§7 of spec.md carve out per
// compiler: _Bool's bit-size, `aligned` on enums, duplicate-specifier
// severity, and array-size rounding.
type Dialect uint8

const (
	GCC Dialect = iota
	Clang
	MSVC
)

func (d Dialect) String() string {
	switch d {
	case GCC:
		return "gcc"
	case Clang:
		return "clang"
	case MSVC:
		return "msvc"
	default:
		return "gcc"
	}
}

// ParseDialect maps a case-normalized flag value onto a Dialect.
func ParseDialect(s string) (Dialect, error) {
	switch s {
	case "gcc", "":
		return GCC, nil
	case "clang":
		return Clang, nil
	case "msvc":
		return MSVC, nil
	default:
		return GCC, fmt.Errorf("unknown dialect %q (known: gcc, clang, msvc)", s)
	}
}

// LangOpts bundles the C-standard and dialect-emulation knobs the builder
// and layout engine read. Its zero value (GCC, C99, short_enums off) is a
// usable default, matching every example repo's own "empty options is a
// sane default" convention.
type LangOpts struct {
	Standard    CStandard
	Dialect     Dialect
	ShortEnums  bool
}

// DialectKind returns the emulated compiler, defaulting to GCC.
func (o LangOpts) DialectKind() Dialect {
	return o.Dialect
}
