package target

import "sort"

// Profile pairs a Target descriptor with the LangOpts the CLI defaults it
// to, the unit cmd/ctypec's --target/--dialect flags resolve into.
type Profile struct {
	Target   Target
	LangOpts LangOpts
}

// X86_64LinuxGNU is the engine's default profile: LP64, extended-precision
// 80-bit long double stored in 16 bytes, natively supported __int128.
func X86_64LinuxGNU() Profile {
	return Profile{
		Target: Target{
			Triple: "x86_64-linux-gnu", Arch: "x86_64", OS: "linux", ABI: "gnu",
			PtrSize: 8, PtrAlign: 8,
			BoolSize:   1,
			CharSize:   1, CharSigned: true,
			ShortSize: 2, IntSize: 4, LongSize: 8,
			LongLongSize: 8, LongLongAlign: 8,
			Int128Size: 16, Int128Align: 16, Supports128BitInt: true,
			FP16Size: 2, FloatSize: 4, DoubleSize: 8,
			LongDoubleSize: 16, LongDoubleAlign: 16, LongDoubleBits: 80,
			Float80Size: 16, Float80Bits: 80,
			Float128Size: 16,
			FuncAlign:    1,
			MaxBitIntAlign: 16,
		},
	}
}

// I586LinuxGNU is ILP32 x86: 4-byte long, 8-byte long long stored with only
// 4-byte alignment (spec.md §8 scenario 6), no __int128.
func I586LinuxGNU() Profile {
	return Profile{
		Target: Target{
			Triple: "i586-linux-gnu", Arch: "i586", OS: "linux", ABI: "gnu",
			PtrSize: 4, PtrAlign: 4,
			BoolSize:   1,
			CharSize:   1, CharSigned: true,
			ShortSize: 2, IntSize: 4, LongSize: 4,
			LongLongSize: 8, LongLongAlign: 4,
			Supports128BitInt: false,
			FP16Size: 2, FloatSize: 4, DoubleSize: 4,
			LongDoubleSize: 12, LongDoubleAlign: 4, LongDoubleBits: 80,
			Float80Size: 12, Float80Bits: 80,
			Float128Size: 16,
			FuncAlign:    1,
			MaxBitIntAlign: 8,
		},
	}
}

// ARMv7IOS: 32-bit ARM under Apple's iOS ABI, signed plain char (unlike
// most ARM targets), and the non-zero-sized-bitfield alignment quirk.
func ARMv7IOS() Profile {
	return Profile{
		Target: Target{
			Triple: "armv7-apple-ios", Arch: "arm", OS: "ios", ABI: "apple",
			PtrSize: 4, PtrAlign: 4,
			BoolSize:   1,
			CharSize:   1, CharSigned: true,
			ShortSize: 2, IntSize: 4, LongSize: 4,
			LongLongSize: 8, LongLongAlign: 4,
			Supports128BitInt: false,
			FP16Size: 2, FloatSize: 4, DoubleSize: 8,
			LongDoubleSize: 8, LongDoubleAlign: 8, LongDoubleBits: 64,
			Float80Size: 8, Float80Bits: 64,
			Float128Size: 16,
			FuncAlign:    4,
			MaxBitIntAlign: 8,
			IgnoreNonZeroSizedBitfieldTypeAlignment: true,
		},
	}
}

// X86_64WindowsMSVC: LLP64 (4-byte long), no native __int128, long double
// collapsing to double's 64 bits, the dialect's own array/_Bool/aligned
// exceptions are handled by internal/layout.compute.go, not by this
// descriptor.
func X86_64WindowsMSVC() Profile {
	return Profile{
		Target: Target{
			Triple: "x86_64-pc-windows-msvc", Arch: "x86_64", OS: "windows", ABI: "msvc",
			PtrSize: 8, PtrAlign: 8,
			BoolSize:   1,
			CharSize:   1, CharSigned: true,
			ShortSize: 2, IntSize: 4, LongSize: 4,
			LongLongSize: 8, LongLongAlign: 8,
			Supports128BitInt: false,
			FP16Size: 2, FloatSize: 4, DoubleSize: 8,
			LongDoubleSize: 8, LongDoubleAlign: 8, LongDoubleBits: 64,
			Float80Size: 8, Float80Bits: 64,
			Float128Size: 16,
			FuncAlign:    1,
			MaxBitIntAlign: 8,
		},
		LangOpts: LangOpts{Dialect: MSVC},
	}
}

// AVR: an 8-bit microcontroller target. 2-byte int, 1-byte pointer
// alignment despite a 2-byte pointer (EffectivePointerAlign handles the
// exception), unsigned plain char, and enums packed into their smallest
// representable integer type by default (internal/layout.EnumIsPacked).
func AVR() Profile {
	return Profile{
		Target: Target{
			Triple: "avr", Arch: "avr", OS: "none", ABI: "gnu",
			PtrSize: 2, PtrAlign: 1,
			BoolSize:   1,
			CharSize:   1, CharSigned: false,
			ShortSize: 2, IntSize: 2, LongSize: 4,
			LongLongSize: 8, LongLongAlign: 1,
			Supports128BitInt: false,
			FP16Size: 2, FloatSize: 4, DoubleSize: 4,
			LongDoubleSize: 4, LongDoubleAlign: 1, LongDoubleBits: 32,
			Float80Size: 4, Float80Bits: 32,
			Float128Size: 4,
			FuncAlign:    1,
			MaxBitIntAlign: 1,
			IgnoreNonZeroSizedBitfieldTypeAlignment: true,
		},
	}
}

// S390XLinuxGNU: big-endian LP64 with __int128 supported but aligned to
// only 8 bytes, unlike every other 128-bit-capable target (spec.md §4.4/§6).
func S390XLinuxGNU() Profile {
	return Profile{
		Target: Target{
			Triple: "s390x-linux-gnu", Arch: "s390x", OS: "linux", ABI: "gnu",
			PtrSize: 8, PtrAlign: 8,
			BoolSize:   1,
			CharSize:   1, CharSigned: false,
			ShortSize: 2, IntSize: 4, LongSize: 8,
			LongLongSize: 8, LongLongAlign: 8,
			Int128Size: 16, Int128Align: 8, Supports128BitInt: true,
			FP16Size: 2, FloatSize: 4, DoubleSize: 8,
			LongDoubleSize: 16, LongDoubleAlign: 8, LongDoubleBits: 128,
			Float80Size: 16, Float80Bits: 128,
			Float128Size: 16,
			FuncAlign:    1,
			MaxBitIntAlign: 8,
		},
	}
}

// Wasm32 is the documented exception to "__int128 requires a 64-bit
// target": wasm32 is ILP32 but still supports and natively aligns
// __int128, since WebAssembly's linear memory has no hardware alignment
// penalty to avoid.
func Wasm32() Profile {
	return Profile{
		Target: Target{
			Triple: "wasm32-unknown-unknown", Arch: "wasm32", OS: "unknown", ABI: "none",
			PtrSize: 4, PtrAlign: 4,
			BoolSize:   1,
			CharSize:   1, CharSigned: true,
			ShortSize: 2, IntSize: 4, LongSize: 4,
			LongLongSize: 8, LongLongAlign: 8,
			Int128Size: 16, Int128Align: 16, Supports128BitInt: true,
			FP16Size: 2, FloatSize: 4, DoubleSize: 8,
			LongDoubleSize: 16, LongDoubleAlign: 16, LongDoubleBits: 128,
			Float80Size: 16, Float80Bits: 128,
			Float128Size: 16,
			FuncAlign:    1,
			MaxBitIntAlign: 16,
		},
	}
}

// AArch64LinuxGNU: LP64 ARM64 with IEEE quad-precision long double (128
// bits, unlike x86_64's 80-bit extended precision stored in the same 16
// bytes — spec.md §8 invariant 5 / TestAArch64LongDoubleIsQuadPrecision).
func AArch64LinuxGNU() Profile {
	return Profile{
		Target: Target{
			Triple: "aarch64-linux-gnu", Arch: "aarch64", OS: "linux", ABI: "gnu",
			PtrSize: 8, PtrAlign: 8,
			BoolSize:   1,
			CharSize:   1, CharSigned: false,
			ShortSize: 2, IntSize: 4, LongSize: 8,
			LongLongSize: 8, LongLongAlign: 8,
			Int128Size: 16, Int128Align: 16, Supports128BitInt: true,
			FP16Size: 2, FloatSize: 4, DoubleSize: 8,
			LongDoubleSize: 16, LongDoubleAlign: 16, LongDoubleBits: 128,
			Float80Size: 16, Float80Bits: 128,
			Float128Size: 16,
			FuncAlign:    4,
			MaxBitIntAlign: 16,
		},
	}
}

// RV64LinuxGNU: LP64D RISC-V, the target spec.md §4.4 singles out for a
// 2-byte function alignment rather than the 1-byte default most non-ARM
// targets get.
func RV64LinuxGNU() Profile {
	return Profile{
		Target: Target{
			Triple: "riscv64-linux-gnu", Arch: "riscv64", OS: "linux", ABI: "gnu",
			PtrSize: 8, PtrAlign: 8,
			BoolSize:   1,
			CharSize:   1, CharSigned: false,
			ShortSize: 2, IntSize: 4, LongSize: 8,
			LongLongSize: 8, LongLongAlign: 8,
			Int128Size: 16, Int128Align: 16, Supports128BitInt: true,
			FP16Size: 2, FloatSize: 4, DoubleSize: 8,
			LongDoubleSize: 16, LongDoubleAlign: 16, LongDoubleBits: 128,
			Float80Size: 16, Float80Bits: 128,
			Float128Size: 16,
			FuncAlign:    2,
			MaxBitIntAlign: 16,
		},
	}
}

var registry = map[string]func() Profile{
	"x86_64-linux-gnu":       X86_64LinuxGNU,
	"i586-linux-gnu":         I586LinuxGNU,
	"armv7-apple-ios":        ARMv7IOS,
	"x86_64-pc-windows-msvc": X86_64WindowsMSVC,
	"avr":                    AVR,
	"s390x-linux-gnu":        S390XLinuxGNU,
	"wasm32-unknown-unknown": Wasm32,
	"aarch64-linux-gnu":      AArch64LinuxGNU,
	"riscv64-linux-gnu":      RV64LinuxGNU,
}

// Lookup resolves a target triple to its built-in Profile.
func Lookup(triple string) (Profile, bool) {
	ctor, ok := registry[triple]
	if !ok {
		return Profile{}, false
	}
	return ctor(), true
}

// Names lists every built-in target triple, sorted, for error messages and
// flag-completion.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
