package target

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// profileFile is the TOML shape LoadProfileFile decodes, following the
// teacher's cmd/surge project-manifest convention: decode into a plain
// struct, then walk toml.MetaData.IsDefined to reject a file missing a
// required key instead of silently zero-valuing it.
type profileFile struct {
	Target struct {
		Triple            string `toml:"triple"`
		Arch              string `toml:"arch"`
		OS                string `toml:"os"`
		ABI               string `toml:"abi"`
		PtrSize           int    `toml:"ptr_size"`
		PtrAlign          int    `toml:"ptr_align"`
		BoolSize          int    `toml:"bool_size"`
		CharSize          int    `toml:"char_size"`
		CharSigned        bool   `toml:"char_signed"`
		ShortSize         int    `toml:"short_size"`
		IntSize           int    `toml:"int_size"`
		LongSize          int    `toml:"long_size"`
		LongLongSize      int    `toml:"long_long_size"`
		LongLongAlign     int    `toml:"long_long_align"`
		Int128Size        int    `toml:"int128_size"`
		Int128Align       int    `toml:"int128_align"`
		FP16Size          int    `toml:"fp16_size"`
		FloatSize         int    `toml:"float_size"`
		DoubleSize        int    `toml:"double_size"`
		LongDoubleSize    int    `toml:"long_double_size"`
		LongDoubleAlign   int    `toml:"long_double_align"`
		LongDoubleBits    int    `toml:"long_double_bits"`
		Float80Size       int    `toml:"float80_size"`
		Float80Bits       int    `toml:"float80_bits"`
		Float128Size      int    `toml:"float128_size"`
		FuncAlign         int    `toml:"func_align"`
		MaxBitIntAlign    int    `toml:"max_bit_int_align"`
		Supports128BitInt bool   `toml:"supports_128bit_int"`
		IgnoreNonZeroSizedBitfieldTypeAlignment bool `toml:"ignore_nonzero_bitfield_type_alignment"`
	} `toml:"target"`

	LangOpts struct {
		Standard   string `toml:"standard"`
		Dialect    string `toml:"dialect"`
		ShortEnums bool   `toml:"short_enums"`
	} `toml:"langopts"`
}

// LoadProfileFile decodes a target/dialect profile from a TOML file with
// `[target]` and `[langopts]` tables, the same role the teacher's
// surge.toml project manifest plays for package/run configuration.
func LoadProfileFile(path string) (Profile, error) {
	var pf profileFile
	meta, err := toml.DecodeFile(path, &pf)
	if err != nil {
		return Profile{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("target") {
		return Profile{}, fmt.Errorf("%s: missing [target]", path)
	}
	if !meta.IsDefined("target", "triple") || strings.TrimSpace(pf.Target.Triple) == "" {
		return Profile{}, fmt.Errorf("%s: missing [target].triple", path)
	}
	if !meta.IsDefined("target", "ptr_size") {
		return Profile{}, fmt.Errorf("%s: missing [target].ptr_size", path)
	}

	t := Target{
		Triple: pf.Target.Triple, Arch: pf.Target.Arch, OS: pf.Target.OS, ABI: pf.Target.ABI,
		PtrSize: pf.Target.PtrSize, PtrAlign: pf.Target.PtrAlign,
		BoolSize:   pf.Target.BoolSize,
		CharSize:   pf.Target.CharSize, CharSigned: pf.Target.CharSigned,
		ShortSize: pf.Target.ShortSize, IntSize: pf.Target.IntSize, LongSize: pf.Target.LongSize,
		LongLongSize: pf.Target.LongLongSize, LongLongAlign: pf.Target.LongLongAlign,
		Int128Size: pf.Target.Int128Size, Int128Align: pf.Target.Int128Align,
		FP16Size: pf.Target.FP16Size, FloatSize: pf.Target.FloatSize, DoubleSize: pf.Target.DoubleSize,
		LongDoubleSize: pf.Target.LongDoubleSize, LongDoubleAlign: pf.Target.LongDoubleAlign, LongDoubleBits: pf.Target.LongDoubleBits,
		Float80Size: pf.Target.Float80Size, Float80Bits: pf.Target.Float80Bits,
		Float128Size:      pf.Target.Float128Size,
		FuncAlign:         pf.Target.FuncAlign,
		MaxBitIntAlign:    pf.Target.MaxBitIntAlign,
		Supports128BitInt: pf.Target.Supports128BitInt,
		IgnoreNonZeroSizedBitfieldTypeAlignment: pf.Target.IgnoreNonZeroSizedBitfieldTypeAlignment,
	}

	opts := LangOpts{ShortEnums: pf.LangOpts.ShortEnums}
	if pf.LangOpts.Dialect != "" {
		d, err := ParseDialect(strings.ToLower(pf.LangOpts.Dialect))
		if err != nil {
			return Profile{}, fmt.Errorf("%s: %w", path, err)
		}
		opts.Dialect = d
	}
	if pf.LangOpts.Standard != "" {
		opts.Standard = parseCStandard(pf.LangOpts.Standard)
	}

	return Profile{Target: t, LangOpts: opts}, nil
}

func parseCStandard(s string) CStandard {
	switch strings.ToLower(s) {
	case "c99":
		return C99
	case "c11":
		return C11
	case "c17":
		return C17
	case "c23":
		return C23
	default:
		return C23
	}
}
