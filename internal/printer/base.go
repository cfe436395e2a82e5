package printer

import (
	"strconv"
	"strings"

	"ctypes/internal/types"
)

// printBase spells out a terminal (non-derived) specifier: a primitive, a
// struct/union/enum reference, or a _BitInt(N). It implements the
// "_Atomic(T) short-circuits the usual path" rule: when t carries the
// _Atomic qualifier, the whole thing is wrapped in the C11 atomic-type-
// specifier form instead of printing "_Atomic" as a leading qualifier word.
func (p *Printer) printBase(ty types.TypeID, t types.Type) string {
	if t.Quals.Atomic {
		inner := t
		inner.Quals.Atomic = false
		return "_Atomic(" + p.printBase(ty, inner) + ")"
	}

	spelling := p.specifierSpelling(ty, t.Specifier)
	q := strings.TrimSpace(qualSuffix(t.Quals))
	if q == "" {
		return spelling
	}
	return q + " " + spelling
}

func (p *Printer) specifierSpelling(ty types.TypeID, s types.Specifier) string {
	switch s {
	case types.Invalid:
		return "<invalid>"
	case types.Void:
		return "void"
	case types.Bool:
		return "_Bool"
	case types.NullptrT:
		return "nullptr_t"

	case types.Char:
		return "char"
	case types.SChar:
		return "signed char"
	case types.UChar:
		return "unsigned char"
	case types.Short:
		return "short"
	case types.UShort:
		return "unsigned short"
	case types.Int:
		return "int"
	case types.UInt:
		return "unsigned int"
	case types.Long:
		return "long"
	case types.ULong:
		return "unsigned long"
	case types.LongLong:
		return "long long"
	case types.ULongLong:
		return "unsigned long long"
	case types.Int128:
		return "__int128"
	case types.UInt128:
		return "unsigned __int128"

	case types.FP16:
		return "__fp16"
	case types.Float:
		return "float"
	case types.Double:
		return "double"
	case types.LongDouble:
		return "long double"
	case types.Float80:
		return "__float80"
	case types.Float128:
		return "_Float128"

	case types.BitInt, types.ComplexBitInt:
		return p.bitIntSpelling(ty, s == types.ComplexBitInt)

	case types.StructTy:
		return "struct " + p.tagName(ty)
	case types.UnionTy:
		return "union " + p.tagName(ty)
	case types.EnumTy:
		return "enum " + p.tagName(ty)

	case types.SpecialVaStart:
		return "__builtin_va_list"

	default:
		if isComplexBlock(s) {
			return "_Complex " + p.specifierSpelling(ty, s-complexOffsetFor(s))
		}
		return s.String()
	}
}

func (p *Printer) bitIntSpelling(ty types.TypeID, complex bool) string {
	bits := 0
	if info, ok := p.Types.BitIntInfo(ty); ok {
		bits = int(info.Bits)
		prefix := ""
		if complex {
			prefix = "_Complex "
		}
		sign := ""
		if !info.Signed {
			sign = "unsigned "
		}
		return prefix + sign + "_BitInt(" + strconv.Itoa(bits) + ")"
	}
	return "_BitInt(" + strconv.Itoa(bits) + ")"
}

func (p *Printer) tagName(ty types.TypeID) string {
	if rec, ok := p.Types.RecordInfo(ty); ok {
		if rec.IsAnonymous(p.Types.Strings) {
			return "{...}"
		}
		if name, ok := p.Mapper.Name(rec.Name); ok {
			return name
		}
		return "?"
	}
	if en, ok := p.Types.EnumInfo(ty); ok {
		if name, ok := p.Mapper.Name(en.Name); ok {
			return name
		}
		return "?"
	}
	return "?"
}

func isComplexBlock(s types.Specifier) bool {
	return s >= types.ComplexChar && s <= types.ComplexUInt128 ||
		s >= types.ComplexFP16 && s <= types.ComplexFloat128
}

func complexOffsetFor(s types.Specifier) types.Specifier {
	if s >= types.ComplexChar && s <= types.ComplexUInt128 {
		return types.ComplexChar - types.Char
	}
	return types.ComplexFP16 - types.FP16
}
