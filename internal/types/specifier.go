package types

import "fmt"

// Specifier names the shape of a Type. It is a closed set: every distinct
// type the C grammar (plus the GNU/Clang/MSVC extensions this engine tracks)
// can construct has exactly one Specifier.
//
// Integer and floating specifiers are laid out so that the real type for a
// complex specifier is a fixed distance below it (see MakeReal/MakeComplex):
// 13 slots for the integer block, 6 for the floating block. Array/vector and
// typeof specifiers are laid out in (plain, decayed) pairs so decaying is a
// tag-plus-one bump (see DecayArray/OriginalTypeOfDecayedArray).
type Specifier uint8

const (
	Invalid Specifier = iota
	Void
	Bool
	NullptrT

	// Real integers (13 members; keep this block's size in sync with the
	// complexIntOffset constant below).
	Char
	SChar
	UChar
	Short
	UShort
	Int
	UInt
	Long
	ULong
	LongLong
	ULongLong
	Int128
	UInt128

	// Complex integers (GNU extension), same order as the real block above.
	ComplexChar
	ComplexSChar
	ComplexUChar
	ComplexShort
	ComplexUShort
	ComplexInt
	ComplexUInt
	ComplexLong
	ComplexULong
	ComplexLongLong
	ComplexULongLong
	ComplexInt128
	ComplexUInt128

	// _BitInt(N); width/signedness live in the BitIntInfo payload table.
	BitInt
	ComplexBitInt

	// Real floating types (6 members; keep in sync with complexFloatOffset).
	FP16
	Float
	Double
	LongDouble
	Float80
	Float128

	// Complex floating types, same order as the real block above.
	ComplexFP16
	ComplexFloat
	ComplexDouble
	ComplexLongDouble
	ComplexFloat80
	ComplexFloat128

	Pointer

	// Array/vector kinds, each immediately followed by its decayed variant
	// (decayed tag == plain tag + 1). See DecayArray/
	// OriginalTypeOfDecayedArray/IsDecayed.
	Array
	DecayedArray
	StaticArray
	DecayedStaticArray
	IncompleteArray
	DecayedIncompleteArray
	VariableLenArray
	DecayedVariableLenArray
	UnspecifiedVariableLenArray
	DecayedUnspecifiedVariableLenArray
	Vector
	DecayedVector

	Func
	VarArgsFunc
	OldStyleFunc

	StructTy
	UnionTy
	EnumTy

	TypeofType
	DecayedTypeofType
	TypeofExpr
	DecayedTypeofExpr

	Attributed

	// SpecialVaStart types the hidden argument of __builtin_va_start; it has
	// no payload and never appears in surface-level declarator syntax.
	SpecialVaStart

	numSpecifiers
)

// complexIntOffset/complexFloatOffset are the fixed tag distances used by
// MakeComplex/MakeReal; see the comment on the enum above.
const (
	complexIntOffset   = Specifier(ComplexChar) - Specifier(Char)
	complexFloatOffset = Specifier(ComplexFP16) - Specifier(FP16)
)

func (s Specifier) String() string {
	if n, ok := specifierNames[s]; ok {
		return n
	}
	return fmt.Sprintf("specifier(%d)", uint8(s))
}

var specifierNames = map[Specifier]string{
	Invalid:                            "invalid",
	Void:                               "void",
	Bool:                               "bool",
	NullptrT:                           "nullptr_t",
	Char:                               "char",
	SChar:                              "schar",
	UChar:                              "uchar",
	Short:                              "short",
	UShort:                             "ushort",
	Int:                                "int",
	UInt:                               "uint",
	Long:                               "long",
	ULong:                              "ulong",
	LongLong:                           "long_long",
	ULongLong:                          "ulong_long",
	Int128:                             "int128",
	UInt128:                            "uint128",
	ComplexChar:                        "complex_char",
	ComplexSChar:                       "complex_schar",
	ComplexUChar:                       "complex_uchar",
	ComplexShort:                       "complex_short",
	ComplexUShort:                      "complex_ushort",
	ComplexInt:                         "complex_int",
	ComplexUInt:                        "complex_uint",
	ComplexLong:                        "complex_long",
	ComplexULong:                       "complex_ulong",
	ComplexLongLong:                    "complex_long_long",
	ComplexULongLong:                   "complex_ulong_long",
	ComplexInt128:                      "complex_int128",
	ComplexUInt128:                     "complex_uint128",
	BitInt:                             "bit_int",
	ComplexBitInt:                      "complex_bit_int",
	FP16:                               "fp16",
	Float:                              "float",
	Double:                             "double",
	LongDouble:                         "long_double",
	Float80:                            "float80",
	Float128:                           "float128",
	ComplexFP16:                        "complex_fp16",
	ComplexFloat:                       "complex_float",
	ComplexDouble:                      "complex_double",
	ComplexLongDouble:                  "complex_long_double",
	ComplexFloat80:                     "complex_float80",
	ComplexFloat128:                    "complex_float128",
	Pointer:                            "pointer",
	Array:                              "array",
	DecayedArray:                       "decayed_array",
	StaticArray:                        "static_array",
	DecayedStaticArray:                 "decayed_static_array",
	IncompleteArray:                    "incomplete_array",
	DecayedIncompleteArray:             "decayed_incomplete_array",
	VariableLenArray:                   "variable_len_array",
	DecayedVariableLenArray:            "decayed_variable_len_array",
	UnspecifiedVariableLenArray:        "unspecified_variable_len_array",
	DecayedUnspecifiedVariableLenArray: "decayed_unspecified_variable_len_array",
	Vector:                             "vector",
	DecayedVector:                      "decayed_vector",
	Func:                               "func",
	VarArgsFunc:                        "var_args_func",
	OldStyleFunc:                       "old_style_func",
	StructTy:                          "struct",
	UnionTy:                           "union",
	EnumTy:                            "enum",
	TypeofType:                         "typeof_type",
	DecayedTypeofType:                  "decayed_typeof_type",
	TypeofExpr:                         "typeof_expr",
	DecayedTypeofExpr:                  "decayed_typeof_expr",
	Attributed:                         "attributed",
	SpecialVaStart:                     "special_va_start",
}

// realIntSpecifiers is the contiguous block of real (non-complex, non-bitint)
// integer specifiers, in the order MakeComplex/MakeReal expect.
var realIntSpecifiers = [...]Specifier{
	Char, SChar, UChar, Short, UShort, Int, UInt, Long, ULong, LongLong, ULongLong, Int128, UInt128,
}

var realFloatSpecifiers = [...]Specifier{
	FP16, Float, Double, LongDouble, Float80, Float128,
}

func isInRealIntBlock(s Specifier) bool { return s >= Char && s <= UInt128 }
func isInComplexIntBlock(s Specifier) bool {
	return s >= ComplexChar && s <= ComplexUInt128
}
func isInRealFloatBlock(s Specifier) bool { return s >= FP16 && s <= Float128 }
func isInComplexFloatBlock(s Specifier) bool {
	return s >= ComplexFP16 && s <= ComplexFloat128
}

// decayPairs lists every (plain, decayed) specifier pair the engine knows
// about. Array/vector kinds decay to pointers; typeof wrappers decay by
// decaying whatever they eventually canonicalize to.
var decayPairs = [...][2]Specifier{
	{Array, DecayedArray},
	{StaticArray, DecayedStaticArray},
	{IncompleteArray, DecayedIncompleteArray},
	{VariableLenArray, DecayedVariableLenArray},
	{UnspecifiedVariableLenArray, DecayedUnspecifiedVariableLenArray},
	{Vector, DecayedVector},
	{TypeofType, DecayedTypeofType},
	{TypeofExpr, DecayedTypeofExpr},
}

// IsDecayed reports whether s is one of the decayed-array/decayed-typeof
// tags. No other predicate in this package should need to special-case a
// decayed tag directly; they unwrap/canonicalize first.
func IsDecayed(s Specifier) bool {
	for _, p := range decayPairs {
		if s == p[1] {
			return true
		}
	}
	return false
}

// IsArrayKind reports whether s (in either its plain or decayed form) is one
// of the six array/vector specifiers.
func IsArrayKind(s Specifier) bool {
	for _, p := range decayPairs[:6] {
		if s == p[0] || s == p[1] {
			return true
		}
	}
	return false
}
