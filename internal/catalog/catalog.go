// Package catalog builds a fixed set of named sample types over a fresh
// internal/types.Interner, the way internal/types/interner_test.go and
// internal/types/decay_test.go construct types directly from the low-level
// Make*/Register* API rather than through a parser. The CLI's "inspect",
// "cache export" and "sizeof @name" subcommands use it as ready-made
// fixture data, and the engine's own tests reuse it so
// every scenario in spec.md's end-to-end table stays exercised in one place.
package catalog

import (
	"ctypes/internal/source"
	"ctypes/internal/types"
)

// Sample names one constructed type, so a caller can print, lay out, or dump
// every entry in a batch without hand-maintaining parallel name/type slices.
type Sample struct {
	Name string
	Type types.TypeID
}

// Build constructs the catalog's samples against in and strs, which must be
// the same string interner in's types arena was created with.
func Build(in *types.Interner, strs *source.Interner) []Sample {
	b := in.Builtins()
	samples := make([]Sample, 0, 16)
	add := func(name string, id types.TypeID) {
		samples = append(samples, Sample{Name: name, Type: id})
	}

	// Scenario #1: "signed long long int const" -> const long long.
	longLong := in.Intern(types.Type{Specifier: types.LongLong})
	add("const_long_long", in.WithQuals(longLong, types.Qualifiers{Const: true}))

	// Scenario #2: "_Complex unsigned short" -> complex_ushort.
	add("complex_ushort", types.MakeComplex(in, in.Intern(types.Type{Specifier: types.UShort})))

	// Scenario #3 boundary cases: the smallest legal signed/unsigned _BitInt.
	add("bitint_signed_min", in.MakeBitInt(false, 2, true, types.Qualifiers{}))
	add("bitint_unsigned_min", in.MakeBitInt(false, 1, false, types.Qualifiers{}))
	add("bitint_wide", in.MakeBitInt(false, 128, true, types.Qualifiers{}))

	// Scenario #4: pointer-to-array / array-of-pointer decay pair.
	arr := in.MakeArray(types.Array, b.Int, 4, types.Qualifiers{})
	add("array_of_int", arr)
	add("pointer_to_array_of_int", in.MakePointer(arr, types.Qualifiers{}))
	ptr := in.MakePointer(b.Int, types.Qualifiers{})
	add("array_of_pointer", in.MakeArray(types.Array, ptr, 4, types.Qualifiers{}))

	// Scenario #5: typeof(const int[4]) preserves the element qualifier.
	constInt := in.WithQuals(b.Int, types.Qualifiers{Const: true})
	constArr := in.MakeArray(types.Array, constInt, 4, types.Qualifiers{})
	add("typeof_const_array", in.MakeTypeofType(constArr, types.Qualifiers{}))

	// A small aggregate: struct Point { int x; int y; }.
	pointName := strs.Intern("Point")
	point := in.RegisterRecord(types.StructTy, pointName, source.Span{})
	in.CompleteRecord(point, []types.RecordField{
		{Name: strs.Intern("x"), Type: b.Int},
		{Name: strs.Intern("y"), Type: b.Int},
	})
	add("struct_point", point)

	// A packed, bitfield-bearing record, exercising layout's bitfield path.
	flagsName := strs.Intern("Flags")
	flags := in.RegisterRecord(types.StructTy, flagsName, source.Span{})
	one := uint32(1)
	seven := uint32(7)
	in.CompleteRecord(flags, []types.RecordField{
		{Name: strs.Intern("enabled"), Type: b.UInt, BitWidth: &one},
		{Name: strs.Intern("mode"), Type: b.UInt, BitWidth: &seven},
	})
	add("struct_bitfields", in.WithAttributes(flags, []types.Attribute{{Tag: types.AttrPacked}}))

	// An incomplete record, to exercise the "unknown until completed" path.
	opaqueName := strs.Intern("Opaque")
	add("incomplete_struct", in.RegisterRecord(types.StructTy, opaqueName, source.Span{}))

	// An enum with a handful of enumerators.
	colorName := strs.Intern("Color")
	color := in.RegisterEnum(colorName, source.Span{})
	in.CompleteEnum(color, []types.EnumField{
		{Name: strs.Intern("Red"), Value: 0},
		{Name: strs.Intern("Green"), Value: 1},
		{Name: strs.Intern("Blue"), Value: 2},
	}, b.Int, false)
	add("enum_color", color)

	// A function type: int add(int, int).
	add("func_add_int_int", in.RegisterFunc(types.Func, b.Int, []types.Param{
		{Type: b.Int, Name: strs.Intern("a")},
		{Type: b.Int, Name: strs.Intern("b")},
	}))

	// A variadic function: int printf(const char *, ...).
	constCharPtr := in.MakePointer(constInt, types.Qualifiers{})
	add("func_variadic", in.RegisterFunc(types.VarArgsFunc, b.Int, []types.Param{
		{Type: constCharPtr, Name: strs.Intern("fmt")},
	}))

	// A 4-wide int vector, GCC vector_size(16) style.
	vec := in.MakeArray(types.Vector, b.Int, 4, types.Qualifiers{})
	add("vector_int4", in.WithAttributes(vec, []types.Attribute{{Tag: types.AttrVectorSize, Args: []int64{16}}}))

	// A VLA and its unspecified ([*]) counterpart, for incomplete-size paths.
	add("vla_int", in.MakeVLA(b.Int, types.ExprRef(0), types.Qualifiers{}))
	add("unspecified_vla_int", in.MakeUnspecifiedVLA(b.Int, types.Qualifiers{}))

	return samples
}
