package layout

import (
	"testing"

	"ctypes/internal/source"
	"ctypes/internal/target"
	"ctypes/internal/types"
)

func newEngine(t *testing.T, profile target.Profile) (*Engine, *types.Interner) {
	t.Helper()
	in := types.NewInterner(source.NewInterner())
	return New(in, profile.Target, profile.LangOpts), in
}

func TestLongLongSizeAndAlign(t *testing.T) {
	e, in := newEngine(t, target.X86_64LinuxGNU())
	ll := in.Intern(types.Type{Specifier: types.LongLong})
	size, ok := e.SizeOf(ll)
	if !ok || size != 8 {
		t.Fatalf("sizeof(long long) = %v, %v, want 8", size, ok)
	}
	align, ok := e.AlignOf(ll)
	if !ok || align != 8 {
		t.Fatalf("alignof(long long) = %v, %v, want 8", align, ok)
	}
}

func TestComplexUnsignedShort(t *testing.T) {
	e, in := newEngine(t, target.X86_64LinuxGNU())
	cus := in.Intern(types.Type{Specifier: types.ComplexUShort})
	size, ok := e.SizeOf(cus)
	if !ok || size != 4 {
		t.Fatalf("sizeof(complex ushort) = %v, %v, want 4", size, ok)
	}
	align, ok := e.AlignOf(cus)
	if !ok || align != 2 {
		t.Fatalf("alignof(complex ushort) = %v, %v, want 2", align, ok)
	}
	if types.IsReal(in, cus) {
		t.Fatalf("complex type reported as real")
	}
	real := types.MakeReal(in, cus)
	rt := in.MustLookup(real)
	if rt.Specifier != types.UShort {
		t.Fatalf("makeReal(complex_ushort) = %v, want ushort", rt.Specifier)
	}
}

func TestArrayDecaySize(t *testing.T) {
	e, in := newEngine(t, target.X86_64LinuxGNU())
	arr := in.MakeArray(types.Array, in.Builtins().Int, 5, types.Qualifiers{})
	decayed := types.DecayArray(in, arr)
	size, ok := e.SizeOf(decayed)
	if !ok || size != 8 {
		t.Fatalf("sizeof(decayed int[5]) = %v, %v, want 8 (pointer width)", size, ok)
	}
	elem := types.ElemType(in, decayed)
	if in.MustLookup(elem).Specifier != types.Int {
		t.Fatalf("elemType(decayed array) should still be int")
	}
	restored := types.OriginalTypeOfDecayedArray(in, decayed)
	if restored != arr {
		t.Fatalf("originalTypeOfDecayedArray did not restore the array")
	}
}

func TestI586LongLong(t *testing.T) {
	e, in := newEngine(t, target.I586LinuxGNU())
	ll := in.Intern(types.Type{Specifier: types.LongLong})
	size, _ := e.SizeOf(ll)
	align, _ := e.AlignOf(ll)
	if size != 8 || align != 4 {
		t.Fatalf("i586 long long size/align = %d/%d, want 8/4", size, align)
	}
}

func TestARMv7IOSQuirks(t *testing.T) {
	p := target.ARMv7IOS()
	if !p.Target.CharSigned {
		t.Fatalf("armv7-ios char should be signed")
	}
	if !p.Target.IgnoreNonZeroSizedBitfieldTypeAlignment {
		t.Fatalf("armv7-ios should set the bitfield-alignment quirk")
	}
}

func TestBitIntSizeAndBitSize(t *testing.T) {
	e, in := newEngine(t, target.X86_64LinuxGNU())
	bi := in.MakeBitInt(false, 17, true, types.Qualifiers{})
	size, ok := e.SizeOf(bi)
	if !ok || size != 4 {
		t.Fatalf("sizeof(_BitInt(17)) = %v, %v, want 4 (power-of-two rounding)", size, ok)
	}
	bits, ok := e.BitSizeOf(bi)
	if !ok || bits != 17 {
		t.Fatalf("bitSizeof(_BitInt(17)) = %v, %v, want 17", bits, ok)
	}
}

func TestRecordLayoutWithBitfields(t *testing.T) {
	e, in := newEngine(t, target.X86_64LinuxGNU())
	name := in.Strings.Intern("Flags")
	id := in.RegisterRecord(types.StructTy, name, source.Span{})
	one := uint32(1)
	seven := uint32(7)
	fields := []types.RecordField{
		{Name: in.Strings.Intern("a"), Type: in.Builtins().UInt, BitWidth: &one},
		{Name: in.Strings.Intern("b"), Type: in.Builtins().UInt, BitWidth: &seven},
	}
	in.CompleteRecord(id, fields)

	size, ok := e.SizeOf(id)
	if !ok {
		t.Fatalf("sizeof(struct Flags) unknown")
	}
	if size != 4 {
		t.Fatalf("sizeof(struct Flags) = %d, want 4 (one uint storage unit)", size)
	}
	info, _ := in.RecordInfo(id)
	if info.Fields[0].Layout.OffsetBits != 0 || info.Fields[1].Layout.OffsetBits != 1 {
		t.Fatalf("unexpected bitfield offsets: %+v", info.Fields)
	}
}

func TestLongDoubleBitSizeIsExtendedPrecisionNotStorageSize(t *testing.T) {
	e, in := newEngine(t, target.X86_64LinuxGNU())
	ld := in.Intern(types.Type{Specifier: types.LongDouble})
	size, ok := e.SizeOf(ld)
	if !ok || size != 16 {
		t.Fatalf("sizeof(long double) = %v, %v, want 16", size, ok)
	}
	bits, ok := e.BitSizeOf(ld)
	if !ok || bits != 80 {
		t.Fatalf("bitSizeof(long double) = %v, %v, want 80, not 8*sizeof", bits, ok)
	}
}

func TestFloat80BitSizeMatchesLongDouble(t *testing.T) {
	e, in := newEngine(t, target.X86_64LinuxGNU())
	f80 := in.Intern(types.Type{Specifier: types.Float80})
	bits, ok := e.BitSizeOf(f80)
	if !ok || bits != 80 {
		t.Fatalf("bitSizeof(__float80) = %v, %v, want 80", bits, ok)
	}
}

func TestAArch64LongDoubleIsQuadPrecision(t *testing.T) {
	e, in := newEngine(t, target.AArch64LinuxGNU())
	ld := in.Intern(types.Type{Specifier: types.LongDouble})
	bits, ok := e.BitSizeOf(ld)
	if !ok || bits != 128 {
		t.Fatalf("bitSizeof(long double) on aarch64 = %v, %v, want 128", bits, ok)
	}
}

func TestRecordTagAlignedAttributeWidensAlignment(t *testing.T) {
	e, in := newEngine(t, target.X86_64LinuxGNU())
	name := in.Strings.Intern("Aligned16")
	id := in.RegisterRecord(types.StructTy, name, source.Span{})
	fields := []types.RecordField{
		{Name: in.Strings.Intern("x"), Type: in.Builtins().Int},
	}
	in.CompleteRecord(id, fields)
	info, ok := in.RecordInfo(id)
	if !ok {
		t.Fatalf("record info missing")
	}
	info.Attrs = append(info.Attrs, types.Attribute{Tag: types.AttrAligned, Args: []int64{16}})

	align, ok := e.AlignOf(id)
	if !ok || align != 16 {
		t.Fatalf("alignof(struct Aligned16) = %v, %v, want 16 (tag-level aligned(16))", align, ok)
	}
	size, ok := e.SizeOf(id)
	if !ok || size != 16 {
		t.Fatalf("sizeof(struct Aligned16) = %v, %v, want 16 (padded to requested alignment)", size, ok)
	}
}

func TestEqlReflexiveAndPointer(t *testing.T) {
	e, in := newEngine(t, target.X86_64LinuxGNU())
	intTy := in.Builtins().Int
	p1 := in.MakePointer(intTy, types.Qualifiers{})
	p2 := in.MakePointer(intTy, types.Qualifiers{})
	if !e.Eql(p1, p2, true) {
		t.Fatalf("structurally identical pointers should be equal")
	}
	constIntTy := in.WithQuals(intTy, types.Qualifiers{Const: true})
	p3 := in.MakePointer(constIntTy, types.Qualifiers{})
	if e.Eql(p1, p3, true) {
		t.Fatalf("int* and const int* must not be equal when checking qualifiers")
	}
}

func TestSizeCompare(t *testing.T) {
	e, in := newEngine(t, target.X86_64LinuxGNU())
	c := in.Intern(types.Type{Specifier: types.Char})
	l := in.Intern(types.Type{Specifier: types.Long})
	if e.SizeCompare(c, l) != SizeLt {
		t.Fatalf("expected char < long")
	}
	if e.SizeCompare(l, l) != SizeEq {
		t.Fatalf("expected long == long")
	}
}

func TestIntegerPromotion(t *testing.T) {
	e, in := newEngine(t, target.X86_64LinuxGNU())
	b := in.Builtins()
	short := in.Intern(types.Type{Specifier: types.Short})
	if promoted := e.IntegerPromotion(short); promoted != b.Int {
		t.Fatalf("short should promote to int")
	}
	if promoted := e.IntegerPromotion(b.Int); promoted != b.Int {
		t.Fatalf("int should be unchanged by promotion (idempotent)")
	}
}

func TestRecursiveRecordIsRejected(t *testing.T) {
	e, in := newEngine(t, target.X86_64LinuxGNU())
	name := in.Strings.Intern("Node")
	id := in.RegisterRecord(types.StructTy, name, source.Span{})
	// A by-value self-reference (never legal C, but the engine must not hang).
	in.CompleteRecord(id, []types.RecordField{{Name: in.Strings.Intern("next"), Type: id}})

	_, err := e.LayoutOf(id)
	if err == nil || err.Kind != ErrRecursiveUnsized {
		t.Fatalf("expected ErrRecursiveUnsized, got %v", err)
	}
}
