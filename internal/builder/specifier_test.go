package builder

import (
	"testing"

	"ctypes/internal/diag"
	"ctypes/internal/source"
	"ctypes/internal/target"
	"ctypes/internal/types"
)

func newTestBuilder() (*Builder, *types.Interner) {
	in := types.NewInterner(source.NewInterner())
	p := target.X86_64LinuxGNU()
	return New(p.Target, p.LangOpts, nil), in
}

func finishOK(t *testing.T, b *Builder, in *types.Interner) types.TypeID {
	t.Helper()
	bag := diag.NewBag(64)
	id, ferr := b.Finish(in, diag.BagReporter{Bag: bag})
	if ferr != nil {
		t.Fatalf("unexpected fatal error: %v", ferr)
	}
	return id
}

func TestPlainIntDefaults(t *testing.T) {
	b, in := newTestBuilder()
	id := finishOK(t, b, in)
	ty := in.MustLookup(id)
	if ty.Specifier != types.Int {
		t.Fatalf("expected Int, got %v", ty.Specifier)
	}
}

func TestUnsignedLongLong(t *testing.T) {
	b, in := newTestBuilder()
	rep := diag.BagReporter{Bag: diag.NewBag(64)}
	b.Combine(KwUnsigned, source.Span{}, rep)
	b.Combine(KwLong, source.Span{}, rep)
	b.Combine(KwLong, source.Span{}, rep)
	id := finishOK(t, b, in)
	ty := in.MustLookup(id)
	if ty.Specifier != types.ULongLong {
		t.Fatalf("expected ULongLong, got %v", ty.Specifier)
	}
}

func TestLongLongOrderIndependence(t *testing.T) {
	b, in := newTestBuilder()
	rep := diag.BagReporter{Bag: diag.NewBag(64)}
	b.Combine(KwLong, source.Span{}, rep)
	b.Combine(KwSigned, source.Span{}, rep)
	b.Combine(KwLong, source.Span{}, rep)
	b.Combine(KwInt, source.Span{}, rep)
	id := finishOK(t, b, in)
	ty := in.MustLookup(id)
	if ty.Specifier != types.LongLong {
		t.Fatalf("expected LongLong, got %v", ty.Specifier)
	}
}

func TestSignedCharIsDistinctFromChar(t *testing.T) {
	b, in := newTestBuilder()
	rep := diag.BagReporter{Bag: diag.NewBag(64)}
	b.Combine(KwSigned, source.Span{}, rep)
	b.Combine(KwChar, source.Span{}, rep)
	id := finishOK(t, b, in)
	ty := in.MustLookup(id)
	if ty.Specifier != types.SChar {
		t.Fatalf("expected SChar, got %v", ty.Specifier)
	}
}

func TestComplexDouble(t *testing.T) {
	b, in := newTestBuilder()
	rep := diag.BagReporter{Bag: diag.NewBag(64)}
	b.Combine(KwComplex, source.Span{}, rep)
	b.Combine(KwDouble, source.Span{}, rep)
	id := finishOK(t, b, in)
	ty := in.MustLookup(id)
	if ty.Specifier != types.ComplexDouble {
		t.Fatalf("expected ComplexDouble, got %v", ty.Specifier)
	}
}

func TestLongDouble(t *testing.T) {
	b, in := newTestBuilder()
	rep := diag.BagReporter{Bag: diag.NewBag(64)}
	b.Combine(KwLong, source.Span{}, rep)
	b.Combine(KwDouble, source.Span{}, rep)
	id := finishOK(t, b, in)
	ty := in.MustLookup(id)
	if ty.Specifier != types.LongDouble {
		t.Fatalf("expected LongDouble, got %v", ty.Specifier)
	}
}

func TestComplexLongDouble(t *testing.T) {
	b, in := newTestBuilder()
	rep := diag.BagReporter{Bag: diag.NewBag(64)}
	b.Combine(KwComplex, source.Span{}, rep)
	b.Combine(KwDouble, source.Span{}, rep)
	b.Combine(KwLong, source.Span{}, rep)
	id := finishOK(t, b, in)
	ty := in.MustLookup(id)
	if ty.Specifier != types.ComplexLongDouble {
		t.Fatalf("expected ComplexLongDouble, got %v", ty.Specifier)
	}
}

func TestShortAndLongConflict(t *testing.T) {
	b, _ := newTestBuilder()
	bag := diag.NewBag(64)
	rep := diag.BagReporter{Bag: bag}
	b.Combine(KwShort, source.Span{}, rep)
	b.Combine(KwLong, source.Span{}, rep)
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.SpecCannotCombine {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a SpecCannotCombine diagnostic, got %v", bag.Items())
	}
}

func TestBitIntBoundsRejectTooSmallSigned(t *testing.T) {
	b, _ := newTestBuilder()
	rep := diag.BagReporter{Bag: diag.NewBag(64)}
	if ferr := b.CombineBitInt(1, source.Span{}, rep); ferr == nil {
		t.Fatalf("expected a fatal error for signed _BitInt(1)")
	}
}

func TestBitIntBoundsAcceptUnsignedOneBit(t *testing.T) {
	b, in := newTestBuilder()
	rep := diag.BagReporter{Bag: diag.NewBag(64)}
	b.Combine(KwUnsigned, source.Span{}, rep)
	if ferr := b.CombineBitInt(1, source.Span{}, rep); ferr != nil {
		t.Fatalf("unexpected fatal error: %v", ferr)
	}
	id := finishOK(t, b, in)
	info, ok := in.BitIntInfo(id)
	if !ok {
		t.Fatalf("expected a bit-int type")
	}
	if info.Bits != 1 || info.Signed {
		t.Fatalf("expected unsigned _BitInt(1), got bits=%d signed=%v", info.Bits, info.Signed)
	}
}

func TestBitIntTooWideIsFatal(t *testing.T) {
	b, _ := newTestBuilder()
	rep := diag.BagReporter{Bag: diag.NewBag(64)}
	if ferr := b.CombineBitInt(200, source.Span{}, rep); ferr == nil {
		t.Fatalf("expected a fatal error for _BitInt(200)")
	}
}

func TestCombineTypedefSuppressedNoDiagnostics(t *testing.T) {
	b, in := newTestBuilder()
	td := in.Builtins().Int
	b.Combine(KwSigned, source.Span{}, diag.BagReporter{Bag: diag.NewBag(64)})
	if b.CombineTypedef(td, source.Span{}) {
		t.Fatalf("expected CombineTypedef to fail once a base specifier was already combined")
	}
}

func TestCombineTypedefFirstSucceeds(t *testing.T) {
	b, in := newTestBuilder()
	td := in.Builtins().Int
	if !b.CombineTypedef(td, source.Span{}) {
		t.Fatalf("expected CombineTypedef to succeed as the first specifier")
	}
	id := finishOK(t, b, in)
	if id != td {
		t.Fatalf("expected Finish to return the typedef's type unchanged")
	}
}
