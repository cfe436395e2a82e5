package types

import (
	"testing"

	"ctypes/internal/source"
)

func TestDecayRoundTrip(t *testing.T) {
	in := NewInterner(source.NewInterner())
	elem := in.Builtins().Int
	arr := in.MakeArray(Array, elem, 5, Qualifiers{})

	decayed := DecayArray(in, arr)
	dt := in.MustLookup(decayed)
	if dt.Specifier != DecayedArray {
		t.Fatalf("expected DecayedArray, got %v", dt.Specifier)
	}

	original := OriginalTypeOfDecayedArray(in, decayed)
	if original != arr {
		t.Fatalf("undecay(decay(arr)) = %v, want %v", original, arr)
	}
}

func TestDecayPanicsOnNonArray(t *testing.T) {
	in := NewInterner(source.NewInterner())
	defer func() {
		if recover() == nil {
			t.Fatalf("expected DecayArray to panic on a non-array type")
		}
	}()
	DecayArray(in, in.Builtins().Int)
}

func TestMakeComplexAndBackInteger(t *testing.T) {
	in := NewInterner(source.NewInterner())
	ushort := in.Intern(Type{Specifier: UShort})
	complexUshort := MakeComplex(in, ushort)
	ct := in.MustLookup(complexUshort)
	if ct.Specifier != ComplexUShort {
		t.Fatalf("expected ComplexUShort, got %v", ct.Specifier)
	}
	if IsReal(in, complexUshort) {
		t.Fatalf("complex type must not report IsReal")
	}
	back := MakeReal(in, complexUshort)
	bt := in.MustLookup(back)
	if bt.Specifier != UShort {
		t.Fatalf("makeReal(makeComplex(ushort)) = %v, want ushort", bt.Specifier)
	}
}

func TestMakeComplexFloatRoundTrip(t *testing.T) {
	in := NewInterner(source.NewInterner())
	double := in.Builtins().Double
	cplx := MakeComplex(in, double)
	ct := in.MustLookup(cplx)
	if ct.Specifier != ComplexDouble {
		t.Fatalf("expected ComplexDouble, got %v", ct.Specifier)
	}
	back := MakeReal(in, cplx)
	if back != double {
		t.Fatalf("makeReal(makeComplex(double)) = %v, want double", back)
	}
}

func TestMakeComplexBitInt(t *testing.T) {
	in := NewInterner(source.NewInterner())
	bi := in.MakeBitInt(false, 17, true, Qualifiers{})
	cplx := MakeComplex(in, bi)
	ct := in.MustLookup(cplx)
	if ct.Specifier != ComplexBitInt {
		t.Fatalf("expected ComplexBitInt, got %v", ct.Specifier)
	}
}
