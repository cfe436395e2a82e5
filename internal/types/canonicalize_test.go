package types

import (
	"testing"

	"ctypes/internal/source"
)

func TestCanonicalizeStandardDropsArrayQuals(t *testing.T) {
	in := NewInterner(source.NewInterner())
	intArr := in.MakeArray(Array, in.Builtins().Int, 4, Qualifiers{})
	wrapped := in.MakeTypeofType(intArr, Qualifiers{Const: true})

	canon := Canonicalize(in, wrapped, CanonStandard)
	ct := in.MustLookup(canon)
	if ct.Specifier != Array {
		t.Fatalf("expected Array, got %v", ct.Specifier)
	}
	if ct.Quals.Const {
		t.Fatalf("standard canonicalization must discard qualifiers accumulated onto an array/pointer result")
	}
}

func TestCanonicalizePreserveQualsKeepsThem(t *testing.T) {
	in := NewInterner(source.NewInterner())
	intArr := in.MakeArray(Array, in.Builtins().Int, 4, Qualifiers{})
	wrapped := in.MakeTypeofType(intArr, Qualifiers{Const: true})

	canon := Canonicalize(in, wrapped, CanonPreserveQuals)
	ct := in.MustLookup(canon)
	if !ct.Quals.Const {
		t.Fatalf("preserve-quals canonicalization must retain qualifiers accumulated from typeof")
	}
}

func TestElemTypePropagatesTypeofQualifiers(t *testing.T) {
	in := NewInterner(source.NewInterner())
	intArr := in.MakeArray(Array, in.Builtins().Int, 4, Qualifiers{})
	wrapped := in.MakeTypeofType(intArr, Qualifiers{Const: true})

	elem := ElemType(in, wrapped)
	et := in.MustLookup(elem)
	if et.Specifier != Int {
		t.Fatalf("expected Int element, got %v", et.Specifier)
	}
	if !et.Quals.Const {
		t.Fatalf("elemType(typeof(const int[4])) must carry const")
	}
}

func TestCanonicalizeThroughDecayedTypeof(t *testing.T) {
	in := NewInterner(source.NewInterner())
	intArr := in.MakeArray(Array, in.Builtins().Int, 4, Qualifiers{})
	wrapped := in.MakeTypeofType(intArr, Qualifiers{})
	decayedWrapped := in.Intern(Type{Specifier: DecayedTypeofType, Elem: wrapped})

	canon := Canonicalize(in, decayedWrapped, CanonStandard)
	ct := in.MustLookup(canon)
	if ct.Specifier != DecayedArray {
		t.Fatalf("expected DecayedArray after canonicalizing decayed_typeof_type, got %v", ct.Specifier)
	}
}

func TestCanonicalizeTerminatesOnAttributedChain(t *testing.T) {
	in := NewInterner(source.NewInterner())
	base := in.Builtins().Int
	wrapped := in.WithAttributes(base, []Attribute{{Tag: AttrPacked}})
	doubleWrapped := in.WithAttributes(wrapped, []Attribute{{Tag: AttrAligned, Args: []int64{16}}})

	canon := Canonicalize(in, doubleWrapped, CanonStandard)
	ct := in.MustLookup(canon)
	if ct.Specifier != Int {
		t.Fatalf("canonicalize should strip the outer attributed down to int, got %v", ct.Specifier)
	}
}

func TestIsScalarFormula(t *testing.T) {
	in := NewInterner(source.NewInterner())
	cases := []struct {
		id   TypeID
		want bool
	}{
		{in.Builtins().Int, true},
		{in.Builtins().Double, true},
		{in.MakePointer(in.Builtins().Int, Qualifiers{}), true},
		{in.Builtins().NullptrT, true},
		{in.MakeArray(Array, in.Builtins().Int, 4, Qualifiers{}), false},
	}
	for _, c := range cases {
		got := IsScalar(in, c.id)
		if got != c.want {
			t.Fatalf("IsScalar(%v) = %v, want %v", in.MustLookup(c.id).Specifier, got, c.want)
		}
	}
}
