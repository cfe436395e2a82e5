package types

import (
	"testing"

	"ctypes/internal/source"
)

func TestInternerBuiltins(t *testing.T) {
	in := NewInterner(source.NewInterner())
	b := in.Builtins()
	if b.Int == NoTypeID || b.Void == NoTypeID {
		t.Fatalf("builtins not initialized")
	}
	got := in.MustLookup(b.Int)
	if got.Specifier != Int {
		t.Fatalf("expected Int specifier, got %v", got.Specifier)
	}
}

func TestInternerDeduplicatesPointers(t *testing.T) {
	in := NewInterner(source.NewInterner())
	elem := in.Builtins().Int
	p1 := in.MakePointer(elem, Qualifiers{})
	p2 := in.MakePointer(elem, Qualifiers{})
	if p1 != p2 {
		t.Fatalf("structurally identical pointer types should be deduplicated")
	}
}

func TestQualifiersAffectIdentity(t *testing.T) {
	in := NewInterner(source.NewInterner())
	elem := in.Builtins().Int
	plain := in.MakePointer(elem, Qualifiers{})
	constPtr := in.MakePointer(elem, Qualifiers{Const: true})
	if plain == constPtr {
		t.Fatalf("const and non-const pointers must have distinct TypeIDs")
	}
}

func TestRegisterRecordStartsIncomplete(t *testing.T) {
	strings := source.NewInterner()
	in := NewInterner(strings)
	name := strings.Intern("Point")
	id := in.RegisterRecord(StructTy, name, source.Span{})
	ty := in.MustLookup(id)
	if !IsIncomplete(in, ty) {
		t.Fatalf("freshly registered record should be incomplete")
	}

	in.CompleteRecord(id, []RecordField{{Name: strings.Intern("x"), Type: in.Builtins().Int}})
	ty = in.MustLookup(id)
	if IsIncomplete(in, ty) {
		t.Fatalf("record should be complete after CompleteRecord")
	}
	info, ok := in.RecordInfo(id)
	if !ok || len(info.Fields) != 1 {
		t.Fatalf("expected one field, got %+v", info)
	}
}

func TestRegisterFuncIsNeverShared(t *testing.T) {
	in := NewInterner(source.NewInterner())
	ret := in.Builtins().Int
	f1 := in.RegisterFunc(Func, ret, nil)
	f2 := in.RegisterFunc(Func, ret, nil)
	if f1 == f2 {
		t.Fatalf("two distinct function declarations must not share a TypeID")
	}
}
