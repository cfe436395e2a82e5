package builder

import (
	"testing"

	"ctypes/internal/diag"
	"ctypes/internal/source"
	"ctypes/internal/types"
)

func TestPointerPreservesRestrict(t *testing.T) {
	in := types.NewInterner(source.NewInterner())
	qb := types.NewQualifierBuilder()
	qb.AddRestrict(source.Span{})
	id := Pointer(in, in.Builtins().Int, qb, diag.BagReporter{Bag: diag.NewBag(16)})
	ty := in.MustLookup(id)
	if !ty.Quals.Restrict {
		t.Fatalf("expected restrict to survive on a pointer")
	}
}

func TestArrayOfIncompleteElemIsFatal(t *testing.T) {
	in := types.NewInterner(source.NewInterner())
	incomplete := in.RegisterRecord(types.StructTy, 0, source.Span{})
	_, ferr := Array(in, ArrayParams{Elem: incomplete, Specifier: types.Array, Len: 4, Outermost: true}, types.NewQualifierBuilder(), diag.BagReporter{Bag: diag.NewBag(16)})
	if ferr == nil {
		t.Fatalf("expected a fatal error for an array of incomplete struct")
	}
}

func TestArrayOfVoidIsFatal(t *testing.T) {
	in := types.NewInterner(source.NewInterner())
	_, ferr := Array(in, ArrayParams{Elem: in.Builtins().Void, Specifier: types.Array, Len: 4, Outermost: true}, types.NewQualifierBuilder(), diag.BagReporter{Bag: diag.NewBag(16)})
	if ferr == nil {
		t.Fatalf("expected a fatal error for an array of void")
	}
}

func TestArrayOfFuncElemRepairsToPointer(t *testing.T) {
	in := types.NewInterner(source.NewInterner())
	fn := in.RegisterFunc(types.Func, in.Builtins().Int, nil)
	bag := diag.NewBag(16)
	id, ferr := Array(in, ArrayParams{Elem: fn, Specifier: types.Array, Len: 2, Outermost: true}, types.NewQualifierBuilder(), diag.BagReporter{Bag: bag})
	if ferr != nil {
		t.Fatalf("unexpected fatal error: %v", ferr)
	}
	info, ok := in.ArrayInfo(id)
	if !ok {
		t.Fatalf("expected array info")
	}
	_ = info
	elemTy := types.ElemType(in, id)
	et := in.MustLookup(elemTy)
	if et.Specifier != types.Pointer {
		t.Fatalf("expected array element repaired to a pointer, got %v", et.Specifier)
	}
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.ArrayFuncElem {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected an ArrayFuncElem diagnostic")
	}
}

func TestStaticNonOutermostArrayIsRepaired(t *testing.T) {
	in := types.NewInterner(source.NewInterner())
	bag := diag.NewBag(16)
	_, ferr := Array(in, ArrayParams{Elem: in.Builtins().Int, Specifier: types.Array, Len: 3, Static: true, Outermost: false}, types.NewQualifierBuilder(), diag.BagReporter{Bag: bag})
	if ferr != nil {
		t.Fatalf("unexpected fatal error: %v", ferr)
	}
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.StaticNonOutermostArray {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a StaticNonOutermostArray diagnostic")
	}
}

func TestFuncCannotReturnArrayIsRepairedToVoid(t *testing.T) {
	in := types.NewInterner(source.NewInterner())
	arr := in.MakeArray(types.Array, in.Builtins().Int, 4, types.Qualifiers{})
	bag := diag.NewBag(16)
	id := Func(in, types.Func, arr, nil, source.Span{}, diag.BagReporter{Bag: bag})
	ret, ok := types.ReturnType(in, id)
	if !ok {
		t.Fatalf("expected a return type")
	}
	rt := in.MustLookup(ret)
	if rt.Specifier != types.Void {
		t.Fatalf("expected return type repaired to void, got %v", rt.Specifier)
	}
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.FuncCannotReturnArray {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a FuncCannotReturnArray diagnostic")
	}
}

func TestFuncReturnTypeQualifiersStripped(t *testing.T) {
	in := types.NewInterner(source.NewInterner())
	qualifiedInt := in.WithQuals(in.Builtins().Int, types.Qualifiers{Const: true})
	bag := diag.NewBag(16)
	id := Func(in, types.Func, qualifiedInt, nil, source.Span{}, diag.BagReporter{Bag: bag})
	ret, _ := types.ReturnType(in, id)
	rt := in.MustLookup(ret)
	if rt.Quals.Const {
		t.Fatalf("expected return type's const qualifier to be stripped")
	}
}
