package printer

import (
	"testing"

	"ctypes/internal/source"
	"ctypes/internal/target"
	"ctypes/internal/types"
)

func TestPrintPointerToInt(t *testing.T) {
	in := types.NewInterner(source.NewInterner())
	p := New(in, nil, target.LangOpts{})
	ptr := in.MakePointer(in.Builtins().Int, types.Qualifiers{})
	if got, want := p.Print(ptr), "int *"; got != want {
		t.Fatalf("Print(ptr) = %q, want %q", got, want)
	}
}

func TestPrintPointerToArrayNeedsParens(t *testing.T) {
	in := types.NewInterner(source.NewInterner())
	p := New(in, nil, target.LangOpts{})
	arr := in.MakeArray(types.Array, in.Builtins().Int, 4, types.Qualifiers{})
	ptrToArr := in.MakePointer(arr, types.Qualifiers{})
	if got, want := p.PrintNamed(ptrToArr, "p"), "int (*p)[4]"; got != want {
		t.Fatalf("PrintNamed = %q, want %q", got, want)
	}
}

func TestPrintArrayOfPointerNoParens(t *testing.T) {
	in := types.NewInterner(source.NewInterner())
	p := New(in, nil, target.LangOpts{})
	ptr := in.MakePointer(in.Builtins().Int, types.Qualifiers{})
	arrOfPtr := in.MakeArray(types.Array, ptr, 4, types.Qualifiers{})
	if got, want := p.PrintNamed(arrOfPtr, "a"), "int *a[4]"; got != want {
		t.Fatalf("PrintNamed = %q, want %q", got, want)
	}
}

func TestPrintConstQualifiedInt(t *testing.T) {
	in := types.NewInterner(source.NewInterner())
	p := New(in, nil, target.LangOpts{})
	ty := in.WithQuals(in.Builtins().Int, types.Qualifiers{Const: true})
	if got, want := p.Print(ty), "const int"; got != want {
		t.Fatalf("Print(const int) = %q, want %q", got, want)
	}
}

func TestPrintFuncWithParams(t *testing.T) {
	strs := source.NewInterner()
	in := types.NewInterner(strs)
	a := strs.Intern("a")
	b := strs.Intern("b")
	fn := in.RegisterFunc(types.Func, in.Builtins().Int, []types.Param{
		{Name: a, Type: in.Builtins().Int},
		{Name: b, Type: in.Builtins().Int},
	})
	p := New(in, DefaultMapper(strs), target.LangOpts{})
	if got, want := p.PrintNamed(fn, "add"), "int add(int a, int b)"; got != want {
		t.Fatalf("PrintNamed = %q, want %q", got, want)
	}
}

func TestPrintVariadicFunc(t *testing.T) {
	strs := source.NewInterner()
	in := types.NewInterner(strs)
	fmtName := strs.Intern("fmt")
	fn := in.RegisterFunc(types.VarArgsFunc, in.Builtins().Int, []types.Param{
		{Name: fmtName, Type: in.MakePointer(in.Builtins().Char, types.Qualifiers{})},
	})
	p := New(in, DefaultMapper(strs), target.LangOpts{})
	if got, want := p.PrintNamed(fn, "printf"), "int printf(char *fmt, ...)"; got != want {
		t.Fatalf("PrintNamed = %q, want %q", got, want)
	}
}

func TestPrintNoParamsFuncIsVoid(t *testing.T) {
	in := types.NewInterner(source.NewInterner())
	fn := in.RegisterFunc(types.Func, in.Builtins().Int, nil)
	p := New(in, nil, target.LangOpts{})
	if got, want := p.PrintNamed(fn, "f"), "int f(void)"; got != want {
		t.Fatalf("PrintNamed = %q, want %q", got, want)
	}
}

func TestPrintStructTagName(t *testing.T) {
	strs := source.NewInterner()
	in := types.NewInterner(strs)
	name := strs.Intern("Point")
	id := in.RegisterRecord(types.StructTy, name, source.Span{})
	in.CompleteRecord(id, []types.RecordField{{Name: strs.Intern("x"), Type: in.Builtins().Int}})
	p := New(in, DefaultMapper(strs), target.LangOpts{})
	if got, want := p.Print(id), "struct Point"; got != want {
		t.Fatalf("Print(struct) = %q, want %q", got, want)
	}
}

func TestPrintAtomicShortCircuitsQualifierWord(t *testing.T) {
	in := types.NewInterner(source.NewInterner())
	ty := in.WithQuals(in.Builtins().Int, types.Qualifiers{Atomic: true})
	p := New(in, nil, target.LangOpts{})
	if got, want := p.Print(ty), "_Atomic(int)"; got != want {
		t.Fatalf("Print(atomic int) = %q, want %q", got, want)
	}
}
