package main

import (
	"testing"

	"ctypes/internal/builder"
	"ctypes/internal/diag"
	"ctypes/internal/source"
	"ctypes/internal/target"
	"ctypes/internal/types"
)

func TestApplySpecifierLineBuildsUnsignedLongLong(t *testing.T) {
	profile := target.X86_64LinuxGNU()
	strs := source.NewInterner()
	arena := types.NewInterner(strs)
	b := builder.New(profile.Target, profile.LangOpts, nil)
	bag := diag.NewBag(8)
	rep := diag.BagReporter{Bag: bag}

	for _, line := range []string{"unsigned", "long", "long"} {
		applySpecifierLine(b, line, rep)
	}
	ty, fatal := b.Finish(arena, rep)
	if fatal != nil {
		t.Fatalf("Finish: %v", fatal)
	}
	got, ok := arena.Lookup(ty)
	if !ok {
		t.Fatalf("type not found in arena")
	}
	if got.Specifier != types.ULongLong {
		t.Fatalf("Specifier = %v, want ULongLong", got.Specifier)
	}
}

func TestApplySpecifierLineBuildsBitInt(t *testing.T) {
	profile := target.X86_64LinuxGNU()
	strs := source.NewInterner()
	arena := types.NewInterner(strs)
	b := builder.New(profile.Target, profile.LangOpts, nil)
	bag := diag.NewBag(8)
	rep := diag.BagReporter{Bag: bag}

	applySpecifierLine(b, "_bitint(17)", rep)
	ty, fatal := b.Finish(arena, rep)
	if fatal != nil {
		t.Fatalf("Finish: %v", fatal)
	}
	info, ok := arena.BitIntInfo(ty)
	if !ok {
		t.Fatalf("expected BitIntInfo for _BitInt(17)")
	}
	if info.Bits != 17 {
		t.Fatalf("Bits = %d, want 17", info.Bits)
	}
	if !info.Signed {
		t.Fatalf("expected plain _BitInt(17) to be signed")
	}
}

func TestApplySpecifierLineConstQualifier(t *testing.T) {
	profile := target.X86_64LinuxGNU()
	strs := source.NewInterner()
	arena := types.NewInterner(strs)
	b := builder.New(profile.Target, profile.LangOpts, nil)
	bag := diag.NewBag(8)
	rep := diag.BagReporter{Bag: bag}

	applySpecifierLine(b, "const", rep)
	applySpecifierLine(b, "int", rep)
	ty, fatal := b.Finish(arena, rep)
	if fatal != nil {
		t.Fatalf("Finish: %v", fatal)
	}
	got, ok := arena.Lookup(ty)
	if !ok {
		t.Fatalf("type not found in arena")
	}
	if !got.Quals.Const {
		t.Fatalf("expected const qualifier to survive Finish")
	}
}

func TestApplySpecifierLineUnknownKeywordIsIgnored(t *testing.T) {
	profile := target.X86_64LinuxGNU()
	strs := source.NewInterner()
	arena := types.NewInterner(strs)
	b := builder.New(profile.Target, profile.LangOpts, nil)
	bag := diag.NewBag(8)
	rep := diag.BagReporter{Bag: bag}

	applySpecifierLine(b, "struct", rep)
	applySpecifierLine(b, "int", rep)
	ty, fatal := b.Finish(arena, rep)
	if fatal != nil {
		t.Fatalf("Finish: %v", fatal)
	}
	got, ok := arena.Lookup(ty)
	if !ok {
		t.Fatalf("type not found in arena")
	}
	if got.Specifier != types.Int {
		t.Fatalf("Specifier = %v, want Int (the unrecognized 'struct' line should be a no-op)", got.Specifier)
	}
}
