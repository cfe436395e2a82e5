package catalog

import (
	"testing"

	"ctypes/internal/source"
	"ctypes/internal/types"
)

func TestBuildNamesAreUnique(t *testing.T) {
	strs := source.NewInterner()
	in := types.NewInterner(strs)
	samples := Build(in, strs)

	seen := make(map[string]bool, len(samples))
	for _, s := range samples {
		if seen[s.Name] {
			t.Fatalf("duplicate sample name %q", s.Name)
		}
		seen[s.Name] = true
	}
	if len(samples) == 0 {
		t.Fatalf("expected at least one sample")
	}
}

func TestBuildIncludesEndToEndScenarios(t *testing.T) {
	strs := source.NewInterner()
	in := types.NewInterner(strs)
	samples := Build(in, strs)

	want := []string{
		"const_long_long", "complex_ushort", "bitint_signed_min",
		"bitint_unsigned_min", "bitint_wide", "array_of_int",
		"pointer_to_array_of_int", "array_of_pointer", "typeof_const_array",
		"struct_point", "struct_bitfields", "incomplete_struct",
		"enum_color", "func_add_int_int", "func_variadic",
		"vector_int4", "vla_int", "unspecified_vla_int",
	}
	byName := make(map[string]types.TypeID, len(samples))
	for _, s := range samples {
		byName[s.Name] = s.Type
	}
	for _, name := range want {
		if _, ok := byName[name]; !ok {
			t.Errorf("missing catalog sample %q", name)
		}
	}
}

func TestConstLongLongIsConstQualified(t *testing.T) {
	strs := source.NewInterner()
	in := types.NewInterner(strs)
	samples := Build(in, strs)

	for _, s := range samples {
		if s.Name != "const_long_long" {
			continue
		}
		ty, ok := in.Lookup(s.Type)
		if !ok {
			t.Fatalf("sample type not found in arena")
		}
		if ty.Specifier != types.LongLong {
			t.Fatalf("Specifier = %v, want LongLong", ty.Specifier)
		}
		if !ty.Quals.Const {
			t.Fatalf("expected const_long_long to be const-qualified")
		}
		return
	}
	t.Fatalf("const_long_long not found")
}
