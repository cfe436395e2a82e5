// Package printer renders internal/types.Type values as C declarator syntax
// and as a diagnostic dump, grounded on the teacher's internal/types/label.go
// (a depth-guarded recursive label builder) generalized from a single
// linear "T<args>" label into the inside-out prologue/epilogue declarator
// C requires: a pointer is a prefix, an array or function is a suffix, and
// the two interleave with parentheses whenever their precedence would
// otherwise be ambiguous ("pointer to array" vs "array of pointer").
package printer

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"ctypes/internal/source"
	"ctypes/internal/target"
	"ctypes/internal/types"
)

// maxDepth guards against a cyclic or pathologically deep type graph the
// same way label.go's labelDepth does.
const maxDepth = 64

// NameMapper resolves a source.StringID (a record/enum tag, a parameter
// name) to the text the printer should emit for it. The default mapper
// wraps a *source.Interner directly; callers that want to rename, truncate,
// or redact identifiers during printing supply their own.
type NameMapper interface {
	Name(id source.StringID) (string, bool)
}

type internerMapper struct{ s *source.Interner }

func (m internerMapper) Name(id source.StringID) (string, bool) {
	if m.s == nil {
		return "", false
	}
	return m.s.Lookup(id)
}

// DefaultMapper wraps s's own lookup table as a NameMapper.
func DefaultMapper(s *source.Interner) NameMapper { return internerMapper{s: s} }

// SizeOf optionally resolves ty's byte size, used only to render a concrete
// vector_size(...) byte count; a Printer without one falls back to a
// symbolic "N * sizeof(elem)" form. This keeps the printer usable with or
// without a wired internal/layout.Engine, matching spec.md §4.9's
// print(ty, name?, mapper, langopts, writer) signature (no layout engine
// parameter) while still letting a caller that has one produce exact output.
type SizeOf func(ty types.TypeID) (uint64, bool)

// Printer renders types from arena using mapper for identifiers. Lang is
// stored but no spelling depends on it: the printer emits GCC/Clang
// spellings for every dialect (MSVC's __int64 family is not modeled),
// matching the rest of this module's dialect handling, which only changes
// computed values, never surface syntax.
type Printer struct {
	Types  *types.Interner
	Mapper NameMapper
	Lang   target.LangOpts
	Sizer  SizeOf
}

// New returns a Printer over arena. mapper may be nil, in which case
// DefaultMapper(arena.Strings) is used.
func New(arena *types.Interner, mapper NameMapper, lang target.LangOpts) *Printer {
	if mapper == nil {
		mapper = DefaultMapper(arena.Strings)
	}
	return &Printer{Types: arena, Mapper: mapper, Lang: lang}
}

// WithSizer returns a copy of p that resolves concrete vector_size byte
// counts through sizer.
func (p *Printer) WithSizer(sizer SizeOf) *Printer {
	cp := *p
	cp.Sizer = sizer
	return &cp
}

// Print renders ty as an abstract declarator (no name), e.g. "int *".
func (p *Printer) Print(ty types.TypeID) string {
	return p.PrintNamed(ty, "")
}

// PrintNamed renders ty as a concrete declaration of name, e.g.
// PrintNamed(int[4], "buf") -> "int buf[4]".
func (p *Printer) PrintNamed(ty types.TypeID, name string) string {
	var sb strings.Builder
	p.Fprint(&sb, ty, name)
	return sb.String()
}

// Fprint writes ty's declarator form for name to w.
func (p *Printer) Fprint(w io.Writer, ty types.TypeID, name string) {
	base, inner := p.declarator(ty, name, 0)
	if inner == "" {
		fmt.Fprint(w, base)
		return
	}
	if base == "" {
		fmt.Fprint(w, inner)
		return
	}
	fmt.Fprint(w, base+" "+inner)
}

// declarator implements the prologue/epilogue sandwich: it peels one
// derived-type layer at a time, growing inner (the part that surrounds the
// name) until it hits a type with no further derivation, which becomes
// base. needsParens checks whether inner currently reads as a pointer
// declarator (so a subsequent array/function suffix must parenthesize it:
// "int (*p)[4]" rather than the wrong "int *p[4]").
func (p *Printer) declarator(ty types.TypeID, inner string, depth int) (base string, out string) {
	if depth > maxDepth {
		return "?", inner
	}
	t, ok := p.Types.Lookup(ty)
	if !ok {
		return "?", inner
	}

	switch {
	case t.Specifier == types.Attributed:
		return p.printAttributed(ty, t, inner, depth)

	case t.Specifier == types.Pointer || types.IsDecayed(t.Specifier) && types.IsArrayKind(t.Specifier):
		star := "*" + qualSuffix(t.Quals)
		return p.declarator(t.Elem, wrapForPointer(star+inner), depth+1)

	case t.Specifier == types.TypeofType, t.Specifier == types.DecayedTypeofType:
		return p.printTypeof(t, inner, depth)

	case t.Specifier == types.TypeofExpr, t.Specifier == types.DecayedTypeofExpr:
		return "typeof(<expr>)", inner

	case types.IsArrayKind(t.Specifier) && t.Specifier != types.Vector:
		return p.printArray(ty, t, inner, depth)

	case t.Specifier == types.Vector:
		return p.printVector(ty, t), inner

	case isFuncKind(t.Specifier):
		return p.printFunc(ty, inner, depth)

	default:
		return p.printBase(ty, t), inner
	}
}

// wrapForPointer marks inner as needing parens the next time an array or
// function suffix is appended: anything already containing a leading '*'
// is, by construction, a pointer declarator.
func wrapForPointer(inner string) string { return inner }

func needsParens(inner string) bool {
	return strings.HasPrefix(inner, "*")
}

func (p *Printer) printArray(ty types.TypeID, t types.Type, inner string, depth int) (string, string) {
	if needsParens(inner) {
		inner = "(" + inner + ")"
	}
	dim := p.arrayDim(ty, t)
	return p.declarator(t.Elem, inner+"["+dim+"]", depth+1)
}

func (p *Printer) arrayDim(ty types.TypeID, t types.Type) string {
	info, ok := p.Types.ArrayInfo(ty)
	switch t.Specifier {
	case types.Array:
		if ok {
			return strconv.FormatUint(info.Len, 10)
		}
		return ""
	case types.StaticArray:
		if ok {
			return "static " + strconv.FormatUint(info.Len, 10)
		}
		return "static"
	case types.IncompleteArray:
		return ""
	case types.VariableLenArray:
		return "<expr>"
	case types.UnspecifiedVariableLenArray:
		return "*"
	default:
		return ""
	}
}

func (p *Printer) printFunc(ty types.TypeID, inner string, depth int) (string, string) {
	if needsParens(inner) {
		inner = "(" + inner + ")"
	}
	params, _ := types.Params(p.Types, ty)
	ret, hasRet := types.ReturnType(p.Types, ty)

	t, _ := p.Types.Lookup(ty)
	paramList := p.paramList(params, t.Specifier)
	inner = inner + "(" + paramList + ")"
	if !hasRet {
		return "?", inner
	}
	return p.declarator(ret, inner, depth+1)
}

func (p *Printer) paramList(params []types.Param, specifier types.Specifier) string {
	if len(params) == 0 {
		switch specifier {
		case types.OldStyleFunc:
			return ""
		default:
			return "void"
		}
	}
	parts := make([]string, 0, len(params)+1)
	for _, param := range params {
		name := ""
		if n, ok := p.Mapper.Name(param.Name); ok {
			name = n
		}
		parts = append(parts, p.PrintNamed(param.Type, name))
	}
	if specifier == types.VarArgsFunc {
		parts = append(parts, "...")
	}
	return strings.Join(parts, ", ")
}

func (p *Printer) printAttributed(ty types.TypeID, t types.Type, inner string, depth int) (string, string) {
	info, ok := p.Types.AttributedInfo(ty)
	if !ok {
		return p.declarator(t.Elem, inner, depth+1)
	}
	base, out := p.declarator(info.Base, inner, depth+1)
	for _, attr := range info.Attrs {
		switch attr.Tag {
		case types.AttrAligned:
			n := int64(0)
			if len(attr.Args) > 0 {
				n = attr.Args[0]
			}
			if n > 0 {
				base = base + " __attribute__((aligned(" + strconv.FormatInt(n, 10) + ")))"
			} else {
				base = base + " __attribute__((aligned))"
			}
		case types.AttrPacked:
			base = base + " __attribute__((packed))"
		case types.AttrVectorSize:
			// rendered by printVector when the base itself is a vector;
			// an attribute-list vector_size wrapping a non-vector specifier
			// (shouldn't normally occur) is rendered generically here.
			if len(attr.Args) > 0 {
				base = base + " __attribute__((vector_size(" + strconv.FormatInt(attr.Args[0], 10) + ")))"
			}
		}
	}
	return base, out
}

func (p *Printer) printTypeof(t types.Type, inner string, depth int) (string, string) {
	base, out := p.declarator(t.Elem, inner, depth+1)
	quals := qualSuffix(t.Quals)
	if quals != "" {
		base = strings.TrimSpace(quals) + " " + base
	}
	return base, out
}

func (p *Printer) printVector(ty types.TypeID, t types.Type) string {
	elemBase := p.printBase(t.Elem, p.lookupOrZero(t.Elem))
	info, ok := p.Types.ArrayInfo(ty)
	count := uint64(0)
	if ok {
		count = info.Len
	}
	sizeExpr := strconv.FormatUint(count, 10) + " * sizeof(" + elemBase + ")"
	if p.Sizer != nil {
		if bytes, ok := p.Sizer(ty); ok {
			sizeExpr = strconv.FormatUint(bytes, 10)
		}
	}
	return elemBase + " __attribute__((vector_size(" + sizeExpr + "))) /* " +
		strconv.FormatUint(count, 10) + " x " + elemBase + " */"
}

func (p *Printer) lookupOrZero(id types.TypeID) types.Type {
	t, _ := p.Types.Lookup(id)
	return t
}

func isFuncKind(s types.Specifier) bool {
	return s == types.Func || s == types.VarArgsFunc || s == types.OldStyleFunc
}

// qualSuffix renders the qualifier-list text that follows a specifier or a
// pointer's '*': "const volatile", "restrict", etc. _Atomic is handled by
// the caller (printBase short-circuits to the atomic-type-specifier form
// rather than printing it here) except on a pointer itself, where
// `* _Atomic` is the correct C rendering.
func qualSuffix(q types.Qualifiers) string {
	var parts []string
	if q.Const {
		parts = append(parts, "const")
	}
	if q.Volatile {
		parts = append(parts, "volatile")
	}
	if q.Restrict {
		parts = append(parts, "restrict")
	}
	if q.Atomic {
		parts = append(parts, "_Atomic")
	}
	if q.Register {
		parts = append(parts, "register")
	}
	if len(parts) == 0 {
		return ""
	}
	return " " + strings.Join(parts, " ")
}
