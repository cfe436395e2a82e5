// Package builder assembles a fully-qualified internal/types.Type from the
// stream of declaration specifiers a parser emits — `signed`, `long`,
// `_Complex`, `typeof(...)`, a typedef reference, a struct/union/enum tag —
// which the C grammar allows in any order and in many near-synonymous
// combinations ("signed long long int" == "long long signed int" == ...).
//
// No example repo in the retrieved corpus has an exact analogue of this
// state machine (the teacher resolves its own type specifiers directly in
// its parser, one grammar production at a time, rather than through a
// reusable accumulator); it is built fresh, in the teacher's general
// style — a small state struct plus table-driven validation, reporting
// through the same internal/diag.Reporter contract every other package in
// this module reports through.
package builder

import (
	"ctypes/internal/diag"
	"ctypes/internal/source"
	"ctypes/internal/target"
	"ctypes/internal/trace"
	"ctypes/internal/types"
)

// Keyword enumerates the atomic declaration-specifier tokens Combine
// accepts. Derived-type combinators (pointer, array, function) and tag/
// typedef/typeof references go through their own dedicated methods (see
// CombineTag, CombineTypedef, CombineFromTypeof) since they carry a payload
// (a TypeID) rather than being bare keywords.
type Keyword uint8

const (
	KwSigned Keyword = iota + 1
	KwUnsigned
	KwShort
	KwLong
	KwChar
	KwInt
	KwInt128
	KwComplex
	KwVoid
	KwBool
	KwFloat
	KwDouble
	KwFP16
	KwFloat80
	KwFloat128
	KwNullptrT
	KwAtomicQualifier // bare `_Atomic` used as a qualifier, not `_Atomic(T)`
)

// FatalErr is returned by CombineBitInt when the declaration cannot be
// recovered from: _BitInt(N) out of range, per spec.md §7. Every other
// diagnostic is best-effort-repaired and does not stop the builder.
type FatalErr struct {
	Code diag.Code
}

func (e *FatalErr) Error() string {
	if e == nil {
		return "<nil>"
	}
	return "builder: " + e.Code.String()
}

// Builder accumulates one declaration's specifiers and qualifiers. Create
// one with New, which also allocates Quals; the zero value leaves Quals nil.
// A Builder is single-use: call Finish once, then
// discard it (matching the parser's one-builder-per-declaration lifecycle).
type Builder struct {
	Quals *types.QualifierBuilder

	target   target.Target
	langOpts target.LangOpts
	tracer   trace.Tracer

	signed, unsigned bool
	signTok          source.Span

	shortSeen bool
	shortTok  source.Span
	longCount int
	longTok   source.Span

	charSeen bool
	charTok  source.Span
	intSeen  bool
	intTok   source.Span

	int128Seen bool
	int128Tok  source.Span

	complexSeen bool
	complexTok  source.Span

	bitInt     *bitIntState
	other      types.Specifier // Void/Bool/NullptrT/Float/Double/FP16/Float80/Float128; Invalid == unset
	otherTok   source.Span
	atomicQual bool

	typeofTy  types.TypeID
	typeofSet bool
	typeofTok source.Span

	typedefTy  types.TypeID
	typedefSet bool

	tagTy  types.TypeID
	tagSet bool
	tagTok source.Span

	sawAny bool // true once any combine* call has mutated state
}

type bitIntState struct {
	bits         uint16
	signExplicit bool
	signed       bool
	tok          source.Span
}

// New returns a Builder configured for tg/opts, used to decode the
// _BitInt/complex/__int128-availability diagnostics that are target-
// specific. tracer may be nil (equivalent to trace.Nop).
func New(tg target.Target, opts target.LangOpts, tracer trace.Tracer) *Builder {
	if tracer == nil {
		tracer = trace.Nop
	}
	return &Builder{Quals: types.NewQualifierBuilder(), target: tg, langOpts: opts, tracer: tracer}
}

func (b *Builder) emit(rep diag.Reporter, sev diag.Severity, code diag.Code, tok source.Span, msg string) {
	if rep == nil {
		return
	}
	rep.Report(code, sev, tok, msg, nil, nil)
}

// hasBaseSpecifier reports whether any "what kind of number/void/bool" bit
// has been set, used to reject size/sign specifiers piling onto an
// incompatible base and to reject a second base specifier outright.
func (b *Builder) hasBaseSpecifier() bool {
	return b.charSeen || b.int128Seen || b.bitInt != nil || b.other != types.Invalid
}

// Combine applies one atomic declaration-specifier keyword. Violations are
// reported through rep and best-effort-repaired (the offending token is
// simply not applied); Combine never fails outright.
func (b *Builder) Combine(kw Keyword, tok source.Span, rep diag.Reporter) {
	sp := trace.Begin(b.tracer, trace.ScopeNode, "builder.combine", 0)
	defer sp.End(kw.String())

	b.sawAny = true
	switch kw {
	case KwSigned:
		b.combineSign(true, tok, rep)
	case KwUnsigned:
		b.combineSign(false, tok, rep)
	case KwShort:
		b.combineShort(tok, rep)
	case KwLong:
		b.combineLong(tok, rep)
	case KwChar:
		b.combineChar(tok, rep)
	case KwInt:
		b.combineInt(tok, rep)
	case KwInt128:
		b.combineInt128(tok, rep)
	case KwComplex:
		b.combineComplex(tok, rep)
	case KwAtomicQualifier:
		b.atomicQual = true
		b.Quals.AddAtomic(tok)
	case KwVoid, KwBool, KwFloat, KwFP16, KwFloat80, KwFloat128, KwNullptrT:
		b.combineOther(kw, tok, rep)
	case KwDouble:
		b.combineDouble(tok, rep)
	}
}

func (b *Builder) duplicateOrCombine(already bool, tok source.Span, rep diag.Reporter) bool {
	if !already {
		return true
	}
	if b.langOpts.DialectKind() == target.Clang {
		b.emit(rep, diag.SevWarning, diag.SpecDuplicateDeclSpec, tok, "duplicate declaration specifier")
		return true
	}
	b.emit(rep, diag.SevError, diag.SpecCannotCombine, tok, "duplicate declaration specifier")
	return false
}

func (b *Builder) reject(tok source.Span, rep diag.Reporter) {
	b.emit(rep, diag.SevError, diag.SpecCannotCombine, tok, "cannot combine with previous declaration specifier")
}

func (b *Builder) combineSign(signed bool, tok source.Span, rep diag.Reporter) {
	if b.bitInt != nil {
		if b.bitInt.signExplicit {
			b.duplicateOrCombine(true, tok, rep)
			return
		}
		b.bitInt.signExplicit = true
		b.bitInt.signed = signed
		return
	}
	if b.charSeen || b.int128Seen || b.other != types.Invalid {
		if (signed && b.signed) || (!signed && b.unsigned) {
			b.duplicateOrCombine(true, tok, rep)
			return
		}
		if b.signed || b.unsigned {
			b.reject(tok, rep)
			return
		}
	} else if (signed && b.signed) || (!signed && b.unsigned) {
		b.duplicateOrCombine(true, tok, rep)
		return
	} else if b.signed || b.unsigned {
		b.reject(tok, rep)
		return
	}
	if signed {
		b.signed = true
	} else {
		b.unsigned = true
	}
	b.signTok = tok
}

func (b *Builder) combineShort(tok source.Span, rep diag.Reporter) {
	if b.longCount > 0 || b.hasBaseSpecifier() {
		b.reject(tok, rep)
		return
	}
	if !b.duplicateOrCombine(b.shortSeen, tok, rep) {
		return
	}
	b.shortSeen = true
	b.shortTok = tok
}

func (b *Builder) combineLong(tok source.Span, rep diag.Reporter) {
	if b.shortSeen || b.charSeen || b.int128Seen || b.bitInt != nil {
		b.reject(tok, rep)
		return
	}
	if b.other != types.Invalid && b.other != types.Double {
		b.reject(tok, rep)
		return
	}
	if b.longCount >= 2 {
		b.reject(tok, rep)
		return
	}
	if b.longCount == 1 && b.other == types.Double {
		b.emit(rep, diag.SevError, diag.SpecCannotCombine, tok, "too many 'long' specifiers")
		return
	}
	b.longCount++
	b.longTok = tok
}

func (b *Builder) combineChar(tok source.Span, rep diag.Reporter) {
	if b.shortSeen || b.longCount > 0 || b.int128Seen || b.intSeen || b.other != types.Invalid || b.bitInt != nil {
		b.reject(tok, rep)
		return
	}
	if !b.duplicateOrCombine(b.charSeen, tok, rep) {
		return
	}
	b.charSeen = true
	b.charTok = tok
}

func (b *Builder) combineInt(tok source.Span, rep diag.Reporter) {
	if b.charSeen || b.int128Seen || b.other != types.Invalid || b.bitInt != nil {
		b.reject(tok, rep)
		return
	}
	if !b.duplicateOrCombine(b.intSeen, tok, rep) {
		return
	}
	b.intSeen = true
	b.intTok = tok
}

func (b *Builder) combineInt128(tok source.Span, rep diag.Reporter) {
	if b.shortSeen || b.longCount > 0 || b.charSeen || b.intSeen || b.other != types.Invalid || b.bitInt != nil {
		b.reject(tok, rep)
		return
	}
	if !b.duplicateOrCombine(b.int128Seen, tok, rep) {
		return
	}
	b.int128Seen = true
	b.int128Tok = tok
	if !b.target.Supports128BitInt {
		b.emit(rep, diag.SevWarning, diag.TypeNotSupportedOnTarget, tok, "'__int128' is not supported on this target")
	}
}

func (b *Builder) combineComplex(tok source.Span, rep diag.Reporter) {
	if !b.duplicateOrCombine(b.complexSeen, tok, rep) {
		return
	}
	b.complexSeen = true
	b.complexTok = tok
}

func (b *Builder) combineOther(kw Keyword, tok source.Span, rep diag.Reporter) {
	if b.signed || b.unsigned || b.shortSeen || b.longCount > 0 || b.charSeen || b.intSeen || b.int128Seen || b.bitInt != nil || b.other != types.Invalid {
		b.reject(tok, rep)
		return
	}
	var sp types.Specifier
	switch kw {
	case KwVoid:
		sp = types.Void
	case KwBool:
		sp = types.Bool
	case KwFloat:
		sp = types.Float
	case KwFP16:
		sp = types.FP16
	case KwFloat80:
		sp = types.Float80
	case KwFloat128:
		sp = types.Float128
	case KwNullptrT:
		sp = types.NullptrT
	}
	b.other = sp
	b.otherTok = tok
}

func (b *Builder) combineDouble(tok source.Span, rep diag.Reporter) {
	if b.signed || b.unsigned || b.shortSeen || b.charSeen || b.intSeen || b.int128Seen || b.bitInt != nil {
		b.reject(tok, rep)
		return
	}
	if b.longCount > 1 {
		b.reject(tok, rep)
		return
	}
	if b.other != types.Invalid {
		b.reject(tok, rep)
		return
	}
	b.other = types.Double
	b.otherTok = tok
}

// CombineBitInt applies `_BitInt(bits)`, optionally already signed via a
// preceding `signed`/`unsigned` token. A `signed`/`unsigned` token that
// arrives after this call is stored into bitInt by combineSign, so both
// "signed _BitInt(8)" and "_BitInt(8) unsigned" set the signedness. The
// width bounds, however, are checked here against the signedness known at
// this call (plain/implicit counts as signed).
// Returns a *FatalErr when bits is out of the representable range
// (spec.md §3: signed needs bits>=2, unsigned needs bits>=1, max 128);
// the caller must treat that as "parsing failed" for this declaration.
func (b *Builder) CombineBitInt(bits uint16, tok source.Span, rep diag.Reporter) *FatalErr {
	if b.hasBaseSpecifier() || b.shortSeen || b.longCount > 0 {
		b.reject(tok, rep)
		return nil
	}
	signed := !b.unsigned
	if bits > 128 {
		b.emit(rep, diag.SevError, diag.BitIntTooBig, tok, "_BitInt width exceeds the engine's 128-bit limit")
		return &FatalErr{Code: diag.BitIntTooBig}
	}
	if signed && bits < 2 {
		b.emit(rep, diag.SevError, diag.BitIntSignedTooSmall, tok, "signed _BitInt must be at least 2 bits wide")
		return &FatalErr{Code: diag.BitIntSignedTooSmall}
	}
	if !signed && bits < 1 {
		b.emit(rep, diag.SevError, diag.BitIntUnsignedTooSmall, tok, "unsigned _BitInt must be at least 1 bit wide")
		return &FatalErr{Code: diag.BitIntUnsignedTooSmall}
	}
	b.bitInt = &bitIntState{bits: bits, signExplicit: b.signed || b.unsigned, signed: signed, tok: tok}
	return nil
}

// CombineFromTypeof applies `typeof(expr-or-type)`. Rejected (diagnosed,
// not applied) if any atomic specifier, typedef, or another typeof has
// already been combined. `typeof(nullptr)` is special-cased by the caller
// passing isNullptr=true: the builder then records nullptr_t directly
// rather than wrapping in a typeof_type node, matching spec.md §4.6.
func (b *Builder) CombineFromTypeof(inner types.TypeID, isNullptr bool, tok source.Span, rep diag.Reporter) bool {
	if b.sawAny && (b.hasBaseSpecifier() || b.signed || b.unsigned || b.shortSeen || b.longCount > 0 || b.intSeen || b.complexSeen || b.typeofSet || b.typedefSet || b.tagSet) {
		b.emit(rep, diag.SevError, diag.SpecInvalidTypeof, tok, "typeof cannot combine with another type specifier")
		return false
	}
	b.sawAny = true
	if isNullptr {
		b.other = types.NullptrT
		b.otherTok = tok
		return true
	}
	b.typeofSet = true
	b.typeofTy = inner
	b.typeofTok = tok
	return true
}

// CombineTag applies a struct/union/enum tag reference (tagTy must already
// name a StructTy/UnionTy/EnumTy TypeID, interned by the parser when it saw
// the tag). Rejected if any other specifier was already combined.
func (b *Builder) CombineTag(tagTy types.TypeID, tok source.Span, rep diag.Reporter) bool {
	if b.sawAny && (b.hasBaseSpecifier() || b.signed || b.unsigned || b.shortSeen || b.longCount > 0 || b.intSeen || b.complexSeen || b.typeofSet || b.typedefSet || b.tagSet) {
		b.emit(rep, diag.SevError, diag.SpecCannotCombine, tok, "cannot combine with previous declaration specifier")
		return false
	}
	b.sawAny = true
	b.tagSet = true
	b.tagTy = tagTy
	b.tagTok = tok
	return true
}

// CombineTypedef tries combining a typedef reference. It always runs
// suppressed (no diagnostics, matching spec.md §4.6's "try mode"): the
// parser calls this when it sees a bare identifier and needs to find out,
// without committing to an interpretation, whether treating it as a type
// name is even legal given what's already been combined. A false return
// leaves the Builder's state untouched so the parser can fall back to
// treating the identifier as an expression/non-type.
func (b *Builder) CombineTypedef(tdTy types.TypeID, tok source.Span) bool {
	if b.sawAny {
		return false
	}
	b.sawAny = true
	b.typedefSet = true
	b.typedefTy = tdTy
	return true
}

func (kw Keyword) String() string {
	switch kw {
	case KwSigned:
		return "signed"
	case KwUnsigned:
		return "unsigned"
	case KwShort:
		return "short"
	case KwLong:
		return "long"
	case KwChar:
		return "char"
	case KwInt:
		return "int"
	case KwInt128:
		return "__int128"
	case KwComplex:
		return "_Complex"
	case KwVoid:
		return "void"
	case KwBool:
		return "_Bool"
	case KwFloat:
		return "float"
	case KwDouble:
		return "double"
	case KwFP16:
		return "__fp16"
	case KwFloat80:
		return "__float80"
	case KwFloat128:
		return "_Float128"
	case KwNullptrT:
		return "nullptr_t"
	case KwAtomicQualifier:
		return "_Atomic"
	default:
		return "?"
	}
}
