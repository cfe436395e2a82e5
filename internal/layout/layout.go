// Package layout computes ABI size/alignment/bit-size for the type values
// internal/types interns, against a chosen internal/target.Target and
// LangOpts: a small Engine wrapping an Interner, a cycle-guarded recursive
// walk, and a per-TypeID cache, specialized to C's primitive-size table
// and record/bitfield rules.
package layout

import (
	"ctypes/internal/target"
	"ctypes/internal/trace"
	"ctypes/internal/types"
)

// Layout is the computed ABI layout of a type for a specific target: its
// size/alignment in bytes, and (independently, since _Bool and _BitInt(N)
// don't size to a whole byte count the same way) its size in bits.
//
// Ok is false when the size genuinely cannot be determined at this point
// (an incomplete record/enum or a VLA) — it is not an error, just
// "unknown". A record that contains itself is reported as an *Error
// (ErrRecursiveUnsized) instead.
type Layout struct {
	SizeBytes uint64
	SizeBits  uint64
	Align     uint64
	Ok        bool
}

// Engine computes and caches layouts for one Interner against one
// Target/LangOpts pair. It is cheap to construct and does not outlive the
// Interner it was built from.
type Engine struct {
	Types    *types.Interner
	Target   target.Target
	LangOpts target.LangOpts
	Tracer   trace.Tracer

	cache map[types.TypeID]cacheEntry
}

type cacheEntry struct {
	layout Layout
	err    *Error
}

// New constructs an Engine for the given type arena, target, and dialect.
// Layout computation is unobserved by default; call WithTracer to record
// cache hits/misses and recursive-layout detections the way internal/builder
// already records specifier-combine steps.
func New(typesIn *types.Interner, tgt target.Target, opts target.LangOpts) *Engine {
	return &Engine{
		Types:    typesIn,
		Target:   tgt,
		LangOpts: opts,
		Tracer:   trace.Nop,
		cache:    make(map[types.TypeID]cacheEntry, 256),
	}
}

// WithTracer returns a copy of e that emits its layout-cache and recursion
// events to t instead of discarding them.
func (e *Engine) WithTracer(t trace.Tracer) *Engine {
	if t == nil {
		t = trace.Nop
	}
	cp := *e
	cp.Tracer = t
	return &cp
}

// visitState tracks the record/array chain currently being laid out, to
// turn an infinite-size recursive struct into a diagnosable Error instead
// of a stack overflow.
type visitState struct {
	stack []types.TypeID
	index map[types.TypeID]int
}

func newVisitState() *visitState {
	return &visitState{index: make(map[types.TypeID]int, 16)}
}

func (e *Engine) enter(id types.TypeID, st *visitState) *Error {
	if _, dup := st.index[id]; dup {
		cycle := append([]types.TypeID(nil), st.stack...)
		cycle = append(cycle, id)
		sp := trace.Begin(e.Tracer, trace.ScopeNode, "layout.recursive", 0)
		sp.End("detected")
		return &Error{Kind: ErrRecursiveUnsized, Type: id, Cycle: cycle}
	}
	st.index[id] = len(st.stack)
	st.stack = append(st.stack, id)
	return nil
}

func (e *Engine) leave(id types.TypeID, st *visitState) {
	st.stack = st.stack[:len(st.stack)-1]
	delete(st.index, id)
}

// LayoutOf computes (and caches) the full Layout for id.
func (e *Engine) LayoutOf(id types.TypeID) (Layout, *Error) {
	if e == nil || e.Types == nil || id == types.NoTypeID {
		return Layout{}, nil
	}
	return e.layoutOf(id, newVisitState())
}

func (e *Engine) layoutOf(id types.TypeID, st *visitState) (Layout, *Error) {
	if cached, ok := e.cache[id]; ok {
		sp := trace.Begin(e.Tracer, trace.ScopeModule, "layout.cache", 0)
		sp.End("hit")
		return cached.layout, cached.err
	}
	sp := trace.Begin(e.Tracer, trace.ScopeModule, "layout.cache", 0)
	sp.End("miss")

	if err := e.enter(id, st); err != nil {
		return Layout{}, err
	}
	l, err := e.compute(id, st)
	e.leave(id, st)
	e.cache[id] = cacheEntry{layout: l, err: err}
	return l, err
}

// SizeOf returns id's size in bytes.
func (e *Engine) SizeOf(id types.TypeID) (uint64, bool) {
	l, err := e.LayoutOf(id)
	if err != nil {
		return 0, false
	}
	return l.SizeBytes, l.Ok
}

// BitSizeOf returns id's size in bits.
func (e *Engine) BitSizeOf(id types.TypeID) (uint64, bool) {
	l, err := e.LayoutOf(id)
	if err != nil {
		return 0, false
	}
	return l.SizeBits, l.Ok
}

// AlignOf returns id's alignment in bytes.
func (e *Engine) AlignOf(id types.TypeID) (uint64, bool) {
	l, err := e.LayoutOf(id)
	if err != nil {
		return 0, false
	}
	return l.Align, l.Ok
}

// RequestedAlignment returns the `aligned(N)` alignment annotated directly
// on ty (tag-level or via an attributed() wrapper), ignoring any computed/
// natural alignment, the way alignof consults it before falling back to
// the structural computation.
func (e *Engine) RequestedAlignment(ty types.TypeID) (uint64, bool) {
	if e == nil || e.Types == nil {
		return 0, false
	}
	return e.requestedAlignment(ty)
}

// defaultAlignedNoArg is the alignment `__attribute__((aligned))` with no
// argument requests on most ELF targets.
const defaultAlignedNoArg = 16

// Alignable reports whether ty's alignment can be queried at all: an array,
// a complete type, or void.
func (e *Engine) Alignable(ty types.TypeID) bool {
	if types.IsArray(e.Types, ty) {
		return true
	}
	t, ok := e.Types.Lookup(ty)
	if !ok {
		return false
	}
	if t.Specifier == types.Void {
		return true
	}
	return !types.IsIncomplete(e.Types, t)
}
