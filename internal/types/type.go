package types

import (
	"fmt"

	"fortio.org/safecast"

	"ctypes/internal/source"
)

// TypeID uniquely identifies a type inside an Interner.
type TypeID uint32

// NoTypeID marks the absence of a type.
const NoTypeID TypeID = 0

// Type is the small, copyable value every query in this package operates
// on: a specifier tag, its qualifiers, and (depending on the specifier) an
// element TypeID and/or an index into one of the Interner's payload
// side-tables. Type itself never owns heap memory; all payload variants are
// interned in the arena-backed tables below and addressed by Payload.
type Type struct {
	Specifier Specifier
	Quals     Qualifiers
	Elem      TypeID // pointee / array-or-vector element / typeof sub_type
	Payload   uint32 // index into the table selected by Specifier; 0 == none
}

// ExprRef is an opaque handle to a parser-owned AST expression node. The
// engine stores it (for VLA lengths and typeof(expr)) but never interprets
// it; equality/size/printing treat it as inert data.
type ExprRef uint32

// NoExprRef marks the absence of an expression.
const NoExprRef ExprRef = 0

// Param describes one function parameter.
type Param struct {
	Type    TypeID
	Name    source.StringID
	NameTok source.Span
}

// FuncInfo is the payload for func/var_args_func/old_style_func.
type FuncInfo struct {
	Return TypeID
	Params []Param
}

// ArrayInfo is the payload for array and static_array (fixed length) and
// variable_len_array (runtime length expression).
type ArrayInfo struct {
	Len     uint64
	LenExpr ExprRef
}

// TypeofExprInfo is the payload for typeof_expr/decayed_typeof_expr: the
// expression node typeof was applied to, plus that expression's type.
type TypeofExprInfo struct {
	Node ExprRef
	Ty   TypeID
}

// BitIntInfo is the payload for bit_int/complex_bit_int.
type BitIntInfo struct {
	Bits   uint8
	Signed bool
}

// AttributedInfo is the payload for the attributed specifier: a base type
// plus the attribute list wrapped around it.
type AttributedInfo struct {
	Base  TypeID
	Attrs []Attribute
}

// RecordField describes one member of a struct/union.
type RecordField struct {
	Name     source.StringID // NoStringID means unnamed (plain padding or an unnamed bitfield)
	NameTok  source.Span
	Type     TypeID
	BitWidth *uint32 // nil unless this is a bitfield
	Layout   FieldLayout
	Attrs    []Attribute
}

// FieldLayout is the bit offset/size computed for one field during layout
// finalization. Zero value means "not yet computed".
type FieldLayout struct {
	OffsetBits uint64
	SizeBits   uint64
	Computed   bool
}

// RecordInfo is the payload for struct/union. Fields is nil and Complete is
// false until the parser has seen the definition; completing it in place is
// the only mutation a Type's payload ever undergoes after being observed by
// a query.
type RecordInfo struct {
	Name     source.StringID
	Decl     source.Span
	Fields   []RecordField
	Complete bool
	Attrs    []Attribute
}

// IsAnonymous reports whether info's interned name is the engine-assigned
// anonymous-aggregate placeholder ("(anonymous struct at ...)" etc, which
// always starts with '(').
func (info *RecordInfo) IsAnonymous(strings *source.Interner) bool {
	if info == nil || strings == nil {
		return false
	}
	name, ok := strings.Lookup(info.Name)
	return ok && len(name) > 0 && name[0] == '('
}

// EnumField describes one enumerator.
type EnumField struct {
	Name  source.StringID
	Value int64
	Tok   source.Span
}

// EnumInfo is the payload for enum. Like RecordInfo, Fields/Complete are set
// once, in place, when the parser reaches the enum's closing brace.
type EnumInfo struct {
	Name     source.StringID
	Decl     source.Span
	Fields   []EnumField
	TagType  TypeID // the underlying integer type; NoTypeID if not yet fixed
	Fixed    bool   // true if TagType came from an explicit `: type` clause
	Complete bool
	Attrs    []Attribute
}

// Builtins holds the TypeIDs of the primitive specifiers, so callers don't
// need to re-intern `int`, `void`, etc. on every lookup.
type Builtins struct {
	Invalid  TypeID
	Void     TypeID
	Bool     TypeID
	NullptrT TypeID
	Char     TypeID
	Int      TypeID
	UInt     TypeID
	Long     TypeID
	ULong    TypeID
	Float    TypeID
	Double   TypeID
}

// Interner is the arena that owns every Type value and its heap-backed
// payload tables. Types built from it are cheap to copy (they only borrow
// the arena via indices); the arena itself is released wholesale at the end
// of a translation unit.
type Interner struct {
	Strings *source.Interner

	types []Type
	index map[typeKey]TypeID

	builtins Builtins

	funcs       []FuncInfo
	arrays      []ArrayInfo
	typeofExprs []TypeofExprInfo
	bitints     []BitIntInfo
	attributed  []AttributedInfo
	records     []RecordInfo
	enums       []EnumInfo
}

type typeKey struct {
	Specifier Specifier
	Quals     Qualifiers
	Elem      TypeID
	Payload   uint32
}

// NewInterner constructs an arena seeded with the commonly used builtins.
func NewInterner(strings *source.Interner) *Interner {
	in := &Interner{
		Strings: strings,
		index:   make(map[typeKey]TypeID, 128),
	}
	// Slot 0 of every payload table is reserved so Payload == 0 unambiguously
	// means "no payload".
	in.funcs = append(in.funcs, FuncInfo{})
	in.arrays = append(in.arrays, ArrayInfo{})
	in.typeofExprs = append(in.typeofExprs, TypeofExprInfo{})
	in.bitints = append(in.bitints, BitIntInfo{})
	in.attributed = append(in.attributed, AttributedInfo{})
	in.records = append(in.records, RecordInfo{})
	in.enums = append(in.enums, EnumInfo{})

	in.builtins.Invalid = in.internRaw(Type{Specifier: Invalid})
	in.builtins.Void = in.Intern(Type{Specifier: Void})
	in.builtins.Bool = in.Intern(Type{Specifier: Bool})
	in.builtins.NullptrT = in.Intern(Type{Specifier: NullptrT})
	in.builtins.Char = in.Intern(Type{Specifier: Char})
	in.builtins.Int = in.Intern(Type{Specifier: Int})
	in.builtins.UInt = in.Intern(Type{Specifier: UInt})
	in.builtins.Long = in.Intern(Type{Specifier: Long})
	in.builtins.ULong = in.Intern(Type{Specifier: ULong})
	in.builtins.Float = in.Intern(Type{Specifier: Float})
	in.builtins.Double = in.Intern(Type{Specifier: Double})
	return in
}

// Builtins returns the arena's cached primitive TypeIDs.
func (in *Interner) Builtins() Builtins { return in.builtins }

// Intern returns a stable TypeID for t, reusing an existing one whenever an
// identical Type (same specifier/quals/elem/payload index) was already
// interned. Structural sharing here is a space optimization, not an
// identity guarantee: records/enums/attributed wrappers still get fresh
// payload slots from RegisterXxx and are never shared even if Intern is
// called twice with the same Payload index (the Payload index itself is
// already the identity for those).
func (in *Interner) Intern(t Type) TypeID {
	if t.Specifier == Invalid {
		return in.builtins.Invalid
	}
	key := typeKey{Specifier: t.Specifier, Quals: t.Quals, Elem: t.Elem, Payload: t.Payload}
	if id, ok := in.index[key]; ok {
		return id
	}
	return in.internRaw(t)
}

func (in *Interner) internRaw(t Type) TypeID {
	n, err := safecast.Conv[uint32](len(in.types))
	if err != nil {
		panic(fmt.Errorf("types: interner overflow: %w", err))
	}
	id := TypeID(n)
	in.types = append(in.types, t)
	key := typeKey{Specifier: t.Specifier, Quals: t.Quals, Elem: t.Elem, Payload: t.Payload}
	in.index[key] = id
	return id
}

// Lookup returns the Type value for id.
func (in *Interner) Lookup(id TypeID) (Type, bool) {
	if in == nil || id == NoTypeID || int(id) >= len(in.types) {
		return Type{}, false
	}
	return in.types[id], true
}

// MustLookup panics if id is not valid.
func (in *Interner) MustLookup(id TypeID) Type {
	t, ok := in.Lookup(id)
	if !ok {
		panic("types: invalid TypeID")
	}
	return t
}

// WithQuals returns id re-interned with quals replacing its qualifiers.
func (in *Interner) WithQuals(id TypeID, quals Qualifiers) TypeID {
	t, ok := in.Lookup(id)
	if !ok {
		return id
	}
	t.Quals = quals
	return in.Intern(t)
}

// MakePointer interns a pointer to elem.
func (in *Interner) MakePointer(elem TypeID, quals Qualifiers) TypeID {
	return in.Intern(Type{Specifier: Pointer, Elem: elem, Quals: quals})
}

// MakeArray interns a fixed-length array of elem.
func (in *Interner) MakeArray(specifier Specifier, elem TypeID, length uint64, quals Qualifiers) TypeID {
	slot := in.appendArrayInfo(ArrayInfo{Len: length})
	return in.internRaw(Type{Specifier: specifier, Elem: elem, Payload: slot, Quals: quals})
}

// MakeVLA interns a variable-length array whose length is the given
// parser-owned expression.
func (in *Interner) MakeVLA(elem TypeID, lenExpr ExprRef, quals Qualifiers) TypeID {
	slot := in.appendArrayInfo(ArrayInfo{LenExpr: lenExpr})
	return in.internRaw(Type{Specifier: VariableLenArray, Elem: elem, Payload: slot, Quals: quals})
}

// MakeUnspecifiedVLA interns a `T[*]` array.
func (in *Interner) MakeUnspecifiedVLA(elem TypeID, quals Qualifiers) TypeID {
	return in.Intern(Type{Specifier: UnspecifiedVariableLenArray, Elem: elem, Quals: quals})
}

// MakeTypeofType interns `typeof(T)`.
func (in *Interner) MakeTypeofType(target TypeID, quals Qualifiers) TypeID {
	return in.Intern(Type{Specifier: TypeofType, Elem: target, Quals: quals})
}

// MakeTypeofExpr interns `typeof(expr)`.
func (in *Interner) MakeTypeofExpr(node ExprRef, exprTy TypeID, quals Qualifiers) TypeID {
	slot := in.appendTypeofExprInfo(TypeofExprInfo{Node: node, Ty: exprTy})
	return in.internRaw(Type{Specifier: TypeofExpr, Payload: slot, Quals: quals})
}

// MakeBitInt interns `_BitInt(bits)`/`_BitInt(bits) _Complex`.
func (in *Interner) MakeBitInt(complex bool, bits uint8, signed bool, quals Qualifiers) TypeID {
	slot := in.appendBitIntInfo(BitIntInfo{Bits: bits, Signed: signed})
	spec := BitInt
	if complex {
		spec = ComplexBitInt
	}
	return in.internRaw(Type{Specifier: spec, Payload: slot, Quals: quals})
}

// RegisterFunc allocates a new function-type payload. Function types are
// never structurally shared the way pointers/arrays are: a fresh FuncInfo
// slot backs every call, matching how the parser creates one per
// declarator.
func (in *Interner) RegisterFunc(specifier Specifier, ret TypeID, params []Param) TypeID {
	slot := in.appendFuncInfo(FuncInfo{Return: ret, Params: cloneParams(params)})
	return in.internRaw(Type{Specifier: specifier, Payload: slot})
}

// FuncInfo returns the payload for a func/var_args_func/old_style_func
// TypeID, unwrapping typeof/attributed wrappers first.
func (in *Interner) FuncInfo(id TypeID) (*FuncInfo, bool) {
	id = in.unwrapForPayload(id)
	t, ok := in.Lookup(id)
	if !ok || !isFuncSpecifier(t.Specifier) {
		return nil, false
	}
	if int(t.Payload) >= len(in.funcs) {
		return nil, false
	}
	return &in.funcs[t.Payload], true
}

// ArrayInfo returns the payload for an array/static_array/variable_len_array
// TypeID (in either plain or decayed form).
func (in *Interner) ArrayInfo(id TypeID) (*ArrayInfo, bool) {
	t, ok := in.Lookup(id)
	if !ok || !IsArrayKind(t.Specifier) {
		return nil, false
	}
	if int(t.Payload) >= len(in.arrays) {
		return nil, false
	}
	return &in.arrays[t.Payload], true
}

// TypeofExprInfo returns the payload for a typeof_expr/decayed_typeof_expr
// TypeID.
func (in *Interner) TypeofExprInfo(id TypeID) (*TypeofExprInfo, bool) {
	t, ok := in.Lookup(id)
	if !ok || (t.Specifier != TypeofExpr && t.Specifier != DecayedTypeofExpr) {
		return nil, false
	}
	if int(t.Payload) >= len(in.typeofExprs) {
		return nil, false
	}
	return &in.typeofExprs[t.Payload], true
}

// BitIntInfo returns the payload for a bit_int/complex_bit_int TypeID.
func (in *Interner) BitIntInfo(id TypeID) (*BitIntInfo, bool) {
	t, ok := in.Lookup(id)
	if !ok || (t.Specifier != BitInt && t.Specifier != ComplexBitInt) {
		return nil, false
	}
	if int(t.Payload) >= len(in.bitints) {
		return nil, false
	}
	return &in.bitints[t.Payload], true
}

// WithAttributes wraps ty in an attributed node carrying existing ++ attrs,
// matching the C rule that repeated attribute specifiers accumulate. When ty
// is itself attributed, the new node wraps ty's base, so attributed nodes
// never nest.
func (in *Interner) WithAttributes(ty TypeID, attrs []Attribute) TypeID {
	existing := in.GetAttributes(ty)
	combined := make([]Attribute, 0, len(existing)+len(attrs))
	combined = append(combined, existing...)
	combined = append(combined, attrs...)
	base := ty
	if info, ok := in.AttributedInfo(ty); ok {
		base = info.Base
	}
	slot := in.appendAttributedInfo(AttributedInfo{Base: base, Attrs: combined})
	t, _ := in.Lookup(ty)
	return in.internRaw(Type{Specifier: Attributed, Payload: slot, Quals: t.Quals})
}

// AttributedInfo returns the payload for an `attributed` TypeID.
func (in *Interner) AttributedInfo(id TypeID) (*AttributedInfo, bool) {
	t, ok := in.Lookup(id)
	if !ok || t.Specifier != Attributed {
		return nil, false
	}
	if int(t.Payload) >= len(in.attributed) {
		return nil, false
	}
	return &in.attributed[t.Payload], true
}

// RegisterRecord allocates an incomplete struct/union slot.
func (in *Interner) RegisterRecord(specifier Specifier, name source.StringID, decl source.Span) TypeID {
	slot := in.appendRecordInfo(RecordInfo{Name: name, Decl: decl})
	return in.internRaw(Type{Specifier: specifier, Payload: slot})
}

// CompleteRecord fills in a previously-incomplete record's fields. This is
// the one place a Type's payload mutates after having been observed.
func (in *Interner) CompleteRecord(id TypeID, fields []RecordField) {
	info := in.recordInfo(id)
	if info == nil {
		return
	}
	info.Fields = fields
	info.Complete = true
}

// SetFieldLayouts writes the finalized bit offset/size for each of a
// completed record's fields, in declaration order. It is the layout
// engine's one mutation of a record payload after completion.
func (in *Interner) SetFieldLayouts(id TypeID, layouts []FieldLayout) {
	info := in.recordInfo(id)
	if info == nil || len(layouts) != len(info.Fields) {
		return
	}
	for i := range info.Fields {
		info.Fields[i].Layout = layouts[i]
	}
}

// RecordInfo returns the payload for a struct/union TypeID.
func (in *Interner) RecordInfo(id TypeID) (*RecordInfo, bool) {
	info := in.recordInfo(id)
	if info == nil {
		return nil, false
	}
	return info, true
}

func (in *Interner) recordInfo(id TypeID) *RecordInfo {
	t, ok := in.Lookup(id)
	if !ok || (t.Specifier != StructTy && t.Specifier != UnionTy) {
		return nil
	}
	if int(t.Payload) >= len(in.records) {
		return nil
	}
	return &in.records[t.Payload]
}

// RegisterEnum allocates an incomplete enum slot.
func (in *Interner) RegisterEnum(name source.StringID, decl source.Span) TypeID {
	slot := in.appendEnumInfo(EnumInfo{Name: name, Decl: decl})
	return in.internRaw(Type{Specifier: EnumTy, Payload: slot})
}

// CompleteEnum fills in a previously-incomplete enum's fields and tag type.
func (in *Interner) CompleteEnum(id TypeID, fields []EnumField, tagType TypeID, fixed bool) {
	info := in.enumInfo(id)
	if info == nil {
		return
	}
	info.Fields = fields
	info.TagType = tagType
	info.Fixed = fixed
	info.Complete = true
}

// EnumInfo returns the payload for an enum TypeID.
func (in *Interner) EnumInfo(id TypeID) (*EnumInfo, bool) {
	info := in.enumInfo(id)
	if info == nil {
		return nil, false
	}
	return info, true
}

func (in *Interner) enumInfo(id TypeID) *EnumInfo {
	t, ok := in.Lookup(id)
	if !ok || t.Specifier != EnumTy {
		return nil
	}
	if int(t.Payload) >= len(in.enums) {
		return nil
	}
	return &in.enums[t.Payload]
}

// IsIncomplete reports whether ty names a struct/union/enum that has not
// been completed yet. It reads the payload table directly by index, so it
// works even for a Type value the builder has not interned yet.
func IsIncomplete(in *Interner, ty Type) bool {
	if in == nil {
		return false
	}
	switch ty.Specifier {
	case StructTy, UnionTy:
		if int(ty.Payload) >= len(in.records) {
			return false
		}
		return !in.records[ty.Payload].Complete
	case EnumTy:
		if int(ty.Payload) >= len(in.enums) {
			return false
		}
		return !in.enums[ty.Payload].Complete
	default:
		return false
	}
}

func (in *Interner) unwrapForPayload(id TypeID) TypeID {
	for i := 0; i < 32; i++ {
		t, ok := in.Lookup(id)
		if !ok {
			return id
		}
		switch t.Specifier {
		case Attributed:
			info, ok := in.AttributedInfo(id)
			if !ok {
				return id
			}
			id = info.Base
		case TypeofType, DecayedTypeofType:
			id = t.Elem
		case TypeofExpr, DecayedTypeofExpr:
			info, ok := in.TypeofExprInfo(id)
			if !ok {
				return id
			}
			id = info.Ty
		default:
			return id
		}
	}
	return id
}

func (in *Interner) appendFuncInfo(info FuncInfo) uint32 {
	in.funcs = append(in.funcs, info)
	return mustSlot(len(in.funcs)-1, "func")
}

func (in *Interner) appendArrayInfo(info ArrayInfo) uint32 {
	in.arrays = append(in.arrays, info)
	return mustSlot(len(in.arrays)-1, "array")
}

func (in *Interner) appendTypeofExprInfo(info TypeofExprInfo) uint32 {
	in.typeofExprs = append(in.typeofExprs, info)
	return mustSlot(len(in.typeofExprs)-1, "typeof-expr")
}

func (in *Interner) appendBitIntInfo(info BitIntInfo) uint32 {
	in.bitints = append(in.bitints, info)
	return mustSlot(len(in.bitints)-1, "bitint")
}

func (in *Interner) appendAttributedInfo(info AttributedInfo) uint32 {
	in.attributed = append(in.attributed, info)
	return mustSlot(len(in.attributed)-1, "attributed")
}

func (in *Interner) appendRecordInfo(info RecordInfo) uint32 {
	in.records = append(in.records, info)
	return mustSlot(len(in.records)-1, "record")
}

func (in *Interner) appendEnumInfo(info EnumInfo) uint32 {
	in.enums = append(in.enums, info)
	return mustSlot(len(in.enums)-1, "enum")
}

func mustSlot(n int, what string) uint32 {
	slot, err := safecast.Conv[uint32](n)
	if err != nil {
		panic(fmt.Errorf("types: %s info overflow: %w", what, err))
	}
	return slot
}

func cloneParams(params []Param) []Param {
	if len(params) == 0 {
		return nil
	}
	out := make([]Param, len(params))
	copy(out, params)
	return out
}
