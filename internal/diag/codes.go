package diag

import "fmt"

// Code identifies the kind of diagnostic raised by the type engine.
type Code uint16

const (
	UnknownCode Code = 0

	// Qualifier misuse: a qualifier applied somewhere the C grammar forbids it.
	QualRestrictNonPointer       Code = 1001
	QualAtomicArray              Code = 1002
	QualAtomicFunc               Code = 1003
	QualAtomicIncomplete         Code = 1004
	QualOnReturnType              Code = 1005
	QualNonOutermostArray        Code = 1006

	// Combined-type validity: a derived type combinator applied to a bad element/return type.
	ArrayIncompleteElem      Code = 2001
	ArrayFuncElem            Code = 2002
	StaticNonOutermostArray  Code = 2003
	FuncCannotReturnArray    Code = 2004
	FuncCannotReturnFunc     Code = 2005

	// Specifier builder.
	SpecCannotCombine     Code = 3001
	SpecFromTypedef       Code = 3002 // contextual note attached to SpecCannotCombine
	SpecDuplicateDeclSpec Code = 3003 // Clang dialect only; elsewhere promoted to SpecCannotCombine
	SpecInvalidTypeof     Code = 3004
	SpecMissingTypeSpec   Code = 3005
	SpecPlainComplex      Code = 3006
	SpecComplexInt        Code = 3007

	// _BitInt(N) bounds.
	BitIntSignedTooSmall   Code = 4001
	BitIntUnsignedTooSmall Code = 4002
	BitIntTooBig           Code = 4003

	// Target capability.
	TypeNotSupportedOnTarget Code = 5001
)

func (c Code) String() string {
	switch c {
	case UnknownCode:
		return "unknown"
	case QualRestrictNonPointer:
		return "restrict_non_pointer"
	case QualAtomicArray:
		return "atomic_array"
	case QualAtomicFunc:
		return "atomic_func"
	case QualAtomicIncomplete:
		return "atomic_incomplete"
	case QualOnReturnType:
		return "qual_on_ret_type"
	case QualNonOutermostArray:
		return "qualifier_non_outermost_array"
	case ArrayIncompleteElem:
		return "array_incomplete_elem"
	case ArrayFuncElem:
		return "array_func_elem"
	case StaticNonOutermostArray:
		return "static_non_outermost_array"
	case FuncCannotReturnArray:
		return "func_cannot_return_array"
	case FuncCannotReturnFunc:
		return "func_cannot_return_func"
	case SpecCannotCombine:
		return "cannot_combine_spec"
	case SpecFromTypedef:
		return "spec_from_typedef"
	case SpecDuplicateDeclSpec:
		return "duplicate_decl_spec"
	case SpecInvalidTypeof:
		return "invalid_typeof"
	case SpecMissingTypeSpec:
		return "missing_type_specifier"
	case SpecPlainComplex:
		return "plain_complex"
	case SpecComplexInt:
		return "complex_int"
	case BitIntSignedTooSmall:
		return "signed_bit_int_too_small"
	case BitIntUnsignedTooSmall:
		return "unsigned_bit_int_too_small"
	case BitIntTooBig:
		return "bit_int_too_big"
	case TypeNotSupportedOnTarget:
		return "type_not_supported_on_target"
	default:
		return fmt.Sprintf("code(%d)", uint16(c))
	}
}
