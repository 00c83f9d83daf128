package cfg

import (
	"tlog.app/go/tlog/tlwire"

	"github.com/rein-lang/rein/compiler/tp"
)

// ValueKind tags every concrete value variant.
//
// Kinds are grouped into contiguous ranges so that category membership
// (instruction, allocation, terminator) is a pair of integer compares.
// New kinds must be added inside the range they belong to.
type ValueKind uint8

const (
	KindInvalid ValueKind = iota

	// allocation instructions

	KindAllocVar
	KindAllocTmp
	KindAllocArray

	// computation

	KindApply
	KindConstantRef
	KindZeroValue
	KindIntegerLiteral
	KindFloatLiteral
	KindCharacterLiteral
	KindStringLiteral
	KindLoad
	KindStore
	KindTypeConversion
	KindTuple
	KindTypeOf
	KindScalarToTuple
	KindTupleElement
	KindIndexLValue

	// terminators

	KindUnreachable
	KindReturn
	KindBranch
	KindCondBranch

	FirstAllocKind = KindAllocVar
	LastAllocKind  = KindAllocArray

	FirstTermKind = KindUnreachable
	LastTermKind  = KindCondBranch

	FirstInstKind = KindAllocVar
	LastInstKind  = KindCondBranch
)

func (k ValueKind) IsInstruction() bool {
	return k >= FirstInstKind && k <= LastInstKind
}

func (k ValueKind) IsAlloc() bool {
	return k >= FirstAllocKind && k <= LastAllocKind
}

func (k ValueKind) IsTerminator() bool {
	return k >= FirstTermKind && k <= LastTermKind
}

func (k ValueKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}

	return "invalid"
}

func (k ValueKind) TlogAppend(b []byte) []byte {
	var e tlwire.Encoder

	return e.AppendFormat(b, "%s", k)
}

var kindNames = []string{
	KindInvalid: "invalid",

	KindAllocVar:   "alloc_var",
	KindAllocTmp:   "alloc_tmp",
	KindAllocArray: "alloc_array",

	KindApply:            "apply",
	KindConstantRef:      "constant_ref",
	KindZeroValue:        "zero_value",
	KindIntegerLiteral:   "integer_literal",
	KindFloatLiteral:     "float_literal",
	KindCharacterLiteral: "character_literal",
	KindStringLiteral:    "string_literal",
	KindLoad:             "load",
	KindStore:            "store",
	KindTypeConversion:   "type_conversion",
	KindTuple:            "tuple",
	KindTypeOf:           "type_of",
	KindScalarToTuple:    "scalar_to_tuple",
	KindTupleElement:     "tuple_element",
	KindIndexLValue:      "index_lvalue",

	KindUnreachable: "unreachable",
	KindReturn:      "return",
	KindBranch:      "br",
	KindCondBranch:  "cond_br",
}

// Value is a producer of a typed result.
// Identity is by pointer: two Values are the same iff they are the
// same object. References between instructions are plain Value
// handles; they do not own the referenced instruction, the CFG does.
type Value interface {
	Kind() ValueKind
	Type() tp.Type
}
