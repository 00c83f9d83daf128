package cfg

import (
	"tlog.app/go/tlog/tlwire"

	"github.com/rein-lang/rein/compiler/ast"
	"github.com/rein-lang/rein/compiler/tp"
)

// Instruction is a Value that lives in a basic block.
//
// An instruction is either detached (Parent() == nil) or a member of
// exactly one block. The parent pointer is maintained by the block's
// list operations only.
type Instruction interface {
	Value

	Parent() *Block
	Loc() Location

	Prev() Instruction
	Next() Instruction

	// RemoveFromParent unlinks the instruction from its block but
	// keeps it alive. Panics if the instruction is detached.
	RemoveFromParent()

	// EraseFromParent unlinks the instruction and retires it. The
	// header is poisoned so late uses trip on KindInvalid; the
	// storage itself is reclaimed by the garbage collector. No
	// attached instruction may still reference the erased one, the
	// verifier reports such operands as dangling.
	EraseFromParent()

	header() *inst
}

// inst is the header shared by every instruction variant.
type inst struct {
	self Instruction

	id   int
	kind ValueKind
	typ  tp.Type

	parent *Block
	loc    Location

	prev, next Instruction
}

func (i *inst) init(c *CFG, self Instruction, kind ValueKind, loc Location, typ tp.Type) {
	if c == nil {
		panic("cfg: nil cfg context")
	}

	i.self = self
	i.id = c.nextID()
	i.kind = kind
	i.loc = loc
	i.typ = typ
}

func (i *inst) Kind() ValueKind   { return i.kind }
func (i *inst) Type() tp.Type     { return i.typ }
func (i *inst) Parent() *Block    { return i.parent }
func (i *inst) Loc() Location     { return i.loc }
func (i *inst) Prev() Instruction { return i.prev }
func (i *inst) Next() Instruction { return i.next }

func (i *inst) header() *inst { return i }

func (i *inst) TlogAppend(b []byte) []byte {
	var e tlwire.Encoder

	b = e.AppendMap(b, 3)
	b = e.AppendKeyInt64(b, "id", int64(i.id))

	b = e.AppendKey(b, "kind")
	b = i.kind.TlogAppend(b)

	b = e.AppendKey(b, "type")

	if i.typ == nil {
		b = e.AppendNil(b)
	} else {
		b = e.AppendFormat(b, "%v", i.typ)
	}

	return b
}

func (i *inst) RemoveFromParent() {
	if i.parent == nil {
		panic("cfg: instruction is not in a block")
	}

	i.parent.remove(i.self)
}

func (i *inst) EraseFromParent() {
	i.RemoveFromParent()

	i.kind = KindInvalid
	i.typ = nil
	i.loc = Location{}
	i.self = nil
}

func IsInstruction(v Value) bool { return v != nil && v.Kind().IsInstruction() }
func IsAlloc(v Value) bool       { return v != nil && v.Kind().IsAlloc() }
func IsTerminator(v Value) bool  { return v != nil && v.Kind().IsTerminator() }

//
// allocation instructions
//

// AllocVar allocates storage for a local variable declaration.
// It produces the lvalue of the variable.
type AllocVar struct {
	inst

	decl *ast.VarDecl
}

func NewAllocVar(c *CFG, d *ast.VarDecl) *AllocVar {
	if d == nil {
		panic("cfg: alloc_var of nil decl")
	}

	i := &AllocVar{decl: d}
	i.init(c, i, KindAllocVar, DeclLoc(d), tp.LValue{X: d.Type})

	return i
}

func (i *AllocVar) Decl() *ast.VarDecl { return i.decl }

// AllocTmp allocates a temporary backing an rvalue-to-lvalue
// materialization. An initialization store into it follows in
// program order.
type AllocTmp struct {
	inst
}

func NewAllocTmp(c *CFG, e *ast.MaterializeExpr) *AllocTmp {
	if e == nil {
		panic("cfg: alloc_tmp of nil expr")
	}

	i := &AllocTmp{}
	i.init(c, i, KindAllocTmp, ExprLoc(e), tp.LValue{X: e.ExprType()})

	return i
}

// AllocArray allocates n elements of uninitialized array memory.
// It produces a pair: the object header pointer and the lvalue of the
// first element, both addressed through tuple_element. n may be zero,
// then the element lvalue must not be dereferenced.
type AllocArray struct {
	inst

	elem tp.Type
	n    int
}

func NewAllocArray(c *CFG, e *ast.TupleShuffleExpr, elem tp.Type, n int) *AllocArray {
	if e == nil {
		panic("cfg: alloc_array of nil expr")
	}
	if n < 0 {
		panic("cfg: alloc_array of negative length")
	}

	i := &AllocArray{elem: elem, n: n}
	i.init(c, i, KindAllocArray, ExprLoc(e), tp.Tuple{Elems: []tp.Type{tp.ObjectPointer{}, tp.LValue{X: elem}}})

	return i
}

func (i *AllocArray) ElementType() tp.Type { return i.elem }
func (i *AllocArray) NumElements() int     { return i.n }

//
// computation instructions
//

// Apply is the application of arguments to a function value.
type Apply struct {
	inst

	callee Value
	args   []Value
}

// NewApply sizes the operand storage once and copies args into it, so
// the caller keeps no alias into the instruction.
func NewApply(c *CFG, e *ast.ApplyExpr, callee Value, args []Value) *Apply {
	if e == nil {
		panic("cfg: apply of nil expr")
	}
	if callee == nil {
		panic("cfg: apply of nil callee")
	}

	ft, ok := callee.Type().(tp.Func)
	if !ok {
		panic("cfg: apply callee is not a function")
	}

	a := make([]Value, len(args))
	for j, arg := range args {
		if arg == nil {
			panic("cfg: apply of nil argument")
		}

		a[j] = arg
	}

	i := &Apply{callee: callee, args: a}
	i.init(c, i, KindApply, ExprLoc(e), ft.Result())

	return i
}

func (i *Apply) Callee() Value      { return i.callee }
func (i *Apply) Arguments() []Value { return i.args }

// ConstantRef refers to a constant declaration and evaluates to its value.
type ConstantRef struct {
	inst
}

func NewConstantRef(c *CFG, e *ast.DeclRefExpr) *ConstantRef {
	if e == nil {
		panic("cfg: constant_ref of nil expr")
	}

	i := &ConstantRef{}
	i.init(c, i, KindConstantRef, ExprLoc(e), e.ExprType())

	return i
}

func (i *ConstantRef) Expr() *ast.DeclRefExpr { return LocExprAs[*ast.DeclRefExpr](i) }
func (i *ConstantRef) Decl() ast.ValueDecl    { return i.Expr().Decl }

// ZeroValue is the default value of a variable declared without an
// explicit initializer.
type ZeroValue struct {
	inst
}

func NewZeroValue(c *CFG, d *ast.VarDecl) *ZeroValue {
	if d == nil {
		panic("cfg: zero_value of nil decl")
	}

	i := &ZeroValue{}
	i.init(c, i, KindZeroValue, DeclLoc(d), d.Type)

	return i
}

// Literal instructions keep no payload of their own: the value is read
// back from the AST node on demand.

type IntegerLiteral struct {
	inst
}

func NewIntegerLiteral(c *CFG, e *ast.IntegerLiteralExpr) *IntegerLiteral {
	if e == nil {
		panic("cfg: integer_literal of nil expr")
	}

	i := &IntegerLiteral{}
	i.init(c, i, KindIntegerLiteral, ExprLoc(e), e.ExprType())

	return i
}

func (i *IntegerLiteral) Expr() *ast.IntegerLiteralExpr {
	return LocExprAs[*ast.IntegerLiteralExpr](i)
}

func (i *IntegerLiteral) Value() int64 { return i.Expr().Value }

type FloatLiteral struct {
	inst
}

func NewFloatLiteral(c *CFG, e *ast.FloatLiteralExpr) *FloatLiteral {
	if e == nil {
		panic("cfg: float_literal of nil expr")
	}

	i := &FloatLiteral{}
	i.init(c, i, KindFloatLiteral, ExprLoc(e), e.ExprType())

	return i
}

func (i *FloatLiteral) Expr() *ast.FloatLiteralExpr {
	return LocExprAs[*ast.FloatLiteralExpr](i)
}

func (i *FloatLiteral) Value() float64 { return i.Expr().Value }

type CharacterLiteral struct {
	inst
}

func NewCharacterLiteral(c *CFG, e *ast.CharacterLiteralExpr) *CharacterLiteral {
	if e == nil {
		panic("cfg: character_literal of nil expr")
	}

	i := &CharacterLiteral{}
	i.init(c, i, KindCharacterLiteral, ExprLoc(e), e.ExprType())

	return i
}

func (i *CharacterLiteral) Expr() *ast.CharacterLiteralExpr {
	return LocExprAs[*ast.CharacterLiteralExpr](i)
}

func (i *CharacterLiteral) Value() rune { return i.Expr().Value }

type StringLiteral struct {
	inst
}

func NewStringLiteral(c *CFG, e *ast.StringLiteralExpr) *StringLiteral {
	if e == nil {
		panic("cfg: string_literal of nil expr")
	}

	i := &StringLiteral{}
	i.init(c, i, KindStringLiteral, ExprLoc(e), e.ExprType())

	return i
}

func (i *StringLiteral) Expr() *ast.StringLiteralExpr {
	return LocExprAs[*ast.StringLiteralExpr](i)
}

func (i *StringLiteral) Value() string { return i.Expr().Value }

// Load reads the value behind an lvalue.
type Load struct {
	inst

	lvalue Value
}

func NewLoad(c *CFG, e *ast.LoadExpr, lvalue Value) *Load {
	if e == nil {
		panic("cfg: load of nil expr")
	}
	if lvalue == nil {
		panic("cfg: load of nil lvalue")
	}

	i := &Load{lvalue: lvalue}
	i.init(c, i, KindLoad, ExprLoc(e), e.ExprType())

	return i
}

func (i *Load) LValue() Value { return i.lvalue }

// Store writes src through the dest lvalue. Its result is unit.
//
// All write forms lower to this one variant; the constructors differ
// only in the location they bind and whether the destination is known
// to be uninitialized. A non-initialization store implies destroying
// the previous value at dest first.
type Store struct {
	inst

	src, dest Value

	isInit bool
}

// NewStoreAssign is a store lowered from an assignment statement.
func NewStoreAssign(c *CFG, s *ast.AssignStmt, src, dest Value) *Store {
	if s == nil {
		panic("cfg: store of nil stmt")
	}

	return newStore(c, StmtLoc(s), src, dest, false)
}

// NewStoreInit is the initializing store of a variable declaration.
func NewStoreInit(c *CFG, d *ast.VarDecl, src, dest Value) *Store {
	if d == nil {
		panic("cfg: store of nil decl")
	}

	return newStore(c, DeclLoc(d), src, dest, true)
}

// NewStoreMaterialize initializes a freshly allocated temporary.
func NewStoreMaterialize(c *CFG, e *ast.MaterializeExpr, src, dest Value) *Store {
	if e == nil {
		panic("cfg: store of nil expr")
	}

	return newStore(c, ExprLoc(e), src, dest, true)
}

// NewStoreShuffle initializes tuple storage built by a shuffle.
func NewStoreShuffle(c *CFG, e *ast.TupleShuffleExpr, src, dest Value) *Store {
	if e == nil {
		panic("cfg: store of nil expr")
	}

	return newStore(c, ExprLoc(e), src, dest, true)
}

func newStore(c *CFG, loc Location, src, dest Value, isInit bool) *Store {
	if src == nil {
		panic("cfg: store of nil src")
	}
	if dest == nil {
		panic("cfg: store of nil dest")
	}

	i := &Store{src: src, dest: dest, isInit: isInit}
	i.init(c, i, KindStore, loc, tp.Unit{})

	return i
}

func (i *Store) Src() Value  { return i.src }
func (i *Store) Dest() Value { return i.dest }

func (i *Store) IsInitialization() bool { return i.isInit }

// TypeConversion changes the type of a value without changing its
// representation. Codegen emits nothing for it.
type TypeConversion struct {
	inst

	operand Value
}

func NewTypeConversion(c *CFG, e *ast.ImplicitConversionExpr, operand Value) *TypeConversion {
	if e == nil {
		panic("cfg: type_conversion of nil expr")
	}
	if operand == nil {
		panic("cfg: type_conversion of nil operand")
	}

	i := &TypeConversion{operand: operand}
	i.init(c, i, KindTypeConversion, ExprLoc(e), e.ExprType())

	return i
}

func (i *TypeConversion) Operand() Value { return i.operand }

// Tuple constructs a tuple out of its element values.
type Tuple struct {
	inst

	elems []Value
}

// NewTuple and NewShuffleTuple exist so tuples are only built for the
// two syntactic forms that produce them.
func NewTuple(c *CFG, e *ast.TupleExpr, elems []Value) *Tuple {
	if e == nil {
		panic("cfg: tuple of nil expr")
	}

	return newTuple(c, ExprLoc(e), elems)
}

func NewShuffleTuple(c *CFG, e *ast.TupleShuffleExpr, elems []Value) *Tuple {
	if e == nil {
		panic("cfg: tuple of nil expr")
	}

	return newTuple(c, ExprLoc(e), elems)
}

func newTuple(c *CFG, loc Location, elems []Value) *Tuple {
	el := make([]Value, len(elems))
	ts := make([]tp.Type, len(elems))

	for j, e := range elems {
		if e == nil {
			panic("cfg: tuple of nil element")
		}

		el[j] = e
		ts[j] = e.Type()
	}

	i := &Tuple{elems: el}
	i.init(c, i, KindTuple, loc, tp.Tuple{Elems: ts})

	return i
}

func (i *Tuple) Elements() []Value { return i.elems }

// TypeOf produces the metatype value of a static type.
type TypeOf struct {
	inst
}

func NewTypeOf(c *CFG, e *ast.TypeOfExpr) *TypeOf {
	if e == nil {
		panic("cfg: type_of of nil expr")
	}

	i := &TypeOf{}
	i.init(c, i, KindTypeOf, ExprLoc(e), tp.Metatype{X: e.Instance})

	return i
}

func (i *TypeOf) Expr() *ast.TypeOfExpr { return LocExprAs[*ast.TypeOfExpr](i) }
func (i *TypeOf) MetaType() tp.Type     { return i.typ }

// ScalarToTuple promotes a scalar into a tuple, defaulting the
// remaining fields per the AST node.
type ScalarToTuple struct {
	inst

	operand Value
}

func NewScalarToTuple(c *CFG, e *ast.ScalarToTupleExpr, operand Value) *ScalarToTuple {
	if e == nil {
		panic("cfg: scalar_to_tuple of nil expr")
	}
	if operand == nil {
		panic("cfg: scalar_to_tuple of nil operand")
	}

	i := &ScalarToTuple{operand: operand}
	i.init(c, i, KindScalarToTuple, ExprLoc(e), e.ExprType())

	return i
}

func (i *ScalarToTuple) Operand() Value { return i.operand }

// TupleElement extracts a numbered field out of a tuple-typed value.
type TupleElement struct {
	inst

	operand Value
	fieldNo int
}

func NewTupleElement(c *CFG, e *ast.TupleElementExpr, operand Value, fieldNo int) *TupleElement {
	if e == nil {
		panic("cfg: tuple_element of nil expr")
	}

	return newTupleElement(c, ExprLoc(e), e.ExprType(), operand, fieldNo)
}

// NewTupleElementTyped is the synthetic form used when there is no
// originating expression, such as addressing the results of alloc_array.
func NewTupleElementTyped(c *CFG, ty tp.Type, operand Value, fieldNo int) *TupleElement {
	return newTupleElement(c, Location{}, ty, operand, fieldNo)
}

func newTupleElement(c *CFG, loc Location, ty tp.Type, operand Value, fieldNo int) *TupleElement {
	if operand == nil {
		panic("cfg: tuple_element of nil operand")
	}
	if fieldNo < 0 {
		panic("cfg: tuple_element of negative field")
	}
	if a := tp.Arity(operand.Type()); a >= 0 && fieldNo >= a {
		panic("cfg: tuple_element field out of range")
	}

	i := &TupleElement{operand: operand, fieldNo: fieldNo}
	i.init(c, i, KindTupleElement, loc, ty)

	return i
}

func (i *TupleElement) Operand() Value { return i.operand }
func (i *TupleElement) FieldNo() int   { return i.fieldNo }

// IndexLValue strides an lvalue by index elements of its pointee type.
// It is used to address uniform array elements.
type IndexLValue struct {
	inst

	operand Value
	index   int
}

func NewIndexLValue(c *CFG, e *ast.TupleShuffleExpr, operand Value, index int) *IndexLValue {
	if e == nil {
		panic("cfg: index_lvalue of nil expr")
	}
	if operand == nil {
		panic("cfg: index_lvalue of nil operand")
	}
	if _, ok := operand.Type().(tp.LValue); !ok {
		panic("cfg: index_lvalue of a non-lvalue")
	}

	i := &IndexLValue{operand: operand, index: index}
	i.init(c, i, KindIndexLValue, ExprLoc(e), operand.Type())

	return i
}

func (i *IndexLValue) Operand() Value { return i.operand }
func (i *IndexLValue) Index() int     { return i.index }
