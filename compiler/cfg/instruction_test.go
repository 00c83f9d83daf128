package cfg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rein-lang/rein/compiler/ast"
	"github.com/rein-lang/rein/compiler/tp"
)

func TestAllocVar(t *testing.T) {
	c := New("alloc")
	d := varDecl("a")

	i := NewAllocVar(c, d)

	assert.Same(t, d, i.Decl())
	assert.Equal(t, tp.LValue{X: tInt}, i.Type())
	assert.Equal(t, LocDecl, i.Loc().Kind())

	require.Panics(t, func() { NewAllocVar(c, nil) })
}

func TestAllocTmp(t *testing.T) {
	c := New("alloc")

	e := &ast.MaterializeExpr{}
	e.Type = tInt

	i := NewAllocTmp(c, e)

	assert.Equal(t, tp.LValue{X: tInt}, i.Type())

	// the temporary is initialized by a store right after
	lit := NewIntegerLiteral(c, intLit(5))
	st := NewStoreMaterialize(c, e, lit, i)

	assert.True(t, st.IsInitialization())
	assert.Same(t, i, st.Dest().(*AllocTmp))
}

func TestAllocArray(t *testing.T) {
	c := New("alloc")
	e := &ast.TupleShuffleExpr{}

	i := NewAllocArray(c, e, tInt, 3)

	assert.Equal(t, tInt, i.ElementType())
	assert.Equal(t, 3, i.NumElements())
	assert.Equal(t, tp.Tuple{Elems: []tp.Type{tp.ObjectPointer{}, tp.LValue{X: tInt}}}, i.Type())

	// both results are addressed through tuple_element
	hdr := NewTupleElementTyped(c, tp.ObjectPointer{}, i, 0)
	elt := NewTupleElementTyped(c, tp.LValue{X: tInt}, i, 1)

	assert.Same(t, i, hdr.Operand().(*AllocArray))
	assert.Equal(t, 1, elt.FieldNo())

	// zero length is allowed
	z := NewAllocArray(c, e, tInt, 0)
	assert.Equal(t, 0, z.NumElements())

	require.Panics(t, func() { NewAllocArray(c, e, tInt, -1) })
}

func TestApplyTrailingStorage(t *testing.T) {
	c := New("apply")

	f := &ast.FuncDecl{Name: "f", Type: tp.Func{In: []tp.Type{tInt, tInt}, Out: []tp.Type{tInt}}}

	ref := &ast.DeclRefExpr{Decl: f}
	ref.Type = f.Type

	ae := &ast.ApplyExpr{}
	ae.Type = tInt

	callee := NewConstantRef(c, ref)
	a := NewIntegerLiteral(c, intLit(1))
	b := NewIntegerLiteral(c, intLit(2))

	args := []Value{a, b}

	i := NewApply(c, ae, callee, args)

	assert.Same(t, callee, i.Callee().(*ConstantRef))
	require.Len(t, i.Arguments(), 2)
	assert.Same(t, a, i.Arguments()[0].(*IntegerLiteral))
	assert.Same(t, b, i.Arguments()[1].(*IntegerLiteral))

	// result type is the callee's return type
	assert.Equal(t, tp.Type(tInt), i.Type())

	// the instruction owns its operand storage
	args[0] = nil
	assert.Same(t, a, i.Arguments()[0].(*IntegerLiteral))

	require.Panics(t, func() { NewApply(c, ae, nil, nil) })
	require.Panics(t, func() { NewApply(c, ae, callee, []Value{nil}) })
	require.Panics(t, func() { NewApply(c, ae, a, nil) }) // callee is not a function
}

func TestConstantRef(t *testing.T) {
	c := New("ref")

	f := &ast.FuncDecl{Name: "print", Type: tp.Func{In: []tp.Type{tInt}}}

	ref := &ast.DeclRefExpr{Decl: f}
	ref.Type = f.Type

	i := NewConstantRef(c, ref)

	assert.Same(t, ref, i.Expr())
	assert.Same(t, f, i.Decl().(*ast.FuncDecl))
}

func TestLiteralValues(t *testing.T) {
	c := New("lit")

	il := NewIntegerLiteral(c, intLit(42))
	assert.Equal(t, int64(42), il.Value())
	assert.Equal(t, tp.Type(tInt), il.Type())

	fe := &ast.FloatLiteralExpr{Value: 2.5}
	fe.Type = tp.Float{Bits: 64}
	fl := NewFloatLiteral(c, fe)
	assert.Equal(t, 2.5, fl.Value())

	ce := &ast.CharacterLiteralExpr{Value: 'x'}
	ce.Type = tp.Char{}
	cl := NewCharacterLiteral(c, ce)
	assert.Equal(t, 'x', cl.Value())

	se := &ast.StringLiteralExpr{Value: "hi"}
	se.Type = tp.String{}
	sl := NewStringLiteral(c, se)
	assert.Equal(t, "hi", sl.Value())
}

func TestLoad(t *testing.T) {
	c := New("load")

	a := NewAllocVar(c, varDecl("a"))
	i := NewLoad(c, loadExpr(tInt), a)

	assert.Same(t, a, i.LValue().(*AllocVar))
	assert.Equal(t, tp.Type(tInt), i.Type())

	require.Panics(t, func() { NewLoad(c, nil, a) })
	require.Panics(t, func() { NewLoad(c, loadExpr(tInt), nil) })
}

func TestStoreVariants(t *testing.T) {
	c := New("store")

	d := varDecl("a")
	a := NewAllocVar(c, d)
	v := NewIntegerLiteral(c, intLit(1))

	init := NewStoreInit(c, d, v, a)
	assert.True(t, init.IsInitialization())
	assert.Equal(t, tp.Type(tp.Unit{}), init.Type())
	assert.Equal(t, LocDecl, init.Loc().Kind())

	as := &ast.AssignStmt{}
	st := NewStoreAssign(c, as, v, a)
	assert.False(t, st.IsInitialization())
	assert.Equal(t, LocStmt, st.Loc().Kind())

	me := &ast.MaterializeExpr{}
	me.Type = tInt
	mt := NewStoreMaterialize(c, me, v, NewAllocTmp(c, me))
	assert.True(t, mt.IsInitialization())

	sh := NewStoreShuffle(c, &ast.TupleShuffleExpr{}, v, a)
	assert.True(t, sh.IsInitialization())

	assert.Same(t, v, st.Src().(*IntegerLiteral))
	assert.Same(t, a, st.Dest().(*AllocVar))

	require.Panics(t, func() { NewStoreInit(c, d, nil, a) })
	require.Panics(t, func() { NewStoreInit(c, d, v, nil) })
	require.Panics(t, func() { NewStoreAssign(c, nil, v, a) })
}

func TestTypeConversion(t *testing.T) {
	c := New("conv")

	u64 := tp.Int{Bits: 64, Signed: false}

	e := &ast.ImplicitConversionExpr{}
	e.Type = u64

	v := NewIntegerLiteral(c, intLit(1))
	i := NewTypeConversion(c, e, v)

	assert.Same(t, v, i.Operand().(*IntegerLiteral))
	assert.Equal(t, tp.Type(u64), i.Type())
	assert.NotEqual(t, v.Type(), i.Type())
}

func TestTupleAndElements(t *testing.T) {
	c := New("tuple")

	x := NewIntegerLiteral(c, intLit(1))

	ye := &ast.FloatLiteralExpr{Value: 1.5}
	ye.Type = tp.Float{Bits: 64}
	y := NewFloatLiteral(c, ye)

	te := &ast.TupleExpr{}
	te.Type = tp.Tuple{Elems: []tp.Type{x.Type(), y.Type()}}

	elems := []Value{x, y}
	i := NewTuple(c, te, elems)

	require.Len(t, i.Elements(), 2)
	assert.Same(t, x, i.Elements()[0].(*IntegerLiteral))
	assert.Same(t, y, i.Elements()[1].(*FloatLiteral))
	assert.Equal(t, tp.Tuple{Elems: []tp.Type{tInt, tp.Float{Bits: 64}}}, i.Type())

	// operand storage is owned, the caller's slice is dead after create
	elems[1] = nil
	assert.Same(t, y, i.Elements()[1].(*FloatLiteral))

	e0 := NewTupleElement(c, tupleElemExpr(tInt, 0), i, 0)
	e1 := NewTupleElement(c, tupleElemExpr(tp.Float{Bits: 64}, 1), i, 1)

	assert.Equal(t, x.Type(), e0.Type())
	assert.Equal(t, y.Type(), e1.Type())
	assert.Same(t, i, e0.Operand().(*Tuple))
	assert.Same(t, i, e1.Operand().(*Tuple))

	require.Panics(t, func() { NewTupleElement(c, tupleElemExpr(tInt, 2), i, 2) })
	require.Panics(t, func() { NewTupleElementTyped(c, tInt, i, -1) })
	require.Panics(t, func() { NewTuple(c, te, []Value{nil}) })
}

func tupleElemExpr(t tp.Type, field int) *ast.TupleElementExpr {
	e := &ast.TupleElementExpr{FieldNo: field}
	e.Type = t

	return e
}

func TestScalarToTuple(t *testing.T) {
	c := New("s2t")

	e := &ast.ScalarToTupleExpr{}
	e.Type = tp.Tuple{Elems: []tp.Type{tInt}}

	v := NewIntegerLiteral(c, intLit(1))
	i := NewScalarToTuple(c, e, v)

	assert.Same(t, v, i.Operand().(*IntegerLiteral))
	assert.Equal(t, tp.Type(tp.Tuple{Elems: []tp.Type{tInt}}), i.Type())
}

func TestTypeOf(t *testing.T) {
	c := New("typeof")

	e := &ast.TypeOfExpr{Instance: tInt}
	e.Type = tp.Metatype{X: tInt}

	i := NewTypeOf(c, e)

	assert.Equal(t, tp.Type(tp.Metatype{X: tInt}), i.MetaType())
	assert.Same(t, e, i.Expr())
}

func TestIndexLValue(t *testing.T) {
	c := New("index")

	e := &ast.TupleShuffleExpr{}

	arr := NewAllocArray(c, e, tInt, 4)
	first := NewTupleElementTyped(c, tp.LValue{X: tInt}, arr, 1)

	i := NewIndexLValue(c, e, first, 3)

	assert.Same(t, first, i.Operand().(*TupleElement))
	assert.Equal(t, 3, i.Index())

	// same lvalue type, offset by the stride
	assert.Equal(t, first.Type(), i.Type())

	v := NewIntegerLiteral(c, intLit(0))
	require.Panics(t, func() { NewIndexLValue(c, e, v, 0) })
}

func TestZeroValue(t *testing.T) {
	c := New("zero")
	d := &ast.VarDecl{Name: "a", Type: tInt}

	i := NewZeroValue(c, d)

	assert.Equal(t, tp.Type(tInt), i.Type())
	assert.Equal(t, LocDecl, i.Loc().Kind())
}

func TestTlogAppend(t *testing.T) {
	c := New("enc")

	i := NewAllocVar(c, varDecl("a"))

	b := KindAllocVar.TlogAppend(nil)
	assert.Contains(t, string(b), "alloc_var")

	b = i.TlogAppend(nil)
	assert.Contains(t, string(b), "alloc_var")
	assert.Contains(t, string(b), "&i64")
}
