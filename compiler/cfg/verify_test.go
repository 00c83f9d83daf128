package cfg

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rein-lang/rein/compiler/ast"
)

// wellFormed builds var a = 0; return a with every block closed.
func wellFormed() *CFG {
	c := New("ok")
	b := c.NewBlock()

	d := varDecl("a")
	a := NewAllocVar(c, d)
	v := NewIntegerLiteral(c, intLit(0))
	st := NewStoreInit(c, d, v, a)
	l := NewLoad(c, loadExpr(tInt), a)
	r := NewReturn(c, &ast.ReturnStmt{}, l)

	for _, i := range []Instruction{a, v, st, l, r} {
		b.Append(i)
	}

	return c
}

func TestVerifyOK(t *testing.T) {
	ctx := context.Background()

	err := Verify(ctx, wellFormed())
	require.NoError(t, err)
}

func TestVerifyEmptyCFG(t *testing.T) {
	err := Verify(context.Background(), New("empty"))
	assert.Error(t, err)
}

func TestVerifyOpenBlock(t *testing.T) {
	c := New("open")
	b := c.NewBlock()

	b.Append(NewIntegerLiteral(c, intLit(0)))

	err := Verify(context.Background(), c)
	assert.ErrorContains(t, err, "open block")
}

func TestVerifyCrossCFGSuccessor(t *testing.T) {
	c := New("a")
	other := New("b")

	foreign := other.NewBlock()
	foreign.Append(NewUnreachable(other))

	b := c.NewBlock()
	b.Append(NewBranch(c, foreign))

	err := Verify(context.Background(), c)
	assert.ErrorContains(t, err, "different cfg")
}

func TestVerifyDanglingOperand(t *testing.T) {
	c := wellFormed()
	b := c.Entry()

	// detach the alloc the load still reads through
	b.First().RemoveFromParent()

	err := Verify(context.Background(), c)
	assert.ErrorContains(t, err, "dangling operand")
}

func TestVerifyErasedOperand(t *testing.T) {
	c := New("erased")
	b := c.NewBlock()

	d := varDecl("a")
	a := NewAllocVar(c, d)
	l := NewLoad(c, loadExpr(tInt), a)
	r := NewReturn(c, &ast.ReturnStmt{}, l)

	b.Append(a)
	b.Append(l)
	b.Append(r)

	a.EraseFromParent()

	err := Verify(context.Background(), c)
	assert.Error(t, err)
}

func TestVerifyStoreDestNotLValue(t *testing.T) {
	c := New("store")
	b := c.NewBlock()

	v := NewIntegerLiteral(c, intLit(1))
	w := NewIntegerLiteral(c, intLit(2))
	st := NewStoreAssign(c, &ast.AssignStmt{}, v, w)

	b.Append(v)
	b.Append(w)
	b.Append(st)
	b.Append(NewUnreachable(c))

	err := Verify(context.Background(), c)
	assert.ErrorContains(t, err, "not an lvalue")
}

func TestVerifyLoadNotLValue(t *testing.T) {
	c := New("load")
	b := c.NewBlock()

	v := NewIntegerLiteral(c, intLit(1))
	l := NewLoad(c, loadExpr(tInt), v)
	r := NewReturn(c, &ast.ReturnStmt{}, l)

	b.Append(v)
	b.Append(l)
	b.Append(r)

	err := Verify(context.Background(), c)
	assert.ErrorContains(t, err, "not an lvalue")
}

func TestVerifyLoadPointeeMismatch(t *testing.T) {
	c := New("load")
	b := c.NewBlock()

	// alloc of &i64 read back as bool
	a := NewAllocVar(c, varDecl("a"))
	l := NewLoad(c, loadExpr(tBool), a)
	r := NewReturn(c, &ast.ReturnStmt{}, l)

	b.Append(a)
	b.Append(l)
	b.Append(r)

	err := Verify(context.Background(), c)
	assert.ErrorContains(t, err, "pointee")
}

func TestVerifyCondNotBool(t *testing.T) {
	c := New("cond")

	e := c.NewBlock()
	t1 := c.NewBlock()
	t2 := c.NewBlock()

	t1.Append(NewUnreachable(c))
	t2.Append(NewUnreachable(c))

	v := NewIntegerLiteral(c, intLit(1))
	e.Append(v)
	e.Append(NewCondBranch(c, nil, v, t1, t2))

	err := Verify(context.Background(), c)
	assert.ErrorContains(t, err, "not boolean")
}
