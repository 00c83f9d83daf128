package cfg

import (
	"github.com/rein-lang/rein/compiler/ast"
	"github.com/rein-lang/rein/compiler/tp"
)

// Successor is one control-flow edge out of a terminator.
type Successor struct {
	block *Block
}

func (s Successor) Block() *Block { return s.block }

// TermInst ends a basic block and names its outgoing edges. A block
// holding one is closed; nothing can be appended after it.
type TermInst interface {
	Instruction

	// Successors is the ordered edge view. The order is fixed per
	// variant. The slice aliases the terminator's own storage; edges
	// change through the variant's setters, not through the slice.
	Successors() []Successor
}

// Unreachable marks a position that is undefined to execute, such as
// the fall-through of a call that never returns. Always synthetic.
type Unreachable struct {
	inst
}

func NewUnreachable(c *CFG) *Unreachable {
	i := &Unreachable{}
	i.init(c, i, KindUnreachable, Location{}, tp.Unit{})

	return i
}

func (i *Unreachable) Successors() []Successor { return nil }

// Return gives the function result back to the caller. The value is
// never nil: unit results are returned as an explicit unit value.
type Return struct {
	inst

	value Value
}

func NewReturn(c *CFG, s *ast.ReturnStmt, value Value) *Return {
	if s == nil {
		panic("cfg: return of nil stmt")
	}
	if value == nil {
		panic("cfg: return of nil value")
	}

	i := &Return{value: value}
	i.init(c, i, KindReturn, StmtLoc(s), tp.Unit{})

	return i
}

func (i *Return) ReturnValue() Value { return i.value }

func (i *Return) Successors() []Successor { return nil }

// Branch jumps unconditionally to dest.
type Branch struct {
	inst

	dest [1]Successor

	// args is reserved storage for branch-time block arguments.
	// Nothing sets or reads it yet.
	args []Value
}

func NewBranch(c *CFG, dest *Block) *Branch {
	if dest == nil {
		panic("cfg: branch to nil block")
	}

	i := &Branch{}
	i.dest[0] = Successor{block: dest}
	i.init(c, i, KindBranch, Location{}, tp.Unit{})

	return i
}

func (i *Branch) DestBB() *Block { return i.dest[0].block }

func (i *Branch) Successors() []Successor { return i.dest[:] }

// CondBranch transfers control to trueBB or falseBB depending on a
// boolean condition. Both edges may name the same block.
type CondBranch struct {
	inst

	cond Value

	dests [2]Successor
}

func NewCondBranch(c *CFG, s ast.Stmt, cond Value, trueBB, falseBB *Block) *CondBranch {
	if cond == nil {
		panic("cfg: cond_br of nil condition")
	}
	if trueBB == nil || falseBB == nil {
		panic("cfg: cond_br to nil block")
	}

	i := &CondBranch{cond: cond}
	i.dests[0] = Successor{block: trueBB}
	i.dests[1] = Successor{block: falseBB}
	i.init(c, i, KindCondBranch, StmtLoc(s), tp.Unit{})

	return i
}

func (i *CondBranch) Condition() Value { return i.cond }

func (i *CondBranch) TrueBB() *Block  { return i.dests[0].block }
func (i *CondBranch) FalseBB() *Block { return i.dests[1].block }

func (i *CondBranch) SetTrueBB(b *Block)  { i.dests[0].block = b }
func (i *CondBranch) SetFalseBB(b *Block) { i.dests[1].block = b }

func (i *CondBranch) Successors() []Successor { return i.dests[:] }
