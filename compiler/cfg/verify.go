package cfg

import (
	"context"

	"github.com/rein-lang/rein/compiler/tp"
	"tlog.app/go/errors"
	"tlog.app/go/tlog"
)

// Verify checks structural well-formedness of a finished CFG: block
// membership, terminator placement, successor edges, operand presence.
// It does not type-check beyond structure, that is the checker's job
// upstream. Violations here are builder bugs, not user errors.
func Verify(ctx context.Context, c *CFG) (err error) {
	tr, ctx := tlog.SpawnFromContextAndWrap(ctx, "cfg: verify", "func", c.Name)
	defer tr.Finish("err", &err)

	if len(c.Blocks) == 0 {
		return errors.New("no blocks")
	}

	for _, b := range c.Blocks {
		err = verifyBlock(ctx, c, b)
		if err != nil {
			return errors.Wrap(err, "bb%d", b.id)
		}
	}

	return nil
}

func verifyBlock(ctx context.Context, c *CFG, b *Block) (err error) {
	if b.cfg != c {
		return errors.New("block of a different cfg")
	}

	t := b.Terminator()
	if t == nil {
		return errors.New("open block")
	}

	n := 0

	for i := b.First(); i != nil; i = i.Next() {
		if i.Parent() != b {
			return errors.New("%%%d %v: wrong parent", i.header().id, i.Kind())
		}
		if i.Kind().IsTerminator() && i != b.Last() {
			return errors.New("%%%d %v: terminator is not last", i.header().id, i.Kind())
		}

		err = verifyInstr(i)
		if err != nil {
			return errors.Wrap(err, "%%%d %v", i.header().id, i.Kind())
		}

		n++
	}

	if n != b.Len() {
		return errors.New("list length mismatch: %d != %d", n, b.Len())
	}

	for _, s := range t.Successors() {
		d := s.Block()
		if d == nil {
			return errors.New("nil successor")
		}
		if d.cfg != c {
			return errors.New("successor bb%d of a different cfg", d.id)
		}
	}

	return nil
}

func verifyInstr(i Instruction) error {
	for _, op := range operands(i) {
		if op == nil {
			return errors.New("nil operand")
		}

		oi, ok := op.(Instruction)
		if !ok {
			continue
		}

		if oi.Kind() == KindInvalid {
			return errors.New("operand was erased")
		}
		if oi.Parent() == nil {
			return errors.New("dangling operand %%%d", oi.header().id)
		}
	}

	switch x := i.(type) {
	case *Load:
		lv, ok := x.LValue().Type().(tp.LValue)
		if !ok {
			return errors.New("loaded operand is not an lvalue")
		}
		if !tp.Equal(lv.X, x.Type()) {
			return errors.New("load result %v is not the pointee of %v", x.Type(), lv)
		}
	case *Store:
		if _, ok := x.Dest().Type().(tp.LValue); !ok {
			return errors.New("store destination is not an lvalue")
		}
		if x.Type() != (tp.Unit{}) {
			return errors.New("store result is not unit")
		}
	case *TupleElement:
		if a := tp.Arity(x.Operand().Type()); a >= 0 && x.FieldNo() >= a {
			return errors.New("field %d out of range %d", x.FieldNo(), a)
		}
	case *IndexLValue:
		if _, ok := x.Operand().Type().(tp.LValue); !ok {
			return errors.New("indexed operand is not an lvalue")
		}
	case *CondBranch:
		if x.Condition().Type() != (tp.Bool{}) {
			return errors.New("condition is not boolean")
		}
	}

	return nil
}

// operands is the flat operand list of an instruction.
func operands(i Instruction) []Value {
	switch x := i.(type) {
	case *Apply:
		return append([]Value{x.Callee()}, x.Arguments()...)
	case *Load:
		return []Value{x.LValue()}
	case *Store:
		return []Value{x.Src(), x.Dest()}
	case *TypeConversion:
		return []Value{x.Operand()}
	case *Tuple:
		return x.Elements()
	case *ScalarToTuple:
		return []Value{x.Operand()}
	case *TupleElement:
		return []Value{x.Operand()}
	case *IndexLValue:
		return []Value{x.Operand()}
	case *Return:
		return []Value{x.ReturnValue()}
	case *CondBranch:
		return []Value{x.Condition()}
	default:
		return nil
	}
}
