package cfg

import (
	"context"
	"fmt"

	"tlog.app/go/errors"
)

// Format appends a readable listing of a *CFG, *Block or Instruction
// to b. It is a debugging aid, the output is not a stable format.
func Format(ctx context.Context, b []byte, x any) ([]byte, error) {
	switch x := x.(type) {
	case *CFG:
		return formatCFG(ctx, b, x)
	case *Block:
		return formatBlock(ctx, b, x)
	case Instruction:
		return formatInstr(ctx, b, x)
	default:
		return nil, errors.New("unsupported type: %T", x)
	}
}

func formatCFG(ctx context.Context, b []byte, c *CFG) (_ []byte, err error) {
	b = fmt.Appendf(b, "func %s\n", c.Name)

	for _, bb := range c.Blocks {
		b, err = formatBlock(ctx, b, bb)
		if err != nil {
			return nil, errors.Wrap(err, "bb%d", bb.id)
		}
	}

	return b, nil
}

func formatBlock(ctx context.Context, b []byte, bb *Block) (_ []byte, err error) {
	b = fmt.Appendf(b, "bb%d:\n", bb.id)

	for i := bb.First(); i != nil; i = i.Next() {
		b, err = formatInstr(ctx, b, i)
		if err != nil {
			return nil, errors.Wrap(err, "%v", i.Kind())
		}
	}

	return b, nil
}

func formatInstr(ctx context.Context, b []byte, i Instruction) ([]byte, error) {
	switch x := i.(type) {
	case *AllocVar:
		b = fmt.Appendf(b, "  %s = alloc_var '%s'", ref(x), x.Decl().Name)
	case *AllocTmp:
		b = fmt.Appendf(b, "  %s = alloc_tmp", ref(x))
	case *AllocArray:
		b = fmt.Appendf(b, "  %s = alloc_array %v x %d", ref(x), x.ElementType(), x.NumElements())
	case *Apply:
		b = fmt.Appendf(b, "  %s = apply %s(", ref(x), ref(x.Callee()))

		for j, a := range x.Arguments() {
			if j != 0 {
				b = append(b, ", "...)
			}

			b = append(b, ref(a)...)
		}

		b = append(b, ')')
	case *ConstantRef:
		b = fmt.Appendf(b, "  %s = constant_ref '%s'", ref(x), x.Decl().DeclName())
	case *ZeroValue:
		b = fmt.Appendf(b, "  %s = zero_value", ref(x))
	case *IntegerLiteral:
		b = fmt.Appendf(b, "  %s = integer_literal %d", ref(x), x.Value())
	case *FloatLiteral:
		b = fmt.Appendf(b, "  %s = float_literal %v", ref(x), x.Value())
	case *CharacterLiteral:
		b = fmt.Appendf(b, "  %s = character_literal %q", ref(x), x.Value())
	case *StringLiteral:
		b = fmt.Appendf(b, "  %s = string_literal %q", ref(x), x.Value())
	case *Load:
		b = fmt.Appendf(b, "  %s = load %s", ref(x), ref(x.LValue()))
	case *Store:
		b = fmt.Appendf(b, "  store %s to %s", ref(x.Src()), ref(x.Dest()))

		if x.IsInitialization() {
			b = append(b, " [init]"...)
		}
	case *TypeConversion:
		b = fmt.Appendf(b, "  %s = type_conversion %s", ref(x), ref(x.Operand()))
	case *Tuple:
		b = fmt.Appendf(b, "  %s = tuple (", ref(x))

		for j, e := range x.Elements() {
			if j != 0 {
				b = append(b, ", "...)
			}

			b = append(b, ref(e)...)
		}

		b = append(b, ')')
	case *TypeOf:
		b = fmt.Appendf(b, "  %s = type_of", ref(x))
	case *ScalarToTuple:
		b = fmt.Appendf(b, "  %s = scalar_to_tuple %s", ref(x), ref(x.Operand()))
	case *TupleElement:
		b = fmt.Appendf(b, "  %s = tuple_element %s, %d", ref(x), ref(x.Operand()), x.FieldNo())
	case *IndexLValue:
		b = fmt.Appendf(b, "  %s = index_lvalue %s, %d", ref(x), ref(x.Operand()), x.Index())
	case *Unreachable:
		return fmt.Appendf(b, "  unreachable\n"), nil
	case *Return:
		return fmt.Appendf(b, "  return %s\n", ref(x.ReturnValue())), nil
	case *Branch:
		return fmt.Appendf(b, "  br bb%d\n", x.DestBB().id), nil
	case *CondBranch:
		return fmt.Appendf(b, "  cond_br %s, bb%d, bb%d\n", ref(x.Condition()), x.TrueBB().id, x.FalseBB().id), nil
	default:
		return nil, errors.New("unsupported instruction: %T", x)
	}

	b = fmt.Appendf(b, " : %v\n", i.Type())

	return b, nil
}

func ref(v Value) string {
	i, ok := v.(Instruction)
	if !ok {
		return "%?"
	}

	return fmt.Sprintf("%%%d", i.header().id)
}
