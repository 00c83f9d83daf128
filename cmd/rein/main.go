package main

import (
	"context"
	"fmt"
	"os"

	"nikand.dev/go/cli"
	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/rein-lang/rein/compiler/ast"
	"github.com/rein-lang/rein/compiler/cfg"
	"github.com/rein-lang/rein/compiler/tp"
)

func main() {
	irCmd := &cli.Command{
		Name:        "ir",
		Description: "lower the built-in sample function and dump its cfg",
		Action:      irAct,
	}

	app := &cli.Command{
		Name:        "rein",
		Description: "rein is a tool for working with rein source code",
		Commands: []*cli.Command{
			irCmd,
		},
	}

	cli.RunAndExit(app, os.Args, os.Environ())
}

func irAct(c *cli.Command) (err error) {
	ctx := context.Background()
	ctx = tlog.ContextWithSpan(ctx, tlog.Root())

	g := sample()

	err = cfg.Verify(ctx, g)
	if err != nil {
		return errors.Wrap(err, "verify")
	}

	b, err := cfg.Format(ctx, nil, g)
	if err != nil {
		return errors.Wrap(err, "format")
	}

	fmt.Printf("%s", b)

	return nil
}

// sample lowers the equivalent of
//
//	var x = 42
//	if x == 42 { return x }
//	return 0
//
// by hand. The front end takes over this job once it lowers whole
// functions.
func sample() *cfg.CFG {
	i64 := tp.Int{Bits: 64, Signed: true}

	xd := &ast.VarDecl{Name: "x", Type: i64, HasInit: true}
	eq := &ast.FuncDecl{Name: "==", Type: tp.Func{In: []tp.Type{i64, i64}, Out: []tp.Type{tp.Bool{}}}}

	lit := func(v int64) *ast.IntegerLiteralExpr {
		e := &ast.IntegerLiteralExpr{Text: fmt.Sprintf("%d", v), Value: v}
		e.Type = i64

		return e
	}

	loadx := &ast.LoadExpr{}
	loadx.Type = i64

	eqref := &ast.DeclRefExpr{Decl: eq}
	eqref.Type = eq.Type

	ifs := &ast.IfStmt{}
	ret := &ast.ReturnStmt{}

	g := cfg.New("sample")

	entry := g.NewBlock()
	then := g.NewBlock()
	els := g.NewBlock()

	x := cfg.NewAllocVar(g, xd)
	v42 := cfg.NewIntegerLiteral(g, lit(42))
	st := cfg.NewStoreInit(g, xd, v42, x)

	f := cfg.NewConstantRef(g, eqref)
	lv := cfg.NewLoad(g, loadx, x)
	cmp := cfg.NewApply(g, applyExpr(tp.Bool{}), f, []cfg.Value{lv, v42})
	br := cfg.NewCondBranch(g, ifs, cmp, then, els)

	for _, i := range []cfg.Instruction{x, v42, st, f, lv, cmp, br} {
		entry.Append(i)
	}

	lv2 := cfg.NewLoad(g, loadx, x)
	then.Append(lv2)
	then.Append(cfg.NewReturn(g, ret, lv2))

	v0 := cfg.NewIntegerLiteral(g, lit(0))
	els.Append(v0)
	els.Append(cfg.NewReturn(g, ret, v0))

	return g
}

func applyExpr(t tp.Type) *ast.ApplyExpr {
	e := &ast.ApplyExpr{}
	e.Type = t

	return e
}
