package cfg

import (
	"github.com/rein-lang/rein/compiler/ast"
)

// LocKind tags the AST node category a Location points at.
type LocKind uint8

const (
	LocNone LocKind = iota
	LocDecl
	LocExpr
	LocStmt
)

// Location is a back-reference from an instruction to the AST node it
// was lowered from. The zero Location is synthetic: the instruction was
// implicitly generated and has no source counterpart.
//
// Accessing a real location with the wrong category is a bug in the
// caller and panics. A synthetic location answers nil to everything.
type Location struct {
	kind LocKind
	node ast.Node
}

func DeclLoc(d ast.Decl) Location {
	if d == nil {
		return Location{}
	}

	return Location{kind: LocDecl, node: d}
}

func ExprLoc(e ast.Expr) Location {
	if e == nil {
		return Location{}
	}

	return Location{kind: LocExpr, node: e}
}

func StmtLoc(s ast.Stmt) Location {
	if s == nil {
		return Location{}
	}

	return Location{kind: LocStmt, node: s}
}

func (l Location) Kind() LocKind     { return l.kind }
func (l Location) IsSynthetic() bool { return l.kind == LocNone }

func (l Location) Decl() ast.Decl {
	if l.kind == LocNone {
		return nil
	}
	if l.kind != LocDecl {
		panic("cfg: location is not a decl")
	}

	return l.node.(ast.Decl)
}

func (l Location) Expr() ast.Expr {
	if l.kind == LocNone {
		return nil
	}
	if l.kind != LocExpr {
		panic("cfg: location is not an expr")
	}

	return l.node.(ast.Expr)
}

func (l Location) Stmt() ast.Stmt {
	if l.kind == LocNone {
		return nil
	}
	if l.kind != LocStmt {
		panic("cfg: location is not a stmt")
	}

	return l.node.(ast.Stmt)
}

// LocDeclAs returns the declaration the instruction was lowered from,
// or nil if the location is synthetic or holds a different decl kind.
// Panics if the location is an expr or stmt.
func LocDeclAs[T ast.Decl](i Instruction) T {
	d, _ := i.Loc().Decl().(T)
	return d
}

// LocExprAs returns the expression the instruction was lowered from,
// or nil if the location is synthetic or holds a different expr kind.
// Panics if the location is a decl or stmt.
func LocExprAs[T ast.Expr](i Instruction) T {
	e, _ := i.Loc().Expr().(T)
	return e
}

// LocStmtAs returns the statement the instruction was lowered from,
// or nil if the location is synthetic or holds a different stmt kind.
// Panics if the location is a decl or expr.
func LocStmtAs[T ast.Stmt](i Instruction) T {
	s, _ := i.Loc().Stmt().(T)
	return s
}
