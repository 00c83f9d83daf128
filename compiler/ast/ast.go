package ast

import (
	"github.com/rein-lang/rein/compiler/tp"
)

// Nodes here are the typed tree the front end produces.
// The cfg layer only holds them as opaque location handles
// and queries kind-specific data lazily.

type (
	Node interface {
		node()
	}

	Decl interface {
		Node
		declNode()
	}

	Expr interface {
		Node
		// ExprType is the type the expression evaluates to.
		ExprType() tp.Type
	}

	Stmt interface {
		Node
		stmtNode()
	}

	// ValueDecl is a declaration that binds a name to a value.
	ValueDecl interface {
		Decl
		DeclName() string
		DeclType() tp.Type
	}

	Base struct {
		Pos int
		End int
	}

	ExprBase struct {
		Base

		Type tp.Type
	}
)

func (Base) node() {}

func (e *ExprBase) ExprType() tp.Type { return e.Type }

//
// declarations
//

type (
	VarDecl struct {
		Base

		Name string
		Type tp.Type

		// HasInit is false for variables that get a default zero value.
		HasInit bool
	}

	FuncDecl struct {
		Base

		Name string
		Type tp.Func
	}
)

func (*VarDecl) declNode()  {}
func (*FuncDecl) declNode() {}

func (d *VarDecl) DeclName() string  { return d.Name }
func (d *VarDecl) DeclType() tp.Type { return d.Type }

func (d *FuncDecl) DeclName() string  { return d.Name }
func (d *FuncDecl) DeclType() tp.Type { return d.Type }

//
// expressions
//

type (
	IntegerLiteralExpr struct {
		ExprBase

		Text  string
		Value int64
	}

	FloatLiteralExpr struct {
		ExprBase

		Text  string
		Value float64
	}

	CharacterLiteralExpr struct {
		ExprBase

		Value rune
	}

	StringLiteralExpr struct {
		ExprBase

		Value string
	}

	DeclRefExpr struct {
		ExprBase

		Decl ValueDecl
	}

	ApplyExpr struct {
		ExprBase

		Fn  Expr
		Arg Expr
	}

	LoadExpr struct {
		ExprBase

		Sub Expr
	}

	// MaterializeExpr converts an rvalue to an lvalue by storing it
	// into a temporary. Type is the type of the materialized value,
	// not of its address.
	MaterializeExpr struct {
		ExprBase

		Sub Expr
	}

	ImplicitConversionExpr struct {
		ExprBase

		Sub Expr
	}

	TupleExpr struct {
		ExprBase

		Elems []Expr
	}

	// TupleShuffleExpr reorders, defaults or variadic-packs the fields
	// of Sub into a new tuple. Mapping holds the source field index per
	// destination field, or -1 for a defaulted one.
	TupleShuffleExpr struct {
		ExprBase

		Sub     Expr
		Mapping []int
	}

	TupleElementExpr struct {
		ExprBase

		Sub     Expr
		FieldNo int
	}

	ScalarToTupleExpr struct {
		ExprBase

		Sub Expr
	}

	TypeOfExpr struct {
		ExprBase

		// Instance is the static type the expression names.
		Instance tp.Type
	}
)

//
// statements
//

type (
	AssignStmt struct {
		Base

		Dest Expr
		Src  Expr
	}

	ReturnStmt struct {
		Base

		Result Expr
	}

	IfStmt struct {
		Base

		Cond Expr
		Then Stmt
		Else Stmt
	}

	WhileStmt struct {
		Base

		Cond Expr
		Body Stmt
	}

	BraceStmt struct {
		Base

		Stmts []Stmt
	}
)

func (*AssignStmt) stmtNode() {}
func (*ReturnStmt) stmtNode() {}
func (*IfStmt) stmtNode()     {}
func (*WhileStmt) stmtNode()  {}
func (*BraceStmt) stmtNode()  {}
