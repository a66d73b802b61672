// File: nodes.go
// Title: Pebble AST Node Definitions
// Description: Defines the statement and expression nodes of a parsed Pebble
//              program. Both node families are sealed: only the types in this
//              file implement Stmt and Expr.
// Author: Adam Nassar
// Version: v0.1.0
// Created: 2025-09-14
// Modified: 2025-09-14
//
// Change History:
// - 2025-09-14 v0.1.0: Initial AST node definitions

package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Node represents the base interface for all AST nodes
type Node interface {
	// String renders the node back as Pebble source
	String() string

	// Position returns the source position of the node
	Position() Position

	// Accept implements the visitor pattern
	Accept(visitor Visitor) interface{}
}

// Position represents a position in the source code
type Position struct {
	Line   int // Line number (1-based)
	Column int // Column number in runes (1-based)
	Offset int // Byte offset (0-based)
}

// String returns line:column
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Stmt is a statement: *Block, *Print, *Assign or *ExprStmt
type Stmt interface {
	Node
	stmtNode()
}

// Expr is an expression: *Num, *String or *Var
type Expr interface {
	Node
	exprNode()
}

// Block is a sequence of statements executed in order
type Block struct {
	Stmts []Stmt
	Pos   Position
}

// Print writes the values of its arguments, space separated
type Print struct {
	Args []Expr
	Pos  Position
}

// Assign binds or rebinds Name to the value of Value
type Assign struct {
	Name  string
	Value Expr
	Pos   Position
}

// ExprStmt evaluates an expression and discards the result
type ExprStmt struct {
	X   Expr
	Pos Position
}

// Num is an integer literal
type Num struct {
	Value int64
	Pos   Position
}

// String is a string literal holding the raw text between the quotes
type String struct {
	Value string
	Pos   Position
}

// Var is a variable reference
type Var struct {
	Name string
	Pos  Position
}

func (*Block) stmtNode()    {}
func (*Print) stmtNode()    {}
func (*Assign) stmtNode()   {}
func (*ExprStmt) stmtNode() {}

func (*Num) exprNode()    {}
func (*String) exprNode() {}
func (*Var) exprNode()    {}

func (b *Block) Position() Position    { return b.Pos }
func (p *Print) Position() Position    { return p.Pos }
func (a *Assign) Position() Position   { return a.Pos }
func (e *ExprStmt) Position() Position { return e.Pos }
func (n *Num) Position() Position      { return n.Pos }
func (s *String) Position() Position   { return s.Pos }
func (v *Var) Position() Position      { return v.Pos }

// String renders one statement per line
func (b *Block) String() string {
	lines := make([]string, len(b.Stmts))
	for i, s := range b.Stmts {
		lines[i] = s.String()
	}
	return strings.Join(lines, "\n")
}

func (p *Print) String() string {
	if len(p.Args) == 0 {
		return "print"
	}
	parts := make([]string, 0, len(p.Args)+1)
	parts = append(parts, "print")
	for _, a := range p.Args {
		parts = append(parts, a.String())
	}
	return strings.Join(parts, " ")
}

func (a *Assign) String() string {
	return a.Name + " = " + a.Value.String()
}

func (e *ExprStmt) String() string {
	return e.X.String()
}

func (n *Num) String() string {
	return strconv.FormatInt(n.Value, 10)
}

// String re-quotes the literal; Pebble strings have no escapes
func (s *String) String() string {
	return `"` + s.Value + `"`
}

func (v *Var) String() string {
	return v.Name
}

// Accept implementations

func (b *Block) Accept(visitor Visitor) interface{}    { return visitor.VisitBlock(b) }
func (p *Print) Accept(visitor Visitor) interface{}    { return visitor.VisitPrint(p) }
func (a *Assign) Accept(visitor Visitor) interface{}   { return visitor.VisitAssign(a) }
func (e *ExprStmt) Accept(visitor Visitor) interface{} { return visitor.VisitExprStmt(e) }
func (n *Num) Accept(visitor Visitor) interface{}      { return visitor.VisitNum(n) }
func (s *String) Accept(visitor Visitor) interface{}   { return visitor.VisitString(s) }
func (v *Var) Accept(visitor Visitor) interface{}      { return visitor.VisitVar(v) }
