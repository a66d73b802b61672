// File: visitor.go
// Title: Pebble AST Visitor and Utilities
// Description: Visitor interface, a child-walking base visitor, Inspect for
//              closure based traversal, Dump for the tree listing printed by
//              `pebble ast`, and position-insensitive structural equality.
// Author: Adam Nassar
// Version: v0.1.0
// Created: 2025-09-14
// Modified: 2025-09-14
//
// Change History:
// - 2025-09-14 v0.1.0: Initial visitor implementation

package ast

import (
	"fmt"
	"strings"
)

// Visitor interface for traversing AST nodes using the visitor pattern
type Visitor interface {
	VisitBlock(block *Block) interface{}
	VisitPrint(stmt *Print) interface{}
	VisitAssign(stmt *Assign) interface{}
	VisitExprStmt(stmt *ExprStmt) interface{}

	VisitNum(expr *Num) interface{}
	VisitString(expr *String) interface{}
	VisitVar(expr *Var) interface{}
}

// BaseVisitor visits every child and returns nil.
// Embed it and override only the methods you need; overriding methods must
// recurse themselves if they still want the children visited.
type BaseVisitor struct {
	// Self is the outermost visitor. Children are dispatched to it so
	// overrides in the embedding type are honoured.
	Self Visitor
}

func (bv *BaseVisitor) self() Visitor {
	if bv.Self != nil {
		return bv.Self
	}
	return bv
}

func (bv *BaseVisitor) VisitBlock(block *Block) interface{} {
	for _, s := range block.Stmts {
		s.Accept(bv.self())
	}
	return nil
}

func (bv *BaseVisitor) VisitPrint(stmt *Print) interface{} {
	for _, a := range stmt.Args {
		a.Accept(bv.self())
	}
	return nil
}

func (bv *BaseVisitor) VisitAssign(stmt *Assign) interface{} {
	return stmt.Value.Accept(bv.self())
}

func (bv *BaseVisitor) VisitExprStmt(stmt *ExprStmt) interface{} {
	return stmt.X.Accept(bv.self())
}

func (bv *BaseVisitor) VisitNum(*Num) interface{}       { return nil }
func (bv *BaseVisitor) VisitString(*String) interface{} { return nil }
func (bv *BaseVisitor) VisitVar(*Var) interface{}       { return nil }

// Inspect traverses the tree in depth-first order, calling fn for each
// node. Children are skipped when fn returns false.
func Inspect(node Node, fn func(Node) bool) {
	if node == nil || !fn(node) {
		return
	}
	switch n := node.(type) {
	case *Block:
		for _, s := range n.Stmts {
			Inspect(s, fn)
		}
	case *Print:
		for _, a := range n.Args {
			Inspect(a, fn)
		}
	case *Assign:
		Inspect(n.Value, fn)
	case *ExprStmt:
		Inspect(n.X, fn)
	case *Num, *String, *Var:
	default:
		panic(fmt.Sprintf("ast.Inspect: unexpected node %T", node))
	}
}

// Variables returns the distinct variable names referenced by node, in order of first use
func Variables(node Node) []string {
	var names []string
	seen := make(map[string]bool)
	Inspect(node, func(n Node) bool {
		if v, ok := n.(*Var); ok && !seen[v.Name] {
			seen[v.Name] = true
			names = append(names, v.Name)
		}
		return true
	})
	return names
}

// dumper renders an indented tree with positions
type dumper struct {
	b     strings.Builder
	depth int
}

func (d *dumper) line(format string, args ...interface{}) {
	d.b.WriteString(strings.Repeat("  ", d.depth))
	fmt.Fprintf(&d.b, format, args...)
	d.b.WriteByte('\n')
}

func (d *dumper) nested(fn func()) {
	d.depth++
	fn()
	d.depth--
}

func (d *dumper) VisitBlock(block *Block) interface{} {
	d.line("Block (%d statements)", len(block.Stmts))
	d.nested(func() {
		for _, s := range block.Stmts {
			s.Accept(d)
		}
	})
	return nil
}

func (d *dumper) VisitPrint(stmt *Print) interface{} {
	d.line("Print @%s", stmt.Pos)
	d.nested(func() {
		for _, a := range stmt.Args {
			a.Accept(d)
		}
	})
	return nil
}

func (d *dumper) VisitAssign(stmt *Assign) interface{} {
	d.line("Assign %s @%s", stmt.Name, stmt.Pos)
	d.nested(func() { stmt.Value.Accept(d) })
	return nil
}

func (d *dumper) VisitExprStmt(stmt *ExprStmt) interface{} {
	d.line("ExprStmt @%s", stmt.Pos)
	d.nested(func() { stmt.X.Accept(d) })
	return nil
}

func (d *dumper) VisitNum(expr *Num) interface{} {
	d.line("Num %d @%s", expr.Value, expr.Pos)
	return nil
}

func (d *dumper) VisitString(expr *String) interface{} {
	d.line("String %q @%s", expr.Value, expr.Pos)
	return nil
}

func (d *dumper) VisitVar(expr *Var) interface{} {
	d.line("Var %s @%s", expr.Name, expr.Pos)
	return nil
}

// Dump returns an indented listing of the tree rooted at node
func Dump(node Node) string {
	d := &dumper{}
	node.Accept(d)
	return d.b.String()
}

// Equal reports whether a and b have the same structure and values.
// Positions are ignored.
func Equal(a, b Node) bool {
	switch x := a.(type) {
	case *Block:
		y, ok := b.(*Block)
		if !ok || len(x.Stmts) != len(y.Stmts) {
			return false
		}
		for i := range x.Stmts {
			if !Equal(x.Stmts[i], y.Stmts[i]) {
				return false
			}
		}
		return true
	case *Print:
		y, ok := b.(*Print)
		if !ok || len(x.Args) != len(y.Args) {
			return false
		}
		for i := range x.Args {
			if !Equal(x.Args[i], y.Args[i]) {
				return false
			}
		}
		return true
	case *Assign:
		y, ok := b.(*Assign)
		return ok && x.Name == y.Name && Equal(x.Value, y.Value)
	case *ExprStmt:
		y, ok := b.(*ExprStmt)
		return ok && Equal(x.X, y.X)
	case *Num:
		y, ok := b.(*Num)
		return ok && x.Value == y.Value
	case *String:
		y, ok := b.(*String)
		return ok && x.Value == y.Value
	case *Var:
		y, ok := b.(*Var)
		return ok && x.Name == y.Name
	case nil:
		return b == nil
	default:
		panic(fmt.Sprintf("ast.Equal: unexpected node %T", a))
	}
}
