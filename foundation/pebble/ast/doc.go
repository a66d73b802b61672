// File: doc.go
// Title: Pebble Abstract Syntax Tree Package Documentation
// Description: Defines the tree a parsed Pebble program is represented as.
// Author: Adam Nassar
// Version: v0.1.0
// Created: 2025-09-14
// Modified: 2025-09-14
//
// Change History:
// - 2025-09-14 v0.1.0: Initial AST implementation

/*
Package ast defines the Abstract Syntax Tree of Pebble programs.

A program is a *Block of statements. Statements are *Print, *Assign and
*ExprStmt (a nested *Block is allowed but the parser never produces one);
expressions are the literals *Num and *String and the variable reference
*Var. Both families are closed, so a type switch over them is exhaustive.

The package also provides:
  - Visitor and BaseVisitor for visitor style traversal
  - Inspect for closure style traversal
  - Dump, the indented listing printed by `pebble ast`
  - Equal, structural comparison that ignores positions
*/
package ast
