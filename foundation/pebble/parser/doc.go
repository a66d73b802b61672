// File: doc.go
// Title: Pebble Parser Package Documentation
// Description: Lexical analysis and parsing of Pebble source text.
// Author: Adam Nassar
// Version: v0.1.0
// Created: 2025-09-14
// Modified: 2025-09-14
//
// Change History:
// - 2025-09-14 v0.1.0: Initial parser implementation

/*
Package parser turns Pebble source text into an AST.

Tokenize scans the complete input into NUM, IDENT, STRING and PUNC tokens
followed by a single EOF token. Parse consumes the tokens with one forward
cursor:

	program    = { statement }
	statement  = "print" { expr }      (consumes the rest of the input)
	           | IDENT "=" expr
	           | expr
	expr       = NUM | STRING | IDENT

Because print swallows everything after it, "print x\ny = 2" is a syntax
error at '=' rather than a print followed by an assignment.

Lexer and parser failures are *SyntaxError values rendering as
file:line:col: message.
*/
package parser
