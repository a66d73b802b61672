// File: parser.go
// Title: Pebble Statement Parser
// Description: Converts a token slice into a *ast.Block. A single forward
//              cursor without backtracking; every expression is exactly one
//              token.
// Author: Adam Nassar
// Version: v0.1.0
// Created: 2025-09-14
// Modified: 2025-09-14
//
// Change History:
// - 2025-09-14 v0.1.0: Initial parser implementation

package parser

import (
	mdwlog "github.com/AGOODGITDUCK/PebbleCode/foundation/core/log"
	"github.com/AGOODGITDUCK/PebbleCode/foundation/pebble/ast"
)

// Parser implements the Pebble grammar over a token slice
type Parser struct {
	tokens   []Token
	pos      int
	filename string
	logger   *mdwlog.Logger
}

// Options configures parser behavior
type Options struct {
	Logger   *mdwlog.Logger
	Filename string
}

// New creates a new parser with the given options
func New(opts Options) *Parser {
	if opts.Logger == nil {
		opts.Logger = mdwlog.GetDefault()
	}
	if opts.Filename == "" {
		opts.Filename = DefaultFilename
	}
	return &Parser{
		filename: opts.Filename,
		logger:   opts.Logger.WithField("component", "pebble-parser"),
	}
}

// Parse parses tokens with a default parser
func Parse(tokens []Token, filename string) (*ast.Block, error) {
	return New(Options{Filename: filename}).Parse(tokens)
}

// ParseSource tokenizes and parses src
func ParseSource(src, filename string) (*ast.Block, error) {
	tokens, err := Tokenize(src, filename)
	if err != nil {
		return nil, err
	}
	return Parse(tokens, filename)
}

// Parse parses statements until the tokens are exhausted.
// The slice may or may not end with the EOF token from Tokenize.
func (p *Parser) Parse(tokens []Token) (*ast.Block, error) {
	p.tokens = tokens
	p.pos = 0

	block := &ast.Block{Pos: p.position(p.peek())}
	for !p.atEnd() {
		stmt, err := p.statement()
		if err != nil {
			p.logger.Debug("parse failed", mdwlog.Fields{
				"file":  p.filename,
				"error": err.Error(),
			})
			return nil, err
		}
		block.Stmts = append(block.Stmts, stmt)
	}

	p.logger.Trace("parse completed", mdwlog.Fields{
		"file":       p.filename,
		"statements": len(block.Stmts),
	})
	return block, nil
}

func (p *Parser) statement() (ast.Stmt, error) {
	tok := p.peek()

	switch {
	case tok.Is(KindIdent, "print"):
		p.advance()
		stmt := &ast.Print{Pos: p.position(tok)}
		for !p.atEnd() {
			expr, err := p.expr()
			if err != nil {
				return nil, err
			}
			stmt.Args = append(stmt.Args, expr)
		}
		return stmt, nil

	case tok.Kind == KindIdent:
		p.advance()
		eq := p.peek()
		if !eq.Is(KindPunc, "=") {
			return nil, p.errorAt(eq, "expected '='")
		}
		p.advance()
		value, err := p.expr()
		if err != nil {
			return nil, err
		}
		return &ast.Assign{Name: tok.Text, Value: value, Pos: p.position(tok)}, nil

	default:
		expr, err := p.expr()
		if err != nil {
			return nil, err
		}
		return &ast.ExprStmt{X: expr, Pos: expr.Position()}, nil
	}
}

func (p *Parser) expr() (ast.Expr, error) {
	tok := p.peek()

	switch tok.Kind {
	case KindNum:
		p.advance()
		return &ast.Num{Value: tok.Num, Pos: p.position(tok)}, nil
	case KindString:
		p.advance()
		return &ast.String{Value: tok.Text, Pos: p.position(tok)}, nil
	case KindIdent:
		p.advance()
		return &ast.Var{Name: tok.Text, Pos: p.position(tok)}, nil
	case KindEOF:
		return nil, p.errorAt(tok, "unexpected end of input")
	default:
		return nil, p.errorAt(tok, "unexpected token %s", tok)
	}
}

func (p *Parser) atEnd() bool {
	return p.peek().Kind == KindEOF
}

// peek returns the current token, or a synthesized EOF past the end
func (p *Parser) peek() Token {
	if p.pos < len(p.tokens) {
		return p.tokens[p.pos]
	}
	eof := Token{Kind: KindEOF, Line: 1, Column: 1}
	if n := len(p.tokens); n > 0 {
		last := p.tokens[n-1]
		eof.Line, eof.Column = last.Line, last.Column+len([]rune(last.Text))
		eof.Offset = last.Offset + len(last.Text)
		if last.Kind == KindString {
			eof.Column += 2
			eof.Offset += 2
		}
	}
	return eof
}

func (p *Parser) advance() {
	if p.pos < len(p.tokens) {
		p.pos++
	}
}

func (p *Parser) position(tok Token) ast.Position {
	return ast.Position{Line: tok.Line, Column: tok.Column, Offset: tok.Offset}
}

func (p *Parser) errorAt(tok Token, format string, args ...interface{}) *SyntaxError {
	return newSyntaxError(p.filename, tok.Line, tok.Column, format, args...)
}
