// File: lexer.go
// Title: Pebble Lexical Analyzer (Tokenizer)
// Description: Converts Pebble source text into a complete token slice.
//              Tokenization is eager: the whole input is scanned before the
//              parser sees the first token.
// Author: Adam Nassar
// Version: v0.1.0
// Created: 2025-09-14
// Modified: 2025-09-14
//
// Change History:
// - 2025-09-14 v0.1.0: Initial lexer implementation

package parser

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Kind represents the kind of a lexical token
type Kind int

const (
	// KindEOF terminates every token slice produced by Tokenize
	KindEOF Kind = iota

	KindNum    // 42, 007
	KindIdent  // x, print, _tmp1
	KindString // "raw text"
	KindPunc   // one of + - * / = < > { } ( ) ,
)

// String returns a string representation of the token kind
func (k Kind) String() string {
	switch k {
	case KindEOF:
		return "EOF"
	case KindNum:
		return "NUM"
	case KindIdent:
		return "IDENT"
	case KindString:
		return "STRING"
	case KindPunc:
		return "PUNC"
	default:
		return "UNKNOWN"
	}
}

// punctuation lists every single-character PUNC token
const punctuation = "+-*/=<>{}(),"

// Token represents a lexical token with position information
type Token struct {
	Kind   Kind
	Text   string // source text; for STRING the content between the quotes
	Num    int64  // value of a NUM token
	Line   int    // 1-based
	Column int    // 1-based, in runes
	Offset int    // byte offset of the first character
}

// String returns a string representation of the token
func (t Token) String() string {
	switch t.Kind {
	case KindEOF:
		return "EOF"
	case KindNum:
		return fmt.Sprintf("NUM %d", t.Num)
	case KindString:
		return fmt.Sprintf("STRING %q", t.Text)
	case KindPunc:
		return fmt.Sprintf("PUNC '%s'", t.Text)
	default:
		return fmt.Sprintf("%s %s", t.Kind, t.Text)
	}
}

// Is reports whether t is a PUNC or IDENT token with the given text
func (t Token) Is(kind Kind, text string) bool {
	return t.Kind == kind && t.Text == text
}

// Lexer performs lexical analysis of Pebble input
type Lexer struct {
	input    string
	filename string
	offset   int // byte offset of the next unread rune
	line     int
	column   int
}

// NewLexer creates a new lexer for the given input
func NewLexer(input, filename string) *Lexer {
	if filename == "" {
		filename = DefaultFilename
	}
	return &Lexer{
		input:    input,
		filename: filename,
		line:     1,
		column:   1,
	}
}

// Tokenize scans src completely and returns its tokens followed by one EOF token
func Tokenize(src, filename string) ([]Token, error) {
	return NewLexer(src, filename).Tokens()
}

// Tokens scans the remaining input
func (l *Lexer) Tokens() ([]Token, error) {
	var toks []Token

	for {
		r, ok := l.peek()
		if !ok {
			break
		}

		switch {
		case unicode.IsSpace(r):
			l.advance()
		case isDigit(r):
			tok, err := l.number()
			if err != nil {
				return nil, err
			}
			toks = append(toks, tok)
		case r == '_' || unicode.IsLetter(r):
			toks = append(toks, l.ident())
		case strings.ContainsRune(punctuation, r):
			toks = append(toks, Token{Kind: KindPunc, Text: string(r), Line: l.line, Column: l.column, Offset: l.offset})
			l.advance()
		case r == '"':
			tok, err := l.str()
			if err != nil {
				return nil, err
			}
			toks = append(toks, tok)
		default:
			return nil, newSyntaxError(l.filename, l.line, l.column, "unexpected character %s", strconv.QuoteRune(r))
		}
	}

	toks = append(toks, Token{Kind: KindEOF, Line: l.line, Column: l.column, Offset: l.offset})
	return toks, nil
}

func (l *Lexer) peek() (rune, bool) {
	if l.offset >= len(l.input) {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.offset:])
	return r, true
}

func (l *Lexer) advance() rune {
	r, size := utf8.DecodeRuneInString(l.input[l.offset:])
	l.offset += size
	if r == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return r
}

func (l *Lexer) number() (Token, error) {
	tok := Token{Kind: KindNum, Line: l.line, Column: l.column, Offset: l.offset}
	for {
		r, ok := l.peek()
		if !ok || !isDigit(r) {
			break
		}
		l.advance()
	}
	tok.Text = l.input[tok.Offset:l.offset]

	n, err := strconv.ParseInt(tok.Text, 10, 64)
	if err != nil {
		return Token{}, newSyntaxError(l.filename, tok.Line, tok.Column, "integer literal out of range: %s", tok.Text)
	}
	tok.Num = n
	return tok, nil
}

func (l *Lexer) ident() Token {
	tok := Token{Kind: KindIdent, Line: l.line, Column: l.column, Offset: l.offset}
	for {
		r, ok := l.peek()
		if !ok || !(r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)) {
			break
		}
		l.advance()
	}
	tok.Text = l.input[tok.Offset:l.offset]
	return tok
}

func (l *Lexer) str() (Token, error) {
	tok := Token{Kind: KindString, Line: l.line, Column: l.column, Offset: l.offset}
	l.advance() // opening quote
	start := l.offset
	for {
		r, ok := l.peek()
		if !ok {
			return Token{}, newSyntaxError(l.filename, l.line, l.column, "unterminated string")
		}
		if r == '"' {
			break
		}
		l.advance()
	}
	tok.Text = l.input[start:l.offset]
	l.advance() // closing quote
	return tok, nil
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
