// File: parser_test.go
// Title: Pebble Parser Unit Tests
// Description: Statement shapes, positions, syntax errors and the
//              tokenize/serialize/re-parse round trip.
// Author: Adam Nassar
// Version: v0.1.0
// Created: 2025-09-14
// Modified: 2025-09-14
//
// Change History:
// - 2025-09-14 v0.1.0: Initial test suite

package parser

import (
	"bytes"
	"strings"
	"testing"

	mdwlog "github.com/AGOODGITDUCK/PebbleCode/foundation/core/log"
	"github.com/AGOODGITDUCK/PebbleCode/foundation/pebble/ast"
)

func mustParse(t *testing.T, src string) *ast.Block {
	t.Helper()
	block, err := ParseSource(src, "")
	if err != nil {
		t.Fatalf("ParseSource(%q) error = %v", src, err)
	}
	return block
}

func TestParseStatements(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  *ast.Block
	}{
		{
			name:  "empty program",
			input: "   \n\t",
			want:  &ast.Block{},
		},
		{
			name:  "assignment then print",
			input: "x = 5\nprint x",
			want: &ast.Block{Stmts: []ast.Stmt{
				&ast.Assign{Name: "x", Value: &ast.Num{Value: 5}},
				&ast.Print{Args: []ast.Expr{&ast.Var{Name: "x"}}},
			}},
		},
		{
			name:  "print consumes the rest of the input",
			input: "print 1 \"two\" x\ny z",
			want: &ast.Block{Stmts: []ast.Stmt{
				&ast.Print{Args: []ast.Expr{
					&ast.Num{Value: 1},
					&ast.String{Value: "two"},
					&ast.Var{Name: "x"},
					&ast.Var{Name: "y"},
					&ast.Var{Name: "z"},
				}},
			}},
		},
		{
			name:  "print without arguments",
			input: "print",
			want:  &ast.Block{Stmts: []ast.Stmt{&ast.Print{}}},
		},
		{
			name:  "bare literals are expression statements",
			input: "42 \"hi\"",
			want: &ast.Block{Stmts: []ast.Stmt{
				&ast.ExprStmt{X: &ast.Num{Value: 42}},
				&ast.ExprStmt{X: &ast.String{Value: "hi"}},
			}},
		},
		{
			name:  "assignment of a string and a variable",
			input: "s = \"a b\" t = s",
			want: &ast.Block{Stmts: []ast.Stmt{
				&ast.Assign{Name: "s", Value: &ast.String{Value: "a b"}},
				&ast.Assign{Name: "t", Value: &ast.Var{Name: "s"}},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mustParse(t, tt.input)
			if !ast.Equal(got, tt.want) {
				t.Errorf("ParseSource(%q) =\n%s\nwant\n%s", tt.input, ast.Dump(got), ast.Dump(tt.want))
			}
		})
	}
}

func TestParsePositions(t *testing.T) {
	block := mustParse(t, "x = 5\n  print \"s\" x")

	assign := block.Stmts[0].(*ast.Assign)
	if got := assign.Position().String(); got != "1:1" {
		t.Errorf("assign position = %s, want 1:1", got)
	}
	if got := assign.Value.Position().String(); got != "1:5" {
		t.Errorf("assign value position = %s, want 1:5", got)
	}

	pr := block.Stmts[1].(*ast.Print)
	if got := pr.Position(); got.Line != 2 || got.Column != 3 || got.Offset != 8 {
		t.Errorf("print position = %+v, want line 2 column 3 offset 8", got)
	}
	if got := pr.Args[1].Position().String(); got != "2:13" {
		t.Errorf("second argument position = %s, want 2:13", got)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"identifier without assignment", "x 5", "<stdin>:1:3: expected '='"},
		{"identifier at end of input", "x", "<stdin>:1:2: expected '='"},
		{"assignment without value", "x =", "<stdin>:1:4: unexpected end of input"},
		{"leading punctuation", "+", "<stdin>:1:1: unexpected token PUNC '+'"},
		{"punctuation inside print", "print 1 +", "<stdin>:1:9: unexpected token PUNC '+'"},
		{"assignment to punctuation", "x = (", "<stdin>:1:5: unexpected token PUNC '('"},
		{"statement after print is swallowed", "print x\ny = 2", "<stdin>:2:3: unexpected token PUNC '='"},
		{"lexer error surfaces", "x = \"open", "<stdin>:1:10: unterminated string"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSource(tt.input, "")
			if err == nil {
				t.Fatal("expected an error")
			}
			if _, ok := err.(*SyntaxError); !ok {
				t.Errorf("error %T is not a *SyntaxError", err)
			}
			if err.Error() != tt.want {
				t.Errorf("error = %q, want %q", err.Error(), tt.want)
			}
		})
	}
}

func TestParseWithoutEOFToken(t *testing.T) {
	tokens, err := Tokenize("x = 1 y", "")
	if err != nil {
		t.Fatal(err)
	}
	_, err = Parse(tokens[:len(tokens)-1], "prog.peb")
	if err == nil {
		t.Fatal("expected an error")
	}
	if want := "prog.peb:1:8: expected '='"; err.Error() != want {
		t.Errorf("error = %q, want %q", err.Error(), want)
	}

	block, err := Parse(tokens[:3], "")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(block.Stmts) != 1 {
		t.Errorf("got %d statements, want 1", len(block.Stmts))
	}
}

func TestParserReuse(t *testing.T) {
	p := New(Options{Logger: mdwlog.Discard()})
	for _, src := range []string{"a = 1", "print a"} {
		tokens, err := Tokenize(src, "")
		if err != nil {
			t.Fatal(err)
		}
		block, err := p.Parse(tokens)
		if err != nil {
			t.Fatalf("Parse(%q) error = %v", src, err)
		}
		if len(block.Stmts) != 1 {
			t.Errorf("Parse(%q) got %d statements, want 1", src, len(block.Stmts))
		}
	}
}

func TestParserLogsFailures(t *testing.T) {
	var buf bytes.Buffer
	logger := mdwlog.New().WithLevel(mdwlog.LevelDebug).WithOutput(&buf)

	p := New(Options{Logger: logger, Filename: "bad.peb"})
	tokens, err := Tokenize("x 1", "bad.peb")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := p.Parse(tokens); err == nil {
		t.Fatal("expected an error")
	}

	out := buf.String()
	if !strings.Contains(out, "parse failed") || !strings.Contains(out, "pebble-parser") {
		t.Errorf("log output missing failure entry: %q", out)
	}
}

func TestSerializeRoundTrip(t *testing.T) {
	sources := []string{
		"",
		"x = 007",
		"a = \"hello world\"\nb = a\nprint a b 3",
		"42 \"multi\nline\" z = 1",
		"print",
	}

	for _, src := range sources {
		tokens, err := Tokenize(src, "")
		if err != nil {
			t.Fatalf("Tokenize(%q) error = %v", src, err)
		}
		original, err := Parse(tokens, "")
		if err != nil {
			t.Fatalf("Parse(%q) error = %v", src, err)
		}

		text := Serialize(tokens)
		reparsed, err := ParseSource(text, "")
		if err != nil {
			t.Fatalf("ParseSource(%q) error = %v", text, err)
		}
		if !ast.Equal(original, reparsed) {
			t.Errorf("round trip of %q via %q changed the program:\n%s\nvs\n%s",
				src, text, ast.Dump(original), ast.Dump(reparsed))
		}
	}
}

func TestSerialize(t *testing.T) {
	tokens, err := Tokenize("x=007 print \"a b\"", "")
	if err != nil {
		t.Fatal(err)
	}
	if got, want := Serialize(tokens), `x = 7 print "a b"`; got != want {
		t.Errorf("Serialize() = %q, want %q", got, want)
	}
}
