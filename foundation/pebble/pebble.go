// File: pebble.go
// Title: Pebble Language Engine
// Description: Entry points collaborators use to run Pebble source and to
//              evaluate expression text against an environment. Wires the
//              lexer, parser, interpreter and text evaluator together.
// Author: Adam Nassar
// Version: v0.1.0
// Created: 2025-09-14
// Modified: 2025-09-20
//
// Change History:
// - 2025-09-14 v0.1.0: Initial engine
// - 2025-09-20 v0.1.0: Execute for programs parsed ahead of time

package pebble

import (
	"bytes"
	"context"
	"io"
	"os"

	mdwerror "github.com/AGOODGITDUCK/PebbleCode/foundation/core/error"
	mdwlog "github.com/AGOODGITDUCK/PebbleCode/foundation/core/log"
	"github.com/AGOODGITDUCK/PebbleCode/foundation/pebble/ast"
	"github.com/AGOODGITDUCK/PebbleCode/foundation/pebble/interpreter"
	"github.com/AGOODGITDUCK/PebbleCode/foundation/pebble/parser"
	"github.com/AGOODGITDUCK/PebbleCode/foundation/pebble/textexpr"
	"github.com/AGOODGITDUCK/PebbleCode/foundation/pebble/value"
)

// Version of the Pebble language implementation
const Version = "0.1.0"

// Engine runs Pebble programs
type Engine struct {
	interpreter *interpreter.Interpreter
	evaluator   *textexpr.Evaluator
	base        *mdwlog.Logger
	logger      *mdwlog.Logger
}

// Options configures the engine
type Options struct {
	Logger       *mdwlog.Logger
	Output       io.Writer     // print destination; defaults to os.Stdout
	Substitution textexpr.Mode // expression substitution mode; defaults to legacy
}

// New creates a new engine with the given options
func New(opts Options) *Engine {
	if opts.Logger == nil {
		opts.Logger = mdwlog.GetDefault()
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	return &Engine{
		interpreter: interpreter.New(interpreter.Options{Logger: opts.Logger, Output: opts.Output}),
		evaluator:   textexpr.New(textexpr.Options{Logger: opts.Logger, Mode: opts.Substitution}),
		base:        opts.Logger,
		logger:      opts.Logger.WithField("component", "pebble-engine"),
	}
}

// Tokenize scans src into tokens terminated by EOF
func (e *Engine) Tokenize(src, filename string) ([]parser.Token, error) {
	return parser.Tokenize(src, filename)
}

// Parse tokenizes and parses src
func (e *Engine) Parse(src, filename string) (*ast.Block, error) {
	tokens, err := parser.Tokenize(src, filename)
	if err != nil {
		return nil, err
	}
	return parser.New(parser.Options{Logger: e.base, Filename: filename}).Parse(tokens)
}

// RunSource parses src completely, then executes it against env.
// A syntax error means no statement has run; a runtime error keeps the
// effects of the statements before it.
func (e *Engine) RunSource(ctx context.Context, src, filename string, env *value.Env) error {
	block, err := e.Parse(src, filename)
	if err != nil {
		return err
	}
	return e.interpreter.Execute(ctx, block, env)
}

// Execute runs an already parsed program against env
func (e *Engine) Execute(ctx context.Context, block *ast.Block, env *value.Env) error {
	return e.interpreter.Execute(ctx, block, env)
}

// RunFile reads a script from disk and runs it. A leading UTF-8 byte order
// mark is ignored.
func (e *Engine) RunFile(ctx context.Context, path string, env *value.Env) error {
	src, err := ReadSource(path)
	if err != nil {
		return err
	}
	e.logger.Debug("running script", mdwlog.Fields{"file": path, "bytes": len(src)})
	return e.RunSource(ctx, src, path, env)
}

// EvaluateText substitutes env into expr and evaluates it. It never fails.
func (e *Engine) EvaluateText(expr string, env *value.Env) value.Value {
	return e.evaluator.Evaluate(expr, env)
}

// Substitution returns the expression substitution mode in use
func (e *Engine) Substitution() textexpr.Mode {
	return e.evaluator.Mode()
}

var bom = []byte{0xEF, 0xBB, 0xBF}

// ReadSource reads a script file and strips a UTF-8 byte order mark
func ReadSource(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		code := mdwerror.CodeIO
		if os.IsNotExist(err) {
			code = mdwerror.CodeNotFound
		}
		return "", mdwerror.Wrap(err, "failed to read script").
			WithCode(code).
			WithOperation("pebble.ReadSource").
			WithDetail("path", path)
	}
	return string(bytes.TrimPrefix(data, bom)), nil
}
