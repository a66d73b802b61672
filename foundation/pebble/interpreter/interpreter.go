// File: interpreter.go
// Title: Pebble Tree-Walking Interpreter
// Description: Executes a parsed program statement by statement against a
//              caller-owned environment. Execution stops at the first error;
//              output and bindings produced before it remain.
// Author: Adam Nassar
// Version: v0.1.0
// Created: 2025-09-14
// Modified: 2025-09-14
//
// Change History:
// - 2025-09-14 v0.1.0: Initial interpreter implementation

// Package interpreter executes parsed Pebble programs.
package interpreter

import (
	"context"
	"io"
	"os"
	"strings"

	mdwerror "github.com/AGOODGITDUCK/PebbleCode/foundation/core/error"
	mdwlog "github.com/AGOODGITDUCK/PebbleCode/foundation/core/log"
	"github.com/AGOODGITDUCK/PebbleCode/foundation/pebble/ast"
	"github.com/AGOODGITDUCK/PebbleCode/foundation/pebble/value"
)

// Interpreter executes Pebble programs
type Interpreter struct {
	out    io.Writer
	logger *mdwlog.Logger
}

// Options configures interpreter behavior
type Options struct {
	Logger *mdwlog.Logger
	Output io.Writer // destination of print; defaults to os.Stdout
}

// New creates a new interpreter with the given options
func New(opts Options) *Interpreter {
	if opts.Logger == nil {
		opts.Logger = mdwlog.GetDefault()
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	return &Interpreter{
		out:    opts.Output,
		logger: opts.Logger.WithField("component", "pebble-interpreter"),
	}
}

// Execute runs block against env. Cancellation of ctx is checked before
// every statement.
func (in *Interpreter) Execute(ctx context.Context, block *ast.Block, env *value.Env) error {
	if block == nil {
		return nil
	}
	if env == nil {
		return mdwerror.New("nil environment").
			WithCode(mdwerror.CodeInternal).
			WithOperation("interpreter.Execute")
	}

	timer := in.logger.StartTimer("execute").WithLevel(mdwlog.LevelTrace)
	if err := in.exec(ctx, block, env); err != nil {
		timer.Cancel()
		in.logger.DebugWithErr("execution stopped", err, mdwlog.Fields{
			"statements": len(block.Stmts),
		})
		return err
	}
	timer.Stop()
	return nil
}

func (in *Interpreter) exec(ctx context.Context, stmt ast.Stmt, env *value.Env) error {
	switch s := stmt.(type) {
	case *ast.Block:
		for _, child := range s.Stmts {
			if err := ctx.Err(); err != nil {
				return mdwerror.Wrap(err, "execution cancelled").
					WithOperation("interpreter.Execute").
					WithDetail("position", child.Position().String())
			}
			if err := in.exec(ctx, child, env); err != nil {
				return err
			}
		}
		return nil

	case *ast.Print:
		parts := make([]string, len(s.Args))
		for i, arg := range s.Args {
			v, err := in.Eval(arg, env)
			if err != nil {
				return err
			}
			parts[i] = v.String()
		}
		if _, err := io.WriteString(in.out, strings.Join(parts, " ")+"\n"); err != nil {
			return mdwerror.Wrap(err, "failed to write output").
				WithCode(mdwerror.CodeIO).
				WithOperation("interpreter.Print")
		}
		return nil

	case *ast.Assign:
		v, err := in.Eval(s.Value, env)
		if err != nil {
			return err
		}
		env.Set(s.Name, v)
		return nil

	case *ast.ExprStmt:
		_, err := in.Eval(s.X, env)
		return err

	default:
		return unknownNode(stmt)
	}
}

// Eval evaluates a single expression
func (in *Interpreter) Eval(expr ast.Expr, env *value.Env) (value.Value, error) {
	switch e := expr.(type) {
	case *ast.Num:
		return value.Int(e.Value), nil
	case *ast.String:
		return value.Str(e.Value), nil
	case *ast.Var:
		v, ok := env.Get(e.Name)
		if !ok {
			return nil, &NameError{Name: e.Name, Line: e.Pos.Line, Column: e.Pos.Column}
		}
		return v, nil
	default:
		return nil, unknownNode(expr)
	}
}

func unknownNode(node ast.Node) error {
	return mdwerror.Newf("unknown node type %T", node).
		WithCode(mdwerror.CodeInternal).
		WithOperation("interpreter.exec")
}
