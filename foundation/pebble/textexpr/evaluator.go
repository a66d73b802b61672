// File: evaluator.go
// Title: Console Expression Evaluator
// Description: Substitutes variable values into expression text and
//              evaluates the result with the sandboxed arithmetic parser.
//              Evaluation never fails: on any error the substituted text is
//              returned as a string value.
// Author: Adam Nassar
// Version: v0.1.0
// Created: 2025-09-14
// Modified: 2025-09-14
//
// Change History:
// - 2025-09-14 v0.1.0: Initial implementation

// Package textexpr evaluates expression strings against a Pebble environment.
package textexpr

import (
	"strings"

	mdwerror "github.com/AGOODGITDUCK/PebbleCode/foundation/core/error"
	mdwlog "github.com/AGOODGITDUCK/PebbleCode/foundation/core/log"
	"github.com/AGOODGITDUCK/PebbleCode/foundation/pebble/value"
	"github.com/AGOODGITDUCK/PebbleCode/foundation/utils/stringx"
)

// Mode selects how variable names are substituted into expression text
type Mode string

const (
	// ModeLegacy replaces every substring occurrence of a name, so with x
	// bound the "x" inside "max" is replaced as well.
	ModeLegacy Mode = "legacy"

	// ModeWord replaces whole identifiers outside string literals only
	ModeWord Mode = "word"
)

// ParseMode parses a substitution mode name; empty selects ModeLegacy
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeLegacy:
		return ModeLegacy, nil
	case ModeWord:
		return ModeWord, nil
	}
	return "", mdwerror.Newf("invalid substitution mode: %s", s).
		WithCode(mdwerror.CodeInvalidConfig).
		WithDetail("valid", []string{string(ModeLegacy), string(ModeWord)})
}

// Evaluator evaluates console expression text
type Evaluator struct {
	mode   Mode
	logger *mdwlog.Logger
}

// Options configures evaluator behavior
type Options struct {
	Logger *mdwlog.Logger
	Mode   Mode
}

// New creates a new evaluator with the given options
func New(opts Options) *Evaluator {
	if opts.Logger == nil {
		opts.Logger = mdwlog.GetDefault()
	}
	if opts.Mode == "" {
		opts.Mode = ModeLegacy
	}
	return &Evaluator{
		mode:   opts.Mode,
		logger: opts.Logger.WithField("component", "pebble-textexpr"),
	}
}

// Mode returns the substitution mode in use
func (e *Evaluator) Mode() Mode {
	return e.mode
}

// Evaluate substitutes env into expr and evaluates it. When evaluation
// fails the substituted text is returned unchanged as a Str.
func (e *Evaluator) Evaluate(expr string, env *value.Env) value.Value {
	text := e.Substitute(expr, env)

	v, err := Eval(text)
	if err != nil {
		e.logger.DebugWithErr("expression fell back to text", err, mdwlog.Fields{
			"expression": text,
			"mode":       string(e.mode),
		})
		return value.Str(text)
	}
	return v
}

// Substitute replaces bound variable names in expr by their values, in the
// environment's first-binding order.
func (e *Evaluator) Substitute(expr string, env *value.Env) string {
	if env == nil || env.Len() == 0 {
		return expr
	}

	if e.mode == ModeWord {
		return substituteWords(expr, env)
	}

	for _, name := range env.Names() {
		v, _ := env.Get(name)
		expr = strings.ReplaceAll(expr, name, v.String())
	}
	return expr
}

// substituteWords applies whole-word replacement to the code between
// string literals. Literal text is copied through untouched.
func substituteWords(expr string, env *value.Env) string {
	var b strings.Builder
	for _, seg := range splitLiterals(expr) {
		if seg.literal {
			b.WriteString(seg.text)
			continue
		}
		text := seg.text
		for _, name := range env.Names() {
			v, _ := env.Get(name)
			text = stringx.ReplaceWord(text, name, v.String())
		}
		b.WriteString(text)
	}
	return b.String()
}

type segment struct {
	text    string
	literal bool
}

// splitLiterals cuts expr into code and quoted-string segments. An
// unterminated literal runs to the end of the text.
func splitLiterals(expr string) []segment {
	var segs []segment
	start := 0
	for i := 0; i < len(expr); i++ {
		quote := expr[i]
		if quote != '\'' && quote != '"' {
			continue
		}
		if i > start {
			segs = append(segs, segment{text: expr[start:i]})
		}
		j := i + 1
		for j < len(expr) && expr[j] != quote {
			if expr[j] == '\\' {
				j++
			}
			j++
		}
		if j >= len(expr) {
			j = len(expr) - 1
		}
		segs = append(segs, segment{text: expr[i : j+1], literal: true})
		start = j + 1
		i = j
	}
	if start < len(expr) {
		segs = append(segs, segment{text: expr[start:]})
	}
	return segs
}
