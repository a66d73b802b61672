// File: scan.go
// Title: Expression Text Scanner
// Description: Splits arithmetic expression text into numbers, strings,
//              names and operators.
// Author: Adam Nassar
// Version: v0.1.0
// Created: 2025-09-14
// Modified: 2025-09-14
//
// Change History:
// - 2025-09-14 v0.1.0: Initial implementation

package textexpr

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	mdwerror "github.com/AGOODGITDUCK/PebbleCode/foundation/core/error"
	"github.com/AGOODGITDUCK/PebbleCode/foundation/pebble/value"
)

type tokKind int

const (
	tokEnd tokKind = iota
	tokNumber
	tokString
	tokName
	tokOp
)

type token struct {
	kind tokKind
	text string      // operator or name spelling
	val  value.Value // literal value of a number or string
	pos  int         // byte offset
}

// operators longest first so that "**" wins over "*"
var operators = []string{"**", "//", "==", "!=", "<=", ">=", "+", "-", "*", "/", "%", "<", ">", "(", ")"}

func scan(src string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(src) {
		r, size := utf8.DecodeRuneInString(src[i:])
		switch {
		case unicode.IsSpace(r):
			i += size

		case isDigit(r) || (r == '.' && i+1 < len(src) && isDigit(rune(src[i+1]))):
			tok, next, err := scanNumber(src, i)
			if err != nil {
				return nil, err
			}
			toks = append(toks, tok)
			i = next

		case r == '\'' || r == '"':
			tok, next, err := scanString(src, i)
			if err != nil {
				return nil, err
			}
			toks = append(toks, tok)
			i = next

		case r == '_' || unicode.IsLetter(r):
			start := i
			for i < len(src) {
				r, size := utf8.DecodeRuneInString(src[i:])
				if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
					break
				}
				i += size
			}
			toks = append(toks, token{kind: tokName, text: src[start:i], pos: start})

		default:
			op := matchOperator(src[i:])
			if op == "" {
				return nil, exprError(i, "invalid character %s", strconv.QuoteRune(r))
			}
			toks = append(toks, token{kind: tokOp, text: op, pos: i})
			i += len(op)
		}
	}
	return append(toks, token{kind: tokEnd, pos: len(src)}), nil
}

func matchOperator(s string) string {
	for _, op := range operators {
		if strings.HasPrefix(s, op) {
			return op
		}
	}
	return ""
}

func scanNumber(src string, start int) (token, int, error) {
	i := start
	digits := func() {
		for i < len(src) && isDigit(rune(src[i])) {
			i++
		}
	}

	digits()
	isFloat := false
	if i < len(src) && src[i] == '.' {
		isFloat = true
		i++
		digits()
	}
	if i < len(src) && (src[i] == 'e' || src[i] == 'E') {
		j := i + 1
		if j < len(src) && (src[j] == '+' || src[j] == '-') {
			j++
		}
		if j < len(src) && isDigit(rune(src[j])) {
			isFloat = true
			i = j
			digits()
		}
	}

	text := src[start:i]
	if isFloat {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return token{}, 0, exprError(start, "invalid float literal %s", text)
		}
		return token{kind: tokNumber, text: text, val: value.Float(f), pos: start}, i, nil
	}

	if len(text) > 1 && text[0] == '0' && strings.Trim(text, "0") != "" {
		return token{}, 0, exprError(start, "leading zeros in decimal integer literals are not permitted")
	}
	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return token{}, 0, exprError(start, "integer literal out of range: %s", text)
	}
	return token{kind: tokNumber, text: text, val: value.Int(n), pos: start}, i, nil
}

func scanString(src string, start int) (token, int, error) {
	quote := src[start]
	var b strings.Builder
	i := start + 1
	for i < len(src) {
		c := src[i]
		switch {
		case c == quote:
			return token{kind: tokString, text: src[start : i+1], val: value.Str(b.String()), pos: start}, i + 1, nil
		case c == '\n':
			return token{}, 0, exprError(start, "unterminated string literal")
		case c == '\\' && i+1 < len(src):
			if r, ok := unescape(src[i+1]); ok {
				b.WriteString(r)
				i += 2
			} else {
				b.WriteByte(c)
				i++
			}
		default:
			b.WriteByte(c)
			i++
		}
	}
	return token{}, 0, exprError(start, "unterminated string literal")
}

// unescape resolves a backslash escape; unknown escapes keep the backslash
func unescape(c byte) (string, bool) {
	switch c {
	case 'n':
		return "\n", true
	case 't':
		return "\t", true
	case 'r':
		return "\r", true
	case '0':
		return "\x00", true
	case '\\', '\'', '"':
		return string(c), true
	case '\n':
		return "", true
	}
	return "", false
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func exprError(pos int, format string, args ...interface{}) *mdwerror.Error {
	return mdwerror.Newf(format, args...).
		WithCode(mdwerror.CodeInvalidInput).
		WithDetail("offset", pos)
}
