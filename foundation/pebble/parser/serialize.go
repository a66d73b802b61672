// File: serialize.go
// Title: Token Serialization
// Description: Renders a token slice back to Pebble source so that
//              tokenize, serialize and re-parse yields the same program.
// Author: Adam Nassar
// Version: v0.1.0
// Created: 2025-09-14
// Modified: 2025-09-14
//
// Change History:
// - 2025-09-14 v0.1.0: Initial implementation

package parser

import (
	"strconv"
	"strings"
)

// Serialize renders tokens as space separated source text.
// NUM tokens are written by value, so 007 becomes 7; STRING tokens are
// re-quoted; the EOF token is skipped.
func Serialize(tokens []Token) string {
	parts := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		switch tok.Kind {
		case KindEOF:
			continue
		case KindNum:
			parts = append(parts, strconv.FormatInt(tok.Num, 10))
		case KindString:
			parts = append(parts, `"`+tok.Text+`"`)
		default:
			parts = append(parts, tok.Text)
		}
	}
	return strings.Join(parts, " ")
}
