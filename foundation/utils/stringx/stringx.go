// File: stringx.go
// Title: Core String Utility Functions
// Description: String helpers shared by the console, the expression text
//              evaluator and the terminal UI. Unicode aware throughout.
// Author: Adam Nassar
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-10-02
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with core utilities
// - 2025-10-02 v0.2.0: Word-boundary replacement and command splitting

package stringx

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// IsBlank returns true if the string is empty or contains only whitespace.
func IsBlank(s string) bool {
	for _, r := range s {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// FirstNonBlank returns the first non-blank string from the provided strings.
func FirstNonBlank(values ...string) string {
	for _, s := range values {
		if !IsBlank(s) {
			return s
		}
	}
	return ""
}

// Truncate shortens s to maxLen runes, ending with ellipsis when cut.
func Truncate(s string, maxLen int, ellipsis string) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}

	ellipsisLen := utf8.RuneCountInString(ellipsis)
	if ellipsisLen >= maxLen {
		return string([]rune(s)[:maxLen])
	}
	return string([]rune(s)[:maxLen-ellipsisLen]) + ellipsis
}

// PadRight pads s with pad up to width runes. Longer strings are returned unchanged.
func PadRight(s string, width int, pad rune) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(string(pad), width-n)
}

// SplitLines splits on \n, \r\n and \r.
func SplitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.Split(s, "\n")
}

// SplitCommand splits a console line into its first word and the trimmed rest.
// Leading whitespace is ignored; rest keeps interior spacing.
func SplitCommand(line string) (head, rest string) {
	line = strings.TrimLeftFunc(line, unicode.IsSpace)
	idx := strings.IndexFunc(line, unicode.IsSpace)
	if idx < 0 {
		return line, ""
	}
	return line[:idx], strings.TrimSpace(line[idx:])
}

// IsIdentRune reports whether r may appear inside an identifier.
func IsIdentRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// ReplaceWord replaces every occurrence of word in s that is not part of a
// longer identifier. ReplaceWord("ab + b", "b", "1") yields "ab + 1".
func ReplaceWord(s, word, replacement string) string {
	if word == "" {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))

	i := 0
	for {
		j := strings.Index(s[i:], word)
		if j < 0 {
			b.WriteString(s[i:])
			return b.String()
		}
		start := i + j
		end := start + len(word)

		before, _ := utf8.DecodeLastRuneInString(s[:start])
		after, _ := utf8.DecodeRuneInString(s[end:])
		bounded := (start == 0 || !IsIdentRune(before)) && (end == len(s) || !IsIdentRune(after))

		b.WriteString(s[i:start])
		if bounded {
			b.WriteString(replacement)
		} else {
			b.WriteString(word)
		}
		i = end
	}
}
