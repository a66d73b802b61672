// File: doc.go
// Title: Package Documentation for stringx
// Description: Package stringx provides the string helpers shared across the
//              Pebble toolchain.
// Author: Adam Nassar
// Version: v0.3.0
// Created: 2025-01-24
// Modified: 2025-10-02
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with core string utilities
// - 2025-01-26 v0.2.0: Enhanced documentation
// - 2025-10-02 v0.3.0: Trimmed to the helpers the console and evaluator use

// Package stringx provides Unicode-aware string helpers.
//
// The console uses SplitCommand to separate a command word from its
// argument and SplitLines to read scripts. The expression text evaluator
// uses ReplaceWord in its word substitution mode. The terminal UI uses
// Truncate and PadRight for fixed-width panes.
//
//	head, rest := stringx.SplitCommand("  cd  ../scripts ") // "cd", "../scripts"
//	stringx.ReplaceWord("ab + b", "b", "1")                  // "ab + 1"
package stringx
