// Package error provides structured error handling for the Pebble toolchain.
//
// Package: error
// Title: Pebble Error Handling Framework
// Description: Implements coded, contextual errors shared by the configuration
//              layer, the console, the history store and the drawing surface.
//              The language core reports its own SyntaxError and NameError
//              types; they expose the same Code() accessor so callers can
//              classify every failure through one API.
// Author: Adam Nassar
// Version: v0.3.0
// Created: 2025-01-24
// Modified: 2025-10-09
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with contextual errors and codes
// - 2025-10-02 v0.2.0: Trimmed codes to the language/console domain, Coder interface
// - 2025-10-09 v0.3.0: Code table with category and default severity
//
// Usage:
//
//	err := mdwerror.New("history database unavailable").
//		WithCode(mdwerror.CodeDatabaseError).
//		WithDetail("path", path).
//		WithOperation("history.Open")
//
//	if mdwerror.HasCode(err, mdwerror.CodeDatabaseError) {
//		// fall back to a session without history
//	}
package error
