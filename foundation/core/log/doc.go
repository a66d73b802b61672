// Package log provides structured logging for the Pebble toolchain.
//
// Package: log
// Title: Pebble Structured Logging
// Description: Leveled, structured logging with contextual fields, several
//              output formats and integration with the coded error package.
//              The console and the interpreter log diagnostics here; user
//              facing output never goes through the logger.
// Author: Adam Nassar
// Version: v0.3.0
// Created: 2025-01-24
// Modified: 2025-10-09
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with structured logging and error integration
// - 2025-10-02 v0.2.0: Session context, stderr default, async mode removed
// - 2025-10-09 v0.3.0: Loggers are immutable values sharing one writer
//
// Features:
// - JSON, text, console and logfmt formats
// - Level filtering, warn by default so the REPL stays quiet
// - Persistent context fields and a console session ID
// - LogError picks the level from the error severity
// - Timers for script runs and other measured operations
//
// Usage:
//   import mdwlog "github.com/AGOODGITDUCK/PebbleCode/foundation/core/log"
//
//   logger := mdwlog.New().
//     WithLevel(mdwlog.LevelDebug).
//     WithField("component", "console").
//     WithSessionID(sessionID)
//
//   logger.Debug("command dispatched", mdwlog.Fields{"mode": "lang", "line": line})
//
//   timer := logger.StartTimer("run_script")
//   err := engine.RunSource(ctx, src, path, env)
//   if err != nil {
//     timer.StopWithError(err)
//   } else {
//     timer.Stop()
//   }
package log
