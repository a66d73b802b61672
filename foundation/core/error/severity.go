// File: severity.go
// Title: Error Severity Levels
// Description: Severity levels; the logger picks its level from them.
// Author: Adam Nassar
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-10-09
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation
// - 2025-10-09 v0.2.0: Names table, alerting helper removed

package error

// Severity orders errors from user mistakes up to fatal conditions
type Severity int

const (
	// SeverityLow is a user mistake: bad input, an unknown name, a typo in a script
	SeverityLow Severity = iota

	// SeverityMedium affects one operation but the session continues
	SeverityMedium

	// SeverityHigh means a subsystem (storage, viewer) is unusable
	SeverityHigh

	// SeverityCritical means the process cannot continue
	SeverityCritical
)

var severityNames = [...]string{"low", "medium", "high", "critical"}

func (s Severity) String() string {
	if s < 0 || int(s) >= len(severityNames) {
		return "unknown"
	}
	return severityNames[s]
}
