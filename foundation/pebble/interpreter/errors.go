// File: errors.go
// Title: Interpreter Errors
// Description: NameError for unbound variables.
// Author: Adam Nassar
// Version: v0.1.0
// Created: 2025-09-14
// Modified: 2025-09-14
//
// Change History:
// - 2025-09-14 v0.1.0: Initial implementation

package interpreter

import (
	"fmt"

	mdwerror "github.com/AGOODGITDUCK/PebbleCode/foundation/core/error"
)

// NameError reports a reference to a variable that was never assigned
type NameError struct {
	Name   string
	Line   int
	Column int
}

func (e *NameError) Error() string {
	return fmt.Sprintf("undefined variable %s", e.Name)
}

// Code classifies the error for logging and the console
func (e *NameError) Code() mdwerror.Code {
	return mdwerror.CodeName
}
