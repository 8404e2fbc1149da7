// SPDX-License-Identifier: MIT

package symbolic

import "errors"

// Sentinel errors. Returned directly or wrapped with the offending name;
// callers match with errors.Is.
var (
	// ErrNilExpr indicates that a nil Expr was passed to Compile or Gradient.
	ErrNilExpr = errors.New("symbolic: nil expression")

	// ErrNoVariables indicates that Compile/Gradient was called without any
	// variable binding.
	ErrNoVariables = errors.New("symbolic: no variables to bind")

	// ErrDuplicateVariable indicates that the same name was bound twice.
	ErrDuplicateVariable = errors.New("symbolic: duplicate variable")

	// ErrUnboundVariable indicates that the expression references a variable
	// that was not listed in the binding.
	ErrUnboundVariable = errors.New("symbolic: unbound variable")
)
