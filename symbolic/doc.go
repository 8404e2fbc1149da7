// SPDX-License-Identifier: MIT

// Package symbolic is a small, deterministic expression kernel: build
// algebraic expressions over named float64 inputs, differentiate them, and
// compile them into plain numeric functions.
//
// 🚀 What is it for?
//
//	Models that are written once as formulas (circuit-style equations,
//	rational objectives) and then evaluated thousands of times. The
//	expression is built and differentiated up front; the hot loop only ever
//	calls compiled closures.
//
// ✨ Key features:
//   - node set: Const, Var, Add (n-ary), Mul (n-ary), Div, Neg
//   - simplifying constructors: Sum, Product, Quotient, Negate
//     (flattening + constant folding, no algebraic rewriting beyond that)
//   - Diff: sum, product and quotient rules; constant denominators use
//     the shortcut (n/c)' = n'/c
//   - Compile / Gradient: bind variable names to argument positions
//   - bit-for-bit reproducible evaluation: every n-ary node is a left fold
//     in term order, and constructors never reorder non-constant terms
//
// ⚙️ Usage:
//
//	x, y := symbolic.V("x"), symbolic.V("y")
//	f := symbolic.Quotient(symbolic.C(1), symbolic.Sum(x, symbolic.Product(x, y)))
//
//	eval, err := symbolic.Compile(f, "x", "y")
//	grad, err := symbolic.Gradient(f, "x", "y")
//
//	v := eval([]float64{2, 3})  // 1/(2+2*3)
//	g := grad([]float64{2, 3})  // [∂f/∂x, ∂f/∂y]
//
// Errors:
//   - ErrNoVariables, ErrDuplicateVariable, ErrUnboundVariable, ErrNilExpr.
package symbolic
