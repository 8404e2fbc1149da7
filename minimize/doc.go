// SPDX-License-Identifier: MIT

// Package minimize runs a constrained, coordinate-wise heuristic descent over
// a four-component candidate vector.
//
// 🚀 What does it do?
//
//	Starting from a random (or injected) vector x, every iteration:
//	  1. writes |x_i| back into x (non-negativity pass);
//	  2. if Volume(x) != V, overwrites the component closest to V with its
//	     distance |x_i − V| (a crude feasibility nudge, not a projection);
//	  3. evaluates the gradient and 4. the objective at x;
//	  5. records x as the best vector on a strict improvement;
//	  6. moves the single component with the largest partial:
//	     x_i = |x_i + g_i|.
//
//	The run is purely iteration-count driven: no convergence test, no early
//	stop, no divergence detection.
//
// ⚙️ Usage:
//
//	m, _ := model.Build(model.Config{Preset: p, Volume: 5})
//	res, err := minimize.Run(ctx, m,
//	  minimize.WithIterations(10000),
//	  minimize.WithSeed(42),
//	)
//	fmt.Println(res.Best)
//
// Determinism:
//   - WithInitial bypasses the random draw entirely; with a fixed iteration
//     count every candidate vector of the run is bit-for-bit reproducible.
//   - WithSeed selects a math/rand stream; seed 0 maps to a fixed default.
//
// Non-finite values (NaN/±Inf from a degenerate candidate) propagate through
// the run by default. WithStrictFinite turns the first one into a
// *StepError wrapping ErrNumericalInstability.
package minimize
