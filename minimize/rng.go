// SPDX-License-Identifier: MIT

// Package minimize - RNG utilities for the initial draw.
//
// Policy:
//   - no time-based sources inside the package; callers that want a fresh
//     start every run pass a varying seed (the CLI does).
//   - math/rand.Rand is NOT goroutine-safe; every run owns its stream.
package minimize

import "math/rand"

// defaultRNGSeed is used when callers pass seed==0.
const defaultRNGSeed int64 = 1

// rngFromSeed returns a deterministic *rand.Rand.
// Policy: seed==0 ⇒ defaultRNGSeed; otherwise the seed verbatim.
//
// Complexity: O(1).
func rngFromSeed(seed int64) *rand.Rand {
	s := seed
	if s == 0 {
		s = defaultRNGSeed
	}

	return rand.New(rand.NewSource(s))
}

// randomVector draws four independent uniforms in [0, 1), in index order.
// If rng==nil, the default deterministic stream is used.
func randomVector(rng *rand.Rand) Vector {
	r := rng
	if r == nil {
		r = rngFromSeed(0)
	}

	var x Vector
	for i := range x {
		x[i] = r.Float64()
	}

	return x
}
