// SPDX-License-Identifier: MIT

package minimize

import (
	"context"
	"fmt"
	"math"
	"reflect"

	"go.uber.org/zap"
)

// Run minimizes p.Objective over a four-component vector while nudging
// p.Volume back toward p.TargetVolume(), for exactly the configured number
// of iterations.
//
// Algorithm (per iteration):
//  1. x_i ← |x_i| for every component.
//  2. If Volume(x) != V: d_i = |x_i − V|, k = argmin d (lowest index on
//     ties), x_k ← d_k.
//  3. g ← Gradient(x).  4. f ← Objective(x).
//  5. If f < best: best ← f, Best ← copy of x.
//  6. j = argmax g (lowest index on ties), x_j ← |x_j + g_j|.
//
// Contracts:
//   - p must be non-nil; a typed nil pointer (e.g. (*model.Model)(nil)) is
//     rejected like an untyped nil. Run never mutates p.
//   - ctx is only polled between iterations; cancellation never changes the
//     arithmetic of completed iterations.
//
// Errors:
//   - ErrNilProblem.
//   - ctx.Err() (wrapped) when ctx is done before the budget is spent; the
//     partial Result is returned alongside.
//   - *StepError wrapping ErrNumericalInstability under WithStrictFinite.
//
// Complexity: O(iterations) evaluations of p.
func Run(ctx context.Context, p Problem, opts ...Option) (Result, error) {
	if isNil(p) {
		return Result{}, ErrNilProblem
	}
	o := gatherOptions(opts...)

	var x Vector
	if o.initial != nil {
		x = *o.initial
	} else {
		x = randomVector(rngFromSeed(o.seed))
	}

	target := p.TargetVolume()
	res := Result{Best: x, BestValue: BestSentinel, Initial: x}
	log := o.logger

	log.Debug("minimize: start",
		zap.Int("iterations", o.iterations),
		zap.Bool("injected", o.initial != nil),
		zap.Float64s("initial", x[:]),
		zap.Float64("target_volume", target),
	)

	for remaining := o.iterations; remaining > 0; remaining-- {
		if err := ctx.Err(); err != nil {
			res.Final = x
			return res, fmt.Errorf("minimize: stopped after %d iterations: %w", res.Iterations, err)
		}

		step := Step{Iteration: res.Iterations, Start: x, CorrectionIndex: -1}

		// Non-negativity pass; the corrected value is written back.
		for i := range x {
			x[i] = math.Abs(x[i])
		}

		// Volume-feasibility correction.
		step.Volume = p.Volume(x)
		if o.strictFinite && !finite(step.Volume) {
			return o.fail(res, x, StageVolume)
		}
		if step.Volume != target {
			k, d := closestTo(x, target)
			x[k] = d
			step.CorrectionIndex = k
		}
		step.Corrected = x

		step.Gradient = p.Gradient(x)
		if o.strictFinite && !finite(step.Gradient[:]...) {
			return o.fail(res, x, StageGradient)
		}

		step.Objective = p.Objective(x)
		if o.strictFinite && !finite(step.Objective) {
			return o.fail(res, x, StageObjective)
		}

		if step.Objective < res.BestValue {
			res.BestValue = step.Objective
			res.Best = x
			res.Improvements++
			step.Improved = true
		}
		step.Best = res.BestValue

		// Coordinate-wise descent on the largest partial.
		j := argmax(step.Gradient)
		x[j] = math.Abs(x[j] + step.Gradient[j])
		step.Index = j
		step.Stepped = x

		res.Iterations++
		if o.hook != nil {
			o.hook(step)
		}
	}
	res.Final = x

	log.Debug("minimize: done",
		zap.Int("iterations", res.Iterations),
		zap.Int("improvements", res.Improvements),
		zap.Float64("best_value", res.BestValue),
		zap.Float64s("best", res.Best[:]),
	)

	return res, nil
}

// fail finalizes res and builds the StepError for a non-finite evaluation.
func (o Options) fail(res Result, x Vector, stage Stage) (Result, error) {
	res.Final = x
	err := &StepError{Iteration: res.Iterations, Stage: stage, X: x, Wrapped: ErrNumericalInstability}
	o.logger.Warn("minimize: non-finite evaluation", zap.Error(err))

	return res, err
}

// isNil reports an untyped nil or an interface holding a nil pointer.
func isNil(p Problem) bool {
	if p == nil {
		return true
	}
	v := reflect.ValueOf(p)

	return v.Kind() == reflect.Pointer && v.IsNil()
}

// closestTo returns the index of the component nearest to target and that
// distance. Ties resolve to the lowest index.
func closestTo(x Vector, target float64) (int, float64) {
	k, best := 0, math.Abs(x[0]-target)
	for i := 1; i < len(x); i++ {
		if d := math.Abs(x[i] - target); d < best {
			k, best = i, d
		}
	}

	return k, best
}

// argmax returns the index of the largest component, lowest index on ties.
func argmax(g Vector) int {
	j := 0
	for i := 1; i < len(g); i++ {
		if g[i] > g[j] {
			j = i
		}
	}

	return j
}

func finite(vals ...float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}

	return true
}
