// SPDX-License-Identifier: MIT

package minimize

// Vector is an ordered candidate of four compliances.
type Vector = [4]float64

// Problem supplies the three pure functions the minimizer needs and the
// volume the candidate must track. *model.Model satisfies it.
type Problem interface {
	Volume(x Vector) float64
	Objective(x Vector) float64
	Gradient(x Vector) Vector
	TargetVolume() float64
}

// BestSentinel is the initial best objective value. It is large enough that
// the first finite evaluation of any sane model replaces it.
const BestSentinel = 5e6

// Result is the outcome of a run.
type Result struct {
	// Best is the snapshot of x at the lowest objective seen. With zero
	// iterations it is the initial vector.
	Best Vector
	// BestValue is the objective at Best, or BestSentinel if no evaluation
	// ever improved on it.
	BestValue float64
	// Initial is the starting vector (drawn or injected).
	Initial Vector
	// Final is x after the last descent step.
	Final Vector
	// Iterations is the number of loop bodies executed.
	Iterations int
	// Improvements counts strict improvements of the best value.
	Improvements int
}

// Step is the per-iteration trace handed to a Hook.
type Step struct {
	Iteration int

	// Start is x as the iteration found it.
	Start Vector
	// Corrected is x after the non-negativity pass and feasibility correction.
	Corrected Vector
	// Volume is the volume evaluated before correction.
	Volume float64
	// CorrectionIndex is the component overwritten by the feasibility
	// correction, or -1 when the volume matched exactly.
	CorrectionIndex int

	Gradient  Vector
	Objective float64

	// Improved reports a strict improvement on this iteration; Best is the
	// best objective value after it.
	Improved bool
	Best     float64

	// Index is the component moved by the descent step; Stepped is x after it.
	Index   int
	Stepped Vector
}

// Hook observes one iteration. It is called after the descent step, on the
// minimizer's goroutine, and receives the Step by value.
type Hook func(Step)
