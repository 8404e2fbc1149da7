// SPDX-License-Identifier: MIT

package minimize

import (
	"errors"
	"fmt"
)

var (
	// ErrNilProblem indicates that Run was called without a Problem.
	ErrNilProblem = errors.New("minimize: nil problem")

	// ErrNumericalInstability is reported under WithStrictFinite when a
	// volume, gradient or objective evaluation is NaN or ±Inf.
	ErrNumericalInstability = errors.New("minimize: numerical instability (NaN or Inf)")
)

// Stage names the evaluation that produced a non-finite value.
type Stage string

const (
	StageVolume    Stage = "volume"
	StageGradient  Stage = "gradient"
	StageObjective Stage = "objective"
)

// StepError carries the iteration context of a failed evaluation.
type StepError struct {
	Iteration int
	Stage     Stage
	X         Vector
	Wrapped   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%v (iteration %d, %s at %v)", e.Wrapped, e.Iteration, e.Stage, e.X)
}

func (e *StepError) Unwrap() error { return e.Wrapped }
