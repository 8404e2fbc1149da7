// SPDX-License-Identifier: MIT

package minimize_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/katalvlaran/cardiocomp/minimize"
	"github.com/katalvlaran/cardiocomp/model"
)

// volTol is the regression tolerance on the achieved volume at the best
// vector. Observed error is a few ulps of V.
const volTol = 1e-9

// fakeProblem lets tests script each evaluation.
type fakeProblem struct {
	target    float64
	volume    func(minimize.Vector) float64
	objective func(minimize.Vector) float64
	gradient  func(minimize.Vector) minimize.Vector
}

func (f fakeProblem) Volume(x minimize.Vector) float64    { return f.volume(x) }
func (f fakeProblem) Objective(x minimize.Vector) float64 { return f.objective(x) }
func (f fakeProblem) Gradient(x minimize.Vector) minimize.Vector {
	return f.gradient(x)
}
func (f fakeProblem) TargetVolume() float64 { return f.target }

// feasible returns a fake whose volume always matches the target, so the
// feasibility correction never fires.
func feasible(grad minimize.Vector) fakeProblem {
	return fakeProblem{
		target:    5,
		volume:    func(minimize.Vector) float64 { return 5 },
		objective: func(x minimize.Vector) float64 { return x[0] + x[1] + x[2] + x[3] },
		gradient:  func(minimize.Vector) minimize.Vector { return grad },
	}
}

func buildModel(t testing.TB, mode string) *model.Model {
	t.Helper()
	p, err := model.Lookup(mode)
	require.NoError(t, err)
	m, err := model.Build(model.Config{Preset: p, Volume: 5})
	require.NoError(t, err)

	return m
}

// record collects every Step of a run.
func record(trace *[]minimize.Step) minimize.Option {
	return minimize.WithHook(func(s minimize.Step) { *trace = append(*trace, s) })
}

// TestRun_GoldenHealthyOneIteration pins the first iteration from (1,1,1,1)
// on the healthy preset with V=5.
func TestRun_GoldenHealthyOneIteration(t *testing.T) {
	m := buildModel(t, model.Healthy)

	var trace []minimize.Step
	res, err := minimize.Run(context.Background(), m,
		minimize.WithInitial(minimize.Vector{1, 1, 1, 1}),
		minimize.WithIterations(1),
		record(&trace),
	)
	require.NoError(t, err)
	require.Len(t, trace, 1)

	step := trace[0]
	// Volume at (1,1,1,1) misses 5 by one ulp, so the component closest to
	// V (all tie at distance 4, lowest index wins) is overwritten with 4.
	assert.Equal(t, 0, step.CorrectionIndex)
	assert.Equal(t, minimize.Vector{4, 1, 1, 1}, step.Corrected)

	// Every partial is negative; the least negative one is ∂f/∂Csv.
	assert.Equal(t, model.Csv, step.Index)
	assert.InDelta(t, -0.015721129038851433, step.Gradient[model.Csa], 1e-15)
	assert.InDelta(t, -0.00031442258077702865, step.Gradient[model.Csv], 1e-15)
	assert.InDelta(t, -0.0023619424267970392, step.Gradient[model.Cpa], 1e-15)
	assert.InDelta(t, -0.0007860564519425714, step.Gradient[model.Cpv], 1e-15)

	assert.True(t, step.Improved)
	assert.Equal(t, minimize.Vector{4, 1, 1, 1}, res.Best)
	assert.InDelta(t, 0.06634693761492237, res.BestValue, 1e-15)
	assert.Equal(t, 1, res.Improvements)

	assert.Equal(t, 4.0, res.Final[model.Csa])
	assert.InDelta(t, 0.9996855774192229, res.Final[model.Csv], 1e-15)
	assert.Equal(t, 1.0, res.Final[model.Cpa])
	assert.Equal(t, 1.0, res.Final[model.Cpv])
}

// TestRun_GoldenHealthyThreeIterations extends the golden run: the second
// iteration pulls Csa back from 4 to 1 and the third finds no improvement.
func TestRun_GoldenHealthyThreeIterations(t *testing.T) {
	m := buildModel(t, model.Healthy)

	var trace []minimize.Step
	res, err := minimize.Run(context.Background(), m,
		minimize.WithInitial(minimize.Vector{1, 1, 1, 1}),
		minimize.WithIterations(3),
		record(&trace),
	)
	require.NoError(t, err)
	require.Len(t, trace, 3)

	assert.Equal(t, model.Csa, trace[1].CorrectionIndex)
	assert.Equal(t, 1.0, trace[1].Corrected[model.Csa])
	assert.False(t, trace[1].Improved)
	assert.False(t, trace[2].Improved)

	assert.Equal(t, minimize.Vector{4, 1, 1, 1}, res.Best)
	assert.InDelta(t, 0.9921631369833908, res.Final[model.Csv], 1e-15)
}

// TestRun_ZeroIterations returns the initial vector untouched.
func TestRun_ZeroIterations(t *testing.T) {
	m := buildModel(t, model.Hypertension)
	x0 := minimize.Vector{0.25, -3, 7, 0}

	calls := 0
	res, err := minimize.Run(context.Background(), m,
		minimize.WithInitial(x0),
		minimize.WithIterations(0),
		minimize.WithHook(func(minimize.Step) { calls++ }),
	)
	require.NoError(t, err)
	assert.Equal(t, x0, res.Best)
	assert.Equal(t, x0, res.Final)
	assert.Equal(t, x0, res.Initial)
	assert.Equal(t, minimize.BestSentinel, res.BestValue)
	assert.Zero(t, res.Iterations)
	assert.Zero(t, calls)
}

// TestRun_DeterministicTrace runs twice from an injected vector and expects
// identical traces.
func TestRun_DeterministicTrace(t *testing.T) {
	for _, mode := range model.Modes() {
		t.Run(mode, func(t *testing.T) {
			m := buildModel(t, mode)
			run := func() ([]minimize.Step, minimize.Result) {
				var trace []minimize.Step
				res, err := minimize.Run(context.Background(), m,
					minimize.WithInitial(minimize.Vector{0.3, 0.6, 0.1, 0.9}),
					minimize.WithIterations(500),
					record(&trace),
				)
				require.NoError(t, err)

				return trace, res
			}
			traceA, resA := run()
			traceB, resB := run()

			require.Len(t, traceA, 500)
			if diff := cmp.Diff(traceA, traceB); diff != "" {
				t.Fatalf("trace mismatch (-first +second):\n%s", diff)
			}
			assert.Equal(t, resA, resB)
		})
	}
}

// TestRun_SeedDeterminism checks the seed policy of the random start.
func TestRun_SeedDeterminism(t *testing.T) {
	m := buildModel(t, model.HeartFailure)
	run := func(opts ...minimize.Option) minimize.Result {
		res, err := minimize.Run(context.Background(), m, append(opts, minimize.WithIterations(100))...)
		require.NoError(t, err)

		return res
	}

	a, b := run(minimize.WithSeed(7)), run(minimize.WithSeed(7))
	assert.Equal(t, a, b, "same seed, same run")

	assert.Equal(t, run(minimize.WithSeed(0)), run(minimize.WithSeed(1)), "seed 0 maps to the default seed")
	assert.Equal(t, run(), run(minimize.WithSeed(0)), "no seed behaves as seed 0")

	c := run(minimize.WithSeed(8))
	assert.NotEqual(t, a.Initial, c.Initial)

	for _, v := range a.Initial {
		assert.GreaterOrEqual(t, v, 0.0)
		assert.Less(t, v, 1.0)
	}

	injected := run(minimize.WithSeed(7), minimize.WithInitial(minimize.Vector{1, 2, 3, 4}))
	assert.Equal(t, minimize.Vector{1, 2, 3, 4}, injected.Initial, "injected vector bypasses the draw")
}

// TestRun_PresetsTrackVolume is the regression baseline for every preset with
// the default budget: volume at the best vector within volTol of V, and no
// negative component.
func TestRun_PresetsTrackVolume(t *testing.T) {
	for _, mode := range model.Modes() {
		m := buildModel(t, mode)
		for seed := int64(1); seed <= 5; seed++ {
			res, err := minimize.Run(context.Background(), m, minimize.WithSeed(seed))
			require.NoError(t, err)
			require.Equal(t, minimize.DefaultIterations, res.Iterations)

			assert.InDelta(t, 5.0, m.Volume(res.Best), volTol, "%s seed %d", mode, seed)
			assert.Less(t, res.BestValue, minimize.BestSentinel)
			assert.Equal(t, m.Objective(res.Best), res.BestValue, "best value belongs to best vector")
			for i := range res.Best {
				assert.GreaterOrEqual(t, res.Best[i], 0.0, "%s seed %d Best[%d]", mode, seed, i)
				assert.GreaterOrEqual(t, res.Final[i], 0.0, "%s seed %d Final[%d]", mode, seed, i)
			}
		}
	}
}

// TestRun_BestIsMonotone verifies the recorded best never goes up and equals
// the running minimum of the objective.
func TestRun_BestIsMonotone(t *testing.T) {
	m := buildModel(t, model.Healthy)

	var trace []minimize.Step
	res, err := minimize.Run(context.Background(), m,
		minimize.WithSeed(11),
		minimize.WithIterations(2000),
		record(&trace),
	)
	require.NoError(t, err)

	runMin := minimize.BestSentinel
	for i, s := range trace {
		runMin = math.Min(runMin, s.Objective)
		assert.Equal(t, runMin, s.Best, "iteration %d", i)
		if i > 0 {
			assert.LessOrEqual(t, s.Best, trace[i-1].Best, "iteration %d", i)
		}
	}
	assert.Equal(t, runMin, res.BestValue)
}

// TestRun_SingleCoordinateMutation checks that the descent step changes only
// the max-gradient component.
func TestRun_SingleCoordinateMutation(t *testing.T) {
	m := buildModel(t, model.Hypertension)

	var trace []minimize.Step
	_, err := minimize.Run(context.Background(), m,
		minimize.WithSeed(3),
		minimize.WithIterations(1000),
		record(&trace),
	)
	require.NoError(t, err)

	for _, s := range trace {
		for i := range s.Stepped {
			if i == s.Index {
				assert.Equal(t, math.Abs(s.Corrected[i]+s.Gradient[i]), s.Stepped[i])
				continue
			}
			assert.Equal(t, s.Corrected[i], s.Stepped[i], "iteration %d component %d", s.Iteration, i)
		}
		for i := range s.Gradient {
			assert.LessOrEqual(t, s.Gradient[i], s.Gradient[s.Index], "iteration %d", s.Iteration)
		}
	}
}

// TestRun_NonNegativityWritesBack injects negative components and expects
// their magnitudes in x before any other step.
func TestRun_NonNegativityWritesBack(t *testing.T) {
	p := feasible(minimize.Vector{-1, -1, -1, 0})

	var trace []minimize.Step
	_, err := minimize.Run(context.Background(), p,
		minimize.WithInitial(minimize.Vector{-1, -2, 0.5, -0.25}),
		minimize.WithIterations(1),
		record(&trace),
	)
	require.NoError(t, err)
	require.Len(t, trace, 1)

	assert.Equal(t, minimize.Vector{-1, -2, 0.5, -0.25}, trace[0].Start)
	assert.Equal(t, -1, trace[0].CorrectionIndex, "volume matched, no correction")
	assert.Equal(t, minimize.Vector{1, 2, 0.5, 0.25}, trace[0].Corrected)
	assert.Equal(t, 3, trace[0].Index)
}

// TestRun_CorrectionPicksClosestLowestIndex overwrites the nearest
// component with its distance to V.
func TestRun_CorrectionPicksClosestLowestIndex(t *testing.T) {
	p := feasible(minimize.Vector{0, 0, 0, 0})
	p.volume = func(minimize.Vector) float64 { return 4.999 }

	var trace []minimize.Step
	_, err := minimize.Run(context.Background(), p,
		minimize.WithInitial(minimize.Vector{3, 7, 3, 1}),
		minimize.WithIterations(1),
		record(&trace),
	)
	require.NoError(t, err)

	assert.Equal(t, 0, trace[0].CorrectionIndex)
	assert.Equal(t, minimize.Vector{2, 7, 3, 1}, trace[0].Corrected)

	_, err = minimize.Run(context.Background(), p,
		minimize.WithInitial(minimize.Vector{9, 5.5, 0, 5.25}),
		minimize.WithIterations(1),
		record(&trace),
	)
	require.NoError(t, err)
	assert.Equal(t, 3, trace[1].CorrectionIndex)
	assert.Equal(t, minimize.Vector{9, 5.5, 0, 0.25}, trace[1].Corrected)
}

// TestRun_DescentTieLowestIndex resolves equal partials to the first index.
func TestRun_DescentTieLowestIndex(t *testing.T) {
	p := feasible(minimize.Vector{0.1, 0.5, 0.5, 0.5})

	res, err := minimize.Run(context.Background(), p,
		minimize.WithInitial(minimize.Vector{1, 1, 1, 1}),
		minimize.WithIterations(1),
	)
	require.NoError(t, err)
	assert.Equal(t, minimize.Vector{1, 1.5, 1, 1}, res.Final)
}

// TestRun_NonFinite covers both failure policies.
func TestRun_NonFinite(t *testing.T) {
	p := feasible(minimize.Vector{-1, -1, -1, -1})
	p.objective = func(minimize.Vector) float64 { return math.NaN() }

	// Default: propagate. NaN never beats the sentinel.
	res, err := minimize.Run(context.Background(), p,
		minimize.WithInitial(minimize.Vector{2, 2, 2, 2}),
		minimize.WithIterations(10),
	)
	require.NoError(t, err)
	assert.Equal(t, minimize.BestSentinel, res.BestValue)
	assert.Equal(t, minimize.Vector{2, 2, 2, 2}, res.Best)
	assert.Zero(t, res.Improvements)

	// Strict: fail on the first evaluation.
	res, err = minimize.Run(context.Background(), p,
		minimize.WithInitial(minimize.Vector{2, 2, 2, 2}),
		minimize.WithIterations(10),
		minimize.WithStrictFinite(),
	)
	require.ErrorIs(t, err, minimize.ErrNumericalInstability)

	var stepErr *minimize.StepError
	require.True(t, errors.As(err, &stepErr))
	assert.Equal(t, minimize.StageObjective, stepErr.Stage)
	assert.Equal(t, 0, stepErr.Iteration)
	assert.Zero(t, res.Iterations)

	p.gradient = func(minimize.Vector) minimize.Vector { return minimize.Vector{math.Inf(1), 0, 0, 0} }
	_, err = minimize.Run(context.Background(), p,
		minimize.WithInitial(minimize.Vector{2, 2, 2, 2}),
		minimize.WithStrictFinite(),
	)
	require.True(t, errors.As(err, &stepErr))
	assert.Equal(t, minimize.StageGradient, stepErr.Stage)
}

// TestRun_StrictFiniteOnDegenerateCandidate drives a real model into 0/0.
func TestRun_StrictFiniteOnDegenerateCandidate(t *testing.T) {
	m := buildModel(t, model.Healthy)

	_, err := minimize.Run(context.Background(), m,
		minimize.WithInitial(minimize.Vector{0, 0, 0, 0}),
		minimize.WithStrictFinite(),
	)
	var stepErr *minimize.StepError
	require.True(t, errors.As(err, &stepErr))
	assert.Equal(t, minimize.StageVolume, stepErr.Stage)
	assert.Contains(t, err.Error(), "iteration 0")
}

// TestRun_NilProblem rejects a nil problem, including a typed nil model.
func TestRun_NilProblem(t *testing.T) {
	_, err := minimize.Run(context.Background(), nil)
	assert.ErrorIs(t, err, minimize.ErrNilProblem)

	var m *model.Model
	assert.NotPanics(t, func() {
		_, err = minimize.Run(context.Background(), m, minimize.WithIterations(1))
	})
	assert.ErrorIs(t, err, minimize.ErrNilProblem)

	var fp *fakeProblem
	_, err = minimize.Run(context.Background(), fp)
	assert.ErrorIs(t, err, minimize.ErrNilProblem)
}

// TestRun_ContextCanceled stops before the first iteration.
func TestRun_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := minimize.Run(ctx, buildModel(t, model.Healthy), minimize.WithInitial(minimize.Vector{1, 1, 1, 1}))
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, res.Iterations)
	assert.Equal(t, minimize.Vector{1, 1, 1, 1}, res.Final)
}

// TestWithIterations_NegativePanics guards the option constructor.
func TestWithIterations_NegativePanics(t *testing.T) {
	assert.Panics(t, func() { minimize.WithIterations(-1) })
	assert.NotPanics(t, func() { minimize.WithIterations(0) })
}

// TestWithLogger_EmitsRunEvents observes the debug events of a run.
func TestWithLogger_EmitsRunEvents(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)

	_, err := minimize.Run(context.Background(), buildModel(t, model.Healthy),
		minimize.WithIterations(5),
		minimize.WithLogger(zap.New(core)),
	)
	require.NoError(t, err)

	assert.Equal(t, 1, logs.FilterMessage("minimize: start").Len())
	done := logs.FilterMessage("minimize: done").All()
	require.Len(t, done, 1)
	assert.Equal(t, int64(5), done[0].ContextMap()["iterations"])

	_, err = minimize.Run(context.Background(), buildModel(t, model.Healthy), minimize.WithLogger(nil), minimize.WithIterations(1))
	assert.NoError(t, err)
}
