// SPDX-License-Identifier: MIT

package minimize

import "go.uber.org/zap"

// DefaultIterations is the iteration budget when WithIterations is not given.
const DefaultIterations = 10000

const (
	panicNegativeIterations = "minimize: WithIterations: n must be >= 0"
)

// Option mutates internal options.
type Option func(*Options)

// Options is the resolved configuration of a run. Fields are unexported;
// callers go through the WithX constructors.
type Options struct {
	iterations   int
	seed         int64
	initial      *Vector
	hook         Hook
	strictFinite bool
	logger       *zap.Logger
}

func defaultOptions() Options {
	return Options{
		iterations: DefaultIterations,
		logger:     zap.NewNop(),
	}
}

// gatherOptions applies opts over the defaults, later options winning.
func gatherOptions(opts ...Option) Options {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}

// WithIterations sets the iteration budget. Zero is valid and returns the
// initial vector unchanged. Panics on a negative n (programmer error).
func WithIterations(n int) Option {
	if n < 0 {
		panic(panicNegativeIterations)
	}

	return func(o *Options) { o.iterations = n }
}

// WithSeed selects the random stream used to draw the initial vector.
// Seed 0 maps to a fixed default seed. Ignored when WithInitial is set.
func WithSeed(seed int64) Option {
	return func(o *Options) { o.seed = seed }
}

// WithInitial injects the starting vector in place of the random draw.
func WithInitial(x Vector) Option {
	return func(o *Options) {
		v := x
		o.initial = &v
	}
}

// WithHook registers an observer called once per iteration.
func WithHook(h Hook) Option {
	return func(o *Options) { o.hook = h }
}

// WithStrictFinite makes the run fail with ErrNumericalInstability at the
// first NaN or ±Inf volume, gradient or objective instead of carrying the
// corrupted state forward.
func WithStrictFinite() Option {
	return func(o *Options) { o.strictFinite = true }
}

// WithLogger attaches a logger for run-level debug events. nil restores the
// no-op default.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		if l == nil {
			l = zap.NewNop()
		}
		o.logger = l
	}
}
