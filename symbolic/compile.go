// SPDX-License-Identifier: MIT

package symbolic

import "fmt"

// Func evaluates a compiled expression. x[i] is the value of the i-th
// variable passed to Compile; len(x) must match the binding.
type Func func(x []float64) float64

// GradFunc evaluates compiled partial derivatives and returns a fresh slice,
// one entry per bound variable, in binding order.
type GradFunc func(x []float64) []float64

// Compile binds vars to argument positions and lowers e into a Func.
//
// Contracts:
//   - e must be non-nil; vars must be non-empty and unique.
//   - every variable referenced by e must be bound.
//
// Errors: ErrNilExpr, ErrNoVariables, ErrDuplicateVariable, ErrUnboundVariable.
//
// Complexity: O(size of e) to compile; each call is one closure per node.
func Compile(e Expr, vars ...string) (Func, error) {
	index, err := bind(e, vars)
	if err != nil {
		return nil, err
	}

	return e.compile(index)
}

// Gradient differentiates e with respect to vars (in order) and compiles
// every partial against the same binding. The binding contract is the one
// of Compile and is checked against e itself, so a variable whose partial
// folds to a constant is still reported as unbound.
func Gradient(e Expr, vars ...string) (GradFunc, error) {
	index, err := bind(e, vars)
	if err != nil {
		return nil, err
	}
	if _, err = e.compile(index); err != nil {
		return nil, err
	}

	partials := Partials(e, vars...)
	fns := make([]Func, len(partials))
	for i, p := range partials {
		if fns[i], err = p.compile(index); err != nil {
			return nil, err
		}
	}

	return func(x []float64) []float64 {
		out := make([]float64, len(fns))
		for i, f := range fns {
			out[i] = f(x)
		}

		return out
	}, nil
}

func bind(e Expr, vars []string) (map[string]int, error) {
	if e == nil {
		return nil, ErrNilExpr
	}
	if len(vars) == 0 {
		return nil, ErrNoVariables
	}

	index := make(map[string]int, len(vars))
	for i, name := range vars {
		if _, dup := index[name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateVariable, name)
		}
		index[name] = i
	}

	return index, nil
}

func (c *Const) compile(map[string]int) (Func, error) {
	v := c.v
	return func([]float64) float64 { return v }, nil
}

func (v *Var) compile(index map[string]int) (Func, error) {
	i, ok := index[v.name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnboundVariable, v.name)
	}

	return func(x []float64) float64 { return x[i] }, nil
}

func (a *Add) compile(index map[string]int) (Func, error) {
	fns, err := compileAll(a.terms, index)
	if err != nil {
		return nil, err
	}
	if len(fns) == 0 {
		return func([]float64) float64 { return 0 }, nil
	}
	head, tail := fns[0], fns[1:]

	return func(x []float64) float64 {
		r := head(x)
		for _, f := range tail {
			r += f(x)
		}

		return r
	}, nil
}

func (m *Mul) compile(index map[string]int) (Func, error) {
	fns, err := compileAll(m.factors, index)
	if err != nil {
		return nil, err
	}
	if len(fns) == 0 {
		return func([]float64) float64 { return 1 }, nil
	}
	head, tail := fns[0], fns[1:]

	return func(x []float64) float64 {
		r := head(x)
		for _, f := range tail {
			r *= f(x)
		}

		return r
	}, nil
}

func (d *Div) compile(index map[string]int) (Func, error) {
	num, err := d.num.compile(index)
	if err != nil {
		return nil, err
	}
	den, err := d.den.compile(index)
	if err != nil {
		return nil, err
	}

	return func(x []float64) float64 { return num(x) / den(x) }, nil
}

func (n *Neg) compile(index map[string]int) (Func, error) {
	arg, err := n.arg.compile(index)
	if err != nil {
		return nil, err
	}

	return func(x []float64) float64 { return -arg(x) }, nil
}

func compileAll(nodes []Expr, index map[string]int) ([]Func, error) {
	fns := make([]Func, len(nodes))
	for i, n := range nodes {
		f, err := n.compile(index)
		if err != nil {
			return nil, err
		}
		fns[i] = f
	}

	return fns, nil
}
