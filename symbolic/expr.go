// SPDX-License-Identifier: MIT

package symbolic

import (
	"strconv"
	"strings"
)

// Expr is a node of an algebraic expression tree.
//
// Expressions are immutable: Diff and the constructors always return new
// nodes and never touch their operands, so subtrees may be shared freely.
type Expr interface {
	// Diff returns the simplified partial derivative with respect to name.
	Diff(name string) Expr

	// String renders the expression in infix form.
	String() string

	// compile lowers the node into a closure over argument positions.
	compile(index map[string]int) (Func, error)

	// collect appends free variables in first-appearance order.
	collect(seen map[string]struct{}, out []string) []string
}

// Const is a float64 literal.
type Const struct{ v float64 }

// Var is a named scalar input.
type Var struct{ name string }

// Add is an n-ary sum, evaluated as a left fold over terms.
type Add struct{ terms []Expr }

// Mul is an n-ary product, evaluated as a left fold over factors.
type Mul struct{ factors []Expr }

// Div is a binary quotient num/den.
type Div struct{ num, den Expr }

// Neg is unary negation.
type Neg struct{ arg Expr }

// C returns a constant node.
func C(v float64) Expr { return &Const{v: v} }

// V returns a variable node.
func V(name string) Expr { return &Var{name: name} }

// Value reports the literal value.
func (c *Const) Value() float64 { return c.v }

// Name reports the variable name.
func (v *Var) Name() string { return v.name }

// Terms returns a copy of the summands.
func (a *Add) Terms() []Expr { return append([]Expr(nil), a.terms...) }

// Factors returns a copy of the factors.
func (m *Mul) Factors() []Expr { return append([]Expr(nil), m.factors...) }

// Sum builds a simplified sum.
//
// Nested sums are flattened in place, constants are folded left to right
// into a single trailing constant (dropped when it is zero), and the order
// of the non-constant terms is preserved.
func Sum(terms ...Expr) Expr {
	var (
		flat []Expr
		acc  float64
	)
	flat, acc = flattenSum(terms, flat, acc)

	if len(flat) == 0 {
		return C(acc)
	}
	if acc != 0 {
		flat = append(flat, C(acc))
	}
	if len(flat) == 1 {
		return flat[0]
	}

	return &Add{terms: flat}
}

func flattenSum(terms []Expr, flat []Expr, acc float64) ([]Expr, float64) {
	for _, t := range terms {
		switch n := t.(type) {
		case *Const:
			acc += n.v
		case *Add:
			flat, acc = flattenSum(n.terms, flat, acc)
		default:
			flat = append(flat, t)
		}
	}

	return flat, acc
}

// Product builds a simplified product.
//
// Nested products are flattened, constants are folded left to right into a
// single leading constant; a zero constant annihilates the product and a
// unit constant is dropped.
func Product(factors ...Expr) Expr {
	var (
		flat []Expr
		acc  = 1.0
	)
	flat, acc = flattenProduct(factors, flat, acc)

	if acc == 0 || len(flat) == 0 {
		return C(acc)
	}
	if acc != 1 {
		flat = append([]Expr{C(acc)}, flat...)
	}
	if len(flat) == 1 {
		return flat[0]
	}

	return &Mul{factors: flat}
}

func flattenProduct(factors []Expr, flat []Expr, acc float64) ([]Expr, float64) {
	for _, f := range factors {
		switch n := f.(type) {
		case *Const:
			acc *= n.v
		case *Mul:
			flat, acc = flattenProduct(n.factors, flat, acc)
		default:
			flat = append(flat, f)
		}
	}

	return flat, acc
}

// Quotient builds num/den, folding constant operands.
func Quotient(num, den Expr) Expr {
	nc, nIsConst := num.(*Const)
	dc, dIsConst := den.(*Const)
	switch {
	case nIsConst && dIsConst:
		return C(nc.v / dc.v)
	case nIsConst && nc.v == 0:
		return C(0)
	case dIsConst && dc.v == 1:
		return num
	}

	return &Div{num: num, den: den}
}

// Negate builds -e, folding constants and cancelling double negation.
func Negate(e Expr) Expr {
	switch n := e.(type) {
	case *Const:
		return C(-n.v)
	case *Neg:
		return n.arg
	}

	return &Neg{arg: e}
}

// Vars lists the free variables of e in first-appearance order.
func Vars(e Expr) []string {
	if e == nil {
		return nil
	}

	return e.collect(make(map[string]struct{}), nil)
}

func (c *Const) collect(_ map[string]struct{}, out []string) []string { return out }

func (v *Var) collect(seen map[string]struct{}, out []string) []string {
	if _, ok := seen[v.name]; ok {
		return out
	}
	seen[v.name] = struct{}{}

	return append(out, v.name)
}

func (a *Add) collect(seen map[string]struct{}, out []string) []string {
	for _, t := range a.terms {
		out = t.collect(seen, out)
	}

	return out
}

func (m *Mul) collect(seen map[string]struct{}, out []string) []string {
	for _, f := range m.factors {
		out = f.collect(seen, out)
	}

	return out
}

func (d *Div) collect(seen map[string]struct{}, out []string) []string {
	out = d.num.collect(seen, out)

	return d.den.collect(seen, out)
}

func (n *Neg) collect(seen map[string]struct{}, out []string) []string {
	return n.arg.collect(seen, out)
}

// ---------- rendering ----------

func (c *Const) String() string { return strconv.FormatFloat(c.v, 'g', -1, 64) }

func (v *Var) String() string { return v.name }

func (a *Add) String() string {
	var sb strings.Builder
	for i, t := range a.terms {
		if i == 0 {
			sb.WriteString(t.String())
			continue
		}
		// a + (-b) reads better as a - b
		if n, ok := t.(*Neg); ok {
			sb.WriteString(" - ")
			sb.WriteString(group(n.arg, isAdd))
			continue
		}
		sb.WriteString(" + ")
		sb.WriteString(t.String())
	}

	return sb.String()
}

func (m *Mul) String() string {
	parts := make([]string, len(m.factors))
	for i, f := range m.factors {
		parts[i] = group(f, isAddOrNeg)
	}

	return strings.Join(parts, "*")
}

func (d *Div) String() string {
	return group(d.num, isAddOrNeg) + "/" + group(d.den, isCompound)
}

func (n *Neg) String() string { return "-" + group(n.arg, isCompound) }

// group parenthesizes e when needsParens reports true for it.
func group(e Expr, needsParens func(Expr) bool) string {
	if needsParens(e) {
		return "(" + e.String() + ")"
	}

	return e.String()
}

func isAdd(e Expr) bool {
	_, ok := e.(*Add)
	return ok
}

func isAddOrNeg(e Expr) bool {
	switch e.(type) {
	case *Add, *Neg:
		return true
	}

	return false
}

func isCompound(e Expr) bool {
	switch e.(type) {
	case *Const, *Var:
		return false
	}

	return true
}
