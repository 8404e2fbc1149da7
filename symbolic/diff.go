// SPDX-License-Identifier: MIT

package symbolic

// Differentiation rules. Every rule routes its result through the
// simplifying constructors, so derivatives of constant subtrees collapse
// to a single Const instead of growing 0*x / 1*x noise.

func (c *Const) Diff(string) Expr { return C(0) }

func (v *Var) Diff(name string) Expr {
	if v.name == name {
		return C(1)
	}

	return C(0)
}

// Diff applies the sum rule.
func (a *Add) Diff(name string) Expr {
	terms := make([]Expr, len(a.terms))
	for i, t := range a.terms {
		terms[i] = t.Diff(name)
	}

	return Sum(terms...)
}

// Diff applies the product rule: Σ_i f_i' · Π_{j≠i} f_j, with f_i' taking
// the place of f_i so that factor order is kept.
func (m *Mul) Diff(name string) Expr {
	terms := make([]Expr, 0, len(m.factors))
	for i := range m.factors {
		factors := make([]Expr, len(m.factors))
		copy(factors, m.factors)
		factors[i] = m.factors[i].Diff(name)
		terms = append(terms, Product(factors...))
	}

	return Sum(terms...)
}

// Diff applies the quotient rule (n'd - nd')/(d·d). A constant denominator
// takes the shortcut (n/c)' = n'/c.
func (d *Div) Diff(name string) Expr {
	if c, ok := d.den.(*Const); ok {
		return Quotient(d.num.Diff(name), c)
	}

	dn := d.num.Diff(name)
	dd := d.den.Diff(name)

	return Quotient(
		Sum(Product(dn, d.den), Negate(Product(d.num, dd))),
		Product(d.den, d.den),
	)
}

func (n *Neg) Diff(name string) Expr { return Negate(n.arg.Diff(name)) }

// Partials differentiates e with respect to each name, in order.
func Partials(e Expr, names ...string) []Expr {
	out := make([]Expr, len(names))
	for i, name := range names {
		out[i] = e.Diff(name)
	}

	return out
}
